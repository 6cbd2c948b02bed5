package tui

import (
	"EnergyOptimizer/internal/domain/models"
	dservice "EnergyOptimizer/internal/domain/service"
	"EnergyOptimizer/internal/view"

	tea "github.com/charmbracelet/bubbletea"
)

// chartMargin is the room asciigraph needs for the y axis labels.
const chartMargin = 14

type stateMsg models.ViewState

type feedClosedMsg struct{}

// Model shows the dashboard in a terminal. It owns no dashboard state:
// every frame is built from the latest state received on the feed.
type Model struct {
	states <-chan models.ViewState
	est    dservice.SavingsEstimator
	opts   view.Options
	text   view.TextRenderer
	page   view.Page
}

func NewModel(states <-chan models.ViewState, est dservice.SavingsEstimator, opts view.Options, chartHeight int) Model {
	text := view.NewTextRenderer(0, chartHeight)
	text.Color = true
	return Model{
		states: states,
		est:    est,
		opts:   opts,
		text:   *text,
		page:   view.Page{Loading: true},
	}
}

func waitForState(ch <-chan models.ViewState) tea.Cmd {
	return func() tea.Msg {
		s, ok := <-ch
		if !ok {
			return feedClosedMsg{}
		}
		return stateMsg(s)
	}
}

func (m Model) Init() tea.Cmd {
	return waitForState(m.states)
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "q":
			return m, tea.Quit
		}
	case tea.WindowSizeMsg:
		m.text.Width = max(0, msg.Width-chartMargin-ContainerStyle.GetHorizontalFrameSize())
	case stateMsg:
		m.page = view.Build(models.ViewState(msg), m.est, m.opts)
		return m, waitForState(m.states)
	case feedClosedMsg:
		return m, tea.Quit
	}
	return m, nil
}

func (m Model) View() string {
	var body string
	if m.page.Loading {
		body = LoadingStyle.Render("Loading...")
	} else {
		body = m.text.String(m.page)
	}
	return ContainerStyle.Render(body + HelpStyle.Render("q: quit"))
}

// Page returns the page currently on screen.
func (m Model) Page() view.Page { return m.page }
