package view

import (
	"EnergyOptimizer/internal/domain/models"
	dservice "EnergyOptimizer/internal/domain/service"
	"EnergyOptimizer/pkg/util"
)

const (
	CardCurrentUsage      = "Current Usage"
	CardPotentialSavings  = "Potential Savings"
	CardOptimizationScore = "Optimization Score"
	ChartTitle            = "Energy Usage Analysis"
	SeriesPredicted       = "Predicted Usage"
	SeriesOptimal         = "Optimal Usage"
	SavingsPrefix         = "Potential savings: "
	ActionReport          = "Generate Optimization Report"
	ActionAlerts          = "Configure Alerts"
)

// Options carries presentation settings that do not come from state.
type Options struct {
	Title    string `json:"title" default:"Smart Energy Optimizer"`
	Currency string `json:"currency" default:"$"`
}

type Card struct {
	Title string `json:"title"`
	Value string `json:"value"`
}

type Series struct {
	Name   string    `json:"name"`
	Color  string    `json:"color"`
	Values []float64 `json:"values"`
}

type Chart struct {
	Title  string   `json:"title"`
	Labels []string `json:"labels"`
	Series []Series `json:"series"`
}

// Points is the number of samples on the x axis.
func (c Chart) Points() int { return len(c.Labels) }

type Banner struct {
	Kind    string `json:"kind,omitempty"`
	Message string `json:"message"`
	Savings string `json:"savings"`
}

// Action is a button with no behavior attached.
type Action struct {
	Label string `json:"label"`
}

// Page is everything a renderer needs. A loading page carries nothing else.
type Page struct {
	Loading bool     `json:"loading"`
	Title   string   `json:"title,omitempty"`
	Cards   []Card   `json:"cards,omitempty"`
	Chart   *Chart   `json:"chart,omitempty"`
	Banners []Banner `json:"banners,omitempty"`
	Actions []Action `json:"actions,omitempty"`
}

// Build maps state to a page. It is pure: same input, same page.
//
// After loading, an absent status (the first fetch failed) still renders
// the cards with empty values, savings "0.00" and no banners.
func Build(state models.ViewState, est dservice.SavingsEstimator, opts Options) Page {
	if state.Loading {
		return Page{Loading: true}
	}

	st := state.CurrentStatus
	usage, score := "", ""
	if st != nil {
		usage = util.FormatFixed(st.CurrentUsage, 1)
		score = util.FormatNumber(st.EfficiencyScore)
	}

	p := Page{
		Title: opts.Title,
		Cards: []Card{
			{Title: CardCurrentUsage, Value: usage + " kWh"},
			{Title: CardPotentialSavings, Value: opts.Currency + est.Estimate(st)},
			{Title: CardOptimizationScore, Value: score + "/100"},
		},
		Chart:   buildChart(state.Predictions),
		Actions: []Action{{Label: ActionReport}, {Label: ActionAlerts}},
	}

	if st != nil {
		p.Banners = make([]Banner, 0, len(st.Recommendations))
		for _, r := range st.Recommendations {
			p.Banners = append(p.Banners, Banner{
				Kind:    r.Type,
				Message: r.Message,
				Savings: SavingsPrefix + r.PotentialSavings,
			})
		}
	}
	return p
}

func buildChart(points []models.PredictionPoint) *Chart {
	c := &Chart{
		Title:  ChartTitle,
		Labels: make([]string, len(points)),
		Series: []Series{
			{Name: SeriesPredicted, Color: "#2563eb", Values: make([]float64, len(points))},
			{Name: SeriesOptimal, Color: "#16a34a", Values: make([]float64, len(points))},
		},
	}
	for i, p := range points {
		c.Labels[i] = p.Time
		c.Series[0].Values[i] = p.Predicted
		c.Series[1].Values[i] = p.Optimal
	}
	return c
}
