package server

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"

	dservice "EnergyOptimizer/internal/domain/service"
	"EnergyOptimizer/internal/handler/tui"
	"EnergyOptimizer/internal/middleware"
	"EnergyOptimizer/internal/usecase"
	"EnergyOptimizer/internal/view"
	"EnergyOptimizer/pkg/config"
	applogger "EnergyOptimizer/pkg/logger"

	tea "github.com/charmbracelet/bubbletea"
)

// Terminal is the terminal host: the same dashboard drawn by bubbletea.
type Terminal struct {
	cfg    *config.Config
	log    *applogger.Logger
	dash   *usecase.Dashboard
	fanout *middleware.ViewFanout
	est    dservice.SavingsEstimator
	opts   view.Options
}

func NewTerminal(
	cfg *config.Config,
	log *applogger.Logger,
	dash *usecase.Dashboard,
	fanout *middleware.ViewFanout,
	est dservice.SavingsEstimator,
	opts view.Options,
) *Terminal {
	return &Terminal{cfg: cfg, log: log, dash: dash, fanout: fanout, est: est, opts: opts}
}

// Run draws the dashboard until the user quits or a signal arrives.
func (t *Terminal) Run() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	states, cancel := t.fanout.Subscribe()
	defer cancel()

	if err := t.dash.Mount(ctx); err != nil {
		return err
	}
	defer func() {
		t.dash.Unmount()
		waitUnmounted(t.dash, t.cfg.Server.ShutdownTimeout, t.log)
	}()

	m := tui.NewModel(states, t.est, t.opts, t.cfg.TUI.ChartHeight)
	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(ctx))
	if _, err := p.Run(); err != nil && !errors.Is(err, tea.ErrProgramKilled) {
		t.log.Error("terminal ui error", applogger.Error(err))
		return err
	}
	t.log.Info("terminal ui closed")
	return nil
}
