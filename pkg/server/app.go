package server

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"
	"time"

	"EnergyOptimizer/internal/usecase"
	"EnergyOptimizer/pkg/config"
	xhttp "EnergyOptimizer/pkg/http"
	applogger "EnergyOptimizer/pkg/logger"
)

// Sweeper is periodic housekeeping run while the app is up.
type Sweeper interface {
	Sweep()
}

// App is the web host: one mounted dashboard behind an HTTP server.
type App struct {
	cfg        *config.Config
	log        *applogger.Logger
	dash       *usecase.Dashboard
	httpServer *xhttp.Server
	sweeper    Sweeper
}

func New(cfg *config.Config, log *applogger.Logger, dash *usecase.Dashboard, srv *xhttp.Server, sweeper Sweeper) *App {
	return &App{
		cfg:        cfg,
		log:        log,
		dash:       dash,
		httpServer: srv,
		sweeper:    sweeper,
	}
}

// Run blocks until SIGINT or SIGTERM.
func (a *App) Run() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	return a.RunContext(ctx)
}

// RunContext serves until ctx is done, then shuts down.
func (a *App) RunContext(ctx context.Context) error {
	if err := a.httpServer.Start(); err != nil {
		a.log.Error("http server start error", applogger.Error(err))
		return err
	}

	if err := a.dash.Mount(ctx); err != nil {
		a.log.Error("dashboard mount error", applogger.Error(err))
		return errors.Join(err, a.httpServer.Stop(context.Background()))
	}
	a.log.Info("dashboard polling",
		applogger.String("env", a.cfg.Environment),
		applogger.String("url", a.cfg.Status.URL),
		applogger.Int("port", a.cfg.Server.Port))

	if a.sweeper != nil && a.cfg.Live.RenderTTL > 0 {
		go a.sweep(ctx, a.cfg.Live.RenderTTL)
	}

	<-ctx.Done()
	a.log.Info("shutdown signal received")
	return a.shutdown()
}

func (a *App) sweep(ctx context.Context, every time.Duration) {
	t := time.NewTicker(every)
	defer t.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-t.C:
			a.sweeper.Sweep()
		}
	}
}

func (a *App) shutdown() error {
	a.dash.Unmount()
	waitUnmounted(a.dash, a.cfg.Server.ShutdownTimeout, a.log)

	if err := a.httpServer.Stop(context.Background()); err != nil {
		a.log.Error("http shutdown error", applogger.Error(err))
		return err
	}
	a.log.Info("shutdown complete")
	return nil
}

// waitUnmounted gives an in-flight fetch up to timeout to land.
func waitUnmounted(d *usecase.Dashboard, timeout time.Duration, log *applogger.Logger) {
	select {
	case <-d.Done():
	case <-time.After(timeout):
		log.Warn("dashboard still fetching at shutdown", applogger.Duration("waited_ms", timeout))
	}
}
