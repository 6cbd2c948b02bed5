package server

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"EnergyOptimizer/internal/middleware"
	"EnergyOptimizer/internal/service/status"
	"EnergyOptimizer/internal/usecase"
	"EnergyOptimizer/pkg/config"
	xhttp "EnergyOptimizer/pkg/http"
	applogger "EnergyOptimizer/pkg/logger"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const payload = `{"predictions":[{"time":"00:00","predicted":5,"optimal":4}],
"current_status":{"current_usage":10,"expected_usage":8,"efficiency_score":82,
"recommendations":[{"message":"Lower thermostat","potential_savings":"$3.20"}]}}`

func TestAppRunContextMountsAndShutsDown(t *testing.T) {
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(payload))
	}))
	defer upstream.Close()

	cfg, err := config.Load("")
	require.NoError(t, err)
	cfg.Server.ShutdownTimeout = 2 * time.Second

	log := applogger.Nop()
	fan := middleware.NewViewFanout(nil)
	src := status.NewClient(upstream.URL, time.Second, nil)
	dash := usecase.NewDashboard(src, fan, nil, log, usecase.WithPollInterval(time.Hour))
	srv := xhttp.NewServer(nil, log,
		xhttp.WithHost("127.0.0.1"),
		xhttp.WithPort(0),
		xhttp.WithRegistry(prometheus.NewRegistry()),
	)

	app := New(cfg, log, dash, srv, nil)
	ctx, cancel := context.WithCancel(context.Background())
	errCh := make(chan error, 1)
	go func() { errCh <- app.RunContext(ctx) }()

	require.Eventually(t, func() bool {
		st, _ := dash.Snapshot()
		return !st.Loading
	}, 2*time.Second, 10*time.Millisecond)

	st := dash.State()
	require.NotNil(t, st.CurrentStatus)
	assert.Equal(t, 10.0, st.CurrentStatus.CurrentUsage)

	cancel()
	select {
	case err := <-errCh:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("RunContext did not return")
	}

	select {
	case <-dash.Done():
	default:
		t.Fatal("dashboard still running after shutdown")
	}
}

type countingSweeper struct{ n chan struct{} }

func (s *countingSweeper) Sweep() {
	select {
	case s.n <- struct{}{}:
	default:
	}
}

func TestAppSweepsWhileRunning(t *testing.T) {
	cfg, err := config.Load("")
	require.NoError(t, err)

	a := &App{cfg: cfg, log: applogger.Nop(), sweeper: &countingSweeper{n: make(chan struct{}, 1)}}
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go a.sweep(ctx, 5*time.Millisecond)

	select {
	case <-a.sweeper.(*countingSweeper).n:
	case <-time.After(time.Second):
		t.Fatal("sweeper never ran")
	}
}
