package statusapi

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"EnergyOptimizer/internal/service/status"
	"EnergyOptimizer/internal/services/forecast"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newServer(t *testing.T, hour int) *httptest.Server {
	t.Helper()
	opt := forecast.New(forecast.DefaultUsage)
	opt.Now = func() time.Time { return time.Date(2024, 3, 4, hour, 0, 0, 0, time.UTC) }

	e := echo.New()
	NewHandler(opt).RegisterRoutes(e)
	srv := httptest.NewServer(e)
	t.Cleanup(srv.Close)
	return srv
}

// The dashboard's own client must accept what the mock serves.
func TestCurrentStatusSatisfiesClientContract(t *testing.T) {
	srv := newServer(t, 18)

	p, err := status.NewClient(srv.URL+"/api/current-status", time.Second, nil).Fetch(context.Background())
	require.NoError(t, err)

	assert.Len(t, p.Predictions, forecast.HorizonHours)
	assert.Equal(t, "18:00", p.Predictions[0].Time)
	assert.Equal(t, 6.5, p.CurrentStatus.CurrentUsage)
	require.Len(t, p.CurrentStatus.Recommendations, 2)
	assert.Equal(t, "alert", p.CurrentStatus.Recommendations[0].Type)
}

func TestQuietHourHasEmptyRecommendations(t *testing.T) {
	srv := newServer(t, 6)

	p, err := status.NewClient(srv.URL+"/api/current-status", time.Second, nil).Fetch(context.Background())
	require.NoError(t, err)
	assert.Empty(t, p.CurrentStatus.Recommendations)
	assert.Equal(t, 100.0, p.CurrentStatus.EfficiencyScore)
}

func TestRootAndTips(t *testing.T) {
	srv := newServer(t, 18)

	resp, err := http.Get(srv.URL + "/")
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	resp, err = http.Get(srv.URL + "/api/optimization-tips")
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}
