package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"EnergyOptimizer/internal/domain/models"
	"EnergyOptimizer/internal/repository"
	icache "EnergyOptimizer/internal/service/cache"
	imetrics "EnergyOptimizer/internal/service/metrics"
	"EnergyOptimizer/internal/services/savings"
	"EnergyOptimizer/internal/view"
	"EnergyOptimizer/pkg/cache"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeDash struct {
	mu      sync.Mutex
	state   models.ViewState
	rev     uint64
	mounted bool
}

func newFakeDash() *fakeDash {
	return &fakeDash{state: models.InitialViewState(), mounted: true}
}

func (f *fakeDash) Snapshot() (models.ViewState, uint64) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.state, f.rev
}

func (f *fakeDash) Mounted() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.mounted
}

func (f *fakeDash) set(s models.ViewState) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.state = s
	f.rev++
}

func scenarioState() models.ViewState {
	return models.ViewState{
		Predictions: []models.PredictionPoint{{Time: "00:00", Predicted: 5, Optimal: 4}},
		CurrentStatus: &models.StatusSnapshot{
			CurrentUsage:    10,
			ExpectedUsage:   8,
			EfficiencyScore: 82,
			Recommendations: []models.Recommendation{{Message: "Lower thermostat", PotentialSavings: "$3.20"}},
		},
	}
}

type fixture struct {
	e       *echo.Echo
	dash    *fakeDash
	metrics *imetrics.HandlerMetrics
	mirror  *repository.CacheSnapshotMirror
	handler *DashboardHandler
}

func newFixture(t *testing.T, extra ...HandlerOption) *fixture {
	t.Helper()
	html, err := view.NewHTMLRenderer(view.WithLiveUpdates("/ws"))
	require.NoError(t, err)

	f := &fixture{
		e:       echo.New(),
		dash:    newFakeDash(),
		metrics: imetrics.NewHandlerMetrics(prometheus.NewRegistry()),
		mirror:  repository.NewCacheSnapshotMirror(cache.NewMemoryCache(cache.WithMemoryCleanup(0)), time.Minute),
	}
	opts := append([]HandlerOption{
		WithSnapshots(f.mirror),
		WithRenderCache(icache.NewRenderCache(), time.Minute),
	}, extra...)
	f.handler = NewDashboardHandler(nil, f.dash, savings.NewEstimator(),
		view.Options{Title: "Smart Energy Optimizer", Currency: "$"}, html, f.metrics, opts...)
	f.handler.RegisterRoutes(f.e)
	return f
}

func (f *fixture) get(t *testing.T, target string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, target, nil)
	rec := httptest.NewRecorder()
	f.e.ServeHTTP(rec, req)
	return rec
}

type envelope struct {
	Status  int             `json:"status"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

func decode(t *testing.T, rec *httptest.ResponseRecorder) envelope {
	t.Helper()
	var env envelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env))
	return env
}

func TestIndexWhileLoading(t *testing.T) {
	f := newFixture(t)

	rec := f.get(t, "/")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Header().Get(echo.HeaderContentType), "text/html")
	assert.Contains(t, rec.Body.String(), "Loading...")
	assert.NotContains(t, rec.Body.String(), "Current Usage")
}

func TestIndexServesCachedRenderForSameRevision(t *testing.T) {
	f := newFixture(t)
	f.dash.set(scenarioState())

	first := f.get(t, "/")
	second := f.get(t, "/")
	assert.Equal(t, first.Body.String(), second.Body.String())
	assert.Contains(t, first.Body.String(), "10.0 kWh")

	assert.Equal(t, 1.0, testutil.ToFloat64(f.metrics.RenderCache.WithLabelValues("html", "miss")))
	assert.Equal(t, 1.0, testutil.ToFloat64(f.metrics.RenderCache.WithLabelValues("html", "hit")))

	f.dash.set(models.ViewState{})
	third := f.get(t, "/")
	assert.NotContains(t, third.Body.String(), "10.0 kWh")
	assert.Equal(t, 2.0, testutil.ToFloat64(f.metrics.RenderCache.WithLabelValues("html", "miss")))
}

func TestPageJSON(t *testing.T) {
	f := newFixture(t)
	f.dash.set(scenarioState())

	rec := f.get(t, "/api/dashboard")
	require.Equal(t, http.StatusOK, rec.Code)

	var page view.Page
	require.NoError(t, json.Unmarshal(decode(t, rec).Data, &page))
	require.Len(t, page.Cards, 3)
	assert.Equal(t, "10.0 kWh", page.Cards[0].Value)
	assert.Equal(t, "$0.30", page.Cards[1].Value)
	assert.Equal(t, "82/100", page.Cards[2].Value)
	require.Len(t, page.Banners, 1)
	assert.Equal(t, "Potential savings: $3.20", page.Banners[0].Savings)
}

func TestStateJSON(t *testing.T) {
	f := newFixture(t)

	var st models.ViewState
	require.NoError(t, json.Unmarshal(decode(t, f.get(t, "/api/state")).Data, &st))
	assert.True(t, st.Loading)
	assert.Nil(t, st.CurrentStatus)

	f.dash.set(scenarioState())
	require.NoError(t, json.Unmarshal(decode(t, f.get(t, "/api/state")).Data, &st))
	assert.False(t, st.Loading)
	require.NotNil(t, st.CurrentStatus)
	assert.Equal(t, 10.0, st.CurrentStatus.CurrentUsage)
	assert.Len(t, st.Predictions, 1)
}

func TestLatestStatus(t *testing.T) {
	f := newFixture(t)

	rec := f.get(t, "/api/status/latest")
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, http.StatusNotFound, decode(t, rec).Status)

	s := scenarioState()
	require.NoError(t, f.mirror.Save(context.Background(), &models.StatusPayload{
		Predictions:   s.Predictions,
		CurrentStatus: *s.CurrentStatus,
	}))

	rec = f.get(t, "/api/status/latest")
	require.Equal(t, http.StatusOK, rec.Code)
	var p models.StatusPayload
	require.NoError(t, json.Unmarshal(decode(t, rec).Data, &p))
	assert.Equal(t, 82.0, p.CurrentStatus.EfficiencyScore)
}

func TestLatestStatusWithoutMirror(t *testing.T) {
	f := newFixture(t, WithSnapshots(nil))
	assert.Equal(t, http.StatusNotFound, f.get(t, "/api/status/latest").Code)
}

func TestTextRendering(t *testing.T) {
	f := newFixture(t)

	rec := f.get(t, "/dashboard.txt")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Loading...\n", rec.Body.String())

	f.dash.set(scenarioState())
	rec = f.get(t, "/dashboard.txt?width=40&height=5")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, strings.HasPrefix(rec.Header().Get(echo.HeaderContentType), "text/plain"))
	body := rec.Body.String()
	assert.Contains(t, body, "Current Usage:")
	assert.Contains(t, body, "10.0 kWh")
	assert.Contains(t, body, "* Lower thermostat")
}

func TestTextRejectsBadQuery(t *testing.T) {
	f := newFixture(t)

	for _, target := range []string{"/dashboard.txt?height=2", "/dashboard.txt?width=1000", "/dashboard.txt?width=abc"} {
		rec := f.get(t, target)
		assert.Equal(t, http.StatusBadRequest, rec.Code, target)
	}
}

func TestHealth(t *testing.T) {
	f := newFixture(t)
	f.dash.set(scenarioState())

	var h health
	require.NoError(t, json.Unmarshal(decode(t, f.get(t, "/healthz")).Data, &h))
	assert.True(t, h.Mounted)
	assert.False(t, h.Loading)
	assert.Equal(t, uint64(1), h.Revision)
}

func TestTextCachesOnlyDefaultSize(t *testing.T) {
	rc := icache.NewRenderCache()
	f := newFixture(t, WithRenderCache(rc, time.Minute))
	f.dash.set(scenarioState())

	for i := 0; i < 2; i++ {
		require.Equal(t, http.StatusOK, f.get(t, "/dashboard.txt").Code)
		require.Equal(t, http.StatusOK, f.get(t, "/dashboard.txt?width=40&height=5").Code)
		require.Equal(t, http.StatusOK, f.get(t, "/dashboard.txt?width=41&height=5").Code)
	}

	assert.Equal(t, 1, rc.Sweep())
	assert.Equal(t, 1.0, testutil.ToFloat64(f.metrics.RenderCache.WithLabelValues("text", "hit")))
	assert.Equal(t, 1.0, testutil.ToFloat64(f.metrics.RenderCache.WithLabelValues("text", "miss")))
}

func TestRenderCacheDisabledWithoutTTL(t *testing.T) {
	rc := icache.NewRenderCache()
	f := newFixture(t, WithRenderCache(rc, 0))

	require.Equal(t, http.StatusOK, f.get(t, "/").Code)
	require.Equal(t, http.StatusOK, f.get(t, "/dashboard.txt").Code)

	assert.Equal(t, 0, rc.Sweep())
	assert.Equal(t, 0, testutil.CollectAndCount(f.metrics.RenderCache))
}
