package api

import (
	"bytes"
	"errors"
	"fmt"
	"net/http"
	"time"

	"EnergyOptimizer/internal/domain/models"
	drepo "EnergyOptimizer/internal/domain/repository"
	dservice "EnergyOptimizer/internal/domain/service"
	"EnergyOptimizer/internal/repository"
	icache "EnergyOptimizer/internal/service/cache"
	imetrics "EnergyOptimizer/internal/service/metrics"
	"EnergyOptimizer/internal/view"
	xhttp "EnergyOptimizer/pkg/http"
	xlogger "EnergyOptimizer/pkg/logger"

	"github.com/labstack/echo/v4"
)

// DashboardReader is the read side of the mounted dashboard.
type DashboardReader interface {
	Snapshot() (models.ViewState, uint64)
	Mounted() bool
}

// defaultTextHeight must match the TextQuery height default.
const defaultTextHeight = 10

// TextQuery holds the /dashboard.txt query parameters.
type TextQuery struct {
	Width  int `query:"width" default:"0" validate:"gte=0,lte=240"`
	Height int `query:"height" default:"10" validate:"gte=3,lte=60"`
}

// DashboardHandler serves the dashboard as HTML, JSON and text, plus the
// live websocket feed when it is enabled.
type DashboardHandler struct {
	logger    *xlogger.Logger
	dash      DashboardReader
	est       dservice.SavingsEstimator
	opts      view.Options
	html      *view.HTMLRenderer
	mirror    drepo.SnapshotMirror
	renders   icache.BytesCache
	renderTTL time.Duration
	metrics   *imetrics.HandlerMetrics
	live      *liveConfig
}

type HandlerOption func(*DashboardHandler)

// WithSnapshots serves /api/status/latest from m.
func WithSnapshots(m drepo.SnapshotMirror) HandlerOption {
	return func(h *DashboardHandler) {
		h.mirror = m
	}
}

// WithRenderCache keeps rendered output in c for ttl, keyed by revision.
// A non-positive ttl disables caching.
func WithRenderCache(c icache.BytesCache, ttl time.Duration) HandlerOption {
	return func(h *DashboardHandler) {
		h.renders, h.renderTTL = nil, 0
		if ttl > 0 {
			h.renders, h.renderTTL = c, ttl
		}
	}
}

func NewDashboardHandler(
	logger *xlogger.Logger,
	dash DashboardReader,
	est dservice.SavingsEstimator,
	opts view.Options,
	html *view.HTMLRenderer,
	metrics *imetrics.HandlerMetrics,
	hopts ...HandlerOption,
) *DashboardHandler {
	if logger == nil {
		logger = xlogger.Nop()
	}
	h := &DashboardHandler{
		logger:  logger,
		dash:    dash,
		est:     est,
		opts:    opts,
		html:    html,
		metrics: metrics,
	}
	for _, opt := range hopts {
		opt(h)
	}
	return h
}

func (h *DashboardHandler) RegisterRoutes(e *echo.Echo) {
	e.GET("/", h.Index)
	e.GET("/dashboard.txt", h.Text)
	e.GET("/healthz", h.Health)

	g := e.Group("/api")
	g.GET("/dashboard", h.Page)
	g.GET("/state", h.State)
	g.GET("/status/latest", h.LatestStatus)

	if h.live != nil {
		e.GET(h.live.path, h.Live)
	}
}

func (h *DashboardHandler) Index(c echo.Context) error {
	state, rev := h.dash.Snapshot()
	b, err := h.render("html", fmt.Sprintf("page:%d", rev), func(buf *bytes.Buffer) error {
		return h.html.RenderPage(buf, view.Build(state, h.est, h.opts))
	})
	if err != nil {
		h.logger.Error("render page failed", xlogger.Error(err))
		return xhttp.InternalServerErrorResponse(c)
	}
	return c.HTMLBlob(http.StatusOK, b)
}

func (h *DashboardHandler) Page(c echo.Context) error {
	state, _ := h.dash.Snapshot()
	return xhttp.SuccessResponse(c, view.Build(state, h.est, h.opts))
}

func (h *DashboardHandler) State(c echo.Context) error {
	state, _ := h.dash.Snapshot()
	return xhttp.SuccessResponse(c, state)
}

func (h *DashboardHandler) LatestStatus(c echo.Context) error {
	if h.mirror == nil {
		return xhttp.AppErrorResponse(c, xhttp.NotFoundError("snapshot mirror disabled"))
	}
	p, err := h.mirror.Latest(c.Request().Context())
	if err != nil {
		if errors.Is(err, repository.ErrNoSnapshot) {
			return xhttp.AppErrorResponse(c, xhttp.NotFoundError("no status received yet"))
		}
		h.logger.Error("snapshot lookup failed", xlogger.Error(err))
		return xhttp.AppErrorResponse(c, xhttp.ServiceUnavailableError("snapshot store unavailable").WithError(err))
	}
	return xhttp.SuccessResponse(c, p)
}

func (h *DashboardHandler) Text(c echo.Context) error {
	q := &TextQuery{}
	if verr := xhttp.ReadAndValidateRequest(c, q); verr != nil {
		return xhttp.BadRequestResponse(c, verr)
	}

	state, rev := h.dash.Snapshot()
	// Only the default size is cached; other sizes come from the caller.
	var key string
	if q.Width == 0 && q.Height == defaultTextHeight {
		key = fmt.Sprintf("txt:%d", rev)
	}
	b, err := h.render("text", key, func(buf *bytes.Buffer) error {
		r := view.NewTextRenderer(q.Width, q.Height)
		return r.Render(buf, view.Build(state, h.est, h.opts))
	})
	if err != nil {
		h.logger.Error("render text failed", xlogger.Error(err))
		return xhttp.InternalServerErrorResponse(c)
	}
	return c.Blob(http.StatusOK, echo.MIMETextPlainCharsetUTF8, b)
}

type health struct {
	Mounted  bool   `json:"mounted"`
	Loading  bool   `json:"loading"`
	Revision uint64 `json:"revision"`
}

func (h *DashboardHandler) Health(c echo.Context) error {
	state, rev := h.dash.Snapshot()
	return xhttp.SuccessResponse(c, health{
		Mounted:  h.dash.Mounted(),
		Loading:  state.Loading,
		Revision: rev,
	})
}

// render returns cached output for key or produces it with fn. An empty
// key bypasses the cache.
func (h *DashboardHandler) render(format, key string, fn func(*bytes.Buffer) error) ([]byte, error) {
	cached := h.renders != nil && key != ""
	if cached {
		if b, ok := h.renders.GetBytes(key); ok {
			h.observeCache(format, "hit")
			return b, nil
		}
		h.observeCache(format, "miss")
	}

	start := time.Now()
	var buf bytes.Buffer
	if err := fn(&buf); err != nil {
		return nil, err
	}
	if h.metrics != nil {
		h.metrics.RenderLatency.WithLabelValues(format).Observe(time.Since(start).Seconds())
	}

	b := buf.Bytes()
	if cached {
		h.renders.SetBytes(key, b, h.renderTTL)
	}
	return b, nil
}

// Sweep expires stale renders and forgets idle rate limit buckets.
func (h *DashboardHandler) Sweep() {
	if h.renders != nil {
		h.renders.Sweep()
	}
	if h.live != nil && h.live.limiter != nil {
		h.live.limiter.Prune()
	}
}

func (h *DashboardHandler) observeCache(format, result string) {
	if h.metrics != nil {
		h.metrics.RenderCache.WithLabelValues(format, result).Inc()
	}
}
