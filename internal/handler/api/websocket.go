package api

import (
	"bytes"
	"encoding/json"
	"fmt"
	"time"

	"EnergyOptimizer/internal/domain/models"
	"EnergyOptimizer/internal/service/ratelimit"
	"EnergyOptimizer/internal/view"
	xhttp "EnergyOptimizer/pkg/http"
	xlogger "EnergyOptimizer/pkg/logger"

	"github.com/gorilla/websocket"
	"github.com/labstack/echo/v4"
)

// StateSubscriber hands out a stream of dashboard states.
type StateSubscriber interface {
	Subscribe() (<-chan models.ViewState, func())
}

type liveConfig struct {
	path         string
	subs         StateSubscriber
	limiter      *ratelimit.Limiter
	pingInterval time.Duration
	writeTimeout time.Duration
	upgrader     websocket.Upgrader
}

// LiveMessage is what a browser receives on every state change.
type LiveMessage struct {
	HTML    string      `json:"html"`
	Chart   *view.Chart `json:"chart,omitempty"`
	Loading bool        `json:"loading"`
}

// WithLive enables the websocket feed at path. limiter may be nil.
func WithLive(path string, subs StateSubscriber, limiter *ratelimit.Limiter, ping, writeTimeout time.Duration) HandlerOption {
	return func(h *DashboardHandler) {
		if ping <= 0 {
			ping = 30 * time.Second
		}
		if writeTimeout <= 0 {
			writeTimeout = 10 * time.Second
		}
		h.live = &liveConfig{
			path:         path,
			subs:         subs,
			limiter:      limiter,
			pingInterval: ping,
			writeTimeout: writeTimeout,
			upgrader: websocket.Upgrader{
				ReadBufferSize:  1024,
				WriteBufferSize: 4096,
			},
		}
	}
}

// Live upgrades to a websocket and pushes a re-rendered fragment whenever
// the dashboard changes. The client never sends anything meaningful.
func (h *DashboardHandler) Live(c echo.Context) error {
	lc := h.live
	if lc.limiter != nil && !lc.limiter.Allow(c.RealIP()) {
		h.reject("rate_limited")
		return xhttp.AppErrorResponse(c, xhttp.TooManyRequestsError("too many live sessions").WithParam("remote", c.RealIP()))
	}

	conn, err := lc.upgrader.Upgrade(c.Response(), c.Request(), nil)
	if err != nil {
		// Upgrade has already written the error response.
		h.reject("handshake")
		h.logger.Debug("websocket upgrade failed", xlogger.Error(err))
		return nil
	}
	defer conn.Close()

	states, cancel := lc.subs.Subscribe()
	defer cancel()

	if h.metrics != nil {
		h.metrics.Sessions.Inc()
		defer h.metrics.Sessions.Dec()
	}
	h.logger.Debug("live session opened", xlogger.String("remote", c.RealIP()))

	closed := make(chan struct{})
	go h.drain(conn, closed)

	ping := time.NewTicker(lc.pingInterval)
	defer ping.Stop()

	for {
		select {
		case <-closed:
			return nil
		case _, ok := <-states:
			if !ok {
				_ = conn.WriteControl(websocket.CloseMessage,
					websocket.FormatCloseMessage(websocket.CloseGoingAway, "shutting down"),
					time.Now().Add(lc.writeTimeout))
				return nil
			}
			msg, err := h.liveMessage()
			if err != nil {
				h.logger.Error("render live fragment failed", xlogger.Error(err))
				continue
			}
			_ = conn.SetWriteDeadline(time.Now().Add(lc.writeTimeout))
			if err := conn.WriteMessage(websocket.TextMessage, msg); err != nil {
				h.logger.Debug("live write failed", xlogger.Error(err))
				return nil
			}
		case <-ping.C:
			if err := conn.WriteControl(websocket.PingMessage, nil, time.Now().Add(lc.writeTimeout)); err != nil {
				return nil
			}
		}
	}
}

// drain reads until the peer goes away so control frames get processed.
func (h *DashboardHandler) drain(conn *websocket.Conn, closed chan<- struct{}) {
	defer close(closed)
	conn.SetReadLimit(512)
	wait := 2 * h.live.pingInterval
	_ = conn.SetReadDeadline(time.Now().Add(wait))
	conn.SetPongHandler(func(string) error {
		return conn.SetReadDeadline(time.Now().Add(wait))
	})
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			return
		}
	}
}

// liveMessage renders the current revision. The pushed state only signals
// a change; the snapshot is never older than it.
func (h *DashboardHandler) liveMessage() ([]byte, error) {
	state, rev := h.dash.Snapshot()
	page := view.Build(state, h.est, h.opts)
	frag, err := h.render("fragment", fmt.Sprintf("live:%d", rev), func(buf *bytes.Buffer) error {
		return h.html.RenderFragment(buf, page)
	})
	if err != nil {
		return nil, err
	}
	return json.Marshal(LiveMessage{HTML: string(frag), Chart: page.Chart, Loading: page.Loading})
}

func (h *DashboardHandler) reject(reason string) {
	if h.metrics != nil {
		h.metrics.Rejected.WithLabelValues(reason).Inc()
	}
}
