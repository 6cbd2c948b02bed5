// Package statusapi serves the status endpoint contract from a local
// generator, for running the dashboard without the real backend.
package statusapi

import (
	"net/http"

	"EnergyOptimizer/internal/domain/models"
	"EnergyOptimizer/internal/services/forecast"

	"github.com/labstack/echo/v4"
)

type Handler struct {
	opt *forecast.Optimizer
}

func NewHandler(opt *forecast.Optimizer) *Handler {
	return &Handler{opt: opt}
}

func (h *Handler) RegisterRoutes(e *echo.Echo) {
	e.GET("/", h.Root)
	g := e.Group("/api")
	g.GET("/current-status", h.CurrentStatus)
	g.GET("/optimization-tips", h.Tips)
}

func (h *Handler) Root(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{"status": "Energy Optimization API is running"})
}

// CurrentStatus answers with the bare payload, no envelope.
func (h *Handler) CurrentStatus(c echo.Context) error {
	return c.JSON(http.StatusOK, h.opt.Status())
}

type tips struct {
	Recommendations []models.Recommendation `json:"recommendations"`
}

func (h *Handler) Tips(c echo.Context) error {
	st := h.opt.Insights(h.opt.Now())
	return c.JSON(http.StatusOK, tips{Recommendations: st.Recommendations})
}
