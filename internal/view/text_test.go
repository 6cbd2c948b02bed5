package view

import (
	"strings"
	"testing"

	"EnergyOptimizer/internal/domain/models"
	"EnergyOptimizer/internal/services/savings"

	"github.com/stretchr/testify/assert"
)

func TestTextLoading(t *testing.T) {
	r := NewTextRenderer(0, 5)
	assert.Equal(t, "Loading...\n", r.String(Page{Loading: true}))
}

func TestTextScenario(t *testing.T) {
	r := NewTextRenderer(40, 5)
	out := r.String(Build(scenarioState(), savings.NewEstimator(), testOpts))

	assert.True(t, strings.HasPrefix(out, "Smart Energy Optimizer\n"))
	assert.Contains(t, out, "Current Usage:       10.0 kWh")
	assert.Contains(t, out, "Potential Savings:   $0.30")
	assert.Contains(t, out, "Optimization Score:  82/100")
	assert.Contains(t, out, "Energy Usage Analysis")
	assert.Contains(t, out, "00:00 .. 00:00")
	assert.Contains(t, out, "* Lower thermostat\n  Potential savings: $3.20")
	assert.Contains(t, out, "[ Generate Optimization Report ]  [ Configure Alerts ]")
}

func TestTextNoPredictions(t *testing.T) {
	r := NewTextRenderer(40, 5)
	out := r.String(Build(models.ViewState{}, savings.NewEstimator(), testOpts))

	assert.Contains(t, out, "(no predictions)")
	assert.Contains(t, out, "$0.00")
}

func TestTextExtremeValuesAtFixedWidth(t *testing.T) {
	st := scenarioState()
	st.Predictions = []models.PredictionPoint{
		{Time: "00:00", Predicted: -1e308, Optimal: 1e308},
		{Time: "01:00", Predicted: 1e308, Optimal: -1e308},
	}
	r := NewTextRenderer(40, 10)

	var out string
	assert.NotPanics(t, func() {
		out = r.String(Build(st, savings.NewEstimator(), testOpts))
	})
	assert.Contains(t, out, "00:00 .. 01:00")
}

func TestFiniteSpan(t *testing.T) {
	assert.True(t, finiteSpan([][]float64{{1, 2}, {3, -4}}))
	assert.True(t, finiteSpan([][]float64{{1e20, -1e20}}))
	assert.False(t, finiteSpan([][]float64{{-1e308}, {1e308}}))
}
