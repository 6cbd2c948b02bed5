package view

import (
	"bytes"
	"strings"
	"testing"

	"EnergyOptimizer/internal/services/savings"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRenderFragmentLoading(t *testing.T) {
	r, err := NewHTMLRenderer()
	require.NoError(t, err)

	html, err := r.Fragment(Page{Loading: true})
	require.NoError(t, err)

	assert.Contains(t, html, "Loading...")
	assert.NotContains(t, html, "card")
	assert.NotContains(t, html, "<button")
}

func TestRenderFragmentScenario(t *testing.T) {
	r, err := NewHTMLRenderer()
	require.NoError(t, err)

	html, err := r.Fragment(Build(scenarioState(), savings.NewEstimator(), testOpts))
	require.NoError(t, err)

	for _, want := range []string{
		"Smart Energy Optimizer",
		"10.0 kWh",
		"$0.30",
		"82/100",
		"Energy Usage Analysis",
		`data-points="1"`,
		"Lower thermostat",
		"Potential savings: $3.20",
		"Generate Optimization Report",
		"Configure Alerts",
	} {
		assert.Contains(t, html, want)
	}
	assert.Equal(t, 1, strings.Count(html, `class="banner`))
	assert.Equal(t, 2, strings.Count(html, "<button"))
	assert.NotContains(t, html, "onclick")
	assert.Contains(t, html, `"labels":["00:00"]`)
}

func TestRenderFragmentEscapesPayloadText(t *testing.T) {
	r, err := NewHTMLRenderer()
	require.NoError(t, err)

	st := scenarioState()
	st.CurrentStatus.Recommendations[0].Message = `<script>alert(1)</script>`
	st.Predictions[0].Time = `</script><b>`

	html, err := r.Fragment(Build(st, savings.NewEstimator(), testOpts))
	require.NoError(t, err)

	assert.NotContains(t, html, "<script>alert(1)</script>")
	assert.NotContains(t, html, "</script><b>")
}

func TestRenderPageWrapsDashboard(t *testing.T) {
	r, err := NewHTMLRenderer(WithLiveUpdates("/ws"), WithDocumentTitle("Smart Energy Optimizer"))
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, r.RenderPage(&buf, Page{Loading: true}))
	html := buf.String()

	assert.True(t, strings.HasPrefix(html, "<!DOCTYPE html>"))
	assert.Contains(t, html, `class="min-h-screen"`)
	assert.Contains(t, html, `<section id="dashboard">`)
	assert.Contains(t, html, "<title>Smart Energy Optimizer</title>")
	assert.Contains(t, html, "var wsPath = ")
	assert.Contains(t, html, "/ws")
	assert.Contains(t, html, DefaultChartJS)
}
