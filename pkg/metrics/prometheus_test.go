package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestRecorder(t *testing.T) {
	reg := prometheus.NewRegistry()
	r := New(reg)

	r.RecordFetch("ok")
	r.RecordFetch("ok")
	r.RecordFetch("error")
	r.RecordSnapshot(10, 8, 82, 1, 24)
	r.SetLoading(false)

	assert.Equal(t, 2.0, testutil.ToFloat64(r.fetchesTotal.WithLabelValues("ok")))
	assert.Equal(t, 1.0, testutil.ToFloat64(r.fetchesTotal.WithLabelValues("error")))
	assert.Equal(t, 10.0, testutil.ToFloat64(r.usage.WithLabelValues("current")))
	assert.Equal(t, 82.0, testutil.ToFloat64(r.score))
	assert.Equal(t, 24.0, testutil.ToFloat64(r.points))
	assert.Equal(t, 0.0, testutil.ToFloat64(r.loading))
}
