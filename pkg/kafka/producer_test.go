package kafka

import (
	"context"
	"errors"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingWriter struct {
	msgs []kafka.Message
	err  error
}

func (w *recordingWriter) WriteMessages(_ context.Context, msgs ...kafka.Message) error {
	if w.err != nil {
		return w.err
	}
	w.msgs = append(w.msgs, msgs...)
	return nil
}

func (w *recordingWriter) Close() error { return nil }

func TestPublishMessageEncodesJSON(t *testing.T) {
	w := &recordingWriter{}
	reg := prometheus.NewRegistry()
	p := NewProducerWithWriter(w, "gzip", reg)

	err := p.PublishMessage(context.Background(), "energy.diagnostics", []map[string]int{{"count": 3}})
	require.NoError(t, err)

	require.Len(t, w.msgs, 1)
	assert.Equal(t, "energy.diagnostics", w.msgs[0].Topic)
	assert.JSONEq(t, `[{"count":3}]`, string(w.msgs[0].Value))
	assert.Equal(t, 1.0, testutil.ToFloat64(p.metrics.msgs.WithLabelValues("energy.diagnostics", "gzip", "ok")))
}

func TestPublishWrapsWriterError(t *testing.T) {
	w := &recordingWriter{err: errors.New("broker down")}
	p := NewProducerWithWriter(w, "gzip", nil)

	err := p.Publish(context.Background(), "t", nil, "x")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "broker down")
}

func TestNewProducerRequiresBrokers(t *testing.T) {
	_, err := NewProducer()
	assert.Error(t, err)
}
