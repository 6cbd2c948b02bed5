package queue

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type diag struct {
	Message string `json:"message"`
	Count   int    `json:"count"`
}

func TestMessageEnvelope(t *testing.T) {
	now := time.Unix(1_700_000_000, 42)
	m, err := newMessage("energy.diagnostics", []diag{{Message: "status fetch failed", Count: 3}}, now)
	require.NoError(t, err)

	assert.Equal(t, "1700000000000000042", m.ID)
	assert.Equal(t, "energy.diagnostics", m.Type)

	got, err := ParsePayload[[]diag](m)
	require.NoError(t, err)
	require.Len(t, *got, 1)
	assert.Equal(t, 3, (*got)[0].Count)
}

func TestNewMessageRejectsUnmarshalable(t *testing.T) {
	_, err := newMessage("x", make(chan int), time.Now())
	assert.Error(t, err)
}

func TestRedisQueueKey(t *testing.T) {
	q := NewRedisQueue(nil, WithKeyPrefix("energy:diag"), WithMaxLen(10))
	assert.Equal(t, "energy:diag:energy.diagnostics", q.key("energy.diagnostics"))
	assert.Equal(t, int64(10), q.maxLen)
}
