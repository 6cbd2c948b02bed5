package middleware

import (
	"testing"

	"EnergyOptimizer/internal/domain/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func stateWithUsage(v float64) models.ViewState {
	return models.ViewState{CurrentStatus: &models.StatusSnapshot{CurrentUsage: v}}
}

func TestFanoutDeliversToAllSubscribers(t *testing.T) {
	f := NewViewFanout(nil)
	a, cancelA := f.Subscribe()
	b, cancelB := f.Subscribe()
	defer cancelA()
	defer cancelB()

	f.Publish(stateWithUsage(1))

	assert.Equal(t, 1.0, (<-a).CurrentStatus.CurrentUsage)
	assert.Equal(t, 1.0, (<-b).CurrentStatus.CurrentUsage)
}

func TestFanoutSlowSubscriberKeepsNewest(t *testing.T) {
	f := NewViewFanout(nil)
	ch, cancel := f.Subscribe()
	defer cancel()

	f.Publish(stateWithUsage(1))
	f.Publish(stateWithUsage(2))
	f.Publish(stateWithUsage(3))

	got := <-ch
	assert.Equal(t, 3.0, got.CurrentStatus.CurrentUsage)
	select {
	case extra := <-ch:
		t.Fatalf("unexpected queued state %+v", extra)
	default:
	}
}

func TestFanoutReplaysLastStateOnSubscribe(t *testing.T) {
	f := NewViewFanout(nil)
	f.Publish(models.InitialViewState())

	ch, cancel := f.Subscribe()
	defer cancel()

	got := <-ch
	assert.True(t, got.Loading)
}

func TestFanoutCancelAndClose(t *testing.T) {
	f := NewViewFanout(nil)
	ch, cancel := f.Subscribe()
	require.Equal(t, 1, f.Subscribers())

	cancel()
	cancel()
	_, open := <-ch
	assert.False(t, open)
	assert.Equal(t, 0, f.Subscribers())

	other, _ := f.Subscribe()
	f.Close()
	_, open = <-other
	assert.False(t, open)

	f.Publish(stateWithUsage(1))
	late, _ := f.Subscribe()
	_, open = <-late
	assert.False(t, open)
}
