package middleware

import (
	"sync"

	"EnergyOptimizer/internal/domain/models"
	drepo "EnergyOptimizer/internal/domain/repository"
)

// ViewFanout distributes dashboard states to any number of subscribers
// (websocket sessions, the terminal UI). Publish never blocks: a subscriber
// that falls behind loses intermediate states and keeps only the newest.
type ViewFanout struct {
	mu      sync.Mutex
	subs    map[uint64]chan models.ViewState
	nextID  uint64
	last    *models.ViewState
	bufSize int
	closed  bool
	metrics drepo.Metrics
}

var _ drepo.Notifier = (*ViewFanout)(nil)

type FanoutOption func(*ViewFanout)

// WithSubscriberBuffer sets each subscriber channel's capacity.
func WithSubscriberBuffer(n int) FanoutOption {
	return func(f *ViewFanout) {
		if n > 0 {
			f.bufSize = n
		}
	}
}

// NewViewFanout creates a fan-out. metrics may be nil.
func NewViewFanout(metrics drepo.Metrics, opts ...FanoutOption) *ViewFanout {
	f := &ViewFanout{
		subs:    make(map[uint64]chan models.ViewState),
		bufSize: 1,
		metrics: metrics,
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// Publish hands state to every subscriber without waiting on any of them.
func (f *ViewFanout) Publish(state models.ViewState) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.closed {
		return
	}

	f.last = &state
	for _, ch := range f.subs {
		select {
		case ch <- state:
			continue
		default:
		}
		// Full: replace the oldest queued state with this one.
		select {
		case <-ch:
			if f.metrics != nil {
				f.metrics.RecordError("fanout_drop")
			}
		default:
		}
		select {
		case ch <- state:
		default:
		}
	}
}

// Subscribe registers a receiver. The most recent state, if any, is queued
// immediately. The returned cancel func is idempotent and closes the channel.
func (f *ViewFanout) Subscribe() (<-chan models.ViewState, func()) {
	f.mu.Lock()
	defer f.mu.Unlock()

	ch := make(chan models.ViewState, f.bufSize)
	if f.closed {
		close(ch)
		return ch, func() {}
	}

	id := f.nextID
	f.nextID++
	f.subs[id] = ch
	if f.last != nil {
		ch <- *f.last
	}

	var once sync.Once
	return ch, func() {
		once.Do(func() {
			f.mu.Lock()
			defer f.mu.Unlock()
			if c, ok := f.subs[id]; ok {
				delete(f.subs, id)
				close(c)
			}
		})
	}
}

// Subscribers reports the number of live subscriptions.
func (f *ViewFanout) Subscribers() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.subs)
}

// Close ends every subscription. Later publishes are ignored.
func (f *ViewFanout) Close() {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.closed {
		return
	}
	f.closed = true
	for id, ch := range f.subs {
		delete(f.subs, id)
		close(ch)
	}
}
