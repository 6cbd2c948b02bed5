package usecase

import (
	"context"
	"errors"
	"sync"
	"time"

	"EnergyOptimizer/internal/domain/models"
	drepo "EnergyOptimizer/internal/domain/repository"
	applogger "EnergyOptimizer/pkg/logger"
)

var (
	ErrAlreadyMounted = errors.New("dashboard: already mounted")
	ErrNilSource      = errors.New("dashboard: status source is nil")
)

const (
	DefaultPollInterval = 60 * time.Second
	DefaultFetchTimeout = 30 * time.Second
)

type lifecycle int

const (
	idle lifecycle = iota
	mounted
	unmounted
)

// Dashboard owns the view state and the poll loop that refreshes it.
// A Dashboard is mounted at most once.
type Dashboard struct {
	source   drepo.StatusSource
	notifier drepo.Notifier
	mirror   drepo.SnapshotMirror
	metrics  drepo.Metrics
	log      *applogger.Logger

	interval time.Duration
	timeout  time.Duration

	mu    sync.RWMutex
	state models.ViewState
	rev   uint64 // bumped on every apply

	lifeMu sync.Mutex
	phase  lifecycle
	cancel context.CancelFunc
	done   chan struct{}
}

type DashboardOption func(*Dashboard)

// WithPollInterval sets the delay between fetch cycles.
func WithPollInterval(d time.Duration) DashboardOption {
	return func(db *Dashboard) {
		if d > 0 {
			db.interval = d
		}
	}
}

// WithFetchTimeout bounds a single fetch, including one still running after unmount.
func WithFetchTimeout(d time.Duration) DashboardOption {
	return func(db *Dashboard) {
		if d > 0 {
			db.timeout = d
		}
	}
}

// WithSnapshotMirror copies every successful payload to m.
func WithSnapshotMirror(m drepo.SnapshotMirror) DashboardOption {
	return func(db *Dashboard) {
		db.mirror = m
	}
}

// NewDashboard wires a dashboard. notifier, metrics and log may be nil.
func NewDashboard(source drepo.StatusSource, notifier drepo.Notifier, metrics drepo.Metrics, log *applogger.Logger, opts ...DashboardOption) *Dashboard {
	if log == nil {
		log = applogger.Nop()
	}
	d := &Dashboard{
		source:   source,
		notifier: notifier,
		metrics:  metrics,
		log:      log,
		interval: DefaultPollInterval,
		timeout:  DefaultFetchTimeout,
		state:    models.InitialViewState(),
		done:     make(chan struct{}),
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Mount starts polling: one fetch right away, then one per interval until
// Unmount or ctx is done.
func (d *Dashboard) Mount(ctx context.Context) error {
	if d.source == nil {
		return ErrNilSource
	}

	d.lifeMu.Lock()
	defer d.lifeMu.Unlock()
	if d.phase != idle {
		return ErrAlreadyMounted
	}
	d.phase = mounted

	loopCtx, cancel := context.WithCancel(ctx)
	d.cancel = cancel

	initial := d.State()
	if d.metrics != nil {
		d.metrics.SetLoading(true)
	}
	if d.notifier != nil {
		d.notifier.Publish(initial)
	}

	d.log.Info("dashboard mounted", applogger.Duration("poll_interval_ms", d.interval))
	go d.run(loopCtx)
	return nil
}

// Unmount stops the poll loop and returns without waiting. A fetch already
// in flight is left to finish and still applies its result; Done closes
// after it does.
func (d *Dashboard) Unmount() {
	d.lifeMu.Lock()
	defer d.lifeMu.Unlock()

	switch d.phase {
	case idle:
		d.phase = unmounted
		close(d.done)
	case mounted:
		d.phase = unmounted
		d.cancel()
		d.log.Info("dashboard unmounted")
	}
}

// Done is closed once the poll loop has exited.
func (d *Dashboard) Done() <-chan struct{} {
	return d.done
}

// Mounted reports whether the poll loop is live. A loop stopped by its
// parent context counts as gone even without Unmount.
func (d *Dashboard) Mounted() bool {
	d.lifeMu.Lock()
	phase := d.phase
	d.lifeMu.Unlock()
	if phase != mounted {
		return false
	}
	select {
	case <-d.done:
		return false
	default:
		return true
	}
}

// State returns the current view state. The returned slices and snapshot
// are shared and must not be modified.
func (d *Dashboard) State() models.ViewState {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.state
}

// Snapshot returns the state together with its revision. Equal revisions
// mean equal states, so renderers can key caches on it.
func (d *Dashboard) Snapshot() (models.ViewState, uint64) {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.state, d.rev
}

func (d *Dashboard) run(ctx context.Context) {
	defer close(d.done)

	if !d.fetch(ctx) {
		return
	}

	// A tick that fires while a fetch is running is coalesced by the
	// ticker, so fetches never overlap.
	ticker := time.NewTicker(d.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if !d.fetch(ctx) {
				return
			}
		}
	}
}

// begin reports whether a fetch may still be issued.
func (d *Dashboard) begin(ctx context.Context) bool {
	d.lifeMu.Lock()
	defer d.lifeMu.Unlock()
	return d.phase == mounted && ctx.Err() == nil
}

// fetch runs one cycle and reports false when the loop must stop.
func (d *Dashboard) fetch(ctx context.Context) bool {
	if !d.begin(ctx) {
		return false
	}

	fetchCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), d.timeout)
	defer cancel()

	start := time.Now()
	payload, err := d.source.Fetch(fetchCtx)
	if err != nil {
		d.log.Error("status fetch failed",
			applogger.Error(err),
			applogger.Duration("duration_ms", time.Since(start)),
		)
		if d.metrics != nil {
			d.metrics.RecordFetch("error")
		}
		d.apply(nil)
		return true
	}

	if d.metrics != nil {
		d.metrics.RecordFetch("ok")
	}
	d.apply(payload)

	if d.mirror != nil {
		if err := d.mirror.Save(fetchCtx, payload); err != nil {
			d.log.Warn("snapshot mirror save failed", applogger.Error(err))
		}
	}
	return true
}

// apply is the only place view state changes. A nil payload records a
// failed cycle: loading ends, previous data stays.
func (d *Dashboard) apply(payload *models.StatusPayload) {
	d.mu.Lock()
	if payload != nil {
		snapshot := payload.CurrentStatus
		d.state.Predictions = payload.Predictions
		d.state.CurrentStatus = &snapshot
	}
	d.state.Loading = false
	d.rev++
	next := d.state
	d.mu.Unlock()

	if d.metrics != nil {
		d.metrics.SetLoading(false)
		if s := next.CurrentStatus; payload != nil {
			d.metrics.RecordSnapshot(s.CurrentUsage, s.ExpectedUsage, s.EfficiencyScore, len(s.Recommendations), len(next.Predictions))
		}
	}
	if d.notifier != nil {
		d.notifier.Publish(next)
	}
}
