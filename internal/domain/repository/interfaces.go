package repository

import (
	"context"

	"EnergyOptimizer/internal/domain/models"
)

// StatusSource fetches one status payload. Any transport, HTTP, decoding or
// contract failure is returned as an error.
type StatusSource interface {
	Fetch(ctx context.Context) (*models.StatusPayload, error)
}

// Notifier receives every ViewState the dashboard settles on.
type Notifier interface {
	Publish(state models.ViewState)
}

// SnapshotMirror keeps the last successful payload outside the view,
// for API consumers and other processes.
type SnapshotMirror interface {
	Save(ctx context.Context, p *models.StatusPayload) error
	Latest(ctx context.Context) (*models.StatusPayload, error)
}

type Metrics interface {
	RecordFetch(result string)
	RecordError(kind string)
	RecordLatency(op string, seconds float64)
	RecordSnapshot(current, expected, score float64, recommendations, predictions int)
	SetLoading(loading bool)
}
