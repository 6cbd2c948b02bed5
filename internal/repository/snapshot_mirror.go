package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"EnergyOptimizer/internal/domain/models"
	"EnergyOptimizer/internal/domain/repository"
	"EnergyOptimizer/pkg/cache"
)

const latestSnapshotKey = "status:latest"

// ErrNoSnapshot is returned by Latest before any fetch has succeeded.
var ErrNoSnapshot = errors.New("no status snapshot yet")

// CacheSnapshotMirror stores the last payload in a cache.Service, so the
// latest status survives in Redis for other readers when it is configured.
type CacheSnapshotMirror struct {
	cache cache.Service
	ttl   time.Duration
}

var _ repository.SnapshotMirror = (*CacheSnapshotMirror)(nil)

func NewCacheSnapshotMirror(c cache.Service, ttl time.Duration) *CacheSnapshotMirror {
	return &CacheSnapshotMirror{cache: c, ttl: ttl}
}

func (m *CacheSnapshotMirror) Save(ctx context.Context, p *models.StatusPayload) error {
	if p == nil {
		return nil
	}
	if err := cache.SetJSON(ctx, m.cache, latestSnapshotKey, p, m.ttl); err != nil {
		return fmt.Errorf("save snapshot: %w", err)
	}
	return nil
}

func (m *CacheSnapshotMirror) Latest(ctx context.Context) (*models.StatusPayload, error) {
	p, err := cache.GetJSON[models.StatusPayload](ctx, m.cache, latestSnapshotKey)
	if err != nil {
		if errors.Is(err, cache.ErrCacheMiss) {
			return nil, ErrNoSnapshot
		}
		return nil, fmt.Errorf("load snapshot: %w", err)
	}
	return &p, nil
}
