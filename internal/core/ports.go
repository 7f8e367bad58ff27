package core

import (
	"context"
	"errors"
)

// ErrSnapshotNotFound is returned by a MetricsRepository when no snapshot
// exists for the requested user
var ErrSnapshotNotFound = errors.New("metrics snapshot not found")

// Scorer defines the interface for ML suspicion scoring backends
type Scorer interface {
	// Score returns a suspicion probability in [0,1] for the given text
	Score(ctx context.Context, text string) (float64, error)

	// Name identifies the backend in verdict provenance
	Name() string
}

// MetricsRepository defines the interface for per-user metrics snapshots
type MetricsRepository interface {
	// Get retrieves the stored snapshot for a user
	Get(ctx context.Context, userID string) (*UserMetricsSnapshot, error)

	// Put stores a snapshot for a user, replacing any previous one
	Put(ctx context.Context, userID string, snapshot *UserMetricsSnapshot) error

	// Delete removes the snapshot for a user
	Delete(ctx context.Context, userID string) error
}
