package metricstore

import (
	"context"
	"sync"

	"github.com/inboxguard/fraud-filter/internal/core"
	"go.uber.org/zap"
)

// MemoryStore is an in-memory implementation of the MetricsRepository
// interface. Snapshots live for the process lifetime.
type MemoryStore struct {
	snapshots map[string]*core.UserMetricsSnapshot
	mu        sync.RWMutex
	logger    *zap.Logger
}

// NewMemoryStore creates a new in-memory metrics store
func NewMemoryStore(logger *zap.Logger) *MemoryStore {
	return &MemoryStore{
		snapshots: make(map[string]*core.UserMetricsSnapshot),
		logger:    logger,
	}
}

// Get retrieves the stored snapshot for a user
func (s *MemoryStore) Get(ctx context.Context, userID string) (*core.UserMetricsSnapshot, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	snapshot, ok := s.snapshots[userID]
	if !ok {
		return nil, core.ErrSnapshotNotFound
	}

	copied := *snapshot
	return &copied, nil
}

// Put stores a snapshot for a user, replacing any previous one
func (s *MemoryStore) Put(ctx context.Context, userID string, snapshot *core.UserMetricsSnapshot) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	copied := *snapshot
	s.snapshots[userID] = &copied

	s.logger.Debug("Stored metrics snapshot", zap.String("user", userID))
	return nil
}

// Delete removes the snapshot for a user
func (s *MemoryStore) Delete(ctx context.Context, userID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.snapshots, userID)
	return nil
}
