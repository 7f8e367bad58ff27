package metricstore

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/inboxguard/fraud-filter/internal/core"
	_ "github.com/mattn/go-sqlite3"
	"go.uber.org/zap"
)

// SQLiteStore is a SQLite implementation of the MetricsRepository
// interface. Each user has exactly one row; writes replace it.
type SQLiteStore struct {
	db     *sql.DB
	logger *zap.Logger
}

// NewSQLiteStore creates a new SQLite metrics store
func NewSQLiteStore(dbPath string, logger *zap.Logger) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open SQLite database: %w", err)
	}

	_, err = db.Exec(`
		CREATE TABLE IF NOT EXISTS user_metrics (
			user_id TEXT PRIMARY KEY,
			snapshot TEXT NOT NULL
		)
	`)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create table: %w", err)
	}

	return &SQLiteStore{
		db:     db,
		logger: logger,
	}, nil
}

// Get retrieves the stored snapshot for a user
func (s *SQLiteStore) Get(ctx context.Context, userID string) (*core.UserMetricsSnapshot, error) {
	var raw string
	err := s.db.QueryRowContext(ctx, `
		SELECT snapshot FROM user_metrics WHERE user_id = ?
	`, userID).Scan(&raw)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, core.ErrSnapshotNotFound
		}
		return nil, fmt.Errorf("failed to query snapshot: %w", err)
	}

	var snapshot core.UserMetricsSnapshot
	if err := json.Unmarshal([]byte(raw), &snapshot); err != nil {
		return nil, fmt.Errorf("failed to decode snapshot: %w", err)
	}

	return &snapshot, nil
}

// Put stores a snapshot for a user, replacing any previous one
func (s *SQLiteStore) Put(ctx context.Context, userID string, snapshot *core.UserMetricsSnapshot) error {
	raw, err := json.Marshal(snapshot)
	if err != nil {
		return fmt.Errorf("failed to encode snapshot: %w", err)
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO user_metrics (user_id, snapshot) VALUES (?, ?)
		ON CONFLICT(user_id) DO UPDATE SET snapshot = excluded.snapshot
	`, userID, string(raw))
	if err != nil {
		return fmt.Errorf("failed to store snapshot: %w", err)
	}

	s.logger.Debug("Stored metrics snapshot", zap.String("user", userID))
	return nil
}

// Delete removes the snapshot for a user
func (s *SQLiteStore) Delete(ctx context.Context, userID string) error {
	_, err := s.db.ExecContext(ctx, `DELETE FROM user_metrics WHERE user_id = ?`, userID)
	if err != nil {
		return fmt.Errorf("failed to delete snapshot: %w", err)
	}
	return nil
}

// Close closes the underlying database
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}
