package metricstore

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	_ "github.com/go-sql-driver/mysql"
	"github.com/inboxguard/fraud-filter/internal/core"
	"go.uber.org/zap"
)

// MySQLStore is a MySQL implementation of the MetricsRepository interface
type MySQLStore struct {
	db     *sql.DB
	logger *zap.Logger
}

// NewMySQLStore creates a new MySQL metrics store
func NewMySQLStore(dsn string, logger *zap.Logger) (*MySQLStore, error) {
	db, err := sql.Open("mysql", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open MySQL connection: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping MySQL: %w", err)
	}

	_, err = db.Exec(`
		CREATE TABLE IF NOT EXISTS user_metrics (
			user_id VARCHAR(255) PRIMARY KEY,
			snapshot JSON NOT NULL
		)
	`)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create table: %w", err)
	}

	return &MySQLStore{
		db:     db,
		logger: logger,
	}, nil
}

// Get retrieves the stored snapshot for a user
func (s *MySQLStore) Get(ctx context.Context, userID string) (*core.UserMetricsSnapshot, error) {
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
func (s *MySQLStore) Put(ctx context.Context, userID string, snapshot *core.UserMetricsSnapshot) error {
	raw, err := json.Marshal(snapshot)
	if err != nil {
		return fmt.Errorf("failed to encode snapshot: %w", err)
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO user_metrics (user_id, snapshot) VALUES (?, ?)
		ON DUPLICATE KEY UPDATE snapshot = VALUES(snapshot)
	`, userID, string(raw))
	if err != nil {
		return fmt.Errorf("failed to store snapshot: %w", err)
	}

	s.logger.Debug("Stored metrics snapshot", zap.String("user", userID))
	return nil
}

// Delete removes the snapshot for a user
func (s *MySQLStore) Delete(ctx context.Context, userID string) error {
	_, err := s.db.ExecContext(ctx, `DELETE FROM user_metrics WHERE user_id = ?`, userID)
	if err != nil {
		return fmt.Errorf("failed to delete snapshot: %w", err)
	}
	return nil
}

// Close closes the underlying database
func (s *MySQLStore) Close() error {
	return s.db.Close()
}
