package factory

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/inboxguard/fraud-filter/internal/adapters/metricstore"
	"github.com/inboxguard/fraud-filter/internal/config"
	"github.com/inboxguard/fraud-filter/internal/core"
	"go.uber.org/zap"
)

// StoreFactory creates metrics repositories based on configuration
type StoreFactory struct {
	cfg    *config.Config
	logger *zap.Logger
}

// NewStoreFactory creates a new store factory
func NewStoreFactory(cfg *config.Config, logger *zap.Logger) *StoreFactory {
	return &StoreFactory{
		cfg:    cfg,
		logger: logger,
	}
}

// CreateMetricsRepository creates a metrics repository based on the
// configuration
func (f *StoreFactory) CreateMetricsRepository() (core.MetricsRepository, error) {
	storeType := f.cfg.GetString("metrics.store")

	switch storeType {
	case "memory":
		return metricstore.NewMemoryStore(f.logger), nil
	case "sqlite":
		sqlitePath := f.cfg.GetString("metrics.sqlite_path")
		if err := os.MkdirAll(filepath.Dir(sqlitePath), 0755); err != nil {
			return nil, fmt.Errorf("failed to create SQLite directory: %w", err)
		}
		return metricstore.NewSQLiteStore(sqlitePath, f.logger)
	case "mysql":
		mysqlDSN := f.cfg.GetString("metrics.mysql_dsn")
		return metricstore.NewMySQLStore(mysqlDSN, f.logger)
	case "redis":
		return metricstore.NewRedisStore(
			context.Background(),
			f.cfg.GetString("metrics.redis_addr"),
			f.cfg.GetString("metrics.redis_password"),
			f.cfg.GetInt("metrics.redis_db"),
			f.cfg.GetString("metrics.redis_key_prefix"),
			f.logger,
		)
	default:
		return nil, fmt.Errorf("unsupported metrics store: %s", storeType)
	}
}
