package factory

import (
	"fmt"

	"github.com/inboxguard/fraud-filter/internal/adapters/httpapi"
	"github.com/inboxguard/fraud-filter/internal/config"
	"github.com/inboxguard/fraud-filter/internal/core"
	"github.com/inboxguard/fraud-filter/internal/ports"
	"go.uber.org/zap"
)

// ServerFactory creates the HTTP API server
type ServerFactory struct {
	cfg    *config.Config
	logger *zap.Logger
}

// NewServerFactory creates a new server factory
func NewServerFactory(cfg *config.Config, logger *zap.Logger) *ServerFactory {
	return &ServerFactory{
		cfg:    cfg,
		logger: logger,
	}
}

// CreateAPIServer creates the API server from the configuration
func (f *ServerFactory) CreateAPIServer(
	service *core.ClassifierService,
	metrics core.MetricsRepository,
) (ports.APIServer, error) {
	requestTimeout, err := f.cfg.GetDuration("server.request_timeout")
	if err != nil {
		return nil, fmt.Errorf("invalid server request timeout: %w", err)
	}

	return httpapi.NewServer(
		service,
		metrics,
		f.logger,
		f.cfg.GetString("server.listen_address"),
		f.cfg.GetStringSlice("server.cors_allowed_origins"),
		requestTimeout,
	), nil
}
