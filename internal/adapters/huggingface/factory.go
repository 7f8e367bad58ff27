package huggingface

import (
	"fmt"

	"github.com/inboxguard/fraud-filter/internal/config"
	"go.uber.org/zap"
)

// Factory creates inference API scorers
type Factory struct {
	cfg    *config.Config
	logger *zap.Logger
}

// NewFactory creates a new Hugging Face factory
func NewFactory(cfg *config.Config, logger *zap.Logger) *Factory {
	return &Factory{
		cfg:    cfg,
		logger: logger,
	}
}

// CreateScorer creates a scorer from the configuration
func (f *Factory) CreateScorer() (*Scorer, error) {
	hfCfg := f.cfg.GetHuggingFace()

	timeout, err := f.cfg.GetDuration("huggingface.timeout")
	if err != nil {
		return nil, fmt.Errorf("invalid huggingface timeout: %w", err)
	}

	return NewScorer(hfCfg.Endpoint, hfCfg.Model, hfCfg.APIToken, timeout, f.logger), nil
}
