package localmodel

import (
	"github.com/inboxguard/fraud-filter/internal/config"
	"github.com/inboxguard/fraud-filter/internal/utils"
	"go.uber.org/zap"
)

// Factory creates local model scorers
type Factory struct {
	cfg           *config.Config
	logger        *zap.Logger
	textProcessor *utils.TextProcessor
}

// NewFactory creates a new local model factory
func NewFactory(cfg *config.Config, logger *zap.Logger, textProcessor *utils.TextProcessor) *Factory {
	return &Factory{
		cfg:           cfg,
		logger:        logger,
		textProcessor: textProcessor,
	}
}

// CreateScorer creates a scorer from the configured weights file
func (f *Factory) CreateScorer() (*Scorer, error) {
	localCfg := f.cfg.GetLocalModel()
	return NewScorer(localCfg.ModelPath, f.logger, f.textProcessor)
}
