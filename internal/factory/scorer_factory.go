package factory

import (
	"fmt"

	"github.com/inboxguard/fraud-filter/internal/adapters/bedrock"
	"github.com/inboxguard/fraud-filter/internal/adapters/gemini"
	"github.com/inboxguard/fraud-filter/internal/adapters/huggingface"
	"github.com/inboxguard/fraud-filter/internal/adapters/localmodel"
	"github.com/inboxguard/fraud-filter/internal/adapters/openai"
	"github.com/inboxguard/fraud-filter/internal/config"
	"github.com/inboxguard/fraud-filter/internal/core"
	"github.com/inboxguard/fraud-filter/internal/utils"
	"go.uber.org/zap"
)

// ScorerFactory creates the ML scorer backend selected by configuration.
// The backend is chosen once at process start, not per call.
type ScorerFactory struct {
	cfg           *config.Config
	logger        *zap.Logger
	textProcessor *utils.TextProcessor
}

// NewScorerFactory creates a new scorer factory
func NewScorerFactory(cfg *config.Config, logger *zap.Logger, textProcessor *utils.TextProcessor) *ScorerFactory {
	return &ScorerFactory{
		cfg:           cfg,
		logger:        logger,
		textProcessor: textProcessor,
	}
}

// CreateScorer creates the configured scorer backend
func (f *ScorerFactory) CreateScorer() (core.Scorer, error) {
	scorerCfg := f.cfg.GetScorer()

	switch scorerCfg.Backend {
	case "local":
		factory := localmodel.NewFactory(f.cfg, f.logger, f.textProcessor)
		return factory.CreateScorer()
	case "huggingface":
		factory := huggingface.NewFactory(f.cfg, f.logger)
		return factory.CreateScorer()
	case "openai":
		factory := openai.NewFactory(f.cfg, f.logger, f.textProcessor)
		return factory.CreateScorer()
	case "gemini":
		factory := gemini.NewFactory(f.cfg, f.logger, f.textProcessor)
		return factory.CreateScorer()
	case "bedrock":
		factory := bedrock.NewFactory(f.cfg, f.logger, f.textProcessor)
		return factory.CreateScorer()
	default:
		return nil, fmt.Errorf("unsupported scorer backend: %s", scorerCfg.Backend)
	}
}
