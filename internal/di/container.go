package di

import (
	"go.uber.org/dig"

	"github.com/inboxguard/fraud-filter/internal/config"
	"github.com/inboxguard/fraud-filter/internal/core"
	"github.com/inboxguard/fraud-filter/internal/factory"
	"github.com/inboxguard/fraud-filter/internal/logging"
	"github.com/inboxguard/fraud-filter/internal/ports"
	"github.com/inboxguard/fraud-filter/internal/utils"
)

// BuildContainer creates and configures a dependency injection container
func BuildContainer() (*dig.Container, error) {
	container := dig.New()

	// Register configuration
	if err := container.Provide(config.New); err != nil {
		return nil, err
	}

	// Register logger
	if err := container.Provide(logging.InitLogger); err != nil {
		return nil, err
	}

	// Register factories
	if err := container.Provide(factory.NewTextProcessorFactory); err != nil {
		return nil, err
	}
	if err := container.Provide(factory.NewScorerFactory); err != nil {
		return nil, err
	}
	if err := container.Provide(factory.NewStoreFactory); err != nil {
		return nil, err
	}
	if err := container.Provide(factory.NewServerFactory); err != nil {
		return nil, err
	}

	// Register text processor
	if err := container.Provide(func(f *factory.TextProcessorFactory) *utils.TextProcessor {
		return f.CreateTextProcessor()
	}); err != nil {
		return nil, err
	}

	// Register scorer backend
	if err := container.Provide(func(f *factory.ScorerFactory) (core.Scorer, error) {
		return f.CreateScorer()
	}); err != nil {
		return nil, err
	}

	// Register metrics repository
	if err := container.Provide(func(f *factory.StoreFactory) (core.MetricsRepository, error) {
		return f.CreateMetricsRepository()
	}); err != nil {
		return nil, err
	}

	// Register pipeline components
	if err := container.Provide(core.NewRuleEngine); err != nil {
		return nil, err
	}
	if err := container.Provide(core.NewAdjuster); err != nil {
		return nil, err
	}
	if err := container.Provide(core.NewMetricsAggregator); err != nil {
		return nil, err
	}

	// Register classification threshold
	if err := container.Provide(func(cfg *config.Config) float64 {
		return cfg.GetFloat64("classifier.threshold")
	}); err != nil {
		return nil, err
	}

	// Register classifier service
	if err := container.Provide(core.NewClassifierService); err != nil {
		return nil, err
	}

	// Register API server
	if err := container.Provide(func(
		f *factory.ServerFactory,
		service *core.ClassifierService,
		metrics core.MetricsRepository,
	) (ports.APIServer, error) {
		return f.CreateAPIServer(service, metrics)
	}); err != nil {
		return nil, err
	}

	return container, nil
}
