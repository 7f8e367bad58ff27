package factory

import (
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/inboxguard/fraud-filter/internal/adapters/metricstore"
	"github.com/inboxguard/fraud-filter/internal/config"
	"github.com/inboxguard/fraud-filter/internal/utils"
)

func testConfig(overrides map[string]interface{}) *config.Config {
	v := config.NewEmptyViper()
	for key, value := range overrides {
		v.Set(key, value)
	}
	return config.NewFromViper(v)
}

func TestCreateScorerHuggingFace(t *testing.T) {
	logger := zap.NewNop()
	factory := NewScorerFactory(testConfig(nil), logger, utils.NewTextProcessor(logger))

	scorer, err := factory.CreateScorer()
	require.NoError(t, err)
	assert.Equal(t, "hf_api", scorer.Name())
}

func TestCreateScorerUnsupportedBackend(t *testing.T) {
	logger := zap.NewNop()
	factory := NewScorerFactory(testConfig(map[string]interface{}{
		"scorer.backend": "carrier-pigeon",
	}), logger, utils.NewTextProcessor(logger))

	_, err := factory.CreateScorer()
	assert.ErrorContains(t, err, "unsupported scorer backend")
}

func TestCreateMetricsRepositoryMemory(t *testing.T) {
	factory := NewStoreFactory(testConfig(nil), zap.NewNop())

	repo, err := factory.CreateMetricsRepository()
	require.NoError(t, err)
	assert.IsType(t, &metricstore.MemoryStore{}, repo)
}

func TestCreateMetricsRepositoryRedis(t *testing.T) {
	mr := miniredis.RunT(t)

	factory := NewStoreFactory(testConfig(map[string]interface{}{
		"metrics.store":      "redis",
		"metrics.redis_addr": mr.Addr(),
	}), zap.NewNop())

	repo, err := factory.CreateMetricsRepository()
	require.NoError(t, err)
	assert.IsType(t, &metricstore.RedisStore{}, repo)
}

func TestCreateMetricsRepositoryUnsupported(t *testing.T) {
	factory := NewStoreFactory(testConfig(map[string]interface{}{
		"metrics.store": "stone-tablet",
	}), zap.NewNop())

	_, err := factory.CreateMetricsRepository()
	assert.ErrorContains(t, err, "unsupported metrics store")
}
