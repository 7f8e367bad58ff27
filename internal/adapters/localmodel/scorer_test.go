package localmodel

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/inboxguard/fraud-filter/internal/utils"
)

func writeModel(t *testing.T, contents string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "model.json")
	require.NoError(t, os.WriteFile(path, []byte(contents), 0o644))
	return path
}

func newTestScorer(t *testing.T, contents string) *Scorer {
	t.Helper()
	logger := zap.NewNop()
	scorer, err := NewScorer(writeModel(t, contents), logger, utils.NewTextProcessor(logger))
	require.NoError(t, err)
	return scorer
}

func TestNewScorerMissingFile(t *testing.T) {
	logger := zap.NewNop()
	_, err := NewScorer("/nonexistent/model.json", logger, utils.NewTextProcessor(logger))
	assert.Error(t, err)
}

func TestNewScorerInvalidJSON(t *testing.T) {
	logger := zap.NewNop()
	_, err := NewScorer(writeModel(t, "{not json"), logger, utils.NewTextProcessor(logger))
	assert.Error(t, err)
}

func TestNewScorerNoWeights(t *testing.T) {
	logger := zap.NewNop()
	_, err := NewScorer(writeModel(t, `{"bias": 0.0}`), logger, utils.NewTextProcessor(logger))
	assert.Error(t, err)
}

func TestScoreWeightedTokens(t *testing.T) {
	scorer := newTestScorer(t, `{"bias": -1.0, "weights": {"refund": 2.0, "invoice": 1.5}}`)

	neutral, err := scorer.Score(context.Background(), "see you at the meeting")
	require.NoError(t, err)

	loaded, err := scorer.Score(context.Background(), "your refund invoice is ready")
	require.NoError(t, err)

	assert.Less(t, neutral, 0.5)
	assert.Greater(t, loaded, 0.5)
	assert.Greater(t, loaded, neutral)
}

func TestScoreDistinctTokensOnly(t *testing.T) {
	scorer := newTestScorer(t, `{"bias": 0.0, "weights": {"refund": 1.0}}`)

	once, err := scorer.Score(context.Background(), "refund")
	require.NoError(t, err)

	repeated, err := scorer.Score(context.Background(), "refund refund refund")
	require.NoError(t, err)

	assert.Equal(t, once, repeated)
}

func TestScoreNormalizesCaseAndPunctuation(t *testing.T) {
	scorer := newTestScorer(t, `{"bias": 0.0, "weights": {"refund": 1.0}}`)

	plain, err := scorer.Score(context.Background(), "refund")
	require.NoError(t, err)

	decorated, err := scorer.Score(context.Background(), "REFUND!!")
	require.NoError(t, err)

	assert.Equal(t, plain, decorated)
}

func TestSigmoid(t *testing.T) {
	assert.InDelta(t, 0.5, sigmoid(0), 1e-9)
	assert.Greater(t, sigmoid(4), 0.9)
	assert.Less(t, sigmoid(-4), 0.1)
}
