package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSentimentFor(t *testing.T) {
	assert.Equal(t, "positive", SentimentFor(0.0))
	assert.Equal(t, "positive", SentimentFor(0.3))
	assert.Equal(t, "neutral", SentimentFor(0.31))
	assert.Equal(t, "neutral", SentimentFor(0.7))
	assert.Equal(t, "negative", SentimentFor(0.71))
	assert.Equal(t, "negative", SentimentFor(0.95))
}

func TestDefaultSnapshot(t *testing.T) {
	snapshot := DefaultSnapshot()

	assert.Zero(t, snapshot.ThreatLevel)
	assert.Equal(t, 100, snapshot.SafePercentage)
	assert.NotNil(t, snapshot.MonthlyBreakdown)
	assert.Empty(t, snapshot.MonthlyBreakdown)
	assert.Len(t, snapshot.ThreatTypes, 4)
	assert.Nil(t, snapshot.LastUpdated)
}
