package core

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func analyzedItem(date string, prediction Prediction, score float64) AnalyzedItem {
	return AnalyzedItem{
		Item:    EmailItem{ID: "x", Body: "body", Date: date},
		Verdict: Verdict{SuspicionScore: score, Prediction: prediction},
	}
}

func TestAggregateEmptyBatch(t *testing.T) {
	aggregator := NewMetricsAggregator(zap.NewNop())

	snapshot, ok := aggregator.Aggregate(nil)
	assert.False(t, ok)
	assert.Nil(t, snapshot)
}

func TestAggregatePercentagesSumToHundred(t *testing.T) {
	aggregator := NewMetricsAggregator(zap.NewNop())

	items := []AnalyzedItem{
		analyzedItem("2025-01-07T10:30:00.000Z", PredictionSuspicious, 0.9),
		analyzedItem("2025-01-08T10:30:00.000Z", PredictionSafe, 0.1),
		analyzedItem("2025-01-09T10:30:00.000Z", PredictionSafe, 0.2),
	}

	snapshot, ok := aggregator.Aggregate(items)
	require.True(t, ok)
	assert.Equal(t, 33, snapshot.ThreatLevel)
	assert.Equal(t, 67, snapshot.SafePercentage)
	assert.Equal(t, 100, snapshot.ThreatLevel+snapshot.SafePercentage)
	assert.Nil(t, snapshot.LastUpdated)
}

func TestAggregateMonthlyFirstSeenOrder(t *testing.T) {
	aggregator := NewMetricsAggregator(zap.NewNop())

	items := []AnalyzedItem{
		analyzedItem("2025-03-15T10:30:00.000Z", PredictionSuspicious, 0.9),
		analyzedItem("2025-01-07T10:30:00.000Z", PredictionSafe, 0.1),
		analyzedItem("2025-03-20T11:00:00.000Z", PredictionSafe, 0.2),
	}

	snapshot, ok := aggregator.Aggregate(items)
	require.True(t, ok)
	require.Len(t, snapshot.MonthlyBreakdown, 2)
	assert.Equal(t, MonthlyBucket{Month: "Mar", Detected: 1, Safe: 1}, snapshot.MonthlyBreakdown[0])
	assert.Equal(t, MonthlyBucket{Month: "Jan", Detected: 0, Safe: 1}, snapshot.MonthlyBreakdown[1])
}

func TestParseDateLayouts(t *testing.T) {
	aggregator := NewMetricsAggregator(zap.NewNop())

	tests := []struct {
		value string
		month time.Month
	}{
		{"2025-01-07T10:30:00.000Z", time.January},
		{"03/15/2025, 02:30:45 PM", time.March},
		{"07/04/2025, 09:15 AM", time.July},
	}

	for _, tt := range tests {
		parsed := aggregator.parseDate(tt.value)
		assert.Equal(t, tt.month, parsed.Month(), "date %q", tt.value)
	}
}

func TestParseDateFallsBackToNow(t *testing.T) {
	aggregator := NewMetricsAggregator(zap.NewNop())
	fixed := time.Date(2025, time.June, 1, 12, 0, 0, 0, time.UTC)
	aggregator.now = func() time.Time { return fixed }

	assert.Equal(t, fixed, aggregator.parseDate("not a date"))
	assert.Equal(t, fixed, aggregator.parseDate(""))
}

func TestThreatTypeDistribution(t *testing.T) {
	aggregator := NewMetricsAggregator(zap.NewNop())

	items := []AnalyzedItem{
		analyzedItem("2025-01-07T10:30:00.000Z", PredictionSuspicious, 0.9),
		analyzedItem("2025-01-07T10:30:00.000Z", PredictionSuspicious, 0.65),
		analyzedItem("2025-01-07T10:30:00.000Z", PredictionSuspicious, 0.45),
		analyzedItem("2025-01-07T10:30:00.000Z", PredictionSuspicious, 0.3),
		analyzedItem("2025-01-07T10:30:00.000Z", PredictionSafe, 0.1),
	}

	snapshot, ok := aggregator.Aggregate(items)
	require.True(t, ok)
	assert.Equal(t, []ThreatType{
		{Name: "Phishing", Value: 25},
		{Name: "Impersonation", Value: 25},
		{Name: "Malware", Value: 25},
		{Name: "Other", Value: 25},
	}, snapshot.ThreatTypes)
}

func TestThreatTypesNoSuspicious(t *testing.T) {
	aggregator := NewMetricsAggregator(zap.NewNop())

	items := []AnalyzedItem{
		analyzedItem("2025-01-07T10:30:00.000Z", PredictionSafe, 0.1),
		analyzedItem("2025-01-07T10:30:00.000Z", PredictionSafe, 0.2),
	}

	snapshot, ok := aggregator.Aggregate(items)
	require.True(t, ok)
	require.Len(t, snapshot.ThreatTypes, 4)
	for _, threat := range snapshot.ThreatTypes {
		assert.Zero(t, threat.Value)
	}
}

func TestThreatTypeBoundaries(t *testing.T) {
	aggregator := NewMetricsAggregator(zap.NewNop())

	// Boundary scores fall into the lower bucket
	items := []AnalyzedItem{
		analyzedItem("2025-01-07T10:30:00.000Z", PredictionSuspicious, 0.8),
		analyzedItem("2025-01-07T10:30:00.000Z", PredictionSuspicious, 0.6),
		analyzedItem("2025-01-07T10:30:00.000Z", PredictionSuspicious, 0.4),
	}

	snapshot, ok := aggregator.Aggregate(items)
	require.True(t, ok)
	assert.Equal(t, []ThreatType{
		{Name: "Phishing", Value: 0},
		{Name: "Impersonation", Value: 33},
		{Name: "Malware", Value: 33},
		{Name: "Other", Value: 33},
	}, snapshot.ThreatTypes)
}
