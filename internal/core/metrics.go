package core

import (
	"math"
	"time"

	"go.uber.org/zap"
)

// AnalyzedItem pairs a source item with its verdict for aggregation
type AnalyzedItem struct {
	Item    EmailItem
	Verdict Verdict
}

// Item dates arrive in whatever format the mailbox sync produced; each
// layout is tried in order and total failure falls back to "now".
var dateLayouts = []string{
	"2006-01-02T15:04:05.000Z",
	"01/02/2006, 03:04:05 PM",
	"01/02/2006, 03:04 PM",
}

// MetricsAggregator turns a batch of verdicts into a dashboard snapshot
type MetricsAggregator struct {
	logger *zap.Logger
	now    func() time.Time
}

// NewMetricsAggregator creates a new metrics aggregator
func NewMetricsAggregator(logger *zap.Logger) *MetricsAggregator {
	return &MetricsAggregator{
		logger: logger,
		now:    time.Now,
	}
}

// Aggregate computes the snapshot for one batch. The second return value
// is false when nothing was analyzed, in which case no snapshot should be
// written.
func (a *MetricsAggregator) Aggregate(items []AnalyzedItem) (*UserMetricsSnapshot, bool) {
	total := len(items)
	if total == 0 {
		return nil, false
	}

	suspicious := 0
	for _, it := range items {
		if it.Verdict.Prediction == PredictionSuspicious {
			suspicious++
		}
	}

	threatLevel := int(math.Round(float64(suspicious) / float64(total) * 100))

	return &UserMetricsSnapshot{
		ThreatLevel:      threatLevel,
		SafePercentage:   100 - threatLevel,
		MonthlyBreakdown: a.monthlyBreakdown(items),
		ThreatTypes:      threatTypes(items),
	}, true
}

// monthlyBreakdown buckets items by three-letter month abbreviation.
// Buckets appear in first-seen order, not chronological order.
func (a *MetricsAggregator) monthlyBreakdown(items []AnalyzedItem) []MonthlyBucket {
	index := make(map[string]int)
	buckets := make([]MonthlyBucket, 0)

	for _, it := range items {
		month := a.parseDate(it.Item.Date).Format("Jan")

		i, ok := index[month]
		if !ok {
			i = len(buckets)
			index[month] = i
			buckets = append(buckets, MonthlyBucket{Month: month})
		}

		if it.Verdict.Prediction == PredictionSuspicious {
			buckets[i].Detected++
		} else {
			buckets[i].Safe++
		}
	}

	return buckets
}

// parseDate tries each known layout in order, falling back to the current
// time so that one unparseable date never aborts a batch
func (a *MetricsAggregator) parseDate(value string) time.Time {
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, value); err == nil {
			return t
		}
	}

	a.logger.Debug("Unparseable item date, using current time", zap.String("date", value))
	return a.now()
}

// threatTypes classifies suspicious items into four buckets purely by
// score and converts counts to percentages of the suspicious subset.
// Each value is rounded independently so the four need not sum to 100.
func threatTypes(items []AnalyzedItem) []ThreatType {
	var phishing, impersonation, malware, other int

	suspicious := 0
	for _, it := range items {
		if it.Verdict.Prediction != PredictionSuspicious {
			continue
		}
		suspicious++

		switch score := it.Verdict.SuspicionScore; {
		case score > 0.8:
			phishing++
		case score > 0.6:
			impersonation++
		case score > 0.4:
			malware++
		default:
			other++
		}
	}

	pct := func(count int) int {
		if suspicious == 0 {
			return 0
		}
		return int(math.Round(float64(count) / float64(suspicious) * 100))
	}

	return []ThreatType{
		{Name: "Phishing", Value: pct(phishing)},
		{Name: "Impersonation", Value: pct(impersonation)},
		{Name: "Malware", Value: pct(malware)},
		{Name: "Other", Value: pct(other)},
	}
}
