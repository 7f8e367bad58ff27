package core

import (
	"context"
	"math"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// ClassifierService sequences the decision pipeline: rule engine first,
// short-circuiting on a match, otherwise ML scorer plus post-processing.
// Every call is stateless and independent; retry policy, if any, belongs
// to the scorer's transport.
type ClassifierService struct {
	rules      *RuleEngine
	scorer     Scorer
	adjuster   *Adjuster
	aggregator *MetricsAggregator
	metrics    MetricsRepository
	logger     *zap.Logger
	threshold  float64
}

// NewClassifierService creates a new classifier service
func NewClassifierService(
	rules *RuleEngine,
	scorer Scorer,
	adjuster *Adjuster,
	aggregator *MetricsAggregator,
	metrics MetricsRepository,
	logger *zap.Logger,
	threshold float64,
) *ClassifierService {
	return &ClassifierService{
		rules:      rules,
		scorer:     scorer,
		adjuster:   adjuster,
		aggregator: aggregator,
		metrics:    metrics,
		logger:     logger,
		threshold:  threshold,
	}
}

// Threshold returns the suspicion-score cut point above which a verdict
// is Suspicious
func (s *ClassifierService) Threshold() float64 {
	return s.threshold
}

// Classify runs the full pipeline for one text and returns a Verdict.
// Scorer failures degrade to the neutral 0.5 score and never surface as
// errors; obvious fraud never reaches the scorer at all.
func (s *ClassifierService) Classify(ctx context.Context, text string) *Verdict {
	if match, ok := s.rules.Evaluate(text); ok {
		s.logger.Info("Rule-based detection",
			zap.Float64("score", match.Score),
			zap.Strings("triggered_rules", match.TriggeredRules))

		return &Verdict{
			SuspicionScore: match.Score,
			Prediction:     PredictionSuspicious,
			Method:         "rule_based",
			Details: map[string]interface{}{
				"triggered_rules": match.TriggeredRules,
			},
		}
	}

	mlScore, err := s.scorer.Score(ctx, text)
	if err != nil {
		// Indeterminate beats unavailable: degrade to neutral
		s.logger.Warn("Scorer backend failed, falling back to neutral score",
			zap.String("backend", s.scorer.Name()),
			zap.Error(err))
		mlScore = 0.5
	}

	mlPrediction := PredictionSafe
	if mlScore > s.threshold {
		mlPrediction = PredictionSuspicious
	}

	finalScore, adjustments := s.adjuster.Adjust(mlScore, text)

	prediction := PredictionSafe
	if finalScore > s.threshold {
		prediction = PredictionSuspicious
	}

	if len(adjustments.Adjustments) > 0 {
		s.logger.Debug("Post-processing adjustments applied",
			zap.Strings("adjustments", adjustments.Adjustments),
			zap.Float64("boost", adjustments.Boost))
	}

	return &Verdict{
		SuspicionScore: finalScore,
		Prediction:     prediction,
		Method:         s.scorer.Name() + "_with_postprocessing",
		Details: map[string]interface{}{
			"ml_score":      mlScore,
			"ml_prediction": string(mlPrediction),
			"adjustments":   adjustments.Adjustments,
			"boost_applied": adjustments.Boost,
		},
	}
}

// AnalyzeBatch classifies every item for a user, updates the user's
// metrics snapshot and returns per-item summaries. One bad item never
// fails the batch: it degrades to a low-suspicion placeholder. A metrics
// store failure is logged and the summaries are still returned.
func (s *ClassifierService) AnalyzeBatch(ctx context.Context, userID string, items []EmailItem) []ItemSummary {
	batchID := uuid.NewString()
	s.logger.Info("Analyzing batch",
		zap.String("batch_id", batchID),
		zap.String("user", userID),
		zap.Int("items", len(items)))

	summaries := make([]ItemSummary, 0, len(items))
	analyzed := make([]AnalyzedItem, 0, len(items))

	for _, item := range items {
		if item.Body == "" {
			continue
		}

		verdict := s.classifyItem(ctx, item.Body)

		summaries = append(summaries, ItemSummary{
			ID:             item.ID,
			SuspicionScore: round3(verdict.SuspicionScore),
			Sentiment:      SentimentFor(verdict.SuspicionScore),
			Prediction:     string(verdict.Prediction),
		})
		analyzed = append(analyzed, AnalyzedItem{Item: item, Verdict: *verdict})
	}

	snapshot, ok := s.aggregator.Aggregate(analyzed)
	if !ok {
		s.logger.Info("No items analyzed, skipping metrics update",
			zap.String("batch_id", batchID),
			zap.String("user", userID))
		return summaries
	}

	now := time.Now()
	snapshot.LastUpdated = &now
	if err := s.metrics.Put(ctx, userID, snapshot); err != nil {
		s.logger.Error("Failed to store metrics snapshot",
			zap.String("batch_id", batchID),
			zap.String("user", userID),
			zap.Error(err))
	}

	return summaries
}

// classifyItem shields the batch from a single item's failure
func (s *ClassifierService) classifyItem(ctx context.Context, body string) (verdict *Verdict) {
	defer func() {
		if r := recover(); r != nil {
			s.logger.Error("Item classification failed, using safe placeholder", zap.Any("cause", r))
			verdict = &Verdict{
				SuspicionScore: 0.1,
				Prediction:     PredictionSafe,
				Method:         "placeholder",
				Details:        map[string]interface{}{},
			}
		}
	}()

	return s.Classify(ctx, body)
}

func round3(v float64) float64 {
	return math.Round(v*1000) / 1000
}
