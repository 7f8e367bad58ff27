package core

import (
	"time"
)

// Prediction is the final label assigned to a message
type Prediction string

const (
	PredictionSafe       Prediction = "Safe"
	PredictionSuspicious Prediction = "Suspicious"
)

// ScoreCeiling is the maximum suspicion score any scoring path may claim.
// Shared by the rule engine and the post-processing adjuster so that no
// path reports near-certainty.
const ScoreCeiling = 0.95

// Verdict is the classification output for a single message. It is
// constructed only by the ClassifierService and immutable once produced.
type Verdict struct {
	SuspicionScore float64
	Prediction     Prediction
	Method         string
	Details        map[string]interface{}
}

// RuleMatch is the rule engine's intermediate result. It is never exposed
// outside the engine except embedded in Verdict.Details.
type RuleMatch struct {
	TriggeredRules []string
	Score          float64
}

// AdjustmentSet records the post-processing boosts applied to an ML score
type AdjustmentSet struct {
	Adjustments []string
	Boost       float64
}

// EmailItem is a message consumed from the mailbox sync
type EmailItem struct {
	ID   string `json:"id"`
	Body string `json:"body"`
	Date string `json:"date"`
}

// ItemSummary is the per-item result returned for a batch analysis
type ItemSummary struct {
	ID             string  `json:"id"`
	SuspicionScore float64 `json:"suspicion_score"`
	Sentiment      string  `json:"sentiment"`
	Prediction     string  `json:"prediction"`
}

// MonthlyBucket counts detected and safe messages for one month
type MonthlyBucket struct {
	Month    string `json:"month"`
	Detected int    `json:"detected"`
	Safe     int    `json:"safe"`
}

// ThreatType is one slice of the threat-type distribution, as a
// percentage of the suspicious subset
type ThreatType struct {
	Name  string `json:"name"`
	Value int    `json:"value"`
}

// UserMetricsSnapshot is the complete dashboard record for one user.
// Each batch analysis fully replaces the previous snapshot; there is no
// incremental merge.
type UserMetricsSnapshot struct {
	ThreatLevel      int             `json:"threat_level"`
	SafePercentage   int             `json:"safe_percentage"`
	MonthlyBreakdown []MonthlyBucket `json:"monthly_breakdown"`
	ThreatTypes      []ThreatType    `json:"threat_types"`
	LastUpdated      *time.Time      `json:"last_updated"`
}

// DefaultSnapshot returns the snapshot served for a user with no stored
// metrics yet
func DefaultSnapshot() *UserMetricsSnapshot {
	return &UserMetricsSnapshot{
		ThreatLevel:      0,
		SafePercentage:   100,
		MonthlyBreakdown: []MonthlyBucket{},
		ThreatTypes: []ThreatType{
			{Name: "Phishing", Value: 0},
			{Name: "Impersonation", Value: 0},
			{Name: "Malware", Value: 0},
			{Name: "Other", Value: 0},
		},
		LastUpdated: nil,
	}
}

// SentimentFor maps a suspicion score to the sentiment labels exposed by
// the API. The cut points are a public contract of the service.
func SentimentFor(score float64) string {
	switch {
	case score <= 0.3:
		return "positive"
	case score <= 0.7:
		return "neutral"
	default:
		return "negative"
	}
}
