package core

import (
	"strings"
)

// Boost values applied on top of the ML score. Boosts are independent and
// cumulative; the summed result is still capped at ScoreCeiling.
const (
	urgencyBoost   = 0.10
	urlBoost       = 0.15
	financialBoost = 0.10
)

var (
	adjustUrgencyWords   = []string{"urgent", "immediate", "asap", "quickly"}
	adjustSuspiciousURLs = []string{"bit.ly", "tinyurl", "http://"}
	adjustFinancialTerms = []string{"bank", "account", "payment", "credit card"}
)

// Adjuster applies additive heuristic boosts to an ML score based on
// contextual cues the model may have underweighted
type Adjuster struct{}

// NewAdjuster creates a post-processing adjuster
func NewAdjuster() *Adjuster {
	return &Adjuster{}
}

// Adjust boosts the ML score for urgency language, suspicious URLs and
// financial context, returning the capped final score and the applied
// adjustments for provenance
func (a *Adjuster) Adjust(mlScore float64, text string) (float64, AdjustmentSet) {
	textLower := strings.ToLower(text)

	set := AdjustmentSet{Adjustments: []string{}}

	if containsAny(textLower, adjustUrgencyWords) {
		set.Boost += urgencyBoost
		set.Adjustments = append(set.Adjustments, "urgency_detected")
	}
	if containsAny(textLower, adjustSuspiciousURLs) {
		set.Boost += urlBoost
		set.Adjustments = append(set.Adjustments, "suspicious_url")
	}
	if containsAny(textLower, adjustFinancialTerms) {
		set.Boost += financialBoost
		set.Adjustments = append(set.Adjustments, "financial_context")
	}

	return min(ScoreCeiling, mlScore+set.Boost), set
}
