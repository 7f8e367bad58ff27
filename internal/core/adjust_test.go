package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAdjusterNoCues(t *testing.T) {
	adjuster := NewAdjuster()

	score, set := adjuster.Adjust(0.3, "lunch at noon works for me")
	assert.Equal(t, 0.3, score)
	assert.Zero(t, set.Boost)
	assert.Empty(t, set.Adjustments)
}

func TestAdjusterSingleBoosts(t *testing.T) {
	adjuster := NewAdjuster()

	tests := []struct {
		name      string
		text      string
		wantBoost float64
		wantLabel string
	}{
		{"urgency", "please reply asap", 0.10, "urgency_detected"},
		{"url", "see http://example.test for details", 0.15, "suspicious_url"},
		{"financial", "the payment is overdue", 0.10, "financial_context"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			score, set := adjuster.Adjust(0.5, tt.text)
			assert.InDelta(t, 0.5+tt.wantBoost, score, 1e-9)
			assert.InDelta(t, tt.wantBoost, set.Boost, 1e-9)
			assert.Equal(t, []string{tt.wantLabel}, set.Adjustments)
		})
	}
}

func TestAdjusterAllCuesCumulative(t *testing.T) {
	adjuster := NewAdjuster()

	score, set := adjuster.Adjust(0.4, "urgent: confirm your bank payment at http://bit.ly/x")
	assert.InDelta(t, 0.75, score, 1e-9)
	assert.InDelta(t, 0.35, set.Boost, 1e-9)
	assert.Len(t, set.Adjustments, 3)
}

func TestAdjusterCapsAtCeiling(t *testing.T) {
	adjuster := NewAdjuster()

	score, set := adjuster.Adjust(0.9, "urgent bank transfer via http://bit.ly/y")
	assert.Equal(t, ScoreCeiling, score)
	assert.InDelta(t, 0.35, set.Boost, 1e-9)
}
