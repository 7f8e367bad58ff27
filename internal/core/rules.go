package core

import (
	"fmt"
	"strings"
)

// Scoring increments for each rule class. The engine fires only when the
// accumulated score or rule count crosses ruleFireScore/ruleFireCount;
// anything weaker defers to the ML path.
const (
	phraseIncrement  = 0.35
	keywordIncrement = 0.12
	urlIncrement     = 0.25
	comboIncrement   = 0.2

	ruleFireScore = 0.4
	ruleFireCount = 2
)

// RuleEngine scans normalized text for fraud-indicative phrases and
// produces a high-confidence override score for obvious cases
type RuleEngine struct {
	highRiskPhrases []string
	fraudKeywords   []string
	suspiciousURLs  []string
	urgencyWords    []string
	actionWords     []string
}

// NewRuleEngine creates a rule engine with the built-in rule tables
func NewRuleEngine() *RuleEngine {
	return &RuleEngine{
		highRiskPhrases: []string{
			"account has been suspended",
			"account will be suspended",
			"click here immediately",
			"verify your identity",
			"account has been compromised",
			"urgent action required",
			"suspended due to",
			"verify immediately",
			"click to verify",
			"account locked",
			"update your information",
			"confirm your identity",
			"security alert",
			"unusual activity",
		},
		fraudKeywords: []string{
			"suspended", "verify", "immediately", "urgent", "click here",
			"compromised", "expire", "update", "confirm", "account",
			"security", "locked", "restricted", "action required",
			"unauthorized", "violation", "terminated",
		},
		suspiciousURLs: []string{
			"http://", "bit.ly", "tinyurl", "suspicious-link",
			"phishing", "fake", "temp", "short", ".tk", ".ml",
		},
		urgencyWords: []string{"immediate", "urgent", "now", "asap", "quickly", "soon"},
		actionWords:  []string{"click", "verify", "update", "confirm", "login", "access"},
	}
}

// Evaluate scans the text and returns a RuleMatch when the fraud signals
// are strong enough to bypass the ML path. The second return value is
// false when the engine defers.
func (e *RuleEngine) Evaluate(text string) (*RuleMatch, bool) {
	textLower := strings.ToLower(text)

	var triggered []string
	score := 0.0

	for _, phrase := range e.highRiskPhrases {
		if strings.Contains(textLower, phrase) {
			triggered = append(triggered, fmt.Sprintf("High-risk pattern: %q", phrase))
			score += phraseIncrement
		}
	}

	keywordCount := 0
	for _, keyword := range e.fraudKeywords {
		if strings.Contains(textLower, keyword) {
			keywordCount++
		}
	}
	if keywordCount >= 2 {
		triggered = append(triggered, fmt.Sprintf("Multiple fraud keywords: %d", keywordCount))
		score += float64(keywordCount) * keywordIncrement
	}

	for _, pattern := range e.suspiciousURLs {
		if strings.Contains(textLower, pattern) {
			triggered = append(triggered, fmt.Sprintf("Suspicious URL: %q", pattern))
			score += urlIncrement
		}
	}

	if containsAny(textLower, e.urgencyWords) && containsAny(textLower, e.actionWords) {
		triggered = append(triggered, "Urgency + Action combination")
		score += comboIncrement
	}

	finalScore := min(ScoreCeiling, score)

	if finalScore >= ruleFireScore || len(triggered) >= ruleFireCount {
		return &RuleMatch{TriggeredRules: triggered, Score: finalScore}, true
	}

	return nil, false
}

func containsAny(text string, words []string) bool {
	for _, w := range words {
		if strings.Contains(text, w) {
			return true
		}
	}
	return false
}
