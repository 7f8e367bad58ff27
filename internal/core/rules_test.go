package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRuleEngineObviousFraud(t *testing.T) {
	engine := NewRuleEngine()

	match, ok := engine.Evaluate("Your account has been suspended. Click here immediately to verify your identity.")
	require.True(t, ok)
	require.NotNil(t, match)

	assert.GreaterOrEqual(t, match.Score, 0.4)
	assert.LessOrEqual(t, match.Score, ScoreCeiling)
	assert.GreaterOrEqual(t, len(match.TriggeredRules), 3)
}

func TestRuleEngineBenignText(t *testing.T) {
	engine := NewRuleEngine()

	match, ok := engine.Evaluate("Team meeting scheduled for tomorrow at 10 AM.")
	assert.False(t, ok)
	assert.Nil(t, match)
}

func TestRuleEngineTwoPhrasesFire(t *testing.T) {
	engine := NewRuleEngine()

	// Two high-risk phrases always fire regardless of accumulated score
	match, ok := engine.Evaluate("security alert: unusual activity detected")
	require.True(t, ok)
	assert.GreaterOrEqual(t, len(match.TriggeredRules), 2)
}

func TestRuleEngineScoreCapped(t *testing.T) {
	engine := NewRuleEngine()

	text := "URGENT action required: your account has been suspended due to unusual activity. " +
		"Click here immediately to verify your identity at http://bit.ly/fake-login. " +
		"Confirm your identity now or your account will be terminated."

	match, ok := engine.Evaluate(text)
	require.True(t, ok)
	assert.Equal(t, ScoreCeiling, match.Score)
}

func TestRuleEngineCaseInsensitive(t *testing.T) {
	engine := NewRuleEngine()

	lower, okLower := engine.Evaluate("your account has been suspended, verify your identity")
	upper, okUpper := engine.Evaluate("YOUR ACCOUNT HAS BEEN SUSPENDED, VERIFY YOUR IDENTITY")
	require.True(t, okLower)
	require.True(t, okUpper)
	assert.Equal(t, lower.Score, upper.Score)
}

func TestRuleEngineURLPatterns(t *testing.T) {
	engine := NewRuleEngine()

	// A shortened link plus a raw http URL contribute two rule hits
	match, ok := engine.Evaluate("check this out http://tinyurl.example/abc")
	require.True(t, ok)
	assert.GreaterOrEqual(t, len(match.TriggeredRules), 2)
}
