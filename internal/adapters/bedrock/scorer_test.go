package bedrock

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func scorerForModel(modelID string) *Scorer {
	return &Scorer{modelID: modelID, maxTokens: 100, temperature: 0.1, topP: 0.9}
}

func TestBuildPayloadClaude(t *testing.T) {
	payload, err := scorerForModel("anthropic.claude-v2").buildPayload("hello")
	require.NoError(t, err)

	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(payload, &body))
	assert.Equal(t, "hello", body["prompt"])
	assert.Contains(t, body, "max_tokens_to_sample")
}

func TestBuildPayloadTitan(t *testing.T) {
	payload, err := scorerForModel("amazon.titan-text-express-v1").buildPayload("hello")
	require.NoError(t, err)

	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(payload, &body))
	assert.Equal(t, "hello", body["inputText"])
	assert.Contains(t, body, "textGenerationConfig")
}

func TestBuildPayloadGeneric(t *testing.T) {
	payload, err := scorerForModel("meta.llama2-13b").buildPayload("hello")
	require.NoError(t, err)

	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(payload, &body))
	assert.Equal(t, "hello", body["prompt"])
	assert.Contains(t, body, "max_tokens")
}

func TestExtractResponseTextClaude(t *testing.T) {
	text, err := scorerForModel("anthropic.claude-v2").
		extractResponseText([]byte(`{"completion": "the answer"}`))
	require.NoError(t, err)
	assert.Equal(t, "the answer", text)
}

func TestExtractResponseTextTitan(t *testing.T) {
	scorer := scorerForModel("amazon.titan-text-express-v1")

	text, err := scorer.extractResponseText([]byte(`{"results": [{"outputText": "the answer"}]}`))
	require.NoError(t, err)
	assert.Equal(t, "the answer", text)

	_, err = scorer.extractResponseText([]byte(`{"results": []}`))
	assert.ErrorContains(t, err, "empty response")
}

func TestExtractResponseTextGeneric(t *testing.T) {
	scorer := scorerForModel("meta.llama2-13b")

	text, err := scorer.extractResponseText([]byte(`{"output": "the answer"}`))
	require.NoError(t, err)
	assert.Equal(t, "the answer", text)

	// Unrecognized envelope falls back to the raw body
	raw := `{"unexpected": true}`
	text, err = scorer.extractResponseText([]byte(raw))
	require.NoError(t, err)
	assert.Equal(t, raw, text)
}
