package bedrock

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/bedrockruntime"
	"github.com/inboxguard/fraud-filter/internal/utils"
	"go.uber.org/zap"
)

// Scorer is an LLM-backed suspicion scorer using Amazon Bedrock
type Scorer struct {
	client        *bedrockruntime.Client
	modelID       string
	maxTokens     int
	temperature   float32
	topP          float32
	maxBodySize   int
	logger        *zap.Logger
	promptFormat  string
	textProcessor *utils.TextProcessor
}

// suspicionResponse is the structured response requested from the LLM
type suspicionResponse struct {
	SuspicionScore float64 `json:"suspicion_score"`
	Reason         string  `json:"reason"`
}

// NewScorer creates a new Bedrock scorer
func NewScorer(
	client *bedrockruntime.Client,
	modelID string,
	maxTokens int,
	temperature float32,
	topP float32,
	maxBodySize int,
	logger *zap.Logger,
	textProcessor *utils.TextProcessor,
) *Scorer {
	return &Scorer{
		client:        client,
		modelID:       modelID,
		maxTokens:     maxTokens,
		temperature:   temperature,
		topP:          topP,
		maxBodySize:   maxBodySize,
		logger:        logger,
		textProcessor: textProcessor,
		promptFormat: `You are a fraud detection system. Analyze the following email text and estimate how likely it is to be a fraud or phishing attempt.
Respond with a JSON object containing:
- suspicion_score: number between 0 and 1 (higher means more likely fraud)
- reason: string (brief explanation)

Email text:
%s

Respond only with the JSON object and nothing else.`,
	}
}

// Name identifies this backend in verdict provenance
func (s *Scorer) Name() string {
	return "bedrock"
}

// Score asks the model for a suspicion probability for the given text
func (s *Scorer) Score(ctx context.Context, text string) (float64, error) {
	processed := s.textProcessor.ProcessText(text, s.maxBodySize)
	prompt := fmt.Sprintf(s.promptFormat, processed)

	payload, err := s.buildPayload(prompt)
	if err != nil {
		return 0, fmt.Errorf("failed to marshal request payload: %w", err)
	}

	resp, err := s.client.InvokeModel(ctx, &bedrockruntime.InvokeModelInput{
		ModelId:     &s.modelID,
		Body:        payload,
		Accept:      aws.String("application/json"),
		ContentType: aws.String("application/json"),
	})
	if err != nil {
		return 0, fmt.Errorf("failed to invoke Bedrock model: %w", err)
	}

	responseText, err := s.extractResponseText(resp.Body)
	if err != nil {
		return 0, err
	}

	parsed, err := parseSuspicionJSON(responseText)
	if err != nil {
		return 0, err
	}

	s.logger.Debug("Bedrock scored text",
		zap.String("model_id", s.modelID),
		zap.Float64("suspicion_score", parsed.SuspicionScore),
		zap.String("reason", parsed.Reason))

	return clamp01(parsed.SuspicionScore), nil
}

// buildPayload formats the request body for the model family
func (s *Scorer) buildPayload(prompt string) ([]byte, error) {
	if s.isAnthropicModel() {
		return json.Marshal(map[string]interface{}{
			"prompt":               prompt,
			"max_tokens_to_sample": s.maxTokens,
			"temperature":          s.temperature,
			"top_p":                s.topP,
		})
	}
	if s.isAmazonTitanModel() {
		return json.Marshal(map[string]interface{}{
			"inputText": prompt,
			"textGenerationConfig": map[string]interface{}{
				"maxTokenCount": s.maxTokens,
				"temperature":   s.temperature,
				"topP":          s.topP,
			},
		})
	}
	return json.Marshal(map[string]interface{}{
		"prompt":      prompt,
		"max_tokens":  s.maxTokens,
		"temperature": s.temperature,
		"top_p":       s.topP,
	})
}

// extractResponseText pulls the generated text out of the model-family
// specific response envelope
func (s *Scorer) extractResponseText(body []byte) (string, error) {
	if s.isAnthropicModel() {
		var claudeResp struct {
			Completion string `json:"completion"`
		}
		if err := json.Unmarshal(body, &claudeResp); err != nil {
			return "", fmt.Errorf("failed to unmarshal Claude response: %w", err)
		}
		return claudeResp.Completion, nil
	}

	if s.isAmazonTitanModel() {
		var titanResp struct {
			Results []struct {
				OutputText string `json:"outputText"`
			} `json:"results"`
		}
		if err := json.Unmarshal(body, &titanResp); err != nil {
			return "", fmt.Errorf("failed to unmarshal Titan response: %w", err)
		}
		if len(titanResp.Results) == 0 {
			return "", fmt.Errorf("empty response from Titan model")
		}
		return titanResp.Results[0].OutputText, nil
	}

	var genericResp struct {
		Output   string `json:"output"`
		Text     string `json:"text"`
		Response string `json:"response"`
	}
	if err := json.Unmarshal(body, &genericResp); err != nil {
		return "", fmt.Errorf("failed to unmarshal generic response: %w", err)
	}
	switch {
	case genericResp.Output != "":
		return genericResp.Output, nil
	case genericResp.Text != "":
		return genericResp.Text, nil
	case genericResp.Response != "":
		return genericResp.Response, nil
	}
	return string(body), nil
}

// isAnthropicModel checks if the model is an Anthropic Claude model
func (s *Scorer) isAnthropicModel() bool {
	return strings.HasPrefix(s.modelID, "anthropic.claude")
}

// isAmazonTitanModel checks if the model is an Amazon Titan model
func (s *Scorer) isAmazonTitanModel() bool {
	return strings.HasPrefix(s.modelID, "amazon.titan")
}

// parseSuspicionJSON parses the LLM response, tolerating prose around the
// JSON object
func parseSuspicionJSON(responseText string) (*suspicionResponse, error) {
	var parsed suspicionResponse
	if err := json.Unmarshal([]byte(responseText), &parsed); err == nil {
		return &parsed, nil
	}

	jsonStart := -1
	jsonEnd := -1
	for i := 0; i < len(responseText); i++ {
		if responseText[i] == '{' {
			jsonStart = i
			break
		}
	}
	for i := len(responseText) - 1; i >= 0; i-- {
		if responseText[i] == '}' {
			jsonEnd = i + 1
			break
		}
	}

	if jsonStart < 0 || jsonEnd <= jsonStart {
		return nil, fmt.Errorf("failed to extract JSON from LLM response")
	}

	if err := json.Unmarshal([]byte(responseText[jsonStart:jsonEnd]), &parsed); err != nil {
		return nil, fmt.Errorf("failed to parse LLM response as JSON: %w", err)
	}
	return &parsed, nil
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
