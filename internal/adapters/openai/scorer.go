package openai

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/inboxguard/fraud-filter/internal/utils"
	"github.com/sashabaranov/go-openai"
	"go.uber.org/zap"
)

// Scorer is an LLM-backed suspicion scorer using OpenAI chat completions
type Scorer struct {
	client        *openai.Client
	modelName     string
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

// NewScorer creates a new OpenAI scorer
func NewScorer(
	apiKey string,
	modelName string,
	maxTokens int,
	temperature float32,
	topP float32,
	maxBodySize int,
	logger *zap.Logger,
	textProcessor *utils.TextProcessor,
) *Scorer {
	client := openai.NewClient(apiKey)

	return &Scorer{
		client:        client,
		modelName:     modelName,
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
	return "openai"
}

// Score asks the model for a suspicion probability for the given text
func (s *Scorer) Score(ctx context.Context, text string) (float64, error) {
	processed := s.textProcessor.ProcessText(text, s.maxBodySize)
	prompt := fmt.Sprintf(s.promptFormat, processed)

	req := openai.ChatCompletionRequest{
		Model: s.modelName,
		Messages: []openai.ChatCompletionMessage{
			{
				Role:    openai.ChatMessageRoleSystem,
				Content: "You are a fraud detection system. Respond only with JSON.",
			},
			{
				Role:    openai.ChatMessageRoleUser,
				Content: prompt,
			},
		},
		MaxTokens:   s.maxTokens,
		Temperature: s.temperature,
		TopP:        s.topP,
	}

	responseFormat := openai.ChatCompletionResponseFormat{
		Type: "json",
	}
	req.ResponseFormat = &responseFormat

	resp, err := s.client.CreateChatCompletion(ctx, req)
	if err != nil {
		return 0, fmt.Errorf("failed to create chat completion with OpenAI: %w", err)
	}

	if len(resp.Choices) == 0 {
		return 0, fmt.Errorf("empty response from OpenAI")
	}

	parsed, err := parseSuspicionJSON(resp.Choices[0].Message.Content)
	if err != nil {
		return 0, err
	}

	s.logger.Debug("OpenAI scored text",
		zap.String("model", s.modelName),
		zap.Float64("suspicion_score", parsed.SuspicionScore),
		zap.String("reason", parsed.Reason))

	return clamp01(parsed.SuspicionScore), nil
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
