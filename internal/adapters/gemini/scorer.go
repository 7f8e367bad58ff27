package gemini

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/generative-ai-go/genai"
	"github.com/inboxguard/fraud-filter/internal/utils"
	"go.uber.org/zap"
	"google.golang.org/api/option"
)

// Scorer is an LLM-backed suspicion scorer using Google Gemini
type Scorer struct {
	client        *genai.Client
	model         *genai.GenerativeModel
	modelName     string
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

// NewScorer creates a new Gemini scorer
func NewScorer(
	apiKey string,
	modelName string,
	maxTokens int,
	temperature float32,
	topP float32,
	maxBodySize int,
	logger *zap.Logger,
	textProcessor *utils.TextProcessor,
) (*Scorer, error) {
	client, err := genai.NewClient(context.Background(), option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}

	model := client.GenerativeModel(modelName)
	model.SetTemperature(temperature)
	model.SetTopP(topP)
	model.SetMaxOutputTokens(int32(maxTokens))

	return &Scorer{
		client:        client,
		model:         model,
		modelName:     modelName,
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
	}, nil
}

// Name identifies this backend in verdict provenance
func (s *Scorer) Name() string {
	return "gemini"
}

// Close closes the Gemini client
func (s *Scorer) Close() error {
	if s.client != nil {
		return s.client.Close()
	}
	return nil
}

// Score asks the model for a suspicion probability for the given text
func (s *Scorer) Score(ctx context.Context, text string) (float64, error) {
	processed := s.textProcessor.ProcessText(text, s.maxBodySize)
	prompt := fmt.Sprintf(s.promptFormat, processed)

	resp, err := s.model.GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		return 0, fmt.Errorf("failed to generate content with Gemini: %w", err)
	}

	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil || len(resp.Candidates[0].Content.Parts) == 0 {
		return 0, fmt.Errorf("empty response from Gemini")
	}

	responseText, ok := resp.Candidates[0].Content.Parts[0].(genai.Text)
	if !ok {
		return 0, fmt.Errorf("unexpected response part type from Gemini")
	}

	parsed, err := parseSuspicionJSON(string(responseText))
	if err != nil {
		return 0, err
	}

	s.logger.Debug("Gemini scored text",
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
