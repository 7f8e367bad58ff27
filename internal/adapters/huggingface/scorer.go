package huggingface

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"go.uber.org/zap"
)

// Scorer calls a hosted inference endpoint that serves a text
// classification model. Response shapes and label vocabularies vary
// between models; everything is normalized to a suspicion probability.
type Scorer struct {
	httpClient *http.Client
	endpoint   string
	model      string
	apiToken   string
	logger     *zap.Logger
}

// labelScore is one classification result from the inference API
type labelScore struct {
	Label string  `json:"label"`
	Score float64 `json:"score"`
}

// NewScorer creates a new inference API scorer. The timeout bounds each
// call; there is no retry.
func NewScorer(endpoint, model, apiToken string, timeout time.Duration, logger *zap.Logger) *Scorer {
	return &Scorer{
		httpClient: &http.Client{Timeout: timeout},
		endpoint:   endpoint,
		model:      model,
		apiToken:   apiToken,
		logger:     logger,
	}
}

// Name identifies this backend in verdict provenance
func (s *Scorer) Name() string {
	return "hf_api"
}

// Score sends the text to the inference endpoint and converts the labeled
// scores into a suspicion probability
func (s *Scorer) Score(ctx context.Context, text string) (float64, error) {
	payload, err := json.Marshal(map[string]string{"inputs": text})
	if err != nil {
		return 0, fmt.Errorf("failed to marshal inference request: %w", err)
	}

	url := s.endpoint + "/" + s.model
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return 0, fmt.Errorf("failed to build inference request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if s.apiToken != "" {
		req.Header.Set("Authorization", "Bearer "+s.apiToken)
	}

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return 0, fmt.Errorf("inference request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return 0, fmt.Errorf("failed to read inference response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return 0, fmt.Errorf("inference API returned status %d: %s", resp.StatusCode, truncate(body, 200))
	}

	scores, err := parseResponse(body)
	if err != nil {
		return 0, err
	}

	suspicion := suspicionFromScores(scores)

	s.logger.Debug("Inference API scored text",
		zap.String("model", s.model),
		zap.Float64("suspicion_score", suspicion))

	return suspicion, nil
}

// parseResponse handles the two known response shapes: a list of label
// scores, or that list wrapped in an outer list. Anything else is an
// unrecognized shape and an error.
func parseResponse(body []byte) ([]labelScore, error) {
	var nested [][]labelScore
	if err := json.Unmarshal(body, &nested); err == nil && len(nested) > 0 && len(nested[0]) > 0 {
		return nested[0], nil
	}

	var flat []labelScore
	if err := json.Unmarshal(body, &flat); err == nil && len(flat) > 0 {
		return flat, nil
	}

	return nil, fmt.Errorf("unrecognized inference response shape: %s", truncate(body, 200))
}

// suspicionFromScores normalizes inconsistent label taxonomies into one
// suspicion probability. A positive-only result is inverted; no
// recognizable label at all means indeterminate.
func suspicionFromScores(scores []labelScore) float64 {
	for _, item := range scores {
		switch item.Label {
		case "NEGATIVE", "SUSPICIOUS", "FRAUD":
			return item.Score
		}
	}

	for _, item := range scores {
		switch item.Label {
		case "POSITIVE", "SAFE":
			return 1.0 - item.Score
		}
	}

	return 0.5
}

func truncate(b []byte, n int) string {
	if len(b) <= n {
		return string(b)
	}
	return string(b[:n]) + "..."
}
