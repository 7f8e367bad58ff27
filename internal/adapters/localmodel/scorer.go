package localmodel

import (
	"context"
	"encoding/json"
	"fmt"
	"math"
	"os"
	"strings"

	"github.com/inboxguard/fraud-filter/internal/utils"
	"go.uber.org/zap"
)

// modelWeights is the on-disk format of the trained classifier: a bias
// plus one weight per vocabulary token. Training happens offline; this
// adapter only runs inference.
type modelWeights struct {
	Bias    float64            `json:"bias"`
	Weights map[string]float64 `json:"weights"`
}

// Scorer is a locally-hosted binary classifier: logistic regression over
// a bag-of-words representation of the message text
type Scorer struct {
	weights       *modelWeights
	logger        *zap.Logger
	textProcessor *utils.TextProcessor
}

// NewScorer loads model weights from the given path
func NewScorer(modelPath string, logger *zap.Logger, textProcessor *utils.TextProcessor) (*Scorer, error) {
	data, err := os.ReadFile(modelPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read model file: %w", err)
	}

	var weights modelWeights
	if err := json.Unmarshal(data, &weights); err != nil {
		return nil, fmt.Errorf("failed to parse model file: %w", err)
	}
	if weights.Weights == nil {
		return nil, fmt.Errorf("model file %s has no weights", modelPath)
	}

	logger.Info("Loaded local suspicion model",
		zap.String("path", modelPath),
		zap.Int("vocabulary_size", len(weights.Weights)))

	return &Scorer{
		weights:       &weights,
		logger:        logger,
		textProcessor: textProcessor,
	}, nil
}

// Name identifies this backend in verdict provenance
func (s *Scorer) Name() string {
	return "local_model"
}

// Score computes sigmoid(bias + sum of token weights) over the distinct
// tokens present in the text
func (s *Scorer) Score(ctx context.Context, text string) (float64, error) {
	if s.weights == nil {
		return 0, fmt.Errorf("local model not loaded")
	}

	logit := s.weights.Bias
	seen := make(map[string]struct{})

	for _, token := range strings.Fields(s.textProcessor.Normalize(text)) {
		token = strings.Trim(token, ".,;:!?\"'()[]<>")
		if token == "" {
			continue
		}
		if _, dup := seen[token]; dup {
			continue
		}
		seen[token] = struct{}{}

		if w, ok := s.weights.Weights[token]; ok {
			logit += w
		}
	}

	return sigmoid(logit), nil
}

func sigmoid(x float64) float64 {
	return 1.0 / (1.0 + math.Exp(-x))
}
