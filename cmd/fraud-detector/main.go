package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/inboxguard/fraud-filter/internal/adapters/metricstore"
	"github.com/inboxguard/fraud-filter/internal/config"
	"github.com/inboxguard/fraud-filter/internal/core"
	"github.com/inboxguard/fraud-filter/internal/factory"
	"github.com/inboxguard/fraud-filter/internal/logging"
	"go.uber.org/zap"
)

var (
	// Scorer backend flags
	backend   = flag.String("backend", "huggingface", "Scorer backend (local, huggingface, openai, gemini, bedrock)")
	threshold = flag.Float64("threshold", 0.5, "Suspicion threshold for a Suspicious verdict")

	// Local model flags
	localModelPath = flag.String("local-model", "", "Path to local model weights (JSON)")

	// Hugging Face flags
	hfEndpoint = flag.String("hf-endpoint", "https://api-inference.huggingface.co/models", "Inference API endpoint")
	hfModel    = flag.String("hf-model", "bert-base-uncased", "Inference API model name")
	hfToken    = flag.String("hf-token", "", "Inference API token")

	// OpenAI flags
	openaiAPIKey    = flag.String("openai-api-key", "", "API key for OpenAI")
	openaiModelName = flag.String("openai-model", "gpt-4", "OpenAI model name")

	// Gemini flags
	geminiAPIKey    = flag.String("gemini-api-key", "", "API key for Google Gemini")
	geminiModelName = flag.String("gemini-model", "gemini-pro", "Gemini model name")

	// Bedrock flags
	bedrockRegion  = flag.String("bedrock-region", "us-east-1", "AWS region for Bedrock")
	bedrockModelID = flag.String("bedrock-model", "anthropic.claude-v2", "Bedrock model ID")

	// Input flags
	inputFile  = flag.String("file", "", "Input text file (use stdin if not specified)")
	verbose    = flag.Bool("verbose", false, "Enable verbose logging")
	jsonLog    = flag.Bool("json-log", false, "Output logs in JSON format")
	configFile = flag.String("config", "", "Path to config file (overrides command line flags)")
)

func main() {
	flag.Parse()

	logger, err := logging.InitConsoleLogger(*verbose, *jsonLog)
	if err != nil {
		fmt.Printf("Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	var cfg *config.Config
	if *configFile != "" {
		cfg, err = config.New()
		if err != nil {
			logger.Fatal("Failed to load configuration", zap.Error(err))
		}
		logger.Info("Loaded configuration from file", zap.String("file", cfg.GetViper().ConfigFileUsed()))
	} else {
		cfg = createConfigFromFlags()
	}

	// Build the pipeline
	textProcessor := factory.NewTextProcessorFactory(logger).CreateTextProcessor()
	scorerFactory := factory.NewScorerFactory(cfg, logger, textProcessor)
	scorer, err := scorerFactory.CreateScorer()
	if err != nil {
		logger.Fatal("Failed to create scorer backend", zap.Error(err))
	}

	service := core.NewClassifierService(
		core.NewRuleEngine(),
		scorer,
		core.NewAdjuster(),
		core.NewMetricsAggregator(logger),
		metricstore.NewMemoryStore(logger),
		logger,
		cfg.GetFloat64("classifier.threshold"),
	)

	// Read message text from file or stdin
	var reader io.Reader
	if *inputFile != "" {
		file, err := os.Open(*inputFile)
		if err != nil {
			logger.Fatal("Failed to open input file", zap.Error(err), zap.String("file", *inputFile))
		}
		defer file.Close()
		reader = file
		logger.Info("Reading text from file", zap.String("file", *inputFile))
	} else {
		reader = os.Stdin
		logger.Info("Reading text from stdin")
	}

	textBytes, err := io.ReadAll(reader)
	if err != nil {
		logger.Fatal("Failed to read input", zap.Error(err))
	}
	text := string(textBytes)
	if text == "" {
		logger.Fatal("No text provided")
	}

	fmt.Printf("\n=== Analysis ===\n")
	fmt.Printf("Backend: %s\n", cfg.GetString("scorer.backend"))
	fmt.Printf("Threshold: %.2f\n", cfg.GetFloat64("classifier.threshold"))

	startTime := time.Now()
	verdict := service.Classify(context.Background(), text)
	duration := time.Since(startTime)

	fmt.Printf("\n=== Results ===\n")
	fmt.Printf("Prediction: %s\n", verdict.Prediction)
	fmt.Printf("Suspicion score: %.4f\n", verdict.SuspicionScore)
	fmt.Printf("Sentiment: %s\n", core.SentimentFor(verdict.SuspicionScore))
	fmt.Printf("Method: %s\n", verdict.Method)
	if rules, ok := verdict.Details["triggered_rules"].([]string); ok && len(rules) > 0 {
		fmt.Printf("Triggered rules:\n")
		for _, rule := range rules {
			fmt.Printf("  - %s\n", rule)
		}
	}
	fmt.Printf("Processing time: %v\n", duration)

	// Close any resources that need closing
	if closer, ok := scorer.(interface{ Close() error }); ok {
		if err := closer.Close(); err != nil {
			logger.Error("Failed to close scorer backend", zap.Error(err))
		}
	}
}

// createConfigFromFlags creates a configuration from command line flags
func createConfigFromFlags() *config.Config {
	v := config.NewEmptyViper()

	v.Set("scorer.backend", *backend)
	v.Set("classifier.threshold", *threshold)

	switch *backend {
	case "local":
		if *localModelPath != "" {
			v.Set("local.model_path", *localModelPath)
		}
	case "huggingface":
		v.Set("huggingface.endpoint", *hfEndpoint)
		v.Set("huggingface.model", *hfModel)
		v.Set("huggingface.api_token", *hfToken)
	case "openai":
		v.Set("openai.api_key", *openaiAPIKey)
		v.Set("openai.model_name", *openaiModelName)
	case "gemini":
		v.Set("gemini.api_key", *geminiAPIKey)
		v.Set("gemini.model_name", *geminiModelName)
	case "bedrock":
		v.Set("bedrock.region", *bedrockRegion)
		v.Set("bedrock.model_id", *bedrockModelID)
	}

	return config.NewFromViper(v)
}
