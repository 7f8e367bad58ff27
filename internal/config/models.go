package config

// ScorerConfig represents the configuration for the ML scorer backend
type ScorerConfig struct {
	Backend string
}

// LocalModelConfig represents the configuration for the local model backend
type LocalModelConfig struct {
	ModelPath string
}

// HuggingFaceConfig represents the configuration for the Hugging Face inference API
type HuggingFaceConfig struct {
	Endpoint string
	Model    string
	APIToken string
	Timeout  string
}

// OpenAIConfig represents the configuration for OpenAI
type OpenAIConfig struct {
	APIKey      string
	ModelName   string
	MaxTokens   int
	Temperature float32
	TopP        float32
	MaxBodySize int
}

// GeminiConfig represents the configuration for Google Gemini
type GeminiConfig struct {
	APIKey      string
	ModelName   string
	MaxTokens   int
	Temperature float32
	TopP        float32
	MaxBodySize int
}

// BedrockConfig represents the configuration for Amazon Bedrock
type BedrockConfig struct {
	Region      string
	ModelID     string
	MaxTokens   int
	Temperature float32
	TopP        float32
	MaxBodySize int
}

// GetScorer returns the scorer backend configuration
func (c *Config) GetScorer() ScorerConfig {
	return ScorerConfig{
		Backend: c.GetString("scorer.backend"),
	}
}

// GetLocalModel returns the local model configuration
func (c *Config) GetLocalModel() LocalModelConfig {
	return LocalModelConfig{
		ModelPath: c.GetString("local.model_path"),
	}
}

// GetHuggingFace returns the Hugging Face configuration
func (c *Config) GetHuggingFace() HuggingFaceConfig {
	return HuggingFaceConfig{
		Endpoint: c.GetString("huggingface.endpoint"),
		Model:    c.GetString("huggingface.model"),
		APIToken: c.GetString("huggingface.api_token"),
		Timeout:  c.GetString("huggingface.timeout"),
	}
}

// GetOpenAI returns the OpenAI configuration
func (c *Config) GetOpenAI() OpenAIConfig {
	return OpenAIConfig{
		APIKey:      c.GetString("openai.api_key"),
		ModelName:   c.GetString("openai.model_name"),
		MaxTokens:   c.GetInt("openai.max_tokens"),
		Temperature: float32(c.GetFloat64("openai.temperature")),
		TopP:        float32(c.GetFloat64("openai.top_p")),
		MaxBodySize: c.GetInt("openai.max_body_size"),
	}
}

// GetGemini returns the Gemini configuration
func (c *Config) GetGemini() GeminiConfig {
	return GeminiConfig{
		APIKey:      c.GetString("gemini.api_key"),
		ModelName:   c.GetString("gemini.model_name"),
		MaxTokens:   c.GetInt("gemini.max_tokens"),
		Temperature: float32(c.GetFloat64("gemini.temperature")),
		TopP:        float32(c.GetFloat64("gemini.top_p")),
		MaxBodySize: c.GetInt("gemini.max_body_size"),
	}
}

// GetBedrock returns the Bedrock configuration
func (c *Config) GetBedrock() BedrockConfig {
	return BedrockConfig{
		Region:      c.GetString("bedrock.region"),
		ModelID:     c.GetString("bedrock.model_id"),
		MaxTokens:   c.GetInt("bedrock.max_tokens"),
		Temperature: float32(c.GetFloat64("bedrock.temperature")),
		TopP:        float32(c.GetFloat64("bedrock.top_p")),
		MaxBodySize: c.GetInt("bedrock.max_body_size"),
	}
}
