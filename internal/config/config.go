package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Supported vision providers.
const (
	ProviderOpenAI = "openai"
	ProviderGemini = "gemini"
)

// Defaults for the OpenAI-compatible provider point at Fireworks.
const (
	DefaultOpenAIBaseURL = "https://api.fireworks.ai/inference/v1"
	DefaultOpenAIModel   = "accounts/fireworks/models/llama-v3p2-11b-vision-instruct"
	DefaultGeminiModel   = "gemini-2.5-flash"

	DefaultMaxTokens   = 1000
	DefaultMaxRetries  = 2
	DefaultConcurrency = 4
	DefaultTimeout     = 60 * time.Second
)

// ErrMissingAPIKey is returned by Validate when the selected provider has no key.
var ErrMissingAPIKey = errors.New("missing API key")

// Config holds the runtime configuration.
type Config struct {
	Vision      VisionConfig
	Extraction  ExtractionConfig
	Concurrency int
}

// VisionConfig selects and configures the vision model.
type VisionConfig struct {
	Provider     string
	FireworksKey string
	GeminiKey    string
	Model        string
	BaseURL      string
	Timeout      time.Duration
	MaxRetries   int
	MaxTokens    int
	Temperature  float32

	// Pricing in USD per million tokens. Zero leaves runs unpriced.
	InputCostPerMillion  float64
	OutputCostPerMillion float64
}

// ExtractionConfig toggles optional stages of response interpretation.
type ExtractionConfig struct {
	JSONRepair         bool
	HTMLToMarkdown     bool
	NormalizeFallbacks bool
	ValidateSchema     bool
}

// Load reads the configuration from environment variables.
func Load() *Config {
	provider := strings.ToLower(getEnv("IDX_PROVIDER", ProviderOpenAI))

	return &Config{
		Vision: VisionConfig{
			Provider:     provider,
			FireworksKey: getEnv("FIREWORKS_API_KEY", ""),
			GeminiKey:    getEnv("GEMINI_API_KEY", ""),
			Model:        getEnv("IDX_MODEL", defaultModel(provider)),
			BaseURL:      getEnv("IDX_BASE_URL", DefaultOpenAIBaseURL),
			Timeout:      getEnvAsDuration("IDX_TIMEOUT", DefaultTimeout),
			MaxRetries:   getEnvAsInt("IDX_MAX_RETRIES", DefaultMaxRetries),
			MaxTokens:    getEnvAsInt("IDX_MAX_TOKENS", DefaultMaxTokens),
			Temperature:  getEnvAsFloat32("IDX_TEMPERATURE", 0),
		},
		Extraction: ExtractionConfig{
			JSONRepair:         getEnvAsBool("IDX_JSON_REPAIR", true),
			HTMLToMarkdown:     getEnvAsBool("IDX_HTML_TO_MARKDOWN", true),
			NormalizeFallbacks: getEnvAsBool("IDX_NORMALIZE_FALLBACKS", true),
			ValidateSchema:     getEnvAsBool("IDX_VALIDATE_SCHEMA", true),
		},
		Concurrency: getEnvAsInt("IDX_CONCURRENCY", DefaultConcurrency),
	}
}

// LoadDotEnv loads the given .env files into the environment, skipping files
// that do not exist. Variables already set are not overridden.
func LoadDotEnv(paths ...string) error {
	for _, p := range paths {
		if _, err := os.Stat(p); errors.Is(err, os.ErrNotExist) {
			continue
		}
		if err := godotenv.Load(p); err != nil {
			return fmt.Errorf("load %s: %w", p, err)
		}
	}
	return nil
}

// APIKey returns the key of the selected provider.
func (c *Config) APIKey() string {
	switch c.Vision.Provider {
	case ProviderGemini:
		return c.Vision.GeminiKey
	default:
		return c.Vision.FireworksKey
	}
}

// Validate checks that the selected provider is known and has a key.
func (c *Config) Validate() error {
	switch c.Vision.Provider {
	case ProviderOpenAI:
		if c.Vision.FireworksKey == "" {
			return fmt.Errorf("FIREWORKS_API_KEY: %w", ErrMissingAPIKey)
		}
	case ProviderGemini:
		if c.Vision.GeminiKey == "" {
			return fmt.Errorf("GEMINI_API_KEY: %w", ErrMissingAPIKey)
		}
	default:
		return fmt.Errorf("unknown provider %q", c.Vision.Provider)
	}
	if c.Concurrency < 1 {
		return fmt.Errorf("IDX_CONCURRENCY must be at least 1, got %d", c.Concurrency)
	}
	return nil
}

func defaultModel(provider string) string {
	if provider == ProviderGemini {
		return DefaultGeminiModel
	}
	return DefaultOpenAIModel
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}

func getEnvAsFloat32(key string, defaultValue float32) float32 {
	if value := os.Getenv(key); value != "" {
		if floatVal, err := strconv.ParseFloat(value, 32); err == nil {
			return float32(floatVal)
		}
	}
	return defaultValue
}

func getEnvAsFloat64(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if floatVal, err := strconv.ParseFloat(value, 64); err == nil {
			return floatVal
		}
	}
	return defaultValue
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}

func getEnvAsBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if b, err := strconv.ParseBool(value); err == nil {
			return b
		}
	}
	return defaultValue
}
