package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/flowbaker/copysmith/pkg/ai-sdk/provider"
	"github.com/flowbaker/copysmith/pkg/domain"
	"github.com/rs/zerolog/log"
	"github.com/spf13/viper"
)

// Config holds everything the generate and serve commands need.
type Config struct {
	// Generation service
	Provider          string
	Model             string
	BaseURL           string
	AnthropicAPIKey   string
	OpenAIAPIKey      string
	GeminiAPIKey      string
	RequestTimeout    time.Duration
	RequestsPerMinute int

	MinDetectionConfidence float64

	// HTTP surface
	HTTPAddress   string
	MaxUploadSize int
	APIToken      string

	// Artifact sinks
	OutputDir string
	S3Bucket  string
	S3Region  string
	S3Prefix  string

	// Progress and notifications
	RedisAddress    string
	RedisPassword   string
	RedisDB         int
	RedisChannel    string
	SlackWebhookURL string

	Style domain.StyleConfiguration
}

// APIKey returns the key of the configured provider.
func (c *Config) APIKey() string {
	switch provider.Name(c.Provider) {
	case provider.NameOpenAI:
		return c.OpenAIAPIKey
	case provider.NameGemini:
		return c.GeminiAPIKey
	default:
		return c.AnthropicAPIKey
	}
}

func (c *Config) apiKeyEnv() string {
	switch provider.Name(c.Provider) {
	case provider.NameOpenAI:
		return "OPENAI_API_KEY"
	case provider.NameGemini:
		return "GEMINI_API_KEY"
	default:
		return "ANTHROPIC_API_KEY"
	}
}

type LoadOptions struct {
	// ConfigFile overrides the config file search when set.
	ConfigFile string
	// RequireAPIKey fails the load when the provider key is missing.
	RequireAPIKey bool
}

// LoadConfig loads configuration from files and environment variables
func LoadConfig(opts LoadOptions) (*Config, error) {
	v := viper.New()

	setDefaults(v)

	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	envMappings := map[string]string{
		"Provider":               "COPYSMITH_PROVIDER",
		"Model":                  "COPYSMITH_MODEL",
		"BaseURL":                "COPYSMITH_BASE_URL",
		"AnthropicAPIKey":        "ANTHROPIC_API_KEY",
		"OpenAIAPIKey":           "OPENAI_API_KEY",
		"GeminiAPIKey":           "GEMINI_API_KEY",
		"RequestTimeout":         "COPYSMITH_REQUEST_TIMEOUT",
		"RequestsPerMinute":      "COPYSMITH_REQUESTS_PER_MINUTE",
		"MinDetectionConfidence": "COPYSMITH_MIN_DETECTION_CONFIDENCE",
		"HTTPAddress":            "COPYSMITH_HTTP_ADDRESS",
		"MaxUploadSize":          "COPYSMITH_MAX_UPLOAD_SIZE",
		"APIToken":               "COPYSMITH_API_TOKEN",
		"OutputDir":              "COPYSMITH_OUTPUT_DIR",
		"S3Bucket":               "COPYSMITH_S3_BUCKET",
		"S3Region":               "COPYSMITH_S3_REGION",
		"S3Prefix":               "COPYSMITH_S3_PREFIX",
		"RedisAddress":           "COPYSMITH_REDIS_ADDRESS",
		"RedisPassword":          "COPYSMITH_REDIS_PASSWORD",
		"RedisDB":                "COPYSMITH_REDIS_DB",
		"RedisChannel":           "COPYSMITH_REDIS_CHANNEL",
		"SlackWebhookURL":        "COPYSMITH_SLACK_WEBHOOK_URL",
		"Style.target_language":  "COPYSMITH_LANGUAGE",
		"Style.short_style":      "COPYSMITH_SHORT_STYLE",
		"Style.temperature":      "COPYSMITH_TEMPERATURE",
	}

	for configKey, envVar := range envMappings {
		if err := v.BindEnv(configKey, envVar); err != nil {
			log.Warn().Err(err).Msgf("Failed to bind environment variable %s for %s", envVar, configKey)
		}
	}

	if opts.ConfigFile != "" {
		v.SetConfigFile(opts.ConfigFile)
	} else {
		v.SetConfigName("copysmith_config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("./config")
		v.AddConfigPath("$HOME/.copysmith")
	}

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
		log.Debug().Msg("Config file not found, using environment variables and defaults")
	} else {
		log.Info().Msgf("Using config file: %s", v.ConfigFileUsed())
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("unable to decode config into struct: %w", err)
	}

	config.Style = config.Style.WithDefaults()

	if err := validateConfig(&config, opts.RequireAPIKey); err != nil {
		return nil, err
	}

	log.Debug().
		Str("provider", config.Provider).
		Str("model", config.Model).
		Str("language", config.Style.TargetLanguage).
		Msg("Config loaded")

	return &config, nil
}

func setDefaults(v *viper.Viper) {
	defaults := domain.DefaultStyle()

	v.SetDefault("Provider", string(provider.NameAnthropic))
	v.SetDefault("RequestTimeout", 60*time.Second)
	v.SetDefault("RequestsPerMinute", 0)
	v.SetDefault("MinDetectionConfidence", 0.0)
	v.SetDefault("HTTPAddress", ":8080")
	v.SetDefault("MaxUploadSize", 20*1024*1024)
	v.SetDefault("S3Region", "us-east-1")
	v.SetDefault("S3Prefix", "copysmith")
	v.SetDefault("RedisChannel", "copysmith:progress")

	v.SetDefault("Style.target_language", defaults.TargetLanguage)
	v.SetDefault("Style.short_style", string(defaults.ShortStyle))
	v.SetDefault("Style.temperature", defaults.Temperature)
	v.SetDefault("Style.keywords_per_text", defaults.KeywordsPerText)
}

func validateConfig(config *Config, requireAPIKey bool) error {
	switch provider.Name(config.Provider) {
	case "", provider.NameAnthropic, provider.NameOpenAI, provider.NameGemini:
	default:
		return fmt.Errorf("unsupported provider %q", config.Provider)
	}

	var missingVars []string

	if requireAPIKey && config.APIKey() == "" {
		missingVars = append(missingVars, config.apiKeyEnv())
	}

	if config.S3Bucket != "" && config.S3Region == "" {
		missingVars = append(missingVars, "COPYSMITH_S3_REGION")
	}

	if len(missingVars) > 0 {
		return fmt.Errorf("missing required environment variables: %s", strings.Join(missingVars, ", "))
	}

	if config.RequestTimeout <= 0 {
		return fmt.Errorf("request timeout must be positive, got %s", config.RequestTimeout)
	}

	if config.RequestsPerMinute < 0 {
		return fmt.Errorf("requests per minute cannot be negative, got %d", config.RequestsPerMinute)
	}

	if err := config.Style.Validate(); err != nil {
		return fmt.Errorf("invalid style: %w", err)
	}

	return nil
}
