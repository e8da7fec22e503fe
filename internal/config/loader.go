package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// envBindings maps config keys to the environment variables operators already use.
var envBindings = map[string]string{
	"app.name":                   "APP_NAME",
	"app.port":                   "PORT",
	"app.version":                "APP_VERSION",
	"app.environment":            "ENV",
	"app.cors_origins":           "CORS_ORIGINS",
	"app.admin_api_key":          "ADMIN_API_KEY",
	"logging.level":              "LOG_LEVEL",
	"logging.format":             "LOG_FORMAT",
	"redis.address":              "REDIS_ADDR",
	"redis.password":             "REDIS_PASSWORD",
	"redis.db":                   "REDIS_DB",
	"cache.prefix":               "CACHE_PREFIX",
	"cache.ttl":                  "CACHE_TTL",
	"qdrant.host":                "QDRANT_HOST",
	"qdrant.port":                "QDRANT_PORT",
	"qdrant.api_key":             "QDRANT_API_KEY",
	"qdrant.insights_collection": "QDRANT_INSIGHTS_COLLECTION",
	"qdrant.stats_collection":    "QDRANT_STATS_COLLECTION",
	"google.project":             "GOOGLE_CLOUD_PROJECT",
	"google.location":            "GOOGLE_CLOUD_LOCATION",
	"google.api_key":             "GEMINI_API_KEY",
	"embedding.provider":         "EMBEDDING_PROVIDER",
	"embedding.model":            "EMBEDDING_MODEL",
	"embedding.dimension":        "EMBEDDING_DIMENSION",
	"embedding.ollama_base_url":  "OLLAMA_BASE_URL",
	"ner.model":                  "NER_MODEL",
	"chatbot.provider":           "CHATBOT_PROVIDER",
	"chatbot.endpoint":           "CHATBOT_ENDPOINT",
	"chatbot.model":              "CHATBOT_MODEL",
	"chatbot.timeout":            "CHATBOT_TIMEOUT",
}

// Load reads .env files (if any) and the process environment into a validated Config.
func Load() (*Config, error) {
	loadEnvFiles(".env.dev", ".env")
	return LoadFrom(viper.New())
}

// LoadFrom builds a Config from an existing viper instance. Tests use it with v.Set overrides.
func LoadFrom(v *viper.Viper) (*Config, error) {
	setDefaults(v)
	for key, env := range envBindings {
		if err := v.BindEnv(key, env); err != nil {
			return nil, fmt.Errorf("bind %s: %w", env, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := validateConfig(&cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return &cfg, nil
}

func loadEnvFiles(paths ...string) {
	for _, path := range paths {
		if _, err := os.Stat(path); err != nil {
			continue
		}
		// Existing environment variables win over file values.
		_ = godotenv.Load(path)
	}
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("app.name", "Smart Placements Assistance")
	v.SetDefault("app.port", "8000")
	v.SetDefault("app.version", "dev")
	v.SetDefault("app.environment", "development")
	v.SetDefault("app.cors_origins", "http://localhost:3000")
	v.SetDefault("app.admin_api_key", "")

	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "json")

	v.SetDefault("redis.address", "localhost:6379")
	v.SetDefault("redis.password", "")
	v.SetDefault("redis.db", 0)

	v.SetDefault("cache.prefix", "chatbot:answer:")
	v.SetDefault("cache.ttl", time.Duration(0))

	v.SetDefault("qdrant.host", "localhost")
	v.SetDefault("qdrant.port", 6334)
	v.SetDefault("qdrant.api_key", "")
	v.SetDefault("qdrant.insights_collection", "CompanyInsightsData")
	v.SetDefault("qdrant.stats_collection", "CompanyStatsData")

	v.SetDefault("google.project", "")
	v.SetDefault("google.location", "us-central1")
	v.SetDefault("google.api_key", "")

	v.SetDefault("embedding.provider", ProviderGenAI)
	v.SetDefault("embedding.model", "text-embedding-004")
	v.SetDefault("embedding.dimension", 768)
	v.SetDefault("embedding.ollama_base_url", "http://localhost:11434")

	v.SetDefault("ner.model", "gemini-2.5-flash")

	v.SetDefault("chatbot.provider", ProviderOllama)
	v.SetDefault("chatbot.endpoint", "http://localhost:11434/api/generate")
	v.SetDefault("chatbot.model", "llama3.2")
	v.SetDefault("chatbot.timeout", 120*time.Second)
}

func validateConfig(cfg *Config) error {
	var errs []error

	if cfg.App.Port == "" {
		errs = append(errs, errors.New("app.port (PORT) is required"))
	}

	switch cfg.Embedding.Provider {
	case ProviderGenAI, ProviderOllama:
	default:
		errs = append(errs, fmt.Errorf("unknown embedding provider %q", cfg.Embedding.Provider))
	}
	if cfg.Embedding.Dimension == 0 {
		errs = append(errs, errors.New("embedding.dimension (EMBEDDING_DIMENSION) must be positive"))
	}

	switch cfg.Chatbot.Provider {
	case ProviderOllama:
		if cfg.Chatbot.Endpoint == "" {
			errs = append(errs, errors.New("chatbot.endpoint (CHATBOT_ENDPOINT) is required for the ollama provider"))
		}
	case ProviderGemini:
	default:
		errs = append(errs, fmt.Errorf("unknown chatbot provider %q", cfg.Chatbot.Provider))
	}
	if cfg.Chatbot.Model == "" {
		errs = append(errs, errors.New("chatbot.model (CHATBOT_MODEL) is required"))
	}
	if cfg.Chatbot.Timeout < 0 {
		errs = append(errs, errors.New("chatbot.timeout (CHATBOT_TIMEOUT) cannot be negative"))
	}

	if cfg.Cache.TTL < 0 {
		errs = append(errs, errors.New("cache.ttl (CACHE_TTL) cannot be negative"))
	}

	// NER always runs on genai; Vertex needs a project.
	if cfg.Google.UsesVertex() && cfg.Google.Project == "" {
		errs = append(errs, errors.New("google.project (GOOGLE_CLOUD_PROJECT) is required unless GEMINI_API_KEY is set"))
	}

	return errors.Join(errs...)
}
