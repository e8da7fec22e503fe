package config

import "time"

// Config is the root application configuration.
type Config struct {
	App       AppConfig       `mapstructure:"app"`
	Logging   LoggingConfig   `mapstructure:"logging"`
	Redis     RedisConfig     `mapstructure:"redis"`
	Cache     CacheConfig     `mapstructure:"cache"`
	Qdrant    QdrantConfig    `mapstructure:"qdrant"`
	Google    GoogleConfig    `mapstructure:"google"`
	Embedding EmbeddingConfig `mapstructure:"embedding"`
	NER       NERConfig       `mapstructure:"ner"`
	Chatbot   ChatbotConfig   `mapstructure:"chatbot"`
}

type AppConfig struct {
	Name        string `mapstructure:"name"`
	Port        string `mapstructure:"port"`
	Version     string `mapstructure:"version"`
	Environment string `mapstructure:"environment"`
	CORSOrigins string `mapstructure:"cors_origins"`
	AdminAPIKey string `mapstructure:"admin_api_key"`
}

type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

type RedisConfig struct {
	Address  string `mapstructure:"address"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
}

type CacheConfig struct {
	Prefix string        `mapstructure:"prefix"`
	TTL    time.Duration `mapstructure:"ttl"` // 0 keeps entries forever
}

type QdrantConfig struct {
	Host               string `mapstructure:"host"`
	Port               int    `mapstructure:"port"`
	APIKey             string `mapstructure:"api_key"`
	InsightsCollection string `mapstructure:"insights_collection"`
	StatsCollection    string `mapstructure:"stats_collection"`
}

type GoogleConfig struct {
	Project  string `mapstructure:"project"`
	Location string `mapstructure:"location"`
	APIKey   string `mapstructure:"api_key"`
}

// UsesVertex reports whether genai clients should target Vertex AI rather than the Gemini API.
func (g GoogleConfig) UsesVertex() bool {
	return g.APIKey == ""
}

type EmbeddingConfig struct {
	Provider      string `mapstructure:"provider"` // genai | ollama
	Model         string `mapstructure:"model"`
	Dimension     uint64 `mapstructure:"dimension"`
	OllamaBaseURL string `mapstructure:"ollama_base_url"`
}

type NERConfig struct {
	Model string `mapstructure:"model"`
}

type ChatbotConfig struct {
	Provider string        `mapstructure:"provider"` // ollama | gemini
	Endpoint string        `mapstructure:"endpoint"`
	Model    string        `mapstructure:"model"`
	Timeout  time.Duration `mapstructure:"timeout"`
}

const (
	ProviderGenAI  = "genai"
	ProviderOllama = "ollama"
	ProviderGemini = "gemini"
)
