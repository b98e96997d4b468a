package config

import (
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Config holds all configuration for the staffing query service.
type Config struct {
	Corpus     CorpusConfig     `yaml:"corpus"`
	Embedding  EmbeddingConfig  `yaml:"embedding"`
	Store      StoreConfig      `yaml:"store"`
	Retrieve   RetrieveConfig   `yaml:"retrieve"`
	Generation GenerationConfig `yaml:"generation"`
	Server     ServerConfig     `yaml:"server"`
	Logging    LoggingConfig    `yaml:"logging"`
}

// CorpusConfig locates the employee records.
type CorpusConfig struct {
	Path string `yaml:"path"` // file path or glob, newest match wins
}

// EmbeddingConfig holds embedding configuration.
type EmbeddingConfig struct {
	Provider          string  `yaml:"provider"` // "local", "openai", "mock"
	Model             string  `yaml:"model"`    // e.g. "text-embedding-3-small", openai only
	Dimension         int     `yaml:"dimension"`
	Stemming          bool    `yaml:"stemming"` // local provider only
	APIKeyEnv         string  `yaml:"api_key_env"`
	BaseURL           string  `yaml:"base_url"` // OpenAI-compatible endpoint override
	RequestsPerSecond float64 `yaml:"requests_per_second"`
}

// StoreConfig holds vector store configuration.
type StoreConfig struct {
	Type string `yaml:"type"` // "memory", "bolt"
	Path string `yaml:"path"` // bolt database file
}

// RetrieveConfig holds shortlist configuration.
type RetrieveConfig struct {
	TopK     int         `yaml:"top_k"`
	MinScore float64     `yaml:"min_score"` // drop matches scoring below this
	Cache    CacheConfig `yaml:"cache"`
}

// CacheConfig holds query cache configuration.
type CacheConfig struct {
	Enabled    bool `yaml:"enabled"`
	Size       int  `yaml:"size"`
	TTLSeconds int  `yaml:"ttl_seconds"`
}

// GenerationConfig holds answer generation configuration.
type GenerationConfig struct {
	Provider       string  `yaml:"provider"` // "openai", "gemini", "none"
	Model          string  `yaml:"model"`
	APIKeyEnv      string  `yaml:"api_key_env"` // empty derives from provider
	BaseURL        string  `yaml:"base_url"`    // OpenAI-compatible endpoint override
	Temperature    float32 `yaml:"temperature"`
	MaxTokens      int     `yaml:"max_tokens"`
	TimeoutSeconds int     `yaml:"timeout_seconds"`
}

// ServerConfig holds HTTP server configuration.
type ServerConfig struct {
	Host        string   `yaml:"host"`
	Port        int      `yaml:"port"`
	CORSOrigins []string `yaml:"cors_origins"`
}

// LoggingConfig holds logging configuration.
type LoggingConfig struct {
	JSON  bool `yaml:"json"`
	Debug bool `yaml:"debug"`
}

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		Corpus: CorpusConfig{
			Path: "data/employees.json",
		},
		Embedding: EmbeddingConfig{
			Provider:          "local",
			Model:             "text-embedding-3-small",
			Dimension:         0, // provider default
			Stemming:          true,
			APIKeyEnv:         "OPENAI_API_KEY",
			RequestsPerSecond: 0,
		},
		Store: StoreConfig{
			Type: "memory",
			Path: filepath.Join(".staffq", "index.db"),
		},
		Retrieve: RetrieveConfig{
			TopK:     5,
			MinScore: 0.1,
			Cache: CacheConfig{
				Enabled:    true,
				Size:       100,
				TTLSeconds: 300,
			},
		},
		Generation: GenerationConfig{
			Provider:       "openai",
			Model:          "gpt-3.5-turbo",
			Temperature:    0.7,
			MaxTokens:      500,
			TimeoutSeconds: 30,
		},
		Server: ServerConfig{
			Host:        "0.0.0.0",
			Port:        8000,
			CORSOrigins: []string{"*"},
		},
		Logging: LoggingConfig{
			JSON:  false,
			Debug: false,
		},
	}
}

// Load loads configuration from a YAML file.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil // Return defaults if no config file
		}
		return nil, err
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}

// LoadFromDir loads configuration from a directory (looks for staffq.yaml).
func LoadFromDir(dir string) (*Config, error) {
	path := filepath.Join(dir, "staffq.yaml")
	if _, err := os.Stat(path); err == nil {
		return Load(path)
	}

	path = filepath.Join(dir, ".staffq", "config.yaml")
	if _, err := os.Stat(path); err == nil {
		return Load(path)
	}

	return DefaultConfig(), nil
}

// Save saves configuration to a YAML file.
func (c *Config) Save(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// StorePath returns the bolt database path relative to dir when the
// configured path is not absolute.
func (c *Config) StorePath(dir string) string {
	if filepath.IsAbs(c.Store.Path) {
		return c.Store.Path
	}
	return filepath.Join(dir, c.Store.Path)
}

// EnsureStateDir ensures the .staffq directory exists.
func EnsureStateDir(dir string) error {
	return os.MkdirAll(filepath.Join(dir, ".staffq"), 0755)
}
