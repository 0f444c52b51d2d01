package config

import (
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

type SessionConfig struct {
	DB string `yaml:"db"`
}

type EmbeddingConfig struct {
	APIKeyEnv  string `yaml:"api_key_env"`
	Model      string `yaml:"model"`
	Dimensions int    `yaml:"dimensions"`
	Index      string `yaml:"index"`
}

type Config struct {
	Dictionary string          `yaml:"dictionary"`
	Listen     string          `yaml:"listen"`
	HotReload  bool            `yaml:"hot_reload"`
	Session    SessionConfig   `yaml:"session"`
	Embedding  EmbeddingConfig `yaml:"embedding"`
	BaseDir    string          `yaml:"-"`
}

func Default() *Config {
	home, _ := os.UserHomeDir()
	base := filepath.Join(home, ".civimap")
	return &Config{
		Listen: ":8080",
		Session: SessionConfig{
			DB: filepath.Join(base, "sessions.db"),
		},
		Embedding: EmbeddingConfig{
			APIKeyEnv:  "OPENAI_API_KEY",
			Model:      "text-embedding-3-small",
			Dimensions: 512,
			Index:      filepath.Join(base, "terms.index"),
		},
		BaseDir: base,
	}
}

func Load(path string) (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, err
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}

	// Ensure defaults for zero values
	if cfg.Listen == "" {
		cfg.Listen = ":8080"
	}
	if cfg.BaseDir == "" {
		home, _ := os.UserHomeDir()
		cfg.BaseDir = filepath.Join(home, ".civimap")
	}
	if cfg.Session.DB == "" {
		cfg.Session.DB = filepath.Join(cfg.BaseDir, "sessions.db")
	}
	if cfg.Embedding.APIKeyEnv == "" {
		cfg.Embedding.APIKeyEnv = "OPENAI_API_KEY"
	}
	if cfg.Embedding.Model == "" {
		cfg.Embedding.Model = "text-embedding-3-small"
	}
	if cfg.Embedding.Dimensions == 0 {
		cfg.Embedding.Dimensions = 512
	}
	if cfg.Embedding.Index == "" {
		cfg.Embedding.Index = filepath.Join(cfg.BaseDir, "terms.index")
	}

	return cfg, nil
}

// APIKey resolves the embedding API key from the configured
// environment variable. Empty means the semantic path is disabled.
func (c *Config) APIKey() string {
	return os.Getenv(c.Embedding.APIKeyEnv)
}

func (c *Config) EnsureDirs() error {
	return os.MkdirAll(c.BaseDir, 0755)
}
