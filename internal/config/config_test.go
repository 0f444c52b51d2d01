package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfig(t *testing.T) {
	cfg := Default()

	assert.Equal(t, ":8080", cfg.Listen)
	assert.False(t, cfg.HotReload)
	assert.Equal(t, "OPENAI_API_KEY", cfg.Embedding.APIKeyEnv)
	assert.Equal(t, "text-embedding-3-small", cfg.Embedding.Model)
	assert.Equal(t, 512, cfg.Embedding.Dimensions)

	home, _ := os.UserHomeDir()
	assert.Equal(t, filepath.Join(home, ".civimap"), cfg.BaseDir)
	assert.Equal(t, filepath.Join(cfg.BaseDir, "sessions.db"), cfg.Session.DB)
	assert.Equal(t, filepath.Join(cfg.BaseDir, "terms.index"), cfg.Embedding.Index)
}

func TestLoadConfigFromFile(t *testing.T) {
	dir := t.TempDir()
	configPath := filepath.Join(dir, "config.yaml")

	content := []byte(`listen: ":9090"
hot_reload: true
embedding:
  dimensions: 1536
`)
	require.NoError(t, os.WriteFile(configPath, content, 0644))

	cfg, err := Load(configPath)
	require.NoError(t, err)

	assert.Equal(t, ":9090", cfg.Listen)
	assert.True(t, cfg.HotReload)
	assert.Equal(t, 1536, cfg.Embedding.Dimensions)
	// Defaults preserved for unset fields
	assert.Equal(t, "text-embedding-3-small", cfg.Embedding.Model)
	assert.Equal(t, "OPENAI_API_KEY", cfg.Embedding.APIKeyEnv)
}

func TestLoadConfigFileNotFound(t *testing.T) {
	cfg, err := Load("/nonexistent/config.yaml")
	require.NoError(t, err, "missing config file should return defaults, not error")
	assert.Equal(t, ":8080", cfg.Listen)
}

func TestLoadConfigInvalidYAML(t *testing.T) {
	dir := t.TempDir()
	configPath := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(configPath, []byte("listen: [unterminated"), 0644))

	_, err := Load(configPath)
	assert.Error(t, err)
}

func TestAPIKey(t *testing.T) {
	cfg := Default()
	cfg.Embedding.APIKeyEnv = "CIVIMAP_TEST_KEY"

	t.Setenv("CIVIMAP_TEST_KEY", "sk-test")
	assert.Equal(t, "sk-test", cfg.APIKey())
}

func TestEnsureDirs(t *testing.T) {
	dir := t.TempDir()
	cfg := Default()
	cfg.BaseDir = filepath.Join(dir, "nested", ".civimap")

	require.NoError(t, cfg.EnsureDirs())
	assert.DirExists(t, cfg.BaseDir)
}
