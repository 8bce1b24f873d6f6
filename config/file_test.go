package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pevans/recipenote/scraper"
)

// Test helper: point HOME at a fresh directory and optionally write a config
// file there
func setupHome(t *testing.T, content string) string {
	tmpDir := t.TempDir()
	t.Setenv("HOME", tmpDir)

	if content != "" {
		configDir := filepath.Join(tmpDir, ".recipenote")
		require.NoError(t, os.MkdirAll(configDir, 0o700))
		require.NoError(t, os.WriteFile(filepath.Join(configDir, "config.yaml"), []byte(content), 0o600))
	}

	return tmpDir
}

func noEnv(string) string { return "" }

func TestLoadConfigFile_NoFile(t *testing.T) {
	setupHome(t, "")

	cfg, err := LoadConfigFile()
	require.NoError(t, err)
	assert.Nil(t, cfg, "Should return nil when config file doesn't exist")
}

func TestLoadConfigFile_ValidConfig(t *testing.T) {
	setupHome(t, `vault:
  dir: "/notes/recipes"
library:
  dsn: "/notes/library.db"
server:
  addr: "127.0.0.1:9000"
log:
  level: "debug"
openai:
  model: "llava"
extractor:
  ingredient_selectors:
    - "span.zutat"
  boilerplate:
    - pattern: "\\bsponsored\\b"
`)

	cfg, err := LoadConfigFile()
	require.NoError(t, err)
	require.NotNil(t, cfg)

	assert.Equal(t, "/notes/recipes", cfg.Vault.Dir)
	assert.Equal(t, "/notes/library.db", cfg.Library.DSN)
	assert.Equal(t, "127.0.0.1:9000", cfg.Server.Addr)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, "llava", cfg.OpenAI.Model)
	require.NotNil(t, cfg.Extractor)
	assert.Equal(t, []string{"span.zutat"}, cfg.Extractor.IngredientSelectors)
	assert.Equal(t, []scraper.CleanRule{{Pattern: `\bsponsored\b`}}, cfg.Extractor.Boilerplate)
}

func TestLoadConfigFile_InvalidYAML(t *testing.T) {
	setupHome(t, `vault:
  - this is invalid yaml because vault should be an object not a list
`)

	cfg, err := LoadConfigFile()
	assert.Error(t, err)
	assert.Nil(t, cfg)
	assert.Contains(t, err.Error(), "failed to parse config file")
}

func TestResolve_Defaults(t *testing.T) {
	s := Resolve(nil, noEnv)

	assert.Equal(t, DefaultVaultDir, s.VaultDir)
	assert.Equal(t, DefaultLibraryDSN, s.LibraryDSN)
	assert.Equal(t, DefaultAddr, s.Addr)
	assert.Equal(t, DefaultInboxDir, s.InboxDir)
	assert.Equal(t, DefaultLogLevel, s.LogLevel)
	assert.Equal(t, DefaultOpenAIModel, s.OpenAI.Model)
	assert.Equal(t, scraper.DefaultConfig(), s.Extractor)
}

func TestResolve_Precedence(t *testing.T) {
	cfg := &FileConfig{}
	cfg.Vault.Dir = "/file/vault"
	cfg.Library.DSN = "/file/library.db"
	cfg.OpenAI.Key = "file-key"

	env := map[string]string{
		"RECIPENOTE_VAULT_DIR": "/env/vault",
		"OPENAI_API_KEY":       "env-key",
	}

	s := Resolve(cfg, func(key string) string { return env[key] })

	assert.Equal(t, "/env/vault", s.VaultDir, "environment should win over file")
	assert.Equal(t, "/file/library.db", s.LibraryDSN, "file should win over defaults")
	assert.Equal(t, "env-key", s.OpenAI.Key)
	assert.Equal(t, DefaultAddr, s.Addr)
}

func TestResolve_ExtractorAppendsToDefaults(t *testing.T) {
	cfg := &FileConfig{Extractor: &scraper.Config{
		TitleSelectors: []string{"h2.headline"},
	}}

	s := Resolve(cfg, noEnv)

	defaults := scraper.DefaultConfig()
	require.Len(t, s.Extractor.TitleSelectors, len(defaults.TitleSelectors)+1)
	assert.Equal(t, "h2.headline", s.Extractor.TitleSelectors[len(defaults.TitleSelectors)])
	assert.Equal(t, defaults.Boilerplate, s.Extractor.Boilerplate)
}

func TestWriteDefaultConfigFile(t *testing.T) {
	home := setupHome(t, "")

	created, err := WriteDefaultConfigFile(false)
	require.NoError(t, err)
	assert.True(t, created)

	cfg, err := LoadConfigFile()
	require.NoError(t, err)
	require.NotNil(t, cfg)
	assert.Equal(t, filepath.Join(home, ".recipenote", "recipes"), cfg.Vault.Dir)
	assert.Equal(t, filepath.Join(home, ".recipenote", "library.db"), cfg.Library.DSN)

	created, err = WriteDefaultConfigFile(false)
	require.NoError(t, err)
	assert.False(t, created, "existing file should be kept")

	created, err = WriteDefaultConfigFile(true)
	require.NoError(t, err)
	assert.True(t, created, "force should rewrite the file")
}
