package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/pevans/recipenote/scraper"
)

// OpenAIConfig points the cookbook transcriber at an OpenAI-compatible
// endpoint.
type OpenAIConfig struct {
	Base  string `yaml:"base"`
	Model string `yaml:"model"`
	Key   string `yaml:"key"`
}

// FileConfig represents the structure of ~/.recipenote/config.yaml.
type FileConfig struct {
	Vault struct {
		Dir string `yaml:"dir"`
	} `yaml:"vault"`
	Library struct {
		DSN string `yaml:"dsn"`
	} `yaml:"library"`
	Server struct {
		Addr string `yaml:"addr"`
	} `yaml:"server"`
	Inbox struct {
		Dir string `yaml:"dir"`
	} `yaml:"inbox"`
	Log struct {
		Level string `yaml:"level"`
	} `yaml:"log"`
	OpenAI    OpenAIConfig    `yaml:"openai"`
	Extractor *scraper.Config `yaml:"extractor"`
}

// Settings is the effective configuration after defaults, the config file and
// the environment have been applied.
type Settings struct {
	VaultDir   string
	LibraryDSN string
	Addr       string
	InboxDir   string
	LogLevel   string
	OpenAI     OpenAIConfig
	Extractor  *scraper.Config
}

// Defaults used when neither the file nor the environment sets a value.
const (
	DefaultVaultDir    = "recipes"
	DefaultLibraryDSN  = "library.db"
	DefaultAddr        = ":8080"
	DefaultInboxDir    = "inbox"
	DefaultLogLevel    = "info"
	DefaultOpenAIModel = "gpt-4o-mini"
)

// ConfigDir returns ~/.recipenote.
func ConfigDir() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get user home directory: %w", err)
	}
	return filepath.Join(homeDir, ".recipenote"), nil
}

// ConfigFilePath returns the location of the config file.
func ConfigFilePath() (string, error) {
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.yaml"), nil
}

// LoadConfigFile loads configuration from ~/.recipenote/config.yaml. Returns
// nil if the file doesn't exist (not an error). Returns error if the file
// exists but cannot be parsed.
func LoadConfigFile() (*FileConfig, error) {
	configPath, err := ConfigFilePath()
	if err != nil {
		return nil, err
	}

	// Check if file exists
	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		return nil, nil // File doesn't exist -- not an error
	}

	// Read file
	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	// Parse YAML
	var cfg FileConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	return &cfg, nil
}

// Resolve applies settings with precedence:
// 1. Environment variables (highest priority)
// 2. Configuration file
// 3. Default values (lowest priority)
//
// cfg may be nil. Extractor selectors and rules from the file are appended to
// the built-in catalog.
func Resolve(cfg *FileConfig, getenv func(string) string) *Settings {
	s := &Settings{
		VaultDir:   DefaultVaultDir,
		LibraryDSN: DefaultLibraryDSN,
		Addr:       DefaultAddr,
		InboxDir:   DefaultInboxDir,
		LogLevel:   DefaultLogLevel,
		OpenAI:     OpenAIConfig{Model: DefaultOpenAIModel},
	}

	var extra *scraper.Config
	if cfg != nil {
		setIf(&s.VaultDir, cfg.Vault.Dir)
		setIf(&s.LibraryDSN, cfg.Library.DSN)
		setIf(&s.Addr, cfg.Server.Addr)
		setIf(&s.InboxDir, cfg.Inbox.Dir)
		setIf(&s.LogLevel, cfg.Log.Level)
		setIf(&s.OpenAI.Base, cfg.OpenAI.Base)
		setIf(&s.OpenAI.Model, cfg.OpenAI.Model)
		setIf(&s.OpenAI.Key, cfg.OpenAI.Key)
		extra = cfg.Extractor
	}
	s.Extractor = scraper.DefaultConfig().Merge(extra)

	setIf(&s.VaultDir, getenv("RECIPENOTE_VAULT_DIR"))
	setIf(&s.LibraryDSN, getenv("RECIPENOTE_LIBRARY_DSN"))
	setIf(&s.Addr, getenv("RECIPENOTE_ADDR"))
	setIf(&s.InboxDir, getenv("RECIPENOTE_INBOX_DIR"))
	setIf(&s.LogLevel, getenv("RECIPENOTE_LOG_LEVEL"))
	setIf(&s.OpenAI.Base, getenv("OPENAI_BASE_URL"))
	setIf(&s.OpenAI.Key, getenv("OPENAI_API_KEY"))

	return s
}

// Load reads the config file and resolves it against the process
// environment. A broken config file is reported alongside usable settings
// built from defaults and environment.
func Load() (*Settings, error) {
	cfg, err := LoadConfigFile()
	return Resolve(cfg, os.Getenv), err
}

func setIf(dst *string, val string) {
	if val != "" {
		*dst = val
	}
}

// WriteDefaultConfigFile writes a config file pointing at absolute paths under
// ~/.recipenote. It reports whether a file was written; an existing file is
// left alone unless force is set.
func WriteDefaultConfigFile(force bool) (bool, error) {
	dir, err := ConfigDir()
	if err != nil {
		return false, err
	}
	configPath := filepath.Join(dir, "config.yaml")

	if _, err := os.Stat(configPath); err == nil && !force {
		return false, nil
	}

	if err := os.MkdirAll(dir, 0o700); err != nil {
		return false, fmt.Errorf("failed to create config directory: %w", err)
	}

	var cfg FileConfig
	cfg.Vault.Dir = filepath.Join(dir, DefaultVaultDir)
	cfg.Library.DSN = filepath.Join(dir, DefaultLibraryDSN)
	cfg.Server.Addr = DefaultAddr
	cfg.Inbox.Dir = filepath.Join(dir, DefaultInboxDir)
	cfg.Log.Level = DefaultLogLevel
	cfg.OpenAI.Model = DefaultOpenAIModel

	data, err := yaml.Marshal(&cfg)
	if err != nil {
		return false, fmt.Errorf("failed to encode config file: %w", err)
	}

	if err := os.WriteFile(configPath, data, 0o600); err != nil {
		return false, fmt.Errorf("failed to write config file: %w", err)
	}

	return true, nil
}
