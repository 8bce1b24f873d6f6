package config

import (
	"database/sql"
	"fmt"

	_ "github.com/mattn/go-sqlite3"
)

// Store manages runtime preferences using SQLite. It shares the library
// database.
type Store struct {
	db *sql.DB
}

// Config represents preferences set from the browser extension's options
// page. An empty VaultDir means the resolved settings apply.
type Config struct {
	VaultDir string `json:"vault_dir"`
}

// NewStore creates a new preference store with the given database path.
func NewStore(dbPath string) (*Store, error) {
	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	store := &Store{db: db}
	if err := store.initSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}

	return store, nil
}

// initSchema creates the config table if it doesn't exist.
func (c *Store) initSchema() error {
	schema := `
	CREATE TABLE IF NOT EXISTS config (
		key TEXT PRIMARY KEY,
		value TEXT NOT NULL
	);
	`

	_, err := c.db.Exec(schema)
	return err
}

// Close closes the database connection.
func (c *Store) Close() error {
	return c.db.Close()
}

// GetConfig retrieves the stored preferences.
func (c *Store) GetConfig() (*Config, error) {
	query := "SELECT value FROM config WHERE key = ?"

	var vaultDir string
	err := c.db.QueryRow(query, "vault_dir").Scan(&vaultDir)
	if err == sql.ErrNoRows {
		return &Config{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query config: %w", err)
	}

	return &Config{VaultDir: vaultDir}, nil
}

// UpdateConfig replaces the stored preferences.
func (c *Store) UpdateConfig(cfg *Config) error {
	query := "INSERT OR REPLACE INTO config (key, value) VALUES (?, ?)"
	_, err := c.db.Exec(query, "vault_dir", cfg.VaultDir)
	if err != nil {
		return fmt.Errorf("failed to update config: %w", err)
	}
	return nil
}

// VaultDir returns the preferred vault directory, or fallback when none is
// stored.
func (c *Store) VaultDir(fallback string) (string, error) {
	cfg, err := c.GetConfig()
	if err != nil {
		return "", err
	}
	if cfg.VaultDir == "" {
		return fallback, nil
	}
	return cfg.VaultDir, nil
}
