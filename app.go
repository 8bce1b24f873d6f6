package recipenote

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/rs/zerolog"

	"github.com/pevans/recipenote/config"
	"github.com/pevans/recipenote/library"
	"github.com/pevans/recipenote/recipe"
)

// NewLogger returns a human-readable logger writing to w at the named level.
// Unknown levels fall back to info.
func NewLogger(w io.Writer, level string) zerolog.Logger {
	lvl, err := zerolog.ParseLevel(level)
	if err != nil || level == "" {
		lvl = zerolog.InfoLevel
	}

	return zerolog.New(zerolog.ConsoleWriter{Out: w, TimeFormat: time.RFC3339}).
		Level(lvl).
		With().Timestamp().Logger()
}

// App bundles the stores and pipeline shared by the binaries.
type App struct {
	Settings *config.Settings
	Library  *library.Store
	Prefs    *config.Store
	Clipper  *Clipper
	Logger   zerolog.Logger
}

// Open wires an App from resolved settings. The library and preference
// tables share one SQLite database.
func Open(settings *config.Settings, logger zerolog.Logger) (*App, error) {
	extractor, err := recipe.New(
		recipe.WithConfig(settings.Extractor),
		recipe.WithLogger(logger),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create extractor: %w", err)
	}

	if dir := filepath.Dir(settings.LibraryDSN); dir != "." {
		if err := os.MkdirAll(dir, 0o700); err != nil {
			return nil, fmt.Errorf("failed to create library directory: %w", err)
		}
	}

	lib, err := library.NewStore(settings.LibraryDSN)
	if err != nil {
		return nil, fmt.Errorf("failed to open library: %w", err)
	}

	prefs, err := config.NewStore(settings.LibraryDSN)
	if err != nil {
		lib.Close()
		return nil, fmt.Errorf("failed to open preferences: %w", err)
	}

	return &App{
		Settings: settings,
		Library:  lib,
		Prefs:    prefs,
		Clipper:  NewClipper(extractor, lib, prefs, settings.VaultDir, logger),
		Logger:   logger,
	}, nil
}

// Close releases both stores.
func (a *App) Close() error {
	return errors.Join(a.Prefs.Close(), a.Library.Close())
}
