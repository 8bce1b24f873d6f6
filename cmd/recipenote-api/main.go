package main

import (
	"context"
	"errors"
	"flag"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/pevans/recipenote"
	"github.com/pevans/recipenote/config"
)

func main() {
	settings, loadErr := config.Load()

	addr := flag.String("addr", settings.Addr, "Listen address (RECIPENOTE_ADDR)")
	vaultDir := flag.String("vault", settings.VaultDir, "Directory notes are written to (RECIPENOTE_VAULT_DIR)")
	libraryDSN := flag.String("library", settings.LibraryDSN, "Path to library database (RECIPENOTE_LIBRARY_DSN)")
	verbose := flag.Bool("v", false, "Verbose logging")
	flag.Parse()

	settings.VaultDir = *vaultDir
	settings.LibraryDSN = *libraryDSN
	if *verbose {
		settings.LogLevel = "debug"
	}

	logger := recipenote.NewLogger(os.Stderr, settings.LogLevel)
	if loadErr != nil {
		logger.Warn().Err(loadErr).Msg("failed to load config file, continuing with defaults and environment")
	}
	if settings.LogLevel != "debug" {
		gin.SetMode(gin.ReleaseMode)
	}

	app, err := recipenote.Open(settings, logger)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to open recipenote")
	}
	defer app.Close()

	server := recipenote.NewAPIServer(app.Clipper, app.Prefs, logger)
	httpServer := &http.Server{
		Addr:              *addr,
		Handler:           server.SetupRouter(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	// Setup signal handling for graceful shutdown
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGTERM, syscall.SIGINT)
	defer stop()

	errChan := make(chan error, 1)
	go func() {
		logger.Info().Str("addr", *addr).Str("vault", settings.VaultDir).Msg("starting relay API on /api/v1")
		errChan <- httpServer.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		logger.Info().Msg("shutting down gracefully")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			logger.Error().Err(err).Msg("shutdown failed")
		}
	case err := <-errChan:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error().Err(err).Msg("server failed")
			app.Close()
			os.Exit(1)
		}
	}
}
