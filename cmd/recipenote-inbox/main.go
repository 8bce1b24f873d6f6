package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/pevans/recipenote"
	"github.com/pevans/recipenote/config"
	"github.com/pevans/recipenote/inbox"
	"github.com/pevans/recipenote/recipe"
)

func main() {
	settings, loadErr := config.Load()

	inboxDir := flag.String("inbox", settings.InboxDir, "Directory watched for saved pages (RECIPENOTE_INBOX_DIR)")
	vaultDir := flag.String("vault", settings.VaultDir, "Directory notes are written to (RECIPENOTE_VAULT_DIR)")
	libraryDSN := flag.String("library", settings.LibraryDSN, "Path to library database (RECIPENOTE_LIBRARY_DSN)")
	debounce := flag.Duration("debounce", inbox.DefaultDebounce, "Quiet period before a new file is clipped")
	remove := flag.Bool("remove", false, "Delete each page from the inbox once it is clipped")
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

	app, err := recipenote.Open(settings, logger)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to open recipenote")
	}
	defer app.Close()

	handler := func(_ context.Context, page *recipe.Page, path string) error {
		if _, err := app.Clipper.Clip(page); err != nil {
			return err
		}
		if *remove {
			return os.Remove(path)
		}
		return nil
	}

	watcher := inbox.New(*inboxDir, handler,
		inbox.WithLogger(logger),
		inbox.WithDebounce(*debounce),
	)

	// Setup signal handling for graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGTERM, syscall.SIGINT)

	errChan := make(chan error, 1)
	go func() {
		errChan <- watcher.Run(ctx)
	}()

	select {
	case sig := <-sigChan:
		logger.Info().Str("signal", sig.String()).Msg("shutting down gracefully")
		cancel()

		shutdownTimer := time.NewTimer(10 * time.Second)
		select {
		case <-errChan:
			logger.Info().Msg("watcher stopped")
		case <-shutdownTimer.C:
			logger.Warn().Msg("shutdown timeout exceeded, forcing exit")
		}
	case err := <-errChan:
		if err != nil {
			logger.Error().Err(err).Msg("watcher failed")
			app.Close()
			os.Exit(1)
		}
	}
}
