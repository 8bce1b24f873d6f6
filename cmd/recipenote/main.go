package main

import (
	"fmt"
	"os"

	"github.com/rs/zerolog"

	"github.com/pevans/recipenote"
	"github.com/pevans/recipenote/config"
)

func main() {
	args := os.Args[1:]

	verbose := false
	if len(args) > 0 && (args[0] == "-v" || args[0] == "--verbose") {
		verbose = true
		args = args[1:]
	}

	if len(args) < 1 {
		printUsage()
		os.Exit(1)
	}

	settings := loadSettings()
	if verbose {
		settings.LogLevel = "debug"
	}
	logger := recipenote.NewLogger(os.Stderr, settings.LogLevel)

	// Get subcommand
	subcommand := args[0]
	rest := args[1:]

	switch subcommand {
	case "extract":
		handleExtract(settings, logger, rest)
	case "save":
		handleSave(settings, logger, rest)
	case "preview":
		handlePreview(settings, logger, rest)
	case "pdf":
		handlePDF(settings, logger, rest)
	case "feed":
		handleFeed(settings, logger, rest)
	case "cookbook":
		handleCookbook(settings, logger, rest)
	case "library":
		if len(rest) < 1 {
			printLibraryUsage()
			os.Exit(1)
		}
		handleLibraryCommand(settings, logger, rest[0], rest[1:])
	case "init":
		handleInit(rest)
	case "help", "--help", "-h":
		printUsage()
	default:
		fmt.Fprintf(os.Stderr, "Error: unknown command: %s\n\n", subcommand)
		printUsage()
		os.Exit(1)
	}
}

// loadSettings loads settings with precedence:
// 1. Environment variables (highest priority)
// 2. Configuration file (~/.recipenote/config.yaml)
// 3. Default values (lowest priority)
func loadSettings() *config.Settings {
	settings, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: failed to load config file: %v\n", err)
		fmt.Fprintf(os.Stderr, "Continuing with defaults and environment variables...\n\n")
	}
	return settings
}

// openApp opens the library and vault or exits.
func openApp(settings *config.Settings, logger zerolog.Logger) *recipenote.App {
	app, err := recipenote.Open(settings, logger)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	return app
}

func printUsage() {
	fmt.Println("recipenote - Clip recipes from web pages into Markdown notes")
	fmt.Println()
	fmt.Println("Usage:")
	fmt.Println("  recipenote [-v] <command> [arguments]")
	fmt.Println()
	fmt.Println("Commands:")
	fmt.Println("  extract    Extract a recipe from a saved page and print the note")
	fmt.Println("  save       Extract saved pages into the vault")
	fmt.Println("  preview    Render a note or saved page as HTML")
	fmt.Println("  pdf        Print a saved page as a PDF recipe card")
	fmt.Println("  feed       Import recipes from a downloaded RSS or Atom feed")
	fmt.Println("  cookbook   Create stub notes from a photo of a cookbook index")
	fmt.Println("  library    Browse the saved-recipe library")
	fmt.Println("  init       Create the config file, vault and library")
	fmt.Println("  help       Show this help message")
	fmt.Println()
	fmt.Println("Related binaries:")
	fmt.Println("  recipenote-api     Relay API for the browser extension")
	fmt.Println("  recipenote-inbox   Clip pages dropped into the inbox directory")
	fmt.Println()
	fmt.Println("Environment Variables:")
	fmt.Println("  RECIPENOTE_VAULT_DIR    Directory notes are written to (default: recipes)")
	fmt.Println("  RECIPENOTE_LIBRARY_DSN  Path to library database (default: library.db)")
	fmt.Println("  RECIPENOTE_INBOX_DIR    Directory watched for saved pages (default: inbox)")
	fmt.Println("  RECIPENOTE_LOG_LEVEL    Log level (default: info)")
	fmt.Println("  OPENAI_API_KEY          Key for cookbook transcription")
	fmt.Println("  OPENAI_BASE_URL         OpenAI-compatible endpoint")
}
