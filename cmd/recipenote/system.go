package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/rs/zerolog"

	"github.com/pevans/recipenote"
	"github.com/pevans/recipenote/config"
)

func handleInit(args []string) {
	fs := flag.NewFlagSet("init", flag.ExitOnError)
	force := fs.Bool("force", false, "Rewrite the config file even if it exists")
	fs.Parse(args)

	fmt.Println("Initializing recipenote...")
	fmt.Println()

	initSucceeded := true

	// Create default config file as the first step
	created, err := config.WriteDefaultConfigFile(*force)
	configPath, _ := config.ConfigFilePath()
	switch {
	case err != nil:
		fmt.Fprintf(os.Stderr, "  ✗ Failed to create config file: %v\n", err)
		initSucceeded = false
	case created:
		fmt.Printf("  ✓ Config file: %s\n", configPath)
	default:
		fmt.Printf("  Config file: %s (already exists)\n", configPath)
	}

	// Re-resolve so that the paths from a freshly written file apply
	settings := loadSettings()

	if err := os.MkdirAll(settings.VaultDir, 0o700); err != nil {
		fmt.Fprintf(os.Stderr, "  ✗ Failed to create vault directory: %v\n", err)
		initSucceeded = false
	} else {
		fmt.Printf("  ✓ Vault: %s\n", settings.VaultDir)
	}

	if err := os.MkdirAll(settings.InboxDir, 0o700); err != nil {
		fmt.Fprintf(os.Stderr, "  ✗ Failed to create inbox directory: %v\n", err)
		initSucceeded = false
	} else {
		fmt.Printf("  ✓ Inbox: %s\n", settings.InboxDir)
	}

	app, err := recipenote.Open(settings, zerolog.Nop())
	if err != nil {
		fmt.Fprintf(os.Stderr, "  ✗ Failed to initialize library: %v\n", err)
		initSucceeded = false
	} else {
		app.Close()
		fmt.Printf("  ✓ Library: %s\n", settings.LibraryDSN)
	}

	fmt.Println()

	if !initSucceeded {
		fmt.Println("✗ Initialization failed")
		os.Exit(1)
	}

	fmt.Println("✓ recipenote initialized successfully")
	fmt.Println()
	fmt.Println("You can now:")
	fmt.Println("  - Save a page with 'recipenote save page.html'")
	fmt.Println("  - Start the relay for the browser extension with 'recipenote-api'")
}
