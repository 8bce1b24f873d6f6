package main

import (
	"errors"
	"flag"
	"fmt"
	"os"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/pevans/recipenote"
	"github.com/pevans/recipenote/config"
	"github.com/pevans/recipenote/library"
	"github.com/pevans/recipenote/vault"
)

func handleLibraryCommand(settings *config.Settings, logger zerolog.Logger, action string, args []string) {
	switch action {
	case "help", "--help", "-h":
		printLibraryUsage()
		return
	}

	app := openApp(settings, logger)
	defer app.Close()

	switch action {
	case "list":
		handleLibraryList(app, args)
	case "show":
		handleLibraryShow(app, args)
	case "delete":
		handleLibraryDelete(app, args)
	default:
		fmt.Fprintf(os.Stderr, "Error: unknown library command: %s\n\n", action)
		printLibraryUsage()
		os.Exit(1)
	}
}

func printLibraryUsage() {
	fmt.Println("recipenote library - Browse the saved-recipe library")
	fmt.Println()
	fmt.Println("Usage:")
	fmt.Println("  recipenote library <action> [arguments]")
	fmt.Println()
	fmt.Println("Actions:")
	fmt.Println("  list       List saved recipes, newest first")
	fmt.Println("  show       Print a saved note")
	fmt.Println("  delete     Delete a saved recipe and its note")
	fmt.Println("  help       Show this help message")
}

func handleLibraryList(app *recipenote.App, args []string) {
	fs := flag.NewFlagSet("library list", flag.ExitOnError)
	query := fs.String("q", "", "Only show recipes whose title or source contains this text")
	limit := fs.Int("limit", 50, "Maximum number of recipes to show")
	offset := fs.Int("offset", 0, "Number of recipes to skip")
	format := fs.String("format", "table", "Output format (table or json)")
	fs.Parse(args)

	if *format != "table" && *format != "json" {
		fmt.Fprintf(os.Stderr, "Error: --format must be 'table' or 'json'\n")
		os.Exit(1)
	}

	entries, err := app.Library.List(library.Filter{Query: *query, Limit: *limit, Offset: *offset})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: failed to list recipes: %v\n", err)
		os.Exit(1)
	}

	if *format == "json" {
		printEntriesJSON(entries)
		return
	}
	printEntriesTable(entries)
}

// lookupEntry parses the recipe ID argument and loads its entry or exits.
func lookupEntry(app *recipenote.App, args []string, usage string) *library.Entry {
	if len(args) < 1 {
		fmt.Fprintf(os.Stderr, "Error: recipe ID is required\n")
		fmt.Fprintf(os.Stderr, "Usage: %s\n", usage)
		os.Exit(1)
	}

	id, err := uuid.Parse(args[0])
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: invalid recipe ID: %v\n", err)
		os.Exit(1)
	}

	entry, err := app.Library.Get(id)
	if errors.Is(err, library.ErrRecipeNotFound) {
		fmt.Fprintf(os.Stderr, "Error: recipe not found: %s\n", id)
		os.Exit(1)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: failed to get recipe: %v\n", err)
		os.Exit(1)
	}

	return entry
}

func openVault(app *recipenote.App) *vault.Vault {
	v, err := app.Clipper.Vault()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	return v
}

func handleLibraryShow(app *recipenote.App, args []string) {
	entry := lookupEntry(app, args, "recipenote library show <recipe-id>")

	note, err := openVault(app).Read(entry.Filename)
	if errors.Is(err, vault.ErrNoteNotFound) {
		fmt.Fprintf(os.Stderr, "Error: note %s is missing from the vault\n", entry.Filename)
		os.Exit(1)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	fmt.Print(note.Content)
}

func handleLibraryDelete(app *recipenote.App, args []string) {
	entry := lookupEntry(app, args, "recipenote library delete <recipe-id>")

	err := openVault(app).Delete(entry.Filename)
	if err != nil && !errors.Is(err, vault.ErrNoteNotFound) {
		fmt.Fprintf(os.Stderr, "Error: failed to delete note: %v\n", err)
		os.Exit(1)
	}

	if err := app.Library.Delete(entry.RecipeID); err != nil {
		fmt.Fprintf(os.Stderr, "Error: failed to delete recipe: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("✓ Deleted recipe: %s (%s)\n", entry.Title, entry.Filename)
}
