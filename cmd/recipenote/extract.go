package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/atotto/clipboard"
	"github.com/rs/zerolog"

	"github.com/pevans/recipenote/card"
	"github.com/pevans/recipenote/config"
	"github.com/pevans/recipenote/inbox"
	"github.com/pevans/recipenote/preview"
	"github.com/pevans/recipenote/recipe"
)

// loadPage reads a saved page from path, or stdin for "-". A non-empty
// pageURL overrides the address recorded in the page.
func loadPage(path, pageURL string) (*recipe.Page, error) {
	if path == "-" {
		return recipe.NewPage(os.Stdin, pageURL)
	}

	page, err := inbox.LoadPage(path)
	if err != nil {
		return nil, err
	}
	if pageURL != "" {
		page.URL = pageURL
	}
	return page, nil
}

func newExtractor(settings *config.Settings, logger zerolog.Logger) *recipe.Extractor {
	extractor, err := recipe.New(recipe.WithConfig(settings.Extractor), recipe.WithLogger(logger))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	return extractor
}

// extractFile loads and extracts one page or exits.
func extractFile(extractor *recipe.Extractor, path, pageURL string) *recipe.Result {
	page, err := loadPage(path, pageURL)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	return extractor.Extract(page)
}

func printWarnings(result *recipe.Result) {
	for _, w := range result.Warnings() {
		fmt.Fprintf(os.Stderr, "Warning: %s\n", w)
	}
}

// requirePath returns the single positional argument or exits with usage.
func requirePath(fs *flag.FlagSet, usage string) string {
	if fs.NArg() < 1 {
		fmt.Fprintf(os.Stderr, "Error: page path is required\n")
		fmt.Fprintf(os.Stderr, "Usage: %s\n", usage)
		os.Exit(1)
	}
	return fs.Arg(0)
}

func handleExtract(settings *config.Settings, logger zerolog.Logger, args []string) {
	fs := flag.NewFlagSet("extract", flag.ExitOnError)
	pageURL := fs.String("url", "", "Source URL (default: read from the page)")
	asJSON := fs.Bool("json", false, "Print the extraction as JSON")
	copyNote := fs.Bool("copy", false, "Copy the note to the clipboard")
	output := fs.String("o", "", "Write the note to this file instead of stdout")
	fs.Parse(args)

	path := requirePath(fs, "recipenote extract [-url URL] [-json] [-copy] [-o FILE] <page.html|->")
	result := extractFile(newExtractor(settings, logger), path, *pageURL)
	printWarnings(result)

	if *copyNote {
		if err := clipboard.WriteAll(result.Markdown); err != nil {
			fmt.Fprintf(os.Stderr, "Error: failed to copy to clipboard: %v\n", err)
			os.Exit(1)
		}
		fmt.Fprintln(os.Stderr, "✓ Copied note to clipboard")
	}

	out := result.Markdown
	if *asJSON {
		data, err := json.MarshalIndent(struct {
			*recipe.Result
			Filename string   `json:"filename"`
			Warnings []string `json:"warnings"`
		}{result, result.Filename(), result.Warnings()}, "", "  ")
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: failed to encode JSON: %v\n", err)
			os.Exit(1)
		}
		out = string(data) + "\n"
	}

	if *output != "" {
		if err := os.WriteFile(*output, []byte(out), 0o600); err != nil {
			fmt.Fprintf(os.Stderr, "Error: failed to write output: %v\n", err)
			os.Exit(1)
		}
		fmt.Fprintf(os.Stderr, "✓ Wrote %s\n", *output)
		return
	}

	if !*copyNote || *asJSON {
		fmt.Print(out)
	}
}

func handleSave(settings *config.Settings, logger zerolog.Logger, args []string) {
	fs := flag.NewFlagSet("save", flag.ExitOnError)
	pageURL := fs.String("url", "", "Source URL (default: read from each page)")
	fs.Parse(args)

	if fs.NArg() < 1 {
		fmt.Fprintf(os.Stderr, "Error: at least one page path is required\n")
		fmt.Fprintf(os.Stderr, "Usage: recipenote save [-url URL] <page.html>...\n")
		os.Exit(1)
	}

	app := openApp(settings, logger)
	defer app.Close()

	failed := false
	for _, path := range fs.Args() {
		page, err := loadPage(path, *pageURL)
		if err != nil {
			fmt.Fprintf(os.Stderr, "✗ %s: %v\n", path, err)
			failed = true
			continue
		}

		clip, err := app.Clipper.Clip(page)
		if err != nil {
			fmt.Fprintf(os.Stderr, "✗ %s: %v\n", path, err)
			failed = true
			continue
		}

		fmt.Printf("✓ Saved: %s\n", clip.Path)
		fmt.Printf("  Title: %s\n", clip.Result.Title)
		fmt.Printf("  Ingredients: %d, Instructions: %d\n", len(clip.Result.Ingredients), len(clip.Result.Instructions))
		printWarnings(clip.Result)
	}

	if failed {
		os.Exit(1)
	}
}

func handlePreview(settings *config.Settings, logger zerolog.Logger, args []string) {
	fs := flag.NewFlagSet("preview", flag.ExitOnError)
	pageURL := fs.String("url", "", "Source URL when previewing a page")
	output := fs.String("o", "", "Write HTML to this file instead of stdout")
	fs.Parse(args)

	path := requirePath(fs, "recipenote preview [-url URL] [-o FILE] <note.md|page.html>")

	var note []byte
	if strings.EqualFold(filepath.Ext(path), ".md") {
		data, err := os.ReadFile(path)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: failed to read note: %v\n", err)
			os.Exit(1)
		}
		note = data
	} else {
		note = []byte(extractFile(newExtractor(settings, logger), path, *pageURL).Markdown)
	}

	doc, err := preview.New().Document(note)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	if *output == "" {
		os.Stdout.Write(doc)
		return
	}
	if err := os.WriteFile(*output, doc, 0o600); err != nil {
		fmt.Fprintf(os.Stderr, "Error: failed to write output: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("✓ Wrote %s\n", *output)
}

func handlePDF(settings *config.Settings, logger zerolog.Logger, args []string) {
	fs := flag.NewFlagSet("pdf", flag.ExitOnError)
	pageURL := fs.String("url", "", "Source URL (default: read from the page)")
	output := fs.String("o", "", "Output file (default: named after the recipe)")
	fs.Parse(args)

	path := requirePath(fs, "recipenote pdf [-url URL] [-o FILE] <page.html>")
	result := extractFile(newExtractor(settings, logger), path, *pageURL)
	printWarnings(result)

	out := *output
	if out == "" {
		out = strings.TrimSuffix(result.Filename(), ".md") + ".pdf"
	}

	if err := card.WriteFile(out, result); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("✓ Wrote %s\n", out)
}
