package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/rs/zerolog"

	"github.com/pevans/recipenote/config"
	"github.com/pevans/recipenote/discovery"
	"github.com/pevans/recipenote/recipe"
)

func handleFeed(settings *config.Settings, logger zerolog.Logger, args []string) {
	fs := flag.NewFlagSet("feed", flag.ExitOnError)
	dryRun := fs.Bool("dry-run", false, "List the recipes found without saving them")
	fs.Parse(args)

	if fs.NArg() < 1 {
		fmt.Fprintf(os.Stderr, "Error: feed file is required\n")
		fmt.Fprintf(os.Stderr, "Usage: recipenote feed [-dry-run] <feed.xml>\n")
		os.Exit(1)
	}

	if *dryRun {
		report := importFeed(fs.Arg(0), newExtractor(settings, logger))
		for _, r := range report.Recipes {
			fmt.Printf("  %s (%d ingredients, %d instructions)\n", r.Title, len(r.Ingredients), len(r.Instructions))
		}
		printSkipped(report)
		return
	}

	app := openApp(settings, logger)
	defer app.Close()

	report := importFeed(fs.Arg(0), app.Clipper.Extractor())

	saved := 0
	for _, r := range report.Recipes {
		clip, err := app.Clipper.Save(r)
		if err != nil {
			fmt.Fprintf(os.Stderr, "  ✗ %s: %v\n", r.Title, err)
			continue
		}
		fmt.Printf("  ✓ %s\n", clip.Path)
		saved++
	}
	printSkipped(report)

	fmt.Println()
	fmt.Printf("✓ Imported %d of %d recipes from %s\n", saved, len(report.Recipes), report.FeedTitle)
}

func importFeed(path string, extractor *recipe.Extractor) *discovery.ImportReport {
	report, err := discovery.ImportFeedFile(path, extractor)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	return report
}

func printSkipped(report *discovery.ImportReport) {
	for _, s := range report.Skipped {
		fmt.Printf("  - skipped %q: %s\n", s.Title, s.Reason)
	}
}
