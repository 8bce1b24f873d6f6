package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"

	"github.com/pevans/recipenote/config"
	"github.com/pevans/recipenote/cookbook"
)

func handleCookbook(settings *config.Settings, logger zerolog.Logger, args []string) {
	fs := flag.NewFlagSet("cookbook", flag.ExitOnError)
	source := fs.String("source", "", "Cookbook name recorded as each note's source")
	model := fs.String("model", settings.OpenAI.Model, "Vision-capable chat model")
	dryRun := fs.Bool("dry-run", false, "Print the titles found without writing notes")
	fs.Parse(args)

	if *source == "" {
		fmt.Fprintf(os.Stderr, "Error: --source is required\n")
		fs.Usage()
		os.Exit(1)
	}
	if fs.NArg() < 1 {
		fmt.Fprintf(os.Stderr, "Error: at least one image is required\n")
		fmt.Fprintf(os.Stderr, "Usage: recipenote cookbook -source NAME [-dry-run] <image>...\n")
		os.Exit(1)
	}
	if settings.OpenAI.Key == "" {
		fmt.Fprintf(os.Stderr, "Error: OPENAI_API_KEY (or openai.key in the config file) is required\n")
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	client := cookbook.NewOpenAIClient(settings.OpenAI.Key, settings.OpenAI.Base)
	transcriber := cookbook.NewTranscriber(client, *model, logger)

	var titles []string
	for _, image := range fs.Args() {
		text, err := transcriber.TranscribeFile(ctx, image)
		if err != nil {
			fmt.Fprintf(os.Stderr, "✗ %s: %v\n", image, err)
			continue
		}
		found := cookbook.Titles(text)
		logger.Debug().Str("image", image).Int("titles", len(found)).Msg("transcribed index page")
		titles = append(titles, found...)
	}

	if len(titles) == 0 {
		fmt.Fprintln(os.Stderr, "Error: no recipe titles found")
		os.Exit(1)
	}

	stubs := cookbook.Stubs(titles, *source, time.Now())

	if *dryRun {
		for _, stub := range stubs {
			fmt.Printf("  %s -> %s\n", stub.Title, stub.Filename)
		}
		return
	}

	app := openApp(settings, logger)
	defer app.Close()

	v := openVault(app)
	written := 0
	for _, stub := range stubs {
		path, err := v.Save(stub.Filename, stub.Content)
		if err != nil {
			fmt.Fprintf(os.Stderr, "  ✗ %s: %v\n", stub.Title, err)
			continue
		}
		if _, err := app.Library.Record(stub.Title, *source, stub.Filename, 0, 0); err != nil {
			fmt.Fprintf(os.Stderr, "  ✗ %s: failed to record recipe: %v\n", stub.Title, err)
			continue
		}
		fmt.Printf("  ✓ %s\n", path)
		written++
	}

	fmt.Println()
	fmt.Printf("✓ Created %d stub notes from %s\n", written, *source)
}
