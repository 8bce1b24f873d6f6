package recipe

import (
	"time"

	"github.com/rs/zerolog"

	"github.com/pevans/recipenote/scraper"
)

// DefaultTitle is used when no heading yields any text.
const DefaultTitle = "Untitled Recipe"

// Result is one extraction. It is built fresh for every call.
type Result struct {
	Title        string    `json:"title"`
	Ingredients  []string  `json:"ingredients"`
	Instructions []string  `json:"instructions"`
	Markdown     string    `json:"markdown"`
	SourceURL    string    `json:"source_url"`
	ExtractedAt  time.Time `json:"extracted_at"`
}

// Filename is the note file name for the result.
func (r *Result) Filename() string {
	return NoteFilename(r.Title)
}

// Warnings lists the fields that came back empty, for callers that want to
// tell the user.
func (r *Result) Warnings() []string {
	warnings := []string{}
	if len(r.Ingredients) == 0 {
		warnings = append(warnings, "no ingredients found")
	}
	if len(r.Instructions) == 0 {
		warnings = append(warnings, "no instructions found")
	}
	return warnings
}

// Extractor turns pages into recipe notes. It keeps no state between calls
// and is safe for concurrent use as long as each call gets its own Page.
type Extractor struct {
	config  *scraper.Config
	cleaner *Cleaner
	logger  zerolog.Logger
	now     func() time.Time
}

// Option configures an Extractor.
type Option func(*Extractor)

// WithConfig replaces the default selector and boilerplate catalog.
func WithConfig(cfg *scraper.Config) Option {
	return func(e *Extractor) {
		if cfg != nil {
			e.config = cfg
		}
	}
}

// WithLogger sets the logger used for non-fatal warnings.
func WithLogger(logger zerolog.Logger) Option {
	return func(e *Extractor) {
		e.logger = logger
	}
}

// WithClock sets the source of the front-matter date.
func WithClock(now func() time.Time) Option {
	return func(e *Extractor) {
		if now != nil {
			e.now = now
		}
	}
}

// New creates an Extractor. It fails only if a boilerplate pattern does not
// compile.
func New(opts ...Option) (*Extractor, error) {
	e := &Extractor{
		config: scraper.DefaultConfig(),
		logger: zerolog.Nop(),
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(e)
	}

	cleaner, err := NewCleaner(e.config.Boilerplate)
	if err != nil {
		return nil, err
	}
	e.cleaner = cleaner

	return e, nil
}

// Cleaner returns the extractor's boilerplate cleaner.
func (e *Extractor) Cleaner() *Cleaner {
	return e.cleaner
}

// Extract runs the pipeline against page: locate, clean, dedupe, split,
// container fallback, serialize. It never fails; fields that cannot be found
// come back empty and the title falls back to DefaultTitle.
func (e *Extractor) Extract(page *Page) *Result {
	result := &Result{
		Title:        DefaultTitle,
		Ingredients:  []string{},
		Instructions: []string{},
		ExtractedAt:  e.now(),
	}

	if page == nil || page.Doc == nil {
		e.logger.Warn().Msg("no document to extract from")
		result.Markdown = RenderMarkdown(result)
		return result
	}
	result.SourceURL = page.URL
	logger := e.logger.With().Str("url", page.URL).Logger()

	if title := e.extractTitle(page, logger); title != "" {
		result.Title = title
	}

	ingredients := e.collect(page, e.config.IngredientSelectors, logger)
	ingredients = e.fallback(page, "ingredients", ingredients,
		e.config.IngredientContainers, scraper.IngredientLabels, logger)

	instructions := e.collect(page, e.config.InstructionSelectors, logger)
	instructions = e.split(instructions)
	instructions = e.fallback(page, "instructions", instructions,
		e.config.InstructionContainers, scraper.InstructionLabels, logger)

	// Split segments and container lines are deduplicated once more here so
	// that no two items in the result share a normalized key.
	result.Ingredients = Dedupe(ingredients)
	result.Instructions = Dedupe(instructions)

	if len(result.Ingredients) == 0 {
		logger.Warn().Msg("could not find ingredients")
	}
	if len(result.Instructions) == 0 {
		logger.Warn().Msg("could not find instructions")
	}

	result.Markdown = RenderMarkdown(result)
	logger.Debug().
		Str("title", result.Title).
		Int("ingredients", len(result.Ingredients)).
		Int("instructions", len(result.Instructions)).
		Msg("extracted recipe")

	return result
}

func (e *Extractor) extractTitle(page *Page, logger zerolog.Logger) string {
	for _, n := range Locate(page.Doc, e.config.TitleSelectors, logger) {
		if title := e.cleaner.Clean(VisibleText(n)); title != "" {
			return title
		}
	}
	return ""
}

// collect gathers cleaned, deduplicated text for every element matched by the
// selectors.
func (e *Extractor) collect(page *Page, selectors []string, logger zerolog.Logger) []string {
	nodes := Locate(page.Doc, selectors, logger)
	items := make([]string, 0, len(nodes))
	for _, n := range nodes {
		items = append(items, e.cleaner.Clean(VisibleText(n)))
	}
	return Dedupe(items)
}

func (e *Extractor) split(items []string) []string {
	out := make([]string, 0, len(items))
	for _, item := range items {
		for _, step := range SplitSteps(item) {
			if step = e.cleaner.Clean(step); step != "" {
				out = append(out, step)
			}
		}
	}
	return out
}

// fallback replaces items with the container's lines when structured
// selectors found at most one item and the container yields anything.
func (e *Extractor) fallback(
	page *Page,
	field string,
	items []string,
	containers, labels []string,
	logger zerolog.Logger,
) []string {
	if len(items) > 1 {
		return items
	}

	lines := ContainerFallback(page.Doc, containers, labels, e.cleaner, logger)
	if len(lines) == 0 {
		return items
	}

	logger.Debug().
		Str("field", field).
		Int("structured", len(items)).
		Int("container", len(lines)).
		Msg("replacing field with container text")
	return lines
}
