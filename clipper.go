// Package recipenote clips recipes from web pages into a Markdown vault and
// serves the browser extension's relay API.
package recipenote

import (
	"fmt"

	"github.com/rs/zerolog"

	"github.com/pevans/recipenote/library"
	"github.com/pevans/recipenote/recipe"
	"github.com/pevans/recipenote/vault"
)

// Preferences supplies a vault directory chosen at runtime. config.Store
// implements it.
type Preferences interface {
	VaultDir(fallback string) (string, error)
}

// Clip is one saved recipe.
type Clip struct {
	Result *recipe.Result `json:"result"`
	Path   string         `json:"path"`
	Entry  *library.Entry `json:"recipe,omitempty"`
}

// Clipper extracts a page, writes the note into the vault and indexes it.
type Clipper struct {
	extractor *recipe.Extractor
	library   *library.Store
	prefs     Preferences
	vaultDir  string
	logger    zerolog.Logger
}

// NewClipper creates a clipper writing to vaultDir. lib and prefs may be nil,
// in which case notes are not indexed and the vault directory is fixed.
func NewClipper(extractor *recipe.Extractor, lib *library.Store, prefs Preferences, vaultDir string, logger zerolog.Logger) *Clipper {
	return &Clipper{
		extractor: extractor,
		library:   lib,
		prefs:     prefs,
		vaultDir:  vaultDir,
		logger:    logger,
	}
}

// Extractor returns the extractor the clipper runs.
func (c *Clipper) Extractor() *recipe.Extractor {
	return c.extractor
}

// Library returns the index, which may be nil.
func (c *Clipper) Library() *library.Store {
	return c.library
}

// Vault opens the vault that notes are currently written to.
func (c *Clipper) Vault() (*vault.Vault, error) {
	dir := c.vaultDir
	if c.prefs != nil {
		var err error
		dir, err = c.prefs.VaultDir(c.vaultDir)
		if err != nil {
			return nil, fmt.Errorf("failed to resolve vault directory: %w", err)
		}
	}
	return vault.New(dir)
}

// Clip extracts the page and saves the result.
func (c *Clipper) Clip(page *recipe.Page) (*Clip, error) {
	return c.Save(c.extractor.Extract(page))
}

// Save writes an extracted result to the vault, replacing any note with the
// same file name, and records it in the library.
func (c *Clipper) Save(result *recipe.Result) (*Clip, error) {
	v, err := c.Vault()
	if err != nil {
		return nil, err
	}

	path, err := v.Save(result.Filename(), result.Markdown)
	if err != nil {
		return nil, err
	}

	clip := &Clip{Result: result, Path: path}

	if c.library != nil {
		entry, err := c.library.Record(result.Title, result.SourceURL, result.Filename(),
			len(result.Ingredients), len(result.Instructions))
		if err != nil {
			return nil, fmt.Errorf("failed to record recipe: %w", err)
		}
		clip.Entry = entry
	}

	c.logger.Info().
		Str("title", result.Title).
		Str("path", path).
		Int("ingredients", len(result.Ingredients)).
		Int("instructions", len(result.Instructions)).
		Msg("saved recipe")

	return clip, nil
}
