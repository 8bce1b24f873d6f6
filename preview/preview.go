// Package preview renders recipe notes to HTML for the browser popup and the
// CLI.
package preview

import (
	"bytes"
	"fmt"
	"html"

	"github.com/adrg/frontmatter"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
)

// Renderer converts note Markdown into HTML. Raw HTML embedded in a note is
// never passed through.
type Renderer struct {
	engine goldmark.Markdown
}

// New constructs a renderer with GFM enabled.
func New() *Renderer {
	return &Renderer{
		engine: goldmark.New(
			goldmark.WithExtensions(extension.GFM),
			goldmark.WithParserOptions(parser.WithAutoHeadingID()),
		),
	}
}

type noteMeta struct {
	Title string `yaml:"title"`
}

// Body renders the note body, skipping its front matter.
func (r *Renderer) Body(note []byte) ([]byte, error) {
	_, body, err := r.split(note)
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	if err := r.engine.Convert(body, &buf); err != nil {
		return nil, fmt.Errorf("failed to render markdown: %w", err)
	}
	return buf.Bytes(), nil
}

// Document renders the note as a standalone HTML page titled after the note.
func (r *Renderer) Document(note []byte) ([]byte, error) {
	meta, _, err := r.split(note)
	if err != nil {
		return nil, err
	}

	body, err := r.Body(note)
	if err != nil {
		return nil, err
	}

	title := meta.Title
	if title == "" {
		title = "Recipe"
	}

	var buf bytes.Buffer
	buf.WriteString("<!DOCTYPE html>\n<html>\n<head>\n<meta charset=\"utf-8\">\n")
	buf.WriteString("<title>" + html.EscapeString(title) + "</title>\n")
	buf.WriteString("</head>\n<body>\n")
	buf.Write(body)
	buf.WriteString("</body>\n</html>\n")

	return buf.Bytes(), nil
}

func (r *Renderer) split(note []byte) (noteMeta, []byte, error) {
	var meta noteMeta
	body, err := frontmatter.Parse(bytes.NewReader(note), &meta)
	if err != nil {
		return meta, nil, fmt.Errorf("failed to parse front matter: %w", err)
	}
	return meta, body, nil
}
