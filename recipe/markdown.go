package recipe

import (
	"strconv"
	"strings"
	"time"
)

// Placeholders written when a section has no items.
const (
	NoIngredientsPlaceholder  = "*No ingredients found*"
	NoInstructionsPlaceholder = "*No instructions found*"
)

// DateFormat is the front-matter date layout.
const DateFormat = "2006-01-02"

// DefaultTags are attached to every clipped recipe.
var DefaultTags = []string{"recipe", "saved"}

// FrontMatter is the metadata block that opens every note.
type FrontMatter struct {
	Title  string
	Source string
	Tags   []string
	Date   time.Time
}

// Render writes the block with its "---" delimiters. String values are
// double-quoted; strconv.Quote escapes are a subset of YAML's.
func (fm FrontMatter) Render() string {
	var b strings.Builder

	b.WriteString("---\n")
	b.WriteString("title: " + strconv.Quote(fm.Title) + "\n")
	b.WriteString("source: " + strconv.Quote(fm.Source) + "\n")

	tags := make([]string, len(fm.Tags))
	for i, tag := range fm.Tags {
		tags[i] = strconv.Quote(tag)
	}
	b.WriteString("tags: [" + strings.Join(tags, ", ") + "]\n")

	b.WriteString("date: " + fm.Date.UTC().Format(DateFormat) + "\n")
	b.WriteString("---\n")

	return b.String()
}

// RenderMarkdown serializes a result into a note. The layout is fixed.
func RenderMarkdown(r *Result) string {
	var b strings.Builder

	fm := FrontMatter{
		Title:  r.Title,
		Source: r.SourceURL,
		Tags:   DefaultTags,
		Date:   r.ExtractedAt,
	}
	b.WriteString(fm.Render())

	b.WriteString("\n# " + r.Title + "\n")

	b.WriteString("\n## Ingredients\n")
	if len(r.Ingredients) == 0 {
		b.WriteString(NoIngredientsPlaceholder + "\n")
	}
	for _, item := range r.Ingredients {
		b.WriteString("- " + item + "\n")
	}

	b.WriteString("\n## Instructions\n")
	if len(r.Instructions) == 0 {
		b.WriteString(NoInstructionsPlaceholder + "\n")
	}
	for i, step := range r.Instructions {
		b.WriteString(strconv.Itoa(i+1) + ". " + step + "\n")
	}

	return b.String()
}
