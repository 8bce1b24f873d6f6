// Package cookbook turns a photographed cookbook index into stub recipe notes,
// one per title, ready to be filled in by hand.
package cookbook

import (
	"regexp"
	"strings"
	"time"

	"github.com/pevans/recipenote/recipe"
)

// Tags are attached to every stub note.
var Tags = []string{"cookbook"}

var (
	pageBoundary = regexp.MustCompile(`\d{1,3}$`)
	pageSuffix   = regexp.MustCompile(`\s(\d{1,3}(-\d{1,3})?|\d{1,3},\d{1,3})$`)
)

// GroupTitles joins transcribed index lines into whole titles. A line ending
// in a page number closes the title it belongs to; titles that wrap onto
// several lines are joined with spaces. Trailing lines with no page number
// form a final title.
func GroupTitles(text string) []string {
	titles := []string{}
	var current []string

	for _, raw := range strings.Split(text, "\n") {
		line := strings.TrimSpace(raw)
		if line == "" {
			continue
		}

		current = append(current, line)
		if pageBoundary.MatchString(line) {
			titles = append(titles, strings.Join(current, " "))
			current = nil
		}
	}

	if len(current) > 0 {
		titles = append(titles, strings.Join(current, " "))
	}

	return titles
}

// StripPageNumber removes a trailing page reference such as "143", "64,65" or
// "102-111". A title that is nothing but a page reference is kept as is.
func StripPageNumber(title string) string {
	title = strings.TrimSpace(title)

	cleaned := strings.TrimSpace(pageSuffix.ReplaceAllString(title, ""))
	if cleaned == "" {
		return title
	}
	return cleaned
}

// Titles extracts the distinct recipe titles from a transcribed index page.
func Titles(text string) []string {
	grouped := GroupTitles(text)

	titles := make([]string, 0, len(grouped))
	for _, t := range grouped {
		titles = append(titles, StripPageNumber(t))
	}

	return recipe.Dedupe(titles)
}

// Stub is a placeholder note for one cookbook recipe.
type Stub struct {
	Title    string
	Filename string
	Content  string
}

// NewStub builds the placeholder note for title, crediting source.
func NewStub(title, source string, date time.Time) Stub {
	fm := recipe.FrontMatter{
		Title:  title,
		Source: source,
		Tags:   Tags,
		Date:   date,
	}

	var b strings.Builder
	b.WriteString(fm.Render())
	b.WriteString("\n# " + title + "\n")
	b.WriteString("\n**Source:** " + source + "\n")
	b.WriteString("\n## Ingredients\n- \n")
	b.WriteString("\n## Instructions\n1. \n")

	return Stub{
		Title:    title,
		Filename: recipe.NoteFilename(title),
		Content:  b.String(),
	}
}

// Stubs builds one stub per title.
func Stubs(titles []string, source string, date time.Time) []Stub {
	stubs := make([]Stub, 0, len(titles))
	for _, title := range titles {
		stubs = append(stubs, NewStub(title, source, date))
	}
	return stubs
}
