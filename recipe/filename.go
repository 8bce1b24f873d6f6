package recipe

import (
	"regexp"
	"strings"
)

const maxFilenameRunes = 50

var (
	whitespaceRun    = regexp.MustCompile(`\s+`)
	invalidFileChars = regexp.MustCompile(`[<>:"/\\|?*\x00-\x1f]`)
)

// NoteFilename derives the note's file name from its title: lower-cased,
// whitespace runs turned into underscores, characters that are invalid in
// file names removed, and at most 50 runes before the ".md" suffix.
func NoteFilename(title string) string {
	name := strings.ToLower(strings.TrimSpace(title))
	name = invalidFileChars.ReplaceAllString(name, "")
	name = whitespaceRun.ReplaceAllString(name, "_")

	if runes := []rune(name); len(runes) > maxFilenameRunes {
		name = string(runes[:maxFilenameRunes])
	}
	name = strings.Trim(name, "._")

	if name == "" {
		name = "untitled_recipe"
	}
	return name + ".md"
}
