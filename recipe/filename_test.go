package recipe

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

// TestNoteFilename verifies title to file name conversion
func TestNoteFilename(t *testing.T) {
	tests := []struct {
		name  string
		title string
		want  string
	}{
		{"spaces become underscores", "Test Cake", "test_cake.md"},
		{"whitespace runs collapse", "Best   Ever\tBrownies", "best_ever_brownies.md"},
		{"invalid characters removed", `Mac & Cheese: "The" Best?`, "mac_&_cheese_the_best.md"},
		{"slashes removed", "Salt/Pepper Steak", "saltpepper_steak.md"},
		{"empty title", "   ", "untitled_recipe.md"},
		{"only invalid characters", `<>?*`, "untitled_recipe.md"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, NoteFilename(tt.title))
		})
	}
}

// TestNoteFilename_Truncates verifies long titles are cut to 50 runes
func TestNoteFilename_Truncates(t *testing.T) {
	name := NoteFilename(strings.Repeat("é", 80))

	assert.Equal(t, strings.Repeat("é", 50)+".md", name)
}
