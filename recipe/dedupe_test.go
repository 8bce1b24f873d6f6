package recipe

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

// TestNormalizeKey verifies case and whitespace are ignored
func TestNormalizeKey(t *testing.T) {
	assert.Equal(t, "2 large eggs", NormalizeKey("  2 LARGE\t eggs "))
}

// TestDedupe_KeepsFirstOccurrence verifies stable first-seen dedup
func TestDedupe_KeepsFirstOccurrence(t *testing.T) {
	items := []string{"2 eggs", "1 cup Milk", "2 eggs ", "1 CUP  milk", "salt"}

	assert.Equal(t, []string{"2 eggs", "1 cup Milk", "salt"}, Dedupe(items))
}

// TestDedupe_DropsEmpty verifies empty items are removed
func TestDedupe_DropsEmpty(t *testing.T) {
	assert.Equal(t, []string{"a"}, Dedupe([]string{"", "  ", "a", ""}))
}

// TestDedupe_Empty verifies nil input yields an empty list
func TestDedupe_Empty(t *testing.T) {
	out := Dedupe(nil)
	assert.NotNil(t, out)
	assert.Empty(t, out)
}
