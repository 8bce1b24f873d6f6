package scraper

import (
	"regexp"
	"testing"

	"github.com/andybalholm/cascadia"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestDefaultConfig_Compiles verifies every built-in selector and rule is
// valid
func TestDefaultConfig_Compiles(t *testing.T) {
	cfg := DefaultConfig()

	groups := [][]string{
		cfg.TitleSelectors,
		cfg.IngredientSelectors,
		cfg.InstructionSelectors,
		cfg.IngredientContainers,
		cfg.InstructionContainers,
	}
	for _, group := range groups {
		require.NotEmpty(t, group)
		for _, sel := range group {
			_, err := cascadia.Compile(sel)
			assert.NoError(t, err, sel)
		}
	}

	for _, rule := range cfg.Boilerplate {
		_, err := regexp.Compile("(?i)" + rule.Pattern)
		assert.NoError(t, err, rule.Pattern)
	}
}

// TestMerge verifies extras are appended without touching the receiver
func TestMerge(t *testing.T) {
	base := DefaultConfig()
	titles := len(base.TitleSelectors)

	merged := base.Merge(&Config{
		TitleSelectors: []string{"h2.headline"},
		Boilerplate:    []CleanRule{{Pattern: `\bsponsored\b`}},
	})

	assert.Len(t, base.TitleSelectors, titles, "receiver should be unchanged")
	assert.Equal(t, "h2.headline", merged.TitleSelectors[titles])
	assert.Equal(t, `\bsponsored\b`, merged.Boilerplate[len(merged.Boilerplate)-1].Pattern)
	assert.Equal(t, base.IngredientSelectors, merged.IngredientSelectors)
}

// TestMerge_Nil verifies a nil extra yields an independent copy
func TestMerge_Nil(t *testing.T) {
	base := DefaultConfig()
	merged := base.Merge(nil)

	assert.Equal(t, base, merged)
	merged.TitleSelectors[0] = "h2"
	assert.Equal(t, "h1", base.TitleSelectors[0])
}
