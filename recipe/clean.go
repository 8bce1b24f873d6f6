package recipe

import (
	"fmt"
	"regexp"

	"github.com/pevans/recipenote/scraper"
)

// maxCleanPasses bounds the passes that do not shorten the text, for rule
// sets whose replacements are not deletions. Passes that shorten the text are
// not counted.
const maxCleanPasses = 8

type cleanRule struct {
	re          *regexp.Regexp
	replacement string
}

// Cleaner strips boilerplate from scraped text. A Cleaner is immutable and
// safe for concurrent use.
type Cleaner struct {
	rules []cleanRule
}

// NewCleaner compiles the rules in order. Every pattern is matched
// case-insensitively.
func NewCleaner(rules []scraper.CleanRule) (*Cleaner, error) {
	compiled := make([]cleanRule, 0, len(rules))
	for i, rule := range rules {
		re, err := regexp.Compile("(?i)" + rule.Pattern)
		if err != nil {
			return nil, fmt.Errorf("invalid boilerplate rule %d (%q): %w", i, rule.Pattern, err)
		}
		compiled = append(compiled, cleanRule{re: re, replacement: rule.Replacement})
	}

	return &Cleaner{rules: compiled}, nil
}

// Clean applies every rule, collapses whitespace and trims. The first pass
// sees the original line breaks, so an attribution ends at the end of its
// line. Passes repeat until the text stops changing, which makes
// Clean(Clean(s)) == Clean(s).
func (c *Cleaner) Clean(s string) string {
	for stalled := 0; stalled < maxCleanPasses; {
		next := s
		for _, rule := range c.rules {
			next = rule.re.ReplaceAllString(next, rule.replacement)
		}
		next = CollapseWhitespace(next)
		if next == s {
			break
		}
		if len(next) >= len(s) {
			stalled++
		}
		s = next
	}
	return s
}

// CleanLines cleans each line separately and drops lines that end up
// empty.
func (c *Cleaner) CleanLines(lines []string) []string {
	out := make([]string, 0, len(lines))
	for _, line := range lines {
		if cleaned := c.Clean(line); cleaned != "" {
			out = append(out, cleaned)
		}
	}
	return out
}
