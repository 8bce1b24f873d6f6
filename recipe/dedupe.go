package recipe

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// NormalizeKey is the comparison form of an item: lower-cased with
// whitespace runs collapsed. It is never displayed.
func NormalizeKey(s string) string {
	return CollapseWhitespace(cases.Lower(language.Und).String(s))
}

// Dedupe keeps the first item for each normalized key, preserving order.
// Items that are empty after trimming are dropped.
func Dedupe(items []string) []string {
	seen := make(map[string]struct{}, len(items))
	out := make([]string, 0, len(items))

	for _, item := range items {
		item = strings.TrimSpace(item)
		if item == "" {
			continue
		}

		key := NormalizeKey(item)
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, item)
	}

	return out
}
