package recipe

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/rs/zerolog"
)

// ContainerFallback reads the first matching container's visible text line
// by line. Lines that are empty after cleaning, or that mention one of the
// label words (most likely the section heading), are dropped. It returns nil
// when no container matches or nothing survives.
func ContainerFallback(
	doc *goquery.Document,
	containers, labels []string,
	cleaner *Cleaner,
	logger zerolog.Logger,
) []string {
	container := First(doc, containers, logger)
	if container == nil {
		return nil
	}

	lines := strings.Split(VisibleText(container), "\n")
	out := make([]string, 0, len(lines))
	for _, line := range cleaner.CleanLines(lines) {
		if hasLabel(line, labels) {
			continue
		}
		out = append(out, line)
	}

	if len(out) == 0 {
		return nil
	}
	return out
}

func hasLabel(line string, labels []string) bool {
	lower := strings.ToLower(line)
	for _, label := range labels {
		if strings.Contains(lower, label) {
			return true
		}
	}
	return false
}
