package recipe

import (
	"github.com/PuerkitoBio/goquery"
	"github.com/andybalholm/cascadia"
	"github.com/rs/zerolog"
	"golang.org/x/net/html"
)

// Locate returns every element matched by any of the selectors, each element
// once, in the order it was first seen while probing the selectors in turn.
// goquery silently matches nothing for a selector it cannot parse, so each
// selector is compiled here first and a failure is logged and skipped.
func Locate(doc *goquery.Document, selectors []string, logger zerolog.Logger) []*html.Node {
	if doc == nil {
		return nil
	}

	seen := make(map[*html.Node]struct{})
	var nodes []*html.Node

	for _, selector := range selectors {
		matcher, err := cascadia.Compile(selector)
		if err != nil {
			logger.Warn().Err(err).Str("selector", selector).Msg("skipping selector that failed to compile")
			continue
		}

		doc.FindMatcher(matcher).Each(func(_ int, s *goquery.Selection) {
			for _, n := range s.Nodes {
				if _, ok := seen[n]; ok {
					continue
				}
				seen[n] = struct{}{}
				nodes = append(nodes, n)
			}
		})
	}

	return nodes
}

// First returns the first element matched by the selectors, probing them in
// order, or nil.
func First(doc *goquery.Document, selectors []string, logger zerolog.Logger) *html.Node {
	for _, selector := range selectors {
		nodes := Locate(doc, []string{selector}, logger)
		if len(nodes) > 0 {
			return nodes[0]
		}
	}
	return nil
}
