package recipe

import "regexp"

// stepBoundary marks a period, whitespace, then a capital letter: the usual
// sign that several steps were merged into one block.
var stepBoundary = regexp.MustCompile(`\.\s+\p{Lu}`)

// SplitSteps splits merged instruction text at every step boundary. The
// period stays with the segment before it. Segments are whitespace-collapsed
// and empty ones dropped; text without a boundary comes back unchanged.
func SplitSteps(text string) []string {
	bounds := stepBoundary.FindAllStringIndex(text, -1)
	if len(bounds) == 0 {
		return []string{text}
	}

	segments := make([]string, 0, len(bounds)+1)
	start := 0
	for _, b := range bounds {
		// Cut just after the period; the whitespace before the capital is
		// trimmed below.
		segments = append(segments, text[start:b[0]+1])
		start = b[0] + 1
	}
	segments = append(segments, text[start:])

	out := make([]string, 0, len(segments))
	for _, seg := range segments {
		if seg = CollapseWhitespace(seg); seg != "" {
			out = append(out, seg)
		}
	}
	return out
}
