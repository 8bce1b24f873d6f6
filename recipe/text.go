package recipe

import (
	"strings"

	"golang.org/x/net/html"
)

// VisibleText renders the text a reader would see for n. Block-level elements
// and <br> start new lines, whitespace inside a line is collapsed, and
// scripts, styles and hidden elements are skipped. Empty lines are dropped.
func VisibleText(n *html.Node) string {
	if n == nil {
		return ""
	}

	var b strings.Builder
	collectVisible(&b, n)

	lines := strings.Split(b.String(), "\n")
	out := make([]string, 0, len(lines))
	for _, line := range lines {
		line = CollapseWhitespace(line)
		if line != "" {
			out = append(out, line)
		}
	}
	return strings.Join(out, "\n")
}

// CollapseWhitespace replaces every whitespace run with a single space and
// trims both ends.
func CollapseWhitespace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

func collectVisible(b *strings.Builder, n *html.Node) {
	switch n.Type {
	case html.TextNode:
		b.WriteString(strings.Map(func(r rune) rune {
			if r == '\n' || r == '\r' || r == '\t' || r == '\f' {
				return ' '
			}
			return r
		}, n.Data))
		return
	case html.ElementNode:
		if isInvisible(n) {
			return
		}
	case html.CommentNode, html.DoctypeNode:
		return
	}

	name := strings.ToLower(n.Data)
	block := n.Type == html.ElementNode && isBlock(name)

	if n.Type == html.ElementNode {
		switch {
		case name == "br":
			b.WriteString("\n")
			return
		case name == "td" || name == "th":
			b.WriteString(" ")
		case block:
			b.WriteString("\n")
		}
	}

	for c := n.FirstChild; c != nil; c = c.NextSibling {
		collectVisible(b, c)
	}

	if block {
		b.WriteString("\n")
	}
}

func isInvisible(n *html.Node) bool {
	switch strings.ToLower(n.Data) {
	case "script", "style", "noscript", "template", "head", "svg", "iframe", "object":
		return true
	}

	for _, attr := range n.Attr {
		switch strings.ToLower(attr.Key) {
		case "hidden":
			return true
		case "style":
			style := strings.ReplaceAll(strings.ToLower(attr.Val), " ", "")
			if strings.Contains(style, "display:none") || strings.Contains(style, "visibility:hidden") {
				return true
			}
		}
	}
	return false
}

func isBlock(name string) bool {
	switch name {
	case "address", "article", "aside", "blockquote", "dd", "details", "div", "dl", "dt",
		"fieldset", "figcaption", "figure", "footer", "form", "h1", "h2", "h3", "h4", "h5", "h6",
		"header", "hr", "li", "main", "nav", "ol", "p", "pre", "section", "summary", "table",
		"tbody", "thead", "tfoot", "tr", "ul", "caption":
		return true
	}
	return false
}
