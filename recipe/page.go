package recipe

import (
	"fmt"
	"io"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// Page is an already-loaded document together with the location it was
// loaded from. Pages are not safe for concurrent use.
type Page struct {
	Doc *goquery.Document
	URL string
}

// NewPage parses HTML from r into a Page.
func NewPage(r io.Reader, pageURL string) (*Page, error) {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return nil, fmt.Errorf("failed to parse HTML: %w", err)
	}

	return &Page{Doc: doc, URL: pageURL}, nil
}

// ParsePage is NewPage for HTML held in a string.
func ParsePage(html, pageURL string) (*Page, error) {
	return NewPage(strings.NewReader(html), pageURL)
}
