// Package discovery turns saved RSS and Atom feeds into recipe notes.
package discovery

import (
	"fmt"
	"io"
	"os"

	"github.com/mmcdole/gofeed"

	"github.com/pevans/recipenote/recipe"
)

// Skipped records a feed item that produced no recipe.
type Skipped struct {
	Title  string `json:"title"`
	Link   string `json:"link"`
	Reason string `json:"reason"`
}

// ImportReport is the outcome of importing one feed.
type ImportReport struct {
	FeedTitle string           `json:"feed_title"`
	Recipes   []*recipe.Result `json:"recipes"`
	Skipped   []Skipped        `json:"skipped"`
}

// ImportFeed parses an RSS or Atom document and extracts a recipe from each
// item's HTML body. The gofeed library detects the format. Items whose body
// yields neither ingredients nor instructions are skipped.
func ImportFeed(r io.Reader, extractor *recipe.Extractor) (*ImportReport, error) {
	fp := gofeed.NewParser()
	feed, err := fp.Parse(r)
	if err != nil {
		return nil, fmt.Errorf("failed to parse feed: %w", err)
	}

	report := &ImportReport{
		FeedTitle: feed.Title,
		Recipes:   make([]*recipe.Result, 0, len(feed.Items)),
		Skipped:   make([]Skipped, 0),
	}

	for _, item := range feed.Items {
		result, reason := importItem(item, extractor)
		if result == nil {
			report.Skipped = append(report.Skipped, Skipped{
				Title:  item.Title,
				Link:   item.Link,
				Reason: reason,
			})
			continue
		}
		report.Recipes = append(report.Recipes, result)
	}

	return report, nil
}

// ImportFeedFile imports a feed saved on disk.
func ImportFeedFile(path string, extractor *recipe.Extractor) (*ImportReport, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open feed file: %w", err)
	}
	defer f.Close()

	return ImportFeed(f, extractor)
}

func importItem(item *gofeed.Item, extractor *recipe.Extractor) (*recipe.Result, string) {
	// Content: from <content:encoded> (RSS) or <content> (Atom), falling back
	// to <description>/<summary>
	body := item.Content
	if body == "" {
		body = item.Description
	}
	if body == "" {
		return nil, "no content"
	}

	page, err := recipe.ParsePage(body, item.Link)
	if err != nil {
		return nil, err.Error()
	}

	result := extractor.Extract(page)
	if len(result.Ingredients) == 0 && len(result.Instructions) == 0 {
		return nil, "no recipe found"
	}

	// Feed bodies rarely carry their own heading
	if result.Title == recipe.DefaultTitle && item.Title != "" {
		result.Title = recipe.CollapseWhitespace(item.Title)
		result.Markdown = recipe.RenderMarkdown(result)
	}

	return result, ""
}
