package preview

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const note = `---
title: "Test <Cake>"
source: "https://example.com/test-cake"
tags: ["recipe", "saved"]
date: 2024-03-05
---

# Test Cake

## Ingredients
- 2 cups flour

## Instructions
1. Mix well.
`

func TestBody_SkipsFrontMatter(t *testing.T) {
	out, err := New().Body([]byte(note))
	require.NoError(t, err)

	html := string(out)
	assert.NotContains(t, html, "source:")
	assert.Contains(t, html, `<h1 id="test-cake">Test Cake</h1>`)
	assert.Contains(t, html, "<li>2 cups flour</li>")
	assert.Contains(t, html, "<ol>\n<li>Mix well.</li>\n</ol>")
}

func TestBody_WithoutFrontMatter(t *testing.T) {
	out, err := New().Body([]byte("## Ingredients\n- salt\n"))
	require.NoError(t, err)
	assert.Contains(t, string(out), "<li>salt</li>")
}

func TestBody_DropsRawHTML(t *testing.T) {
	out, err := New().Body([]byte("- <script>alert(1)</script> sugar\n"))
	require.NoError(t, err)
	assert.NotContains(t, string(out), "<script>")
}

func TestDocument_EscapesTitle(t *testing.T) {
	out, err := New().Document([]byte(note))
	require.NoError(t, err)

	html := string(out)
	assert.Contains(t, html, "<title>Test &lt;Cake&gt;</title>")
	assert.Contains(t, html, "<li>2 cups flour</li>")
}

func TestDocument_DefaultTitle(t *testing.T) {
	out, err := New().Document([]byte("# Soup\n"))
	require.NoError(t, err)
	assert.Contains(t, string(out), "<title>Recipe</title>")
}
