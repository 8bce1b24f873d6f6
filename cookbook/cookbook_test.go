package cookbook

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

const indexPage = `Lamb Pilau
143

Chickpea and
Spinach Curry 64,65
Dals 102-111
Lamb Pilau 143
Notes`

func TestGroupTitles(t *testing.T) {
	assert.Equal(t, []string{
		"Lamb Pilau 143",
		"Chickpea and Spinach Curry 64,65",
		"Dals 102-111",
		"Lamb Pilau 143",
		"Notes",
	}, GroupTitles(indexPage))
}

func TestGroupTitles_Empty(t *testing.T) {
	assert.Empty(t, GroupTitles("\n  \n"))
}

func TestStripPageNumber(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"Pilau 143", "Pilau"},
		{"Pilau 64,65", "Pilau"},
		{"Pilau 102-111", "Pilau"},
		{"Pilau", "Pilau"},
		{"Pilau 1234", "Pilau 1234"},
		{"  143  ", "143"},
		{"Pilau143", "Pilau143"},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, StripPageNumber(tt.in))
		})
	}
}

func TestTitles(t *testing.T) {
	assert.Equal(t, []string{
		"Lamb Pilau",
		"Chickpea and Spinach Curry",
		"Dals",
		"Notes",
	}, Titles(indexPage), "page numbers should be stripped and repeats dropped")
}

func TestNewStub(t *testing.T) {
	date := time.Date(2024, 3, 5, 9, 0, 0, 0, time.UTC)

	stub := NewStub("Lamb Pilau", "East", date)

	assert.Equal(t, "Lamb Pilau", stub.Title)
	assert.Equal(t, "lamb_pilau.md", stub.Filename)
	assert.Equal(t, `---
title: "Lamb Pilau"
source: "East"
tags: ["cookbook"]
date: 2024-03-05
---

# Lamb Pilau

**Source:** East

## Ingredients
- 

## Instructions
1. 
`, stub.Content)
}

func TestStubs(t *testing.T) {
	date := time.Date(2024, 3, 5, 0, 0, 0, 0, time.UTC)

	stubs := Stubs([]string{"Dals", "Notes"}, "East", date)

	assert.Len(t, stubs, 2)
	assert.Equal(t, "dals.md", stubs[0].Filename)
	assert.Equal(t, "notes.md", stubs[1].Filename)
}
