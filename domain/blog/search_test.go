package blog

import (
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
)

func TestHighlightTermPreservesCase(t *testing.T) {
	got := highlightTerm("Go Tips and go tricks", "go")
	assert.Equal(t, "<mark>Go</mark> Tips and <mark>go</mark> tricks", got)
}

func TestHighlightTermNoMatch(t *testing.T) {
	assert.Equal(t, "nothing here", highlightTerm("nothing here", "rust"))
}

func TestHighlightTermEmptyTerm(t *testing.T) {
	assert.Equal(t, "unchanged", highlightTerm("unchanged", ""))
}

func TestHighlightTermMultibyteNeighbors(t *testing.T) {
	// Lowercasing 'İ' grows it by a byte; the span after it must stay put.
	got := highlightTerm("İ trip", "trip")
	assert.Equal(t, "İ <mark>trip</mark>", got)

	got = highlightTerm("İtrip", "trip")
	assert.Equal(t, "İ<mark>trip</mark>", got)
	assert.True(t, utf8.ValidString(got))
}

func TestHighlightTermFoldedRune(t *testing.T) {
	// The Kelvin sign folds to k without sharing its byte length.
	got := highlightTerm("273K above", "k")
	assert.Equal(t, "273<mark>K</mark> above", got)
	assert.True(t, utf8.ValidString(got))
}

func TestHighlightPostLeavesContentAlone(t *testing.T) {
	p := BlogPost{Title: "Go Tips", Excerpt: "about go", Content: "go go go"}

	got := highlightPost(p, "go")

	assert.Equal(t, "<mark>Go</mark> Tips", got.Title)
	assert.Equal(t, "about <mark>go</mark>", got.Excerpt)
	assert.Equal(t, "go go go", got.Content)
}

func TestBuildSearchEmpty(t *testing.T) {
	where, args := buildSearch(SearchRequest{})
	assert.Empty(t, where)
	assert.Empty(t, args)
}

func TestBuildSearchCombined(t *testing.T) {
	published := true
	where, args := buildSearch(SearchRequest{
		Query:     "go",
		Author:    "admin",
		Published: &published,
	})

	assert.Contains(t, where, "title ILIKE $1")
	assert.Contains(t, where, "author ILIKE $2")
	assert.Contains(t, where, "published = $3")
	assert.Len(t, args, 3)
}
