package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSlugify(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"simple title", "Hello World", "hello-world"},
		{"mixed case", "My First Blog Post", "my-first-blog-post"},
		{"accents removed", "Café au Lait", "cafe-au-lait"},
		{"punctuation stripped", "What's New? (2024 Edition!)", "whats-new-2024-edition"},
		{"collapses hyphens", "a -- b --- c", "a-b-c"},
		{"trims hyphens", "  -leading and trailing-  ", "leading-and-trailing"},
		{"already a slug", "about-me", "about-me"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, Slugify(tt.input))
		})
	}
}

func TestIsValidSlug(t *testing.T) {
	assert.True(t, IsValidSlug("home"))
	assert.True(t, IsValidSlug("my-post-2024"))
	assert.False(t, IsValidSlug(""))
	assert.False(t, IsValidSlug("-leading"))
	assert.False(t, IsValidSlug("trailing-"))
	assert.False(t, IsValidSlug("double--hyphen"))
	assert.False(t, IsValidSlug("With Spaces"))
	assert.False(t, IsValidSlug("UpperCase"))
}
