package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCamelToSnake(t *testing.T) {
	assert.Equal(t, "page_size", CamelToSnake("PageSize"))
	assert.Equal(t, "confirmation_code", CamelToSnake("ConfirmationCode"))
	assert.Equal(t, "year", CamelToSnake("Year"))
}

func TestSlugify(t *testing.T) {
	cases := []struct {
		input    string
		expected string
	}{
		{"Science Fiction", "science-fiction"},
		{"Rock-n-roll!", "rock-n-roll"},
		{"Café résumé", "cafe-resume"},
		{"  Drama  ", "drama"},
		{"Top 10", "top-10"},
	}
	for _, c := range cases {
		assert.Equal(t, c.expected, Slugify(c.input), c.input)
	}
}

func TestIsValidSlug(t *testing.T) {
	assert.True(t, IsValidSlug("sci-fi"))
	assert.True(t, IsValidSlug("top10"))
	assert.False(t, IsValidSlug(""))
	assert.False(t, IsValidSlug("-drama"))
	assert.False(t, IsValidSlug("dra--ma"))
	assert.False(t, IsValidSlug("Drama"))
	assert.False(t, IsValidSlug("sci fi"))
}
