package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSlugify(t *testing.T) {
	tests := []struct {
		name     string
		title    string
		expected string
	}{
		{
			name:     "czech diacritics",
			title:    "Příliš žluťoučký kůň",
			expected: "prilis-zlutoucky-kun",
		},
		{
			name:     "plain ascii with punctuation",
			title:    "Hello World!",
			expected: "hello-world-",
		},
		{
			name:     "uppercase",
			title:    "FINANCE",
			expected: "finance",
		},
		{
			name:     "digits kept",
			title:    "Top 10 zpráv roku 2024",
			expected: "top-10-zprav-roku-2024",
		},
		{
			name:     "empty",
			title:    "",
			expected: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, Slugify(tt.title))
		})
	}
}

func TestSlugifyIsIdempotent(t *testing.T) {
	once := Slugify("Příliš žluťoučký kůň")
	assert.Equal(t, once, Slugify(once))
}

func TestArticleSlug(t *testing.T) {
	assert.Equal(t, "prilis-zlutoucky-kun.html", ArticleSlug("Příliš žluťoučký kůň"))
}
