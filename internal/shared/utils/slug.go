package utils

import "strings"

// Czech diacritics mapped to their base Latin letters.
var diacritics = map[rune]rune{
	'á': 'a', 'č': 'c', 'ď': 'd', 'é': 'e', 'ě': 'e',
	'í': 'i', 'ň': 'n', 'ó': 'o', 'ř': 'r', 'š': 's',
	'ť': 't', 'ú': 'u', 'ů': 'u', 'ý': 'y', 'ž': 'z',

	'Á': 'a', 'Č': 'c', 'Ď': 'd', 'É': 'e', 'Ě': 'e',
	'Í': 'i', 'Ň': 'n', 'Ó': 'o', 'Ř': 'r', 'Š': 's',
	'Ť': 't', 'Ú': 'u', 'Ů': 'u', 'Ý': 'y', 'Ž': 'z',
}

// Slugify turns an article title into a filesystem and URL safe name:
// lowercased, diacritics transliterated, anything outside [a-z0-9]
// replaced with '-'. Deterministic and idempotent.
func Slugify(title string) string {
	lower := strings.ToLower(title)

	var b strings.Builder
	b.Grow(len(lower))
	for _, r := range lower {
		if base, ok := diacritics[r]; ok {
			b.WriteRune(base)
			continue
		}
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
		default:
			b.WriteRune('-')
		}
	}
	return b.String()
}

// ArticleSlug is the full slug used as the article key and its URL path.
func ArticleSlug(title string) string {
	return Slugify(title) + ".html"
}
