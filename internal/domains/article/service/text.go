package service

import "strings"

// ProcessShortText converts a raw teaser into an inline HTML fragment.
// Blank-line separated paragraphs are joined with "</p><p>", single
// newlines become "<br>\n". The surrounding <p> tags come from the
// template.
func ProcessShortText(raw string) string {
	normalized := strings.ReplaceAll(raw, "\r\n", "\n")

	var paragraphs []string
	for _, p := range strings.Split(normalized, "\n\n") {
		if strings.TrimSpace(p) == "" {
			continue
		}
		paragraphs = append(paragraphs, strings.ReplaceAll(strings.TrimSpace(p), "\n", "<br>\n"))
	}
	return strings.Join(paragraphs, "</p><p>")
}

// ProcessText converts a raw article body into its HTML representation.
// Triple newlines delimit container blocks, double newlines delimit
// paragraphs within a block, and paragraphs indented with three spaces
// render as blockquotes.
func ProcessText(raw string) string {
	normalized := strings.ReplaceAll(raw, "\r\n", "\n")

	var blocks []string
	for _, block := range strings.Split(normalized, "\n\n\n") {
		if strings.TrimSpace(block) == "" {
			continue
		}

		var inner strings.Builder
		for _, p := range strings.Split(block, "\n\n") {
			if strings.TrimSpace(p) == "" {
				continue
			}
			if strings.HasPrefix(p, "   ") {
				inner.WriteString("<blockquote>" + strings.TrimSpace(p) + "</blockquote>")
			} else {
				inner.WriteString("<p>" + strings.ReplaceAll(strings.TrimSpace(p), "\n", " ") + "</p>")
			}
		}
		blocks = append(blocks, `<div class="container">`+inner.String()+`</div>`)
	}
	return strings.Join(blocks, "")
}
