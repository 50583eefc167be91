// services/text_normalizer.go
package services

import (
	"regexp"
	"strings"
)

type textNormalizer struct{}

// NewTextNormalizer creates the normalizer used ahead of brand matching.
func NewTextNormalizer() TextNormalizer {
	return &textNormalizer{}
}

var (
	markdownLinkRe   = regexp.MustCompile(`\[([^\]]*)\]\([^)]*\)`)
	markdownHeaderRe = regexp.MustCompile(`(?m)^#{1,6}[ \t]*`)
	markdownBulletRe = regexp.MustCompile(`(?m)^[ \t]*[-*+][ \t]+`)
	whitespaceRe     = regexp.MustCompile(`\s+`)

	emphasisReplacer = strings.NewReplacer("**", "", "__", "", "`", "")

	// Trailing punctuation stripped per word so "Chase." matches "Chase".
	trailingPunct = `.,;:!?'")]}`
)

// Normalize lowercases the text, strips markdown syntax, collapses
// whitespace and removes trailing punctuation from each word. URLs are
// extracted from the raw text before this runs, so link syntax is safe to
// destroy here.
func (n *textNormalizer) Normalize(text string) string {
	if text == "" {
		return ""
	}

	out := strings.ToLower(text)
	out = markdownLinkRe.ReplaceAllString(out, "$1") // keep the label, drop the URL
	out = markdownHeaderRe.ReplaceAllString(out, "")
	out = markdownBulletRe.ReplaceAllString(out, "")
	out = emphasisReplacer.Replace(out)
	out = whitespaceRe.ReplaceAllString(out, " ")
	out = strings.TrimSpace(out)
	if out == "" {
		return ""
	}

	words := strings.Split(out, " ")
	for i, word := range words {
		words[i] = strings.TrimRight(word, trailingPunct)
	}
	return strings.Join(words, " ")
}
