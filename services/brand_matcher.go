// services/brand_matcher.go
package services

import (
	"regexp"
	"sort"
	"strings"

	"github.com/AI-Template-SDK/senso-analysis/internal/models"
)

type brandMatcher struct{}

// NewBrandMatcher creates the word-boundary brand matcher.
func NewBrandMatcher() BrandMatcher {
	return &brandMatcher{}
}

// matchTerm is one name or alias compiled for scanning, tied back to its brand.
type matchTerm struct {
	brandIndex int
	text       string
	pattern    *regexp.Regexp
}

// span is a half-open [start,end) range already claimed by a matched term.
type span struct {
	start int
	end   int
}

func (s span) overlaps(start, end int) bool {
	return start < s.end && s.start < end
}

// FindMentions scans normalized text for each brand's name and aliases using
// word-boundary matching, so "Chase" never matches inside "purchased".
// Longer terms are matched first and their spans excluded from shorter
// terms: with brands "Chase" and "JPMorgan Chase", the text "JPMorgan Chase
// announced" counts only the longer brand. Position is the 1-based rank of
// each brand's first occurrence, earliest offset first, ties broken by
// brand-list order. Brands that never occur are omitted.
func (m *brandMatcher) FindMentions(normalizedText string, brands []models.Brand) []models.Mention {
	if normalizedText == "" || len(brands) == 0 {
		return []models.Mention{}
	}

	terms := buildMatchTerms(brands)

	claimed := make([]span, 0)
	firstOffset := make(map[int]int, len(brands))

	for _, term := range terms {
		locs := term.pattern.FindAllStringIndex(normalizedText, -1)
		for _, loc := range locs {
			if overlapsAny(claimed, loc[0], loc[1]) {
				continue
			}
			claimed = append(claimed, span{start: loc[0], end: loc[1]})
			if offset, ok := firstOffset[term.brandIndex]; !ok || loc[0] < offset {
				firstOffset[term.brandIndex] = loc[0]
			}
		}
	}

	mentions := make([]models.Mention, 0, len(firstOffset))
	for idx, brand := range brands {
		offset, ok := firstOffset[idx]
		if !ok {
			continue // never mentioned, not recorded as zero-position
		}
		mentions = append(mentions, models.Mention{
			BrandName:  brand.Name,
			CharOffset: offset,
			IsOwner:    brand.IsOwner,
		})
	}

	// Rank by first occurrence; mentions are already in brand-list order, so
	// a stable sort keeps that order for equal offsets.
	sort.SliceStable(mentions, func(i, j int) bool {
		return mentions[i].CharOffset < mentions[j].CharOffset
	})
	for i := range mentions {
		mentions[i].Position = i + 1
	}

	return mentions
}

// buildMatchTerms compiles every brand name and alias, longest first, so the
// most specific term wins overlapping text.
func buildMatchTerms(brands []models.Brand) []matchTerm {
	terms := make([]matchTerm, 0, len(brands))
	for idx, brand := range brands {
		names := append([]string{brand.Name}, brand.Aliases...)
		for _, name := range names {
			text := strings.ToLower(strings.TrimSpace(name))
			if text == "" {
				continue
			}
			terms = append(terms, matchTerm{
				brandIndex: idx,
				text:       text,
				pattern:    regexp.MustCompile(`\b` + regexp.QuoteMeta(text) + `\b`),
			})
		}
	}
	sort.SliceStable(terms, func(i, j int) bool {
		return len(terms[i].text) > len(terms[j].text)
	})
	return terms
}

func overlapsAny(claimed []span, start, end int) bool {
	for _, s := range claimed {
		if s.overlaps(start, end) {
			return true
		}
	}
	return false
}
