// services/dedupe_service.go
package services

import (
	"crypto/sha256"
	"encoding/hex"
	"regexp"
	"strings"

	"github.com/AI-Template-SDK/senso-analysis/internal/config"
	"github.com/AI-Template-SDK/senso-analysis/internal/models"
	"github.com/agext/levenshtein"
)

type dedupeService struct {
	cfg    config.DedupeConfig
	params *levenshtein.Params
}

// NewDedupeService creates the prompt deduplicator with the configured
// tuning parameters.
func NewDedupeService(cfg *config.Config) DedupeService {
	return &dedupeService{
		cfg:    cfg.Dedupe,
		params: levenshtein.NewParams(),
	}
}

var promptPunctRe = regexp.MustCompile(`[^\p{L}\p{N}\s]+`)

// Dedupe filters the candidate list in generation order; earlier candidates
// always win. A candidate is rejected when (a) its normalized content hash
// exactly matches an accepted candidate, (b) its edit-distance similarity to
// any accepted candidate reaches the configured threshold, or (c) its
// opening phrase (first N normalized tokens) has already been used by the
// configured number of accepted candidates. Running Dedupe over its own
// output returns the same set.
func (d *dedupeService) Dedupe(candidates []string) []string {
	accepted := make([]string, 0, len(candidates))
	acceptedNorm := make([]string, 0, len(candidates))
	seenHashes := make(map[string]bool, len(candidates))
	leadUse := make(map[string]int)

	for _, candidate := range candidates {
		normalized := normalizePrompt(candidate)
		if normalized == "" {
			continue
		}

		hash := hashPrompt(normalized)
		if seenHashes[hash] {
			continue
		}

		if d.tooSimilar(normalized, acceptedNorm) {
			continue
		}

		lead := leadNgram(normalized, d.cfg.LeadNgramSize)
		if d.cfg.MaxLeadReuse > 0 && leadUse[lead] >= d.cfg.MaxLeadReuse {
			continue
		}

		accepted = append(accepted, candidate)
		acceptedNorm = append(acceptedNorm, normalized)
		seenHashes[hash] = true
		leadUse[lead]++
	}

	return accepted
}

// Fingerprint returns the candidate with its normalized content hash.
func (d *dedupeService) Fingerprint(text string) models.PromptCandidate {
	return models.PromptCandidate{
		Text:           text,
		NormalizedHash: hashPrompt(normalizePrompt(text)),
	}
}

func (d *dedupeService) tooSimilar(normalized string, acceptedNorm []string) bool {
	for _, existing := range acceptedNorm {
		if levenshtein.Similarity(normalized, existing, d.params) >= d.cfg.SimilarityThreshold {
			return true
		}
	}
	return false
}

// normalizePrompt lowercases, strips punctuation and collapses whitespace so
// trivially reworded candidates hash and compare identically.
func normalizePrompt(text string) string {
	out := strings.ToLower(text)
	out = promptPunctRe.ReplaceAllString(out, " ")
	return strings.Join(strings.Fields(out), " ")
}

func hashPrompt(normalized string) string {
	sum := sha256.Sum256([]byte(normalized))
	return hex.EncodeToString(sum[:])
}

// leadNgram joins the first n normalized tokens; shorter prompts use all
// their tokens.
func leadNgram(normalized string, n int) string {
	tokens := strings.Fields(normalized)
	if n > 0 && len(tokens) > n {
		tokens = tokens[:n]
	}
	return strings.Join(tokens, " ")
}
