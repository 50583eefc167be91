// services/interfaces.go
package services

import (
	"context"

	"github.com/AI-Template-SDK/senso-analysis/internal/models"
)

// TextNormalizer prepares raw response text for brand matching.
type TextNormalizer interface {
	Normalize(text string) string
}

// BrandMatcher scans normalized text for brand occurrences.
type BrandMatcher interface {
	FindMentions(normalizedText string, brands []models.Brand) []models.Mention
}

// CitationService extracts URLs from raw response text and classifies them
// by domain ownership.
type CitationService interface {
	ExtractCitations(rawText string) []models.Citation
	// Classify returns the citation type and, for brand citations, the
	// owning brand's name.
	Classify(citation models.Citation, brands []models.Brand) (string, string)
	ExtractAndClassify(rawText string, brands []models.Brand) []models.Citation
}

// MetricsService aggregates per-response mentions into per-brand metrics.
type MetricsService interface {
	Aggregate(mentionsByResponse [][]models.Mention, totalResponses int, brands []models.Brand) []models.MetricsRecord
}

// DedupeService filters near-duplicate prompt candidates.
type DedupeService interface {
	Dedupe(candidates []string) []string
	Fingerprint(text string) models.PromptCandidate
}

// EvaluationService runs the full analysis pipeline over one or many
// responses.
type EvaluationService interface {
	AnalyzeResponse(ctx context.Context, responseText string, brands []models.Brand) *models.ResponseAnalysis
	ProcessResponses(ctx context.Context, responses []string, brands []models.Brand) *models.AnalysisSummary
}
