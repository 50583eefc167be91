// services/evaluation_service.go
package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/AI-Template-SDK/senso-analysis/internal/models"
	"github.com/google/uuid"
)

type evaluationService struct {
	normalizer TextNormalizer
	matcher    BrandMatcher
	citations  CitationService
	metrics    MetricsService
}

// NewEvaluationService wires the full analysis pipeline.
func NewEvaluationService() EvaluationService {
	return &evaluationService{
		normalizer: NewTextNormalizer(),
		matcher:    NewBrandMatcher(),
		citations:  NewCitationService(),
		metrics:    NewMetricsService(),
	}
}

// AnalyzeResponse runs one response through the pipeline. Citations are
// extracted from the raw text before normalization destroys link syntax,
// then the normalized text is scanned for brand mentions. Malformed input
// (empty text, empty brand list) yields an empty analysis, never an error:
// one bad item must not abort an otherwise-successful batch.
func (s *evaluationService) AnalyzeResponse(ctx context.Context, responseText string, brands []models.Brand) *models.ResponseAnalysis {
	analysis := &models.ResponseAnalysis{
		Mentions:  []models.Mention{},
		Citations: []models.Citation{},
	}

	if strings.TrimSpace(responseText) == "" || len(brands) == 0 {
		return analysis
	}

	analysis.Citations = s.citations.ExtractAndClassify(responseText, brands)

	normalized := s.normalizer.Normalize(responseText)
	analysis.Mentions = s.matcher.FindMentions(normalized, brands)

	return analysis
}

// ProcessResponses analyzes a batch of responses and aggregates per-brand
// metrics over the full set. Empty responses (the upstream runner
// substitutes a default on LLM timeout) still count toward the response
// total; they are recorded as processing errors but never abort the batch.
func (s *evaluationService) ProcessResponses(ctx context.Context, responses []string, brands []models.Brand) *models.AnalysisSummary {
	fmt.Printf("[ProcessResponses] Processing %d responses against %d brands\n", len(responses), len(brands))

	summary := &models.AnalysisSummary{
		Run: models.AnalysisRun{
			RunID:          uuid.New(),
			OwnerBrand:     ownerBrandName(brands),
			TotalResponses: len(responses),
			CreatedAt:      time.Now().UTC(),
		},
		Responses:        make([]models.ResponseAnalysis, 0, len(responses)),
		ProcessingErrors: make([]string, 0),
	}

	mentionsByResponse := make([][]models.Mention, 0, len(responses))

	for i, responseText := range responses {
		if err := ctx.Err(); err != nil {
			summary.ProcessingErrors = append(summary.ProcessingErrors,
				fmt.Sprintf("processing stopped at response %d: %v", i+1, err))
			break
		}

		if strings.TrimSpace(responseText) == "" {
			summary.ProcessingErrors = append(summary.ProcessingErrors,
				fmt.Sprintf("response %d has no text", i+1))
		}

		analysis := s.AnalyzeResponse(ctx, responseText, brands)
		summary.Responses = append(summary.Responses, *analysis)
		mentionsByResponse = append(mentionsByResponse, analysis.Mentions)
	}

	summary.Metrics = s.metrics.Aggregate(mentionsByResponse, len(responses), brands)

	fmt.Printf("[ProcessResponses] Completed run %s: %d responses analyzed, %d brands scored, %d errors\n",
		summary.Run.RunID, len(summary.Responses), len(summary.Metrics), len(summary.ProcessingErrors))

	return summary
}

func ownerBrandName(brands []models.Brand) string {
	for _, brand := range brands {
		if brand.IsOwner {
			return brand.Name
		}
	}
	return ""
}
