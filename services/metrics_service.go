// services/metrics_service.go
package services

import (
	"math"

	"github.com/AI-Template-SDK/senso-analysis/internal/models"
)

type metricsService struct{}

// NewMetricsService creates the per-brand metrics aggregator.
func NewMetricsService() MetricsService {
	return &metricsService{}
}

// Aggregate recomputes per-brand metrics from scratch over the full set of
// per-response mentions. Every tracked brand gets a record, zero-mention
// brands included with all-zero scores. Safe to call repeatedly as
// responses accumulate.
//
// VisibilityScore = round(100 * responses containing the brand / total),
// capped at 100 so duplicate mention records can never push it over.
// AveragePosition averages the brand's rank over responses where it
// appears; absent responses contribute no penalty. DepthOfMention weights
// mentions by 1/position, normalized to a percentage, so appearing first
// always scores higher than appearing later.
func (m *metricsService) Aggregate(mentionsByResponse [][]models.Mention, totalResponses int, brands []models.Brand) []models.MetricsRecord {
	records := make([]models.MetricsRecord, 0, len(brands))

	for _, brand := range brands {
		var (
			totalMentions int
			responsesWith int
			positionSum   float64
			reciprocalSum float64
		)

		for _, mentions := range mentionsByResponse {
			var first *models.Mention
			for i := range mentions {
				if mentions[i].BrandName != brand.Name {
					continue
				}
				totalMentions++
				if first == nil {
					first = &mentions[i]
				}
			}
			if first == nil || first.Position <= 0 {
				continue
			}
			responsesWith++
			positionSum += float64(first.Position)
			reciprocalSum += 1 / float64(first.Position)
		}

		visibility := math.Round(100 * safeRatio(float64(responsesWith), float64(totalResponses)))
		if visibility > 100 {
			visibility = 100
		}

		records = append(records, models.MetricsRecord{
			BrandName:       brand.Name,
			IsOwner:         brand.IsOwner,
			TotalMentions:   totalMentions,
			TotalResponses:  totalResponses,
			VisibilityScore: visibility,
			AveragePosition: safeRatio(positionSum, float64(responsesWith)),
			DepthOfMention:  100 * safeRatio(reciprocalSum, float64(responsesWith)),
		})
	}

	return records
}

// safeRatio is the single division guard behind every percentage and
// average: zero or negative denominators yield 0, never NaN or Inf.
func safeRatio(numerator, denominator float64) float64 {
	if denominator <= 0 {
		return 0
	}
	return numerator / denominator
}
