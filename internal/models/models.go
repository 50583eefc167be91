// internal/models/models.go
package models

import (
	"time"

	"github.com/google/uuid"
)

// Brand represents a tracked organization: the owner brand under analysis or
// one of its competitors. Brands are built once per analysis run and are
// immutable while the run is processed.
type Brand struct {
	Name    string   `json:"name"`
	IsOwner bool     `json:"is_owner"`
	Domain  string   `json:"domain,omitempty"`  // e.g. "ycombinator.com", used for citation classification
	Aliases []string `json:"aliases,omitempty"` // alternate spellings matched alongside the name
}

// Mention records a brand occurrence inside a single response.
type Mention struct {
	BrandName  string `json:"brand_name"`
	Position   int    `json:"position"`    // 1 = first brand to appear in the response
	CharOffset int    `json:"char_offset"` // offset of the first occurrence in the normalized text
	IsOwner    bool   `json:"is_owner"`
}

// Citation types.
const (
	CitationTypeBrand  = "brand"  // host owned by a tracked brand
	CitationTypeEarned = "earned" // third-party host
)

// Citation is a URL extracted from a response, cleaned and classified by
// domain ownership.
type Citation struct {
	URL        string `json:"url"`
	CleanedURL string `json:"cleaned_url"`
	Type       string `json:"type"`
	OwnerBrand string `json:"owner_brand,omitempty"` // set when Type == "brand"
}

// PromptCandidate is a generated prompt awaiting deduplication.
type PromptCandidate struct {
	Text           string `json:"text"`
	NormalizedHash string `json:"normalized_hash"`
}

// MetricsRecord is the per-brand aggregate over a full set of responses.
// Records are recomputed from scratch on every aggregation call.
type MetricsRecord struct {
	BrandName       string  `json:"brand_name"`
	IsOwner         bool    `json:"is_owner"`
	TotalMentions   int     `json:"total_mentions"`
	TotalResponses  int     `json:"total_responses"`
	VisibilityScore float64 `json:"visibility_score"` // % of responses mentioning the brand, 0..100
	AveragePosition float64 `json:"average_position"` // mean rank where mentioned, 0 if never mentioned
	DepthOfMention  float64 `json:"depth_of_mention"` // position-weighted %, earlier mentions score higher
}

// ResponseAnalysis holds everything extracted from one LLM response.
type ResponseAnalysis struct {
	Mentions  []Mention  `json:"mentions"`
	Citations []Citation `json:"citations"`
}

// AnalysisRun identifies one batch analysis over a set of responses.
type AnalysisRun struct {
	RunID          uuid.UUID `json:"run_id"`
	OwnerBrand     string    `json:"owner_brand"`
	TotalResponses int       `json:"total_responses"`
	CreatedAt      time.Time `json:"created_at"`
}

// AnalysisSummary is the batch result: per-response analyses, aggregated
// metrics, and any per-item processing errors (a bad response never aborts
// the batch).
type AnalysisSummary struct {
	Run              AnalysisRun        `json:"run"`
	Responses        []ResponseAnalysis `json:"responses"`
	Metrics          []MetricsRecord    `json:"metrics"`
	ProcessingErrors []string           `json:"processing_errors,omitempty"`
}
