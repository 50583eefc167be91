package services_test

import (
	"reflect"
	"testing"

	"github.com/AI-Template-SDK/senso-analysis/internal/config"
	"github.com/AI-Template-SDK/senso-analysis/services"
)

func newTestDedupeService() services.DedupeService {
	return services.NewDedupeService(&config.Config{
		Dedupe: config.DedupeConfig{
			SimilarityThreshold: 0.82,
			LeadNgramSize:       4,
			MaxLeadReuse:        2,
		},
	})
}

func TestDedupeExactDuplicates(t *testing.T) {
	service := newTestDedupeService()

	candidates := []string{
		"What is the best bank for students?",
		"what is the best bank for students",
		"WHAT IS THE BEST BANK FOR STUDENTS?!",
	}

	survivors := service.Dedupe(candidates)
	if len(survivors) != 1 {
		t.Fatalf("Dedupe() kept %d candidates, want 1: %v", len(survivors), survivors)
	}
	if survivors[0] != candidates[0] {
		t.Errorf("survivor = %q, want the first occurrence %q", survivors[0], candidates[0])
	}
}

func TestDedupeNearDuplicates(t *testing.T) {
	service := newTestDedupeService()

	// One-word difference on a long prompt keeps the edit-distance
	// similarity well above the threshold.
	candidates := []string{
		"what are the best savings accounts for students",
		"what are the best savings account for students",
	}

	survivors := service.Dedupe(candidates)
	if len(survivors) != 1 {
		t.Fatalf("Dedupe() kept %d candidates, want 1: %v", len(survivors), survivors)
	}
}

func TestDedupeKeepsDistinctCandidates(t *testing.T) {
	service := newTestDedupeService()

	candidates := []string{
		"what are the best savings accounts for students",
		"how do mortgage rates respond to federal reserve decisions",
		"which credit cards offer the strongest travel rewards",
	}

	survivors := service.Dedupe(candidates)
	if !reflect.DeepEqual(survivors, candidates) {
		t.Errorf("Dedupe() = %v, want all distinct candidates kept in order", survivors)
	}
}

func TestDedupeLeadPhraseFloor(t *testing.T) {
	service := newTestDedupeService()

	// All five share the same four-token opener but carry long distinct
	// tails, so the similarity check never fires. The lead-phrase floor
	// must cap survivors at the configured reuse limit.
	candidates := []string{
		"What should I know about high yield savings accounts before opening one",
		"What should I know about international wire transfer fees at major retail banks",
		"What should I know about mortgage refinancing when interest rates are falling",
		"What should I know about small business lending requirements and credit checks",
		"What should I know about credit card rewards programs for frequent travelers",
	}

	survivors := service.Dedupe(candidates)
	if len(survivors) != 2 {
		t.Fatalf("Dedupe() kept %d candidates, want 2 (lead phrase reuse limit): %v", len(survivors), survivors)
	}
	if survivors[0] != candidates[0] || survivors[1] != candidates[1] {
		t.Errorf("survivors = %v, want the first two candidates", survivors)
	}
}

func TestDedupeSkipsBlankCandidates(t *testing.T) {
	service := newTestDedupeService()

	survivors := service.Dedupe([]string{"", "   ", "?!?", "what is a checking account"})
	if len(survivors) != 1 {
		t.Fatalf("Dedupe() kept %d candidates, want 1: %v", len(survivors), survivors)
	}
	if survivors[0] != "what is a checking account" {
		t.Errorf("survivor = %q, want the only non-blank candidate", survivors[0])
	}
}

func TestDedupeIdempotent(t *testing.T) {
	service := newTestDedupeService()

	candidates := []string{
		"What is the best bank for students?",
		"what is the best bank for students",
		"What should I know about high yield savings accounts before opening one",
		"What should I know about international wire transfer fees at major retail banks",
		"What should I know about mortgage refinancing when interest rates are falling",
		"how do mortgage rates respond to federal reserve decisions",
	}

	once := service.Dedupe(candidates)
	twice := service.Dedupe(once)

	if !reflect.DeepEqual(once, twice) {
		t.Errorf("Dedupe() is not idempotent: first pass %v, second pass %v", once, twice)
	}
}

func TestFingerprint(t *testing.T) {
	service := newTestDedupeService()

	a := service.Fingerprint("What is Chase?")
	b := service.Fingerprint("what is chase")
	c := service.Fingerprint("what is citi")

	if a.NormalizedHash != b.NormalizedHash {
		t.Errorf("Fingerprint() hashes differ for equivalent prompts: %s vs %s",
			a.NormalizedHash, b.NormalizedHash)
	}
	if a.NormalizedHash == c.NormalizedHash {
		t.Errorf("Fingerprint() hashes collide for different prompts")
	}
	if a.Text != "What is Chase?" {
		t.Errorf("Fingerprint() text = %q, want the original candidate text", a.Text)
	}
}
