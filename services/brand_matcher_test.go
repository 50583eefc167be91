package services_test

import (
	"testing"

	"github.com/AI-Template-SDK/senso-analysis/internal/models"
	"github.com/AI-Template-SDK/senso-analysis/services"
)

func TestFindMentionsWordBoundary(t *testing.T) {
	matcher := services.NewBrandMatcher()
	normalizer := services.NewTextNormalizer()

	brands := []models.Brand{{Name: "Chase", IsOwner: true}}

	// "Chase" must not match inside "purchased".
	text := normalizer.Normalize("We purchased from Chase")
	mentions := matcher.FindMentions(text, brands)

	if len(mentions) != 1 {
		t.Fatalf("FindMentions() returned %d mentions, want 1", len(mentions))
	}
	if mentions[0].BrandName != "Chase" {
		t.Errorf("mention brand = %s, want Chase", mentions[0].BrandName)
	}
	if mentions[0].CharOffset != 18 {
		t.Errorf("mention offset = %d, want 18 (start of the standalone word)", mentions[0].CharOffset)
	}
	if mentions[0].Position != 1 {
		t.Errorf("mention position = %d, want 1", mentions[0].Position)
	}
	if !mentions[0].IsOwner {
		t.Errorf("mention IsOwner = false, want true")
	}

	// No standalone occurrence at all.
	mentions = matcher.FindMentions("we purchased a new car", brands)
	if len(mentions) != 0 {
		t.Errorf("FindMentions() inside larger word returned %d mentions, want 0", len(mentions))
	}
}

func TestFindMentionsSubstringBrandPrecedence(t *testing.T) {
	matcher := services.NewBrandMatcher()

	brands := []models.Brand{
		{Name: "Chase"},
		{Name: "JPMorgan Chase"},
	}

	mentions := matcher.FindMentions("jpmorgan chase announced a new card", brands)

	if len(mentions) != 1 {
		t.Fatalf("FindMentions() returned %d mentions, want 1 (no double count)", len(mentions))
	}
	if mentions[0].BrandName != "JPMorgan Chase" {
		t.Errorf("mention brand = %s, want JPMorgan Chase (longer term wins)", mentions[0].BrandName)
	}

	// A later standalone "chase" still counts for the shorter brand.
	mentions = matcher.FindMentions("jpmorgan chase competes with chase retail", brands)
	if len(mentions) != 2 {
		t.Fatalf("FindMentions() returned %d mentions, want 2", len(mentions))
	}
	if mentions[0].BrandName != "JPMorgan Chase" || mentions[0].Position != 1 {
		t.Errorf("first mention = %s (pos %d), want JPMorgan Chase at position 1",
			mentions[0].BrandName, mentions[0].Position)
	}
	if mentions[1].BrandName != "Chase" || mentions[1].Position != 2 {
		t.Errorf("second mention = %s (pos %d), want Chase at position 2",
			mentions[1].BrandName, mentions[1].Position)
	}
}

func TestFindMentionsPositionOrdering(t *testing.T) {
	matcher := services.NewBrandMatcher()

	brands := []models.Brand{
		{Name: "Citi"},
		{Name: "Chase", IsOwner: true},
		{Name: "Wells Fargo"},
	}

	mentions := matcher.FindMentions("chase leads, followed by wells fargo and then citi", brands)

	if len(mentions) != 3 {
		t.Fatalf("FindMentions() returned %d mentions, want 3", len(mentions))
	}

	expectedOrder := []string{"Chase", "Wells Fargo", "Citi"}
	for i, want := range expectedOrder {
		if mentions[i].BrandName != want {
			t.Errorf("position %d brand = %s, want %s", i+1, mentions[i].BrandName, want)
		}
		if mentions[i].Position != i+1 {
			t.Errorf("brand %s position = %d, want %d", mentions[i].BrandName, mentions[i].Position, i+1)
		}
	}
}

func TestFindMentionsAliases(t *testing.T) {
	matcher := services.NewBrandMatcher()

	brands := []models.Brand{
		{Name: "Y Combinator", Aliases: []string{"YC"}},
	}

	mentions := matcher.FindMentions("yc is the best-known accelerator", brands)
	if len(mentions) != 1 {
		t.Fatalf("FindMentions() via alias returned %d mentions, want 1", len(mentions))
	}
	if mentions[0].BrandName != "Y Combinator" {
		t.Errorf("mention brand = %s, want Y Combinator", mentions[0].BrandName)
	}
	if mentions[0].CharOffset != 0 {
		t.Errorf("mention offset = %d, want 0", mentions[0].CharOffset)
	}
}

func TestFindMentionsEmptyInputs(t *testing.T) {
	matcher := services.NewBrandMatcher()

	if got := matcher.FindMentions("", []models.Brand{{Name: "Chase"}}); len(got) != 0 {
		t.Errorf("FindMentions(empty text) returned %d mentions, want 0", len(got))
	}
	if got := matcher.FindMentions("chase is great", nil); len(got) != 0 {
		t.Errorf("FindMentions(no brands) returned %d mentions, want 0", len(got))
	}
}
