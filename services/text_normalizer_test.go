package services_test

import (
	"testing"

	"github.com/AI-Template-SDK/senso-analysis/services"
)

func TestNormalize(t *testing.T) {
	normalizer := services.NewTextNormalizer()

	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "empty string",
			input:    "",
			expected: "",
		},
		{
			name:     "lowercases text",
			input:    "Chase Bank",
			expected: "chase bank",
		},
		{
			name:     "strips bold markers",
			input:    "**Chase** is a bank",
			expected: "chase is a bank",
		},
		{
			name:     "markdown link keeps label drops url",
			input:    "see [Chase](https://chase.com/credit-cards) today",
			expected: "see chase today",
		},
		{
			name:     "strips header markers",
			input:    "# Top Banks\nChase leads the market",
			expected: "top banks chase leads the market",
		},
		{
			name:     "strips list bullets",
			input:    "- Chase\n- Citi",
			expected: "chase citi",
		},
		{
			name:     "collapses whitespace",
			input:    "Chase\t\tand\n\nCiti",
			expected: "chase and citi",
		},
		{
			name:     "trailing punctuation removed so Chase. matches Chase",
			input:    "We recommend Chase.",
			expected: "we recommend chase",
		},
		{
			name:     "internal dots preserved",
			input:    "Senso.ai is mentioned",
			expected: "senso.ai is mentioned",
		},
		{
			name:     "mixed punctuation",
			input:    "Visit Chase, Wells Fargo; then Citi!",
			expected: "visit chase wells fargo then citi",
		},
		{
			name:     "whitespace only",
			input:    "  \n\t ",
			expected: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := normalizer.Normalize(tt.input)
			if result != tt.expected {
				t.Errorf("Normalize(%q) = %q, want %q", tt.input, result, tt.expected)
			}
		})
	}
}
