// internal/assistant/extractor_test.go
package assistant

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"pgregory.net/rapid"
)

func TestRuleExtractor(t *testing.T) {
	extractor := NewRuleExtractor()

	tests := []struct {
		name string
		raw  string
		want ParsedQuery
	}{
		{
			name: "quoted title with author",
			raw:  `Do you have "1984" by George Orwell?`,
			want: ParsedQuery{Intent: IntentSearch, Title: "1984", Author: "george orwell"},
		},
		{
			name: "borrow intent with category",
			raw:  "I want to borrow a science book",
			want: ParsedQuery{Intent: IntentBorrow, Category: "science"},
		},
		{
			name: "return intent",
			raw:  `I need to return "The Great Gatsby"`,
			want: ParsedQuery{Intent: IntentReturn, Title: "The Great Gatsby"},
		},
		{
			name: "availability intent",
			raw:  `Is "Dune" available?`,
			want: ParsedQuery{Intent: IntentAvailability, Title: "Dune"},
		},
		{
			name: "availability keyword matches inside longer words",
			raw:  "everything here is unavailable",
			want: ParsedQuery{Intent: IntentAvailability, SearchTerm: "everything here is unavailable"},
		},
		{
			name: "borrow wins over return when both appear",
			raw:  "borrow or return a book?",
			want: ParsedQuery{Intent: IntentBorrow, SearchTerm: "borrow or return a book?"},
		},
		{
			name: "only first quoted pair is used",
			raw:  `compare "Dune" with "Foundation"`,
			want: ParsedQuery{Intent: IntentSearch, Title: "Dune"},
		},
		{
			name: "by inside an unrelated word still fires",
			raw:  "goodbye cruel world",
			want: ParsedQuery{Intent: IntentSearch, Author: "e cruel world"},
		},
		{
			name: "fiction wins over non-fiction by scan order",
			raw:  "show me non-fiction",
			want: ParsedQuery{Intent: IntentSearch, Category: "fiction"},
		},
		{
			name: "no entities falls back to search term",
			raw:  "something interesting to read",
			want: ParsedQuery{Intent: IntentSearch, SearchTerm: "something interesting to read"},
		},
		{
			name: "empty query",
			raw:  "",
			want: ParsedQuery{Intent: IntentSearch, SearchTerm: ""},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, extractor.Extract(tt.raw))
		})
	}
}

func TestRuleExtractorProperties(t *testing.T) {
	extractor := NewRuleExtractor()

	rapid.Check(t, func(t *rapid.T) {
		raw := rapid.String().Draw(t, "raw")

		first := extractor.Extract(raw)
		second := extractor.Extract(raw)
		assert.Equal(t, first, second, "extraction must be deterministic")

		if first.Title == "" && first.Author == "" && first.Category == "" {
			assert.Equal(t, raw, first.SearchTerm, "search term must default to the raw query")
		} else {
			assert.Empty(t, first.SearchTerm, "search term is only set when no entity matched")
		}
	})
}
