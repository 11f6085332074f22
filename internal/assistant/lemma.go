// internal/assistant/lemma.go
package assistant

import (
	"strings"
	"unicode"

	"github.com/aaaton/golem/v4"
	prose "github.com/jdkato/prose/v2"
)

// intentLemmas maps word lemmas to intents for the embedded-catalog
// variant, so "taking", "took" and "take" all land on borrow.
var intentLemmas = map[string]Intent{
	"borrow":       IntentBorrow,
	"take":         IntentBorrow,
	"return":       IntentReturn,
	"give":         IntentReturn,
	"check":        IntentAvailability,
	"available":    IntentAvailability,
	"availability": IntentAvailability,
}

// LemmaExtractor is the extractor used by the embedded demo system. It
// matches intent on word lemmas, then looks for a known catalog title in
// the text, and only then falls back to a named-entity span.
type LemmaExtractor struct {
	lemmatizer  *golem.Lemmatizer
	knownTitles []string
}

// NewLemmaExtractor builds an extractor over a fixed title snapshot. The
// demo catalog is static after seeding, so a snapshot is sufficient.
func NewLemmaExtractor(lemmatizer *golem.Lemmatizer, knownTitles []string) *LemmaExtractor {
	return &LemmaExtractor{
		lemmatizer:  lemmatizer,
		knownTitles: knownTitles,
	}
}

func (e *LemmaExtractor) Extract(raw string) ParsedQuery {
	query := ParsedQuery{Intent: e.detectIntent(raw)}

	if title, ok := e.matchKnownTitle(raw); ok {
		query.Title = title
		return query
	}
	if span, ok := entitySpan(raw); ok {
		query.Title = span
		return query
	}

	query.SearchTerm = raw
	return query
}

func (e *LemmaExtractor) detectIntent(raw string) Intent {
	for _, token := range strings.Fields(strings.ToLower(raw)) {
		token = strings.TrimFunc(token, unicode.IsPunct)
		if token == "" {
			continue
		}
		if intent, ok := intentLemmas[e.lemmatizer.Lemma(token)]; ok {
			return intent
		}
	}
	return IntentSearch
}

// matchKnownTitle reports the first catalog title contained in the text,
// case-insensitively, returning the catalog's own casing.
func (e *LemmaExtractor) matchKnownTitle(raw string) (string, bool) {
	lower := strings.ToLower(raw)
	for _, title := range e.knownTitles {
		if title != "" && strings.Contains(lower, strings.ToLower(title)) {
			return title, true
		}
	}
	return "", false
}

// entitySpan asks the NER model for a span to treat as a title candidate.
// The model's label set has no dedicated work-of-art label, so the first
// recognized entity of any label is taken.
func entitySpan(raw string) (string, bool) {
	doc, err := prose.NewDocument(raw)
	if err != nil {
		return "", false
	}
	for _, entity := range doc.Entities() {
		if strings.TrimSpace(entity.Text) != "" {
			return entity.Text, true
		}
	}
	return "", false
}
