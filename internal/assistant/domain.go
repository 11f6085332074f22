// internal/assistant/domain.go
package assistant

// Intent is the user's high-level goal, detected from the query text.
type Intent string

const (
	IntentSearch       Intent = "search"
	IntentBorrow       Intent = "borrow"
	IntentReturn       Intent = "return"
	IntentAvailability Intent = "availability"
)

// ParsedQuery is the structured form of a free-text query. At most the
// fields the extractor could justify are set; when none of Title, Author or
// Category is set, SearchTerm carries the raw query.
type ParsedQuery struct {
	Intent     Intent
	Title      string
	Author     string
	Category   string
	SearchTerm string
}

// Extractor turns raw query text into a ParsedQuery. Implementations must
// be deterministic: given the same text they return the same result.
type Extractor interface {
	Extract(raw string) ParsedQuery
}
