// internal/assistant/service.go
package assistant

import (
	"context"

	"shelfmate/internal/catalog"
)

// Entities is the nullable view of the extracted fields returned to API
// callers; unset fields serialize as null.
type Entities struct {
	Title      *string `json:"title"`
	Author     *string `json:"author"`
	Category   *string `json:"category"`
	SearchTerm *string `json:"search_term"`
}

// QueryResult is the full outcome of one query: the detected intent, the
// extracted entities, the resolved books and the templated sentence.
type QueryResult struct {
	Intent          Intent          `json:"intent"`
	Entities        Entities        `json:"entities"`
	Books           []*catalog.Book `json:"books"`
	NaturalResponse string          `json:"natural_response"`
}

// Service defines the interface for the query-processing pipeline.
type Service interface {
	ProcessQuery(ctx context.Context, raw string) (*QueryResult, error)
}
