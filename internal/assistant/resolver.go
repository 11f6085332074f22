// internal/assistant/resolver.go
package assistant

import (
	"context"
	"fmt"
	"strings"

	"shelfmate/internal/catalog"
)

// BookSource is the read side of the catalog the resolver needs. It is
// implemented by the catalog service and by the embedded demo store.
type BookSource interface {
	SearchTitle(ctx context.Context, term string) ([]*catalog.Book, error)
	SearchCategory(ctx context.Context, term string) ([]*catalog.Book, error)
	SearchAuthor(ctx context.Context, term string) ([]*catalog.Book, error)
	SearchAny(ctx context.Context, term string) ([]*catalog.Book, error)
	BorrowedBooks(ctx context.Context) ([]*catalog.Book, error)
}

// Resolver maps a ParsedQuery to books through an ordered fallback chain,
// stopping at the first tier that yields a result.
type Resolver struct {
	source BookSource
}

func NewResolver(source BookSource) *Resolver {
	return &Resolver{source: source}
}

// Resolve runs the tiers in priority order: title, category, author,
// general term, and last (return intent only) every book with an open
// borrow record. Results keep store order with duplicates removed; an
// empty result is not an error.
func (r *Resolver) Resolve(ctx context.Context, query ParsedQuery) ([]*catalog.Book, error) {
	var books []*catalog.Book

	if term := strings.TrimSpace(query.Title); term != "" {
		found, err := r.source.SearchTitle(ctx, term)
		if err != nil {
			return nil, fmt.Errorf("title tier failed: %w", err)
		}
		books = found
	}

	if len(books) == 0 {
		if term := strings.TrimSpace(query.Category); term != "" {
			found, err := r.source.SearchCategory(ctx, term)
			if err != nil {
				return nil, fmt.Errorf("category tier failed: %w", err)
			}
			books = found
		}
	}

	if len(books) == 0 {
		if term := strings.TrimSpace(query.Author); term != "" {
			found, err := r.source.SearchAuthor(ctx, term)
			if err != nil {
				return nil, fmt.Errorf("author tier failed: %w", err)
			}
			books = found
		}
	}

	if len(books) == 0 {
		if term := strings.TrimSpace(query.SearchTerm); term != "" {
			found, err := r.source.SearchAny(ctx, term)
			if err != nil {
				return nil, fmt.Errorf("general tier failed: %w", err)
			}
			books = found
		}
	}

	if len(books) == 0 && query.Intent == IntentReturn {
		found, err := r.source.BorrowedBooks(ctx)
		if err != nil {
			return nil, fmt.Errorf("return tier failed: %w", err)
		}
		books = found
	}

	return dedupe(books), nil
}

// dedupe removes repeated books by identity, keeping the first occurrence.
func dedupe(books []*catalog.Book) []*catalog.Book {
	seen := make(map[int64]bool, len(books))
	unique := books[:0]
	for _, book := range books {
		if seen[book.ID] {
			continue
		}
		seen[book.ID] = true
		unique = append(unique, book)
	}
	return unique
}
