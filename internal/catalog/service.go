// internal/catalog/service.go
package catalog

import (
	"context"
)

// Service defines the interface for the catalog service.
type Service interface {
	AddBook(ctx context.Context, book NewBook) (*Book, error)
	GetBook(ctx context.Context, bookID string) (*Book, error)
	ListBooks(ctx context.Context) ([]*Book, error)

	// Tiered search primitives used by the query resolver. Each performs a
	// case-insensitive substring match on a single field.
	SearchTitle(ctx context.Context, term string) ([]*Book, error)
	SearchCategory(ctx context.Context, term string) ([]*Book, error)
	SearchAuthor(ctx context.Context, term string) ([]*Book, error)
	// SearchAny matches term against title, author or category in one query.
	SearchAny(ctx context.Context, term string) ([]*Book, error)
	// BorrowedBooks returns every book with at least one open borrow record.
	BorrowedBooks(ctx context.Context) ([]*Book, error)
}
