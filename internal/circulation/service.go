// internal/circulation/service.go
package circulation

import (
	"context"
)

// Service defines the interface for the circulation service.
type Service interface {
	// Borrow takes one copy of the book out for the borrower.
	Borrow(ctx context.Context, bookID string, borrower Borrower) (*BorrowReceipt, error)
	// Return hands one copy back, closing the oldest open borrow record.
	Return(ctx context.Context, bookID string, condition string) (*ReturnReceipt, error)
	// History lists every borrow record for the book, oldest first.
	History(ctx context.Context, bookID string) ([]*BorrowRecord, error)
}
