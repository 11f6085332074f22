// internal/circulation/implementation.go
package circulation

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"shelfmate/internal/apperrors"
)

// service implements the Service interface on top of PostgreSQL. Every
// mutation runs in a single transaction so a failure after the availability
// counter moved rolls the whole operation back.
type service struct {
	db     *sql.DB
	logger *zap.Logger
	now    func() time.Time
}

// NewService creates a new circulation service instance.
func NewService(db *sql.DB, logger *zap.Logger) Service {
	return &service{
		db:     db,
		logger: logger,
		now:    time.Now,
	}
}

// Borrow decrements the book's available counter and opens a borrow record
// due LoanPeriodDays from now.
func (s *service) Borrow(ctx context.Context, bookID string, borrower Borrower) (*BorrowReceipt, error) {
	if borrower.Name == "" {
		return nil, apperrors.Validationf("missing required field: borrower_name")
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	book, err := lockBook(ctx, tx, bookID)
	if err != nil {
		return nil, err
	}
	if book.available <= 0 {
		return nil, apperrors.Conflictf("book is not available for borrowing")
	}

	if _, err := tx.ExecContext(ctx, `
		UPDATE books SET available = available - 1 WHERE id = $1
	`, book.id); err != nil {
		return nil, fmt.Errorf("failed to decrement availability: %w", err)
	}

	borrowedAt := s.now().UTC()
	dueDate := borrowedAt.AddDate(0, 0, LoanPeriodDays)

	if _, err := tx.ExecContext(ctx, `
		INSERT INTO borrow_records
			(id, book_ref, borrower_name, borrower_email, borrower_phone, borrower_id,
			 borrowed_date, due_date, returned, condition_on_borrow, fine_amount)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, FALSE, $9, 0)
	`, uuid.New(), book.id, borrower.Name, borrower.Email, borrower.Phone, borrower.MemberID,
		borrowedAt, dueDate, DefaultCondition,
	); err != nil {
		return nil, fmt.Errorf("failed to insert borrow record: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}

	s.logger.Info("book borrowed",
		zap.String("book_id", bookID),
		zap.String("borrower", borrower.Name),
		zap.Time("due_date", dueDate),
	)
	return &BorrowReceipt{BookTitle: book.title, DueDate: dueDate}, nil
}

// Return increments the book's available counter, closes the oldest open
// borrow record and computes the late fine.
func (s *service) Return(ctx context.Context, bookID string, condition string) (*ReturnReceipt, error) {
	if condition == "" {
		condition = DefaultCondition
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	book, err := lockBook(ctx, tx, bookID)
	if err != nil {
		return nil, err
	}
	if book.available >= book.quantity {
		return nil, apperrors.Conflictf("all copies of this book are already returned")
	}

	// Per-title tracking: the oldest open record is the one closed.
	record := &BorrowRecord{BookRef: book.id}
	err = tx.QueryRowContext(ctx, `
		SELECT id, due_date FROM borrow_records
		WHERE book_ref = $1 AND returned = FALSE
		ORDER BY borrowed_date
		LIMIT 1
		FOR UPDATE
	`, book.id).Scan(&record.ID, &record.DueDate)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, apperrors.NotFoundf("no active borrow record found for this book")
		}
		return nil, fmt.Errorf("failed to find open borrow record: %w", err)
	}

	if _, err := tx.ExecContext(ctx, `
		UPDATE books SET available = available + 1 WHERE id = $1
	`, book.id); err != nil {
		return nil, fmt.Errorf("failed to increment availability: %w", err)
	}

	returnedAt := s.now().UTC()
	fine := record.CalculateFine(returnedAt)

	if _, err := tx.ExecContext(ctx, `
		UPDATE borrow_records
		SET returned = TRUE, return_date = $1, condition_on_return = $2, fine_amount = $3
		WHERE id = $4
	`, returnedAt, condition, fine, record.ID); err != nil {
		return nil, fmt.Errorf("failed to close borrow record: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}

	s.logger.Info("book returned",
		zap.String("book_id", bookID),
		zap.Float64("fine_amount", fine),
	)
	return &ReturnReceipt{BookTitle: book.title, FineAmount: fine}, nil
}

// History lists every borrow record for the book, oldest first.
func (s *service) History(ctx context.Context, bookID string) ([]*BorrowRecord, error) {
	var bookRef int64
	err := s.db.QueryRowContext(ctx, `SELECT id FROM books WHERE book_id = $1`, bookID).Scan(&bookRef)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, apperrors.NotFoundf("book %s not found", bookID)
		}
		return nil, fmt.Errorf("failed to get book: %w", err)
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT id, borrower_name, COALESCE(borrower_email, ''), COALESCE(borrower_phone, ''),
		       COALESCE(borrower_id, ''), borrowed_date, due_date, return_date, returned,
		       COALESCE(condition_on_borrow, ''), COALESCE(condition_on_return, ''), fine_amount
		FROM borrow_records
		WHERE book_ref = $1
		ORDER BY borrowed_date
	`, bookRef)
	if err != nil {
		return nil, fmt.Errorf("failed to query borrow records: %w", err)
	}
	defer rows.Close()

	var records []*BorrowRecord
	for rows.Next() {
		record := &BorrowRecord{BookRef: bookRef}
		if err := rows.Scan(
			&record.ID,
			&record.BorrowerName,
			&record.BorrowerEmail,
			&record.BorrowerPhone,
			&record.BorrowerID,
			&record.BorrowedDate,
			&record.DueDate,
			&record.ReturnDate,
			&record.Returned,
			&record.ConditionOnBorrow,
			&record.ConditionOnReturn,
			&record.FineAmount,
		); err != nil {
			return nil, fmt.Errorf("failed to scan borrow record: %w", err)
		}
		records = append(records, record)
	}
	return records, rows.Err()
}

// lockedBook is the slice of the books row the mutations need.
type lockedBook struct {
	id        int64
	title     string
	quantity  int
	available int
}

func lockBook(ctx context.Context, tx *sql.Tx, bookID string) (*lockedBook, error) {
	book := &lockedBook{}
	err := tx.QueryRowContext(ctx, `
		SELECT id, title, quantity, available FROM books WHERE book_id = $1 FOR UPDATE
	`, bookID).Scan(&book.id, &book.title, &book.quantity, &book.available)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, apperrors.NotFoundf("book %s not found", bookID)
		}
		return nil, fmt.Errorf("failed to lock book row: %w", err)
	}
	return book, nil
}
