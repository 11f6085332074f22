// internal/catalog/implementation.go
package catalog

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"go.uber.org/zap"

	"shelfmate/internal/apperrors"
)

// service implements the Service interface on top of PostgreSQL.
type service struct {
	db     *sql.DB
	logger *zap.Logger
	now    func() time.Time
}

// NewService creates a new catalog service instance.
func NewService(db *sql.DB, logger *zap.Logger) Service {
	return &service{
		db:     db,
		logger: logger,
		now:    time.Now,
	}
}

const bookColumns = `id, book_id, title, author, COALESCE(isbn, ''), quantity, available, category, location, created_at`

// AddBook validates the request, assigns the next LIB-<year>-<seq> id and
// inserts the book with all copies available. The per-year counter row is
// claimed inside the same transaction, so concurrent writers cannot mint
// duplicate ids.
func (s *service) AddBook(ctx context.Context, book NewBook) (*Book, error) {
	if book.Title == "" {
		return nil, apperrors.Validationf("missing required field: title")
	}
	if book.Author == "" {
		return nil, apperrors.Validationf("missing required field: author")
	}
	if book.Quantity <= 0 {
		return nil, apperrors.Validationf("missing required field: quantity")
	}

	if book.Category == "" {
		book.Category = DefaultCategory
	}
	if book.Location == "" {
		book.Location = DefaultLocation
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	year := s.now().UTC().Year()
	var seq int
	err = tx.QueryRowContext(ctx, `
		INSERT INTO book_id_sequences (year, last_seq)
		VALUES ($1, 1)
		ON CONFLICT (year) DO UPDATE SET last_seq = book_id_sequences.last_seq + 1
		RETURNING last_seq
	`, year).Scan(&seq)
	if err != nil {
		return nil, fmt.Errorf("failed to claim book id sequence: %w", err)
	}

	created := &Book{
		BookID:    fmt.Sprintf("LIB-%d-%04d", year, seq),
		Title:     book.Title,
		Author:    book.Author,
		ISBN:      book.ISBN,
		Quantity:  book.Quantity,
		Available: book.Quantity,
		Category:  book.Category,
		Location:  book.Location,
	}

	err = tx.QueryRowContext(ctx, `
		INSERT INTO books (book_id, title, author, isbn, quantity, available, category, location)
		VALUES ($1, $2, $3, NULLIF($4, ''), $5, $6, $7, $8)
		RETURNING id, created_at
	`, created.BookID, created.Title, created.Author, created.ISBN,
		created.Quantity, created.Available, created.Category, created.Location,
	).Scan(&created.ID, &created.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to insert book: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}

	s.logger.Info("book added",
		zap.String("book_id", created.BookID),
		zap.String("title", created.Title),
		zap.Int("quantity", created.Quantity),
	)
	return created, nil
}

// GetBook retrieves a book by its public LIB id.
func (s *service) GetBook(ctx context.Context, bookID string) (*Book, error) {
	query := fmt.Sprintf(`SELECT %s FROM books WHERE book_id = $1`, bookColumns)
	book, err := scanBook(s.db.QueryRowContext(ctx, query, bookID))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, apperrors.NotFoundf("book %s not found", bookID)
		}
		return nil, fmt.Errorf("failed to get book: %w", err)
	}
	return book, nil
}

// ListBooks returns the whole catalog in insertion order.
func (s *service) ListBooks(ctx context.Context) ([]*Book, error) {
	query := fmt.Sprintf(`SELECT %s FROM books ORDER BY id`, bookColumns)
	return s.queryBooks(ctx, query)
}

func (s *service) SearchTitle(ctx context.Context, term string) ([]*Book, error) {
	query := fmt.Sprintf(`SELECT %s FROM books WHERE title ILIKE '%%' || $1 || '%%' ORDER BY id`, bookColumns)
	return s.queryBooks(ctx, query, term)
}

func (s *service) SearchCategory(ctx context.Context, term string) ([]*Book, error) {
	query := fmt.Sprintf(`SELECT %s FROM books WHERE category ILIKE '%%' || $1 || '%%' ORDER BY id`, bookColumns)
	return s.queryBooks(ctx, query, term)
}

func (s *service) SearchAuthor(ctx context.Context, term string) ([]*Book, error) {
	query := fmt.Sprintf(`SELECT %s FROM books WHERE author ILIKE '%%' || $1 || '%%' ORDER BY id`, bookColumns)
	return s.queryBooks(ctx, query, term)
}

func (s *service) SearchAny(ctx context.Context, term string) ([]*Book, error) {
	query := fmt.Sprintf(`
		SELECT %s FROM books
		WHERE title ILIKE '%%' || $1 || '%%'
		   OR author ILIKE '%%' || $1 || '%%'
		   OR category ILIKE '%%' || $1 || '%%'
		ORDER BY id
	`, bookColumns)
	return s.queryBooks(ctx, query, term)
}

func (s *service) BorrowedBooks(ctx context.Context) ([]*Book, error) {
	query := fmt.Sprintf(`
		SELECT DISTINCT ON (b.id) %s
		FROM books b
		JOIN borrow_records r ON r.book_ref = b.id
		WHERE r.returned = FALSE
		ORDER BY b.id
	`, prefixColumns("b"))
	return s.queryBooks(ctx, query)
}

func (s *service) queryBooks(ctx context.Context, query string, args ...interface{}) ([]*Book, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("book query failed: %w", err)
	}
	defer rows.Close()

	var books []*Book
	for rows.Next() {
		book, err := scanBook(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan book: %w", err)
		}
		books = append(books, book)
	}
	return books, rows.Err()
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanBook(row rowScanner) (*Book, error) {
	book := &Book{}
	err := row.Scan(
		&book.ID,
		&book.BookID,
		&book.Title,
		&book.Author,
		&book.ISBN,
		&book.Quantity,
		&book.Available,
		&book.Category,
		&book.Location,
		&book.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return book, nil
}

func prefixColumns(alias string) string {
	return fmt.Sprintf(
		`%[1]s.id, %[1]s.book_id, %[1]s.title, %[1]s.author, COALESCE(%[1]s.isbn, ''), %[1]s.quantity, %[1]s.available, %[1]s.category, %[1]s.location, %[1]s.created_at`,
		alias,
	)
}
