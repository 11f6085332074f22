// internal/embedded/store.go

// Package embedded provides the SQLite-backed catalog used by the demo
// variant. It implements the same search surface as the persistent catalog
// service plus a minimal borrow/return lifecycle over the seeded books.
package embedded

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3"

	"shelfmate/internal/apperrors"
	"shelfmate/internal/catalog"
	"shelfmate/internal/circulation"
)

// Store is an embedded catalog over a SQLite database.
type Store struct {
	db *sql.DB
}

// Open opens (or creates) the SQLite catalog at path and applies the
// schema. Use ":memory:" for a throwaway in-memory catalog.
func Open(path string) (*Store, error) {
	dsn := fmt.Sprintf("file:%s?_busy_timeout=5000&_foreign_keys=1", path)
	if path == ":memory:" {
		dsn = ":memory:"
	}

	db, err := sql.Open("sqlite3", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	if err := createSchema(db); err != nil {
		db.Close()
		return nil, err
	}
	return &Store{db: db}, nil
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}

func createSchema(db *sql.DB) error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS books (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			book_id TEXT NOT NULL UNIQUE,
			title TEXT NOT NULL,
			author TEXT NOT NULL,
			isbn TEXT,
			quantity INTEGER NOT NULL DEFAULT 1,
			available INTEGER NOT NULL,
			category TEXT NOT NULL,
			location TEXT NOT NULL,
			created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
		);`,
		`CREATE TABLE IF NOT EXISTS borrow_records (
			id TEXT PRIMARY KEY,
			book_ref INTEGER NOT NULL REFERENCES books(id),
			borrower_name TEXT NOT NULL,
			borrowed_date DATETIME NOT NULL,
			due_date DATETIME NOT NULL,
			return_date DATETIME,
			returned BOOLEAN NOT NULL DEFAULT 0,
			fine_amount REAL NOT NULL DEFAULT 0
		);`,
	}
	for _, stmt := range stmts {
		if _, err := db.Exec(stmt); err != nil {
			return fmt.Errorf("create schema: %w", err)
		}
	}
	return nil
}

// Seed loads the sample catalog. Seeding twice is a no-op.
func (s *Store) Seed(ctx context.Context) error {
	var count int
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM books`).Scan(&count); err != nil {
		return fmt.Errorf("count books: %w", err)
	}
	if count > 0 {
		return nil
	}

	for _, book := range sampleBooks {
		_, err := s.db.ExecContext(ctx, `
			INSERT INTO books (book_id, title, author, quantity, available, category, location)
			VALUES (?, ?, ?, ?, ?, ?, ?)
		`, book.BookID, book.Title, book.Author, book.Quantity, book.Available, book.Category, book.Location)
		if err != nil {
			return fmt.Errorf("seed book %s: %w", book.BookID, err)
		}
	}
	return nil
}

// Titles returns every title in the catalog, for extractor title matching.
func (s *Store) Titles(ctx context.Context) ([]string, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT title FROM books ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("query titles: %w", err)
	}
	defer rows.Close()

	var titles []string
	for rows.Next() {
		var title string
		if err := rows.Scan(&title); err != nil {
			return nil, err
		}
		titles = append(titles, title)
	}
	return titles, rows.Err()
}

const bookColumns = `id, book_id, title, author, COALESCE(isbn, ''), quantity, available, category, location, created_at`

func (s *Store) SearchTitle(ctx context.Context, term string) ([]*catalog.Book, error) {
	query := fmt.Sprintf(`SELECT %s FROM books WHERE LOWER(title) LIKE '%%' || LOWER(?) || '%%' ORDER BY id`, bookColumns)
	return s.queryBooks(ctx, query, term)
}

func (s *Store) SearchCategory(ctx context.Context, term string) ([]*catalog.Book, error) {
	query := fmt.Sprintf(`SELECT %s FROM books WHERE LOWER(category) LIKE '%%' || LOWER(?) || '%%' ORDER BY id`, bookColumns)
	return s.queryBooks(ctx, query, term)
}

func (s *Store) SearchAuthor(ctx context.Context, term string) ([]*catalog.Book, error) {
	query := fmt.Sprintf(`SELECT %s FROM books WHERE LOWER(author) LIKE '%%' || LOWER(?) || '%%' ORDER BY id`, bookColumns)
	return s.queryBooks(ctx, query, term)
}

func (s *Store) SearchAny(ctx context.Context, term string) ([]*catalog.Book, error) {
	query := fmt.Sprintf(`
		SELECT %s FROM books
		WHERE LOWER(title) LIKE '%%' || LOWER(?1) || '%%'
		   OR LOWER(author) LIKE '%%' || LOWER(?1) || '%%'
		   OR LOWER(category) LIKE '%%' || LOWER(?1) || '%%'
		ORDER BY id
	`, bookColumns)
	return s.queryBooks(ctx, query, term)
}

func (s *Store) BorrowedBooks(ctx context.Context) ([]*catalog.Book, error) {
	query := fmt.Sprintf(`
		SELECT DISTINCT %s FROM books b
		JOIN borrow_records r ON r.book_ref = b.id
		WHERE r.returned = 0
		ORDER BY b.id
	`, prefixColumns("b"))
	return s.queryBooks(ctx, query)
}

// Borrow takes one copy of the book out and opens a borrow record due
// circulation.LoanPeriodDays from now. Same guards as the persistent
// service: unknown book and exhausted copies are rejected.
func (s *Store) Borrow(ctx context.Context, bookID, borrowerName string) (time.Time, error) {
	if borrowerName == "" {
		return time.Time{}, apperrors.Validationf("missing required field: borrower_name")
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return time.Time{}, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	var id int64
	var available int
	err = tx.QueryRowContext(ctx, `SELECT id, available FROM books WHERE book_id = ?`, bookID).Scan(&id, &available)
	if err != nil {
		if err == sql.ErrNoRows {
			return time.Time{}, apperrors.NotFoundf("book %s not found", bookID)
		}
		return time.Time{}, fmt.Errorf("failed to get book: %w", err)
	}
	if available <= 0 {
		return time.Time{}, apperrors.Conflictf("book is not available for borrowing")
	}

	if _, err := tx.ExecContext(ctx, `UPDATE books SET available = available - 1 WHERE id = ?`, id); err != nil {
		return time.Time{}, fmt.Errorf("failed to decrement availability: %w", err)
	}

	borrowedAt := time.Now().UTC()
	dueDate := borrowedAt.AddDate(0, 0, circulation.LoanPeriodDays)
	if _, err := tx.ExecContext(ctx, `
		INSERT INTO borrow_records (id, book_ref, borrower_name, borrowed_date, due_date, returned)
		VALUES (?, ?, ?, ?, ?, 0)
	`, uuid.NewString(), id, borrowerName, borrowedAt, dueDate); err != nil {
		return time.Time{}, fmt.Errorf("failed to insert borrow record: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return time.Time{}, fmt.Errorf("failed to commit transaction: %w", err)
	}
	return dueDate, nil
}

// Return hands one copy back, closing the oldest open borrow record, and
// reports the late fine.
func (s *Store) Return(ctx context.Context, bookID string) (float64, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	var id int64
	var quantity, available int
	err = tx.QueryRowContext(ctx, `SELECT id, quantity, available FROM books WHERE book_id = ?`, bookID).Scan(&id, &quantity, &available)
	if err != nil {
		if err == sql.ErrNoRows {
			return 0, apperrors.NotFoundf("book %s not found", bookID)
		}
		return 0, fmt.Errorf("failed to get book: %w", err)
	}
	if available >= quantity {
		return 0, apperrors.Conflictf("all copies of this book are already returned")
	}

	var recordID string
	record := circulation.BorrowRecord{}
	err = tx.QueryRowContext(ctx, `
		SELECT id, due_date FROM borrow_records
		WHERE book_ref = ? AND returned = 0
		ORDER BY borrowed_date
		LIMIT 1
	`, id).Scan(&recordID, &record.DueDate)
	if err != nil {
		if err == sql.ErrNoRows {
			return 0, apperrors.NotFoundf("no active borrow record found for this book")
		}
		return 0, fmt.Errorf("failed to find open borrow record: %w", err)
	}

	if _, err := tx.ExecContext(ctx, `UPDATE books SET available = available + 1 WHERE id = ?`, id); err != nil {
		return 0, fmt.Errorf("failed to increment availability: %w", err)
	}

	returnedAt := time.Now().UTC()
	fine := record.CalculateFine(returnedAt)
	if _, err := tx.ExecContext(ctx, `
		UPDATE borrow_records SET returned = 1, return_date = ?, fine_amount = ? WHERE id = ?
	`, returnedAt, fine, recordID); err != nil {
		return 0, fmt.Errorf("failed to close borrow record: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("failed to commit transaction: %w", err)
	}
	return fine, nil
}

func (s *Store) queryBooks(ctx context.Context, query string, args ...interface{}) ([]*catalog.Book, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("book query failed: %w", err)
	}
	defer rows.Close()

	var books []*catalog.Book
	for rows.Next() {
		book := &catalog.Book{}
		if err := rows.Scan(
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
		); err != nil {
			return nil, fmt.Errorf("failed to scan book: %w", err)
		}
		books = append(books, book)
	}
	return books, rows.Err()
}

func prefixColumns(alias string) string {
	return fmt.Sprintf(
		`%[1]s.id, %[1]s.book_id, %[1]s.title, %[1]s.author, COALESCE(%[1]s.isbn, ''), %[1]s.quantity, %[1]s.available, %[1]s.category, %[1]s.location, %[1]s.created_at`,
		alias,
	)
}
