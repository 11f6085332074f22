// internal/embedded/store_test.go
package embedded

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"shelfmate/internal/apperrors"
)

func newSeededStore(t *testing.T) *Store {
	t.Helper()
	store, err := Open(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })
	require.NoError(t, store.Seed(context.Background()))
	return store
}

func TestSeedIsIdempotent(t *testing.T) {
	store := newSeededStore(t)
	ctx := context.Background()

	require.NoError(t, store.Seed(ctx))

	titles, err := store.Titles(ctx)
	require.NoError(t, err)
	assert.Len(t, titles, len(sampleBooks))
}

func TestTitles(t *testing.T) {
	store := newSeededStore(t)

	titles, err := store.Titles(context.Background())
	require.NoError(t, err)
	assert.Contains(t, titles, "The Great Gatsby")
	assert.Contains(t, titles, "A Brief History of Time")
}

func TestSearchTitleCaseInsensitive(t *testing.T) {
	store := newSeededStore(t)

	books, err := store.SearchTitle(context.Background(), "GATSBY")
	require.NoError(t, err)
	require.Len(t, books, 1)
	assert.Equal(t, "FIC001", books[0].BookID)
}

func TestSearchCategory(t *testing.T) {
	store := newSeededStore(t)

	books, err := store.SearchCategory(context.Background(), "fiction")
	require.NoError(t, err)
	require.Len(t, books, 2)
	assert.Equal(t, "FIC001", books[0].BookID)
	assert.Equal(t, "FIC002", books[1].BookID)
}

func TestSearchAuthor(t *testing.T) {
	store := newSeededStore(t)

	books, err := store.SearchAuthor(context.Background(), "hawking")
	require.NoError(t, err)
	require.Len(t, books, 1)
	assert.Equal(t, "A Brief History of Time", books[0].Title)
}

func TestSearchAnyMatchesAcrossFields(t *testing.T) {
	store := newSeededStore(t)
	ctx := context.Background()

	byAuthor, err := store.SearchAny(ctx, "harper lee")
	require.NoError(t, err)
	require.Len(t, byAuthor, 1)
	assert.Equal(t, "To Kill a Mockingbird", byAuthor[0].Title)

	byCategory, err := store.SearchAny(ctx, "programming")
	require.NoError(t, err)
	assert.Len(t, byCategory, 2)

	none, err := store.SearchAny(ctx, "quantum knitting")
	require.NoError(t, err)
	assert.Empty(t, none)
}

func TestBorrowedBooks(t *testing.T) {
	store := newSeededStore(t)
	ctx := context.Background()

	books, err := store.BorrowedBooks(ctx)
	require.NoError(t, err)
	assert.Empty(t, books)

	_, err = store.Borrow(ctx, "FIC001", "Alice")
	require.NoError(t, err)

	books, err = store.BorrowedBooks(ctx)
	require.NoError(t, err)
	require.Len(t, books, 1)
	assert.Equal(t, "FIC001", books[0].BookID)
}

func availableCopies(t *testing.T, store *Store, bookID string) int {
	t.Helper()
	var available int
	require.NoError(t, store.db.QueryRow(`SELECT available FROM books WHERE book_id = ?`, bookID).Scan(&available))
	return available
}

func TestBorrowThenReturnRestoresAvailability(t *testing.T) {
	store := newSeededStore(t)
	ctx := context.Background()

	initial := availableCopies(t, store, "PRG001")
	require.Positive(t, initial)

	due, err := store.Borrow(ctx, "PRG001", "Alice")
	require.NoError(t, err)
	assert.True(t, due.After(time.Now()))
	assert.Equal(t, initial-1, availableCopies(t, store, "PRG001"))

	fine, err := store.Return(ctx, "PRG001")
	require.NoError(t, err)
	assert.Zero(t, fine, "an on-time return costs nothing")
	assert.Equal(t, initial, availableCopies(t, store, "PRG001"))
}

func TestBorrowExhaustsCopies(t *testing.T) {
	store := newSeededStore(t)
	ctx := context.Background()

	// SCI001 seeds with two copies.
	_, err := store.Borrow(ctx, "SCI001", "Alice")
	require.NoError(t, err)
	_, err = store.Borrow(ctx, "SCI001", "Bob")
	require.NoError(t, err)

	_, err = store.Borrow(ctx, "SCI001", "Carol")
	assert.Equal(t, apperrors.Conflict, apperrors.KindOf(err))
	assert.Equal(t, 0, availableCopies(t, store, "SCI001"))
}

func TestReturnWithAllCopiesIn(t *testing.T) {
	store := newSeededStore(t)

	_, err := store.Return(context.Background(), "PRG002")
	assert.Equal(t, apperrors.Conflict, apperrors.KindOf(err))
}

func TestBorrowUnknownBook(t *testing.T) {
	store := newSeededStore(t)

	_, err := store.Borrow(context.Background(), "NOPE", "Alice")
	assert.Equal(t, apperrors.NotFound, apperrors.KindOf(err))
}
