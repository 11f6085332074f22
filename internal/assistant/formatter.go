// internal/assistant/formatter.go
package assistant

import (
	"fmt"

	"shelfmate/internal/catalog"
)

// Format renders the fixed response template for the intent. Availability
// and borrow templates only describe the first matched book; a multi-book
// search reports a count and leaves the list to the structured payload.
func Format(books []*catalog.Book, intent Intent) string {
	if len(books) == 0 {
		return "I couldn't find any books matching your query."
	}

	switch intent {
	case IntentAvailability:
		book := books[0]
		if book.Available > 0 {
			return fmt.Sprintf("Yes, '%s' is available! There are %d copies available out of %d. You can find it at %s.",
				book.Title, book.Available, book.Quantity, book.Location)
		}
		return fmt.Sprintf("Sorry, '%s' is currently not available. All %d copies are borrowed.",
			book.Title, book.Quantity)

	case IntentSearch:
		if len(books) == 1 {
			book := books[0]
			return fmt.Sprintf("I found '%s' by %s. It's located at %s.", book.Title, book.Author, book.Location)
		}
		return fmt.Sprintf("I found %d books that match your query. You can see them listed below.", len(books))

	case IntentBorrow:
		book := books[0]
		if book.Available > 0 {
			return fmt.Sprintf("You can borrow '%s'. Please click the Borrow button and fill in your details.", book.Title)
		}
		return fmt.Sprintf("Sorry, '%s' is not available for borrowing at the moment.", book.Title)

	case IntentReturn:
		return "To return a book, please visit the library desk with your book and borrower ID."
	}

	return "How can I help you find books today?"
}
