// internal/embedded/seed.go
package embedded

import (
	"shelfmate/internal/catalog"
)

// sampleBooks is the demo catalog.
var sampleBooks = []catalog.Book{
	{
		BookID:    "PRG001",
		Title:     "Python Programming",
		Author:    "John Smith",
		Category:  "Programming",
		Location:  "Shelf A1",
		Quantity:  3,
		Available: 3,
	},
	{
		BookID:    "PRG002",
		Title:     "Java Fundamentals",
		Author:    "Jane Doe",
		Category:  "Programming",
		Location:  "Shelf A2",
		Quantity:  2,
		Available: 2,
	},
	{
		BookID:    "FIC001",
		Title:     "The Great Gatsby",
		Author:    "F. Scott Fitzgerald",
		Category:  "Fiction",
		Location:  "Shelf B1",
		Quantity:  4,
		Available: 4,
	},
	{
		BookID:    "FIC002",
		Title:     "To Kill a Mockingbird",
		Author:    "Harper Lee",
		Category:  "Fiction",
		Location:  "Shelf B2",
		Quantity:  3,
		Available: 3,
	},
	{
		BookID:    "SCI001",
		Title:     "A Brief History of Time",
		Author:    "Stephen Hawking",
		Category:  "Science",
		Location:  "Shelf C1",
		Quantity:  2,
		Available: 2,
	},
}
