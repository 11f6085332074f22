// internal/catalog/domain.go
package catalog

import (
	"time"
)

// Default values applied when a new book omits the optional fields.
const (
	DefaultCategory = "Uncategorized"
	DefaultLocation = "General Collection"
)

// Book represents a title held by the library, tracked per title rather
// than per physical copy. Available is a bounded counter in [0, Quantity].
type Book struct {
	ID        int64     `json:"-"`
	BookID    string    `json:"book_id"`
	Title     string    `json:"title"`
	Author    string    `json:"author"`
	ISBN      string    `json:"isbn,omitempty"`
	Quantity  int       `json:"quantity"`
	Available int       `json:"available"`
	Category  string    `json:"category"`
	Location  string    `json:"location"`
	CreatedAt time.Time `json:"created_at,omitempty"`
}

// NewBook carries the caller-supplied fields for an AddBook request.
type NewBook struct {
	Title    string `json:"title"`
	Author   string `json:"author"`
	ISBN     string `json:"isbn,omitempty"`
	Quantity int    `json:"quantity"`
	Category string `json:"category,omitempty"`
	Location string `json:"location,omitempty"`
}
