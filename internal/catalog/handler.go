// internal/catalog/handler.go
package catalog

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"shelfmate/internal/apperrors"
)

type Handler struct {
	service Service
}

func NewHandler(service Service) *Handler {
	return &Handler{service: service}
}

// HandleList serves GET /api/books. The list is a seven-field summary per
// book; isbn and created_at only appear on the single-book endpoint.
func (h *Handler) HandleList(w http.ResponseWriter, r *http.Request) {
	books, err := h.service.ListBooks(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}

	summaries := make([]map[string]interface{}, 0, len(books))
	for _, book := range books {
		summaries = append(summaries, map[string]interface{}{
			"book_id":   book.BookID,
			"title":     book.Title,
			"author":    book.Author,
			"available": book.Available,
			"quantity":  book.Quantity,
			"category":  book.Category,
			"location":  book.Location,
		})
	}
	writeJSON(w, http.StatusOK, summaries)
}

// HandleGet serves GET /api/books/{bookID}.
func (h *Handler) HandleGet(w http.ResponseWriter, r *http.Request) {
	book, err := h.service.GetBook(r.Context(), chi.URLParam(r, "bookID"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, book)
}

// HandleAdd serves POST /api/books.
func (h *Handler) HandleAdd(w http.ResponseWriter, r *http.Request) {
	var req NewBook
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, apperrors.Validationf("invalid request body"))
		return
	}

	book, err := h.service.AddBook(r.Context(), req)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, map[string]interface{}{
		"message": "Book added successfully",
		"book":    book,
	})
}

func writeJSON(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body)
}

func writeError(w http.ResponseWriter, err error) {
	writeJSON(w, apperrors.Status(err), map[string]string{"error": err.Error()})
}
