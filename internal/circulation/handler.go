// internal/circulation/handler.go
package circulation

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"shelfmate/internal/apperrors"
)

type Handler struct {
	service Service
}

func NewHandler(service Service) *Handler {
	return &Handler{service: service}
}

// HandleBorrow serves POST /api/books/{bookID}/borrow.
func (h *Handler) HandleBorrow(w http.ResponseWriter, r *http.Request) {
	var borrower Borrower
	if err := json.NewDecoder(r.Body).Decode(&borrower); err != nil {
		writeError(w, apperrors.Validationf("invalid request body"))
		return
	}

	receipt, err := h.service.Borrow(r.Context(), chi.URLParam(r, "bookID"), borrower)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"message":  fmt.Sprintf("Successfully borrowed %q. Due date: %s", receipt.BookTitle, receipt.DueDate.Format(time.RFC3339)),
		"due_date": receipt.DueDate.Format(time.RFC3339),
	})
}

// HandleReturn serves POST /api/books/{bookID}/return.
func (h *Handler) HandleReturn(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Condition string `json:"condition"`
	}
	// An empty body is fine; condition is optional.
	_ = json.NewDecoder(r.Body).Decode(&req)

	receipt, err := h.service.Return(r.Context(), chi.URLParam(r, "bookID"), req.Condition)
	if err != nil {
		writeError(w, err)
		return
	}

	body := map[string]interface{}{
		"message":     fmt.Sprintf("Successfully returned %q", receipt.BookTitle),
		"fine_amount": receipt.FineAmount,
	}
	if receipt.FineAmount > 0 {
		body["fine_message"] = fmt.Sprintf("Late return fine: $%.2f", receipt.FineAmount)
	}
	writeJSON(w, http.StatusOK, body)
}

// HandleHistory serves GET /api/books/{bookID}/history.
func (h *Handler) HandleHistory(w http.ResponseWriter, r *http.Request) {
	records, err := h.service.History(r.Context(), chi.URLParam(r, "bookID"))
	if err != nil {
		writeError(w, err)
		return
	}

	summaries := make([]map[string]interface{}, 0, len(records))
	for _, record := range records {
		var returnDate interface{}
		if record.ReturnDate != nil {
			returnDate = record.ReturnDate.Format(time.RFC3339)
		}
		summaries = append(summaries, map[string]interface{}{
			"borrower_name": record.BorrowerName,
			"borrowed_date": record.BorrowedDate.Format(time.RFC3339),
			"due_date":      record.DueDate.Format(time.RFC3339),
			"return_date":   returnDate,
			"returned":      record.Returned,
			"fine_amount":   record.FineAmount,
		})
	}
	writeJSON(w, http.StatusOK, summaries)
}

func writeJSON(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body)
}

func writeError(w http.ResponseWriter, err error) {
	writeJSON(w, apperrors.Status(err), map[string]string{"error": err.Error()})
}
