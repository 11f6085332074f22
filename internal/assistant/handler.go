// internal/assistant/handler.go
package assistant

import (
	"encoding/json"
	"net/http"

	"shelfmate/internal/apperrors"
)

type Handler struct {
	service Service
}

func NewHandler(service Service) *Handler {
	return &Handler{service: service}
}

// HandleQuery serves POST /api/query.
func (h *Handler) HandleQuery(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Query string `json:"query"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, apperrors.Validationf("invalid request body"))
		return
	}

	result, err := h.service.ProcessQuery(r.Context(), req.Query)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"intent":           result.Intent,
		"entities":         result.Entities,
		"books":            result.Books,
		"natural_response": result.NaturalResponse,
		"message":          "Query processed successfully",
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
