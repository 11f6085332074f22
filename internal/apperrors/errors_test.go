// internal/apperrors/errors_test.go
package apperrors

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStatus(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"validation", Validationf("missing required field: title"), http.StatusBadRequest},
		{"not found", NotFoundf("book %s not found", "LIB-2024-0001"), http.StatusNotFound},
		{"conflict", Conflictf("book is not available for borrowing"), http.StatusBadRequest},
		{"internal", Internalf(errors.New("boom"), "query failed"), http.StatusInternalServerError},
		{"unclassified", errors.New("boom"), http.StatusInternalServerError},
		{"wrapped classified", fmt.Errorf("resolve: %w", NotFoundf("gone")), http.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Status(tt.err))
		})
	}
}

func TestKindOfUnwraps(t *testing.T) {
	err := fmt.Errorf("outer: %w", Conflictf("inner"))
	assert.Equal(t, Conflict, KindOf(err))
}

func TestErrorMessage(t *testing.T) {
	assert.Equal(t, "query failed: boom", Internalf(errors.New("boom"), "query failed").Error())
	assert.Equal(t, "gone", NotFoundf("gone").Error())
}
