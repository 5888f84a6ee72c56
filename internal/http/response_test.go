package http

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"lendingapi/internal/usecase"
)

func TestJSONDomainError(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantCode   string
	}{
		{"unauthenticated", usecase.ErrUnauthenticated, http.StatusUnauthorized, "UNAUTHENTICATED"},
		{"not found", usecase.ErrNotFound, http.StatusNotFound, "NOT_FOUND"},
		{"book not available", usecase.ErrBookNotAvailable, http.StatusConflict, "BOOK_NOT_AVAILABLE"},
		{"return date required", usecase.ErrReturnDateRequired, http.StatusBadRequest, "RETURN_DATE_REQUIRED"},
		{"already returned", usecase.ErrAlreadyReturned, http.StatusConflict, "ALREADY_RETURNED"},
		{"inventory conflict", usecase.ErrInventoryConflict, http.StatusConflict, "INVENTORY_CONFLICT"},
		{"wrapped inventory conflict", fmt.Errorf("borrow: %w", usecase.ErrInventoryConflict), http.StatusConflict, "INVENTORY_CONFLICT"},
		{"already exists", usecase.ErrAlreadyExists, http.StatusConflict, "ALREADY_EXISTS"},
		{"unknown error", errors.New("boom"), http.StatusInternalServerError, "INTERNAL_ERROR"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			JSONDomainError(w, tt.err)

			assert.Equal(t, tt.wantStatus, w.Code)

			var resp ErrorResponse
			assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
			assert.False(t, resp.Success)
			assert.Equal(t, tt.wantCode, resp.Error.Code)
		})
	}
}
