package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"lendingapi/internal/usecase"
)

type SuccessResponse struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Meta    interface{} `json:"meta,omitempty"`
}

type ErrorResponse struct {
	Success bool              `json:"success"`
	Error   ErrorResponseBody `json:"error"`
}

type ErrorResponseBody struct {
	Code    string            `json:"code"`
	Message string            `json:"message"`
	Details []ValidationError `json:"details,omitempty"`
}

func JSONSuccess(w http.ResponseWriter, data interface{}, meta interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(SuccessResponse{
		Success: true,
		Data:    data,
		Meta:    meta,
	})
}

func JSONSuccessCreated(w http.ResponseWriter, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(SuccessResponse{
		Success: true,
		Data:    data,
	})
}

func JSONSuccessNoContent(w http.ResponseWriter) {
	w.WriteHeader(http.StatusNoContent)
}

func JSONError(w http.ResponseWriter, statusCode int, code string, message string, details []ValidationError) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	json.NewEncoder(w).Encode(ErrorResponse{
		Success: false,
		Error: ErrorResponseBody{
			Code:    code,
			Message: message,
			Details: details,
		},
	})
}

// JSONDomainError maps the workflow's error kinds onto HTTP status codes.
func JSONDomainError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, usecase.ErrUnauthenticated):
		JSONError(w, http.StatusUnauthorized, "UNAUTHENTICATED", "Caller is not authenticated", nil)
	case errors.Is(err, usecase.ErrNotFound):
		JSONError(w, http.StatusNotFound, "NOT_FOUND", "Resource not found", nil)
	case errors.Is(err, usecase.ErrBookNotAvailable):
		JSONError(w, http.StatusConflict, "BOOK_NOT_AVAILABLE", "No copies of this book are available", nil)
	case errors.Is(err, usecase.ErrReturnDateRequired):
		JSONError(w, http.StatusBadRequest, "RETURN_DATE_REQUIRED", "A return date is required to borrow a book", nil)
	case errors.Is(err, usecase.ErrAlreadyReturned):
		JSONError(w, http.StatusConflict, "ALREADY_RETURNED", "This transaction was already returned", nil)
	case errors.Is(err, usecase.ErrInventoryConflict):
		JSONError(w, http.StatusConflict, "INVENTORY_CONFLICT", "Concurrent inventory update, please retry", nil)
	case errors.Is(err, usecase.ErrAlreadyExists):
		JSONError(w, http.StatusConflict, "ALREADY_EXISTS", "Resource already exists", nil)
	default:
		JSONError(w, http.StatusInternalServerError, "INTERNAL_ERROR", "Internal server error", nil)
	}
}
