package http

import (
	"encoding/json"
	"net/http"
	"time"

	"lendingapi/internal/usecase"
)

// LendingHandler exposes the borrow and return operations. The authenticated
// caller id is taken from the request context and handed to the workflow
// explicitly; the workflow re-checks it and fails closed if it is missing.
type LendingHandler struct {
	lending *usecase.LendingService
}

func NewLendingHandler(lending *usecase.LendingService) *LendingHandler {
	return &LendingHandler{lending: lending}
}

type borrowReq struct {
	BookID     string     `json:"book_id" validate:"required"`
	ReturnDate *time.Time `json:"return_date"`
}

// RequestBook handles POST /v1/api/customer/request-book.
func (h *LendingHandler) RequestBook(w http.ResponseWriter, r *http.Request) {
	var req borrowReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		JSONError(w, http.StatusBadRequest, "BAD_REQUEST", "Invalid request body", nil)
		return
	}
	if validationErrors := ValidateStruct(req); len(validationErrors) > 0 {
		JSONError(w, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid input", validationErrors)
		return
	}

	trxID, err := h.lending.Borrow(r.Context(), UserIDFrom(r), usecase.BorrowRequest{
		BookID:     req.BookID,
		ReturnDate: req.ReturnDate,
	})
	if err != nil {
		JSONDomainError(w, err)
		return
	}

	JSONSuccessCreated(w, map[string]any{"transaction_id": trxID})
}

type returnReq struct {
	TransactionID string     `json:"transaction_id" validate:"required"`
	ReceivedDate  *time.Time `json:"received_date"`
}

// ReturnBook handles POST /v1/api/customer/return-book.
func (h *LendingHandler) ReturnBook(w http.ResponseWriter, r *http.Request) {
	var req returnReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		JSONError(w, http.StatusBadRequest, "BAD_REQUEST", "Invalid request body", nil)
		return
	}
	if validationErrors := ValidateStruct(req); len(validationErrors) > 0 {
		JSONError(w, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid input", validationErrors)
		return
	}

	err := h.lending.Return(r.Context(), UserIDFrom(r), usecase.ReturnRequest{
		TransactionID: req.TransactionID,
		ReceivedDate:  req.ReceivedDate,
	})
	if err != nil {
		JSONDomainError(w, err)
		return
	}

	JSONSuccess(w, map[string]any{"transaction_id": req.TransactionID}, nil)
}
