package http

import (
	"net/http"

	"lendingapi/internal/usecase"
)

// TransactionHandler is the ledger's read surface plus the administrative
// delete escape hatch. It performs no lending validation; that lives in the
// workflow.
type TransactionHandler struct {
	ledger usecase.TransactionRepository
}

func NewTransactionHandler(ledger usecase.TransactionRepository) *TransactionHandler {
	return &TransactionHandler{ledger: ledger}
}

func (h *TransactionHandler) Get(w http.ResponseWriter, r *http.Request) {
	trx, err := h.ledger.GetByID(r.Context(), r.PathValue("id"))
	if err != nil {
		JSONDomainError(w, err)
		return
	}
	JSONSuccess(w, trx, nil)
}

func (h *TransactionHandler) List(w http.ResponseWriter, r *http.Request) {
	params, page, pageSize := pagination(r)

	trxs, total, err := h.ledger.List(r.Context(), params)
	if err != nil {
		JSONDomainError(w, err)
		return
	}
	JSONSuccess(w, trxs, pageMeta(page, pageSize, total))
}

func (h *TransactionHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.ledger.Delete(r.Context(), r.PathValue("id")); err != nil {
		JSONDomainError(w, err)
		return
	}
	JSONSuccessNoContent(w)
}
