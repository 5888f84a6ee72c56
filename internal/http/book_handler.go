package http

import (
	"encoding/json"
	"net/http"

	"lendingapi/internal/entity"
	"lendingapi/internal/usecase"
)

type BookHandler struct {
	books usecase.BookRepository
}

func NewBookHandler(books usecase.BookRepository) *BookHandler {
	return &BookHandler{books: books}
}

type createBookReq struct {
	Title      string `json:"title" validate:"required"`
	WriterName string `json:"writer_name" validate:"required"`
	CategoryID string `json:"category_id" validate:"required"`
	Amount     int    `json:"amount" validate:"gte=0"`
}

func (h *BookHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req createBookReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		JSONError(w, http.StatusBadRequest, "BAD_REQUEST", "Invalid request body", nil)
		return
	}
	if validationErrors := ValidateStruct(req); len(validationErrors) > 0 {
		JSONError(w, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid input", validationErrors)
		return
	}

	book := &entity.Book{
		Title:      req.Title,
		WriterName: req.WriterName,
		CategoryID: req.CategoryID,
		Amount:     req.Amount,
	}
	if err := h.books.Create(r.Context(), book); err != nil {
		JSONDomainError(w, err)
		return
	}
	JSONSuccessCreated(w, book)
}

func (h *BookHandler) Get(w http.ResponseWriter, r *http.Request) {
	book, err := h.books.GetByID(r.Context(), r.PathValue("id"))
	if err != nil {
		JSONDomainError(w, err)
		return
	}
	JSONSuccess(w, book, nil)
}

type patchBookReq struct {
	Title      *string `json:"title"`
	WriterName *string `json:"writer_name"`
	CategoryID *string `json:"category_id"`
	Amount     *int    `json:"amount"`
}

// Patch applies a field-level partial update; absent fields keep their value.
func (h *BookHandler) Patch(w http.ResponseWriter, r *http.Request) {
	var req patchBookReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		JSONError(w, http.StatusBadRequest, "BAD_REQUEST", "Invalid request body", nil)
		return
	}

	book, err := h.books.GetByID(r.Context(), r.PathValue("id"))
	if err != nil {
		JSONDomainError(w, err)
		return
	}

	if req.Title != nil {
		book.Title = *req.Title
	}
	if req.WriterName != nil {
		book.WriterName = *req.WriterName
	}
	if req.CategoryID != nil {
		book.CategoryID = *req.CategoryID
	}
	if req.Amount != nil {
		if *req.Amount < 0 {
			JSONError(w, http.StatusBadRequest, "VALIDATION_ERROR", "Amount cannot be negative", nil)
			return
		}
		book.Amount = *req.Amount
	}

	if err := h.books.Update(r.Context(), &book); err != nil {
		JSONDomainError(w, err)
		return
	}
	JSONSuccess(w, book, nil)
}

func (h *BookHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.books.Delete(r.Context(), r.PathValue("id")); err != nil {
		JSONDomainError(w, err)
		return
	}
	JSONSuccessNoContent(w)
}

func (h *BookHandler) List(w http.ResponseWriter, r *http.Request) {
	params, page, pageSize := pagination(r)

	books, total, err := h.books.List(r.Context(), params)
	if err != nil {
		JSONDomainError(w, err)
		return
	}
	JSONSuccess(w, books, pageMeta(page, pageSize, total))
}

// ListAvailable returns borrowable books, optionally scoped to a category
// from the path.
func (h *BookHandler) ListAvailable(w http.ResponseWriter, r *http.Request) {
	books, err := h.books.ListAvailable(r.Context(), r.PathValue("id"))
	if err != nil {
		JSONDomainError(w, err)
		return
	}
	JSONSuccess(w, books, nil)
}
