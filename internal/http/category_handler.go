package http

import (
	"encoding/json"
	"net/http"

	"lendingapi/internal/entity"
	"lendingapi/internal/usecase"
)

type CategoryHandler struct {
	categories usecase.CategoryRepository
}

func NewCategoryHandler(categories usecase.CategoryRepository) *CategoryHandler {
	return &CategoryHandler{categories: categories}
}

type categoryReq struct {
	Name string `json:"name" validate:"required,min=1,max=100"`
}

func (h *CategoryHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req categoryReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		JSONError(w, http.StatusBadRequest, "BAD_REQUEST", "Invalid request body", nil)
		return
	}
	if validationErrors := ValidateStruct(req); len(validationErrors) > 0 {
		JSONError(w, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid input", validationErrors)
		return
	}

	category := &entity.BookCategory{Name: req.Name}
	if err := h.categories.Create(r.Context(), category); err != nil {
		JSONDomainError(w, err)
		return
	}
	JSONSuccessCreated(w, category)
}

func (h *CategoryHandler) Get(w http.ResponseWriter, r *http.Request) {
	category, err := h.categories.GetByID(r.Context(), r.PathValue("id"))
	if err != nil {
		JSONDomainError(w, err)
		return
	}
	JSONSuccess(w, category, nil)
}

func (h *CategoryHandler) Update(w http.ResponseWriter, r *http.Request) {
	var req categoryReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		JSONError(w, http.StatusBadRequest, "BAD_REQUEST", "Invalid request body", nil)
		return
	}
	if validationErrors := ValidateStruct(req); len(validationErrors) > 0 {
		JSONError(w, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid input", validationErrors)
		return
	}

	category := entity.BookCategory{ID: r.PathValue("id"), Name: req.Name}
	if err := h.categories.Update(r.Context(), &category); err != nil {
		JSONDomainError(w, err)
		return
	}
	JSONSuccess(w, category, nil)
}

func (h *CategoryHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.categories.Delete(r.Context(), r.PathValue("id")); err != nil {
		JSONDomainError(w, err)
		return
	}
	JSONSuccessNoContent(w)
}

func (h *CategoryHandler) List(w http.ResponseWriter, r *http.Request) {
	params, page, pageSize := pagination(r)

	categories, total, err := h.categories.List(r.Context(), params)
	if err != nil {
		JSONDomainError(w, err)
		return
	}
	JSONSuccess(w, categories, pageMeta(page, pageSize, total))
}
