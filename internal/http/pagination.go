package http

import (
	"net/http"
	"strconv"

	"lendingapi/internal/usecase"
)

// pagination reads page/page_size query parameters with the usual clamping.
func pagination(r *http.Request) (usecase.ListParams, int, int) {
	page, _ := strconv.Atoi(r.URL.Query().Get("page"))
	if page < 1 {
		page = 1
	}
	pageSize, _ := strconv.Atoi(r.URL.Query().Get("page_size"))
	if pageSize <= 0 || pageSize > 100 {
		pageSize = 20
	}
	return usecase.ListParams{Limit: pageSize, Offset: (page - 1) * pageSize}, page, pageSize
}

func pageMeta(page, pageSize, total int) map[string]any {
	return map[string]any{
		"page":        page,
		"page_size":   pageSize,
		"total":       total,
		"total_pages": (total + pageSize - 1) / pageSize,
	}
}
