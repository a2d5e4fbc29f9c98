package composables

import (
	"net/http"
	"strconv"

	"github.com/fkunand/faculty-admin/pkg/configuration"
)

type PaginationParams struct {
	Limit  int
	Offset int
	Page   int
}

// UsePaginated reads page/limit query parameters, clamped to the configured page sizes.
func UsePaginated(r *http.Request) PaginationParams {
	conf := configuration.Use()
	return paginationFromQuery(r, conf.PageSize, conf.MaxPageSize)
}

func paginationFromQuery(r *http.Request, pageSize, maxPageSize int) PaginationParams {
	limit := pageSize
	if v, err := strconv.Atoi(r.URL.Query().Get("limit")); err == nil && v > 0 {
		limit = v
	}
	if maxPageSize > 0 && limit > maxPageSize {
		limit = maxPageSize
	}
	page := 1
	if v, err := strconv.Atoi(r.URL.Query().Get("page")); err == nil && v > 0 {
		page = v
	}
	return PaginationParams{
		Limit:  limit,
		Offset: (page - 1) * limit,
		Page:   page,
	}
}
