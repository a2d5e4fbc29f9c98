package controllers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/gorilla/mux"

	"github.com/fkunand/faculty-admin/modules/faculty/domain/aggregates/performance"
	"github.com/fkunand/faculty-admin/modules/faculty/services"
	"github.com/fkunand/faculty-admin/pkg/application"
	"github.com/fkunand/faculty-admin/pkg/composables"
	"github.com/fkunand/faculty-admin/pkg/httpapi"
	"github.com/fkunand/faculty-admin/pkg/middleware"
	"github.com/fkunand/faculty-admin/pkg/serrors"
)

// PerformanceQuery is the list filter accepted by GET /faculty/api/performance.
type PerformanceQuery struct {
	Q        string `form:"q"`
	Year     int    `form:"year"`
	Quarter  int    `form:"quarter"`
	Category string `form:"category"`
	Status   string `form:"status"`
	Limit    int    `form:"limit"`
	Offset   int    `form:"offset"`
	Page     int    `form:"page"`
}

type PerformanceAPIController struct {
	app         application.Application
	indicators  *services.PerformanceService
	basePath    string
	pageSize    int
	maxPageSize int
}

func NewPerformanceAPIController(app application.Application, pageSize, maxPageSize int) application.Controller {
	if pageSize <= 0 {
		pageSize = 25
	}
	if maxPageSize < pageSize {
		maxPageSize = pageSize
	}
	return &PerformanceAPIController{
		app:         app,
		indicators:  app.Service(services.PerformanceService{}).(*services.PerformanceService),
		basePath:    "/faculty/api",
		pageSize:    pageSize,
		maxPageSize: maxPageSize,
	}
}

func (c *PerformanceAPIController) Key() string {
	return c.basePath + "/performance"
}

func (c *PerformanceAPIController) Register(r *mux.Router) {
	router := r.PathPrefix(c.basePath).Subrouter()
	router.HandleFunc("/performance", c.List).Methods(http.MethodGet)
	router.HandleFunc("/performance:stats", c.Stats).Methods(http.MethodGet)
	router.HandleFunc("/performance/{id:[0-9]+}", c.Get).Methods(http.MethodGet)

	writeRouter := r.PathPrefix(c.basePath).Subrouter()
	writeRouter.Use(middleware.WithTransaction())
	writeRouter.HandleFunc("/performance", c.Create).Methods(http.MethodPost)
	writeRouter.HandleFunc("/performance/{id:[0-9]+}", c.Update).Methods(http.MethodPut)
	writeRouter.HandleFunc("/performance/{id:[0-9]+}", c.Delete).Methods(http.MethodDelete)
}

func (c *PerformanceAPIController) findParams(q PerformanceQuery) (*performance.FindParams, error) {
	params := &performance.FindParams{
		Q:        strings.TrimSpace(q.Q),
		Year:     q.Year,
		Category: strings.TrimSpace(q.Category),
		Limit:    c.pageSize,
	}
	if q.Quarter < 0 || q.Quarter > 4 {
		return nil, serrors.NewError("PERFORMANCE_INVALID_FILTER", "quarter must be between 1 and 4", "")
	}
	params.Quarter = q.Quarter
	if v := strings.ToLower(strings.TrimSpace(q.Status)); v != "" {
		status := performance.Status(v)
		if !status.IsValid() {
			return nil, serrors.NewError("PERFORMANCE_INVALID_FILTER", "unknown status "+strconv.Quote(q.Status), "")
		}
		params.Status = status
	}

	if q.Limit > 0 {
		params.Limit = q.Limit
	}
	if params.Limit > c.maxPageSize {
		params.Limit = c.maxPageSize
	}
	switch {
	case q.Offset > 0:
		params.Offset = q.Offset
	case q.Page > 1:
		params.Offset = (q.Page - 1) * params.Limit
	}
	return params, nil
}

func (c *PerformanceAPIController) List(w http.ResponseWriter, r *http.Request) {
	query, err := composables.UseQuery(&PerformanceQuery{}, r)
	if err != nil {
		writeAPIError(w, r, http.StatusBadRequest, "PERFORMANCE_INVALID_QUERY", "invalid query parameters")
		return
	}
	params, err := c.findParams(*query)
	if err != nil {
		writeAPIError(w, r, http.StatusBadRequest, "PERFORMANCE_INVALID_FILTER", err.Error())
		return
	}

	items, err := c.indicators.GetPaginated(r.Context(), params)
	if err != nil {
		writeInternalError(w, r, "PERFORMANCE_INTERNAL", err)
		return
	}
	total, err := c.indicators.Count(r.Context(), params)
	if err != nil {
		writeInternalError(w, r, "PERFORMANCE_INTERNAL", err)
		return
	}

	data := make([]performance.Snapshot, 0, len(items))
	for _, i := range items {
		data = append(data, i.Snapshot())
	}
	writeJSON(w, r, http.StatusOK, map[string]any{
		"success": true,
		"data":    data,
		"meta": listMeta{
			Total:  total,
			Limit:  params.Limit,
			Offset: params.Offset,
		},
	})
}

func (c *PerformanceAPIController) Stats(w http.ResponseWriter, r *http.Request) {
	query, err := composables.UseQuery(&PerformanceQuery{}, r)
	if err != nil {
		writeAPIError(w, r, http.StatusBadRequest, "PERFORMANCE_INVALID_QUERY", "invalid query parameters")
		return
	}
	stats, err := c.indicators.Stats(r.Context(), query.Year)
	if err != nil {
		writeInternalError(w, r, "PERFORMANCE_INTERNAL", err)
		return
	}
	writeJSON(w, r, http.StatusOK, map[string]any{
		"success": true,
		"data":    stats,
	})
}

func (c *PerformanceAPIController) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := indicatorID(w, r)
	if !ok {
		return
	}
	entity, err := c.indicators.GetByID(r.Context(), id)
	if err != nil {
		c.writeIndicatorError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, map[string]any{
		"success": true,
		"data":    entity.Snapshot(),
	})
}

func (c *PerformanceAPIController) Create(w http.ResponseWriter, r *http.Request) {
	var dto performance.CreateDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		writeAPIError(w, r, http.StatusBadRequest, "PERFORMANCE_INVALID_JSON", "invalid json")
		return
	}
	created, err := c.indicators.Create(r.Context(), &dto)
	if err != nil {
		c.writeIndicatorError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusCreated, map[string]any{
		"success": true,
		"data":    created.Snapshot(),
	})
}

func (c *PerformanceAPIController) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := indicatorID(w, r)
	if !ok {
		return
	}
	var dto performance.UpdateDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		writeAPIError(w, r, http.StatusBadRequest, "PERFORMANCE_INVALID_JSON", "invalid json")
		return
	}
	updated, err := c.indicators.Update(r.Context(), id, &dto)
	if err != nil {
		c.writeIndicatorError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, map[string]any{
		"success": true,
		"data":    updated.Snapshot(),
	})
}

func (c *PerformanceAPIController) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := indicatorID(w, r)
	if !ok {
		return
	}
	deleted, err := c.indicators.Delete(r.Context(), id)
	if err != nil {
		c.writeIndicatorError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, map[string]any{
		"success": true,
		"data":    deleted.Snapshot(),
	})
}

func indicatorID(w http.ResponseWriter, r *http.Request) (uint, bool) {
	id, err := strconv.ParseUint(mux.Vars(r)["id"], 10, 64)
	if err != nil || id == 0 {
		writeAPIError(w, r, http.StatusBadRequest, "PERFORMANCE_INVALID_ID", "invalid indicator id")
		return 0, false
	}
	return uint(id), true
}

func (c *PerformanceAPIController) writeIndicatorError(w http.ResponseWriter, r *http.Request, err error) {
	var invalid serrors.ValidationErrors
	switch {
	case errors.As(err, &invalid):
		if err := httpapi.WriteValidationError(w, invalid); err != nil {
			composables.UseLogger(r.Context()).WithError(err).Error("failed to encode response")
		}
	case errors.Is(err, performance.ErrNotFound):
		writeAPIError(w, r, http.StatusNotFound, "PERFORMANCE_NOT_FOUND", "performance indicator not found")
	case errors.Is(err, performance.ErrDuplicate):
		writeAPIError(w, r, http.StatusConflict, "PERFORMANCE_DUPLICATE", err.Error())
	default:
		writeInternalError(w, r, "PERFORMANCE_INTERNAL", err)
	}
}
