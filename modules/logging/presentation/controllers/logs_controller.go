package controllers

import (
	"net/http"
	"strings"
	"time"

	"github.com/gorilla/mux"

	"github.com/fkunand/faculty-admin/modules/logging/domain/entities/activitylog"
	"github.com/fkunand/faculty-admin/modules/logging/domain/entities/uploadlog"
	"github.com/fkunand/faculty-admin/modules/logging/presentation/mappers"
	"github.com/fkunand/faculty-admin/modules/logging/services"
	"github.com/fkunand/faculty-admin/pkg/application"
	"github.com/fkunand/faculty-admin/pkg/composables"
	"github.com/fkunand/faculty-admin/pkg/httpapi"
)

// LogsQuery holds the filters shared by both history endpoints.
type LogsQuery struct {
	Target     string `form:"target"`
	Status     string `form:"status"`
	UploadedBy string `form:"uploaded_by"`
	Actor      string `form:"actor"`
	TableName  string `form:"table_name"`
	RecordID   *uint  `form:"record_id"`
	Action     string `form:"action"`
	From       string `form:"from"`
	To         string `form:"to"`
	Limit      int    `form:"limit"`
	Page       int    `form:"page"`
}

type pageMeta struct {
	Total int64 `json:"total"`
	Page  int   `json:"page"`
	Limit int   `json:"limit"`
}

type LogsController struct {
	app         application.Application
	logsService *services.LogsService
	basePath    string
	pageSize    int
	maxPageSize int
}

func NewLogsController(app application.Application, pageSize, maxPageSize int) application.Controller {
	if pageSize <= 0 {
		pageSize = 25
	}
	if maxPageSize < pageSize {
		maxPageSize = pageSize
	}
	return &LogsController{
		app:         app,
		logsService: app.Service(services.LogsService{}).(*services.LogsService),
		basePath:    "/logs/api",
		pageSize:    pageSize,
		maxPageSize: maxPageSize,
	}
}

func (c *LogsController) Key() string {
	return c.basePath
}

func (c *LogsController) Register(r *mux.Router) {
	router := r.PathPrefix(c.basePath).Subrouter()
	router.HandleFunc("/uploads", c.Uploads).Methods(http.MethodGet)
	router.HandleFunc("/activities", c.Activities).Methods(http.MethodGet)
}

func (c *LogsController) page(q *LogsQuery) (limit, offset, page int) {
	limit = c.pageSize
	if q.Limit > 0 {
		limit = min(q.Limit, c.maxPageSize)
	}
	page = max(q.Page, 1)
	return limit, (page - 1) * limit, page
}

func parseDay(v string, endOfDay bool) (*time.Time, bool) {
	v = strings.TrimSpace(v)
	if v == "" {
		return nil, true
	}
	t, err := time.Parse(time.DateOnly, v)
	if err != nil {
		return nil, false
	}
	if endOfDay {
		t = t.Add(24*time.Hour - time.Nanosecond)
	}
	return &t, true
}

func (c *LogsController) query(w http.ResponseWriter, r *http.Request) (*LogsQuery, *time.Time, *time.Time, bool) {
	q, err := composables.UseQuery(&LogsQuery{}, r)
	if err != nil {
		writeAPIError(w, r, http.StatusBadRequest, "LOGS_INVALID_QUERY", "invalid query parameters")
		return nil, nil, nil, false
	}
	from, ok := parseDay(q.From, false)
	if !ok {
		writeAPIError(w, r, http.StatusBadRequest, "LOGS_INVALID_QUERY", "from must be a YYYY-MM-DD date")
		return nil, nil, nil, false
	}
	to, ok := parseDay(q.To, true)
	if !ok {
		writeAPIError(w, r, http.StatusBadRequest, "LOGS_INVALID_QUERY", "to must be a YYYY-MM-DD date")
		return nil, nil, nil, false
	}
	return q, from, to, true
}

func (c *LogsController) Uploads(w http.ResponseWriter, r *http.Request) {
	q, from, to, ok := c.query(w, r)
	if !ok {
		return
	}
	status := uploadlog.Status(strings.ToLower(strings.TrimSpace(q.Status)))
	switch status {
	case "", uploadlog.StatusCompleted, uploadlog.StatusFailed:
	default:
		writeAPIError(w, r, http.StatusBadRequest, "LOGS_INVALID_QUERY", "status must be completed or failed")
		return
	}

	limit, offset, page := c.page(q)
	logs, total, err := c.logsService.ListUploadLogs(r.Context(), &uploadlog.FindParams{
		Target:     strings.TrimSpace(q.Target),
		Status:     status,
		UploadedBy: q.UploadedBy,
		From:       from,
		To:         to,
		Limit:      limit,
		Offset:     offset,
	})
	if err != nil {
		composables.UseLogger(r.Context()).WithError(err).Error("failed to list upload logs")
		writeAPIError(w, r, http.StatusInternalServerError, "LOGS_INTERNAL", "internal error")
		return
	}

	data := make([]mappers.UploadLog, 0, len(logs))
	for _, l := range logs {
		data = append(data, mappers.UploadLogToResponse(l))
	}
	writeJSON(w, r, map[string]any{
		"success": true,
		"data":    data,
		"meta":    pageMeta{Total: total, Page: page, Limit: limit},
	})
}

func (c *LogsController) Activities(w http.ResponseWriter, r *http.Request) {
	q, from, to, ok := c.query(w, r)
	if !ok {
		return
	}

	limit, offset, page := c.page(q)
	logs, total, err := c.logsService.ListActivityLogs(r.Context(), &activitylog.FindParams{
		Actor:     strings.TrimSpace(q.Actor),
		TableName: strings.TrimSpace(q.TableName),
		RecordID:  q.RecordID,
		Action:    q.Action,
		From:      from,
		To:        to,
		Limit:     limit,
		Offset:    offset,
	})
	if err != nil {
		composables.UseLogger(r.Context()).WithError(err).Error("failed to list activity logs")
		writeAPIError(w, r, http.StatusInternalServerError, "LOGS_INTERNAL", "internal error")
		return
	}

	data := make([]mappers.ActivityLog, 0, len(logs))
	for _, l := range logs {
		data = append(data, mappers.ActivityLogToResponse(l))
	}
	writeJSON(w, r, map[string]any{
		"success": true,
		"data":    data,
		"meta":    pageMeta{Total: total, Page: page, Limit: limit},
	})
}

func writeJSON(w http.ResponseWriter, r *http.Request, payload any) {
	if err := httpapi.WriteJSON(w, http.StatusOK, payload); err != nil {
		composables.UseLogger(r.Context()).WithError(err).Error("failed to encode response")
	}
}

func writeAPIError(w http.ResponseWriter, r *http.Request, status int, code, message string) {
	var meta map[string]string
	if id := strings.TrimSpace(w.Header().Get("X-Request-Id")); id != "" {
		meta = map[string]string{"request_id": id}
	}
	if err := httpapi.WriteError(w, status, code, message, meta); err != nil {
		composables.UseLogger(r.Context()).WithError(err).Error("failed to encode error response")
	}
}
