package controllers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/gorilla/mux"

	"github.com/fkunand/faculty-admin/modules/faculty/domain/aggregates/member"
	"github.com/fkunand/faculty-admin/modules/faculty/services"
	"github.com/fkunand/faculty-admin/pkg/application"
	"github.com/fkunand/faculty-admin/pkg/composables"
	"github.com/fkunand/faculty-admin/pkg/httpapi"
	"github.com/fkunand/faculty-admin/pkg/middleware"
	"github.com/fkunand/faculty-admin/pkg/serrors"
)

// MemberQuery is the list filter accepted by GET /faculty/api/members.
type MemberQuery struct {
	Q                  string `form:"q"`
	Kind               string `form:"kind"`
	Department         string `form:"department"`
	IdentificationType string `form:"identification_type"`
	Status             string `form:"status"`
	Limit              int    `form:"limit"`
	Offset             int    `form:"offset"`
	Page               int    `form:"page"`
}

type listMeta struct {
	Total  int64 `json:"total"`
	Limit  int   `json:"limit"`
	Offset int   `json:"offset"`
}

type MemberAPIController struct {
	app         application.Application
	members     *services.MemberService
	basePath    string
	pageSize    int
	maxPageSize int
}

func NewMemberAPIController(app application.Application, pageSize, maxPageSize int) application.Controller {
	if pageSize <= 0 {
		pageSize = 25
	}
	if maxPageSize < pageSize {
		maxPageSize = pageSize
	}
	return &MemberAPIController{
		app:         app,
		members:     app.Service(services.MemberService{}).(*services.MemberService),
		basePath:    "/faculty/api",
		pageSize:    pageSize,
		maxPageSize: maxPageSize,
	}
}

func (c *MemberAPIController) Key() string {
	return c.basePath + "/members"
}

func (c *MemberAPIController) Register(r *mux.Router) {
	router := r.PathPrefix(c.basePath).Subrouter()
	router.HandleFunc("/members", c.List).Methods(http.MethodGet)
	router.HandleFunc("/members:stats", c.Stats).Methods(http.MethodGet)
	router.HandleFunc("/members/{id:[0-9]+}", c.Get).Methods(http.MethodGet)

	writeRouter := r.PathPrefix(c.basePath).Subrouter()
	writeRouter.Use(middleware.WithTransaction())
	writeRouter.HandleFunc("/members", c.Create).Methods(http.MethodPost)
	writeRouter.HandleFunc("/members/{id:[0-9]+}", c.Update).Methods(http.MethodPut)
	writeRouter.HandleFunc("/members/{id:[0-9]+}", c.Delete).Methods(http.MethodDelete)
}

func (c *MemberAPIController) findParams(q MemberQuery) (*member.FindParams, error) {
	params := &member.FindParams{
		Q:          strings.TrimSpace(q.Q),
		Department: strings.TrimSpace(q.Department),
		Limit:      c.pageSize,
	}
	if q.Kind != "" {
		kind, err := member.ParseKind(q.Kind)
		if err != nil {
			return nil, err
		}
		params.Kind = kind
	}
	if v := strings.ToUpper(strings.TrimSpace(q.IdentificationType)); v != "" {
		t := member.IdentificationType(v)
		if !t.IsValid() {
			return nil, serrors.NewError("MEMBER_INVALID_FILTER", "unknown identification_type "+strconv.Quote(q.IdentificationType), "")
		}
		params.IdentificationType = t
	}
	switch strings.ToLower(strings.TrimSpace(q.Status)) {
	case "":
	case "active":
		active := true
		params.Active = &active
	case "inactive":
		active := false
		params.Active = &active
	default:
		return nil, serrors.NewError("MEMBER_INVALID_FILTER", "status must be active or inactive", "")
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

func (c *MemberAPIController) List(w http.ResponseWriter, r *http.Request) {
	query, err := composables.UseQuery(&MemberQuery{}, r)
	if err != nil {
		writeAPIError(w, r, http.StatusBadRequest, "MEMBER_INVALID_QUERY", "invalid query parameters")
		return
	}
	params, err := c.findParams(*query)
	if err != nil {
		writeAPIError(w, r, http.StatusBadRequest, "MEMBER_INVALID_FILTER", err.Error())
		return
	}

	items, err := c.members.GetPaginated(r.Context(), params)
	if err != nil {
		writeInternalError(w, r, "MEMBER_INTERNAL", err)
		return
	}
	total, err := c.members.Count(r.Context(), params)
	if err != nil {
		writeInternalError(w, r, "MEMBER_INTERNAL", err)
		return
	}

	data := make([]member.Snapshot, 0, len(items))
	for _, m := range items {
		data = append(data, m.Snapshot())
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

func (c *MemberAPIController) Stats(w http.ResponseWriter, r *http.Request) {
	stats, err := c.members.Stats(r.Context())
	if err != nil {
		writeInternalError(w, r, "MEMBER_INTERNAL", err)
		return
	}
	writeJSON(w, r, http.StatusOK, map[string]any{
		"success": true,
		"data":    stats,
	})
}

func (c *MemberAPIController) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := memberID(w, r)
	if !ok {
		return
	}
	entity, err := c.members.GetByID(r.Context(), id)
	if err != nil {
		c.writeMemberError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, map[string]any{
		"success": true,
		"data":    entity.Snapshot(),
	})
}

func (c *MemberAPIController) Create(w http.ResponseWriter, r *http.Request) {
	var dto member.CreateDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		writeAPIError(w, r, http.StatusBadRequest, "MEMBER_INVALID_JSON", "invalid json")
		return
	}
	created, err := c.members.Create(r.Context(), &dto)
	if err != nil {
		c.writeMemberError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusCreated, map[string]any{
		"success": true,
		"data":    created.Snapshot(),
	})
}

func (c *MemberAPIController) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := memberID(w, r)
	if !ok {
		return
	}
	var dto member.UpdateDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		writeAPIError(w, r, http.StatusBadRequest, "MEMBER_INVALID_JSON", "invalid json")
		return
	}
	updated, err := c.members.Update(r.Context(), id, &dto)
	if err != nil {
		c.writeMemberError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, map[string]any{
		"success": true,
		"data":    updated.Snapshot(),
	})
}

func (c *MemberAPIController) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := memberID(w, r)
	if !ok {
		return
	}
	deleted, err := c.members.Delete(r.Context(), id)
	if err != nil {
		c.writeMemberError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, map[string]any{
		"success": true,
		"data":    deleted.Snapshot(),
	})
}

func memberID(w http.ResponseWriter, r *http.Request) (uint, bool) {
	id, err := strconv.ParseUint(mux.Vars(r)["id"], 10, 64)
	if err != nil || id == 0 {
		writeAPIError(w, r, http.StatusBadRequest, "MEMBER_INVALID_ID", "invalid member id")
		return 0, false
	}
	return uint(id), true
}

func (c *MemberAPIController) writeMemberError(w http.ResponseWriter, r *http.Request, err error) {
	var invalid serrors.ValidationErrors
	switch {
	case errors.As(err, &invalid):
		if err := httpapi.WriteValidationError(w, invalid); err != nil {
			composables.UseLogger(r.Context()).WithError(err).Error("failed to encode response")
		}
	case errors.Is(err, member.ErrNotFound):
		writeAPIError(w, r, http.StatusNotFound, "MEMBER_NOT_FOUND", "member not found")
	case errors.Is(err, member.ErrDuplicate):
		writeAPIError(w, r, http.StatusConflict, "MEMBER_DUPLICATE", err.Error())
	default:
		writeInternalError(w, r, "MEMBER_INTERNAL", err)
	}
}
