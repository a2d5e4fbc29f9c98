package controllers

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/fkunand/faculty-admin/modules/faculty/services"
	"github.com/fkunand/faculty-admin/pkg/application"
)

type TemplateController struct {
	templates *services.TemplateService
	basePath  string
}

func NewTemplateController(app application.Application) application.Controller {
	return &TemplateController{
		templates: app.Service(services.TemplateService{}).(*services.TemplateService),
		basePath:  "/faculty/api/templates",
	}
}

func (c *TemplateController) Key() string {
	return c.basePath
}

func (c *TemplateController) Register(r *mux.Router) {
	router := r.PathPrefix(c.basePath).Subrouter()
	router.HandleFunc("/{kind}", c.Download).Methods(http.MethodGet)
}

func (c *TemplateController) Download(w http.ResponseWriter, r *http.Request) {
	target, err := services.ParseImportTarget(mux.Vars(r)["kind"])
	if err != nil {
		writeAPIError(w, r, http.StatusNotFound, "TEMPLATE_UNKNOWN_KIND", err.Error())
		return
	}
	tpl, err := c.templates.Template(target)
	if err != nil {
		writeInternalError(w, r, "TEMPLATE_FAILED", err)
		return
	}

	w.Header().Set("Content-Type", tpl.ContentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", tpl.FileName))
	w.Header().Set("Content-Length", strconv.Itoa(len(tpl.Data)))
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(tpl.Data); err != nil {
		writeInternalError(w, r, "TEMPLATE_WRITE_FAILED", err)
	}
}
