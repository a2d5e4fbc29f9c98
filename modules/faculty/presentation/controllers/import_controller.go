package controllers

import (
	"errors"
	"io"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/iota-uz/go-i18n/v2/i18n"

	"github.com/fkunand/faculty-admin/modules/faculty/domain/ingest"
	"github.com/fkunand/faculty-admin/modules/faculty/services"
	"github.com/fkunand/faculty-admin/pkg/application"
	"github.com/fkunand/faculty-admin/pkg/intl"
	"github.com/fkunand/faculty-admin/pkg/spreadsheet"
)

// multipart framing on top of the file itself
const formOverhead = 64 << 10

type ImportResponse struct {
	Success         bool     `json:"success"`
	Message         string   `json:"message"`
	SuccessCount    int      `json:"success_count"`
	InsertedCount   int      `json:"inserted_count"`
	UpdatedCount    int      `json:"updated_count"`
	ErrorCount      int      `json:"error_count"`
	Errors          []string `json:"errors"`
	ErrorsTruncated bool     `json:"errors_truncated"`
}

type ImportController struct {
	app      application.Application
	imports  *services.ImportService
	basePath string
}

func NewImportController(app application.Application) application.Controller {
	return &ImportController{
		app:      app,
		imports:  app.Service(services.ImportService{}).(*services.ImportService),
		basePath: "/faculty/api/imports",
	}
}

func (c *ImportController) Key() string {
	return c.basePath
}

func (c *ImportController) Register(r *mux.Router) {
	router := r.PathPrefix(c.basePath).Subrouter()
	router.HandleFunc("/{kind}", c.Upload).Methods(http.MethodPost)
}

func (c *ImportController) Upload(w http.ResponseWriter, r *http.Request) {
	target, err := services.ParseImportTarget(mux.Vars(r)["kind"])
	if err != nil {
		writeAPIError(w, r, http.StatusBadRequest, "IMPORT_UNKNOWN_KIND", err.Error())
		return
	}
	l := intl.LocalizerFrom(r.Context())

	limit := c.imports.MaxUploadSize()
	r.Body = http.MaxBytesReader(w, r.Body, limit+formOverhead)
	if err := r.ParseMultipartForm(limit); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			writeAPIError(w, r, http.StatusBadRequest, "IMPORT_FILE_TOO_LARGE", services.ErrFileTooLarge.Localize(l))
			return
		}
		writeAPIError(w, r, http.StatusBadRequest, "IMPORT_INVALID_FORM", "expected a multipart form with a file field")
		return
	}
	defer func() {
		if r.MultipartForm != nil {
			_ = r.MultipartForm.RemoveAll()
		}
	}()

	file, header, err := r.FormFile("file")
	if err != nil {
		writeAPIError(w, r, http.StatusBadRequest, "IMPORT_FILE_REQUIRED", "file is required")
		return
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		writeInternalError(w, r, "IMPORT_READ_FAILED", err)
		return
	}

	res, err := c.imports.Import(r.Context(), services.ImportRequest{
		Target:      target,
		FileName:    header.Filename,
		ContentType: header.Header.Get("Content-Type"),
		Data:        data,
	})
	if err != nil {
		c.writeImportError(w, r, l, err)
		return
	}

	messages, truncated := res.Messages(l, c.imports.ErrorPreviewLimit())
	writeJSON(w, r, http.StatusOK, ImportResponse{
		Success:         res.Succeeded() > 0 || res.Failed == 0,
		Message:         summary(l, res),
		SuccessCount:    res.Succeeded(),
		InsertedCount:   res.Inserted,
		UpdatedCount:    res.Updated,
		ErrorCount:      res.Failed,
		Errors:          messages,
		ErrorsTruncated: truncated,
	})
}

func summary(l *i18n.Localizer, res *ingest.Result) string {
	data := map[string]any{"Stored": res.Succeeded(), "Failed": res.Failed}
	switch {
	case res.Failed == 0:
		return intl.T(l, "Import.Summary.Completed", data)
	case res.Succeeded() == 0:
		return intl.T(l, "Import.Summary.Failed", data)
	default:
		return intl.T(l, "Import.Summary.Partial", data)
	}
}

func (c *ImportController) writeImportError(w http.ResponseWriter, r *http.Request, l *i18n.Localizer, err error) {
	var (
		headerErr *ingest.HeaderNotFoundError
		decodeErr *spreadsheet.DecodeError
	)
	msg := intl.LocalizeError(l, err)
	switch {
	case errors.Is(err, services.ErrEmptyFile), errors.Is(err, spreadsheet.ErrNoRows):
		writeAPIError(w, r, http.StatusBadRequest, "IMPORT_EMPTY_FILE", msg)
	case errors.Is(err, services.ErrFileTooLarge):
		writeAPIError(w, r, http.StatusBadRequest, "IMPORT_FILE_TOO_LARGE", msg)
	case errors.Is(err, spreadsheet.ErrUnsupportedFormat):
		writeAPIError(w, r, http.StatusBadRequest, "IMPORT_UNSUPPORTED_FORMAT", msg)
	case errors.As(err, &headerErr):
		writeAPIError(w, r, http.StatusBadRequest, "IMPORT_HEADER_NOT_FOUND", msg)
	case errors.As(err, &decodeErr):
		writeInternalError(w, r, "IMPORT_DECODE_FAILED", err)
	default:
		writeInternalError(w, r, "IMPORT_FAILED", err)
	}
}
