package controllers

import (
	"net/http"
	"strings"

	"github.com/fkunand/faculty-admin/pkg/composables"
	"github.com/fkunand/faculty-admin/pkg/httpapi"
)

func writeJSON(w http.ResponseWriter, r *http.Request, status int, payload any) {
	if err := httpapi.WriteJSON(w, status, payload); err != nil {
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

func writeInternalError(w http.ResponseWriter, r *http.Request, code string, err error) {
	composables.UseLogger(r.Context()).WithError(err).Error(code)
	writeAPIError(w, r, http.StatusInternalServerError, code, "internal error")
}
