package controllers_test

import (
	"bytes"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/require"

	"github.com/fkunand/faculty-admin/modules/faculty/services"
	"github.com/fkunand/faculty-admin/modules/faculty/testhelpers"
	"github.com/fkunand/faculty-admin/pkg/application"
	"github.com/fkunand/faculty-admin/pkg/configuration"
)

type testEnv struct {
	app    application.Application
	repo   *testhelpers.MemoryRepository
	perf   *testhelpers.PerformanceRepository
	events *testhelpers.Recorder
}

func newTestEnv(t *testing.T, opts configuration.ImportOptions) *testEnv {
	t.Helper()
	repo := testhelpers.NewMemoryRepository()
	perf := testhelpers.NewPerformanceRepository()
	bus, events := testhelpers.NewEventRecorder()
	app := application.New(&application.ApplicationOptions{EventBus: bus})
	app.RegisterServices(
		services.NewMemberService(repo, bus),
		services.NewPerformanceService(perf, bus),
		services.NewImportService(repo, perf, bus, nil, opts),
		services.NewTemplateService(),
	)
	return &testEnv{app: app, repo: repo, perf: perf, events: events}
}

func defaultImportOptions() configuration.ImportOptions {
	return configuration.ImportOptions{
		MaxUploadSize:         1024,
		DateOrder:             configuration.DateOrderDMY,
		ErrorPreviewLimit:     10,
		LecturerScanWindow:    20,
		StaffScanWindow:       10,
		PerformanceScanWindow: 10,
	}
}

func routerFor(controllers ...application.Controller) *mux.Router {
	r := mux.NewRouter()
	for _, c := range controllers {
		c.Register(r)
	}
	return r
}

func multipartBody(t *testing.T, field, filename string, data []byte) (*bytes.Buffer, string) {
	t.Helper()
	body := &bytes.Buffer{}
	mw := multipart.NewWriter(body)
	if field != "" {
		part, err := mw.CreateFormFile(field, filename)
		require.NoError(t, err)
		_, err = part.Write(data)
		require.NoError(t, err)
	} else {
		require.NoError(t, mw.WriteField("note", "no file"))
	}
	require.NoError(t, mw.Close())
	return body, mw.FormDataContentType()
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var out map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out))
	return out
}

func serve(h http.Handler, req *http.Request) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}
