package controllers_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/require"

	"github.com/fkunand/faculty-admin/modules/faculty/domain/aggregates/performance"
	"github.com/fkunand/faculty-admin/modules/faculty/presentation/controllers"
)

func performanceController(env *testEnv) *controllers.PerformanceAPIController {
	return controllers.NewPerformanceAPIController(env.app, 25, 100).(*controllers.PerformanceAPIController)
}

const publicationJSON = `{"year":2024,"quarter":2,"category":"Penelitian","indicator":"Publikasi Internasional",` +
	`"target_value":"50","achieved_value":45,"unit":"artikel","status":"on_track"}`

func TestPerformanceAPIController_CreateAndGet(t *testing.T) {
	env := newTestEnv(t, defaultImportOptions())
	c := performanceController(env)

	rec := httptest.NewRecorder()
	c.Create(rec, jsonRequest(http.MethodPost, "/faculty/api/performance", publicationJSON, nil))
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	data := decodeBody(t, rec)["data"].(map[string]any)
	require.Equal(t, "50", data["target_value"])
	require.Equal(t, "45", data["achieved_value"])
	require.Equal(t, "90", data["progress"])
	require.Equal(t, "on_track", data["status"])

	rec = httptest.NewRecorder()
	c.Get(rec, jsonRequest(http.MethodGet, "/faculty/api/performance/1", "", map[string]string{"id": "1"}))
	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, "Publikasi Internasional", decodeBody(t, rec)["data"].(map[string]any)["indicator"])

	rec = httptest.NewRecorder()
	c.Get(rec, jsonRequest(http.MethodGet, "/faculty/api/performance/7", "", map[string]string{"id": "7"}))
	require.Equal(t, http.StatusNotFound, rec.Code)
	require.Equal(t, "PERFORMANCE_NOT_FOUND", decodeBody(t, rec)["code"])

	rec = httptest.NewRecorder()
	c.Create(rec, jsonRequest(http.MethodPost, "/faculty/api/performance", publicationJSON, nil))
	require.Equal(t, http.StatusConflict, rec.Code)
	require.Equal(t, "PERFORMANCE_DUPLICATE", decodeBody(t, rec)["code"])
}

func TestPerformanceAPIController_CreateValidates(t *testing.T) {
	env := newTestEnv(t, defaultImportOptions())
	c := performanceController(env)

	rec := httptest.NewRecorder()
	c.Create(rec, jsonRequest(http.MethodPost, "/faculty/api/performance", "{", nil))
	require.Equal(t, http.StatusBadRequest, rec.Code)

	rec = httptest.NewRecorder()
	c.Create(rec, jsonRequest(http.MethodPost, "/faculty/api/performance",
		`{"year":2024,"quarter":9,"indicator":"Publikasi","status":"done"}`, nil))
	require.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	fields := decodeBody(t, rec)["errors"].(map[string]any)
	require.Contains(t, fields, "quarter")
	require.Contains(t, fields, "category")
	require.Contains(t, fields, "status")
	require.Zero(t, env.perf.Len())
}

func TestPerformanceAPIController_UpdateAndDelete(t *testing.T) {
	env := newTestEnv(t, defaultImportOptions())
	c := performanceController(env)

	rec := httptest.NewRecorder()
	c.Create(rec, jsonRequest(http.MethodPost, "/faculty/api/performance", publicationJSON, nil))
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = httptest.NewRecorder()
	c.Update(rec, jsonRequest(http.MethodPut, "/faculty/api/performance/1",
		`{"year":2024,"quarter":2,"category":"Penelitian","indicator":"Publikasi Internasional",`+
			`"target_value":"50","achieved_value":"55.5","status":"achieved"}`,
		map[string]string{"id": "1"}))
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	data := decodeBody(t, rec)["data"].(map[string]any)
	require.Equal(t, "achieved", data["status"])
	require.Equal(t, "111", data["progress"])
	require.Nil(t, data["unit"])

	rec = httptest.NewRecorder()
	c.Delete(rec, jsonRequest(http.MethodDelete, "/faculty/api/performance/1", "", map[string]string{"id": "1"}))
	require.Equal(t, http.StatusOK, rec.Code)
	require.Zero(t, env.perf.Len())

	rec = httptest.NewRecorder()
	c.Delete(rec, jsonRequest(http.MethodDelete, "/faculty/api/performance/x", "", map[string]string{"id": "x"}))
	require.Equal(t, http.StatusBadRequest, rec.Code)
	require.Equal(t, "PERFORMANCE_INVALID_ID", decodeBody(t, rec)["code"])

	all := env.events.All()
	require.Len(t, all, 3)
	require.IsType(t, performance.CreatedEvent{}, all[0])
	require.IsType(t, performance.UpdatedEvent{}, all[1])
	require.IsType(t, performance.DeletedEvent{}, all[2])
}

func TestPerformanceAPIController_ListAndStats(t *testing.T) {
	env := newTestEnv(t, defaultImportOptions())
	c := performanceController(env)

	rec := httptest.NewRecorder()
	c.Create(rec, jsonRequest(http.MethodPost, "/faculty/api/performance", publicationJSON, nil))
	require.Equal(t, http.StatusCreated, rec.Code)
	rec = httptest.NewRecorder()
	c.Create(rec, jsonRequest(http.MethodPost, "/faculty/api/performance",
		`{"year":2023,"quarter":4,"category":"Pendidikan","indicator":"Jumlah Lulusan Tepat Waktu"}`, nil))
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	rec = httptest.NewRecorder()
	c.List(rec, jsonRequest(http.MethodGet, "/faculty/api/performance?year=2024&status=on_track&limit=500", "", nil))
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	out := decodeBody(t, rec)
	require.Len(t, out["data"], 1)
	meta := out["meta"].(map[string]any)
	require.EqualValues(t, 1, meta["total"])
	require.EqualValues(t, 100, meta["limit"])

	rec = httptest.NewRecorder()
	c.List(rec, jsonRequest(http.MethodGet, "/faculty/api/performance?q=lulusan", "", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	require.Len(t, decodeBody(t, rec)["data"], 1)

	for _, target := range []string{
		"/faculty/api/performance?status=done",
		"/faculty/api/performance?quarter=5",
		"/faculty/api/performance?year=abc",
	} {
		rec = httptest.NewRecorder()
		c.List(rec, jsonRequest(http.MethodGet, target, "", nil))
		require.Equal(t, http.StatusBadRequest, rec.Code, target)
	}

	router := mux.NewRouter()
	c.Register(router)
	rec = serve(router, jsonRequest(http.MethodGet, "/faculty/api/performance:stats?year=2024", "", nil))
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	data := decodeBody(t, rec)["data"].(map[string]any)
	require.EqualValues(t, 1, data["total"])
	require.EqualValues(t, 1, data["on_track"])
}
