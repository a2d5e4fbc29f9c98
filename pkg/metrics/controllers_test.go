package metrics

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
)

type pingerFunc func(ctx context.Context) error

func (f pingerFunc) Ping(ctx context.Context) error { return f(ctx) }

func TestHealthController(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name   string
		ping   error
		status int
		body   string
	}{
		{name: "healthy", status: http.StatusOK, body: `"status":"ok"`},
		{name: "database down", ping: errors.New("connection refused"), status: http.StatusServiceUnavailable, body: "connection refused"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			r := mux.NewRouter()
			NewHealthController(pingerFunc(func(context.Context) error { return tc.ping })).Register(r)

			rec := httptest.NewRecorder()
			r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))

			assert.Equal(t, tc.status, rec.Code)
			assert.Contains(t, rec.Body.String(), tc.body)
		})
	}
}

func TestPrometheusController_DefaultPath(t *testing.T) {
	t.Parallel()

	c := NewPrometheusController("")
	assert.Equal(t, "/debug/prometheus", c.Key())

	r := mux.NewRouter()
	c.Register(r)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/debug/prometheus", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
}
