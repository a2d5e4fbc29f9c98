package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/fkunand/faculty-admin/pkg/composables"
	"github.com/fkunand/faculty-admin/pkg/configuration"
)

func principalEcho() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		p, err := composables.UsePrincipal(r.Context())
		if err != nil {
			_, _ = w.Write([]byte("anonymous"))
			return
		}
		_, _ = w.Write([]byte(p.Username + "/" + p.Method))
	})
}

func serve(t *testing.T, mw func(http.Handler) http.Handler, req *http.Request) *httptest.ResponseRecorder {
	t.Helper()
	rec := httptest.NewRecorder()
	mw(principalEcho()).ServeHTTP(rec, req)
	return rec
}

func TestRequireCredentials(t *testing.T) {
	t.Parallel()

	hash, err := bcrypt.GenerateFromPassword([]byte("s3cret"), bcrypt.MinCost)
	require.NoError(t, err)
	auth := configuration.AuthOptions{Token: "tok", Username: "admin", PasswordHash: string(hash)}
	mw := RequireCredentials(auth, "development", "/faculty/api")

	t.Run("bearer token", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/faculty/api/members", nil)
		req.Header.Set("Authorization", "Bearer tok")
		rec := serve(t, mw, req)
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "api-token/bearer", rec.Body.String())
	})

	t.Run("basic auth", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/faculty/api/members", nil)
		req.SetBasicAuth("admin", "s3cret")
		rec := serve(t, mw, req)
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "admin/basic", rec.Body.String())
	})

	t.Run("wrong password", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/faculty/api/members", nil)
		req.SetBasicAuth("admin", "nope")
		rec := serve(t, mw, req)
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("missing credentials", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/faculty/api/imports/lecturers", nil)
		rec := serve(t, mw, req)
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
		assert.Contains(t, rec.Body.String(), `"success":false`)
	})

	t.Run("unguarded path", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/health", nil)
		rec := serve(t, mw, req)
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "anonymous", rec.Body.String())
	})
}

func TestRequireCredentials_Unconfigured(t *testing.T) {
	t.Parallel()

	req := httptest.NewRequest(http.MethodGet, "/faculty/api/members", nil)
	rec := serve(t, RequireCredentials(configuration.AuthOptions{}, "development", "/faculty/api"), req)
	assert.Equal(t, http.StatusOK, rec.Code)

	req = httptest.NewRequest(http.MethodGet, "/faculty/api/members", nil)
	rec = serve(t, RequireCredentials(configuration.AuthOptions{}, configuration.Production, "/faculty/api"), req)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestBearerToken(t *testing.T) {
	t.Parallel()

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "bearer  abc ")
	assert.Equal(t, "abc", bearerToken(req))

	req.Header.Set("Authorization", "Basic abc")
	assert.Empty(t, bearerToken(req))
}
