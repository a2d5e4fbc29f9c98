package middleware

import (
	"crypto/subtle"
	"net/http"
	"strings"

	"github.com/gorilla/mux"
	"golang.org/x/crypto/bcrypt"

	"github.com/fkunand/faculty-admin/pkg/composables"
	"github.com/fkunand/faculty-admin/pkg/configuration"
)

// RequireCredentials guards paths under the given prefixes with either a
// bearer token or HTTP basic auth. Without configured credentials every
// request passes outside production.
func RequireCredentials(auth configuration.AuthOptions, environment string, prefixes ...string) mux.MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.Method == http.MethodOptions || !isAPIPath(r.URL.Path, prefixes) {
				next.ServeHTTP(w, r)
				return
			}
			if !auth.Configured() {
				if environment == configuration.Production {
					writeUnauthorized(w)
					return
				}
				next.ServeHTTP(w, r)
				return
			}
			principal, ok := authenticate(auth, r)
			if !ok {
				writeUnauthorized(w)
				return
			}
			next.ServeHTTP(w, r.WithContext(composables.WithPrincipal(r.Context(), principal)))
		})
	}
}

func authenticate(auth configuration.AuthOptions, r *http.Request) (composables.Principal, bool) {
	if token := strings.TrimSpace(auth.Token); token != "" {
		if got := bearerToken(r); got != "" && subtle.ConstantTimeCompare([]byte(got), []byte(token)) == 1 {
			return composables.Principal{Username: "api-token", Method: "bearer"}, true
		}
	}
	if user := strings.TrimSpace(auth.Username); user != "" {
		u, p, ok := r.BasicAuth()
		if ok &&
			subtle.ConstantTimeCompare([]byte(u), []byte(user)) == 1 &&
			bcrypt.CompareHashAndPassword([]byte(auth.PasswordHash), []byte(p)) == nil {
			return composables.Principal{Username: user, Method: "basic"}, true
		}
	}
	return composables.Principal{}, false
}

func bearerToken(r *http.Request) string {
	h := strings.TrimSpace(r.Header.Get("Authorization"))
	if len(h) > len("bearer ") && strings.EqualFold(h[:len("bearer ")], "bearer ") {
		return strings.TrimSpace(h[len("bearer "):])
	}
	return ""
}

func writeUnauthorized(w http.ResponseWriter) {
	w.Header().Set("WWW-Authenticate", `Basic realm="faculty-admin"`)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	_, _ = w.Write([]byte(`{"success":false,"message":"unauthorized"}`))
}
