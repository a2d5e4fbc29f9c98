package middleware

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/jackc/pgx/v5"

	"github.com/fkunand/faculty-admin/pkg/composables"
)

// WithTransaction runs the request inside one pgx transaction that commits
// unless the handler responds with a 4xx or 5xx status.
func WithTransaction() mux.MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			pool, err := composables.UsePool(r.Context())
			if err != nil {
				http.Error(w, err.Error(), http.StatusInternalServerError)
				return
			}
			tx, err := pool.Begin(r.Context())
			if err != nil {
				http.Error(w, err.Error(), http.StatusInternalServerError)
				return
			}
			defer func() {
				if err := tx.Rollback(r.Context()); err != nil && !errors.Is(err, pgx.ErrTxClosed) {
					composables.UseLogger(r.Context()).WithError(err).Error("failed to rollback transaction")
				}
			}()
			sw := &statusWriter{ResponseWriter: w}
			next.ServeHTTP(sw, r.WithContext(composables.WithTx(r.Context(), tx)))
			if sw.Status() >= http.StatusBadRequest {
				return
			}
			if err := tx.Commit(r.Context()); err != nil {
				composables.UseLogger(r.Context()).WithError(err).Error("failed to commit transaction")
			}
		})
	}
}
