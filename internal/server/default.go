package server

import (
	"net/http"

	"github.com/gorilla/mux"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/sirupsen/logrus"
	"github.com/ulule/limiter/v3"

	"github.com/fkunand/faculty-admin/pkg/application"
	"github.com/fkunand/faculty-admin/pkg/configuration"
	"github.com/fkunand/faculty-admin/pkg/constants"
	"github.com/fkunand/faculty-admin/pkg/httpapi"
	"github.com/fkunand/faculty-admin/pkg/middleware"
	"github.com/fkunand/faculty-admin/pkg/server"
)

type DefaultOptions struct {
	Logger        *logrus.Logger
	Configuration *configuration.Configuration
	Application   application.Application
	Pool          *pgxpool.Pool
}

func Default(options *DefaultOptions) (*server.HTTPServer, error) {
	app := options.Application
	conf := options.Configuration
	loggerOpts := middleware.DefaultLoggerOptions()

	// Core middleware stack with tracing capabilities
	middlewares := []mux.MiddlewareFunc{
		middleware.WithLogger(options.Logger, loggerOpts), // This now creates the root span for each request

		middleware.TracedMiddleware("database"),
		middleware.Provide(constants.AppKey, app),
		middleware.Provide(constants.PoolKey, options.Pool),

		middleware.TracedMiddleware("cors"),
		middleware.Cors(conf.AllowedOrigins...),
	}

	// Add rate limiting middleware if enabled
	if conf.RateLimit.Enabled {
		var store limiter.Store
		var err error

		// Choose storage backend
		switch conf.RateLimit.Storage {
		case "redis":
			store, err = middleware.NewRedisStore(conf.RateLimit.RedisURL)
			if err != nil {
				options.Logger.WithError(err).Warn("Failed to create Redis store for rate limiting, falling back to memory")
				store = middleware.NewMemoryStore()
			}
		default:
			store = middleware.NewMemoryStore()
		}

		middlewares = append(middlewares,
			middleware.TracedMiddleware("rateLimit"),
			middleware.RateLimit(middleware.RateLimitConfig{
				RequestsPerPeriod: conf.RateLimit.GlobalRPS,
				Store:             store,
			}),
		)
	}

	middlewares = append(middlewares,
		middleware.TracedMiddleware("requestParams"),
		middleware.RequestParams(),
		middleware.TracedMiddleware("localizer"),
		middleware.ProvideLocalizer(app),
		middleware.TracedMiddleware("credentials"),
		middleware.RequireCredentials(conf.Auth, conf.GoAppEnvironment, loggerOpts.APIPrefixes...),
	)

	app.RegisterMiddleware(middlewares...)

	serverInstance := server.NewHTTPServer(
		app,
		NotFound(),
		MethodNotAllowed(),
	)
	return serverInstance, nil
}

func NotFound() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = httpapi.WriteError(w, http.StatusNotFound, "NOT_FOUND", "route not found", nil)
	})
}

func MethodNotAllowed() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = httpapi.WriteError(w, http.StatusMethodNotAllowed, "METHOD_NOT_ALLOWED", "method not allowed", nil)
	})
}
