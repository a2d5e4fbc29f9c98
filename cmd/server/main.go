package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"runtime/debug"
	"syscall"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	_ "github.com/lib/pq"

	"github.com/fkunand/faculty-admin/internal/server"
	"github.com/fkunand/faculty-admin/modules"
	"github.com/fkunand/faculty-admin/pkg/application"
	"github.com/fkunand/faculty-admin/pkg/configuration"
	"github.com/fkunand/faculty-admin/pkg/eventbus"
	"github.com/fkunand/faculty-admin/pkg/logging"
	"github.com/fkunand/faculty-admin/pkg/metrics"
)

func main() {
	defer func() {
		if r := recover(); r != nil {
			configuration.Use().Unload()
			log.Println(r)
			debug.PrintStack()
			os.Exit(1)
		}
	}()

	conf := configuration.Use()
	defer conf.Unload()
	logger := conf.Logger()

	// Set up OpenTelemetry if enabled
	if conf.OpenTelemetry.Enabled {
		tracingCleanup := logging.SetupTracing(
			context.Background(),
			conf.OpenTelemetry.ServiceName,
			conf.OpenTelemetry.TempoURL,
		)
		defer tracingCleanup()
		logger.Info("OpenTelemetry tracing enabled, exporting to Tempo at " + conf.OpenTelemetry.TempoURL)
	}

	ctx, cancel := context.WithTimeout(context.Background(), time.Second*5)
	defer cancel()
	pool, err := pgxpool.New(ctx, conf.Database.Opts)
	if err != nil {
		panic(err)
	}
	defer pool.Close()

	app := application.New(&application.ApplicationOptions{
		Pool:               pool,
		EventBus:           eventbus.NewEventPublisher(logger),
		Logger:             logger,
		DSN:                conf.Database.Opts,
		SupportedLanguages: conf.SupportedLanguages,
	})
	if err := modules.Load(app, modules.BuiltInModules(conf)...); err != nil {
		log.Fatalf("failed to load modules: %v", err)
	}
	app.RegisterControllers(metrics.NewHealthController(pool))
	if conf.Prometheus.Enabled {
		app.RegisterControllers(metrics.NewPrometheusController(conf.Prometheus.Path))
	}

	serverInstance, err := server.Default(&server.DefaultOptions{
		Logger:        logger,
		Configuration: conf,
		Application:   app,
		Pool:          pool,
	})
	if err != nil {
		log.Fatalf("failed to create server: %v", err)
	}

	runCtx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	log.Printf("Listening on: %s\n", conf.Origin)
	if err := serverInstance.Start(runCtx, conf.SocketAddress, conf.ShutdownTimeout); err != nil {
		log.Fatalf("failed to start server: %v", err)
	}
}
