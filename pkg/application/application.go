package application

import (
	"fmt"
	"reflect"

	"github.com/gorilla/mux"
	"github.com/iota-uz/go-i18n/v2/i18n"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/sirupsen/logrus"

	"github.com/fkunand/faculty-admin/pkg/eventbus"
	"github.com/fkunand/faculty-admin/pkg/intl"
)

type ApplicationOptions struct {
	Pool     *pgxpool.Pool
	EventBus eventbus.EventBus
	Logger   *logrus.Logger
	// DSN opens the database/sql handle used by migrations.
	DSN string
	// Bundle defaults to the embedded catalogs.
	Bundle             *i18n.Bundle
	SupportedLanguages []string
}

func New(opts *ApplicationOptions) Application {
	logger := opts.Logger
	if logger == nil {
		logger = logrus.StandardLogger()
	}
	bundle := opts.Bundle
	if bundle == nil {
		bundle = intl.NewBundle()
	}
	return &application{
		pool:               opts.Pool,
		eventPublisher:     opts.EventBus,
		logger:             logger,
		bundle:             bundle,
		supportedLanguages: opts.SupportedLanguages,
		controllers:        make(map[string]Controller),
		services:           make(map[reflect.Type]interface{}),
		migrations:         NewMigrationManager(opts.DSN, logger),
	}
}

type application struct {
	pool               *pgxpool.Pool
	eventPublisher     eventbus.EventBus
	logger             *logrus.Logger
	bundle             *i18n.Bundle
	supportedLanguages []string
	services           map[reflect.Type]interface{}
	controllers        map[string]Controller
	controllerKeys     []string
	middleware         []mux.MiddlewareFunc
	migrations         MigrationManager
}

func (app *application) Bundle() *i18n.Bundle {
	return app.bundle
}

// GetSupportedLanguages lists the language codes offered to clients. An
// empty list offers every catalog.
func (app *application) GetSupportedLanguages() []string {
	return app.supportedLanguages
}

func (app *application) Middleware() []mux.MiddlewareFunc {
	return app.middleware
}

func (app *application) DB() *pgxpool.Pool {
	return app.pool
}

func (app *application) EventPublisher() eventbus.EventBus {
	return app.eventPublisher
}

func (app *application) Logger() *logrus.Logger {
	return app.logger
}

// Controllers returns controllers in registration order.
func (app *application) Controllers() []Controller {
	controllers := make([]Controller, 0, len(app.controllerKeys))
	for _, key := range app.controllerKeys {
		controllers = append(controllers, app.controllers[key])
	}
	return controllers
}

func (app *application) Migrations() MigrationManager {
	return app.migrations
}

func (app *application) RegisterControllers(controllers ...Controller) {
	for _, c := range controllers {
		if _, exists := app.controllers[c.Key()]; !exists {
			app.controllerKeys = append(app.controllerKeys, c.Key())
		}
		app.controllers[c.Key()] = c
	}
}

func (app *application) RegisterMiddleware(middleware ...mux.MiddlewareFunc) {
	app.middleware = append(app.middleware, middleware...)
}

// RegisterServices registers a new service in the application by its type
func (app *application) RegisterServices(services ...interface{}) {
	for _, service := range services {
		serviceType := reflect.TypeOf(service).Elem()
		app.services[serviceType] = service
	}
}

// Service retrieves a service by its type
func (app *application) Service(service interface{}) interface{} {
	serviceType := reflect.TypeOf(service)
	svc, exists := app.services[serviceType]
	if !exists {
		panic(fmt.Sprintf("service %s not found", serviceType.Name()))
	}
	return svc
}

func (app *application) Services() map[reflect.Type]interface{} {
	return app.services
}
