package application

import (
	"context"
	"embed"
	"reflect"

	"github.com/gorilla/mux"
	"github.com/iota-uz/go-i18n/v2/i18n"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/pressly/goose/v3"
	"github.com/sirupsen/logrus"

	"github.com/fkunand/faculty-admin/pkg/eventbus"
)

// Application with a dynamically extendable service registry.
type Application interface {
	DB() *pgxpool.Pool
	EventPublisher() eventbus.EventBus
	Logger() *logrus.Logger
	Bundle() *i18n.Bundle
	GetSupportedLanguages() []string
	Controllers() []Controller
	Middleware() []mux.MiddlewareFunc
	Migrations() MigrationManager
	RegisterControllers(controllers ...Controller)
	RegisterMiddleware(middleware ...mux.MiddlewareFunc)
	RegisterServices(services ...interface{})
	Service(service interface{}) interface{}
	Services() map[reflect.Type]interface{}
}

type Controller interface {
	Register(r *mux.Router)
	Key() string
}

type Module interface {
	Name() string
	Register(app Application) error
}

// MigrationManager collects module schemas and applies them with goose.
type MigrationManager interface {
	RegisterSchema(fs ...*embed.FS)
	Run(ctx context.Context) error
	Rollback(ctx context.Context) error
	Status(ctx context.Context) ([]*goose.MigrationStatus, error)
}
