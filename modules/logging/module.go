package logging

import (
	"embed"

	"github.com/fkunand/faculty-admin/modules/logging/handlers"
	"github.com/fkunand/faculty-admin/modules/logging/infrastructure/persistence"
	"github.com/fkunand/faculty-admin/modules/logging/presentation/controllers"
	"github.com/fkunand/faculty-admin/modules/logging/services"
	"github.com/fkunand/faculty-admin/pkg/application"
)

//go:embed infrastructure/persistence/schema/*.sql
var migrationFiles embed.FS

type ModuleOptions struct {
	PageSize    int
	MaxPageSize int
}

func NewModule(opts *ModuleOptions) application.Module {
	return &Module{options: opts}
}

type Module struct {
	options *ModuleOptions
}

func (m *Module) Register(app application.Application) error {
	app.Migrations().RegisterSchema(&migrationFiles)
	app.RegisterServices(
		services.NewLogsService(
			persistence.NewUploadLogRepository(),
			persistence.NewActivityLogRepository(),
		),
	)
	app.RegisterControllers(
		controllers.NewLogsController(app, m.options.PageSize, m.options.MaxPageSize),
	)
	handlers.RegisterFacultyEventHandlers(app)
	return nil
}

func (m *Module) Name() string {
	return "logging"
}
