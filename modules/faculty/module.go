package faculty

import (
	"embed"

	"github.com/go-faster/errors"

	"github.com/fkunand/faculty-admin/modules/faculty/domain/ingest"
	"github.com/fkunand/faculty-admin/modules/faculty/infrastructure/persistence"
	"github.com/fkunand/faculty-admin/modules/faculty/presentation/controllers"
	"github.com/fkunand/faculty-admin/modules/faculty/services"
	"github.com/fkunand/faculty-admin/pkg/application"
	"github.com/fkunand/faculty-admin/pkg/configuration"
)

//go:embed infrastructure/persistence/schema/*.sql
var migrationFiles embed.FS

type ModuleOptions struct {
	Import      configuration.ImportOptions
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
	table, err := ingest.LoadAliasTable(m.options.Import.AliasesPath)
	if err != nil {
		return errors.Wrap(err, "load column aliases")
	}

	app.Migrations().RegisterSchema(&migrationFiles)

	repo := persistence.NewMemberRepository()
	perfRepo := persistence.NewPerformanceRepository()
	app.RegisterServices(
		services.NewMemberService(repo, app.EventPublisher()),
		services.NewPerformanceService(perfRepo, app.EventPublisher()),
		services.NewImportService(repo, perfRepo, app.EventPublisher(), table, m.options.Import),
		services.NewTemplateService(),
	)

	app.RegisterControllers(
		controllers.NewImportController(app),
		controllers.NewTemplateController(app),
		controllers.NewMemberAPIController(app, m.options.PageSize, m.options.MaxPageSize),
		controllers.NewPerformanceAPIController(app, m.options.PageSize, m.options.MaxPageSize),
	)
	return nil
}

func (m *Module) Name() string {
	return "faculty"
}
