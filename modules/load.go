package modules

import (
	"github.com/fkunand/faculty-admin/modules/faculty"
	"github.com/fkunand/faculty-admin/modules/logging"
	"github.com/fkunand/faculty-admin/pkg/application"
	"github.com/fkunand/faculty-admin/pkg/configuration"
)

// BuiltInModules lists the modules served by the API, in registration order.
func BuiltInModules(conf *configuration.Configuration) []application.Module {
	return []application.Module{
		faculty.NewModule(&faculty.ModuleOptions{
			Import:      conf.Import,
			PageSize:    conf.PageSize,
			MaxPageSize: conf.MaxPageSize,
		}),
		logging.NewModule(&logging.ModuleOptions{
			PageSize:    conf.PageSize,
			MaxPageSize: conf.MaxPageSize,
		}),
	}
}

func Load(app application.Application, externalModules ...application.Module) error {
	for _, module := range externalModules {
		if err := module.Register(app); err != nil {
			return err
		}
	}
	return nil
}
