package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/spf13/cobra"

	"github.com/fkunand/faculty-admin/modules"
	"github.com/fkunand/faculty-admin/pkg/application"
	"github.com/fkunand/faculty-admin/pkg/configuration"
	"github.com/fkunand/faculty-admin/pkg/eventbus"
)

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:           "command",
		Short:         "Faculty admin maintenance commands",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.AddCommand(newMigrateCmd())
	cmd.AddCommand(newImportCmd())
	return cmd
}

func Execute() {
	err := newRootCmd().Execute()
	configuration.Use().Unload()
	if err != nil {
		code := exitCode(err)
		fmt.Fprintln(os.Stderr, err.Error())
		os.Exit(code)
	}
}

// loadApp connects to the database and registers every built-in module.
func loadApp(ctx context.Context) (application.Application, func(), error) {
	conf := configuration.Use()

	connectCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	pool, err := pgxpool.New(connectCtx, conf.Database.Opts)
	if err != nil {
		return nil, nil, withCode(exitDB, err)
	}

	app := application.New(&application.ApplicationOptions{
		Pool:               pool,
		EventBus:           eventbus.NewEventPublisher(conf.Logger()),
		Logger:             conf.Logger(),
		DSN:                conf.Database.Opts,
		SupportedLanguages: conf.SupportedLanguages,
	})
	if err := modules.Load(app, modules.BuiltInModules(conf)...); err != nil {
		pool.Close()
		return nil, nil, withCode(exitUsage, err)
	}
	return app, pool.Close, nil
}
