package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

func newMigrateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Apply or inspect database migrations",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "up",
		Short: "Apply all pending migrations",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			app, closeFn, err := loadApp(cmd.Context())
			if err != nil {
				return err
			}
			defer closeFn()
			return withCode(exitDB, app.Migrations().Run(cmd.Context()))
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "down",
		Short: "Roll back the most recent migration",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			app, closeFn, err := loadApp(cmd.Context())
			if err != nil {
				return err
			}
			defer closeFn()
			return withCode(exitDB, app.Migrations().Rollback(cmd.Context()))
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "status",
		Short: "List migrations and whether they are applied",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			app, closeFn, err := loadApp(cmd.Context())
			if err != nil {
				return err
			}
			defer closeFn()
			statuses, err := app.Migrations().Status(cmd.Context())
			if err != nil {
				return withCode(exitDB, err)
			}

			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "VERSION\tSTATE\tFILE")
			for _, s := range statuses {
				fmt.Fprintf(tw, "%d\t%s\t%s\n", s.Source.Version, s.State, s.Source.Path)
			}
			return tw.Flush()
		},
	})
	return cmd
}
