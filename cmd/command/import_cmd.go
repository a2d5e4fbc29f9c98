package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/iota-uz/go-i18n/v2/i18n"
	"github.com/spf13/cobra"

	"github.com/fkunand/faculty-admin/modules/faculty/domain/ingest"
	"github.com/fkunand/faculty-admin/modules/faculty/services"
	"github.com/fkunand/faculty-admin/pkg/composables"
	"github.com/fkunand/faculty-admin/pkg/intl"
)

type importOptions struct {
	actor  string
	errors int
	lang   string
}

type importReport struct {
	File            string         `json:"file"`
	Kind            string         `json:"kind"`
	HeaderRow       int            `json:"header_row"`
	Columns         []ingest.Field `json:"columns"`
	Inserted        int            `json:"inserted"`
	Updated         int            `json:"updated"`
	Failed          int            `json:"failed"`
	Errors          []string       `json:"errors"`
	ErrorsTruncated bool           `json:"errors_truncated"`
}

func newImportCmd() *cobra.Command {
	var opts importOptions

	cmd := &cobra.Command{
		Use:   "import <lecturers|staff|performance> <file>",
		Short: "Import a spreadsheet of lecturers, staff or performance indicators into the database",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			target, err := services.ParseImportTarget(args[0])
			if err != nil {
				return withCode(exitUsage, err)
			}
			data, err := os.ReadFile(args[1])
			if err != nil {
				return withCode(exitUsage, err)
			}

			app, closeFn, err := loadApp(cmd.Context())
			if err != nil {
				return err
			}
			defer closeFn()

			ctx := composables.WithPool(cmd.Context(), app.DB())
			ctx = composables.WithPrincipal(ctx, composables.Principal{Username: opts.actor, Method: "cli"})

			imports := app.Service(services.ImportService{}).(*services.ImportService)
			res, err := imports.Import(ctx, services.ImportRequest{
				Target:   target,
				FileName: filepath.Base(args[1]),
				Data:     data,
			})
			if err != nil {
				return withCode(exitRejected, err)
			}

			l := i18n.NewLocalizer(app.Bundle(), opts.lang, intl.DefaultLanguage)
			messages, truncated := res.Messages(l, opts.errors)
			if err := writeJSON(cmd.OutOrStdout(), importReport{
				File:            args[1],
				Kind:            string(target),
				HeaderRow:       res.HeaderRow,
				Columns:         res.Columns,
				Inserted:        res.Inserted,
				Updated:         res.Updated,
				Failed:          res.Failed,
				Errors:          messages,
				ErrorsTruncated: truncated,
			}); err != nil {
				return err
			}
			if res.Succeeded() == 0 && res.Failed > 0 {
				return withCode(exitRejected, fmt.Errorf("no rows imported from %s", args[1]))
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&opts.actor, "actor", "cli", "Name recorded as the uploader in the upload log")
	cmd.Flags().IntVar(&opts.errors, "errors", -1, "Maximum number of row errors to print (-1 prints all)")
	cmd.Flags().StringVar(&opts.lang, "lang", intl.DefaultLanguage, "Language of the printed row errors (id or en)")
	return cmd
}
