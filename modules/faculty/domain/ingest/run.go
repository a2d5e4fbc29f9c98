package ingest

import (
	"context"

	"github.com/go-faster/errors"

	"github.com/fkunand/faculty-admin/pkg/spreadsheet"
)

type Outcome uint8

const (
	OutcomeInserted Outcome = iota + 1
	OutcomeUpdated
)

// Sink persists one record and reports whether it was inserted or updated.
type Sink[T any] interface {
	Reconcile(ctx context.Context, rec T) (Outcome, error)
}

type SinkFunc[T any] func(ctx context.Context, rec T) (Outcome, error)

func (f SinkFunc[T]) Reconcile(ctx context.Context, rec T) (Outcome, error) {
	return f(ctx, rec)
}

// Run locates the header, resolves columns and reconciles every data row in
// file order. Row failures are collected; only a missing header or a
// cancelled context abort the run.
func Run[T any](ctx context.Context, grid spreadsheet.Grid, profile Profile[T], sink Sink[T]) (*Result, error) {
	header, err := LocateHeader(grid, profile.Window, profile.Table, profile.Header)
	if err != nil {
		return nil, err
	}
	cols := ResolveColumns(grid[header].Texts(), profile.Table)
	label := profile.Label
	if label == nil {
		label = func(T) string { return "" }
	}

	res := &Result{HeaderRow: header + 1, Columns: cols.Fields()}
	for i := header + 1; i < len(grid); i++ {
		if err := ctx.Err(); err != nil {
			return nil, errors.Wrap(err, "import cancelled")
		}
		line := i + 1
		rec, err := profile.Normalize(grid[i], cols)
		if errors.Is(err, ErrSkipRow) {
			continue
		}
		if err != nil {
			res.fail(RowError{Row: line, Name: label(rec), Err: err})
			continue
		}

		outcome, err := sink.Reconcile(ctx, rec)
		if err != nil {
			res.fail(RowError{Row: line, Name: label(rec), Err: err})
			continue
		}
		switch outcome {
		case OutcomeInserted:
			res.Inserted++
		case OutcomeUpdated:
			res.Updated++
		default:
			res.fail(RowError{Row: line, Name: label(rec), Err: ErrNotStored})
		}
	}
	return res, nil
}
