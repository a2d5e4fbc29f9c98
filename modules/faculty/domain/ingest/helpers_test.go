package ingest

import (
	"context"
	"fmt"

	"github.com/fkunand/faculty-admin/pkg/spreadsheet"
)

// row builds a grid row: strings become text, numbers numeric cells and nil
// an empty cell.
func row(values ...any) spreadsheet.Row {
	out := make(spreadsheet.Row, len(values))
	for i, v := range values {
		switch v := v.(type) {
		case nil:
			out[i] = spreadsheet.Cell{}
		case string:
			out[i] = spreadsheet.TextCell(v)
		case int:
			out[i] = spreadsheet.NumberCell(float64(v))
		case float64:
			out[i] = spreadsheet.NumberCell(v)
		default:
			panic(fmt.Sprintf("unsupported cell value %T", v))
		}
	}
	return out
}

func grid(rows ...spreadsheet.Row) spreadsheet.Grid {
	return spreadsheet.Grid(rows)
}

// memorySink reconciles lecturer records by identification number the way
// the upsert does.
type memorySink struct {
	records map[string]Record
	fail    map[string]error
	order   []string
}

func newMemorySink() *memorySink {
	return &memorySink{records: map[string]Record{}, fail: map[string]error{}}
}

func (s *memorySink) Reconcile(_ context.Context, rec Record) (Outcome, error) {
	key := rec.IdentificationNumber
	if err := s.fail[key]; err != nil {
		return 0, err
	}
	s.order = append(s.order, rec.FullName)
	_, exists := s.records[key]
	s.records[key] = rec
	if exists {
		return OutcomeUpdated, nil
	}
	return OutcomeInserted, nil
}

func strPtr(s string) *string { return &s }
