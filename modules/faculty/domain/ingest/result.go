package ingest

import (
	"github.com/iota-uz/go-i18n/v2/i18n"

	"github.com/fkunand/faculty-admin/pkg/intl"
)

// RowError is a per-row failure; Row is the 1-based line in the file.
type RowError struct {
	Row  int
	Name string
	Err  error
}

// Localize renders the row error through l, or in the default language
// when l is nil.
func (e RowError) Localize(l *i18n.Localizer) string {
	return intl.T(l, "Ingest.RowError", map[string]any{
		"Row":    e.Row,
		"Name":   e.Name,
		"Reason": intl.LocalizeError(l, e.Err),
	})
}

func (e RowError) Error() string {
	return e.Localize(nil)
}

func (e RowError) Unwrap() error {
	return e.Err
}

type Result struct {
	// HeaderRow is the 1-based line of the detected header.
	HeaderRow int
	// Columns lists the recognised fields in column order.
	Columns  []Field
	Inserted int
	Updated  int
	Failed   int
	Errors   []RowError
}

func (r *Result) Succeeded() int {
	return r.Inserted + r.Updated
}

func (r *Result) fail(e RowError) {
	r.Failed++
	r.Errors = append(r.Errors, e)
}

// Messages renders at most limit errors in file order through l and reports
// whether any were left out. A negative limit renders all of them.
func (r *Result) Messages(l *i18n.Localizer, limit int) ([]string, bool) {
	n := len(r.Errors)
	if limit >= 0 && n > limit {
		n = limit
	}
	out := make([]string, n)
	for i := 0; i < n; i++ {
		out[i] = r.Errors[i].Localize(l)
	}
	return out, n < len(r.Errors)
}
