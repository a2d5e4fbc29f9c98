package ingest

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/go-faster/errors"
	"github.com/iota-uz/go-i18n/v2/i18n"

	"github.com/fkunand/faculty-admin/pkg/intl"
	"github.com/fkunand/faculty-admin/pkg/serrors"
)

var (
	// ErrSkipRow marks rows that are not data, such as blank rows and rows
	// without a name.
	ErrSkipRow = errors.New("skip row")

	ErrMissingIdentification = serrors.NewError(
		"INGEST_MISSING_IDENTIFICATION",
		"identification number (NIP/NIDN/NIDK/NUPTK) missing",
		"Ingest.Errors.MissingIdentification",
	)

	ErrNotStored = serrors.NewError("INGEST_NOT_STORED", "record was not stored", "Ingest.Errors.NotStored")

	// ErrIncomplete is reported for performance rows that name only one of
	// category and indicator.
	ErrIncomplete = serrors.NewError(
		"INGEST_INCOMPLETE",
		"required data incomplete (category and indicator)",
		"Ingest.Errors.PerformanceIncomplete",
	)
)

func invalidYear(v string) error {
	return &serrors.BaseError{
		Code:         "INGEST_INVALID_YEAR",
		Message:      fmt.Sprintf("invalid year %q", v),
		LocaleKey:    "Ingest.Errors.InvalidYear",
		TemplateData: map[string]string{"Value": v},
	}
}

func invalidQuarter(v string) error {
	return &serrors.BaseError{
		Code:         "INGEST_INVALID_QUARTER",
		Message:      fmt.Sprintf("invalid quarter %q, expected 1 to 4", v),
		LocaleKey:    "Ingest.Errors.InvalidQuarter",
		TemplateData: map[string]string{"Value": v},
	}
}

func invalidNumber(field, v string) error {
	return &serrors.BaseError{
		Code:         "INGEST_INVALID_NUMBER",
		Message:      fmt.Sprintf("%s value %q is not a number", field, v),
		LocaleKey:    "Ingest.Errors.InvalidNumber",
		TemplateData: map[string]string{"Field": field, "Value": v},
	}
}

// HeaderNotFoundError aborts a run when no header row qualifies.
type HeaderNotFoundError struct {
	Window      int
	Rule        HeaderRule
	Suggestions []string
}

func (e *HeaderNotFoundError) Localize(l *i18n.Localizer) string {
	keys := make([]string, len(e.Rule.KeyLabels))
	for i, k := range e.Rule.KeyLabels {
		keys[i] = strconv.Quote(k)
	}
	msg := intl.T(l, "Ingest.Errors.HeaderNotFound", map[string]any{
		"Window": e.Window,
		"Anchor": e.Rule.AnchorLabel,
		"Keys":   strings.Join(keys, ", "),
	})
	if len(e.Suggestions) > 0 {
		msg += " " + intl.T(l, "Ingest.Errors.HeaderSuggestions", map[string]any{
			"Suggestions": strings.Join(e.Suggestions, ", "),
		})
	}
	return msg
}

func (e *HeaderNotFoundError) Error() string {
	return e.Localize(nil)
}
