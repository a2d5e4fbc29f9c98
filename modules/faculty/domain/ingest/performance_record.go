package ingest

import (
	"math"
	"regexp"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/fkunand/faculty-admin/pkg/spreadsheet"
)

const defaultQuarter = 1

var quarterPrefix = regexp.MustCompile(`(?i)^(q|tw|kuartal|triwulan|quarter)\s*`)

// PerformanceRecord is one cleaned "Capaian Kinerja" row. Status is passed
// through as written; the aggregate folds unknown values to pending.
type PerformanceRecord struct {
	Year      int
	Quarter   int
	Category  string
	Indicator string
	Target    decimal.NullDecimal
	Achieved  decimal.NullDecimal
	Unit      *string
	Status    *string
	Notes     *string
}

func (r PerformanceRecord) label() string {
	if r.Indicator != "" {
		return r.Indicator
	}
	return r.Category
}

// NormalizePerformance cleans one indicator row. Rows naming neither a
// category nor an indicator are skipped; rows naming only one of them fail
// with ErrIncomplete.
func NormalizePerformance(row spreadsheet.Row, cols ColumnMap, defaultYear int) (PerformanceRecord, error) {
	if row.Blank() {
		return PerformanceRecord{}, ErrSkipRow
	}
	category, hasCategory := cleanText(cellOf(row, cols, FieldCategory))
	indicator, hasIndicator := cleanText(cellOf(row, cols, FieldIndicator))
	rec := PerformanceRecord{Category: category, Indicator: indicator}
	switch {
	case !hasCategory && !hasIndicator:
		return rec, ErrSkipRow
	case !hasCategory || !hasIndicator:
		return rec, ErrIncomplete
	}

	var err error
	if rec.Year, err = parseYear(cellOf(row, cols, FieldYear), defaultYear); err != nil {
		return rec, err
	}
	if rec.Quarter, err = parseQuarter(cellOf(row, cols, FieldQuarter)); err != nil {
		return rec, err
	}
	if rec.Target, err = parseDecimal(cellOf(row, cols, FieldTarget), "target"); err != nil {
		return rec, err
	}
	if rec.Achieved, err = parseDecimal(cellOf(row, cols, FieldAchieved), "capaian"); err != nil {
		return rec, err
	}
	rec.Unit = optionalText(cellOf(row, cols, FieldUnit))
	rec.Status = optionalText(cellOf(row, cols, FieldStatus))
	rec.Notes = optionalText(cellOf(row, cols, FieldNotes))
	return rec, nil
}

func parseYear(c spreadsheet.Cell, fallback int) (int, error) {
	s, ok := cleanText(c)
	if !ok {
		return fallback, nil
	}
	n, err := strconv.Atoi(s)
	if err != nil || n < 1900 || n > 9999 {
		return 0, invalidYear(s)
	}
	return n, nil
}

// parseQuarter accepts 1 to 4, optionally written as "Q2", "TW 3" or
// "Kuartal 4".
func parseQuarter(c spreadsheet.Cell) (int, error) {
	s, ok := cleanText(c)
	if !ok {
		return defaultQuarter, nil
	}
	n, err := strconv.Atoi(quarterPrefix.ReplaceAllString(s, ""))
	if err != nil || n < 1 || n > 4 {
		return 0, invalidQuarter(s)
	}
	return n, nil
}

// parseDecimal reads numeric cells as they are and text with either a dot
// or a decimal comma. A trailing percent sign is dropped.
func parseDecimal(c spreadsheet.Cell, field string) (decimal.NullDecimal, error) {
	if c.Kind == spreadsheet.CellNumber {
		if math.IsNaN(c.Number) || math.IsInf(c.Number, 0) {
			return decimal.NullDecimal{}, invalidNumber(field, c.String())
		}
		return decimal.NewNullDecimal(decimal.NewFromFloat(c.Number)), nil
	}
	s, ok := cleanText(c)
	if !ok {
		return decimal.NullDecimal{}, nil
	}
	v := strings.TrimSpace(strings.TrimSuffix(s, "%"))
	v = strings.ReplaceAll(v, " ", "")
	if strings.Contains(v, ",") && !strings.Contains(v, ".") {
		v = strings.Replace(v, ",", ".", 1)
	}
	d, err := decimal.NewFromString(v)
	if err != nil {
		return decimal.NullDecimal{}, invalidNumber(field, s)
	}
	return decimal.NewNullDecimal(d), nil
}
