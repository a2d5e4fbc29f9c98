package ingest

import (
	"math"
	"strconv"
	"strings"

	"github.com/fkunand/faculty-admin/pkg/spreadsheet"
)

const strayQuotes = "\"'`“”‘’"

// cleanText returns the trimmed cell text without stray quotes. The tokens
// "-", "" and "null" in any case count as absent.
func cleanText(c spreadsheet.Cell) (string, bool) {
	if c.IsEmpty() {
		return "", false
	}
	s := strings.TrimSpace(c.String())
	s = strings.TrimSpace(strings.Trim(s, strayQuotes))
	s = strings.ReplaceAll(s, `""`, `"`)
	if s == "" || s == "-" || strings.EqualFold(s, "null") {
		return "", false
	}
	return s, true
}

func optionalText(c spreadsheet.Cell) *string {
	s, ok := cleanText(c)
	if !ok {
		return nil
	}
	return &s
}

// normalizeGender maps "L..." to "L" and "P..." to "P".
func normalizeGender(c spreadsheet.Cell) *string {
	s, ok := cleanText(c)
	if !ok {
		return nil
	}
	var code string
	switch strings.ToLower(s)[0] {
	case 'l':
		code = "L"
	case 'p':
		code = "P"
	default:
		return nil
	}
	return &code
}

// parseInt accepts integral number cells and integer text.
func parseInt(c spreadsheet.Cell) *int {
	if c.Kind == spreadsheet.CellNumber {
		if c.Number != math.Trunc(c.Number) || math.Abs(c.Number) > math.MaxInt32 {
			return nil
		}
		n := int(c.Number)
		return &n
	}
	s, ok := cleanText(c)
	if !ok {
		return nil
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return nil
	}
	return &n
}
