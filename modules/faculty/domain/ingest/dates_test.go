package ingest

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/fkunand/faculty-admin/pkg/spreadsheet"
)

func TestParseDate_Encodings(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name string
		cell spreadsheet.Cell
		want *string
	}{
		{"serial", spreadsheet.NumberCell(45306), strPtr("2024-01-15")},
		{"serial with time of day", spreadsheet.NumberCell(45306.75), strPtr("2024-01-15")},
		{"serial 45000", spreadsheet.NumberCell(45000), strPtr("2023-03-15")},
		{"iso", spreadsheet.TextCell("2024-01-15"), strPtr("2024-01-15")},
		{"dash day first", spreadsheet.TextCell("15-01-2024"), strPtr("2024-01-15")},
		{"slash day first", spreadsheet.TextCell("3/4/1975"), strPtr("1975-04-03")},
		{"impossible iso", spreadsheet.TextCell("2024-02-30"), nil},
		{"impossible day", spreadsheet.TextCell("31/04/2024"), nil},
		{"month out of range", spreadsheet.TextCell("01/13/2024"), nil},
		{"free text", spreadsheet.TextCell("Januari 1975"), nil},
		{"all-digit text is a serial", spreadsheet.TextCell("45306"), strPtr("2024-01-15")},
		{"all-digit text below range", spreadsheet.TextCell("0"), nil},
		{"compact yyyymmdd is out of serial range", spreadsheet.TextCell("19750403"), nil},
		{"serial below range", spreadsheet.NumberCell(0), nil},
		{"absent", spreadsheet.TextCell("-"), nil},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, parseDate(tc.cell, DateOrderDMY))
		})
	}
}

func TestParseDate_RoundTrip(t *testing.T) {
	t.Parallel()

	fromSerial := parseDate(spreadsheet.NumberCell(45306), DateOrderDMY)
	fromText := parseDate(spreadsheet.TextCell("15-01-2024"), DateOrderDMY)
	assert.Equal(t, fromSerial, fromText)

	fromCSV := parseDate(spreadsheet.TextCell(" 45306 "), DateOrderDMY)
	assert.Equal(t, fromSerial, fromCSV)
}

func TestParseDate_Order(t *testing.T) {
	t.Parallel()

	ambiguous := spreadsheet.TextCell("03/04/2025")
	assert.Equal(t, strPtr("2025-04-03"), parseDate(ambiguous, DateOrderDMY))
	assert.Equal(t, strPtr("2025-03-04"), parseDate(ambiguous, DateOrderMDYAuto))

	dayFirst := spreadsheet.TextCell("25/12/2024")
	assert.Equal(t, strPtr("2024-12-25"), parseDate(dayFirst, DateOrderDMY))
	assert.Equal(t, strPtr("2024-12-25"), parseDate(dayFirst, DateOrderMDYAuto))
}
