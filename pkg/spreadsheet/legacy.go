package spreadsheet

import (
	"bytes"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/extrame/xls"
	"github.com/pkg/errors"
)

// formulaPlaceholder is what the BIFF reader renders for formula cells; their
// cached results are not exposed.
const formulaPlaceholder = "FormulaCol"

var plainNumber = regexp.MustCompile(`^-?\d+(\.\d+)?$`)

func decodeLegacyWorkbook(data []byte) (grid Grid, err error) {
	// the BIFF reader panics on some truncated files
	defer func() {
		if r := recover(); r != nil {
			grid, err = nil, errors.Errorf("corrupt workbook: %v", r)
		}
	}()

	wb, err := xls.OpenReader(bytes.NewReader(data), "utf-8")
	if err != nil {
		return nil, errors.Wrap(err, "open workbook")
	}
	if wb == nil {
		return nil, errors.New("open workbook: no workbook stream")
	}
	sheet := wb.GetSheet(0)
	if sheet == nil {
		return nil, ErrNoRows
	}
	// ReadAllCells moves on to the next sheet when the first one holds at
	// most a single row.
	if sheet.MaxRow == 0 {
		return Grid{}, nil
	}

	rows := wb.ReadAllCells(int(sheet.MaxRow) + 1)
	grid = make(Grid, 0, len(rows))
	for _, raw := range rows {
		if raw == nil {
			grid = append(grid, nil)
			continue
		}
		cells := make(Row, 0, len(raw))
		for _, v := range raw {
			cells = append(cells, legacyCell(v))
		}
		grid = append(grid, trimTrailing(cells))
	}
	return grid, nil
}

// legacyCell infers numbers from the rendered BIFF value. Only plain decimal
// renderings that survive a float64 round trip become numbers, so leading
// zeros, signs and long identifiers stay text.
func legacyCell(raw string) Cell {
	v := strings.TrimSpace(raw)
	if v == "" || v == formulaPlaceholder {
		return Cell{}
	}
	if t, err := time.Parse(time.RFC3339, v); err == nil {
		return TextCell(t.Format("2006-01-02"))
	}
	if len(v) > 15 || !plainNumber.MatchString(v) {
		return TextCell(v)
	}
	n, err := strconv.ParseFloat(v, 64)
	if err != nil || strconv.FormatFloat(n, 'f', -1, 64) != v {
		return TextCell(v)
	}
	return NumberCell(n)
}
