package spreadsheet

import (
	"bytes"
	"io"
	"strconv"
	"strings"

	"github.com/pkg/errors"
	"github.com/xuri/excelize/v2"
)

func decodeWorkbook(data []byte) (Grid, error) {
	f, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		return nil, errors.Wrap(err, "open workbook")
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, ErrNoRows
	}
	sheet := sheets[0]

	rows, err := f.GetRows(sheet, excelize.Options{RawCellValue: true})
	if err != nil {
		return nil, errors.Wrapf(err, "read sheet %q", sheet)
	}

	grid := make(Grid, 0, len(rows))
	for r, values := range rows {
		row := make(Row, len(values))
		for c, v := range values {
			row[c] = workbookCell(f, sheet, c+1, r+1, v)
		}
		grid = append(grid, trimTrailing(row))
	}
	return grid, nil
}

// workbookCell keeps a value numeric only when the workbook stores it as a
// number; strings that merely look numeric stay text.
func workbookCell(f *excelize.File, sheet string, col, row int, raw string) Cell {
	v := strings.TrimSpace(raw)
	if v == "" {
		return Cell{}
	}
	n, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return TextCell(v)
	}
	name, err := excelize.CoordinatesToCellName(col, row)
	if err != nil {
		return TextCell(v)
	}
	typ, err := f.GetCellType(sheet, name)
	if err != nil {
		return TextCell(v)
	}
	if typ == excelize.CellTypeUnset || typ == excelize.CellTypeNumber {
		return NumberCell(n)
	}
	return TextCell(v)
}

// WorkbookSheet describes a single sheet written by WriteWorkbook.
type WorkbookSheet struct {
	Name    string
	Headers []string
	Rows    [][]any
	Widths  []float64
}

// WriteWorkbook writes a one-sheet xlsx file with a bold header row.
func WriteWorkbook(w io.Writer, s WorkbookSheet) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", s.Name); err != nil {
		return errors.Wrap(err, "rename sheet")
	}

	header := make([]any, len(s.Headers))
	for i, h := range s.Headers {
		header[i] = h
	}
	if err := f.SetSheetRow(s.Name, "A1", &header); err != nil {
		return errors.Wrap(err, "write header")
	}
	for i, row := range s.Rows {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		values := row
		if err := f.SetSheetRow(s.Name, cell, &values); err != nil {
			return errors.Wrapf(err, "write row %d", i+2)
		}
	}

	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return err
	}
	if len(s.Headers) > 0 {
		last, err := excelize.CoordinatesToCellName(len(s.Headers), 1)
		if err != nil {
			return err
		}
		if err := f.SetCellStyle(s.Name, "A1", last, bold); err != nil {
			return err
		}
	}
	for i, width := range s.Widths {
		col, err := excelize.ColumnNumberToName(i + 1)
		if err != nil {
			return err
		}
		if err := f.SetColWidth(s.Name, col, col, width); err != nil {
			return err
		}
	}
	return f.Write(w)
}
