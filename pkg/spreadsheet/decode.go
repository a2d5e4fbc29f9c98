package spreadsheet

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/gabriel-vasile/mimetype"

	"github.com/fkunand/faculty-admin/pkg/serrors"
)

type Format string

const (
	FormatXLSX Format = "xlsx"
	FormatXLS  Format = "xls"
	FormatCSV  Format = "csv"
)

const (
	mimeXLSX = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	mimeXLS  = "application/vnd.ms-excel"
)

var (
	ErrUnsupportedFormat = serrors.NewError(
		"SPREADSHEET_UNSUPPORTED_FORMAT",
		"unsupported file format, expected .xlsx, .xls or .csv",
		"Spreadsheet.Errors.UnsupportedFormat",
	)

	ErrNoRows = serrors.NewError("SPREADSHEET_NO_ROWS", "file contains no rows", "Spreadsheet.Errors.NoRows")
)

// DecodeError reports a file that could not be turned into a grid.
type DecodeError struct {
	Format Format
	Err    error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("decode %s: %v", e.Format, e.Err)
}

func (e *DecodeError) Unwrap() error {
	return e.Err
}

func formatFromName(filename string) (Format, bool) {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".xlsx":
		return FormatXLSX, true
	case ".xls":
		return FormatXLS, true
	case ".csv":
		return FormatCSV, true
	}
	return "", false
}

// DetectFormat picks the format from the file extension. Workbook content
// sniffed from the bytes overrides a mislabelled extension.
func DetectFormat(data []byte, filename string) (Format, error) {
	format, ok := formatFromName(filename)
	if !ok {
		return "", ErrUnsupportedFormat
	}
	mt := mimetype.Detect(data)
	switch {
	case mt.Is(mimeXLSX):
		return FormatXLSX, nil
	case mt.Is(mimeXLS):
		return FormatXLS, nil
	}
	return format, nil
}

// Decode turns an uploaded file into the grid of its first sheet.
func Decode(data []byte, filename string) (Grid, error) {
	format, err := DetectFormat(data, filename)
	if err != nil {
		return nil, err
	}

	var grid Grid
	switch format {
	case FormatXLSX:
		grid, err = decodeWorkbook(data)
	case FormatXLS:
		grid, err = decodeLegacyWorkbook(data)
	default:
		grid, err = decodeCSV(data)
	}
	if err != nil {
		return nil, &DecodeError{Format: format, Err: err}
	}
	if grid.Blank() {
		return nil, &DecodeError{Format: format, Err: ErrNoRows}
	}
	return grid, nil
}
