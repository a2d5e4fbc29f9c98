package spreadsheet

import (
	"bytes"
	"encoding/csv"
	"io"
	"unicode/utf8"

	"github.com/pkg/errors"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

var delimiters = []rune{',', ';', '\t'}

func decodeCSV(data []byte) (Grid, error) {
	text, err := toUTF8(data)
	if err != nil {
		return nil, errors.Wrap(err, "convert to utf-8")
	}

	r := csv.NewReader(bytes.NewReader(text))
	r.Comma = sniffDelimiter(text)
	r.LazyQuotes = true
	r.FieldsPerRecord = -1

	var grid Grid
	for {
		record, err := r.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, errors.Wrap(err, "read csv")
		}
		row := make(Row, len(record))
		for i, field := range record {
			row[i] = TextCell(field)
		}
		grid = append(grid, trimTrailing(row))
	}
	return grid, nil
}

// toUTF8 strips a UTF-8 BOM, decodes UTF-16 with a BOM and falls back to
// Windows-1252 for anything that is not valid UTF-8.
func toUTF8(data []byte) ([]byte, error) {
	if utf8.Valid(data) || hasUTF16BOM(data) {
		out, _, err := transform.Bytes(unicode.BOMOverride(transform.Nop), data)
		return out, err
	}
	out, _, err := transform.Bytes(charmap.Windows1252.NewDecoder(), data)
	return out, err
}

func hasUTF16BOM(data []byte) bool {
	return bytes.HasPrefix(data, []byte{0xFE, 0xFF}) || bytes.HasPrefix(data, []byte{0xFF, 0xFE})
}

// sniffDelimiter counts candidate separators outside quotes over the first
// lines and returns the most frequent one.
func sniffDelimiter(text []byte) rune {
	counts := make(map[rune]int, len(delimiters))
	lines := 0
	inQuotes := false
	for _, r := range string(text) {
		switch {
		case r == '"':
			inQuotes = !inQuotes
		case r == '\n' && !inQuotes:
			lines++
		case !inQuotes:
			counts[r]++
		}
		if lines >= 20 {
			break
		}
	}
	best, bestCount := ',', 0
	for _, d := range delimiters {
		if counts[d] > bestCount {
			best, bestCount = d, counts[d]
		}
	}
	return best
}
