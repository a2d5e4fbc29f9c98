package spreadsheet

import (
	"math"
	"strconv"
	"strings"
)

type CellKind uint8

const (
	CellEmpty CellKind = iota
	CellNumber
	CellText
)

// Cell is one decoded spreadsheet value. Numbers keep their float value so
// date serials survive decoding.
type Cell struct {
	Kind   CellKind
	Number float64
	Text   string
}

func NumberCell(n float64) Cell {
	return Cell{Kind: CellNumber, Number: n}
}

// TextCell trims s; a blank string yields an empty cell.
func TextCell(s string) Cell {
	s = strings.TrimSpace(s)
	if s == "" {
		return Cell{}
	}
	return Cell{Kind: CellText, Text: s}
}

func (c Cell) IsEmpty() bool {
	return c.Kind == CellEmpty
}

// String renders the cell as text. Integral numbers print without a
// fractional part.
func (c Cell) String() string {
	switch c.Kind {
	case CellNumber:
		if c.Number == math.Trunc(c.Number) && math.Abs(c.Number) < 1e18 {
			return strconv.FormatInt(int64(c.Number), 10)
		}
		return strconv.FormatFloat(c.Number, 'f', -1, 64)
	case CellText:
		return c.Text
	default:
		return ""
	}
}

type Row []Cell

// At returns the cell at i, or an empty cell when i is out of range.
func (r Row) At(i int) Cell {
	if i < 0 || i >= len(r) {
		return Cell{}
	}
	return r[i]
}

func (r Row) Blank() bool {
	for _, c := range r {
		if !c.IsEmpty() {
			return false
		}
	}
	return true
}

func (r Row) Texts() []string {
	out := make([]string, len(r))
	for i, c := range r {
		out[i] = c.String()
	}
	return out
}

func trimTrailing(r Row) Row {
	end := len(r)
	for end > 0 && r[end-1].IsEmpty() {
		end--
	}
	return r[:end]
}

// Grid is the decoded first sheet, row by row. Row i is file line i+1.
type Grid []Row

func (g Grid) Blank() bool {
	for _, r := range g {
		if !r.Blank() {
			return false
		}
	}
	return true
}
