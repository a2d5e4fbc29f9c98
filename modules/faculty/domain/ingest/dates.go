package ingest

import (
	"fmt"
	"math"
	"regexp"
	"strconv"
	"time"

	"github.com/fkunand/faculty-admin/pkg/spreadsheet"
)

// DateOrder resolves ambiguous D/M/YYYY dates.
type DateOrder string

const (
	// DateOrderDMY always reads the first group as the day.
	DateOrderDMY DateOrder = "dmy"
	// DateOrderMDYAuto reads the first group as the month unless it exceeds 12.
	DateOrderMDYAuto DateOrder = "mdy-auto"
)

const isoDate = "2006-01-02"

// maxSerial is 9999-12-31.
const maxSerial = 2958465

var (
	excelEpoch    = time.Date(1899, time.December, 30, 0, 0, 0, 0, time.UTC)
	isoPattern    = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)
	serialPattern = regexp.MustCompile(`^\d{1,7}$`)
	dmyPattern    = regexp.MustCompile(`^(\d{1,2})[-/](\d{1,2})[-/](\d{4})$`)
)

// parseDate turns a date cell into an ISO date. All-digit text is read as a
// serial, since CSV cells are never numeric. Unrecognised or impossible dates
// yield nil.
func parseDate(c spreadsheet.Cell, order DateOrder) *string {
	if c.Kind == spreadsheet.CellNumber {
		return serialDate(c.Number)
	}
	s, ok := cleanText(c)
	if !ok {
		return nil
	}
	if serialPattern.MatchString(s) {
		n, _ := strconv.Atoi(s)
		return serialDate(float64(n))
	}
	if isoPattern.MatchString(s) {
		if _, err := time.Parse(isoDate, s); err != nil {
			return nil
		}
		return &s
	}
	m := dmyPattern.FindStringSubmatch(s)
	if m == nil {
		return nil
	}
	first, _ := strconv.Atoi(m[1])
	second, _ := strconv.Atoi(m[2])
	year, _ := strconv.Atoi(m[3])
	day, month := first, second
	if order == DateOrderMDYAuto && first <= 12 {
		day, month = second, first
	}
	return calendarDate(year, month, day)
}

func serialDate(serial float64) *string {
	days := math.Floor(serial)
	if days < 1 || days > maxSerial {
		return nil
	}
	s := excelEpoch.AddDate(0, 0, int(days)).Format(isoDate)
	return &s
}

func calendarDate(year, month, day int) *string {
	if month < 1 || month > 12 || day < 1 {
		return nil
	}
	t := time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)
	if t.Day() != day || int(t.Month()) != month {
		return nil
	}
	s := fmt.Sprintf("%04d-%02d-%02d", year, month, day)
	return &s
}
