package ingest

import "github.com/fkunand/faculty-admin/pkg/spreadsheet"

// HeaderRule names what makes a row the header: a column accepted by the
// anchor field plus an exact spelling of one of the key fields. The labels
// are what error messages tell the user to add.
type HeaderRule struct {
	Anchor      Field
	AnchorLabel string
	Keys        []Field
	KeyLabels   []string
}

var (
	MemberHeader = HeaderRule{
		Anchor:      FieldFullName,
		AnchorLabel: "Nama",
		Keys:        IdentifierFields,
		KeyLabels:   []string{"NIP", "NIDN", "NIDK", "NUPTK"},
	}
	PerformanceHeader = HeaderRule{
		Anchor:      FieldIndicator,
		AnchorLabel: "Indikator",
		Keys:        []Field{FieldCategory},
		KeyLabels:   []string{"Kategori"},
	}
)

// NormalizeFunc cleans one data row. It returns ErrSkipRow for rows that
// are not data; any other error is reported against the row together with
// the partially filled value.
type NormalizeFunc[T any] func(row spreadsheet.Row, cols ColumnMap) (T, error)

// Profile parameterises the single pipeline for one kind of upload.
type Profile[T any] struct {
	Window    int
	Table     AliasTable
	Header    HeaderRule
	Normalize NormalizeFunc[T]
	// Label names a row in error messages.
	Label func(T) string
}

const (
	LecturerWindow    = 20
	StaffWindow       = 10
	PerformanceWindow = 10
)

func memberProfile(table AliasTable, order DateOrder, window int) Profile[Record] {
	return Profile[Record]{
		Window: window,
		Table:  table,
		Header: MemberHeader,
		Normalize: func(row spreadsheet.Row, cols ColumnMap) (Record, error) {
			return Normalize(row, cols, order)
		},
		Label: func(r Record) string { return r.FullName },
	}
}

func LecturerProfile(table AliasTable, order DateOrder, window int) Profile[Record] {
	if window <= 0 {
		window = LecturerWindow
	}
	return memberProfile(table, order, window)
}

// StaffProfile covers the fixed DUK layout whose header sits within the
// first ten lines.
func StaffProfile(table AliasTable, order DateOrder, window int) Profile[Record] {
	if window <= 0 {
		window = StaffWindow
	}
	return memberProfile(table, order, window)
}

// PerformanceProfile reads "Capaian Kinerja" sheets. Rows without a year
// are filed under defaultYear.
func PerformanceProfile(table AliasTable, defaultYear, window int) Profile[PerformanceRecord] {
	if table == nil {
		table = PerformanceAliasTable()
	}
	if window <= 0 {
		window = PerformanceWindow
	}
	return Profile[PerformanceRecord]{
		Window: window,
		Table:  table,
		Header: PerformanceHeader,
		Normalize: func(row spreadsheet.Row, cols ColumnMap) (PerformanceRecord, error) {
			return NormalizePerformance(row, cols, defaultYear)
		},
		Label: func(r PerformanceRecord) string { return r.label() },
	}
}
