package ingest

import "strings"

// Field is a canonical column name.
type Field string

const (
	FieldFullName         Field = "full_name"
	FieldNIP              Field = "nip"
	FieldNIDN             Field = "nidn"
	FieldNIDK             Field = "nidk"
	FieldNUPTK            Field = "nuptk"
	FieldGender           Field = "gender"
	FieldBirthPlace       Field = "birth_place"
	FieldBirthDate        Field = "birth_date"
	FieldRetirementDate   Field = "retirement_date"
	FieldEmail            Field = "email"
	FieldPhone            Field = "phone"
	FieldAcademicRank     Field = "academic_rank"
	FieldPosition         Field = "position"
	FieldGrade            Field = "grade"
	FieldDepartment       Field = "department"
	FieldEmploymentStatus Field = "employment_status"
	FieldQualification    Field = "qualification"
	FieldSpecialization   Field = "specialization"
	FieldGraduationYear   Field = "graduation_year"
	FieldYearsOfService   Field = "years_of_service"
	FieldWorkUnit         Field = "work_unit"

	FieldYear      Field = "year"
	FieldQuarter   Field = "quarter"
	FieldCategory  Field = "category"
	FieldIndicator Field = "indicator"
	FieldTarget    Field = "target_value"
	FieldAchieved  Field = "achieved_value"
	FieldUnit      Field = "unit"
	FieldStatus    Field = "status"
	FieldNotes     Field = "notes"
)

// IdentifierFields in identification priority order.
var IdentifierFields = []Field{FieldNIDN, FieldNIDK, FieldNUPTK, FieldNIP}

func (f Field) IsIdentifier() bool {
	for _, id := range IdentifierFields {
		if f == id {
			return true
		}
	}
	return false
}

type MatchMode uint8

const (
	MatchExact MatchMode = iota
	MatchContains
)

type Matcher struct {
	Pattern string
	Mode    MatchMode
}

func Exact(pattern string) Matcher {
	return Matcher{Pattern: NormalizeLabel(pattern), Mode: MatchExact}
}

func Contains(pattern string) Matcher {
	return Matcher{Pattern: NormalizeLabel(pattern), Mode: MatchContains}
}

// Match expects an already normalized label.
func (m Matcher) Match(label string) bool {
	if m.Pattern == "" {
		return false
	}
	if m.Mode == MatchExact {
		return label == m.Pattern
	}
	return strings.Contains(label, m.Pattern)
}

type FieldAliases struct {
	Field    Field
	Matchers []Matcher
}

func (a FieldAliases) Match(label string) bool {
	for _, m := range a.Matchers {
		if m.Match(label) {
			return true
		}
	}
	return false
}

// AliasTable is evaluated top to bottom; the first entry matching a label
// claims it.
type AliasTable []FieldAliases

// NormalizeLabel lower-cases s, trims it and collapses inner whitespace.
func NormalizeLabel(s string) string {
	return strings.Join(strings.Fields(strings.ToLower(s)), " ")
}

// DefaultAliasTable lists the header spellings seen in faculty exports.
// Short identifier codes match exactly so "nip" never matches "nip lama
// (tidak dipakai)"; academic rank precedes position and years of service
// precedes work unit because their labels overlap.
func DefaultAliasTable() AliasTable {
	return AliasTable{
		{FieldFullName, []Matcher{Contains("nama"), Contains("name")}},
		{FieldNIDN, []Matcher{Exact("nidn"), Exact("nomor nidn"), Exact("no nidn"), Exact("no. nidn")}},
		{FieldNIDK, []Matcher{Exact("nidk"), Exact("nomor nidk"), Exact("no nidk"), Exact("no. nidk")}},
		{FieldNUPTK, []Matcher{Exact("nuptk"), Exact("nomor nuptk"), Exact("no nuptk"), Exact("no. nuptk")}},
		{FieldNIP, []Matcher{Exact("nip"), Exact("nip baru"), Exact("nomor nip"), Exact("no nip"), Exact("no. nip")}},
		{FieldGender, []Matcher{Exact("jenis kelamin"), Exact("kelamin"), Exact("l/p"), Exact("jk"), Exact("gender")}},
		{FieldBirthPlace, []Matcher{Contains("tempat lahir"), Exact("tempat"), Contains("place of birth"), Contains("birth place")}},
		{FieldBirthDate, []Matcher{Contains("tanggal lahir"), Exact("tgl lahir"), Contains("tgl. lahir"), Contains("date of birth"), Contains("birth date")}},
		{FieldRetirementDate, []Matcher{Contains("tmt pensiun"), Contains("pensiun"), Contains("retirement")}},
		{FieldEmail, []Matcher{Contains("email"), Contains("e-mail"), Contains("surel")}},
		{FieldPhone, []Matcher{Contains("telepon"), Contains("telp"), Contains("tlp"), Contains("hp"), Contains("phone")}},
		{FieldAcademicRank, []Matcher{Contains("jabatan akademik"), Contains("jabatan fungsional"), Exact("fungsional"), Contains("academic rank")}},
		{FieldPosition, []Matcher{Contains("jabatan"), Contains("posisi"), Contains("position")}},
		{FieldGrade, []Matcher{Contains("pangkat"), Contains("golongan"), Contains("gol."), Exact("gol"), Contains("grade")}},
		{FieldDepartment, []Matcher{Contains("departemen"), Contains("prodi"), Contains("program studi"), Contains("department"), Contains("bagian")}},
		{FieldEmploymentStatus, []Matcher{Contains("status kepegawaian"), Contains("status pegawai"), Contains("employment status")}},
		{FieldQualification, []Matcher{Contains("kualifikasi"), Contains("pendidikan"), Contains("qualification")}},
		{FieldSpecialization, []Matcher{Contains("spesialisasi"), Contains("keahlian"), Contains("specialization")}},
		{FieldGraduationYear, []Matcher{Contains("tahun lulus"), Contains("graduation")}},
		{FieldYearsOfService, []Matcher{Contains("masa kerja"), Contains("years of service")}},
		{FieldWorkUnit, []Matcher{Contains("unit kerja"), Contains("unit"), Contains("kerja"), Contains("penempatan")}},
	}
}

// PerformanceAliasTable covers the "Capaian Kinerja" template and the
// English column keys of older exports. Category is matched exactly since
// it anchors header detection together with the indicator.
func PerformanceAliasTable() AliasTable {
	return AliasTable{
		{FieldYear, []Matcher{Exact("tahun"), Exact("year")}},
		{FieldQuarter, []Matcher{Exact("kuartal"), Exact("triwulan"), Exact("quarter"), Exact("tw")}},
		{FieldCategory, []Matcher{Exact("kategori"), Exact("category"), Exact("bidang")}},
		{FieldIndicator, []Matcher{Contains("indikator"), Contains("indicator")}},
		{FieldTarget, []Matcher{Contains("target")}},
		{FieldAchieved, []Matcher{Contains("capaian"), Contains("realisasi"), Contains("achieved")}},
		{FieldUnit, []Matcher{Exact("satuan"), Exact("unit")}},
		{FieldStatus, []Matcher{Exact("status")}},
		{FieldNotes, []Matcher{Contains("catatan"), Contains("keterangan"), Contains("notes")}},
	}
}

// Resolve returns the first field whose matchers accept label.
func (t AliasTable) Resolve(label string) (Field, bool) {
	label = NormalizeLabel(label)
	if label == "" {
		return "", false
	}
	for _, entry := range t {
		if entry.Match(label) {
			return entry.Field, true
		}
	}
	return "", false
}

func (t AliasTable) lookup(f Field) (FieldAliases, bool) {
	for _, entry := range t {
		if entry.Field == f {
			return entry, true
		}
	}
	return FieldAliases{}, false
}

// MatchesField reports whether label is accepted by f's matchers.
func (t AliasTable) MatchesField(f Field, label string) bool {
	entry, ok := t.lookup(f)
	return ok && entry.Match(NormalizeLabel(label))
}

// MatchesExact reports whether label equals one of the exact spellings of
// fields.
func (t AliasTable) MatchesExact(fields []Field, label string) bool {
	label = NormalizeLabel(label)
	for _, f := range fields {
		entry, ok := t.lookup(f)
		if !ok {
			continue
		}
		for _, m := range entry.Matchers {
			if m.Mode == MatchExact && m.Match(label) {
				return true
			}
		}
	}
	return false
}

// ExactLabels lists the exact spellings of fields.
func (t AliasTable) ExactLabels(fields []Field) []string {
	var out []string
	for _, f := range fields {
		entry, ok := t.lookup(f)
		if !ok {
			continue
		}
		for _, m := range entry.Matchers {
			if m.Mode == MatchExact {
				out = append(out, m.Pattern)
			}
		}
	}
	return out
}

// Extend returns a copy of t with extra matchers appended to their fields.
// Priority order is unchanged.
func (t AliasTable) Extend(extra map[Field][]Matcher) AliasTable {
	out := make(AliasTable, len(t))
	for i, entry := range t {
		matchers := make([]Matcher, 0, len(entry.Matchers)+len(extra[entry.Field]))
		matchers = append(matchers, entry.Matchers...)
		matchers = append(matchers, extra[entry.Field]...)
		out[i] = FieldAliases{Field: entry.Field, Matchers: matchers}
	}
	return out
}
