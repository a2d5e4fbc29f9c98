package ingest

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestResolveColumns_LecturerTemplate(t *testing.T) {
	t.Parallel()

	labels := []string{"Nama", "NIDN", "Email", "Telepon", "Departemen", "Jabatan Akademik", "Posisi Fakultas", "Kualifikasi", "Spesialisasi"}
	cols := ResolveColumns(labels, DefaultAliasTable())

	want := map[Field]int{
		FieldFullName:       0,
		FieldNIDN:           1,
		FieldEmail:          2,
		FieldPhone:          3,
		FieldDepartment:     4,
		FieldAcademicRank:   5,
		FieldPosition:       6,
		FieldQualification:  7,
		FieldSpecialization: 8,
	}
	assert.Len(t, cols.Fields(), len(want))
	for f, idx := range want {
		got, ok := cols.Index(f)
		assert.True(t, ok, f)
		assert.Equal(t, idx, got, f)
	}
}

func TestResolveColumns_StaffDUKLayout(t *testing.T) {
	t.Parallel()

	labels := []string{"No", "Nama", "L/P", "NIP BARU", "Tempat Lahir", "Tanggal Lahir", "TMT Pensiun", "Pendidikan", "Golongan", "Jabatan", "Unit Kerja", "Status Kepegawaian", "Penempatan Saat Ini"}
	cols := ResolveColumns(labels, DefaultAliasTable())

	assert.Equal(t, []Field{
		FieldFullName, FieldGender, FieldNIP, FieldBirthPlace, FieldBirthDate, FieldRetirementDate,
		FieldQualification, FieldGrade, FieldPosition, FieldWorkUnit, FieldEmploymentStatus,
	}, cols.Fields())

	idx, _ := cols.Index(FieldWorkUnit)
	assert.Equal(t, 10, idx, "the later placement column does not take over the work unit")
}

func TestResolveColumns_FirstColumnWins(t *testing.T) {
	t.Parallel()

	cols := ResolveColumns([]string{"Nama", "NIP", "Nama Panggilan", "nip"}, DefaultAliasTable())
	idx, _ := cols.Index(FieldFullName)
	assert.Equal(t, 0, idx)
	idx, _ = cols.Index(FieldNIP)
	assert.Equal(t, 1, idx)
	assert.Equal(t, []Field{FieldFullName, FieldNIP}, cols.Fields())
}

func TestResolveColumns_Overlaps(t *testing.T) {
	t.Parallel()

	cols := ResolveColumns([]string{"Masa Kerja", "Unit", "Jabatan Fungsional", "Jabatan Struktural", "No. HP", "Tgl Lahir"}, DefaultAliasTable())

	expect := func(f Field, idx int) {
		t.Helper()
		got, ok := cols.Index(f)
		assert.True(t, ok, f)
		assert.Equal(t, idx, got, f)
	}
	expect(FieldYearsOfService, 0)
	expect(FieldWorkUnit, 1)
	expect(FieldAcademicRank, 2)
	expect(FieldPosition, 3)
	expect(FieldPhone, 4)
	expect(FieldBirthDate, 5)
}

func TestResolveColumns_IdentifiersAreExact(t *testing.T) {
	t.Parallel()

	cols := ResolveColumns([]string{"Nama", "NIDN Lama", "nidn"}, DefaultAliasTable())
	idx, ok := cols.Index(FieldNIDN)
	assert.True(t, ok)
	assert.Equal(t, 2, idx)
}

func TestResolveColumns_IsPure(t *testing.T) {
	t.Parallel()

	table := DefaultAliasTable()
	labels := []string{"Nama", "NIP"}
	a := ResolveColumns(labels, table)
	b := ResolveColumns(labels, table)
	assert.Equal(t, a.Fields(), b.Fields())
	assert.Equal(t, DefaultAliasTable(), table)
}

func TestNormalizeLabel(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "nip baru", NormalizeLabel("  NIP \t  Baru "))
	assert.Equal(t, "", NormalizeLabel("   "))
}

func TestResolveColumns_PerformanceTemplate(t *testing.T) {
	t.Parallel()

	labels := []string{"tahun", "kuartal", "kategori", "indikator", "target", "capaian", "satuan", "status", "catatan"}
	cols := ResolveColumns(labels, PerformanceAliasTable())
	assert.Equal(t, []Field{
		FieldYear, FieldQuarter, FieldCategory, FieldIndicator, FieldTarget,
		FieldAchieved, FieldUnit, FieldStatus, FieldNotes,
	}, cols.Fields())

	english := ResolveColumns([]string{"year", "category", "indicator", "target_value", "achieved_value"}, PerformanceAliasTable())
	assert.Equal(t, []Field{FieldYear, FieldCategory, FieldIndicator, FieldTarget, FieldAchieved}, english.Fields())
}
