package member_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/fkunand/faculty-admin/modules/faculty/domain/aggregates/member"
)

func TestCreateDTO_Ok(t *testing.T) {
	dto := member.CreateDTO{
		Kind: " Lecturer ",
		UpdateDTO: member.UpdateDTO{
			FullName:             " Dr. Siti Nurhaliza ",
			IdentificationType:   "nidk",
			IdentificationNumber: "0002078402",
			Email:                strPtr("siti@unand.ac.id"),
			Gender:               strPtr("p"),
			BirthDate:            strPtr("1984-07-02"),
			Department:           strPtr("  "),
		},
	}

	errs, ok := dto.Ok()
	require.True(t, ok, errs)
	require.Equal(t, "lecturer", dto.Kind)
	require.Equal(t, "NIDK", dto.IdentificationType)
	require.Equal(t, strPtr("P"), dto.Gender)
	require.Nil(t, dto.Department)

	m, err := dto.ToEntity()
	require.NoError(t, err)
	require.Equal(t, member.KindLecturer, m.Kind())
	require.Equal(t, "0002078402", m.NaturalKey())
	require.Equal(t, strPtr("0002078402"), m.Attributes().NIDK)
	require.Equal(t, 1984, m.Attributes().BirthDate.Year())
}

func TestCreateDTO_Errors(t *testing.T) {
	dto := member.CreateDTO{
		Kind: "alumni",
		UpdateDTO: member.UpdateDTO{
			IdentificationType: "KTP",
			Email:              strPtr("not-an-email"),
			BirthDate:          strPtr("15-01-2024"),
		},
	}

	errs, ok := dto.Ok()
	require.False(t, ok)
	for _, field := range []string{"kind", "full_name", "identification_type", "identification_number", "email", "birth_date"} {
		require.Contains(t, errs, field)
	}
}

func TestUpdateDTO_Apply(t *testing.T) {
	existing := member.New(member.KindStaff, "Ani", member.IdentificationNUPTK, "5566", member.Attributes{})
	active := false
	dto := member.UpdateDTO{
		FullName:             "Ani Lestari",
		IdentificationType:   "NUPTK",
		IdentificationNumber: "5566",
		NIP:                  strPtr("197504032000122001"),
		Active:               &active,
	}
	errs, ok := dto.Ok()
	require.True(t, ok, errs)

	updated, err := dto.Apply(existing)
	require.NoError(t, err)
	require.Equal(t, "Ani Lestari", updated.FullName())
	require.Equal(t, "197504032000122001", updated.NaturalKey(), "staff re-key on NIP")
	require.False(t, updated.Active())
	require.Equal(t, member.KindStaff, updated.Kind())
}
