package member_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/fkunand/faculty-admin/modules/faculty/domain/aggregates/member"
	"github.com/fkunand/faculty-admin/pkg/composables"
)

func strPtr(s string) *string { return &s }

func TestParseKind(t *testing.T) {
	for in, want := range map[string]member.Kind{
		"lecturer":  member.KindLecturer,
		"Lecturers": member.KindLecturer,
		" dosen ":   member.KindLecturer,
		"staff":     member.KindStaff,
		"TENDIK":    member.KindStaff,
	} {
		got, err := member.ParseKind(in)
		require.NoError(t, err, in)
		require.Equal(t, want, got, in)
	}

	_, err := member.ParseKind("performance")
	require.ErrorIs(t, err, member.ErrUnknownKind)
}

func TestNaturalKey(t *testing.T) {
	require.Equal(t, "0001056301", member.NaturalKey(member.KindLecturer, "0001056301", strPtr("1975")))
	require.Equal(t, "1975", member.NaturalKey(member.KindStaff, "5566", strPtr(" 1975 ")))
	require.Equal(t, "5566", member.NaturalKey(member.KindStaff, "5566", nil))
	require.Equal(t, "5566", member.NaturalKey(member.KindStaff, "5566", strPtr("  ")))
}

func TestNew_FillsIdentifierColumn(t *testing.T) {
	m := member.New(member.KindLecturer, " Dr. Budi ", member.IdentificationNIDN, "0001056301", member.Attributes{})
	require.Equal(t, "Dr. Budi", m.FullName())
	require.True(t, m.Active())
	require.Equal(t, "0001056301", m.NaturalKey())
	require.Equal(t, strPtr("0001056301"), m.Attributes().NIDN)
	require.Nil(t, m.Attributes().NIP)
}

func TestSnapshot_FormatsDates(t *testing.T) {
	birth := time.Date(1975, 4, 3, 0, 0, 0, 0, time.UTC)
	m := member.New(member.KindStaff, "Ani", member.IdentificationNIP, "1975", member.Attributes{BirthDate: &birth})

	snap := m.Snapshot()
	require.Equal(t, strPtr("1975-04-03"), snap.BirthDate)
	require.Nil(t, snap.RetirementDate)
	require.Equal(t, member.KindStaff, snap.Kind)
}

func TestParseDate(t *testing.T) {
	got, err := member.ParseDate(strPtr("2024-01-15"))
	require.NoError(t, err)
	require.Equal(t, time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC), *got)

	got, err = member.ParseDate(nil)
	require.NoError(t, err)
	require.Nil(t, got)

	_, err = member.ParseDate(strPtr("15/01/2024"))
	require.Error(t, err)
}

func TestEventsCarryActor(t *testing.T) {
	require.Equal(t, "system", member.NewCreatedEvent(context.Background(), member.Member{}).Actor)

	ctx := composables.WithPrincipal(context.Background(), composables.Principal{Username: "admin", Method: "basic"})
	require.Equal(t, "admin", member.NewDeletedEvent(ctx, member.Member{}).Actor)
}
