package performance_test

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/fkunand/faculty-admin/modules/faculty/domain/aggregates/performance"
)

func strPtr(s string) *string { return &s }

func dec(s string) decimal.NullDecimal {
	return decimal.NewNullDecimal(decimal.RequireFromString(s))
}

func TestParseStatus(t *testing.T) {
	for in, want := range map[string]performance.Status{
		"on_track":        performance.StatusOnTrack,
		" On Track ":      performance.StatusOnTrack,
		"ACHIEVED":        performance.StatusAchieved,
		"Tercapai":        performance.StatusAchieved,
		"tidak  tercapai": performance.StatusNotAchieved,
		"not_achieved":    performance.StatusNotAchieved,
		"pending":         performance.StatusPending,
		"selesai":         performance.StatusPending,
		"":                performance.StatusPending,
	} {
		require.Equal(t, want, performance.ParseStatus(in), in)
	}
}

func TestNew(t *testing.T) {
	i := performance.New(performance.Details{
		Year:      2024,
		Quarter:   1,
		Category:  " Pendidikan ",
		Indicator: "Jumlah Lulusan Tepat Waktu ",
		Target:    dec("85"),
		Achieved:  dec("80"),
		Status:    "unknown",
	})
	require.Equal(t, "Pendidikan", i.Category())
	require.Equal(t, "Jumlah Lulusan Tepat Waktu", i.Name())
	require.Equal(t, performance.StatusPending, i.Status())
	require.Equal(t, "2024/Q1/Pendidikan/Jumlah Lulusan Tepat Waktu", i.NaturalKey())
	require.Equal(t, "94.12", i.Progress().Decimal.String())
}

func TestProgress_Undefined(t *testing.T) {
	require.False(t, performance.New(performance.Details{Target: dec("0"), Achieved: dec("3")}).Progress().Valid)
	require.False(t, performance.New(performance.Details{Target: dec("10")}).Progress().Valid)
}

func TestSnapshot_JSON(t *testing.T) {
	i := performance.Hydrate(7, performance.Details{
		Year:      2024,
		Quarter:   2,
		Category:  "Penelitian",
		Indicator: "Publikasi Internasional",
		Target:    dec("50"),
		Achieved:  dec("45"),
		Unit:      strPtr("artikel"),
		Status:    performance.StatusOnTrack,
	}, time.Time{}, time.Time{})

	raw, err := json.Marshal(i.Snapshot())
	require.NoError(t, err)

	var out map[string]any
	require.NoError(t, json.Unmarshal(raw, &out))
	require.Equal(t, "50", out["target_value"])
	require.Equal(t, "90", out["progress"])
	require.Equal(t, "on_track", out["status"])
	require.Nil(t, out["notes"])
}

func TestUpdateDTO_Ok(t *testing.T) {
	var dto performance.UpdateDTO
	require.NoError(t, json.Unmarshal([]byte(`{
		"year": 2024,
		"quarter": 3,
		"category": " Kerjasama ",
		"indicator": "MoU Internasional",
		"target_value": 10,
		"achieved_value": "7.5",
		"unit": " ",
		"status": "Achieved"
	}`), &dto))

	errs, ok := dto.Ok()
	require.True(t, ok, errs)
	require.Equal(t, "Kerjasama", dto.Category)
	require.Equal(t, "achieved", dto.Status)
	require.Nil(t, dto.Unit)

	i := dto.ToEntity()
	require.Equal(t, performance.StatusAchieved, i.Status())
	require.Equal(t, "7.5", i.Details().Achieved.Decimal.String())
}

func TestUpdateDTO_Errors(t *testing.T) {
	dto := performance.UpdateDTO{
		Quarter:  5,
		Target:   dec("-1"),
		Status:   "done",
		Category: "Keuangan",
	}
	errs, ok := dto.Ok()
	require.False(t, ok)
	require.Contains(t, errs, "year")
	require.Contains(t, errs, "quarter")
	require.Contains(t, errs, "indicator")
	require.Contains(t, errs, "status")
	require.Contains(t, errs, "target_value")
}

func TestUpdateDTO_ApplyKeepsStatus(t *testing.T) {
	current := performance.New(performance.Details{Year: 2024, Quarter: 1, Category: "K", Indicator: "I", Status: performance.StatusAchieved})
	dto := performance.UpdateDTO{Year: 2024, Quarter: 2, Category: "K", Indicator: "I"}
	next := dto.Apply(current)
	require.Equal(t, performance.StatusAchieved, next.Status())
	require.Equal(t, 2, next.Quarter())
}
