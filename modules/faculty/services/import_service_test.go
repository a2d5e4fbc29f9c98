package services

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/fkunand/faculty-admin/modules/faculty/domain/aggregates/member"
	"github.com/fkunand/faculty-admin/modules/faculty/domain/aggregates/performance"
	"github.com/fkunand/faculty-admin/modules/faculty/domain/ingest"
	"github.com/fkunand/faculty-admin/modules/faculty/testhelpers"
	"github.com/fkunand/faculty-admin/pkg/configuration"
	"github.com/fkunand/faculty-admin/pkg/intl"
	"github.com/fkunand/faculty-admin/pkg/spreadsheet"
)

func importOptions() configuration.ImportOptions {
	return configuration.ImportOptions{
		MaxUploadSize:         1024,
		DateOrder:             configuration.DateOrderDMY,
		ErrorPreviewLimit:     10,
		LecturerScanWindow:    20,
		StaffScanWindow:       10,
		PerformanceScanWindow: 10,
	}
}

const lecturerCSV = "DATA DOSEN\nFakultas Kedokteran\nNama,NIDN,NIDK,Tanggal Lahir\n" +
	"Dr. Budi Santoso,0001056301,,15-01-1980\n" +
	"Dr. Siti Nurhaliza,0002078402,8800123,\n" +
	"Dr. Tanpa Nomor,-,,\n" +
	",,,\n"

func TestImportService_LecturerCSV(t *testing.T) {
	repo := testhelpers.NewMemoryRepository()
	bus, events := testhelpers.NewEventRecorder()
	svc := NewImportService(repo, testhelpers.NewPerformanceRepository(), bus, nil, importOptions())

	res, err := svc.Import(context.Background(), ImportRequest{
		Target:   TargetLecturer,
		FileName: "dosen.csv",
		Data:     []byte(lecturerCSV),
	})
	require.NoError(t, err)
	require.Equal(t, 3, res.HeaderRow)
	require.Equal(t, 2, res.Inserted)
	require.Equal(t, 1, res.Failed)
	require.Equal(t, "Baris 6: Dr. Tanpa Nomor - Nomor identifikasi (NIP/NIDN/NIDK/NUPTK) tidak ditemukan", res.Errors[0].Error())

	budi, err := repo.GetByNaturalKey(context.Background(), member.KindLecturer, "0001056301")
	require.NoError(t, err)
	require.Equal(t, "1980-01-15", *member.FormatDate(budi.Attributes().BirthDate))

	siti, err := repo.GetByNaturalKey(context.Background(), member.KindLecturer, "0002078402")
	require.NoError(t, err)
	require.Equal(t, member.IdentificationNIDN, siti.IdentificationType())

	all := events.All()
	require.Len(t, all, 1)
	imported, ok := all[0].(ingest.ImportedEvent)
	require.True(t, ok)
	require.Equal(t, "lecturer", imported.Target)
	require.Equal(t, "system", imported.Actor)
	require.Equal(t, 2, imported.Succeeded())
	require.Equal(t, []string{"Baris 6: Dr. Tanpa Nomor - Nomor identifikasi (NIP/NIDN/NIDK/NUPTK) tidak ditemukan"}, imported.Errors)
	require.NotEmpty(t, imported.FileType)
}

func TestImportService_ReimportIsIdempotent(t *testing.T) {
	repo := testhelpers.NewMemoryRepository()
	bus, _ := testhelpers.NewEventRecorder()
	svc := NewImportService(repo, testhelpers.NewPerformanceRepository(), bus, nil, importOptions())
	req := ImportRequest{Target: TargetLecturer, FileName: "dosen.csv", Data: []byte(lecturerCSV)}

	_, err := svc.Import(context.Background(), req)
	require.NoError(t, err)
	res, err := svc.Import(context.Background(), req)
	require.NoError(t, err)
	require.Zero(t, res.Inserted)
	require.Equal(t, 2, res.Updated)

	count, err := repo.Count(context.Background(), nil)
	require.NoError(t, err)
	require.Equal(t, int64(2), count)
}

func TestImportService_StoreErrorsBecomeRowErrors(t *testing.T) {
	repo := testhelpers.NewMemoryRepository()
	repo.FailFor("0001056301", errors.New("connection reset"))
	bus, _ := testhelpers.NewEventRecorder()
	svc := NewImportService(repo, testhelpers.NewPerformanceRepository(), bus, nil, importOptions())

	res, err := svc.Import(context.Background(), ImportRequest{
		Target: TargetLecturer, FileName: "dosen.csv", Data: []byte(lecturerCSV),
	})
	require.NoError(t, err)
	require.Equal(t, 1, res.Inserted)
	require.Equal(t, 2, res.Failed)
	require.Equal(t, "Baris 4: Dr. Budi Santoso - connection reset", res.Errors[0].Error())
}

func TestImportService_Rejections(t *testing.T) {
	cases := []struct {
		name string
		req  ImportRequest
		is   func(t *testing.T, err error)
	}{
		{
			name: "empty file",
			req:  ImportRequest{Target: TargetLecturer, FileName: "a.csv"},
			is:   func(t *testing.T, err error) { require.ErrorIs(t, err, ErrEmptyFile) },
		},
		{
			name: "too large",
			req:  ImportRequest{Target: TargetLecturer, FileName: "a.csv", Data: []byte(strings.Repeat("x", 2048))},
			is:   func(t *testing.T, err error) { require.ErrorIs(t, err, ErrFileTooLarge) },
		},
		{
			name: "unsupported extension",
			req:  ImportRequest{Target: TargetLecturer, FileName: "a.pdf", Data: []byte("Nama,NIP\n")},
			is:   func(t *testing.T, err error) { require.ErrorIs(t, err, spreadsheet.ErrUnsupportedFormat) },
		},
		{
			name: "header not found",
			req:  ImportRequest{Target: TargetStaff, FileName: "a.csv", Data: []byte("Pegawai,Nomor\nBudi,1\n")},
			is: func(t *testing.T, err error) {
				var hnf *ingest.HeaderNotFoundError
				require.True(t, errors.As(err, &hnf))
				require.Equal(t, 10, hnf.Window)
			},
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			repo := testhelpers.NewMemoryRepository()
			bus, events := testhelpers.NewEventRecorder()
			svc := NewImportService(repo, testhelpers.NewPerformanceRepository(), bus, nil, importOptions())

			res, err := svc.Import(context.Background(), tc.req)
			require.Nil(t, res)
			tc.is(t, err)
			require.Zero(t, repo.Upserts())

			all := events.All()
			require.Len(t, all, 1)
			failed, ok := all[0].(ingest.ImportFailedEvent)
			require.True(t, ok)
			require.Equal(t, intl.LocalizeError(nil, err), failed.Reason)
		})
	}
}

func TestImportService_UnknownTarget(t *testing.T) {
	bus, events := testhelpers.NewEventRecorder()
	svc := NewImportService(testhelpers.NewMemoryRepository(), testhelpers.NewPerformanceRepository(), bus, nil, importOptions())

	_, err := svc.Import(context.Background(), ImportRequest{Target: "alumni", FileName: "a.csv", Data: []byte("x")})
	require.ErrorIs(t, err, ErrUnknownTarget)
	require.Empty(t, events.All())
}

func TestParseImportTarget(t *testing.T) {
	for in, want := range map[string]ImportTarget{
		"dosen":       TargetLecturer,
		" Lecturers ": TargetLecturer,
		"tendik":      TargetStaff,
		"staff":       TargetStaff,
		"kinerja":     TargetPerformance,
		"performance": TargetPerformance,
		"CAPAIAN":     TargetPerformance,
	} {
		got, err := ParseImportTarget(in)
		require.NoError(t, err, in)
		require.Equal(t, want, got, in)
	}
	_, err := ParseImportTarget("alumni")
	require.ErrorIs(t, err, ErrUnknownTarget)
}

const performanceCSV = "CAPAIAN KINERJA FAKULTAS\n\n" +
	"Tahun;Kuartal;Kategori;Indikator;Target;Capaian;Satuan;Status;Catatan\n" +
	"2024;TW 2;Pendidikan;Jumlah Lulusan Tepat Waktu;85;80,5;%;sesuai target;\n" +
	";;Penelitian;Publikasi Internasional;50;45;artikel;;Termasuk prosiding\n" +
	"2024;7;Pengabdian;Program Desa Binaan;10;4;desa;;\n" +
	";;;;;;;;\n"

func TestImportService_PerformanceCSV(t *testing.T) {
	perf := testhelpers.NewPerformanceRepository()
	bus, events := testhelpers.NewEventRecorder()
	svc := NewImportService(testhelpers.NewMemoryRepository(), perf, bus, nil, importOptions())
	svc.now = func() time.Time { return time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC) }

	req := ImportRequest{Target: TargetPerformance, FileName: "kinerja.csv", Data: []byte(performanceCSV)}
	res, err := svc.Import(context.Background(), req)
	require.NoError(t, err)
	require.Equal(t, 3, res.HeaderRow)
	require.Equal(t, 2, res.Inserted)
	require.Equal(t, 1, res.Failed)
	require.Equal(t, `Baris 6: Program Desa Binaan - Kuartal "7" tidak valid, gunakan 1 sampai 4`, res.Errors[0].Error())

	items, err := perf.GetPaginated(context.Background(), nil)
	require.NoError(t, err)
	require.Len(t, items, 2)
	require.Equal(t, "2024/Q2/Pendidikan/Jumlah Lulusan Tepat Waktu", items[0].NaturalKey())
	require.Equal(t, performance.StatusOnTrack, items[0].Status())
	require.Equal(t, "80.5", items[0].Details().Achieved.Decimal.String())
	require.Equal(t, "2025/Q1/Penelitian/Publikasi Internasional", items[1].NaturalKey())
	require.Equal(t, performance.StatusPending, items[1].Status())

	imported, ok := events.All()[0].(ingest.ImportedEvent)
	require.True(t, ok)
	require.Equal(t, "performance", imported.Target)

	res, err = svc.Import(context.Background(), req)
	require.NoError(t, err)
	require.Zero(t, res.Inserted)
	require.Equal(t, 2, res.Updated)
	require.Equal(t, 2, perf.Len())
}

func TestTemplates_RoundTripThroughImport(t *testing.T) {
	templates := NewTemplateService()
	opts := importOptions()
	opts.MaxUploadSize = 1 << 20

	for _, target := range []ImportTarget{TargetLecturer, TargetStaff, TargetPerformance} {
		tpl, err := templates.Template(target)
		require.NoError(t, err)

		bus, _ := testhelpers.NewEventRecorder()
		svc := NewImportService(testhelpers.NewMemoryRepository(), testhelpers.NewPerformanceRepository(), bus, nil, opts)
		res, err := svc.Import(context.Background(), ImportRequest{Target: target, FileName: tpl.FileName, Data: tpl.Data})
		require.NoError(t, err, target)
		require.Equal(t, 2, res.Inserted, target)
		require.Zero(t, res.Failed, target)
	}

	_, err := templates.Template("alumni")
	require.ErrorIs(t, err, ErrUnknownTarget)
}

func TestMemberFromRecord_StaffKeyedOnNIP(t *testing.T) {
	nip := "197504032000122001"
	birth := "1975-04-03"
	m, err := memberFromRecord(member.KindStaff, ingest.Record{
		FullName:             "NAMA LENGKAP",
		IdentificationType:   ingest.IdentificationNIP,
		IdentificationNumber: nip,
		NIP:                  &nip,
		BirthDate:            &birth,
	})
	require.NoError(t, err)
	require.Equal(t, nip, m.NaturalKey())
	require.Equal(t, 1975, m.Attributes().BirthDate.Year())
}
