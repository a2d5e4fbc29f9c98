package handlers

import (
	"context"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/fkunand/faculty-admin/modules/faculty/domain/aggregates/member"
	"github.com/fkunand/faculty-admin/modules/faculty/domain/aggregates/performance"
	"github.com/fkunand/faculty-admin/modules/faculty/domain/ingest"
	"github.com/fkunand/faculty-admin/modules/logging/domain/entities/activitylog"
	"github.com/fkunand/faculty-admin/modules/logging/domain/entities/uploadlog"
	"github.com/fkunand/faculty-admin/pkg/application"
	"github.com/fkunand/faculty-admin/pkg/eventbus"
)

type stubLogsService struct {
	uploads    []*uploadlog.UploadLog
	activities []*activitylog.ActivityLog
}

func (s *stubLogsService) RecordUpload(ctx context.Context, upload *uploadlog.UploadLog, activity *activitylog.ActivityLog) error {
	s.uploads = append(s.uploads, upload)
	if activity != nil {
		s.activities = append(s.activities, activity)
	}
	return nil
}

func (s *stubLogsService) CreateActivityLog(ctx context.Context, log *activitylog.ActivityLog) error {
	s.activities = append(s.activities, log)
	return nil
}

func newHandler(t *testing.T) (application.Application, *stubLogsService) {
	t.Helper()
	app := application.New(&application.ApplicationOptions{
		EventBus: eventbus.NewEventPublisher(nil),
	})
	svc := &stubLogsService{}
	NewFacultyEventsHandler(app, svc).Subscribe()
	return app, svc
}

func TestFacultyEventsHandler_ImportedWritesUploadAndActivity(t *testing.T) {
	app, svc := newHandler(t)
	finished := time.Date(2026, 10, 1, 9, 0, 0, 0, time.UTC)

	app.EventPublisher().Publish(ingest.ImportedEvent{
		Actor:      "admin",
		Target:     "lecturer",
		FileName:   "dosen.xlsx",
		FileType:   "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet",
		Inserted:   2,
		Updated:    1,
		Failed:     4,
		Errors:     []string{"Baris 4: a", "Baris 5: b", "Baris 6: c", "Baris 7: d"},
		FinishedAt: finished,
	})

	require.Len(t, svc.uploads, 1)
	upload := svc.uploads[0]
	require.Equal(t, uploadlog.StatusCompleted, upload.Status)
	require.Equal(t, 3, upload.RecordsCount)
	require.Equal(t, "lecturer", upload.Target)
	require.Equal(t, "admin", upload.UploadedBy)
	require.Equal(t, "Baris 4: a; Baris 5: b; Baris 6: c", *upload.ErrorMessage)
	require.Equal(t, finished, upload.CreatedAt)

	require.Len(t, svc.activities, 1)
	activity := svc.activities[0]
	require.Equal(t, "Upload file dosen.xlsx ke dosen", activity.Action)
	require.Equal(t, "faculty_members", activity.TableName)
	require.JSONEq(t, `{"file_name":"dosen.xlsx","records_count":3}`, string(activity.NewData))
}

func TestFacultyEventsHandler_ImportWithoutStoredRowsFails(t *testing.T) {
	app, svc := newHandler(t)

	app.EventPublisher().Publish(ingest.ImportedEvent{
		Actor:    "admin",
		Target:   "staff",
		FileName: "tendik.csv",
		Failed:   1,
		Errors:   []string{"Baris 10: Budi - Nomor identifikasi (NIP/NIDN/NIDK/NUPTK) tidak ditemukan"},
	})

	require.Len(t, svc.uploads, 1)
	require.Equal(t, uploadlog.StatusFailed, svc.uploads[0].Status)
	require.Zero(t, svc.uploads[0].RecordsCount)
	require.Equal(t, "Upload file tendik.csv ke tendik", svc.activities[0].Action)
}

func TestFacultyEventsHandler_ImportFailed(t *testing.T) {
	app, svc := newHandler(t)

	app.EventPublisher().Publish(ingest.ImportFailedEvent{
		Actor:    "system",
		Target:   "staff",
		FileName: "tendik.pdf",
		Reason:   "Format file tidak didukung",
	})

	require.Len(t, svc.uploads, 1)
	require.Equal(t, uploadlog.StatusFailed, svc.uploads[0].Status)
	require.Equal(t, "Format file tidak didukung", *svc.uploads[0].ErrorMessage)
	require.Empty(t, svc.activities)
}

func TestFacultyEventsHandler_MemberChanges(t *testing.T) {
	app, svc := newHandler(t)

	now := time.Now()
	old := member.Hydrate(5, member.KindLecturer, "0001056301", "Dr. Budi", member.IdentificationNIDN,
		"0001056301", member.Attributes{}, true, now, now)
	current := member.Hydrate(5, member.KindLecturer, "0001056301", "Prof. Budi", member.IdentificationNIDN,
		"0001056301", member.Attributes{}, true, now, now)

	app.EventPublisher().Publish(member.CreatedEvent{Actor: "admin", Result: old})
	app.EventPublisher().Publish(member.UpdatedEvent{Actor: "admin", Old: old, Result: current})
	app.EventPublisher().Publish(member.DeletedEvent{Actor: "admin", Result: current})

	require.Len(t, svc.activities, 3)

	created := svc.activities[0]
	require.Equal(t, "Menambah data dosen: Dr. Budi", created.Action)
	require.Equal(t, uint(5), *created.RecordID)
	require.Empty(t, created.OldData)

	updated := svc.activities[1]
	require.Equal(t, "Mengupdate data dosen: Prof. Budi", updated.Action)
	var before, after map[string]any
	require.NoError(t, json.Unmarshal(updated.OldData, &before))
	require.NoError(t, json.Unmarshal(updated.NewData, &after))
	require.Equal(t, "Dr. Budi", before["full_name"])
	require.Equal(t, "Prof. Budi", after["full_name"])

	deleted := svc.activities[2]
	require.True(t, strings.HasPrefix(deleted.Action, "Menghapus data dosen"))
	require.NotEmpty(t, deleted.OldData)
	require.Empty(t, deleted.NewData)
}

func TestFacultyEventsHandler_PerformanceImport(t *testing.T) {
	app, svc := newHandler(t)

	app.EventPublisher().Publish(ingest.ImportedEvent{
		Actor:    "admin",
		Target:   "performance",
		FileName: "kinerja.xlsx",
		Inserted: 9,
	})

	require.Len(t, svc.uploads, 1)
	require.Equal(t, "performance", svc.uploads[0].Target)
	require.Equal(t, uploadlog.StatusCompleted, svc.uploads[0].Status)
	require.Equal(t, "Upload file kinerja.xlsx ke kinerja", svc.activities[0].Action)
	require.Equal(t, "performance_indicators", svc.activities[0].TableName)
}

func TestFacultyEventsHandler_IndicatorChanges(t *testing.T) {
	app, svc := newHandler(t)

	now := time.Now()
	details := performance.Details{
		Year:      2024,
		Quarter:   1,
		Category:  "Penelitian",
		Indicator: "Publikasi Internasional",
		Target:    decimal.NewNullDecimal(decimal.NewFromInt(50)),
		Achieved:  decimal.NewNullDecimal(decimal.NewFromInt(45)),
		Status:    performance.StatusOnTrack,
	}
	old := performance.Hydrate(3, details, now, now)
	details.Status = performance.StatusAchieved
	current := performance.Hydrate(3, details, now, now)

	app.EventPublisher().Publish(performance.CreatedEvent{Actor: "admin", Result: old})
	app.EventPublisher().Publish(performance.UpdatedEvent{Actor: "admin", Old: old, Result: current})
	app.EventPublisher().Publish(performance.DeletedEvent{Actor: "admin", Result: current})

	require.Len(t, svc.activities, 3)
	require.Equal(t, "Menambahkan indikator kinerja: Publikasi Internasional", svc.activities[0].Action)
	require.Equal(t, "performance_indicators", svc.activities[0].TableName)
	require.Equal(t, uint(3), *svc.activities[0].RecordID)
	require.Empty(t, svc.activities[0].OldData)

	var before, after map[string]any
	require.NoError(t, json.Unmarshal(svc.activities[1].OldData, &before))
	require.NoError(t, json.Unmarshal(svc.activities[1].NewData, &after))
	require.Equal(t, "on_track", before["status"])
	require.Equal(t, "achieved", after["status"])
	require.Equal(t, "90", after["progress"])

	require.Equal(t, "Menghapus indikator kinerja: Publikasi Internasional", svc.activities[2].Action)
	require.Empty(t, svc.activities[2].NewData)
}
