package handlers

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/fkunand/faculty-admin/modules/faculty/domain/aggregates/member"
	"github.com/fkunand/faculty-admin/modules/faculty/domain/aggregates/performance"
	"github.com/fkunand/faculty-admin/modules/faculty/domain/ingest"
	"github.com/fkunand/faculty-admin/modules/logging/domain/entities/activitylog"
	"github.com/fkunand/faculty-admin/modules/logging/domain/entities/uploadlog"
	"github.com/fkunand/faculty-admin/modules/logging/services"
	"github.com/fkunand/faculty-admin/pkg/application"
	"github.com/fkunand/faculty-admin/pkg/composables"
)

const (
	membersTable     = "faculty_members"
	indicatorsTable  = "performance_indicators"
	performanceLabel = "kinerja"
)

type logWriter interface {
	RecordUpload(ctx context.Context, upload *uploadlog.UploadLog, activity *activitylog.ActivityLog) error
	CreateActivityLog(ctx context.Context, log *activitylog.ActivityLog) error
}

// FacultyEventsHandler turns faculty member, indicator and import events into
// upload and activity logs.
type FacultyEventsHandler struct {
	app     application.Application
	service logWriter
	logger  *logrus.Logger
}

func NewFacultyEventsHandler(app application.Application, service logWriter) *FacultyEventsHandler {
	return &FacultyEventsHandler{
		app:     app,
		service: service,
		logger:  app.Logger(),
	}
}

func RegisterFacultyEventHandlers(app application.Application) {
	handler := NewFacultyEventsHandler(app, app.Service(services.LogsService{}).(*services.LogsService))
	handler.Subscribe()
}

func (h *FacultyEventsHandler) Subscribe() {
	bus := h.app.EventPublisher()
	bus.Subscribe(h.onImported)
	bus.Subscribe(h.onImportFailed)
	bus.Subscribe(h.onCreated)
	bus.Subscribe(h.onUpdated)
	bus.Subscribe(h.onDeleted)
	bus.Subscribe(h.onIndicatorCreated)
	bus.Subscribe(h.onIndicatorUpdated)
	bus.Subscribe(h.onIndicatorDeleted)
}

func (h *FacultyEventsHandler) newContext() context.Context {
	return composables.WithPool(context.Background(), h.app.DB())
}

// kindLabel is the name staff use for each member kind in the activity feed.
func kindLabel(kind member.Kind) string {
	if kind == member.KindStaff {
		return "tendik"
	}
	return "dosen"
}

func targetLabel(target string) string {
	if target == "performance" {
		return performanceLabel
	}
	return kindLabel(member.Kind(target))
}

func targetTable(target string) string {
	if target == "performance" {
		return indicatorsTable
	}
	return membersTable
}

func (h *FacultyEventsHandler) onImported(event ingest.ImportedEvent) {
	succeeded := event.Succeeded()
	upload := &uploadlog.UploadLog{
		FileName:     event.FileName,
		FileType:     event.FileType,
		Target:       event.Target,
		RecordsCount: succeeded,
		Status:       uploadlog.StatusFor(succeeded),
		ErrorMessage: uploadlog.ErrorSummary(event.Errors),
		UploadedBy:   event.Actor,
		CreatedAt:    event.FinishedAt,
	}
	newData, err := json.Marshal(map[string]any{
		"file_name":     event.FileName,
		"records_count": succeeded,
	})
	if err != nil {
		h.logger.WithError(err).Warn("failed to encode upload activity")
		return
	}
	activity := &activitylog.ActivityLog{
		Actor:     event.Actor,
		Action:    fmt.Sprintf("Upload file %s ke %s", event.FileName, targetLabel(event.Target)),
		TableName: targetTable(event.Target),
		NewData:   newData,
		CreatedAt: event.FinishedAt,
	}
	if err := h.service.RecordUpload(h.newContext(), upload, activity); err != nil {
		h.logger.WithError(err).
			WithField("file", event.FileName).
			Warn("failed to persist upload log")
	}
}

func (h *FacultyEventsHandler) onImportFailed(event ingest.ImportFailedEvent) {
	reason := event.Reason
	upload := &uploadlog.UploadLog{
		FileName:     event.FileName,
		FileType:     event.FileType,
		Target:       event.Target,
		Status:       uploadlog.StatusFailed,
		ErrorMessage: &reason,
		UploadedBy:   event.Actor,
		CreatedAt:    event.FailedAt,
	}
	if err := h.service.RecordUpload(h.newContext(), upload, nil); err != nil {
		h.logger.WithError(err).
			WithField("file", event.FileName).
			Warn("failed to persist upload log")
	}
}

func (h *FacultyEventsHandler) onCreated(event member.CreatedEvent) {
	h.recordMember(event.Actor, "Menambah data", nil, &event.Result)
}

func (h *FacultyEventsHandler) onUpdated(event member.UpdatedEvent) {
	h.recordMember(event.Actor, "Mengupdate data", &event.Old, &event.Result)
}

func (h *FacultyEventsHandler) onDeleted(event member.DeletedEvent) {
	h.recordMember(event.Actor, "Menghapus data", &event.Result, nil)
}

func (h *FacultyEventsHandler) onIndicatorCreated(event performance.CreatedEvent) {
	h.recordIndicator(event.Actor, "Menambahkan", nil, &event.Result)
}

func (h *FacultyEventsHandler) onIndicatorUpdated(event performance.UpdatedEvent) {
	h.recordIndicator(event.Actor, "Mengupdate", &event.Old, &event.Result)
}

func (h *FacultyEventsHandler) onIndicatorDeleted(event performance.DeletedEvent) {
	h.recordIndicator(event.Actor, "Menghapus", &event.Result, nil)
}

func (h *FacultyEventsHandler) recordMember(actor, verb string, old, current *member.Member) {
	subject := current
	if subject == nil {
		subject = old
	}
	entry := &activitylog.ActivityLog{
		Actor:     actor,
		Action:    fmt.Sprintf("%s %s: %s", verb, kindLabel(subject.Kind()), subject.FullName()),
		TableName: membersTable,
	}
	var oldSnap, newSnap any
	if old != nil {
		oldSnap = old.Snapshot()
	}
	if current != nil {
		newSnap = current.Snapshot()
	}
	h.recordActivity(entry, subject.ID(), oldSnap, newSnap)
}

func (h *FacultyEventsHandler) recordIndicator(actor, verb string, old, current *performance.Indicator) {
	subject := current
	if subject == nil {
		subject = old
	}
	entry := &activitylog.ActivityLog{
		Actor:     actor,
		Action:    fmt.Sprintf("%s indikator kinerja: %s", verb, subject.Name()),
		TableName: indicatorsTable,
	}
	var oldSnap, newSnap any
	if old != nil {
		oldSnap = old.Snapshot()
	}
	if current != nil {
		newSnap = current.Snapshot()
	}
	h.recordActivity(entry, subject.ID(), oldSnap, newSnap)
}

func (h *FacultyEventsHandler) recordActivity(entry *activitylog.ActivityLog, id uint, old, current any) {
	entry.RecordID = &id

	var err error
	if entry.OldData, err = snapshotJSON(old); err != nil {
		h.logger.WithError(err).WithField("table", entry.TableName).Warn("failed to encode snapshot")
		return
	}
	if entry.NewData, err = snapshotJSON(current); err != nil {
		h.logger.WithError(err).WithField("table", entry.TableName).Warn("failed to encode snapshot")
		return
	}

	if err := h.service.CreateActivityLog(h.newContext(), entry); err != nil {
		h.logger.WithError(err).
			WithFields(logrus.Fields{"table": entry.TableName, "record_id": id}).
			Warn("failed to persist activity log")
	}
}

func snapshotJSON(snapshot any) (json.RawMessage, error) {
	if snapshot == nil {
		return nil, nil
	}
	return json.Marshal(snapshot)
}
