package persistence

import (
	"github.com/fkunand/faculty-admin/modules/logging/domain/entities/activitylog"
	"github.com/fkunand/faculty-admin/modules/logging/domain/entities/uploadlog"
	"github.com/fkunand/faculty-admin/modules/logging/infrastructure/persistence/models"
)

func toDBUploadLog(log *uploadlog.UploadLog) *models.UploadLog {
	return &models.UploadLog{
		ID:           log.ID,
		FileName:     log.FileName,
		FileType:     log.FileType,
		Target:       log.Target,
		RecordsCount: log.RecordsCount,
		Status:       string(log.Status),
		ErrorMessage: log.ErrorMessage,
		UploadedBy:   log.UploadedBy,
		CreatedAt:    log.CreatedAt,
	}
}

func toDomainUploadLog(dbLog *models.UploadLog) *uploadlog.UploadLog {
	return &uploadlog.UploadLog{
		ID:           dbLog.ID,
		FileName:     dbLog.FileName,
		FileType:     dbLog.FileType,
		Target:       dbLog.Target,
		RecordsCount: dbLog.RecordsCount,
		Status:       uploadlog.Status(dbLog.Status),
		ErrorMessage: dbLog.ErrorMessage,
		UploadedBy:   dbLog.UploadedBy,
		CreatedAt:    dbLog.CreatedAt,
	}
}

// nullJSON keeps an absent payload NULL instead of an empty jsonb value.
func nullJSON(raw []byte) []byte {
	if len(raw) == 0 {
		return nil
	}
	return raw
}

func toDBActivityLog(log *activitylog.ActivityLog) *models.ActivityLog {
	return &models.ActivityLog{
		ID:        log.ID,
		Actor:     log.Actor,
		Action:    log.Action,
		TableName: log.TableName,
		RecordID:  log.RecordID,
		OldData:   nullJSON(log.OldData),
		NewData:   nullJSON(log.NewData),
		CreatedAt: log.CreatedAt,
	}
}

func toDomainActivityLog(dbLog *models.ActivityLog) *activitylog.ActivityLog {
	return &activitylog.ActivityLog{
		ID:        dbLog.ID,
		Actor:     dbLog.Actor,
		Action:    dbLog.Action,
		TableName: dbLog.TableName,
		RecordID:  dbLog.RecordID,
		OldData:   dbLog.OldData,
		NewData:   dbLog.NewData,
		CreatedAt: dbLog.CreatedAt,
	}
}
