package mappers

import (
	"encoding/json"
	"time"

	"github.com/fkunand/faculty-admin/modules/logging/domain/entities/activitylog"
	"github.com/fkunand/faculty-admin/modules/logging/domain/entities/uploadlog"
)

type UploadLog struct {
	ID           uint    `json:"id"`
	FileName     string  `json:"file_name"`
	FileType     string  `json:"file_type"`
	Target       string  `json:"target"`
	RecordsCount int     `json:"records_count"`
	Status       string  `json:"status"`
	ErrorMessage *string `json:"error_message"`
	UploadedBy   string  `json:"uploaded_by"`
	CreatedAt    string  `json:"created_at"`
}

type ActivityLog struct {
	ID        uint            `json:"id"`
	Actor     string          `json:"actor"`
	Action    string          `json:"action"`
	TableName string          `json:"table_name"`
	RecordID  *uint           `json:"record_id"`
	OldData   json.RawMessage `json:"old_data"`
	NewData   json.RawMessage `json:"new_data"`
	CreatedAt string          `json:"created_at"`
}

func UploadLogToResponse(log *uploadlog.UploadLog) UploadLog {
	return UploadLog{
		ID:           log.ID,
		FileName:     log.FileName,
		FileType:     log.FileType,
		Target:       log.Target,
		RecordsCount: log.RecordsCount,
		Status:       string(log.Status),
		ErrorMessage: log.ErrorMessage,
		UploadedBy:   log.UploadedBy,
		CreatedAt:    log.CreatedAt.Format(time.RFC3339),
	}
}

// rawOrNull keeps an absent payload as JSON null.
func rawOrNull(raw json.RawMessage) json.RawMessage {
	if len(raw) == 0 {
		return json.RawMessage("null")
	}
	return raw
}

func ActivityLogToResponse(log *activitylog.ActivityLog) ActivityLog {
	return ActivityLog{
		ID:        log.ID,
		Actor:     log.Actor,
		Action:    log.Action,
		TableName: log.TableName,
		RecordID:  log.RecordID,
		OldData:   rawOrNull(log.OldData),
		NewData:   rawOrNull(log.NewData),
		CreatedAt: log.CreatedAt.Format(time.RFC3339),
	}
}
