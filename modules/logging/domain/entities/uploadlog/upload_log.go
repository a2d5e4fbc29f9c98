package uploadlog

import (
	"context"
	"strings"
	"time"
)

type Status string

const (
	StatusCompleted Status = "completed"
	StatusFailed    Status = "failed"
)

// errorPreviewSize is how many row errors are kept on a log entry.
const errorPreviewSize = 3

type UploadLog struct {
	ID           uint
	FileName     string
	FileType     string
	Target       string
	RecordsCount int
	Status       Status
	ErrorMessage *string
	UploadedBy   string
	CreatedAt    time.Time
}

// StatusFor reports a run as completed when at least one row was stored.
func StatusFor(succeeded int) Status {
	if succeeded > 0 {
		return StatusCompleted
	}
	return StatusFailed
}

// ErrorSummary joins the first few errors, or returns nil when there are none.
func ErrorSummary(errs []string) *string {
	if len(errs) == 0 {
		return nil
	}
	if len(errs) > errorPreviewSize {
		errs = errs[:errorPreviewSize]
	}
	msg := strings.Join(errs, "; ")
	return &msg
}

type FindParams struct {
	Target     string
	Status     Status
	UploadedBy string
	From       *time.Time
	To         *time.Time
	Limit      int
	Offset     int
}

type Repository interface {
	List(ctx context.Context, params *FindParams) ([]*UploadLog, error)
	Count(ctx context.Context, params *FindParams) (int64, error)
	Create(ctx context.Context, log *UploadLog) error
}
