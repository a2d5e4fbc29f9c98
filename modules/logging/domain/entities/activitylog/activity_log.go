package activitylog

import (
	"context"
	"encoding/json"
	"time"
)

type ActivityLog struct {
	ID        uint
	Actor     string
	Action    string
	TableName string
	RecordID  *uint
	OldData   json.RawMessage
	NewData   json.RawMessage
	CreatedAt time.Time
}

type FindParams struct {
	Actor     string
	TableName string
	RecordID  *uint
	Action    string
	From      *time.Time
	To        *time.Time
	Limit     int
	Offset    int
}

type Repository interface {
	List(ctx context.Context, params *FindParams) ([]*ActivityLog, error)
	Count(ctx context.Context, params *FindParams) (int64, error)
	Create(ctx context.Context, log *ActivityLog) error
}
