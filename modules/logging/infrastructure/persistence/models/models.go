package models

import "time"

type UploadLog struct {
	ID           uint
	FileName     string
	FileType     string
	Target       string
	RecordsCount int
	Status       string
	ErrorMessage *string
	UploadedBy   string
	CreatedAt    time.Time
}

type ActivityLog struct {
	ID        uint
	Actor     string
	Action    string
	TableName string
	RecordID  *uint
	OldData   []byte
	NewData   []byte
	CreatedAt time.Time
}
