package services

import (
	"context"
	"errors"

	"github.com/fkunand/faculty-admin/modules/logging/domain/entities/activitylog"
	"github.com/fkunand/faculty-admin/modules/logging/domain/entities/uploadlog"
	"github.com/fkunand/faculty-admin/pkg/composables"
)

type LogsService struct {
	uploadRepo   uploadlog.Repository
	activityRepo activitylog.Repository
}

func NewLogsService(
	uploadRepo uploadlog.Repository,
	activityRepo activitylog.Repository,
) *LogsService {
	return &LogsService{
		uploadRepo:   uploadRepo,
		activityRepo: activityRepo,
	}
}

func (s *LogsService) ListUploadLogs(
	ctx context.Context,
	params *uploadlog.FindParams,
) ([]*uploadlog.UploadLog, int64, error) {
	if params == nil {
		params = &uploadlog.FindParams{}
	}

	logs, err := s.uploadRepo.List(ctx, params)
	if err != nil {
		return nil, 0, err
	}
	count, err := s.uploadRepo.Count(ctx, params)
	if err != nil {
		return nil, 0, err
	}
	return logs, count, nil
}

func (s *LogsService) ListActivityLogs(
	ctx context.Context,
	params *activitylog.FindParams,
) ([]*activitylog.ActivityLog, int64, error) {
	if params == nil {
		params = &activitylog.FindParams{}
	}

	logs, err := s.activityRepo.List(ctx, params)
	if err != nil {
		return nil, 0, err
	}
	count, err := s.activityRepo.Count(ctx, params)
	if err != nil {
		return nil, 0, err
	}
	return logs, count, nil
}

func (s *LogsService) CreateUploadLog(ctx context.Context, log *uploadlog.UploadLog) error {
	if log == nil {
		return errors.New("upload log payload is required")
	}
	return s.uploadRepo.Create(ctx, log)
}

func (s *LogsService) CreateActivityLog(ctx context.Context, log *activitylog.ActivityLog) error {
	if log == nil {
		return errors.New("activity log payload is required")
	}
	return s.activityRepo.Create(ctx, log)
}

// RecordUpload stores an upload log together with its activity entry in one
// transaction.
func (s *LogsService) RecordUpload(ctx context.Context, upload *uploadlog.UploadLog, activity *activitylog.ActivityLog) error {
	return composables.InTx(ctx, func(txCtx context.Context) error {
		if err := s.CreateUploadLog(txCtx, upload); err != nil {
			return err
		}
		if activity == nil {
			return nil
		}
		return s.CreateActivityLog(txCtx, activity)
	})
}
