package persistence

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/fkunand/faculty-admin/modules/logging/domain/entities/uploadlog"
	"github.com/fkunand/faculty-admin/modules/logging/infrastructure/persistence/models"
	"github.com/fkunand/faculty-admin/pkg/composables"
	"github.com/fkunand/faculty-admin/pkg/repo"
)

type UploadLogRepository struct{}

func NewUploadLogRepository() uploadlog.Repository {
	return &UploadLogRepository{}
}

func (r *UploadLogRepository) List(ctx context.Context, params *uploadlog.FindParams) ([]*uploadlog.UploadLog, error) {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return nil, err
	}

	where, args := buildUploadLogFilters(params)
	query := `
		SELECT id, file_name, file_type, target, records_count, status, error_message, uploaded_by, created_at
		FROM upload_logs` + whereClause(where) + `
		ORDER BY created_at DESC, id DESC
	`
	if params != nil {
		query += " " + repo.FormatLimitOffset(params.Limit, params.Offset)
	}

	rows, err := tx.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var results []*uploadlog.UploadLog
	for rows.Next() {
		var row models.UploadLog
		if err := rows.Scan(
			&row.ID,
			&row.FileName,
			&row.FileType,
			&row.Target,
			&row.RecordsCount,
			&row.Status,
			&row.ErrorMessage,
			&row.UploadedBy,
			&row.CreatedAt,
		); err != nil {
			return nil, err
		}
		results = append(results, toDomainUploadLog(&row))
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return results, nil
}

func (r *UploadLogRepository) Count(ctx context.Context, params *uploadlog.FindParams) (int64, error) {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return 0, err
	}
	where, args := buildUploadLogFilters(params)

	var count int64
	if err := tx.QueryRow(ctx, `SELECT COUNT(*) FROM upload_logs`+whereClause(where), args...).Scan(&count); err != nil {
		return 0, err
	}
	return count, nil
}

func (r *UploadLogRepository) Create(ctx context.Context, log *uploadlog.UploadLog) error {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return err
	}

	dbRow := toDBUploadLog(log)
	if dbRow.CreatedAt.IsZero() {
		dbRow.CreatedAt = time.Now()
	}

	return tx.QueryRow(
		ctx,
		`INSERT INTO upload_logs (file_name, file_type, target, records_count, status, error_message, uploaded_by, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		 RETURNING id, created_at`,
		dbRow.FileName,
		dbRow.FileType,
		dbRow.Target,
		dbRow.RecordsCount,
		dbRow.Status,
		dbRow.ErrorMessage,
		dbRow.UploadedBy,
		dbRow.CreatedAt,
	).Scan(&log.ID, &log.CreatedAt)
}

func whereClause(where []string) string {
	if len(where) == 0 {
		return ""
	}
	return " WHERE " + strings.Join(where, " AND ")
}

func buildUploadLogFilters(params *uploadlog.FindParams) ([]string, []interface{}) {
	var (
		where []string
		args  []interface{}
	)
	if params == nil {
		return where, args
	}

	argPos := 1
	if target := strings.TrimSpace(params.Target); target != "" {
		where = append(where, fmt.Sprintf("target = $%d", argPos))
		args = append(args, target)
		argPos++
	}
	if params.Status != "" {
		where = append(where, fmt.Sprintf("status = $%d", argPos))
		args = append(args, string(params.Status))
		argPos++
	}
	if by := strings.TrimSpace(params.UploadedBy); by != "" {
		where = append(where, fmt.Sprintf("uploaded_by ILIKE $%d", argPos))
		args = append(args, "%"+by+"%")
		argPos++
	}
	if params.From != nil && !params.From.IsZero() {
		where = append(where, fmt.Sprintf("created_at >= $%d", argPos))
		args = append(args, *params.From)
		argPos++
	}
	if params.To != nil && !params.To.IsZero() {
		where = append(where, fmt.Sprintf("created_at <= $%d", argPos))
		args = append(args, *params.To)
	}
	return where, args
}
