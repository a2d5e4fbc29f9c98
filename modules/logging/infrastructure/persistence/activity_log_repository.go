package persistence

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/fkunand/faculty-admin/modules/logging/domain/entities/activitylog"
	"github.com/fkunand/faculty-admin/modules/logging/infrastructure/persistence/models"
	"github.com/fkunand/faculty-admin/pkg/composables"
	"github.com/fkunand/faculty-admin/pkg/repo"
)

type ActivityLogRepository struct{}

func NewActivityLogRepository() activitylog.Repository {
	return &ActivityLogRepository{}
}

func (r *ActivityLogRepository) List(ctx context.Context, params *activitylog.FindParams) ([]*activitylog.ActivityLog, error) {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return nil, err
	}

	where, args := buildActivityLogFilters(params)
	query := `
		SELECT id, actor, action, table_name, record_id, old_data, new_data, created_at
		FROM activity_logs` + whereClause(where) + `
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

	var results []*activitylog.ActivityLog
	for rows.Next() {
		var row models.ActivityLog
		if err := rows.Scan(
			&row.ID,
			&row.Actor,
			&row.Action,
			&row.TableName,
			&row.RecordID,
			&row.OldData,
			&row.NewData,
			&row.CreatedAt,
		); err != nil {
			return nil, err
		}
		results = append(results, toDomainActivityLog(&row))
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return results, nil
}

func (r *ActivityLogRepository) Count(ctx context.Context, params *activitylog.FindParams) (int64, error) {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return 0, err
	}
	where, args := buildActivityLogFilters(params)

	var count int64
	if err := tx.QueryRow(ctx, `SELECT COUNT(*) FROM activity_logs`+whereClause(where), args...).Scan(&count); err != nil {
		return 0, err
	}
	return count, nil
}

func (r *ActivityLogRepository) Create(ctx context.Context, log *activitylog.ActivityLog) error {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return err
	}

	dbRow := toDBActivityLog(log)
	if dbRow.CreatedAt.IsZero() {
		dbRow.CreatedAt = time.Now()
	}

	return tx.QueryRow(
		ctx,
		`INSERT INTO activity_logs (actor, action, table_name, record_id, old_data, new_data, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)
		 RETURNING id, created_at`,
		dbRow.Actor,
		dbRow.Action,
		dbRow.TableName,
		dbRow.RecordID,
		dbRow.OldData,
		dbRow.NewData,
		dbRow.CreatedAt,
	).Scan(&log.ID, &log.CreatedAt)
}

func buildActivityLogFilters(params *activitylog.FindParams) ([]string, []interface{}) {
	var (
		where []string
		args  []interface{}
	)
	if params == nil {
		return where, args
	}

	argPos := 1
	if actor := strings.TrimSpace(params.Actor); actor != "" {
		where = append(where, fmt.Sprintf("actor = $%d", argPos))
		args = append(args, actor)
		argPos++
	}
	if table := strings.TrimSpace(params.TableName); table != "" {
		where = append(where, fmt.Sprintf("table_name = $%d", argPos))
		args = append(args, table)
		argPos++
	}
	if params.RecordID != nil {
		where = append(where, fmt.Sprintf("record_id = $%d", argPos))
		args = append(args, *params.RecordID)
		argPos++
	}
	if action := strings.TrimSpace(params.Action); action != "" {
		where = append(where, fmt.Sprintf("action ILIKE $%d", argPos))
		args = append(args, "%"+action+"%")
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
