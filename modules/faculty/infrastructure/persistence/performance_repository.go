package persistence

import (
	"context"
	"errors"
	"fmt"
	"strings"

	gerrors "github.com/go-faster/errors"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/fkunand/faculty-admin/modules/faculty/domain/aggregates/performance"
	"github.com/fkunand/faculty-admin/modules/faculty/infrastructure/persistence/models"
	"github.com/fkunand/faculty-admin/pkg/composables"
	"github.com/fkunand/faculty-admin/pkg/repo"
)

// indicatorColumns are stored from the aggregate; the order matches
// indicatorArgs. Numeric columns travel as text.
var indicatorColumns = []string{
	"year",
	"quarter",
	"category",
	"indicator",
	"target_value",
	"achieved_value",
	"unit",
	"status",
	"notes",
}

func isNumericColumn(col string) bool {
	return col == "target_value" || col == "achieved_value"
}

var indicatorSelect = func() string {
	cols := []string{"id"}
	for _, col := range indicatorColumns {
		if isNumericColumn(col) {
			col += "::text"
		}
		cols = append(cols, col)
	}
	return strings.Join(append(cols, "created_at", "updated_at"), ", ")
}()

func indicatorPlaceholders() string {
	out := make([]string, len(indicatorColumns))
	for i, col := range indicatorColumns {
		out[i] = fmt.Sprintf("$%d", i+1)
		if isNumericColumn(col) {
			out[i] += "::numeric"
		}
	}
	return strings.Join(out, ", ")
}

var (
	insertIndicatorQuery = fmt.Sprintf(
		`INSERT INTO performance_indicators (%s) VALUES (%s) RETURNING %s`,
		strings.Join(indicatorColumns, ", "), indicatorPlaceholders(), indicatorSelect,
	)
	// Values missing from a sheet keep what is stored.
	upsertIndicatorQuery = fmt.Sprintf(
		`INSERT INTO performance_indicators (%s) VALUES (%s)
		ON CONFLICT (year, quarter, category, indicator) DO UPDATE SET
			target_value = COALESCE(EXCLUDED.target_value, performance_indicators.target_value),
			achieved_value = COALESCE(EXCLUDED.achieved_value, performance_indicators.achieved_value),
			unit = COALESCE(EXCLUDED.unit, performance_indicators.unit),
			status = EXCLUDED.status,
			notes = COALESCE(EXCLUDED.notes, performance_indicators.notes),
			updated_at = now()
		RETURNING %s, (xmax = 0) AS inserted`,
		strings.Join(indicatorColumns, ", "), indicatorPlaceholders(), indicatorSelect,
	)
	updateIndicatorQuery = fmt.Sprintf(
		`UPDATE performance_indicators SET %s, updated_at = now() WHERE id = $%d RETURNING %s`,
		indicatorAssignments(), len(indicatorColumns)+1, indicatorSelect,
	)
)

func indicatorAssignments() string {
	out := make([]string, len(indicatorColumns))
	for i, col := range indicatorColumns {
		out[i] = fmt.Sprintf("%s = $%d", col, i+1)
		if isNumericColumn(col) {
			out[i] += "::numeric"
		}
	}
	return strings.Join(out, ", ")
}

func indicatorArgs(i models.PerformanceIndicator) []any {
	return []any{
		i.Year,
		i.Quarter,
		i.Category,
		i.Indicator,
		i.TargetValue,
		i.AchievedValue,
		i.Unit,
		i.Status,
		i.Notes,
	}
}

func indicatorTargets(i *models.PerformanceIndicator, extra ...any) []any {
	targets := []any{
		&i.ID,
		&i.Year,
		&i.Quarter,
		&i.Category,
		&i.Indicator,
		&i.TargetValue,
		&i.AchievedValue,
		&i.Unit,
		&i.Status,
		&i.Notes,
		&i.CreatedAt,
		&i.UpdatedAt,
	}
	return append(targets, extra...)
}

type PerformanceRepository struct{}

func NewPerformanceRepository() performance.Repository {
	return &PerformanceRepository{}
}

func (r *PerformanceRepository) GetPaginated(ctx context.Context, params *performance.FindParams) ([]performance.Indicator, error) {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return nil, err
	}

	where, args := buildIndicatorFilters(params)
	query := `SELECT ` + indicatorSelect + ` FROM performance_indicators WHERE ` + strings.Join(where, " AND ") +
		` ORDER BY year DESC, quarter DESC, category ASC, indicator ASC`
	if params != nil {
		query += " " + repo.FormatLimitOffset(params.Limit, params.Offset)
	}

	rows, err := tx.Query(ctx, query, args...)
	if err != nil {
		return nil, gerrors.Wrap(err, "list performance indicators")
	}
	defer rows.Close()

	var out []performance.Indicator
	for rows.Next() {
		var row models.PerformanceIndicator
		if err := rows.Scan(indicatorTargets(&row)...); err != nil {
			return nil, err
		}
		entity, err := toDomainIndicator(row)
		if err != nil {
			return nil, err
		}
		out = append(out, entity)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *PerformanceRepository) Count(ctx context.Context, params *performance.FindParams) (int64, error) {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return 0, err
	}
	where, args := buildIndicatorFilters(params)

	var count int64
	if err := tx.QueryRow(ctx, `
		SELECT COUNT(*) FROM performance_indicators
		WHERE `+strings.Join(where, " AND "),
		args...,
	).Scan(&count); err != nil {
		return 0, gerrors.Wrap(err, "count performance indicators")
	}
	return count, nil
}

func (r *PerformanceRepository) GetByID(ctx context.Context, id uint) (performance.Indicator, error) {
	return r.queryOne(ctx, `SELECT `+indicatorSelect+` FROM performance_indicators WHERE id = $1`, id)
}

func (r *PerformanceRepository) Create(ctx context.Context, i performance.Indicator) (performance.Indicator, error) {
	return r.queryOne(ctx, insertIndicatorQuery, indicatorArgs(toDBIndicator(i))...)
}

func (r *PerformanceRepository) Update(ctx context.Context, i performance.Indicator) (performance.Indicator, error) {
	args := append(indicatorArgs(toDBIndicator(i)), i.ID())
	return r.queryOne(ctx, updateIndicatorQuery, args...)
}

func (r *PerformanceRepository) Upsert(ctx context.Context, i performance.Indicator) (performance.Indicator, bool, error) {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return performance.Indicator{}, false, err
	}

	var (
		row      models.PerformanceIndicator
		inserted bool
	)
	err = tx.QueryRow(ctx, upsertIndicatorQuery, indicatorArgs(toDBIndicator(i))...).Scan(indicatorTargets(&row, &inserted)...)
	if err != nil {
		return performance.Indicator{}, false, mapIndicatorError(err)
	}
	stored, err := toDomainIndicator(row)
	if err != nil {
		return performance.Indicator{}, false, err
	}
	return stored, inserted, nil
}

func (r *PerformanceRepository) Delete(ctx context.Context, id uint) error {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return err
	}
	tag, err := tx.Exec(ctx, `DELETE FROM performance_indicators WHERE id = $1`, id)
	if err != nil {
		return gerrors.Wrap(err, "delete performance indicator")
	}
	if tag.RowsAffected() == 0 {
		return performance.ErrNotFound
	}
	return nil
}

func (r *PerformanceRepository) Stats(ctx context.Context, year int) (performance.Stats, error) {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return performance.Stats{}, err
	}

	where, args := "1 = 1", []any{}
	if year > 0 {
		where, args = "year = $1", []any{year}
	}

	var stats performance.Stats
	if err := tx.QueryRow(ctx, `
		SELECT
			COUNT(*),
			COUNT(*) FILTER (WHERE status = 'pending'),
			COUNT(*) FILTER (WHERE status = 'on_track'),
			COUNT(*) FILTER (WHERE status = 'achieved'),
			COUNT(*) FILTER (WHERE status = 'not_achieved')
		FROM performance_indicators
		WHERE `+where,
		args...,
	).Scan(&stats.Total, &stats.Pending, &stats.OnTrack, &stats.Achieved, &stats.NotAchieved); err != nil {
		return performance.Stats{}, gerrors.Wrap(err, "count performance indicators")
	}

	rows, err := tx.Query(ctx, `
		SELECT category, COUNT(*)
		FROM performance_indicators
		WHERE `+where+`
		GROUP BY 1
		ORDER BY 2 DESC, 1 ASC`,
		args...,
	)
	if err != nil {
		return performance.Stats{}, gerrors.Wrap(err, "count indicators per category")
	}
	defer rows.Close()

	stats.ByCategory = []performance.CategoryCount{}
	for rows.Next() {
		var cc performance.CategoryCount
		if err := rows.Scan(&cc.Category, &cc.Count); err != nil {
			return performance.Stats{}, err
		}
		stats.ByCategory = append(stats.ByCategory, cc)
	}
	if err := rows.Err(); err != nil {
		return performance.Stats{}, err
	}
	return stats, nil
}

func (r *PerformanceRepository) queryOne(ctx context.Context, query string, args ...any) (performance.Indicator, error) {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return performance.Indicator{}, err
	}
	var row models.PerformanceIndicator
	if err := tx.QueryRow(ctx, query, args...).Scan(indicatorTargets(&row)...); err != nil {
		return performance.Indicator{}, mapIndicatorError(err)
	}
	return toDomainIndicator(row)
}

func mapIndicatorError(err error) error {
	if errors.Is(err, pgx.ErrNoRows) {
		return performance.ErrNotFound
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
		return gerrors.Wrap(performance.ErrDuplicate, pgErr.Detail)
	}
	return err
}

func buildIndicatorFilters(params *performance.FindParams) ([]string, []any) {
	where := []string{"1 = 1"}
	var args []any
	if params == nil {
		return where, args
	}

	next := func(v any) string {
		args = append(args, v)
		return fmt.Sprintf("$%d", len(args))
	}

	if q := strings.TrimSpace(params.Q); q != "" {
		p := next("%" + q + "%")
		where = append(where, fmt.Sprintf("(indicator ILIKE %[1]s OR notes ILIKE %[1]s)", p))
	}
	if params.Year > 0 {
		where = append(where, "year = "+next(params.Year))
	}
	if params.Quarter > 0 {
		where = append(where, "quarter = "+next(params.Quarter))
	}
	if c := strings.TrimSpace(params.Category); c != "" {
		where = append(where, "LOWER(category) = LOWER("+next(c)+")")
	}
	if params.Status != "" {
		where = append(where, "status = "+next(string(params.Status)))
	}
	return where, args
}
