package persistence

import (
	"context"
	"errors"
	"fmt"
	"strings"

	gerrors "github.com/go-faster/errors"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/fkunand/faculty-admin/modules/faculty/domain/aggregates/member"
	"github.com/fkunand/faculty-admin/modules/faculty/infrastructure/persistence/models"
	"github.com/fkunand/faculty-admin/pkg/composables"
	"github.com/fkunand/faculty-admin/pkg/repo"
)

const uniqueViolation = "23505"

// writableColumns are stored from the aggregate; the order matches memberArgs.
var writableColumns = []string{
	"kind",
	"natural_key",
	"full_name",
	"identification_type",
	"identification_number",
	"nip",
	"nidn",
	"nidk",
	"nuptk",
	"gender",
	"birth_place",
	"birth_date",
	"retirement_date",
	"email",
	"phone",
	"academic_rank",
	"position",
	"grade",
	"department",
	"employment_status",
	"work_unit",
	"qualification",
	"specialization",
	"graduation_year",
	"years_of_service",
	"is_active",
}

var selectColumns = "id, " + strings.Join(writableColumns, ", ") + ", created_at, updated_at"

var (
	insertMemberQuery = fmt.Sprintf(
		`INSERT INTO faculty_members (%s) VALUES (%s) RETURNING %s`,
		strings.Join(writableColumns, ", "), placeholders(1, len(writableColumns)), selectColumns,
	)
	// Optional columns keep their stored value when the incoming one is NULL.
	// is_active is never touched by an upsert.
	upsertMemberQuery = fmt.Sprintf(
		`INSERT INTO faculty_members (%s) VALUES (%s)
		ON CONFLICT (kind, natural_key) DO UPDATE SET %s, updated_at = now()
		RETURNING %s, (xmax = 0) AS inserted`,
		strings.Join(writableColumns, ", "), placeholders(1, len(writableColumns)), upsertAssignments(), selectColumns,
	)
	updateMemberQuery = fmt.Sprintf(
		`UPDATE faculty_members SET %s, updated_at = now() WHERE id = $%d RETURNING %s`,
		updateAssignments(), len(writableColumns)+1, selectColumns,
	)
)

func placeholders(from, n int) string {
	out := make([]string, n)
	for i := range out {
		out[i] = fmt.Sprintf("$%d", from+i)
	}
	return strings.Join(out, ", ")
}

func updateAssignments() string {
	out := make([]string, len(writableColumns))
	for i, col := range writableColumns {
		out[i] = fmt.Sprintf("%s = $%d", col, i+1)
	}
	return strings.Join(out, ", ")
}

func upsertAssignments() string {
	var out []string
	for _, col := range writableColumns {
		switch col {
		case "kind", "natural_key", "is_active":
			continue
		case "full_name", "identification_type", "identification_number":
			out = append(out, fmt.Sprintf("%s = EXCLUDED.%s", col, col))
		default:
			out = append(out, fmt.Sprintf("%s = COALESCE(EXCLUDED.%s, faculty_members.%s)", col, col, col))
		}
	}
	return strings.Join(out, ", ")
}

func memberArgs(m models.Member) []any {
	return []any{
		m.Kind,
		m.NaturalKey,
		m.FullName,
		m.IdentificationType,
		m.IdentificationNumber,
		m.NIP,
		m.NIDN,
		m.NIDK,
		m.NUPTK,
		m.Gender,
		m.BirthPlace,
		m.BirthDate,
		m.RetirementDate,
		m.Email,
		m.Phone,
		m.AcademicRank,
		m.Position,
		m.Grade,
		m.Department,
		m.EmploymentStatus,
		m.WorkUnit,
		m.Qualification,
		m.Specialization,
		m.GraduationYear,
		m.YearsOfService,
		m.IsActive,
	}
}

func memberTargets(m *models.Member, extra ...any) []any {
	targets := []any{
		&m.ID,
		&m.Kind,
		&m.NaturalKey,
		&m.FullName,
		&m.IdentificationType,
		&m.IdentificationNumber,
		&m.NIP,
		&m.NIDN,
		&m.NIDK,
		&m.NUPTK,
		&m.Gender,
		&m.BirthPlace,
		&m.BirthDate,
		&m.RetirementDate,
		&m.Email,
		&m.Phone,
		&m.AcademicRank,
		&m.Position,
		&m.Grade,
		&m.Department,
		&m.EmploymentStatus,
		&m.WorkUnit,
		&m.Qualification,
		&m.Specialization,
		&m.GraduationYear,
		&m.YearsOfService,
		&m.IsActive,
		&m.CreatedAt,
		&m.UpdatedAt,
	}
	return append(targets, extra...)
}

type MemberRepository struct{}

func NewMemberRepository() member.Repository {
	return &MemberRepository{}
}

func (r *MemberRepository) GetPaginated(ctx context.Context, params *member.FindParams) ([]member.Member, error) {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return nil, err
	}

	where, args := buildMemberFilters(params)
	query := `SELECT ` + selectColumns + ` FROM faculty_members WHERE ` + strings.Join(where, " AND ") +
		` ORDER BY full_name ASC, id ASC`
	if params != nil {
		query += " " + repo.FormatLimitOffset(params.Limit, params.Offset)
	}

	rows, err := tx.Query(ctx, query, args...)
	if err != nil {
		return nil, gerrors.Wrap(err, "list faculty members")
	}
	defer rows.Close()

	var out []member.Member
	for rows.Next() {
		var row models.Member
		if err := rows.Scan(memberTargets(&row)...); err != nil {
			return nil, err
		}
		out = append(out, toDomainMember(row))
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *MemberRepository) Count(ctx context.Context, params *member.FindParams) (int64, error) {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return 0, err
	}
	where, args := buildMemberFilters(params)

	var count int64
	if err := tx.QueryRow(ctx, `
		SELECT COUNT(*) FROM faculty_members
		WHERE `+strings.Join(where, " AND "),
		args...,
	).Scan(&count); err != nil {
		return 0, gerrors.Wrap(err, "count faculty members")
	}
	return count, nil
}

func (r *MemberRepository) GetByID(ctx context.Context, id uint) (member.Member, error) {
	return r.queryOne(ctx, `SELECT `+selectColumns+` FROM faculty_members WHERE id = $1`, id)
}

func (r *MemberRepository) GetByNaturalKey(ctx context.Context, kind member.Kind, key string) (member.Member, error) {
	return r.queryOne(
		ctx,
		`SELECT `+selectColumns+` FROM faculty_members WHERE kind = $1 AND natural_key = $2`,
		string(kind), strings.TrimSpace(key),
	)
}

func (r *MemberRepository) Create(ctx context.Context, m member.Member) (member.Member, error) {
	return r.queryOne(ctx, insertMemberQuery, memberArgs(toDBMember(m))...)
}

func (r *MemberRepository) Update(ctx context.Context, m member.Member) (member.Member, error) {
	args := append(memberArgs(toDBMember(m)), m.ID())
	return r.queryOne(ctx, updateMemberQuery, args...)
}

func (r *MemberRepository) Upsert(ctx context.Context, m member.Member) (member.Member, bool, error) {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return member.Member{}, false, err
	}

	var (
		row      models.Member
		inserted bool
	)
	err = tx.QueryRow(ctx, upsertMemberQuery, memberArgs(toDBMember(m))...).Scan(memberTargets(&row, &inserted)...)
	if err != nil {
		return member.Member{}, false, mapWriteError(err)
	}
	return toDomainMember(row), inserted, nil
}

func (r *MemberRepository) Delete(ctx context.Context, id uint) error {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return err
	}
	tag, err := tx.Exec(ctx, `DELETE FROM faculty_members WHERE id = $1`, id)
	if err != nil {
		return gerrors.Wrap(err, "delete faculty member")
	}
	if tag.RowsAffected() == 0 {
		return member.ErrNotFound
	}
	return nil
}

func (r *MemberRepository) Stats(ctx context.Context) (member.Stats, error) {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return member.Stats{}, err
	}

	var stats member.Stats
	if err := tx.QueryRow(ctx, `
		SELECT
			COUNT(*),
			COUNT(*) FILTER (WHERE kind = 'lecturer'),
			COUNT(*) FILTER (WHERE kind = 'staff'),
			COUNT(*) FILTER (WHERE is_active)
		FROM faculty_members`,
	).Scan(&stats.Total, &stats.Lecturers, &stats.Staff, &stats.Active); err != nil {
		return member.Stats{}, gerrors.Wrap(err, "count faculty members")
	}

	rows, err := tx.Query(ctx, `
		SELECT COALESCE(department, ''), COUNT(*)
		FROM faculty_members
		GROUP BY 1
		ORDER BY 2 DESC, 1 ASC`)
	if err != nil {
		return member.Stats{}, gerrors.Wrap(err, "count members per department")
	}
	defer rows.Close()

	stats.ByDepartment = []member.DepartmentCount{}
	for rows.Next() {
		var dc member.DepartmentCount
		if err := rows.Scan(&dc.Department, &dc.Count); err != nil {
			return member.Stats{}, err
		}
		stats.ByDepartment = append(stats.ByDepartment, dc)
	}
	if err := rows.Err(); err != nil {
		return member.Stats{}, err
	}
	return stats, nil
}

func (r *MemberRepository) queryOne(ctx context.Context, query string, args ...any) (member.Member, error) {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return member.Member{}, err
	}
	var row models.Member
	if err := tx.QueryRow(ctx, query, args...).Scan(memberTargets(&row)...); err != nil {
		return member.Member{}, mapWriteError(err)
	}
	return toDomainMember(row), nil
}

func mapWriteError(err error) error {
	if errors.Is(err, pgx.ErrNoRows) {
		return member.ErrNotFound
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
		return gerrors.Wrap(member.ErrDuplicate, pgErr.Detail)
	}
	return err
}

func buildMemberFilters(params *member.FindParams) ([]string, []any) {
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
		where = append(where, fmt.Sprintf(
			"(full_name ILIKE %[1]s OR identification_number ILIKE %[1]s OR nip ILIKE %[1]s OR email ILIKE %[1]s)", p,
		))
	}
	if params.Kind != "" {
		where = append(where, "kind = "+next(string(params.Kind)))
	}
	if dep := strings.TrimSpace(params.Department); dep != "" {
		where = append(where, "LOWER(department) = LOWER("+next(dep)+")")
	}
	if params.IdentificationType != "" {
		where = append(where, "identification_type = "+next(string(params.IdentificationType)))
	}
	if params.Active != nil {
		where = append(where, "is_active = "+next(*params.Active))
	}
	return where, args
}
