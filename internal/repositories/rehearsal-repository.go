package repositories

import (
	"context"
	"errors"
	"fmt"
	"strings"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"rtub-system/internal/entities"
	apperrors "rtub-system/pkg/errors"
	"rtub-system/pkg/types"
)

const (
	rehearsalTable  = "rehearsals"
	rehearsalFields = `id, title, location, scheduled_at, notes, created_at, updated_at`
)

var allowedRehearsalSortFields = map[string]bool{
	"id":           true,
	"title":        true,
	"scheduled_at": true,
}

type RehearsalRepositoryInterface interface {
	FindByID(ctx context.Context, id uint64) (*entities.Rehearsal, error)
	GetAll(ctx context.Context, filter types.Filter) ([]*entities.Rehearsal, uint64, error)
	Create(ctx context.Context, rehearsal entities.Rehearsal) (uint64, error)
	Update(ctx context.Context, id uint64, rehearsal entities.Rehearsal) error
	Delete(ctx context.Context, id uint64) error
	MarkAttendance(ctx context.Context, attendance entities.RehearsalAttendance) error
	GetAttendance(ctx context.Context, rehearsalID uint64) ([]*entities.RehearsalAttendance, error)
	CountAttendanceByMember(ctx context.Context, memberID uint64) (present uint64, total uint64, err error)
}

type rehearsalRepository struct {
	storage *pgxpool.Pool
}

func NewRehearsalRepository(storage *pgxpool.Pool) RehearsalRepositoryInterface {
	return &rehearsalRepository{storage: storage}
}

func (r *rehearsalRepository) scanRow(row pgx.Row) (*entities.Rehearsal, error) {
	var rh entities.Rehearsal
	err := row.Scan(&rh.ID, &rh.Title, &rh.Location, &rh.ScheduledAt, &rh.Notes, &rh.CreatedAt, &rh.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to scan rehearsals row: %w", err)
	}
	return &rh, nil
}

func (r *rehearsalRepository) FindByID(ctx context.Context, id uint64) (*entities.Rehearsal, error) {
	psql := sq.StatementBuilder.PlaceholderFormat(sq.Dollar)
	query, args, err := psql.Select(rehearsalFields).From(rehearsalTable).Where(sq.Eq{"id": id}).ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build rehearsal query: %w", err)
	}
	return r.scanRow(r.storage.QueryRow(ctx, query, args...))
}

func (r *rehearsalRepository) Create(ctx context.Context, rehearsal entities.Rehearsal) (uint64, error) {
	psql := sq.StatementBuilder.PlaceholderFormat(sq.Dollar)
	query, args, err := psql.Insert(rehearsalTable).
		Columns("title", "location", "scheduled_at", "notes", "created_at", "updated_at").
		Values(rehearsal.Title, rehearsal.Location, rehearsal.ScheduledAt, rehearsal.Notes, sq.Expr("NOW()"), sq.Expr("NOW()")).
		Suffix("RETURNING id").
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("failed to build rehearsal insert: %w", err)
	}

	var newID uint64
	if err := r.storage.QueryRow(ctx, query, args...).Scan(&newID); err != nil {
		return 0, fmt.Errorf("failed to create rehearsal: %w", err)
	}
	return newID, nil
}

func (r *rehearsalRepository) Update(ctx context.Context, id uint64, rehearsal entities.Rehearsal) error {
	psql := sq.StatementBuilder.PlaceholderFormat(sq.Dollar)
	query, args, err := psql.Update(rehearsalTable).
		Set("title", rehearsal.Title).
		Set("location", rehearsal.Location).
		Set("scheduled_at", rehearsal.ScheduledAt).
		Set("notes", rehearsal.Notes).
		Set("updated_at", sq.Expr("NOW()")).
		Where(sq.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build rehearsal update: %w", err)
	}

	result, err := r.storage.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("failed to update rehearsal: %w", err)
	}
	if result.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func (r *rehearsalRepository) Delete(ctx context.Context, id uint64) error {
	result, err := r.storage.Exec(ctx, `DELETE FROM rehearsals WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete rehearsal: %w", err)
	}
	if result.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// MarkAttendance upserts: marking the same member twice for one rehearsal
// overwrites the previous mark instead of failing.
func (r *rehearsalRepository) MarkAttendance(ctx context.Context, attendance entities.RehearsalAttendance) error {
	_, err := r.storage.Exec(ctx,
		`INSERT INTO rehearsal_attendance (rehearsal_id, member_id, present, marked_by)
		 VALUES ($1, $2, $3, $4)
		 ON CONFLICT (rehearsal_id, member_id)
		 DO UPDATE SET present = EXCLUDED.present, marked_by = EXCLUDED.marked_by`,
		attendance.RehearsalID, attendance.MemberID, attendance.Present, attendance.MarkedBy)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23503" {
			return apperrors.ErrNotFound
		}
		return fmt.Errorf("failed to mark attendance: %w", err)
	}
	return nil
}

func (r *rehearsalRepository) GetAttendance(ctx context.Context, rehearsalID uint64) ([]*entities.RehearsalAttendance, error) {
	rows, err := r.storage.Query(ctx,
		`SELECT ra.id, ra.rehearsal_id, ra.member_id, ra.present, ra.marked_by, m.name
		 FROM rehearsal_attendance ra
		 JOIN members m ON m.id = ra.member_id
		 WHERE ra.rehearsal_id = $1
		 ORDER BY m.name`,
		rehearsalID)
	if err != nil {
		return nil, fmt.Errorf("failed to query attendance: %w", err)
	}
	defer rows.Close()

	records := make([]*entities.RehearsalAttendance, 0)
	for rows.Next() {
		var a entities.RehearsalAttendance
		if err := rows.Scan(&a.ID, &a.RehearsalID, &a.MemberID, &a.Present, &a.MarkedBy, &a.MemberName); err != nil {
			return nil, fmt.Errorf("failed to scan attendance row: %w", err)
		}
		records = append(records, &a)
	}
	return records, rows.Err()
}

func (r *rehearsalRepository) CountAttendanceByMember(ctx context.Context, memberID uint64) (uint64, uint64, error) {
	var present, total uint64
	err := r.storage.QueryRow(ctx,
		`SELECT COUNT(*) FILTER (WHERE present), COUNT(*)
		 FROM rehearsal_attendance WHERE member_id = $1`,
		memberID).Scan(&present, &total)
	if err != nil {
		return 0, 0, fmt.Errorf("failed to count attendance: %w", err)
	}
	return present, total, nil
}

func (r *rehearsalRepository) GetAll(ctx context.Context, filter types.Filter) ([]*entities.Rehearsal, uint64, error) {
	psql := sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

	applyWhere := func(b sq.SelectBuilder) sq.SelectBuilder {
		if filter.Search != "" {
			pattern := "%" + filter.Search + "%"
			b = b.Where(sq.Or{sq.ILike{"title": pattern}, sq.ILike{"location": pattern}})
		}
		return b
	}

	countQuery, countArgs, err := applyWhere(psql.Select("COUNT(id)").From(rehearsalTable)).ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("failed to build rehearsal count: %w", err)
	}

	var total uint64
	if err := r.storage.QueryRow(ctx, countQuery, countArgs...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count rehearsals: %w", err)
	}
	if total == 0 {
		return []*entities.Rehearsal{}, 0, nil
	}

	selectBuilder := applyWhere(psql.Select(rehearsalFields).From(rehearsalTable))

	if len(filter.Sort) > 0 {
		for field, direction := range filter.Sort {
			if allowedRehearsalSortFields[field] {
				safeDirection := "ASC"
				if strings.ToUpper(direction) == "DESC" {
					safeDirection = "DESC"
				}
				selectBuilder = selectBuilder.OrderBy(field + " " + safeDirection)
			}
		}
	} else {
		selectBuilder = selectBuilder.OrderBy("scheduled_at DESC")
	}

	if filter.WithPagination {
		if filter.Limit > 0 {
			selectBuilder = selectBuilder.Limit(uint64(filter.Limit))
		}
		if filter.Offset >= 0 {
			selectBuilder = selectBuilder.Offset(uint64(filter.Offset))
		}
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("failed to build rehearsal select: %w", err)
	}

	rows, err := r.storage.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to query rehearsals: %w", err)
	}
	defer rows.Close()

	rehearsals := make([]*entities.Rehearsal, 0)
	for rows.Next() {
		rh, err := r.scanRow(rows)
		if err != nil {
			return nil, 0, err
		}
		rehearsals = append(rehearsals, rh)
	}
	return rehearsals, total, rows.Err()
}
