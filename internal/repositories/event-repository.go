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
	"go.uber.org/zap"

	"rtub-system/internal/entities"
	apperrors "rtub-system/pkg/errors"
	"rtub-system/pkg/types"
)

const (
	eventTable  = "events"
	eventFields = `id, name, description, location, start_date, end_date, creator_id, created_at, updated_at`
)

var allowedEventFilters = map[string]string{
	"id":         "id",
	"creator_id": "creator_id",
}

var allowedEventSortFields = map[string]bool{
	"id":         true,
	"name":       true,
	"start_date": true,
	"created_at": true,
}

type EventRepositoryInterface interface {
	FindByID(ctx context.Context, tx pgx.Tx, id uint64) (*entities.Event, error)
	GetAll(ctx context.Context, filter types.Filter) ([]*entities.Event, uint64, error)
	Create(ctx context.Context, tx pgx.Tx, e entities.Event) (uint64, error)
	Update(ctx context.Context, tx pgx.Tx, id uint64, e entities.Event) error
	Delete(ctx context.Context, tx pgx.Tx, id uint64) error

	Enroll(ctx context.Context, tx pgx.Tx, eventID, memberID uint64) error
	Unenroll(ctx context.Context, tx pgx.Tx, eventID, memberID uint64) error
	GetEnrollments(ctx context.Context, eventID uint64) ([]*entities.Enrollment, error)
}

type eventRepository struct {
	storage *pgxpool.Pool
	logger  *zap.Logger
}

func NewEventRepository(storage *pgxpool.Pool, logger *zap.Logger) EventRepositoryInterface {
	return &eventRepository{storage: storage, logger: logger}
}

func (r *eventRepository) getQuerier(tx pgx.Tx) Querier {
	if tx != nil {
		return tx
	}
	return r.storage
}

func (r *eventRepository) scanRow(row pgx.Row) (*entities.Event, error) {
	var e entities.Event
	err := row.Scan(
		&e.ID, &e.Name, &e.Description, &e.Location, &e.StartDate, &e.EndDate,
		&e.CreatorID, &e.CreatedAt, &e.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to scan events row: %w", err)
	}
	return &e, nil
}

func (r *eventRepository) FindByID(ctx context.Context, tx pgx.Tx, id uint64) (*entities.Event, error) {
	psql := sq.StatementBuilder.PlaceholderFormat(sq.Dollar)
	query, args, err := psql.Select(eventFields).From(eventTable).Where(sq.Eq{"id": id}).ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build event query: %w", err)
	}

	e, err := r.scanRow(r.getQuerier(tx).QueryRow(ctx, query, args...))
	if err != nil {
		return nil, err
	}

	if err := r.getQuerier(tx).
		QueryRow(ctx, `SELECT COUNT(*) FROM enrollments WHERE event_id = $1`, id).
		Scan(&e.EnrollmentCount); err != nil {
		return nil, fmt.Errorf("failed to count enrollments: %w", err)
	}
	return e, nil
}

func (r *eventRepository) Create(ctx context.Context, tx pgx.Tx, e entities.Event) (uint64, error) {
	psql := sq.StatementBuilder.PlaceholderFormat(sq.Dollar)
	query, args, err := psql.Insert(eventTable).
		Columns("name", "description", "location", "start_date", "end_date", "creator_id", "created_at", "updated_at").
		Values(e.Name, e.Description, e.Location, e.StartDate, e.EndDate, e.CreatorID, sq.Expr("NOW()"), sq.Expr("NOW()")).
		Suffix("RETURNING id").
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("failed to build event insert: %w", err)
	}

	var newID uint64
	if err := r.getQuerier(tx).QueryRow(ctx, query, args...).Scan(&newID); err != nil {
		return 0, fmt.Errorf("failed to create event: %w", err)
	}
	return newID, nil
}

func (r *eventRepository) Update(ctx context.Context, tx pgx.Tx, id uint64, e entities.Event) error {
	psql := sq.StatementBuilder.PlaceholderFormat(sq.Dollar)
	query, args, err := psql.Update(eventTable).
		Set("name", e.Name).
		Set("description", e.Description).
		Set("location", e.Location).
		Set("start_date", e.StartDate).
		Set("end_date", e.EndDate).
		Set("updated_at", sq.Expr("NOW()")).
		Where(sq.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build event update: %w", err)
	}

	result, err := r.getQuerier(tx).Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("failed to update event: %w", err)
	}
	if result.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func (r *eventRepository) Delete(ctx context.Context, tx pgx.Tx, id uint64) error {
	psql := sq.StatementBuilder.PlaceholderFormat(sq.Dollar)
	query, args, err := psql.Delete(eventTable).Where(sq.Eq{"id": id}).ToSql()
	if err != nil {
		return fmt.Errorf("failed to build event delete: %w", err)
	}

	result, err := r.getQuerier(tx).Exec(ctx, query, args...)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23503" {
			return apperrors.NewHttpError(400, "event is referenced and cannot be deleted", err, nil)
		}
		return fmt.Errorf("failed to delete event: %w", err)
	}
	if result.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func (r *eventRepository) Enroll(ctx context.Context, tx pgx.Tx, eventID, memberID uint64) error {
	result, err := r.getQuerier(tx).Exec(ctx,
		`INSERT INTO enrollments (event_id, member_id) VALUES ($1, $2) ON CONFLICT DO NOTHING`,
		eventID, memberID)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23503" {
			return apperrors.ErrNotFound
		}
		return fmt.Errorf("failed to enroll: %w", err)
	}
	if result.RowsAffected() == 0 {
		return apperrors.ErrConflict
	}
	return nil
}

func (r *eventRepository) Unenroll(ctx context.Context, tx pgx.Tx, eventID, memberID uint64) error {
	result, err := r.getQuerier(tx).Exec(ctx,
		`DELETE FROM enrollments WHERE event_id = $1 AND member_id = $2`,
		eventID, memberID)
	if err != nil {
		return fmt.Errorf("failed to unenroll: %w", err)
	}
	if result.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func (r *eventRepository) GetEnrollments(ctx context.Context, eventID uint64) ([]*entities.Enrollment, error) {
	rows, err := r.storage.Query(ctx,
		`SELECT e.id, e.event_id, e.member_id, e.enrolled_at, m.full_name
		 FROM enrollments e JOIN members m ON m.id = e.member_id
		 WHERE e.event_id = $1 ORDER BY e.enrolled_at`,
		eventID)
	if err != nil {
		return nil, fmt.Errorf("failed to query enrollments: %w", err)
	}
	defer rows.Close()

	enrollments := make([]*entities.Enrollment, 0)
	for rows.Next() {
		var e entities.Enrollment
		if err := rows.Scan(&e.ID, &e.EventID, &e.MemberID, &e.EnrolledAt, &e.MemberName); err != nil {
			return nil, fmt.Errorf("failed to scan enrollment: %w", err)
		}
		enrollments = append(enrollments, &e)
	}
	return enrollments, rows.Err()
}

func (r *eventRepository) GetAll(ctx context.Context, filter types.Filter) ([]*entities.Event, uint64, error) {
	psql := sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

	applyWhere := func(b sq.SelectBuilder) sq.SelectBuilder {
		if filter.Search != "" {
			pattern := "%" + filter.Search + "%"
			b = b.Where(sq.Or{
				sq.ILike{"name": pattern},
				sq.ILike{"location": pattern},
			})
		}
		for key, value := range filter.Filter {
			if dbColumn, ok := allowedEventFilters[key]; ok {
				b = b.Where(sq.Eq{dbColumn: value})
			}
		}
		return b
	}

	countQuery, countArgs, err := applyWhere(psql.Select("COUNT(id)").From(eventTable)).ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("failed to build event count: %w", err)
	}

	var total uint64
	if err := r.storage.QueryRow(ctx, countQuery, countArgs...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count events: %w", err)
	}
	if total == 0 {
		return []*entities.Event{}, 0, nil
	}

	selectBuilder := applyWhere(psql.Select(eventFields).From(eventTable))

	if len(filter.Sort) > 0 {
		for field, direction := range filter.Sort {
			if allowedEventSortFields[field] {
				safeDirection := "ASC"
				if strings.ToUpper(direction) == "DESC" {
					safeDirection = "DESC"
				}
				selectBuilder = selectBuilder.OrderBy(field + " " + safeDirection)
			}
		}
	} else {
		selectBuilder = selectBuilder.OrderBy("start_date DESC")
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
		return nil, 0, fmt.Errorf("failed to build event select: %w", err)
	}

	rows, err := r.storage.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to query events: %w", err)
	}
	defer rows.Close()

	events := make([]*entities.Event, 0)
	for rows.Next() {
		e, err := r.scanRow(rows)
		if err != nil {
			r.logger.Error("failed to scan event", zap.Error(err))
			return nil, 0, err
		}
		events = append(events, e)
	}
	return events, total, rows.Err()
}
