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
	songTable  = "songs"
	songFields = `id, title, composer, arranger, status, created_at, updated_at`
)

var allowedSongFilters = map[string]string{
	"status": "status",
}

var allowedSongSortFields = map[string]bool{
	"id":     true,
	"title":  true,
	"status": true,
}

type SongRepositoryInterface interface {
	FindByID(ctx context.Context, id uint64) (*entities.Song, error)
	GetAll(ctx context.Context, filter types.Filter) ([]*entities.Song, uint64, error)
	Create(ctx context.Context, song entities.Song) (uint64, error)
	Update(ctx context.Context, id uint64, song entities.Song) error
	Delete(ctx context.Context, id uint64) error
	SetStatus(ctx context.Context, id uint64, status string) error
}

type songRepository struct {
	storage *pgxpool.Pool
}

func NewSongRepository(storage *pgxpool.Pool) SongRepositoryInterface {
	return &songRepository{storage: storage}
}

func (r *songRepository) scanRow(row pgx.Row) (*entities.Song, error) {
	var s entities.Song
	err := row.Scan(&s.ID, &s.Title, &s.Composer, &s.Arranger, &s.Status, &s.CreatedAt, &s.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to scan songs row: %w", err)
	}
	return &s, nil
}

func (r *songRepository) FindByID(ctx context.Context, id uint64) (*entities.Song, error) {
	psql := sq.StatementBuilder.PlaceholderFormat(sq.Dollar)
	query, args, err := psql.Select(songFields).From(songTable).Where(sq.Eq{"id": id}).ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build song query: %w", err)
	}
	return r.scanRow(r.storage.QueryRow(ctx, query, args...))
}

func (r *songRepository) Create(ctx context.Context, song entities.Song) (uint64, error) {
	psql := sq.StatementBuilder.PlaceholderFormat(sq.Dollar)
	query, args, err := psql.Insert(songTable).
		Columns("title", "composer", "arranger", "status", "created_at", "updated_at").
		Values(song.Title, song.Composer, song.Arranger, song.Status, sq.Expr("NOW()"), sq.Expr("NOW()")).
		Suffix("RETURNING id").
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("failed to build song insert: %w", err)
	}

	var newID uint64
	if err := r.storage.QueryRow(ctx, query, args...).Scan(&newID); err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return 0, apperrors.ErrConflict
		}
		return 0, fmt.Errorf("failed to create song: %w", err)
	}
	return newID, nil
}

func (r *songRepository) Update(ctx context.Context, id uint64, song entities.Song) error {
	psql := sq.StatementBuilder.PlaceholderFormat(sq.Dollar)
	query, args, err := psql.Update(songTable).
		Set("title", song.Title).
		Set("composer", song.Composer).
		Set("arranger", song.Arranger).
		Set("status", song.Status).
		Set("updated_at", sq.Expr("NOW()")).
		Where(sq.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build song update: %w", err)
	}

	result, err := r.storage.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("failed to update song: %w", err)
	}
	if result.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func (r *songRepository) Delete(ctx context.Context, id uint64) error {
	result, err := r.storage.Exec(ctx, `DELETE FROM songs WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete song: %w", err)
	}
	if result.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func (r *songRepository) SetStatus(ctx context.Context, id uint64, status string) error {
	result, err := r.storage.Exec(ctx,
		`UPDATE songs SET status = $1, updated_at = NOW() WHERE id = $2`, status, id)
	if err != nil {
		return fmt.Errorf("failed to set song status: %w", err)
	}
	if result.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func (r *songRepository) GetAll(ctx context.Context, filter types.Filter) ([]*entities.Song, uint64, error) {
	psql := sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

	applyWhere := func(b sq.SelectBuilder) sq.SelectBuilder {
		if filter.Search != "" {
			pattern := "%" + filter.Search + "%"
			b = b.Where(sq.Or{sq.ILike{"title": pattern}, sq.ILike{"composer": pattern}})
		}
		for key, value := range filter.Filter {
			if dbColumn, ok := allowedSongFilters[key]; ok {
				b = b.Where(sq.Eq{dbColumn: value})
			}
		}
		return b
	}

	countQuery, countArgs, err := applyWhere(psql.Select("COUNT(id)").From(songTable)).ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("failed to build song count: %w", err)
	}

	var total uint64
	if err := r.storage.QueryRow(ctx, countQuery, countArgs...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count songs: %w", err)
	}
	if total == 0 {
		return []*entities.Song{}, 0, nil
	}

	selectBuilder := applyWhere(psql.Select(songFields).From(songTable))

	if len(filter.Sort) > 0 {
		for field, direction := range filter.Sort {
			if allowedSongSortFields[field] {
				safeDirection := "ASC"
				if strings.ToUpper(direction) == "DESC" {
					safeDirection = "DESC"
				}
				selectBuilder = selectBuilder.OrderBy(field + " " + safeDirection)
			}
		}
	} else {
		selectBuilder = selectBuilder.OrderBy("title ASC")
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
		return nil, 0, fmt.Errorf("failed to build song select: %w", err)
	}

	rows, err := r.storage.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to query songs: %w", err)
	}
	defer rows.Close()

	songs := make([]*entities.Song, 0)
	for rows.Next() {
		s, err := r.scanRow(rows)
		if err != nil {
			return nil, 0, err
		}
		songs = append(songs, s)
	}
	return songs, total, rows.Err()
}
