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
	memberTable  = "members"
	memberFields = `id, full_name, nickname, email, phone_number, password, avatar_url, joined_at, tuno_since, is_founder, is_active, created_at, updated_at, deleted_at`
)

// whitelist for filtering, keeps raw query keys out of SQL
var allowedMemberFilters = map[string]string{
	"id":         "id",
	"email":      "email",
	"is_active":  "is_active",
	"is_founder": "is_founder",
}

var allowedMemberSortFields = map[string]bool{
	"id":         true,
	"full_name":  true,
	"email":      true,
	"joined_at":  true,
	"created_at": true,
}

type MemberRepositoryInterface interface {
	FindByID(ctx context.Context, tx pgx.Tx, id uint64) (*entities.Member, error)
	FindByEmail(ctx context.Context, tx pgx.Tx, email string) (*entities.Member, error)
	GetAll(ctx context.Context, filter types.Filter) ([]*entities.Member, uint64, error)
	Create(ctx context.Context, tx pgx.Tx, m entities.Member) (uint64, error)
	Update(ctx context.Context, tx pgx.Tx, id uint64, m entities.Member) error
	Delete(ctx context.Context, tx pgx.Tx, id uint64) error

	GrantCategory(ctx context.Context, tx pgx.Tx, memberID uint64, category string) error
	RevokeCategory(ctx context.Context, tx pgx.Tx, memberID uint64, category string) error
	AssignPosition(ctx context.Context, tx pgx.Tx, memberID uint64, position string) error
	RemovePosition(ctx context.Context, tx pgx.Tx, memberID uint64, position string) error
	SetRoles(ctx context.Context, tx pgx.Tx, memberID uint64, roles []string) error
}

type memberRepository struct {
	storage *pgxpool.Pool
	logger  *zap.Logger
}

func NewMemberRepository(storage *pgxpool.Pool, logger *zap.Logger) MemberRepositoryInterface {
	return &memberRepository{storage: storage, logger: logger}
}

func (r *memberRepository) getQuerier(tx pgx.Tx) Querier {
	if tx != nil {
		return tx
	}
	return r.storage
}

func (r *memberRepository) scanRow(row pgx.Row) (*entities.Member, error) {
	var m entities.Member
	err := row.Scan(
		&m.ID, &m.FullName, &m.Nickname, &m.Email, &m.PhoneNumber, &m.Password,
		&m.AvatarURL, &m.JoinedAt, &m.TunoSince, &m.IsFounder, &m.IsActive,
		&m.CreatedAt, &m.UpdatedAt, &m.DeletedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to scan members row: %w", err)
	}
	return &m, nil
}

func (r *memberRepository) findOne(ctx context.Context, q Querier, where sq.Sqlizer) (*entities.Member, error) {
	psql := sq.StatementBuilder.PlaceholderFormat(sq.Dollar)
	query, args, err := psql.Select(memberFields).
		From(memberTable).
		Where(where).
		Where(sq.Eq{"deleted_at": nil}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build member query: %w", err)
	}

	m, err := r.scanRow(q.QueryRow(ctx, query, args...))
	if err != nil {
		return nil, err
	}
	if err := r.loadAssociations(ctx, q, m); err != nil {
		return nil, err
	}
	return m, nil
}

// loadAssociations pulls the member's roles, categories and positions. These
// are the sets the claims projection works from.
func (r *memberRepository) loadAssociations(ctx context.Context, q Querier, m *entities.Member) error {
	rows, err := q.Query(ctx,
		`SELECT r.name FROM roles r JOIN member_roles mr ON mr.role_id = r.id WHERE mr.member_id = $1 ORDER BY r.name`,
		m.ID)
	if err != nil {
		return fmt.Errorf("failed to load member roles: %w", err)
	}
	m.Roles, err = collectStrings(rows)
	if err != nil {
		return err
	}

	rows, err = q.Query(ctx,
		`SELECT category FROM member_categories WHERE member_id = $1 ORDER BY granted_at`,
		m.ID)
	if err != nil {
		return fmt.Errorf("failed to load member categories: %w", err)
	}
	m.Categories, err = collectStrings(rows)
	if err != nil {
		return err
	}

	rows, err = q.Query(ctx,
		`SELECT position FROM member_positions WHERE member_id = $1 ORDER BY assigned_at`,
		m.ID)
	if err != nil {
		return fmt.Errorf("failed to load member positions: %w", err)
	}
	m.Positions, err = collectStrings(rows)
	return err
}

func collectStrings(rows pgx.Rows) ([]string, error) {
	defer rows.Close()
	out := make([]string, 0, 4)
	for rows.Next() {
		var s string
		if err := rows.Scan(&s); err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, rows.Err()
}

func (r *memberRepository) FindByID(ctx context.Context, tx pgx.Tx, id uint64) (*entities.Member, error) {
	return r.findOne(ctx, r.getQuerier(tx), sq.Eq{"id": id})
}

func (r *memberRepository) FindByEmail(ctx context.Context, tx pgx.Tx, email string) (*entities.Member, error) {
	return r.findOne(ctx, r.getQuerier(tx), sq.Eq{"email": email})
}

func (r *memberRepository) Create(ctx context.Context, tx pgx.Tx, m entities.Member) (uint64, error) {
	psql := sq.StatementBuilder.PlaceholderFormat(sq.Dollar)
	query, args, err := psql.Insert(memberTable).
		Columns("full_name", "nickname", "email", "phone_number", "password", "avatar_url", "joined_at", "tuno_since", "is_founder", "is_active", "created_at", "updated_at").
		Values(m.FullName, m.Nickname, m.Email, m.PhoneNumber, m.Password, m.AvatarURL, m.JoinedAt, m.TunoSince, m.IsFounder, m.IsActive, sq.Expr("NOW()"), sq.Expr("NOW()")).
		Suffix("RETURNING id").
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("failed to build member insert: %w", err)
	}

	var newID uint64
	if err := r.getQuerier(tx).QueryRow(ctx, query, args...).Scan(&newID); err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return 0, fmt.Errorf("member with this email already exists: %w", apperrors.ErrConflict)
		}
		return 0, fmt.Errorf("failed to create member: %w", err)
	}
	return newID, nil
}

func (r *memberRepository) Update(ctx context.Context, tx pgx.Tx, id uint64, m entities.Member) error {
	psql := sq.StatementBuilder.PlaceholderFormat(sq.Dollar)
	query, args, err := psql.Update(memberTable).
		Set("full_name", m.FullName).
		Set("nickname", m.Nickname).
		Set("email", m.Email).
		Set("phone_number", m.PhoneNumber).
		Set("avatar_url", m.AvatarURL).
		Set("tuno_since", m.TunoSince).
		Set("is_active", m.IsActive).
		Set("updated_at", sq.Expr("NOW()")).
		Where(sq.Eq{"id": id, "deleted_at": nil}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build member update: %w", err)
	}

	result, err := r.getQuerier(tx).Exec(ctx, query, args...)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return fmt.Errorf("member with this email already exists: %w", apperrors.ErrConflict)
		}
		return fmt.Errorf("failed to update member: %w", err)
	}
	if result.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func (r *memberRepository) Delete(ctx context.Context, tx pgx.Tx, id uint64) error {
	// soft delete; roster history stays referenced by events and the ledger
	psql := sq.StatementBuilder.PlaceholderFormat(sq.Dollar)
	query, args, err := psql.Update(memberTable).
		Set("deleted_at", sq.Expr("NOW()")).
		Set("is_active", false).
		Where(sq.Eq{"id": id, "deleted_at": nil}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build member delete: %w", err)
	}

	result, err := r.getQuerier(tx).Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("failed to delete member: %w", err)
	}
	if result.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func (r *memberRepository) GrantCategory(ctx context.Context, tx pgx.Tx, memberID uint64, category string) error {
	_, err := r.getQuerier(tx).Exec(ctx,
		`INSERT INTO member_categories (member_id, category) VALUES ($1, $2) ON CONFLICT DO NOTHING`,
		memberID, category)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23503" {
			return apperrors.ErrNotFound
		}
		return fmt.Errorf("failed to grant category: %w", err)
	}
	return nil
}

func (r *memberRepository) RevokeCategory(ctx context.Context, tx pgx.Tx, memberID uint64, category string) error {
	result, err := r.getQuerier(tx).Exec(ctx,
		`DELETE FROM member_categories WHERE member_id = $1 AND lower(category) = lower($2)`,
		memberID, category)
	if err != nil {
		return fmt.Errorf("failed to revoke category: %w", err)
	}
	if result.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func (r *memberRepository) AssignPosition(ctx context.Context, tx pgx.Tx, memberID uint64, position string) error {
	_, err := r.getQuerier(tx).Exec(ctx,
		`INSERT INTO member_positions (member_id, position) VALUES ($1, $2) ON CONFLICT DO NOTHING`,
		memberID, position)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23503" {
			return apperrors.ErrNotFound
		}
		return fmt.Errorf("failed to assign position: %w", err)
	}
	return nil
}

func (r *memberRepository) RemovePosition(ctx context.Context, tx pgx.Tx, memberID uint64, position string) error {
	result, err := r.getQuerier(tx).Exec(ctx,
		`DELETE FROM member_positions WHERE member_id = $1 AND lower(position) = lower($2)`,
		memberID, position)
	if err != nil {
		return fmt.Errorf("failed to remove position: %w", err)
	}
	if result.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// SetRoles replaces the member's role set. Unknown role names are ignored by
// the join on roles.name.
func (r *memberRepository) SetRoles(ctx context.Context, tx pgx.Tx, memberID uint64, roles []string) error {
	q := r.getQuerier(tx)
	if _, err := q.Exec(ctx, `DELETE FROM member_roles WHERE member_id = $1`, memberID); err != nil {
		return fmt.Errorf("failed to clear member roles: %w", err)
	}
	if len(roles) == 0 {
		return nil
	}
	_, err := q.Exec(ctx,
		`INSERT INTO member_roles (member_id, role_id)
		 SELECT $1, id FROM roles WHERE name = ANY($2)
		 ON CONFLICT DO NOTHING`,
		memberID, roles)
	if err != nil {
		return fmt.Errorf("failed to set member roles: %w", err)
	}
	return nil
}

func (r *memberRepository) GetAll(ctx context.Context, filter types.Filter) ([]*entities.Member, uint64, error) {
	psql := sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

	applyWhere := func(b sq.SelectBuilder) sq.SelectBuilder {
		b = b.Where(sq.Eq{"deleted_at": nil})
		if filter.Search != "" {
			pattern := "%" + filter.Search + "%"
			b = b.Where(sq.Or{
				sq.ILike{"full_name": pattern},
				sq.ILike{"nickname": pattern},
				sq.ILike{"email": pattern},
			})
		}
		for key, value := range filter.Filter {
			if dbColumn, ok := allowedMemberFilters[key]; ok {
				if items, ok := value.(string); ok && strings.Contains(items, ",") {
					b = b.Where(sq.Eq{dbColumn: strings.Split(items, ",")})
				} else {
					b = b.Where(sq.Eq{dbColumn: value})
				}
			}
		}
		// category filter goes through the membership table
		if cat, ok := filter.Filter["category"].(string); ok && cat != "" {
			b = b.Where(sq.Expr(
				`id IN (SELECT member_id FROM member_categories WHERE lower(category) = lower(?))`, cat))
		}
		if pos, ok := filter.Filter["position"].(string); ok && pos != "" {
			b = b.Where(sq.Expr(
				`id IN (SELECT member_id FROM member_positions WHERE lower(position) = lower(?))`, pos))
		}
		return b
	}

	countQuery, countArgs, err := applyWhere(psql.Select("COUNT(id)").From(memberTable)).ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("failed to build member count: %w", err)
	}

	var total uint64
	if err := r.storage.QueryRow(ctx, countQuery, countArgs...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count members: %w", err)
	}
	if total == 0 {
		return []*entities.Member{}, 0, nil
	}

	selectBuilder := applyWhere(psql.Select(memberFields).From(memberTable))

	if len(filter.Sort) > 0 {
		for field, direction := range filter.Sort {
			if allowedMemberSortFields[field] {
				safeDirection := "ASC"
				if strings.ToUpper(direction) == "DESC" {
					safeDirection = "DESC"
				}
				selectBuilder = selectBuilder.OrderBy(field + " " + safeDirection)
			}
		}
	} else {
		selectBuilder = selectBuilder.OrderBy("full_name ASC")
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
		return nil, 0, fmt.Errorf("failed to build member select: %w", err)
	}

	rows, err := r.storage.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to query members: %w", err)
	}
	defer rows.Close()

	members := make([]*entities.Member, 0)
	for rows.Next() {
		m, err := r.scanRow(rows)
		if err != nil {
			r.logger.Error("failed to scan member", zap.Error(err))
			return nil, 0, err
		}
		members = append(members, m)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("failed to iterate member rows: %w", err)
	}

	for _, m := range members {
		if err := r.loadAssociations(ctx, r.storage, m); err != nil {
			return nil, 0, err
		}
	}

	return members, total, nil
}
