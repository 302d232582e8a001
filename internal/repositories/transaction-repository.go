package repositories

import (
	"context"
	"errors"
	"fmt"
	"strings"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"rtub-system/internal/entities"
	apperrors "rtub-system/pkg/errors"
	"rtub-system/pkg/types"
)

const (
	transactionTable  = "transactions"
	transactionFields = `id, kind, amount_cents, description, occurred_at, recorded_by, event_id, created_at, updated_at`
)

var allowedTransactionFilters = map[string]string{
	"kind":        "kind",
	"event_id":    "event_id",
	"recorded_by": "recorded_by",
}

var allowedTransactionSortFields = map[string]bool{
	"id":           true,
	"occurred_at":  true,
	"amount_cents": true,
	"created_at":   true,
}

type TransactionRepositoryInterface interface {
	FindByID(ctx context.Context, tx pgx.Tx, id uint64) (*entities.Transaction, error)
	GetAll(ctx context.Context, filter types.Filter) ([]*entities.Transaction, uint64, error)
	Create(ctx context.Context, tx pgx.Tx, t entities.Transaction) (uint64, error)
	Update(ctx context.Context, tx pgx.Tx, id uint64, t entities.Transaction) error
	Delete(ctx context.Context, tx pgx.Tx, id uint64) error
	GetBalance(ctx context.Context) (*entities.BalanceSummary, error)
}

type transactionRepository struct {
	storage *pgxpool.Pool
}

func NewTransactionRepository(storage *pgxpool.Pool) TransactionRepositoryInterface {
	return &transactionRepository{storage: storage}
}

func (r *transactionRepository) getQuerier(tx pgx.Tx) Querier {
	if tx != nil {
		return tx
	}
	return r.storage
}

func (r *transactionRepository) scanRow(row pgx.Row) (*entities.Transaction, error) {
	var t entities.Transaction
	err := row.Scan(
		&t.ID, &t.Kind, &t.AmountCents, &t.Description, &t.OccurredAt,
		&t.RecordedBy, &t.EventID, &t.CreatedAt, &t.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to scan transactions row: %w", err)
	}
	return &t, nil
}

func (r *transactionRepository) FindByID(ctx context.Context, tx pgx.Tx, id uint64) (*entities.Transaction, error) {
	psql := sq.StatementBuilder.PlaceholderFormat(sq.Dollar)
	query, args, err := psql.Select(transactionFields).From(transactionTable).Where(sq.Eq{"id": id}).ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build transaction query: %w", err)
	}
	return r.scanRow(r.getQuerier(tx).QueryRow(ctx, query, args...))
}

func (r *transactionRepository) Create(ctx context.Context, tx pgx.Tx, t entities.Transaction) (uint64, error) {
	psql := sq.StatementBuilder.PlaceholderFormat(sq.Dollar)
	query, args, err := psql.Insert(transactionTable).
		Columns("kind", "amount_cents", "description", "occurred_at", "recorded_by", "event_id", "created_at", "updated_at").
		Values(t.Kind, t.AmountCents, t.Description, t.OccurredAt, t.RecordedBy, t.EventID, sq.Expr("NOW()"), sq.Expr("NOW()")).
		Suffix("RETURNING id").
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("failed to build transaction insert: %w", err)
	}

	var newID uint64
	if err := r.getQuerier(tx).QueryRow(ctx, query, args...).Scan(&newID); err != nil {
		return 0, fmt.Errorf("failed to create transaction: %w", err)
	}
	return newID, nil
}

func (r *transactionRepository) Update(ctx context.Context, tx pgx.Tx, id uint64, t entities.Transaction) error {
	psql := sq.StatementBuilder.PlaceholderFormat(sq.Dollar)
	query, args, err := psql.Update(transactionTable).
		Set("kind", t.Kind).
		Set("amount_cents", t.AmountCents).
		Set("description", t.Description).
		Set("occurred_at", t.OccurredAt).
		Set("event_id", t.EventID).
		Set("updated_at", sq.Expr("NOW()")).
		Where(sq.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build transaction update: %w", err)
	}

	result, err := r.getQuerier(tx).Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("failed to update transaction: %w", err)
	}
	if result.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func (r *transactionRepository) Delete(ctx context.Context, tx pgx.Tx, id uint64) error {
	result, err := r.getQuerier(tx).Exec(ctx, `DELETE FROM transactions WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete transaction: %w", err)
	}
	if result.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func (r *transactionRepository) GetBalance(ctx context.Context) (*entities.BalanceSummary, error) {
	var s entities.BalanceSummary
	err := r.storage.QueryRow(ctx,
		`SELECT
			COALESCE(SUM(amount_cents) FILTER (WHERE kind = 'income'), 0),
			COALESCE(SUM(amount_cents) FILTER (WHERE kind = 'expense'), 0)
		 FROM transactions`).
		Scan(&s.IncomeCents, &s.ExpenseCents)
	if err != nil {
		return nil, fmt.Errorf("failed to compute balance: %w", err)
	}
	s.BalanceCents = s.IncomeCents - s.ExpenseCents
	return &s, nil
}

func (r *transactionRepository) GetAll(ctx context.Context, filter types.Filter) ([]*entities.Transaction, uint64, error) {
	psql := sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

	applyWhere := func(b sq.SelectBuilder) sq.SelectBuilder {
		if filter.Search != "" {
			b = b.Where(sq.ILike{"description": "%" + filter.Search + "%"})
		}
		for key, value := range filter.Filter {
			if dbColumn, ok := allowedTransactionFilters[key]; ok {
				b = b.Where(sq.Eq{dbColumn: value})
			}
		}
		return b
	}

	countQuery, countArgs, err := applyWhere(psql.Select("COUNT(id)").From(transactionTable)).ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("failed to build transaction count: %w", err)
	}

	var total uint64
	if err := r.storage.QueryRow(ctx, countQuery, countArgs...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count transactions: %w", err)
	}
	if total == 0 {
		return []*entities.Transaction{}, 0, nil
	}

	selectBuilder := applyWhere(psql.Select(transactionFields).From(transactionTable))

	if len(filter.Sort) > 0 {
		for field, direction := range filter.Sort {
			if allowedTransactionSortFields[field] {
				safeDirection := "ASC"
				if strings.ToUpper(direction) == "DESC" {
					safeDirection = "DESC"
				}
				selectBuilder = selectBuilder.OrderBy(field + " " + safeDirection)
			}
		}
	} else {
		selectBuilder = selectBuilder.OrderBy("occurred_at DESC")
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
		return nil, 0, fmt.Errorf("failed to build transaction select: %w", err)
	}

	rows, err := r.storage.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to query transactions: %w", err)
	}
	defer rows.Close()

	transactions := make([]*entities.Transaction, 0)
	for rows.Next() {
		t, err := r.scanRow(rows)
		if err != nil {
			return nil, 0, err
		}
		transactions = append(transactions, t)
	}
	return transactions, total, rows.Err()
}
