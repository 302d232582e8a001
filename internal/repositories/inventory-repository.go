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
	inventoryTable  = "inventory_items"
	inventoryFields = `i.id, i.name, i.kind, i.serial_number, i.condition, i.holder_id, i.notes, i.created_at, i.updated_at, m.name`
)

var allowedInventoryFilters = map[string]string{
	"kind":      "i.kind",
	"holder_id": "i.holder_id",
}

var allowedInventorySortFields = map[string]string{
	"id":   "i.id",
	"name": "i.name",
	"kind": "i.kind",
}

type InventoryRepositoryInterface interface {
	FindByID(ctx context.Context, id uint64) (*entities.InventoryItem, error)
	GetAll(ctx context.Context, filter types.Filter) ([]*entities.InventoryItem, uint64, error)
	Create(ctx context.Context, item entities.InventoryItem) (uint64, error)
	Update(ctx context.Context, id uint64, item entities.InventoryItem) error
	Delete(ctx context.Context, id uint64) error
	AssignHolder(ctx context.Context, id uint64, holderID *uint64) error
}

type inventoryRepository struct {
	storage *pgxpool.Pool
}

func NewInventoryRepository(storage *pgxpool.Pool) InventoryRepositoryInterface {
	return &inventoryRepository{storage: storage}
}

func (r *inventoryRepository) scanRow(row pgx.Row) (*entities.InventoryItem, error) {
	var item entities.InventoryItem
	err := row.Scan(
		&item.ID, &item.Name, &item.Kind, &item.SerialNumber, &item.Condition,
		&item.HolderID, &item.Notes, &item.CreatedAt, &item.UpdatedAt, &item.HolderName,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to scan inventory row: %w", err)
	}
	return &item, nil
}

func (r *inventoryRepository) baseSelect(psql sq.StatementBuilderType) sq.SelectBuilder {
	return psql.Select(inventoryFields).
		From(inventoryTable + " i").
		LeftJoin("members m ON m.id = i.holder_id")
}

func (r *inventoryRepository) FindByID(ctx context.Context, id uint64) (*entities.InventoryItem, error) {
	psql := sq.StatementBuilder.PlaceholderFormat(sq.Dollar)
	query, args, err := r.baseSelect(psql).Where(sq.Eq{"i.id": id}).ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build inventory query: %w", err)
	}
	return r.scanRow(r.storage.QueryRow(ctx, query, args...))
}

func (r *inventoryRepository) Create(ctx context.Context, item entities.InventoryItem) (uint64, error) {
	psql := sq.StatementBuilder.PlaceholderFormat(sq.Dollar)
	query, args, err := psql.Insert(inventoryTable).
		Columns("name", "kind", "serial_number", "condition", "holder_id", "notes", "created_at", "updated_at").
		Values(item.Name, item.Kind, item.SerialNumber, item.Condition, item.HolderID, item.Notes, sq.Expr("NOW()"), sq.Expr("NOW()")).
		Suffix("RETURNING id").
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("failed to build inventory insert: %w", err)
	}

	var newID uint64
	if err := r.storage.QueryRow(ctx, query, args...).Scan(&newID); err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return 0, apperrors.ErrConflict
		}
		return 0, fmt.Errorf("failed to create inventory item: %w", err)
	}
	return newID, nil
}

func (r *inventoryRepository) Update(ctx context.Context, id uint64, item entities.InventoryItem) error {
	psql := sq.StatementBuilder.PlaceholderFormat(sq.Dollar)
	query, args, err := psql.Update(inventoryTable).
		Set("name", item.Name).
		Set("kind", item.Kind).
		Set("serial_number", item.SerialNumber).
		Set("condition", item.Condition).
		Set("notes", item.Notes).
		Set("updated_at", sq.Expr("NOW()")).
		Where(sq.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build inventory update: %w", err)
	}

	result, err := r.storage.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("failed to update inventory item: %w", err)
	}
	if result.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func (r *inventoryRepository) Delete(ctx context.Context, id uint64) error {
	result, err := r.storage.Exec(ctx, `DELETE FROM inventory_items WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete inventory item: %w", err)
	}
	if result.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// AssignHolder with a nil holder returns the item to storage.
func (r *inventoryRepository) AssignHolder(ctx context.Context, id uint64, holderID *uint64) error {
	result, err := r.storage.Exec(ctx,
		`UPDATE inventory_items SET holder_id = $1, updated_at = NOW() WHERE id = $2`,
		holderID, id)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23503" {
			return apperrors.NewHttpError(400, "holder does not exist", err, nil)
		}
		return fmt.Errorf("failed to assign holder: %w", err)
	}
	if result.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func (r *inventoryRepository) GetAll(ctx context.Context, filter types.Filter) ([]*entities.InventoryItem, uint64, error) {
	psql := sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

	applyWhere := func(b sq.SelectBuilder) sq.SelectBuilder {
		if filter.Search != "" {
			pattern := "%" + filter.Search + "%"
			b = b.Where(sq.Or{sq.ILike{"i.name": pattern}, sq.ILike{"i.serial_number": pattern}})
		}
		for key, value := range filter.Filter {
			if dbColumn, ok := allowedInventoryFilters[key]; ok {
				b = b.Where(sq.Eq{dbColumn: value})
			}
		}
		return b
	}

	countQuery, countArgs, err := applyWhere(psql.Select("COUNT(i.id)").From(inventoryTable + " i")).ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("failed to build inventory count: %w", err)
	}

	var total uint64
	if err := r.storage.QueryRow(ctx, countQuery, countArgs...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count inventory items: %w", err)
	}
	if total == 0 {
		return []*entities.InventoryItem{}, 0, nil
	}

	selectBuilder := applyWhere(r.baseSelect(psql))

	if len(filter.Sort) > 0 {
		for field, direction := range filter.Sort {
			if dbColumn, ok := allowedInventorySortFields[field]; ok {
				safeDirection := "ASC"
				if strings.ToUpper(direction) == "DESC" {
					safeDirection = "DESC"
				}
				selectBuilder = selectBuilder.OrderBy(dbColumn + " " + safeDirection)
			}
		}
	} else {
		selectBuilder = selectBuilder.OrderBy("i.name ASC")
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
		return nil, 0, fmt.Errorf("failed to build inventory select: %w", err)
	}

	rows, err := r.storage.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to query inventory items: %w", err)
	}
	defer rows.Close()

	items := make([]*entities.InventoryItem, 0)
	for rows.Next() {
		item, err := r.scanRow(rows)
		if err != nil {
			return nil, 0, err
		}
		items = append(items, item)
	}
	return items, total, rows.Err()
}
