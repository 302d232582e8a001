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
	shopItemTable   = "shop_items"
	shopItemFields  = `id, name, description, price_cents, stock, created_at, updated_at`
	shopOrderTable  = "shop_orders"
	shopOrderFields = `id, member_id, status, total_cents, placed_at, created_at, updated_at`
)

var allowedShopOrderFilters = map[string]string{
	"status":    "status",
	"member_id": "member_id",
}

type ShopRepositoryInterface interface {
	FindItemByID(ctx context.Context, tx pgx.Tx, id uint64) (*entities.ShopItem, error)
	GetItems(ctx context.Context, filter types.Filter) ([]*entities.ShopItem, uint64, error)
	CreateItem(ctx context.Context, item entities.ShopItem) (uint64, error)
	UpdateItem(ctx context.Context, id uint64, item entities.ShopItem) error
	DeleteItem(ctx context.Context, id uint64) error
	DecrementStock(ctx context.Context, tx pgx.Tx, itemID uint64, quantity int) error

	FindOrderByID(ctx context.Context, id uint64) (*entities.ShopOrder, error)
	GetOrders(ctx context.Context, filter types.Filter) ([]*entities.ShopOrder, uint64, error)
	CreateOrder(ctx context.Context, tx pgx.Tx, order entities.ShopOrder) (uint64, error)
	CreateOrderLine(ctx context.Context, tx pgx.Tx, line entities.ShopOrderLine) error
	SetOrderStatus(ctx context.Context, id uint64, status string) error
}

type shopRepository struct {
	storage *pgxpool.Pool
}

func NewShopRepository(storage *pgxpool.Pool) ShopRepositoryInterface {
	return &shopRepository{storage: storage}
}

func (r *shopRepository) getQuerier(tx pgx.Tx) Querier {
	if tx != nil {
		return tx
	}
	return r.storage
}

func (r *shopRepository) scanItem(row pgx.Row) (*entities.ShopItem, error) {
	var item entities.ShopItem
	err := row.Scan(&item.ID, &item.Name, &item.Description, &item.PriceCents, &item.Stock, &item.CreatedAt, &item.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to scan shop_items row: %w", err)
	}
	return &item, nil
}

func (r *shopRepository) scanOrder(row pgx.Row) (*entities.ShopOrder, error) {
	var order entities.ShopOrder
	err := row.Scan(&order.ID, &order.MemberID, &order.Status, &order.TotalCents, &order.PlacedAt, &order.CreatedAt, &order.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to scan shop_orders row: %w", err)
	}
	return &order, nil
}

// FindItemByID takes a transaction so order placement can read stock under
// the same snapshot it decrements it in. Adds FOR UPDATE inside a tx.
func (r *shopRepository) FindItemByID(ctx context.Context, tx pgx.Tx, id uint64) (*entities.ShopItem, error) {
	query := `SELECT ` + shopItemFields + ` FROM shop_items WHERE id = $1`
	if tx != nil {
		query += ` FOR UPDATE`
	}
	return r.scanItem(r.getQuerier(tx).QueryRow(ctx, query, id))
}

func (r *shopRepository) CreateItem(ctx context.Context, item entities.ShopItem) (uint64, error) {
	psql := sq.StatementBuilder.PlaceholderFormat(sq.Dollar)
	query, args, err := psql.Insert(shopItemTable).
		Columns("name", "description", "price_cents", "stock", "created_at", "updated_at").
		Values(item.Name, item.Description, item.PriceCents, item.Stock, sq.Expr("NOW()"), sq.Expr("NOW()")).
		Suffix("RETURNING id").
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("failed to build shop item insert: %w", err)
	}

	var newID uint64
	if err := r.storage.QueryRow(ctx, query, args...).Scan(&newID); err != nil {
		return 0, fmt.Errorf("failed to create shop item: %w", err)
	}
	return newID, nil
}

func (r *shopRepository) UpdateItem(ctx context.Context, id uint64, item entities.ShopItem) error {
	psql := sq.StatementBuilder.PlaceholderFormat(sq.Dollar)
	query, args, err := psql.Update(shopItemTable).
		Set("name", item.Name).
		Set("description", item.Description).
		Set("price_cents", item.PriceCents).
		Set("stock", item.Stock).
		Set("updated_at", sq.Expr("NOW()")).
		Where(sq.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build shop item update: %w", err)
	}

	result, err := r.storage.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("failed to update shop item: %w", err)
	}
	if result.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func (r *shopRepository) DeleteItem(ctx context.Context, id uint64) error {
	result, err := r.storage.Exec(ctx, `DELETE FROM shop_items WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete shop item: %w", err)
	}
	if result.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// DecrementStock refuses to go negative; the WHERE clause makes the check and
// the write one atomic statement.
func (r *shopRepository) DecrementStock(ctx context.Context, tx pgx.Tx, itemID uint64, quantity int) error {
	result, err := r.getQuerier(tx).Exec(ctx,
		`UPDATE shop_items SET stock = stock - $1, updated_at = NOW()
		 WHERE id = $2 AND stock >= $1`,
		quantity, itemID)
	if err != nil {
		return fmt.Errorf("failed to decrement stock: %w", err)
	}
	if result.RowsAffected() == 0 {
		return apperrors.NewHttpError(409, "insufficient stock", apperrors.ErrConflict, nil)
	}
	return nil
}

func (r *shopRepository) FindOrderByID(ctx context.Context, id uint64) (*entities.ShopOrder, error) {
	order, err := r.scanOrder(r.storage.QueryRow(ctx,
		`SELECT `+shopOrderFields+` FROM shop_orders WHERE id = $1`, id))
	if err != nil {
		return nil, err
	}

	rows, err := r.storage.Query(ctx,
		`SELECT id, order_id, item_id, quantity, unit_price_cents
		 FROM shop_order_lines WHERE order_id = $1 ORDER BY id`, id)
	if err != nil {
		return nil, fmt.Errorf("failed to query order lines: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var line entities.ShopOrderLine
		if err := rows.Scan(&line.ID, &line.OrderID, &line.ItemID, &line.Quantity, &line.UnitPriceCents); err != nil {
			return nil, fmt.Errorf("failed to scan order line: %w", err)
		}
		order.Lines = append(order.Lines, line)
	}
	return order, rows.Err()
}

func (r *shopRepository) CreateOrder(ctx context.Context, tx pgx.Tx, order entities.ShopOrder) (uint64, error) {
	var newID uint64
	err := r.getQuerier(tx).QueryRow(ctx,
		`INSERT INTO shop_orders (member_id, status, total_cents, placed_at, created_at, updated_at)
		 VALUES ($1, $2, $3, NOW(), NOW(), NOW())
		 RETURNING id`,
		order.MemberID, order.Status, order.TotalCents).Scan(&newID)
	if err != nil {
		return 0, fmt.Errorf("failed to create shop order: %w", err)
	}
	return newID, nil
}

func (r *shopRepository) CreateOrderLine(ctx context.Context, tx pgx.Tx, line entities.ShopOrderLine) error {
	_, err := r.getQuerier(tx).Exec(ctx,
		`INSERT INTO shop_order_lines (order_id, item_id, quantity, unit_price_cents)
		 VALUES ($1, $2, $3, $4)`,
		line.OrderID, line.ItemID, line.Quantity, line.UnitPriceCents)
	if err != nil {
		return fmt.Errorf("failed to create order line: %w", err)
	}
	return nil
}

func (r *shopRepository) SetOrderStatus(ctx context.Context, id uint64, status string) error {
	result, err := r.storage.Exec(ctx,
		`UPDATE shop_orders SET status = $1, updated_at = NOW() WHERE id = $2`, status, id)
	if err != nil {
		return fmt.Errorf("failed to set order status: %w", err)
	}
	if result.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func (r *shopRepository) GetItems(ctx context.Context, filter types.Filter) ([]*entities.ShopItem, uint64, error) {
	psql := sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

	applyWhere := func(b sq.SelectBuilder) sq.SelectBuilder {
		if filter.Search != "" {
			b = b.Where(sq.ILike{"name": "%" + filter.Search + "%"})
		}
		return b
	}

	countQuery, countArgs, err := applyWhere(psql.Select("COUNT(id)").From(shopItemTable)).ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("failed to build shop item count: %w", err)
	}

	var total uint64
	if err := r.storage.QueryRow(ctx, countQuery, countArgs...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count shop items: %w", err)
	}
	if total == 0 {
		return []*entities.ShopItem{}, 0, nil
	}

	selectBuilder := applyWhere(psql.Select(shopItemFields).From(shopItemTable)).OrderBy("name ASC")

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
		return nil, 0, fmt.Errorf("failed to build shop item select: %w", err)
	}

	rows, err := r.storage.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to query shop items: %w", err)
	}
	defer rows.Close()

	items := make([]*entities.ShopItem, 0)
	for rows.Next() {
		item, err := r.scanItem(rows)
		if err != nil {
			return nil, 0, err
		}
		items = append(items, item)
	}
	return items, total, rows.Err()
}

func (r *shopRepository) GetOrders(ctx context.Context, filter types.Filter) ([]*entities.ShopOrder, uint64, error) {
	psql := sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

	applyWhere := func(b sq.SelectBuilder) sq.SelectBuilder {
		for key, value := range filter.Filter {
			if dbColumn, ok := allowedShopOrderFilters[key]; ok {
				b = b.Where(sq.Eq{dbColumn: value})
			}
		}
		return b
	}

	countQuery, countArgs, err := applyWhere(psql.Select("COUNT(id)").From(shopOrderTable)).ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("failed to build shop order count: %w", err)
	}

	var total uint64
	if err := r.storage.QueryRow(ctx, countQuery, countArgs...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count shop orders: %w", err)
	}
	if total == 0 {
		return []*entities.ShopOrder{}, 0, nil
	}

	selectBuilder := applyWhere(psql.Select(shopOrderFields).From(shopOrderTable))

	sortApplied := false
	for field, direction := range filter.Sort {
		if field == "placed_at" || field == "id" || field == "total_cents" {
			safeDirection := "ASC"
			if strings.ToUpper(direction) == "DESC" {
				safeDirection = "DESC"
			}
			selectBuilder = selectBuilder.OrderBy(field + " " + safeDirection)
			sortApplied = true
		}
	}
	if !sortApplied {
		selectBuilder = selectBuilder.OrderBy("placed_at DESC")
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
		return nil, 0, fmt.Errorf("failed to build shop order select: %w", err)
	}

	rows, err := r.storage.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to query shop orders: %w", err)
	}
	defer rows.Close()

	orders := make([]*entities.ShopOrder, 0)
	for rows.Next() {
		order, err := r.scanOrder(rows)
		if err != nil {
			return nil, 0, err
		}
		orders = append(orders, order)
	}
	return orders, total, rows.Err()
}
