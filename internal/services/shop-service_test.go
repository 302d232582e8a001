package services

import (
	"context"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"rtub-system/internal/dto"
	"rtub-system/internal/entities"
	apperrors "rtub-system/pkg/errors"
	"rtub-system/pkg/eventbus"
	"rtub-system/pkg/types"
)

// stubTxManager runs the function with a nil tx; rollback semantics are the
// repository's concern, the stub only propagates the error.
type stubTxManager struct{}

func (stubTxManager) RunInTransaction(ctx context.Context, fn func(tx pgx.Tx) error) error {
	return fn(nil)
}

type stubShopRepo struct {
	items      map[uint64]*entities.ShopItem
	orders     map[uint64]*entities.ShopOrder
	lines      []entities.ShopOrderLine
	nextOrder  uint64
	failLineAt int
}

func newStubShopRepo() *stubShopRepo {
	return &stubShopRepo{
		items:      make(map[uint64]*entities.ShopItem),
		orders:     make(map[uint64]*entities.ShopOrder),
		nextOrder:  1,
		failLineAt: -1,
	}
}

func (s *stubShopRepo) FindItemByID(ctx context.Context, tx pgx.Tx, id uint64) (*entities.ShopItem, error) {
	if item, ok := s.items[id]; ok {
		copied := *item
		return &copied, nil
	}
	return nil, apperrors.ErrNotFound
}

func (s *stubShopRepo) GetItems(ctx context.Context, filter types.Filter) ([]*entities.ShopItem, uint64, error) {
	return nil, 0, nil
}

func (s *stubShopRepo) CreateItem(ctx context.Context, item entities.ShopItem) (uint64, error) {
	return 0, nil
}
func (s *stubShopRepo) UpdateItem(ctx context.Context, id uint64, item entities.ShopItem) error {
	return nil
}
func (s *stubShopRepo) DeleteItem(ctx context.Context, id uint64) error { return nil }

func (s *stubShopRepo) DecrementStock(ctx context.Context, tx pgx.Tx, itemID uint64, quantity int) error {
	item, ok := s.items[itemID]
	if !ok || item.Stock < quantity {
		return apperrors.NewHttpError(409, "insufficient stock", apperrors.ErrConflict, nil)
	}
	item.Stock -= quantity
	return nil
}

func (s *stubShopRepo) FindOrderByID(ctx context.Context, id uint64) (*entities.ShopOrder, error) {
	order, ok := s.orders[id]
	if !ok {
		return nil, apperrors.ErrNotFound
	}
	copied := *order
	for _, line := range s.lines {
		if line.OrderID == id {
			copied.Lines = append(copied.Lines, line)
		}
	}
	return &copied, nil
}

func (s *stubShopRepo) GetOrders(ctx context.Context, filter types.Filter) ([]*entities.ShopOrder, uint64, error) {
	return nil, 0, nil
}

func (s *stubShopRepo) CreateOrder(ctx context.Context, tx pgx.Tx, order entities.ShopOrder) (uint64, error) {
	id := s.nextOrder
	s.nextOrder++
	order.ID = id
	s.orders[id] = &order
	return id, nil
}

func (s *stubShopRepo) CreateOrderLine(ctx context.Context, tx pgx.Tx, line entities.ShopOrderLine) error {
	if s.failLineAt >= 0 && len(s.lines) == s.failLineAt {
		return assert.AnError
	}
	s.lines = append(s.lines, line)
	return nil
}

func (s *stubShopRepo) SetOrderStatus(ctx context.Context, id uint64, status string) error {
	return nil
}

func newShopFixture(repo *stubShopRepo) ShopServiceInterface {
	return NewShopService(repo, stubTxManager{}, eventbus.New(zap.NewNop()), zap.NewNop())
}

func TestPlaceOrderPricesAndDecrementsStock(t *testing.T) {
	repo := newStubShopRepo()
	repo.items[1] = &entities.ShopItem{ID: 1, Name: "Capa pin", PriceCents: 350, Stock: 10}
	repo.items[2] = &entities.ShopItem{ID: 2, Name: "CD", PriceCents: 1200, Stock: 3}
	svc := newShopFixture(repo)

	order, err := svc.PlaceOrder(context.Background(), 42, dto.PlaceShopOrderDTO{
		Lines: []dto.ShopOrderLineDTO{
			{ItemID: 1, Quantity: 2},
			{ItemID: 2, Quantity: 1},
		},
	})
	require.NoError(t, err)

	assert.Equal(t, entities.ShopOrderPending, order.Status)
	assert.Equal(t, int64(2*350+1200), order.TotalCents)
	assert.Len(t, order.Lines, 2)
	assert.Equal(t, 8, repo.items[1].Stock)
	assert.Equal(t, 2, repo.items[2].Stock)
}

func TestPlaceOrderInsufficientStock(t *testing.T) {
	repo := newStubShopRepo()
	repo.items[1] = &entities.ShopItem{ID: 1, PriceCents: 350, Stock: 1}
	svc := newShopFixture(repo)

	_, err := svc.PlaceOrder(context.Background(), 42, dto.PlaceShopOrderDTO{
		Lines: []dto.ShopOrderLineDTO{{ItemID: 1, Quantity: 2}},
	})
	require.Error(t, err)

	var httpErr *apperrors.HttpError
	require.ErrorAs(t, err, &httpErr)
	assert.Equal(t, 409, httpErr.Code)
}

func TestPlaceOrderUnknownItem(t *testing.T) {
	repo := newStubShopRepo()
	svc := newShopFixture(repo)

	_, err := svc.PlaceOrder(context.Background(), 42, dto.PlaceShopOrderDTO{
		Lines: []dto.ShopOrderLineDTO{{ItemID: 9, Quantity: 1}},
	})
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}

// UnitPriceCents on the line must snapshot the price at purchase time, not
// reference the item.
func TestPlaceOrderSnapshotsUnitPrice(t *testing.T) {
	repo := newStubShopRepo()
	repo.items[1] = &entities.ShopItem{ID: 1, PriceCents: 500, Stock: 5}
	svc := newShopFixture(repo)

	order, err := svc.PlaceOrder(context.Background(), 42, dto.PlaceShopOrderDTO{
		Lines: []dto.ShopOrderLineDTO{{ItemID: 1, Quantity: 1}},
	})
	require.NoError(t, err)

	repo.items[1].PriceCents = 900
	reloaded, err := svc.GetOrderByID(context.Background(), order.ID)
	require.NoError(t, err)
	require.Len(t, reloaded.Lines, 1)
	assert.Equal(t, int64(500), reloaded.Lines[0].UnitPriceCents)
}
