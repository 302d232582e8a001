package services

import (
	"context"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"rtub-system/internal/dto"
	"rtub-system/internal/entities"
	domainevents "rtub-system/internal/events"
	"rtub-system/internal/repositories"
	"rtub-system/pkg/eventbus"
	"rtub-system/pkg/types"
)

type ShopServiceInterface interface {
	GetItemByID(ctx context.Context, id uint64) (*entities.ShopItem, error)
	GetItems(ctx context.Context, filter types.Filter) ([]*entities.ShopItem, uint64, error)
	CreateItem(ctx context.Context, payload dto.CreateShopItemDTO) (*entities.ShopItem, error)
	UpdateItem(ctx context.Context, id uint64, payload dto.UpdateShopItemDTO) (*entities.ShopItem, error)
	DeleteItem(ctx context.Context, id uint64) error

	PlaceOrder(ctx context.Context, memberID uint64, payload dto.PlaceShopOrderDTO) (*entities.ShopOrder, error)
	GetOrderByID(ctx context.Context, id uint64) (*entities.ShopOrder, error)
	GetOrders(ctx context.Context, filter types.Filter) ([]*entities.ShopOrder, uint64, error)
	SetOrderStatus(ctx context.Context, id uint64, status string) error
}

type ShopService struct {
	shopRepo  repositories.ShopRepositoryInterface
	txManager repositories.TxManagerInterface
	bus       *eventbus.Bus
	logger    *zap.Logger
}

func NewShopService(
	shopRepo repositories.ShopRepositoryInterface,
	txManager repositories.TxManagerInterface,
	bus *eventbus.Bus,
	logger *zap.Logger,
) ShopServiceInterface {
	return &ShopService{shopRepo: shopRepo, txManager: txManager, bus: bus, logger: logger}
}

func (s *ShopService) GetItemByID(ctx context.Context, id uint64) (*entities.ShopItem, error) {
	return s.shopRepo.FindItemByID(ctx, nil, id)
}

func (s *ShopService) GetItems(ctx context.Context, filter types.Filter) ([]*entities.ShopItem, uint64, error) {
	return s.shopRepo.GetItems(ctx, filter)
}

func (s *ShopService) CreateItem(ctx context.Context, payload dto.CreateShopItemDTO) (*entities.ShopItem, error) {
	item := entities.ShopItem{
		Name:        payload.Name,
		Description: payload.Description.Ptr(),
		PriceCents:  payload.PriceCents,
		Stock:       payload.Stock,
	}

	newID, err := s.shopRepo.CreateItem(ctx, item)
	if err != nil {
		return nil, err
	}
	return s.shopRepo.FindItemByID(ctx, nil, newID)
}

func (s *ShopService) UpdateItem(ctx context.Context, id uint64, payload dto.UpdateShopItemDTO) (*entities.ShopItem, error) {
	item, err := s.shopRepo.FindItemByID(ctx, nil, id)
	if err != nil {
		return nil, err
	}

	if payload.Name.Valid {
		item.Name = payload.Name.String
	}
	if payload.Description.Valid {
		item.Description = payload.Description.Ptr()
	}
	if payload.PriceCents != nil {
		item.PriceCents = *payload.PriceCents
	}
	if payload.Stock != nil {
		item.Stock = *payload.Stock
	}

	if err := s.shopRepo.UpdateItem(ctx, id, *item); err != nil {
		return nil, err
	}
	return s.shopRepo.FindItemByID(ctx, nil, id)
}

func (s *ShopService) DeleteItem(ctx context.Context, id uint64) error {
	return s.shopRepo.DeleteItem(ctx, id)
}

// PlaceOrder runs in one transaction: stock is read with a row lock, the
// order total is priced from the items as they are now, stock is decremented,
// and the order with its lines is written. Any failed line rolls back the
// whole order.
func (s *ShopService) PlaceOrder(ctx context.Context, memberID uint64, payload dto.PlaceShopOrderDTO) (*entities.ShopOrder, error) {
	var orderID uint64

	err := s.txManager.RunInTransaction(ctx, func(tx pgx.Tx) error {
		var totalCents int64
		lines := make([]entities.ShopOrderLine, 0, len(payload.Lines))

		for _, lineDTO := range payload.Lines {
			item, err := s.shopRepo.FindItemByID(ctx, tx, lineDTO.ItemID)
			if err != nil {
				return err
			}
			if err := s.shopRepo.DecrementStock(ctx, tx, item.ID, lineDTO.Quantity); err != nil {
				return err
			}
			totalCents += item.PriceCents * int64(lineDTO.Quantity)
			lines = append(lines, entities.ShopOrderLine{
				ItemID:         item.ID,
				Quantity:       lineDTO.Quantity,
				UnitPriceCents: item.PriceCents,
			})
		}

		var err error
		orderID, err = s.shopRepo.CreateOrder(ctx, tx, entities.ShopOrder{
			MemberID:   memberID,
			Status:     entities.ShopOrderPending,
			TotalCents: totalCents,
		})
		if err != nil {
			return err
		}

		for _, line := range lines {
			line.OrderID = orderID
			if err := s.shopRepo.CreateOrderLine(ctx, tx, line); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	order, err := s.shopRepo.FindOrderByID(ctx, orderID)
	if err != nil {
		return nil, err
	}

	s.logger.Info("shop order placed",
		zap.Uint64("order_id", orderID),
		zap.Uint64("member_id", memberID),
		zap.Int64("total_cents", order.TotalCents),
	)

	s.bus.Publish(ctx, domainevents.OrderPlaced{
		OrderID:    orderID,
		MemberID:   memberID,
		TotalCents: order.TotalCents,
	})

	return order, nil
}

func (s *ShopService) GetOrderByID(ctx context.Context, id uint64) (*entities.ShopOrder, error) {
	return s.shopRepo.FindOrderByID(ctx, id)
}

func (s *ShopService) GetOrders(ctx context.Context, filter types.Filter) ([]*entities.ShopOrder, uint64, error) {
	return s.shopRepo.GetOrders(ctx, filter)
}

func (s *ShopService) SetOrderStatus(ctx context.Context, id uint64, status string) error {
	return s.shopRepo.SetOrderStatus(ctx, id, status)
}
