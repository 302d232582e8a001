package entities

import (
	"time"

	"rtub-system/pkg/types"
)

const (
	ShopOrderPending   = "pending"
	ShopOrderPaid      = "paid"
	ShopOrderDelivered = "delivered"
	ShopOrderCancelled = "cancelled"
)

type ShopItem struct {
	ID          uint64  `json:"id" db:"id"`
	Name        string  `json:"name" db:"name"`
	Description *string `json:"description,omitempty" db:"description"`
	PriceCents  int64   `json:"price_cents" db:"price_cents"`
	Stock       int     `json:"stock" db:"stock"`

	types.BaseEntity
}

type ShopOrder struct {
	ID         uint64    `json:"id" db:"id"`
	MemberID   uint64    `json:"member_id" db:"member_id"`
	Status     string    `json:"status" db:"status"`
	TotalCents int64     `json:"total_cents" db:"total_cents"`
	PlacedAt   time.Time `json:"placed_at" db:"placed_at"`

	Lines []ShopOrderLine `json:"lines,omitempty" db:"-"`

	types.BaseEntity
}

type ShopOrderLine struct {
	ID             uint64 `json:"id" db:"id"`
	OrderID        uint64 `json:"order_id" db:"order_id"`
	ItemID         uint64 `json:"item_id" db:"item_id"`
	Quantity       int    `json:"quantity" db:"quantity"`
	UnitPriceCents int64  `json:"unit_price_cents" db:"unit_price_cents"`
}
