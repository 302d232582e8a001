package dto

import "github.com/aarondl/null/v8"

type CreateShopItemDTO struct {
	Name        string      `json:"name" validate:"required"`
	Description null.String `json:"description"`
	PriceCents  int64       `json:"price_cents" validate:"gte=0"`
	Stock       int         `json:"stock" validate:"gte=0"`
}

type UpdateShopItemDTO struct {
	Name        null.String `json:"name"`
	Description null.String `json:"description"`
	PriceCents  *int64      `json:"price_cents" validate:"omitempty,gte=0"`
	Stock       *int        `json:"stock" validate:"omitempty,gte=0"`
}

type ShopOrderLineDTO struct {
	ItemID   uint64 `json:"item_id" validate:"required"`
	Quantity int    `json:"quantity" validate:"required,gt=0"`
}

type PlaceShopOrderDTO struct {
	Lines []ShopOrderLineDTO `json:"lines" validate:"required,min=1,dive"`
}

type UpdateShopOrderStatusDTO struct {
	Status string `json:"status" validate:"required,oneof=pending paid delivered cancelled"`
}
