package dto

import "github.com/aarondl/null/v8"

type CreateInventoryItemDTO struct {
	Name         string      `json:"name" validate:"required"`
	Kind         string      `json:"kind" validate:"required"`
	SerialNumber null.String `json:"serial_number"`
	Condition    null.String `json:"condition"`
	HolderID     null.Uint64 `json:"holder_id"`
	Notes        null.String `json:"notes"`
}

type UpdateInventoryItemDTO struct {
	Name         null.String `json:"name"`
	Kind         null.String `json:"kind"`
	SerialNumber null.String `json:"serial_number"`
	Condition    null.String `json:"condition"`
	HolderID     null.Uint64 `json:"holder_id"`
	Notes        null.String `json:"notes"`
}
