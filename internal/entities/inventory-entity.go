package entities

import "rtub-system/pkg/types"

type InventoryItem struct {
	ID           uint64  `json:"id" db:"id"`
	Name         string  `json:"name" db:"name"`
	Kind         string  `json:"kind" db:"kind"`
	SerialNumber *string `json:"serial_number,omitempty" db:"serial_number"`
	Condition    *string `json:"condition,omitempty" db:"condition"`
	HolderID     *uint64 `json:"holder_id,omitempty" db:"holder_id"`
	Notes        *string `json:"notes,omitempty" db:"notes"`

	HolderName *string `json:"holder_name,omitempty" db:"-"`

	types.BaseEntity
}
