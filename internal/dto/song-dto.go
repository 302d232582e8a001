package dto

import "github.com/aarondl/null/v8"

type CreateSongDTO struct {
	Title    string      `json:"title" validate:"required"`
	Composer null.String `json:"composer"`
	Arranger null.String `json:"arranger"`
	Status   string      `json:"status" validate:"omitempty,oneof=learning active retired"`
}

type UpdateSongDTO struct {
	Title    null.String `json:"title"`
	Composer null.String `json:"composer"`
	Arranger null.String `json:"arranger"`
	Status   null.String `json:"status" validate:"omitempty,oneof=learning active retired"`
}
