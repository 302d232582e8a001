package dto

import (
	"time"

	"github.com/aarondl/null/v8"
)

type CreateEventDTO struct {
	Name        string      `json:"name" validate:"required"`
	Description null.String `json:"description"`
	Location    null.String `json:"location"`
	StartDate   time.Time   `json:"start_date" validate:"required"`
	EndDate     *time.Time  `json:"end_date"`
}

type UpdateEventDTO struct {
	Name        null.String `json:"name"`
	Description null.String `json:"description"`
	Location    null.String `json:"location"`
	StartDate   *time.Time  `json:"start_date"`
	EndDate     *time.Time  `json:"end_date"`
}
