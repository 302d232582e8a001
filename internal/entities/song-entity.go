package entities

import "rtub-system/pkg/types"

const (
	SongStatusLearning = "learning"
	SongStatusActive   = "active"
	SongStatusRetired  = "retired"
)

type Song struct {
	ID       uint64  `json:"id" db:"id"`
	Title    string  `json:"title" db:"title"`
	Composer *string `json:"composer,omitempty" db:"composer"`
	Arranger *string `json:"arranger,omitempty" db:"arranger"`
	Status   string  `json:"status" db:"status"`

	types.BaseEntity
}
