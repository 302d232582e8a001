package entities

import (
	"time"

	"rtub-system/pkg/types"
)

// Member is a person on the association roster. Categories, positions and
// roles live in their own tables and are loaded alongside.
type Member struct {
	ID          uint64  `json:"id" db:"id"`
	FullName    string  `json:"full_name" db:"full_name"`
	Nickname    *string `json:"nickname,omitempty" db:"nickname"`
	Email       string  `json:"email" db:"email"`
	PhoneNumber *string `json:"phone_number,omitempty" db:"phone_number"`

	Password string `json:"-" db:"password"`

	AvatarURL *string    `json:"avatar_url,omitempty" db:"avatar_url"`
	JoinedAt  *time.Time `json:"joined_at,omitempty" db:"joined_at"`
	// TunoSince anchors the years-as-Tuno claim and the Tunossauro threshold.
	TunoSince *time.Time `json:"tuno_since,omitempty" db:"tuno_since"`
	IsFounder bool       `json:"is_founder" db:"is_founder"`
	IsActive  bool       `json:"is_active" db:"is_active"`

	Roles      []string `json:"roles" db:"-"`
	Categories []string `json:"categories" db:"-"`
	Positions  []string `json:"positions" db:"-"`

	types.BaseEntity
	types.SoftDelete
}

// YearsAsTuno counts whole years since the member became Tuno; 0 when the
// member never reached Tuno.
func (m *Member) YearsAsTuno(now time.Time) int {
	if m.TunoSince == nil {
		return 0
	}
	years := now.Year() - m.TunoSince.Year()
	anniversary := m.TunoSince.AddDate(years, 0, 0)
	if anniversary.After(now) {
		years--
	}
	if years < 0 {
		return 0
	}
	return years
}
