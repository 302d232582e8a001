package dto

import (
	"time"

	"github.com/aarondl/null/v8"
)

type CreateMemberDTO struct {
	FullName    string      `json:"full_name" validate:"required"`
	Nickname    null.String `json:"nickname"`
	Email       string      `json:"email" validate:"required,email"`
	PhoneNumber null.String `json:"phone_number"`
	Password    string      `json:"password" validate:"required,min=8"`
	JoinedAt    *time.Time  `json:"joined_at"`
	IsFounder   bool        `json:"is_founder"`
	Roles       []string    `json:"roles"`
	Categories  []string    `json:"categories"`
}

type UpdateMemberDTO struct {
	FullName    null.String `json:"full_name"`
	Nickname    null.String `json:"nickname"`
	Email       null.String `json:"email" validate:"omitempty,email"`
	PhoneNumber null.String `json:"phone_number"`
	AvatarURL   null.String `json:"avatar_url"`
	TunoSince   *time.Time  `json:"tuno_since"`
	IsActive    *bool       `json:"is_active"`
}

type GrantCategoryDTO struct {
	Category string `json:"category" validate:"required"`
}

type AssignPositionDTO struct {
	Position string `json:"position" validate:"required"`
}

type SetRolesDTO struct {
	Roles []string `json:"roles" validate:"required,min=1,dive,required"`
}

type MemberResponseDTO struct {
	ID          uint64     `json:"id"`
	FullName    string     `json:"full_name"`
	Nickname    *string    `json:"nickname,omitempty"`
	Email       string     `json:"email"`
	PhoneNumber *string    `json:"phone_number,omitempty"`
	AvatarURL   *string    `json:"avatar_url,omitempty"`
	JoinedAt    *time.Time `json:"joined_at,omitempty"`
	TunoSince   *time.Time `json:"tuno_since,omitempty"`
	IsFounder   bool       `json:"is_founder"`
	IsActive    bool       `json:"is_active"`
	Roles       []string   `json:"roles"`
	Categories  []string   `json:"categories"`
	Positions   []string   `json:"positions"`
}

type ShortMemberDTO struct {
	ID       uint64  `json:"id"`
	FullName string  `json:"full_name"`
	Nickname *string `json:"nickname,omitempty"`
}
