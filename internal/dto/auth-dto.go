package dto

import "rtub-system/internal/claims"

type LoginDTO struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type RefreshDTO struct {
	RefreshToken string `json:"refresh_token" validate:"required"`
}

type TokenPairDTO struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
}

type LoginResponseDTO struct {
	Tokens    TokenPairDTO      `json:"tokens"`
	Principal *claims.Principal `json:"principal"`
}
