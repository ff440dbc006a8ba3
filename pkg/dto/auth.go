package dto

import (
	"github.com/google/uuid"
	"github.com/yosvanyperez/fondos/pkg/domain"
)

// TokenPair is an access/refresh token couple.
type TokenPair struct {
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
}

// LoginResult is the outcome of a successful login or refresh.
type LoginResult struct {
	UserID       uuid.UUID   `json:"id"`
	Role         domain.Role `json:"role"`
	AccessToken  string      `json:"accessToken"`
	RefreshToken string      `json:"refreshToken"`
}

// RegisterInput carries a registration request into the auth service.
type RegisterInput struct {
	Username string
	Email    string
	Password string
	RoleID   uuid.UUID
}

// TokenValidation is the outcome of validating a live access token.
type TokenValidation struct {
	Username string      `json:"username"`
	Role     domain.Role `json:"role"`
}
