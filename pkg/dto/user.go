package dto

import (
	"time"

	"github.com/google/uuid"
	"github.com/yosvanyperez/fondos/pkg/domain"
)

// UserRead is a read-optimized DTO for user queries and API responses.
type UserRead struct {
	ID        uuid.UUID   `json:"id"`
	Username  string      `json:"username"`
	Email     string      `json:"email"`
	Role      domain.Role `json:"role,omitempty"`
	RoleLabel string      `json:"roleLabel,omitempty"`
	CreatedAt time.Time   `json:"createdAt"`
}

// UserCreate carries the fields needed to register a user. The salted hash is
// computed by the auth service before it reaches the repository.
type UserCreate struct {
	Username     string
	Email        string
	RoleID       uuid.UUID
	PasswordHash []byte
	PasswordSalt []byte
}

// UserUpdate renames a user or changes their email.
type UserUpdate struct {
	Username string
	Email    string
}

// Credentials is the stored password material of one user.
type Credentials struct {
	UserID       uuid.UUID
	PasswordHash []byte
	PasswordSalt []byte
}

// RoleRead is the outward representation of a role row.
type RoleRead struct {
	ID    uuid.UUID   `json:"id"`
	Code  domain.Role `json:"code"`
	Label string      `json:"name"`
}
