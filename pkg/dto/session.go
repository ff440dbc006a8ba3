package dto

import (
	"time"

	"github.com/google/uuid"
)

// SessionCreate records a freshly issued token pair. Tokens are stored as
// SHA-256 hex digests, never verbatim.
type SessionCreate struct {
	UserID           uuid.UUID
	RefreshTokenHash string
	AccessTokenHash  string
	ExpiresAt        time.Time
}

// SessionRead is one refresh-token session row.
type SessionRead struct {
	ID               uuid.UUID
	UserID           uuid.UUID
	RefreshTokenHash string
	AccessTokenHash  string
	ExpiresAt        time.Time
	RevokedAt        *time.Time
}

// Revoked reports whether the session was already rotated or invalidated.
func (s SessionRead) Revoked() bool {
	return s.RevokedAt != nil
}

// Expired reports whether the session TTL has elapsed.
func (s SessionRead) Expired(now time.Time) bool {
	return now.After(s.ExpiresAt)
}
