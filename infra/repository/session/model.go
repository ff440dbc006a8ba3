package session

import (
	"time"

	"github.com/google/uuid"
)

// Session is one refresh-token registry row. Tokens are stored as SHA-256
// hex digests; a session is revoked on use (rotation) or on mismatch.
type Session struct {
	ID               uuid.UUID `gorm:"type:uuid;primaryKey"`
	UserID           uuid.UUID `gorm:"type:uuid;index;not null"`
	RefreshTokenHash string    `gorm:"size:64;uniqueIndex;not null"`
	AccessTokenHash  string    `gorm:"size:64;not null"`
	ExpiresAt        time.Time `gorm:"not null"`
	RevokedAt        *time.Time
	CreatedAt        time.Time
}

// TableName specifies the table name for the Session model.
func (Session) TableName() string {
	return "sessions"
}
