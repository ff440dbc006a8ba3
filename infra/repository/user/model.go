package user

import (
	"time"

	"github.com/google/uuid"
	"github.com/yosvanyperez/fondos/infra/repository/role"
)

// User is a user record in the database. Soft deletion flips Active and sets
// DeletedAt; the username column is never mutated. Uniqueness only applies
// to active rows, so a soft-deleted account never blocks re-registration of
// its username or email.
type User struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey"`
	RoleID       uuid.UUID `gorm:"type:uuid;index;not null"`
	Role         role.Role
	Username     string `gorm:"size:255;uniqueIndex:uniq_users_username,where:active = true;not null"`
	Email        string `gorm:"size:255;uniqueIndex:uniq_users_email,where:active = true;not null"`
	Active       bool   `gorm:"not null;default:true"`
	PasswordHash []byte `gorm:"not null"`
	PasswordSalt []byte `gorm:"not null"`
	CreatedAt    time.Time
	UpdatedAt    time.Time
	DeletedAt    *time.Time
}

// TableName specifies the table name for the User model.
func (User) TableName() string {
	return "users"
}
