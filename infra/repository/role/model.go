package role

import "github.com/google/uuid"

// Role is a role record in the database. Code is the stable identifier;
// Name is the display label.
type Role struct {
	ID   uuid.UUID `gorm:"type:uuid;primaryKey"`
	Code string    `gorm:"size:50;uniqueIndex;not null"`
	Name string    `gorm:"size:50;uniqueIndex;not null"`
}

// TableName specifies the table name for the Role model.
func (Role) TableName() string {
	return "roles"
}
