package currency

import "github.com/google/uuid"

// Currency is a currency record in the database. Deletion marks the row
// inactive; re-registering the same name reactivates it.
type Currency struct {
	ID     uuid.UUID `gorm:"type:uuid;primaryKey"`
	Name   string    `gorm:"size:50;uniqueIndex;not null"`
	Active bool      `gorm:"not null;default:true"`
}

// TableName specifies the table name for the Currency model.
func (Currency) TableName() string {
	return "currencies"
}
