package models

import "time"

// Branch is a physical bakery location (sucursal). Products belong to a
// branch and pickup orders are routed to one; reports can filter by it.
type Branch struct {
	ID      string `json:"id" gorm:"primaryKey;type:varchar(36)" validate:"omitempty,uuid"`
	Name    string `json:"name" gorm:"uniqueIndex;type:varchar(100)" validate:"required,min=2,max=100"`
	Address string `json:"address" validate:"required,max=255"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
