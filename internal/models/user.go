package models

import "time"

// User roles. Administrators manage the catalog and receive stock alerts;
// customers place orders and receive announcements.
const (
	RoleCustomer = "customer"
	RoleAdmin    = "admin"
)

// User represents an account, either a customer or a bakery administrator.
type User struct {
	ID       string `json:"id" gorm:"primaryKey;type:varchar(36)" validate:"omitempty,uuid"`
	Username string `json:"username" gorm:"uniqueIndex;type:varchar(100)" validate:"required,min=3,max=100"`
	Email    string `json:"email" gorm:"uniqueIndex;type:varchar(255)" validate:"required,email"`
	Password string `json:"-" gorm:"type:varchar(255)" validate:"required,min=6"`
	Role     string `json:"role" gorm:"type:varchar(20);default:customer" validate:"omitempty,oneof=customer admin"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
