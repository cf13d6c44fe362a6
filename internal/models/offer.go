package models

import "time"

// Offer is a promotion covering one or more products during a validity window.
type Offer struct {
	ID          string    `json:"id" gorm:"primaryKey;type:varchar(36)" validate:"omitempty,uuid"`
	Title       string    `json:"title" validate:"required,min=3,max=150"`
	Description string    `json:"description" validate:"omitempty,max=500"`
	StartsAt    time.Time `json:"starts_at" validate:"required"`
	EndsAt      time.Time `json:"ends_at" validate:"required,gtfield=StartsAt"`
	Products    []Product `json:"products,omitempty" gorm:"many2many:offer_products"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// ActiveAt reports whether the offer's validity window contains t.
func (o *Offer) ActiveAt(t time.Time) bool {
	return !t.Before(o.StartsAt) && !t.After(o.EndsAt)
}
