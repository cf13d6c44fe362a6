package models

import "time"

// OrderStatus is the lifecycle state of an order. Transitions are monotonic
// (received -> in_preparation -> ready -> delivered); cancellation is allowed
// from any non-terminal state.
type OrderStatus string

const (
	StatusReceived      OrderStatus = "received"
	StatusInPreparation OrderStatus = "in_preparation"
	StatusReady         OrderStatus = "ready"
	StatusDelivered     OrderStatus = "delivered"
	StatusCancelled     OrderStatus = "cancelled"
)

// Valid reports whether s is one of the known order statuses.
func (s OrderStatus) Valid() bool {
	switch s {
	case StatusReceived, StatusInPreparation, StatusReady, StatusDelivered, StatusCancelled:
		return true
	}
	return false
}

// Terminal reports whether no further transitions are possible from s.
func (s OrderStatus) Terminal() bool {
	return s == StatusDelivered || s == StatusCancelled
}

// Delivery modes.
const (
	DeliveryPickup = "pickup"
	DeliveryHome   = "home_delivery"
)

// Order is a customer order. Total is computed once at checkout from the
// product prices at that moment and is never recomputed afterwards.
type Order struct {
	ID           string      `json:"id" gorm:"primaryKey;type:varchar(36)"`
	UserID       string      `json:"user_id" gorm:"type:varchar(36);index"`
	Status       OrderStatus `json:"status" gorm:"type:varchar(20);index"`
	Total        float64     `json:"total"`
	DeliveryMode string      `json:"delivery_mode" gorm:"type:varchar(20)"`
	Address      string      `json:"address,omitempty"`
	BranchID     string      `json:"branch_id,omitempty" gorm:"type:varchar(36);index"`
	Lines        []OrderLine `json:"lines" gorm:"constraint:OnDelete:CASCADE"`

	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
	CompletedAt *time.Time `json:"completed_at,omitempty"`
}

// OrderLine is a single product position inside an order. Lines are created
// at checkout together with the order and are immutable afterwards.
type OrderLine struct {
	ID        string `json:"id" gorm:"primaryKey;type:varchar(36)"`
	OrderID   string `json:"order_id" gorm:"type:varchar(36);index"`
	ProductID string `json:"product_id" gorm:"type:varchar(36)" validate:"required,uuid"`
	Quantity  int    `json:"quantity" validate:"required,gt=0"`
}

// Subtotal prices the line against the product's current price. Reports use
// this, so a completed order's line subtotals can legitimately diverge from
// its stored Total after a price change.
func (l *OrderLine) Subtotal(currentPrice float64) float64 {
	return currentPrice * float64(l.Quantity)
}
