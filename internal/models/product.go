package models

import "time"

// LowStockThreshold is the stock level at or below which (but above zero) a
// low-stock alert is scheduled for administrators.
const LowStockThreshold = 5

// Product represents an item in the bakery catalog.
type Product struct {
	ID          string  `json:"id" gorm:"primaryKey;type:varchar(36)" validate:"omitempty,uuid"`
	Name        string  `json:"name" validate:"required,min=3,max=100"`
	Description string  `json:"description" validate:"omitempty,max=500"`
	Price       float64 `json:"price" validate:"required,gt=0"`
	Stock       int     `json:"stock" validate:"gte=0"`
	Available   bool    `json:"available"`
	BranchID    string  `json:"branch_id,omitempty" gorm:"type:varchar(36);index" validate:"omitempty,uuid"`

	// Alert bookkeeping so administrators are warned once per crossing,
	// not on every save while the stock sits below the threshold.
	OutOfStockAlertSent bool `json:"out_of_stock_alert_sent"`
	LowStockAlertSent   bool `json:"low_stock_alert_sent"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
