package repositories

import (
	"panaderia/internal/models"
)

// OrderRepository defines the interface for order data access. Create persists
// the order together with its lines; Update persists status and completion
// changes (lines are immutable after checkout).
type OrderRepository interface {
	GetAll() ([]models.Order, error)
	GetByUser(userID string) ([]models.Order, error)
	GetByID(id string) (*models.Order, error)
	Create(order *models.Order) error
	Update(order *models.Order) error
}
