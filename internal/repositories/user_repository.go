package repositories

import "panaderia/internal/models"

// UserRepository defines the interface for user data access.
type UserRepository interface {
	Create(user *models.User) error
	GetByUsername(username string) (*models.User, error)
	GetByEmail(email string) (*models.User, error)
	GetByID(id string) (*models.User, error)
	// ListByRole returns all users with the given role. Used to resolve
	// notification recipients (administrators for alerts, customers for
	// announcements).
	ListByRole(role string) ([]models.User, error)
}
