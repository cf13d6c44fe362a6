package repositories

import (
	"time"

	"panaderia/internal/models"
)

// OfferRepository defines the interface for promotional offer data access.
type OfferRepository interface {
	GetAll() ([]models.Offer, error)
	// GetActive returns offers whose validity window contains now.
	GetActive(now time.Time) ([]models.Offer, error)
	GetByID(id string) (*models.Offer, error)
	Create(offer *models.Offer) error
	Update(offer *models.Offer) error
	Delete(id string) error
}
