package repositories

import (
	"fmt"
	"time"

	"panaderia/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GORMOfferRepository is a GORM implementation of OfferRepository.
type GORMOfferRepository struct {
	db *gorm.DB
}

// NewGORMOfferRepository creates a new instance of GORMOfferRepository.
func NewGORMOfferRepository(db *gorm.DB) *GORMOfferRepository {
	return &GORMOfferRepository{db: db}
}

// GetAll retrieves all offers with their products.
func (r *GORMOfferRepository) GetAll() ([]models.Offer, error) {
	var offers []models.Offer
	if err := r.db.Preload("Products").Find(&offers).Error; err != nil {
		return nil, fmt.Errorf("failed to get all offers: %w", err)
	}
	return offers, nil
}

// GetActive retrieves offers whose validity window contains now.
func (r *GORMOfferRepository) GetActive(now time.Time) ([]models.Offer, error) {
	var offers []models.Offer
	err := r.db.Preload("Products").
		Where("starts_at <= ? AND ends_at >= ?", now, now).
		Find(&offers).Error
	if err != nil {
		return nil, fmt.Errorf("failed to get active offers: %w", err)
	}
	return offers, nil
}

// GetByID retrieves a single offer with its products.
func (r *GORMOfferRepository) GetByID(id string) (*models.Offer, error) {
	var offer models.Offer
	if err := r.db.Preload("Products").First(&offer, "id = ?", id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, fmt.Errorf("offer with ID %s not found", id)
		}
		return nil, fmt.Errorf("failed to get offer by ID %s: %w", id, err)
	}
	return &offer, nil
}

// Create creates a new offer and its product associations.
func (r *GORMOfferRepository) Create(offer *models.Offer) error {
	if offer.ID == "" {
		offer.ID = uuid.New().String()
	}
	if err := r.db.Create(offer).Error; err != nil {
		return fmt.Errorf("failed to create offer: %w", err)
	}
	return nil
}

// Update updates an existing offer.
func (r *GORMOfferRepository) Update(offer *models.Offer) error {
	res := r.db.Omit("Products").Save(offer)
	if res.Error != nil {
		return fmt.Errorf("failed to update offer: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("offer with ID %s not found for update", offer.ID)
	}
	return nil
}

// Delete deletes an offer by its ID.
func (r *GORMOfferRepository) Delete(id string) error {
	res := r.db.Delete(&models.Offer{}, "id = ?", id)
	if res.Error != nil {
		return fmt.Errorf("failed to delete offer: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("offer with ID %s not found for deletion", id)
	}
	return nil
}
