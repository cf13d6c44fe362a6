package services

import (
	"log"
	"time"

	"panaderia/internal/models"
	"panaderia/internal/notifier"
	"panaderia/internal/repositories"
	"panaderia/pkg/mailer"
)

// OfferService handles business logic related to promotional offers.
type OfferService struct {
	repo     repositories.OfferRepository
	userRepo repositories.UserRepository
	runner   notifier.Runner
	mailer   mailer.Mailer
}

// NewOfferService creates a new OfferService.
func NewOfferService(repo repositories.OfferRepository, userRepo repositories.UserRepository, runner notifier.Runner, m mailer.Mailer) *OfferService {
	return &OfferService{
		repo:     repo,
		userRepo: userRepo,
		runner:   runner,
		mailer:   m,
	}
}

// GetAllOffers retrieves all offers.
func (s *OfferService) GetAllOffers() ([]models.Offer, error) {
	return s.repo.GetAll()
}

// GetActiveOffers retrieves offers currently in their validity window.
func (s *OfferService) GetActiveOffers() ([]models.Offer, error) {
	return s.repo.GetActive(time.Now())
}

// GetOfferByID retrieves a single offer by its ID.
func (s *OfferService) GetOfferByID(id string) (*models.Offer, error) {
	return s.repo.GetByID(id)
}

// CreateOffer creates a new offer and schedules the announcement to every
// customer with an email address.
func (s *OfferService) CreateOffer(offer *models.Offer) error {
	if err := s.repo.Create(offer); err != nil {
		return err
	}

	snapshot := *offer
	s.runner.Dispatch(func() error {
		users, err := s.userRepo.ListByRole(models.RoleCustomer)
		if err != nil {
			return err
		}
		var recipients []string
		for _, u := range users {
			if u.Email != "" {
				recipients = append(recipients, u.Email)
			}
		}
		if len(recipients) == 0 {
			log.Printf("offers: no customers with email, skipping announcement for offer %s", snapshot.ID)
			return nil
		}
		return s.mailer.Send(notifier.NewOfferAnnouncement(&snapshot, recipients))
	})
	return nil
}

// UpdateOffer applies administrative edits to an offer.
func (s *OfferService) UpdateOffer(offer *models.Offer) error {
	return s.repo.Update(offer)
}

// DeleteOffer deletes an offer by its ID.
func (s *OfferService) DeleteOffer(id string) error {
	return s.repo.Delete(id)
}
