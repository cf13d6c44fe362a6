package services_test

import (
	"testing"
	"time"

	"panaderia/internal/models"
	"panaderia/internal/repositories"
	"panaderia/internal/services"

	"github.com/stretchr/testify/assert"
)

func TestCreateOfferAnnouncesToCustomers(t *testing.T) {
	offerRepo := repositories.NewMockOfferRepository()
	userRepo := repositories.NewMockUserRepository()
	admin, customer := seedUsers(userRepo)

	mail := &fakeMailer{}
	svc := services.NewOfferService(offerRepo, userRepo, &syncRunner{}, mail)

	offer := &models.Offer{
		Title:       "Two croissants for the price of one",
		Description: "Every morning before 9am",
		StartsAt:    time.Now(),
		EndsAt:      time.Now().AddDate(0, 0, 7),
	}
	assert.NoError(t, svc.CreateOffer(offer))
	assert.NotEmpty(t, offer.ID)

	sent := mail.Sent()
	assert.Len(t, sent, 1)
	assert.Equal(t, []string{customer.Email}, sent[0].Recipients)
	assert.NotContains(t, sent[0].Recipients, admin.Email)
	assert.Contains(t, sent[0].Subject, "Special offer")
}

func TestCreateOfferWithNoCustomersIsSilent(t *testing.T) {
	offerRepo := repositories.NewMockOfferRepository()
	userRepo := repositories.NewMockUserRepository()

	mail := &fakeMailer{}
	runner := &syncRunner{}
	svc := services.NewOfferService(offerRepo, userRepo, runner, mail)

	offer := &models.Offer{
		Title:    "Quiet launch",
		StartsAt: time.Now(),
		EndsAt:   time.Now().AddDate(0, 0, 1),
	}
	assert.NoError(t, svc.CreateOffer(offer))
	assert.Empty(t, mail.Sent())
	assert.Empty(t, runner.jobErrs)
}

func TestGetActiveOffers(t *testing.T) {
	offerRepo := repositories.NewMockOfferRepository()
	userRepo := repositories.NewMockUserRepository()
	svc := services.NewOfferService(offerRepo, userRepo, &syncRunner{}, &fakeMailer{})

	now := time.Now()
	current := &models.Offer{Title: "Current offer", StartsAt: now.AddDate(0, 0, -1), EndsAt: now.AddDate(0, 0, 1)}
	expired := &models.Offer{Title: "Expired offer", StartsAt: now.AddDate(0, 0, -10), EndsAt: now.AddDate(0, 0, -5)}
	upcoming := &models.Offer{Title: "Upcoming offer", StartsAt: now.AddDate(0, 0, 5), EndsAt: now.AddDate(0, 0, 10)}
	assert.NoError(t, offerRepo.Create(current))
	assert.NoError(t, offerRepo.Create(expired))
	assert.NoError(t, offerRepo.Create(upcoming))

	active, err := svc.GetActiveOffers()
	assert.NoError(t, err)
	assert.Len(t, active, 1)
	assert.Equal(t, "Current offer", active[0].Title)

	all, err := svc.GetAllOffers()
	assert.NoError(t, err)
	assert.Len(t, all, 3)
}
