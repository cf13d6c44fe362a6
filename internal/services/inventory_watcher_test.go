package services_test

import (
	"strings"
	"testing"

	"panaderia/internal/models"
	"panaderia/internal/repositories"
	"panaderia/internal/services"

	"github.com/stretchr/testify/assert"
)

func TestDecideStockTransition(t *testing.T) {
	tests := []struct {
		name     string
		prev     services.StockSnapshot
		newStock int
		want     services.StockDecision
	}{
		{
			name:     "high to high, nothing happens",
			prev:     services.StockSnapshot{Stock: 50},
			newStock: 40,
			want:     services.StockDecision{Available: true},
		},
		{
			name:     "crossing into low band alerts and sets flag",
			prev:     services.StockSnapshot{Stock: 50},
			newStock: 3,
			want: services.StockDecision{
				Available:         true,
				LowStockAlertSent: true,
				Alerts:            []services.StockAlert{services.AlertLowStock},
			},
		},
		{
			name:     "staying in low band with flag set stays silent",
			prev:     services.StockSnapshot{Stock: 3, LowStockAlertSent: true},
			newStock: 3,
			want: services.StockDecision{
				Available:         true,
				LowStockAlertSent: true,
			},
		},
		{
			name:     "zero-crossing alerts, low flag untouched",
			prev:     services.StockSnapshot{Stock: 3, LowStockAlertSent: true},
			newStock: 0,
			want: services.StockDecision{
				Available:           false,
				OutOfStockAlertSent: true,
				LowStockAlertSent:   true,
				Alerts:              []services.StockAlert{services.AlertOutOfStock},
			},
		},
		{
			name:     "staying at zero does not re-alert",
			prev:     services.StockSnapshot{Stock: 0, OutOfStockAlertSent: true, LowStockAlertSent: true},
			newStock: 0,
			want: services.StockDecision{
				Available:           false,
				OutOfStockAlertSent: true,
				LowStockAlertSent:   true,
			},
		},
		{
			name:     "replenish above threshold clears both flags",
			prev:     services.StockSnapshot{Stock: 0, OutOfStockAlertSent: true, LowStockAlertSent: true},
			newStock: 20,
			want:     services.StockDecision{Available: true},
		},
		{
			name:     "replenish from zero into low band re-alerts low stock",
			prev:     services.StockSnapshot{Stock: 0, OutOfStockAlertSent: true},
			newStock: 4,
			want: services.StockDecision{
				Available:         true,
				LowStockAlertSent: true,
				Alerts:            []services.StockAlert{services.AlertLowStock},
			},
		},
		{
			name:     "dropping within the low band after re-arm alerts again",
			prev:     services.StockSnapshot{Stock: 4},
			newStock: 2,
			want: services.StockDecision{
				Available:         true,
				LowStockAlertSent: true,
				Alerts:            []services.StockAlert{services.AlertLowStock},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := services.DecideStockTransition(tt.prev, tt.newStock)
			assert.Equal(t, tt.want, got)
		})
	}
}

// The full lifecycle from the shop floor: a product is created with plenty of
// stock, sells down into the low band, runs out, and is restocked.
func TestStockScenario_FiftyToThreeToZeroToTwenty(t *testing.T) {
	productRepo := repositories.NewMockProductRepository()
	userRepo := repositories.NewMockUserRepository()
	seedUsers(userRepo)

	mail := &fakeMailer{}
	runner := &syncRunner{}
	watcher := services.NewInventoryWatcher(userRepo, runner, mail, nil)
	svc := services.NewProductService(productRepo, watcher)

	product := &models.Product{Name: "Sourdough loaf", Price: 1800, Stock: 50}
	assert.NoError(t, svc.CreateProduct(product))
	// Creation announces to customers but raises no stock alert.
	assert.Len(t, mail.Sent(), 1)
	assert.Contains(t, mail.Sent()[0].Subject, "New at the bakery")

	// 50 -> 3: one low-stock alert, flag set.
	p, err := svc.SetStock(product.ID, 3)
	assert.NoError(t, err)
	assert.True(t, p.Available)
	assert.True(t, p.LowStockAlertSent)
	assert.Len(t, mail.Sent(), 2)
	assert.Contains(t, mail.Sent()[1].Subject, "Low stock")

	// 3 -> 3: silent.
	_, err = svc.SetStock(product.ID, 3)
	assert.NoError(t, err)
	assert.Len(t, mail.Sent(), 2)

	// 3 -> 0: out-of-stock alert, low flag untouched, unavailable.
	p, err = svc.SetStock(product.ID, 0)
	assert.NoError(t, err)
	assert.False(t, p.Available)
	assert.True(t, p.OutOfStockAlertSent)
	assert.True(t, p.LowStockAlertSent)
	assert.Len(t, mail.Sent(), 3)
	assert.Contains(t, mail.Sent()[2].Subject, "Out of stock")

	// 0 -> 20: both flags reset, available again, no alert.
	p, err = svc.SetStock(product.ID, 20)
	assert.NoError(t, err)
	assert.True(t, p.Available)
	assert.False(t, p.OutOfStockAlertSent)
	assert.False(t, p.LowStockAlertSent)
	assert.Len(t, mail.Sent(), 3)
}

func TestAvailabilityTracksStockAfterEveryMutation(t *testing.T) {
	productRepo := repositories.NewMockProductRepository()
	userRepo := repositories.NewMockUserRepository()
	seedUsers(userRepo)

	watcher := services.NewInventoryWatcher(userRepo, &syncRunner{}, &fakeMailer{}, nil)
	svc := services.NewProductService(productRepo, watcher)

	product := &models.Product{Name: "Baguette", Price: 900, Stock: 0}
	assert.NoError(t, svc.CreateProduct(product))
	assert.False(t, product.Available)

	for _, stock := range []int{10, 5, 0, 1, 0, 30} {
		p, err := svc.SetStock(product.ID, stock)
		assert.NoError(t, err)
		assert.Equal(t, stock > 0, p.Available, "stock=%d", stock)
	}
}

func TestStockAlertsGoToAdministrators(t *testing.T) {
	productRepo := repositories.NewMockProductRepository()
	userRepo := repositories.NewMockUserRepository()
	admin, customer := seedUsers(userRepo)

	mail := &fakeMailer{}
	watcher := services.NewInventoryWatcher(userRepo, &syncRunner{}, mail, nil)
	svc := services.NewProductService(productRepo, watcher)

	product := &models.Product{Name: "Concha", Price: 700, Stock: 10}
	assert.NoError(t, productRepo.Create(product))

	_, err := svc.SetStock(product.ID, 0)
	assert.NoError(t, err)

	sent := mail.Sent()
	assert.Len(t, sent, 1)
	assert.Equal(t, []string{admin.Email}, sent[0].Recipients)
	assert.NotContains(t, sent[0].Recipients, customer.Email)
}

func TestAlertWithNoRecipientsIsANoOp(t *testing.T) {
	productRepo := repositories.NewMockProductRepository()
	userRepo := repositories.NewMockUserRepository() // no users at all

	mail := &fakeMailer{}
	runner := &syncRunner{}
	watcher := services.NewInventoryWatcher(userRepo, runner, mail, nil)
	svc := services.NewProductService(productRepo, watcher)

	product := &models.Product{Name: "Empanada", Price: 1200, Stock: 2}
	assert.NoError(t, productRepo.Create(product))

	_, err := svc.SetStock(product.ID, 0)
	assert.NoError(t, err)
	assert.Empty(t, mail.Sent())
	assert.Empty(t, runner.jobErrs, "missing recipients must not be a job failure")
}

func TestNewProductAnnouncementGoesToCustomers(t *testing.T) {
	productRepo := repositories.NewMockProductRepository()
	userRepo := repositories.NewMockUserRepository()
	admin, customer := seedUsers(userRepo)

	mail := &fakeMailer{}
	watcher := services.NewInventoryWatcher(userRepo, &syncRunner{}, mail, nil)
	svc := services.NewProductService(productRepo, watcher)

	product := &models.Product{Name: "Tres leches cake", Price: 4500, Stock: 6}
	assert.NoError(t, svc.CreateProduct(product))

	sent := mail.Sent()
	assert.Len(t, sent, 1)
	assert.Equal(t, []string{customer.Email}, sent[0].Recipients)
	assert.NotContains(t, sent[0].Recipients, admin.Email)
	assert.True(t, strings.Contains(sent[0].TextBody, "₡4500.00"))
}
