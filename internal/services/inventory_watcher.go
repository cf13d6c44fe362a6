package services

import (
	"log"

	"panaderia/internal/models"
	"panaderia/internal/notifier"
	"panaderia/internal/repositories"
	"panaderia/pkg/mailer"
	"panaderia/pkg/rabbitmq"
)

// StockAlert identifies an inventory alert scheduled by a stock transition.
type StockAlert int

const (
	AlertOutOfStock StockAlert = iota
	AlertLowStock
)

// StockSnapshot captures the stock-relevant state of a product before a
// mutation.
type StockSnapshot struct {
	Stock               int
	OutOfStockAlertSent bool
	LowStockAlertSent   bool
}

// SnapshotOf extracts the stock snapshot from a product.
func SnapshotOf(p *models.Product) StockSnapshot {
	return StockSnapshot{
		Stock:               p.Stock,
		OutOfStockAlertSent: p.OutOfStockAlertSent,
		LowStockAlertSent:   p.LowStockAlertSent,
	}
}

// StockDecision is the outcome of a stock transition: the resulting
// availability and alert flags, plus the alerts to schedule. Computing all of
// it in one place keeps the pre-save/post-save logic free of hidden state.
type StockDecision struct {
	Available           bool
	OutOfStockAlertSent bool
	LowStockAlertSent   bool
	Alerts              []StockAlert
}

// DecideStockTransition decides what a stock change from prev to newStock
// means: availability always tracks stock > 0; an out-of-stock alert fires on
// each zero-crossing; a low-stock alert fires when stock enters
// (0, LowStockThreshold] unless one was already sent at or below the
// threshold; both flags re-arm once the stock recovers.
func DecideStockTransition(prev StockSnapshot, newStock int) StockDecision {
	d := StockDecision{
		Available:           newStock > 0,
		OutOfStockAlertSent: prev.OutOfStockAlertSent,
		LowStockAlertSent:   prev.LowStockAlertSent,
	}

	if prev.Stock > 0 && newStock == 0 {
		d.Alerts = append(d.Alerts, AlertOutOfStock)
		d.OutOfStockAlertSent = true
	}

	if newStock > 0 && newStock <= models.LowStockThreshold &&
		(prev.Stock > models.LowStockThreshold || !prev.LowStockAlertSent) {
		d.Alerts = append(d.Alerts, AlertLowStock)
		d.LowStockAlertSent = true
	}

	if prev.Stock <= models.LowStockThreshold && newStock > models.LowStockThreshold {
		d.LowStockAlertSent = false
	}
	if prev.Stock == 0 && newStock > 0 {
		d.OutOfStockAlertSent = false
	}

	return d
}

// InventoryWatcher schedules the email side effects of inventory changes.
// All sends go through the dispatcher so the triggering mutation never waits
// on delivery.
type InventoryWatcher struct {
	userRepo repositories.UserRepository
	runner   notifier.Runner
	mailer   mailer.Mailer
	mq       *rabbitmq.Client // optional, may be nil
}

// NewInventoryWatcher creates a new InventoryWatcher. mq may be nil when no
// broker is configured.
func NewInventoryWatcher(userRepo repositories.UserRepository, runner notifier.Runner, m mailer.Mailer, mq *rabbitmq.Client) *InventoryWatcher {
	return &InventoryWatcher{
		userRepo: userRepo,
		runner:   runner,
		mailer:   m,
		mq:       mq,
	}
}

// ScheduleAlerts enqueues the alerts decided for a stock transition. product
// must already carry the post-transition state.
func (w *InventoryWatcher) ScheduleAlerts(product *models.Product, alerts []StockAlert) {
	for _, alert := range alerts {
		// Capture the product state at scheduling time; the row may be
		// mutated again before the job runs.
		snapshot := *product
		kind := alert
		w.runner.Dispatch(func() error {
			return w.sendAlert(&snapshot, kind)
		})
	}
}

func (w *InventoryWatcher) sendAlert(product *models.Product, alert StockAlert) error {
	recipients, err := w.adminEmails()
	if err != nil {
		return err
	}
	if len(recipients) == 0 {
		// Not a failure: there is simply nobody to tell.
		log.Printf("inventory: no administrators with email, skipping alert for product %s", product.ID)
		return nil
	}

	var msg mailer.Message
	switch alert {
	case AlertOutOfStock:
		msg = notifier.OutOfStockAlert(product, recipients)
		w.publishDepleted(product)
	case AlertLowStock:
		msg = notifier.LowStockAlert(product, recipients)
	}
	return w.mailer.Send(msg)
}

// AnnounceNewProduct schedules a catalog announcement to every customer with
// an email address.
func (w *InventoryWatcher) AnnounceNewProduct(product *models.Product) {
	snapshot := *product
	w.runner.Dispatch(func() error {
		recipients, err := w.customerEmails()
		if err != nil {
			return err
		}
		if len(recipients) == 0 {
			log.Printf("inventory: no customers with email, skipping announcement for product %s", snapshot.ID)
			return nil
		}
		return w.mailer.Send(notifier.NewProductAnnouncement(&snapshot, recipients))
	})
}

func (w *InventoryWatcher) publishDepleted(product *models.Product) {
	if w.mq == nil {
		return
	}
	event := map[string]interface{}{
		"product_id": product.ID,
		"name":       product.Name,
	}
	if err := w.mq.PublishEvent(rabbitmq.EventStockDepleted, event); err != nil {
		log.Printf("inventory: failed to publish stock depleted event for %s: %v", product.ID, err)
	}
}

func (w *InventoryWatcher) adminEmails() ([]string, error) {
	return w.roleEmails(models.RoleAdmin)
}

func (w *InventoryWatcher) customerEmails() ([]string, error) {
	return w.roleEmails(models.RoleCustomer)
}

func (w *InventoryWatcher) roleEmails(role string) ([]string, error) {
	users, err := w.userRepo.ListByRole(role)
	if err != nil {
		return nil, err
	}
	var emails []string
	for _, u := range users {
		if u.Email != "" {
			emails = append(emails, u.Email)
		}
	}
	return emails, nil
}
