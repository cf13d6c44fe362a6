package services

import (
	"log"

	"panaderia/internal/models"
	"panaderia/internal/notifier"
	"panaderia/internal/repositories"
	"panaderia/pkg/mailer"
)

// StatusNotice identifies which notification a status save produces.
type StatusNotice int

const (
	// NoticeNone: the save did not change the status; nothing is sent.
	NoticeNone StatusNotice = iota
	// NoticeStatusChanged goes to the order's owner.
	NoticeStatusChanged
	// NoticeCancelled goes to administrators, not the customer.
	NoticeCancelled
)

// DecideStatusNotification maps a (previous, new) status pair to the single
// notification it should produce. Same-status saves are silent.
func DecideStatusNotification(prev, next models.OrderStatus) StatusNotice {
	if prev == next {
		return NoticeNone
	}
	if next == models.StatusCancelled {
		return NoticeCancelled
	}
	return NoticeStatusChanged
}

// forward is the monotonic lifecycle; cancellation is handled separately.
var forward = map[models.OrderStatus]models.OrderStatus{
	models.StatusReceived:      models.StatusInPreparation,
	models.StatusInPreparation: models.StatusReady,
	models.StatusReady:         models.StatusDelivered,
}

// CanTransition reports whether an order may move from one status to another.
// Saving the current status again is always allowed (and silent); terminal
// states admit no transitions; cancellation is allowed from any non-terminal
// state; everything else must follow the lifecycle one step at a time.
func CanTransition(from, to models.OrderStatus) bool {
	if from == to {
		return true
	}
	if from.Terminal() {
		return false
	}
	if to == models.StatusCancelled {
		return true
	}
	return forward[from] == to
}

// OrderTracker schedules the email side effects of order lifecycle changes.
type OrderTracker struct {
	userRepo repositories.UserRepository
	runner   notifier.Runner
	mailer   mailer.Mailer
}

// NewOrderTracker creates a new OrderTracker.
func NewOrderTracker(userRepo repositories.UserRepository, runner notifier.Runner, m mailer.Mailer) *OrderTracker {
	return &OrderTracker{
		userRepo: userRepo,
		runner:   runner,
		mailer:   m,
	}
}

// NotifyConfirmation schedules the checkout confirmation to the order's
// owner. Checkout calls this explicitly once lines are attached and the
// total is final; order creation itself is silent.
func (t *OrderTracker) NotifyConfirmation(order *models.Order) {
	snapshot := *order
	t.runner.Dispatch(func() error {
		recipients := t.ownerEmail(&snapshot)
		if len(recipients) == 0 {
			log.Printf("orders: owner of order %s has no email, skipping confirmation", snapshot.ID)
			return nil
		}
		return t.mailer.Send(notifier.OrderConfirmation(&snapshot, recipients))
	})
}

// ObserveStatusChange schedules the single notification a status save
// produces, if any. order must already carry the new status.
func (t *OrderTracker) ObserveStatusChange(prev models.OrderStatus, order *models.Order) {
	notice := DecideStatusNotification(prev, order.Status)
	if notice == NoticeNone {
		return
	}

	snapshot := *order
	t.runner.Dispatch(func() error {
		switch notice {
		case NoticeCancelled:
			recipients, err := t.adminEmails()
			if err != nil {
				return err
			}
			if len(recipients) == 0 {
				log.Printf("orders: no administrators with email, skipping cancellation notice for order %s", snapshot.ID)
				return nil
			}
			return t.mailer.Send(notifier.OrderCancelledNotice(&snapshot, recipients))
		default:
			recipients := t.ownerEmail(&snapshot)
			if len(recipients) == 0 {
				log.Printf("orders: owner of order %s has no email, skipping status notice", snapshot.ID)
				return nil
			}
			return t.mailer.Send(notifier.OrderStatusChanged(&snapshot, recipients))
		}
	})
}

func (t *OrderTracker) ownerEmail(order *models.Order) []string {
	user, err := t.userRepo.GetByID(order.UserID)
	if err != nil {
		log.Printf("orders: failed to load owner of order %s: %v", order.ID, err)
		return nil
	}
	if user.Email == "" {
		return nil
	}
	return []string{user.Email}
}

func (t *OrderTracker) adminEmails() ([]string, error) {
	users, err := t.userRepo.ListByRole(models.RoleAdmin)
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
