package notifier

import (
	"fmt"

	"panaderia/internal/models"
	"panaderia/pkg/mailer"
)

// Message builders for every notification the bakery sends. Bodies are kept
// deliberately plain; the shop's branded HTML templates live with the
// mail-marketing tooling, not here.

// OutOfStockAlert warns administrators that a product just hit zero stock.
func OutOfStockAlert(p *models.Product, recipients []string) mailer.Message {
	text := fmt.Sprintf("Product %q (ID %s) is out of stock. It has been marked unavailable in the catalog.", p.Name, p.ID)
	return mailer.Message{
		Subject:    fmt.Sprintf("Out of stock: %s", p.Name),
		Recipients: recipients,
		HTMLBody:   fmt.Sprintf("<p><strong>%s</strong> is out of stock and has been marked unavailable.</p>", p.Name),
		TextBody:   text,
	}
}

// LowStockAlert warns administrators that a product dropped to the low-stock band.
func LowStockAlert(p *models.Product, recipients []string) mailer.Message {
	text := fmt.Sprintf("Product %q (ID %s) is running low: %d units left.", p.Name, p.ID, p.Stock)
	return mailer.Message{
		Subject:    fmt.Sprintf("Low stock: %s (%d left)", p.Name, p.Stock),
		Recipients: recipients,
		HTMLBody:   fmt.Sprintf("<p><strong>%s</strong> is running low: <strong>%d</strong> units left.</p>", p.Name, p.Stock),
		TextBody:   text,
	}
}

// NewProductAnnouncement tells customers a product joined the catalog.
func NewProductAnnouncement(p *models.Product, recipients []string) mailer.Message {
	text := fmt.Sprintf("Fresh from the oven: %s — %s. Price: %s.", p.Name, p.Description, FormatColones(p.Price))
	return mailer.Message{
		Subject:    fmt.Sprintf("New at the bakery: %s", p.Name),
		Recipients: recipients,
		HTMLBody:   fmt.Sprintf("<p>Fresh from the oven: <strong>%s</strong></p><p>%s</p><p>Price: %s</p>", p.Name, p.Description, FormatColones(p.Price)),
		TextBody:   text,
	}
}

// NewOfferAnnouncement tells customers a promotion started.
func NewOfferAnnouncement(o *models.Offer, recipients []string) mailer.Message {
	window := fmt.Sprintf("valid %s to %s", o.StartsAt.Format("2006-01-02"), o.EndsAt.Format("2006-01-02"))
	return mailer.Message{
		Subject:    fmt.Sprintf("Special offer: %s", o.Title),
		Recipients: recipients,
		HTMLBody:   fmt.Sprintf("<p><strong>%s</strong></p><p>%s</p><p>%s</p>", o.Title, o.Description, window),
		TextBody:   fmt.Sprintf("%s — %s (%s)", o.Title, o.Description, window),
	}
}

// OrderConfirmation confirms a finalized checkout to the order's owner.
func OrderConfirmation(o *models.Order, recipients []string) mailer.Message {
	text := fmt.Sprintf("We received your order %s. Total: %s. We'll let you know when it moves along.", o.ID, FormatColones(o.Total))
	return mailer.Message{
		Subject:    fmt.Sprintf("Order %s confirmed", shortID(o.ID)),
		Recipients: recipients,
		HTMLBody:   fmt.Sprintf("<p>We received your order <strong>%s</strong>.</p><p>Total: <strong>%s</strong></p>", o.ID, FormatColones(o.Total)),
		TextBody:   text,
	}
}

var statusLines = map[models.OrderStatus]string{
	models.StatusReceived:      "Your order has been received.",
	models.StatusInPreparation: "Your order is being prepared.",
	models.StatusReady:         "Your order is ready for pickup or delivery.",
	models.StatusDelivered:     "Your order has been delivered. Enjoy!",
}

// OrderStatusChanged notifies the order's owner about a lifecycle transition.
func OrderStatusChanged(o *models.Order, recipients []string) mailer.Message {
	line, ok := statusLines[o.Status]
	if !ok {
		line = fmt.Sprintf("Your order is now %s.", o.Status)
	}
	return mailer.Message{
		Subject:    fmt.Sprintf("Order %s: %s", shortID(o.ID), o.Status),
		Recipients: recipients,
		HTMLBody:   fmt.Sprintf("<p>%s</p><p>Order <strong>%s</strong></p>", line, o.ID),
		TextBody:   fmt.Sprintf("%s (order %s)", line, o.ID),
	}
}

// OrderCancelledNotice tells administrators an order was cancelled so stock
// and preparation plans can be adjusted.
func OrderCancelledNotice(o *models.Order, recipients []string) mailer.Message {
	text := fmt.Sprintf("Order %s (user %s, total %s) was cancelled.", o.ID, o.UserID, FormatColones(o.Total))
	return mailer.Message{
		Subject:    fmt.Sprintf("Order %s cancelled", shortID(o.ID)),
		Recipients: recipients,
		HTMLBody:   fmt.Sprintf("<p>Order <strong>%s</strong> was cancelled.</p><p>User: %s, total: %s</p>", o.ID, o.UserID, FormatColones(o.Total)),
		TextBody:   text,
	}
}

// FormatColones renders an amount in Costa Rican colones.
func FormatColones(amount float64) string {
	return fmt.Sprintf("₡%.2f", amount)
}

// shortID keeps subjects readable with UUID identifiers.
func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
