package services

import (
	"fmt"
	"log"
	"time"

	"panaderia/internal/models"
	"panaderia/internal/repositories"
	"panaderia/pkg/rabbitmq"
)

// CheckoutLine is one requested product position at checkout.
type CheckoutLine struct {
	ProductID string `json:"product_id" validate:"required,uuid"`
	Quantity  int    `json:"quantity" validate:"required,gt=0"`
}

// CheckoutRequest is the payload for creating an order.
type CheckoutRequest struct {
	Lines        []CheckoutLine `json:"lines" validate:"required,min=1,dive"`
	DeliveryMode string         `json:"delivery_mode" validate:"required,oneof=pickup home_delivery"`
	Address      string         `json:"address" validate:"required_if=DeliveryMode home_delivery,omitempty,max=255"`
	BranchID     string         `json:"branch_id" validate:"required_if=DeliveryMode pickup,omitempty,uuid"`
}

// OrderService handles the checkout workflow and order lifecycle updates.
type OrderService struct {
	orderRepo  repositories.OrderRepository
	productSvc *ProductService
	tracker    *OrderTracker
	mq         *rabbitmq.Client // optional, may be nil
}

// NewOrderService creates a new OrderService. mq may be nil when no broker is
// configured.
func NewOrderService(orderRepo repositories.OrderRepository, productSvc *ProductService, tracker *OrderTracker, mq *rabbitmq.Client) *OrderService {
	return &OrderService{
		orderRepo:  orderRepo,
		productSvc: productSvc,
		tracker:    tracker,
		mq:         mq,
	}
}

// GetAllOrders retrieves all orders.
func (s *OrderService) GetAllOrders() ([]models.Order, error) {
	return s.orderRepo.GetAll()
}

// GetOrdersByUser retrieves all orders belonging to a user.
func (s *OrderService) GetOrdersByUser(userID string) ([]models.Order, error) {
	return s.orderRepo.GetByUser(userID)
}

// GetOrderByID retrieves a single order by its ID.
func (s *OrderService) GetOrderByID(id string) (*models.Order, error) {
	return s.orderRepo.GetByID(id)
}

// Checkout validates the requested lines, computes the total from the product
// prices at this moment, creates the order with its lines, decrements stock
// through the inventory watcher (which may cascade stock alerts) and finally
// schedules the confirmation email. The total is never recomputed if prices
// change later.
func (s *OrderService) Checkout(userID string, req CheckoutRequest) (*models.Order, error) {
	if len(req.Lines) == 0 {
		return nil, fmt.Errorf("an order needs at least one line")
	}

	var total float64
	lines := make([]models.OrderLine, 0, len(req.Lines))
	for _, line := range req.Lines {
		if line.Quantity <= 0 {
			return nil, fmt.Errorf("quantity for product %s must be positive", line.ProductID)
		}
		product, err := s.productSvc.GetProductByID(line.ProductID)
		if err != nil {
			return nil, err
		}
		if product.Stock < line.Quantity {
			return nil, fmt.Errorf("insufficient stock for product %s (requested: %d, available: %d)", product.Name, line.Quantity, product.Stock)
		}
		total += product.Price * float64(line.Quantity)
		lines = append(lines, models.OrderLine{
			ProductID: line.ProductID,
			Quantity:  line.Quantity,
		})
	}

	order := &models.Order{
		UserID:       userID,
		Status:       models.StatusReceived,
		Total:        total,
		DeliveryMode: req.DeliveryMode,
		Address:      req.Address,
		BranchID:     req.BranchID,
		Lines:        lines,
	}
	if err := s.orderRepo.Create(order); err != nil {
		return nil, fmt.Errorf("failed to create order: %w", err)
	}

	// Decrement stock per line. Each decrement runs the transition decision,
	// so a sale that empties a shelf raises the usual alerts.
	for _, line := range order.Lines {
		if _, err := s.productSvc.AdjustStock(line.ProductID, -line.Quantity); err != nil {
			log.Printf("orders: failed to decrement stock for product %s on order %s: %v", line.ProductID, order.ID, err)
		}
	}

	s.tracker.NotifyConfirmation(order)
	s.publish(rabbitmq.EventOrderCreated, map[string]interface{}{
		"order_id": order.ID,
		"user_id":  order.UserID,
		"total":    order.Total,
	})

	return order, nil
}

// UpdateStatus moves an order along its lifecycle. Saving the current status
// again succeeds silently; invalid transitions are rejected; a real
// transition fires exactly one notification through the tracker. Cancellation
// puts the line quantities back on the shelf.
func (s *OrderService) UpdateStatus(id string, next models.OrderStatus) (*models.Order, error) {
	if !next.Valid() {
		return nil, fmt.Errorf("invalid order status: %s", next)
	}

	order, err := s.orderRepo.GetByID(id)
	if err != nil {
		return nil, err
	}

	prev := order.Status
	if prev == next {
		// Idempotent no-op save: no write, no notification.
		return order, nil
	}
	if !CanTransition(prev, next) {
		return nil, fmt.Errorf("order %s cannot move from %s to %s", id, prev, next)
	}

	order.Status = next
	if next == models.StatusDelivered {
		now := time.Now()
		order.CompletedAt = &now
	}
	if err := s.orderRepo.Update(order); err != nil {
		return nil, fmt.Errorf("failed to update order status for order %s: %w", id, err)
	}

	if next == models.StatusCancelled {
		s.restock(order)
	}

	s.tracker.ObserveStatusChange(prev, order)
	s.publish(rabbitmq.EventOrderStatusChanged, map[string]interface{}{
		"order_id": order.ID,
		"from":     prev,
		"to":       next,
	})

	return order, nil
}

func (s *OrderService) restock(order *models.Order) {
	for _, line := range order.Lines {
		if _, err := s.productSvc.AdjustStock(line.ProductID, line.Quantity); err != nil {
			log.Printf("orders: failed to restock product %s after cancelling order %s: %v", line.ProductID, order.ID, err)
		}
	}
}

func (s *OrderService) publish(event string, payload map[string]interface{}) {
	if s.mq == nil {
		return
	}
	if err := s.mq.PublishEvent(event, payload); err != nil {
		log.Printf("orders: failed to publish %s event: %v", event, err)
	}
}
