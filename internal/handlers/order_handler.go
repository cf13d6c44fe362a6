package handlers

import (
	"log"
	"strings"

	"panaderia/internal/models"
	"panaderia/internal/services"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

// OrderHandler handles HTTP requests for orders.
type OrderHandler struct {
	service  *services.OrderService
	validate *validator.Validate
}

// NewOrderHandler creates a new OrderHandler.
func NewOrderHandler(service *services.OrderService) *OrderHandler {
	return &OrderHandler{
		service:  service,
		validate: validator.New(),
	}
}

// RegisterRoutes registers the order routes. All of them require an
// authenticated user; ownership and role checks happen per handler.
func (h *OrderHandler) RegisterRoutes(router fiber.Router, auth fiber.Handler) {
	orderRoutes := router.Group("/orders", auth)
	orderRoutes.Get("/", h.HandleGetOrders)
	orderRoutes.Get("/:id", h.HandleGetOrderByID)
	orderRoutes.Post("/", h.HandleCheckout)
	orderRoutes.Patch("/:id/status", h.HandleUpdateStatus)
}

func callerIdentity(c *fiber.Ctx) (userID, role string) {
	userID, _ = c.Locals("user_id").(string)
	role, _ = c.Locals("role").(string)
	return userID, role
}

// HandleGetOrders lists the caller's orders; administrators see all orders.
func (h *OrderHandler) HandleGetOrders(c *fiber.Ctx) error {
	userID, role := callerIdentity(c)

	var (
		orders []models.Order
		err    error
	)
	if role == models.RoleAdmin {
		orders, err = h.service.GetAllOrders()
	} else {
		orders, err = h.service.GetOrdersByUser(userID)
	}
	if err != nil {
		log.Printf("Error getting orders: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not retrieve orders",
			"error":   err.Error(),
		})
	}
	return c.JSON(orders)
}

// HandleGetOrderByID retrieves a single order for its owner or an
// administrator.
func (h *OrderHandler) HandleGetOrderByID(c *fiber.Ctx) error {
	userID, role := callerIdentity(c)

	order, err := h.service.GetOrderByID(c.Params("id"))
	if err != nil {
		if strings.Contains(err.Error(), "not found") {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"message": err.Error(),
			})
		}
		log.Printf("Error getting order %s: %v", c.Params("id"), err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not retrieve order",
			"error":   err.Error(),
		})
	}
	if order.UserID != userID && role != models.RoleAdmin {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
			"message": "This is not your order",
		})
	}
	return c.JSON(order)
}

// HandleCheckout creates an order for the authenticated user.
func (h *OrderHandler) HandleCheckout(c *fiber.Ctx) error {
	userID, _ := callerIdentity(c)

	var req services.CheckoutRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
			"error":   err.Error(),
		})
	}
	if err := h.validate.Struct(req); err != nil {
		return validationError(c, err)
	}

	order, err := h.service.Checkout(userID, req)
	if err != nil {
		log.Printf("Error creating order for user %s: %v", userID, err)
		if strings.Contains(err.Error(), "not found") {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"message": err.Error(),
			})
		}
		if strings.Contains(err.Error(), "insufficient stock") {
			return c.Status(fiber.StatusConflict).JSON(fiber.Map{
				"message": "Order creation failed due to insufficient stock",
				"error":   err.Error(),
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not create order",
			"error":   err.Error(),
		})
	}
	return c.Status(fiber.StatusCreated).JSON(order)
}

// StatusUpdateRequest is the payload for moving an order along its lifecycle.
type StatusUpdateRequest struct {
	Status models.OrderStatus `json:"status" validate:"required"`
}

// HandleUpdateStatus moves an order to a new status. Administrators may apply
// any valid transition; the owner may only cancel their own order.
func (h *OrderHandler) HandleUpdateStatus(c *fiber.Ctx) error {
	userID, role := callerIdentity(c)
	orderID := c.Params("id")

	var req StatusUpdateRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
			"error":   err.Error(),
		})
	}
	if req.Status == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Status is required",
		})
	}

	if role != models.RoleAdmin {
		order, err := h.service.GetOrderByID(orderID)
		if err != nil {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"message": err.Error(),
			})
		}
		if order.UserID != userID || req.Status != models.StatusCancelled {
			return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
				"message": "Customers may only cancel their own orders",
			})
		}
	}

	order, err := h.service.UpdateStatus(orderID, req.Status)
	if err != nil {
		log.Printf("Error updating status of order %s: %v", orderID, err)
		if strings.Contains(err.Error(), "not found") {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"message": err.Error(),
			})
		}
		if strings.Contains(err.Error(), "invalid order status") || strings.Contains(err.Error(), "cannot move") {
			return c.Status(fiber.StatusConflict).JSON(fiber.Map{
				"message": "Invalid status transition",
				"error":   err.Error(),
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not update order status",
			"error":   err.Error(),
		})
	}
	return c.JSON(order)
}
