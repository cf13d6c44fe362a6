package handlers

import (
	"log"
	"strings"

	"panaderia/internal/middleware"
	"panaderia/internal/models"
	"panaderia/internal/services"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

// OfferHandler handles HTTP requests for promotional offers.
type OfferHandler struct {
	service  *services.OfferService
	validate *validator.Validate
}

// NewOfferHandler creates a new OfferHandler.
func NewOfferHandler(service *services.OfferService) *OfferHandler {
	return &OfferHandler{
		service:  service,
		validate: validator.New(),
	}
}

// RegisterRoutes registers the offer routes. Reads are public; mutations
// require an authenticated administrator.
func (h *OfferHandler) RegisterRoutes(router fiber.Router, auth fiber.Handler) {
	router.Get("/offers", h.HandleGetOffers)
	router.Get("/offers/:id", h.HandleGetOfferByID)

	admin := router.Group("/offers", auth, middleware.AdminRequired())
	admin.Post("/", h.HandleCreateOffer)
	admin.Put("/:id", h.HandleUpdateOffer)
	admin.Delete("/:id", h.HandleDeleteOffer)
}

// HandleGetOffers lists offers; ?active=true narrows to the current validity
// window.
func (h *OfferHandler) HandleGetOffers(c *fiber.Ctx) error {
	var (
		offers []models.Offer
		err    error
	)
	if c.Query("active") == "true" {
		offers, err = h.service.GetActiveOffers()
	} else {
		offers, err = h.service.GetAllOffers()
	}
	if err != nil {
		log.Printf("Error getting offers: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not retrieve offers",
			"error":   err.Error(),
		})
	}
	return c.JSON(offers)
}

// HandleGetOfferByID retrieves a single offer.
func (h *OfferHandler) HandleGetOfferByID(c *fiber.Ctx) error {
	offer, err := h.service.GetOfferByID(c.Params("id"))
	if err != nil {
		if strings.Contains(err.Error(), "not found") {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"message": err.Error(),
			})
		}
		log.Printf("Error getting offer %s: %v", c.Params("id"), err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not retrieve offer",
			"error":   err.Error(),
		})
	}
	return c.JSON(offer)
}

// HandleCreateOffer creates an offer and triggers the customer announcement.
func (h *OfferHandler) HandleCreateOffer(c *fiber.Ctx) error {
	var offer models.Offer
	if err := c.BodyParser(&offer); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
			"error":   err.Error(),
		})
	}
	if err := h.validate.Struct(offer); err != nil {
		return validationError(c, err)
	}

	if err := h.service.CreateOffer(&offer); err != nil {
		log.Printf("Error creating offer: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not create offer",
			"error":   err.Error(),
		})
	}
	return c.Status(fiber.StatusCreated).JSON(offer)
}

// HandleUpdateOffer applies administrative edits to an offer.
func (h *OfferHandler) HandleUpdateOffer(c *fiber.Ctx) error {
	var offer models.Offer
	if err := c.BodyParser(&offer); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
			"error":   err.Error(),
		})
	}
	offer.ID = c.Params("id")
	if err := h.validate.Struct(offer); err != nil {
		return validationError(c, err)
	}

	if err := h.service.UpdateOffer(&offer); err != nil {
		if strings.Contains(err.Error(), "not found") {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"message": err.Error(),
			})
		}
		log.Printf("Error updating offer %s: %v", offer.ID, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not update offer",
			"error":   err.Error(),
		})
	}
	return c.JSON(offer)
}

// HandleDeleteOffer deletes an offer.
func (h *OfferHandler) HandleDeleteOffer(c *fiber.Ctx) error {
	if err := h.service.DeleteOffer(c.Params("id")); err != nil {
		if strings.Contains(err.Error(), "not found") {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"message": err.Error(),
			})
		}
		log.Printf("Error deleting offer %s: %v", c.Params("id"), err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not delete offer",
			"error":   err.Error(),
		})
	}
	return c.JSON(fiber.Map{
		"message": "Offer deleted",
	})
}
