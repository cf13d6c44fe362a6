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

// BranchHandler handles HTTP requests for bakery branches.
type BranchHandler struct {
	service  *services.BranchService
	validate *validator.Validate
}

// NewBranchHandler creates a new BranchHandler.
func NewBranchHandler(service *services.BranchService) *BranchHandler {
	return &BranchHandler{
		service:  service,
		validate: validator.New(),
	}
}

// RegisterRoutes registers the branch routes. Reads are public so customers
// can pick a pickup location; mutations are admin-only.
func (h *BranchHandler) RegisterRoutes(router fiber.Router, auth fiber.Handler) {
	router.Get("/branches", h.HandleGetBranches)
	router.Get("/branches/:id", h.HandleGetBranchByID)

	admin := router.Group("/branches", auth, middleware.AdminRequired())
	admin.Post("/", h.HandleCreateBranch)
	admin.Put("/:id", h.HandleUpdateBranch)
	admin.Delete("/:id", h.HandleDeleteBranch)
}

// HandleGetBranches lists all branches.
func (h *BranchHandler) HandleGetBranches(c *fiber.Ctx) error {
	branches, err := h.service.GetAllBranches()
	if err != nil {
		log.Printf("Error getting branches: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not retrieve branches",
			"error":   err.Error(),
		})
	}
	return c.JSON(branches)
}

// HandleGetBranchByID retrieves a single branch.
func (h *BranchHandler) HandleGetBranchByID(c *fiber.Ctx) error {
	branch, err := h.service.GetBranchByID(c.Params("id"))
	if err != nil {
		if strings.Contains(err.Error(), "not found") {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"message": err.Error(),
			})
		}
		log.Printf("Error getting branch %s: %v", c.Params("id"), err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not retrieve branch",
			"error":   err.Error(),
		})
	}
	return c.JSON(branch)
}

// HandleCreateBranch creates a branch.
func (h *BranchHandler) HandleCreateBranch(c *fiber.Ctx) error {
	var branch models.Branch
	if err := c.BodyParser(&branch); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
			"error":   err.Error(),
		})
	}
	if err := h.validate.Struct(branch); err != nil {
		return validationError(c, err)
	}

	if err := h.service.CreateBranch(&branch); err != nil {
		log.Printf("Error creating branch: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not create branch",
			"error":   err.Error(),
		})
	}
	return c.Status(fiber.StatusCreated).JSON(branch)
}

// HandleUpdateBranch updates a branch.
func (h *BranchHandler) HandleUpdateBranch(c *fiber.Ctx) error {
	var branch models.Branch
	if err := c.BodyParser(&branch); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
			"error":   err.Error(),
		})
	}
	branch.ID = c.Params("id")
	if err := h.validate.Struct(branch); err != nil {
		return validationError(c, err)
	}

	if err := h.service.UpdateBranch(&branch); err != nil {
		if strings.Contains(err.Error(), "not found") {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"message": err.Error(),
			})
		}
		log.Printf("Error updating branch %s: %v", branch.ID, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not update branch",
			"error":   err.Error(),
		})
	}
	return c.JSON(branch)
}

// HandleDeleteBranch deletes a branch.
func (h *BranchHandler) HandleDeleteBranch(c *fiber.Ctx) error {
	if err := h.service.DeleteBranch(c.Params("id")); err != nil {
		if strings.Contains(err.Error(), "not found") {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"message": err.Error(),
			})
		}
		log.Printf("Error deleting branch %s: %v", c.Params("id"), err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not delete branch",
			"error":   err.Error(),
		})
	}
	return c.JSON(fiber.Map{
		"message": "Branch deleted",
	})
}
