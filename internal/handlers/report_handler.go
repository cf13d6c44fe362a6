package handlers

import (
	"log"
	"time"

	"panaderia/internal/middleware"
	"panaderia/internal/services"

	"github.com/gofiber/fiber/v2"
)

// ReportHandler handles the sales reporting endpoints.
type ReportHandler struct {
	service *services.ReportService
}

// NewReportHandler creates a new ReportHandler.
func NewReportHandler(service *services.ReportService) *ReportHandler {
	return &ReportHandler{service: service}
}

// RegisterRoutes registers the reporting routes; all are admin-only.
func (h *ReportHandler) RegisterRoutes(router fiber.Router, auth fiber.Handler) {
	reports := router.Group("/reports", auth, middleware.AdminRequired())
	reports.Get("/sales", h.HandleSalesReport)
	reports.Get("/sales/html", h.HandleSalesReportHTML)
}

// HandleSalesReport returns the aggregated sales figures as JSON, optionally
// filtered by ?branch=<id>.
func (h *ReportHandler) HandleSalesReport(c *fiber.Ctx) error {
	report, err := h.service.SalesSummary(c.Query("branch"))
	if err != nil {
		log.Printf("Error building sales report: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not build sales report",
			"error":   err.Error(),
		})
	}
	return c.JSON(report)
}

// HandleSalesReportHTML returns the same report rendered as a downloadable
// HTML document.
func (h *ReportHandler) HandleSalesReportHTML(c *fiber.Ctx) error {
	report, err := h.service.SalesSummary(c.Query("branch"))
	if err != nil {
		log.Printf("Error building sales report: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not build sales report",
			"error":   err.Error(),
		})
	}

	html, err := h.service.RenderHTML(report)
	if err != nil {
		log.Printf("Error rendering sales report: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not render sales report",
			"error":   err.Error(),
		})
	}

	filename := "sales-report-" + time.Now().Format("2006-01-02") + ".html"
	c.Set(fiber.HeaderContentType, fiber.MIMETextHTMLCharsetUTF8)
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="`+filename+`"`)
	return c.Send(html)
}
