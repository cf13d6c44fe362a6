package repositories

import (
	"fmt"
	"time"

	"panaderia/internal/models"

	"gorm.io/gorm"
)

// GORMReportRepository is a GORM implementation of ReportRepository.
type GORMReportRepository struct {
	db *gorm.DB
}

// NewGORMReportRepository creates a new instance of GORMReportRepository.
func NewGORMReportRepository(db *gorm.DB) *GORMReportRepository {
	return &GORMReportRepository{db: db}
}

func (r *GORMReportRepository) salesScope(since time.Time, branchID string) *gorm.DB {
	q := r.db.Model(&models.Order{}).
		Where("created_at >= ?", since).
		Where("status <> ?", models.StatusCancelled)
	if branchID != "" {
		q = q.Where("branch_id = ?", branchID)
	}
	return q
}

// TotalsSince sums revenue and counts orders created since the given time.
func (r *GORMReportRepository) TotalsSince(since time.Time, branchID string) (SalesTotals, error) {
	var totals SalesTotals
	err := r.salesScope(since, branchID).
		Select("COALESCE(SUM(total), 0) AS revenue, COUNT(*) AS orders").
		Scan(&totals).Error
	if err != nil {
		return SalesTotals{}, fmt.Errorf("failed to aggregate sales totals: %w", err)
	}
	return totals, nil
}

// TopProducts ranks products by units sold since the given time. Line revenue
// is priced at the current product price, not the checkout-time price.
func (r *GORMReportRepository) TopProducts(since time.Time, branchID string, limit int) ([]ProductSales, error) {
	var sales []ProductSales
	q := r.db.Model(&models.OrderLine{}).
		Select("order_lines.product_id AS product_id, products.name AS name, "+
			"SUM(order_lines.quantity) AS units, "+
			"SUM(order_lines.quantity * products.price) AS revenue").
		Joins("JOIN orders ON orders.id = order_lines.order_id").
		Joins("JOIN products ON products.id = order_lines.product_id").
		Where("orders.created_at >= ?", since).
		Where("orders.status <> ?", models.StatusCancelled)
	if branchID != "" {
		q = q.Where("orders.branch_id = ?", branchID)
	}
	err := q.Group("order_lines.product_id, products.name").
		Order("units DESC").
		Limit(limit).
		Scan(&sales).Error
	if err != nil {
		return nil, fmt.Errorf("failed to rank top products: %w", err)
	}
	return sales, nil
}
