package repositories

import "time"

// SalesTotals aggregates revenue and order count over a time window.
type SalesTotals struct {
	Revenue float64 `json:"revenue"`
	Orders  int64   `json:"orders"`
}

// ProductSales ranks a product by units sold. Revenue is priced at the
// product's current price, so it can diverge from historical order totals.
type ProductSales struct {
	ProductID string  `json:"product_id"`
	Name      string  `json:"name"`
	Units     int     `json:"units"`
	Revenue   float64 `json:"revenue"`
}

// ReportRepository runs the sales aggregation queries. Cancelled orders are
// excluded everywhere; branchID empty means all branches.
type ReportRepository interface {
	TotalsSince(since time.Time, branchID string) (SalesTotals, error)
	TopProducts(since time.Time, branchID string, limit int) ([]ProductSales, error)
}
