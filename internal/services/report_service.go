package services

import (
	"bytes"
	"fmt"
	"html/template"
	"time"

	"panaderia/internal/notifier"
	"panaderia/internal/repositories"
)

// SalesReport is the aggregated sales picture handed to the reporting
// endpoint, as structured data.
type SalesReport struct {
	BranchID          string                      `json:"branch_id,omitempty"`
	GeneratedAt       time.Time                   `json:"generated_at"`
	Today             repositories.SalesTotals    `json:"today"`
	Week              repositories.SalesTotals    `json:"week"`
	Month             repositories.SalesTotals    `json:"month"`
	TopProducts       []repositories.ProductSales `json:"top_products"`
	AverageOrderValue float64                     `json:"average_order_value"`
}

// ReportService aggregates sales figures for administrators.
type ReportService struct {
	repo repositories.ReportRepository
	tmpl *template.Template
}

// NewReportService creates a new ReportService.
func NewReportService(repo repositories.ReportRepository) *ReportService {
	return &ReportService{
		repo: repo,
		tmpl: template.Must(template.New("sales").Funcs(template.FuncMap{
			"colones": notifier.FormatColones,
		}).Parse(salesReportTemplate)),
	}
}

// SalesSummary builds the sales report, optionally filtered by branch.
// Windows: today since local midnight, week the trailing 7 days, month the
// trailing 30 days. Cancelled orders are excluded; the top-5 ranking and the
// average order value cover the month window.
func (s *ReportService) SalesSummary(branchID string) (*SalesReport, error) {
	now := time.Now()
	midnight := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	weekStart := now.AddDate(0, 0, -7)
	monthStart := now.AddDate(0, 0, -30)

	today, err := s.repo.TotalsSince(midnight, branchID)
	if err != nil {
		return nil, fmt.Errorf("failed to build today's totals: %w", err)
	}
	week, err := s.repo.TotalsSince(weekStart, branchID)
	if err != nil {
		return nil, fmt.Errorf("failed to build weekly totals: %w", err)
	}
	month, err := s.repo.TotalsSince(monthStart, branchID)
	if err != nil {
		return nil, fmt.Errorf("failed to build monthly totals: %w", err)
	}
	top, err := s.repo.TopProducts(monthStart, branchID, 5)
	if err != nil {
		return nil, fmt.Errorf("failed to build top products: %w", err)
	}

	report := &SalesReport{
		BranchID:    branchID,
		GeneratedAt: now,
		Today:       today,
		Week:        week,
		Month:       month,
		TopProducts: top,
	}
	if month.Orders > 0 {
		report.AverageOrderValue = month.Revenue / float64(month.Orders)
	}
	return report, nil
}

// RenderHTML renders the report as a standalone HTML document suitable for
// download.
func (s *ReportService) RenderHTML(report *SalesReport) ([]byte, error) {
	var buf bytes.Buffer
	if err := s.tmpl.Execute(&buf, report); err != nil {
		return nil, fmt.Errorf("failed to render sales report: %w", err)
	}
	return buf.Bytes(), nil
}

const salesReportTemplate = `<!DOCTYPE html>
<html>
<head><meta charset="utf-8"><title>Sales report</title></head>
<body>
<h1>Sales report</h1>
<p>Generated {{.GeneratedAt.Format "2006-01-02 15:04"}}{{if .BranchID}} for branch {{.BranchID}}{{end}}</p>
<table border="1" cellpadding="4">
<tr><th>Window</th><th>Revenue</th><th>Orders</th></tr>
<tr><td>Today</td><td>{{colones .Today.Revenue}}</td><td>{{.Today.Orders}}</td></tr>
<tr><td>Last 7 days</td><td>{{colones .Week.Revenue}}</td><td>{{.Week.Orders}}</td></tr>
<tr><td>Last 30 days</td><td>{{colones .Month.Revenue}}</td><td>{{.Month.Orders}}</td></tr>
</table>
<p>Average order value (30 days): {{colones .AverageOrderValue}}</p>
<h2>Top products (30 days)</h2>
<table border="1" cellpadding="4">
<tr><th>Product</th><th>Units sold</th><th>Revenue at current price</th></tr>
{{range .TopProducts}}<tr><td>{{.Name}}</td><td>{{.Units}}</td><td>{{colones .Revenue}}</td></tr>
{{else}}<tr><td colspan="3">No sales in this window</td></tr>{{end}}
</table>
</body>
</html>
`
