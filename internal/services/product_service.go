package services

import (
	"fmt"

	"panaderia/internal/models"
	"panaderia/internal/repositories"
)

// ProductService handles business logic related to products, including the
// stock transitions watched by the InventoryWatcher.
type ProductService struct {
	repo    repositories.ProductRepository
	watcher *InventoryWatcher
}

// NewProductService creates a new ProductService.
func NewProductService(repo repositories.ProductRepository, watcher *InventoryWatcher) *ProductService {
	return &ProductService{
		repo:    repo,
		watcher: watcher,
	}
}

// GetAllProducts retrieves all products.
func (s *ProductService) GetAllProducts() ([]models.Product, error) {
	return s.repo.GetAll()
}

// GetProductByID retrieves a single product by its ID.
func (s *ProductService) GetProductByID(id string) (*models.Product, error) {
	return s.repo.GetByID(id)
}

// CreateProduct creates a new product and schedules the catalog announcement
// to customers. The announcement never blocks or fails the creation.
func (s *ProductService) CreateProduct(product *models.Product) error {
	if err := s.repo.Create(product); err != nil {
		return err
	}
	s.watcher.AnnounceNewProduct(product)
	return nil
}

// UpdateProduct updates a product's descriptive fields. Stock is deliberately
// left alone here; all stock changes go through SetStock or AdjustStock so
// the watcher sees every transition.
func (s *ProductService) UpdateProduct(product *models.Product) error {
	existing, err := s.repo.GetByID(product.ID)
	if err != nil {
		return err
	}
	existing.Name = product.Name
	existing.Description = product.Description
	existing.Price = product.Price
	existing.BranchID = product.BranchID
	if err := s.repo.Update(existing); err != nil {
		return err
	}
	*product = *existing
	return nil
}

// SetStock sets a product's stock to an absolute value, runs the transition
// decision over the previous and new snapshots, persists the outcome and
// schedules whatever alerts the transition produced.
func (s *ProductService) SetStock(id string, newStock int) (*models.Product, error) {
	if newStock < 0 {
		return nil, fmt.Errorf("stock cannot be negative: %d", newStock)
	}

	product, err := s.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	return s.applyStock(product, newStock)
}

// AdjustStock changes a product's stock by a delta (negative for a sale,
// positive for a restock) through the same watcher path as SetStock.
// Concurrent adjustments to the same product race on the read-modify-write;
// with a single bakery's volumes this stays last-write-wins.
func (s *ProductService) AdjustStock(id string, delta int) (*models.Product, error) {
	product, err := s.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	newStock := product.Stock + delta
	if newStock < 0 {
		return nil, fmt.Errorf("insufficient stock for product %s (have %d, requested %d)", product.Name, product.Stock, -delta)
	}
	return s.applyStock(product, newStock)
}

func (s *ProductService) applyStock(product *models.Product, newStock int) (*models.Product, error) {
	prev := SnapshotOf(product)
	decision := DecideStockTransition(prev, newStock)

	product.Stock = newStock
	product.Available = decision.Available
	product.OutOfStockAlertSent = decision.OutOfStockAlertSent
	product.LowStockAlertSent = decision.LowStockAlertSent

	if err := s.repo.Update(product); err != nil {
		return nil, err
	}

	// Alerts are scheduled only after the write succeeded, so a failed save
	// never produces a phantom notification.
	s.watcher.ScheduleAlerts(product, decision.Alerts)
	return product, nil
}

// DeleteProduct deletes a product by its ID.
func (s *ProductService) DeleteProduct(id string) error {
	return s.repo.Delete(id)
}
