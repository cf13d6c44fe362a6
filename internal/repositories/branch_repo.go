package repositories

import "panaderia/internal/models"

// BranchRepository defines the interface for branch (sucursal) data access.
type BranchRepository interface {
	GetAll() ([]models.Branch, error)
	GetByID(id string) (*models.Branch, error)
	Create(branch *models.Branch) error
	Update(branch *models.Branch) error
	Delete(id string) error
}
