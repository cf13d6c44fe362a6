package repositories

import (
	"fmt"

	"panaderia/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GORMBranchRepository is a GORM implementation of BranchRepository.
type GORMBranchRepository struct {
	db *gorm.DB
}

// NewGORMBranchRepository creates a new instance of GORMBranchRepository.
func NewGORMBranchRepository(db *gorm.DB) *GORMBranchRepository {
	return &GORMBranchRepository{db: db}
}

// GetAll retrieves all branches.
func (r *GORMBranchRepository) GetAll() ([]models.Branch, error) {
	var branches []models.Branch
	if err := r.db.Find(&branches).Error; err != nil {
		return nil, fmt.Errorf("failed to get all branches: %w", err)
	}
	return branches, nil
}

// GetByID retrieves a single branch by its ID.
func (r *GORMBranchRepository) GetByID(id string) (*models.Branch, error) {
	var branch models.Branch
	if err := r.db.First(&branch, "id = ?", id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, fmt.Errorf("branch with ID %s not found", id)
		}
		return nil, fmt.Errorf("failed to get branch by ID %s: %w", id, err)
	}
	return &branch, nil
}

// Create creates a new branch.
func (r *GORMBranchRepository) Create(branch *models.Branch) error {
	if branch.ID == "" {
		branch.ID = uuid.New().String()
	}
	if err := r.db.Create(branch).Error; err != nil {
		return fmt.Errorf("failed to create branch: %w", err)
	}
	return nil
}

// Update updates an existing branch.
func (r *GORMBranchRepository) Update(branch *models.Branch) error {
	res := r.db.Save(branch)
	if res.Error != nil {
		return fmt.Errorf("failed to update branch: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("branch with ID %s not found for update", branch.ID)
	}
	return nil
}

// Delete deletes a branch by its ID.
func (r *GORMBranchRepository) Delete(id string) error {
	res := r.db.Delete(&models.Branch{}, "id = ?", id)
	if res.Error != nil {
		return fmt.Errorf("failed to delete branch: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("branch with ID %s not found for deletion", id)
	}
	return nil
}
