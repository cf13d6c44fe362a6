package services

import (
	"panaderia/internal/models"
	"panaderia/internal/repositories"
)

// BranchService handles business logic related to bakery branches.
type BranchService struct {
	repo repositories.BranchRepository
}

// NewBranchService creates a new BranchService.
func NewBranchService(repo repositories.BranchRepository) *BranchService {
	return &BranchService{repo: repo}
}

// GetAllBranches retrieves all branches.
func (s *BranchService) GetAllBranches() ([]models.Branch, error) {
	return s.repo.GetAll()
}

// GetBranchByID retrieves a single branch by its ID.
func (s *BranchService) GetBranchByID(id string) (*models.Branch, error) {
	return s.repo.GetByID(id)
}

// CreateBranch creates a new branch.
func (s *BranchService) CreateBranch(branch *models.Branch) error {
	return s.repo.Create(branch)
}

// UpdateBranch updates an existing branch.
func (s *BranchService) UpdateBranch(branch *models.Branch) error {
	return s.repo.Update(branch)
}

// DeleteBranch deletes a branch by its ID.
func (s *BranchService) DeleteBranch(id string) error {
	return s.repo.Delete(id)
}
