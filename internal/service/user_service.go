package service

import (
	"strings"

	"github.com/techgear-vn/techgear-api/internal/constants"
	"github.com/techgear-vn/techgear-api/internal/models"
	"github.com/techgear-vn/techgear-api/internal/repository"
)

// UserService exposes account administration.
type UserService struct {
	userRepo repository.UserRepository
}

// NewUserService creates the user service.
func NewUserService(userRepo repository.UserRepository) *UserService {
	return &UserService{userRepo: userRepo}
}

// List returns users for the back office.
func (s *UserService) List(filter repository.UserListFilter) ([]models.User, int64, error) {
	return s.userRepo.List(filter)
}

// GetByID fetches one user.
func (s *UserService) GetByID(id uint) (*models.User, error) {
	user, err := s.userRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrNotFound
	}
	return user, nil
}

// UpdateProfile updates the user's own display fields.
func (s *UserService) UpdateProfile(userID uint, name, image string) (*models.User, error) {
	user, err := s.GetByID(userID)
	if err != nil {
		return nil, err
	}
	updates := map[string]interface{}{
		"name":  strings.TrimSpace(name),
		"image": strings.TrimSpace(image),
	}
	if err := s.userRepo.Update(user.ID, updates); err != nil {
		return nil, err
	}
	return s.userRepo.GetByID(user.ID)
}

// SetRole changes a user's role from the back office.
func (s *UserService) SetRole(userID uint, role string) (*models.User, error) {
	role = strings.ToUpper(strings.TrimSpace(role))
	if role != constants.RoleUser && role != constants.RoleAdmin {
		return nil, ErrNotFound
	}
	user, err := s.GetByID(userID)
	if err != nil {
		return nil, err
	}
	if err := s.userRepo.Update(user.ID, map[string]interface{}{"role": role}); err != nil {
		return nil, err
	}
	return s.userRepo.GetByID(user.ID)
}
