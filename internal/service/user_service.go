package service

import (
	"context"

	"github.com/academix/journey-backend/internal/model"
	"github.com/academix/journey-backend/internal/repository"
)

// UserService handles account administration queries.
type UserService struct {
	repo *repository.UserRepository
}

// NewUserService creates a new UserService.
func NewUserService(repo *repository.UserRepository) *UserService {
	return &UserService{repo: repo}
}

// ListProfiles retrieves every account profile. Admin only; profiles
// never carry password hashes.
func (s *UserService) ListProfiles(ctx context.Context) ([]model.Profile, error) {
	return s.repo.ListProfiles(ctx)
}
