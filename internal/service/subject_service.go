package service

import (
	"context"

	"github.com/academix/journey-backend/internal/model"
	"github.com/academix/journey-backend/internal/repository"
	"github.com/google/uuid"
)

// SubjectService handles subject management.
type SubjectService struct {
	repo *repository.SubjectRepository
}

// NewSubjectService creates a new SubjectService.
func NewSubjectService(repo *repository.SubjectRepository) *SubjectService {
	return &SubjectService{repo: repo}
}

// List retrieves all subjects.
func (s *SubjectService) List(ctx context.Context) ([]model.Subject, error) {
	return s.repo.List(ctx)
}

// Create inserts a new subject.
func (s *SubjectService) Create(ctx context.Context, req *model.SubjectRequest) (*model.Subject, error) {
	subject := &model.Subject{
		ID:   uuid.New().String(),
		Name: req.Name,
		Code: req.Code,
	}
	if err := s.repo.Create(ctx, subject); err != nil {
		return nil, err
	}
	return subject, nil
}

// Update modifies a subject.
func (s *SubjectService) Update(ctx context.Context, id string, req *model.SubjectRequest) (*model.Subject, error) {
	subject := &model.Subject{
		ID:   id,
		Name: req.Name,
		Code: req.Code,
	}
	if err := s.repo.Update(ctx, subject); err != nil {
		return nil, err
	}
	return subject, nil
}

// Delete removes a subject.
func (s *SubjectService) Delete(ctx context.Context, id string) error {
	return s.repo.Delete(ctx, id)
}
