package service

import (
	"context"
	"fmt"
	"time"

	"github.com/academix/journey-backend/internal/model"
	"github.com/academix/journey-backend/internal/repository"
	"github.com/google/uuid"
)

// StudentService handles student record management.
type StudentService struct {
	repo *repository.StudentRepository
}

// NewStudentService creates a new StudentService.
func NewStudentService(repo *repository.StudentRepository) *StudentService {
	return &StudentService{repo: repo}
}

// ListAll retrieves every student with parent info. Admin/teacher view.
func (s *StudentService) ListAll(ctx context.Context) ([]model.StudentWithParent, error) {
	return s.repo.ListAll(ctx)
}

// ListByParent retrieves the students linked to a parent account.
func (s *StudentService) ListByParent(ctx context.Context, parentID string) ([]model.Student, error) {
	return s.repo.ListByParent(ctx, parentID)
}

// Create inserts a new student from the admin request.
func (s *StudentService) Create(ctx context.Context, req *model.CreateStudentRequest) (*model.Student, error) {
	dob, err := time.Parse("2006-01-02", req.DateOfBirth)
	if err != nil {
		return nil, fmt.Errorf("parse date of birth: %w", err)
	}

	student := &model.Student{
		ID:              uuid.New().String(),
		FirstName:       req.FirstName,
		LastName:        req.LastName,
		AdmissionNumber: req.AdmissionNumber,
		DateOfBirth:     dob,
		Grade:           req.Grade,
		Stream:          req.Stream,
		ParentID:        req.ParentID,
	}
	if err := s.repo.Create(ctx, student); err != nil {
		return nil, err
	}
	return student, nil
}

// Update modifies an existing student.
func (s *StudentService) Update(ctx context.Context, id string, req *model.UpdateStudentRequest) (*model.Student, error) {
	dob, err := time.Parse("2006-01-02", req.DateOfBirth)
	if err != nil {
		return nil, fmt.Errorf("parse date of birth: %w", err)
	}

	student := &model.Student{
		ID:              id,
		FirstName:       req.FirstName,
		LastName:        req.LastName,
		AdmissionNumber: req.AdmissionNumber,
		DateOfBirth:     dob,
		Grade:           req.Grade,
		Stream:          req.Stream,
		ParentID:        req.ParentID,
	}
	if err := s.repo.Update(ctx, student); err != nil {
		return nil, err
	}
	return s.repo.GetByID(ctx, id)
}

// Delete removes a student.
func (s *StudentService) Delete(ctx context.Context, id string) error {
	return s.repo.Delete(ctx, id)
}
