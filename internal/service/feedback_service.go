package service

import (
	"context"
	"fmt"
	"time"

	"github.com/academix/journey-backend/internal/model"
	"github.com/academix/journey-backend/internal/repository"
	"github.com/google/uuid"
)

// FeedbackService handles teacher feedback entries.
type FeedbackService struct {
	repo *repository.FeedbackRepository
}

// NewFeedbackService creates a new FeedbackService.
func NewFeedbackService(repo *repository.FeedbackRepository) *FeedbackService {
	return &FeedbackService{repo: repo}
}

// ListByStudent retrieves a student's feedback entries.
func (s *FeedbackService) ListByStudent(ctx context.Context, studentID string) ([]model.FeedbackDetail, error) {
	return s.repo.ListByStudent(ctx, studentID)
}

// Create records a feedback entry authored by the given teacher.
func (s *FeedbackService) Create(ctx context.Context, teacherID string, req *model.CreateFeedbackRequest) (*model.Feedback, error) {
	date, err := time.Parse("2006-01-02", req.Date)
	if err != nil {
		return nil, fmt.Errorf("parse date: %w", err)
	}

	fb := &model.Feedback{
		ID:        uuid.New().String(),
		StudentID: req.StudentID,
		TeacherID: teacherID,
		Content:   req.Content,
		Date:      date,
	}
	if err := s.repo.Create(ctx, fb); err != nil {
		return nil, err
	}
	return fb, nil
}
