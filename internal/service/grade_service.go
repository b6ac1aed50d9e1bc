package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/academix/journey-backend/internal/config"
	"github.com/academix/journey-backend/internal/model"
	"github.com/academix/journey-backend/internal/repository"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
)

// GradeService handles grade recording and the cached per-student read
// path. The cache is an optimization only: Redis failures degrade to a
// direct database read and are logged, never surfaced to the client.
type GradeService struct {
	cfg  *config.Config
	repo *repository.GradeRepository
	rdb  *redis.Client
	log  zerolog.Logger
}

// NewGradeService creates a new GradeService.
func NewGradeService(cfg *config.Config, repo *repository.GradeRepository, rdb *redis.Client, log zerolog.Logger) *GradeService {
	return &GradeService{cfg: cfg, repo: repo, rdb: rdb, log: log}
}

func gradeCacheKey(studentID string) string {
	return fmt.Sprintf("grades:%s", studentID)
}

// ListByStudent retrieves a student's grades, serving from the Redis
// cache when warm and falling back to Postgres on a miss.
func (s *GradeService) ListByStudent(ctx context.Context, studentID string) ([]model.GradeDetail, error) {
	key := gradeCacheKey(studentID)

	data, err := s.rdb.Get(ctx, key).Bytes()
	if err == nil {
		var grades []model.GradeDetail
		if err := json.Unmarshal(data, &grades); err == nil {
			return grades, nil
		}
		// Corrupt entry: drop it and fall through to the database.
		s.rdb.Del(ctx, key)
	} else if !errors.Is(err, redis.Nil) {
		s.log.Warn().Err(err).Str("student_id", studentID).Msg("Grade cache read failed")
	}

	grades, err := s.repo.ListByStudent(ctx, studentID)
	if err != nil {
		return nil, err
	}

	if payload, err := json.Marshal(grades); err == nil {
		if err := s.rdb.Set(ctx, key, payload, s.cfg.GradeCacheTTL).Err(); err != nil {
			s.log.Warn().Err(err).Str("student_id", studentID).Msg("Grade cache write failed")
		}
	}

	return grades, nil
}

// Create records a grade authored by the given teacher and invalidates
// the student's cached grade list.
func (s *GradeService) Create(ctx context.Context, teacherID string, req *model.CreateGradeRequest) (*model.Grade, error) {
	grade := &model.Grade{
		ID:           uuid.New().String(),
		StudentID:    req.StudentID,
		SubjectID:    req.SubjectID,
		TeacherID:    teacherID,
		Score:        *req.Score,
		Term:         req.Term,
		AcademicYear: req.AcademicYear,
		Comment:      req.Comment,
	}
	if err := s.repo.Create(ctx, grade); err != nil {
		return nil, err
	}

	if err := s.rdb.Del(ctx, gradeCacheKey(req.StudentID)).Err(); err != nil {
		s.log.Warn().Err(err).Str("student_id", req.StudentID).Msg("Grade cache invalidation failed")
	}

	return grade, nil
}
