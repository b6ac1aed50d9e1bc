package repository

import (
	"context"

	"github.com/academix/journey-backend/internal/model"
	"github.com/jackc/pgx/v5/pgxpool"
)

// FeedbackRepository handles feedback data access.
type FeedbackRepository struct {
	pool *pgxpool.Pool
}

// NewFeedbackRepository creates a new FeedbackRepository.
func NewFeedbackRepository(pool *pgxpool.Pool) *FeedbackRepository {
	return &FeedbackRepository{pool: pool}
}

// ListByStudent retrieves a student's feedback joined with teacher display
// fields, newest first.
func (r *FeedbackRepository) ListByStudent(ctx context.Context, studentID string) ([]model.FeedbackDetail, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT f.id, f.student_id, f.teacher_id, f.content, f.date, f.created_at,
		        p.first_name, p.last_name
		 FROM feedback f
		 JOIN profiles p ON f.teacher_id = p.id
		 WHERE f.student_id = $1
		 ORDER BY f.date DESC`, studentID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := []model.FeedbackDetail{}
	for rows.Next() {
		var f model.FeedbackDetail
		if err := rows.Scan(
			&f.ID, &f.StudentID, &f.TeacherID, &f.Content, &f.Date, &f.CreatedAt,
			&f.TeacherFirstName, &f.TeacherLastName,
		); err != nil {
			return nil, err
		}
		items = append(items, f)
	}
	return items, rows.Err()
}

// Create inserts a new feedback entry.
func (r *FeedbackRepository) Create(ctx context.Context, f *model.Feedback) error {
	return r.pool.QueryRow(ctx,
		`INSERT INTO feedback (id, student_id, teacher_id, content, date)
		 VALUES ($1, $2, $3, $4, $5)
		 RETURNING created_at`,
		f.ID, f.StudentID, f.TeacherID, f.Content, f.Date,
	).Scan(&f.CreatedAt)
}
