package repository

import (
	"context"

	"github.com/academix/journey-backend/internal/model"
	"github.com/jackc/pgx/v5/pgxpool"
)

// GradeRepository handles grade data access.
type GradeRepository struct {
	pool *pgxpool.Pool
}

// NewGradeRepository creates a new GradeRepository.
func NewGradeRepository(pool *pgxpool.Pool) *GradeRepository {
	return &GradeRepository{pool: pool}
}

// ListByStudent retrieves a student's grades joined with subject and
// teacher display fields, newest first.
func (r *GradeRepository) ListByStudent(ctx context.Context, studentID string) ([]model.GradeDetail, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT g.id, g.student_id, g.subject_id, g.teacher_id, g.score, g.term, g.academic_year, g.comment, g.created_at,
		        s.name, s.code, p.first_name, p.last_name
		 FROM grades g
		 JOIN subjects s ON g.subject_id = s.id
		 JOIN profiles p ON g.teacher_id = p.id
		 WHERE g.student_id = $1
		 ORDER BY g.created_at DESC`, studentID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	grades := []model.GradeDetail{}
	for rows.Next() {
		var g model.GradeDetail
		if err := rows.Scan(
			&g.ID, &g.StudentID, &g.SubjectID, &g.TeacherID, &g.Score, &g.Term, &g.AcademicYear, &g.Comment, &g.CreatedAt,
			&g.SubjectName, &g.SubjectCode, &g.TeacherFirstName, &g.TeacherLastName,
		); err != nil {
			return nil, err
		}
		grades = append(grades, g)
	}
	return grades, rows.Err()
}

// Create inserts a new grade.
func (r *GradeRepository) Create(ctx context.Context, g *model.Grade) error {
	return r.pool.QueryRow(ctx,
		`INSERT INTO grades (id, student_id, subject_id, teacher_id, score, term, academic_year, comment)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		 RETURNING created_at`,
		g.ID, g.StudentID, g.SubjectID, g.TeacherID, g.Score, g.Term, g.AcademicYear, g.Comment,
	).Scan(&g.CreatedAt)
}
