package repository

import (
	"context"
	"errors"

	"github.com/academix/journey-backend/internal/model"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

// StudentRepository handles student data access.
type StudentRepository struct {
	pool *pgxpool.Pool
}

// NewStudentRepository creates a new StudentRepository.
func NewStudentRepository(pool *pgxpool.Pool) *StudentRepository {
	return &StudentRepository{pool: pool}
}

// GetByID retrieves a student by ID.
func (r *StudentRepository) GetByID(ctx context.Context, id string) (*model.Student, error) {
	s := &model.Student{}
	err := r.pool.QueryRow(ctx,
		`SELECT id, first_name, last_name, admission_number, date_of_birth, grade, stream, parent_id, created_at, updated_at
		 FROM students WHERE id = $1`, id,
	).Scan(&s.ID, &s.FirstName, &s.LastName, &s.AdmissionNumber, &s.DateOfBirth, &s.Grade, &s.Stream, &s.ParentID, &s.CreatedAt, &s.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return s, nil
}

// ListAll retrieves every student with the linked parent's profile fields.
func (r *StudentRepository) ListAll(ctx context.Context) ([]model.StudentWithParent, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT s.id, s.first_name, s.last_name, s.admission_number, s.date_of_birth, s.grade, s.stream, s.parent_id, s.created_at, s.updated_at,
		        p.first_name, p.last_name, p.email
		 FROM students s
		 LEFT JOIN profiles p ON s.parent_id = p.id
		 ORDER BY s.last_name, s.first_name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	students := []model.StudentWithParent{}
	for rows.Next() {
		var s model.StudentWithParent
		if err := rows.Scan(
			&s.ID, &s.FirstName, &s.LastName, &s.AdmissionNumber, &s.DateOfBirth, &s.Grade, &s.Stream, &s.ParentID, &s.CreatedAt, &s.UpdatedAt,
			&s.ParentFirstName, &s.ParentLastName, &s.ParentEmail,
		); err != nil {
			return nil, err
		}
		students = append(students, s)
	}
	return students, rows.Err()
}

// ListByParent retrieves the students linked to a parent account.
func (r *StudentRepository) ListByParent(ctx context.Context, parentID string) ([]model.Student, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT id, first_name, last_name, admission_number, date_of_birth, grade, stream, parent_id, created_at, updated_at
		 FROM students WHERE parent_id = $1
		 ORDER BY last_name, first_name`, parentID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	students := []model.Student{}
	for rows.Next() {
		var s model.Student
		if err := rows.Scan(&s.ID, &s.FirstName, &s.LastName, &s.AdmissionNumber, &s.DateOfBirth, &s.Grade, &s.Stream, &s.ParentID, &s.CreatedAt, &s.UpdatedAt); err != nil {
			return nil, err
		}
		students = append(students, s)
	}
	return students, rows.Err()
}

// IsOwnedBy reports whether the student exists and is linked to the given
// parent. Backs the ownership gate.
func (r *StudentRepository) IsOwnedBy(ctx context.Context, studentID, parentID string) (bool, error) {
	var owned bool
	err := r.pool.QueryRow(ctx,
		`SELECT EXISTS(SELECT 1 FROM students WHERE id = $1 AND parent_id = $2)`,
		studentID, parentID,
	).Scan(&owned)
	if err != nil {
		return false, err
	}
	return owned, nil
}

// Create inserts a new student.
func (r *StudentRepository) Create(ctx context.Context, s *model.Student) error {
	err := r.pool.QueryRow(ctx,
		`INSERT INTO students (id, first_name, last_name, admission_number, date_of_birth, grade, stream, parent_id)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		 RETURNING created_at, updated_at`,
		s.ID, s.FirstName, s.LastName, s.AdmissionNumber, s.DateOfBirth, s.Grade, s.Stream, s.ParentID,
	).Scan(&s.CreatedAt, &s.UpdatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return ErrDuplicateAdmissionNo
		}
		return err
	}
	return nil
}

// Update modifies a student record.
func (r *StudentRepository) Update(ctx context.Context, s *model.Student) error {
	tag, err := r.pool.Exec(ctx,
		`UPDATE students
		 SET first_name = $1, last_name = $2, admission_number = $3, date_of_birth = $4,
		     grade = $5, stream = $6, parent_id = $7, updated_at = CURRENT_TIMESTAMP
		 WHERE id = $8`,
		s.FirstName, s.LastName, s.AdmissionNumber, s.DateOfBirth, s.Grade, s.Stream, s.ParentID, s.ID,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return ErrDuplicateAdmissionNo
		}
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// Delete removes a student by ID.
func (r *StudentRepository) Delete(ctx context.Context, id string) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM students WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
