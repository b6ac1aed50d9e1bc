package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/academix/journey-backend/internal/model"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

// UserRepository owns the users and profiles tables. It is the credential
// store behind registration and login.
type UserRepository struct {
	pool *pgxpool.Pool
}

// NewUserRepository creates a new UserRepository.
func NewUserRepository(pool *pgxpool.Pool) *UserRepository {
	return &UserRepository{pool: pool}
}

// FindByEmail retrieves the authentication record for an email address.
func (r *UserRepository) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	u := &model.User{}
	err := r.pool.QueryRow(ctx,
		`SELECT id, email, password_hash, created_at, updated_at
		 FROM users WHERE email = $1`, email,
	).Scan(&u.ID, &u.Email, &u.PasswordHash, &u.CreatedAt, &u.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return u, nil
}

// GetProfile retrieves the profile sharing an id with a user.
func (r *UserRepository) GetProfile(ctx context.Context, id string) (*model.Profile, error) {
	p := &model.Profile{}
	err := r.pool.QueryRow(ctx,
		`SELECT id, first_name, last_name, email, role, created_at, updated_at
		 FROM profiles WHERE id = $1`, id,
	).Scan(&p.ID, &p.FirstName, &p.LastName, &p.Email, &p.Role, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return p, nil
}

// CreateWithProfile inserts the user, its profile, and — when child is
// non-nil — the linked student row in a single transaction. Either all
// rows commit or none do. Uniqueness is enforced by the database
// constraints inside the transaction, so two concurrent registrations
// with the same email cannot both succeed even if both passed the
// caller's pre-check.
func (r *UserRepository) CreateWithProfile(ctx context.Context, user *model.User, profile *model.Profile, child *model.Student) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	defer tx.Rollback(ctx)

	err = tx.QueryRow(ctx,
		`INSERT INTO users (id, email, password_hash)
		 VALUES ($1, $2, $3)
		 RETURNING created_at, updated_at`,
		user.ID, user.Email, user.PasswordHash,
	).Scan(&user.CreatedAt, &user.UpdatedAt)
	if err != nil {
		return mapUniqueViolation(err)
	}

	err = tx.QueryRow(ctx,
		`INSERT INTO profiles (id, first_name, last_name, email, role)
		 VALUES ($1, $2, $3, $4, $5)
		 RETURNING created_at, updated_at`,
		profile.ID, profile.FirstName, profile.LastName, profile.Email, profile.Role,
	).Scan(&profile.CreatedAt, &profile.UpdatedAt)
	if err != nil {
		return mapUniqueViolation(err)
	}

	if child != nil {
		err = tx.QueryRow(ctx,
			`INSERT INTO students (id, first_name, last_name, admission_number, date_of_birth, grade, stream, parent_id)
			 VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
			 RETURNING created_at, updated_at`,
			child.ID, child.FirstName, child.LastName, child.AdmissionNumber,
			child.DateOfBirth, child.Grade, child.Stream, child.ParentID,
		).Scan(&child.CreatedAt, &child.UpdatedAt)
		if err != nil {
			return mapUniqueViolation(err)
		}
	}

	return tx.Commit(ctx)
}

// ListProfiles retrieves every profile, newest first.
func (r *UserRepository) ListProfiles(ctx context.Context) ([]model.Profile, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT id, first_name, last_name, email, role, created_at, updated_at
		 FROM profiles ORDER BY created_at DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	profiles := []model.Profile{}
	for rows.Next() {
		var p model.Profile
		if err := rows.Scan(&p.ID, &p.FirstName, &p.LastName, &p.Email, &p.Role, &p.CreatedAt, &p.UpdatedAt); err != nil {
			return nil, err
		}
		profiles = append(profiles, p)
	}
	return profiles, rows.Err()
}

// UpdatePassword replaces a user's password hash. Used by ops tooling
// only; there is no password-change endpoint in current scope.
func (r *UserRepository) UpdatePassword(ctx context.Context, id, passwordHash string) error {
	tag, err := r.pool.Exec(ctx,
		`UPDATE users SET password_hash = $1, updated_at = CURRENT_TIMESTAMP WHERE id = $2`,
		passwordHash, id,
	)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// mapUniqueViolation translates a 23505 unique-violation into the typed
// conflict error matching the violated constraint.
func mapUniqueViolation(err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "23505" {
		switch {
		case strings.Contains(pgErr.ConstraintName, "admission"):
			return ErrDuplicateAdmissionNo
		case strings.Contains(pgErr.ConstraintName, "email"), pgErr.TableName == "users", pgErr.TableName == "profiles":
			return ErrDuplicateEmail
		}
	}
	return err
}
