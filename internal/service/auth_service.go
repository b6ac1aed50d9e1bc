package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/academix/journey-backend/internal/config"
	"github.com/academix/journey-backend/internal/model"
	"github.com/academix/journey-backend/internal/repository"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

// Common auth errors.
var (
	ErrInvalidCredentials   = errors.New("invalid credentials")
	ErrEmailTaken           = errors.New("email already registered")
	ErrAdmissionNumberTaken = errors.New("admission number already in use")
)

// Claims extends JWT registered claims with the authenticated identity.
// A token is a stateless, signed assertion of {id, email, role}; the
// server keeps no record of issued tokens and trusts claims only after
// signature and expiry verification.
type Claims struct {
	jwt.RegisteredClaims
	UserID string     `json:"user_id"`
	Email  string     `json:"email"`
	Role   model.Role `json:"role"`
}

// UserStore is the credential-store contract the auth service depends on.
// *repository.UserRepository satisfies it; tests substitute an in-memory
// implementation.
type UserStore interface {
	FindByEmail(ctx context.Context, email string) (*model.User, error)
	CreateWithProfile(ctx context.Context, user *model.User, profile *model.Profile, child *model.Student) error
	GetProfile(ctx context.Context, id string) (*model.Profile, error)
}

// AuthService handles password hashing, JWT issuance/verification, and
// the registration/login flows.
type AuthService struct {
	cfg   *config.Config
	users UserStore
}

// NewAuthService creates a new AuthService.
func NewAuthService(cfg *config.Config, users UserStore) *AuthService {
	return &AuthService{cfg: cfg, users: users}
}

// HashPassword hashes a password with the configured bcrypt cost. bcrypt
// generates a fresh random salt per call, so two hashes of the same
// password never match. A hashing failure is unrecoverable and aborts
// the operation that requested it.
func (s *AuthService) HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), s.cfg.BcryptCost)
	return string(hash), err
}

// CheckPassword compares a plaintext password against a bcrypt hash.
// Mismatch and malformed hash both resolve to ErrInvalidCredentials.
func (s *AuthService) CheckPassword(hash, password string) error {
	if err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)); err != nil {
		return ErrInvalidCredentials
	}
	return nil
}

// GenerateToken signs an HS256 JWT carrying the profile's identity and
// role, expiring after the configured TTL.
func (s *AuthService) GenerateToken(profile *model.Profile) (string, error) {
	now := time.Now()

	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.New().String(),
			Subject:   profile.ID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.cfg.JWTExpiry)),
		},
		UserID: profile.ID,
		Email:  profile.Email,
		Role:   profile.Role,
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(s.cfg.JWTSecret))
}

// ValidateToken parses and validates a JWT, returning the claims.
// Malformed, tampered, or expired tokens all degrade to an error; the
// caller must not fall back to any identity.
func (s *AuthService) ValidateToken(tokenStr string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenStr, &Claims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return []byte(s.cfg.JWTSecret), nil
	})
	if err != nil {
		return nil, fmt.Errorf("parse token: %w", err)
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, errors.New("invalid token claims")
	}
	if !claims.Role.Valid() {
		return nil, errors.New("unknown role in token")
	}

	return claims, nil
}

// Register creates a new account: user row, profile row, and, for a
// parent supplying child details, the linked student row in a single
// transaction. The email pre-check gives an early error; uniqueness is
// ultimately enforced by the database constraint inside the transaction.
func (s *AuthService) Register(ctx context.Context, req *model.RegisterRequest) (*model.Profile, error) {
	role := req.Role
	if role == "" {
		role = model.RoleParent
	}

	_, err := s.users.FindByEmail(ctx, req.Email)
	if err == nil {
		return nil, ErrEmailTaken
	}
	if !errors.Is(err, repository.ErrNotFound) {
		return nil, fmt.Errorf("lookup email: %w", err)
	}

	hash, err := s.HashPassword(req.Password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	userID := uuid.New().String()
	user := &model.User{
		ID:           userID,
		Email:        req.Email,
		PasswordHash: hash,
	}
	profile := &model.Profile{
		ID:        userID,
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Email:     req.Email,
		Role:      role,
	}

	var child *model.Student
	if role == model.RoleParent && req.ChildDetails != nil {
		dob, err := time.Parse("2006-01-02", req.ChildDetails.DateOfBirth)
		if err != nil {
			return nil, fmt.Errorf("parse date of birth: %w", err)
		}
		var stream *string
		if req.ChildDetails.Stream != "" {
			stream = &req.ChildDetails.Stream
		}
		parentID := userID
		child = &model.Student{
			ID:              uuid.New().String(),
			FirstName:       req.ChildDetails.FirstName,
			LastName:        req.ChildDetails.LastName,
			AdmissionNumber: req.ChildDetails.AdmissionNumber,
			DateOfBirth:     dob,
			Grade:           req.ChildDetails.Grade,
			Stream:          stream,
			ParentID:        &parentID,
		}
	}

	if err := s.users.CreateWithProfile(ctx, user, profile, child); err != nil {
		switch {
		case errors.Is(err, repository.ErrDuplicateEmail):
			return nil, ErrEmailTaken
		case errors.Is(err, repository.ErrDuplicateAdmissionNo):
			return nil, ErrAdmissionNumberTaken
		}
		return nil, fmt.Errorf("create account: %w", err)
	}

	return profile, nil
}

// Login verifies credentials and issues a token. Unknown email, wrong
// password, and a missing profile all resolve to ErrInvalidCredentials so
// responses never reveal which check failed.
func (s *AuthService) Login(ctx context.Context, req *model.LoginRequest) (*model.Profile, string, error) {
	user, err := s.users.FindByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, "", ErrInvalidCredentials
		}
		return nil, "", fmt.Errorf("lookup email: %w", err)
	}

	if err := s.CheckPassword(user.PasswordHash, req.Password); err != nil {
		return nil, "", ErrInvalidCredentials
	}

	profile, err := s.users.GetProfile(ctx, user.ID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			// Integrity violation (user without profile) is treated as an
			// auth failure rather than a 500 to avoid leaking internal state.
			return nil, "", ErrInvalidCredentials
		}
		return nil, "", fmt.Errorf("load profile: %w", err)
	}

	token, err := s.GenerateToken(profile)
	if err != nil {
		return nil, "", fmt.Errorf("sign token: %w", err)
	}

	return profile, token, nil
}

// GetProfile loads the profile view for an authenticated user id. Backs
// the "who am I" endpoint.
func (s *AuthService) GetProfile(ctx context.Context, id string) (*model.Profile, error) {
	return s.users.GetProfile(ctx, id)
}
