package model

import "time"

// Role is the closed set of account roles. Authorization decisions match
// exhaustively on these three values; anything else is rejected at binding
// time, so no handler carries an "unknown role" branch.
type Role string

const (
	RoleAdmin   Role = "admin"
	RoleTeacher Role = "teacher"
	RoleParent  Role = "parent"
)

// Valid reports whether r is one of the three known roles.
func (r Role) Valid() bool {
	switch r {
	case RoleAdmin, RoleTeacher, RoleParent:
		return true
	}
	return false
}

// User is the authentication record for one account. The password hash is
// owned exclusively by this row and never serialized.
type User struct {
	ID           string    `json:"id"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

// Profile holds the human-facing attributes stored 1:1 with a User.
// Every User has exactly one Profile sharing the same id.
type Profile struct {
	ID        string    `json:"id"`
	FirstName string    `json:"firstName"`
	LastName  string    `json:"lastName"`
	Email     string    `json:"email"`
	Role      Role      `json:"role"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// ChildDetails carries the optional student record created in the same
// transaction as a parent registration.
type ChildDetails struct {
	FirstName       string `json:"firstName" binding:"required,min=1,max=100"`
	LastName        string `json:"lastName" binding:"required,min=1,max=100"`
	AdmissionNumber string `json:"admissionNumber" binding:"required,min=1,max=50"`
	DateOfBirth     string `json:"dateOfBirth" binding:"required,datetime=2006-01-02"`
	Grade           string `json:"grade" binding:"required,max=20"`
	Stream          string `json:"stream" binding:"omitempty,max=50"`
}

// RegisterRequest is the payload for account registration. Role defaults
// to parent when omitted.
type RegisterRequest struct {
	Email        string        `json:"email" binding:"required,email,max=255"`
	Password     string        `json:"password" binding:"required,min=6,max=128"`
	FirstName    string        `json:"firstName" binding:"required,min=1,max=100"`
	LastName     string        `json:"lastName" binding:"required,min=1,max=100"`
	Role         Role          `json:"role" binding:"omitempty,oneof=admin teacher parent"`
	ChildDetails *ChildDetails `json:"childDetails" binding:"omitempty"`
}

// LoginRequest is the payload for credential authentication.
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email,max=255"`
	Password string `json:"password" binding:"required,min=1,max=128"`
}
