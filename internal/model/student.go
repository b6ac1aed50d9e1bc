package model

import "time"

// Student represents an enrolled student. ParentID links the record to the
// parent account allowed to view it; it is nil for students without a
// registered parent.
type Student struct {
	ID              string    `json:"id"`
	FirstName       string    `json:"firstName"`
	LastName        string    `json:"lastName"`
	AdmissionNumber string    `json:"admissionNumber"`
	DateOfBirth     time.Time `json:"dateOfBirth"`
	Grade           string    `json:"grade"`
	Stream          *string   `json:"stream,omitempty"`
	ParentID        *string   `json:"parentId"`
	CreatedAt       time.Time `json:"createdAt"`
	UpdatedAt       time.Time `json:"updatedAt"`
}

// StudentWithParent is a Student joined with its parent's profile, used by
// the admin/teacher listing.
type StudentWithParent struct {
	Student
	ParentFirstName *string `json:"parentFirstName,omitempty"`
	ParentLastName  *string `json:"parentLastName,omitempty"`
	ParentEmail     *string `json:"parentEmail,omitempty"`
}

// CreateStudentRequest is the payload for creating a student record.
type CreateStudentRequest struct {
	FirstName       string  `json:"firstName" binding:"required,min=1,max=100"`
	LastName        string  `json:"lastName" binding:"required,min=1,max=100"`
	AdmissionNumber string  `json:"admissionNumber" binding:"required,min=1,max=50"`
	DateOfBirth     string  `json:"dateOfBirth" binding:"required,datetime=2006-01-02"`
	Grade           string  `json:"grade" binding:"required,max=20"`
	Stream          *string `json:"stream" binding:"omitempty,max=50"`
	ParentID        *string `json:"parentId" binding:"omitempty,uuid"`
}

// UpdateStudentRequest is the payload for updating a student record.
type UpdateStudentRequest struct {
	FirstName       string  `json:"firstName" binding:"required,min=1,max=100"`
	LastName        string  `json:"lastName" binding:"required,min=1,max=100"`
	AdmissionNumber string  `json:"admissionNumber" binding:"required,min=1,max=50"`
	DateOfBirth     string  `json:"dateOfBirth" binding:"required,datetime=2006-01-02"`
	Grade           string  `json:"grade" binding:"required,max=20"`
	Stream          *string `json:"stream" binding:"omitempty,max=50"`
	ParentID        *string `json:"parentId" binding:"omitempty,uuid"`
}
