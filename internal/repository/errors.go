package repository

import "errors"

// Typed persistence errors. Callers map these onto the API error taxonomy;
// anything else coming out of a repository is a store failure and surfaces
// as a 5xx.
var (
	ErrNotFound             = errors.New("record not found")
	ErrDuplicateEmail       = errors.New("email already registered")
	ErrDuplicateAdmissionNo = errors.New("admission number already in use")
	ErrDuplicateSubjectCode = errors.New("subject code already in use")
)
