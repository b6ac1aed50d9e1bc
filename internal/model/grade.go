package model

import "time"

// Grade is a single score a teacher recorded for a student in a subject.
type Grade struct {
	ID           string    `json:"id"`
	StudentID    string    `json:"studentId"`
	SubjectID    string    `json:"subjectId"`
	TeacherID    string    `json:"teacherId"`
	Score        float64   `json:"score"`
	Term         string    `json:"term"`
	AcademicYear string    `json:"academicYear"`
	Comment      *string   `json:"comment"`
	CreatedAt    time.Time `json:"createdAt"`
}

// GradeDetail is a Grade joined with subject and teacher display fields.
type GradeDetail struct {
	Grade
	SubjectName      string `json:"subjectName"`
	SubjectCode      string `json:"subjectCode"`
	TeacherFirstName string `json:"teacherFirstName"`
	TeacherLastName  string `json:"teacherLastName"`
}

// CreateGradeRequest is the payload for recording a grade. Score is a
// pointer so an explicit 0 passes the required check.
type CreateGradeRequest struct {
	StudentID    string   `json:"studentId" binding:"required,uuid"`
	SubjectID    string   `json:"subjectId" binding:"required,uuid"`
	Score        *float64 `json:"score" binding:"required,min=0,max=100"`
	Term         string   `json:"term" binding:"required,max=20"`
	AcademicYear string   `json:"academicYear" binding:"required,max=20"`
	Comment      *string  `json:"comment" binding:"omitempty,max=1000"`
}
