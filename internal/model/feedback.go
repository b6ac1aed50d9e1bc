package model

import "time"

// Feedback is a free-form note a teacher recorded for a student.
type Feedback struct {
	ID        string    `json:"id"`
	StudentID string    `json:"studentId"`
	TeacherID string    `json:"teacherId"`
	Content   string    `json:"content"`
	Date      time.Time `json:"date"`
	CreatedAt time.Time `json:"createdAt"`
}

// FeedbackDetail is a Feedback joined with teacher display fields.
type FeedbackDetail struct {
	Feedback
	TeacherFirstName string `json:"teacherFirstName"`
	TeacherLastName  string `json:"teacherLastName"`
}

// CreateFeedbackRequest is the payload for recording feedback.
type CreateFeedbackRequest struct {
	StudentID string `json:"studentId" binding:"required,uuid"`
	Content   string `json:"content" binding:"required,min=1,max=2000"`
	Date      string `json:"date" binding:"required,datetime=2006-01-02"`
}
