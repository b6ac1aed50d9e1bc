package handler

import (
	"net/http"

	"github.com/academix/journey-backend/internal/middleware"
	"github.com/academix/journey-backend/internal/model"
	"github.com/academix/journey-backend/internal/response"
	"github.com/academix/journey-backend/internal/service"
	"github.com/academix/journey-backend/internal/validator"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

// FeedbackHandler handles feedback endpoints.
type FeedbackHandler struct {
	feedbackService *service.FeedbackService
	log             zerolog.Logger
}

// NewFeedbackHandler creates a new FeedbackHandler.
func NewFeedbackHandler(feedbackService *service.FeedbackService, log zerolog.Logger) *FeedbackHandler {
	return &FeedbackHandler{feedbackService: feedbackService, log: log}
}

// ListByStudent godoc
// GET /api/v1/feedback/:student_id
// Returns a student's feedback entries. Runs behind the ownership gate.
func (h *FeedbackHandler) ListByStudent(c *gin.Context) {
	studentID := c.Param("student_id")

	items, err := h.feedbackService.ListByStudent(c.Request.Context(), studentID)
	if err != nil {
		h.log.Error().Err(err).Str("student_id", studentID).Msg("List feedback failed")
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"feedback": items})
}

// Create godoc
// POST /api/v1/feedback
// Records a feedback entry authored by the authenticated admin or teacher.
func (h *FeedbackHandler) Create(c *gin.Context) {
	claims := middleware.GetClaims(c)
	if claims == nil {
		response.Fail(c, http.StatusUnauthorized, response.ErrTokenRequired)
		return
	}

	var req model.CreateFeedbackRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	fb, err := h.feedbackService.Create(c.Request.Context(), claims.UserID, &req)
	if err != nil {
		h.log.Error().Err(err).Str("student_id", req.StudentID).Msg("Create feedback failed")
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	response.Success(c, http.StatusCreated, gin.H{"feedback": fb})
}
