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

// GradeHandler handles grade endpoints.
type GradeHandler struct {
	gradeService *service.GradeService
	log          zerolog.Logger
}

// NewGradeHandler creates a new GradeHandler.
func NewGradeHandler(gradeService *service.GradeService, log zerolog.Logger) *GradeHandler {
	return &GradeHandler{gradeService: gradeService, log: log}
}

// ListByStudent godoc
// GET /api/v1/grades/:student_id
// Returns a student's grades. The ownership gate runs before this
// handler, so any authenticated caller reaching it is allowed to read.
func (h *GradeHandler) ListByStudent(c *gin.Context) {
	studentID := c.Param("student_id")

	grades, err := h.gradeService.ListByStudent(c.Request.Context(), studentID)
	if err != nil {
		h.log.Error().Err(err).Str("student_id", studentID).Msg("List grades failed")
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"grades": grades})
}

// Create godoc
// POST /api/v1/grades
// Records a grade authored by the authenticated admin or teacher.
func (h *GradeHandler) Create(c *gin.Context) {
	claims := middleware.GetClaims(c)
	if claims == nil {
		response.Fail(c, http.StatusUnauthorized, response.ErrTokenRequired)
		return
	}

	var req model.CreateGradeRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	grade, err := h.gradeService.Create(c.Request.Context(), claims.UserID, &req)
	if err != nil {
		h.log.Error().Err(err).Str("student_id", req.StudentID).Msg("Create grade failed")
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	response.Success(c, http.StatusCreated, gin.H{"grade": grade})
}
