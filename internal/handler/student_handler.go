package handler

import (
	"errors"
	"net/http"

	"github.com/academix/journey-backend/internal/middleware"
	"github.com/academix/journey-backend/internal/model"
	"github.com/academix/journey-backend/internal/repository"
	"github.com/academix/journey-backend/internal/response"
	"github.com/academix/journey-backend/internal/service"
	"github.com/academix/journey-backend/internal/validator"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// StudentHandler handles student record endpoints.
type StudentHandler struct {
	studentService *service.StudentService
	log            zerolog.Logger
}

// NewStudentHandler creates a new StudentHandler.
func NewStudentHandler(studentService *service.StudentService, log zerolog.Logger) *StudentHandler {
	return &StudentHandler{studentService: studentService, log: log}
}

// List godoc
// GET /api/v1/students
// Admins and teachers see every student with parent info; parents see
// only their own children.
func (h *StudentHandler) List(c *gin.Context) {
	claims := middleware.GetClaims(c)
	if claims == nil {
		response.Fail(c, http.StatusUnauthorized, response.ErrTokenRequired)
		return
	}

	switch claims.Role {
	case model.RoleAdmin, model.RoleTeacher:
		students, err := h.studentService.ListAll(c.Request.Context())
		if err != nil {
			h.log.Error().Err(err).Msg("List students failed")
			response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
			return
		}
		response.Success(c, http.StatusOK, gin.H{"students": students})
	case model.RoleParent:
		students, err := h.studentService.ListByParent(c.Request.Context(), claims.UserID)
		if err != nil {
			h.log.Error().Err(err).Msg("List children failed")
			response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
			return
		}
		response.Success(c, http.StatusOK, gin.H{"students": students})
	default:
		response.Fail(c, http.StatusForbidden, response.ErrForbidden)
	}
}

// Create godoc
// POST /api/v1/students
// Creates a student record. Admin only.
func (h *StudentHandler) Create(c *gin.Context) {
	var req model.CreateStudentRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	student, err := h.studentService.Create(c.Request.Context(), &req)
	if err != nil {
		if errors.Is(err, repository.ErrDuplicateAdmissionNo) {
			response.Fail(c, http.StatusConflict, response.ErrAdmissionNumberTaken)
			return
		}
		h.log.Error().Err(err).Msg("Create student failed")
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	response.Success(c, http.StatusCreated, gin.H{"student": student})
}

// Update godoc
// PUT /api/v1/students/:id
// Updates a student record. Admin only.
func (h *StudentHandler) Update(c *gin.Context) {
	id := c.Param("id")
	if _, err := uuid.Parse(id); err != nil {
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidID)
		return
	}

	var req model.UpdateStudentRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	student, err := h.studentService.Update(c.Request.Context(), id, &req)
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrNotFound):
			response.Fail(c, http.StatusNotFound, response.ErrNotFound)
		case errors.Is(err, repository.ErrDuplicateAdmissionNo):
			response.Fail(c, http.StatusConflict, response.ErrAdmissionNumberTaken)
		default:
			h.log.Error().Err(err).Str("id", id).Msg("Update student failed")
			response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		}
		return
	}

	response.Success(c, http.StatusOK, gin.H{"student": student})
}

// Delete godoc
// DELETE /api/v1/students/:id
// Removes a student record. Admin only.
func (h *StudentHandler) Delete(c *gin.Context) {
	id := c.Param("id")
	if _, err := uuid.Parse(id); err != nil {
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidID)
		return
	}

	if err := h.studentService.Delete(c.Request.Context(), id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			response.Fail(c, http.StatusNotFound, response.ErrNotFound)
			return
		}
		h.log.Error().Err(err).Str("id", id).Msg("Delete student failed")
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	response.Success(c, http.StatusOK, gin.H{})
}
