package middleware

import (
	"context"
	"net/http"

	"github.com/academix/journey-backend/internal/model"
	"github.com/academix/journey-backend/internal/response"
	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/rs/zerolog"
)

// StudentAccess answers whether a student record is linked to a parent.
// *repository.StudentRepository satisfies it.
type StudentAccess interface {
	IsOwnedBy(ctx context.Context, studentID, parentID string) (bool, error)
}

// CanAccessStudentData gates access to a student's records. Admins and
// teachers pass unconditionally; a parent passes only for a student
// linked via parent_id. The student id is read from the :student_id path
// param, falling back to a studentId body field (body reads use Gin's
// cached binding so handlers can re-bind downstream). Must run after
// RequireAuth.
func CanAccessStudentData(students StudentAccess, log zerolog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		claims := GetClaims(c)
		if claims == nil {
			response.AbortFail(c, http.StatusUnauthorized, response.ErrTokenRequired)
			return
		}

		studentID := c.Param("student_id")
		if studentID == "" {
			var body struct {
				StudentID string `json:"studentId"`
			}
			if err := c.ShouldBindBodyWith(&body, binding.JSON); err == nil {
				studentID = body.StudentID
			}
		}
		if studentID == "" {
			response.AbortFail(c, http.StatusBadRequest, response.ErrStudentIDRequired)
			return
		}

		switch claims.Role {
		case model.RoleAdmin, model.RoleTeacher:
			c.Next()
		case model.RoleParent:
			owned, err := students.IsOwnedBy(c.Request.Context(), studentID, claims.UserID)
			if err != nil {
				log.Error().Err(err).Str("student_id", studentID).Msg("Ownership check failed")
				response.AbortFail(c, http.StatusInternalServerError, response.ErrInternal)
				return
			}
			if !owned {
				response.AbortFail(c, http.StatusForbidden, response.ErrNotYourChild)
				return
			}
			c.Next()
		default:
			response.AbortFail(c, http.StatusForbidden, response.ErrForbidden)
		}
	}
}
