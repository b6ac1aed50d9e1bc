package middleware

import (
	"net/http"

	"github.com/academix/journey-backend/internal/model"
	"github.com/academix/journey-backend/internal/response"
	"github.com/gin-gonic/gin"
)

// RequireRoles rejects the request with 403 unless the authenticated role
// is in the allowed set. Must run after RequireAuth.
func RequireRoles(roles ...model.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		claims := GetClaims(c)
		if claims == nil {
			response.AbortFail(c, http.StatusUnauthorized, response.ErrTokenRequired)
			return
		}

		for _, role := range roles {
			if claims.Role == role {
				c.Next()
				return
			}
		}

		response.AbortFail(c, http.StatusForbidden, roleDeniedCode(roles))
	}
}

// RequireAdmin gates a route to admins.
func RequireAdmin() gin.HandlerFunc {
	return RequireRoles(model.RoleAdmin)
}

// RequireTeacher gates a route to teachers.
func RequireTeacher() gin.HandlerFunc {
	return RequireRoles(model.RoleTeacher)
}

// RequireParent gates a route to parents.
func RequireParent() gin.HandlerFunc {
	return RequireRoles(model.RoleParent)
}

// roleDeniedCode picks the specific single-role message when the gate
// allows exactly one role, and the generic one otherwise.
func roleDeniedCode(roles []model.Role) response.ErrCode {
	if len(roles) != 1 {
		return response.ErrForbidden
	}
	switch roles[0] {
	case model.RoleAdmin:
		return response.ErrAdminAccessOnly
	case model.RoleTeacher:
		return response.ErrTeacherAccessOnly
	case model.RoleParent:
		return response.ErrParentAccessOnly
	}
	return response.ErrForbidden
}
