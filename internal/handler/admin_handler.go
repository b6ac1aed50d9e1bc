package handler

import (
	"net/http"

	"github.com/academix/journey-backend/internal/response"
	"github.com/academix/journey-backend/internal/service"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

// AdminHandler handles account-administration endpoints.
type AdminHandler struct {
	userService *service.UserService
	log         zerolog.Logger
}

// NewAdminHandler creates a new AdminHandler.
func NewAdminHandler(userService *service.UserService, log zerolog.Logger) *AdminHandler {
	return &AdminHandler{userService: userService, log: log}
}

// ListUsers godoc
// GET /api/v1/admin/users
// Returns every account profile. Admin only.
func (h *AdminHandler) ListUsers(c *gin.Context) {
	users, err := h.userService.ListProfiles(c.Request.Context())
	if err != nil {
		h.log.Error().Err(err).Msg("List users failed")
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"users": users})
}
