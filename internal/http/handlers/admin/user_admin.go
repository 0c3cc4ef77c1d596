package admin

import (
	"errors"
	"net/http"

	handlershared "github.com/techgear-vn/techgear-api/internal/http/handlers/shared"
	"github.com/techgear-vn/techgear-api/internal/http/response"
	"github.com/techgear-vn/techgear-api/internal/repository"
	"github.com/techgear-vn/techgear-api/internal/service"

	"github.com/gin-gonic/gin"
)

// ListUsers returns accounts for the back office.
func (h *Handler) ListUsers(c *gin.Context) {
	page, pageSize := handlershared.ParsePagination(c)
	filter := repository.UserListFilter{
		Page:     page,
		PageSize: pageSize,
		Keyword:  c.Query("keyword"),
		Role:     c.Query("role"),
	}
	users, total, err := h.UserService.List(filter)
	if err != nil {
		respondError(c, http.StatusInternalServerError, "User list failed", err)
		return
	}
	response.SuccessWithPage(c, users, response.NewPagination(page, pageSize, total))
}

// SetUserRoleRequest changes an account's role.
type SetUserRoleRequest struct {
	Role string `json:"role" binding:"required"`
}

// SetUserRole promotes or demotes an account.
func (h *Handler) SetUserRole(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	var req SetUserRoleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "Invalid request body", err)
		return
	}
	user, err := h.UserService.SetRole(id, req.Role)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrNotFound):
			respondError(c, http.StatusBadRequest, "Unknown role or account", nil)
		default:
			respondError(c, http.StatusInternalServerError, "Role update failed", err)
		}
		return
	}
	response.Success(c, user)
}
