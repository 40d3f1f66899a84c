package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"shopapi/internal/errors"
	"shopapi/internal/middleware"
	"shopapi/internal/model"
	"shopapi/internal/service"
)

// UserHandler bundles the admin user endpoints.
type UserHandler struct {
	svc service.UserService
}

// NewUserHandler creates a handler layer.
func NewUserHandler(svc service.UserService) *UserHandler {
	return &UserHandler{svc: svc}
}

// RoleRequest is the body of a role change.
type RoleRequest struct {
	Role string `json:"role" validate:"required,oneof=USER ADMIN"`
}

// ListUsers godoc
// @Summary List users
// @Tags users
// @Produce json
// @Security BearerAuth
// @Success 200 {array} model.User
// @Failure 401 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /users [get]
func (h *UserHandler) ListUsers(c echo.Context) error {
	users, err := h.svc.ListUsers(c.Request().Context())
	if err != nil {
		return handleError(c, err)
	}
	return c.JSON(http.StatusOK, users)
}

// UpdateRole godoc
// @Summary Change the role of a user
// @Tags users
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "User ID"
// @Param request body RoleRequest true "New role"
// @Success 200 {object} MessageResponse
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /users/{id}/role [put]
func (h *UserHandler) UpdateRole(c echo.Context) error {
	claims, ok := middleware.CurrentUser(c)
	if !ok {
		return handleError(c, errors.ErrNoToken)
	}

	var req RoleRequest
	if err := c.Bind(&req); err != nil {
		return handleError(c, errors.ErrInvalidBody)
	}
	if err := c.Validate(&req); err != nil {
		return handleError(c, errors.ErrInvalidRole)
	}

	id, herr := parseID(c, "id", errors.ErrUserNotFound)
	if herr != nil {
		return herr
	}

	if err := h.svc.UpdateRole(c.Request().Context(), id, model.Role(req.Role), claims.UserID); err != nil {
		return handleError(c, err)
	}
	return c.JSON(http.StatusOK, MessageResponse{Message: "User role updated successfully"})
}
