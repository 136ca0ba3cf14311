package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"contactbook/internal/auth"
	"contactbook/internal/service"
)

// UserHandler handles profile endpoints for the authenticated user.
type UserHandler struct {
	users service.UserService
}

// NewUserHandler creates a new user handler.
func NewUserHandler(users service.UserService) *UserHandler {
	return &UserHandler{users: users}
}

// Me godoc
// @Summary Get the current user's profile
// @Tags users
// @Produce json
// @Security BearerAuth
// @Success 200 {object} model.User
// @Router /users/me [get]
func (h *UserHandler) Me(c echo.Context) error {
	user, ok := auth.UserFromContext(c)
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized, "could not validate credentials")
	}
	return c.JSON(http.StatusOK, user)
}

// UpdateAvatar godoc
// @Summary Upload a new avatar image
// @Tags users
// @Accept mpfd
// @Produce json
// @Security BearerAuth
// @Param file formData file true "Avatar image"
// @Success 200 {object} model.User
// @Failure 400 {object} errors.ErrorResponse
// @Router /users/avatar [patch]
func (h *UserHandler) UpdateAvatar(c echo.Context) error {
	user, ok := auth.UserFromContext(c)
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized, "could not validate credentials")
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "file is required")
	}
	file, err := fileHeader.Open()
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "cannot read file")
	}
	defer file.Close()

	updated, err := h.users.UpdateAvatar(c.Request().Context(), user, fileHeader.Filename, file)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, updated)
}
