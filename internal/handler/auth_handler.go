package handler

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"contactbook/internal/auth"
	apperrors "contactbook/internal/errors"
	"contactbook/internal/service"
)

// AuthHandler handles authentication endpoints.
type AuthHandler struct {
	authService service.AuthService
}

// NewAuthHandler creates a new auth handler.
func NewAuthHandler(authService service.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

// SignupRequest represents a user signup request.
type SignupRequest struct {
	Username string `json:"username" validate:"required,min=5,max=16"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6,max=10"`
}

// LoginRequest represents a user login request.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// RequestEmailRequest asks for the confirmation mail to be re-sent.
type RequestEmailRequest struct {
	Email string `json:"email" validate:"required,email"`
}

// MessageResponse wraps a human-readable status message.
type MessageResponse struct {
	Message string `json:"message"`
}

// Signup godoc
// @Summary Sign up a new user
// @Tags auth
// @Accept json
// @Produce json
// @Param request body SignupRequest true "Signup data"
// @Success 201 {object} map[string]interface{}
// @Failure 400 {object} errors.ErrorResponse
// @Failure 409 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /auth/signup [post]
func (h *AuthHandler) Signup(c echo.Context) error {
	var req SignupRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	user, err := h.authService.Signup(c.Request().Context(), req.Username, req.Email, req.Password)
	if err != nil {
		return httpError(err)
	}

	return c.JSON(http.StatusCreated, map[string]interface{}{
		"user":   user,
		"detail": "User successfully created. Check your email for confirmation.",
	})
}

// Login godoc
// @Summary Log in and receive a token pair
// @Tags auth
// @Accept json
// @Produce json
// @Param request body LoginRequest true "Login credentials"
// @Success 200 {object} service.TokenPair
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Router /auth/login [post]
func (h *AuthHandler) Login(c echo.Context) error {
	var req LoginRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	pair, err := h.authService.Login(c.Request().Context(), req.Email, req.Password)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, pair)
}

// RefreshToken godoc
// @Summary Exchange a refresh token for a new token pair
// @Tags auth
// @Produce json
// @Security BearerAuth
// @Success 200 {object} service.TokenPair
// @Failure 401 {object} errors.ErrorResponse
// @Router /auth/refresh_token [get]
func (h *AuthHandler) RefreshToken(c echo.Context) error {
	token, ok := bearerToken(c)
	if !ok {
		return httpError(apperrors.ErrInvalidRefreshToken)
	}

	pair, err := h.authService.Refresh(c.Request().Context(), token)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, pair)
}

// ConfirmEmail godoc
// @Summary Confirm the email address behind a confirmation-link token
// @Tags auth
// @Produce json
// @Param token path string true "Confirmation token"
// @Success 200 {object} MessageResponse
// @Failure 400 {object} errors.ErrorResponse
// @Failure 422 {object} errors.ErrorResponse
// @Router /auth/confirmed_email/{token} [get]
func (h *AuthHandler) ConfirmEmail(c echo.Context) error {
	message, err := h.authService.ConfirmEmail(c.Request().Context(), c.Param("token"))
	if err != nil {
		if err == auth.ErrInvalidToken {
			return echo.NewHTTPError(http.StatusUnprocessableEntity, apperrors.ErrorResponse{
				Error: "invalid token for email verification",
				Code:  "INVALID_EMAIL_TOKEN",
			})
		}
		return httpError(err)
	}
	return c.JSON(http.StatusOK, MessageResponse{Message: message})
}

// RequestEmail godoc
// @Summary Re-send the confirmation mail
// @Tags auth
// @Accept json
// @Produce json
// @Param request body RequestEmailRequest true "Account email"
// @Success 200 {object} MessageResponse
// @Failure 400 {object} errors.ErrorResponse
// @Router /auth/request_email [post]
func (h *AuthHandler) RequestEmail(c echo.Context) error {
	var req RequestEmailRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	message, err := h.authService.RequestEmail(c.Request().Context(), req.Email)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, MessageResponse{Message: message})
}

// bearerToken extracts the credential from the Authorization header.
func bearerToken(c echo.Context) (string, bool) {
	header := c.Request().Header.Get(echo.HeaderAuthorization)
	const prefix = "Bearer "
	if !strings.HasPrefix(header, prefix) {
		return "", false
	}
	token := strings.TrimSpace(header[len(prefix):])
	return token, token != ""
}

// httpError translates a domain error through the shared taxonomy.
func httpError(err error) *echo.HTTPError {
	he := apperrors.MapErrorToHTTP(err)
	return echo.NewHTTPError(he.StatusCode, he.ToErrorResponse())
}
