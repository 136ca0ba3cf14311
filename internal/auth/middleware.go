package auth

import (
	"net/http"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"

	"contactbook/internal/model"
	"contactbook/internal/repository"
)

const currentUserKey = "currentUser"

// CurrentUser is the authentication gate run on every protected route.
// echo-jwt has already verified signature and expiry by the time this
// middleware runs; it rejects non-access scopes, resolves the subject
// email to a User, and stores the record in the request context.
// It has no side effects beyond the lookup.
func CurrentUser(users repository.UserRepository) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			token, ok := c.Get("user").(*jwt.Token)
			if !ok {
				return echo.NewHTTPError(http.StatusUnauthorized, "could not validate credentials")
			}
			claims, ok := token.Claims.(*Claims)
			if !ok || claims.Scope != ScopeAccess {
				return echo.NewHTTPError(http.StatusUnauthorized, "could not validate credentials")
			}
			user, err := users.FindByEmail(c.Request().Context(), claims.Subject)
			if err != nil {
				return echo.NewHTTPError(http.StatusUnauthorized, "could not validate credentials")
			}
			c.Set(currentUserKey, user)
			return next(c)
		}
	}
}

// UserFromContext returns the user resolved by CurrentUser.
func UserFromContext(c echo.Context) (*model.User, bool) {
	user, ok := c.Get(currentUserKey).(*model.User)
	return user, ok
}
