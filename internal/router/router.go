package router

import (
	"github.com/go-playground/validator/v10"
	"github.com/golang-jwt/jwt/v5"
	echojwt "github.com/labstack/echo-jwt/v4"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	echoSwagger "github.com/swaggo/echo-swagger"

	"contactbook/internal/auth"
	"contactbook/internal/config"
	"contactbook/internal/handler"
	"contactbook/internal/repository"
)

// Register wires routes and middleware.
func Register(
	e *echo.Echo,
	cfg *config.Config,
	users repository.UserRepository,
	healthHandler *handler.HealthHandler,
	authHandler *handler.AuthHandler,
	contactHandler *handler.ContactHandler,
	userHandler *handler.UserHandler,
) {
	e.Use(middleware.Logger())
	e.Use(middleware.Recover())

	// Add validator
	e.Validator = &CustomValidator{validator: validator.New()}

	e.GET("/api/healthchecker", healthHandler.Check)
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	// Public auth routes
	e.POST("/auth/signup", authHandler.Signup)
	e.POST("/auth/login", authHandler.Login)
	e.GET("/auth/confirmed_email/:token", authHandler.ConfirmEmail)
	e.POST("/auth/request_email", authHandler.RequestEmail)
	// The refresh endpoint authenticates with the refresh token itself,
	// so it stays outside the access-token middleware.
	e.GET("/auth/refresh_token", authHandler.RefreshToken)

	// Secured routes: echo-jwt checks signature and expiry, CurrentUser
	// resolves the subject to a user record.
	secured := e.Group("", echojwt.WithConfig(echojwt.Config{
		SigningKey: []byte(cfg.JWTSecret),
		NewClaimsFunc: func(c echo.Context) jwt.Claims {
			return &auth.Claims{}
		},
	}), auth.CurrentUser(users))

	secured.GET("/contacts", contactHandler.List)
	secured.POST("/contacts", contactHandler.Create)
	secured.GET("/contacts/:id", contactHandler.GetByID)
	secured.DELETE("/contacts/:id", contactHandler.Delete)
	secured.PATCH("/contacts/:id/update", contactHandler.Update)
	secured.GET("/contacts/name/:name", contactHandler.GetByName)
	secured.GET("/contacts/lastname/:lastname", contactHandler.GetByLastname)
	secured.GET("/contacts/email/:email", contactHandler.GetByEmail)
	secured.GET("/birthdays", contactHandler.Birthdays)

	// Profile routes are rate limited like the rest of the user surface.
	profile := secured.Group("/users", middleware.RateLimiter(middleware.NewRateLimiterMemoryStore(10)))
	profile.GET("/me", userHandler.Me)
	profile.PATCH("/avatar", userHandler.UpdateAvatar)
}

// CustomValidator wraps validator for Echo.
type CustomValidator struct {
	validator *validator.Validate
}

// Validate implements echo.Validator interface.
func (cv *CustomValidator) Validate(i interface{}) error {
	return cv.validator.Struct(i)
}
