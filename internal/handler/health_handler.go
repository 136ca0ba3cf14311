package handler

import (
	"log"
	"net/http"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"
)

// HealthHandler answers the unauthenticated healthcheck.
type HealthHandler struct {
	db *gorm.DB
}

// NewHealthHandler creates a new health handler.
func NewHealthHandler(db *gorm.DB) *HealthHandler {
	return &HealthHandler{db: db}
}

// Check godoc
// @Summary Healthcheck against the database
// @Tags health
// @Produce json
// @Success 200 {object} MessageResponse
// @Failure 500 {object} map[string]string
// @Router /api/healthchecker [get]
func (h *HealthHandler) Check(c echo.Context) error {
	var one int
	if err := h.db.WithContext(c.Request().Context()).Raw("SELECT 1").Scan(&one).Error; err != nil {
		log.Printf("healthcheck: %v", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "error connecting to the database")
	}
	return c.JSON(http.StatusOK, MessageResponse{Message: "Welcome to the contacts API"})
}
