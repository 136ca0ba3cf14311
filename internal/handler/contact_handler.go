package handler

import (
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"contactbook/internal/auth"
	"contactbook/internal/service"
)

// ContactHandler handles the contact CRUD and birthday endpoints.
type ContactHandler struct {
	contacts service.ContactService
}

// NewContactHandler creates a new contact handler.
func NewContactHandler(contacts service.ContactService) *ContactHandler {
	return &ContactHandler{contacts: contacts}
}

// ContactRequest represents a contact create payload.
type ContactRequest struct {
	Name       string `json:"name" validate:"required,min=3,max=16"`
	Lastname   string `json:"lastname" validate:"required,min=3,max=16"`
	Email      string `json:"email" validate:"required,email"`
	Phone      string `json:"phone" validate:"required,min=5,max=16"`
	Birthday   string `json:"birthday" validate:"required,datetime=2006-01-02"`
	Additional string `json:"additional" validate:"max=100"`
}

// ContactUpdateRequest represents a contact update payload; only email,
// phone and additional are mutable.
type ContactUpdateRequest struct {
	Email      string `json:"email" validate:"required,email"`
	Phone      string `json:"phone" validate:"required,min=5,max=16"`
	Additional string `json:"additional" validate:"max=100"`
}

// List godoc
// @Summary List the user's contacts
// @Tags contacts
// @Produce json
// @Security BearerAuth
// @Success 200 {array} model.Contact
// @Router /contacts [get]
func (h *ContactHandler) List(c echo.Context) error {
	user, ok := auth.UserFromContext(c)
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized, "could not validate credentials")
	}
	contacts, err := h.contacts.List(c.Request().Context(), user.ID)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, contacts)
}

// GetByID godoc
// @Summary Get a contact by id
// @Tags contacts
// @Produce json
// @Security BearerAuth
// @Param id path int true "Contact ID"
// @Success 200 {object} model.Contact
// @Failure 404 {object} errors.ErrorResponse
// @Router /contacts/{id} [get]
func (h *ContactHandler) GetByID(c echo.Context) error {
	user, ok := auth.UserFromContext(c)
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized, "could not validate credentials")
	}
	id, err := contactID(c)
	if err != nil {
		return err
	}
	contact, err := h.contacts.GetByID(c.Request().Context(), user.ID, id)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, contact)
}

// GetByName godoc
// @Summary Get a contact by first name
// @Tags contacts
// @Produce json
// @Security BearerAuth
// @Param name path string true "Contact first name"
// @Success 200 {object} model.Contact
// @Failure 404 {object} errors.ErrorResponse
// @Router /contacts/name/{name} [get]
func (h *ContactHandler) GetByName(c echo.Context) error {
	user, ok := auth.UserFromContext(c)
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized, "could not validate credentials")
	}
	contact, err := h.contacts.GetByName(c.Request().Context(), user.ID, c.Param("name"))
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, contact)
}

// GetByLastname godoc
// @Summary Get a contact by last name
// @Tags contacts
// @Produce json
// @Security BearerAuth
// @Param lastname path string true "Contact last name"
// @Success 200 {object} model.Contact
// @Failure 404 {object} errors.ErrorResponse
// @Router /contacts/lastname/{lastname} [get]
func (h *ContactHandler) GetByLastname(c echo.Context) error {
	user, ok := auth.UserFromContext(c)
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized, "could not validate credentials")
	}
	contact, err := h.contacts.GetByLastname(c.Request().Context(), user.ID, c.Param("lastname"))
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, contact)
}

// GetByEmail godoc
// @Summary Get a contact by email
// @Tags contacts
// @Produce json
// @Security BearerAuth
// @Param email path string true "Contact email"
// @Success 200 {object} model.Contact
// @Failure 404 {object} errors.ErrorResponse
// @Router /contacts/email/{email} [get]
func (h *ContactHandler) GetByEmail(c echo.Context) error {
	user, ok := auth.UserFromContext(c)
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized, "could not validate credentials")
	}
	contact, err := h.contacts.GetByEmail(c.Request().Context(), user.ID, c.Param("email"))
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, contact)
}

// Birthdays godoc
// @Summary List contacts with a birthday in the next 7 days
// @Tags contacts
// @Produce json
// @Security BearerAuth
// @Success 200 {array} model.Contact
// @Router /birthdays [get]
func (h *ContactHandler) Birthdays(c echo.Context) error {
	user, ok := auth.UserFromContext(c)
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized, "could not validate credentials")
	}
	contacts, err := h.contacts.UpcomingBirthdays(c.Request().Context(), user.ID)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, contacts)
}

// Create godoc
// @Summary Create a contact
// @Tags contacts
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body ContactRequest true "Contact payload"
// @Success 201 {object} model.Contact
// @Failure 400 {object} errors.ErrorResponse
// @Router /contacts [post]
func (h *ContactHandler) Create(c echo.Context) error {
	user, ok := auth.UserFromContext(c)
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized, "could not validate credentials")
	}

	var req ContactRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	birthday, err := time.Parse("2006-01-02", req.Birthday)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid birthday")
	}

	contact, err := h.contacts.Create(c.Request().Context(), user.ID, service.ContactInput{
		Name:       req.Name,
		Lastname:   req.Lastname,
		Email:      req.Email,
		Phone:      req.Phone,
		Birthday:   birthday,
		Additional: req.Additional,
	})
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusCreated, contact)
}

// Update godoc
// @Summary Update a contact's email, phone, and additional info
// @Tags contacts
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Contact ID"
// @Param request body ContactUpdateRequest true "Update payload"
// @Success 200 {object} model.Contact
// @Failure 404 {object} errors.ErrorResponse
// @Router /contacts/{id}/update [patch]
func (h *ContactHandler) Update(c echo.Context) error {
	user, ok := auth.UserFromContext(c)
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized, "could not validate credentials")
	}
	id, err := contactID(c)
	if err != nil {
		return err
	}

	var req ContactUpdateRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	contact, err := h.contacts.Update(c.Request().Context(), user.ID, id, service.ContactUpdateInput{
		Email:      req.Email,
		Phone:      req.Phone,
		Additional: req.Additional,
	})
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, contact)
}

// Delete godoc
// @Summary Delete a contact
// @Tags contacts
// @Security BearerAuth
// @Param id path int true "Contact ID"
// @Success 204
// @Failure 404 {object} errors.ErrorResponse
// @Router /contacts/{id} [delete]
func (h *ContactHandler) Delete(c echo.Context) error {
	user, ok := auth.UserFromContext(c)
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized, "could not validate credentials")
	}
	id, err := contactID(c)
	if err != nil {
		return err
	}
	if err := h.contacts.Delete(c.Request().Context(), user.ID, id); err != nil {
		return httpError(err)
	}
	return c.NoContent(http.StatusNoContent)
}

func contactID(c echo.Context) (uint, error) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id < 1 {
		return 0, echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	return uint(id), nil
}
