package router

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"

	"contactbook/internal/auth"
	"contactbook/internal/config"
	"contactbook/internal/handler"
	"contactbook/internal/mailer"
	"contactbook/internal/model"
	"contactbook/internal/service"
)

type stubUserRepo struct {
	user *model.User
}

func (s *stubUserRepo) Create(ctx context.Context, user *model.User) error { return nil }

func (s *stubUserRepo) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	if s.user != nil && s.user.Email == email {
		return s.user, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (s *stubUserRepo) UpdateRefreshToken(ctx context.Context, user *model.User, token string) error {
	user.RefreshToken = token
	return nil
}

func (s *stubUserRepo) ConfirmEmail(ctx context.Context, email string) error { return nil }

func (s *stubUserRepo) UpdateAvatar(ctx context.Context, user *model.User, avatarURL string) error {
	return nil
}

type stubContactRepo struct{}

func (stubContactRepo) Create(ctx context.Context, contact *model.Contact) error { return nil }

func (stubContactRepo) List(ctx context.Context, userID uint) ([]model.Contact, error) {
	return []model.Contact{{ID: 1, Name: "Ann", Lastname: "Smith", UserID: userID}}, nil
}

func (stubContactRepo) FindByID(ctx context.Context, userID, id uint) (*model.Contact, error) {
	return nil, gorm.ErrRecordNotFound
}

func (stubContactRepo) FindByName(ctx context.Context, userID uint, name string) (*model.Contact, error) {
	return nil, gorm.ErrRecordNotFound
}

func (stubContactRepo) FindByLastname(ctx context.Context, userID uint, lastname string) (*model.Contact, error) {
	return nil, gorm.ErrRecordNotFound
}

func (stubContactRepo) FindByEmail(ctx context.Context, userID uint, email string) (*model.Contact, error) {
	return nil, gorm.ErrRecordNotFound
}

func (stubContactRepo) UpdateContactInfo(ctx context.Context, userID, id uint, email, phone, additional string) (*model.Contact, error) {
	return nil, gorm.ErrRecordNotFound
}

func (stubContactRepo) Delete(ctx context.Context, userID, id uint) error {
	return gorm.ErrRecordNotFound
}

func (stubContactRepo) ListByBirthdayDOY(ctx context.Context, userID uint, startDOY, endDOY, todayDOY, todayEndDOY int) ([]model.Contact, error) {
	return []model.Contact{}, nil
}

type noopMailer struct{}

func (noopMailer) Enqueue(mailer.Message) {}

// newTestServer registers the full route table against stub repositories.
func newTestServer(t *testing.T, jwtService *auth.JWTService, user *model.User) *echo.Echo {
	t.Helper()
	cfg := &config.Config{JWTSecret: "test-secret"}
	users := &stubUserRepo{user: user}

	e := echo.New()
	Register(e, cfg,
		users,
		handler.NewHealthHandler(nil),
		handler.NewAuthHandler(service.NewAuthService(users, jwtService, noopMailer{})),
		handler.NewContactHandler(service.NewContactService(stubContactRepo{}, nil)),
		handler.NewUserHandler(service.NewUserService(users, nil)),
	)
	return e
}

func securedRequest(e *echo.Echo, authHeader string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/contacts", nil)
	if authHeader != "" {
		req.Header.Set(echo.HeaderAuthorization, authHeader)
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func TestSecuredGroup_AccessTokenReachesHandler(t *testing.T) {
	jwtService := auth.NewJWTService("test-secret")
	user := &model.User{ID: 7, Email: "test@example.com", Confirmed: true}
	e := newTestServer(t, jwtService, user)

	token, err := jwtService.GenerateAccessToken(user.Email)
	assert.NoError(t, err)

	rec := securedRequest(e, "Bearer "+token)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"Ann"`)
}

func TestSecuredGroup_RefreshTokenIsRejected(t *testing.T) {
	jwtService := auth.NewJWTService("test-secret")
	user := &model.User{ID: 7, Email: "test@example.com", Confirmed: true}
	e := newTestServer(t, jwtService, user)

	token, err := jwtService.GenerateRefreshToken(user.Email)
	assert.NoError(t, err)

	rec := securedRequest(e, "Bearer "+token)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestSecuredGroup_UnknownSubjectIsRejected(t *testing.T) {
	jwtService := auth.NewJWTService("test-secret")
	e := newTestServer(t, jwtService, &model.User{ID: 7, Email: "test@example.com"})

	token, err := jwtService.GenerateAccessToken("ghost@example.com")
	assert.NoError(t, err)

	rec := securedRequest(e, "Bearer "+token)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestSecuredGroup_GarbageTokenIsRejected(t *testing.T) {
	jwtService := auth.NewJWTService("test-secret")
	e := newTestServer(t, jwtService, &model.User{ID: 7, Email: "test@example.com"})

	rec := securedRequest(e, "Bearer not-a-jwt")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestSecuredGroup_MissingTokenIsRejected(t *testing.T) {
	jwtService := auth.NewJWTService("test-secret")
	e := newTestServer(t, jwtService, &model.User{ID: 7, Email: "test@example.com"})

	rec := securedRequest(e, "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
