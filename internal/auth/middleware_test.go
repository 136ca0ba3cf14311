package auth

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"gorm.io/gorm"

	"contactbook/internal/model"
)

type mockUserRepo struct {
	mock.Mock
}

func (m *mockUserRepo) Create(ctx context.Context, user *model.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *mockUserRepo) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

func (m *mockUserRepo) UpdateRefreshToken(ctx context.Context, user *model.User, token string) error {
	args := m.Called(ctx, user, token)
	return args.Error(0)
}

func (m *mockUserRepo) ConfirmEmail(ctx context.Context, email string) error {
	args := m.Called(ctx, email)
	return args.Error(0)
}

func (m *mockUserRepo) UpdateAvatar(ctx context.Context, user *model.User, avatarURL string) error {
	args := m.Called(ctx, user, avatarURL)
	return args.Error(0)
}

func gateContext(t *testing.T, claims *Claims) (echo.Context, *httptest.ResponseRecorder) {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/contacts", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	if claims != nil {
		c.Set("user", &jwt.Token{Claims: claims, Valid: true})
	}
	return c, rec
}

func TestCurrentUser_ResolvesSubject(t *testing.T) {
	repo := new(mockUserRepo)
	user := &model.User{ID: 7, Email: "test@example.com", Confirmed: true}
	repo.On("FindByEmail", mock.Anything, "test@example.com").Return(user, nil)

	c, _ := gateContext(t, &Claims{
		Scope:            ScopeAccess,
		RegisteredClaims: jwt.RegisteredClaims{Subject: "test@example.com"},
	})

	var seen *model.User
	handler := CurrentUser(repo)(func(c echo.Context) error {
		seen, _ = UserFromContext(c)
		return c.NoContent(http.StatusOK)
	})

	assert.NoError(t, handler(c))
	assert.Equal(t, user, seen)
	repo.AssertExpectations(t)
}

func TestCurrentUser_RejectsUnknownSubject(t *testing.T) {
	repo := new(mockUserRepo)
	repo.On("FindByEmail", mock.Anything, "ghost@example.com").Return(nil, gorm.ErrRecordNotFound)

	c, _ := gateContext(t, &Claims{
		Scope:            ScopeAccess,
		RegisteredClaims: jwt.RegisteredClaims{Subject: "ghost@example.com"},
	})

	handler := CurrentUser(repo)(func(c echo.Context) error {
		t.Fatal("handler should not run")
		return nil
	})

	err := handler(c)
	httpErr, ok := err.(*echo.HTTPError)
	assert.True(t, ok)
	assert.Equal(t, http.StatusUnauthorized, httpErr.Code)
}

func TestCurrentUser_RejectsRefreshScope(t *testing.T) {
	repo := new(mockUserRepo)

	c, _ := gateContext(t, &Claims{
		Scope:            ScopeRefresh,
		RegisteredClaims: jwt.RegisteredClaims{Subject: "test@example.com"},
	})

	handler := CurrentUser(repo)(func(c echo.Context) error {
		t.Fatal("handler should not run")
		return nil
	})

	err := handler(c)
	httpErr, ok := err.(*echo.HTTPError)
	assert.True(t, ok)
	assert.Equal(t, http.StatusUnauthorized, httpErr.Code)
	repo.AssertNotCalled(t, "FindByEmail", mock.Anything, mock.Anything)
}

func TestCurrentUser_RejectsMissingToken(t *testing.T) {
	c, _ := gateContext(t, nil)

	handler := CurrentUser(new(mockUserRepo))(func(c echo.Context) error {
		t.Fatal("handler should not run")
		return nil
	})

	err := handler(c)
	httpErr, ok := err.(*echo.HTTPError)
	assert.True(t, ok)
	assert.Equal(t, http.StatusUnauthorized, httpErr.Code)
}
