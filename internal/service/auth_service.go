package service

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"contactbook/internal/auth"
	apperrors "contactbook/internal/errors"
	"contactbook/internal/mailer"
	"contactbook/internal/model"
	"contactbook/internal/repository"
)

// TokenPair is the response of login and refresh.
type TokenPair struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	TokenType    string `json:"token_type"`
}

// ConfirmationMailer enqueues a confirmation mail without blocking.
type ConfirmationMailer interface {
	Enqueue(msg mailer.Message)
}

// AuthService handles signup, login, refresh-token rotation, and the
// email-confirmation flow.
type AuthService interface {
	Signup(ctx context.Context, username, email, password string) (*model.User, error)
	Login(ctx context.Context, email, password string) (*TokenPair, error)
	Refresh(ctx context.Context, refreshToken string) (*TokenPair, error)
	ConfirmEmail(ctx context.Context, token string) (string, error)
	RequestEmail(ctx context.Context, email string) (string, error)
}

type authService struct {
	users  repository.UserRepository
	jwt    *auth.JWTService
	mailer ConfirmationMailer
}

// NewAuthService creates a new authentication service.
func NewAuthService(users repository.UserRepository, jwt *auth.JWTService, m ConfirmationMailer) AuthService {
	return &authService{users: users, jwt: jwt, mailer: m}
}

// Signup creates an unconfirmed user with a hashed password and enqueues
// the confirmation mail.
func (s *authService) Signup(ctx context.Context, username, email, password string) (*model.User, error) {
	existing, err := s.users.FindByEmail(ctx, email)
	if err == nil && existing != nil {
		return nil, apperrors.ErrUserAlreadyExists
	}
	if err != nil && err != gorm.ErrRecordNotFound {
		return nil, fmt.Errorf("check user existence: %w", err)
	}

	hashed, err := auth.HashPassword(password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user := &model.User{
		Username: username,
		Email:    email,
		Password: hashed,
	}
	if err := s.users.Create(ctx, user); err != nil {
		return nil, fmt.Errorf("create user: %w", err)
	}

	s.mailer.Enqueue(mailer.Message{To: user.Email, Username: user.Username})
	return user, nil
}

// Login authenticates a user and returns a fresh token pair. The three
// failure modes carry distinct errors; all map to 401 externally.
func (s *authService) Login(ctx context.Context, email, password string) (*TokenPair, error) {
	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		return nil, apperrors.ErrInvalidEmail
	}
	if !user.Confirmed {
		return nil, apperrors.ErrEmailNotConfirmed
	}
	if !auth.VerifyPassword(password, user.Password) {
		return nil, apperrors.ErrInvalidPassword
	}
	return s.issuePair(ctx, user)
}

// Refresh rotates the refresh token. The presented token must equal the one
// stored on the user row; a mismatch revokes the stored token and forces a
// re-login. The compare-then-set is not atomic against concurrent refreshes
// for the same user: both can pass the compare and the later write wins,
// silently invalidating the earlier pair.
func (s *authService) Refresh(ctx context.Context, refreshToken string) (*TokenPair, error) {
	email, err := s.jwt.DecodeRefreshToken(refreshToken)
	if err != nil {
		return nil, apperrors.ErrInvalidRefreshToken
	}
	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		return nil, apperrors.ErrInvalidRefreshToken
	}
	if user.RefreshToken != refreshToken {
		_ = s.users.UpdateRefreshToken(ctx, user, "")
		return nil, apperrors.ErrInvalidRefreshToken
	}
	return s.issuePair(ctx, user)
}

func (s *authService) issuePair(ctx context.Context, user *model.User) (*TokenPair, error) {
	accessToken, err := s.jwt.GenerateAccessToken(user.Email)
	if err != nil {
		return nil, fmt.Errorf("generate access token: %w", err)
	}
	refreshToken, err := s.jwt.GenerateRefreshToken(user.Email)
	if err != nil {
		return nil, fmt.Errorf("generate refresh token: %w", err)
	}
	if err := s.users.UpdateRefreshToken(ctx, user, refreshToken); err != nil {
		return nil, fmt.Errorf("store refresh token: %w", err)
	}
	return &TokenPair{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		TokenType:    "bearer",
	}, nil
}

// ConfirmEmail resolves a confirmation-link token and flips the confirmed
// flag once.
func (s *authService) ConfirmEmail(ctx context.Context, token string) (string, error) {
	email, err := s.jwt.EmailFromToken(token)
	if err != nil {
		return "", err
	}
	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		return "", apperrors.ErrVerification
	}
	if user.Confirmed {
		return "Your email is already confirmed", nil
	}
	if err := s.users.ConfirmEmail(ctx, email); err != nil {
		return "", fmt.Errorf("confirm email: %w", err)
	}
	return "Email confirmed", nil
}

// RequestEmail re-sends the confirmation mail. Unknown emails get the same
// neutral message so the endpoint cannot be used to probe for accounts.
func (s *authService) RequestEmail(ctx context.Context, email string) (string, error) {
	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		return "Check your email for confirmation.", nil
	}
	if user.Confirmed {
		return "Your email is already confirmed", nil
	}
	s.mailer.Enqueue(mailer.Message{To: user.Email, Username: user.Username})
	return "Check your email for confirmation.", nil
}
