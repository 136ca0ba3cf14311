package auth

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

const (
	// AccessTokenExpiry is the duration for which access tokens are valid.
	AccessTokenExpiry = 15 * time.Minute
	// RefreshTokenExpiry is the duration for which refresh tokens are valid.
	RefreshTokenExpiry = 7 * 24 * time.Hour
	// EmailTokenExpiry is the duration for which email-confirmation tokens are valid.
	EmailTokenExpiry = 7 * 24 * time.Hour
)

// Token scopes discriminate what a signed credential may be used for.
const (
	ScopeAccess  = "access_token"
	ScopeRefresh = "refresh_token"
	ScopeEmail   = "email_token"
)

// ErrInvalidToken is returned for every decode failure: bad signature,
// expiry, malformed payload, or wrong scope. Callers see one error kind.
var ErrInvalidToken = errors.New("invalid token")

// Claims represents JWT claims. Subject carries the user's email.
type Claims struct {
	Scope string `json:"scope"`
	jwt.RegisteredClaims
}

// JWTService handles JWT token generation and validation.
type JWTService struct {
	secret        []byte
	accessExpiry  time.Duration
	refreshExpiry time.Duration
	emailExpiry   time.Duration
}

// NewJWTService creates a new JWT service with the given secret and
// the standard expiry durations.
func NewJWTService(secret string) *JWTService {
	return NewJWTServiceWithExpiry(secret, AccessTokenExpiry, RefreshTokenExpiry, EmailTokenExpiry)
}

// NewJWTServiceWithExpiry creates a JWT service with explicit expiry
// durations. Mostly useful in tests.
func NewJWTServiceWithExpiry(secret string, access, refresh, email time.Duration) *JWTService {
	return &JWTService{
		secret:        []byte(secret),
		accessExpiry:  access,
		refreshExpiry: refresh,
		emailExpiry:   email,
	}
}

// GenerateAccessToken generates a short-lived access token for the subject email.
func (s *JWTService) GenerateAccessToken(email string) (string, error) {
	return s.sign(email, ScopeAccess, s.accessExpiry, "")
}

// GenerateRefreshToken generates a long-lived refresh token for the subject email.
// Each refresh token carries a unique ID so two tokens minted in the same
// second still differ.
func (s *JWTService) GenerateRefreshToken(email string) (string, error) {
	return s.sign(email, ScopeRefresh, s.refreshExpiry, uuid.New().String())
}

// GenerateEmailToken generates a token embedded in email-confirmation links.
func (s *JWTService) GenerateEmailToken(email string) (string, error) {
	return s.sign(email, ScopeEmail, s.emailExpiry, "")
}

func (s *JWTService) sign(email, scope string, expiry time.Duration, id string) (string, error) {
	now := time.Now()
	claims := &Claims{
		Scope: scope,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   email,
			ID:        id,
			ExpiresAt: jwt.NewNumericDate(now.Add(expiry)),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.secret)
}

// ValidateToken verifies signature and expiry and returns the claims.
func (s *JWTService) ValidateToken(tokenString string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return s.secret, nil
	})
	if err != nil {
		return nil, ErrInvalidToken
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, ErrInvalidToken
	}
	return claims, nil
}

// DecodeRefreshToken verifies a refresh token and extracts the subject email.
func (s *JWTService) DecodeRefreshToken(tokenString string) (string, error) {
	claims, err := s.ValidateToken(tokenString)
	if err != nil {
		return "", err
	}
	if claims.Scope != ScopeRefresh {
		return "", ErrInvalidToken
	}
	return claims.Subject, nil
}

// EmailFromToken verifies any token signed by this service and returns its
// subject email. Used by the email-confirmation flow.
func (s *JWTService) EmailFromToken(tokenString string) (string, error) {
	claims, err := s.ValidateToken(tokenString)
	if err != nil {
		return "", err
	}
	return claims.Subject, nil
}
