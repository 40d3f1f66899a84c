package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"shopapi/internal/model"
)

// TokenExpiry is the lifetime of an issued token.
const TokenExpiry = 24 * time.Hour

var (
	// ErrMissingSecret is returned when the signing secret is empty.
	ErrMissingSecret = errors.New("jwt secret is not configured")
	// ErrSigning is returned when a token cannot be signed.
	ErrSigning = errors.New("token signing failed")
	// ErrInvalidToken is returned for expired, malformed or mis-signed tokens.
	ErrInvalidToken = errors.New("invalid token")
)

// Payload is the identity carried by a token and echoed back to clients.
type Payload struct {
	ID    uint       `json:"id"`
	Email string     `json:"email"`
	Role  model.Role `json:"role"`
}

// PayloadFromUser builds the token payload for u.
func PayloadFromUser(u *model.User) Payload {
	return Payload{ID: u.ID, Email: u.Email, Role: u.Role}
}

// Claims represents JWT claims.
type Claims struct {
	UserID uint       `json:"id"`
	Email  string     `json:"email"`
	Role   model.Role `json:"role"`
	jwt.RegisteredClaims
}

// Payload returns the identity part of the claims.
func (c *Claims) Payload() Payload {
	return Payload{ID: c.UserID, Email: c.Email, Role: c.Role}
}

// JWTService handles JWT token generation and validation.
type JWTService struct {
	secret []byte
	now    func() time.Time
}

// NewJWTService creates a new JWT service with the given secret.
func NewJWTService(secret string) (*JWTService, error) {
	if secret == "" {
		return nil, ErrMissingSecret
	}
	return &JWTService{
		secret: []byte(secret),
		now:    time.Now,
	}, nil
}

// Sign issues an HS256 token for p that expires after TokenExpiry.
func (s *JWTService) Sign(p Payload) (string, error) {
	if s == nil || len(s.secret) == 0 {
		return "", ErrMissingSecret
	}

	now := s.now()
	claims := &Claims{
		UserID: p.ID,
		Email:  p.Email,
		Role:   p.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			ExpiresAt: jwt.NewNumericDate(now.Add(TokenExpiry)),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
		},
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrSigning, err)
	}
	return signed, nil
}

// Verify parses tokenString and returns its claims.
func (s *JWTService) Verify(tokenString string) (*Claims, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		return s.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(s.now),
	)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}
	if !token.Valid {
		return nil, ErrInvalidToken
	}
	return claims, nil
}
