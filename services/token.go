package services

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"tenantnotes/model"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

const (
	// TokenTTL is the fixed lifetime of a session token.
	TokenTTL    = 24 * time.Hour
	TokenIssuer = "tenantnotes"
)

var ErrEmptySecret = errors.New("token signing secret is empty")

// Claims is the JWT payload: the identity plus the registered claims.
type Claims struct {
	model.Identity
	jwt.RegisteredClaims
}

// TokenService issues and verifies HS256 session tokens.
type TokenService struct {
	secret []byte
	now    func() time.Time
}

type TokenOption func(*TokenService)

func WithTokenClock(now func() time.Time) TokenOption {
	return func(s *TokenService) {
		s.now = now
	}
}

func NewTokenService(secret string, opts ...TokenOption) (*TokenService, error) {
	if secret == "" {
		return nil, ErrEmptySecret
	}
	s := &TokenService{secret: []byte(secret), now: time.Now}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// Issue signs a token for identity that expires TokenTTL from now. Each
// token gets its own jti so revoking one never revokes another.
func (s *TokenService) Issue(identity model.Identity) (string, error) {
	now := s.now()
	claims := Claims{
		Identity: identity,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			Issuer:    TokenIssuer,
			Subject:   strconv.FormatInt(identity.UserID, 10),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(TokenTTL)),
		},
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return signed, nil
}

// Parse checks the signature, signing method, issuer and expiry of token
// and returns its claims. Every failure wraps model.ErrInvalidCredential.
func (s *TokenService) Parse(token string) (*Claims, error) {
	claims := &Claims{}
	_, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (interface{}, error) {
		return s.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithIssuer(TokenIssuer),
		jwt.WithTimeFunc(s.now),
	)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", model.ErrInvalidCredential, err)
	}

	id := claims.Identity
	if id.UserID <= 0 || id.TenantID <= 0 || !id.Role.Valid() || !id.TenantPlan.Valid() {
		return nil, fmt.Errorf("%w: incomplete identity claims", model.ErrInvalidCredential)
	}
	return claims, nil
}

// Verify returns the identity carried by a valid token.
func (s *TokenService) Verify(token string) (*model.Identity, error) {
	claims, err := s.Parse(token)
	if err != nil {
		return nil, err
	}
	identity := claims.Identity
	return &identity, nil
}
