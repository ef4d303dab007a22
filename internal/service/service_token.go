package service

import (
	"fmt"
	"time"

	"github.com/MKhiriev/mentor-hub/internal/config"
	"github.com/MKhiriev/mentor-hub/internal/utils"
	"github.com/MKhiriev/mentor-hub/models"
)

// tokenIssuer signs access tokens with HMAC-SHA256 and generates opaque
// refresh tokens from crypto/rand.
type tokenIssuer struct {
	// params carries issuer, audience, sign key and access token lifetime.
	params utils.JWTParams

	// refreshDuration is the lifetime of a refresh token.
	refreshDuration time.Duration

	// hashKey is the HMAC secret used to digest refresh tokens. Changing it
	// invalidates every stored refresh token.
	hashKey string

	now func() time.Time
}

// TokenIssuerOption customizes a [TokenIssuer].
type TokenIssuerOption func(*tokenIssuer)

// WithClock replaces the wall clock used for issuance and validation.
func WithClock(now func() time.Time) TokenIssuerOption {
	return func(t *tokenIssuer) {
		t.now = now
	}
}

// NewTokenIssuer builds a [TokenIssuer] from the application config.
// The sign key has already been checked by config validation.
func NewTokenIssuer(cfg config.App, opts ...TokenIssuerOption) TokenIssuer {
	issuer := &tokenIssuer{
		params: utils.JWTParams{
			Issuer:   cfg.TokenIssuer,
			Audience: cfg.TokenAudience,
			SignKey:  cfg.TokenSignKey,
			Duration: cfg.AccessTokenDuration,
		},
		refreshDuration: cfg.RefreshTokenDuration,
		hashKey:         cfg.HashKey,
		now:             time.Now,
	}
	for _, opt := range opts {
		opt(issuer)
	}

	return issuer
}

func (t *tokenIssuer) Now() time.Time {
	return t.now().UTC()
}

// CreateAccessToken returns a signed token expiring after the configured
// access token duration.
func (t *tokenIssuer) CreateAccessToken(user models.User) (models.Token, error) {
	token, err := utils.GenerateJWTToken(t.params, user, t.Now())
	if err != nil {
		return models.Token{}, fmt.Errorf("%w: %w", ErrTokenCreationFailed, err)
	}

	return token, nil
}

// CreateRefreshToken returns a token with RefreshTokenBytes of entropy.
// Token holds the value for the client, TokenHash the value to persist.
func (t *tokenIssuer) CreateRefreshToken(ip string) (models.RefreshToken, error) {
	value, err := utils.GenerateSecureToken(utils.RefreshTokenBytes)
	if err != nil {
		return models.RefreshToken{}, fmt.Errorf("%w: %w", ErrTokenCreationFailed, err)
	}

	now := t.Now()
	return models.RefreshToken{
		Token:       value,
		TokenHash:   t.HashRefreshToken(value),
		ExpiresAt:   now.Add(t.refreshDuration),
		CreatedAt:   now,
		CreatedByIP: ip,
	}, nil
}

func (t *tokenIssuer) ParseAccessToken(signed string) (models.Token, error) {
	return utils.ValidateAndParseJWTToken(signed, t.params, t.Now)
}

func (t *tokenIssuer) HashRefreshToken(token string) string {
	return utils.HashString(token, t.hashKey)
}
