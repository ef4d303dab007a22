package utils

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/MKhiriev/mentor-hub/models"
	"github.com/golang-jwt/jwt/v5"
)

// JWTParams holds the signing configuration shared by token generation and
// validation.
type JWTParams struct {
	Issuer   string
	Audience string
	SignKey  string
	Duration time.Duration
}

func (p JWTParams) valid() bool {
	return p.Issuer != "" && p.Audience != "" && p.SignKey != "" && p.Duration > 0
}

// GenerateJWTToken creates a signed HMAC-SHA256 JWT token for user.
//
// The token includes the standard claims iss, aud, sub (user id), iat and
// exp (now + params.Duration) plus the user's name, email and role.
//
// Returns an error if any parameter is empty or zero.
//
// Example usage:
//
//	token, err := utils.GenerateJWTToken(params, user, time.Now())
func GenerateJWTToken(params JWTParams, user models.User, now time.Time) (models.Token, error) {
	if !params.valid() {
		return models.Token{}, errors.New("invalid params for generating JWT Token")
	}

	expiresAt := now.Add(params.Duration)
	claims := &models.AccessClaims{
		Name:  user.FullName,
		Email: user.Email,
		Role:  string(user.Role),
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    params.Issuer,
			Audience:  jwt.ClaimStrings{params.Audience},
			Subject:   strconv.FormatInt(user.UserID, 10),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
			IssuedAt:  jwt.NewNumericDate(now),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString([]byte(params.SignKey))
	if err != nil {
		return models.Token{}, fmt.Errorf("error occurred during singing JWT token: %w", err)
	}

	return models.Token{SignedString: tokenString, ExpiresAt: claims.ExpiresAt.Time, Claims: claims}, nil
}

// ValidateAndParseJWTToken validates the given JWT token string and extracts its claims.
//
// Validation includes:
//   - Signature verification with HMAC-SHA256 only
//   - Issuer (iss) and audience (aud) checks
//   - Expiration (exp) check against now, without leeway
//   - Subject (sub) presence and conversion to a positive int64
//
// Example usage:
//
//	token, err := utils.ValidateAndParseJWTToken(rawToken, params, time.Now)
//	if err != nil {
//	    // handle invalid or expired token
//	}
func ValidateAndParseJWTToken(tokenString string, params JWTParams, now func() time.Time) (models.Token, error) {
	claims := &models.AccessClaims{}
	_, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (any, error) {
		return []byte(params.SignKey), nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(params.Issuer),
		jwt.WithAudience(params.Audience),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(now),
	)
	if err != nil {
		return models.Token{}, fmt.Errorf("error occurred validating and parsing token: %w", err)
	}

	if _, err = claims.UserID(); err != nil {
		return models.Token{}, err
	}

	return models.Token{SignedString: tokenString, ExpiresAt: claims.ExpiresAt.Time, Claims: claims}, nil
}

// ParseBearerToken extracts the credentials from an "Authorization: Bearer"
// header value. The scheme name is case-insensitive.
func ParseBearerToken(authorizationHeader string) (string, error) {
	parts := strings.Fields(authorizationHeader)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return "", errors.New("invalid authorization header")
	}
	return parts[1], nil
}
