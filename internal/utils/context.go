// Package utils provides general-purpose helper utilities
// used across different parts of the application.
// Includes tools for working with context, type-safe keys, hashing,
// password hashing, secure random tokens, HTTP response writing,
// HTTP client initialization, JWT token generation and validation.
package utils

import (
	"context"

	"github.com/MKhiriev/mentor-hub/models"
)

// contextKey is a private type for context keys.
// Using a dedicated type instead of a plain string prevents key collisions
// with other packages that may use string-based keys in the context.
type contextKey string

// String returns the string representation of the context key.
// Implements the fmt.Stringer interface.
func (c contextKey) String() string {
	return string(c)
}

var (
	// UserIDCtxKey stores the live user identifier confirmed by the role gate.
	UserIDCtxKey = contextKey("userID")

	// UserRoleCtxKey stores the live role confirmed by the role gate.
	UserRoleCtxKey = contextKey("userRole")

	// ClaimsCtxKey stores the validated access token claims.
	ClaimsCtxKey = contextKey("claims")
)

// GetUserIDFromContext retrieves the user identifier from the context.
//
// Returns the user ID of type int64 and an ok flag:
//   - ok == true  — value is found and has the correct int64 type
//   - ok == false — value is missing or has an unexpected type
func GetUserIDFromContext(ctx context.Context) (int64, bool) {
	userID, ok := ctx.Value(UserIDCtxKey).(int64)
	return userID, ok
}

// GetUserRoleFromContext retrieves the live role stored by the role gate.
func GetUserRoleFromContext(ctx context.Context) (models.Role, bool) {
	role, ok := ctx.Value(UserRoleCtxKey).(models.Role)
	return role, ok
}

// WithUserIdentity stores the live user id and role in ctx.
func WithUserIdentity(ctx context.Context, userID int64, role models.Role) context.Context {
	ctx = context.WithValue(ctx, UserIDCtxKey, userID)
	return context.WithValue(ctx, UserRoleCtxKey, role)
}

// GetClaimsFromContext retrieves validated access token claims.
func GetClaimsFromContext(ctx context.Context) (*models.AccessClaims, bool) {
	claims, ok := ctx.Value(ClaimsCtxKey).(*models.AccessClaims)
	return claims, ok && claims != nil
}

// WithClaims stores validated access token claims in ctx.
func WithClaims(ctx context.Context, claims *models.AccessClaims) context.Context {
	return context.WithValue(ctx, ClaimsCtxKey, claims)
}
