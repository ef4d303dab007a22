package models

import (
	"fmt"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// AccessClaims is the claim set carried by a signed access token.
//
// The role claim reflects the user's role at issuance time only; the
// request pipeline re-reads the live role before authorizing anything.
type AccessClaims struct {
	Name  string `json:"name"`
	Email string `json:"email"`
	Role  string `json:"role"`

	jwt.RegisteredClaims
}

// UserID parses the "sub" claim as a base-10 int64.
func (c *AccessClaims) UserID() (int64, error) {
	sub, err := c.GetSubject()
	if err != nil {
		return 0, fmt.Errorf("error extracting UserID from token: %w", err)
	}

	userID, err := strconv.ParseInt(sub, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("error converting UserID from token to int64: %w", err)
	}
	if userID <= 0 {
		return 0, fmt.Errorf("non-positive UserID in token: %d", userID)
	}

	return userID, nil
}

// Token is an issued access token.
type Token struct {
	// SignedString is the compact JWS representation
	// (base64url-encoded header.payload.signature).
	SignedString string `json:"-"`

	// ExpiresAt is the moment the token stops being accepted.
	ExpiresAt time.Time `json:"-"`

	// Claims are the claims the token was signed with or parsed from.
	Claims *AccessClaims `json:"-"`
}

// String returns the compact JWS serialization of the token.
// It implements the [fmt.Stringer] interface.
func (t Token) String() string {
	return t.SignedString
}

// RefreshToken is an opaque, revocable, long-lived credential.
//
// Only TokenHash is persisted; Token holds the raw value between issuance
// and delivery to the client and is empty for rows read from storage.
type RefreshToken struct {
	ID          int64     `json:"-" db:"id"`
	UserID      int64     `json:"-" db:"user_id"`
	Token       string    `json:"-" db:"-"`
	TokenHash   string    `json:"-" db:"token_hash"`
	ExpiresAt   time.Time `json:"expires_at" db:"expires_at"`
	IsRevoked   bool      `json:"is_revoked" db:"is_revoked"`
	CreatedAt   time.Time `json:"created_at" db:"created_at"`
	CreatedByIP string    `json:"created_by_ip" db:"created_by_ip"`
}

// TableName returns the name of the database table
// associated with the RefreshToken model.
func (t RefreshToken) TableName() string {
	return "refresh_tokens"
}

// IsExpired reports whether the token is past its expiry at now.
// A token whose expiry equals now is still valid.
func (t RefreshToken) IsExpired(now time.Time) bool {
	return t.ExpiresAt.Before(now)
}

// IsActive reports whether the token can still be exchanged at now.
func (t RefreshToken) IsActive(now time.Time) bool {
	return !t.IsRevoked && !t.IsExpired(now)
}
