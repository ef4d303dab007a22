package models

import "time"

// RegisterRequest completes registration of an invited account.
type RegisterRequest struct {
	Email           string `json:"email"`
	Password        string `json:"password"`
	ConfirmPassword string `json:"confirm_password"`
}

// LoginRequest authenticates with email and password.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// FederatedLoginRequest authenticates through a third-party identity
// provider. When the server verifies ID tokens, Email is ignored and the
// address asserted by the provider is used instead.
type FederatedLoginRequest struct {
	Email   string `json:"email"`
	IDToken string `json:"id_token,omitempty"`
}

// RefreshRequest carries a refresh token for clients that do not use cookies.
type RefreshRequest struct {
	RefreshToken string `json:"refresh_token"`
}

// AuthResponse is returned by every operation that mints a session.
type AuthResponse struct {
	AccessToken         string    `json:"access_token"`
	AccessTokenExpires  time.Time `json:"access_token_expires"`
	RefreshToken        string    `json:"refresh_token"`
	RefreshTokenExpires time.Time `json:"refresh_token_expires"`
	Email               string    `json:"email"`
	Role                Role      `json:"role"`
	IsBlocked           bool      `json:"is_blocked"`
}
