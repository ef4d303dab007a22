package utils

import (
	"crypto/rand"
	"encoding/base64"
	"fmt"
)

// RefreshTokenBytes is the entropy of a refresh token.
const RefreshTokenBytes = 64

// GenerateSecureToken returns n bytes from crypto/rand encoded as unpadded
// base64url, safe for cookies and JSON.
func GenerateSecureToken(n int) (string, error) {
	b := make([]byte, n)
	if _, err := rand.Read(b); err != nil {
		return "", fmt.Errorf("error reading random bytes: %w", err)
	}
	return base64.RawURLEncoding.EncodeToString(b), nil
}
