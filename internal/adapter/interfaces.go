// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package adapter provides clients for the outbound integrations of
// mentor-hub.
//
// The primary abstraction is [IdentityVerifier], which decouples federated
// login from the identity provider. The package ships a Google implementation
// ([NewGoogleVerifier]) backed by the tokeninfo endpoint and a pass-through
// implementation ([NewTrustingVerifier]) used when no client id is configured.
//
// HTTP status codes returned by the provider are mapped by mapHTTPError to
// the sentinel values in errors.go so that callers can use [errors.Is].
package adapter

import (
	"context"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/adapter_mock.go -package=mock

// IdentityVerifier checks a credential issued by a third-party identity
// provider and returns the email address it asserts.
type IdentityVerifier interface {
	// VerifyIDToken validates idToken and returns the verified email.
	// fallbackEmail is returned unchanged by verifiers that do not check
	// tokens.
	VerifyIDToken(ctx context.Context, idToken, fallbackEmail string) (string, error)
}
