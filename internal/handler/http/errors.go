// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import "errors"

// Sentinel errors of the transport layer. Callers can match against them
// with [errors.Is].
var (
	// ErrMissingAccessToken is returned by the auth middleware when neither
	// the accessToken cookie nor an "Authorization" header is present.
	ErrMissingAccessToken = errors.New("access token is missing")

	// ErrInvalidAuthorizationHeader is returned when the "Authorization"
	// header is present but is not a well-formed bearer credential.
	ErrInvalidAuthorizationHeader = errors.New("invalid `Authorization` header")

	// ErrNoClaims is returned by the role gate when no validated claims
	// were stored in the request context.
	ErrNoClaims = errors.New("no access token claims in context")

	// ErrInvalidPathID is returned when an {id} URL parameter is not a
	// positive integer.
	ErrInvalidPathID = errors.New("invalid id in path")

	// ErrMissingRefreshToken is returned by the refresh endpoint when the
	// token is in neither the cookie nor the body.
	ErrMissingRefreshToken = errors.New("refresh token is missing")
)
