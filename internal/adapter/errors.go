package adapter

import "errors"

var (
	ErrInvalidIDToken      = errors.New("invalid id token")
	ErrAudienceMismatch    = errors.New("id token was issued for another client")
	ErrEmailNotVerified    = errors.New("email is not verified by identity provider")
	ErrBadRequest          = errors.New("bad request")
	ErrProviderUnavailable = errors.New("identity provider unavailable")
)
