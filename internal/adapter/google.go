package adapter

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"github.com/MKhiriev/mentor-hub/internal/config"
	"github.com/MKhiriev/mentor-hub/internal/logger"
	"github.com/MKhiriev/mentor-hub/internal/utils"
)

// tokenInfo is the subset of the tokeninfo response that is checked.
// Google encodes booleans in this payload as strings.
type tokenInfo struct {
	Audience      string `json:"aud"`
	Email         string `json:"email"`
	EmailVerified string `json:"email_verified"`
	Issuer        string `json:"iss"`
}

var googleIssuers = map[string]struct{}{
	"accounts.google.com":         {},
	"https://accounts.google.com": {},
}

type googleVerifier struct {
	client   *utils.HTTPClient
	endpoint string
	clientID string

	logger *logger.Logger
}

// NewGoogleVerifier returns an [IdentityVerifier] that validates Google ID
// tokens through the tokeninfo endpoint. When cfg.GoogleClientID is empty no
// verification is possible and a trusting verifier is returned instead.
func NewGoogleVerifier(cfg config.Adapter, logger *logger.Logger) (IdentityVerifier, error) {
	if strings.TrimSpace(cfg.GoogleClientID) == "" {
		logger.Warn().Msg("google client id is not configured, federated login trusts the supplied email")
		return NewTrustingVerifier(), nil
	}

	endpoint, err := url.Parse(cfg.GoogleTokenInfoURL)
	if err != nil || endpoint.Scheme == "" || endpoint.Host == "" {
		return nil, fmt.Errorf("invalid tokeninfo url %q", cfg.GoogleTokenInfoURL)
	}

	return &googleVerifier{
		client:   utils.NewHTTPClient(cfg.RequestTimeout),
		endpoint: endpoint.String(),
		clientID: cfg.GoogleClientID,
		logger:   logger,
	}, nil
}

// VerifyIDToken implements [IdentityVerifier]. The token must be accepted by
// the tokeninfo endpoint, be issued by Google for the configured client id
// and carry a verified email address. fallbackEmail is ignored.
func (g *googleVerifier) VerifyIDToken(ctx context.Context, idToken, _ string) (string, error) {
	log := logger.FromContext(ctx)

	idToken = strings.TrimSpace(idToken)
	if idToken == "" {
		return "", fmt.Errorf("%w: empty token", ErrInvalidIDToken)
	}

	var info tokenInfo
	resp, err := g.client.R().
		SetContext(ctx).
		SetQueryParam("id_token", idToken).
		SetResult(&info).
		Get(g.endpoint)
	if err != nil {
		log.Err(err).Str("func", "*googleVerifier.VerifyIDToken").Msg("tokeninfo request failed")
		return "", fmt.Errorf("%w: %w", ErrProviderUnavailable, err)
	}
	if err = mapHTTPError(resp); err != nil {
		log.Warn().Err(err).Str("func", "*googleVerifier.VerifyIDToken").Int("status", resp.StatusCode()).Msg("id token rejected")
		return "", err
	}

	if _, ok := googleIssuers[info.Issuer]; !ok {
		return "", fmt.Errorf("%w: unexpected issuer %q", ErrInvalidIDToken, info.Issuer)
	}
	if info.Audience != g.clientID {
		return "", ErrAudienceMismatch
	}
	if info.Email == "" || !strings.EqualFold(info.EmailVerified, "true") {
		return "", ErrEmailNotVerified
	}

	return strings.ToLower(info.Email), nil
}

type trustingVerifier struct{}

// NewTrustingVerifier returns an [IdentityVerifier] that performs no check
// and returns the email supplied by the caller.
func NewTrustingVerifier() IdentityVerifier {
	return trustingVerifier{}
}

func (trustingVerifier) VerifyIDToken(_ context.Context, _, fallbackEmail string) (string, error) {
	return fallbackEmail, nil
}
