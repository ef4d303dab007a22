package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/MKhiriev/mentor-hub/internal/adapter"
	"github.com/MKhiriev/mentor-hub/internal/config"
	"github.com/MKhiriev/mentor-hub/internal/events"
	"github.com/MKhiriev/mentor-hub/internal/logger"
	"github.com/MKhiriev/mentor-hub/internal/store"
	"github.com/MKhiriev/mentor-hub/internal/utils"
	"github.com/MKhiriev/mentor-hub/models"
)

const minPasswordLength = 6

// bcrypt rejects longer inputs.
const maxPasswordBytes = 72

// authService is the concrete implementation of AuthService.
// Passwords are hashed with bcrypt; refresh tokens are persisted by their
// HMAC digest only.
type authService struct {
	// userRepository is the data-access layer used to look up and register users.
	userRepository store.UserRepository

	// tokenRepository persists refresh tokens.
	tokenRepository store.RefreshTokenRepository

	// tokenIssuer mints access and refresh tokens and provides the clock.
	tokenIssuer TokenIssuer

	// identityVerifier checks federated login credentials.
	identityVerifier adapter.IdentityVerifier

	publisher events.Publisher

	// bcryptCost is the work factor for new password hashes.
	bcryptCost int

	logger *logger.Logger
}

// NewAuthService constructs a new AuthService.
//
// The returned service is safe for concurrent use; all state is read-only after
// construction.
func NewAuthService(
	storages *store.Storages,
	issuer TokenIssuer,
	verifier adapter.IdentityVerifier,
	publisher events.Publisher,
	cfg config.App,
	logger *logger.Logger,
) AuthService {
	return &authService{
		userRepository:   storages.UserRepository,
		tokenRepository:  storages.RefreshTokenRepository,
		tokenIssuer:      issuer,
		identityVerifier: verifier,
		publisher:        publisher,
		bcryptCost:       cfg.BcryptCost,
		logger:           logger,
	}
}

// Register completes the registration of an account an administrator has
// provisioned and opens the first session.
//
// Checks, in order:
//   - email present, passwords present, equal and long enough (validation);
//   - account exists ([ErrEmailNotInSystem]);
//   - account has no password yet ([ErrAlreadyRegistered]);
//   - account is whitelisted ([ErrNotWhitelisted]) and not blocked ([ErrUserBlocked]).
//
// The password is set with a conditional update, so two concurrent
// registrations of the same account cannot both succeed.
func (a *authService) Register(ctx context.Context, req models.RegisterRequest, ip string) (models.AuthResponse, error) {
	log := logger.FromContext(ctx)

	email := normalizeEmail(req.Email)
	if email == "" {
		return models.AuthResponse{}, ErrEmailRequired
	}
	if err := validateNewPassword(req.Password, req.ConfirmPassword); err != nil {
		return models.AuthResponse{}, err
	}

	user, err := a.userRepository.FindUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, store.ErrNoUserWasFound) {
			log.Info().Str("func", "*authService.Register").Str("email", email).Msg("registration for unknown email")
			return models.AuthResponse{}, ErrEmailNotInSystem
		}
		return models.AuthResponse{}, fmt.Errorf("user search by email failed: %w", err)
	}

	switch user.Status() {
	case models.AccountStatusActive, models.AccountStatusBlocked:
		return models.AuthResponse{}, ErrAlreadyRegistered
	case models.AccountStatusInvited:
	}
	if !user.IsWhitelisted {
		return models.AuthResponse{}, ErrNotWhitelisted
	}
	if user.IsBlocked {
		return models.AuthResponse{}, ErrUserBlocked
	}

	hash, err := utils.HashPassword(req.Password, a.bcryptCost)
	if err != nil {
		log.Err(err).Str("func", "*authService.Register").Int64("user_id", user.UserID).Msg("password hashing failed")
		return models.AuthResponse{}, fmt.Errorf("password hashing failed: %w", err)
	}

	if err = a.userRepository.CompleteRegistration(ctx, user.UserID, hash); err != nil {
		if errors.Is(err, store.ErrAlreadyRegistered) {
			return models.AuthResponse{}, ErrAlreadyRegistered
		}
		return models.AuthResponse{}, fmt.Errorf("registration completion failed: %w", err)
	}
	user.PasswordHash = &hash

	response, err := a.issueSession(ctx, user, ip)
	if err != nil {
		return models.AuthResponse{}, err
	}

	a.publish(ctx, events.UserEvent{Type: events.TypeUserRegistered, UserID: user.UserID, Email: user.Email, Role: user.Role})
	log.Info().Str("func", "*authService.Register").Int64("user_id", user.UserID).Msg("user registered")

	return response, nil
}

// Login authenticates with email and password and opens a new session.
// Existing sessions of the user stay valid.
func (a *authService) Login(ctx context.Context, req models.LoginRequest, ip string) (models.AuthResponse, error) {
	log := logger.FromContext(ctx)

	email := normalizeEmail(req.Email)
	if email == "" {
		return models.AuthResponse{}, ErrEmailRequired
	}
	if req.Password == "" {
		return models.AuthResponse{}, ErrPasswordRequired
	}

	user, err := a.userRepository.FindUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, store.ErrNoUserWasFound) {
			return models.AuthResponse{}, ErrEmailNotFound
		}
		return models.AuthResponse{}, fmt.Errorf("user search by email failed: %w", err)
	}

	switch user.Status() {
	case models.AccountStatusInvited:
		return models.AuthResponse{}, ErrAccountNotSetUp
	case models.AccountStatusActive, models.AccountStatusBlocked:
		ok, err := utils.CheckPassword(*user.PasswordHash, req.Password)
		if err != nil {
			log.Err(err).Str("func", "*authService.Login").Int64("user_id", user.UserID).Msg("stored password hash is unusable")
			return models.AuthResponse{}, fmt.Errorf("password verification failed: %w", err)
		}
		if !ok {
			log.Info().Str("func", "*authService.Login").Int64("user_id", user.UserID).Msg("wrong password")
			return models.AuthResponse{}, ErrInvalidPassword
		}
	}
	if user.Status() == models.AccountStatusBlocked {
		return models.AuthResponse{}, ErrUserBlocked
	}

	return a.issueSession(ctx, user, ip)
}

// Refresh exchanges a refresh token for a new session pair. The presented
// token is revoked and its replacement stored in one transaction; a token
// that was already rotated, revoked or is past its expiry is refused.
func (a *authService) Refresh(ctx context.Context, presented, ip string) (models.AuthResponse, error) {
	log := logger.FromContext(ctx)

	presented = strings.TrimSpace(presented)
	if presented == "" {
		return models.AuthResponse{}, ErrInvalidRefreshToken
	}

	current, err := a.tokenRepository.FindRefreshTokenByHash(ctx, a.tokenIssuer.HashRefreshToken(presented))
	if err != nil {
		if errors.Is(err, store.ErrRefreshTokenNotFound) {
			return models.AuthResponse{}, ErrInvalidRefreshToken
		}
		return models.AuthResponse{}, fmt.Errorf("refresh token lookup failed: %w", err)
	}

	if !current.IsActive(a.tokenIssuer.Now()) {
		log.Info().Str("func", "*authService.Refresh").
			Int64("token_id", current.ID).
			Bool("revoked", current.IsRevoked).
			Msg("inactive refresh token presented")
		return models.AuthResponse{}, ErrRefreshTokenExpired
	}

	user, err := a.userRepository.FindUserByID(ctx, current.UserID)
	if err != nil {
		if errors.Is(err, store.ErrNoUserWasFound) {
			return models.AuthResponse{}, ErrInvalidRefreshToken
		}
		return models.AuthResponse{}, fmt.Errorf("user search by id failed: %w", err)
	}
	if user.IsBlocked {
		return models.AuthResponse{}, ErrUserBlocked
	}

	accessToken, err := a.tokenIssuer.CreateAccessToken(user)
	if err != nil {
		return models.AuthResponse{}, err
	}

	replacement, err := a.tokenIssuer.CreateRefreshToken(ip)
	if err != nil {
		return models.AuthResponse{}, err
	}
	replacement.UserID = user.UserID

	stored, err := a.tokenRepository.RotateRefreshToken(ctx, current.ID, replacement)
	if err != nil {
		if errors.Is(err, store.ErrRefreshTokenAlreadyRevoked) {
			log.Warn().Str("func", "*authService.Refresh").Int64("token_id", current.ID).Msg("refresh token replayed")
			return models.AuthResponse{}, ErrRefreshTokenExpired
		}
		return models.AuthResponse{}, fmt.Errorf("refresh token rotation failed: %w", err)
	}
	stored.Token = replacement.Token

	return newAuthResponse(user, accessToken, stored), nil
}

// Revoke marks the presented refresh token revoked.
func (a *authService) Revoke(ctx context.Context, presented, ip string) error {
	log := logger.FromContext(ctx)

	presented = strings.TrimSpace(presented)
	if presented == "" {
		return nil
	}

	current, err := a.tokenRepository.FindRefreshTokenByHash(ctx, a.tokenIssuer.HashRefreshToken(presented))
	if err != nil {
		if errors.Is(err, store.ErrRefreshTokenNotFound) {
			return nil
		}
		return fmt.Errorf("refresh token lookup failed: %w", err)
	}
	if current.IsRevoked {
		return nil
	}

	if err = a.tokenRepository.RevokeRefreshToken(ctx, current.ID); err != nil && !errors.Is(err, store.ErrRefreshTokenNotFound) {
		return fmt.Errorf("refresh token revocation failed: %w", err)
	}

	log.Info().Str("func", "*authService.Revoke").
		Int64("user_id", current.UserID).
		Int64("token_id", current.ID).
		Str("ip", ip).
		Msg("refresh token revoked")
	return nil
}

// FederatedLogin opens a session for an invited account whose email was
// asserted by an identity provider. Accounts that already have a password
// must use password login.
func (a *authService) FederatedLogin(ctx context.Context, req models.FederatedLoginRequest, ip string) (models.AuthResponse, error) {
	log := logger.FromContext(ctx)

	verified, err := a.identityVerifier.VerifyIDToken(ctx, req.IDToken, req.Email)
	if err != nil {
		log.Warn().Err(err).Str("func", "*authService.FederatedLogin").Msg("identity token rejected")
		return models.AuthResponse{}, ErrInvalidIDToken
	}

	email := normalizeEmail(verified)
	if email == "" {
		return models.AuthResponse{}, ErrEmailRequired
	}

	user, err := a.userRepository.FindUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, store.ErrNoUserWasFound) {
			return models.AuthResponse{}, ErrFederatedLoginDenied
		}
		return models.AuthResponse{}, fmt.Errorf("user search by email failed: %w", err)
	}
	if !user.IsWhitelisted {
		return models.AuthResponse{}, ErrFederatedLoginDenied
	}

	switch user.Status() {
	case models.AccountStatusActive, models.AccountStatusBlocked:
		return models.AuthResponse{}, ErrUsePasswordLogin
	case models.AccountStatusInvited:
	}
	if user.IsBlocked {
		return models.AuthResponse{}, ErrUserBlocked
	}

	return a.issueSession(ctx, user, ip)
}

// ParseAccessToken validates a signed access token.
func (a *authService) ParseAccessToken(ctx context.Context, signed string) (models.Token, error) {
	token, err := a.tokenIssuer.ParseAccessToken(signed)
	if err != nil {
		logger.FromContext(ctx).Debug().Err(err).Str("func", "*authService.ParseAccessToken").Msg("access token rejected")
		return models.Token{}, ErrInvalidAccessToken
	}

	return token, nil
}

// issueSession mints an access token and stores one new refresh token.
func (a *authService) issueSession(ctx context.Context, user models.User, ip string) (models.AuthResponse, error) {
	log := logger.FromContext(ctx)

	accessToken, err := a.tokenIssuer.CreateAccessToken(user)
	if err != nil {
		log.Err(err).Str("func", "*authService.issueSession").Int64("user_id", user.UserID).Msg("access token creation failed")
		return models.AuthResponse{}, err
	}

	refreshToken, err := a.tokenIssuer.CreateRefreshToken(ip)
	if err != nil {
		log.Err(err).Str("func", "*authService.issueSession").Int64("user_id", user.UserID).Msg("refresh token creation failed")
		return models.AuthResponse{}, err
	}
	refreshToken.UserID = user.UserID

	stored, err := a.tokenRepository.CreateRefreshToken(ctx, refreshToken)
	if err != nil {
		return models.AuthResponse{}, fmt.Errorf("refresh token persistence failed: %w", err)
	}
	stored.Token = refreshToken.Token

	return newAuthResponse(user, accessToken, stored), nil
}

func (a *authService) publish(ctx context.Context, event events.UserEvent) {
	publishEvent(ctx, a.publisher, event, a.tokenIssuer.Now())
}

func newAuthResponse(user models.User, accessToken models.Token, refreshToken models.RefreshToken) models.AuthResponse {
	return models.AuthResponse{
		AccessToken:         accessToken.SignedString,
		AccessTokenExpires:  accessToken.ExpiresAt,
		RefreshToken:        refreshToken.Token,
		RefreshTokenExpires: refreshToken.ExpiresAt,
		Email:               user.Email,
		Role:                user.Role,
		IsBlocked:           user.IsBlocked,
	}
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func validateNewPassword(password, confirm string) error {
	if password == "" {
		return ErrPasswordRequired
	}
	if password != confirm {
		return ErrPasswordsDoNotMatch
	}
	if utf8.RuneCountInString(password) < minPasswordLength {
		return ErrPasswordTooShort
	}
	if len(password) > maxPasswordBytes {
		return ErrPasswordTooLong
	}

	return nil
}
