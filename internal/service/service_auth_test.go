package service

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/MKhiriev/mentor-hub/internal/config"
	"github.com/MKhiriev/mentor-hub/internal/events"
	"github.com/MKhiriev/mentor-hub/internal/logger"
	"github.com/MKhiriev/mentor-hub/internal/mock"
	"github.com/MKhiriev/mentor-hub/internal/store"
	"github.com/MKhiriev/mentor-hub/internal/utils"
	"github.com/MKhiriev/mentor-hub/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
	"golang.org/x/crypto/bcrypt"
)

var testNow = time.Date(2026, time.March, 2, 10, 0, 0, 0, time.UTC)

const (
	testPassword = "s3cret-pass"
	testIP       = "203.0.113.7"
)

// testClock is a settable time source shared by the issuer and the test.
type testClock struct {
	now time.Time
}

func (c *testClock) Now() time.Time { return c.now }

func (c *testClock) Advance(d time.Duration) { c.now = c.now.Add(d) }

func testAppConfig() config.App {
	return config.App{
		TokenSignKey:         "test-sign-key",
		TokenIssuer:          "mentor-hub",
		TokenAudience:        "mentor-hub-web",
		AccessTokenDuration:  15 * time.Minute,
		RefreshTokenDuration: 7 * 24 * time.Hour,
		HashKey:              "test-hash-key",
		BcryptCost:           bcrypt.MinCost,
		Version:              "1.0.0",
	}
}

type authFixture struct {
	svc       *authService
	issuer    TokenIssuer
	clock     *testClock
	users     *mock.MockUserRepository
	tokens    *mock.MockRefreshTokenRepository
	verifier  *mock.MockIdentityVerifier
	publisher *mock.MockPublisher
}

// newTestAuthSvc builds authService on top of gomock repositories.
// and a real token issuer driven by a test clock.
func newTestAuthSvc(t *testing.T, ctrl *gomock.Controller) authFixture {
	t.Helper()

	clock := &testClock{now: testNow}
	issuer := NewTokenIssuer(testAppConfig(), WithClock(clock.Now))

	f := authFixture{
		issuer:    issuer,
		clock:     clock,
		users:     mock.NewMockUserRepository(ctrl),
		tokens:    mock.NewMockRefreshTokenRepository(ctrl),
		verifier:  mock.NewMockIdentityVerifier(ctrl),
		publisher: mock.NewMockPublisher(ctrl),
	}
	storages := &store.Storages{
		UserRepository:         f.users,
		RefreshTokenRepository: f.tokens,
	}
	f.svc = NewAuthService(storages, issuer, f.verifier, f.publisher, testAppConfig(), logger.Nop()).(*authService)

	return f
}

func mustHash(t *testing.T, password string) *string {
	t.Helper()
	hash, err := utils.HashPassword(password, bcrypt.MinCost)
	require.NoError(t, err)
	return &hash
}

func invitedUser() models.User {
	return models.User{
		UserID:        7,
		Email:         "alice@example.com",
		FullName:      "Alice",
		Role:          models.RoleUser,
		IsWhitelisted: true,
	}
}

func activeUser(t *testing.T) models.User {
	u := invitedUser()
	u.PasswordHash = mustHash(t, testPassword)
	return u
}

// expectStoreRefreshToken accepts one CreateRefreshToken call and echoes the
// token back with an id.
func expectStoreRefreshToken(t *testing.T, f authFixture, userID int64) *gomock.Call {
	return f.tokens.EXPECT().CreateRefreshToken(gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, token models.RefreshToken) (models.RefreshToken, error) {
			assert.Equal(t, userID, token.UserID)
			assert.Equal(t, f.issuer.HashRefreshToken(token.Token), token.TokenHash)
			assert.Equal(t, testIP, token.CreatedByIP)
			token.ID = 100
			token.Token = ""
			return token, nil
		},
	)
}

// ── Register ─────────────────────────────────────────────────────────────────

func TestAuthService_Register_Success(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	f := newTestAuthSvc(t, ctrl)
	ctx := context.Background()
	user := invitedUser()

	gomock.InOrder(
		f.users.EXPECT().FindUserByEmail(ctx, "alice@example.com").Return(user, nil),
		f.users.EXPECT().CompleteRegistration(ctx, user.UserID, gomock.Any()).DoAndReturn(
			func(_ context.Context, _ int64, hash string) error {
				ok, err := utils.CheckPassword(hash, testPassword)
				require.NoError(t, err)
				assert.True(t, ok, "stored hash must match the chosen password")
				return nil
			},
		),
		expectStoreRefreshToken(t, f, user.UserID),
	)
	f.publisher.EXPECT().Publish(ctx, gomock.Any()).DoAndReturn(
		func(_ context.Context, e events.UserEvent) error {
			assert.Equal(t, events.TypeUserRegistered, e.Type)
			assert.Equal(t, user.UserID, e.UserID)
			assert.Equal(t, testNow, e.OccurredAt)
			return nil
		},
	)

	resp, err := f.svc.Register(ctx, models.RegisterRequest{
		Email:           "  Alice@Example.com ",
		Password:        testPassword,
		ConfirmPassword: testPassword,
	}, testIP)
	require.NoError(t, err)

	assert.Equal(t, "alice@example.com", resp.Email)
	assert.Equal(t, models.RoleUser, resp.Role)
	assert.False(t, resp.IsBlocked)
	assert.NotEmpty(t, resp.RefreshToken)
	assert.Equal(t, testNow.Add(7*24*time.Hour), resp.RefreshTokenExpires)
	assert.Equal(t, testNow.Add(15*time.Minute), resp.AccessTokenExpires)

	token, err := f.issuer.ParseAccessToken(resp.AccessToken)
	require.NoError(t, err)
	id, err := token.Claims.UserID()
	require.NoError(t, err)
	assert.Equal(t, user.UserID, id)
}

func TestAuthService_Register_ValidationErrors(t *testing.T) {
	tests := []struct {
		name string
		req  models.RegisterRequest
		want error
	}{
		{"empty email", models.RegisterRequest{Password: "abcdef", ConfirmPassword: "abcdef"}, ErrEmailRequired},
		{"empty password", models.RegisterRequest{Email: "a@b.c"}, ErrPasswordRequired},
		{"mismatch", models.RegisterRequest{Email: "a@b.c", Password: "abcdef", ConfirmPassword: "abcdeg"}, ErrPasswordsDoNotMatch},
		{"too short", models.RegisterRequest{Email: "a@b.c", Password: "abcde", ConfirmPassword: "abcde"}, ErrPasswordTooShort},
		{"too long", models.RegisterRequest{Email: "a@b.c", Password: strings.Repeat("a", 73), ConfirmPassword: strings.Repeat("a", 73)}, ErrPasswordTooLong},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			f := newTestAuthSvc(t, ctrl)

			_, err := f.svc.Register(context.Background(), tt.req, testIP)
			require.ErrorIs(t, err, tt.want)
			assert.ErrorIs(t, err, ErrValidation)
		})
	}
}

func TestAuthService_Register_MultibytePasswordLength(t *testing.T) {
	ctrl := gomock.NewController(t)
	f := newTestAuthSvc(t, ctrl)

	// five runes, ten bytes
	_, err := f.svc.Register(context.Background(), models.RegisterRequest{
		Email: "a@b.c", Password: "парол", ConfirmPassword: "парол",
	}, testIP)
	require.ErrorIs(t, err, ErrPasswordTooShort)
}

func TestAuthService_Register_PasswordAtBcryptLimit(t *testing.T) {
	ctrl := gomock.NewController(t)
	f := newTestAuthSvc(t, ctrl)

	// 36 runes, 72 bytes: accepted by validation, so the lookup runs
	pass := strings.Repeat("я", 36)
	f.users.EXPECT().FindUserByEmail(gomock.Any(), "a@b.c").Return(models.User{}, store.ErrNoUserWasFound)

	_, err := f.svc.Register(context.Background(), models.RegisterRequest{
		Email: "a@b.c", Password: pass, ConfirmPassword: pass,
	}, testIP)
	require.ErrorIs(t, err, ErrEmailNotInSystem)
}

func TestAuthService_Register_AccountChecksOrder(t *testing.T) {
	blockedActive := activeUser(t)
	blockedActive.IsBlocked = true
	blockedActive.IsWhitelisted = false

	notWhitelisted := invitedUser()
	notWhitelisted.IsWhitelisted = false
	notWhitelisted.IsBlocked = true

	blockedInvited := invitedUser()
	blockedInvited.IsBlocked = true

	tests := []struct {
		name    string
		user    models.User
		findErr error
		want    error
	}{
		{"unknown email", models.User{}, store.ErrNoUserWasFound, ErrEmailNotInSystem},
		{"registered wins over other flags", blockedActive, nil, ErrAlreadyRegistered},
		{"not whitelisted wins over blocked", notWhitelisted, nil, ErrNotWhitelisted},
		{"blocked invited", blockedInvited, nil, ErrUserBlocked},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			f := newTestAuthSvc(t, ctrl)
			ctx := context.Background()

			f.users.EXPECT().FindUserByEmail(ctx, "alice@example.com").Return(tt.user, tt.findErr)

			_, err := f.svc.Register(ctx, models.RegisterRequest{
				Email: "alice@example.com", Password: testPassword, ConfirmPassword: testPassword,
			}, testIP)
			require.ErrorIs(t, err, tt.want)
		})
	}
}

func TestAuthService_Register_ConcurrentCompletionLoses(t *testing.T) {
	ctrl := gomock.NewController(t)
	f := newTestAuthSvc(t, ctrl)
	ctx := context.Background()

	f.users.EXPECT().FindUserByEmail(ctx, "alice@example.com").Return(invitedUser(), nil)
	f.users.EXPECT().CompleteRegistration(ctx, int64(7), gomock.Any()).Return(store.ErrAlreadyRegistered)

	_, err := f.svc.Register(ctx, models.RegisterRequest{
		Email: "alice@example.com", Password: testPassword, ConfirmPassword: testPassword,
	}, testIP)
	require.ErrorIs(t, err, ErrAlreadyRegistered)
}

func TestAuthService_Register_LookupFailure(t *testing.T) {
	ctrl := gomock.NewController(t)
	f := newTestAuthSvc(t, ctrl)
	ctx := context.Background()

	f.users.EXPECT().FindUserByEmail(ctx, "alice@example.com").Return(models.User{}, errors.New("connection reset"))

	_, err := f.svc.Register(ctx, models.RegisterRequest{
		Email: "alice@example.com", Password: testPassword, ConfirmPassword: testPassword,
	}, testIP)
	require.Error(t, err)

	var svcErr *Error
	assert.False(t, errors.As(err, &svcErr), "storage failures must not look like client errors")
	assert.Contains(t, err.Error(), "connection reset")
}

func TestAuthService_Register_PublishFailureIsIgnored(t *testing.T) {
	ctrl := gomock.NewController(t)
	f := newTestAuthSvc(t, ctrl)
	ctx := context.Background()

	f.users.EXPECT().FindUserByEmail(ctx, "alice@example.com").Return(invitedUser(), nil)
	f.users.EXPECT().CompleteRegistration(ctx, int64(7), gomock.Any()).Return(nil)
	expectStoreRefreshToken(t, f, 7)
	f.publisher.EXPECT().Publish(ctx, gomock.Any()).Return(errors.New("broker down"))

	_, err := f.svc.Register(ctx, models.RegisterRequest{
		Email: "alice@example.com", Password: testPassword, ConfirmPassword: testPassword,
	}, testIP)
	require.NoError(t, err)
}

// ── Login ────────────────────────────────────────────────────────────────────

func TestAuthService_Login_Success(t *testing.T) {
	ctrl := gomock.NewController(t)
	f := newTestAuthSvc(t, ctrl)
	ctx := context.Background()
	user := activeUser(t)

	f.users.EXPECT().FindUserByEmail(ctx, "alice@example.com").Return(user, nil)
	expectStoreRefreshToken(t, f, user.UserID)

	resp, err := f.svc.Login(ctx, models.LoginRequest{Email: "ALICE@example.com", Password: testPassword}, testIP)
	require.NoError(t, err)
	assert.NotEmpty(t, resp.AccessToken)
	assert.NotEmpty(t, resp.RefreshToken)
	assert.Equal(t, user.Email, resp.Email)
}

func TestAuthService_Login_Failures(t *testing.T) {
	blocked := activeUser(t)
	blocked.IsBlocked = true

	tests := []struct {
		name     string
		password string
		user     models.User
		findErr  error
		want     error
		wantKind error
	}{
		{"unknown email", testPassword, models.User{}, store.ErrNoUserWasFound, ErrEmailNotFound, ErrNotFound},
		{"invited account", testPassword, invitedUser(), nil, ErrAccountNotSetUp, ErrUnauthenticated},
		{"wrong password", "wrong-password", activeUser(t), nil, ErrInvalidPassword, ErrUnauthenticated},
		{"blocked account", testPassword, blocked, nil, ErrUserBlocked, ErrForbidden},
		{"blocked account wrong password", "nope-nope", blocked, nil, ErrInvalidPassword, ErrUnauthenticated},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			f := newTestAuthSvc(t, ctrl)
			ctx := context.Background()

			f.users.EXPECT().FindUserByEmail(ctx, "alice@example.com").Return(tt.user, tt.findErr)

			_, err := f.svc.Login(ctx, models.LoginRequest{Email: "alice@example.com", Password: tt.password}, testIP)
			require.ErrorIs(t, err, tt.want)
			assert.ErrorIs(t, err, tt.wantKind)
		})
	}
}

func TestAuthService_Login_MissingFields(t *testing.T) {
	ctrl := gomock.NewController(t)
	f := newTestAuthSvc(t, ctrl)

	_, err := f.svc.Login(context.Background(), models.LoginRequest{Password: "x"}, testIP)
	require.ErrorIs(t, err, ErrEmailRequired)

	_, err = f.svc.Login(context.Background(), models.LoginRequest{Email: "a@b.c"}, testIP)
	require.ErrorIs(t, err, ErrPasswordRequired)
}

func TestAuthService_Login_KeepsOtherSessions(t *testing.T) {
	ctrl := gomock.NewController(t)
	f := newTestAuthSvc(t, ctrl)
	ctx := context.Background()
	user := activeUser(t)

	f.users.EXPECT().FindUserByEmail(ctx, "alice@example.com").Return(user, nil).Times(2)
	expectStoreRefreshToken(t, f, user.UserID).Times(2)
	// no RevokeAllUserTokens expectation: a second login must not end the first session

	first, err := f.svc.Login(ctx, models.LoginRequest{Email: "alice@example.com", Password: testPassword}, testIP)
	require.NoError(t, err)
	second, err := f.svc.Login(ctx, models.LoginRequest{Email: "alice@example.com", Password: testPassword}, testIP)
	require.NoError(t, err)

	assert.NotEqual(t, first.RefreshToken, second.RefreshToken)
}

// ── Refresh ──────────────────────────────────────────────────────────────────

func storedToken(f authFixture, presented string, expiresAt time.Time) models.RefreshToken {
	return models.RefreshToken{
		ID:        41,
		UserID:    7,
		TokenHash: f.issuer.HashRefreshToken(presented),
		ExpiresAt: expiresAt,
		CreatedAt: expiresAt.Add(-7 * 24 * time.Hour),
	}
}

func expectRotation(t *testing.T, f authFixture, oldID int64) *gomock.Call {
	return f.tokens.EXPECT().RotateRefreshToken(gomock.Any(), oldID, gomock.Any()).DoAndReturn(
		func(_ context.Context, _ int64, replacement models.RefreshToken) (models.RefreshToken, error) {
			assert.Equal(t, int64(7), replacement.UserID)
			assert.Equal(t, f.issuer.HashRefreshToken(replacement.Token), replacement.TokenHash)
			replacement.ID = oldID + 1
			replacement.Token = ""
			return replacement, nil
		},
	)
}

func TestAuthService_Refresh_RotatesToken(t *testing.T) {
	ctrl := gomock.NewController(t)
	f := newTestAuthSvc(t, ctrl)
	ctx := context.Background()

	presented := "presented-refresh-token"
	current := storedToken(f, presented, testNow.Add(time.Hour))

	gomock.InOrder(
		f.tokens.EXPECT().FindRefreshTokenByHash(ctx, current.TokenHash).Return(current, nil),
		f.users.EXPECT().FindUserByID(ctx, int64(7)).Return(activeUser(t), nil),
		expectRotation(t, f, current.ID),
	)

	resp, err := f.svc.Refresh(ctx, presented, testIP)
	require.NoError(t, err)
	assert.NotEmpty(t, resp.RefreshToken)
	assert.NotEqual(t, presented, resp.RefreshToken)
	assert.Equal(t, testNow.Add(7*24*time.Hour), resp.RefreshTokenExpires)
	assert.NotEmpty(t, resp.AccessToken)
}

func TestAuthService_Refresh_ExpiryBoundary(t *testing.T) {
	presented := "boundary-token"

	t.Run("expiry equal to now is accepted", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		f := newTestAuthSvc(t, ctrl)
		ctx := context.Background()
		current := storedToken(f, presented, testNow)

		f.tokens.EXPECT().FindRefreshTokenByHash(ctx, current.TokenHash).Return(current, nil)
		f.users.EXPECT().FindUserByID(ctx, int64(7)).Return(activeUser(t), nil)
		expectRotation(t, f, current.ID)

		_, err := f.svc.Refresh(ctx, presented, testIP)
		require.NoError(t, err)
	})

	t.Run("one nanosecond later is refused", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		f := newTestAuthSvc(t, ctrl)
		ctx := context.Background()
		current := storedToken(f, presented, testNow)
		f.clock.Advance(time.Nanosecond)

		f.tokens.EXPECT().FindRefreshTokenByHash(ctx, current.TokenHash).Return(current, nil)

		_, err := f.svc.Refresh(ctx, presented, testIP)
		require.ErrorIs(t, err, ErrRefreshTokenExpired)
	})
}

func TestAuthService_Refresh_Rejections(t *testing.T) {
	tests := []struct {
		name  string
		setup func(t *testing.T, f authFixture, presented string)
		want  error
	}{
		{
			name: "unknown token",
			setup: func(t *testing.T, f authFixture, presented string) {
				f.tokens.EXPECT().FindRefreshTokenByHash(gomock.Any(), f.issuer.HashRefreshToken(presented)).
					Return(models.RefreshToken{}, store.ErrRefreshTokenNotFound)
			},
			want: ErrInvalidRefreshToken,
		},
		{
			name: "revoked token",
			setup: func(t *testing.T, f authFixture, presented string) {
				current := storedToken(f, presented, testNow.Add(time.Hour))
				current.IsRevoked = true
				f.tokens.EXPECT().FindRefreshTokenByHash(gomock.Any(), current.TokenHash).Return(current, nil)
			},
			want: ErrRefreshTokenExpired,
		},
		{
			name: "owner deleted",
			setup: func(t *testing.T, f authFixture, presented string) {
				current := storedToken(f, presented, testNow.Add(time.Hour))
				f.tokens.EXPECT().FindRefreshTokenByHash(gomock.Any(), current.TokenHash).Return(current, nil)
				f.users.EXPECT().FindUserByID(gomock.Any(), int64(7)).Return(models.User{}, store.ErrNoUserWasFound)
			},
			want: ErrInvalidRefreshToken,
		},
		{
			name: "owner blocked",
			setup: func(t *testing.T, f authFixture, presented string) {
				current := storedToken(f, presented, testNow.Add(time.Hour))
				blocked := activeUser(t)
				blocked.IsBlocked = true
				f.tokens.EXPECT().FindRefreshTokenByHash(gomock.Any(), current.TokenHash).Return(current, nil)
				f.users.EXPECT().FindUserByID(gomock.Any(), int64(7)).Return(blocked, nil)
			},
			want: ErrUserBlocked,
		},
		{
			name: "concurrent rotation wins",
			setup: func(t *testing.T, f authFixture, presented string) {
				current := storedToken(f, presented, testNow.Add(time.Hour))
				f.tokens.EXPECT().FindRefreshTokenByHash(gomock.Any(), current.TokenHash).Return(current, nil)
				f.users.EXPECT().FindUserByID(gomock.Any(), int64(7)).Return(activeUser(t), nil)
				f.tokens.EXPECT().RotateRefreshToken(gomock.Any(), current.ID, gomock.Any()).
					Return(models.RefreshToken{}, store.ErrRefreshTokenAlreadyRevoked)
			},
			want: ErrRefreshTokenExpired,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			f := newTestAuthSvc(t, ctrl)
			presented := "some-refresh-token"
			tt.setup(t, f, presented)

			_, err := f.svc.Refresh(context.Background(), presented, testIP)
			require.ErrorIs(t, err, tt.want)
		})
	}
}

func TestAuthService_Refresh_BlankToken(t *testing.T) {
	ctrl := gomock.NewController(t)
	f := newTestAuthSvc(t, ctrl)

	_, err := f.svc.Refresh(context.Background(), "   ", testIP)
	require.ErrorIs(t, err, ErrInvalidRefreshToken)
}

func TestAuthService_Refresh_ReplayAfterRotation(t *testing.T) {
	ctrl := gomock.NewController(t)
	f := newTestAuthSvc(t, ctrl)
	ctx := context.Background()

	presented := "single-use-token"
	current := storedToken(f, presented, testNow.Add(time.Hour))
	rotated := current
	rotated.IsRevoked = true

	gomock.InOrder(
		f.tokens.EXPECT().FindRefreshTokenByHash(ctx, current.TokenHash).Return(current, nil),
		f.users.EXPECT().FindUserByID(ctx, int64(7)).Return(activeUser(t), nil),
		expectRotation(t, f, current.ID),
		f.tokens.EXPECT().FindRefreshTokenByHash(ctx, current.TokenHash).Return(rotated, nil),
	)

	_, err := f.svc.Refresh(ctx, presented, testIP)
	require.NoError(t, err)

	_, err = f.svc.Refresh(ctx, presented, testIP)
	require.ErrorIs(t, err, ErrRefreshTokenExpired)
}

// ── Revoke ───────────────────────────────────────────────────────────────────

func TestAuthService_Revoke(t *testing.T) {
	t.Run("blank token is a no-op", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		f := newTestAuthSvc(t, ctrl)

		require.NoError(t, f.svc.Revoke(context.Background(), "", testIP))
	})

	t.Run("unknown token is a no-op", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		f := newTestAuthSvc(t, ctrl)

		f.tokens.EXPECT().FindRefreshTokenByHash(gomock.Any(), gomock.Any()).
			Return(models.RefreshToken{}, store.ErrRefreshTokenNotFound)

		require.NoError(t, f.svc.Revoke(context.Background(), "ghost", testIP))
	})

	t.Run("live token is revoked once", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		f := newTestAuthSvc(t, ctrl)
		ctx := context.Background()

		current := storedToken(f, "live", testNow.Add(time.Hour))
		revoked := current
		revoked.IsRevoked = true

		gomock.InOrder(
			f.tokens.EXPECT().FindRefreshTokenByHash(ctx, current.TokenHash).Return(current, nil),
			f.tokens.EXPECT().RevokeRefreshToken(ctx, current.ID).Return(nil),
			f.tokens.EXPECT().FindRefreshTokenByHash(ctx, current.TokenHash).Return(revoked, nil),
		)

		require.NoError(t, f.svc.Revoke(ctx, "live", testIP))
		require.NoError(t, f.svc.Revoke(ctx, "live", testIP))
	})

	t.Run("storage failure is reported", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		f := newTestAuthSvc(t, ctrl)

		f.tokens.EXPECT().FindRefreshTokenByHash(gomock.Any(), gomock.Any()).
			Return(models.RefreshToken{}, errors.New("db gone"))

		require.Error(t, f.svc.Revoke(context.Background(), "any", testIP))
	})
}

// ── FederatedLogin ───────────────────────────────────────────────────────────

func TestAuthService_FederatedLogin_Success(t *testing.T) {
	ctrl := gomock.NewController(t)
	f := newTestAuthSvc(t, ctrl)
	ctx := context.Background()

	f.verifier.EXPECT().VerifyIDToken(ctx, "id-token", "claimed@example.com").Return("Alice@Example.com", nil)
	f.users.EXPECT().FindUserByEmail(ctx, "alice@example.com").Return(invitedUser(), nil)
	expectStoreRefreshToken(t, f, 7)

	resp, err := f.svc.FederatedLogin(ctx, models.FederatedLoginRequest{Email: "claimed@example.com", IDToken: "id-token"}, testIP)
	require.NoError(t, err)
	assert.Equal(t, "alice@example.com", resp.Email)
}

func TestAuthService_FederatedLogin_Failures(t *testing.T) {
	notWhitelisted := invitedUser()
	notWhitelisted.IsWhitelisted = false
	blocked := invitedUser()
	blocked.IsBlocked = true

	tests := []struct {
		name    string
		user    models.User
		findErr error
		want    error
	}{
		{"unknown email", models.User{}, store.ErrNoUserWasFound, ErrFederatedLoginDenied},
		{"not whitelisted", notWhitelisted, nil, ErrFederatedLoginDenied},
		{"has password", activeUser(t), nil, ErrUsePasswordLogin},
		{"blocked", blocked, nil, ErrUserBlocked},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			f := newTestAuthSvc(t, ctrl)
			ctx := context.Background()

			f.verifier.EXPECT().VerifyIDToken(ctx, "", "alice@example.com").Return("alice@example.com", nil)
			f.users.EXPECT().FindUserByEmail(ctx, "alice@example.com").Return(tt.user, tt.findErr)

			_, err := f.svc.FederatedLogin(ctx, models.FederatedLoginRequest{Email: "alice@example.com"}, testIP)
			require.ErrorIs(t, err, tt.want)
		})
	}
}

func TestAuthService_FederatedLogin_RejectedToken(t *testing.T) {
	ctrl := gomock.NewController(t)
	f := newTestAuthSvc(t, ctrl)
	ctx := context.Background()

	f.verifier.EXPECT().VerifyIDToken(ctx, "forged", "").Return("", errors.New("audience mismatch"))

	_, err := f.svc.FederatedLogin(ctx, models.FederatedLoginRequest{IDToken: "forged"}, testIP)
	require.ErrorIs(t, err, ErrInvalidIDToken)
}

// ── ParseAccessToken ─────────────────────────────────────────────────────────

func TestAuthService_ParseAccessToken(t *testing.T) {
	ctrl := gomock.NewController(t)
	f := newTestAuthSvc(t, ctrl)
	ctx := context.Background()

	issued, err := f.issuer.CreateAccessToken(activeUser(t))
	require.NoError(t, err)

	parsed, err := f.svc.ParseAccessToken(ctx, issued.SignedString)
	require.NoError(t, err)
	assert.Equal(t, "alice@example.com", parsed.Claims.Email)

	f.clock.Advance(15*time.Minute + time.Second)
	_, err = f.svc.ParseAccessToken(ctx, issued.SignedString)
	require.ErrorIs(t, err, ErrInvalidAccessToken)

	_, err = f.svc.ParseAccessToken(ctx, "not-a-jwt")
	require.ErrorIs(t, err, ErrInvalidAccessToken)
}

// ── Scenario ─────────────────────────────────────────────────────────────────

// Provision, register, refresh, logout, refresh again.
func TestAuthService_SessionLifecycle(t *testing.T) {
	ctrl := gomock.NewController(t)
	f := newTestAuthSvc(t, ctrl)
	ctx := context.Background()

	user := invitedUser()
	var (
		tokens = map[string]models.RefreshToken{}
		nextID int64
	)
	save := func(token models.RefreshToken) models.RefreshToken {
		nextID++
		token.ID = nextID
		tokens[token.TokenHash] = token
		return token
	}

	f.users.EXPECT().FindUserByEmail(ctx, user.Email).Return(user, nil)
	f.users.EXPECT().CompleteRegistration(ctx, user.UserID, gomock.Any()).DoAndReturn(
		func(_ context.Context, _ int64, hash string) error {
			user.PasswordHash = &hash
			return nil
		},
	)
	f.users.EXPECT().FindUserByID(ctx, user.UserID).DoAndReturn(
		func(context.Context, int64) (models.User, error) { return user, nil },
	).AnyTimes()
	f.publisher.EXPECT().Publish(ctx, gomock.Any()).Return(nil)

	f.tokens.EXPECT().CreateRefreshToken(ctx, gomock.Any()).DoAndReturn(
		func(_ context.Context, token models.RefreshToken) (models.RefreshToken, error) {
			return save(token), nil
		},
	)
	f.tokens.EXPECT().FindRefreshTokenByHash(ctx, gomock.Any()).DoAndReturn(
		func(_ context.Context, hash string) (models.RefreshToken, error) {
			token, ok := tokens[hash]
			if !ok {
				return models.RefreshToken{}, store.ErrRefreshTokenNotFound
			}
			return token, nil
		},
	).AnyTimes()
	f.tokens.EXPECT().RotateRefreshToken(ctx, gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, oldID int64, replacement models.RefreshToken) (models.RefreshToken, error) {
			for hash, token := range tokens {
				if token.ID == oldID {
					if token.IsRevoked {
						return models.RefreshToken{}, store.ErrRefreshTokenAlreadyRevoked
					}
					token.IsRevoked = true
					tokens[hash] = token
				}
			}
			return save(replacement), nil
		},
	).AnyTimes()
	f.tokens.EXPECT().RevokeRefreshToken(ctx, gomock.Any()).DoAndReturn(
		func(_ context.Context, id int64) error {
			for hash, token := range tokens {
				if token.ID == id {
					token.IsRevoked = true
					tokens[hash] = token
				}
			}
			return nil
		},
	)

	registered, err := f.svc.Register(ctx, models.RegisterRequest{
		Email: user.Email, Password: testPassword, ConfirmPassword: testPassword,
	}, testIP)
	require.NoError(t, err)

	f.clock.Advance(time.Hour)
	refreshed, err := f.svc.Refresh(ctx, registered.RefreshToken, testIP)
	require.NoError(t, err)
	assert.NotEqual(t, registered.RefreshToken, refreshed.RefreshToken)

	_, err = f.svc.Refresh(ctx, registered.RefreshToken, testIP)
	require.ErrorIs(t, err, ErrRefreshTokenExpired, "a rotated token must not be usable again")

	require.NoError(t, f.svc.Revoke(ctx, refreshed.RefreshToken, testIP))

	_, err = f.svc.Refresh(ctx, refreshed.RefreshToken, testIP)
	require.ErrorIs(t, err, ErrRefreshTokenExpired)
}
