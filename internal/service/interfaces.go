package service

import (
	"context"
	"time"

	"github.com/MKhiriev/mentor-hub/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/service_mock.go -package=mock

// TokenIssuer mints and validates session credentials. Its clock is the
// single time source of the authentication flow.
type TokenIssuer interface {
	CreateAccessToken(user models.User) (models.Token, error)

	// CreateRefreshToken returns a fresh opaque token bound to ip. The
	// caller sets the owner before persisting it.
	CreateRefreshToken(ip string) (models.RefreshToken, error)

	ParseAccessToken(signed string) (models.Token, error)

	// HashRefreshToken returns the digest under which a refresh token is
	// stored and looked up.
	HashRefreshToken(token string) string

	Now() time.Time
}

// AuthService implements the session lifecycle: registration of invited
// accounts, password and federated login, refresh token rotation and logout.
type AuthService interface {
	Register(ctx context.Context, req models.RegisterRequest, ip string) (models.AuthResponse, error)
	Login(ctx context.Context, req models.LoginRequest, ip string) (models.AuthResponse, error)
	Refresh(ctx context.Context, presented, ip string) (models.AuthResponse, error)

	// Revoke is idempotent: an empty, unknown or already revoked token is
	// not an error.
	Revoke(ctx context.Context, presented, ip string) error

	FederatedLogin(ctx context.Context, req models.FederatedLoginRequest, ip string) (models.AuthResponse, error)
	ParseAccessToken(ctx context.Context, signed string) (models.Token, error)
}

// UserService is the administrator's view of accounts.
type UserService interface {
	AddUser(ctx context.Context, req models.AddUserRequest) (models.User, error)
	ListUsers(ctx context.Context, filter models.UserFilter) ([]models.User, error)
	GetUser(ctx context.Context, userID int64) (models.User, error)
	RemoveUser(ctx context.Context, userID int64) error

	// BlockUser also revokes every live refresh token of the user.
	BlockUser(ctx context.Context, userID int64) error
	UnblockUser(ctx context.Context, userID int64) error
	UpdateRole(ctx context.Context, userID int64, role string) (models.User, error)
}

// MentorService manages the mentor relation.
type MentorService interface {
	AssignMentees(ctx context.Context, req models.MentorAssignRequest) (int64, error)
	UnassignMentees(ctx context.Context, req models.MentorAssignRequest) (int64, error)
	ListMentees(ctx context.Context, mentorID int64) ([]models.MenteeView, error)
	ListMentors(ctx context.Context) ([]models.MenteeView, error)
	ListStudents(ctx context.Context) ([]models.MenteeView, error)
	GetMentorOf(ctx context.Context, userID int64) (models.MenteeView, error)
}

// NotificationService manages per-user notifications. Every method except
// Create is scoped to the calling user.
type NotificationService interface {
	Create(ctx context.Context, notification models.Notification) (models.Notification, error)
	List(ctx context.Context, userID int64) ([]models.Notification, error)
	UnreadCount(ctx context.Context, userID int64) (int, error)
	MarkRead(ctx context.Context, userID, notificationID int64) error
	MarkAllRead(ctx context.Context, userID int64) (int64, error)
	Delete(ctx context.Context, userID, notificationID int64) error
}

// ProfileService lets users manage their own account.
type ProfileService interface {
	GetProfile(ctx context.Context, userID int64) (models.User, error)
	UpdateProfile(ctx context.Context, userID int64, req models.UpdateProfileRequest) (models.User, error)

	// ChangePassword revokes every refresh token of the user on success.
	ChangePassword(ctx context.Context, userID int64, req models.ChangePasswordRequest) error
}

// StudentProfileService manages student enrolment profiles. The caller is
// read from ctx: administrators and mentors may read and write any profile,
// a user only their own. Only administrators may delete.
type StudentProfileService interface {
	Get(ctx context.Context, userID int64) (models.StudentProfile, error)
	Create(ctx context.Context, req models.StudentProfileRequest) (models.StudentProfile, error)

	// Update keeps the stored value of every empty or zero request field.
	Update(ctx context.Context, userID int64, req models.StudentProfileRequest) (models.StudentProfile, error)
	Delete(ctx context.Context, profileID int64) error
}

// AccessPolicy decides whether a live role may reach a route.
type AccessPolicy interface {
	// Allowed reports whether role satisfies every rule matching method and
	// path. A request matching no rule is allowed.
	Allowed(method, path string, role models.Role) bool
}

type AppInfoService interface {
	GetAppVersion(ctx context.Context) string
	GetBuildInfo(ctx context.Context) models.VersionInfo
}
