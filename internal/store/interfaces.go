package store

import (
	"context"
	"time"

	"github.com/MKhiriev/mentor-hub/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/store_mock.go -package=mock

// UserRepository persists user accounts and the mentor relation between them.
// Emails are compared case-insensitively.
type UserRepository interface {
	// CreateUser inserts a provisioned (invited) account.
	CreateUser(ctx context.Context, user models.User) (models.User, error)
	FindUserByEmail(ctx context.Context, email string) (models.User, error)
	FindUserByID(ctx context.Context, userID int64) (models.User, error)
	ListUsers(ctx context.Context, filter models.UserFilter) ([]models.User, error)

	// CompleteRegistration sets the password hash only if none is set yet.
	// Returns [ErrAlreadyRegistered] when another request won.
	CompleteRegistration(ctx context.Context, userID int64, passwordHash string) error
	UpdatePasswordHash(ctx context.Context, userID int64, passwordHash string) error
	UpdateProfile(ctx context.Context, userID int64, fullName, email string) (models.User, error)
	SetBlocked(ctx context.Context, userID int64, blocked bool) error
	UpdateRole(ctx context.Context, userID int64, role models.Role) error

	// DeleteUser detaches the user's mentees and deletes the user in one
	// transaction. Refresh tokens and notifications cascade.
	DeleteUser(ctx context.Context, userID int64) error

	AssignMentor(ctx context.Context, mentorID int64, userIDs []int64) (int64, error)
	UnassignMentor(ctx context.Context, mentorID int64, userIDs []int64) (int64, error)
	ListMentees(ctx context.Context, mentorID int64) ([]models.MenteeView, error)
	ListMentors(ctx context.Context) ([]models.MenteeView, error)
	ListStudents(ctx context.Context) ([]models.MenteeView, error)
}

// RefreshTokenRepository persists refresh tokens by their digest.
type RefreshTokenRepository interface {
	CreateRefreshToken(ctx context.Context, token models.RefreshToken) (models.RefreshToken, error)
	FindRefreshTokenByHash(ctx context.Context, tokenHash string) (models.RefreshToken, error)

	// RotateRefreshToken revokes the token with oldID and inserts replacement
	// in one transaction. The revocation only succeeds if the token was not
	// revoked yet; otherwise [ErrRefreshTokenAlreadyRevoked] is returned and
	// nothing is inserted.
	RotateRefreshToken(ctx context.Context, oldID int64, replacement models.RefreshToken) (models.RefreshToken, error)

	// RevokeRefreshToken marks the token revoked. Revoking a revoked token
	// is not an error.
	RevokeRefreshToken(ctx context.Context, tokenID int64) error
	RevokeAllUserTokens(ctx context.Context, userID int64) (int64, error)

	// DeleteStaleTokens removes tokens that were revoked or expired before
	// the given moment.
	DeleteStaleTokens(ctx context.Context, before time.Time) (int64, error)
}

// NotificationRepository persists per-user notifications.
// Every mutating call is scoped by owner.
type NotificationRepository interface {
	CreateNotification(ctx context.Context, notification models.Notification) (models.Notification, error)
	CreateNotifications(ctx context.Context, notifications []models.Notification) error
	ListNotifications(ctx context.Context, userID int64) ([]models.Notification, error)
	CountUnread(ctx context.Context, userID int64) (int, error)
	MarkRead(ctx context.Context, userID, notificationID int64, at time.Time) error
	MarkAllRead(ctx context.Context, userID int64, at time.Time) (int64, error)
	DeleteNotification(ctx context.Context, userID, notificationID int64) error
}

// StudentProfileRepository persists student profiles, one per user.
type StudentProfileRepository interface {
	// CreateStudentProfile returns [ErrStudentProfileExists] when the user
	// already has a profile and [ErrNoUserWasFound] when the user is gone.
	CreateStudentProfile(ctx context.Context, profile models.StudentProfile) (models.StudentProfile, error)
	FindStudentProfileByUserID(ctx context.Context, userID int64) (models.StudentProfile, error)

	// UpdateStudentProfile overwrites every field of the profile owned by
	// profile.UserID.
	UpdateStudentProfile(ctx context.Context, profile models.StudentProfile) (models.StudentProfile, error)
	DeleteStudentProfile(ctx context.Context, profileID int64) error
}

// HealthChecker reports whether the storage backend is reachable.
type HealthChecker interface {
	Ping(ctx context.Context) error
}
