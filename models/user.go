package models

import (
	"strings"
	"time"
)

// Role is the authorization role of an account.
// Stored in the database in its canonical capitalized form.
type Role string

const (
	RoleAdmin  Role = "Admin"
	RoleMentor Role = "Mentor"
	RoleUser   Role = "User"
)

// ParseRole converts a user-supplied role name into a canonical [Role].
// The comparison ignores surrounding whitespace and letter case.
func ParseRole(s string) (Role, bool) {
	switch NormalizeRole(s) {
	case "admin":
		return RoleAdmin, true
	case "mentor":
		return RoleMentor, true
	case "user":
		return RoleUser, true
	default:
		return "", false
	}
}

// NormalizeRole trims and lower-cases a role name for policy comparisons.
func NormalizeRole(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// Normalized returns the policy form of r (e.g. "admin").
func (r Role) Normalized() string {
	return NormalizeRole(string(r))
}

// AccountStatus is the authentication state of a user account.
type AccountStatus int

const (
	// AccountStatusInvited means an administrator provisioned the account
	// but the user has not completed registration (no password yet).
	AccountStatusInvited AccountStatus = iota
	// AccountStatusActive means the account has a password and may log in.
	AccountStatusActive
	// AccountStatusBlocked means the account has a password but an
	// administrator has blocked it.
	AccountStatusBlocked
)

func (s AccountStatus) String() string {
	switch s {
	case AccountStatusInvited:
		return "invited"
	case AccountStatusActive:
		return "active"
	case AccountStatusBlocked:
		return "blocked"
	default:
		return "unknown"
	}
}

// User represents an account of the mentoring program.
// Sensitive fields must never be exposed outside trusted boundaries.
type User struct {
	// UserID is the surrogate primary key.
	UserID int64 `json:"id" db:"user_id"`

	// Email is unique across all users and stored lower-case.
	Email string `json:"email" db:"email"`

	// FullName is the display name of the user.
	FullName string `json:"full_name" db:"full_name"`

	// PasswordHash is the bcrypt hash of the user's password.
	// Nil until the user completes registration.
	PasswordHash *string `json:"-" db:"password_hash"`

	Role Role `json:"role" db:"role"`

	IsBlocked     bool `json:"is_blocked" db:"is_blocked"`
	IsWhitelisted bool `json:"is_whitelisted" db:"is_whitelisted"`

	// MentorID references another user acting as this user's mentor.
	MentorID *int64 `json:"mentor_id,omitempty" db:"mentor_id"`

	ProfileImageURL *string `json:"profile_image_url,omitempty" db:"profile_image_url"`

	CreatedAt time.Time `json:"created_at" db:"created_at"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}

// TableName returns the name of the database table
// associated with the User model.
func (u User) TableName() string {
	return "users"
}

// Registered reports whether the user has completed registration.
func (u User) Registered() bool {
	return u.PasswordHash != nil && *u.PasswordHash != ""
}

// Status derives the account state from the persisted flags.
// This is the only place where the password hash is interpreted as a state.
func (u User) Status() AccountStatus {
	switch {
	case !u.Registered():
		return AccountStatusInvited
	case u.IsBlocked:
		return AccountStatusBlocked
	default:
		return AccountStatusActive
	}
}

// UserFilter narrows the admin user listing. Zero values mean "any".
type UserFilter struct {
	Role    Role   `json:"role,omitempty"`
	Blocked *bool  `json:"blocked,omitempty"`
	Search  string `json:"search,omitempty"`
}

// AddUserRequest is sent by an administrator to provision an account.
type AddUserRequest struct {
	Email    string `json:"email"`
	FullName string `json:"full_name"`
	Role     string `json:"role"`
}

// UpdateRoleRequest changes the role of an existing account.
type UpdateRoleRequest struct {
	UserID int64  `json:"user_id,omitempty"`
	Role   string `json:"role"`
}

// UpdateProfileRequest is sent by a user to edit their own profile.
type UpdateProfileRequest struct {
	FullName string `json:"full_name"`
	Email    string `json:"email"`
}

// ChangePasswordRequest is sent by a user to replace their password.
type ChangePasswordRequest struct {
	CurrentPassword string `json:"current_password"`
	NewPassword     string `json:"new_password"`
	ConfirmPassword string `json:"confirm_password"`
}
