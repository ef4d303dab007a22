package service

import "errors"

// Error kinds. Every [Error] unwraps to exactly one of them, so the
// transport layer can pick a status code with [errors.Is].
var (
	ErrValidation      = errors.New("validation error")
	ErrNotFound        = errors.New("not found")
	ErrConflict        = errors.New("conflict")
	ErrUnauthenticated = errors.New("unauthenticated")
	ErrForbidden       = errors.New("forbidden")
)

// Error is a failure with a message that is safe to show to the client.
type Error struct {
	Kind    error
	Message string
}

func newError(kind error, message string) *Error {
	return &Error{Kind: kind, Message: message}
}

func (e *Error) Error() string {
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Kind
}

// Authentication failures.
var (
	ErrEmailRequired       = newError(ErrValidation, "Email is required.")
	ErrPasswordRequired    = newError(ErrValidation, "Password is required.")
	ErrPasswordsDoNotMatch = newError(ErrValidation, "Passwords do not match.")
	ErrPasswordTooShort    = newError(ErrValidation, "Password must be at least 6 characters long.")
	ErrPasswordTooLong     = newError(ErrValidation, "Password must be at most 72 bytes long.")

	ErrEmailNotInSystem  = newError(ErrNotFound, "Email not found in system. Please contact admin to add your email.")
	ErrAlreadyRegistered = newError(ErrConflict, "This email is already registered. Please login.")
	ErrNotWhitelisted    = newError(ErrForbidden, "This email is not authorized to register. Contact admin.")

	ErrEmailNotFound   = newError(ErrNotFound, "Email not found. Please check your email or register first.")
	ErrAccountNotSetUp = newError(ErrUnauthenticated, "Account not set up. Please register first.")
	ErrInvalidPassword = newError(ErrUnauthenticated, "Invalid password. Please try again.")
	ErrUserBlocked     = newError(ErrForbidden, "Your account has been blocked. Please contact admin.")

	ErrInvalidRefreshToken = newError(ErrUnauthenticated, "Invalid token")
	ErrRefreshTokenExpired = newError(ErrUnauthenticated, "Token invalid or expired")
	ErrInvalidAccessToken  = newError(ErrUnauthenticated, "Access token is invalid or expired")

	ErrFederatedLoginDenied = newError(ErrForbidden, "This email cannot register. Contact admin.")
	ErrUsePasswordLogin     = newError(ErrConflict, "Please use email and password to login")
	ErrInvalidIDToken       = newError(ErrUnauthenticated, "Identity token could not be verified")
)

// Account management failures.
var (
	ErrUserNotFound       = newError(ErrNotFound, "User not found")
	ErrInvalidEmail       = newError(ErrValidation, "Email is not valid.")
	ErrInvalidRole        = newError(ErrValidation, "Role must be one of Admin, Mentor, User.")
	ErrInvalidUserID      = newError(ErrValidation, "User id must be a positive number.")
	ErrEmailAlreadyExists = newError(ErrConflict, "A user with this email already exists.")
	ErrEmailTaken         = newError(ErrConflict, "Email already taken")
	ErrFullNameRequired   = newError(ErrValidation, "Full name is required.")
	ErrCurrentPassword    = newError(ErrValidation, "Current password incorrect")
)

// Mentor and notification failures.
var (
	ErrMentorNotFound     = newError(ErrNotFound, "Mentor not found")
	ErrNotAMentor         = newError(ErrValidation, "Selected user is not a mentor")
	ErrNoUsersSelected    = newError(ErrValidation, "At least one user must be selected.")
	ErrMentorSelfAssigned = newError(ErrValidation, "A mentor cannot mentor themselves.")
	ErrMentorCycle        = newError(ErrValidation, "A mentor cannot be assigned their own mentor.")
	ErrNoMentorAssigned   = newError(ErrNotFound, "No mentor is assigned to you yet.")

	ErrNotificationNotFound = newError(ErrNotFound, "Notification not found")
	ErrNotificationInvalid  = newError(ErrValidation, "Notification title and message are required.")
)

// Student profile failures.
var (
	ErrProfileNotFound        = newError(ErrNotFound, "Profile not found")
	ErrProfileExists          = newError(ErrConflict, "Profile already exists for this user")
	ErrProfileUserNotFound    = newError(ErrNotFound, "User does not exist")
	ErrProfileForbidden       = newError(ErrForbidden, "You can only access your own profile.")
	ErrProfileDeleteForbidden = newError(ErrForbidden, "Only administrators can delete profiles.")
	ErrProfileEmailRequired   = newError(ErrValidation, "Email is required")
	ErrProfileWeekRange       = newError(ErrValidation, "Week must be between 0 and 52")
	ErrProfilePassOutYear     = newError(ErrValidation, "Pass out year must be between 1900 and 2100")
	ErrNoIdentity             = newError(ErrUnauthenticated, "Authentication required")
)

// Internal failures. These never reach the client verbatim.
var (
	ErrTokenCreationFailed   = errors.New("token creation failed")
	ErrVersionIsNotSpecified = errors.New("application version is not specified")
)
