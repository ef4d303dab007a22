package store

import "errors"

// Sentinel errors returned by repository methods to signal well-known failure
// conditions. Callers should use [errors.Is] to match against these values.
var (
	// ErrEmailAlreadyExists is returned when an insert or update would give
	// two users the same email.
	ErrEmailAlreadyExists = errors.New("email already exists")

	// ErrNoUserWasFound is returned when a query expected to match a user
	// record produces an empty result set.
	ErrNoUserWasFound = errors.New("no user was found")

	// ErrAlreadyRegistered is returned when registration completion finds
	// the password hash already set.
	ErrAlreadyRegistered = errors.New("user is already registered")

	// ErrMentorReference is returned when a mentor assignment references
	// a missing user or the user themselves.
	ErrMentorReference = errors.New("invalid mentor reference")

	// ErrRefreshTokenNotFound is returned when no refresh token matches the
	// presented digest.
	ErrRefreshTokenNotFound = errors.New("refresh token was not found")

	// ErrRefreshTokenAlreadyRevoked is returned by rotation when the token
	// was revoked concurrently or before the call.
	ErrRefreshTokenAlreadyRevoked = errors.New("refresh token is already revoked")

	// ErrNotificationNotFound is returned when a notification does not exist
	// or belongs to another user.
	ErrNotificationNotFound = errors.New("notification was not found")

	// ErrStudentProfileExists is returned when the user already has a
	// student profile.
	ErrStudentProfileExists = errors.New("student profile already exists")

	// ErrStudentProfileNotFound is returned when no student profile matches
	// the user or profile id.
	ErrStudentProfileNotFound = errors.New("student profile was not found")
)

// Low-level database operation errors. These are returned (or wrapped) by
// repository methods when a SQL-level operation fails before any domain logic
// can be applied.
var (
	// ErrBuildingSQLQuery is returned when constructing a SQL query fails.
	ErrBuildingSQLQuery = errors.New("error building sql query")

	// ErrExecutingQuery is returned when executing a SELECT or similar
	// read-only query against the database fails.
	ErrExecutingQuery = errors.New("error executing sql query")

	// ErrBeginningTransaction is returned when the database driver cannot
	// start a new transaction.
	ErrBeginningTransaction = errors.New("failed to begin transaction")

	// ErrCommitingTransaction is returned when committing an open transaction
	// fails. The transaction is considered rolled back at this point.
	ErrCommitingTransaction = errors.New("failed to commit transaction")

	// ErrExecutingStatement is returned when executing a DML statement
	// (INSERT, UPDATE, DELETE) fails.
	ErrExecutingStatement = errors.New("failed to executing statement")

	// ErrScanningRow is returned when scanning a result row fails.
	ErrScanningRow = errors.New("failed to scan row")
)
