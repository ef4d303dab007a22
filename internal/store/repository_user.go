package store

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/MKhiriev/mentor-hub/internal/logger"
	"github.com/MKhiriev/mentor-hub/models"
	sq "github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/sqlscan"
	"github.com/jackc/pgerrcode"
)

// userRepository is the PostgreSQL-backed implementation of [UserRepository].
//
// All methods obtain a context-scoped logger via [logger.FromContext] for
// structured, request-level tracing of database interactions.
type userRepository struct {
	logger *logger.Logger
	db     *DB
}

// NewUserRepository constructs a [UserRepository] backed by the provided
// database connection and logger.
func NewUserRepository(db *DB, logger *logger.Logger) UserRepository {
	logger.Debug().Msg("creating user repository")
	return &userRepository{
		db:     db,
		logger: logger,
	}
}

// CreateUser persists a provisioned account and returns it with the
// server-assigned fields populated.
//
// Error handling:
//   - PostgreSQL unique_violation (23505) → [ErrEmailAlreadyExists].
//   - Any other driver-level error → wrapped as "unexpected DB error".
func (r *userRepository) CreateUser(ctx context.Context, user models.User) (models.User, error) {
	log := logger.FromContext(ctx)

	var created models.User
	err := sqlscan.Get(ctx, r.db, &created, createUser, user.Email, user.FullName, user.Role, user.IsWhitelisted)
	if err != nil {
		log.Err(err).Str("func", "*userRepository.CreateUser").Msg("error creating user")

		switch postgresError(err) {
		case pgerrcode.UniqueViolation:
			return models.User{}, ErrEmailAlreadyExists
		default:
			return models.User{}, fmt.Errorf("unexpected DB error: %w", err)
		}
	}

	return created, nil
}

// FindUserByEmail looks the user up by email, ignoring letter case.
func (r *userRepository) FindUserByEmail(ctx context.Context, email string) (models.User, error) {
	return r.findOne(ctx, "*userRepository.FindUserByEmail", findUserByEmail, strings.TrimSpace(email))
}

// FindUserByID looks the user up by primary key.
func (r *userRepository) FindUserByID(ctx context.Context, userID int64) (models.User, error) {
	return r.findOne(ctx, "*userRepository.FindUserByID", findUserByID, userID)
}

func (r *userRepository) findOne(ctx context.Context, funcName, query string, arg any) (models.User, error) {
	log := logger.FromContext(ctx)

	var user models.User
	if err := sqlscan.Get(ctx, r.db, &user, query, arg); err != nil {
		if sqlscan.NotFound(err) {
			return models.User{}, ErrNoUserWasFound
		}

		log.Err(err).Str("func", funcName).Msg("error finding user")
		return models.User{}, fmt.Errorf("unexpected DB error: %w", err)
	}

	return user, nil
}

// ListUsers returns users matching filter ordered by id.
func (r *userRepository) ListUsers(ctx context.Context, filter models.UserFilter) ([]models.User, error) {
	log := logger.FromContext(ctx)

	query, args, err := buildListUsersQuery(filter)
	if err != nil {
		log.Err(err).Str("func", "*userRepository.ListUsers").Msg("failed to build query")
		return nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	users := make([]models.User, 0)
	if err = sqlscan.Select(ctx, r.db, &users, query, args...); err != nil {
		log.Err(err).Str("func", "*userRepository.ListUsers").Msg("failed to list users")
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	return users, nil
}

func buildListUsersQuery(filter models.UserFilter) (string, []any, error) {
	builder := psql.Select(strings.Fields(strings.ReplaceAll(userColumns, ",", " "))...).
		From("users").
		OrderBy("user_id")

	if filter.Role != "" {
		builder = builder.Where(sq.Eq{"role": filter.Role})
	}
	if filter.Blocked != nil {
		builder = builder.Where(sq.Eq{"is_blocked": *filter.Blocked})
	}
	if search := strings.TrimSpace(filter.Search); search != "" {
		pattern := "%" + search + "%"
		builder = builder.Where(sq.Or{
			sq.ILike{"email": pattern},
			sq.ILike{"full_name": pattern},
		})
	}

	return builder.ToSql()
}

// CompleteRegistration sets the password hash of an invited user. The
// update is conditional on the hash still being NULL so an account is
// registered exactly once.
func (r *userRepository) CompleteRegistration(ctx context.Context, userID int64, passwordHash string) error {
	affected, err := r.exec(ctx, "*userRepository.CompleteRegistration", completeRegistration, userID, passwordHash)
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrAlreadyRegistered
	}

	return nil
}

// UpdatePasswordHash replaces the password hash of an existing user.
func (r *userRepository) UpdatePasswordHash(ctx context.Context, userID int64, passwordHash string) error {
	return r.execOne(ctx, "*userRepository.UpdatePasswordHash", updatePasswordHash, userID, passwordHash)
}

// UpdateProfile changes the name and email of a user.
//
// Error handling:
//   - no such user → [ErrNoUserWasFound].
//   - email taken  → [ErrEmailAlreadyExists].
func (r *userRepository) UpdateProfile(ctx context.Context, userID int64, fullName, email string) (models.User, error) {
	log := logger.FromContext(ctx)

	var user models.User
	err := sqlscan.Get(ctx, r.db, &user, updateProfile, userID, fullName, email)
	if err != nil {
		if sqlscan.NotFound(err) {
			return models.User{}, ErrNoUserWasFound
		}

		log.Err(err).Str("func", "*userRepository.UpdateProfile").Int64("user_id", userID).Msg("error updating profile")
		if postgresError(err) == pgerrcode.UniqueViolation {
			return models.User{}, ErrEmailAlreadyExists
		}
		return models.User{}, fmt.Errorf("unexpected DB error: %w", err)
	}

	return user, nil
}

// SetBlocked sets or clears the blocked flag.
func (r *userRepository) SetBlocked(ctx context.Context, userID int64, blocked bool) error {
	return r.execOne(ctx, "*userRepository.SetBlocked", setBlocked, userID, blocked)
}

// UpdateRole changes the role of a user.
func (r *userRepository) UpdateRole(ctx context.Context, userID int64, role models.Role) error {
	return r.execOne(ctx, "*userRepository.UpdateRole", updateRole, userID, role)
}

// DeleteUser detaches all mentees of the user and deletes the user in one
// transaction, so mentees are never deleted along with their mentor.
func (r *userRepository) DeleteUser(ctx context.Context, userID int64) error {
	log := logger.FromContext(ctx)

	return r.db.inTx(ctx, "*userRepository.DeleteUser", func(tx *sql.Tx) error {
		detached, err := tx.ExecContext(ctx, detachMentees, userID)
		if err != nil {
			log.Err(err).Str("func", "*userRepository.DeleteUser").Int64("user_id", userID).Msg("failed to detach mentees")
			return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
		}

		res, err := tx.ExecContext(ctx, deleteUser, userID)
		if err != nil {
			log.Err(err).Str("func", "*userRepository.DeleteUser").Int64("user_id", userID).Msg("failed to delete user")
			return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
		}
		if n, _ := res.RowsAffected(); n == 0 {
			return ErrNoUserWasFound
		}

		mentees, _ := detached.RowsAffected()
		log.Info().Str("func", "*userRepository.DeleteUser").
			Int64("user_id", userID).
			Int64("detached_mentees", mentees).
			Msg("user deleted")
		return nil
	})
}

// AssignMentor sets mentorID as the mentor of every listed user, skipping
// the mentor itself. Returns the number of updated users.
func (r *userRepository) AssignMentor(ctx context.Context, mentorID int64, userIDs []int64) (int64, error) {
	query, args, err := psql.Update("users").
		Set("mentor_id", mentorID).
		Set("updated_at", sq.Expr("NOW()")).
		Where(sq.Eq{"user_id": userIDs}).
		Where(sq.NotEq{"user_id": mentorID}).
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	affected, err := r.exec(ctx, "*userRepository.AssignMentor", query, args...)
	if err != nil && postgresError(err) == pgerrcode.ForeignKeyViolation {
		return 0, ErrMentorReference
	}

	return affected, err
}

// UnassignMentor clears the mentor of the listed users, but only of those
// currently mentored by mentorID.
func (r *userRepository) UnassignMentor(ctx context.Context, mentorID int64, userIDs []int64) (int64, error) {
	query, args, err := psql.Update("users").
		Set("mentor_id", nil).
		Set("updated_at", sq.Expr("NOW()")).
		Where(sq.Eq{"user_id": userIDs}).
		Where(sq.Eq{"mentor_id": mentorID}).
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	return r.exec(ctx, "*userRepository.UnassignMentor", query, args...)
}

// ListMentees returns users mentored by mentorID ordered by name.
func (r *userRepository) ListMentees(ctx context.Context, mentorID int64) ([]models.MenteeView, error) {
	return r.selectViews(ctx, "*userRepository.ListMentees", listMentees, mentorID)
}

// ListMentors returns unblocked users with the Mentor role ordered by name.
func (r *userRepository) ListMentors(ctx context.Context) ([]models.MenteeView, error) {
	return r.selectViews(ctx, "*userRepository.ListMentors", listMentors)
}

// ListStudents returns users with the User role along with their mentor's name.
func (r *userRepository) ListStudents(ctx context.Context) ([]models.MenteeView, error) {
	return r.selectViews(ctx, "*userRepository.ListStudents", listStudents)
}

func (r *userRepository) selectViews(ctx context.Context, funcName, query string, args ...any) ([]models.MenteeView, error) {
	log := logger.FromContext(ctx)

	views := make([]models.MenteeView, 0)
	if err := sqlscan.Select(ctx, r.db, &views, query, args...); err != nil {
		log.Err(err).Str("func", funcName).Msg("failed to execute query")
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	return views, nil
}

// exec runs a statement and returns the number of affected rows.
func (r *userRepository) exec(ctx context.Context, funcName, query string, args ...any) (int64, error) {
	log := logger.FromContext(ctx)

	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		log.Err(err).Str("func", funcName).Msg("failed to execute statement")
		return 0, fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	return affected, nil
}

// execOne runs a statement that must touch exactly one user.
func (r *userRepository) execOne(ctx context.Context, funcName, query string, args ...any) error {
	affected, err := r.exec(ctx, funcName, query, args...)
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrNoUserWasFound
	}

	return nil
}
