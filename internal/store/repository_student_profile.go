package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/MKhiriev/mentor-hub/internal/logger"
	"github.com/MKhiriev/mentor-hub/models"
	"github.com/georgysavva/scany/v2/sqlscan"
	"github.com/jackc/pgerrcode"
)

type studentProfileRepository struct {
	logger *logger.Logger
	db     *DB
}

// NewStudentProfileRepository constructs a [StudentProfileRepository] backed
// by the provided database connection and logger.
func NewStudentProfileRepository(db *DB, logger *logger.Logger) StudentProfileRepository {
	logger.Debug().Msg("creating student profile repository")
	return &studentProfileRepository{
		db:     db,
		logger: logger,
	}
}

// CreateStudentProfile inserts p. The unique user_id column rejects a second
// profile; the foreign key rejects an unknown user.
func (r *studentProfileRepository) CreateStudentProfile(ctx context.Context, p models.StudentProfile) (models.StudentProfile, error) {
	log := logger.FromContext(ctx)

	err := r.db.QueryRowContext(ctx, createStudentProfile, profileArgs(p)...).Scan(&p.ID, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		switch postgresError(err) {
		case pgerrcode.UniqueViolation:
			return models.StudentProfile{}, ErrStudentProfileExists
		case pgerrcode.ForeignKeyViolation:
			return models.StudentProfile{}, ErrNoUserWasFound
		}

		log.Err(err).Str("func", "*studentProfileRepository.CreateStudentProfile").
			Int64("user_id", p.UserID).
			Msg("failed to insert student profile")
		return models.StudentProfile{}, fmt.Errorf("%w: %w", ErrScanningRow, err)
	}

	return p, nil
}

func (r *studentProfileRepository) FindStudentProfileByUserID(ctx context.Context, userID int64) (models.StudentProfile, error) {
	log := logger.FromContext(ctx)

	var p models.StudentProfile
	if err := sqlscan.Get(ctx, r.db, &p, findStudentProfileByUserID, userID); err != nil {
		if sqlscan.NotFound(err) {
			return models.StudentProfile{}, ErrStudentProfileNotFound
		}

		log.Err(err).Str("func", "*studentProfileRepository.FindStudentProfileByUserID").Int64("user_id", userID).Msg("failed to find student profile")
		return models.StudentProfile{}, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	return p, nil
}

func (r *studentProfileRepository) UpdateStudentProfile(ctx context.Context, p models.StudentProfile) (models.StudentProfile, error) {
	log := logger.FromContext(ctx)

	args := profileArgs(p)
	args[len(args)-1] = p.UpdatedAt

	err := r.db.QueryRowContext(ctx, updateStudentProfile, args...).Scan(&p.ID, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.StudentProfile{}, ErrStudentProfileNotFound
		}

		log.Err(err).Str("func", "*studentProfileRepository.UpdateStudentProfile").
			Int64("user_id", p.UserID).
			Msg("failed to update student profile")
		return models.StudentProfile{}, fmt.Errorf("%w: %w", ErrScanningRow, err)
	}

	return p, nil
}

func (r *studentProfileRepository) DeleteStudentProfile(ctx context.Context, profileID int64) error {
	log := logger.FromContext(ctx)

	res, err := r.db.ExecContext(ctx, deleteStudentProfile, profileID)
	if err != nil {
		log.Err(err).Str("func", "*studentProfileRepository.DeleteStudentProfile").Int64("profile_id", profileID).Msg("failed to delete student profile")
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrStudentProfileNotFound
	}

	return nil
}

// profileArgs lists the positional arguments shared by the insert and update
// statements. The last one is the write time.
func profileArgs(p models.StudentProfile) []any {
	return []any{
		p.UserID, p.Email, p.Phone, p.Address, p.Branch, p.Space, p.Week,
		p.Advisor, p.Mentor, p.Qualification, p.Institution, p.PassOutYear,
		p.GuardianName, p.GuardianRelationship, p.GuardianPhone, p.CreatedAt,
	}
}
