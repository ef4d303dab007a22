package service

import (
	"context"
	"errors"
	"fmt"
	"net/mail"
	"strings"
	"time"
	"unicode/utf8"

	"dario.cat/mergo"
	"github.com/MKhiriev/mentor-hub/internal/logger"
	"github.com/MKhiriev/mentor-hub/internal/store"
	"github.com/MKhiriev/mentor-hub/internal/utils"
	"github.com/MKhiriev/mentor-hub/models"
)

const (
	maxWeek        = 52
	minPassOutYear = 1900
	maxPassOutYear = 2100
)

type studentProfileService struct {
	profileRepository store.StudentProfileRepository
	userRepository    store.UserRepository

	now    func() time.Time
	logger *logger.Logger
}

// NewStudentProfileService constructs a [StudentProfileService].
func NewStudentProfileService(storages *store.Storages, logger *logger.Logger) StudentProfileService {
	return &studentProfileService{
		profileRepository: storages.StudentProfileRepository,
		userRepository:    storages.UserRepository,
		now:               time.Now,
		logger:            logger,
	}
}

func (s *studentProfileService) Get(ctx context.Context, userID int64) (models.StudentProfile, error) {
	if err := authorizeProfileAccess(ctx, userID); err != nil {
		return models.StudentProfile{}, err
	}

	profile, err := s.profileRepository.FindStudentProfileByUserID(ctx, userID)
	if err != nil {
		return models.StudentProfile{}, mapStudentProfileError(err)
	}
	return profile, nil
}

func (s *studentProfileService) Create(ctx context.Context, req models.StudentProfileRequest) (models.StudentProfile, error) {
	log := logger.FromContext(ctx)

	if req.UserID <= 0 {
		return models.StudentProfile{}, ErrInvalidUserID
	}
	if err := authorizeProfileAccess(ctx, req.UserID); err != nil {
		return models.StudentProfile{}, err
	}

	profile := trimProfile(req.Profile())
	if err := validateStudentProfile(profile); err != nil {
		return models.StudentProfile{}, err
	}

	if _, err := s.userRepository.FindUserByID(ctx, req.UserID); err != nil {
		if errors.Is(err, store.ErrNoUserWasFound) {
			return models.StudentProfile{}, ErrProfileUserNotFound
		}
		return models.StudentProfile{}, fmt.Errorf("user storage failure: %w", err)
	}

	profile.CreatedAt = s.now().UTC()
	created, err := s.profileRepository.CreateStudentProfile(ctx, profile)
	if err != nil {
		return models.StudentProfile{}, mapStudentProfileError(err)
	}

	log.Info().Str("func", "*studentProfileService.Create").
		Int64("user_id", created.UserID).
		Int64("profile_id", created.ID).
		Msg("student profile created")
	return created, nil
}

func (s *studentProfileService) Update(ctx context.Context, userID int64, req models.StudentProfileRequest) (models.StudentProfile, error) {
	if err := authorizeProfileAccess(ctx, userID); err != nil {
		return models.StudentProfile{}, err
	}

	existing, err := s.profileRepository.FindStudentProfileByUserID(ctx, userID)
	if err != nil {
		return models.StudentProfile{}, mapStudentProfileError(err)
	}

	updated := trimProfile(req.Profile())
	updated.UserID = userID
	if err = mergo.Merge(&updated, existing); err != nil {
		return models.StudentProfile{}, fmt.Errorf("profile merge failed: %w", err)
	}
	updated.ID = existing.ID
	updated.CreatedAt = existing.CreatedAt
	updated.UpdatedAt = s.now().UTC()

	if err = validateStudentProfile(updated); err != nil {
		return models.StudentProfile{}, err
	}

	saved, err := s.profileRepository.UpdateStudentProfile(ctx, updated)
	if err != nil {
		return models.StudentProfile{}, mapStudentProfileError(err)
	}
	return saved, nil
}

func (s *studentProfileService) Delete(ctx context.Context, profileID int64) error {
	role, ok := utils.GetUserRoleFromContext(ctx)
	if !ok {
		return ErrNoIdentity
	}
	if role != models.RoleAdmin {
		return ErrProfileDeleteForbidden
	}

	if err := s.profileRepository.DeleteStudentProfile(ctx, profileID); err != nil {
		return mapStudentProfileError(err)
	}

	logger.FromContext(ctx).Info().Str("func", "*studentProfileService.Delete").
		Int64("profile_id", profileID).
		Msg("student profile deleted")
	return nil
}

// authorizeProfileAccess lets administrators and mentors through and
// restricts everybody else to the profile they own.
func authorizeProfileAccess(ctx context.Context, ownerID int64) error {
	actorID, okID := utils.GetUserIDFromContext(ctx)
	role, okRole := utils.GetUserRoleFromContext(ctx)
	if !okID || !okRole {
		return ErrNoIdentity
	}

	switch {
	case role == models.RoleAdmin, role == models.RoleMentor:
		return nil
	case actorID == ownerID:
		return nil
	default:
		return ErrProfileForbidden
	}
}

func trimProfile(p models.StudentProfile) models.StudentProfile {
	for _, field := range []*string{
		&p.Email, &p.Phone, &p.Address, &p.Branch, &p.Space, &p.Advisor, &p.Mentor,
		&p.Qualification, &p.Institution, &p.GuardianName, &p.GuardianRelationship, &p.GuardianPhone,
	} {
		*field = strings.TrimSpace(*field)
	}
	return p
}

func validateStudentProfile(p models.StudentProfile) error {
	if p.Email == "" {
		return ErrProfileEmailRequired
	}
	if _, err := mail.ParseAddress(p.Email); err != nil {
		return ErrInvalidEmail
	}

	limits := []struct {
		name  string
		value string
		max   int
	}{
		{"Email", p.Email, 100},
		{"Phone", p.Phone, 15},
		{"Address", p.Address, 500},
		{"Branch", p.Branch, 100},
		{"Space", p.Space, 100},
		{"Advisor", p.Advisor, 100},
		{"Mentor", p.Mentor, 100},
		{"Qualification", p.Qualification, 100},
		{"Institution", p.Institution, 200},
		{"Guardian name", p.GuardianName, 100},
		{"Guardian relationship", p.GuardianRelationship, 50},
		{"Guardian phone", p.GuardianPhone, 15},
	}
	for _, l := range limits {
		if utf8.RuneCountInString(l.value) > l.max {
			return newError(ErrValidation, fmt.Sprintf("%s cannot exceed %d characters", l.name, l.max))
		}
	}

	if p.Week < 0 || p.Week > maxWeek {
		return ErrProfileWeekRange
	}
	if p.PassOutYear != nil && (*p.PassOutYear < minPassOutYear || *p.PassOutYear > maxPassOutYear) {
		return ErrProfilePassOutYear
	}
	return nil
}

func mapStudentProfileError(err error) error {
	switch {
	case errors.Is(err, store.ErrStudentProfileNotFound):
		return ErrProfileNotFound
	case errors.Is(err, store.ErrStudentProfileExists):
		return ErrProfileExists
	case errors.Is(err, store.ErrNoUserWasFound):
		return ErrProfileUserNotFound
	default:
		return fmt.Errorf("student profile storage failure: %w", err)
	}
}
