package service

import (
	"context"
	"errors"
	"fmt"
	"net/mail"
	"strings"

	"github.com/MKhiriev/mentor-hub/internal/config"
	"github.com/MKhiriev/mentor-hub/internal/logger"
	"github.com/MKhiriev/mentor-hub/internal/store"
	"github.com/MKhiriev/mentor-hub/internal/utils"
	"github.com/MKhiriev/mentor-hub/models"
)

type profileService struct {
	userRepository  store.UserRepository
	tokenRepository store.RefreshTokenRepository

	bcryptCost int
	logger     *logger.Logger
}

// NewProfileService constructs a [ProfileService].
func NewProfileService(storages *store.Storages, cfg config.App, logger *logger.Logger) ProfileService {
	return &profileService{
		userRepository:  storages.UserRepository,
		tokenRepository: storages.RefreshTokenRepository,
		bcryptCost:      cfg.BcryptCost,
		logger:          logger,
	}
}

func (s *profileService) GetProfile(ctx context.Context, userID int64) (models.User, error) {
	user, err := s.userRepository.FindUserByID(ctx, userID)
	if err != nil {
		return models.User{}, mapUserLookupError(err)
	}
	return user, nil
}

// UpdateProfile changes the caller's name and email. The email must not
// belong to another account.
func (s *profileService) UpdateProfile(ctx context.Context, userID int64, req models.UpdateProfileRequest) (models.User, error) {
	fullName := strings.TrimSpace(req.FullName)
	if fullName == "" {
		return models.User{}, ErrFullNameRequired
	}

	email := normalizeEmail(req.Email)
	if email == "" {
		return models.User{}, ErrEmailRequired
	}
	if _, err := mail.ParseAddress(email); err != nil {
		return models.User{}, ErrInvalidEmail
	}

	user, err := s.userRepository.UpdateProfile(ctx, userID, fullName, email)
	if err != nil {
		if errors.Is(err, store.ErrEmailAlreadyExists) {
			return models.User{}, ErrEmailTaken
		}
		return models.User{}, mapUserLookupError(err)
	}

	return user, nil
}

// ChangePassword verifies the current password, stores the new one and
// ends every session of the user.
func (s *profileService) ChangePassword(ctx context.Context, userID int64, req models.ChangePasswordRequest) error {
	log := logger.FromContext(ctx)

	if req.CurrentPassword == "" {
		return ErrPasswordRequired
	}
	if err := validateNewPassword(req.NewPassword, req.ConfirmPassword); err != nil {
		return err
	}

	user, err := s.userRepository.FindUserByID(ctx, userID)
	if err != nil {
		return mapUserLookupError(err)
	}

	switch user.Status() {
	case models.AccountStatusInvited:
		return ErrAccountNotSetUp
	case models.AccountStatusActive, models.AccountStatusBlocked:
		ok, err := utils.CheckPassword(*user.PasswordHash, req.CurrentPassword)
		if err != nil {
			return fmt.Errorf("password verification failed: %w", err)
		}
		if !ok {
			return ErrCurrentPassword
		}
	}

	hash, err := utils.HashPassword(req.NewPassword, s.bcryptCost)
	if err != nil {
		return fmt.Errorf("password hashing failed: %w", err)
	}

	if err = s.userRepository.UpdatePasswordHash(ctx, userID, hash); err != nil {
		return mapUserLookupError(err)
	}

	revoked, err := s.tokenRepository.RevokeAllUserTokens(ctx, userID)
	if err != nil {
		return fmt.Errorf("revoking sessions failed: %w", err)
	}

	log.Info().Str("func", "*profileService.ChangePassword").
		Int64("user_id", userID).
		Int64("revoked_tokens", revoked).
		Msg("password changed")
	return nil
}
