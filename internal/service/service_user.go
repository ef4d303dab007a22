package service

import (
	"context"
	"errors"
	"fmt"
	"net/mail"
	"strings"
	"time"

	"github.com/MKhiriev/mentor-hub/internal/events"
	"github.com/MKhiriev/mentor-hub/internal/logger"
	"github.com/MKhiriev/mentor-hub/internal/store"
	"github.com/MKhiriev/mentor-hub/internal/utils"
	"github.com/MKhiriev/mentor-hub/models"
)

type userService struct {
	userRepository  store.UserRepository
	tokenRepository store.RefreshTokenRepository
	publisher       events.Publisher

	now    func() time.Time
	logger *logger.Logger
}

// NewUserService constructs the administrator's [UserService].
func NewUserService(storages *store.Storages, publisher events.Publisher, logger *logger.Logger) UserService {
	return &userService{
		userRepository:  storages.UserRepository,
		tokenRepository: storages.RefreshTokenRepository,
		publisher:       publisher,
		now:             time.Now,
		logger:          logger,
	}
}

// AddUser provisions an invited account. The account is whitelisted and
// has no password until its owner registers.
func (s *userService) AddUser(ctx context.Context, req models.AddUserRequest) (models.User, error) {
	email := normalizeEmail(req.Email)
	if email == "" {
		return models.User{}, ErrEmailRequired
	}
	if _, err := mail.ParseAddress(email); err != nil {
		return models.User{}, ErrInvalidEmail
	}

	role := models.RoleUser
	if strings.TrimSpace(req.Role) != "" {
		parsed, ok := models.ParseRole(req.Role)
		if !ok {
			return models.User{}, ErrInvalidRole
		}
		role = parsed
	}

	created, err := s.userRepository.CreateUser(ctx, models.User{
		Email:         email,
		FullName:      strings.TrimSpace(req.FullName),
		Role:          role,
		IsWhitelisted: true,
	})
	if err != nil {
		if errors.Is(err, store.ErrEmailAlreadyExists) {
			return models.User{}, ErrEmailAlreadyExists
		}
		return models.User{}, fmt.Errorf("user creation ended with error: %w", err)
	}

	s.publish(ctx, events.UserEvent{Type: events.TypeUserAdded, UserID: created.UserID, Email: created.Email, Role: created.Role})
	logger.FromContext(ctx).Info().Str("func", "*userService.AddUser").Int64("user_id", created.UserID).Msg("user provisioned")

	return created, nil
}

func (s *userService) ListUsers(ctx context.Context, filter models.UserFilter) ([]models.User, error) {
	if filter.Role != "" {
		role, ok := models.ParseRole(string(filter.Role))
		if !ok {
			return nil, ErrInvalidRole
		}
		filter.Role = role
	}

	users, err := s.userRepository.ListUsers(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("user listing failed: %w", err)
	}

	return users, nil
}

func (s *userService) GetUser(ctx context.Context, userID int64) (models.User, error) {
	if userID <= 0 {
		return models.User{}, ErrInvalidUserID
	}

	user, err := s.userRepository.FindUserByID(ctx, userID)
	if err != nil {
		return models.User{}, mapUserLookupError(err)
	}

	return user, nil
}

// RemoveUser deletes the account. Its mentees are detached first; its
// refresh tokens and notifications go with it.
func (s *userService) RemoveUser(ctx context.Context, userID int64) error {
	user, err := s.GetUser(ctx, userID)
	if err != nil {
		return err
	}

	if err = s.userRepository.DeleteUser(ctx, userID); err != nil {
		return mapUserLookupError(err)
	}

	s.publish(ctx, events.UserEvent{Type: events.TypeUserRemoved, UserID: user.UserID, Email: user.Email, Role: user.Role})
	return nil
}

// BlockUser blocks the account and revokes all of its refresh tokens.
// Outstanding access tokens are refused by the role gate on their next use.
func (s *userService) BlockUser(ctx context.Context, userID int64) error {
	log := logger.FromContext(ctx)

	user, err := s.GetUser(ctx, userID)
	if err != nil {
		return err
	}

	if err = s.userRepository.SetBlocked(ctx, userID, true); err != nil {
		return mapUserLookupError(err)
	}

	revoked, err := s.tokenRepository.RevokeAllUserTokens(ctx, userID)
	if err != nil {
		return fmt.Errorf("revoking tokens of blocked user failed: %w", err)
	}

	log.Info().Str("func", "*userService.BlockUser").
		Int64("user_id", userID).
		Int64("revoked_tokens", revoked).
		Msg("user blocked")
	s.publish(ctx, events.UserEvent{Type: events.TypeUserBlocked, UserID: user.UserID, Email: user.Email, Role: user.Role})

	return nil
}

func (s *userService) UnblockUser(ctx context.Context, userID int64) error {
	user, err := s.GetUser(ctx, userID)
	if err != nil {
		return err
	}

	if err = s.userRepository.SetBlocked(ctx, userID, false); err != nil {
		return mapUserLookupError(err)
	}

	s.publish(ctx, events.UserEvent{Type: events.TypeUserUnblocked, UserID: user.UserID, Email: user.Email, Role: user.Role})
	return nil
}

// UpdateRole changes the role of the account and returns the updated record.
// The new role applies to the very next request of the user.
func (s *userService) UpdateRole(ctx context.Context, userID int64, role string) (models.User, error) {
	parsed, ok := models.ParseRole(role)
	if !ok {
		return models.User{}, ErrInvalidRole
	}
	if userID <= 0 {
		return models.User{}, ErrInvalidUserID
	}

	if err := s.userRepository.UpdateRole(ctx, userID, parsed); err != nil {
		return models.User{}, mapUserLookupError(err)
	}

	user, err := s.GetUser(ctx, userID)
	if err != nil {
		return models.User{}, err
	}

	s.publish(ctx, events.UserEvent{Type: events.TypeUserRoleChanged, UserID: user.UserID, Email: user.Email, Role: user.Role})
	return user, nil
}

func (s *userService) publish(ctx context.Context, event events.UserEvent) {
	publishEvent(ctx, s.publisher, event, s.now().UTC())
}

func mapUserLookupError(err error) error {
	if errors.Is(err, store.ErrNoUserWasFound) {
		return ErrUserNotFound
	}
	return fmt.Errorf("user storage failure: %w", err)
}

// publishEvent sends event and only logs failures. The acting user is taken
// from ctx when the request is authenticated.
func publishEvent(ctx context.Context, publisher events.Publisher, event events.UserEvent, now time.Time) {
	if publisher == nil {
		return
	}
	if event.ActorID == 0 {
		if actorID, ok := utils.GetUserIDFromContext(ctx); ok {
			event.ActorID = actorID
		}
	}
	if event.OccurredAt.IsZero() {
		event.OccurredAt = now
	}

	if err := publisher.Publish(ctx, event); err != nil {
		logger.FromContext(ctx).Warn().Err(err).
			Str("func", "publishEvent").
			Str("type", event.Type).
			Int64("user_id", event.UserID).
			Msg("failed to publish event")
	}
}
