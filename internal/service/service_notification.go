package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/MKhiriev/mentor-hub/internal/logger"
	"github.com/MKhiriev/mentor-hub/internal/store"
	"github.com/MKhiriev/mentor-hub/models"
)

type notificationService struct {
	notificationRepository store.NotificationRepository
	userRepository         store.UserRepository

	now    func() time.Time
	logger *logger.Logger
}

// NewNotificationService constructs a [NotificationService].
func NewNotificationService(storages *store.Storages, logger *logger.Logger) NotificationService {
	return &notificationService{
		notificationRepository: storages.NotificationRepository,
		userRepository:         storages.UserRepository,
		now:                    time.Now,
		logger:                 logger,
	}
}

// Create stores a notification for an existing user. The type defaults to
// "system".
func (s *notificationService) Create(ctx context.Context, n models.Notification) (models.Notification, error) {
	n.Title = strings.TrimSpace(n.Title)
	n.Message = strings.TrimSpace(n.Message)
	n.Type = strings.TrimSpace(n.Type)
	if n.Title == "" || n.Message == "" {
		return models.Notification{}, ErrNotificationInvalid
	}
	if n.UserID <= 0 {
		return models.Notification{}, ErrInvalidUserID
	}
	if n.Type == "" {
		n.Type = models.NotificationTypeSystem
	}

	if _, err := s.userRepository.FindUserByID(ctx, n.UserID); err != nil {
		return models.Notification{}, mapUserLookupError(err)
	}

	n.CreatedAt = s.now().UTC()
	created, err := s.notificationRepository.CreateNotification(ctx, n)
	if err != nil {
		return models.Notification{}, fmt.Errorf("notification creation failed: %w", err)
	}

	return created, nil
}

func (s *notificationService) List(ctx context.Context, userID int64) ([]models.Notification, error) {
	list, err := s.notificationRepository.ListNotifications(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("notification listing failed: %w", err)
	}
	return list, nil
}

func (s *notificationService) UnreadCount(ctx context.Context, userID int64) (int, error) {
	count, err := s.notificationRepository.CountUnread(ctx, userID)
	if err != nil {
		return 0, fmt.Errorf("unread count failed: %w", err)
	}
	return count, nil
}

func (s *notificationService) MarkRead(ctx context.Context, userID, notificationID int64) error {
	err := s.notificationRepository.MarkRead(ctx, userID, notificationID, s.now().UTC())
	return mapNotificationError(err)
}

func (s *notificationService) MarkAllRead(ctx context.Context, userID int64) (int64, error) {
	n, err := s.notificationRepository.MarkAllRead(ctx, userID, s.now().UTC())
	if err != nil {
		return 0, fmt.Errorf("mark all read failed: %w", err)
	}

	logger.FromContext(ctx).Debug().Str("func", "*notificationService.MarkAllRead").
		Int64("user_id", userID).
		Int64("marked", n).
		Msg("notifications marked read")
	return n, nil
}

func (s *notificationService) Delete(ctx context.Context, userID, notificationID int64) error {
	return mapNotificationError(s.notificationRepository.DeleteNotification(ctx, userID, notificationID))
}

func mapNotificationError(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, store.ErrNotificationNotFound):
		return ErrNotificationNotFound
	default:
		return fmt.Errorf("notification storage failure: %w", err)
	}
}
