package store

import (
	"context"
	"fmt"
	"time"

	"github.com/MKhiriev/mentor-hub/internal/logger"
	"github.com/MKhiriev/mentor-hub/models"
	"github.com/georgysavva/scany/v2/sqlscan"
)

type notificationRepository struct {
	logger *logger.Logger
	db     *DB
}

// NewNotificationRepository constructs a [NotificationRepository] backed by
// the provided database connection and logger.
func NewNotificationRepository(db *DB, logger *logger.Logger) NotificationRepository {
	logger.Debug().Msg("creating notification repository")
	return &notificationRepository{
		db:     db,
		logger: logger,
	}
}

func (r *notificationRepository) CreateNotification(ctx context.Context, n models.Notification) (models.Notification, error) {
	log := logger.FromContext(ctx)

	err := r.db.QueryRowContext(ctx, createNotification, n.UserID, n.Title, n.Message, n.Type, n.CreatedAt).Scan(&n.ID)
	if err != nil {
		log.Err(err).Str("func", "*notificationRepository.CreateNotification").
			Int64("user_id", n.UserID).
			Msg("failed to insert notification")
		return models.Notification{}, fmt.Errorf("%w: %w", ErrScanningRow, err)
	}

	n.IsRead = false
	n.ReadAt = nil
	return n, nil
}

// CreateNotifications inserts all notifications with a single multi-row
// INSERT. An empty slice is a no-op.
func (r *notificationRepository) CreateNotifications(ctx context.Context, notifications []models.Notification) error {
	if len(notifications) == 0 {
		return nil
	}

	log := logger.FromContext(ctx)

	builder := psql.Insert("notifications").Columns("user_id", "title", "message", "type", "created_at")
	for _, n := range notifications {
		builder = builder.Values(n.UserID, n.Title, n.Message, n.Type, n.CreatedAt)
	}

	query, args, err := builder.ToSql()
	if err != nil {
		log.Err(err).Str("func", "*notificationRepository.CreateNotifications").Msg("failed to build query")
		return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	if _, err = r.db.ExecContext(ctx, query, args...); err != nil {
		log.Err(err).Str("func", "*notificationRepository.CreateNotifications").
			Int("count", len(notifications)).
			Msg("failed to insert notifications")
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	return nil
}

// ListNotifications returns the user's notifications, newest first.
func (r *notificationRepository) ListNotifications(ctx context.Context, userID int64) ([]models.Notification, error) {
	log := logger.FromContext(ctx)

	notifications := make([]models.Notification, 0)
	if err := sqlscan.Select(ctx, r.db, &notifications, listNotifications, userID); err != nil {
		log.Err(err).Str("func", "*notificationRepository.ListNotifications").Int64("user_id", userID).Msg("failed to list notifications")
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	return notifications, nil
}

func (r *notificationRepository) CountUnread(ctx context.Context, userID int64) (int, error) {
	log := logger.FromContext(ctx)

	var count int
	if err := r.db.QueryRowContext(ctx, countUnread, userID).Scan(&count); err != nil {
		log.Err(err).Str("func", "*notificationRepository.CountUnread").Int64("user_id", userID).Msg("failed to count unread")
		return 0, fmt.Errorf("%w: %w", ErrScanningRow, err)
	}

	return count, nil
}

// MarkRead marks one notification of the user read. The first read time is
// kept when the notification was already read.
func (r *notificationRepository) MarkRead(ctx context.Context, userID, notificationID int64, at time.Time) error {
	log := logger.FromContext(ctx)

	res, err := r.db.ExecContext(ctx, markRead, userID, notificationID, at)
	if err != nil {
		log.Err(err).Str("func", "*notificationRepository.MarkRead").Int64("notification_id", notificationID).Msg("failed to mark read")
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotificationNotFound
	}

	return nil
}

func (r *notificationRepository) MarkAllRead(ctx context.Context, userID int64, at time.Time) (int64, error) {
	log := logger.FromContext(ctx)

	res, err := r.db.ExecContext(ctx, markAllRead, userID, at)
	if err != nil {
		log.Err(err).Str("func", "*notificationRepository.MarkAllRead").Int64("user_id", userID).Msg("failed to mark all read")
		return 0, fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	return n, nil
}

// DeleteNotification deletes a notification owned by the user. Deleting
// somebody else's notification reports [ErrNotificationNotFound].
func (r *notificationRepository) DeleteNotification(ctx context.Context, userID, notificationID int64) error {
	log := logger.FromContext(ctx)

	res, err := r.db.ExecContext(ctx, deleteNotification, userID, notificationID)
	if err != nil {
		log.Err(err).Str("func", "*notificationRepository.DeleteNotification").Int64("notification_id", notificationID).Msg("failed to delete notification")
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotificationNotFound
	}

	return nil
}
