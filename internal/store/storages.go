package store

import "github.com/MKhiriev/mentor-hub/internal/logger"

// Storages groups the repositories that share one database pool.
type Storages struct {
	UserRepository           UserRepository
	RefreshTokenRepository   RefreshTokenRepository
	NotificationRepository   NotificationRepository
	StudentProfileRepository StudentProfileRepository
	HealthChecker            HealthChecker
}

// NewStorages wires every repository to db.
func NewStorages(db *DB, log *logger.Logger) *Storages {
	return &Storages{
		UserRepository:           NewUserRepository(db, log),
		RefreshTokenRepository:   NewRefreshTokenRepository(db, log),
		NotificationRepository:   NewNotificationRepository(db, log),
		StudentProfileRepository: NewStudentProfileRepository(db, log),
		HealthChecker:            db,
	}
}
