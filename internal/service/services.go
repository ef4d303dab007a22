package service

import (
	"github.com/MKhiriev/mentor-hub/internal/adapter"
	"github.com/MKhiriev/mentor-hub/internal/config"
	"github.com/MKhiriev/mentor-hub/internal/events"
	"github.com/MKhiriev/mentor-hub/internal/logger"
	"github.com/MKhiriev/mentor-hub/internal/store"
	"github.com/MKhiriev/mentor-hub/models"
)

type Services struct {
	AuthService           AuthService
	UserService           UserService
	MentorService         MentorService
	NotificationService   NotificationService
	ProfileService        ProfileService
	StudentProfileService StudentProfileService
	AppInfoService        AppInfoService
	AccessPolicy          AccessPolicy
	HealthChecker         store.HealthChecker
}

func NewServices(
	storages *store.Storages,
	verifier adapter.IdentityVerifier,
	publisher events.Publisher,
	cfg config.StructuredConfig,
	buildInfo models.AppBuildInfo,
	logger *logger.Logger,
) (*Services, error) {
	appInfoService, err := NewAppInfoService(cfg.App, buildInfo, logger)
	if err != nil {
		return nil, err
	}

	issuer := NewTokenIssuer(cfg.App)

	return &Services{
		AuthService:           NewAuthService(storages, issuer, verifier, publisher, cfg.App, logger),
		UserService:           NewUserService(storages, publisher, logger),
		MentorService:         NewMentorService(storages, publisher, logger),
		NotificationService:   NewNotificationService(storages, logger),
		ProfileService:        NewProfileService(storages, cfg.App, logger),
		StudentProfileService: NewStudentProfileService(storages, logger),
		AppInfoService:        appInfoService,
		AccessPolicy:          NewAccessPolicy(cfg.App.AccessPolicies),
		HealthChecker:         storages.HealthChecker,
	}, nil
}
