package main

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/MKhiriev/mentor-hub/internal/service"
	"github.com/MKhiriev/mentor-hub/internal/store"
	"github.com/MKhiriev/mentor-hub/models"
)

// seedAdmin provisions an Admin account for email. When the email is taken
// the existing account is promoted instead. created reports whether a new
// row was inserted.
func seedAdmin(ctx context.Context, users service.UserService, repo store.UserRepository, email, fullName string) (models.User, bool, error) {
	admin, err := users.AddUser(ctx, models.AddUserRequest{
		Email:    email,
		FullName: fullName,
		Role:     string(models.RoleAdmin),
	})
	if err == nil {
		return admin, true, nil
	}
	if !errors.Is(err, service.ErrEmailAlreadyExists) {
		return models.User{}, false, fmt.Errorf("seed admin: %w", err)
	}

	existing, err := repo.FindUserByEmail(ctx, strings.ToLower(strings.TrimSpace(email)))
	if err != nil {
		return models.User{}, false, fmt.Errorf("seed admin: %w", err)
	}
	if existing.Role == models.RoleAdmin {
		return existing, false, nil
	}

	promoted, err := users.UpdateRole(ctx, existing.UserID, string(models.RoleAdmin))
	if err != nil {
		return models.User{}, false, fmt.Errorf("seed admin: promote %d: %w", existing.UserID, err)
	}

	return promoted, false, nil
}
