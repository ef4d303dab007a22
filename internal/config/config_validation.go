// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"fmt"
	"net/http"
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"
)

const (
	defaultTokenIssuer          = "mentor-hub"
	defaultTokenAudience        = "mentor-hub-clients"
	defaultAccessTokenDuration  = 30 * time.Minute
	defaultRefreshTokenDuration = 7 * 24 * time.Hour
	defaultRequestTimeout       = 30 * time.Second
	defaultShutdownTimeout      = 10 * time.Second
	defaultRateLimit            = 10
	defaultRateWindow           = time.Minute
	defaultSubjectPrefix        = "mentorhub"
	defaultServiceName          = "mentor-hub"
	defaultGoogleTokenInfoURL   = "https://oauth2.googleapis.com/tokeninfo"
	defaultAdapterTimeout       = 10 * time.Second
	defaultTokenPruneSchedule   = "@every 1h"
	defaultTokenRetention       = 30 * 24 * time.Hour
)

// DefaultAccessPolicies returns the policy table used when the config file
// does not define app.access_policies.
func DefaultAccessPolicies() []AccessRule {
	return []AccessRule{
		{Prefix: "/api/admin", Roles: []string{"admin"}},
		{Prefix: "/api/mentor", Roles: []string{"mentor", "admin"}},
		{Prefix: "/api/user", Roles: []string{"user"}},
		{Prefix: "/api/roles/change", Method: http.MethodPost, Roles: []string{"admin"}},
	}
}

// validate fills defaults and checks that the final merged
// [StructuredConfig] satisfies all invariants before it is used at startup.
//
// Returns nil if the configuration is valid, or a descriptive error otherwise.
func (cfg *StructuredConfig) validate() error {
	cfg.applyDefaults()

	if cfg.App.TokenSignKey == "" {
		return fmt.Errorf("%w: token sign key is required", ErrInvalidAppConfigs)
	}
	if cfg.App.HashKey == "" {
		return fmt.Errorf("%w: hash key is required", ErrInvalidAppConfigs)
	}
	if cfg.App.BcryptCost < bcrypt.MinCost || cfg.App.BcryptCost > bcrypt.MaxCost {
		return fmt.Errorf("%w: bcrypt cost %d out of range", ErrInvalidAppConfigs, cfg.App.BcryptCost)
	}
	if cfg.Storage.DB.DSN == "" {
		return ErrInvalidStorageConfigs
	}
	if cfg.Server.HTTPAddress == "" {
		return ErrInvalidServerConfigs
	}

	for i, rule := range cfg.App.AccessPolicies {
		if strings.TrimSpace(rule.Prefix) == "" || len(rule.Roles) == 0 {
			return fmt.Errorf("%w: rule %d", ErrInvalidAccessPolicies, i)
		}
	}

	return nil
}

func (cfg *StructuredConfig) applyDefaults() {
	if cfg.App.TokenIssuer == "" {
		cfg.App.TokenIssuer = defaultTokenIssuer
	}
	if cfg.App.TokenAudience == "" {
		cfg.App.TokenAudience = defaultTokenAudience
	}
	if cfg.App.AccessTokenDuration == 0 {
		cfg.App.AccessTokenDuration = defaultAccessTokenDuration
	}
	if cfg.App.RefreshTokenDuration == 0 {
		cfg.App.RefreshTokenDuration = defaultRefreshTokenDuration
	}
	if cfg.App.BcryptCost == 0 {
		cfg.App.BcryptCost = bcrypt.DefaultCost
	}
	if len(cfg.App.AccessPolicies) == 0 {
		cfg.App.AccessPolicies = DefaultAccessPolicies()
	}

	if cfg.Server.RequestTimeout == 0 {
		cfg.Server.RequestTimeout = defaultRequestTimeout
	}
	if cfg.Server.ShutdownTimeout == 0 {
		cfg.Server.ShutdownTimeout = defaultShutdownTimeout
	}

	if cfg.Cache.RateLimit == 0 {
		cfg.Cache.RateLimit = defaultRateLimit
	}
	if cfg.Cache.RateWindow == 0 {
		cfg.Cache.RateWindow = defaultRateWindow
	}

	if cfg.Broker.SubjectPrefix == "" {
		cfg.Broker.SubjectPrefix = defaultSubjectPrefix
	}
	if cfg.Telemetry.ServiceName == "" {
		cfg.Telemetry.ServiceName = defaultServiceName
	}

	if cfg.Adapter.GoogleTokenInfoURL == "" {
		cfg.Adapter.GoogleTokenInfoURL = defaultGoogleTokenInfoURL
	}
	if cfg.Adapter.RequestTimeout == 0 {
		cfg.Adapter.RequestTimeout = defaultAdapterTimeout
	}

	if cfg.Workers.TokenPruneSchedule == "" {
		cfg.Workers.TokenPruneSchedule = defaultTokenPruneSchedule
	}
	if cfg.Workers.TokenRetention == 0 {
		cfg.Workers.TokenRetention = defaultTokenRetention
	}
}
