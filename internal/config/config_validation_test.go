package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(cfg *StructuredConfig)
		wantErr error
	}{
		{
			name:   "valid",
			mutate: func(cfg *StructuredConfig) {},
		},
		{
			name:    "missing sign key",
			mutate:  func(cfg *StructuredConfig) { cfg.App.TokenSignKey = "" },
			wantErr: ErrInvalidAppConfigs,
		},
		{
			name:    "missing hash key",
			mutate:  func(cfg *StructuredConfig) { cfg.App.HashKey = "" },
			wantErr: ErrInvalidAppConfigs,
		},
		{
			name:    "bcrypt cost too high",
			mutate:  func(cfg *StructuredConfig) { cfg.App.BcryptCost = 99 },
			wantErr: ErrInvalidAppConfigs,
		},
		{
			name:    "missing dsn",
			mutate:  func(cfg *StructuredConfig) { cfg.Storage.DB.DSN = "" },
			wantErr: ErrInvalidStorageConfigs,
		},
		{
			name:    "missing address",
			mutate:  func(cfg *StructuredConfig) { cfg.Server.HTTPAddress = "" },
			wantErr: ErrInvalidServerConfigs,
		},
		{
			name: "policy without roles",
			mutate: func(cfg *StructuredConfig) {
				cfg.App.AccessPolicies = []AccessRule{{Prefix: "/api/admin"}}
			},
			wantErr: ErrInvalidAccessPolicies,
		},
		{
			name: "policy without prefix",
			mutate: func(cfg *StructuredConfig) {
				cfg.App.AccessPolicies = []AccessRule{{Prefix: " ", Roles: []string{"admin"}}}
			},
			wantErr: ErrInvalidAccessPolicies,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validBase()
			tt.mutate(cfg)

			err := cfg.validate()
			if tt.wantErr == nil {
				require.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestValidate_KeepsCustomPolicies(t *testing.T) {
	cfg := validBase()
	custom := []AccessRule{{Prefix: "/api/reports", Roles: []string{"mentor"}}}
	cfg.App.AccessPolicies = custom

	require.NoError(t, cfg.validate())
	assert.Equal(t, custom, cfg.App.AccessPolicies)
}
