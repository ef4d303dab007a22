package config

import "errors"

// Validation errors returned by [StructuredConfig.validate] when required
// configuration values are missing or invalid.
var (
	// ErrInvalidAppConfigs indicates missing signing or hashing keys, or an
	// unusable bcrypt cost.
	ErrInvalidAppConfigs = errors.New("invalid app configuration")
	// ErrInvalidStorageConfigs indicates an empty database DSN.
	ErrInvalidStorageConfigs = errors.New("invalid storage configuration")
	// ErrInvalidServerConfigs indicates an empty listen address.
	ErrInvalidServerConfigs = errors.New("invalid server configuration")
	// ErrInvalidAccessPolicies indicates a policy row without prefix or roles.
	ErrInvalidAccessPolicies = errors.New("invalid access policy configuration")
	// ErrInvalidConfigFile indicates a config file that could not be decoded.
	ErrInvalidConfigFile = errors.New("invalid config file")
)
