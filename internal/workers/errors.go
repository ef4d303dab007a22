package workers

import "errors"

var (
	// ErrInvalidSchedule is returned when a cron spec cannot be parsed.
	ErrInvalidSchedule = errors.New("invalid worker schedule")
	// ErrInvalidRetention is returned for a non-positive retention period.
	ErrInvalidRetention = errors.New("invalid token retention")
)
