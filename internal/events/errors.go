package events

import "errors"

var (
	ErrConnectingBroker = errors.New("failed to connect to message broker")
	ErrEncodingEvent    = errors.New("failed to encode event")
	ErrPublishingEvent  = errors.New("failed to publish event")
	ErrEmptyEventType   = errors.New("event type is empty")
)
