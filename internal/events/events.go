// Package events publishes domain events about user accounts to NATS.
//
// Publishing is best effort: a failed publish is logged by the caller and
// never fails the operation that produced the event.
package events

import (
	"context"
	"time"

	"github.com/MKhiriev/mentor-hub/models"
)

//go:generate mockgen -source=events.go -destination=../mock/events_mock.go -package=mock

// Event types. The subject of a published event is "<prefix>.<type>".
const (
	TypeUserAdded       = "user.added"
	TypeUserRegistered  = "user.registered"
	TypeUserBlocked     = "user.blocked"
	TypeUserUnblocked   = "user.unblocked"
	TypeUserRoleChanged = "user.role_changed"
	TypeUserRemoved     = "user.removed"
	TypeMenteesAssigned = "mentor.mentees_assigned"
)

// UserEvent is the payload of every user lifecycle event.
type UserEvent struct {
	Type       string      `json:"type"`
	UserID     int64       `json:"user_id"`
	Email      string      `json:"email,omitempty"`
	Role       models.Role `json:"role,omitempty"`
	ActorID    int64       `json:"actor_id,omitempty"`
	OccurredAt time.Time   `json:"occurred_at"`
}

// Publisher delivers domain events.
type Publisher interface {
	Publish(ctx context.Context, event UserEvent) error
	Close()
}

type nopPublisher struct{}

// NewNopPublisher returns a [Publisher] that discards every event.
func NewNopPublisher() Publisher {
	return nopPublisher{}
}

func (nopPublisher) Publish(context.Context, UserEvent) error { return nil }

func (nopPublisher) Close() {}
