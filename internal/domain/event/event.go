package event

import (
	"context"
	"time"
)

const (
	TypeUserRegistered    = "user.registered"
	TypeUserDeleted       = "user.deleted"
	TypeProfileUpdated    = "profile.updated"
	TypeExperienceAdded   = "profile.experience.added"
	TypeExperienceRemoved = "profile.experience.removed"
	TypeEducationAdded    = "profile.education.added"
	TypeEducationRemoved  = "profile.education.removed"
)

type Message struct {
	Type       string    `json:"type"`
	UserID     string    `json:"user_id"`
	OccurredAt time.Time `json:"occurred_at"`
}

// Publisher is what the use cases depend on; produce failures must never
// fail the request that triggered them.
type Publisher interface {
	PublishAccountEvent(ctx context.Context, msg Message) error
	PublishProfileEvent(ctx context.Context, msg Message) error
}
