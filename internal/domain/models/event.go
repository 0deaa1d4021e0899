// internal/domain/models/event.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Event statuses.
const (
	EventStatusActive    = "active"
	EventStatusCancelled = "cancelled"
)

// Event is a career-office event (job fair, workshop, info session).
// Capacity of 0 means unlimited.
type Event struct {
	ID          primitive.ObjectID `bson:"_id" json:"id"`
	Title       string             `bson:"title" json:"title"`
	TitleCI     string             `bson:"title_ci" json:"-"`
	Description string             `bson:"description" json:"description"`
	Location    string             `bson:"location,omitempty" json:"location,omitempty"`

	StartsAt time.Time `bson:"starts_at" json:"startsAt"`
	EndsAt   time.Time `bson:"ends_at" json:"endsAt"`
	Capacity int       `bson:"capacity" json:"capacity"`

	CreatedBy primitive.ObjectID `bson:"created_by" json:"createdBy"`
	Status    string             `bson:"status" json:"status"`

	CreatedAt time.Time `bson:"created_at" json:"createdAt"`
	UpdatedAt time.Time `bson:"updated_at" json:"updatedAt"`
}

// EventRegistration links a user to an event. Code is a uuid handed to
// the attendee for check-in at the door.
type EventRegistration struct {
	ID      primitive.ObjectID `bson:"_id" json:"id"`
	EventID primitive.ObjectID `bson:"event_id" json:"eventId"`
	UserID  primitive.ObjectID `bson:"user_id" json:"userId"`

	UserName  string `bson:"user_name" json:"userName"`
	UserEmail string `bson:"user_email" json:"userEmail"`
	Code      string `bson:"code" json:"code"`

	RegisteredAt time.Time `bson:"registered_at" json:"registeredAt"`
}
