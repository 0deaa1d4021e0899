// internal/domain/models/group.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Group statuses. Closing a group is a soft delete; group documents are
// never removed.
const (
	GroupStatusActive = "active"
	GroupStatusClosed = "closed"
)

// DefaultMaxMembers applies when a group is created without a capacity.
const DefaultMaxMembers = 10

// Group is a mentorship cohort created and run by an alumni.
//
// NOTE:
//   - Member records live in the group_memberships collection; the group
//     document never embeds them.
//   - CurrentMembers is a cached count of active memberships. It is
//     recomputed from the memberships collection after every acceptance,
//     never incremented, so any drift heals on the next write.
//   - OwnerName/OwnerEmail are snapshots of the owner's profile taken at
//     creation time, not live lookups.
type Group struct {
	ID          primitive.ObjectID `bson:"_id" json:"id"`
	Title       string             `bson:"title" json:"title"`
	TitleCI     string             `bson:"title_ci" json:"-"`
	Description string             `bson:"description" json:"description"`
	Category    string             `bson:"category,omitempty" json:"category,omitempty"`

	OwnerID    primitive.ObjectID `bson:"owner_id" json:"ownerId"`
	OwnerName  string             `bson:"owner_name" json:"ownerName"`
	OwnerEmail string             `bson:"owner_email" json:"ownerEmail"`

	MaxMembers     int `bson:"max_members" json:"maxMembers"`
	CurrentMembers int `bson:"current_members" json:"currentMembers"`

	Status string `bson:"status" json:"status"`

	CreatedAt time.Time `bson:"created_at" json:"createdAt"`
	UpdatedAt time.Time `bson:"updated_at" json:"updatedAt"`
}
