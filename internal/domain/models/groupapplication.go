// internal/domain/models/groupapplication.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Group application statuses. Pending is the only non-terminal state;
// accepted and declined are terminal. A student may hold at most one
// pending-or-accepted application per group; re-application is allowed
// only after a decline.
const (
	ApplicationPending  = "pending"
	ApplicationAccepted = "accepted"
	ApplicationDeclined = "declined"
)

// GroupApplication is a student's request to join a mentorship group.
// Student fields are snapshots of the applicant's profile at apply time.
type GroupApplication struct {
	ID         primitive.ObjectID `bson:"_id" json:"id"`
	GroupID    primitive.ObjectID `bson:"group_id" json:"groupId"`
	GroupTitle string             `bson:"group_title" json:"groupTitle"`

	StudentID    primitive.ObjectID `bson:"student_id" json:"studentId"`
	StudentName  string             `bson:"student_name" json:"studentName"`
	StudentEmail string             `bson:"student_email" json:"studentEmail"`
	Major        string             `bson:"major" json:"major"`
	YearLevel    string             `bson:"year_level" json:"yearLevel"`

	Message string `bson:"message,omitempty" json:"message,omitempty"`

	Status      string     `bson:"status" json:"status"`
	AppliedAt   time.Time  `bson:"applied_at" json:"appliedAt"`
	RespondedAt *time.Time `bson:"responded_at,omitempty" json:"respondedAt,omitempty"`
}
