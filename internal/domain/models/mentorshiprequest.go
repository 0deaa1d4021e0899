// internal/domain/models/mentorshiprequest.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// MentorshipRequest is a student's request for 1:1 mentorship from an
// alumni, distinct from the group workflow. Statuses reuse the group
// application constants (pending/accepted/declined).
type MentorshipRequest struct {
	ID primitive.ObjectID `bson:"_id" json:"id"`

	StudentID   primitive.ObjectID `bson:"student_id" json:"studentId"`
	StudentName string             `bson:"student_name" json:"studentName"`
	MentorID    primitive.ObjectID `bson:"mentor_id" json:"mentorId"`
	MentorName  string             `bson:"mentor_name" json:"mentorName"`

	Topic   string `bson:"topic" json:"topic"`
	Message string `bson:"message,omitempty" json:"message,omitempty"`

	Status      string     `bson:"status" json:"status"`
	RequestedAt time.Time  `bson:"requested_at" json:"requestedAt"`
	RespondedAt *time.Time `bson:"responded_at,omitempty" json:"respondedAt,omitempty"`
}
