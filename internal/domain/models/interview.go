// internal/domain/models/interview.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Interview statuses.
const (
	InterviewScheduled = "scheduled"
	InterviewCompleted = "completed"
	InterviewCancelled = "cancelled"
)

// Interview is scheduled by an employer against a job application.
type Interview struct {
	ID            primitive.ObjectID `bson:"_id" json:"id"`
	ApplicationID primitive.ObjectID `bson:"application_id" json:"applicationId"`
	JobID         primitive.ObjectID `bson:"job_id" json:"jobId"`
	JobTitle      string             `bson:"job_title" json:"jobTitle"`

	EmployerID primitive.ObjectID `bson:"employer_id" json:"employerId"`
	StudentID  primitive.ObjectID `bson:"student_id" json:"studentId"`

	ScheduledAt time.Time `bson:"scheduled_at" json:"scheduledAt"`
	Location    string    `bson:"location,omitempty" json:"location,omitempty"` // room or meeting URL
	Notes       string    `bson:"notes,omitempty" json:"notes,omitempty"`

	Status string `bson:"status" json:"status"`

	CreatedAt time.Time `bson:"created_at" json:"createdAt"`
	UpdatedAt time.Time `bson:"updated_at" json:"updatedAt"`
}
