// internal/domain/models/jobapplication.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Job application statuses as the employer review pipeline advances.
const (
	JobAppSubmitted = "submitted"
	JobAppReviewed  = "reviewed"
	JobAppRejected  = "rejected"
	JobAppOffered   = "offered"
)

// JobApplication is a student's application to a job posting. Applicant
// fields are snapshots taken at apply time.
type JobApplication struct {
	ID       primitive.ObjectID `bson:"_id" json:"id"`
	JobID    primitive.ObjectID `bson:"job_id" json:"jobId"`
	JobTitle string             `bson:"job_title" json:"jobTitle"`
	Company  string             `bson:"company" json:"company"`

	StudentID    primitive.ObjectID `bson:"student_id" json:"studentId"`
	StudentName  string             `bson:"student_name" json:"studentName"`
	StudentEmail string             `bson:"student_email" json:"studentEmail"`
	Major        string             `bson:"major" json:"major"`

	CoverMessage string `bson:"cover_message,omitempty" json:"coverMessage,omitempty"`

	Status    string    `bson:"status" json:"status"`
	AppliedAt time.Time `bson:"applied_at" json:"appliedAt"`
	UpdatedAt time.Time `bson:"updated_at" json:"updatedAt"`
}
