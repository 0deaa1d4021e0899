// internal/domain/models/job.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Job statuses. Like groups, jobs are soft-closed rather than deleted.
const (
	JobStatusActive = "active"
	JobStatusClosed = "closed"
)

// Job is a posting created by an employer.
type Job struct {
	ID          primitive.ObjectID `bson:"_id" json:"id"`
	Title       string             `bson:"title" json:"title"`
	TitleCI     string             `bson:"title_ci" json:"-"`
	Description string             `bson:"description" json:"description"`
	Location    string             `bson:"location,omitempty" json:"location,omitempty"`
	JobType     string             `bson:"job_type,omitempty" json:"jobType,omitempty"` // full-time, part-time, internship, ojt
	Salary      string             `bson:"salary,omitempty" json:"salary,omitempty"`

	EmployerID primitive.ObjectID `bson:"employer_id" json:"employerId"`
	Company    string             `bson:"company" json:"company"`

	Status string `bson:"status" json:"status"`

	CreatedAt time.Time `bson:"created_at" json:"createdAt"`
	UpdatedAt time.Time `bson:"updated_at" json:"updatedAt"`
}
