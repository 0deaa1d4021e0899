// internal/app/store/jobapplications/jobapplicationstore.go
package jobapplicationstore

import (
	"context"
	"errors"
	"time"

	wafflemongo "github.com/dalemusser/waffle/pantry/mongo"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/dalemusser/careerhub/internal/domain/models"
)

type Store struct {
	c *mongo.Collection
}

var ErrDuplicateApplication = errors.New("you have already applied to this job")

func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection("job_applications")}
}

// CreateInput snapshots the job and applicant at apply time.
type CreateInput struct {
	JobID        primitive.ObjectID
	JobTitle     string
	Company      string
	StudentID    primitive.ObjectID
	StudentName  string
	StudentEmail string
	Major        string
	CoverMessage string
}

// Create inserts a submitted application. The unique (job_id,
// student_id) index rejects a second application to the same posting.
func (s *Store) Create(ctx context.Context, in CreateInput) (models.JobApplication, error) {
	now := time.Now().UTC()
	a := models.JobApplication{
		ID:           primitive.NewObjectID(),
		JobID:        in.JobID,
		JobTitle:     in.JobTitle,
		Company:      in.Company,
		StudentID:    in.StudentID,
		StudentName:  in.StudentName,
		StudentEmail: in.StudentEmail,
		Major:        in.Major,
		CoverMessage: in.CoverMessage,
		Status:       models.JobAppSubmitted,
		AppliedAt:    now,
		UpdatedAt:    now,
	}
	if _, err := s.c.InsertOne(ctx, a); err != nil {
		if wafflemongo.IsDup(err) {
			return models.JobApplication{}, ErrDuplicateApplication
		}
		return models.JobApplication{}, err
	}
	return a, nil
}

func (s *Store) GetByID(ctx context.Context, id primitive.ObjectID) (models.JobApplication, error) {
	var a models.JobApplication
	if err := s.c.FindOne(ctx, bson.M{"_id": id}).Decode(&a); err != nil {
		return models.JobApplication{}, err
	}
	return a, nil
}

func (s *Store) ListByJob(ctx context.Context, jobID primitive.ObjectID) ([]models.JobApplication, error) {
	return s.list(ctx, bson.M{"job_id": jobID})
}

func (s *Store) ListByStudent(ctx context.Context, studentID primitive.ObjectID) ([]models.JobApplication, error) {
	return s.list(ctx, bson.M{"student_id": studentID})
}

func (s *Store) list(ctx context.Context, filter bson.M) ([]models.JobApplication, error) {
	opts := options.Find().SetSort(bson.D{{Key: "applied_at", Value: -1}})
	cur, err := s.c.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var apps []models.JobApplication
	if err := cur.All(ctx, &apps); err != nil {
		return nil, err
	}
	return apps, nil
}

// SetStatus advances an application through the review pipeline.
func (s *Store) SetStatus(ctx context.Context, id primitive.ObjectID, status string) error {
	_, err := s.c.UpdateByID(ctx, id, bson.M{"$set": bson.M{
		"status":     status,
		"updated_at": time.Now().UTC(),
	}})
	return err
}
