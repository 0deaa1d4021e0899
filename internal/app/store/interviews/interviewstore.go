// internal/app/store/interviews/interviewstore.go
package interviewstore

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/dalemusser/careerhub/internal/domain/models"
)

type Store struct {
	c *mongo.Collection
}

func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection("interviews")}
}

type CreateInput struct {
	ApplicationID primitive.ObjectID
	JobID         primitive.ObjectID
	JobTitle      string
	EmployerID    primitive.ObjectID
	StudentID     primitive.ObjectID
	ScheduledAt   time.Time
	Location      string
	Notes         string
}

func (s *Store) Create(ctx context.Context, in CreateInput) (models.Interview, error) {
	now := time.Now().UTC()
	iv := models.Interview{
		ID:            primitive.NewObjectID(),
		ApplicationID: in.ApplicationID,
		JobID:         in.JobID,
		JobTitle:      in.JobTitle,
		EmployerID:    in.EmployerID,
		StudentID:     in.StudentID,
		ScheduledAt:   in.ScheduledAt.UTC(),
		Location:      in.Location,
		Notes:         in.Notes,
		Status:        models.InterviewScheduled,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	if _, err := s.c.InsertOne(ctx, iv); err != nil {
		return models.Interview{}, err
	}
	return iv, nil
}

func (s *Store) GetByID(ctx context.Context, id primitive.ObjectID) (models.Interview, error) {
	var iv models.Interview
	if err := s.c.FindOne(ctx, bson.M{"_id": id}).Decode(&iv); err != nil {
		return models.Interview{}, err
	}
	return iv, nil
}

func (s *Store) ListByStudent(ctx context.Context, studentID primitive.ObjectID) ([]models.Interview, error) {
	return s.list(ctx, bson.M{"student_id": studentID})
}

func (s *Store) ListByEmployer(ctx context.Context, employerID primitive.ObjectID) ([]models.Interview, error) {
	return s.list(ctx, bson.M{"employer_id": employerID})
}

func (s *Store) list(ctx context.Context, filter bson.M) ([]models.Interview, error) {
	opts := options.Find().SetSort(bson.D{{Key: "scheduled_at", Value: 1}})
	cur, err := s.c.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var interviews []models.Interview
	if err := cur.All(ctx, &interviews); err != nil {
		return nil, err
	}
	return interviews, nil
}

// SetStatus marks an interview completed or cancelled.
func (s *Store) SetStatus(ctx context.Context, id primitive.ObjectID, status string) error {
	_, err := s.c.UpdateByID(ctx, id, bson.M{"$set": bson.M{
		"status":     status,
		"updated_at": time.Now().UTC(),
	}})
	return err
}

// Reschedule moves an interview to a new time and optionally a new
// location.
func (s *Store) Reschedule(ctx context.Context, id primitive.ObjectID, at time.Time, location string) error {
	set := bson.M{
		"scheduled_at": at.UTC(),
		"updated_at":   time.Now().UTC(),
	}
	if location != "" {
		set["location"] = location
	}
	_, err := s.c.UpdateByID(ctx, id, bson.M{"$set": set})
	return err
}
