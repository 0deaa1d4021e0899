// internal/app/store/mentorshiprequests/requeststore.go
package requeststore

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
	return &Store{c: db.Collection("mentorship_requests")}
}

type CreateInput struct {
	StudentID   primitive.ObjectID
	StudentName string
	MentorID    primitive.ObjectID
	MentorName  string
	Topic       string
	Message     string
}

func (s *Store) Create(ctx context.Context, in CreateInput) (models.MentorshipRequest, error) {
	r := models.MentorshipRequest{
		ID:          primitive.NewObjectID(),
		StudentID:   in.StudentID,
		StudentName: in.StudentName,
		MentorID:    in.MentorID,
		MentorName:  in.MentorName,
		Topic:       in.Topic,
		Message:     in.Message,
		Status:      models.ApplicationPending,
		RequestedAt: time.Now().UTC(),
	}
	if _, err := s.c.InsertOne(ctx, r); err != nil {
		return models.MentorshipRequest{}, err
	}
	return r, nil
}

func (s *Store) GetByID(ctx context.Context, id primitive.ObjectID) (models.MentorshipRequest, error) {
	var r models.MentorshipRequest
	if err := s.c.FindOne(ctx, bson.M{"_id": id}).Decode(&r); err != nil {
		return models.MentorshipRequest{}, err
	}
	return r, nil
}

// FindPending returns the student's open request to a mentor, nil when
// none. Mirrors the group-application rule: one live request at a time,
// re-request allowed after a decline.
func (s *Store) FindPending(ctx context.Context, mentorID, studentID primitive.ObjectID) (*models.MentorshipRequest, error) {
	var r models.MentorshipRequest
	err := s.c.FindOne(ctx, bson.M{
		"mentor_id":  mentorID,
		"student_id": studentID,
		"status":     models.ApplicationPending,
	}).Decode(&r)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &r, nil
}

func (s *Store) ListByMentor(ctx context.Context, mentorID primitive.ObjectID) ([]models.MentorshipRequest, error) {
	return s.list(ctx, bson.M{"mentor_id": mentorID})
}

func (s *Store) ListByStudent(ctx context.Context, studentID primitive.ObjectID) ([]models.MentorshipRequest, error) {
	return s.list(ctx, bson.M{"student_id": studentID})
}

func (s *Store) list(ctx context.Context, filter bson.M) ([]models.MentorshipRequest, error) {
	opts := options.Find().SetSort(bson.D{{Key: "requested_at", Value: -1}})
	cur, err := s.c.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var reqs []models.MentorshipRequest
	if err := cur.All(ctx, &reqs); err != nil {
		return nil, err
	}
	return reqs, nil
}

// SetStatus records the mentor's decision, stamping responded_at when
// the request leaves pending.
func (s *Store) SetStatus(ctx context.Context, id primitive.ObjectID, status string) error {
	set := bson.M{"status": status}
	if status != models.ApplicationPending {
		set["responded_at"] = time.Now().UTC()
	}
	_, err := s.c.UpdateByID(ctx, id, bson.M{"$set": set})
	return err
}
