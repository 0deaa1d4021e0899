// internal/app/store/groupapplications/applicationstore.go
package applicationstore

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
	return &Store{c: db.Collection("group_applications")}
}

// CreateInput carries everything needed to record a new application.
// The student fields are profile snapshots resolved by the workflow
// engine before the write.
type CreateInput struct {
	GroupID      primitive.ObjectID
	GroupTitle   string
	StudentID    primitive.ObjectID
	StudentName  string
	StudentEmail string
	Major        string
	YearLevel    string
	Message      string
}

// Create inserts a pending application stamped with the current time.
func (s *Store) Create(ctx context.Context, in CreateInput) (models.GroupApplication, error) {
	a := models.GroupApplication{
		ID:           primitive.NewObjectID(),
		GroupID:      in.GroupID,
		GroupTitle:   in.GroupTitle,
		StudentID:    in.StudentID,
		StudentName:  in.StudentName,
		StudentEmail: in.StudentEmail,
		Major:        in.Major,
		YearLevel:    in.YearLevel,
		Message:      in.Message,
		Status:       models.ApplicationPending,
		AppliedAt:    time.Now().UTC(),
	}
	if _, err := s.c.InsertOne(ctx, a); err != nil {
		return models.GroupApplication{}, err
	}
	return a, nil
}

func (s *Store) GetByID(ctx context.Context, id primitive.ObjectID) (models.GroupApplication, error) {
	var a models.GroupApplication
	if err := s.c.FindOne(ctx, bson.M{"_id": id}).Decode(&a); err != nil {
		return models.GroupApplication{}, err
	}
	return a, nil
}

// ListByGroup returns every application for a group, newest-applied
// first, for the owner's review queue.
func (s *Store) ListByGroup(ctx context.Context, groupID primitive.ObjectID) ([]models.GroupApplication, error) {
	return s.list(ctx, bson.M{"group_id": groupID})
}

// ListByStudent returns every application a student has filed, newest
// first.
func (s *Store) ListByStudent(ctx context.Context, studentID primitive.ObjectID) ([]models.GroupApplication, error) {
	return s.list(ctx, bson.M{"student_id": studentID})
}

func (s *Store) list(ctx context.Context, filter bson.M) ([]models.GroupApplication, error) {
	opts := options.Find().SetSort(bson.D{{Key: "applied_at", Value: -1}})
	cur, err := s.c.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var apps []models.GroupApplication
	if err := cur.All(ctx, &apps); err != nil {
		return nil, err
	}
	return apps, nil
}

// FindActive returns the student's pending or accepted application for
// the group, or nil when none exists. Declined applications do not
// count: a student may re-apply after a decline.
func (s *Store) FindActive(ctx context.Context, groupID, studentID primitive.ObjectID) (*models.GroupApplication, error) {
	var a models.GroupApplication
	err := s.c.FindOne(ctx, bson.M{
		"group_id":   groupID,
		"student_id": studentID,
		"status":     bson.M{"$in": bson.A{models.ApplicationPending, models.ApplicationAccepted}},
	}).Decode(&a)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &a, nil
}

// SetStatus updates an application's status and stamps responded_at when
// the status leaves pending.
func (s *Store) SetStatus(ctx context.Context, id primitive.ObjectID, status string) error {
	set := bson.M{"status": status}
	if status != models.ApplicationPending {
		set["responded_at"] = time.Now().UTC()
	}
	_, err := s.c.UpdateByID(ctx, id, bson.M{"$set": set})
	return err
}

// CountPendingForGroups aggregates pending-application counts for many
// groups in one query, for list views.
func (s *Store) CountPendingForGroups(ctx context.Context, groupIDs []primitive.ObjectID) (map[primitive.ObjectID]int, error) {
	result := make(map[primitive.ObjectID]int)
	if len(groupIDs) == 0 {
		return result, nil
	}

	cur, err := s.c.Aggregate(ctx, []bson.M{
		{"$match": bson.M{
			"group_id": bson.M{"$in": groupIDs},
			"status":   models.ApplicationPending,
		}},
		{"$group": bson.M{"_id": "$group_id", "n": bson.M{"$sum": 1}}},
	})
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	for cur.Next(ctx) {
		var row struct {
			ID primitive.ObjectID `bson:"_id"`
			N  int                `bson:"n"`
		}
		if err := cur.Decode(&row); err != nil {
			return nil, err
		}
		result[row.ID] = row.N
	}
	return result, cur.Err()
}
