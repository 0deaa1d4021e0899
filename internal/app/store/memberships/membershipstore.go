// internal/app/store/memberships/membershipstore.go
package membershipstore

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

var ErrDuplicateMembership = errors.New("student is already a member of this group")

func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection("group_memberships")}
}

// CreateInput copies the student snapshot from an accepted application.
type CreateInput struct {
	GroupID      primitive.ObjectID
	GroupTitle   string
	StudentID    primitive.ObjectID
	StudentName  string
	StudentEmail string
	Major        string
	YearLevel    string
}

// Create inserts an active membership. The unique (group_id, student_id)
// index turns a second acceptance for the same student into
// ErrDuplicateMembership.
func (s *Store) Create(ctx context.Context, in CreateInput) (models.GroupMembership, error) {
	m := models.GroupMembership{
		ID:           primitive.NewObjectID(),
		GroupID:      in.GroupID,
		GroupTitle:   in.GroupTitle,
		StudentID:    in.StudentID,
		StudentName:  in.StudentName,
		StudentEmail: in.StudentEmail,
		Major:        in.Major,
		YearLevel:    in.YearLevel,
		Status:       models.MembershipActive,
		JoinedAt:     time.Now().UTC(),
	}
	if _, err := s.c.InsertOne(ctx, m); err != nil {
		if wafflemongo.IsDup(err) {
			return models.GroupMembership{}, ErrDuplicateMembership
		}
		return models.GroupMembership{}, err
	}
	return m, nil
}

// CountActive returns the authoritative member count for a group. The
// group document's current_members field is a cache of this value.
func (s *Store) CountActive(ctx context.Context, groupID primitive.ObjectID) (int, error) {
	n, err := s.c.CountDocuments(ctx, bson.M{
		"group_id": groupID,
		"status":   models.MembershipActive,
	})
	return int(n), err
}

// ListActive returns a group's active members in join order.
func (s *Store) ListActive(ctx context.Context, groupID primitive.ObjectID) ([]models.GroupMembership, error) {
	opts := options.Find().SetSort(bson.D{{Key: "joined_at", Value: 1}})
	cur, err := s.c.Find(ctx, bson.M{
		"group_id": groupID,
		"status":   models.MembershipActive,
	}, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var members []models.GroupMembership
	if err := cur.All(ctx, &members); err != nil {
		return nil, err
	}
	return members, nil
}

// CountActiveForGroups aggregates active-member counts for many groups
// in one query, for list views.
func (s *Store) CountActiveForGroups(ctx context.Context, groupIDs []primitive.ObjectID) (map[primitive.ObjectID]int, error) {
	result := make(map[primitive.ObjectID]int)
	if len(groupIDs) == 0 {
		return result, nil
	}

	cur, err := s.c.Aggregate(ctx, []bson.M{
		{"$match": bson.M{
			"group_id": bson.M{"$in": groupIDs},
			"status":   models.MembershipActive,
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
