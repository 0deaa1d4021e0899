// internal/app/store/groups/groupstore.go
package groupstore

import (
	"context"
	"time"

	"github.com/dalemusser/waffle/pantry/text"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/dalemusser/careerhub/internal/app/system/apperr"
	"github.com/dalemusser/careerhub/internal/domain/models"
)

type Store struct {
	c *mongo.Collection
}

func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection("mentorship_groups")}
}

// CreateInput carries the caller-supplied fields for a new group.
type CreateInput struct {
	Title       string
	Description string
	Category    string
	MaxMembers  int
}

// Create inserts a new active group owned by the given alumni. The owner
// name and email are denormalized onto the document as a snapshot of the
// profile at creation time. Title and description are required.
func (s *Store) Create(ctx context.Context, owner models.User, in CreateInput) (models.Group, error) {
	if in.Title == "" {
		return models.Group{}, apperr.Validation("Title is required.")
	}
	if in.Description == "" {
		return models.Group{}, apperr.Validation("Description is required.")
	}
	if in.MaxMembers <= 0 {
		in.MaxMembers = models.DefaultMaxMembers
	}

	now := time.Now().UTC()
	g := models.Group{
		ID:             primitive.NewObjectID(),
		Title:          in.Title,
		TitleCI:        text.Fold(in.Title),
		Description:    in.Description,
		Category:       in.Category,
		OwnerID:        owner.ID,
		OwnerName:      owner.FullName,
		OwnerEmail:     owner.Email,
		MaxMembers:     in.MaxMembers,
		CurrentMembers: 0,
		Status:         models.GroupStatusActive,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	if _, err := s.c.InsertOne(ctx, g); err != nil {
		return models.Group{}, err
	}
	return g, nil
}

func (s *Store) GetByID(ctx context.Context, id primitive.ObjectID) (models.Group, error) {
	var g models.Group
	if err := s.c.FindOne(ctx, bson.M{"_id": id}).Decode(&g); err != nil {
		return models.Group{}, err
	}
	return g, nil
}

// Filter selects which groups List returns. Zero value means the
// default view: all active groups, open to applicants.
type Filter struct {
	OwnerID *primitive.ObjectID
	Status  string
}

// List returns groups matching the filter, newest first.
func (s *Store) List(ctx context.Context, f Filter) ([]models.Group, error) {
	q := bson.M{}
	switch {
	case f.OwnerID != nil:
		q["owner_id"] = *f.OwnerID
		if f.Status != "" {
			q["status"] = f.Status
		}
	case f.Status != "":
		q["status"] = f.Status
	default:
		q["status"] = models.GroupStatusActive
	}

	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	cur, err := s.c.Find(ctx, q, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var groups []models.Group
	if err := cur.All(ctx, &groups); err != nil {
		return nil, err
	}
	return groups, nil
}

// UpdateInput carries the mutable group fields. Empty strings and zero
// capacity leave the stored values unchanged.
type UpdateInput struct {
	Title       string
	Description string
	Category    string
	MaxMembers  int
	Status      string
}

// UpdateInfo applies a patch to a group after verifying the caller owns
// it. Returns NotFound if the group is absent and Authorization if
// ownerID is not the group's owner.
func (s *Store) UpdateInfo(ctx context.Context, id, ownerID primitive.ObjectID, in UpdateInput) error {
	g, err := s.GetByID(ctx, id)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return apperr.NotFound("group")
		}
		return err
	}
	if g.OwnerID != ownerID {
		return apperr.Authorization("only the group owner can update this group")
	}

	set := bson.M{"updated_at": time.Now().UTC()}
	if in.Title != "" {
		set["title"] = in.Title
		set["title_ci"] = text.Fold(in.Title)
	}
	if in.Description != "" {
		set["description"] = in.Description
	}
	if in.Category != "" {
		set["category"] = in.Category
	}
	if in.MaxMembers > 0 {
		set["max_members"] = in.MaxMembers
	}
	if in.Status != "" {
		if in.Status != models.GroupStatusActive && in.Status != models.GroupStatusClosed {
			return apperr.Validation("status must be active or closed")
		}
		set["status"] = in.Status
	}

	_, err = s.c.UpdateByID(ctx, id, bson.M{"$set": set})
	return err
}

// Close soft-deletes a group by setting status=closed. The document is
// never removed. Closing an already-closed group is a no-op, so the
// operation is idempotent.
func (s *Store) Close(ctx context.Context, id, ownerID primitive.ObjectID) error {
	g, err := s.GetByID(ctx, id)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return apperr.NotFound("group")
		}
		return err
	}
	if g.OwnerID != ownerID {
		return apperr.Authorization("only the group owner can close this group")
	}

	_, err = s.c.UpdateByID(ctx, id, bson.M{"$set": bson.M{
		"status":     models.GroupStatusClosed,
		"updated_at": time.Now().UTC(),
	}})
	return err
}

// SetMemberCount persists a recomputed current_members value. Only the
// workflow engine calls this, always with a fresh count from the
// memberships collection.
func (s *Store) SetMemberCount(ctx context.Context, id primitive.ObjectID, n int) error {
	_, err := s.c.UpdateByID(ctx, id, bson.M{"$set": bson.M{
		"current_members": n,
		"updated_at":      time.Now().UTC(),
	}})
	return err
}
