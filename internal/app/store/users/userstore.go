// internal/app/store/users/userstore.go
package userstore

import (
	"context"
	"errors"
	"time"

	wafflemongo "github.com/dalemusser/waffle/pantry/mongo"
	"github.com/dalemusser/waffle/pantry/text"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/dalemusser/careerhub/internal/app/system/normalize"
	"github.com/dalemusser/careerhub/internal/domain/models"
)

type Store struct {
	c *mongo.Collection
}

var ErrDuplicateEmail = errors.New("an account with that email already exists")

func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection("users")}
}

// CreateInput carries the fields for a new account. PasswordHash is
// empty for Google-only accounts.
type CreateInput struct {
	FullName     string
	Email        string
	PasswordHash string
	Role         string
	Major        string
	YearLevel    string
	Company      string
}

// Create inserts an active account. Email is normalized and the
// case-folded copy is what the unique index guards.
func (s *Store) Create(ctx context.Context, in CreateInput) (models.User, error) {
	now := time.Now().UTC()
	email := normalize.Email(in.Email)
	u := models.User{
		ID:           primitive.NewObjectID(),
		FullName:     normalize.Name(in.FullName),
		FullNameCI:   text.Fold(in.FullName),
		Email:        email,
		EmailCI:      text.Fold(email),
		PasswordHash: in.PasswordHash,
		Role:         in.Role,
		Status:       "active",
		Major:        in.Major,
		YearLevel:    in.YearLevel,
		Company:      in.Company,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if _, err := s.c.InsertOne(ctx, u); err != nil {
		if wafflemongo.IsDup(err) {
			return models.User{}, ErrDuplicateEmail
		}
		return models.User{}, err
	}
	return u, nil
}

func (s *Store) GetByID(ctx context.Context, id primitive.ObjectID) (models.User, error) {
	var u models.User
	if err := s.c.FindOne(ctx, bson.M{"_id": id}).Decode(&u); err != nil {
		return models.User{}, err
	}
	return u, nil
}

// GetByEmail looks an account up by its case-folded email.
func (s *Store) GetByEmail(ctx context.Context, email string) (models.User, error) {
	var u models.User
	err := s.c.FindOne(ctx, bson.M{"email_ci": text.Fold(normalize.Email(email))}).Decode(&u)
	if err != nil {
		return models.User{}, err
	}
	return u, nil
}

// ProfileUpdate carries the self-service editable fields. Empty strings
// leave the stored values unchanged.
type ProfileUpdate struct {
	FullName  string
	Major     string
	YearLevel string
	Company   string
	Headline  string
}

func (s *Store) UpdateProfile(ctx context.Context, id primitive.ObjectID, in ProfileUpdate) error {
	set := bson.M{"updated_at": time.Now().UTC()}
	if in.FullName != "" {
		set["full_name"] = normalize.Name(in.FullName)
		set["full_name_ci"] = text.Fold(in.FullName)
	}
	if in.Major != "" {
		set["major"] = in.Major
	}
	if in.YearLevel != "" {
		set["year_level"] = in.YearLevel
	}
	if in.Company != "" {
		set["company"] = in.Company
	}
	if in.Headline != "" {
		set["headline"] = in.Headline
	}
	res, err := s.c.UpdateByID(ctx, id, bson.M{"$set": set})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return mongo.ErrNoDocuments
	}
	return nil
}

// SetPasswordHash stores a new bcrypt hash for the account.
func (s *Store) SetPasswordHash(ctx context.Context, id primitive.ObjectID, hash string) error {
	_, err := s.c.UpdateByID(ctx, id, bson.M{"$set": bson.M{
		"password_hash": hash,
		"updated_at":    time.Now().UTC(),
	}})
	return err
}

// SetStatus activates or suspends an account (admin action).
func (s *Store) SetStatus(ctx context.Context, id primitive.ObjectID, status string) error {
	_, err := s.c.UpdateByID(ctx, id, bson.M{"$set": bson.M{
		"status":     status,
		"updated_at": time.Now().UTC(),
	}})
	return err
}

// Filter narrows List for the admin directory. Empty fields match all.
type Filter struct {
	Role   string
	Status string
	Search string // matched case-insensitively against name and email
}

// List returns accounts matching the filter, newest first.
func (s *Store) List(ctx context.Context, f Filter) ([]models.User, error) {
	q := bson.M{}
	if f.Role != "" {
		q["role"] = f.Role
	}
	if f.Status != "" {
		q["status"] = f.Status
	}
	if f.Search != "" {
		folded := text.Fold(f.Search)
		q["$or"] = bson.A{
			bson.M{"full_name_ci": bson.M{"$regex": folded}},
			bson.M{"email_ci": bson.M{"$regex": folded}},
		}
	}

	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	cur, err := s.c.Find(ctx, q, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var users []models.User
	if err := cur.All(ctx, &users); err != nil {
		return nil, err
	}
	return users, nil
}
