// internal/app/store/events/eventstore.go
package eventstore

import (
	"context"
	"errors"
	"time"

	wafflemongo "github.com/dalemusser/waffle/pantry/mongo"
	"github.com/dalemusser/waffle/pantry/text"
	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/dalemusser/careerhub/internal/app/system/apperr"
	"github.com/dalemusser/careerhub/internal/domain/models"
)

// Store covers events and their registrations; the two collections are
// only ever touched together.
type Store struct {
	events        *mongo.Collection
	registrations *mongo.Collection
}

var ErrDuplicateRegistration = errors.New("you are already registered for this event")

func New(db *mongo.Database) *Store {
	return &Store{
		events:        db.Collection("events"),
		registrations: db.Collection("event_registrations"),
	}
}

type CreateInput struct {
	Title       string
	Description string
	Location    string
	StartsAt    time.Time
	EndsAt      time.Time
	Capacity    int
}

func (s *Store) Create(ctx context.Context, createdBy primitive.ObjectID, in CreateInput) (models.Event, error) {
	if in.Title == "" {
		return models.Event{}, apperr.Validation("Title is required.")
	}
	if in.StartsAt.IsZero() {
		return models.Event{}, apperr.Validation("Start time is required.")
	}
	if !in.EndsAt.IsZero() && in.EndsAt.Before(in.StartsAt) {
		return models.Event{}, apperr.Validation("End time must be after the start time.")
	}

	now := time.Now().UTC()
	e := models.Event{
		ID:          primitive.NewObjectID(),
		Title:       in.Title,
		TitleCI:     text.Fold(in.Title),
		Description: in.Description,
		Location:    in.Location,
		StartsAt:    in.StartsAt.UTC(),
		EndsAt:      in.EndsAt.UTC(),
		Capacity:    in.Capacity,
		CreatedBy:   createdBy,
		Status:      models.EventStatusActive,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if _, err := s.events.InsertOne(ctx, e); err != nil {
		return models.Event{}, err
	}
	return e, nil
}

func (s *Store) GetByID(ctx context.Context, id primitive.ObjectID) (models.Event, error) {
	var e models.Event
	if err := s.events.FindOne(ctx, bson.M{"_id": id}).Decode(&e); err != nil {
		return models.Event{}, err
	}
	return e, nil
}

// ListUpcoming returns active events starting from now, soonest first.
func (s *Store) ListUpcoming(ctx context.Context) ([]models.Event, error) {
	opts := options.Find().SetSort(bson.D{{Key: "starts_at", Value: 1}})
	cur, err := s.events.Find(ctx, bson.M{
		"status":    models.EventStatusActive,
		"starts_at": bson.M{"$gte": time.Now().UTC()},
	}, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var events []models.Event
	if err := cur.All(ctx, &events); err != nil {
		return nil, err
	}
	return events, nil
}

// UpdateInput carries the mutable event fields. Empty strings, zero
// times, and a negative capacity leave the stored values unchanged.
type UpdateInput struct {
	Title       string
	Description string
	Location    string
	StartsAt    time.Time
	EndsAt      time.Time
	Capacity    int
}

// UpdateInfo applies a patch to an event.
func (s *Store) UpdateInfo(ctx context.Context, id primitive.ObjectID, in UpdateInput) error {
	set := bson.M{"updated_at": time.Now().UTC()}
	if in.Title != "" {
		set["title"] = in.Title
		set["title_ci"] = text.Fold(in.Title)
	}
	if in.Description != "" {
		set["description"] = in.Description
	}
	if in.Location != "" {
		set["location"] = in.Location
	}
	if !in.StartsAt.IsZero() {
		set["starts_at"] = in.StartsAt.UTC()
	}
	if !in.EndsAt.IsZero() {
		set["ends_at"] = in.EndsAt.UTC()
	}
	if in.Capacity >= 0 {
		set["capacity"] = in.Capacity
	}

	res, err := s.events.UpdateByID(ctx, id, bson.M{"$set": set})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return mongo.ErrNoDocuments
	}
	return nil
}

// Cancel soft-cancels an event. Registrations are kept for the record.
func (s *Store) Cancel(ctx context.Context, id primitive.ObjectID) error {
	res, err := s.events.UpdateByID(ctx, id, bson.M{"$set": bson.M{
		"status":     models.EventStatusCancelled,
		"updated_at": time.Now().UTC(),
	}})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return mongo.ErrNoDocuments
	}
	return nil
}

// Register records a user's registration and hands back a check-in
// code. The unique (event_id, user_id) index rejects a second
// registration.
func (s *Store) Register(ctx context.Context, eventID primitive.ObjectID, user models.User) (models.EventRegistration, error) {
	r := models.EventRegistration{
		ID:           primitive.NewObjectID(),
		EventID:      eventID,
		UserID:       user.ID,
		UserName:     user.FullName,
		UserEmail:    user.Email,
		Code:         uuid.NewString(),
		RegisteredAt: time.Now().UTC(),
	}
	if _, err := s.registrations.InsertOne(ctx, r); err != nil {
		if wafflemongo.IsDup(err) {
			return models.EventRegistration{}, ErrDuplicateRegistration
		}
		return models.EventRegistration{}, err
	}
	return r, nil
}

// Unregister removes a user's registration for an event.
func (s *Store) Unregister(ctx context.Context, eventID, userID primitive.ObjectID) error {
	res, err := s.registrations.DeleteOne(ctx, bson.M{
		"event_id": eventID,
		"user_id":  userID,
	})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return mongo.ErrNoDocuments
	}
	return nil
}

// CountRegistrations returns how many users have registered for the
// event, for capacity checks.
func (s *Store) CountRegistrations(ctx context.Context, eventID primitive.ObjectID) (int, error) {
	n, err := s.registrations.CountDocuments(ctx, bson.M{"event_id": eventID})
	return int(n), err
}

// ListRegistrations returns an event's attendees in registration order.
func (s *Store) ListRegistrations(ctx context.Context, eventID primitive.ObjectID) ([]models.EventRegistration, error) {
	opts := options.Find().SetSort(bson.D{{Key: "registered_at", Value: 1}})
	cur, err := s.registrations.Find(ctx, bson.M{"event_id": eventID}, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var regs []models.EventRegistration
	if err := cur.All(ctx, &regs); err != nil {
		return nil, err
	}
	return regs, nil
}

// ListRegistrationsByUser returns every event registration a user holds,
// newest first.
func (s *Store) ListRegistrationsByUser(ctx context.Context, userID primitive.ObjectID) ([]models.EventRegistration, error) {
	opts := options.Find().SetSort(bson.D{{Key: "registered_at", Value: -1}})
	cur, err := s.registrations.Find(ctx, bson.M{"user_id": userID}, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var regs []models.EventRegistration
	if err := cur.All(ctx, &regs); err != nil {
		return nil, err
	}
	return regs, nil
}
