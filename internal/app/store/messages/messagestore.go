// internal/app/store/messages/messagestore.go
package messagestore

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
	return &Store{c: db.Collection("messages")}
}

func (s *Store) Create(ctx context.Context, sender models.User, receiverID primitive.ObjectID, body string) (models.Message, error) {
	m := models.Message{
		ID:         primitive.NewObjectID(),
		SenderID:   sender.ID,
		SenderName: sender.FullName,
		ReceiverID: receiverID,
		Body:       body,
		Read:       false,
		SentAt:     time.Now().UTC(),
	}
	if _, err := s.c.InsertOne(ctx, m); err != nil {
		return models.Message{}, err
	}
	return m, nil
}

// Conversation returns the messages between two users, oldest first.
func (s *Store) Conversation(ctx context.Context, a, b primitive.ObjectID) ([]models.Message, error) {
	opts := options.Find().SetSort(bson.D{{Key: "sent_at", Value: 1}})
	cur, err := s.c.Find(ctx, bson.M{"$or": bson.A{
		bson.M{"sender_id": a, "receiver_id": b},
		bson.M{"sender_id": b, "receiver_id": a},
	}}, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var msgs []models.Message
	if err := cur.All(ctx, &msgs); err != nil {
		return nil, err
	}
	return msgs, nil
}

// ListInbox returns messages sent to the user, newest first.
func (s *Store) ListInbox(ctx context.Context, userID primitive.ObjectID) ([]models.Message, error) {
	opts := options.Find().SetSort(bson.D{{Key: "sent_at", Value: -1}})
	cur, err := s.c.Find(ctx, bson.M{"receiver_id": userID}, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var msgs []models.Message
	if err := cur.All(ctx, &msgs); err != nil {
		return nil, err
	}
	return msgs, nil
}

// CountUnread returns how many messages await the user.
func (s *Store) CountUnread(ctx context.Context, userID primitive.ObjectID) (int, error) {
	n, err := s.c.CountDocuments(ctx, bson.M{"receiver_id": userID, "read": false})
	return int(n), err
}

// MarkRead marks one message read, only when the caller is its
// receiver.
func (s *Store) MarkRead(ctx context.Context, id, receiverID primitive.ObjectID) error {
	res, err := s.c.UpdateOne(ctx, bson.M{
		"_id":         id,
		"receiver_id": receiverID,
	}, bson.M{"$set": bson.M{"read": true}})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return mongo.ErrNoDocuments
	}
	return nil
}

// MarkConversationRead marks everything the peer sent to the user as
// read, typically when the conversation is opened.
func (s *Store) MarkConversationRead(ctx context.Context, userID, peerID primitive.ObjectID) error {
	_, err := s.c.UpdateMany(ctx, bson.M{
		"sender_id":   peerID,
		"receiver_id": userID,
		"read":        false,
	}, bson.M{"$set": bson.M{"read": true}})
	return err
}
