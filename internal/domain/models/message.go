// internal/domain/models/message.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Message is a direct message between two portal users.
type Message struct {
	ID         primitive.ObjectID `bson:"_id" json:"id"`
	SenderID   primitive.ObjectID `bson:"sender_id" json:"senderId"`
	SenderName string             `bson:"sender_name" json:"senderName"`
	ReceiverID primitive.ObjectID `bson:"receiver_id" json:"receiverId"`

	Body string `bson:"body" json:"body"`

	Read   bool      `bson:"read" json:"read"`
	SentAt time.Time `bson:"sent_at" json:"sentAt"`
}
