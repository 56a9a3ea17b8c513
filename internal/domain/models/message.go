// internal/domain/models/message.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ChatMessage is one line in an assignment's collaboration thread.
// SenderName is denormalized at write time so threads render without
// a user lookup per line.
type ChatMessage struct {
	ID           primitive.ObjectID `bson:"_id" json:"id"`
	AssignmentID primitive.ObjectID `bson:"assignment_id" json:"assignment_id"`
	SenderID     primitive.ObjectID `bson:"sender_id" json:"sender_id"`
	SenderName   string             `bson:"sender_name" json:"sender_name"`
	Text         string             `bson:"text" json:"text"`
	CreatedAt    time.Time          `bson:"created_at" json:"created_at"`
}
