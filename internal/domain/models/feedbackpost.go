// internal/domain/models/feedbackpost.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// FeedbackPost is an entry on the public feedback wall. Role is the
// poster's self-reported role label and may be empty.
type FeedbackPost struct {
	ID        primitive.ObjectID `bson:"_id" json:"id"`
	UserName  string             `bson:"user_name" json:"user_name"`
	Role      string             `bson:"role,omitempty" json:"role,omitempty"`
	Message   string             `bson:"message" json:"message"`
	CreatedAt time.Time          `bson:"created_at" json:"created_at"`
}
