// internal/app/store/messages/messagestore.go
package messagestore

import (
	"context"
	"time"

	"github.com/peerloop/peerloop/internal/domain/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type Store struct {
	c *mongo.Collection
}

func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection("chat_messages")}
}

func (s *Store) Create(ctx context.Context, m models.ChatMessage) (models.ChatMessage, error) {
	m.ID = primitive.NewObjectID()
	m.CreatedAt = time.Now().UTC()
	if _, err := s.c.InsertOne(ctx, m); err != nil {
		return models.ChatMessage{}, err
	}
	return m, nil
}

// ListByAssignment returns an assignment's chat thread in send order.
func (s *Store) ListByAssignment(ctx context.Context, assignmentID primitive.ObjectID) ([]models.ChatMessage, error) {
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: 1}})
	cur, err := s.c.Find(ctx, bson.M{"assignment_id": assignmentID}, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var msgs []models.ChatMessage
	if err := cur.All(ctx, &msgs); err != nil {
		return nil, err
	}
	return msgs, nil
}
