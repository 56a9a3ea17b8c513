// internal/app/store/feedback/feedbackstore.go
package feedbackstore

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
	return &Store{c: db.Collection("feedback_posts")}
}

func (s *Store) Create(ctx context.Context, p models.FeedbackPost) (models.FeedbackPost, error) {
	p.ID = primitive.NewObjectID()
	p.CreatedAt = time.Now().UTC()
	if _, err := s.c.InsertOne(ctx, p); err != nil {
		return models.FeedbackPost{}, err
	}
	return p, nil
}

// List returns feedback wall posts, newest first.
func (s *Store) List(ctx context.Context) ([]models.FeedbackPost, error) {
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	cur, err := s.c.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var posts []models.FeedbackPost
	if err := cur.All(ctx, &posts); err != nil {
		return nil, err
	}
	return posts, nil
}
