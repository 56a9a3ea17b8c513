// internal/app/store/assignments/assignmentstore.go
package assignmentstore

import (
	"context"
	"time"

	"github.com/peerloop/peerloop/internal/domain/models"

	"github.com/dalemusser/waffle/pantry/text"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type Store struct {
	c *mongo.Collection
}

func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection("assignments")}
}

func (s *Store) GetByID(ctx context.Context, id primitive.ObjectID) (models.Assignment, error) {
	var a models.Assignment
	if err := s.c.FindOne(ctx, bson.M{"_id": id}).Decode(&a); err != nil {
		return models.Assignment{}, err
	}
	return a, nil
}

func (s *Store) Create(ctx context.Context, a models.Assignment) (models.Assignment, error) {
	a.ID = primitive.NewObjectID()
	a.TitleCI = text.Fold(a.Title)
	if a.Rubric == nil {
		a.Rubric = []models.RubricCriterion{}
	}
	if a.TeamIDs == nil {
		a.TeamIDs = []primitive.ObjectID{}
	}
	a.CreatedAt = time.Now().UTC()
	if _, err := s.c.InsertOne(ctx, a); err != nil {
		return models.Assignment{}, err
	}
	return a, nil
}

// List returns all assignments ordered by due date, soonest first.
func (s *Store) List(ctx context.Context) ([]models.Assignment, error) {
	opts := options.Find().SetSort(bson.D{{Key: "due_date", Value: 1}})
	cur, err := s.c.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var out []models.Assignment
	if err := cur.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// ListByTeam returns assignments targeted at the given team, soonest
// due first.
func (s *Store) ListByTeam(ctx context.Context, teamID primitive.ObjectID) ([]models.Assignment, error) {
	opts := options.Find().SetSort(bson.D{{Key: "due_date", Value: 1}})
	cur, err := s.c.Find(ctx, bson.M{"team_ids": teamID}, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var out []models.Assignment
	if err := cur.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// Delete removes an assignment by ID. Submissions and reviews that
// reference it are left in place.
func (s *Store) Delete(ctx context.Context, id primitive.ObjectID) (int64, error) {
	res, err := s.c.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return 0, err
	}
	return res.DeletedCount, nil
}

func (s *Store) Count(ctx context.Context) (int64, error) {
	return s.c.CountDocuments(ctx, bson.M{})
}
