// internal/app/store/teams/teamstore.go
package teamstore

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/peerloop/peerloop/internal/app/system/status"
	"github.com/peerloop/peerloop/internal/domain/models"
	wafflemongo "github.com/dalemusser/waffle/pantry/mongo"

	"github.com/dalemusser/waffle/pantry/text"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type Store struct {
	c *mongo.Collection
}

var ErrDuplicateTeamName = errors.New("a team with this name already exists")

func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection("teams")}
}

func (s *Store) GetByID(ctx context.Context, id primitive.ObjectID) (models.Team, error) {
	var t models.Team
	if err := s.c.FindOne(ctx, bson.M{"_id": id}).Decode(&t); err != nil {
		return models.Team{}, err
	}
	return t, nil
}

func (s *Store) Create(ctx context.Context, t models.Team) (models.Team, error) {
	now := time.Now().UTC()
	t.ID = primitive.NewObjectID()
	t.NameCI = text.Fold(t.Name)
	if t.Avatar == "" {
		t.Avatar = initials(t.Name)
	}
	if t.Status == "" {
		t.Status = status.Active
	}
	if t.MemberIDs == nil {
		t.MemberIDs = []primitive.ObjectID{}
	}
	t.CreatedAt = now
	t.UpdatedAt = now
	_, err := s.c.InsertOne(ctx, t)
	if err != nil {
		if wafflemongo.IsDup(err) {
			return models.Team{}, ErrDuplicateTeamName
		}
		return models.Team{}, err
	}
	return t, nil
}

// List returns all teams ordered by folded name.
func (s *Store) List(ctx context.Context) ([]models.Team, error) {
	opts := options.Find().SetSort(bson.D{{Key: "name_ci", Value: 1}})
	cur, err := s.c.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var teams []models.Team
	if err := cur.All(ctx, &teams); err != nil {
		return nil, err
	}
	return teams, nil
}

// ListByMember returns the teams a student belongs to.
func (s *Store) ListByMember(ctx context.Context, studentID primitive.ObjectID) ([]models.Team, error) {
	cur, err := s.c.Find(ctx, bson.M{"member_ids": studentID})
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var teams []models.Team
	if err := cur.All(ctx, &teams); err != nil {
		return nil, err
	}
	return teams, nil
}

// SetMembers replaces a team's membership list.
func (s *Store) SetMembers(ctx context.Context, id primitive.ObjectID, memberIDs []primitive.ObjectID) error {
	if memberIDs == nil {
		memberIDs = []primitive.ObjectID{}
	}
	_, err := s.c.UpdateByID(ctx, id, bson.M{"$set": bson.M{
		"member_ids": memberIDs,
		"updated_at": time.Now().UTC(),
	}})
	return err
}

// Delete removes a team by ID. Returns the number of documents
// deleted (0 or 1).
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

// initials builds a short display avatar from the team name, e.g.
// "Code Crusaders" -> "CC".
func initials(name string) string {
	var b strings.Builder
	taken := 0
	for _, w := range strings.Fields(name) {
		b.WriteRune([]rune(w)[0])
		taken++
		if taken == 2 {
			break
		}
	}
	return strings.ToUpper(b.String())
}
