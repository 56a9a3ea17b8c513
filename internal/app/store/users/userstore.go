// internal/app/store/users/userstore.go
package userstore

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

var ErrDuplicateEmail = errors.New("an account with this email already exists")

func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection("users")}
}

func (s *Store) GetByID(ctx context.Context, id primitive.ObjectID) (models.User, error) {
	var u models.User
	if err := s.c.FindOne(ctx, bson.M{"_id": id}).Decode(&u); err != nil {
		return models.User{}, err
	}
	return u, nil
}

// GetByEmail looks up a user by email. Emails are stored lowercased,
// so the lookup lowercases its argument too.
func (s *Store) GetByEmail(ctx context.Context, email string) (models.User, error) {
	var u models.User
	err := s.c.FindOne(ctx, bson.M{"email": normalizeEmail(email)}).Decode(&u)
	if err != nil {
		return models.User{}, err
	}
	return u, nil
}

func (s *Store) Create(ctx context.Context, u models.User) (models.User, error) {
	now := time.Now().UTC()
	u.ID = primitive.NewObjectID()
	u.Email = normalizeEmail(u.Email)
	u.FullNameCI = text.Fold(u.FullName)
	if u.Status == "" {
		u.Status = status.Active
	}
	u.CreatedAt = now
	u.UpdatedAt = now
	_, err := s.c.InsertOne(ctx, u)
	if err != nil {
		if wafflemongo.IsDup(err) {
			return models.User{}, ErrDuplicateEmail
		}
		return models.User{}, err
	}
	return u, nil
}

// UpdateStudentProfile updates the editable fields of a student's
// profile. Empty name is ignored; branch, year and mentor can be
// cleared.
func (s *Store) UpdateStudentProfile(ctx context.Context, id primitive.ObjectID, name, branch, year, mentor string) error {
	set := bson.M{
		"branch":     branch,
		"year":       year,
		"mentor":     mentor,
		"updated_at": time.Now().UTC(),
	}
	if strings.TrimSpace(name) != "" {
		set["full_name"] = name
		set["full_name_ci"] = text.Fold(name)
	}
	_, err := s.c.UpdateByID(ctx, id, bson.M{"$set": set})
	return err
}

// ListByRole returns all users with the given role, ordered by folded
// name.
func (s *Store) ListByRole(ctx context.Context, role string) ([]models.User, error) {
	opts := options.Find().SetSort(bson.D{{Key: "full_name_ci", Value: 1}})
	cur, err := s.c.Find(ctx, bson.M{"role": role}, opts)
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

// ListByIDs returns the users with the given ids, ordered by folded
// name. Missing ids are silently skipped.
func (s *Store) ListByIDs(ctx context.Context, ids []primitive.ObjectID) ([]models.User, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	opts := options.Find().SetSort(bson.D{{Key: "full_name_ci", Value: 1}})
	cur, err := s.c.Find(ctx, bson.M{"_id": bson.M{"$in": ids}}, opts)
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

// CountByRole returns the number of users holding the given role.
func (s *Store) CountByRole(ctx context.Context, role string) (int64, error) {
	return s.c.CountDocuments(ctx, bson.M{"role": role})
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
