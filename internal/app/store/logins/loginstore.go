// internal/app/store/logins/loginstore.go
package loginstore

import (
	"context"
	"net"
	"net/http"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/peerloop/peerloop/internal/domain/models"
)

type Store struct {
	c *mongo.Collection
}

func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection("login_records")}
}

// Create inserts a LoginRecord. A zero CreatedAt is stamped with now.
func (s *Store) Create(ctx context.Context, rec models.LoginRecord) error {
	rec.ID = primitive.NewObjectID()
	if rec.CreatedAt.IsZero() {
		rec.CreatedAt = time.Now().UTC()
	}
	_, err := s.c.InsertOne(ctx, rec)
	return err
}

// RecordFrom builds a LoginRecord from the HTTP request and inserts
// it. Client IP comes from X-Forwarded-For, then X-Real-IP, then
// RemoteAddr.
func (s *Store) RecordFrom(ctx context.Context, r *http.Request, userID primitive.ObjectID, email string) error {
	return s.Create(ctx, models.LoginRecord{
		UserID:    userID,
		Email:     email,
		IP:        clientIP(r),
		UserAgent: r.UserAgent(),
	})
}

// ListByUser returns a user's sign-ins, newest first, capped at limit.
func (s *Store) ListByUser(ctx context.Context, userID primitive.ObjectID, limit int64) ([]models.LoginRecord, error) {
	opts := options.Find().
		SetSort(bson.D{{Key: "created_at", Value: -1}}).
		SetLimit(limit)
	cur, err := s.c.Find(ctx, bson.M{"user_id": userID}, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var recs []models.LoginRecord
	if err := cur.All(ctx, &recs); err != nil {
		return nil, err
	}
	return recs, nil
}

func clientIP(r *http.Request) string {
	if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
		// XFF may be a list; first entry is the original client
		parts := strings.Split(xff, ",")
		return strings.TrimSpace(parts[0])
	}
	if xr := r.Header.Get("X-Real-IP"); xr != "" {
		return strings.TrimSpace(xr)
	}
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err == nil && host != "" {
		return host
	}
	return r.RemoteAddr
}
