// internal/app/store/reviews/reviewstore.go
package reviewstore

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
	return &Store{c: db.Collection("peer_reviews")}
}

func (s *Store) GetByID(ctx context.Context, id primitive.ObjectID) (models.PeerReview, error) {
	var r models.PeerReview
	if err := s.c.FindOne(ctx, bson.M{"_id": id}).Decode(&r); err != nil {
		return models.PeerReview{}, err
	}
	return r, nil
}

// Create inserts a new draft review for a reviewer assignment.
func (s *Store) Create(ctx context.Context, r models.PeerReview) (models.PeerReview, error) {
	now := time.Now().UTC()
	r.ID = primitive.NewObjectID()
	if r.Status == "" {
		r.Status = models.ReviewDraft
	}
	if r.Scores == nil {
		r.Scores = map[string]int{}
	}
	r.CreatedAt = now
	r.UpdatedAt = now
	if _, err := s.c.InsertOne(ctx, r); err != nil {
		return models.PeerReview{}, err
	}
	return r, nil
}

// SetScore records the points for one rubric criterion on a draft.
// Range checking against the rubric happens in the engine; the store
// only persists.
func (s *Store) SetScore(ctx context.Context, id primitive.ObjectID, criterionID string, points int) error {
	_, err := s.c.UpdateByID(ctx, id, bson.M{"$set": bson.M{
		"scores." + criterionID: points,
		"updated_at":            time.Now().UTC(),
	}})
	return err
}

// SetFeedback replaces the draft's written feedback.
func (s *Store) SetFeedback(ctx context.Context, id primitive.ObjectID, feedback string) error {
	_, err := s.c.UpdateByID(ctx, id, bson.M{"$set": bson.M{
		"feedback":   feedback,
		"updated_at": time.Now().UTC(),
	}})
	return err
}

// MarkSubmitted finalizes a review: status SUBMITTED plus the final
// feedback, scores and optional tone analysis in one write.
func (s *Store) MarkSubmitted(ctx context.Context, id primitive.ObjectID, feedback string, scores map[string]int, constructive *bool, analysis string) error {
	set := bson.M{
		"status":     models.ReviewSubmitted,
		"feedback":   feedback,
		"scores":     scores,
		"updated_at": time.Now().UTC(),
	}
	if constructive != nil {
		set["constructive"] = *constructive
	}
	if analysis != "" {
		set["ai_analysis"] = analysis
	}
	_, err := s.c.UpdateByID(ctx, id, bson.M{"$set": set})
	return err
}

// ListByReviewer returns the reviews assigned to a reviewer, newest
// first.
func (s *Store) ListByReviewer(ctx context.Context, reviewerID primitive.ObjectID) ([]models.PeerReview, error) {
	return s.list(ctx, bson.M{"reviewer_id": reviewerID})
}

// ListBySubmission returns the reviews of one submission.
func (s *Store) ListBySubmission(ctx context.Context, submissionID primitive.ObjectID) ([]models.PeerReview, error) {
	return s.list(ctx, bson.M{"submission_id": submissionID})
}

// ListByAssignment returns all reviews across an assignment's
// submissions.
func (s *Store) ListByAssignment(ctx context.Context, assignmentID primitive.ObjectID) ([]models.PeerReview, error) {
	return s.list(ctx, bson.M{"assignment_id": assignmentID})
}

// CountSubmittedByReviewer returns how many reviews the reviewer has
// completed. Feeds badge activity.
func (s *Store) CountSubmittedByReviewer(ctx context.Context, reviewerID primitive.ObjectID) (int64, error) {
	return s.c.CountDocuments(ctx, bson.M{
		"reviewer_id": reviewerID,
		"status":      models.ReviewSubmitted,
	})
}

func (s *Store) list(ctx context.Context, filter bson.M) ([]models.PeerReview, error) {
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	cur, err := s.c.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var reviews []models.PeerReview
	if err := cur.All(ctx, &reviews); err != nil {
		return nil, err
	}
	return reviews, nil
}
