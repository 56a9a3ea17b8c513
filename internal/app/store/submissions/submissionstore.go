// internal/app/store/submissions/submissionstore.go
package submissionstore

import (
	"context"
	"errors"
	"time"

	"github.com/peerloop/peerloop/internal/domain/models"
	wafflemongo "github.com/dalemusser/waffle/pantry/mongo"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type Store struct {
	c *mongo.Collection
}

// ErrDuplicateSubmission fires when a second submission is inserted
// for the same (assignment, student) pair; a unique index enforces
// one per pair.
var ErrDuplicateSubmission = errors.New("a submission already exists for this assignment and student")

// ErrInvalidStatus fires when SetStatus is handed a value outside the
// stored status set.
var ErrInvalidStatus = errors.New("invalid submission status")

func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection("submissions")}
}

func (s *Store) GetByID(ctx context.Context, id primitive.ObjectID) (models.Submission, error) {
	var sub models.Submission
	if err := s.c.FindOne(ctx, bson.M{"_id": id}).Decode(&sub); err != nil {
		return models.Submission{}, err
	}
	return sub, nil
}

// GetByPair looks up the one submission for an (assignment, student)
// pair. Returns mongo.ErrNoDocuments when the student has not
// started; callers treat that as NOT_STARTED rather than an error.
func (s *Store) GetByPair(ctx context.Context, assignmentID, studentID primitive.ObjectID) (models.Submission, error) {
	var sub models.Submission
	err := s.c.FindOne(ctx, bson.M{
		"assignment_id": assignmentID,
		"student_id":    studentID,
	}).Decode(&sub)
	if err != nil {
		return models.Submission{}, err
	}
	return sub, nil
}

func (s *Store) Create(ctx context.Context, sub models.Submission) (models.Submission, error) {
	now := time.Now().UTC()
	sub.ID = primitive.NewObjectID()
	if sub.Status == "" {
		sub.Status = models.SubmissionInProgress
	}
	if sub.Files == nil {
		sub.Files = []string{}
	}
	sub.CreatedAt = now
	sub.UpdatedAt = now
	_, err := s.c.InsertOne(ctx, sub)
	if err != nil {
		if wafflemongo.IsDup(err) {
			return models.Submission{}, ErrDuplicateSubmission
		}
		return models.Submission{}, err
	}
	return sub, nil
}

// AppendFile adds a filename to the submission's file list and forces
// the status back to IN_PROGRESS. Duplicate filenames are kept; the
// list records upload order and never shrinks.
func (s *Store) AppendFile(ctx context.Context, id primitive.ObjectID, filename string) error {
	_, err := s.c.UpdateByID(ctx, id, bson.M{
		"$push": bson.M{"files": filename},
		"$set": bson.M{
			"status":     models.SubmissionInProgress,
			"updated_at": time.Now().UTC(),
		},
	})
	return err
}

// MarkSubmitted sets the status to SUBMITTED and stamps submitted-at.
// Re-stamping an already submitted record is allowed.
func (s *Store) MarkSubmitted(ctx context.Context, id primitive.ObjectID, at time.Time) error {
	_, err := s.c.UpdateByID(ctx, id, bson.M{"$set": bson.M{
		"status":       models.SubmissionSubmitted,
		"submitted_at": at,
		"updated_at":   at,
	}})
	return err
}

// SetStatus moves the submission to the given stored status.
func (s *Store) SetStatus(ctx context.Context, id primitive.ObjectID, stat string) error {
	if !models.IsValidSubmissionStatus(stat) {
		return ErrInvalidStatus
	}
	_, err := s.c.UpdateByID(ctx, id, bson.M{"$set": bson.M{
		"status":     stat,
		"updated_at": time.Now().UTC(),
	}})
	return err
}

// ListByAssignment returns all submissions for an assignment.
func (s *Store) ListByAssignment(ctx context.Context, assignmentID primitive.ObjectID) ([]models.Submission, error) {
	return s.list(ctx, bson.M{"assignment_id": assignmentID})
}

// ListByStudent returns one student's submissions across all
// assignments.
func (s *Store) ListByStudent(ctx context.Context, studentID primitive.ObjectID) ([]models.Submission, error) {
	return s.list(ctx, bson.M{"student_id": studentID})
}

// ListByStudents returns all submissions belonging to any of the
// given students. Used for team progress, where the team's whole
// grid is scored at once.
func (s *Store) ListByStudents(ctx context.Context, studentIDs []primitive.ObjectID) ([]models.Submission, error) {
	if len(studentIDs) == 0 {
		return nil, nil
	}
	return s.list(ctx, bson.M{"student_id": bson.M{"$in": studentIDs}})
}

func (s *Store) list(ctx context.Context, filter bson.M) ([]models.Submission, error) {
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: 1}})
	cur, err := s.c.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var subs []models.Submission
	if err := cur.All(ctx, &subs); err != nil {
		return nil, err
	}
	return subs, nil
}
