// internal/domain/models/review.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// PeerReview statuses. A review is created DRAFT when a reviewer is
// assigned and reaches SUBMITTED (terminal) only through the
// lifecycle engine's submit operation.
const (
	ReviewDraft     = "DRAFT"
	ReviewSubmitted = "SUBMITTED"
)

// PeerReview is one reviewer's scored and written evaluation of
// another student's submission.
//
// Scores maps rubric criterion id to the awarded points. Constructive
// and AIAnalysis are optional enrichments from the AI assist service;
// their absence never blocks a transition.
type PeerReview struct {
	ID           primitive.ObjectID `bson:"_id" json:"id"`
	SubmissionID primitive.ObjectID `bson:"submission_id" json:"submission_id"`
	AssignmentID primitive.ObjectID `bson:"assignment_id" json:"assignment_id"`
	ReviewerID   primitive.ObjectID `bson:"reviewer_id" json:"reviewer_id"`
	AuthorID     primitive.ObjectID `bson:"author_id" json:"author_id"`

	Feedback     string         `bson:"feedback" json:"feedback"`
	Scores       map[string]int `bson:"scores" json:"scores"`
	Constructive *bool          `bson:"constructive,omitempty" json:"constructive,omitempty"`
	AIAnalysis   string         `bson:"ai_analysis,omitempty" json:"ai_analysis,omitempty"`
	Status       string         `bson:"status" json:"status"` // DRAFT | SUBMITTED

	CreatedAt time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt time.Time `bson:"updated_at" json:"updated_at"`
}

// ScoreFor returns the recorded score for a criterion and whether one
// has been recorded at all. A zero score is a valid recorded value.
func (r *PeerReview) ScoreFor(criterionID string) (int, bool) {
	v, ok := r.Scores[criterionID]
	return v, ok
}

// TotalScore sums all recorded criterion scores.
func (r *PeerReview) TotalScore() int {
	total := 0
	for _, v := range r.Scores {
		total += v
	}
	return total
}
