// internal/domain/models/submission.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Submission statuses. NOT_STARTED is the implicit state of an
// (assignment, student) pair with no submission record; it appears in
// views but is never written to a stored document.
const (
	SubmissionNotStarted = "NOT_STARTED"
	SubmissionInProgress = "IN_PROGRESS"
	SubmissionSubmitted  = "SUBMITTED"
	SubmissionReviewed   = "REVIEWED"
	SubmissionCompleted  = "COMPLETED"
)

// Submission is one student's work product for one assignment.
// Exactly one submission exists per (assignment, student) pair; a
// unique index enforces this.
type Submission struct {
	ID           primitive.ObjectID `bson:"_id" json:"id"`
	AssignmentID primitive.ObjectID `bson:"assignment_id" json:"assignment_id"`
	StudentID    primitive.ObjectID `bson:"student_id" json:"student_id"`
	Content      string             `bson:"content" json:"content"`
	Files        []string           `bson:"files" json:"files"` // upload order, duplicates kept
	SubmittedAt  *time.Time         `bson:"submitted_at,omitempty" json:"submitted_at,omitempty"`
	Status       string             `bson:"status" json:"status"`

	CreatedAt time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt time.Time `bson:"updated_at" json:"updated_at"`
}

// IsValidSubmissionStatus reports whether s is a known stored status.
func IsValidSubmissionStatus(s string) bool {
	switch s {
	case SubmissionInProgress, SubmissionSubmitted, SubmissionReviewed, SubmissionCompleted:
		return true
	}
	return false
}

// TurnedIn reports whether the submission has at least reached SUBMITTED.
func (s *Submission) TurnedIn() bool {
	switch s.Status {
	case SubmissionSubmitted, SubmissionReviewed, SubmissionCompleted:
		return true
	}
	return false
}

// Finished reports whether the submission counts as complete for team
// progress (REVIEWED or COMPLETED).
func (s *Submission) Finished() bool {
	return s.Status == SubmissionReviewed || s.Status == SubmissionCompleted
}
