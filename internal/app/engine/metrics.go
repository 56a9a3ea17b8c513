// internal/app/engine/metrics.go
package engine

import (
	"context"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/peerloop/peerloop/internal/domain/lifecycle"
	"github.com/peerloop/peerloop/internal/domain/models"
)

// Standing is a student's derived position: overall progress, badge
// tier and the raw activity counts behind them.
type Standing struct {
	Finished         int
	TotalAssignments int
	ReviewsDone      int
	Progress         int
	Badge            string
}

// AssignmentProgress computes the turned-in percentage for one
// assignment over its existing submissions.
func (e *Engine) AssignmentProgress(ctx context.Context, assignmentID primitive.ObjectID) (int, error) {
	subs, err := e.subs.ListByAssignment(ctx, assignmentID)
	if err != nil {
		return 0, err
	}
	return lifecycle.AssignmentProgress(subs), nil
}

// TeamProgress computes a team's completion over the full grid of
// all assignments times its members.
func (e *Engine) TeamProgress(ctx context.Context, team models.Team) (int, error) {
	assignmentCount, err := e.assignments.Count(ctx)
	if err != nil {
		return 0, err
	}
	subs, err := e.subs.ListByStudents(ctx, team.MemberIDs)
	if err != nil {
		return 0, err
	}
	return lifecycle.TeamProgress(subs, int(assignmentCount), len(team.MemberIDs)), nil
}

// TeamAssignmentProgress computes one team's turned-in share on one
// assignment.
func (e *Engine) TeamAssignmentProgress(ctx context.Context, assignmentID primitive.ObjectID, team models.Team) (int, error) {
	if len(team.MemberIDs) == 0 {
		return 0, nil
	}
	subs, err := e.subs.ListByStudents(ctx, team.MemberIDs)
	if err != nil {
		return 0, err
	}
	onAssignment := subs[:0:0]
	for _, s := range subs {
		if s.AssignmentID == assignmentID {
			onAssignment = append(onAssignment, s)
		}
	}
	return lifecycle.TeamAssignmentProgress(onAssignment, len(team.MemberIDs)), nil
}

// StudentStanding derives a student's overall progress and badge from
// their finished submissions and completed reviews.
func (e *Engine) StudentStanding(ctx context.Context, studentID primitive.ObjectID) (Standing, error) {
	subs, err := e.subs.ListByStudent(ctx, studentID)
	if err != nil {
		return Standing{}, err
	}
	finished := 0
	for i := range subs {
		if subs[i].Finished() {
			finished++
		}
	}

	total, err := e.assignments.Count(ctx)
	if err != nil {
		return Standing{}, err
	}
	reviewsDone, err := e.reviews.CountSubmittedByReviewer(ctx, studentID)
	if err != nil {
		return Standing{}, err
	}

	return Standing{
		Finished:         finished,
		TotalAssignments: int(total),
		ReviewsDone:      int(reviewsDone),
		Progress:         lifecycle.StudentProgress(finished, int(total)),
		Badge:            lifecycle.BadgeTier(finished, int(reviewsDone)),
	}, nil
}
