// internal/domain/models/assignment.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// RubricCriterion is one scored dimension of an assignment.
//
// Criteria are owned by their assignment and never shared. The ID is
// an opaque string (uuid) rather than an ObjectID because criteria
// live embedded in the assignment document and are referenced from
// review score maps by plain string key.
type RubricCriterion struct {
	ID          string `bson:"id" json:"id"`
	Title       string `bson:"title" json:"title"`
	Description string `bson:"description" json:"description"`
	MaxPoints   int    `bson:"max_points" json:"max_points"` // always > 0
}

// Assignment is a unit of work with a due date and a scoring rubric,
// assigned to one or more teams.
//
// Assignments are immutable once created; the only write after
// creation is deletion. Deleting an assignment does not cascade to
// its submissions or reviews.
type Assignment struct {
	ID          primitive.ObjectID   `bson:"_id" json:"id"`
	Title       string               `bson:"title" json:"title"`
	TitleCI     string               `bson:"title_ci" json:"title_ci"`
	Description string               `bson:"description" json:"description"`
	DueDate     time.Time            `bson:"due_date" json:"due_date"`
	Rubric      []RubricCriterion    `bson:"rubric" json:"rubric"`
	TeamIDs     []primitive.ObjectID `bson:"team_ids" json:"team_ids"`

	CreatedByID primitive.ObjectID `bson:"created_by_id" json:"created_by_id"`
	CreatedAt   time.Time          `bson:"created_at" json:"created_at"`
}

// Criterion returns the rubric criterion with the given id.
func (a *Assignment) Criterion(id string) (RubricCriterion, bool) {
	for _, c := range a.Rubric {
		if c.ID == id {
			return c, true
		}
	}
	return RubricCriterion{}, false
}

// IsOverdue reports whether the due date has passed at the given time.
func (a *Assignment) IsOverdue(now time.Time) bool {
	return a.DueDate.Before(now)
}

// AssignedToTeam reports whether the assignment targets the team.
func (a *Assignment) AssignedToTeam(teamID primitive.ObjectID) bool {
	for _, id := range a.TeamIDs {
		if id == teamID {
			return true
		}
	}
	return false
}
