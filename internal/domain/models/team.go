// internal/domain/models/team.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Team represents a working group of students within a section.
//
// MemberIDs is ordered; the lifecycle engine reads membership but
// never mutates it. Membership changes are a teacher action.
type Team struct {
	ID        primitive.ObjectID   `bson:"_id" json:"id"`
	Name      string               `bson:"name" json:"name"`
	NameCI    string               `bson:"name_ci" json:"name_ci"`
	Section   string               `bson:"section" json:"section"`
	Avatar    string               `bson:"avatar,omitempty" json:"avatar,omitempty"` // short initials for display
	MemberIDs []primitive.ObjectID `bson:"member_ids" json:"member_ids"`

	Status string `bson:"status" json:"status"`

	CreatedAt time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt time.Time `bson:"updated_at" json:"updated_at"`
}

// HasMember reports whether the given student belongs to the team.
func (t *Team) HasMember(studentID primitive.ObjectID) bool {
	for _, id := range t.MemberIDs {
		if id == studentID {
			return true
		}
	}
	return false
}
