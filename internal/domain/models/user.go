// internal/domain/models/user.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Roles a user account can hold. Role is chosen at signup and is
// immutable for the life of the account.
const (
	RoleTeacher = "teacher"
	RoleStudent = "student"
)

// User represents teachers and students.
//
// Profile fields are role-specific: Branch/Year/Mentor are only
// meaningful for students, Experience/Expertise/SectionsHandled only
// for teachers. Unused fields stay at their zero values.
type User struct {
	ID           primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	FullName     string             `bson:"full_name" json:"full_name"`
	FullNameCI   string             `bson:"full_name_ci" json:"full_name_ci"` // lowercase, diacritics-stripped
	Email        string             `bson:"email" json:"email"`
	PasswordHash string             `bson:"password_hash" json:"-"`
	Role         string             `bson:"role" json:"role"` // teacher | student
	Status       string             `bson:"status,omitempty" json:"status,omitempty"`
	AvatarURL    string             `bson:"avatar_url,omitempty" json:"avatar_url,omitempty"`

	// Student profile
	Branch string `bson:"branch,omitempty" json:"branch,omitempty"`
	Year   string `bson:"year,omitempty" json:"year,omitempty"`
	Mentor string `bson:"mentor,omitempty" json:"mentor,omitempty"`

	// Teacher profile
	Experience      int      `bson:"experience,omitempty" json:"experience,omitempty"` // years
	Expertise       []string `bson:"expertise,omitempty" json:"expertise,omitempty"`
	SectionsHandled int      `bson:"sections_handled,omitempty" json:"sections_handled,omitempty"`

	CreatedAt time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt time.Time `bson:"updated_at" json:"updated_at"`
}

// IsTeacher reports whether the user holds the teacher role.
func (u *User) IsTeacher() bool { return u.Role == RoleTeacher }

// IsStudent reports whether the user holds the student role.
func (u *User) IsStudent() bool { return u.Role == RoleStudent }
