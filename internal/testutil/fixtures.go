package testutil

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/dalemusser/waffle/pantry/text"
	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"golang.org/x/crypto/bcrypt"

	"github.com/peerloop/peerloop/internal/domain/models"
)

// WithChiURLParam adds a chi URL parameter to the request context.
// Use this in handler tests that need to access chi.URLParam values.
func WithChiURLParam(r *http.Request, key, value string) *http.Request {
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add(key, value)
	return r.WithContext(context.WithValue(r.Context(), chi.RouteCtxKey, rctx))
}

// Fixtures provides helper methods for creating test data.
type Fixtures struct {
	db *mongo.Database
	t  *testing.T
}

// NewFixtures creates a new Fixtures instance for the given test database.
func NewFixtures(t *testing.T, db *mongo.Database) *Fixtures {
	t.Helper()
	return &Fixtures{db: db, t: t}
}

// DB returns the underlying database for direct access in tests.
func (f *Fixtures) DB() *mongo.Database {
	return f.db
}

// CreateUser creates a test user with the given name, email and role.
func (f *Fixtures) CreateUser(ctx context.Context, fullName, email, role string) models.User {
	f.t.Helper()

	now := time.Now().UTC()
	user := models.User{
		ID:         primitive.NewObjectID(),
		FullName:   fullName,
		FullNameCI: text.Fold(fullName),
		Email:      email,
		Role:       role,
		Status:     "active",
		CreatedAt:  now,
		UpdatedAt:  now,
	}

	_, err := f.db.Collection("users").InsertOne(ctx, user)
	if err != nil {
		f.t.Fatalf("failed to create test user: %v", err)
	}

	return user
}

// CreatePasswordUser creates a test user who can sign in with the
// given password.
func (f *Fixtures) CreatePasswordUser(ctx context.Context, fullName, email, role, password string) models.User {
	f.t.Helper()

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	if err != nil {
		f.t.Fatalf("failed to hash test password: %v", err)
	}

	u := f.CreateUser(ctx, fullName, email, role)
	_, err = f.db.Collection("users").UpdateOne(ctx,
		bson.M{"_id": u.ID},
		bson.M{"$set": bson.M{"password_hash": string(hash)}})
	if err != nil {
		f.t.Fatalf("failed to set test password: %v", err)
	}
	u.PasswordHash = string(hash)
	return u
}

// CreateTeacher creates a test teacher account.
func (f *Fixtures) CreateTeacher(ctx context.Context, fullName, email string) models.User {
	f.t.Helper()
	return f.CreateUser(ctx, fullName, email, models.RoleTeacher)
}

// CreateStudent creates a test student account.
func (f *Fixtures) CreateStudent(ctx context.Context, fullName, email string) models.User {
	f.t.Helper()
	return f.CreateUser(ctx, fullName, email, models.RoleStudent)
}

// CreateTeam creates a test team with the given members.
func (f *Fixtures) CreateTeam(ctx context.Context, name string, memberIDs ...primitive.ObjectID) models.Team {
	f.t.Helper()

	if memberIDs == nil {
		memberIDs = []primitive.ObjectID{}
	}
	now := time.Now().UTC()
	team := models.Team{
		ID:        primitive.NewObjectID(),
		Name:      name,
		NameCI:    text.Fold(name),
		Section:   "CS-A",
		MemberIDs: memberIDs,
		Status:    "active",
		CreatedAt: now,
		UpdatedAt: now,
	}

	_, err := f.db.Collection("teams").InsertOne(ctx, team)
	if err != nil {
		f.t.Fatalf("failed to create test team: %v", err)
	}

	return team
}

// CreateAssignment creates a test assignment with the given rubric.
func (f *Fixtures) CreateAssignment(ctx context.Context, title string, rubric []models.RubricCriterion, teamIDs ...primitive.ObjectID) models.Assignment {
	f.t.Helper()

	if rubric == nil {
		rubric = []models.RubricCriterion{}
	}
	if teamIDs == nil {
		teamIDs = []primitive.ObjectID{}
	}
	a := models.Assignment{
		ID:          primitive.NewObjectID(),
		Title:       title,
		TitleCI:     text.Fold(title),
		Description: "Test assignment description",
		DueDate:     time.Now().UTC().Add(7 * 24 * time.Hour),
		Rubric:      rubric,
		TeamIDs:     teamIDs,
		CreatedByID: primitive.NewObjectID(),
		CreatedAt:   time.Now().UTC(),
	}

	_, err := f.db.Collection("assignments").InsertOne(ctx, a)
	if err != nil {
		f.t.Fatalf("failed to create test assignment: %v", err)
	}

	return a
}

// StandardRubric returns a three-criterion rubric for workflow tests.
func StandardRubric() []models.RubricCriterion {
	return []models.RubricCriterion{
		{ID: "r1", Title: "Clarity", Description: "Is the work clear?", MaxPoints: 10},
		{ID: "r2", Title: "Depth", Description: "Is the analysis thorough?", MaxPoints: 20},
		{ID: "r3", Title: "Originality", Description: "Is the approach original?", MaxPoints: 20},
	}
}

// CreateSubmission creates a submission with the given status.
func (f *Fixtures) CreateSubmission(ctx context.Context, assignmentID, studentID primitive.ObjectID, status string) models.Submission {
	f.t.Helper()

	now := time.Now().UTC()
	sub := models.Submission{
		ID:           primitive.NewObjectID(),
		AssignmentID: assignmentID,
		StudentID:    studentID,
		Content:      "Test submission content",
		Files:        []string{"draft.pdf"},
		Status:       status,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if sub.TurnedIn() {
		sub.SubmittedAt = &now
	}

	_, err := f.db.Collection("submissions").InsertOne(ctx, sub)
	if err != nil {
		f.t.Fatalf("failed to create test submission: %v", err)
	}

	return sub
}

// CreateDraftReview creates a draft peer review of the submission.
func (f *Fixtures) CreateDraftReview(ctx context.Context, sub models.Submission, reviewerID primitive.ObjectID) models.PeerReview {
	f.t.Helper()

	now := time.Now().UTC()
	review := models.PeerReview{
		ID:           primitive.NewObjectID(),
		SubmissionID: sub.ID,
		AssignmentID: sub.AssignmentID,
		ReviewerID:   reviewerID,
		AuthorID:     sub.StudentID,
		Scores:       map[string]int{},
		Status:       models.ReviewDraft,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	_, err := f.db.Collection("peer_reviews").InsertOne(ctx, review)
	if err != nil {
		f.t.Fatalf("failed to create test review: %v", err)
	}

	return review
}
