package teamstore_test

import (
	"testing"

	"go.mongodb.org/mongo-driver/bson/primitive"

	teamstore "github.com/peerloop/peerloop/internal/app/store/teams"
	"github.com/peerloop/peerloop/internal/domain/models"
	"github.com/peerloop/peerloop/internal/testutil"
)

func TestStore_Create(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := teamstore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	created, err := store.Create(ctx, models.Team{
		Name:    "Code Crusaders",
		Section: "CS-A",
	})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	if created.ID == primitive.NilObjectID {
		t.Error("expected ID to be assigned")
	}
	if created.NameCI == "" {
		t.Error("expected NameCI to be set")
	}
	if created.Avatar != "CC" {
		t.Errorf("expected avatar initials 'CC', got %q", created.Avatar)
	}
	if created.MemberIDs == nil {
		t.Error("expected MemberIDs to be non-nil")
	}
	if created.Status != "active" {
		t.Errorf("expected default status 'active', got %q", created.Status)
	}
}

func TestStore_ListByMember(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := teamstore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	studentID := primitive.NewObjectID()
	otherID := primitive.NewObjectID()

	_, err := store.Create(ctx, models.Team{Name: "Alpha", MemberIDs: []primitive.ObjectID{studentID}})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	_, err = store.Create(ctx, models.Team{Name: "Beta", MemberIDs: []primitive.ObjectID{otherID}})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	teams, err := store.ListByMember(ctx, studentID)
	if err != nil {
		t.Fatalf("ListByMember failed: %v", err)
	}
	if len(teams) != 1 || teams[0].Name != "Alpha" {
		t.Errorf("ListByMember: got %d teams", len(teams))
	}
}

func TestStore_SetMembers(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := teamstore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	created, err := store.Create(ctx, models.Team{
		Name:      "Alpha",
		MemberIDs: []primitive.ObjectID{primitive.NewObjectID()},
	})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	replacement := primitive.NewObjectID()
	if err := store.SetMembers(ctx, created.ID, []primitive.ObjectID{replacement}); err != nil {
		t.Fatalf("SetMembers failed: %v", err)
	}

	updated, err := store.GetByID(ctx, created.ID)
	if err != nil {
		t.Fatalf("GetByID failed: %v", err)
	}
	if len(updated.MemberIDs) != 1 || updated.MemberIDs[0] != replacement {
		t.Errorf("members: got %v", updated.MemberIDs)
	}
}

func TestStore_Delete(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := teamstore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	created, err := store.Create(ctx, models.Team{Name: "Alpha"})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	deleted, err := store.Delete(ctx, created.ID)
	if err != nil {
		t.Fatalf("Delete failed: %v", err)
	}
	if deleted != 1 {
		t.Errorf("deleted: got %d, want 1", deleted)
	}

	if _, err := store.GetByID(ctx, created.ID); err == nil {
		t.Error("team still present after delete")
	}

	deleted, err = store.Delete(ctx, created.ID)
	if err != nil {
		t.Fatalf("second Delete failed: %v", err)
	}
	if deleted != 0 {
		t.Errorf("second delete: got %d, want 0", deleted)
	}
}
