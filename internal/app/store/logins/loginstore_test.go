package loginstore_test

import (
	"net/http/httptest"
	"testing"

	"go.mongodb.org/mongo-driver/bson/primitive"

	loginstore "github.com/peerloop/peerloop/internal/app/store/logins"
	"github.com/peerloop/peerloop/internal/testutil"
)

func TestStore_RecordFrom(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := loginstore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	userID := primitive.NewObjectID()

	req := httptest.NewRequest("POST", "/login", nil)
	req.Header.Set("X-Forwarded-For", "203.0.113.7, 10.0.0.1")
	req.Header.Set("User-Agent", "test-browser")

	if err := store.RecordFrom(ctx, req, userID, "priya@example.com"); err != nil {
		t.Fatalf("RecordFrom failed: %v", err)
	}

	recs, err := store.ListByUser(ctx, userID, 10)
	if err != nil {
		t.Fatalf("ListByUser failed: %v", err)
	}
	if len(recs) != 1 {
		t.Fatalf("records: got %d, want 1", len(recs))
	}
	if recs[0].IP != "203.0.113.7" {
		t.Errorf("IP: got %q, want first X-Forwarded-For entry", recs[0].IP)
	}
	if recs[0].Email != "priya@example.com" || recs[0].UserAgent != "test-browser" {
		t.Errorf("record: got %+v", recs[0])
	}
	if recs[0].CreatedAt.IsZero() {
		t.Error("CreatedAt not stamped")
	}
}

func TestStore_ListByUser_NewestFirst(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := loginstore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	userID := primitive.NewObjectID()
	req := httptest.NewRequest("POST", "/login", nil)

	for i := 0; i < 3; i++ {
		if err := store.RecordFrom(ctx, req, userID, "priya@example.com"); err != nil {
			t.Fatalf("RecordFrom failed: %v", err)
		}
	}

	recs, err := store.ListByUser(ctx, userID, 2)
	if err != nil {
		t.Fatalf("ListByUser failed: %v", err)
	}
	if len(recs) != 2 {
		t.Fatalf("records: got %d, want limit 2", len(recs))
	}
	if recs[0].CreatedAt.Before(recs[1].CreatedAt) {
		t.Error("expected newest first")
	}
}
