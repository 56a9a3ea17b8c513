package signup_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"go.mongodb.org/mongo-driver/bson"
	"go.uber.org/zap"

	"github.com/peerloop/peerloop/internal/app/features/signup"
	"github.com/peerloop/peerloop/internal/app/system/auth"
	"github.com/peerloop/peerloop/internal/domain/models"
	"github.com/peerloop/peerloop/internal/testutil"
)

func newTestHandler(t *testing.T) *signup.Handler {
	t.Helper()
	db := testutil.SetupTestDB(t)
	logger := zap.NewNop()

	if err := auth.InitSessionStore("test-session-key-for-testing-only", "", false, logger); err != nil {
		t.Fatalf("InitSessionStore failed: %v", err)
	}

	return signup.NewHandler(db, logger)
}

func TestSignup_CreatesStudentAndSignsIn(t *testing.T) {
	handler := newTestHandler(t)

	form := url.Values{
		"full_name": {"Arun Mehta"},
		"email":     {"arun@example.com"},
		"role":      {"student"},
		"password":  {"longenough"},
	}
	req := httptest.NewRequest("POST", "/signup", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	rec := httptest.NewRecorder()
	handler.Signup(rec, req)

	if rec.Code != http.StatusSeeOther {
		t.Fatalf("status: got %d, want %d", rec.Code, http.StatusSeeOther)
	}
	if loc := rec.Header().Get("Location"); loc != "/dashboard" {
		t.Errorf("Location: got %q, want %q", loc, "/dashboard")
	}

	var u models.User
	err := handler.DB.Collection("users").
		FindOne(context.Background(), bson.M{"email": "arun@example.com"}).Decode(&u)
	if err != nil {
		t.Fatalf("user not stored: %v", err)
	}
	if u.Role != models.RoleStudent {
		t.Errorf("role: got %q, want %q", u.Role, models.RoleStudent)
	}
	if u.PasswordHash == "" || u.PasswordHash == "longenough" {
		t.Error("password was not hashed")
	}
}
