package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/dukerupert/hearth/internal/auth"
	"github.com/dukerupert/hearth/internal/database"
	"github.com/dukerupert/hearth/internal/store"
)

func setupAuthTest(t *testing.T) (*store.SessionStore, int64) {
	t.Helper()
	db, err := database.Open(":memory:")
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	if _, err := db.Exec("INSERT INTO users (email) VALUES ('user@example.com')"); err != nil {
		t.Fatalf("create user: %v", err)
	}
	return store.NewSessionStore(db), 1
}

func TestRequireAuthRejectsMissingCookie(t *testing.T) {
	sessions, _ := setupAuthTest(t)

	handler := RequireAuth(sessions)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Error("handler should not run")
	}))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest("GET", "/api/houses", nil))

	if rec.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want %d", rec.Code, http.StatusUnauthorized)
	}
}

func TestRequireAuthRejectsUnknownToken(t *testing.T) {
	sessions, _ := setupAuthTest(t)

	handler := RequireAuth(sessions)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Error("handler should not run")
	}))

	req := httptest.NewRequest("GET", "/api/houses", nil)
	req.AddCookie(&http.Cookie{Name: sessionCookieName, Value: "bogus"})

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want %d", rec.Code, http.StatusUnauthorized)
	}
}

func TestRequireAuthAttachesIdentity(t *testing.T) {
	sessions, userID := setupAuthTest(t)

	sess, err := sessions.Create(userID, "valid-token", time.Now().UTC().Add(time.Hour))
	if err != nil {
		t.Fatalf("create session: %v", err)
	}

	var gotID auth.Identity
	handler := RequireAuth(sessions)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotID, _ = auth.FromContext(r.Context())
		w.WriteHeader(http.StatusOK)
	}))

	req := httptest.NewRequest("GET", "/api/houses", nil)
	req.AddCookie(&http.Cookie{Name: sessionCookieName, Value: "valid-token"})

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if gotID.UserID != userID {
		t.Errorf("user = %d, want %d", gotID.UserID, userID)
	}
	if gotID.SessionID != sess.ID {
		t.Errorf("session = %d, want %d", gotID.SessionID, sess.ID)
	}
}
