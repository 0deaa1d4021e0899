package auth_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"go.uber.org/zap"

	"github.com/dalemusser/careerhub/internal/app/system/auth"
)

const testKey = "0123456789ABCDEF0123456789ABCDEF"

func newManager(t *testing.T) *auth.SessionManager {
	t.Helper()
	sm, err := auth.NewSessionManager(testKey, "careerhub-test", "", false, zap.NewNop())
	if err != nil {
		t.Fatalf("NewSessionManager: %v", err)
	}
	return sm
}

func TestNewSessionManager_EmptyKey(t *testing.T) {
	if _, err := auth.NewSessionManager("", "s", "", false, zap.NewNop()); err == nil {
		t.Error("expected error for empty session key")
	}
}

func TestSignInRoundTrip(t *testing.T) {
	sm := newManager(t)

	// Sign in and capture the cookie.
	rec := httptest.NewRecorder()
	req := httptest.NewRequest("POST", "/auth/login", nil)
	user := auth.SessionUser{ID: "507f1f77bcf86cd799439011", Name: "Dana Cruz", Email: "dana@example.edu", Role: "student"}
	if err := sm.SignIn(rec, req, user); err != nil {
		t.Fatalf("SignIn: %v", err)
	}
	cookies := rec.Result().Cookies()
	if len(cookies) == 0 {
		t.Fatal("expected session cookie to be set")
	}

	// Replay the cookie through LoadSessionUser and read the user back.
	var got *auth.SessionUser
	var ok bool
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got, ok = auth.CurrentUser(r)
	})
	req2 := httptest.NewRequest("GET", "/profile", nil)
	for _, c := range cookies {
		req2.AddCookie(c)
	}
	sm.LoadSessionUser(next).ServeHTTP(httptest.NewRecorder(), req2)

	if !ok {
		t.Fatal("expected user in context after sign-in")
	}
	if got.ID != user.ID || got.Role != user.Role || got.Email != user.Email {
		t.Errorf("round-tripped user = %+v, want %+v", got, user)
	}
}

func TestRequireSignedIn_Unauthenticated(t *testing.T) {
	sm := newManager(t)
	h := sm.RequireSignedIn(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Error("handler should not be reached")
	}))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest("GET", "/groups", nil))

	if rec.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want %d", rec.Code, http.StatusUnauthorized)
	}
}

func TestRequireRole(t *testing.T) {
	sm := newManager(t)
	called := false
	h := sm.RequireRole("alumni", "admin")(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
	}))

	// Wrong role → 403.
	rec := httptest.NewRecorder()
	req := auth.WithUser(httptest.NewRequest("POST", "/groups", nil),
		&auth.SessionUser{ID: "abc", Role: "student"})
	h.ServeHTTP(rec, req)
	if rec.Code != http.StatusForbidden {
		t.Errorf("wrong role: status = %d, want %d", rec.Code, http.StatusForbidden)
	}
	if called {
		t.Error("handler reached with wrong role")
	}

	// Allowed role, case-insensitive → pass.
	rec = httptest.NewRecorder()
	req = auth.WithUser(httptest.NewRequest("POST", "/groups", nil),
		&auth.SessionUser{ID: "abc", Role: "Alumni"})
	h.ServeHTTP(rec, req)
	if !called {
		t.Error("handler not reached with allowed role")
	}

	// Not signed in → 401.
	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest("POST", "/groups", nil))
	if rec.Code != http.StatusUnauthorized {
		t.Errorf("anonymous: status = %d, want %d", rec.Code, http.StatusUnauthorized)
	}
}
