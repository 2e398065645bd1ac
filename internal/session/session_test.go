package session

import (
	"database/sql"
	"net/http"
	"testing"
	"time"

	"github.com/oncereply/b3log-solo/internal/testutil"
)

func sessionDB(t *testing.T) *sql.DB {
	t.Helper()

	db := testutil.TestMemoryDB(t)
	_, err := db.Exec(`CREATE TABLE sessions (
		token TEXT PRIMARY KEY,
		data BLOB NOT NULL,
		expiry REAL NOT NULL
	)`)
	if err != nil {
		t.Fatalf("creating sessions table: %v", err)
	}
	return db
}

func TestNewCookieSettings(t *testing.T) {
	sm := New(sessionDB(t), true)

	if sm.Lifetime != 24*time.Hour {
		t.Errorf("Lifetime = %v, want 24h", sm.Lifetime)
	}
	if !sm.Cookie.HttpOnly {
		t.Error("session cookie must be HttpOnly")
	}
	if sm.Cookie.SameSite != http.SameSiteLaxMode {
		t.Errorf("SameSite = %v, want Lax", sm.Cookie.SameSite)
	}
	if sm.Cookie.Secure {
		t.Error("development cookies must not require HTTPS")
	}

	if prod := New(sessionDB(t), false); !prod.Cookie.Secure {
		t.Error("production cookies must be Secure")
	}
}

func TestNewStoreRoundTrip(t *testing.T) {
	db := sessionDB(t)
	sm := New(db, true)

	if err := sm.Store.Commit("tok1", []byte("payload"), time.Now().Add(time.Hour)); err != nil {
		t.Fatalf("Commit: %v", err)
	}

	data, found, err := sm.Store.Find("tok1")
	if err != nil {
		t.Fatalf("Find: %v", err)
	}
	if !found || string(data) != "payload" {
		t.Errorf("Find = %q, %v", data, found)
	}

	// Expired tokens are not returned.
	if err := sm.Store.Commit("tok2", []byte("old"), time.Now().Add(-time.Hour)); err != nil {
		t.Fatalf("Commit: %v", err)
	}
	if _, found, err := sm.Store.Find("tok2"); err != nil || found {
		t.Errorf("expired token: found = %v, err = %v", found, err)
	}

	if err := sm.Store.Delete("tok1"); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if _, found, _ := sm.Store.Find("tok1"); found {
		t.Error("token survived Delete")
	}

	var n int
	if err := db.QueryRow(`SELECT COUNT(*) FROM sessions`).Scan(&n); err != nil {
		t.Fatalf("counting sessions: %v", err)
	}
	if n != 1 {
		t.Errorf("rows = %d, want 1 (only the expired token remains)", n)
	}
}
