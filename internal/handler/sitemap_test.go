package handler

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/oncereply/b3log-solo/internal/cache"
	"github.com/oncereply/b3log-solo/internal/sitemap"
	"github.com/oncereply/b3log-solo/internal/store"
	"github.com/oncereply/b3log-solo/internal/testutil"
)

func TestSitemapGet(t *testing.T) {
	db, cleanup := testutil.TestDB(t)
	t.Cleanup(cleanup)

	mem := cache.NewMemoryCache(time.Minute)
	t.Cleanup(func() { _ = mem.Close() })

	q := store.New(db)
	cached := store.NewCached(q, mem, time.Minute)

	now := time.Now()
	if err := q.CreateArticle(context.Background(), store.CreateArticleParams{
		ID: "a1", Title: "Hello", Permalink: "/posts/hello", Published: true,
		CreatedAt: now, UpdatedAt: now,
	}); err != nil {
		t.Fatalf("CreateArticle: %v", err)
	}

	builder := sitemap.NewBuilder(cached, "blog.example.com", testutil.TestLoggerSilent())
	h := NewSitemapHandler(builder, testutil.TestLoggerSilent())

	rec := httptest.NewRecorder()
	h.Get(rec, httptest.NewRequest(http.MethodGet, "/sitemap.xml", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	if ct := rec.Header().Get("Content-Type"); !strings.HasPrefix(ct, "text/xml") {
		t.Errorf("Content-Type = %q", ct)
	}
	body := rec.Body.String()
	if !strings.Contains(body, "http://blog.example.com/posts/hello") {
		t.Errorf("body missing article URL:\n%s", body)
	}
}

func TestSitemapGetFailure(t *testing.T) {
	db, cleanup := testutil.TestDB(t)
	t.Cleanup(cleanup)

	mem := cache.NewMemoryCache(time.Minute)
	t.Cleanup(func() { _ = mem.Close() })

	cached := store.NewCached(store.New(db), mem, time.Minute)
	if _, err := db.ExecContext(context.Background(), `DROP TABLE articles`); err != nil {
		t.Fatalf("DROP TABLE: %v", err)
	}

	builder := sitemap.NewBuilder(cached, "blog.example.com", testutil.TestLoggerSilent())
	h := NewSitemapHandler(builder, testutil.TestLoggerSilent())

	rec := httptest.NewRecorder()
	h.Get(rec, httptest.NewRequest(http.MethodGet, "/sitemap.xml", nil))

	if rec.Code != http.StatusServiceUnavailable {
		t.Errorf("status = %d, want 503", rec.Code)
	}
	if strings.Contains(rec.Body.String(), "<urlset") {
		t.Error("failure response must not carry a partial document")
	}
}
