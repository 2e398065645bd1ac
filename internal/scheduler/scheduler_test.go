package scheduler

import (
	"testing"
	"time"

	"github.com/oncereply/b3log-solo/internal/cache"
	"github.com/oncereply/b3log-solo/internal/pagecache"
	"github.com/oncereply/b3log-solo/internal/service"
	"github.com/oncereply/b3log-solo/internal/store"
	"github.com/oncereply/b3log-solo/internal/testutil"
)

func newScheduler(t *testing.T) *Scheduler {
	t.Helper()

	db, cleanup := testutil.TestDB(t)
	t.Cleanup(cleanup)

	mem := cache.NewMemoryCache(time.Minute)
	t.Cleanup(func() { _ = mem.Close() })

	pages := pagecache.NewManager(0)
	cached := store.NewCached(store.New(db), mem, time.Minute)
	sync := service.NewStatSync(db, cached, pages, "article", testutil.TestLoggerSilent())
	return New(sync, pages, testutil.TestLoggerSilent())
}

func TestStartAndStop(t *testing.T) {
	s := newScheduler(t)

	if err := s.Start("*/10 * * * *"); err != nil {
		t.Fatalf("Start: %v", err)
	}
	if got := len(s.cron.Entries()); got != 1 {
		t.Errorf("registered jobs = %d, want 1", got)
	}
	s.Stop()
}

func TestStartRejectsInvalidSpec(t *testing.T) {
	s := newScheduler(t)

	if err := s.Start("not a cron spec"); err == nil {
		t.Error("Start should reject an invalid cron spec")
	}
}
