package event

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/oncereply/b3log-solo/internal/testutil"
)

type recordingListener struct {
	eventType Type
	calls     atomic.Int64
	lastData  atomic.Value
	err       error
	panics    bool
}

func (l *recordingListener) Type() Type { return l.eventType }

func (l *recordingListener) Handle(_ context.Context, e Event) error {
	l.calls.Add(1)
	l.lastData.Store(e.Data)
	if l.panics {
		panic("listener boom")
	}
	return l.err
}

func waitForCalls(t *testing.T, l *recordingListener, want int64) {
	t.Helper()

	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if l.calls.Load() >= want {
			return
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatalf("listener calls = %d, want %d", l.calls.Load(), want)
}

func TestBusDeliversToSubscribedType(t *testing.T) {
	bus := NewBus(testutil.TestLoggerSilent(), 2)

	article := &recordingListener{eventType: TypeArticleUpdated}
	comment := &recordingListener{eventType: TypeCommentAdded}
	bus.Subscribe(article)
	bus.Subscribe(comment)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	bus.Start(ctx)
	defer bus.Stop()

	bus.Publish(TypeArticleUpdated, "payload")

	waitForCalls(t, article, 1)
	if got := article.lastData.Load(); got != "payload" {
		t.Errorf("payload = %v", got)
	}
	if comment.calls.Load() != 0 {
		t.Errorf("comment listener called %d times for an article event", comment.calls.Load())
	}
}

func TestBusFanOut(t *testing.T) {
	bus := NewBus(testutil.TestLoggerSilent(), 1)

	a := &recordingListener{eventType: TypeArticleUpdated}
	b := &recordingListener{eventType: TypeArticleUpdated}
	bus.Subscribe(a)
	bus.Subscribe(b)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	bus.Start(ctx)
	defer bus.Stop()

	bus.Publish(TypeArticleUpdated, nil)

	waitForCalls(t, a, 1)
	waitForCalls(t, b, 1)
}

func TestBusContainsFailuresAndPanics(t *testing.T) {
	bus := NewBus(testutil.TestLoggerSilent(), 1)

	failing := &recordingListener{eventType: TypeArticleUpdated, err: errors.New("boom")}
	panicking := &recordingListener{eventType: TypeArticleUpdated, panics: true}
	healthy := &recordingListener{eventType: TypeArticleUpdated}
	bus.Subscribe(failing)
	bus.Subscribe(panicking)
	bus.Subscribe(healthy)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	bus.Start(ctx)
	defer bus.Stop()

	bus.Publish(TypeArticleUpdated, nil)
	bus.Publish(TypeArticleUpdated, nil)

	// Every listener keeps receiving despite its neighbors misbehaving.
	waitForCalls(t, failing, 2)
	waitForCalls(t, panicking, 2)
	waitForCalls(t, healthy, 2)
}

func TestBusPublishNeverBlocks(t *testing.T) {
	// Not started, so nothing drains the queue.
	bus := NewBus(testutil.TestLoggerSilent(), 1)

	done := make(chan struct{})
	go func() {
		for i := 0; i < 500; i++ {
			bus.Publish(TypeArticleUpdated, i)
		}
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("Publish blocked on a full queue")
	}
}

func TestBusStopIdempotent(t *testing.T) {
	bus := NewBus(testutil.TestLoggerSilent(), 1)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	bus.Start(ctx)
	bus.Start(ctx) // second start is a no-op

	bus.Stop()
	bus.Stop() // second stop is a no-op
}
