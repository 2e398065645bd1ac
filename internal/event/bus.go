// Package event provides the in-process event bus that decouples content
// writes from their notification side effects, plus the outbound
// notification listeners.
package event

import (
	"context"
	"log/slog"
	"sync"
	"time"
)

// Type identifies an event kind.
type Type string

// Event types published by the write paths.
const (
	TypeArticleUpdated Type = "article.updated"
	TypeCommentAdded   Type = "comment.added"
)

// Event carries a typed payload to subscribed listeners.
type Event struct {
	Type      Type
	Timestamp time.Time
	Data      any
}

// Listener handles events of a single type. A listener error is logged and
// dropped; it can never fail the publishing write path.
type Listener interface {
	Type() Type
	Handle(ctx context.Context, e Event) error
}

// Bus is a buffered in-process event bus with a worker pool.
type Bus struct {
	logger  *slog.Logger
	queue   chan Event
	workers int
	wg      sync.WaitGroup
	done    chan struct{}

	mu        sync.RWMutex
	listeners map[Type][]Listener
	running   bool
}

// NewBus creates an event bus with the given number of workers.
func NewBus(logger *slog.Logger, workers int) *Bus {
	if workers <= 0 {
		workers = 3
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Bus{
		logger:    logger,
		queue:     make(chan Event, 100),
		workers:   workers,
		done:      make(chan struct{}),
		listeners: make(map[Type][]Listener),
	}
}

// Subscribe registers a listener for its event type.
func (b *Bus) Subscribe(l Listener) {
	b.mu.Lock()
	b.listeners[l.Type()] = append(b.listeners[l.Type()], l)
	b.mu.Unlock()
}

// Publish enqueues an event for asynchronous delivery. It never blocks the
// caller: when the queue is full the event is dropped with a warning, since
// every listener is best-effort by contract.
func (b *Bus) Publish(eventType Type, data any) {
	e := Event{Type: eventType, Timestamp: time.Now().UTC(), Data: data}

	select {
	case b.queue <- e:
	default:
		b.logger.Warn("event queue full, dropping event", "type", eventType)
	}
}

// Start starts the worker goroutines.
func (b *Bus) Start(ctx context.Context) {
	b.mu.Lock()
	if b.running {
		b.mu.Unlock()
		return
	}
	b.running = true
	b.mu.Unlock()

	b.logger.Info("starting event bus", "workers", b.workers)

	for i := 0; i < b.workers; i++ {
		b.wg.Add(1)
		go b.worker(ctx, i)
	}
}

// Stop stops the bus and waits for in-flight deliveries to finish.
func (b *Bus) Stop() {
	b.mu.Lock()
	if !b.running {
		b.mu.Unlock()
		return
	}
	b.running = false
	b.mu.Unlock()

	close(b.done)
	b.wg.Wait()
	b.logger.Info("event bus stopped")
}

func (b *Bus) worker(ctx context.Context, id int) {
	defer b.wg.Done()

	for {
		select {
		case <-b.done:
			return
		case <-ctx.Done():
			return
		case e := <-b.queue:
			b.deliver(ctx, e)
		}
	}
}

// deliver fans an event out to its listeners. Errors and panics are
// contained here.
func (b *Bus) deliver(ctx context.Context, e Event) {
	b.mu.RLock()
	listeners := b.listeners[e.Type]
	b.mu.RUnlock()

	for _, l := range listeners {
		func() {
			defer func() {
				if r := recover(); r != nil {
					b.logger.Error("event listener panicked", "type", e.Type, "panic", r)
				}
			}()

			if err := l.Handle(ctx, e); err != nil {
				b.logger.Error("event listener failed", "type", e.Type, "error", err)
			}
		}()
	}
}
