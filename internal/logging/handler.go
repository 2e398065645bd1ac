// Package logging provides a custom slog handler that mirrors WARN and
// above into the database-backed event log for auditing.
package logging

import (
	"context"
	"database/sql"
	"log/slog"
	"strings"
	"time"

	"github.com/oncereply/b3log-solo/internal/store"
)

// EventLogHandler is a slog.Handler that wraps another handler and also
// writes WARN and ERROR level records to the event log table.
type EventLogHandler struct {
	inner   slog.Handler
	queries *store.Queries
	level   slog.Level
}

// NewEventLogHandler creates an EventLogHandler forwarding WARN and above.
func NewEventLogHandler(inner slog.Handler, db *sql.DB) *EventLogHandler {
	return &EventLogHandler{
		inner:   inner,
		queries: store.New(db),
		level:   slog.LevelWarn,
	}
}

// Enabled implements slog.Handler.
func (h *EventLogHandler) Enabled(ctx context.Context, level slog.Level) bool {
	return h.inner.Enabled(ctx, level)
}

// Handle implements slog.Handler.
func (h *EventLogHandler) Handle(ctx context.Context, r slog.Record) error {
	if err := h.inner.Handle(ctx, r); err != nil {
		return err
	}

	if r.Level >= h.level {
		h.writeToEventLog(r)
	}
	return nil
}

// WithAttrs implements slog.Handler.
func (h *EventLogHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return &EventLogHandler{
		inner:   h.inner.WithAttrs(attrs),
		queries: h.queries,
		level:   h.level,
	}
}

// WithGroup implements slog.Handler.
func (h *EventLogHandler) WithGroup(name string) slog.Handler {
	return &EventLogHandler{
		inner:   h.inner.WithGroup(name),
		queries: h.queries,
		level:   h.level,
	}
}

// writeToEventLog persists a record. Failures here must not recurse into
// logging, so they are silently dropped.
func (h *EventLogHandler) writeToEventLog(r slog.Record) {
	var sb strings.Builder
	sb.WriteString(r.Message)
	r.Attrs(func(a slog.Attr) bool {
		sb.WriteString(" ")
		sb.WriteString(a.Key)
		sb.WriteString("=")
		sb.WriteString(a.Value.String())
		return true
	})

	// Detached context: the triggering request may already be done.
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	_ = h.queries.InsertEventLog(ctx, store.InsertEventLogParams{
		Level:     r.Level.String(),
		Message:   sb.String(),
		Source:    "slog",
		CreatedAt: r.Time,
	})
}
