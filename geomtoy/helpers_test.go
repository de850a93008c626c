package geomtoy

import (
	"context"
	"log/slog"
)

var testEvents = DeclareEvents("x", "y", "items")

// logRecorder keeps every record logged through it.
type logRecorder struct {
	records []slog.Record
}

func (r *logRecorder) Enabled(context.Context, slog.Level) bool { return true }

func (r *logRecorder) Handle(_ context.Context, rec slog.Record) error {
	r.records = append(r.records, rec.Clone())
	return nil
}

func (r *logRecorder) WithAttrs([]slog.Attr) slog.Handler { return r }
func (r *logRecorder) WithGroup(string) slog.Handler      { return r }

func (r *logRecorder) count(level slog.Level) int {
	n := 0
	for _, rec := range r.records {
		if rec.Level == level {
			n++
		}
	}
	return n
}

func newTestWorld(opts ...Option) (*World, *logRecorder) {
	rec := &logRecorder{}
	opts = append([]Option{WithLogger(slog.New(rec))}, opts...)
	return NewWorld(opts...), rec
}

func newTarget(w *World, label string) *EventTarget {
	t := NewEventTarget(w, testEvents)
	t.SetLabel(label)
	return t
}

func counting(name string, n *int) *Callback {
	return NewCallback(name, func([]Event) { *n++ })
}

func logging(name string, log *[]string) *Callback {
	return NewCallback(name, func([]Event) { *log = append(*log, name) })
}
