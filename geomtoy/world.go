package geomtoy

import (
	"errors"
	"log/slog"
	"slices"

	"github.com/google/uuid"
)

// World is one independent reactive universe. It owns the options, the
// scheduler and the identities of every EventTarget created in it. A World
// is not safe for concurrent use; confine it, and every object in it, to one
// goroutine.
type World struct {
	options   *Options
	scheduler *Scheduler
	logger    *slog.Logger

	// runs when no host microtask queue is configured
	microtasks []func()

	targets []*EventTarget
	byID    map[string]*EventTarget
}

// NewWorld creates a World with its own Options and Scheduler.
func NewWorld(opts ...Option) *World {
	cfg := defaultWorldConfig()
	for _, opt := range opts {
		opt(&cfg)
	}

	w := &World{
		options: &Options{
			epsilon:      cfg.epsilon,
			watchdog:     cfg.watchdog,
			onPriority:   cfg.onPriority,
			bindPriority: cfg.bindPriority,
		},
		logger: cfg.logger,
		byID:   map[string]*EventTarget{},
	}
	if w.logger == nil {
		w.logger = slog.Default()
	}

	queue := cfg.microtask
	if queue == nil {
		queue = func(task func()) {
			w.microtasks = append(w.microtasks, task)
		}
	}
	w.scheduler = newScheduler(w, queue)
	return w
}

// Options returns the world options.
func (w *World) Options() *Options { return w.options }

// Scheduler returns the world scheduler.
func (w *World) Scheduler() *Scheduler { return w.scheduler }

// Logger returns the world logger.
func (w *World) Logger() *slog.Logger { return w.logger }

// NextTick runs fn after the current drain has settled the model.
func (w *World) NextTick(fn func()) {
	w.scheduler.NextTick(fn)
}

// Settle runs queued microtasks, and with them every pending drain cycle,
// until nothing is left. It returns the errors of the drains that ran since
// the last call, typically watchdog trips. With WithMicrotaskQueue the host
// runs the drains and Settle only reports their errors.
func (w *World) Settle() error {
	for len(w.microtasks) > 0 {
		task := w.microtasks[0]
		w.microtasks[0] = nil
		w.microtasks = w.microtasks[1:]
		task()
	}
	return errors.Join(w.scheduler.takeErrors()...)
}

// Pending reports whether a drain is queued and has not run yet.
func (w *World) Pending() bool {
	return len(w.microtasks) > 0 || w.scheduler.flushed
}

// Targets returns the live targets in creation order.
func (w *World) Targets() []*EventTarget {
	return slices.Clone(w.targets)
}

// Lookup finds a live target by uuid.
func (w *World) Lookup(id string) (*EventTarget, bool) {
	t, ok := w.byID[id]
	return t, ok
}

func (w *World) register(t *EventTarget) {
	t.uuid = uuid.NewString()
	w.targets = append(w.targets, t)
	w.byID[t.uuid] = t
}

func (w *World) unregister(t *EventTarget) {
	delete(w.byID, t.uuid)
	if i := slices.Index(w.targets, t); i >= 0 {
		w.targets = slices.Delete(w.targets, i, i+1)
	}
}

// SameWorld returns ErrCrossWorld unless every object belongs to w.
func (w *World) SameWorld(objects ...Reactive) error {
	for _, o := range objects {
		t := targetOf(o)
		if t == nil {
			return ErrNilTarget
		}
		if t.world != w {
			return ErrCrossWorld
		}
	}
	return nil
}
