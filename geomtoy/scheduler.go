package geomtoy

import (
	"time"

	mapset "github.com/deckarep/golang-set/v2"
)

// Stats counts scheduler activity over the lifetime of a World.
type Stats struct {
	// Passes is the number of drain cycles.
	Passes uint64
	// Serviced is the number of objects whose pending events were flushed.
	Serviced uint64
	// Invocations is the number of handler callback calls.
	Invocations uint64
	// RecursiveSkips counts recursive-effect handlers skipped by the guard.
	RecursiveSkips uint64
	// WatchdogTrips counts aborted internal drains.
	WatchdogTrips uint64
	// Abandoned counts objects dropped by watchdog trips.
	Abandoned uint64
	// Ticks counts NextTick callbacks run.
	Ticks uint64
}

type guardKey struct {
	cb      *Callback
	context *EventTarget
}

// Scheduler batches the pending work of every EventTarget of a World into
// drain cycles. A cycle starts on the microtask after the first schedule
// request, drains the internal queue of objects (including objects queued
// while draining) under a wall-clock watchdog and then runs the NextTick
// callbacks.
type Scheduler struct {
	world     *World
	microtask func(func())

	internal []*EventTarget
	external []func()

	// a drain is queued or running
	flushed bool
	// the internal queue is being drained
	draining bool

	// budget of the running internal drain
	start  time.Time
	budget time.Duration

	guard mapset.Set[guardKey]
	errs  []error
	stats Stats
}

func newScheduler(w *World, microtask func(func())) *Scheduler {
	return &Scheduler{
		world:     w,
		microtask: microtask,
		guard:     mapset.NewThreadUnsafeSet[guardKey](),
	}
}

// NextTick queues fn to run once the internal queue of the next, or current,
// drain cycle is empty. NextTick callbacks are not guarded or timed.
func (s *Scheduler) NextTick(fn func()) {
	if fn == nil {
		return
	}
	s.external = append(s.external, fn)
	s.tick()
}

// Flushing reports whether a drain cycle is queued or running.
func (s *Scheduler) Flushing() bool { return s.flushed }

// Draining reports whether the internal queue is being drained right now.
func (s *Scheduler) Draining() bool { return s.draining }

// MarkCallback records that cb ran for context in the current drain cycle.
func (s *Scheduler) MarkCallback(cb *Callback, context *EventTarget) {
	s.guard.Add(guardKey{cb: cb, context: context})
}

// IsCallbackInvokedBy reports whether cb already ran for context in the
// current drain cycle.
func (s *Scheduler) IsCallbackInvokedBy(cb *Callback, context *EventTarget) bool {
	return s.guard.Contains(guardKey{cb: cb, context: context})
}

// Stats returns a copy of the counters.
func (s *Scheduler) Stats() Stats { return s.stats }

func (s *Scheduler) queueInternal(t *EventTarget) {
	s.internal = append(s.internal, t)
	s.tick()
}

func (s *Scheduler) tick() {
	if s.flushed {
		return
	}
	s.flushed = true
	s.microtask(s.flush)
}

func (s *Scheduler) flush() {
	defer func() {
		s.draining = false
		s.guard.Clear()
		s.flushed = false
		if len(s.internal) > 0 || len(s.external) > 0 {
			s.tick()
		}
	}()

	s.stats.Passes++
	s.guard.Clear()
	s.drainInternal()
	s.drainExternal()
}

func (s *Scheduler) drainInternal() {
	s.draining = true
	defer func() { s.draining = false }()

	s.budget = s.world.options.Watchdog()
	s.start = time.Now()
	for len(s.internal) > 0 {
		if s.expired() {
			s.abort(0)
			return
		}
		t := s.internal[0]
		s.internal[0] = nil
		s.internal = s.internal[1:]

		completed := t.flushPending()
		s.stats.Serviced++
		if !completed {
			s.abort(1)
			return
		}
	}
}

// expired reports whether the running internal drain is past its budget.
// Targets consult it before every handler invocation.
func (s *Scheduler) expired() bool {
	return s.draining && time.Since(s.start) > s.budget
}

// abort drops the rest of the internal queue. interrupted counts the object
// whose flush was cut short, if any.
func (s *Scheduler) abort(interrupted int) {
	elapsed, budget := time.Since(s.start), s.budget
	abandoned := s.internal
	s.internal = nil
	for _, t := range abandoned {
		t.abandon()
	}

	n := len(abandoned) + interrupted
	err := &WatchdogError{Elapsed: elapsed, Budget: budget, Abandoned: n}
	s.stats.WatchdogTrips++
	s.stats.Abandoned += uint64(n)
	s.errs = append(s.errs, err)
	s.world.logger.Error("geomtoy: propagation aborted, possible infinite recursion",
		"elapsed", elapsed,
		"budget", budget,
		"abandoned", n,
	)
}

// drainExternal runs the callbacks queued so far. Callbacks queued by them
// wait for the next cycle.
func (s *Scheduler) drainExternal() {
	queue := s.external
	s.external = nil
	for i, fn := range queue {
		queue[i] = nil
		fn()
		s.stats.Ticks++
	}
}

func (s *Scheduler) takeErrors() []error {
	errs := s.errs
	s.errs = nil
	return errs
}
