package geomtoy

import (
	"fmt"
	"slices"
)

// Reactive is implemented by everything that takes part in propagation,
// usually by embedding *EventTarget.
type Reactive interface {
	Reactive() *EventTarget
}

func targetOf(r Reactive) *EventTarget {
	if r == nil {
		return nil
	}
	return r.Reactive()
}

// EventTarget is the reactive base of shapes. It records changes reported
// with Trigger, schedules itself with the World scheduler once per pass and
// delivers the recorded events to its handlers when the scheduler services it.
type EventTarget struct {
	world    *World
	uuid     string
	declared *EventSet
	label    string

	muted    bool
	disposed bool

	handlers []*handler
	cache    *EventCache

	// told the scheduler about itself this pass
	scheduled bool
	// running its handlers
	handling bool
}

// NewEventTarget creates a target in w declaring the events in declared. It
// panics when w is nil.
func NewEventTarget(w *World, declared *EventSet) *EventTarget {
	if w == nil {
		panic(ErrNilTarget)
	}
	if declared == nil {
		declared = DeclareEvents()
	}
	t := &EventTarget{
		world:    w,
		declared: declared,
		cache:    NewEventCache(),
	}
	w.register(t)
	return t
}

// Reactive implements Reactive.
func (t *EventTarget) Reactive() *EventTarget { return t }

// UUID returns the identity of the target.
func (t *EventTarget) UUID() string { return t.uuid }

// World returns the owning world.
func (t *EventTarget) World() *World { return t.world }

// Events returns the declared events.
func (t *EventTarget) Events() *EventSet { return t.declared }

// Label returns the optional display name.
func (t *EventTarget) Label() string { return t.label }

// SetLabel sets the display name used by String and dumps.
func (t *EventTarget) SetLabel(label string) { t.label = label }

func (t *EventTarget) String() string {
	if t == nil {
		return "<nil>"
	}
	if t.label != "" {
		return t.label
	}
	if len(t.uuid) > 8 {
		return t.uuid[:8]
	}
	return t.uuid
}

// Muted reports whether triggers are dropped.
func (t *EventTarget) Muted() bool { return t.muted }

// Mute drops every trigger until Unmute. Dropped changes are lost, not deferred.
func (t *EventTarget) Mute() { t.muted = true }

// Unmute resumes recording triggers.
func (t *EventTarget) Unmute() { t.muted = false }

// Scheduled reports whether the target is queued with the scheduler.
func (t *EventTarget) Scheduled() bool { return t.scheduled }

// Handling reports whether the target is running its handlers.
func (t *EventTarget) Handling() bool { return t.handling }

// Disposed reports whether Dispose was called.
func (t *EventTarget) Disposed() bool { return t.disposed }

// Pending returns the events recorded and not delivered yet.
func (t *EventTarget) Pending() []Event {
	out := make([]Event, 0, t.cache.Len())
	t.cache.Each(func(e Event) bool {
		out = append(out, e)
		return true
	})
	return out
}

// Handlers describes the registered handlers in execution order.
func (t *EventTarget) Handlers() []HandlerInfo {
	out := make([]HandlerInfo, len(t.handlers))
	for i, h := range t.handlers {
		out[i] = h.info()
	}
	return out
}

// On registers cb for every whitespace separated pattern of eventPattern.
// Patterns naming undeclared events are dropped with a warning, so is a
// registration repeating an existing pattern and callback.
func (t *EventTarget) On(eventPattern string, cb *Callback, opts ...HandlerOption) error {
	if t.disposed {
		return ErrDisposed
	}
	if cb == nil {
		return ErrNilCallback
	}
	raws := splitPatterns(eventPattern)
	if len(raws) == 0 {
		return ErrEmptyPattern
	}

	cfg := buildHandlerConfig(t.world.options.onPriority, opts)
	for _, raw := range raws {
		if err := validatePattern(raw, t.declared); err != nil {
			t.warn("pattern dropped", "pattern", raw, "err", err)
			continue
		}
		t.addHandler(&handler{
			pattern:   raw,
			match:     resolvePattern(raw, t.declared),
			cb:        cb,
			context:   t,
			priority:  cfg.priority,
			recursive: cfg.recursive,
		})
	}
	return nil
}

// Off removes the On handlers of cb for every pattern of eventPattern.
func (t *EventTarget) Off(eventPattern string, cb *Callback) error {
	if cb == nil {
		return ErrNilCallback
	}
	for _, raw := range splitPatterns(eventPattern) {
		t.removeHandlers(func(h *handler) bool {
			return h.related == nil && h.same(raw, cb, t)
		})
	}
	return nil
}

// Clear removes every handler when eventPattern is blank, otherwise every
// handler whose stored pattern equals one of its patterns.
func (t *EventTarget) Clear(eventPattern string) {
	raws := splitPatterns(eventPattern)
	if len(raws) == 0 {
		t.handlers = nil
		return
	}
	t.removeHandlers(func(h *handler) bool {
		return slices.Contains(raws, h.pattern)
	})
}

// Bind installs cb on the target of every pair, with t as context. When
// cb runs it receives one event per distinct target of pairs: the real event
// for the target that fired and an empty event for the others.
//
// Unless WithImmediately(false) is given cb runs once before Bind returns,
// with an empty event per target. Pairs from another world fail the whole
// call with ErrCrossWorld; nil targets and bad patterns are skipped.
func (t *EventTarget) Bind(pairs []Pair, cb *Callback, opts ...HandlerOption) error {
	if t.disposed {
		return ErrDisposed
	}
	if cb == nil {
		return ErrNilCallback
	}

	valid := make([]Pair, 0, len(pairs))
	for _, p := range pairs {
		target := targetOf(p.Target)
		switch {
		case target == nil:
			t.warn("invalid bind pair, nil target", "pattern", p.Pattern)
			continue
		case target.world != t.world:
			return fmt.Errorf("bind %s to %s: %w", t, target, ErrCrossWorld)
		case target.disposed:
			t.warn("invalid bind pair, disposed target", "target", target.String(), "pattern", p.Pattern)
			continue
		}
		valid = append(valid, p)
	}

	related := relatedTargets(valid)
	cfg := buildHandlerConfig(t.world.options.bindPriority, opts)
	for _, p := range valid {
		target := targetOf(p.Target)
		raws := splitPatterns(p.Pattern)
		if len(raws) == 0 {
			t.warn("invalid bind pair, empty pattern", "target", target.String())
			continue
		}
		for _, raw := range raws {
			if err := validatePattern(raw, target.declared); err != nil {
				t.warn("pattern dropped", "target", target.String(), "pattern", raw, "err", err)
				continue
			}
			target.addHandler(&handler{
				pattern:   raw,
				match:     resolvePattern(raw, target.declared),
				cb:        cb,
				context:   t,
				related:   related,
				priority:  cfg.priority,
				recursive: cfg.recursive,
			})
		}
	}

	if cfg.immediately && len(related) > 0 {
		events := make([]Event, len(related))
		for i, rt := range related {
			events[i] = EmptyEvent(rt)
		}
		cb.call(events)
	}
	return nil
}

// Unbind removes the handlers Bind installed for cb and t on the pairs.
func (t *EventTarget) Unbind(pairs []Pair, cb *Callback) error {
	if cb == nil {
		return ErrNilCallback
	}
	for _, p := range pairs {
		target := targetOf(p.Target)
		if target == nil {
			t.warn("invalid unbind pair, nil target", "pattern", p.Pattern)
			continue
		}
		for _, raw := range splitPatterns(p.Pattern) {
			target.removeHandlers(func(h *handler) bool {
				return h.related != nil && h.same(raw, cb, t)
			})
		}
	}
	return nil
}

// Trigger records e for delivery in the coming pass. It is meant for shape
// setters, which call it only after detecting a genuine change. Repeated
// triggers of the same event before the pass collapse into one delivery.
func (t *EventTarget) Trigger(e Event) {
	if t.muted || t.disposed {
		return
	}
	if e.target != t {
		t.warn("event for another target dropped", "event", e.String())
		return
	}
	switch e.kind {
	case KindSimple, KindCollection:
	default:
		t.warn("only simple and collection events can be triggered", "event", e.String())
		return
	}
	if !t.declared.Has(e.name) {
		t.warn("undeclared event dropped", "event", e.String())
		return
	}

	t.cache.Add(e)
	if !t.scheduled {
		t.scheduled = true
		t.world.scheduler.queueInternal(t)
	}
}

// Dispose detaches the target from its world. Its handlers and pending events
// are dropped and handlers it installed on other targets become inert and are
// pruned the next time those targets flush.
func (t *EventTarget) Dispose() {
	if t.disposed {
		return
	}
	t.disposed = true
	t.handlers = nil
	t.cache.Clear()
	t.world.unregister(t)
}

// flushPending delivers the cached events to a snapshot of the handlers.
// Handlers added meanwhile wait for the next pass, handlers removed meanwhile
// still run. It reports false when the drain budget ran out before every
// handler got its events.
func (t *EventTarget) flushPending() bool {
	t.handling = true
	defer t.abandon()

	s := t.world.scheduler
	snapshot := slices.Clone(t.handlers)
	stale, expired := false, false
	for _, h := range snapshot {
		if h.context.disposed {
			stale = true
			continue
		}

		checked, skip := false, false
		h.match.each(h.pattern, t, t.cache, func(e Event) bool {
			if s.expired() {
				expired = true
				return false
			}
			if !checked {
				checked = true
				skip = h.recursive && s.IsCallbackInvokedBy(h.cb, h.context)
				if skip {
					s.stats.RecursiveSkips++
				}
			}
			if skip {
				return false
			}
			t.invoke(h, e)
			return true
		})
		if checked && !skip {
			s.MarkCallback(h.cb, h.context)
		}
		if expired {
			break
		}
	}

	if stale {
		t.removeHandlers(func(h *handler) bool { return h.context.disposed })
	}
	return !expired
}

func (t *EventTarget) invoke(h *handler, e Event) {
	t.world.scheduler.stats.Invocations++
	if h.related == nil {
		h.cb.call([]Event{e})
		return
	}
	events := make([]Event, len(h.related))
	for i, rt := range h.related {
		if rt == t {
			events[i] = e
		} else {
			events[i] = EmptyEvent(rt)
		}
	}
	h.cb.call(events)
}

// abandon ends the pass for t whether or not its handlers ran.
func (t *EventTarget) abandon() {
	t.cache.Clear()
	t.handling = false
	t.scheduled = false
}

func (t *EventTarget) addHandler(h *handler) bool {
	for _, existing := range t.handlers {
		if existing.same(h.pattern, h.cb, h.context) {
			t.warn("handler already registered", "pattern", h.pattern, "callback", h.cb.Name())
			return false
		}
	}
	t.handlers = insertHandler(t.handlers, h)
	return true
}

func (t *EventTarget) removeHandlers(match func(*handler) bool) {
	t.handlers = slices.DeleteFunc(t.handlers, match)
}

func (t *EventTarget) warn(msg string, args ...any) {
	args = append([]any{"target", t.String()}, args...)
	t.world.logger.Warn("geomtoy: "+msg, args...)
}
