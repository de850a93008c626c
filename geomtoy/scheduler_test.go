package geomtoy

import (
	"errors"
	"fmt"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSchedulerDefersToMicrotask(t *testing.T) {
	w, _ := newTestWorld()
	a := newTarget(w, "a")
	n := 0
	require.NoError(t, a.On("x", counting("c", &n)))

	a.Trigger(SimpleEvent(a, "x"))
	assert.Zero(t, n)
	assert.True(t, w.Pending())
	assert.True(t, w.Scheduler().Flushing())

	require.NoError(t, w.Settle())
	assert.Equal(t, 1, n)
	assert.False(t, w.Pending())
	assert.False(t, w.Scheduler().Flushing())
	assert.Equal(t, uint64(1), w.Scheduler().Stats().Passes)
}

func TestSchedulerServicesObjectsInScheduleOrder(t *testing.T) {
	w, _ := newTestWorld()
	a := newTarget(w, "a")
	b := newTarget(w, "b")
	c := newTarget(w, "c")

	var log []string
	for _, target := range []*EventTarget{a, b, c} {
		require.NoError(t, target.On("x", logging(target.Label(), &log)))
	}

	b.Trigger(SimpleEvent(b, "x"))
	a.Trigger(SimpleEvent(a, "x"))
	b.Trigger(SimpleEvent(b, "x"))
	c.Trigger(SimpleEvent(c, "x"))
	require.NoError(t, w.Settle())
	assert.Equal(t, []string{"b", "a", "c"}, log)
}

func TestSchedulerDrainsObjectsQueuedWhileDraining(t *testing.T) {
	/*
	   a -> b -> c
	*/
	w, _ := newTestWorld()
	a := newTarget(w, "a")
	b := newTarget(w, "b")
	c := newTarget(w, "c")

	var log []string
	require.NoError(t, a.On("x", NewCallback("a", func([]Event) {
		log = append(log, "a")
		b.Trigger(SimpleEvent(b, "x"))
	})))
	require.NoError(t, b.On("x", NewCallback("b", func([]Event) {
		log = append(log, "b")
		c.Trigger(SimpleEvent(c, "x"))
	})))
	require.NoError(t, c.On("x", logging("c", &log)))

	a.Trigger(SimpleEvent(a, "x"))
	require.NoError(t, w.Settle())
	assert.Equal(t, []string{"a", "b", "c"}, log)

	stats := w.Scheduler().Stats()
	assert.Equal(t, uint64(1), stats.Passes)
	assert.Equal(t, uint64(3), stats.Serviced)
	assert.Equal(t, uint64(3), stats.Invocations)
}

func TestNextTick(t *testing.T) {
	t.Run("runs after the internal queue", func(t *testing.T) {
		w, _ := newTestWorld()
		a := newTarget(w, "a")

		var log []string
		require.NoError(t, a.On("x", NewCallback("handler", func([]Event) {
			log = append(log, "handler")
			w.NextTick(func() { log = append(log, "tick from handler") })
		})))

		w.NextTick(func() { log = append(log, "tick") })
		a.Trigger(SimpleEvent(a, "x"))
		require.NoError(t, w.Settle())

		assert.Equal(t, []string{"handler", "tick", "tick from handler"}, log)
		assert.Equal(t, uint64(1), w.Scheduler().Stats().Passes)
		assert.Equal(t, uint64(2), w.Scheduler().Stats().Ticks)
	})

	t.Run("ticks queued by ticks run in the next cycle", func(t *testing.T) {
		w, _ := newTestWorld()
		var log []string
		w.NextTick(func() {
			log = append(log, "first")
			w.NextTick(func() { log = append(log, "second") })
		})
		w.NextTick(nil)

		require.NoError(t, w.Settle())
		assert.Equal(t, []string{"first", "second"}, log)
		assert.Equal(t, uint64(2), w.Scheduler().Stats().Passes)
	})

	t.Run("changes made by ticks start another cycle", func(t *testing.T) {
		w, _ := newTestWorld()
		a := newTarget(w, "a")
		n := 0
		require.NoError(t, a.On("x", counting("c", &n)))

		w.NextTick(func() { a.Trigger(SimpleEvent(a, "x")) })
		require.NoError(t, w.Settle())
		assert.Equal(t, 1, n)
		assert.Equal(t, uint64(2), w.Scheduler().Stats().Passes)
	})
}

func TestRecursionGuard(t *testing.T) {
	w, _ := newTestWorld()
	s := w.Scheduler()
	a := newTarget(w, "a")
	b := newTarget(w, "b")
	n := 0
	cb := counting("c", &n)

	assert.False(t, s.IsCallbackInvokedBy(cb, a))
	s.MarkCallback(cb, a)
	assert.True(t, s.IsCallbackInvokedBy(cb, a))
	assert.False(t, s.IsCallbackInvokedBy(cb, b))

	// every drain cycle starts with a fresh guard
	w.NextTick(func() {})
	require.NoError(t, w.Settle())
	assert.False(t, s.IsCallbackInvokedBy(cb, a))
}

func TestWatchdog(t *testing.T) {
	/*
	   a <-> b
	*/
	w, rec := newTestWorld(WithWatchdog(20 * time.Millisecond))
	a := newTarget(w, "a")
	b := newTarget(w, "b")

	require.NoError(t, a.On("x", NewCallback("a", func([]Event) { b.Trigger(SimpleEvent(b, "x")) })))
	require.NoError(t, b.On("x", NewCallback("b", func([]Event) { a.Trigger(SimpleEvent(a, "x")) })))

	ticked := false
	w.NextTick(func() { ticked = true })
	a.Trigger(SimpleEvent(a, "x"))

	done := make(chan error, 1)
	go func() { done <- w.Settle() }()

	var err error
	select {
	case err = <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("drain did not terminate")
	}

	require.Error(t, err)
	assert.ErrorIs(t, err, ErrWatchdog)
	var wd *WatchdogError
	require.True(t, errors.As(err, &wd))
	assert.Equal(t, 20*time.Millisecond, wd.Budget)
	assert.GreaterOrEqual(t, wd.Elapsed, wd.Budget)
	assert.Equal(t, 1, wd.Abandoned)

	assert.True(t, ticked)
	assert.Equal(t, 1, rec.count(slog.LevelError))
	assert.False(t, a.Scheduled())
	assert.False(t, b.Scheduled())
	assert.Empty(t, a.Pending())
	assert.Empty(t, b.Pending())

	stats := w.Scheduler().Stats()
	assert.Equal(t, uint64(1), stats.WatchdogTrips)
	assert.Equal(t, uint64(1), stats.Abandoned)

	// the world keeps working once the cycle is broken
	b.Clear("")
	a.Trigger(SimpleEvent(a, "x"))
	assert.NoError(t, w.Settle())
}

func TestWatchdogStopsSelfFeedingFlush(t *testing.T) {
	w, rec := newTestWorld(WithWatchdog(20 * time.Millisecond))
	a := newTarget(w, "a")

	n := 0
	require.NoError(t, a.On("items", NewCallback("grow", func([]Event) {
		n++
		a.Trigger(CollectionEvent(a, "items", n, fmt.Sprintf("item-%d", n)))
	})))

	ticked := false
	w.NextTick(func() { ticked = true })
	a.Trigger(CollectionEvent(a, "items", 0, "item-0"))

	done := make(chan error, 1)
	go func() { done <- w.Settle() }()

	var err error
	select {
	case err = <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("drain did not terminate")
	}

	assert.ErrorIs(t, err, ErrWatchdog)
	var wd *WatchdogError
	require.True(t, errors.As(err, &wd))
	assert.Equal(t, 1, wd.Abandoned)
	assert.Positive(t, n)

	assert.True(t, ticked)
	assert.Equal(t, 1, rec.count(slog.LevelError))
	assert.False(t, a.Scheduled())
	assert.False(t, a.Handling())
	assert.Empty(t, a.Pending())
	assert.Equal(t, uint64(1), w.Scheduler().Stats().WatchdogTrips)

	// handlers after the runaway one were cut off too, and the target recovers
	a.Clear("")
	m := 0
	require.NoError(t, a.On("x", counting("c", &m)))
	a.Trigger(SimpleEvent(a, "x"))
	require.NoError(t, w.Settle())
	assert.Equal(t, 1, m)
}

func TestHostMicrotaskQueue(t *testing.T) {
	var queue []func()
	w, _ := newTestWorld(WithMicrotaskQueue(func(task func()) { queue = append(queue, task) }))
	a := newTarget(w, "a")
	n := 0
	require.NoError(t, a.On("x|y", counting("c", &n)))

	a.Trigger(SimpleEvent(a, "x"))
	a.Trigger(SimpleEvent(a, "y"))
	require.Len(t, queue, 1)
	assert.True(t, w.Pending())

	queue[0]()
	assert.Equal(t, 1, n)
	assert.NoError(t, w.Settle())
}
