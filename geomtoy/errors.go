package geomtoy

import (
	"errors"
	"fmt"
	"time"
)

var (
	// ErrCrossWorld is returned when objects owned by different worlds are bound together.
	ErrCrossWorld = errors.New("geomtoy: objects belong to different worlds")

	// ErrNilCallback is returned when a nil callback is registered or removed.
	ErrNilCallback = errors.New("geomtoy: callback cannot be nil")

	// ErrNilTarget is returned when a nil target or world is supplied where one is required.
	ErrNilTarget = errors.New("geomtoy: target cannot be nil")

	// ErrEmptyPattern is returned when an event pattern string holds no patterns at all.
	ErrEmptyPattern = errors.New("geomtoy: event pattern is empty")

	// ErrDisposed is returned when subscribing on a disposed target.
	ErrDisposed = errors.New("geomtoy: target has been disposed")

	// ErrWatchdog is matched by WatchdogError.
	ErrWatchdog = errors.New("geomtoy: watchdog aborted propagation")
)

// WatchdogError reports a drain cycle that ran past its budget.
type WatchdogError struct {
	Elapsed time.Duration
	Budget  time.Duration
	// Abandoned is the number of scheduled objects whose handlers did not run.
	Abandoned int
}

func (e *WatchdogError) Error() string {
	return fmt.Sprintf("geomtoy: propagation exceeded watchdog budget %v after %v, %d objects abandoned", e.Budget, e.Elapsed, e.Abandoned)
}

// Is allows errors.Is to match WatchdogError with ErrWatchdog.
func (e *WatchdogError) Is(target error) bool {
	return target == ErrWatchdog
}
