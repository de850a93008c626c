package geomtoy

import (
	"log/slog"
	"math"
	"time"
)

var (
	// MinEpsilon and MaxEpsilon bound the comparison epsilon.
	MinEpsilon = math.Pow(2, -52)
	MaxEpsilon = math.Pow(2, -16)
	// DefaultEpsilon is used when none is configured.
	DefaultEpsilon = math.Pow(2, -32)
)

const (
	// DefaultWatchdog bounds the wall-clock time of one internal drain.
	DefaultWatchdog = time.Second

	// DefaultOnPriority is the priority of handlers installed with On.
	DefaultOnPriority = 1
	// DefaultBindPriority is the priority of handlers installed with Bind. It
	// is far above DefaultOnPriority so derived state is recomputed before
	// plain reactions.
	DefaultBindPriority = 1000
)

// Option configures a World.
type Option func(*worldConfig)

type worldConfig struct {
	epsilon      float64
	watchdog     time.Duration
	logger       *slog.Logger
	microtask    func(func())
	onPriority   int
	bindPriority int
}

func defaultWorldConfig() worldConfig {
	return worldConfig{
		epsilon:      DefaultEpsilon,
		watchdog:     DefaultWatchdog,
		onPriority:   DefaultOnPriority,
		bindPriority: DefaultBindPriority,
	}
}

// WithEpsilon sets the comparison epsilon, clamped to [MinEpsilon, MaxEpsilon].
func WithEpsilon(eps float64) Option {
	return func(c *worldConfig) {
		c.epsilon = clampEpsilon(eps)
	}
}

// WithWatchdog sets the drain budget. Non-positive values keep the default.
func WithWatchdog(budget time.Duration) Option {
	return func(c *worldConfig) {
		if budget > 0 {
			c.watchdog = budget
		}
	}
}

// WithLogger sets the logger warnings and watchdog errors go to.
func WithLogger(l *slog.Logger) Option {
	return func(c *worldConfig) {
		c.logger = l
	}
}

// WithMicrotaskQueue hands the flush boundary to a host loop. queue must run
// the task after the current synchronous work finishes, on the goroutine that
// owns the world.
func WithMicrotaskQueue(queue func(task func())) Option {
	return func(c *worldConfig) {
		c.microtask = queue
	}
}

// WithOnPriority changes the default priority of On handlers.
func WithOnPriority(p int) Option {
	return func(c *worldConfig) {
		c.onPriority = p
	}
}

// WithBindPriority changes the default priority of Bind handlers.
func WithBindPriority(p int) Option {
	return func(c *worldConfig) {
		c.bindPriority = p
	}
}

func clampEpsilon(eps float64) float64 {
	if math.IsNaN(eps) {
		return DefaultEpsilon
	}
	return math.Min(math.Max(eps, MinEpsilon), MaxEpsilon)
}

// Options is the runtime option holder of a World.
type Options struct {
	epsilon      float64
	watchdog     time.Duration
	onPriority   int
	bindPriority int
}

// Epsilon returns the epsilon setters compare against.
func (o *Options) Epsilon() float64 { return o.epsilon }

// SetEpsilon changes the epsilon, clamped to [MinEpsilon, MaxEpsilon].
func (o *Options) SetEpsilon(eps float64) { o.epsilon = clampEpsilon(eps) }

// Watchdog returns the drain budget.
func (o *Options) Watchdog() time.Duration { return o.watchdog }

// SetWatchdog changes the drain budget. Non-positive values restore DefaultWatchdog.
func (o *Options) SetWatchdog(budget time.Duration) {
	if budget <= 0 {
		budget = DefaultWatchdog
	}
	o.watchdog = budget
}

// OnPriority returns the default priority of On handlers.
func (o *Options) OnPriority() int { return o.onPriority }

// BindPriority returns the default priority of Bind handlers.
func (o *Options) BindPriority() int { return o.bindPriority }

// HandlerOption configures one On or Bind registration.
type HandlerOption func(*handlerConfig)

type handlerConfig struct {
	priority    int
	recursive   bool
	immediately bool
}

// WithPriority sets the handler priority. Higher runs first.
func WithPriority(p int) HandlerOption {
	return func(c *handlerConfig) {
		c.priority = p
	}
}

// WithRecursiveEffect marks a handler whose callback may re-trigger what it
// watches. Such a handler runs at most once per drain cycle.
func WithRecursiveEffect() HandlerOption {
	return func(c *handlerConfig) {
		c.recursive = true
	}
}

// WithImmediately controls whether Bind calls the callback once before
// returning. Bind defaults to true, On ignores it.
func WithImmediately(v bool) HandlerOption {
	return func(c *handlerConfig) {
		c.immediately = v
	}
}

func buildHandlerConfig(defaultPriority int, opts []HandlerOption) handlerConfig {
	c := handlerConfig{priority: defaultPriority, immediately: true}
	for _, opt := range opts {
		opt(&c)
	}
	return c
}
