package geomtoy

import (
	"sort"

	mapset "github.com/deckarep/golang-set/v2"
)

// Callback is a reaction registered with On or Bind. Its pointer is its
// identity: Off and Unbind, duplicate detection and the recursion guard all
// compare callbacks by pointer.
//
// On handlers receive exactly one event. Bind handlers receive one event per
// related target, in the order the targets were first listed.
type Callback struct {
	name string
	fn   func(events []Event)
}

// NewCallback wraps fn. name only shows up in logs and dumps.
func NewCallback(name string, fn func(events []Event)) *Callback {
	if fn == nil {
		return nil
	}
	return &Callback{name: name, fn: fn}
}

// Name returns the callback name.
func (c *Callback) Name() string {
	if c == nil {
		return ""
	}
	return c.name
}

func (c *Callback) call(events []Event) { c.fn(events) }

type handler struct {
	pattern string
	// pattern resolved against the declared events of the target it sits on
	match   pattern
	cb      *Callback
	context *EventTarget
	// nil for On handlers
	related   []*EventTarget
	priority  int
	recursive bool
}

func (h *handler) same(pattern string, cb *Callback, context *EventTarget) bool {
	return h.pattern == pattern && h.cb == cb && h.context == context
}

// insertHandler keeps handlers sorted by descending priority. A new handler
// goes after every handler of equal priority.
func insertHandler(list []*handler, h *handler) []*handler {
	i := sort.Search(len(list), func(i int) bool {
		return list[i].priority < h.priority
	})
	list = append(list, nil)
	copy(list[i+1:], list[i:])
	list[i] = h
	return list
}

// HandlerInfo is a read-only description of a registered handler.
type HandlerInfo struct {
	Pattern   string
	Callback  string
	Priority  int
	Recursive bool
	Context   *EventTarget
	Related   []*EventTarget
	Self      bool
}

func (h *handler) info() HandlerInfo {
	return HandlerInfo{
		Pattern:   h.pattern,
		Callback:  h.cb.Name(),
		Priority:  h.priority,
		Recursive: h.recursive,
		Context:   h.context,
		Related:   append([]*EventTarget(nil), h.related...),
		Self:      h.related == nil,
	}
}

// Pair names a target and the pattern string to watch on it.
type Pair struct {
	Target  Reactive
	Pattern string
}

// Watch builds a Pair.
func Watch(target Reactive, pattern string) Pair {
	return Pair{Target: target, Pattern: pattern}
}

// relatedTargets returns the distinct targets of pairs in first-seen order.
func relatedTargets(pairs []Pair) []*EventTarget {
	seen := mapset.NewThreadUnsafeSet[*EventTarget]()
	var out []*EventTarget
	for _, p := range pairs {
		t := targetOf(p.Target)
		if t == nil {
			continue
		}
		if seen.Add(t) {
			out = append(out, t)
		}
	}
	return out
}
