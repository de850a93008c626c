package geomtoy

import "github.com/cespare/xxhash/v2"

// EventCache holds the events an EventTarget has not delivered yet in the
// current pass. Entries keep insertion order and collapse by Event.Same.
type EventCache struct {
	entries []Event
	keys    map[eventKey]struct{}
	// positions of entries per event name, keyed by the name hash. Events
	// and resolved patterns carry the hash so lookups never rehash.
	byName map[uint64][]int
}

// NewEventCache returns an empty cache.
func NewEventCache() *EventCache {
	return &EventCache{
		keys:   map[eventKey]struct{}{},
		byName: map[uint64][]int{},
	}
}

func nameHash(name string) uint64 {
	return xxhash.Sum64String(name)
}

// Add stores e unless an equal event is already present. It reports whether
// e was added.
func (c *EventCache) Add(e Event) bool {
	k := e.key()
	if _, ok := c.keys[k]; ok {
		return false
	}
	c.keys[k] = struct{}{}
	c.entries = append(c.entries, e)
	c.byName[e.hash] = append(c.byName[e.hash], len(c.entries)-1)
	return true
}

// Has reports whether an event equal to e is cached.
func (c *EventCache) Has(e Event) bool {
	_, ok := c.keys[e.key()]
	return ok
}

// Count returns how many cached events are called name.
func (c *EventCache) Count(name string) int {
	return c.count(nameHash(name), name)
}

// At returns the i-th cached event called name, in insertion order.
func (c *EventCache) At(name string, i int) Event {
	return c.at(nameHash(name), name, i)
}

// First returns the earliest cached event called name.
func (c *EventCache) First(name string) (Event, bool) {
	return c.first(nameHash(name), name)
}

func (c *EventCache) count(h uint64, name string) int {
	n := 0
	for _, pos := range c.byName[h] {
		if c.entries[pos].name == name {
			n++
		}
	}
	return n
}

func (c *EventCache) at(h uint64, name string, i int) Event {
	for _, pos := range c.byName[h] {
		if c.entries[pos].name != name {
			continue
		}
		if i == 0 {
			return c.entries[pos]
		}
		i--
	}
	panic("geomtoy: event cache index out of range")
}

func (c *EventCache) first(h uint64, name string) (Event, bool) {
	for _, pos := range c.byName[h] {
		if c.entries[pos].name == name {
			return c.entries[pos], true
		}
	}
	return Event{}, false
}

// Filter returns every cached event called name.
func (c *EventCache) Filter(name string) []Event {
	var out []Event
	for _, pos := range c.byName[nameHash(name)] {
		if c.entries[pos].name == name {
			out = append(out, c.entries[pos])
		}
	}
	return out
}

// Each calls fn for every entry in insertion order, including entries added
// by fn itself. Returning false stops the walk.
func (c *EventCache) Each(fn func(Event) bool) {
	for i := 0; i < len(c.entries); i++ {
		if !fn(c.entries[i]) {
			return
		}
	}
}

// Len returns the number of cached events.
func (c *EventCache) Len() int { return len(c.entries) }

// Clear drops every entry.
func (c *EventCache) Clear() {
	c.entries = c.entries[:0]
	clear(c.keys)
	clear(c.byName)
}
