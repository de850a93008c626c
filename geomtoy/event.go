package geomtoy

import (
	"fmt"
	"strings"
)

// EventKind tells what an Event describes.
type EventKind uint8

const (
	// KindEmpty is a placeholder with no change attached. Bind callbacks receive
	// it for related targets that did not fire.
	KindEmpty EventKind = iota
	// KindSimple is a named property change.
	KindSimple
	// KindCollection is a change of one element of a collection-valued property.
	KindCollection
	// KindComposite is synthesized for OR and AND patterns and carries the
	// matching source events.
	KindComposite
)

func (k EventKind) String() string {
	switch k {
	case KindEmpty:
		return "empty"
	case KindSimple:
		return "simple"
	case KindCollection:
		return "collection"
	case KindComposite:
		return "composite"
	default:
		return "unknown"
	}
}

// Event is one occurrence delivered to handlers. It is a value and is never
// mutated after construction.
type Event struct {
	target    *EventTarget
	kind      EventKind
	name      string
	hash      uint64
	index     int
	elementID string
	sources   []Event
}

// EmptyEvent returns the placeholder event for target.
func EmptyEvent(target *EventTarget) Event {
	return Event{target: target, kind: KindEmpty, hash: nameHash(""), index: -1}
}

// SimpleEvent returns a named change of target.
func SimpleEvent(target *EventTarget, name string) Event {
	return Event{target: target, kind: KindSimple, name: name, hash: nameHash(name), index: -1}
}

// CollectionEvent returns a change of the element at index, identified by
// elementID, of the collection property name.
func CollectionEvent(target *EventTarget, name string, index int, elementID string) Event {
	return Event{target: target, kind: KindCollection, name: name, hash: nameHash(name), index: index, elementID: elementID}
}

func compositeEvent(target *EventTarget, pattern string, sources []Event) Event {
	return Event{
		target:  target,
		kind:    KindComposite,
		name:    pattern,
		hash:    nameHash(pattern),
		index:   -1,
		sources: append([]Event(nil), sources...),
	}
}

// Target returns the object the event belongs to.
func (e Event) Target() *EventTarget { return e.target }

// Kind returns the event kind.
func (e Event) Kind() EventKind { return e.kind }

// Name returns the event name, or the pattern for composite events.
func (e Event) Name() string { return e.name }

// Index returns the element index of a collection event, otherwise -1.
func (e Event) Index() int { return e.index }

// ElementID returns the element identity of a collection event.
func (e Event) ElementID() string { return e.elementID }

// IsEmpty reports whether e is a placeholder.
func (e Event) IsEmpty() bool { return e.kind == KindEmpty }

// Sources returns the events an OR/AND composite was built from. For OR it
// holds exactly the first matching event.
func (e Event) Sources() []Event {
	return append([]Event(nil), e.sources...)
}

// Has reports whether e is, or was composed from, an event called name.
func (e Event) Has(name string) bool {
	if e.kind == KindComposite {
		for _, src := range e.sources {
			if src.Has(name) {
				return true
			}
		}
		return false
	}
	return e.name == name
}

// Same reports whether e and other collapse to one entry in an EventCache.
func (e Event) Same(other Event) bool {
	return e.key() == other.key()
}

type eventKey struct {
	target    *EventTarget
	kind      EventKind
	name      string
	elementID string
}

func (e Event) key() eventKey {
	return eventKey{target: e.target, kind: e.kind, name: e.name, elementID: e.elementID}
}

func (e Event) String() string {
	var sb strings.Builder
	sb.WriteString(e.kind.String())
	if e.target != nil {
		sb.WriteString("@")
		sb.WriteString(e.target.String())
	}
	switch e.kind {
	case KindSimple:
		sb.WriteString(":" + e.name)
	case KindCollection:
		sb.WriteString(fmt.Sprintf(":%s[%d]#%s", e.name, e.index, e.elementID))
	case KindComposite:
		sb.WriteString(":" + e.name + "(")
		for i, src := range e.sources {
			if i > 0 {
				sb.WriteString(",")
			}
			sb.WriteString(src.name)
		}
		sb.WriteString(")")
	}
	return sb.String()
}
