package geomtoy

import (
	"strings"

	mapset "github.com/deckarep/golang-set/v2"
)

// EventSet is the frozen list of event names a reactive type declares, e.g.
// a point declares x and y. Build one per type with DeclareEvents and share it
// between all instances.
type EventSet struct {
	names  []string
	hashes []uint64
	lookup mapset.Set[string]
	any    string
	all    string
}

// DeclareEvents builds an EventSet. Duplicate names are kept once, blank
// names and names holding pattern syntax panic since they are programmer
// errors in a type declaration.
func DeclareEvents(names ...string) *EventSet {
	s := &EventSet{lookup: mapset.NewThreadUnsafeSet[string]()}
	for _, name := range names {
		if name == "" || strings.ContainsAny(name, orSeparator+andSeparator+" \t\n") ||
			name == AnyWildcard || name == AllWildcard {
			panic("geomtoy: invalid declared event name " + "\"" + name + "\"")
		}
		if s.lookup.Add(name) {
			s.names = append(s.names, name)
			s.hashes = append(s.hashes, nameHash(name))
		}
	}
	s.any = strings.Join(s.names, orSeparator)
	s.all = strings.Join(s.names, andSeparator)
	return s
}

// Names returns the declared names in declaration order.
func (s *EventSet) Names() []string {
	if s == nil {
		return nil
	}
	return append([]string(nil), s.names...)
}

// Has reports whether name is declared.
func (s *EventSet) Has(name string) bool {
	return s != nil && s.lookup.Contains(name)
}

// Len returns the number of declared names.
func (s *EventSet) Len() int {
	if s == nil {
		return 0
	}
	return len(s.names)
}

// AnyPattern is the OR of every declared name.
func (s *EventSet) AnyPattern() string {
	if s == nil {
		return ""
	}
	return s.any
}

// AllPattern is the AND of every declared name.
func (s *EventSet) AllPattern() string {
	if s == nil {
		return ""
	}
	return s.all
}

func (s *EventSet) pattern(op patternOp) pattern {
	if s == nil {
		return pattern{op: op}
	}
	return pattern{op: op, names: s.Names(), hashes: append([]uint64(nil), s.hashes...)}
}
