package geomtoy

import (
	"fmt"
	"strings"
)

const (
	// AnyWildcard fires when any one of the declared events occurred.
	AnyWildcard = "any"
	// AllWildcard fires when every declared event occurred.
	AllWildcard = "all"

	orSeparator  = "|"
	andSeparator = "&"
)

type patternOp uint8

const (
	opSingle patternOp = iota
	opOr
	opAnd
)

// pattern is one parsed entry of a pattern string.
type pattern struct {
	op     patternOp
	names  []string
	hashes []uint64
}

func newPattern(op patternOp, names []string) pattern {
	hashes := make([]uint64, len(names))
	for i, name := range names {
		hashes[i] = nameHash(name)
	}
	return pattern{op: op, names: names, hashes: hashes}
}

// splitPatterns splits a pattern string on whitespace.
func splitPatterns(s string) []string {
	return strings.Fields(s)
}

// validatePattern checks raw against the declared set. Wildcards are valid
// for any set and are expanded lazily by resolvePattern.
func validatePattern(raw string, declared *EventSet) error {
	if raw == AnyWildcard || raw == AllWildcard {
		return nil
	}
	p, err := parsePattern(raw)
	if err != nil {
		return err
	}
	for _, name := range p.names {
		if !declared.Has(name) {
			return fmt.Errorf("unknown event %q in pattern %q", name, raw)
		}
	}
	return nil
}

func parsePattern(raw string) (pattern, error) {
	hasOr := strings.Contains(raw, orSeparator)
	hasAnd := strings.Contains(raw, andSeparator)

	switch {
	case hasOr && hasAnd:
		return pattern{}, fmt.Errorf("pattern %q mixes %q and %q", raw, orSeparator, andSeparator)
	case hasOr:
		return splitCompound(raw, orSeparator, opOr)
	case hasAnd:
		return splitCompound(raw, andSeparator, opAnd)
	case raw == "":
		return pattern{}, ErrEmptyPattern
	default:
		return newPattern(opSingle, []string{raw}), nil
	}
}

func splitCompound(raw, sep string, op patternOp) (pattern, error) {
	names := strings.Split(raw, sep)
	for _, name := range names {
		if name == "" {
			return pattern{}, fmt.Errorf("pattern %q has an empty event name", raw)
		}
	}
	return newPattern(op, names), nil
}

// resolvePattern turns a stored pattern into its parsed form. "any" and "all"
// always resolve to OR and AND, even when a single event is declared.
func resolvePattern(raw string, declared *EventSet) pattern {
	switch raw {
	case AnyWildcard:
		return declared.pattern(opOr)
	case AllWildcard:
		return declared.pattern(opAnd)
	}
	p, err := parsePattern(raw)
	if err != nil {
		return pattern{}
	}
	return p
}

// each calls fn with every event a handler receives this pass, one call per
// invocation, until fn returns false. Single names are walked by index so
// that events cached while earlier invocations run are still delivered.
func (p pattern) each(raw string, target *EventTarget, cache *EventCache, fn func(Event) bool) {
	switch p.op {
	case opOr:
		for i, name := range p.names {
			if first, ok := cache.first(p.hashes[i], name); ok {
				fn(compositeEvent(target, raw, []Event{first}))
				return
			}
		}
	case opAnd:
		if len(p.names) == 0 {
			return
		}
		sources := make([]Event, 0, len(p.names))
		for i, name := range p.names {
			first, ok := cache.first(p.hashes[i], name)
			if !ok {
				return
			}
			sources = append(sources, first)
		}
		fn(compositeEvent(target, raw, sources))
	default:
		if len(p.names) == 0 {
			return
		}
		name, h := p.names[0], p.hashes[0]
		for i := 0; i < cache.count(h, name); i++ {
			if !fn(cache.at(h, name, i)) {
				return
			}
		}
	}
}
