// Package filter implements the attribute-filter query language used to
// select nodes out of server responses.
//
// A filter key names an attribute, optionally prefixed by a chain of child
// element tags and optionally suffixed by an operator, all delimited by a
// double underscore:
//
//	viewCount=0                   exact match on the node's own attribute
//	viewCount__gte=5              operator suffix
//	Genre__tag="Animation"        child-path prefix
//	Media__Part__container="mp4"  nested child path
//	etag="Video"                  match the element tag itself
//
// All keys of a filter set must match (logical AND). A single key may
// resolve to several values when the child path matches multiple elements;
// the key matches if any resolved value satisfies the operator (logical OR).
package filter

import (
	"strings"

	"github.com/teranos/mediagraph/tree"
)

// Delimiter separates child tags, the attribute name, and the operator
// suffix inside a filter key.
const Delimiter = "__"

// Filters maps filter keys to operands.
type Filters map[string]any

// Predicate is one compiled filter condition.
type Predicate struct {
	Path    []string // child element tags, outermost first
	Attr    string   // attribute name, or "etag" for the element tag
	Op      string   // operator name, "exact" when no suffix recognized
	Operand any
}

// ParseKey compiles a filter key and operand into a Predicate.
// An unrecognized suffix is part of the attribute path, not an operator.
func ParseKey(key string, operand any) Predicate {
	op := "exact"
	if i := strings.LastIndex(key, Delimiter); i >= 0 {
		if _, known := operators[key[i+len(Delimiter):]]; known {
			op = key[i+len(Delimiter):]
			key = key[:i]
		}
	}

	segments := strings.Split(key, Delimiter)
	return Predicate{
		Path:    segments[:len(segments)-1],
		Attr:    segments[len(segments)-1],
		Op:      op,
		Operand: operand,
	}
}

// Match reports whether the node satisfies every predicate in filters.
func Match(n *tree.Node, filters Filters) bool {
	for key, operand := range filters {
		if !MatchPredicate(n, ParseKey(key, operand)) {
			return false
		}
	}
	return true
}

// MatchPredicate reports whether the node satisfies a single predicate.
func MatchPredicate(n *tree.Node, p Predicate) bool {
	values := Values(n, p.Path, p.Attr)

	// An attribute genuinely absent (no values at all, distinct from an
	// empty string) satisfies an exact match against a zero/empty/nil
	// operand. Lets callers filter for "not present or falsy" directly.
	if p.Op == "exact" && len(values) == 0 && isZeroOperand(p.Operand) {
		return true
	}

	// exists works on presence, bypassing coercion entirely
	if p.Op == "exists" {
		return truthy(p.Operand) == (len(values) > 0)
	}

	fn := operators[p.Op]
	if fn == nil {
		return false
	}
	for _, value := range values {
		if fn(value, p.Operand) {
			return true
		}
	}
	return false
}

// Values resolves (path, attr) against a node. A non-empty path collects
// values from every direct child whose tag matches the first segment,
// recursing with the remainder. An empty path reads the node's own
// attribute, case-insensitively; the special name "etag" resolves to the
// element tag.
func Values(n *tree.Node, path []string, attr string) []string {
	if len(path) > 0 {
		var results []string
		for _, child := range n.ChildrenByTag(path[0]) {
			results = append(results, Values(child, path[1:], attr)...)
		}
		return results
	}
	if strings.EqualFold(attr, "etag") {
		return []string{n.Tag}
	}
	if v, ok := n.Get(attr); ok {
		return []string{v}
	}
	return nil
}

func isZeroOperand(operand any) bool {
	switch v := operand.(type) {
	case nil:
		return true
	case string:
		return v == ""
	case int:
		return v == 0
	case int64:
		return v == 0
	case float64:
		return v == 0
	}
	return false
}

func truthy(operand any) bool {
	switch v := operand.(type) {
	case nil:
		return false
	case bool:
		return v
	case string:
		return v != ""
	case int:
		return v != 0
	case int64:
		return v != 0
	case float64:
		return v != 0
	}
	return true
}
