package jsonval

// Action tells Walk how to proceed after visiting a node.
type Action int

const (
	// Continue descends into the node's children.
	Continue Action = iota
	// SkipChildren moves on to the node's next sibling.
	SkipChildren
	// Stop ends the traversal.
	Stop
)

// Visitor is called for each node with its depth; the root has depth 0.
type Visitor func(v Value, depth int) Action

// Walk visits root and every descendant depth-first in document order
// (pre-order). It reports false when the visitor stopped the traversal.
func Walk(root Value, fn Visitor) bool {
	return walk(root, 0, fn)
}

func walk(v Value, depth int, fn Visitor) bool {
	switch fn(v, depth) {
	case Stop:
		return false
	case SkipChildren:
		return true
	}
	switch v.kind {
	case Array:
		for _, item := range v.items {
			if !walk(item, depth+1, fn) {
				return false
			}
		}
	case Object:
		for _, m := range v.members {
			if !walk(m.Value, depth+1, fn) {
				return false
			}
		}
	}
	return true
}

// Find returns the first node, in document order, satisfying pred.
func Find(root Value, pred func(Value) bool) (Value, bool) {
	return FindMatch(root, func(v Value) (Value, bool) {
		return v, pred(v)
	})
}

// FindMatch returns the first extraction produced by match, searching root
// and its descendants depth-first in document order. It lets shape
// predicates return their extracted fields on match.
func FindMatch[T any](root Value, match func(Value) (T, bool)) (T, bool) {
	var (
		found T
		ok    bool
	)
	Walk(root, func(v Value, _ int) Action {
		if m, hit := match(v); hit {
			found, ok = m, true
			return Stop
		}
		return Continue
	})
	return found, ok
}
