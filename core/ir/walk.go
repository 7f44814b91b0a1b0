package ir

import (
	"errors"
	"fmt"
	"iter"
	"slices"
	"strings"
)

// Event marks which side of a node a traversal callback is on.
type Event int

const (
	// EnterEvent is delivered before a node's children (pre-order).
	EnterEvent Event = iota
	// LeaveEvent is delivered after a node's children (post-order).
	LeaveEvent
)

// SkipChildren may be returned from a WalkFunc on EnterEvent to skip the
// node's children. The LeaveEvent for that node is still delivered.
var SkipChildren = errors.New("skip children")

// WalkFunc is called for every node. depth is 0 for the root.
type WalkFunc func(ev Event, n Node, depth int) error

// Walk traverses root depth-first. Any error other than SkipChildren stops
// the walk and is returned.
func Walk(root Node, fn WalkFunc) error {
	if root == nil {
		return nil
	}
	return walk(root, 0, fn)
}

func walk(n Node, depth int, fn WalkFunc) error {
	err := fn(EnterEvent, n, depth)
	switch {
	case errors.Is(err, SkipChildren):
	case err != nil:
		return err
	default:
		for _, child := range Children(n) {
			if child == nil {
				continue
			}
			if err := walk(child, depth+1, fn); err != nil {
				return err
			}
		}
	}
	return fn(LeaveEvent, n, depth)
}

// Events yields (event, node) pairs in the same order Walk delivers them.
func Events(root Node) iter.Seq2[Event, Node] {
	return func(yield func(Event, Node) bool) {
		if root == nil {
			return
		}
		events(root, yield)
	}
}

func events(n Node, yield func(Event, Node) bool) bool {
	if !yield(EnterEvent, n) {
		return false
	}
	for _, child := range Children(n) {
		if child == nil {
			continue
		}
		if !events(child, yield) {
			return false
		}
	}
	return yield(LeaveEvent, n)
}

// MediaNodes returns every Media leaf in document order.
func MediaNodes(root Node) []*Media {
	var out []*Media
	for ev, n := range Events(root) {
		if m, ok := n.(*Media); ok && ev == EnterEvent {
			out = append(out, m)
		}
	}
	return out
}

// Parents maps every non-root node to its parent. It is rebuilt on each call;
// trees do not store back-references.
func Parents(root Node) map[Node]Node {
	parents := make(map[Node]Node)
	var stack []Node
	_ = Walk(root, func(ev Event, n Node, depth int) error {
		if ev == LeaveEvent {
			stack = stack[:len(stack)-1]
			return nil
		}
		if len(stack) > 0 {
			parents[n] = stack[len(stack)-1]
		}
		stack = append(stack, n)
		return nil
	})
	return parents
}

// Ancestors returns the chain from n's parent up to the root.
func Ancestors(parents map[Node]Node, n Node) []Node {
	var out []Node
	for p, ok := parents[n]; ok; p, ok = parents[p] {
		out = append(out, p)
	}
	return out
}

// PathOf names n by its position below the root, e.g. "seq/par[1]/media[0]".
// Indexes count from zero among the parent's children.
func PathOf(parents map[Node]Node, n Node) string {
	chain := append([]Node{n}, Ancestors(parents, n)...)
	parts := make([]string, 0, len(chain))
	for i := len(chain) - 1; i >= 0; i-- {
		node := chain[i]
		p, ok := parents[node]
		if !ok {
			parts = append(parts, node.Kind().String())
			continue
		}
		parts = append(parts, fmt.Sprintf("%s[%d]", node.Kind(), slices.Index(Children(p), node)))
	}
	return strings.Join(parts, "/")
}
