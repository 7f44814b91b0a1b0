package ir

import "math"

// Stats summarizes a tree.
type Stats struct {
	Sequences int `json:"sequences"`
	Parallels int `json:"parallels"`
	Media     int `json:"media"`
	MaxDepth  int `json:"max_depth"`

	// Repeated counts nodes that play more than once.
	Repeated int `json:"repeated"`

	// Timed counts media with an explicit duration.
	Timed int `json:"timed"`

	// Indefinite is true when any node repeats forever.
	Indefinite bool `json:"indefinite"`
}

// Collect walks root and gathers Stats.
func Collect(root Node) Stats {
	var s Stats
	_ = Walk(root, func(ev Event, n Node, depth int) error {
		if ev != EnterEvent {
			return nil
		}
		if depth > s.MaxDepth {
			s.MaxDepth = depth
		}
		if IsRepeated(n) {
			s.Repeated++
		}
		if n.RepeatCount() == RepeatIndefinite {
			s.Indefinite = true
		}
		switch v := n.(type) {
		case *Sequence:
			s.Sequences++
		case *Parallel:
			s.Parallels++
		case *Media:
			s.Media++
			if v.Duration != nil {
				s.Timed++
			}
		}
		return nil
	})
	return s
}

// PlayCount returns the number of media plays in the fully expanded tree.
// ok is false when anything repeats forever or the count exceeds an int64.
func PlayCount(root Node) (count int64, ok bool) {
	var visit func(n Node) (int64, bool)
	visit = func(n Node) (int64, bool) {
		r := n.RepeatCount()
		if r == RepeatIndefinite {
			return 0, false
		}
		var inner int64
		if _, isMedia := n.(*Media); isMedia {
			inner = 1
		} else {
			for _, c := range Children(n) {
				if c == nil {
					continue
				}
				k, ok := visit(c)
				if !ok || k > math.MaxInt64-inner {
					return 0, false
				}
				inner += k
			}
		}
		if inner != 0 && r > math.MaxInt64/inner {
			return 0, false
		}
		return inner * r, true
	}
	if root == nil {
		return 0, true
	}
	return visit(root)
}
