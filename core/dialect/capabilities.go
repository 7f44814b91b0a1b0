package dialect

import (
	"github.com/FocuswithJustin/JuniperPlaylist/core/errors"
	"github.com/FocuswithJustin/JuniperPlaylist/core/ir"
)

// Capabilities declares which IR constructs a dialect expresses natively.
type Capabilities struct {
	// Parallel is true when children can be played concurrently.
	Parallel bool `json:"parallel"`

	// InfiniteRepeat is true when a node can repeat forever.
	InfiniteRepeat bool `json:"infinite_repeat"`

	// NestedRepeat is true when the dialect has a native repeat construct.
	// Without it, finite repeats are unrolled into duplicate entries.
	NestedRepeat bool `json:"nested_repeat"`

	// MediaDuration is true when an entry can carry its own play length.
	MediaDuration bool `json:"media_duration"`
}

// Flat is the capability set of list-only dialects.
var Flat = Capabilities{}

// Full supports every IR construct.
var Full = Capabilities{Parallel: true, InfiniteRepeat: true, NestedRepeat: true, MediaDuration: true}

// Construct names used in UnsupportedConstructError.
const (
	ConstructParallel       = "parallel"
	ConstructInfiniteRepeat = "infinite repeat"
	ConstructTimedMedia     = "timed media"
)

// Check walks root in pre-order and returns an UnsupportedConstructError for
// the first node caps cannot express, with Path naming where it sits. For a single node, parallel is tested
// before infinite repeat, which is tested before timed media.
//
// Check looks at the tree as given, before normalization: a Parallel is
// rejected wherever it appears, even with one child or a zero repeat count.
// Media with an empty locator never fails, since exporters drop it.
func Check(root ir.Node, caps Capabilities) error {
	return ir.Walk(root, func(ev ir.Event, n ir.Node, _ int) error {
		if ev != ir.EnterEvent {
			return nil
		}
		if construct := unsupported(n, caps); construct != "" {
			err := errors.NewUnsupportedConstruct(construct, "")
			err.Path = ir.PathOf(ir.Parents(root), n)
			return err
		}
		return nil
	})
}

func unsupported(n ir.Node, caps Capabilities) string {
	switch v := n.(type) {
	case *ir.Parallel:
		if !caps.Parallel {
			return ConstructParallel
		}
	case *ir.Media:
		if !playable(v) {
			return ""
		}
		if v.Repeat == ir.RepeatIndefinite && !caps.InfiniteRepeat {
			return ConstructInfiniteRepeat
		}
		if v.Duration != nil && !caps.MediaDuration {
			return ConstructTimedMedia
		}
		return ""
	}
	if n.RepeatCount() == ir.RepeatIndefinite && !caps.InfiniteRepeat {
		return ConstructInfiniteRepeat
	}
	return ""
}
