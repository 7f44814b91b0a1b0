package dialect

import (
	"fmt"
	"strings"

	"github.com/FocuswithJustin/JuniperPlaylist/core/errors"
	"github.com/FocuswithJustin/JuniperPlaylist/core/ir"
)

// MaxUnrolledEntries bounds the number of media entries a single lowering may
// produce when repeats are unrolled.
const MaxUnrolledEntries = 1_000_000

// Builder receives a lowered tree. Enter and Leave bracket every container
// that survives lowering; Media is called for every playable leaf.
//
// When the capabilities passed to Lower lack NestedRepeat, every repeat count
// a Builder sees is 1.
type Builder interface {
	Enter(kind ir.Kind, repeat int64) error
	Leave() error
	Media(m *ir.Media) error
}

// Lower replays root into b under caps:
//   - a repeated node is handed to b with its repeat count when caps has
//     NestedRepeat, and otherwise emitted repeat-count times (unrolled);
//   - media with an empty locator is dropped and noted in report;
//   - constructs caps cannot express fail with UnsupportedConstructError.
//
// report may be nil.
func Lower(root ir.Node, caps Capabilities, b Builder, report *ir.LossReport) error {
	if root == nil {
		return nil
	}
	l := &lowerer{caps: caps, b: b, report: report}
	return l.node(root, root.Kind().String())
}

// Unroll flattens root into the media it plays, in order, duplicating
// finite repeats. Empty locators are dropped and infinite repeats fail.
// Containers are discarded, Parallel included, so callers run Check first
// when concurrency must not be lost.
func Unroll(root ir.Node, report *ir.LossReport) ([]*ir.Media, error) {
	c := &collector{}
	if err := Lower(root, Capabilities{Parallel: true, MediaDuration: true}, c, report); err != nil {
		return nil, err
	}
	return c.media, nil
}

type lowerer struct {
	caps      Capabilities
	b         Builder
	report    *ir.LossReport
	emitted   int64
	unrolling int
}

func (l *lowerer) node(n ir.Node, path string) error {
	r := n.RepeatCount()
	switch {
	case r == ir.RepeatNone:
		return nil
	case isEmptyMedia(n):
		l.drop(path)
		return nil
	case r == ir.RepeatIndefinite && !l.caps.InfiniteRepeat:
		return errors.NewUnsupportedConstruct(ConstructInfiniteRepeat, "")
	case r > 1 && !l.caps.NestedRepeat:
		return l.unroll(n, r, path)
	case r == ir.RepeatIndefinite && !l.caps.NestedRepeat:
		// Forever cannot be unrolled.
		return errors.NewUnsupportedConstruct(ConstructInfiniteRepeat, "")
	}

	switch v := n.(type) {
	case *ir.Media:
		return l.media(v)
	case *ir.Sequence, *ir.Parallel:
		if v.Kind() == ir.KindParallel && !l.caps.Parallel {
			return errors.NewUnsupportedConstruct(ConstructParallel, "")
		}
		if err := l.b.Enter(v.Kind(), r); err != nil {
			return err
		}
		for i, child := range ir.Children(v) {
			if child == nil {
				continue
			}
			if err := l.node(child, fmt.Sprintf("%s/%s[%d]", path, child.Kind(), i)); err != nil {
				return err
			}
		}
		return l.b.Leave()
	default:
		return errors.NewUnsupported("node type", fmt.Sprintf("%T", n))
	}
}

func (l *lowerer) unroll(n ir.Node, r int64, path string) error {
	plays := countPlays(n, MaxUnrolledEntries+1)
	if l.emitted+plays > MaxUnrolledEntries {
		return errors.NewUnsupported("repeat unrolling",
			fmt.Sprintf("%s would expand to more than %d entries", path, MaxUnrolledEntries))
	}
	if l.unrolling == 0 && l.report != nil {
		l.report.Raise(ir.LossL1)
		l.report.AddWarning(fmt.Sprintf("%s: repeat count %d unrolled into duplicate entries", path, r))
	}

	// The copies play one after another even when the parent is a Parallel.
	once := ir.WithRepeat(n, ir.RepeatOnce)
	l.unrolling++
	defer func() { l.unrolling-- }()
	if err := l.b.Enter(ir.KindSequence, ir.RepeatOnce); err != nil {
		return err
	}
	for i := int64(0); i < r; i++ {
		if err := l.node(once, path); err != nil {
			return err
		}
	}
	return l.b.Leave()
}

func (l *lowerer) media(m *ir.Media) error {
	if m.Duration != nil && !l.caps.MediaDuration {
		return errors.NewUnsupportedConstruct(ConstructTimedMedia, "")
	}
	l.emitted++
	if l.emitted > MaxUnrolledEntries {
		return errors.NewUnsupported("playlist size", fmt.Sprintf("more than %d entries", MaxUnrolledEntries))
	}
	return l.b.Media(m)
}

func (l *lowerer) drop(path string) {
	if l.report == nil || l.unrolling > 0 {
		return
	}
	l.report.Raise(ir.LossL1)
	l.report.AddLostElement(path, "media", "empty locator")
}

// playable reports whether m refers to any content.
func playable(m *ir.Media) bool {
	return strings.TrimSpace(m.Locator) != ""
}

func isEmptyMedia(n ir.Node) bool {
	m, ok := n.(*ir.Media)
	return ok && !playable(m)
}

// countPlays counts media plays in the expanded subtree, stopping at limit.
// An indefinite repeat counts once; lowering rejects it separately.
func countPlays(n ir.Node, limit int64) int64 {
	r := n.RepeatCount()
	if r == ir.RepeatNone {
		return 0
	}
	if r == ir.RepeatIndefinite {
		r = 1
	}
	var inner int64
	if _, ok := n.(*ir.Media); ok {
		inner = 1
	} else {
		for _, c := range ir.Children(n) {
			if c == nil {
				continue
			}
			inner += countPlays(c, limit)
			if inner >= limit {
				return limit
			}
		}
	}
	if inner == 0 {
		return 0
	}
	if r >= limit/inner+1 {
		return limit
	}
	if total := inner * r; total < limit {
		return total
	}
	return limit
}

// collector is the Builder behind Unroll.
type collector struct {
	media []*ir.Media
}

func (c *collector) Enter(ir.Kind, int64) error { return nil }
func (c *collector) Leave() error               { return nil }

func (c *collector) Media(m *ir.Media) error {
	c.media = append(c.media, ir.Clone(m).(*ir.Media))
	return nil
}
