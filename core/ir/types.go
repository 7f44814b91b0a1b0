package ir

// types.go - PlaylistNode type definitions.
// Sequence, Parallel and Media are the only implementations of Node; the
// unexported marker method keeps the union closed so type switches over Node
// need exactly these three cases.

// Kind identifies the concrete type of a Node.
type Kind int

// Node kind constants.
const (
	KindSequence Kind = iota
	KindParallel
	KindMedia
)

// String returns the lower-case kind name.
func (k Kind) String() string {
	switch k {
	case KindSequence:
		return "seq"
	case KindParallel:
		return "par"
	case KindMedia:
		return "media"
	default:
		return "unknown"
	}
}

// Repeat count constants.
const (
	// RepeatNone marks a node that contributes nothing.
	RepeatNone int64 = 0
	// RepeatOnce is the default play-once count.
	RepeatOnce int64 = 1
	// RepeatIndefinite repeats the node forever.
	RepeatIndefinite int64 = -1
)

// Node is a PlaylistNode: *Sequence, *Parallel or *Media.
type Node interface {
	// Kind returns the node kind.
	Kind() Kind

	// RepeatCount returns the node's repeat count.
	RepeatCount() int64

	playlistNode()
}

// Sequence plays its children in order.
type Sequence struct {
	// Children are played one after another.
	Children []Node

	// Repeat is the repeat count (see RepeatOnce, RepeatIndefinite).
	Repeat int64
}

// Parallel plays its children concurrently.
type Parallel struct {
	// Children are started together.
	Children []Node

	// Repeat is the repeat count (see RepeatOnce, RepeatIndefinite).
	Repeat int64
}

// Media references one content item.
type Media struct {
	// Locator is the URI or path of the content. Empty means "nothing to play".
	Locator string

	// Duration is the explicit play length in milliseconds, or nil when the
	// content's own length applies.
	Duration *uint64

	// Repeat is the repeat count (see RepeatOnce, RepeatIndefinite).
	Repeat int64
}

func (*Sequence) Kind() Kind { return KindSequence }
func (*Parallel) Kind() Kind { return KindParallel }
func (*Media) Kind() Kind    { return KindMedia }

func (s *Sequence) RepeatCount() int64 { return s.Repeat }
func (p *Parallel) RepeatCount() int64 { return p.Repeat }
func (m *Media) RepeatCount() int64    { return m.Repeat }

func (*Sequence) playlistNode() {}
func (*Parallel) playlistNode() {}
func (*Media) playlistNode()    {}

// NewSequence returns a Sequence that plays once.
func NewSequence(children ...Node) *Sequence {
	return &Sequence{Children: children, Repeat: RepeatOnce}
}

// NewParallel returns a Parallel that plays once.
func NewParallel(children ...Node) *Parallel {
	return &Parallel{Children: children, Repeat: RepeatOnce}
}

// NewMedia returns a Media that plays once with no explicit duration.
func NewMedia(locator string) *Media {
	return &Media{Locator: locator, Repeat: RepeatOnce}
}

// Times sets the repeat count and returns s.
func (s *Sequence) Times(n int64) *Sequence {
	s.Repeat = n
	return s
}

// Times sets the repeat count and returns p.
func (p *Parallel) Times(n int64) *Parallel {
	p.Repeat = n
	return p
}

// Times sets the repeat count and returns m.
func (m *Media) Times(n int64) *Media {
	m.Repeat = n
	return m
}

// WithDuration sets an explicit duration in milliseconds and returns m.
func (m *Media) WithDuration(ms uint64) *Media {
	m.Duration = &ms
	return m
}

// DurationMillis returns the explicit duration, if any.
func (m *Media) DurationMillis() (uint64, bool) {
	if m.Duration == nil {
		return 0, false
	}
	return *m.Duration, true
}

// Children returns the children of a container node, or nil for Media.
func Children(n Node) []Node {
	switch v := n.(type) {
	case *Sequence:
		return v.Children
	case *Parallel:
		return v.Children
	default:
		return nil
	}
}

// IsContainer reports whether n is a Sequence or Parallel.
func IsContainer(n Node) bool {
	switch n.(type) {
	case *Sequence, *Parallel:
		return true
	default:
		return false
	}
}

// IsRepeated reports whether n plays more than once.
func IsRepeated(n Node) bool {
	r := n.RepeatCount()
	return r > 1 || r == RepeatIndefinite
}

// Clone returns a deep copy of n.
func Clone(n Node) Node {
	switch v := n.(type) {
	case *Sequence:
		return &Sequence{Children: cloneAll(v.Children), Repeat: v.Repeat}
	case *Parallel:
		return &Parallel{Children: cloneAll(v.Children), Repeat: v.Repeat}
	case *Media:
		c := *v
		if v.Duration != nil {
			d := *v.Duration
			c.Duration = &d
		}
		return &c
	default:
		return nil
	}
}

func cloneAll(nodes []Node) []Node {
	if nodes == nil {
		return nil
	}
	out := make([]Node, 0, len(nodes))
	for _, n := range nodes {
		if n != nil {
			out = append(out, Clone(n))
		}
	}
	return out
}

// WithRepeat returns a shallow copy of n with a different repeat count.
func WithRepeat(n Node, repeat int64) Node {
	switch v := n.(type) {
	case *Sequence:
		c := *v
		c.Repeat = repeat
		return &c
	case *Parallel:
		c := *v
		c.Repeat = repeat
		return &c
	case *Media:
		c := *v
		c.Repeat = repeat
		return &c
	default:
		return n
	}
}

// Equal reports whether a and b are structurally identical.
func Equal(a, b Node) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	if a.Kind() != b.Kind() || a.RepeatCount() != b.RepeatCount() {
		return false
	}
	if am, ok := a.(*Media); ok {
		bm := b.(*Media)
		if am.Locator != bm.Locator {
			return false
		}
		ad, aok := am.DurationMillis()
		bd, bok := bm.DurationMillis()
		return aok == bok && ad == bd
	}
	ac, bc := Children(a), Children(b)
	if len(ac) != len(bc) {
		return false
	}
	for i := range ac {
		if !Equal(ac[i], bc[i]) {
			return false
		}
	}
	return true
}
