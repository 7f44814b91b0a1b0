// Package asx implements the Advanced Stream Redirector playlist dialect.
//
// ASX has no parallel playback. It repeats natively through REPEAT, whose
// COUNT attribute stores the number of extra plays (plays - 1); a REPEAT
// without COUNT loops forever. Durations use the simple hh:mm:ss.fff grammar.
package asx

import (
	"strings"

	"github.com/FocuswithJustin/JuniperPlaylist/core/clock"
	"github.com/FocuswithJustin/JuniperPlaylist/core/dialect"
	"github.com/FocuswithJustin/JuniperPlaylist/core/errors"
	"github.com/FocuswithJustin/JuniperPlaylist/core/ir"
	"github.com/FocuswithJustin/JuniperPlaylist/core/xml"
	"github.com/FocuswithJustin/JuniperPlaylist/internal/formats/base"
)

// Name is the registry key.
const Name = "asx"

// Capabilities is the ASX capability table.
var Capabilities = dialect.Capabilities{
	Parallel:       false,
	InfiniteRepeat: true,
	NestedRepeat:   true,
	MediaDuration:  true,
}

// Dialect implements dialect.Dialect for ASX.
type Dialect struct{}

func init() {
	dialect.Register(Dialect{})
}

func (Dialect) Name() string                       { return Name }
func (Dialect) Description() string                { return "Advanced Stream Redirector (ASX) playlist" }
func (Dialect) Extensions() []string               { return []string{".asx", ".wax", ".wvx"} }
func (Dialect) Capabilities() dialect.Capabilities { return Capabilities }

// Sniff matches an <asx> root in any letter case.
func (Dialect) Sniff(s *xml.Sniffed) bool {
	return strings.EqualFold(s.Root, "asx")
}

// Decode folds names to upper case and binds the document.
func (Dialect) Decode(data []byte) (dialect.Model, error) {
	folded, err := xml.FoldNames(data, strings.ToUpper)
	if err != nil {
		return nil, base.DecodeError(Name, err)
	}
	p := &Playlist{}
	if err := xml.Unmarshal(folded, p); err != nil {
		return nil, base.DecodeError(Name, err)
	}
	p.Params = dedupe(p.Params)
	dedupeEntries(p.Items)
	return p, nil
}

// Encode writes the playlist with upper-case names.
func (Dialect) Encode(m dialect.Model, opts xml.WriteOptions) ([]byte, error) {
	p, ok := m.(*Playlist)
	if !ok {
		return nil, dialect.WrongModel(Name, m)
	}
	return xml.Marshal(p, opts)
}

// Import converts the playlist into a Sequence.
func (Dialect) Import(m dialect.Model) (ir.Node, error) {
	p, ok := m.(*Playlist)
	if !ok {
		return nil, dialect.WrongModel(Name, m)
	}
	children, err := importItems(p.Items)
	if err != nil {
		return nil, err
	}
	return &ir.Sequence{Children: children, Repeat: ir.RepeatOnce}, nil
}

func importItems(items []Item) ([]ir.Node, error) {
	var out []ir.Node
	for _, item := range items {
		var n ir.Node
		var err error
		switch v := item.(type) {
		case *Entry:
			n, err = importEntry(v)
		case *Repeat:
			var children []ir.Node
			children, err = importItems(v.Items)
			n = &ir.Sequence{Children: children, Repeat: v.Plays()}
		case *EntryRef:
			if v.Href == nil {
				return nil, errors.NewMissingField(Name, "ENTRYREF", "HREF")
			}
			n = ir.NewMedia(*v.Href)
		}
		if err != nil {
			return nil, err
		}
		if n != nil {
			out = append(out, n)
		}
	}
	return out, nil
}

// importEntry picks the first playable REF. An entry with none is ignored.
func importEntry(e *Entry) (ir.Node, error) {
	inherited, err := parseValue(e.Duration)
	if err != nil {
		return nil, err
	}
	candidates := make([]base.Candidate, 0, len(e.Refs))
	for _, ref := range e.Refs {
		if ref.Href == nil {
			return nil, errors.NewMissingField(Name, "REF", "HREF")
		}
		d, err := parseValue(ref.Duration)
		if err != nil {
			return nil, err
		}
		candidates = append(candidates, base.Candidate{Locator: *ref.Href, Duration: d})
	}
	chosen, ok := base.FirstPlayable(candidates, inherited)
	if !ok {
		return nil, nil
	}
	return &ir.Media{Locator: chosen.Locator, Duration: base.Positive(chosen.Duration), Repeat: ir.RepeatOnce}, nil
}

func parseValue(v *Value) (*uint64, error) {
	if v == nil {
		return nil, nil
	}
	return base.ParseDuration(v.Value, clock.Simple)
}

// Metadata lists titles, credits, params and entry timing hints. The IR
// keeps only locators, durations and repeats.
func (Dialect) Metadata(m dialect.Model) []dialect.Field {
	p, ok := m.(*Playlist)
	if !ok {
		return nil
	}
	var f base.Fields
	f.Add("ASX/TITLE", p.Title)
	f.Add("ASX/AUTHOR", p.Author)
	f.Add("ASX/COPYRIGHT", p.Copyright)
	f.Params("ASX", "PARAM", baseParams(p.Params))
	itemMetadata(&f, "ASX", p.Items)
	return f
}

func itemMetadata(f *base.Fields, parent string, items []Item) {
	for i, item := range items {
		switch v := item.(type) {
		case *Entry:
			path := base.Indexed(parent, "ENTRY", i)
			f.Add(path+"/TITLE", v.Title)
			f.Add(path+"/AUTHOR", v.Author)
			f.Add(path+"/COPYRIGHT", v.Copyright)
			f.Add(path+"/@CLIENTSKIP", v.ClientSkip)
			if v.StartTime != nil {
				f.Add(path+"/STARTTIME", v.StartTime.Value)
			}
			f.Params(path, "PARAM", baseParams(v.Params))
		case *Repeat:
			itemMetadata(f, base.Indexed(parent, "REPEAT", i), v.Items)
		}
	}
}

// Export lowers root into REPEAT and ENTRY elements.
func (Dialect) Export(root ir.Node, caps dialect.Capabilities, opts dialect.ExportOptions) (dialect.Model, error) {
	tree, err := dialect.Prepare(Name, root, caps)
	if err != nil {
		return nil, err
	}
	b := &builder{playlist: &Playlist{Version: "3.0"}}
	if err := dialect.Lower(tree, caps, b, opts.Report); err != nil {
		return nil, dialect.Tag(err, Name)
	}
	return b.playlist, nil
}

// builder implements dialect.Builder. Sequences that play once add no
// element; repeated ones become REPEAT.
type builder struct {
	playlist *Playlist
	stack    []*[]Item
}

func (b *builder) top() *[]Item {
	if len(b.stack) == 0 {
		return &b.playlist.Items
	}
	return b.stack[len(b.stack)-1]
}

func (b *builder) Enter(kind ir.Kind, repeat int64) error {
	if kind != ir.KindSequence {
		return errors.NewUnsupportedConstruct(dialect.ConstructParallel, Name)
	}
	if repeat == ir.RepeatOnce {
		b.stack = append(b.stack, b.top())
		return nil
	}
	r := &Repeat{Count: countFor(repeat)}
	*b.top() = append(*b.top(), r)
	b.stack = append(b.stack, &r.Items)
	return nil
}

func (b *builder) Leave() error {
	b.stack = b.stack[:len(b.stack)-1]
	return nil
}

func (b *builder) Media(m *ir.Media) error {
	href := m.Locator
	entry := &Entry{Refs: []Ref{{Href: &href}}}
	if m.Duration != nil {
		entry.Duration = &Value{Value: clock.Format(int64(*m.Duration), clock.Simple)}
	}
	var item Item = entry
	if m.Repeat != ir.RepeatOnce {
		item = &Repeat{Count: countFor(m.Repeat), Items: []Item{entry}}
	}
	*b.top() = append(*b.top(), item)
	return nil
}

func baseParams(params []Param) []base.Param {
	list := make([]base.Param, len(params))
	for i, p := range params {
		list[i] = base.Param(p)
	}
	return list
}

func dedupe(params []Param) []Param {
	if len(params) == 0 {
		return params
	}
	list := base.Dedupe(baseParams(params))
	out := make([]Param, len(list))
	for i, p := range list {
		out[i] = Param{Name: p.Name, Value: p.Value}
	}
	return out
}

func dedupeEntries(items []Item) {
	for _, item := range items {
		switch v := item.(type) {
		case *Entry:
			v.Params = dedupe(v.Params)
		case *Repeat:
			dedupeEntries(v.Items)
		}
	}
}
