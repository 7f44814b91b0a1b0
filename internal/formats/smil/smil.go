// Package smil implements the Synchronized Multimedia Integration Language
// playlist dialect.
//
// SMIL expresses every IR construct: <seq> and <par> map to Sequence and
// Parallel, repeatCount carries the repeat count ("indefinite" for forever)
// and dur is written in the extended clock grammar. A <switch> is resolved
// on import to its first playable child.
package smil

import (
	"github.com/FocuswithJustin/JuniperPlaylist/core/clock"
	"github.com/FocuswithJustin/JuniperPlaylist/core/dialect"
	"github.com/FocuswithJustin/JuniperPlaylist/core/ir"
	"github.com/FocuswithJustin/JuniperPlaylist/core/xml"
	"github.com/FocuswithJustin/JuniperPlaylist/internal/formats/base"
)

// Name is the registry key.
const Name = "smil"

// Capabilities is the SMIL capability table.
var Capabilities = dialect.Full

// Dialect implements dialect.Dialect for SMIL.
type Dialect struct{}

func init() {
	dialect.Register(Dialect{})
}

func (Dialect) Name() string                       { return Name }
func (Dialect) Description() string                { return "SMIL 2.0 presentation" }
func (Dialect) Extensions() []string               { return []string{".smil", ".smi", ".sml"} }
func (Dialect) Capabilities() dialect.Capabilities { return Capabilities }

// Sniff matches a <smil> root that is not marked as a WPL playlist.
func (Dialect) Sniff(s *xml.Sniffed) bool {
	return s.Root == "smil" && !s.HasInstruction("wpl")
}

// Decode binds a SMIL document.
func (Dialect) Decode(data []byte) (dialect.Model, error) {
	doc := &Document{}
	if err := xml.Unmarshal(data, doc); err != nil {
		return nil, base.DecodeError(Name, err)
	}
	for _, el := range doc.Body {
		dedupeParams(el)
	}
	return doc, nil
}

// Encode writes the document.
func (Dialect) Encode(m dialect.Model, opts xml.WriteOptions) ([]byte, error) {
	doc, ok := m.(*Document)
	if !ok {
		return nil, dialect.WrongModel(Name, m)
	}
	return xml.Marshal(doc, opts)
}

// Import converts <body> into a Sequence.
func (Dialect) Import(m dialect.Model) (ir.Node, error) {
	doc, ok := m.(*Document)
	if !ok {
		return nil, dialect.WrongModel(Name, m)
	}
	children, err := importElements(doc.Body)
	if err != nil {
		return nil, err
	}
	return &ir.Sequence{Children: children, Repeat: ir.RepeatOnce}, nil
}

func importElements(elements []Element) ([]ir.Node, error) {
	var out []ir.Node
	for _, el := range elements {
		n, err := importElement(el)
		if err != nil {
			return nil, err
		}
		if n != nil {
			out = append(out, n)
		}
	}
	return out, nil
}

func importElement(el Element) (ir.Node, error) {
	switch v := el.(type) {
	case *Container:
		// Containers have no IR duration; the value is still checked.
		if _, err := base.ParseDuration(v.Dur, clock.Extended); err != nil {
			return nil, err
		}
		switch v.Tag {
		case tagSwitch:
			return importSwitch(v)
		case tagPar:
			children, err := importElements(v.Children)
			if err != nil {
				return nil, err
			}
			return &ir.Parallel{Children: children, Repeat: v.Plays()}, nil
		default:
			children, err := importElements(v.Children)
			if err != nil {
				return nil, err
			}
			return &ir.Sequence{Children: children, Repeat: v.Plays()}, nil
		}
	case *Media:
		if v.Src == nil {
			return nil, errNoSrc(v.Tag)
		}
		d, err := base.ParseDuration(v.Dur, clock.Extended)
		if err != nil {
			return nil, err
		}
		return &ir.Media{Locator: *v.Src, Duration: base.Positive(d), Repeat: v.Plays()}, nil
	}
	return nil, nil
}

// importSwitch keeps the first child that can play. A media child qualifies
// under the same rule as ASX fallback references, with the switch's dur as
// the inherited duration; a container qualifies when it holds playable
// media. A switch with no qualifying child is ignored.
func importSwitch(sw *Container) (ir.Node, error) {
	inherited, err := base.ParseDuration(sw.Dur, clock.Extended)
	if err != nil {
		return nil, err
	}
	for _, el := range sw.Children {
		var chosen ir.Node
		switch v := el.(type) {
		case *Media:
			if v.Src == nil {
				return nil, errNoSrc(v.Tag)
			}
			d, err := base.ParseDuration(v.Dur, clock.Extended)
			if err != nil {
				return nil, err
			}
			c, ok := base.FirstPlayable([]base.Candidate{{Locator: *v.Src, Duration: d}}, inherited)
			if !ok {
				continue
			}
			chosen = &ir.Media{Locator: c.Locator, Duration: base.Positive(c.Duration), Repeat: v.Plays()}
		case *Container:
			n, err := importElement(v)
			if err != nil {
				return nil, err
			}
			if n == nil || !hasPlayable(n) {
				continue
			}
			chosen = n
		}
		if sw.Plays() == ir.RepeatOnce {
			return chosen, nil
		}
		return &ir.Sequence{Children: []ir.Node{chosen}, Repeat: sw.Plays()}, nil
	}
	return nil, nil
}

func hasPlayable(n ir.Node) bool {
	for _, m := range ir.MediaNodes(n) {
		if m.Locator != "" {
			return true
		}
	}
	return false
}

// Metadata lists head meta, layout regions, region bindings and params.
// None of them survive the IR.
func (Dialect) Metadata(m dialect.Model) []dialect.Field {
	doc, ok := m.(*Document)
	if !ok {
		return nil
	}
	var f base.Fields
	if doc.Head != nil {
		for _, meta := range doc.Head.Meta {
			f.Add("smil/head/meta["+meta.Name+"]", meta.Content)
		}
		for i, r := range doc.Head.Regions {
			f.Add(base.Indexed("smil/head/layout", "region", i), r.ID)
		}
	}
	elementMetadata(&f, "smil/body", doc.Body)
	return f
}

func elementMetadata(f *base.Fields, parent string, elements []Element) {
	for i, el := range elements {
		switch v := el.(type) {
		case *Container:
			elementMetadata(f, base.Indexed(parent, v.Tag, i), v.Children)
		case *Media:
			path := base.Indexed(parent, v.Tag, i)
			f.Add(path+"/@region", v.Region)
			params := make([]base.Param, len(v.Params))
			for j, p := range v.Params {
				params[j] = base.Param(p)
			}
			f.Params(path, "param", params)
		}
	}
}

// Export lowers root into a SMIL body. A root Sequence that plays once is
// the body itself.
func (Dialect) Export(root ir.Node, caps dialect.Capabilities, opts dialect.ExportOptions) (dialect.Model, error) {
	tree, err := dialect.Prepare(Name, root, caps)
	if err != nil {
		return nil, err
	}
	b := &builder{doc: &Document{Namespace: Namespace}, ids: opts.Generator()}
	if err := dialect.Lower(tree, caps, b, opts.Report); err != nil {
		return nil, dialect.Tag(err, Name)
	}
	return b.doc, nil
}

// builder implements dialect.Builder.
type builder struct {
	doc   *Document
	ids   dialect.IDGenerator
	stack []*[]Element
}

func (b *builder) top() *[]Element {
	if len(b.stack) == 0 {
		return &b.doc.Body
	}
	return b.stack[len(b.stack)-1]
}

func (b *builder) Enter(kind ir.Kind, repeat int64) error {
	if len(b.stack) == 0 && kind == ir.KindSequence && repeat == ir.RepeatOnce {
		b.stack = append(b.stack, &b.doc.Body)
		return nil
	}
	tag := tagSeq
	if kind == ir.KindParallel {
		tag = tagPar
	}
	c := &Container{Tag: tag, Timing: Timing{ID: b.ids.Next(tag), RepeatCount: repeatAttr(repeat)}}
	*b.top() = append(*b.top(), c)
	b.stack = append(b.stack, &c.Children)
	return nil
}

func (b *builder) Leave() error {
	b.stack = b.stack[:len(b.stack)-1]
	return nil
}

// Media writes a generic <ref>; choosing <audio> or <video> would need the
// content type.
func (b *builder) Media(m *ir.Media) error {
	src := m.Locator
	el := &Media{
		Tag: "ref",
		Timing: Timing{
			ID:          b.ids.Next("ref"),
			Dur:         base.FormatDuration(m.Duration, clock.Extended),
			RepeatCount: repeatAttr(m.Repeat),
		},
		Src: &src,
	}
	*b.top() = append(*b.top(), el)
	return nil
}

func repeatAttr(repeat int64) *int64 {
	if repeat == ir.RepeatOnce {
		return nil
	}
	return &repeat
}

func dedupeParams(el Element) {
	switch v := el.(type) {
	case *Media:
		if len(v.Params) == 0 {
			return
		}
		list := make([]base.Param, len(v.Params))
		for i, p := range v.Params {
			list[i] = base.Param(p)
		}
		list = base.Dedupe(list)
		v.Params = v.Params[:0]
		for _, p := range list {
			v.Params = append(v.Params, Param(p))
		}
	case *Container:
		for _, c := range v.Children {
			dedupeParams(c)
		}
	}
}
