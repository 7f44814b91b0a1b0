// Package wpl implements the Windows Media Player playlist dialect.
//
// A WPL file is a SMIL-shaped document marked by a <?wpl?> processing
// instruction. It holds one flat <seq> of <media> entries with no timing,
// so exported trees are unrolled into a plain list.
package wpl

import (
	"encoding/xml"
	"strconv"

	"github.com/FocuswithJustin/JuniperPlaylist/core/dialect"
	"github.com/FocuswithJustin/JuniperPlaylist/core/errors"
	"github.com/FocuswithJustin/JuniperPlaylist/core/ir"
	pxml "github.com/FocuswithJustin/JuniperPlaylist/core/xml"
	"github.com/FocuswithJustin/JuniperPlaylist/internal/formats/base"
)

// Name is the registry key.
const Name = "wpl"

// Generator is written to the Generator meta element on export.
const Generator = "JuniperPlaylist"

// Capabilities is the WPL capability table.
var Capabilities = dialect.Flat

// Instruction marks a document as WPL.
var Instruction = pxml.Instruction{Target: "wpl", Inst: `version="1.0"`}

// Playlist is a WPL document.
type Playlist struct {
	XMLName xml.Name `xml:"smil"`
	Head    Head     `xml:"head"`
	Body    Body     `xml:"body"`
}

// Dialect implements dialect.Model.
func (*Playlist) Dialect() string { return Name }

// Head holds the playlist metadata.
type Head struct {
	Meta   []Meta `xml:"meta"`
	Author string `xml:"author,omitempty"`
	Title  string `xml:"title,omitempty"`
}

// Meta is a name/content pair.
type Meta struct {
	Name    string `xml:"name,attr"`
	Content string `xml:"content,attr"`
}

// Body holds the single top-level sequence.
type Body struct {
	Seq Seq `xml:"seq"`
}

// Seq is the list of entries.
type Seq struct {
	Media []Media `xml:"media"`
}

// Media is one entry. TID and CID are the player's track and content ids.
type Media struct {
	Src         *string `xml:"src,attr"`
	AlbumTitle  string  `xml:"albumTitle,attr,omitempty"`
	AlbumArtist string  `xml:"albumArtist,attr,omitempty"`
	TrackTitle  string  `xml:"trackTitle,attr,omitempty"`
	TrackArtist string  `xml:"trackArtist,attr,omitempty"`
	TID         string  `xml:"tid,attr,omitempty"`
	CID         string  `xml:"cid,attr,omitempty"`
}

// Dialect implements dialect.Dialect for WPL.
type Dialect struct{}

func init() {
	dialect.Register(Dialect{})
}

func (Dialect) Name() string                       { return Name }
func (Dialect) Description() string                { return "Windows Media Player playlist (WPL)" }
func (Dialect) Extensions() []string               { return []string{".wpl"} }
func (Dialect) Capabilities() dialect.Capabilities { return Capabilities }

// Sniff matches documents carrying the wpl processing instruction.
func (Dialect) Sniff(s *pxml.Sniffed) bool {
	return s.HasInstruction(Instruction.Target)
}

// Decode binds a WPL document.
func (Dialect) Decode(data []byte) (dialect.Model, error) {
	p := &Playlist{}
	if err := pxml.Unmarshal(data, p); err != nil {
		return nil, base.DecodeError(Name, err)
	}
	return p, nil
}

// Encode writes the document after the wpl processing instruction.
func (Dialect) Encode(m dialect.Model, opts pxml.WriteOptions) ([]byte, error) {
	p, ok := m.(*Playlist)
	if !ok {
		return nil, dialect.WrongModel(Name, m)
	}
	opts.Instructions = append([]pxml.Instruction{Instruction}, withoutWPL(opts.Instructions)...)
	return pxml.Marshal(p, opts)
}

func withoutWPL(list []pxml.Instruction) []pxml.Instruction {
	var out []pxml.Instruction
	for _, pi := range list {
		if pi.Target != Instruction.Target {
			out = append(out, pi)
		}
	}
	return out
}

// Import returns the entries as a Sequence of Media.
func (Dialect) Import(m dialect.Model) (ir.Node, error) {
	p, ok := m.(*Playlist)
	if !ok {
		return nil, dialect.WrongModel(Name, m)
	}
	media := make([]*ir.Media, 0, len(p.Body.Seq.Media))
	for _, e := range p.Body.Seq.Media {
		if e.Src == nil {
			return nil, errors.NewMissingField(Name, "media", "src")
		}
		media = append(media, ir.NewMedia(*e.Src))
	}
	return base.List(media), nil
}

// derivedMeta names the meta elements Export rewrites from the list itself.
var derivedMeta = map[string]bool{"Generator": true, "ItemCount": true}

// Metadata lists the title, author, other meta elements and the per-entry
// library attributes.
func (Dialect) Metadata(m dialect.Model) []dialect.Field {
	p, ok := m.(*Playlist)
	if !ok {
		return nil
	}
	var f base.Fields
	for _, meta := range p.Head.Meta {
		if !derivedMeta[meta.Name] {
			f.Add("smil/head/meta["+meta.Name+"]", meta.Content)
		}
	}
	f.Add("smil/head/title", p.Head.Title)
	f.Add("smil/head/author", p.Head.Author)
	for i, e := range p.Body.Seq.Media {
		path := base.Indexed("smil/body/seq", "media", i)
		f.Add(path+"/@albumTitle", e.AlbumTitle)
		f.Add(path+"/@albumArtist", e.AlbumArtist)
		f.Add(path+"/@trackTitle", e.TrackTitle)
		f.Add(path+"/@trackArtist", e.TrackArtist)
		f.Add(path+"/@tid", e.TID)
		f.Add(path+"/@cid", e.CID)
	}
	return f
}

// Export unrolls root into a flat list of entries.
func (Dialect) Export(root ir.Node, caps dialect.Capabilities, opts dialect.ExportOptions) (dialect.Model, error) {
	media, err := base.Flatten(Name, root, caps, opts.Report)
	if err != nil {
		return nil, err
	}
	p := &Playlist{Head: Head{Meta: []Meta{
		{Name: "Generator", Content: Generator},
		{Name: "ItemCount", Content: strconv.Itoa(len(media))},
	}}}
	p.Body.Seq.Media = make([]Media, 0, len(media))
	for _, m := range media {
		src := m.Locator
		p.Body.Seq.Media = append(p.Body.Seq.Media, Media{Src: &src})
	}
	return p, nil
}
