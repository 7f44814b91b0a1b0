// Package hypetape implements the Hype Machine mixtape dialect.
//
// A tape is a named, flat list of tracks, each with a <url> and optional
// artist and song credits. It has no repeats, timing or parallel playback,
// so exported trees are unrolled into a plain list.
package hypetape

import (
	"encoding/xml"

	"github.com/FocuswithJustin/JuniperPlaylist/core/dialect"
	"github.com/FocuswithJustin/JuniperPlaylist/core/errors"
	"github.com/FocuswithJustin/JuniperPlaylist/core/ir"
	pxml "github.com/FocuswithJustin/JuniperPlaylist/core/xml"
	"github.com/FocuswithJustin/JuniperPlaylist/internal/formats/base"
)

// Name is the registry key.
const Name = "hypetape"

// Capabilities is the Hypetape capability table.
var Capabilities = dialect.Flat

// Tape is a Hypetape document.
type Tape struct {
	XMLName xml.Name `xml:"tape"`
	Name    string   `xml:"name,omitempty"`
	Tracks  []Track  `xml:"tracks>track"`
}

// Dialect implements dialect.Model.
func (*Tape) Dialect() string { return Name }

// Track is one song. URL is nil when the element is absent.
type Track struct {
	URL    *string `xml:"url"`
	Artist string  `xml:"artist,omitempty"`
	Song   string  `xml:"song,omitempty"`
}

// Dialect implements dialect.Dialect for Hypetape.
type Dialect struct{}

func init() {
	dialect.Register(Dialect{})
}

func (Dialect) Name() string                       { return Name }
func (Dialect) Description() string                { return "Hypetape mixtape" }
func (Dialect) Extensions() []string               { return []string{".hypetape", ".tape"} }
func (Dialect) Capabilities() dialect.Capabilities { return Capabilities }

// Sniff matches a <tape> root.
func (Dialect) Sniff(s *pxml.Sniffed) bool {
	return s.Root == "tape"
}

// Decode binds a tape document.
func (Dialect) Decode(data []byte) (dialect.Model, error) {
	t := &Tape{}
	if err := pxml.Unmarshal(data, t); err != nil {
		return nil, base.DecodeError(Name, err)
	}
	return t, nil
}

// Encode writes the tape.
func (Dialect) Encode(m dialect.Model, opts pxml.WriteOptions) ([]byte, error) {
	t, ok := m.(*Tape)
	if !ok {
		return nil, dialect.WrongModel(Name, m)
	}
	return pxml.Marshal(t, opts)
}

// Import returns the tracks as a Sequence of Media. A track without a
// <url> element is an error; an empty one is kept and dropped on export.
func (Dialect) Import(m dialect.Model) (ir.Node, error) {
	t, ok := m.(*Tape)
	if !ok {
		return nil, dialect.WrongModel(Name, m)
	}
	media := make([]*ir.Media, 0, len(t.Tracks))
	for _, tr := range t.Tracks {
		if tr.URL == nil {
			return nil, errors.NewMissingField(Name, "track", "url")
		}
		media = append(media, ir.NewMedia(*tr.URL))
	}
	return base.List(media), nil
}

// Metadata lists the tape name and the per-track credits.
func (Dialect) Metadata(m dialect.Model) []dialect.Field {
	t, ok := m.(*Tape)
	if !ok {
		return nil
	}
	var f base.Fields
	f.Add("tape/name", t.Name)
	for i, tr := range t.Tracks {
		path := base.Indexed("tape/tracks", "track", i)
		f.Add(path+"/artist", tr.Artist)
		f.Add(path+"/song", tr.Song)
	}
	return f
}

// Export unrolls root into a flat list of tracks.
func (Dialect) Export(root ir.Node, caps dialect.Capabilities, opts dialect.ExportOptions) (dialect.Model, error) {
	media, err := base.Flatten(Name, root, caps, opts.Report)
	if err != nil {
		return nil, err
	}
	t := &Tape{Tracks: make([]Track, 0, len(media))}
	for _, m := range media {
		url := m.Locator
		t.Tracks = append(t.Tracks, Track{URL: &url})
	}
	return t, nil
}
