// Package rmp implements the RealJukebox music package (RMP) dialect.
//
// An RMP file lists tracks under PACKAGE/TRACKLIST. Element names are
// upper case in practice but matched case-insensitively. Each TRACK names
// its file by FILENAME, falling back to LOCATION when FILENAME is empty.
package rmp

import (
	"encoding/xml"
	"strings"

	"github.com/FocuswithJustin/JuniperPlaylist/core/dialect"
	"github.com/FocuswithJustin/JuniperPlaylist/core/errors"
	"github.com/FocuswithJustin/JuniperPlaylist/core/ir"
	pxml "github.com/FocuswithJustin/JuniperPlaylist/core/xml"
	"github.com/FocuswithJustin/JuniperPlaylist/internal/formats/base"
)

// Name is the registry key.
const Name = "rmp"

// Capabilities is the RMP capability table.
var Capabilities = dialect.Flat

// Package is an RMP document.
type Package struct {
	XMLName   xml.Name `xml:"PACKAGE"`
	Title     string   `xml:"TITLE,omitempty"`
	Provider  string   `xml:"PROVIDER,omitempty"`
	Tracks    []Track  `xml:"TRACKLIST>TRACK"`
	ServerURL string   `xml:"SERVER>NETNAME,omitempty"`
}

// Dialect implements dialect.Model.
func (*Package) Dialect() string { return Name }

// Track is one entry. FILENAME and LOCATION are nil when absent.
type Track struct {
	TrackID  string  `xml:"TRACKID"`
	Title    string  `xml:"TITLE,omitempty"`
	Artist   string  `xml:"ARTIST,omitempty"`
	Album    string  `xml:"ALBUM,omitempty"`
	Filename *string `xml:"FILENAME"`
	Location *string `xml:"LOCATION"`
}

// Dialect implements dialect.Dialect for RMP.
type Dialect struct{}

func init() {
	dialect.Register(Dialect{})
}

func (Dialect) Name() string                       { return Name }
func (Dialect) Description() string                { return "RealJukebox music package (RMP)" }
func (Dialect) Extensions() []string               { return []string{".rmp"} }
func (Dialect) Capabilities() dialect.Capabilities { return Capabilities }

// Sniff matches a <PACKAGE> root in any letter case.
func (Dialect) Sniff(s *pxml.Sniffed) bool {
	return strings.EqualFold(s.Root, "package")
}

// Decode folds names to upper case and binds the document.
func (Dialect) Decode(data []byte) (dialect.Model, error) {
	folded, err := pxml.FoldNames(data, strings.ToUpper)
	if err != nil {
		return nil, base.DecodeError(Name, err)
	}
	p := &Package{}
	if err := pxml.Unmarshal(folded, p); err != nil {
		return nil, base.DecodeError(Name, err)
	}
	return p, nil
}

// Encode writes the package.
func (Dialect) Encode(m dialect.Model, opts pxml.WriteOptions) ([]byte, error) {
	p, ok := m.(*Package)
	if !ok {
		return nil, dialect.WrongModel(Name, m)
	}
	return pxml.Marshal(p, opts)
}

// Import returns the tracks as a Sequence of Media. A track whose FILENAME
// and LOCATION are both empty is skipped; one with neither element is an
// error.
func (Dialect) Import(m dialect.Model) (ir.Node, error) {
	p, ok := m.(*Package)
	if !ok {
		return nil, dialect.WrongModel(Name, m)
	}
	media := make([]*ir.Media, 0, len(p.Tracks))
	for _, t := range p.Tracks {
		if t.Filename == nil && t.Location == nil {
			return nil, errors.NewMissingField(Name, "TRACK", "FILENAME")
		}
		var candidates []base.Candidate
		for _, loc := range []*string{t.Filename, t.Location} {
			if loc != nil {
				candidates = append(candidates, base.Candidate{Locator: strings.TrimSpace(*loc)})
			}
		}
		if c, ok := base.FirstPlayable(candidates, nil); ok {
			media = append(media, ir.NewMedia(c.Locator))
		}
	}
	return base.List(media), nil
}

// Metadata lists the package title, provider and server, and the per-track
// title, artist and album. TRACKID is minted again on export and is not
// reported.
func (Dialect) Metadata(m dialect.Model) []dialect.Field {
	p, ok := m.(*Package)
	if !ok {
		return nil
	}
	var f base.Fields
	f.Add("PACKAGE/TITLE", p.Title)
	f.Add("PACKAGE/PROVIDER", p.Provider)
	f.Add("PACKAGE/SERVER/NETNAME", p.ServerURL)
	for i, t := range p.Tracks {
		path := base.Indexed("PACKAGE/TRACKLIST", "TRACK", i)
		f.Add(path+"/TITLE", t.Title)
		f.Add(path+"/ARTIST", t.Artist)
		f.Add(path+"/ALBUM", t.Album)
	}
	return f
}

// Export unrolls root into tracks, minting a TRACKID for each.
func (Dialect) Export(root ir.Node, caps dialect.Capabilities, opts dialect.ExportOptions) (dialect.Model, error) {
	media, err := base.Flatten(Name, root, caps, opts.Report)
	if err != nil {
		return nil, err
	}
	ids := opts.Generator()
	p := &Package{Tracks: make([]Track, 0, len(media))}
	for _, m := range media {
		filename := m.Locator
		p.Tracks = append(p.Tracks, Track{TrackID: ids.Next("track"), Filename: &filename})
	}
	return p, nil
}
