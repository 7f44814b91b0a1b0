package asx

import (
	"encoding/xml"
	"math"
	"strconv"

	"github.com/FocuswithJustin/JuniperPlaylist/core/errors"
	"github.com/FocuswithJustin/JuniperPlaylist/internal/formats/base"
)

// Playlist is an <ASX> document. Element and attribute names are matched
// after upper-case folding.
type Playlist struct {
	Version   string
	Title     string
	Author    string
	Copyright string
	Params    []Param

	// Items holds ENTRY, REPEAT and ENTRYREF children in document order.
	Items []Item
}

// Dialect implements dialect.Model.
func (*Playlist) Dialect() string { return Name }

// Item is an *Entry, *Repeat or *EntryRef.
type Item interface {
	asxItem()
}

// Entry is one logical clip with alternative REF locators.
type Entry struct {
	XMLName    xml.Name `xml:"ENTRY"`
	ClientSkip string   `xml:"CLIENTSKIP,attr,omitempty"`
	Title      string   `xml:"TITLE,omitempty"`
	Author     string   `xml:"AUTHOR,omitempty"`
	Copyright  string   `xml:"COPYRIGHT,omitempty"`
	Refs       []Ref    `xml:"REF"`
	Duration   *Value   `xml:"DURATION"`
	StartTime  *Value   `xml:"STARTTIME"`
	Params     []Param  `xml:"PARAM"`
}

// Ref is one candidate locator. Its DURATION overrides the entry's.
type Ref struct {
	Href     *string `xml:"HREF,attr"`
	Duration *Value  `xml:"DURATION"`
}

// EntryRef points at another ASX playlist.
type EntryRef struct {
	XMLName xml.Name `xml:"ENTRYREF"`
	Href    *string  `xml:"HREF,attr"`
}

// Repeat plays its items COUNT+1 times. A missing COUNT repeats forever.
type Repeat struct {
	Count *int64
	Items []Item
}

// Value is an element whose content is its VALUE attribute.
type Value struct {
	Value string `xml:"VALUE,attr"`
}

// Param is a NAME/VALUE pair.
type Param struct {
	Name  string `xml:"NAME,attr"`
	Value string `xml:"VALUE,attr"`
}

func (*Entry) asxItem()    {}
func (*EntryRef) asxItem() {}
func (*Repeat) asxItem()   {}

// Plays converts COUNT to an IR repeat count.
func (r *Repeat) Plays() int64 {
	if r.Count == nil {
		return -1
	}
	return *r.Count + 1
}

// countFor converts an IR repeat count to COUNT.
func countFor(repeat int64) *int64 {
	if repeat < 0 {
		return nil
	}
	c := repeat - 1
	return &c
}

// UnmarshalXML reads the root element.
func (p *Playlist) UnmarshalXML(d *xml.Decoder, start xml.StartElement) error {
	for _, a := range start.Attr {
		if a.Name.Local == "VERSION" {
			p.Version = a.Value
		}
	}
	return base.ReadChildren(d, func(se xml.StartElement) error {
		switch se.Name.Local {
		case "TITLE":
			return d.DecodeElement(&p.Title, &se)
		case "AUTHOR":
			return d.DecodeElement(&p.Author, &se)
		case "COPYRIGHT":
			return d.DecodeElement(&p.Copyright, &se)
		case "PARAM":
			var prm Param
			if err := d.DecodeElement(&prm, &se); err != nil {
				return err
			}
			p.Params = append(p.Params, prm)
			return nil
		}
		item, err := decodeItem(d, se)
		if item != nil {
			p.Items = append(p.Items, item)
		}
		return err
	})
}

// MarshalXML writes the root element.
func (p *Playlist) MarshalXML(e *xml.Encoder, _ xml.StartElement) error {
	start := xml.StartElement{Name: xml.Name{Local: "ASX"}}
	version := p.Version
	if version == "" {
		version = "3.0"
	}
	start.Attr = []xml.Attr{{Name: xml.Name{Local: "VERSION"}, Value: version}}
	if err := e.EncodeToken(start); err != nil {
		return err
	}
	for _, el := range []struct{ name, text string }{
		{"TITLE", p.Title}, {"AUTHOR", p.Author}, {"COPYRIGHT", p.Copyright},
	} {
		if el.text == "" {
			continue
		}
		if err := e.EncodeElement(el.text, xml.StartElement{Name: xml.Name{Local: el.name}}); err != nil {
			return err
		}
	}
	for _, prm := range p.Params {
		if err := e.EncodeElement(prm, xml.StartElement{Name: xml.Name{Local: "PARAM"}}); err != nil {
			return err
		}
	}
	if err := encodeItems(e, p.Items); err != nil {
		return err
	}
	return e.EncodeToken(start.End())
}

// UnmarshalXML reads a REPEAT element.
func (r *Repeat) UnmarshalXML(d *xml.Decoder, start xml.StartElement) error {
	for _, a := range start.Attr {
		if a.Name.Local == "COUNT" {
			n, err := base.ParseCount(Name, "REPEAT", "COUNT", a.Value)
			if err != nil {
				return err
			}
			// COUNT is plays - 1, so the largest value has no play count.
			if n == math.MaxInt64 {
				return errors.NewParse(Name, "", "REPEAT COUNT is too large, got "+strconv.Quote(a.Value))
			}
			r.Count = &n
		}
	}
	return base.ReadChildren(d, func(se xml.StartElement) error {
		item, err := decodeItem(d, se)
		if item != nil {
			r.Items = append(r.Items, item)
		}
		return err
	})
}

// MarshalXML writes a REPEAT element.
func (r *Repeat) MarshalXML(e *xml.Encoder, _ xml.StartElement) error {
	start := xml.StartElement{Name: xml.Name{Local: "REPEAT"}}
	if r.Count != nil {
		start.Attr = []xml.Attr{{Name: xml.Name{Local: "COUNT"}, Value: strconv.FormatInt(*r.Count, 10)}}
	}
	if err := e.EncodeToken(start); err != nil {
		return err
	}
	if err := encodeItems(e, r.Items); err != nil {
		return err
	}
	return e.EncodeToken(start.End())
}

// decodeItem decodes se if it is an item element and skips it otherwise.
func decodeItem(d *xml.Decoder, se xml.StartElement) (Item, error) {
	var item Item
	switch se.Name.Local {
	case "ENTRY":
		item = &Entry{}
	case "REPEAT":
		item = &Repeat{}
	case "ENTRYREF":
		item = &EntryRef{}
	default:
		return nil, d.Skip()
	}
	if err := d.DecodeElement(item, &se); err != nil {
		return nil, err
	}
	return item, nil
}

func encodeItems(e *xml.Encoder, items []Item) error {
	for _, item := range items {
		if err := e.Encode(item); err != nil {
			return err
		}
	}
	return nil
}
