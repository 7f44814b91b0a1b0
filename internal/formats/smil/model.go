package smil

import (
	"encoding/xml"
	"strconv"
	"strings"

	"github.com/FocuswithJustin/JuniperPlaylist/core/errors"
	"github.com/FocuswithJustin/JuniperPlaylist/internal/formats/base"
)

// Namespace is the SMIL 2.0 language namespace written on export.
const Namespace = "http://www.w3.org/2001/SMIL20/Language"

// Indefinite is the model value of repeatCount="indefinite".
const Indefinite int64 = -1

// Document is a <smil> document.
type Document struct {
	Namespace string
	Head      *Head

	// Body holds the timing tree in document order.
	Body []Element
}

// Dialect implements dialect.Model.
func (*Document) Dialect() string { return Name }

// Head carries metadata and the layout regions.
type Head struct {
	Meta    []Meta
	Regions []Region
}

// Meta is a name/content pair from <head>.
type Meta struct {
	Name    string `xml:"name,attr"`
	Content string `xml:"content,attr"`
}

// Region is a rendering surface declared in <layout>.
type Region struct {
	ID     string `xml:"id,attr"`
	Title  string `xml:"title,attr,omitempty"`
	Width  string `xml:"width,attr,omitempty"`
	Height string `xml:"height,attr,omitempty"`
	Top    string `xml:"top,attr,omitempty"`
	Left   string `xml:"left,attr,omitempty"`
}

// Element is a *Container or a *Media.
type Element interface {
	smilElement()
}

// Timing holds the attributes shared by every timed element.
type Timing struct {
	ID  string
	Dur string

	// RepeatCount is nil when the attribute is absent and Indefinite for
	// "indefinite".
	RepeatCount *int64
}

// Container is a <seq>, <par> or <switch>.
type Container struct {
	Tag string
	Timing
	Children []Element
}

// Media is a media object element such as <audio> or <video>.
type Media struct {
	Tag string
	Timing

	// Src is nil when the attribute is absent.
	Src    *string
	Region string
	Params []Param
}

// Param is a name/value pair attached to a media object.
type Param struct {
	Name  string `xml:"name,attr"`
	Value string `xml:"value,attr"`
}

func (*Container) smilElement() {}
func (*Media) smilElement()     {}

const (
	tagSeq    = "seq"
	tagPar    = "par"
	tagSwitch = "switch"
)

// mediaTags are the media object elements.
var mediaTags = map[string]bool{
	"ref": true, "audio": true, "video": true, "img": true, "text": true,
	"textstream": true, "animation": true, "media": true, "brush": true,
}

// IsMediaTag reports whether tag names a media object element.
func IsMediaTag(tag string) bool {
	return mediaTags[tag]
}

// UnmarshalXML reads the root element.
func (doc *Document) UnmarshalXML(d *xml.Decoder, start xml.StartElement) error {
	doc.Namespace = start.Name.Space
	return base.ReadChildren(d, func(se xml.StartElement) error {
		switch se.Name.Local {
		case "head":
			doc.Head = &Head{}
			return d.DecodeElement(doc.Head, &se)
		case "body":
			return base.ReadChildren(d, func(se xml.StartElement) error {
				el, err := decodeElement(d, se)
				if el != nil {
					doc.Body = append(doc.Body, el)
				}
				return err
			})
		}
		return d.Skip()
	})
}

// MarshalXML writes the root element.
func (doc *Document) MarshalXML(e *xml.Encoder, _ xml.StartElement) error {
	start := xml.StartElement{Name: xml.Name{Local: "smil"}}
	if doc.Namespace != "" {
		start.Attr = []xml.Attr{{Name: xml.Name{Local: "xmlns"}, Value: doc.Namespace}}
	}
	if err := e.EncodeToken(start); err != nil {
		return err
	}
	if doc.Head != nil && (len(doc.Head.Meta) > 0 || len(doc.Head.Regions) > 0) {
		if err := e.EncodeElement(doc.Head, xml.StartElement{Name: xml.Name{Local: "head"}}); err != nil {
			return err
		}
	}
	body := xml.StartElement{Name: xml.Name{Local: "body"}}
	if err := e.EncodeToken(body); err != nil {
		return err
	}
	if err := encodeElements(e, doc.Body); err != nil {
		return err
	}
	if err := e.EncodeToken(body.End()); err != nil {
		return err
	}
	return e.EncodeToken(start.End())
}

// UnmarshalXML reads <head>.
func (h *Head) UnmarshalXML(d *xml.Decoder, _ xml.StartElement) error {
	return base.ReadChildren(d, func(se xml.StartElement) error {
		switch se.Name.Local {
		case "meta":
			var m Meta
			if err := d.DecodeElement(&m, &se); err != nil {
				return err
			}
			h.Meta = append(h.Meta, m)
			return nil
		case "layout":
			return base.ReadChildren(d, func(se xml.StartElement) error {
				if se.Name.Local != "region" {
					return d.Skip()
				}
				var r Region
				if err := d.DecodeElement(&r, &se); err != nil {
					return err
				}
				h.Regions = append(h.Regions, r)
				return nil
			})
		}
		return d.Skip()
	})
}

// MarshalXML writes <head>.
func (h *Head) MarshalXML(e *xml.Encoder, start xml.StartElement) error {
	if err := e.EncodeToken(start); err != nil {
		return err
	}
	for _, m := range h.Meta {
		if err := e.EncodeElement(m, xml.StartElement{Name: xml.Name{Local: "meta"}}); err != nil {
			return err
		}
	}
	if len(h.Regions) > 0 {
		layout := xml.StartElement{Name: xml.Name{Local: "layout"}}
		if err := e.EncodeToken(layout); err != nil {
			return err
		}
		for _, r := range h.Regions {
			if err := e.EncodeElement(r, xml.StartElement{Name: xml.Name{Local: "region"}}); err != nil {
				return err
			}
		}
		if err := e.EncodeToken(layout.End()); err != nil {
			return err
		}
	}
	return e.EncodeToken(start.End())
}

// UnmarshalXML reads a container element.
func (c *Container) UnmarshalXML(d *xml.Decoder, start xml.StartElement) error {
	c.Tag = start.Name.Local
	if err := c.Timing.read(start); err != nil {
		return err
	}
	return base.ReadChildren(d, func(se xml.StartElement) error {
		el, err := decodeElement(d, se)
		if el != nil {
			c.Children = append(c.Children, el)
		}
		return err
	})
}

// MarshalXML writes a container element.
func (c *Container) MarshalXML(e *xml.Encoder, _ xml.StartElement) error {
	start := xml.StartElement{Name: xml.Name{Local: c.Tag}, Attr: c.Timing.attrs()}
	if err := e.EncodeToken(start); err != nil {
		return err
	}
	if err := encodeElements(e, c.Children); err != nil {
		return err
	}
	return e.EncodeToken(start.End())
}

// UnmarshalXML reads a media object element.
func (m *Media) UnmarshalXML(d *xml.Decoder, start xml.StartElement) error {
	m.Tag = start.Name.Local
	if err := m.Timing.read(start); err != nil {
		return err
	}
	if src, ok := base.Attr(start, "src"); ok {
		m.Src = &src
	}
	m.Region, _ = base.Attr(start, "region")
	return base.ReadChildren(d, func(se xml.StartElement) error {
		if se.Name.Local != "param" {
			return d.Skip()
		}
		var p Param
		if err := d.DecodeElement(&p, &se); err != nil {
			return err
		}
		m.Params = append(m.Params, p)
		return nil
	})
}

// MarshalXML writes a media object element.
func (m *Media) MarshalXML(e *xml.Encoder, _ xml.StartElement) error {
	start := xml.StartElement{Name: xml.Name{Local: m.Tag}}
	if m.ID != "" {
		start.Attr = append(start.Attr, xml.Attr{Name: xml.Name{Local: "id"}, Value: m.ID})
	}
	if m.Src != nil {
		start.Attr = append(start.Attr, xml.Attr{Name: xml.Name{Local: "src"}, Value: *m.Src})
	}
	if m.Region != "" {
		start.Attr = append(start.Attr, xml.Attr{Name: xml.Name{Local: "region"}, Value: m.Region})
	}
	timing := m.Timing
	timing.ID = ""
	start.Attr = append(start.Attr, timing.attrs()...)
	if err := e.EncodeToken(start); err != nil {
		return err
	}
	for _, p := range m.Params {
		if err := e.EncodeElement(p, xml.StartElement{Name: xml.Name{Local: "param"}}); err != nil {
			return err
		}
	}
	return e.EncodeToken(start.End())
}

func (t *Timing) read(start xml.StartElement) error {
	t.ID, _ = base.Attr(start, "id")
	t.Dur, _ = base.Attr(start, "dur")
	if text, ok := base.Attr(start, "repeatCount"); ok {
		n, err := parseRepeatCount(start.Name.Local, text)
		if err != nil {
			return err
		}
		t.RepeatCount = &n
	}
	return nil
}

func (t Timing) attrs() []xml.Attr {
	var attrs []xml.Attr
	if t.ID != "" {
		attrs = append(attrs, xml.Attr{Name: xml.Name{Local: "id"}, Value: t.ID})
	}
	if t.Dur != "" {
		attrs = append(attrs, xml.Attr{Name: xml.Name{Local: "dur"}, Value: t.Dur})
	}
	if t.RepeatCount != nil {
		attrs = append(attrs, xml.Attr{Name: xml.Name{Local: "repeatCount"}, Value: formatRepeatCount(*t.RepeatCount)})
	}
	return attrs
}

// Plays converts repeatCount to an IR repeat count.
func (t Timing) Plays() int64 {
	if t.RepeatCount == nil {
		return 1
	}
	return *t.RepeatCount
}

// parseRepeatCount accepts a non-negative integer or "indefinite".
func parseRepeatCount(element, text string) (int64, error) {
	if strings.EqualFold(strings.TrimSpace(text), "indefinite") {
		return Indefinite, nil
	}
	return base.ParseCount(Name, element, "repeatCount", text)
}

func formatRepeatCount(n int64) string {
	if n == Indefinite {
		return "indefinite"
	}
	return strconv.FormatInt(n, 10)
}

// decodeElement decodes se if it is a timing element and skips it otherwise.
func decodeElement(d *xml.Decoder, se xml.StartElement) (Element, error) {
	var el Element
	switch tag := se.Name.Local; {
	case tag == tagSeq || tag == tagPar || tag == tagSwitch:
		el = &Container{}
	case IsMediaTag(tag):
		el = &Media{}
	default:
		return nil, d.Skip()
	}
	if err := d.DecodeElement(el, &se); err != nil {
		return nil, err
	}
	return el, nil
}

func encodeElements(e *xml.Encoder, elements []Element) error {
	for _, el := range elements {
		if err := e.Encode(el); err != nil {
			return err
		}
	}
	return nil
}

// errNoSrc is the error for a media object without a src attribute.
func errNoSrc(tag string) error {
	return errors.NewMissingField(Name, tag, "src")
}
