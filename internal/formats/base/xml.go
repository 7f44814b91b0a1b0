package base

import (
	"encoding/xml"

	"github.com/FocuswithJustin/JuniperPlaylist/core/errors"
)

// ReadChildren calls fn for each child element until the parent closes.
// fn must consume the element it is given, either by decoding it or with
// d.Skip.
func ReadChildren(d *xml.Decoder, fn func(se xml.StartElement) error) error {
	for {
		tok, err := d.Token()
		if err != nil {
			return err
		}
		switch t := tok.(type) {
		case xml.StartElement:
			if err := fn(t); err != nil {
				return err
			}
		case xml.EndElement:
			return nil
		}
	}
}

// Attr returns the value of the attribute with the given local name.
func Attr(se xml.StartElement, local string) (string, bool) {
	for _, a := range se.Attr {
		if a.Name.Local == local {
			return a.Value, true
		}
	}
	return "", false
}

// DecodeError reports a binding failure as a ParseError for dialect name.
// Errors that already are ParseErrors pass through.
func DecodeError(name string, err error) error {
	var pe *errors.ParseError
	if errors.As(err, &pe) {
		return err
	}
	return &errors.ParseError{Format: name, Message: err.Error(), Err: err}
}
