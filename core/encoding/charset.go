package encoding

import (
	"io"
	"strings"

	"github.com/FocuswithJustin/JuniperPlaylist/core/errors"
	"golang.org/x/net/html/charset"
	xencoding "golang.org/x/text/encoding"
	"golang.org/x/text/encoding/ianaindex"
)

// DefaultCharset is used when no output encoding is requested.
const DefaultCharset = "UTF-8"

// IsUTF8 reports whether name selects UTF-8. An empty name does.
func IsUTF8(name string) bool {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "utf-8", "utf8":
		return true
	}
	return false
}

// Lookup resolves an IANA charset name.
func Lookup(name string) (xencoding.Encoding, error) {
	enc, err := ianaindex.IANA.Encoding(name)
	if err != nil {
		return nil, errors.NewUnsupported("charset "+name, "not an IANA charset name")
	}
	if enc == nil {
		return nil, errors.NewUnsupported("charset "+name, "no encoder available")
	}
	return enc, nil
}

// Encode transcodes UTF-8 data into the named charset. Runes the charset
// cannot represent are written as numeric character references.
func Encode(data []byte, name string) ([]byte, error) {
	if IsUTF8(name) {
		return data, nil
	}
	enc, err := Lookup(name)
	if err != nil {
		return nil, err
	}
	out, err := xencoding.HTMLEscapeUnsupported(enc.NewEncoder()).Bytes(data)
	if err != nil {
		return nil, errors.Wrapf(err, "encoding output as %s", name)
	}
	return out, nil
}

// NewReader converts input labelled with the given charset to UTF-8. It has
// the signature of xml.Decoder.CharsetReader.
func NewReader(label string, input io.Reader) (io.Reader, error) {
	if IsUTF8(label) {
		return input, nil
	}
	return charset.NewReaderLabel(label, input)
}
