package xml

import (
	"bytes"
	"encoding/xml"
	"fmt"
	"strings"

	"github.com/FocuswithJustin/JuniperPlaylist/core/encoding"
	"github.com/antchfx/xmlquery"
)

// Instruction is a processing instruction written after the XML declaration.
type Instruction struct {
	Target string
	Inst   string
}

// WriteOptions controls Marshal output.
type WriteOptions struct {
	// Indent is the per-level indentation. Empty writes compact XML.
	Indent string `json:"indent,omitempty"`

	// Encoding is the IANA name of the output charset. Empty means UTF-8.
	Encoding string `json:"encoding,omitempty"`

	// Instructions are emitted between the declaration and the root element.
	Instructions []Instruction `json:"-"`
}

// Charset returns the effective output charset name.
func (o WriteOptions) Charset() string {
	if strings.TrimSpace(o.Encoding) == "" {
		return encoding.DefaultCharset
	}
	return o.Encoding
}

// Sniffed is what Sniff learns about a document without binding it.
type Sniffed struct {
	// Root is the local name of the root element.
	Root string

	// Namespace is the namespace URI of the root element.
	Namespace string

	// Instructions lists processing-instruction targets before the root.
	Instructions []string
}

// HasInstruction reports whether a processing instruction with the given
// target (case-insensitive) precedes the root.
func (s *Sniffed) HasInstruction(target string) bool {
	for _, t := range s.Instructions {
		if strings.EqualFold(t, target) {
			return true
		}
	}
	return false
}

// Sniff parses data far enough to report its root element and leading
// processing instructions.
func Sniff(data []byte) (*Sniffed, error) {
	doc, err := Parse(data)
	if err != nil {
		return nil, err
	}
	root := doc.Root()
	if root == nil {
		return nil, fmt.Errorf("document has no root element")
	}
	return &Sniffed{
		Root:         root.Name(),
		Namespace:    root.Namespace(),
		Instructions: doc.Instructions(),
	}, nil
}

// FoldNames rewrites every element and attribute name through fold and
// returns the document re-serialized as UTF-8. Namespace declarations are
// left alone. Dialects with case-insensitive names fold before Unmarshal.
func FoldNames(data []byte, fold func(string) string) ([]byte, error) {
	doc, err := Parse(data)
	if err != nil {
		return nil, err
	}
	foldNode(doc.root, fold)

	var buf bytes.Buffer
	if err := doc.root.WriteWithOptions(&buf, xmlquery.WithEmptyTagSupport()); err != nil {
		return nil, fmt.Errorf("writing folded XML: %w", err)
	}
	return buf.Bytes(), nil
}

func foldNode(n *xmlquery.Node, fold func(string) string) {
	switch n.Type {
	case xmlquery.DeclarationNode:
		// Output is always UTF-8 regardless of the source charset.
		if n.HasAttr("encoding") {
			n.SetAttr("encoding", encoding.DefaultCharset)
		}
	case xmlquery.ElementNode:
		n.Data = fold(n.Data)
		for i := range n.Attr {
			a := &n.Attr[i]
			if a.Name.Space == "xmlns" || a.Name.Local == "xmlns" {
				continue
			}
			a.Name.Local = fold(a.Name.Local)
		}
	}
	for child := n.FirstChild; child != nil; child = child.NextSibling {
		foldNode(child, fold)
	}
}

// Unmarshal decodes data into v using encoding/xml struct tags. The input
// charset is taken from the XML declaration.
func Unmarshal(data []byte, v any) error {
	if err := newDecoder(bytes.NewReader(data)).Decode(v); err != nil {
		return fmt.Errorf("decoding XML: %w", err)
	}
	return nil
}

// Marshal encodes v with an XML declaration naming opts.Charset(), followed by
// opts.Instructions, then the element tree.
func Marshal(v any, opts WriteOptions) ([]byte, error) {
	charset := opts.Charset()
	if !encoding.IsUTF8(charset) {
		if _, err := encoding.Lookup(charset); err != nil {
			return nil, err
		}
	}

	var body []byte
	var err error
	if opts.Indent != "" {
		body, err = xml.MarshalIndent(v, "", opts.Indent)
	} else {
		body, err = xml.Marshal(v)
	}
	if err != nil {
		return nil, fmt.Errorf("encoding XML: %w", err)
	}

	var buf bytes.Buffer
	fmt.Fprintf(&buf, "<?xml version=\"1.0\" encoding=\"%s\"?>\n", charset)
	for _, pi := range opts.Instructions {
		buf.WriteString("<?")
		buf.WriteString(pi.Target)
		if pi.Inst != "" {
			buf.WriteString(" ")
			buf.WriteString(pi.Inst)
		}
		buf.WriteString("?>\n")
	}
	buf.Write(body)
	buf.WriteString("\n")

	return encoding.Encode(buf.Bytes(), charset)
}
