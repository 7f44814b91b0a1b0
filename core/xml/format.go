package xml

import (
	"bytes"
	"strings"

	"github.com/FocuswithJustin/JuniperPlaylist/core/encoding"
	"github.com/antchfx/xmlquery"
)

// FormatOptions controls Format.
type FormatOptions struct {
	// Indent is the per-level indentation. Empty means two spaces.
	Indent string
}

// Format re-indents a document. Whitespace-only text is dropped; elements
// holding only text stay on one line.
func Format(data []byte, opts FormatOptions) ([]byte, error) {
	if opts.Indent == "" {
		opts.Indent = "  "
	}
	doc, err := Parse(data)
	if err != nil {
		return nil, err
	}
	f := formatter{indent: opts.Indent}
	for c := doc.root.FirstChild; c != nil; c = c.NextSibling {
		f.node(c, 0)
	}
	return f.buf.Bytes(), nil
}

type formatter struct {
	buf    bytes.Buffer
	indent string
}

func (f *formatter) pad(depth int) {
	f.buf.WriteString(strings.Repeat(f.indent, depth))
}

func (f *formatter) node(n *xmlquery.Node, depth int) {
	switch n.Type {
	case xmlquery.DeclarationNode:
		f.buf.WriteString("<?xml")
		f.attrs(n)
		f.buf.WriteString("?>\n")
	case xmlquery.ProcessingInstruction:
		f.buf.WriteString("<?" + n.ProcInst.Target)
		if n.ProcInst.Inst != "" {
			f.buf.WriteString(" " + n.ProcInst.Inst)
		}
		f.buf.WriteString("?>\n")
	case xmlquery.CommentNode:
		f.pad(depth)
		f.buf.WriteString("<!--" + n.Data + "-->\n")
	case xmlquery.ElementNode:
		f.element(n, depth)
	}
}

func (f *formatter) element(n *xmlquery.Node, depth int) {
	name := n.Data
	if n.Prefix != "" {
		name = n.Prefix + ":" + name
	}
	f.pad(depth)
	f.buf.WriteString("<" + name)
	f.attrs(n)

	if n.FirstChild == nil {
		f.buf.WriteString("/>\n")
		return
	}
	block := false
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if c.Type == xmlquery.ElementNode || c.Type == xmlquery.CommentNode {
			block = true
			break
		}
	}

	f.buf.WriteString(">")
	if block {
		f.buf.WriteString("\n")
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		switch c.Type {
		case xmlquery.TextNode:
			text := strings.TrimSpace(c.Data)
			if text == "" {
				continue
			}
			if block {
				f.pad(depth + 1)
				f.buf.WriteString(encoding.EscapeXMLText(text) + "\n")
			} else {
				f.buf.WriteString(encoding.EscapeXMLText(c.Data))
			}
		case xmlquery.CharDataNode:
			f.buf.WriteString("<![CDATA[" + c.Data + "]]>")
		default:
			f.node(c, depth+1)
		}
	}
	if block {
		f.pad(depth)
	}
	f.buf.WriteString("</" + name + ">\n")
}

func (f *formatter) attrs(n *xmlquery.Node) {
	for _, a := range n.Attr {
		name := a.Name.Local
		if a.Name.Space != "" {
			name = a.Name.Space + ":" + name
		}
		f.buf.WriteString(" " + name + `="` + encoding.EscapeXMLAttr(a.Value) + `"`)
	}
}
