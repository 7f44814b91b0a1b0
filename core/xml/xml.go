// Package xml is the XML binding layer for playlist dialects: parsing,
// XPath queries, pretty-printing, name case folding, and struct
// marshalling with a caller-chosen output charset.
//
// Every decoder this package creates is strict and has an empty entity
// table, so documents cannot expand internal or external entities.
package xml

import (
	"bytes"
	"encoding/xml"
	"fmt"
	"io"

	"github.com/FocuswithJustin/JuniperPlaylist/core/encoding"
	"github.com/antchfx/xmlquery"
	"github.com/antchfx/xpath"
)

// Document is a parsed XML document.
type Document struct {
	root *xmlquery.Node
}

// Node is an element of a Document.
type Node struct {
	node *xmlquery.Node
}

// ValidationResult is the outcome of Validate.
type ValidationResult struct {
	Valid  bool
	Errors []ValidationError
}

// ValidationError locates a well-formedness failure.
type ValidationError struct {
	Line    int
	Column  int
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("line %d, column %d: %s", e.Line, e.Column, e.Message)
}

func parserOptions() xmlquery.ParserOptions {
	return xmlquery.ParserOptions{
		Decoder: &xmlquery.DecoderOptions{
			Strict:        true,
			Entity:        map[string]string{},
			CharsetReader: encoding.NewReader,
		},
		WithLineNumbers: true,
	}
}

func newDecoder(r io.Reader) *xml.Decoder {
	d := xml.NewDecoder(r)
	d.Strict = true
	d.Entity = map[string]string{}
	d.CharsetReader = encoding.NewReader
	return d
}

// Parse reads a whole document into a queryable tree.
func Parse(data []byte) (*Document, error) {
	root, err := xmlquery.ParseWithOptions(bytes.NewReader(data), parserOptions())
	if err != nil {
		return nil, fmt.Errorf("failed to parse XML: %w", err)
	}
	return &Document{root: root}, nil
}

// Validate checks that data is well-formed and has a root element. It stops
// at the first error. schema is reserved and ignored.
func Validate(data []byte, schema []byte) ValidationResult {
	d := newDecoder(bytes.NewReader(data))
	sawElement := false
	for {
		tok, err := d.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			line, col := d.InputPos()
			return ValidationResult{Errors: []ValidationError{{Line: line, Column: col, Message: err.Error()}}}
		}
		if _, ok := tok.(xml.StartElement); ok {
			sawElement = true
		}
	}
	if !sawElement {
		return ValidationResult{Errors: []ValidationError{{Line: 1, Message: "document has no root element"}}}
	}
	return ValidationResult{Valid: true}
}

// Root returns the document element, or nil.
func (d *Document) Root() *Node {
	if d.root == nil {
		return nil
	}
	for c := d.root.FirstChild; c != nil; c = c.NextSibling {
		if c.Type == xmlquery.ElementNode {
			return &Node{node: c}
		}
	}
	return nil
}

// XPath returns the elements matching expr in document order.
func (d *Document) XPath(expr string) ([]*Node, error) {
	if _, err := xpath.Compile(expr); err != nil {
		return nil, fmt.Errorf("invalid xpath: %w", err)
	}
	found, err := xmlquery.QueryAll(d.root, expr)
	if err != nil {
		return nil, fmt.Errorf("xpath query failed: %w", err)
	}
	nodes := make([]*Node, len(found))
	for i, n := range found {
		nodes[i] = &Node{node: n}
	}
	return nodes, nil
}

// Instructions returns the targets of the processing instructions that appear
// before the root element, excluding the XML declaration.
func (d *Document) Instructions() []string {
	if d.root == nil {
		return nil
	}
	var targets []string
	for c := d.root.FirstChild; c != nil && c.Type != xmlquery.ElementNode; c = c.NextSibling {
		if c.Type == xmlquery.ProcessingInstruction && c.ProcInst != nil {
			targets = append(targets, c.ProcInst.Target)
		}
	}
	return targets
}

// Name returns the local element name.
func (n *Node) Name() string {
	if n.node == nil {
		return ""
	}
	return n.node.Data
}

// Namespace returns the namespace URI of the element.
func (n *Node) Namespace() string {
	if n.node == nil {
		return ""
	}
	return n.node.NamespaceURI
}

// Attr returns the value of an attribute, or "".
func (n *Node) Attr(name string) string {
	if n.node == nil {
		return ""
	}
	return n.node.SelectAttr(name)
}

// Children returns the child elements.
func (n *Node) Children() []*Node {
	if n.node == nil {
		return nil
	}
	var out []*Node
	for c := n.node.FirstChild; c != nil; c = c.NextSibling {
		if c.Type == xmlquery.ElementNode {
			out = append(out, &Node{node: c})
		}
	}
	return out
}
