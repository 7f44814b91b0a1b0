// Package dialect defines the contract every playlist dialect implements and
// the engine that moves playlists between dialects through the IR.
//
// A conversion decodes bytes into a dialect Model, imports the Model into an
// ir.Node tree, checks the tree against the target's Capabilities, normalizes
// it, lowers it into the target Model and encodes that Model back to bytes.
// Decode and Encode are the XML binding; Import and Export are pure.
package dialect

import (
	"github.com/FocuswithJustin/JuniperPlaylist/core/errors"
	"github.com/FocuswithJustin/JuniperPlaylist/core/ir"
	"github.com/FocuswithJustin/JuniperPlaylist/core/xml"
)

// Model is a dialect's typed document. Each dialect defines its own.
type Model interface {
	// Dialect returns the name of the dialect that owns the model.
	Dialect() string
}

// Dialect converts one playlist format to and from the IR.
type Dialect interface {
	// Name is the registry key, e.g. "asx".
	Name() string

	// Description is a one-line human readable summary.
	Description() string

	// Extensions lists file extensions, lower case with the leading dot.
	Extensions() []string

	// Capabilities is the dialect's native capability table.
	Capabilities() Capabilities

	// Sniff reports whether a document with this root and leading
	// processing instructions belongs to the dialect.
	Sniff(s *xml.Sniffed) bool

	// Decode binds XML text to the dialect model.
	Decode(data []byte) (Model, error)

	// Encode serializes a model produced by Decode or Export.
	Encode(m Model, opts xml.WriteOptions) ([]byte, error)

	// Import converts a model into an IR tree.
	Import(m Model) (ir.Node, error)

	// Export lowers an IR tree into a model, enforcing caps.
	Export(root ir.Node, caps Capabilities, opts ExportOptions) (Model, error)
}

// MetadataLister is implemented by dialects whose models hold fields the IR
// has no place for, such as titles, authors, params and layout. Convert
// records every field it returns as an L2 loss.
type MetadataLister interface {
	Metadata(m Model) []Field
}

// Field is one piece of dialect metadata. Path locates it in the source
// document, e.g. "ENTRY[1]/TITLE".
type Field struct {
	Path  string `json:"path"`
	Value string `json:"value"`
}

// ExportOptions carries per-conversion state into Export.
type ExportOptions struct {
	// IDs mints identifiers for generated elements. Nil means a fresh Counter.
	IDs IDGenerator

	// Report collects fidelity notes. It may be nil.
	Report *ir.LossReport
}

// Generator returns opts.IDs, or a new Counter when none was given.
func (o *ExportOptions) Generator() IDGenerator {
	if o.IDs == nil {
		o.IDs = NewCounter()
	}
	return o.IDs
}

// Prepare is the common first step of Export: it rejects trees that fail
// ir.Validate or that caps cannot express, then returns the normalized tree.
// Capability errors name the dialect.
func Prepare(name string, root ir.Node, caps Capabilities) (ir.Node, error) {
	if root == nil {
		return ir.NewSequence(), nil
	}
	if errs := ir.Validate(root); len(errs) > 0 {
		return nil, &errors.ParseError{Format: "playlist tree", Message: errs[0].Error(), Err: errors.ErrInvalidInput}
	}
	if err := Check(root, caps); err != nil {
		return nil, Tag(err, name)
	}
	return ir.Normalize(root), nil
}

// Tag records the dialect name on an UnsupportedConstructError or
// MissingRequiredFieldError inside err. Other errors pass through.
func Tag(err error, name string) error {
	var uc *errors.UnsupportedConstructError
	if errors.As(err, &uc) && uc.Dialect == "" {
		uc.Dialect = name
	}
	var mf *errors.MissingRequiredFieldError
	if errors.As(err, &mf) && mf.Dialect == "" {
		mf.Dialect = name
	}
	return err
}

// WrongModel is returned when a dialect is handed another dialect's model.
func WrongModel(name string, m Model) error {
	got := "nil"
	if m != nil {
		got = m.Dialect()
	}
	return errors.NewUnsupported("model", name+" cannot use a "+got+" model")
}
