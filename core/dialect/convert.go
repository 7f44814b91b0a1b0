package dialect

import (
	"fmt"

	"github.com/FocuswithJustin/JuniperPlaylist/core/errors"
	"github.com/FocuswithJustin/JuniperPlaylist/core/ir"
	"github.com/FocuswithJustin/JuniperPlaylist/core/xml"
)

// Options controls Convert and Write.
type Options struct {
	// Write controls indentation and output charset.
	Write xml.WriteOptions

	// IDs mints generated identifiers. Nil means a fresh Counter per call.
	IDs IDGenerator

	// Capabilities, when set, replaces the target dialect's own table.
	// It can only narrow what the target's model is able to hold.
	Capabilities *Capabilities
}

// Result is the outcome of Convert.
type Result struct {
	From string
	To   string

	// Data is the encoded target document.
	Data []byte

	// Tree is the IR imported from the source, before normalization.
	Tree ir.Node

	// Report describes what the target could not hold natively.
	Report *ir.LossReport

	// SourceHash is the SHA-256 of the input bytes.
	SourceHash string

	// Fingerprint is the BLAKE3 fingerprint of Tree.
	Fingerprint string
}

// Convert runs the full pipeline from one dialect to another. An empty from
// detects the source dialect from the document.
func Convert(data []byte, from, to string, opts Options) (*Result, error) {
	src, err := Load(data, from)
	if err != nil {
		return nil, err
	}
	dst, err := Lookup(to)
	if err != nil {
		return nil, err
	}

	report := ir.NewLossReport(src.Dialect.Name(), dst.Name())
	for _, f := range src.Metadata {
		report.Raise(ir.LossL2)
		report.AddLostElement(f.Path, "metadata", fmt.Sprintf("%q is not carried across dialects", f.Value))
	}
	out, err := write(dst, src.Tree, opts, report)
	if err != nil {
		return nil, err
	}
	return &Result{
		From:        src.Dialect.Name(),
		To:          dst.Name(),
		Data:        out,
		Tree:        src.Tree,
		Report:      report,
		SourceHash:  ir.HashBytes(data),
		Fingerprint: ir.Fingerprint(src.Tree),
	}, nil
}

// Source is a decoded and imported document.
type Source struct {
	Dialect Dialect
	Model   Model
	Tree    ir.Node

	// Metadata lists the model fields Tree does not carry.
	Metadata []Field
}

// Load decodes and imports a document. An empty name detects the dialect.
func Load(data []byte, name string) (*Source, error) {
	var d Dialect
	var err error
	if name == "" {
		d, err = Detect(data)
	} else {
		d, err = Lookup(name)
	}
	if err != nil {
		return nil, err
	}

	model, err := d.Decode(data)
	if err != nil {
		return nil, Tag(err, d.Name())
	}
	tree, err := d.Import(model)
	if err != nil {
		return nil, Tag(err, d.Name())
	}
	if errs := ir.Validate(tree); len(errs) > 0 {
		return nil, fmt.Errorf("%s import produced an invalid tree: %w", d.Name(), errs[0])
	}
	src := &Source{Dialect: d, Model: model, Tree: tree}
	if ml, ok := d.(MetadataLister); ok {
		src.Metadata = ml.Metadata(model)
	}
	return src, nil
}

// Read is Load for callers that only need the tree.
func Read(data []byte, name string) (Dialect, ir.Node, error) {
	src, err := Load(data, name)
	if err != nil {
		return nil, nil, err
	}
	return src.Dialect, src.Tree, nil
}

// Write exports tree into the named dialect and encodes it. report may be nil.
func Write(tree ir.Node, name string, opts Options, report *ir.LossReport) ([]byte, error) {
	d, err := Lookup(name)
	if err != nil {
		return nil, err
	}
	return write(d, tree, opts, report)
}

func write(d Dialect, tree ir.Node, opts Options, report *ir.LossReport) ([]byte, error) {
	caps := d.Capabilities()
	if opts.Capabilities != nil {
		caps = narrow(caps, *opts.Capabilities)
	}
	model, err := d.Export(tree, caps, ExportOptions{IDs: opts.IDs, Report: report})
	if err != nil {
		return nil, Tag(err, d.Name())
	}
	out, err := d.Encode(model, opts.Write)
	if err != nil {
		return nil, errors.Wrapf(err, "encoding %s", d.Name())
	}
	return out, nil
}

// narrow keeps only what both tables allow.
func narrow(native, requested Capabilities) Capabilities {
	return Capabilities{
		Parallel:       native.Parallel && requested.Parallel,
		InfiniteRepeat: native.InfiniteRepeat && requested.InfiniteRepeat,
		NestedRepeat:   native.NestedRepeat && requested.NestedRepeat,
		MediaDuration:  native.MediaDuration && requested.MediaDuration,
	}
}
