package base

import (
	"github.com/FocuswithJustin/JuniperPlaylist/core/dialect"
	"github.com/FocuswithJustin/JuniperPlaylist/core/ir"
)

// Flatten is the export path of list-only dialects: it checks root against
// caps, normalizes it and unrolls every finite repeat into the flat list of
// media it plays.
func Flatten(name string, root ir.Node, caps dialect.Capabilities, report *ir.LossReport) ([]*ir.Media, error) {
	tree, err := dialect.Prepare(name, root, caps)
	if err != nil {
		return nil, err
	}
	media, err := dialect.Unroll(tree, report)
	if err != nil {
		return nil, dialect.Tag(err, name)
	}
	return media, nil
}

// List is the import path of list-only dialects: a Sequence of the given
// media in order.
func List(media []*ir.Media) ir.Node {
	seq := ir.NewSequence()
	for _, m := range media {
		seq.Children = append(seq.Children, m)
	}
	return seq
}
