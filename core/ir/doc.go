// Package ir provides the Intermediate Representation (IR) every playlist
// conversion passes through.
//
// The IR is a tree of three node kinds:
//
//   - Sequence: children play one after another
//   - Parallel: children play at the same time
//   - Media: a leaf referencing one content item, optionally with a duration
//
// Every node carries a repeat count. 1 plays once, 0 contributes nothing,
// N > 0 plays N times and RepeatIndefinite (-1) repeats forever.
//
// # Ownership
//
// A node owns its children exclusively. There are no parent pointers; Parents
// rebuilds the child-to-parent index with one top-down pass when a caller
// needs it. A tree is built once (by an importer or by hand), normalized once
// before export, and treated as read-only afterwards. Normalize returns a new
// tree and never mutates its input.
//
// # Traversal
//
// Walk visits every node with one callback that receives an EnterEvent before
// the children and a LeaveEvent after them. Events exposes the same order as
// an iterator.
//
// # Loss Classification
//
// Exporters describe what a conversion could not carry over in a LossReport:
//
//   - L0: Lossless - the dialect expressed every construct natively
//   - L1: Semantically Lossless - e.g. a repeat was unrolled into copies
//   - L2: Minor Loss - dialect-only metadata (titles, params) dropped
//   - L3: Significant Loss - reserved for lossy timing rewrites
//   - L4: Locators only
//
// # Example
//
//	tree := ir.NewSequence(
//	    ir.NewMedia("intro.mp3").WithDuration(5000),
//	    ir.NewSequence(ir.NewMedia("song.mp3")).Times(3),
//	)
//	tree = ir.Normalize(tree)
package ir
