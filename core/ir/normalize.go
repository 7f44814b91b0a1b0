package ir

// Normalize returns a simplified copy of root. The input is not modified.
//
// Rules, applied bottom-up:
//  1. A child with repeat count 0 is removed.
//  2. A Sequence or Parallel left without children is removed.
//  3. A child container that plays once and has the same kind as its parent
//     is spliced into the parent's child list.
//  4. A container with a single child is collapsed: if the container plays
//     once the child replaces it; otherwise, if the child plays once, the
//     child takes over the container's repeat count.
//
// A root that is removed entirely comes back as an empty Sequence. The
// normalizer only deletes structure; it never adds media or durations.
func Normalize(root Node) Node {
	if root == nil {
		return NewSequence()
	}
	out := normalize(root)
	if out == nil {
		return NewSequence()
	}
	return out
}

func normalize(n Node) Node {
	if n.RepeatCount() == RepeatNone {
		return nil
	}
	switch v := n.(type) {
	case *Media:
		return Clone(v)
	case *Sequence:
		return collapse(&Sequence{
			Children: normalizeChildren(v.Children, KindSequence),
			Repeat:   v.Repeat,
		})
	case *Parallel:
		return collapse(&Parallel{
			Children: normalizeChildren(v.Children, KindParallel),
			Repeat:   v.Repeat,
		})
	default:
		return nil
	}
}

func normalizeChildren(children []Node, parent Kind) []Node {
	out := make([]Node, 0, len(children))
	for _, child := range children {
		if child == nil {
			continue
		}
		nc := normalize(child)
		if nc == nil {
			continue
		}
		if nc.Kind() == parent && nc.RepeatCount() == RepeatOnce {
			out = append(out, Children(nc)...)
			continue
		}
		out = append(out, nc)
	}
	return out
}

func collapse(container Node) Node {
	kids := Children(container)
	switch len(kids) {
	case 0:
		return nil
	case 1:
		child := kids[0]
		if container.RepeatCount() == RepeatOnce {
			return child
		}
		if child.RepeatCount() == RepeatOnce {
			return WithRepeat(child, container.RepeatCount())
		}
	}
	return container
}
