package ir

import (
	"encoding/json"
	"fmt"
)

// jsonMarshal is a variable to allow testing of marshal errors.
var jsonMarshal = json.MarshalIndent

// wireNode is the JSON shape of a Node. Type is "seq", "par" or "media".
type wireNode struct {
	Type       string      `json:"type"`
	Repeat     int64       `json:"repeat"`
	Locator    string      `json:"locator,omitempty"`
	DurationMS *uint64     `json:"duration_ms,omitempty"`
	Children   []*wireNode `json:"children,omitempty"`
}

// Marshal encodes a tree as indented JSON.
func Marshal(root Node) ([]byte, error) {
	return jsonMarshal(toWire(root), "", "  ")
}

// Unmarshal decodes a tree written by Marshal.
func Unmarshal(data []byte) (Node, error) {
	var w wireNode
	if err := json.Unmarshal(data, &w); err != nil {
		return nil, fmt.Errorf("decoding IR: %w", err)
	}
	return fromWire(&w, "$")
}

func toWire(n Node) *wireNode {
	if n == nil {
		return nil
	}
	w := &wireNode{Type: n.Kind().String(), Repeat: n.RepeatCount()}
	if m, ok := n.(*Media); ok {
		w.Locator = m.Locator
		w.DurationMS = m.Duration
		return w
	}
	for _, c := range Children(n) {
		if c != nil {
			w.Children = append(w.Children, toWire(c))
		}
	}
	return w
}

func fromWire(w *wireNode, path string) (Node, error) {
	if w == nil {
		return nil, newValidationError(path, "null node")
	}
	if !ValidRepeat(w.Repeat) {
		return nil, newValidationError(path, fmt.Sprintf("invalid repeat count %d", w.Repeat))
	}
	switch w.Type {
	case "media":
		if len(w.Children) > 0 {
			return nil, newValidationError(path, "media cannot have children")
		}
		return &Media{Locator: w.Locator, Duration: w.DurationMS, Repeat: w.Repeat}, nil
	case "seq", "par":
		kids := make([]Node, 0, len(w.Children))
		for i, c := range w.Children {
			child, err := fromWire(c, fmt.Sprintf("%s.children[%d]", path, i))
			if err != nil {
				return nil, err
			}
			kids = append(kids, child)
		}
		if w.Type == "seq" {
			return &Sequence{Children: kids, Repeat: w.Repeat}, nil
		}
		return &Parallel{Children: kids, Repeat: w.Repeat}, nil
	default:
		return nil, newValidationError(path, fmt.Sprintf("unknown node type %q", w.Type))
	}
}
