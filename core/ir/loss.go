package ir

import "slices"

// LossClass grades how faithfully a conversion preserved a playlist.
// L0 is exact; each later class loses strictly more.
type LossClass string

const (
	LossL0 LossClass = "L0" // every construct written natively
	LossL1 LossClass = "L1" // same playback, different structure (unrolled repeats)
	LossL2 LossClass = "L2" // dialect metadata dropped
	LossL3 LossClass = "L3" // timing dropped
	LossL4 LossClass = "L4" // locators only
)

var lossOrder = []LossClass{LossL0, LossL1, LossL2, LossL3, LossL4}

// Level is the class's position from 0 (L0) to 4 (L4), or -1 if unknown.
func (l LossClass) Level() int {
	return slices.Index(lossOrder, l)
}

func (l LossClass) IsValid() bool { return l.Level() >= 0 }

func (l LossClass) IsLossless() bool { return l == LossL0 }

// LostElement records one source construct the target could not carry.
type LostElement struct {
	Path        string `json:"path"`         // e.g. "seq/media[2]"
	ElementType string `json:"element_type"` // e.g. "media", "title"
	Reason      string `json:"reason"`
}

// LossReport accompanies every conversion. Exporters only ever raise its
// class; nothing lowers it.
type LossReport struct {
	SourceFormat string        `json:"source_format"`
	TargetFormat string        `json:"target_format"`
	LossClass    LossClass     `json:"loss_class"`
	LostElements []LostElement `json:"lost_elements,omitempty"`
	Warnings     []string      `json:"warnings,omitempty"`
}

// NewLossReport starts an L0 report.
func NewLossReport(source, target string) *LossReport {
	return &LossReport{SourceFormat: source, TargetFormat: target, LossClass: LossL0}
}

func (r *LossReport) HasLoss() bool {
	return len(r.LostElements) > 0 || r.LossClass.Level() > 0
}

// Raise moves the report to class if that is worse than where it is.
func (r *LossReport) Raise(class LossClass) {
	if class.Level() > r.LossClass.Level() {
		r.LossClass = class
	}
}

func (r *LossReport) AddLostElement(path, elementType, reason string) {
	r.LostElements = append(r.LostElements, LostElement{Path: path, ElementType: elementType, Reason: reason})
}

func (r *LossReport) AddWarning(warning string) {
	r.Warnings = append(r.Warnings, warning)
}
