package base

import "strings"

// Candidate is one alternative reference for a single logical entry.
type Candidate struct {
	// Locator is the reference. Empty or blank locators are never chosen.
	Locator string

	// Duration is the candidate's own duration in milliseconds, if any.
	Duration *uint64
}

// Effective returns the candidate's duration, falling back to inherited.
func (c Candidate) Effective(inherited *uint64) *uint64 {
	if c.Duration != nil {
		return c.Duration
	}
	return inherited
}

// FirstPlayable returns the first candidate whose locator is non-empty and
// whose effective duration is absent or positive. The chosen duration is the
// effective one. ok is false when no candidate qualifies.
func FirstPlayable(candidates []Candidate, inherited *uint64) (chosen Candidate, ok bool) {
	for _, c := range candidates {
		if strings.TrimSpace(c.Locator) == "" {
			continue
		}
		d := c.Effective(inherited)
		if d != nil && *d == 0 {
			continue
		}
		return Candidate{Locator: c.Locator, Duration: d}, true
	}
	return Candidate{}, false
}
