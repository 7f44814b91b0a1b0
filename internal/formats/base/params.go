// Package base provides helpers shared by the dialect packages: ordered
// parameter maps, first-match selection among alternative references, and
// the attribute codecs several dialects have in common.
package base

// Param is one named parameter.
type Param struct {
	Name  string
	Value string
}

// Params is an insertion-ordered map of parameters keyed by name. Setting a
// name that is already present replaces its value in place: the last write
// wins and the first position is kept.
type Params struct {
	order  []string
	values map[string]string
}

// NewParams builds Params from a list, applying last-write-wins.
func NewParams(list ...Param) *Params {
	p := &Params{}
	for _, kv := range list {
		p.Set(kv.Name, kv.Value)
	}
	return p
}

// Set stores value under name.
func (p *Params) Set(name, value string) {
	if p.values == nil {
		p.values = make(map[string]string)
	}
	if _, ok := p.values[name]; !ok {
		p.order = append(p.order, name)
	}
	p.values[name] = value
}

// Get returns the value stored under name.
func (p *Params) Get(name string) (string, bool) {
	if p == nil {
		return "", false
	}
	v, ok := p.values[name]
	return v, ok
}

// Delete removes name.
func (p *Params) Delete(name string) {
	if _, ok := p.values[name]; !ok {
		return
	}
	delete(p.values, name)
	for i, n := range p.order {
		if n == name {
			p.order = append(p.order[:i], p.order[i+1:]...)
			break
		}
	}
}

// Len returns the number of distinct names.
func (p *Params) Len() int {
	if p == nil {
		return 0
	}
	return len(p.order)
}

// List returns the parameters in insertion order.
func (p *Params) List() []Param {
	if p == nil {
		return nil
	}
	out := make([]Param, 0, len(p.order))
	for _, name := range p.order {
		out = append(out, Param{Name: name, Value: p.values[name]})
	}
	return out
}

// Dedupe collapses duplicate names in list with last-write-wins semantics.
func Dedupe(list []Param) []Param {
	if len(list) == 0 {
		return list
	}
	return NewParams(list...).List()
}
