package dialect

import (
	"path/filepath"
	"sort"
	"strings"

	"github.com/FocuswithJustin/JuniperPlaylist/core/errors"
	"github.com/FocuswithJustin/JuniperPlaylist/core/xml"
)

// registry holds every dialect. It is filled by init functions and read-only
// afterwards.
var registry = make(map[string]Dialect)

// Register adds d under its lower-cased name, replacing any earlier entry.
func Register(d Dialect) {
	if d == nil || d.Name() == "" {
		return
	}
	registry[strings.ToLower(d.Name())] = d
}

// Lookup returns the dialect registered under name.
func Lookup(name string) (Dialect, error) {
	d, ok := registry[strings.ToLower(strings.TrimSpace(name))]
	if !ok {
		return nil, errors.NewNotFound("dialect", name)
	}
	return d, nil
}

// List returns all dialects sorted by name.
func List() []Dialect {
	out := make([]Dialect, 0, len(registry))
	for _, d := range registry {
		out = append(out, d)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name() < out[j].Name() })
	return out
}

// Names returns the sorted dialect names.
func Names() []string {
	var names []string
	for _, d := range List() {
		names = append(names, d.Name())
	}
	return names
}

// ForPath picks a dialect from a file name's extension. A trailing .xz or
// .gz is ignored.
func ForPath(path string) (Dialect, error) {
	base := strings.ToLower(filepath.Base(path))
	for _, comp := range []string{".xz", ".gz"} {
		base = strings.TrimSuffix(base, comp)
	}
	ext := filepath.Ext(base)
	if ext == "" {
		return nil, errors.NewNotFound("dialect for extension", path)
	}
	for _, d := range List() {
		for _, e := range d.Extensions() {
			if e == ext {
				return d, nil
			}
		}
	}
	return nil, errors.NewNotFound("dialect for extension", ext)
}

// Detect picks a dialect from the document's root element and processing
// instructions. When several dialects claim it, the first by name wins.
func Detect(data []byte) (Dialect, error) {
	s, err := xml.Sniff(data)
	if err != nil {
		return nil, &errors.ParseError{Format: "XML", Message: err.Error(), Err: err}
	}
	for _, d := range List() {
		if d.Sniff(s) {
			return d, nil
		}
	}
	return nil, errors.NewNotFound("dialect for root element", s.Root)
}
