package base

import (
	"fmt"
	"strings"

	"github.com/FocuswithJustin/JuniperPlaylist/core/dialect"
)

// Fields accumulates the metadata a dialect model holds outside the IR.
type Fields []dialect.Field

// Add records value at path. Blank values are not metadata and are skipped.
func (f *Fields) Add(path, value string) {
	if strings.TrimSpace(value) == "" {
		return
	}
	*f = append(*f, dialect.Field{Path: path, Value: value})
}

// Params records each param under parent as parent/tag[name].
func (f *Fields) Params(parent, tag string, list []Param) {
	for _, p := range list {
		f.Add(fmt.Sprintf("%s/%s[%s]", parent, tag, p.Name), p.Value)
	}
}

// Indexed joins parent and tag[i], the path form used for repeated elements.
func Indexed(parent, tag string, i int) string {
	return fmt.Sprintf("%s/%s[%d]", parent, tag, i)
}
