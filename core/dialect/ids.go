package dialect

import (
	"fmt"

	"github.com/google/uuid"
)

// IDGenerator mints identifiers for elements an exporter creates.
type IDGenerator interface {
	// Next returns a new identifier starting with prefix.
	Next(prefix string) string
}

// Counter numbers identifiers from 1 in call order, so the same tree always
// exports with the same ids.
type Counter struct {
	n int
}

// NewCounter returns a Counter starting at 1.
func NewCounter() *Counter {
	return &Counter{}
}

// Next returns prefix_N.
func (c *Counter) Next(prefix string) string {
	c.n++
	return fmt.Sprintf("%s_%d", idPrefix(prefix), c.n)
}

// UUIDs mints random identifiers that differ on every run.
type UUIDs struct{}

// Next returns prefix_<uuid>.
func (UUIDs) Next(prefix string) string {
	return idPrefix(prefix) + "_" + uuid.NewString()
}

// NewIDGenerator returns a generator by scheme name: "counter" (default) or "uuid".
func NewIDGenerator(scheme string) (IDGenerator, error) {
	switch scheme {
	case "", "counter":
		return NewCounter(), nil
	case "uuid":
		return UUIDs{}, nil
	default:
		return nil, fmt.Errorf("unknown id scheme %q", scheme)
	}
}

// idPrefix keeps generated ids valid XML names.
func idPrefix(prefix string) string {
	if prefix == "" {
		return "id"
	}
	return prefix
}
