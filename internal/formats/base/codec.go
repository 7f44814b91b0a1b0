package base

import (
	"strconv"
	"strings"

	"github.com/FocuswithJustin/JuniperPlaylist/core/clock"
	"github.com/FocuswithJustin/JuniperPlaylist/core/errors"
)

// ParseDuration decodes an optional duration attribute written in grammar g.
// Empty text returns nil. In the Extended grammar "media" and "indefinite"
// also return nil: neither is an explicit play length. A zero duration is
// returned as zero so that candidate selection can reject it.
func ParseDuration(text string, g clock.Grammar) (*uint64, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, nil
	}
	var ms int64
	var err error
	if g == clock.Extended {
		var explicit bool
		ms, explicit, err = clock.ParseDuration(text)
		if err != nil {
			return nil, err
		}
		if !explicit || ms == clock.Indefinite {
			return nil, nil
		}
	} else {
		if ms, err = clock.Parse(text, g); err != nil {
			return nil, err
		}
	}
	d := uint64(ms)
	return &d, nil
}

// Positive returns d when it is set and greater than zero, otherwise nil.
// Media durations in the IR are only ever positive.
func Positive(d *uint64) *uint64 {
	if d == nil || *d == 0 {
		return nil
	}
	v := *d
	return &v
}

// FormatDuration renders an optional duration in grammar g.
func FormatDuration(d *uint64, g clock.Grammar) string {
	if d == nil {
		return ""
	}
	return clock.Format(int64(*d), g)
}

// ParseCount decodes a non-negative integer attribute.
func ParseCount(dialect, element, attr, text string) (int64, error) {
	n, err := strconv.ParseInt(strings.TrimSpace(text), 10, 64)
	if err != nil || n < 0 {
		return 0, errors.NewParse(dialect, "", element+" "+attr+" must be a non-negative integer, got "+strconv.Quote(text))
	}
	return n, nil
}
