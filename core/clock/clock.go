// Package clock parses and formats the clock values playlist dialects use for
// durations and time offsets.
//
// Two grammars are supported:
//
//   - Simple: "hh:mm:ss[.fff]", exactly three fields. Used by ASX.
//   - Extended: SMIL clock values. Full clock "H:MM:SS[.f]", partial clock
//     "MM:SS[.f]", or a timecount with an optional metric suffix
//     ("2min", "1.5s", "500ms", "3h", "10"). The literal "indefinite" maps to
//     the Indefinite sentinel.
//
// Both grammars convert to and from a count of milliseconds. Sub-second
// fractions keep at most three digits: shorter fractions are right padded
// ("5" is 500 ms) and longer ones are truncated. No other clamping happens;
// every malformed input is a *errors.MalformedClockValueError.
package clock

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/alecthomas/participle/v2"
	"github.com/alecthomas/participle/v2/lexer"

	"github.com/FocuswithJustin/JuniperPlaylist/core/errors"
)

// Grammar selects the textual form of a clock value.
type Grammar int

const (
	// Simple is the fixed "hh:mm:ss[.fff]" form.
	Simple Grammar = iota
	// Extended is the SMIL clock value form.
	Extended
)

// String returns the grammar name used in error messages.
func (g Grammar) String() string {
	switch g {
	case Simple:
		return "simple"
	case Extended:
		return "extended"
	default:
		return fmt.Sprintf("grammar(%d)", int(g))
	}
}

// Indefinite is the reserved millisecond count for an unbounded duration.
// Only the Extended grammar can spell it.
const Indefinite int64 = -1

const (
	msPerSecond = int64(1000)
	msPerMinute = 60 * msPerSecond
	msPerHour   = 60 * msPerMinute
)

const (
	keywordIndefinite = "indefinite"
	keywordMedia      = "media"
)

// metricScale maps a timecount suffix to its multiplier.
var metricScale = map[string]int64{
	"h":   msPerHour,
	"min": msPerMinute,
	"s":   msPerSecond,
	"ms":  1,
	"":    msPerSecond,
}

// clockExpr is the participle grammar shared by both clock forms.
// Examples: "01:02:03.5", "02:03", "2min", "1.5s", "500ms", "10"
//
//nolint:govet // participle grammar tags are not standard struct tags
type clockExpr struct {
	Fields []string `@Number ( ":" @Number )*`
	Unit   string   `@Unit?`
}

// clockLexer tokenizes clock values. "min" and "ms" precede "h" and "s" so the
// longer suffixes win.
var clockLexer = lexer.MustSimple([]lexer.SimpleRule{
	{Name: "Number", Pattern: `[0-9]+(?:\.[0-9]+)?`},
	{Name: "Unit", Pattern: `min|ms|h|s`},
	{Name: "Punct", Pattern: `:`},
})

var clockParser = participle.MustBuild[clockExpr](
	participle.Lexer(clockLexer),
)

// Value is a millisecond count tagged with the grammar it renders in.
type Value struct {
	Millis  int64
	Grammar Grammar
}

// NewValue returns a Value for ms in grammar g.
func NewValue(ms int64, g Grammar) Value {
	return Value{Millis: ms, Grammar: g}
}

// ParseValue parses text under g and tags the result with g.
func ParseValue(text string, g Grammar) (Value, error) {
	ms, err := Parse(text, g)
	if err != nil {
		return Value{}, err
	}
	return Value{Millis: ms, Grammar: g}, nil
}

// IsIndefinite reports whether v is the Indefinite sentinel.
func (v Value) IsIndefinite() bool {
	return v.Millis == Indefinite
}

// In returns the same millisecond count tagged with grammar g. A dialect uses
// it to re-emit a value in its own grammar regardless of where it was read.
func (v Value) In(g Grammar) Value {
	return Value{Millis: v.Millis, Grammar: g}
}

// Duration converts v to a time.Duration. Indefinite maps to math.MaxInt64.
func (v Value) Duration() time.Duration {
	if v.IsIndefinite() {
		return time.Duration(math.MaxInt64)
	}
	return time.Duration(v.Millis) * time.Millisecond
}

// String renders v in its grammar.
func (v Value) String() string {
	return Format(v.Millis, v.Grammar)
}

// Parse converts text to milliseconds under grammar g.
func Parse(text string, g Grammar) (int64, error) {
	s := strings.TrimSpace(text)
	if s == "" {
		return 0, malformed(text, g, "empty value")
	}
	if strings.EqualFold(s, keywordIndefinite) {
		if g != Extended {
			return 0, malformed(text, g, "indefinite is only valid in the extended grammar")
		}
		return Indefinite, nil
	}

	expr, err := clockParser.ParseString("", s)
	if err != nil {
		return 0, malformed(text, g, err.Error())
	}

	if expr.Unit != "" || len(expr.Fields) == 1 {
		if g != Extended {
			return 0, malformed(text, g, "expected hh:mm:ss")
		}
		if len(expr.Fields) != 1 {
			return 0, malformed(text, g, "metric suffix on a clock form")
		}
		return parseTimecount(text, g, expr.Fields[0], expr.Unit)
	}

	switch len(expr.Fields) {
	case 2:
		if g != Extended {
			return 0, malformed(text, g, "expected hh:mm:ss")
		}
		return parseClock(text, g, "0", expr.Fields[0], expr.Fields[1])
	case 3:
		return parseClock(text, g, expr.Fields[0], expr.Fields[1], expr.Fields[2])
	default:
		return 0, malformed(text, g, fmt.Sprintf("expected 3 fields, got %d", len(expr.Fields)))
	}
}

// ParseDuration parses an Extended duration attribute. The keyword "media"
// (any case) and an empty string mean the content's own length; they return
// explicit == false.
func ParseDuration(text string) (ms int64, explicit bool, err error) {
	s := strings.TrimSpace(text)
	if s == "" || strings.EqualFold(s, keywordMedia) {
		return 0, false, nil
	}
	ms, err = Parse(s, Extended)
	if err != nil {
		return 0, false, err
	}
	return ms, true, nil
}

// MustParse is Parse that panics on error. Intended for constants in tests.
func MustParse(text string, g Grammar) int64 {
	ms, err := Parse(text, g)
	if err != nil {
		panic(err)
	}
	return ms
}

func parseClock(text string, g Grammar, hours, minutes, seconds string) (int64, error) {
	if strings.Contains(hours, ".") || strings.Contains(minutes, ".") {
		return 0, malformed(text, g, "fraction is only allowed on seconds")
	}
	h, err := strconv.ParseInt(hours, 10, 64)
	if err != nil || h > math.MaxInt64/msPerHour-1 {
		return 0, malformed(text, g, "hours out of range")
	}
	m, err := strconv.ParseInt(minutes, 10, 64)
	if err != nil || m > 59 {
		return 0, malformed(text, g, "minutes out of range")
	}

	whole, frac, _ := strings.Cut(seconds, ".")
	sec, err := strconv.ParseInt(whole, 10, 64)
	if err != nil || sec > 59 {
		return 0, malformed(text, g, "seconds out of range")
	}
	return h*msPerHour + m*msPerMinute + sec*msPerSecond + fractionMillis(frac), nil
}

func parseTimecount(text string, g Grammar, number, unit string) (int64, error) {
	scale, ok := metricScale[unit]
	if !ok {
		return 0, malformed(text, g, fmt.Sprintf("unknown metric %q", unit))
	}
	whole, frac, _ := strings.Cut(number, ".")
	n, err := strconv.ParseInt(whole, 10, 64)
	if err != nil || n > math.MaxInt64/scale-1 {
		return 0, malformed(text, g, "value out of range")
	}
	return n*scale + fractionOf(frac, scale), nil
}

// fractionMillis converts the digits after a seconds decimal point to
// milliseconds, padding to three digits and truncating beyond.
func fractionMillis(digits string) int64 {
	if digits == "" {
		return 0
	}
	if len(digits) > 3 {
		digits = digits[:3]
	}
	digits += strings.Repeat("0", 3-len(digits))
	v, _ := strconv.ParseInt(digits, 10, 64)
	return v
}

// fractionOf scales a decimal fraction by scale milliseconds, keeping six
// digits of precision and truncating the result.
func fractionOf(digits string, scale int64) int64 {
	if digits == "" {
		return 0
	}
	if len(digits) > 6 {
		digits = digits[:6]
	}
	digits += strings.Repeat("0", 6-len(digits))
	v, _ := strconv.ParseInt(digits, 10, 64)
	return v * scale / 1_000_000
}

// Format renders ms in grammar g. Negative counts render as "indefinite",
// which only the Extended grammar parses back.
func Format(ms int64, g Grammar) string {
	if ms < 0 {
		return keywordIndefinite
	}
	switch g {
	case Extended:
		return formatExtended(ms)
	default:
		return formatSimple(ms)
	}
}

func formatSimple(ms int64) string {
	h := ms / msPerHour
	m := (ms % msPerHour) / msPerMinute
	s := (ms % msPerMinute) / msPerSecond
	f := ms % msPerSecond
	return fmt.Sprintf("%02d:%02d:%02d.%03d", h, m, s, f)
}

func formatExtended(ms int64) string {
	f := ms % msPerSecond
	if ms < msPerHour {
		secs := strconv.FormatInt(ms/msPerSecond, 10)
		if f == 0 {
			return secs + "s"
		}
		return secs + "." + strings.TrimRight(fmt.Sprintf("%03d", f), "0") + "s"
	}
	h := ms / msPerHour
	m := (ms % msPerHour) / msPerMinute
	s := (ms % msPerMinute) / msPerSecond
	if f == 0 {
		return fmt.Sprintf("%02d:%02d:%02d", h, m, s)
	}
	return fmt.Sprintf("%02d:%02d:%02d.%03d", h, m, s, f)
}

func malformed(text string, g Grammar, reason string) error {
	return errors.NewMalformedClock(text, g.String(), reason)
}
