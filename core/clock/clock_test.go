package clock

import (
	"errors"
	"strings"
	"testing"
	"time"

	perrors "github.com/FocuswithJustin/JuniperPlaylist/core/errors"
)

func TestParseSimple(t *testing.T) {
	tests := []struct {
		input string
		want  int64
	}{
		{"00:00:00", 0},
		{"00:00:00.000", 0},
		{"00:00:01", 1000},
		{"0:0:5", 5000},
		{"00:01:30.5", 90500},
		{"00:00:00.50", 500},
		{"00:00:00.500", 500},
		{"00:00:00.05", 50},
		{"00:00:00.1234", 123},
		{"01:00:00", 3600000},
		{"99:59:59.999", 359999999},
		{"123:00:00", 123 * 3600000},
		{"  00:00:02  ", 2000},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := Parse(tt.input, Simple)
			if err != nil {
				t.Fatalf("Parse(%q, Simple) error: %v", tt.input, err)
			}
			if got != tt.want {
				t.Errorf("Parse(%q, Simple) = %d, want %d", tt.input, got, tt.want)
			}
		})
	}
}

func TestParseSimpleMalformed(t *testing.T) {
	tests := []struct {
		input  string
		reason string
	}{
		{"24:61:00", "minutes out of range"},
		{"00:00:60", "seconds out of range"},
		{"00:00", "expected hh:mm:ss"},
		{"00:00:00:00", "expected 3 fields"},
		{"5s", "expected hh:mm:ss"},
		{"10", "expected hh:mm:ss"},
		{"-1:00:00", ""},
		{"aa:bb:cc", ""},
		{"", "empty value"},
		{"indefinite", "only valid in the extended grammar"},
		{"00:00.5:00", "fraction is only allowed on seconds"},
		{"00:00:01.", ""},
		{"99999999999999999999:00:00", "hours out of range"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			_, err := Parse(tt.input, Simple)
			if err == nil {
				t.Fatalf("Parse(%q, Simple) succeeded, want error", tt.input)
			}
			var mce *perrors.MalformedClockValueError
			if !errors.As(err, &mce) {
				t.Fatalf("error %v is not a MalformedClockValueError", err)
			}
			if mce.Grammar != "simple" {
				t.Errorf("Grammar = %q, want simple", mce.Grammar)
			}
			if tt.reason != "" && !strings.Contains(mce.Reason, tt.reason) {
				t.Errorf("Reason = %q, want it to contain %q", mce.Reason, tt.reason)
			}
		})
	}
}

func TestParseExtended(t *testing.T) {
	tests := []struct {
		input string
		want  int64
	}{
		{"2min", 120000},
		{"1.5s", 1500},
		{"500ms", 500},
		{"3h", 3 * 3600000},
		{"0.5h", 1800000},
		{"10", 10000},
		{"10s", 10000},
		{"2.25", 2250},
		{"1.0005s", 1000},
		{"02:33", 153000},
		{"02:33.5", 153500},
		{"1:02:03", 3723000},
		{"01:02:03.04", 3723040},
		{"indefinite", Indefinite},
		{"INDEFINITE", Indefinite},
		{"Indefinite", Indefinite},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := Parse(tt.input, Extended)
			if err != nil {
				t.Fatalf("Parse(%q, Extended) error: %v", tt.input, err)
			}
			if got != tt.want {
				t.Errorf("Parse(%q, Extended) = %d, want %d", tt.input, got, tt.want)
			}
		})
	}
}

func TestParseExtendedMalformed(t *testing.T) {
	inputs := []string{
		"",
		"-5s",
		"5m",
		"5 s",
		"1:2:3:4",
		"61:00",
		"00:61",
		"1:00min",
		"s",
		"media",
		"1.5.5s",
	}

	for _, input := range inputs {
		t.Run(input, func(t *testing.T) {
			_, err := Parse(input, Extended)
			if !errors.Is(err, perrors.ErrMalformedClock) {
				t.Errorf("Parse(%q, Extended) error = %v, want ErrMalformedClock", input, err)
			}
		})
	}
}

func TestSimpleRoundTrip(t *testing.T) {
	samples := []int64{0, 1, 9, 10, 99, 100, 999, 1000, 59999, 60000, 3599999, 3600000, 86399999, 359999999}
	for ms := int64(0); ms <= 359999999; ms += 7919 {
		samples = append(samples, ms)
	}

	for _, ms := range samples {
		text := Format(ms, Simple)
		got, err := Parse(text, Simple)
		if err != nil {
			t.Fatalf("Parse(Format(%d)) = error %v (text %q)", ms, err, text)
		}
		if got != ms {
			t.Fatalf("Parse(Format(%d)) = %d (text %q)", ms, got, text)
		}
	}
}

func TestExtendedRoundTrip(t *testing.T) {
	samples := []int64{0, 1, 500, 1500, 59999, 120000, 3599999, 3600000, 3600001, 86400000, Indefinite}
	for _, ms := range samples {
		text := Format(ms, Extended)
		got, err := Parse(text, Extended)
		if err != nil {
			t.Fatalf("Parse(Format(%d, Extended)) error %v (text %q)", ms, err, text)
		}
		if got != ms {
			t.Errorf("Parse(Format(%d, Extended)) = %d (text %q)", ms, got, text)
		}
	}
}

func TestFormat(t *testing.T) {
	tests := []struct {
		ms      int64
		grammar Grammar
		want    string
	}{
		{0, Simple, "00:00:00.000"},
		{1500, Simple, "00:00:01.500"},
		{3723040, Simple, "01:02:03.040"},
		{360000000, Simple, "100:00:00.000"},
		{0, Extended, "0s"},
		{1500, Extended, "1.5s"},
		{1234, Extended, "1.234s"},
		{1050, Extended, "1.05s"},
		{120000, Extended, "120s"},
		{3599999, Extended, "3599.999s"},
		{3600000, Extended, "01:00:00"},
		{3723040, Extended, "01:02:03.040"},
		{Indefinite, Extended, "indefinite"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			if got := Format(tt.ms, tt.grammar); got != tt.want {
				t.Errorf("Format(%d, %v) = %q, want %q", tt.ms, tt.grammar, got, tt.want)
			}
		})
	}
}

func TestParseDuration(t *testing.T) {
	tests := []struct {
		input        string
		wantMS       int64
		wantExplicit bool
		wantErr      bool
	}{
		{"media", 0, false, false},
		{"MEDIA", 0, false, false},
		{"", 0, false, false},
		{"5s", 5000, true, false},
		{"0s", 0, true, false},
		{"indefinite", Indefinite, true, false},
		{"bogus", 0, false, true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			ms, explicit, err := ParseDuration(tt.input)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseDuration(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if ms != tt.wantMS || explicit != tt.wantExplicit {
				t.Errorf("ParseDuration(%q) = (%d, %v), want (%d, %v)", tt.input, ms, explicit, tt.wantMS, tt.wantExplicit)
			}
		})
	}
}

func TestValue(t *testing.T) {
	v, err := ParseValue("00:00:01.500", Simple)
	if err != nil {
		t.Fatalf("ParseValue failed: %v", err)
	}
	if v.Millis != 1500 || v.Grammar != Simple {
		t.Errorf("ParseValue = %+v", v)
	}
	// Re-emitted in the target grammar, not the source grammar.
	if got := v.In(Extended).String(); got != "1.5s" {
		t.Errorf("In(Extended).String() = %q, want 1.5s", got)
	}
	if got := v.Duration(); got != 1500*time.Millisecond {
		t.Errorf("Duration() = %v", got)
	}

	inf := NewValue(Indefinite, Extended)
	if !inf.IsIndefinite() {
		t.Error("IsIndefinite() = false for sentinel")
	}
	if inf.String() != "indefinite" {
		t.Errorf("String() = %q, want indefinite", inf.String())
	}
	if _, err := ParseValue("5s", Simple); err == nil {
		t.Error("ParseValue(5s, Simple) should fail")
	}
}

func TestMustParsePanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("MustParse should panic on malformed input")
		}
	}()
	MustParse("nope", Extended)
}

func TestGrammarString(t *testing.T) {
	if Simple.String() != "simple" || Extended.String() != "extended" {
		t.Errorf("unexpected grammar names %q %q", Simple, Extended)
	}
	if Grammar(9).String() != "grammar(9)" {
		t.Errorf("Grammar(9).String() = %q", Grammar(9).String())
	}
}
