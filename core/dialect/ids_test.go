package dialect

import (
	"strings"
	"testing"
)

func TestCounter(t *testing.T) {
	c := NewCounter()
	got := []string{c.Next("seq"), c.Next("media"), c.Next(""), c.Next("seq")}
	want := []string{"seq_1", "media_2", "id_3", "seq_4"}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("Next #%d = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestUUIDs(t *testing.T) {
	var g UUIDs
	a, b := g.Next("track"), g.Next("track")
	if a == b {
		t.Error("UUIDs repeated an id")
	}
	if !strings.HasPrefix(a, "track_") || len(a) != len("track_")+36 {
		t.Errorf("Next() = %q", a)
	}
}

func TestNewIDGenerator(t *testing.T) {
	for _, scheme := range []string{"", "counter", "uuid"} {
		if _, err := NewIDGenerator(scheme); err != nil {
			t.Errorf("NewIDGenerator(%q) = %v", scheme, err)
		}
	}
	if _, err := NewIDGenerator("random"); err == nil {
		t.Error("unknown scheme should fail")
	}
}

func TestExportOptionsGenerator(t *testing.T) {
	var opts ExportOptions
	g := opts.Generator()
	if g == nil || opts.Generator() != g {
		t.Error("Generator should create one Counter and keep it")
	}
}
