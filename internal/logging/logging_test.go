package logging

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"
	"time"
)

// captureLogOutput swaps in a debug-level JSON logger writing to a buffer.
func captureLogOutput(t *testing.T, f func()) string {
	t.Helper()
	var buf bytes.Buffer
	old := defaultLogger
	SetLogger(New(&buf, LevelDebug, FormatJSON))
	defer SetLogger(old)
	f()
	return buf.String()
}

func decodeLines(t *testing.T, out string) []map[string]any {
	t.Helper()
	var records []map[string]any
	for _, line := range strings.Split(strings.TrimSpace(out), "\n") {
		if line == "" {
			continue
		}
		var rec map[string]any
		if err := json.Unmarshal([]byte(line), &rec); err != nil {
			t.Fatalf("invalid JSON log line %q: %v", line, err)
		}
		records = append(records, rec)
	}
	return records
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in      string
		want    Level
		wantErr bool
	}{
		{"debug", LevelDebug, false},
		{"INFO", LevelInfo, false},
		{" warn ", LevelWarn, false},
		{"warning", LevelWarn, false},
		{"error", LevelError, false},
		{"loud", LevelInfo, true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseLevel(tt.in)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseLevel() error = %v", err)
			}
			if got != tt.want {
				t.Errorf("ParseLevel() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestParseFormat(t *testing.T) {
	if f, err := ParseFormat("JSON"); err != nil || f != FormatJSON {
		t.Errorf("ParseFormat(JSON) = %v, %v", f, err)
	}
	if f, err := ParseFormat("text"); err != nil || f != FormatText {
		t.Errorf("ParseFormat(text) = %v, %v", f, err)
	}
	if _, err := ParseFormat("xml"); err == nil {
		t.Error("ParseFormat(xml) should fail")
	}
}

func TestNewLevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	logger := New(&buf, LevelWarn, FormatText)
	logger.Info("hidden")
	logger.Warn("shown", "k", "v")
	out := buf.String()
	if strings.Contains(out, "hidden") || !strings.Contains(out, "msg=shown") || !strings.Contains(out, "k=v") {
		t.Errorf("unexpected output: %s", out)
	}
}

func TestTimestampFormat(t *testing.T) {
	var buf bytes.Buffer
	New(&buf, LevelInfo, FormatJSON).Info("tick")
	recs := decodeLines(t, buf.String())
	ts, _ := recs[0]["time"].(string)
	if _, err := time.Parse(time.RFC3339, ts); err != nil {
		t.Errorf("time %q is not RFC3339: %v", ts, err)
	}
}

func TestInitLogger(t *testing.T) {
	old := defaultLogger
	defer SetLogger(old)
	InitLogger(LevelDebug, FormatJSON)
	if GetLogger() == nil || GetLogger() == old {
		t.Error("InitLogger did not replace the logger")
	}
}

func TestConversionID(t *testing.T) {
	ctx := WithConversionID(context.Background(), "run-1")
	if got := GetConversionID(ctx); got != "run-1" {
		t.Errorf("GetConversionID() = %q", got)
	}
	if got := GetConversionID(context.Background()); got != "" {
		t.Errorf("GetConversionID(empty) = %q", got)
	}

	out := captureLogOutput(t, func() {
		LoggerFromContext(ctx).Info("hello")
	})
	if rec := decodeLines(t, out)[0]; rec["conversion_id"] != "run-1" {
		t.Errorf("record = %v", rec)
	}
}

func TestLoggingFunctions(t *testing.T) {
	out := captureLogOutput(t, func() {
		Debug("d", "n", 1)
		Info("i")
		Warn("w")
		Error("e")
	})
	recs := decodeLines(t, out)
	want := []string{"DEBUG", "INFO", "WARN", "ERROR"}
	if len(recs) != len(want) {
		t.Fatalf("got %d records", len(recs))
	}
	for i, rec := range recs {
		if rec["level"] != want[i] {
			t.Errorf("record %d level = %v, want %s", i, rec["level"], want[i])
		}
	}
}

func TestConversionEvents(t *testing.T) {
	ctx := WithConversionID(context.Background(), "c1")
	out := captureLogOutput(t, func() {
		Conversion(ctx, "asx", "wpl", "L1", 120, "path", "out.wpl")
		ConversionFailed(ctx, "smil", "asx", errors.New("asx cannot express parallel"))
		LossWarning(ctx, "wpl", "seq: repeat count 2 unrolled")
	})
	recs := decodeLines(t, out)
	if len(recs) != 3 {
		t.Fatalf("got %d records", len(recs))
	}
	if recs[0]["msg"] != "conversion" || recs[0]["loss_class"] != "L1" || recs[0]["bytes"] != float64(120) || recs[0]["path"] != "out.wpl" {
		t.Errorf("conversion record = %v", recs[0])
	}
	if recs[1]["msg"] != "conversion_failed" || recs[1]["error"] != "asx cannot express parallel" || recs[1]["level"] != "ERROR" {
		t.Errorf("failure record = %v", recs[1])
	}
	if recs[2]["msg"] != "conversion_loss" || recs[2]["conversion_id"] != "c1" {
		t.Errorf("loss record = %v", recs[2])
	}
}
