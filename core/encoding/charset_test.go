package encoding

import (
	"bytes"
	"io"
	"strings"
	"testing"

	"github.com/FocuswithJustin/JuniperPlaylist/core/errors"
)

func TestIsUTF8(t *testing.T) {
	for _, name := range []string{"", "UTF-8", "utf8", " utf-8 "} {
		if !IsUTF8(name) {
			t.Errorf("IsUTF8(%q) = false", name)
		}
	}
	for _, name := range []string{"ISO-8859-1", "windows-1252", "UTF-16"} {
		if IsUTF8(name) {
			t.Errorf("IsUTF8(%q) = true", name)
		}
	}
}

func TestEncode(t *testing.T) {
	tests := []struct {
		name    string
		charset string
		input   string
		want    []byte
	}{
		{"utf-8 passthrough", "UTF-8", "Café", []byte("Café")},
		{"default passthrough", "", "Café", []byte("Café")},
		{"latin-1", "ISO-8859-1", "Café", []byte{'C', 'a', 'f', 0xE9}},
		{"unrepresentable", "ISO-8859-1", "5€", []byte("5&#8364;")},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Encode([]byte(tt.input), tt.charset)
			if err != nil {
				t.Fatalf("Encode failed: %v", err)
			}
			if !bytes.Equal(got, tt.want) {
				t.Errorf("Encode() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestEncodeUnknownCharset(t *testing.T) {
	_, err := Encode([]byte("x"), "no-such-charset")
	if err == nil {
		t.Fatal("Encode should fail for an unknown charset")
	}
	if !errors.Is(err, errors.ErrUnsupported) {
		t.Errorf("error %v should wrap ErrUnsupported", err)
	}
}

func TestNewReader(t *testing.T) {
	r, err := NewReader("ISO-8859-1", bytes.NewReader([]byte{'C', 'a', 'f', 0xE9}))
	if err != nil {
		t.Fatalf("NewReader failed: %v", err)
	}
	got, err := io.ReadAll(r)
	if err != nil {
		t.Fatalf("read failed: %v", err)
	}
	if string(got) != "Café" {
		t.Errorf("decoded %q, want %q", got, "Café")
	}

	r, err = NewReader("utf-8", strings.NewReader("plain"))
	if err != nil {
		t.Fatalf("NewReader(utf-8) failed: %v", err)
	}
	if got, _ := io.ReadAll(r); string(got) != "plain" {
		t.Errorf("utf-8 reader changed input: %q", got)
	}
}
