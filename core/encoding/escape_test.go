package encoding

import "testing"

func TestEscapeXMLText(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"empty", "", ""},
		{"title", "Greatest Hits", "Greatest Hits"},
		{"ampersand", "Simon & Garfunkel", "Simon &amp; Garfunkel"},
		{"quotes preserved", `"Live"`, `"Live"`},
		{"markup", "<b>&</b>", "&lt;b&gt;&amp;&lt;/b&gt;"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := EscapeXMLText(tt.input)
			if got != tt.want {
				t.Errorf("EscapeXMLText(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestEscapeXMLAttr(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"empty", "", ""},
		{"href", "a.mp3", "a.mp3"},
		{"query", "x.asp?a=1&b=2", "x.asp?a=1&amp;b=2"},
		{"double quotes", `say "hi"`, "say &quot;hi&quot;"},
		{"apostrophe kept", "Rock'n'Roll", "Rock'n'Roll"},
		{"line break", "a\nb", "a&#xA;b"},
		{"tab", "a\tb", "a&#x9;b"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := EscapeXMLAttr(tt.input)
			if got != tt.want {
				t.Errorf("EscapeXMLAttr(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}
