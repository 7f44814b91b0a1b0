package xml

import (
	"strings"
	"testing"
)

const sampleSMIL = `<?xml version="1.0"?>
<smil>
	<head>
		<layout>
			<region id="main" width="320"/>
			<region id="captions"/>
		</layout>
	</head>
	<body>
		<seq repeatCount="2">
			<audio src="a.mp3" region="main"/>
			<video src="b.mp4" region="captions" dur="5s"/>
		</seq>
	</body>
</smil>`

func TestParseValidXML(t *testing.T) {
	doc, err := Parse([]byte(sampleSMIL))
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	if root := doc.Root(); root == nil || root.Name() != "smil" {
		t.Errorf("Root() = %v, want smil", root)
	}
}

func TestParseInvalidXML(t *testing.T) {
	tests := []struct {
		name string
		xml  string
	}{
		{"unclosed tag", "<ASX><ENTRY></ASX>"},
		{"mismatched tags", "<smil></body>"},
		{"invalid chars", "<tape>\x00</tape>"},
		{"no element", "<?xml version=\"1.0\"?>"},
		{"undeclared entity", "<tape><name>&bogus;</name></tape>"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := Parse([]byte(tt.xml)); err == nil {
				t.Error("Parse should fail for invalid XML")
			}
		})
	}
}

func TestValidate(t *testing.T) {
	if result := Validate([]byte(sampleSMIL), nil); !result.Valid {
		t.Errorf("valid XML should pass: %v", result.Errors)
	}

	result := Validate([]byte("<smil>\n<body>\n</smil>"), nil)
	if result.Valid {
		t.Fatal("mismatched tags should fail")
	}
	if len(result.Errors) != 1 {
		t.Fatalf("Errors = %v, want one", result.Errors)
	}
	if result.Errors[0].Line != 3 {
		t.Errorf("Line = %d, want 3", result.Errors[0].Line)
	}
	if !strings.Contains(result.Errors[0].Error(), "line 3") {
		t.Errorf("Error() = %q", result.Errors[0].Error())
	}

	if result := Validate([]byte("   "), nil); result.Valid {
		t.Error("empty document should fail")
	}
}

func TestXPath(t *testing.T) {
	doc, err := Parse([]byte(sampleSMIL))
	if err != nil {
		t.Fatal(err)
	}

	regions, err := doc.XPath("//region")
	if err != nil {
		t.Fatalf("XPath failed: %v", err)
	}
	if len(regions) != 2 {
		t.Fatalf("got %d regions, want 2", len(regions))
	}
	if regions[0].Attr("id") != "main" || regions[0].Attr("width") != "320" {
		t.Errorf("first region id = %q", regions[0].Attr("id"))
	}

	media, err := doc.XPath("//*[@region='captions']")
	if err != nil {
		t.Fatal(err)
	}
	if len(media) != 1 || media[0].Name() != "video" {
		t.Errorf("region query returned %d nodes", len(media))
	}

	seqs, err := doc.XPath("//seq")
	if err != nil || len(seqs) != 1 {
		t.Fatalf("XPath(//seq) = %d nodes, %v", len(seqs), err)
	}
	if seqs[0].Attr("repeatCount") != "2" || len(seqs[0].Children()) != 2 {
		t.Errorf("seq repeatCount = %q, children = %d", seqs[0].Attr("repeatCount"), len(seqs[0].Children()))
	}

	if none, err := doc.XPath("//par"); err != nil || len(none) != 0 {
		t.Errorf("XPath(//par) = %v, %v; want none", none, err)
	}

	if _, err := doc.XPath("//["); err == nil {
		t.Error("invalid expression should fail")
	}
}

func TestInstructions(t *testing.T) {
	doc, err := Parse([]byte(`<?xml version="1.0"?><?wpl version="1.0"?><smil><body/></smil>`))
	if err != nil {
		t.Fatal(err)
	}
	got := doc.Instructions()
	if len(got) != 1 || got[0] != "wpl" {
		t.Errorf("Instructions() = %v, want [wpl]", got)
	}
}

func TestFormat(t *testing.T) {
	out, err := Format([]byte(`<tape><name>Mix &amp; Match</name><tracks><track/></tracks></tape>`), FormatOptions{})
	if err != nil {
		t.Fatalf("Format failed: %v", err)
	}
	want := "<tape>\n  <name>Mix &amp; Match</name>\n  <tracks>\n    <track/>\n  </tracks>\n</tape>\n"
	if !strings.HasSuffix(string(out), want) {
		t.Errorf("Format() =\n%s\nwant suffix\n%s", out, want)
	}

	out, err = Format([]byte(`<?wpl version="1.0"?><smil/>`), FormatOptions{Indent: "\t"})
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(out), `<?wpl version="1.0"?>`) {
		t.Errorf("processing instruction lost:\n%s", out)
	}

	if _, err := Format([]byte("<a>"), FormatOptions{}); err == nil {
		t.Error("Format should fail on malformed input")
	}
}

func TestNilAccessors(t *testing.T) {
	var n Node
	if n.Name() != "" || n.Attr("x") != "" || n.Children() != nil || n.Namespace() != "" {
		t.Error("zero Node accessors should return zero values")
	}
	var d Document
	if d.Root() != nil || d.Instructions() != nil {
		t.Error("zero Document accessors should return nil")
	}
}

func TestFormatKeepsNamespacePrefix(t *testing.T) {
	out, err := Format([]byte(`<smil xmlns:rn="urn:x"><rn:meta rn:k="v"/></smil>`), FormatOptions{})
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(out), "<rn:meta") {
		t.Errorf("prefix lost:\n%s", out)
	}
}
