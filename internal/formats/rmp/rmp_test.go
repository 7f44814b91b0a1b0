package rmp

import (
	"strings"
	"testing"

	"github.com/FocuswithJustin/JuniperPlaylist/core/dialect"
	"github.com/FocuswithJustin/JuniperPlaylist/core/errors"
	"github.com/FocuswithJustin/JuniperPlaylist/core/ir"
	"github.com/FocuswithJustin/JuniperPlaylist/core/xml"
)

func TestImport(t *testing.T) {
	input := `<?xml version="1.0"?>
<Package>
  <Title>Favourites</Title>
  <TrackList>
    <Track><TrackId>1</TrackId><Filename>one.rm</Filename><Location>ignored.rm</Location></Track>
    <track><trackid>2</trackid><filename></filename><location>http://example.com/two.rm</location></track>
    <TRACK><TRACKID>3</TRACKID><FILENAME> </FILENAME></TRACK>
  </TrackList>
</Package>`
	m, err := Dialect{}.Decode([]byte(input))
	if err != nil {
		t.Fatalf("Decode failed: %v", err)
	}
	p := m.(*Package)
	if p.Title != "Favourites" || len(p.Tracks) != 3 || p.Tracks[1].TrackID != "2" {
		t.Errorf("Decode() = %+v", p)
	}
	tree, err := Dialect{}.Import(p)
	if err != nil {
		t.Fatalf("Import failed: %v", err)
	}
	want := ir.NewSequence(ir.NewMedia("one.rm"), ir.NewMedia("http://example.com/two.rm"))
	if !ir.Equal(tree, want) {
		t.Errorf("Import() = %+v", tree)
	}
}

func TestImportMissingLocator(t *testing.T) {
	m, err := Dialect{}.Decode([]byte(`<PACKAGE><TRACKLIST><TRACK><TRACKID>1</TRACKID></TRACK></TRACKLIST></PACKAGE>`))
	if err != nil {
		t.Fatal(err)
	}
	if _, err := (Dialect{}).Import(m); !errors.Is(err, errors.ErrMissingField) {
		t.Errorf("Import() error = %v", err)
	}
}

func TestExport(t *testing.T) {
	tree := ir.NewSequence(ir.NewMedia("a.rm").Times(2), ir.NewMedia("b.rm"))
	m, err := Dialect{}.Export(tree, Capabilities, dialect.ExportOptions{})
	if err != nil {
		t.Fatalf("Export failed: %v", err)
	}
	out, err := Dialect{}.Encode(m, xml.WriteOptions{})
	if err != nil {
		t.Fatal(err)
	}
	want := `<?xml version="1.0" encoding="UTF-8"?>` + "\n" +
		`<PACKAGE><TRACKLIST>` +
		`<TRACK><TRACKID>track_1</TRACKID><FILENAME>a.rm</FILENAME></TRACK>` +
		`<TRACK><TRACKID>track_2</TRACKID><FILENAME>a.rm</FILENAME></TRACK>` +
		`<TRACK><TRACKID>track_3</TRACKID><FILENAME>b.rm</FILENAME></TRACK>` +
		`</TRACKLIST></PACKAGE>` + "\n"
	if string(out) != want {
		t.Errorf("Encode() =\n%s\nwant\n%s", out, want)
	}
}

func TestExportRejectsParallel(t *testing.T) {
	_, err := Dialect{}.Export(ir.NewParallel(ir.NewMedia("a"), ir.NewMedia("b")), Capabilities, dialect.ExportOptions{})
	var uc *errors.UnsupportedConstructError
	if !errors.As(err, &uc) || uc.Dialect != "rmp" || uc.Construct != dialect.ConstructParallel {
		t.Fatalf("Export() error = %v", err)
	}
	if !strings.HasPrefix(uc.Error(), "rmp cannot express parallel") {
		t.Errorf("Error() = %q", uc.Error())
	}
}

func TestSniff(t *testing.T) {
	for _, root := range []string{"PACKAGE", "package"} {
		if !(Dialect{}).Sniff(&xml.Sniffed{Root: root}) {
			t.Errorf("Sniff(%s) = false", root)
		}
	}
}

func TestMetadata(t *testing.T) {
	p := &Package{
		Title:    "Favourites",
		Provider: "Real",
		Tracks:   []Track{{TrackID: "1", Artist: "Band"}, {TrackID: "2"}},
	}
	got := Dialect{}.Metadata(p)
	want := []dialect.Field{
		{Path: "PACKAGE/TITLE", Value: "Favourites"},
		{Path: "PACKAGE/PROVIDER", Value: "Real"},
		{Path: "PACKAGE/TRACKLIST/TRACK[0]/ARTIST", Value: "Band"},
	}
	if len(got) != len(want) {
		t.Fatalf("Metadata() = %+v", got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("Metadata()[%d] = %+v, want %+v", i, got[i], want[i])
		}
	}
}
