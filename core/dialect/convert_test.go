package dialect

import (
	"strings"
	"testing"

	"github.com/FocuswithJustin/JuniperPlaylist/core/errors"
	"github.com/FocuswithJustin/JuniperPlaylist/core/ir"
	"github.com/FocuswithJustin/JuniperPlaylist/core/xml"
)

func TestConvert(t *testing.T) {
	withRegistry(t, &tiny{name: "tiny"})

	in := []byte(`<tiny><item src="a.mp3"/><item src=""/><item src="b.mp3"/></tiny>`)
	res, err := Convert(in, "", "tiny", Options{})
	if err != nil {
		t.Fatalf("Convert failed: %v", err)
	}
	if res.From != "tiny" || res.To != "tiny" {
		t.Errorf("From/To = %s/%s", res.From, res.To)
	}
	out := string(res.Data)
	if !strings.Contains(out, `<item src="a.mp3"></item><item src="b.mp3"></item>`) {
		t.Errorf("output = %s", out)
	}
	if strings.Contains(out, `src=""`) {
		t.Error("empty media must not appear in the output")
	}
	if res.Report.LossClass != ir.LossL1 || len(res.Report.LostElements) != 1 {
		t.Errorf("report = %+v", res.Report)
	}
	if len(res.SourceHash) != 64 || len(res.Fingerprint) != 64 {
		t.Errorf("hashes = %q, %q", res.SourceHash, res.Fingerprint)
	}
}

func TestConvertRecordsMetadataLoss(t *testing.T) {
	withRegistry(t, &tiny{name: "tiny"})

	res, err := Convert([]byte(`<tiny title="Road Trip"><item src="a.mp3"/></tiny>`), "tiny", "tiny", Options{})
	if err != nil {
		t.Fatal(err)
	}
	if res.Report.LossClass != ir.LossL2 {
		t.Errorf("LossClass = %s, want L2", res.Report.LossClass)
	}
	lost := res.Report.LostElements
	if len(lost) != 1 || lost[0].Path != "tiny/@title" || lost[0].ElementType != "metadata" ||
		!strings.Contains(lost[0].Reason, "Road Trip") {
		t.Errorf("LostElements = %+v", lost)
	}

	src, err := Load([]byte(`<tiny title="Road Trip"/>`), "")
	if err != nil {
		t.Fatal(err)
	}
	if len(src.Metadata) != 1 || src.Model == nil || src.Dialect.Name() != "tiny" {
		t.Errorf("Load() = %+v", src)
	}
}

func TestConvertErrors(t *testing.T) {
	withRegistry(t, &tiny{name: "tiny"})

	if _, err := Convert([]byte(`<tiny/>`), "nope", "tiny", Options{}); !errors.Is(err, errors.ErrNotFound) {
		t.Errorf("unknown source: %v", err)
	}
	if _, err := Convert([]byte(`<tiny/>`), "tiny", "nope", Options{}); !errors.Is(err, errors.ErrNotFound) {
		t.Errorf("unknown target: %v", err)
	}
	if _, err := Convert([]byte(`<tiny>`), "tiny", "tiny", Options{}); err == nil {
		t.Error("malformed XML should fail")
	}

	_, err := Convert([]byte(`<tiny><item/></tiny>`), "tiny", "tiny", Options{})
	var mf *errors.MissingRequiredFieldError
	if !errors.As(err, &mf) {
		t.Fatalf("missing src: %v, want MissingRequiredFieldError", err)
	}
	if mf.Dialect != "tiny" || mf.Field != "src" {
		t.Errorf("MissingRequiredFieldError = %+v", mf)
	}
}

func TestWriteRejectsParallel(t *testing.T) {
	withRegistry(t, &tiny{name: "tiny"})

	tree := ir.NewSequence(ir.NewMedia("a"), ir.NewParallel(ir.NewMedia("b")))
	_, err := Write(tree, "tiny", Options{}, nil)
	wantConstruct(t, err, ConstructParallel)

	var uc *errors.UnsupportedConstructError
	errors.As(err, &uc)
	if uc.Dialect != "tiny" {
		t.Errorf("Dialect = %q, want tiny", uc.Dialect)
	}
	if !strings.Contains(err.Error(), "tiny cannot express parallel") {
		t.Errorf("Error() = %q", err.Error())
	}
}

func TestWriteUnrolls(t *testing.T) {
	withRegistry(t, &tiny{name: "tiny"})

	tree := &ir.Sequence{Repeat: 3, Children: []ir.Node{ir.NewMedia("a.mp3")}}
	report := ir.NewLossReport("ir", "tiny")
	out, err := Write(tree, "tiny", Options{Write: xml.WriteOptions{Indent: " "}}, report)
	if err != nil {
		t.Fatal(err)
	}
	if n := strings.Count(string(out), `src="a.mp3"`); n != 3 {
		t.Errorf("got %d entries, want 3:\n%s", n, out)
	}
	if len(report.Warnings) != 1 {
		t.Errorf("Warnings = %v", report.Warnings)
	}
}

func TestWriteCapabilityOverride(t *testing.T) {
	withRegistry(t, &tiny{name: "tiny", caps: Capabilities{MediaDuration: true}})

	tree := ir.NewSequence(ir.NewMedia("a").WithDuration(100))
	if _, err := Write(tree, "tiny", Options{}, nil); err != nil {
		t.Fatalf("native caps should allow timed media: %v", err)
	}
	_, err := Write(tree, "tiny", Options{Capabilities: &Capabilities{}}, nil)
	wantConstruct(t, err, ConstructTimedMedia)

	// An override cannot widen the native table.
	par := ir.NewParallel(ir.NewMedia("a"))
	_, err = Write(par, "tiny", Options{Capabilities: &Full}, nil)
	wantConstruct(t, err, ConstructParallel)
}

func TestPrepare(t *testing.T) {
	tree, err := Prepare("x", ir.NewSequence(ir.NewSequence(ir.NewMedia("a")), ir.NewMedia("b").Times(0)), Flat)
	if err != nil {
		t.Fatal(err)
	}
	if !ir.Equal(tree, ir.NewMedia("a")) {
		t.Errorf("Prepare did not normalize: %#v", tree)
	}

	if _, err := Prepare("x", ir.NewMedia("a").Times(-7), Full); !errors.Is(err, errors.ErrInvalidInput) {
		t.Errorf("invalid repeat: %v, want ErrInvalidInput", err)
	}

	empty, err := Prepare("x", nil, Flat)
	if err != nil || !ir.Equal(empty, ir.NewSequence()) {
		t.Errorf("Prepare(nil) = %v, %v", empty, err)
	}
}

func TestWrongModel(t *testing.T) {
	err := WrongModel("asx", &tinyModel{})
	if !errors.Is(err, errors.ErrUnsupported) || !strings.Contains(err.Error(), "tiny model") {
		t.Errorf("WrongModel() = %v", err)
	}
	if !strings.Contains(WrongModel("asx", nil).Error(), "nil model") {
		t.Error("nil model should be named")
	}
}
