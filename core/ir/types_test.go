package ir

import "testing"

func TestConstructorsPlayOnce(t *testing.T) {
	nodes := []Node{NewSequence(), NewParallel(), NewMedia("a")}
	for _, n := range nodes {
		if n.RepeatCount() != RepeatOnce {
			t.Errorf("%s constructor repeat = %d, want 1", n.Kind(), n.RepeatCount())
		}
	}
}

func TestKindString(t *testing.T) {
	tests := map[Kind]string{
		KindSequence: "seq",
		KindParallel: "par",
		KindMedia:    "media",
		Kind(42):     "unknown",
	}
	for k, want := range tests {
		if got := k.String(); got != want {
			t.Errorf("Kind(%d).String() = %q, want %q", int(k), got, want)
		}
	}
}

func TestMediaDuration(t *testing.T) {
	m := NewMedia("a.mp3")
	if _, ok := m.DurationMillis(); ok {
		t.Error("new media should have no duration")
	}
	m.WithDuration(2500)
	if d, ok := m.DurationMillis(); !ok || d != 2500 {
		t.Errorf("DurationMillis() = %d, %v", d, ok)
	}
}

func TestIsRepeated(t *testing.T) {
	tests := []struct {
		repeat int64
		want   bool
	}{
		{0, false},
		{1, false},
		{2, true},
		{RepeatIndefinite, true},
	}
	for _, tt := range tests {
		if got := IsRepeated(NewMedia("a").Times(tt.repeat)); got != tt.want {
			t.Errorf("IsRepeated(repeat=%d) = %v, want %v", tt.repeat, got, tt.want)
		}
	}
}

func TestChildrenAndIsContainer(t *testing.T) {
	seq := NewSequence(NewMedia("a"))
	par := NewParallel(NewMedia("b"), NewMedia("c"))
	media := NewMedia("d")

	if len(Children(seq)) != 1 || len(Children(par)) != 2 || Children(media) != nil {
		t.Error("Children returned wrong slices")
	}
	if !IsContainer(seq) || !IsContainer(par) || IsContainer(media) {
		t.Error("IsContainer misclassified a node")
	}
}

func TestEqual(t *testing.T) {
	base := func() Node {
		return NewSequence(NewMedia("a").WithDuration(5), NewParallel(NewMedia("b")).Times(2))
	}

	tests := []struct {
		name string
		b    Node
		want bool
	}{
		{"identical", base(), true},
		{"different locator", NewSequence(NewMedia("x").WithDuration(5), NewParallel(NewMedia("b")).Times(2)), false},
		{"missing duration", NewSequence(NewMedia("a"), NewParallel(NewMedia("b")).Times(2)), false},
		{"different duration", NewSequence(NewMedia("a").WithDuration(6), NewParallel(NewMedia("b")).Times(2)), false},
		{"different repeat", NewSequence(NewMedia("a").WithDuration(5), NewParallel(NewMedia("b")).Times(3)), false},
		{"different kind", NewSequence(NewMedia("a").WithDuration(5), NewSequence(NewMedia("b")).Times(2)), false},
		{"different arity", NewSequence(NewMedia("a").WithDuration(5)), false},
		{"nil", nil, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Equal(base(), tt.b); got != tt.want {
				t.Errorf("Equal() = %v, want %v", got, tt.want)
			}
		})
	}
	if !Equal(nil, nil) {
		t.Error("Equal(nil, nil) should be true")
	}
}

func TestCloneIsDeep(t *testing.T) {
	orig := NewSequence(NewMedia("a").WithDuration(100), NewParallel(NewMedia("b")))
	cp := Clone(orig).(*Sequence)
	if !Equal(orig, cp) {
		t.Fatal("clone differs from original")
	}

	cp.Children[0].(*Media).Locator = "changed"
	*cp.Children[0].(*Media).Duration = 1
	cp.Children[1].(*Parallel).Children = nil

	if orig.Children[0].(*Media).Locator != "a" {
		t.Error("clone shares media with original")
	}
	if d, _ := orig.Children[0].(*Media).DurationMillis(); d != 100 {
		t.Error("clone shares duration with original")
	}
	if len(orig.Children[1].(*Parallel).Children) != 1 {
		t.Error("clone shares child slice with original")
	}
}
