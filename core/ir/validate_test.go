package ir

import (
	"errors"
	"strings"
	"testing"
)

func TestValidateValidTree(t *testing.T) {
	tree := NewSequence(
		NewMedia("a.mp3").WithDuration(1000),
		NewParallel(NewMedia("b.mp3"), NewMedia("")).Times(RepeatIndefinite),
		NewMedia(" \n\t"),
		NewMedia("c.mp3").Times(0),
	)
	if errs := Validate(tree); len(errs) != 0 {
		t.Errorf("Validate() = %v, want no errors", errs)
	}
}

func TestValidateErrors(t *testing.T) {
	tests := []struct {
		name     string
		tree     Node
		wantPath string
		wantMsg  string
	}{
		{
			name:     "negative repeat",
			tree:     NewSequence(NewMedia("a").Times(-2)),
			wantPath: "seq/media[0]",
			wantMsg:  "invalid repeat count -2",
		},
		{
			name:     "nested invalid repeat",
			tree:     NewSequence(NewMedia("a"), NewParallel(NewMedia("b")).Times(-5)),
			wantPath: "seq/par[1]",
			wantMsg:  "invalid repeat count -5",
		},
		{
			name:     "nil child",
			tree:     &Parallel{Children: []Node{NewMedia("a"), nil}, Repeat: 1},
			wantPath: "par/[1]",
			wantMsg:  "nil child",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			errs := Validate(tt.tree)
			if len(errs) != 1 {
				t.Fatalf("Validate() returned %d errors, want 1: %v", len(errs), errs)
			}
			var ve *ValidationError
			if !errors.As(errs[0], &ve) {
				t.Fatalf("error %T is not a ValidationError", errs[0])
			}
			if ve.Path != tt.wantPath {
				t.Errorf("Path = %q, want %q", ve.Path, tt.wantPath)
			}
			if !strings.Contains(ve.Message, tt.wantMsg) {
				t.Errorf("Message = %q, want %q", ve.Message, tt.wantMsg)
			}
		})
	}
}

func TestValidateNil(t *testing.T) {
	if errs := Validate(nil); len(errs) != 1 {
		t.Errorf("Validate(nil) = %v, want one error", errs)
	}
}

func TestValidationErrorMessage(t *testing.T) {
	if got := (&ValidationError{Path: "seq", Message: "bad"}).Error(); got != "seq: bad" {
		t.Errorf("Error() = %q", got)
	}
	if got := (&ValidationError{Message: "bad"}).Error(); got != "bad" {
		t.Errorf("Error() = %q", got)
	}
}

func TestValidRepeat(t *testing.T) {
	for _, r := range []int64{-1, 0, 1, 1000} {
		if !ValidRepeat(r) {
			t.Errorf("ValidRepeat(%d) = false", r)
		}
	}
	for _, r := range []int64{-2, -100} {
		if ValidRepeat(r) {
			t.Errorf("ValidRepeat(%d) = true", r)
		}
	}
}
