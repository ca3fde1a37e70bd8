package id

import (
	"strings"
	"testing"
)

func TestRandomGenerator_NewID(t *testing.T) {
	gen := NewRandomGenerator("s_")

	first, err := gen.NewID()
	if err != nil {
		t.Fatalf("NewID: %v", err)
	}
	second, err := gen.NewID()
	if err != nil {
		t.Fatalf("NewID: %v", err)
	}

	if !strings.HasPrefix(first, "s_") || len(first) != len("s_")+2*defaultSize {
		t.Fatalf("unexpected id shape: %q", first)
	}
	if first == second {
		t.Fatalf("expected distinct ids, got %q twice", first)
	}
}

func TestRandomGenerator_ZeroValue(t *testing.T) {
	var gen RandomGenerator
	got, err := gen.NewID()
	if err != nil {
		t.Fatalf("NewID: %v", err)
	}
	if len(got) != 2*defaultSize {
		t.Fatalf("unexpected id length: %d", len(got))
	}
}
