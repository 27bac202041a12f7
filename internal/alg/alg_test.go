package alg

import (
	"errors"
	"testing"
)

func TestPrepare(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"banana", "banana$"},
		{"banana$", "banana$"},
		{"ba$na na", "banana$"},
		{"  ", DefaultInput + "$"},
		{"", DefaultInput + "$"},
	}

	for _, tt := range tests {
		if got := string(Prepare(tt.in)); got != tt.want {
			t.Errorf("Prepare(%q): expected %q, got %q", tt.in, tt.want, got)
		}
	}
}

func TestRegistry(t *testing.T) {
	r := NewRegistry()

	names := r.Names()
	if len(names) != 3 || names[0] != "bibwt" || names[1] != "bwt" || names[2] != "suffix-array" {
		t.Fatalf("unexpected names %v", names)
	}

	v, err := r.New("suffix-array", "banana", "")
	if err != nil {
		t.Fatalf("new failed: %v", err)
	}
	if v.NumStates() != 3*7+2 {
		t.Errorf("expected 23 states, got %d", v.NumStates())
	}
	if _, ok := v.(Series); !ok {
		t.Error("expected suffix array to expose a series")
	}

	if _, err := r.New("nope", "banana", ""); !errors.Is(err, ErrUnknownAlgorithm) {
		t.Errorf("expected ErrUnknownAlgorithm, got %v", err)
	}
}

func TestRegistryNextWraps(t *testing.T) {
	r := NewRegistry()
	if got := r.Next("bwt"); got != "suffix-array" {
		t.Errorf("expected suffix-array, got %s", got)
	}
	if got := r.Next("suffix-array"); got != "bibwt" {
		t.Errorf("expected bibwt, got %s", got)
	}
	if got := r.Next("bibwt"); got != "bwt" {
		t.Errorf("expected bwt, got %s", got)
	}
	if got := r.Next("unknown"); got != "bibwt" {
		t.Errorf("expected first name, got %s", got)
	}
}

func TestRegistryKeepsEmptyQuery(t *testing.T) {
	r := NewRegistry()
	for _, name := range []string{"bwt", "bibwt"} {
		v, err := r.New(name, "banana", "")
		if err != nil {
			t.Fatalf("%s: new failed: %v", name, err)
		}
		last := v.Describe(v.NumStates() - 1)
		if last != `Query "" occurs 7 times.` {
			t.Errorf("%s: expected the empty query to match every row, got %q", name, last)
		}
	}
}
