package sa

import (
	"testing"

	"github.com/san-kum/algviz/internal/canvas"
)

func TestFinalSuffixArray(t *testing.T) {
	v := New([]byte("banana$"))
	want := []int{6, 5, 3, 1, 0, 4, 2}
	got := v.Final()
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("expected %v, got %v", want, got)
		}
	}
}

func TestClassification(t *testing.T) {
	v := New([]byte("banana$"))
	want := []bool{false, true, false, true, false, false, true}
	for i, small := range want {
		if v.IsSmall(i) != small {
			t.Errorf("suffix %d: expected small=%v", i, small)
		}
	}
}

func TestNumStates(t *testing.T) {
	v := New([]byte("GTCCCGATGTCATGTCAGGA$"))
	if got, want := v.NumStates(), 3*21+2; got != want {
		t.Errorf("expected %d states, got %d", want, got)
	}
	if v.StateAt(0).Kind != KindInit || v.StateAt(v.NumStates()-1).Kind != KindEnd {
		t.Error("expected Init first and End last")
	}
}

func TestInduceReachesFinal(t *testing.T) {
	for _, s := range []string{"banana$", "mississippi$", "GTCCCGATGTCATGTCAGGA$", "aaaa$", "$"} {
		v := New([]byte(s))
		last := State{Kind: KindRow, Row: len(s) - 1, Phase: PhasePlaced}
		sa, _ := v.Induce(last)
		final := v.Final()
		for j := range final {
			if sa[j] != final[j] {
				t.Errorf("%s: slot %d expected %d, got %d", s, j, final[j], sa[j])
			}
		}
	}
}

func TestInitialStateHoldsOnlySmallSuffixes(t *testing.T) {
	v := New([]byte("banana$"))
	sa, _ := v.Induce(State{Kind: KindInit})
	want := []int{6, -1, 3, 1, -1, -1, -1}
	for j := range want {
		if sa[j] != want[j] {
			t.Errorf("slot %d: expected %d, got %d", j, want[j], sa[j])
		}
	}
}

func TestDrawSkipsRowsWithoutInduction(t *testing.T) {
	v := New([]byte("banana$"))
	rec := canvas.NewRecorder()

	// Row 4 holds suffix 0, which has no predecessor.
	idx := stateIndex(v, State{Kind: KindRow, Row: 4, Phase: PhaseCurrent})
	if !v.Draw(idx, rec) {
		t.Error("expected current-row frame to be presentable")
	}
	if v.Draw(idx+1, rec) {
		t.Error("expected target frame of a skipped row to be hidden")
	}

	// Row 0 holds suffix 6; suffix 5 is L-type and lands in slot 1.
	idx = stateIndex(v, State{Kind: KindRow, Row: 0, Phase: PhaseTarget})
	if !v.Draw(idx, rec) {
		t.Error("expected inducing row to be presentable")
	}
	if got := rec.Count(canvas.OpDrawRect, canvas.Blue); got == 0 {
		t.Error("expected blue highlights for the induced slot")
	}
}

func TestDrawHidesPlacedEntryUntilLastPhase(t *testing.T) {
	v := New([]byte("banana$"))
	rec := canvas.NewRecorder()

	v.Draw(stateIndex(v, State{Kind: KindRow, Row: 0, Phase: PhaseTarget}), rec)
	hidden := countText(rec, "-")

	v.Draw(stateIndex(v, State{Kind: KindRow, Row: 0, Phase: PhasePlaced}), rec)
	shown := countText(rec, "-")

	if hidden != shown+1 {
		t.Errorf("expected one fewer empty slot once placed, got %d then %d", hidden, shown)
	}
}

func TestSeriesIsMonotonic(t *testing.T) {
	v := New([]byte("mississippi$"))
	name, values := v.Series()
	if name == "" || len(values) != v.NumStates() {
		t.Fatalf("unexpected series %q with %d values", name, len(values))
	}
	for k := 1; k < len(values); k++ {
		if values[k] < values[k-1] {
			t.Fatalf("series decreased at %d: %v", k, values)
		}
	}
	if values[len(values)-1] != 12 {
		t.Errorf("expected all 12 slots filled, got %v", values[len(values)-1])
	}
}

func stateIndex(v *SuffixArray, st State) int {
	for i := 0; i < v.NumStates(); i++ {
		if v.StateAt(i) == st {
			return i
		}
	}
	return -1
}

func countText(r *canvas.Recorder, text string) int {
	n := 0
	for _, s := range r.Texts() {
		if s == text {
			n++
		}
	}
	return n
}
