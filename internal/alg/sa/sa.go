// Package sa visualizes suffix array construction by induced sorting:
// starting from the sorted S-type suffixes, every L-type suffix is placed
// into the first free slot of its character bucket during one left to right
// scan.
package sa

import (
	"bytes"
	"fmt"
	"sort"
	"strconv"

	"github.com/san-kum/algviz/internal/canvas"
)

var (
	smallColour = canvas.Green
	largeColour = canvas.RGB(244, 113, 116)
)

type Kind int

const (
	KindInit Kind = iota
	KindRow
	KindEnd
)

// Phase orders the three frames shown for one row of the scan.
type Phase int

const (
	PhaseCurrent Phase = iota
	PhaseTarget
	PhasePlaced
)

type State struct {
	Kind  Kind
	Row   int
	Phase Phase
}

type SuffixArray struct {
	s       []byte
	n       int
	small   []bool
	buckets [256]int
	final   []int
	states  []State
}

// New prepares the visualization for s, which must end with a unique
// smallest sentinel such as '$'.
func New(s []byte) *SuffixArray {
	n := len(s)
	v := &SuffixArray{s: s, n: n, small: make([]bool, n)}

	for i := range s {
		v.small[i] = i == n-1 || bytes.Compare(s[i:], s[i+1:]) < 0
	}

	// buckets[c] is the number of characters <= c, so bucket c spans
	// [buckets[c-1], buckets[c]).
	for _, c := range s {
		v.buckets[c]++
	}
	for c := 1; c < len(v.buckets); c++ {
		v.buckets[c] += v.buckets[c-1]
	}

	v.final = make([]int, n)
	for i := range v.final {
		v.final[i] = i
	}
	sort.Slice(v.final, func(a, b int) bool {
		return bytes.Compare(s[v.final[a]:], s[v.final[b]:]) < 0
	})

	v.states = append(v.states, State{Kind: KindInit})
	for j := 0; j < n; j++ {
		v.states = append(v.states,
			State{Kind: KindRow, Row: j, Phase: PhaseCurrent},
			State{Kind: KindRow, Row: j, Phase: PhaseTarget},
			State{Kind: KindRow, Row: j, Phase: PhasePlaced},
		)
	}
	v.states = append(v.states, State{Kind: KindEnd})

	return v
}

func (v *SuffixArray) Name() string { return "suffix-array" }

func (v *SuffixArray) CanvasSize() (int, int) { return v.n + 4, v.n + 4 }

func (v *SuffixArray) NumStates() int { return len(v.states) }

func (v *SuffixArray) StateAt(i int) State { return v.states[i] }

// Final returns the sorted suffix array.
func (v *SuffixArray) Final() []int {
	out := make([]int, v.n)
	copy(out, v.final)
	return out
}

// IsSmall reports whether suffix i is S-type.
func (v *SuffixArray) IsSmall(i int) bool { return v.small[i] }

func (v *SuffixArray) colour(i int) canvas.Color {
	if v.small[i] {
		return smallColour
	}
	return largeColour
}

// skip reports whether suffix i induces nothing: it is the whole string or
// its predecessor is S-type.
func (v *SuffixArray) skip(i int) bool {
	return i == 0 || v.small[i-1]
}

// Induce returns the partially filled array (-1 for empty slots) after the
// scan reached st, and the slot written by the last inducing row.
func (v *SuffixArray) Induce(st State) (sa []int, placed int) {
	sa = make([]int, v.n)
	for j := range sa {
		sa[j] = -1
		if v.small[v.final[j]] {
			sa[j] = v.final[j]
		}
	}

	switch st.Kind {
	case KindRow:
		for j := 0; j <= st.Row; j++ {
			i := sa[j]
			if i < 0 || v.skip(i) {
				continue
			}
			c := v.s[i-1]
			lo := 0
			if c > 0 {
				lo = v.buckets[c-1]
			}
			for k := lo; k < v.buckets[c]; k++ {
				if sa[k] < 0 {
					placed = k
					break
				}
			}
			sa[placed] = i - 1
		}
	case KindEnd:
		copy(sa, v.final)
	}

	return sa, placed
}

func (v *SuffixArray) Describe(state int) string {
	st := v.states[state]
	switch st.Kind {
	case KindInit:
		return "Place the sorted S-type suffixes."
	case KindEnd:
		return "Suffix array complete."
	}

	sa, _ := v.Induce(st)
	i := sa[st.Row]
	switch {
	case st.Phase == PhaseCurrent:
		return fmt.Sprintf("Row %d holds suffix %d.", st.Row, i)
	case v.skip(i):
		return fmt.Sprintf("Suffix %d induces nothing.", i)
	default:
		return fmt.Sprintf("Suffix %d is L-type: place it in bucket %q.", i-1, v.s[i-1])
	}
}

// Draw renders state onto c. It returns false for frames that only repeat
// the previous one, which front-ends skip.
func (v *SuffixArray) Draw(state int, c canvas.Canvas) bool {
	st := v.states[state]
	s, n := v.s, v.n
	canvas.DrawBackground(c)

	psa := canvas.Pos{X: 3, Y: 3}
	cj := psa.Left(3)
	csa := psa.Left(2)
	ps := canvas.Pos{X: 3, Y: 1}
	ri := ps.Up(1)

	canvas.DrawStringWithLabels(c, ps, s, v.colour)

	sa, placed := v.Induce(st)
	if st.Kind == KindRow {
		i := sa[st.Row]
		// Hide the new entry until the last phase.
		if st.Phase < PhasePlaced && !v.skip(i) {
			sa[placed] = -1
		}
	}

	canvas.DrawLabel(c, cj.Up(1), "j")
	canvas.DrawLabel(c, csa.Up(1), "SA")
	for j := 0; j < n; j++ {
		canvas.DrawLabel(c, cj.Down(j), strconv.Itoa(j))
		if i := sa[j]; i >= 0 {
			canvas.DrawLabel(c, csa.Down(j), strconv.Itoa(i))
			canvas.DrawString(c, psa.Down(j), s[i:], func(k int) canvas.Color { return v.colour(i + k) })
			continue
		}
		canvas.DrawLabel(c, csa.Down(j), "-")
		canvas.DrawCharBox(c, psa.Down(j), v.bucketOf(j), largeColour)
	}

	if st.Kind != KindRow {
		return true
	}

	i := sa[st.Row]
	canvas.DrawHighlight(c, csa.Down(st.Row), canvas.Red)
	canvas.DrawHighlight(c, ri.Right(i), canvas.Red)
	if i > 0 {
		canvas.DrawHighlight(c, ri.Right(i-1), canvas.Blue)
	}
	if st.Phase > PhaseCurrent {
		if v.skip(i) {
			return false
		}
		canvas.DrawHighlight(c, ps.Right(i-1), canvas.Blue)
		canvas.DrawHighlight(c, csa.Down(placed), canvas.Blue)
	}
	return true
}

// bucketOf returns the first character of the bucket containing slot j.
func (v *SuffixArray) bucketOf(j int) byte {
	for c, cnt := range v.buckets {
		if cnt > j {
			return byte(c)
		}
	}
	return 0
}

// Series reports how many slots are filled in every state.
func (v *SuffixArray) Series() (string, []float64) {
	out := make([]float64, len(v.states))
	for k, st := range v.states {
		sa, placed := v.Induce(st)
		filled := 0
		for _, i := range sa {
			if i >= 0 {
				filled++
			}
		}
		if st.Kind == KindRow && st.Phase < PhasePlaced && !v.skip(sa[st.Row]) && sa[placed] >= 0 {
			filled--
		}
		out[k] = float64(filled)
	}
	return "filled SA slots", out
}
