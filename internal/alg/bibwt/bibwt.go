// Package bibwt visualizes the bidirectional BWT: a forward and a reverse
// index of the same text, and a query matched from its middle character
// outwards. Extending on the left is a backward search step on the forward
// index, extending on the right is one on the reverse index, and each step
// keeps the range of the other index in step with it.
package bibwt

import (
	"bytes"
	"fmt"
	"sort"
	"strconv"

	"github.com/san-kum/algviz/internal/canvas"
)

var (
	smallColour = canvas.Green
	largeColour = canvas.RGB(240, 240, 240)
	softColour  = canvas.RGB(180, 250, 180)
	nextColour  = canvas.RGB(180, 180, 250)
)

func toColour(cond bool) canvas.Color {
	if cond {
		return smallColour
	}
	return largeColour
}

type Kind int

const (
	KindInit Kind = iota
	// Steps 0 to 2: full rows, last column moved next to the first, half rows.
	KindLeftSA
	KindRightSA
	KindBothSA
	KindCounts
	KindLeftOcc
	KindRightOcc
	// One state per character of the alphabet.
	KindEquivalence
	KindPause
	// One state per phase of each extension, plus the final range.
	KindQuery
)

// Phase is the sub-step of one query extension. The first half extends the
// range of the index on the extending side, the second half moves the range
// of the other index.
type Phase int

const (
	PhaseDone Phase = iota
	PhaseChar
	PhaseMatches
	PhaseEquivalenceFirst
	PhaseCountFirst
	PhaseSmallerFirst
	PhaseExtendFirst
	PhaseWindowSecond
	PhaseEquivalenceSecond
	PhaseCountSecond
	PhaseComputeSecond
	PhaseStartSecond
	PhaseEndSecond
)

const numPhases = int(PhaseEndSecond) + 1

type State struct {
	Kind  Kind
	Step  int
	Phase Phase
}

// Range is the half-open block [S, T) of sorted rows prefixed (forward) or
// suffixed (reverse) by the matched part of the query.
type Range struct {
	S, T int
}

func (r Range) Len() int { return r.T - r.S }

type BiBWT struct {
	s, q []byte
	n    int
	// s2 is s repeated; reverse row j is the text ending at base+saR[j].
	s2        []byte
	base      int
	alph      []byte
	charCount []int
	charStart []int
	sa        []int
	saR       []int
	revRows   [][]byte
	occ       [][]int
	occR      [][]int
	fwd, rev  []Range
	states    []State
}

func reversed(b []byte) []byte {
	out := make([]byte, len(b))
	for i, c := range b {
		out[len(b)-1-i] = c
	}
	return out
}

// New prepares the visualization of text s (ending in a unique smallest
// sentinel) and query q.
func New(s, q []byte) *BiBWT {
	n, ql := len(s), len(q)
	v := &BiBWT{s: s, q: q, n: n}

	// Windows of the query length stay inside s2 on both sides of base.
	v.base = n * (2 + ql/n)
	v.s2 = bytes.Repeat(s, 4+ql/n)

	var counts [256]int
	for _, c := range s {
		counts[c]++
	}
	for c, cnt := range counts {
		if cnt == 0 {
			continue
		}
		v.alph = append(v.alph, byte(c))
		v.charCount = append(v.charCount, cnt)
	}
	start := 0
	for _, cnt := range v.charCount {
		v.charStart = append(v.charStart, start)
		start += cnt
	}

	v.sa = make([]int, n)
	for i := range v.sa {
		v.sa[i] = i
	}
	sort.Slice(v.sa, func(a, b int) bool {
		return bytes.Compare(s[v.sa[a]:], s[v.sa[b]:]) < 0
	})

	// Reverse rows are the texts ending at each position, read backwards.
	keys := make([][]byte, n+1)
	v.saR = make([]int, n)
	for i := range v.saR {
		v.saR[i] = i + 1
		end := v.base + i + 1
		keys[i+1] = reversed(v.s2[end-n-ql : end])
	}
	sort.Slice(v.saR, func(a, b int) bool {
		return bytes.Compare(keys[v.saR[a]], keys[v.saR[b]]) < 0
	})
	v.revRows = make([][]byte, n)
	for j, i := range v.saR {
		v.revRows[j] = keys[i]
	}

	v.occ = make([][]int, len(v.alph))
	v.occR = make([][]int, len(v.alph))
	for ci, c := range v.alph {
		row, rowR := make([]int, n+1), make([]int, n+1)
		for j := 0; j < n; j++ {
			row[j+1], rowR[j+1] = row[j], rowR[j]
			if v.last(j) == c {
				row[j+1]++
			}
			if v.lastR(j) == c {
				rowR[j+1]++
			}
		}
		v.occ[ci], v.occR[ci] = row, rowR
	}

	v.fwd = make([]Range, ql+1)
	v.rev = make([]Range, ql+1)
	for step := 0; step <= ql; step++ {
		lo, hi := v.window(step)
		v.fwd[step] = v.forwardRange(q[lo:hi])
		v.rev[step] = v.reverseRange(q[lo:hi])
	}

	v.states = []State{{Kind: KindInit}}
	for i := 0; i < 3; i++ {
		v.states = append(v.states, State{Kind: KindLeftSA, Step: i})
	}
	for i := 0; i < 3; i++ {
		v.states = append(v.states, State{Kind: KindRightSA, Step: i})
	}
	v.states = append(v.states,
		State{Kind: KindBothSA}, State{Kind: KindCounts},
		State{Kind: KindLeftOcc}, State{Kind: KindRightOcc})
	for i := range v.alph {
		v.states = append(v.states, State{Kind: KindEquivalence, Step: i})
	}
	v.states = append(v.states, State{Kind: KindPause})
	for i := 1; i < ql; i++ {
		for p := 0; p < numPhases; p++ {
			v.states = append(v.states, State{Kind: KindQuery, Step: i, Phase: Phase(p)})
		}
	}
	v.states = append(v.states, State{Kind: KindQuery, Step: ql, Phase: PhaseDone})

	return v
}

// window returns the part q[lo:hi] of the query matched after step
// extensions: leftwards from the middle first, then rightwards.
func (v *BiBWT) window(step int) (lo, hi int) {
	mid := (len(v.q) + 1) / 2
	if step <= mid {
		return mid - step, mid
	}
	return 0, step
}

func (v *BiBWT) extendsLeft(step int) bool {
	return step < (len(v.q)+1)/2
}

func (v *BiBWT) forwardRange(p []byte) Range {
	n := v.n
	b := n
	for j := 0; j < n; j++ {
		if bytes.Compare(p, v.s2[v.sa[j]:]) <= 0 {
			b = j
			break
		}
	}
	e := n
	for j := b; j < n; j++ {
		if !bytes.HasPrefix(v.s2[v.sa[j]:], p) {
			e = j
			break
		}
	}
	return Range{S: b, T: e}
}

func (v *BiBWT) reverseRange(p []byte) Range {
	n, rp := v.n, reversed(p)
	b := n
	for j := 0; j < n; j++ {
		if bytes.Compare(rp, v.revRows[j]) <= 0 {
			b = j
			break
		}
	}
	e := n
	for j := b; j < n; j++ {
		if !bytes.HasPrefix(v.revRows[j], rp) {
			e = j
			break
		}
	}
	return Range{S: b, T: e}
}

// last returns the character before forward row j.
func (v *BiBWT) last(j int) byte {
	return v.s2[v.sa[j]+v.n-1]
}

// revEnd is the exclusive end of reverse row j in s2.
func (v *BiBWT) revEnd(j int) int {
	return v.base + v.saR[j]
}

// lastR returns the character after reverse row j.
func (v *BiBWT) lastR(j int) byte {
	return v.s2[v.revEnd(j)]
}

func (v *BiBWT) alphIndex(c byte) int {
	return bytes.IndexByte(v.alph, c)
}

// half is the number of row characters drawn once both arrays are shown.
func (v *BiBWT) half() int {
	return max(v.n/2-1, 0)
}

func (v *BiBWT) Name() string { return "bibwt" }

func (v *BiBWT) CanvasSize() (int, int) { return v.n + 12 + 2*len(v.alph), v.n + 9 }

func (v *BiBWT) NumStates() int { return len(v.states) }

func (v *BiBWT) StateAt(i int) State { return v.states[i] }

// RangesAt returns the forward and reverse ranges after step extensions.
func (v *BiBWT) RangesAt(step int) (fwd, rev Range) {
	return v.fwd[step], v.rev[step]
}

type names struct {
	tag, long, suffix string
}

var (
	forwardNames = names{tag: "Fwd", long: "forward"}
	reverseNames = names{tag: "Rev", long: "reverse", suffix: "r"}
)

var (
	leftSATexts  = [...]string{"Forward suffix array", "Move last column before first", "Only show prefixes of the array"}
	rightSATexts = [...]string{"Reverse suffix array", "Move last column after first", "Only show suffixes of the array"}
)

func (v *BiBWT) Describe(state int) string {
	st := v.states[state]
	switch st.Kind {
	case KindInit:
		return "Input string S."
	case KindLeftSA:
		return leftSATexts[st.Step]
	case KindRightSA:
		return rightSATexts[st.Step]
	case KindBothSA:
		return "Forward & Reverse suffix array"
	case KindCounts:
		return "Count number of smaller characters for each c"
	case KindLeftOcc:
		return "Count occurrences for L"
	case KindRightOcc:
		return "Count occurrences for Lr"
	case KindEquivalence:
		return "Sets of chars before/after c are the same."
	case KindPause:
		return "Ready for querying"
	}
	return v.describeQuery(st)
}

func (v *BiBWT) describeQuery(st State) string {
	if st.Phase == PhaseDone {
		switch {
		case st.Step >= len(v.q):
			return fmt.Sprintf("Query %q occurs %d times.", v.q, v.fwd[st.Step].Len())
		case st.Step == 1:
			return "Start with the range of the middle character"
		default:
			return "Matching done"
		}
	}

	left := v.extendsLeft(st.Step)
	this, other := forwardNames, reverseNames
	if !left {
		this, other = other, this
	}
	switch st.Phase {
	case PhaseChar:
		if left {
			return "Extend query on the left"
		}
		return "Extend query on the right"
	case PhaseMatches:
		return "Matches for next char"
	case PhaseEquivalenceFirst:
		return fmt.Sprintf("%s: matches in L%s correspond to matches in F%s", this.tag, this.suffix, this.suffix)
	case PhaseCountFirst:
		return this.tag + ": positions of matches"
	case PhaseSmallerFirst:
		return this.tag + ": number of smaller chars"
	case PhaseExtendFirst:
		return this.tag + ": #smaller + match-positions"
	case PhaseWindowSecond:
		return other.tag + ": range shrinks; skip chars < c"
	case PhaseEquivalenceSecond:
		return fmt.Sprintf("%s: equal to #{<c} in %s range", other.tag, this.long)
	case PhaseCountSecond:
		return fmt.Sprintf("%s: char counts before/after %s range", other.tag, this.long)
	case PhaseComputeSecond:
		return fmt.Sprintf("%s: total count #{<c} in %s range", other.tag, this.long)
	case PhaseStartSecond:
		return "Add #{<c} to current start"
	default:
		return "Add #{≤c} to current start for the end"
	}
}

type layout struct {
	ps, plabel                            canvas.Pos
	psa, cj, ca, pfirst, plast, cst       canvas.Pos
	psaR, cjR, caR, pfirstR, plastR, cstR canvas.Pos
	pcnt, pcntR, rsigma, rsigmaR          canvas.Pos
	pocc, poccR                           canvas.Pos
	pq, pqR, pqs, pqsR, pqt, pqtR         canvas.Pos
}

func (v *BiBWT) layout() layout {
	var l layout
	n := v.n
	l.ps = canvas.Pos{X: 4, Y: 1}
	l.plabel = l.ps.Down(1).Right(2)

	l.psa = l.ps.Down(2)
	l.cj = l.psa.Left(4)
	l.ca = l.psa.Left(3)
	l.pfirst = l.psa
	l.plast = l.psa.Left(1)
	l.cst = l.plast.Left(1)

	l.psaR = l.psa.Right(n)
	l.cjR = l.psaR.Right(3)
	l.caR = l.psaR.Right(2)
	l.pfirstR = l.psaR.Left(1)
	l.plastR = l.psaR
	l.cstR = l.plastR.Right(1)

	l.pcnt = l.ps.Add(canvas.Pos{X: n + 6})
	l.pcntR = l.pcnt.Right(len(v.alph) + 1)
	l.rsigma = l.pcnt.Up(1)
	l.rsigmaR = l.pcntR.Up(1)
	l.pocc = l.pcnt.Down(2)
	l.poccR = l.pcntR.Down(2)

	l.pq = l.psa.Down(n + 2)
	l.pqR = l.psaR.Down(n + 2)
	l.pqs = l.pq.Down(1)
	l.pqsR = l.pqR.Down(1).Left(1)
	l.pqt = l.pq.Down(2)
	l.pqtR = l.pqR.Down(2).Left(1)
	return l
}

func (v *BiBWT) Draw(state int, c canvas.Canvas) bool {
	l := v.layout()
	canvas.DrawBackground(c)
	v.drawFrame(c, l, v.states[state])
	canvas.DrawText(c, l.plabel, v.Describe(state))
	return true
}

func (v *BiBWT) drawFrame(c canvas.Canvas, l layout, st State) {
	s := v.s
	canvas.DrawStringWithLabels(c, l.ps, s, func(i int) canvas.Color { return toColour(s[i] == '$') })
	if st.Kind == KindInit {
		return
	}

	if st.Kind != KindRightSA {
		v.drawForward(c, l, st)
		if st.Kind == KindLeftSA {
			return
		}
	}
	v.drawReverse(c, l, st)
	if st.Kind == KindRightSA || st.Kind == KindBothSA {
		return
	}

	if v.drawCounts(c, l, st) || v.drawOcc(c, l, st) {
		return
	}
	switch st.Kind {
	case KindEquivalence:
		v.drawEquivalence(c, l, st.Step)
	case KindQuery:
		v.drawQuery(c, l, st)
	}
}

func (v *BiBWT) drawForward(c canvas.Canvas, l layout, st State) {
	n := v.n
	canvas.DrawLabel(c, l.cj.Up(1), "j")
	canvas.DrawLabel(c, l.ca.Up(1), "A")
	canvas.DrawLabel(c, l.pfirst.Up(1), "F")

	w := v.half()
	if st.Kind == KindLeftSA && st.Step < 2 {
		w = n
		canvas.DrawLabel(c, l.plast.Right(n).Up(1), "L")
	}
	for j, i := range v.sa {
		canvas.DrawLabel(c, l.cj.Down(j), strconv.Itoa(j))
		canvas.DrawLabel(c, l.ca.Down(j), strconv.Itoa(i))
		canvas.DrawString(c, l.psa.Down(j), v.s2[i:i+w], func(k int) canvas.Color {
			return toColour(k == 0 || k == n-1)
		})
	}
	if st.Kind == KindLeftSA && st.Step == 0 {
		return
	}

	canvas.DrawLabel(c, l.plast.Up(1), "L")
	for j := range v.sa {
		canvas.DrawCharBox(c, l.plast.Down(j), v.last(j), softColour)
	}
}

func (v *BiBWT) drawReverse(c canvas.Canvas, l layout, st State) {
	n := v.n
	canvas.DrawLabel(c, l.cjR.Up(1), "j")
	canvas.DrawLabel(c, l.caR.Up(1), "Ar")
	canvas.DrawLabel(c, l.pfirstR.Up(1), "Fr")

	w := v.half()
	if st.Kind == KindRightSA && st.Step < 2 {
		w = n
		canvas.DrawLabel(c, l.plastR.Left(n).Up(1), "Lr")
	}
	for j, i := range v.saR {
		end := v.revEnd(j)
		canvas.DrawLabel(c, l.cjR.Down(j), strconv.Itoa(j))
		canvas.DrawLabel(c, l.caR.Down(j), strconv.Itoa(i))
		canvas.DrawString(c, l.psaR.Down(j).Left(w), v.s2[end-w:end], func(k int) canvas.Color {
			return toColour(w-1-k == 0 || w-1-k == n-1)
		})
	}
	if st.Kind == KindRightSA && st.Step == 0 {
		return
	}

	canvas.DrawLabel(c, l.plastR.Up(1), "Lr")
	for j := range v.saR {
		canvas.DrawCharBox(c, l.plastR.Down(j), v.lastR(j), softColour)
	}
}

// drawCounts draws the C array next to both first columns and reports
// whether the frame ends there.
func (v *BiBWT) drawCounts(c canvas.Canvas, l layout, st State) bool {
	n := v.n
	canvas.DrawLabel(c, l.rsigma.Left(1), "σ")
	canvas.DrawLabel(c, l.pcnt.Left(1), "C")

	for i, ch := range v.alph {
		start := v.charStart[i]
		canvas.DrawLabel(c, l.rsigma.Right(i), string([]byte{ch}))
		canvas.DrawLabel(c, l.pcnt.Right(i), strconv.Itoa(start))
		canvas.DrawHighlightBox(c, l.pfirst.Down(start), 1, 0, canvas.Red)
		canvas.DrawHighlightBox(c, l.pfirstR.Down(start), 1, 0, canvas.Red)
	}
	canvas.DrawHighlightBox(c, l.pfirst.Down(n), 1, 0, canvas.Red)
	canvas.DrawHighlightBox(c, l.pfirstR.Down(n), 1, 0, canvas.Red)

	// The reverse side gets its own copy once its Occ table is shown.
	if st.Kind >= KindRightOcc {
		for i, ch := range v.alph {
			canvas.DrawLabel(c, l.rsigmaR.Right(i), string([]byte{ch}))
			canvas.DrawLabel(c, l.pcntR.Right(i), strconv.Itoa(v.charStart[i]))
		}
	}

	if st.Kind != KindCounts {
		return false
	}
	canvas.DrawHighlightBox(c, l.pfirst, 1, n, canvas.Red)
	canvas.DrawHighlightBox(c, l.pfirstR, 1, n, canvas.Red)
	canvas.DrawHighlightBox(c, l.rsigma, len(v.alph), 2, canvas.Red)
	return true
}

func (v *BiBWT) drawOcc(c canvas.Canvas, l layout, st State) bool {
	n := v.n
	canvas.DrawLabel(c, l.pocc.Left(1).Up(1), "Occ")
	for i := range v.alph {
		for j := 0; j <= n; j++ {
			canvas.DrawLabel(c, l.pocc.Right(i).Down(j), strconv.Itoa(v.occ[i][j]))
		}
	}
	if st.Kind == KindLeftOcc {
		canvas.DrawHighlightBox(c, l.pocc, len(v.alph), n+1, canvas.Blue)
		canvas.DrawHighlightBox(c, l.plast, 1, n, canvas.Blue)
		return true
	}

	canvas.DrawLabel(c, l.poccR.Left(1).Up(1), "Occr")
	for i := range v.alph {
		for j := 0; j <= n; j++ {
			canvas.DrawLabel(c, l.poccR.Right(i).Down(j), strconv.Itoa(v.occR[i][j]))
		}
	}
	if st.Kind == KindRightOcc {
		canvas.DrawHighlightBox(c, l.poccR, len(v.alph), n+1, canvas.Blue)
		canvas.DrawHighlightBox(c, l.plastR, 1, n, canvas.Blue)
		return true
	}
	return false
}

// drawEquivalence marks the rows starting with character ci in both
// indexes: their L column holds the same characters as the other index's
// F column.
func (v *BiBWT) drawEquivalence(c canvas.Canvas, l layout, ci int) {
	start, cnt := v.charStart[ci], v.charCount[ci]
	canvas.DrawHighlightBox(c, l.plast.Down(start), 1, cnt, canvas.Red)
	canvas.DrawHighlightBox(c, l.pfirstR.Left(1).Down(start), 1, cnt, canvas.Red)
	canvas.DrawHighlightBox(c, l.plastR.Down(start), 1, cnt, canvas.Blue)
	canvas.DrawHighlightBox(c, l.pfirst.Right(1).Down(start), 1, cnt, canvas.Blue)
}

// side is one index as seen from a query extension.
type side struct {
	names
	r             Range
	occ           [][]int
	pfirst, plast canvas.Pos
	pocc, rsigma  canvas.Pos
	pnext, cnext  canvas.Pos
	pqs, pqt      canvas.Pos
}

// within counts character k in the L column of the side's range.
func (s side) within(k int) int {
	return s.occ[k][s.r.T] - s.occ[k][s.r.S]
}

func (v *BiBWT) drawQuery(c canvas.Canvas, l layout, st State) {
	q, n, step := v.q, v.n, st.Step
	lo, hi := v.window(step)
	done := q[lo:hi]
	fwd, rev := v.fwd[step], v.rev[step]

	if l.pq.X >= lo+1 {
		canvas.DrawLabel(c, l.pq.Left(max(2, lo+1)), "Q")
	}
	canvas.DrawString(c, l.pq.Left(lo), q, func(int) canvas.Color { return largeColour })
	canvas.DrawString(c, l.pqR.Left(hi), q, func(int) canvas.Color { return largeColour })

	canvas.DrawLabel(c, l.pqs.Left(2), "s")
	canvas.DrawLabel(c, l.pqt.Left(2), "t")
	canvas.DrawLabel(c, l.pqsR.Right(2), "sr")
	canvas.DrawLabel(c, l.pqtR.Right(2), "tr")
	canvas.DrawLabel(c, l.pqs, strconv.Itoa(fwd.S))
	canvas.DrawLabel(c, l.pqt, strconv.Itoa(fwd.T))
	canvas.DrawLabel(c, l.pqsR, strconv.Itoa(rev.S))
	canvas.DrawLabel(c, l.pqtR, strconv.Itoa(rev.T))

	if fwd.Len() > 0 {
		canvas.DrawLabel(c, l.cst.Down(fwd.S), "s")
		canvas.DrawLabel(c, l.cst.Down(fwd.T), "t")
		canvas.DrawLabel(c, l.cstR.Down(rev.S), "sr")
		canvas.DrawLabel(c, l.cstR.Down(rev.T), "tr")
	} else {
		canvas.DrawLabel(c, l.cst.Down(fwd.S), "s/t")
		canvas.DrawLabel(c, l.cstR.Down(rev.S), "sr/tr")
	}

	cyan := func(int) canvas.Color { return canvas.Cyan }
	canvas.DrawString(c, l.pq, done, cyan)
	canvas.DrawString(c, l.pqR.Left(len(done)), done, cyan)
	for j := fwd.S; j < fwd.T; j++ {
		i := v.sa[j]
		canvas.DrawString(c, l.psa.Down(j), v.s2[i:i+step], cyan)
	}
	for j := rev.S; j < rev.T; j++ {
		end := v.revEnd(j)
		canvas.DrawString(c, l.psaR.Left(step).Down(j), v.s2[end-step:end], cyan)
	}

	canvas.DrawHighlightBox(c, l.plast.Down(fwd.S), n/2, 0, canvas.Black)
	canvas.DrawHighlightBox(c, l.plast.Down(fwd.T), n/2, 0, canvas.Black)
	canvas.DrawHighlightBox(c, l.plastR.Down(rev.S).Left(v.half()), n/2, 0, canvas.Black)
	canvas.DrawHighlightBox(c, l.plastR.Down(rev.T).Left(v.half()), n/2, 0, canvas.Black)
	canvas.DrawHighlightBox(c, l.pqs, 1, 2, canvas.Black)
	canvas.DrawHighlightBox(c, l.pqsR, 1, 2, canvas.Black)

	if st.Phase == PhaseDone {
		return
	}

	left := v.extendsLeft(step)
	idx := step
	if left {
		idx = lo - 1
	}
	next := q[idx]
	pnext := l.pq.Left(lo).Right(idx)
	pnextR := l.pqR.Left(hi).Right(idx)

	canvas.DrawLabel(c, pnext.Up(1), "c")
	canvas.DrawCharBox(c, pnext, next, nextColour)
	canvas.DrawLabel(c, pnextR.Up(1), "c")
	canvas.DrawCharBox(c, pnextR, next, nextColour)
	ci := v.alphIndex(next)
	if st.Phase == PhaseChar || ci < 0 {
		return
	}

	for j := fwd.S; j < fwd.T; j++ {
		if v.s2[v.sa[j]+n+idx-lo] == next {
			canvas.DrawCharBox(c, l.psa.Down(j).Right(idx-lo), next, nextColour)
		}
	}
	for j := rev.S; j < rev.T; j++ {
		if v.s2[v.revEnd(j)+idx-hi] == next {
			canvas.DrawCharBox(c, l.psaR.Down(j).Right(idx-hi), next, nextColour)
		}
	}
	if st.Phase == PhaseMatches {
		return
	}

	forward := side{
		names: forwardNames, r: fwd, occ: v.occ,
		pfirst: l.pfirst, plast: l.plast, pocc: l.pocc, rsigma: l.rsigma,
		pnext: pnext, cnext: l.psa.Left(lo).Right(idx), pqs: l.pqs, pqt: l.pqt,
	}
	reverse := side{
		names: reverseNames, r: rev, occ: v.occR,
		pfirst: l.pfirstR, plast: l.plastR, pocc: l.poccR, rsigma: l.rsigmaR,
		pnext: pnextR, cnext: l.psaR.Left(hi).Right(idx), pqs: l.pqsR, pqt: l.pqtR,
	}
	if left {
		v.drawExtension(c, st.Phase, forward, reverse, ci)
	} else {
		v.drawExtension(c, st.Phase, reverse, forward, ci)
	}
}

// drawExtension draws the phases after the matches: a backward search step
// on this side's index, then the move of the other side's range.
func (v *BiBWT) drawExtension(c canvas.Canvas, phase Phase, this, other side, ci int) {
	n, next := v.n, v.alph[ci]
	ss := v.charStart[ci] + this.occ[ci][this.r.S]
	tt := v.charStart[ci] + this.occ[ci][this.r.T]

	canvas.DrawHighlightBox(c, this.plast.Down(this.r.S), 1, this.r.Len(), canvas.Blue)
	for j := ss; j < tt; j++ {
		canvas.DrawCharBox(c, this.pfirst.Down(j), next, nextColour)
	}
	if phase == PhaseEquivalenceFirst {
		return
	}

	canvas.DrawHighlight(c, this.pocc.Right(ci).Down(this.r.S), canvas.Blue)
	canvas.DrawHighlight(c, this.pocc.Right(ci).Down(this.r.T), canvas.Blue)
	if phase == PhaseCountFirst {
		return
	}

	canvas.DrawHighlightBox(c, this.rsigma.Right(ci), 1, 2, canvas.Blue)
	canvas.DrawLabel(c, this.rsigma.Right(ci).Down(2), "+")
	if phase == PhaseSmallerFirst {
		return
	}

	canvas.DrawLabel(c, this.pnext.Down(1), strconv.Itoa(ss))
	canvas.DrawLabel(c, this.pnext.Down(2), strconv.Itoa(tt))
	canvas.DrawHighlightBox(c, this.pnext.Down(1), 1, 2, canvas.Blue)
	canvas.DrawHighlightBox(c, this.pfirst.Down(ss), 1, tt-ss, canvas.Blue)
	if phase == PhaseExtendFirst {
		return
	}

	less := 0
	for k := 0; k < ci; k++ {
		less += this.within(k)
	}
	canvas.DrawHighlightBox(c, other.cnext.Down(other.r.S), 1, less, canvas.Red)
	if phase == PhaseWindowSecond {
		return
	}

	canvas.DrawHighlightBox(c, this.plast.Down(this.r.S), 1, this.r.Len(), canvas.Red)
	if phase == PhaseEquivalenceSecond {
		return
	}

	canvas.DrawHighlightBox(c, this.rsigma, ci, 1, canvas.Red)
	canvas.DrawHighlightBox(c, this.pocc.Down(this.r.S), ci, 1, canvas.Red)
	canvas.DrawHighlightBox(c, this.pocc.Down(this.r.T), ci, 1, canvas.Red)
	if phase == PhaseCountSecond {
		return
	}

	row := this.pocc.Down(n + 3)
	for k := 0; k < ci; k++ {
		canvas.DrawLabel(c, row.Right(k), strconv.Itoa(this.within(k)))
	}
	canvas.DrawLabel(c, row.Left(1), strconv.Itoa(less))
	canvas.DrawHighlight(c, row.Left(1), canvas.Red)
	if phase == PhaseComputeSecond {
		return
	}

	canvas.DrawHighlight(c, other.pqs, canvas.Red)
	canvas.DrawLabel(c, other.pnext.Down(1), strconv.Itoa(other.r.S+less))
	canvas.DrawHighlight(c, other.pnext.Down(1), canvas.Red)
	if phase == PhaseStartSecond {
		return
	}

	row = this.pocc.Down(n + 4)
	lessEq := 0
	for k := 0; k <= ci; k++ {
		d := this.within(k)
		lessEq += d
		canvas.DrawLabel(c, row.Right(k), strconv.Itoa(d))
	}
	canvas.DrawLabel(c, row.Left(1), strconv.Itoa(lessEq))
	canvas.DrawHighlight(c, row.Left(1), canvas.Red)
	canvas.DrawHighlight(c, other.pqt, canvas.Red)
	canvas.DrawLabel(c, other.pnext.Down(2), strconv.Itoa(other.r.S+lessEq))
	canvas.DrawHighlight(c, other.pnext.Down(2), canvas.Red)
}

// Series reports the size of the search range after each extension.
func (v *BiBWT) Series() (string, []float64) {
	out := make([]float64, len(v.fwd))
	for i, r := range v.fwd {
		out[i] = float64(r.Len())
	}
	return "query range size", out
}
