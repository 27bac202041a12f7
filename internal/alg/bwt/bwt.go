// Package bwt visualizes the Burrows-Wheeler transform of a text and the
// FM-index backward search of a query in it.
package bwt

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
	KindRotations
	KindSortedRotations
	KindFirstLast
	// One state per occurrence of the most frequent character.
	KindLfMap
	// One state per character of the alphabet.
	KindCounts
	KindCountsDone
	KindOcc
	KindOccDone
	// One state per processed query character, plus the initial range.
	KindQuery
)

type State struct {
	Kind Kind
	Step int
}

// Range is the half-open block [S, T) of sorted rotations prefixed by a
// query suffix.
type Range struct {
	S, T int
}

func (r Range) Len() int { return r.T - r.S }

type BWT struct {
	s, q      []byte
	n         int
	s2        []byte
	alph      []byte
	charCount []int
	charStart []int
	sa        []int
	occ       [][]int
	ranges    []Range
	states    []State
}

// New prepares the visualization of text s (ending in a unique smallest
// sentinel) and query q.
func New(s, q []byte) *BWT {
	n := len(s)
	v := &BWT{s: s, q: q, n: n}

	v.s2 = make([]byte, 0, 2*n)
	v.s2 = append(v.s2, s...)
	v.s2 = append(v.s2, s...)

	var counts [256]int
	for _, c := range s {
		counts[c]++
	}
	maxCount := 0
	for c, cnt := range counts {
		if cnt == 0 {
			continue
		}
		v.alph = append(v.alph, byte(c))
		v.charCount = append(v.charCount, cnt)
		maxCount = max(maxCount, cnt)
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

	v.occ = make([][]int, len(v.alph))
	for ci, c := range v.alph {
		row := make([]int, n+1)
		for j := 0; j < n; j++ {
			row[j+1] = row[j]
			if v.last(j) == c {
				row[j+1]++
			}
		}
		v.occ[ci] = row
	}

	ql := len(q)
	v.ranges = make([]Range, ql+1)
	for step := 0; step <= ql; step++ {
		suffix := q[ql-step:]
		b := n
		for j := 0; j < n; j++ {
			if bytes.Compare(suffix, v.s2[v.sa[j]:]) <= 0 {
				b = j
				break
			}
		}
		e := n
		for j := b; j < n; j++ {
			if !bytes.Equal(suffix, v.window(j, step)) {
				e = j
				break
			}
		}
		v.ranges[step] = Range{S: b, T: e}
	}

	v.states = []State{{Kind: KindInit}, {Kind: KindRotations}, {Kind: KindSortedRotations}, {Kind: KindFirstLast}}
	for i := 0; i < maxCount; i++ {
		v.states = append(v.states, State{Kind: KindLfMap, Step: i})
	}
	for i := range v.alph {
		v.states = append(v.states, State{Kind: KindCounts, Step: i})
	}
	v.states = append(v.states, State{Kind: KindCountsDone})
	for i := range v.alph {
		v.states = append(v.states, State{Kind: KindOcc, Step: i})
	}
	v.states = append(v.states, State{Kind: KindOccDone})
	for i := 0; i <= ql; i++ {
		v.states = append(v.states, State{Kind: KindQuery, Step: i})
	}

	return v
}

// last returns the character of the last column in sorted row j.
func (v *BWT) last(j int) byte {
	return v.s2[v.sa[j]+v.n-1]
}

// window returns the first l characters of sorted rotation j.
func (v *BWT) window(j, l int) []byte {
	from := v.sa[j]
	return v.s2[from:min(from+l, len(v.s2))]
}

func (v *BWT) rotation(j int) []byte {
	return v.s2[j : j+v.n]
}

func (v *BWT) alphIndex(c byte) int {
	return bytes.IndexByte(v.alph, c)
}

func (v *BWT) Name() string { return "bwt" }

func (v *BWT) CanvasSize() (int, int) { return v.n + 7 + len(v.alph), v.n + 8 }

func (v *BWT) NumStates() int { return len(v.states) }

func (v *BWT) StateAt(i int) State { return v.states[i] }

// Transform returns the last column of the sorted rotations.
func (v *BWT) Transform() []byte {
	out := make([]byte, v.n)
	for j := range out {
		out[j] = v.last(j)
	}
	return out
}

// RangeAt returns the search range after step query characters.
func (v *BWT) RangeAt(step int) Range { return v.ranges[step] }

// Occ returns the number of c in the last column above row j.
func (v *BWT) Occ(c byte, j int) int {
	ci := v.alphIndex(c)
	if ci < 0 {
		return 0
	}
	return v.occ[ci][j]
}

// C returns the number of characters in the text smaller than c.
func (v *BWT) C(c byte) int {
	ci := v.alphIndex(c)
	if ci < 0 {
		return 0
	}
	return v.charStart[ci]
}

func (v *BWT) Describe(state int) string {
	st := v.states[state]
	switch st.Kind {
	case KindInit:
		return "Input string S."
	case KindRotations:
		return "Write down rotations of S."
	case KindSortedRotations:
		return "Sort rotations via the suffix array of S."
	case KindFirstLast:
		return "Store the first and last column."
	case KindLfMap:
		return "For each char, L and F are sorted the same."
	case KindCounts, KindCountsDone:
		return "Count number of smaller characters for each c."
	case KindOcc, KindOccDone:
		return "Count number of occurrences of c in L at pos < j."
	}
	switch {
	case st.Step >= len(v.q):
		return fmt.Sprintf("Query %q occurs %d times.", v.q, v.ranges[st.Step].Len())
	case st.Step == 0:
		return "Initialize the query range as the full text."
	default:
		return "Update s[i-1] = C[c] + Occ[c][s[i]]."
	}
}

// layout holds the cell positions shared by every frame.
type layout struct {
	ps, plabel       canvas.Pos
	psa, cj, ca, cst canvas.Pos
	pfirst, plast    canvas.Pos
	pcnt, rsigma     canvas.Pos
	pocc             canvas.Pos
	pq, pqs, pqt     canvas.Pos
	pqend            canvas.Pos
}

func (v *BWT) layout() layout {
	var l layout
	l.ps = canvas.Pos{X: 3, Y: 1}
	l.plabel = l.ps.Down(1).Right(2)
	l.psa = l.ps.Down(2)
	l.cj = l.psa.Left(3)
	l.ca = l.psa.Left(2)
	l.cst = l.psa.Left(1)
	l.pfirst = l.psa
	l.plast = l.psa.Right(v.n - 1)
	l.pcnt = l.ps.Add(canvas.Pos{X: v.n + 2})
	l.rsigma = l.pcnt.Up(1)
	l.pocc = l.pcnt.Down(2)
	l.pq = l.psa.Down(v.n + 1)
	l.pqs = l.pq.Down(1)
	l.pqt = l.pq.Down(2)
	l.pqend = l.pq.Right(v.n)
	return l
}

func (v *BWT) Draw(state int, c canvas.Canvas) bool {
	st := v.states[state]
	s, n := v.s, v.n
	l := v.layout()
	canvas.DrawBackground(c)

	canvas.DrawStringWithLabels(c, l.ps, s, func(i int) canvas.Color { return toColour(s[i] == '$') })
	if st.Kind == KindInit {
		canvas.DrawText(c, l.plabel, v.Describe(state))
		return true
	}

	canvas.DrawLabel(c, l.cj.Up(1), "j")
	canvas.DrawLabel(c, l.ca.Up(1), "A")

	switch st.Kind {
	case KindRotations:
		for j := 0; j < n; j++ {
			rot := v.rotation(j)
			canvas.DrawLabel(c, l.cj.Down(j), strconv.Itoa(j))
			canvas.DrawString(c, l.psa.Down(j), rot, func(k int) canvas.Color { return toColour(rot[k] == '$') })
		}
		canvas.DrawText(c, l.plabel, v.Describe(state))
		return true
	case KindSortedRotations:
		for j := 0; j < n; j++ {
			rot := v.rotation(v.sa[j])
			canvas.DrawLabel(c, l.cj.Down(j), strconv.Itoa(j))
			canvas.DrawLabel(c, l.ca.Down(j), strconv.Itoa(v.sa[j]))
			canvas.DrawString(c, l.psa.Down(j), rot, func(k int) canvas.Color { return toColour(rot[k] == '$') })
		}
		canvas.DrawText(c, l.plabel, v.Describe(state))
		return true
	}

	canvas.DrawLabel(c, l.pfirst.Up(1), "F")
	canvas.DrawLabel(c, l.plast.Up(1), "L")
	for j := 0; j < n; j++ {
		canvas.DrawLabel(c, l.cj.Down(j), strconv.Itoa(j))
		canvas.DrawLabel(c, l.ca.Down(j), strconv.Itoa(v.sa[j]))
		canvas.DrawString(c, l.psa.Down(j), v.rotation(v.sa[j]), func(k int) canvas.Color {
			return toColour(k == 0 || k == n-1)
		})
	}

	switch st.Kind {
	case KindFirstLast:
		canvas.DrawText(c, l.plabel, v.Describe(state))
		return true
	case KindLfMap:
		v.drawLfMap(c, l, st.Step)
		canvas.DrawText(c, l.plabel, v.Describe(state))
		return true
	}

	if v.drawCounts(c, l, st) {
		canvas.DrawText(c, l.plabel, v.Describe(state))
		return true
	}
	if v.drawOcc(c, l, st) {
		canvas.DrawText(c, l.plabel, v.Describe(state))
		return true
	}

	v.drawQuery(c, l, st.Step)
	canvas.DrawText(c, l.plabel, v.Describe(state))
	return true
}

func (v *BWT) drawLfMap(c canvas.Canvas, l layout, k int) {
	// Ties go to the larger character.
	ci := 0
	for i, cnt := range v.charCount {
		if cnt >= v.charCount[ci] {
			ci = i
		}
	}
	cnt, start := v.charCount[ci], v.charStart[ci]

	canvas.DrawHighlightBox(c, l.psa.Down(start), 2, cnt, canvas.Red)
	for i := 0; i <= k && i < cnt; i++ {
		row := start + i
		idx := v.sa[row]
		next := (idx + 1) % v.n
		shift := 0
		for j, x := range v.sa {
			if x == next {
				shift = j
				break
			}
		}

		canvas.DrawHighlight(c, l.psa.Down(row), canvas.Black)
		canvas.DrawHighlight(c, l.plast.Down(shift), canvas.Black)
		if i != k {
			continue
		}
		canvas.DrawHighlight(c, l.psa.Down(row).Right(1), canvas.Blue)
		canvas.DrawHighlight(c, l.ca.Down(row), canvas.Blue)
		canvas.DrawHighlight(c, l.psa.Down(shift), canvas.Blue)
		canvas.DrawHighlight(c, l.ca.Down(shift), canvas.Blue)
		canvas.DrawHighlight(c, l.ps.Right(idx), canvas.Black)
		canvas.DrawHighlight(c, l.ps.Right(next), canvas.Blue)
	}
}

// drawCounts draws the C array up to the current character and reports
// whether the frame ends there.
func (v *BWT) drawCounts(c canvas.Canvas, l layout, st State) bool {
	canvas.DrawLabel(c, l.rsigma.Left(1), "σ")
	canvas.DrawLabel(c, l.pcnt.Left(1), "C")

	k, active := len(v.alph), false
	switch st.Kind {
	case KindCounts:
		k, active = st.Step, true
	case KindCountsDone:
		active = true
	}

	for i, ch := range v.alph {
		if i > k {
			break
		}
		count := v.charStart[i]
		canvas.DrawLabel(c, l.rsigma.Right(i), string([]byte{ch}))
		canvas.DrawLabel(c, l.pcnt.Right(i), strconv.Itoa(count))
		if k < len(v.alph) && i == k {
			canvas.DrawHighlight(c, l.cj.Down(count), canvas.Red)
			canvas.DrawHighlight(c, l.psa.Down(count), canvas.Red)
		}
		canvas.DrawHighlightBox(c, l.psa.Down(count), 1, 0, canvas.Red)
	}
	if k == len(v.alph) {
		canvas.DrawHighlightBox(c, l.pfirst.Down(v.n), 1, 0, canvas.Red)
	}
	if st.Kind == KindCounts {
		canvas.DrawHighlightBox(c, l.rsigma.Right(k), 1, 2, canvas.Red)
	}
	return active
}

func (v *BWT) drawOcc(c canvas.Canvas, l layout, st State) bool {
	canvas.DrawLabel(c, l.pocc.Left(1).Up(1), "Occ")

	k, active := len(v.alph), false
	switch st.Kind {
	case KindOcc:
		k, active = st.Step, true
	case KindOccDone:
		active = true
	}

	for i, ch := range v.alph {
		if i > k {
			break
		}
		current := k < len(v.alph) && i == k
		if current {
			canvas.DrawHighlight(c, l.rsigma.Right(k), canvas.Blue)
		}
		for j := 0; j <= v.n; j++ {
			canvas.DrawLabel(c, l.pocc.Right(i).Down(j), strconv.Itoa(v.occ[i][j]))
			if current && j < v.n && v.last(j) == ch {
				canvas.DrawHighlight(c, l.plast.Down(j), canvas.Blue)
				canvas.DrawHighlight(c, l.pocc.Right(k).Down(j+1), canvas.Blue)
			}
		}
	}
	return active
}

func (v *BWT) drawQuery(c canvas.Canvas, l layout, step int) {
	q, ql, n := v.q, len(v.q), v.n
	done, remaining := q[ql-step:], q[:ql-step]

	canvas.DrawLabel(c, l.pq.Left(1), "Q")
	canvas.DrawString(c, l.pq, done, func(i int) canvas.Color { return toColour(i == 0) })
	canvas.DrawString(c, l.pqend.Left(len(remaining)), remaining, func(int) canvas.Color { return largeColour })

	r := v.ranges[step]
	canvas.DrawLabel(c, l.pqs.Left(1), "s")
	canvas.DrawLabel(c, l.pqt.Left(1), "t")
	for k := 0; k <= step; k++ {
		canvas.DrawLabel(c, l.pqs.Right(k), strconv.Itoa(v.ranges[step-k].S))
		canvas.DrawLabel(c, l.pqt.Right(k), strconv.Itoa(v.ranges[step-k].T))
	}

	for j := r.S; j < r.T; j++ {
		canvas.DrawString(c, l.psa.Down(j), v.window(j, step), func(int) canvas.Color { return canvas.Cyan })
	}

	if r.S < r.T {
		canvas.DrawLabel(c, l.cst.Down(r.S), "s")
		canvas.DrawLabel(c, l.cst.Down(r.T), "t")
		canvas.DrawHighlightBox(c, l.psa.Down(r.S), n, r.Len(), canvas.Black)
	} else {
		canvas.DrawLabel(c, l.cst.Down(r.S), "s/t")
		canvas.DrawHighlightBox(c, l.psa.Down(r.S), n, 0, canvas.Red)
	}
	canvas.DrawHighlightBox(c, l.pqs, 1, 2, canvas.Black)

	if step >= ql {
		return
	}

	// The next query character to prepend.
	ch := q[ql-1-step]
	canvas.DrawLabel(c, l.pqend.Left(1).Up(1), "c")
	canvas.DrawHighlight(c, l.pqend.Left(1), canvas.Blue)
	ci := v.alphIndex(ch)
	if ci < 0 {
		return
	}
	canvas.DrawHighlightBox(c, l.rsigma.Right(ci), 1, 2, canvas.Blue)
	canvas.DrawLabel(c, l.rsigma.Right(ci).Down(2), "+")
	if r.S < r.T {
		canvas.DrawHighlightBox(c, l.plast.Down(r.S), 1, r.Len(), canvas.Blue)
	}
	canvas.DrawHighlight(c, l.pocc.Right(ci).Down(r.S), canvas.Blue)
	canvas.DrawHighlight(c, l.pocc.Right(ci).Down(r.T), canvas.Blue)
}

// Series reports the size of the search range after each query character.
func (v *BWT) Series() (string, []float64) {
	out := make([]float64, len(v.ranges))
	for i, r := range v.ranges {
		out[i] = float64(r.Len())
	}
	return "query range size", out
}
