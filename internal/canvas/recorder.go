package canvas

// OpKind names a recorded drawing operation.
type OpKind int

const (
	OpBackground OpKind = iota
	OpFillRect
	OpDrawRect
	OpText
)

// Op is one recorded call.
type Op struct {
	Kind       OpKind
	X, Y, W, H int
	Color      Color
	HAlign     HAlign
	VAlign     VAlign
	Text       string
}

// Recorder is a Canvas that keeps every call. Used by tests and by backends
// that need a frame before they can size their output.
type Recorder struct {
	Ops []Op
}

func NewRecorder() *Recorder {
	return &Recorder{}
}

func (r *Recorder) FillBackground(c Color) {
	r.Ops = append(r.Ops[:0], Op{Kind: OpBackground, Color: c})
}

func (r *Recorder) FillRect(x, y, w, h int, c Color) {
	r.Ops = append(r.Ops, Op{Kind: OpFillRect, X: x, Y: y, W: w, H: h, Color: c})
}

func (r *Recorder) DrawRect(x, y, w, h int, c Color) {
	r.Ops = append(r.Ops, Op{Kind: OpDrawRect, X: x, Y: y, W: w, H: h, Color: c})
}

func (r *Recorder) WriteText(x, y int, ha HAlign, va VAlign, text string) {
	r.Ops = append(r.Ops, Op{Kind: OpText, X: x, Y: y, HAlign: ha, VAlign: va, Text: text})
}

// Texts returns the text of every OpText in call order.
func (r *Recorder) Texts() []string {
	var out []string
	for _, op := range r.Ops {
		if op.Kind == OpText {
			out = append(out, op.Text)
		}
	}
	return out
}

// Count returns how many ops of kind k with colour c were recorded.
func (r *Recorder) Count(k OpKind, c Color) int {
	n := 0
	for _, op := range r.Ops {
		if op.Kind == k && op.Color == c {
			n++
		}
	}
	return n
}

// Replay sends every recorded op to dst.
func (r *Recorder) Replay(dst Canvas) {
	for _, op := range r.Ops {
		switch op.Kind {
		case OpBackground:
			dst.FillBackground(op.Color)
		case OpFillRect:
			dst.FillRect(op.X, op.Y, op.W, op.H, op.Color)
		case OpDrawRect:
			dst.DrawRect(op.X, op.Y, op.W, op.H, op.Color)
		case OpText:
			dst.WriteText(op.X, op.Y, op.HAlign, op.VAlign, op.Text)
		}
	}
}
