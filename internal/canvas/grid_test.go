package canvas

import "testing"

func TestPosOffsets(t *testing.T) {
	p := Pos{3, 3}
	if got := p.Left(2).Up(1); got != (Pos{1, 2}) {
		t.Errorf("expected {1 2}, got %v", got)
	}
	if got := p.Right(4).Down(5); got != (Pos{7, 8}) {
		t.Errorf("expected {7 8}, got %v", got)
	}
	if got := p.Add(Pos{1, 1}); got != (Pos{4, 4}) {
		t.Errorf("expected {4 4}, got %v", got)
	}
}

func TestDrawCharBox(t *testing.T) {
	r := NewRecorder()
	DrawCharBox(r, Pos{2, 1}, 'A', Green)

	if len(r.Ops) != 3 {
		t.Fatalf("expected 3 ops, got %d", len(r.Ops))
	}
	fill := r.Ops[0]
	if fill.Kind != OpFillRect || fill.X != 60 || fill.Y != 30 || fill.W != CellSize {
		t.Errorf("unexpected fill op %+v", fill)
	}
	if r.Ops[2].Text != "A" || r.Ops[2].X != 75 || r.Ops[2].Y != 45 {
		t.Errorf("unexpected text op %+v", r.Ops[2])
	}
}

func TestDrawHighlightBoxShapes(t *testing.T) {
	tests := []struct {
		name string
		w, h int
		ops  int
	}{
		{"box", 2, 3, 3},
		{"vertical rule", 0, 4, 3},
		{"horizontal rule", 5, 0, 3},
	}

	for _, tt := range tests {
		r := NewRecorder()
		DrawHighlightBox(r, Pos{1, 1}, tt.w, tt.h, Red)
		if got := r.Count(OpDrawRect, Red); got != tt.ops {
			t.Errorf("%s: expected %d rects, got %d", tt.name, tt.ops, got)
		}
	}

	r := NewRecorder()
	DrawHighlightBox(r, Pos{1, 1}, 0, 2, Red)
	last := r.Ops[len(r.Ops)-1]
	if last.X != 28 || last.W != 4 || last.H != 60 {
		t.Errorf("unexpected rule geometry %+v", last)
	}
}

func TestDrawStringWithLabels(t *testing.T) {
	r := NewRecorder()
	DrawStringWithLabels(r, Pos{3, 1}, []byte("ab$"), func(int) Color { return White })

	texts := r.Texts()
	want := []string{"i", "0", "1", "2", "S", "a", "b", "$"}
	if len(texts) != len(want) {
		t.Fatalf("expected %d texts, got %v", len(want), texts)
	}
	for i := range want {
		if texts[i] != want[i] {
			t.Errorf("text %d: expected %q, got %q", i, want[i], texts[i])
		}
	}
}

func TestRecorderBackgroundResets(t *testing.T) {
	r := NewRecorder()
	r.FillRect(0, 0, 1, 1, Red)
	r.FillBackground(White)
	if len(r.Ops) != 1 || r.Ops[0].Kind != OpBackground {
		t.Errorf("expected background to start a new frame, got %+v", r.Ops)
	}

	dst := NewRecorder()
	r.WriteText(1, 2, AlignLeft, AlignTop, "x")
	r.Replay(dst)
	if len(dst.Ops) != 2 || dst.Texts()[0] != "x" {
		t.Errorf("replay mismatch: %+v", dst.Ops)
	}
}
