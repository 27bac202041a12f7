package canvas

import "strconv"

// CellSize is the edge of one grid cell in pixels.
const CellSize = 30

// Background is the colour every frame starts from.
var Background = White

// Pos is the position of a cell in the grid, column first.
type Pos struct {
	X, Y int
}

func (p Pos) Add(o Pos) Pos   { return Pos{p.X + o.X, p.Y + o.Y} }
func (p Pos) Left(d int) Pos  { return Pos{p.X - d, p.Y} }
func (p Pos) Right(d int) Pos { return Pos{p.X + d, p.Y} }
func (p Pos) Up(d int) Pos    { return Pos{p.X, p.Y - d} }
func (p Pos) Down(d int) Pos  { return Pos{p.X, p.Y + d} }

// PixelSize converts a grid size in cells to pixels.
func PixelSize(w, h int) (int, int) {
	return w * CellSize, h * CellSize
}

func DrawBackground(c Canvas) {
	c.FillBackground(Background)
}

// DrawLabel writes text centred in the cell at p.
func DrawLabel(c Canvas, p Pos, label string) {
	c.WriteText(p.X*CellSize+CellSize/2, p.Y*CellSize+CellSize/2, AlignCenter, AlignMiddle, label)
}

// DrawText writes text starting at the left edge of the cell at p.
func DrawText(c Canvas, p Pos, text string) {
	c.WriteText(p.X*CellSize, p.Y*CellSize+CellSize/2, AlignLeft, AlignMiddle, text)
}

// DrawCharBox fills the cell at p and writes ch in it.
func DrawCharBox(c Canvas, p Pos, ch byte, col Color) {
	x, y := p.X*CellSize, p.Y*CellSize
	c.FillRect(x, y, CellSize, CellSize, col)
	c.DrawRect(x, y, CellSize, CellSize, Black)
	c.WriteText(x+CellSize/2, y+CellSize/2, AlignCenter, AlignMiddle, string([]byte{ch}))
}

// DrawHighlightBox frames a w x h block of cells starting at p.
// w == 0 draws a vertical rule of height h on the left edge of p,
// h == 0 a horizontal rule of width w on its top edge.
func DrawHighlightBox(c Canvas, p Pos, w, h int, col Color) {
	x, y := p.X*CellSize, p.Y*CellSize
	switch {
	case w == 0:
		for m := 0; m <= 2; m++ {
			c.DrawRect(x-m, y, 2*m, h*CellSize, col)
		}
	case h == 0:
		for m := 0; m <= 2; m++ {
			c.DrawRect(x, y-m, w*CellSize, 2*m, col)
		}
	default:
		for m := 1; m <= 3; m++ {
			c.DrawRect(x+m, y+m, w*CellSize-2*m, h*CellSize-2*m, col)
		}
	}
}

// DrawHighlight frames a single cell.
func DrawHighlight(c Canvas, p Pos, col Color) {
	DrawHighlightBox(c, p, 1, 1, col)
}

// DrawString draws s as a row of character boxes, colouring cell i with color(i).
func DrawString(c Canvas, p Pos, s []byte, color func(i int) Color) {
	for i, ch := range s {
		DrawCharBox(c, p.Right(i), ch, color(i))
	}
}

// DrawStringWithLabels draws s with its indices above and the "i"/"S" row labels.
func DrawStringWithLabels(c Canvas, p Pos, s []byte, color func(i int) Color) {
	DrawLabel(c, p.Left(1).Up(1), "i")
	for i := range s {
		DrawLabel(c, p.Right(i).Up(1), strconv.Itoa(i))
	}
	DrawLabel(c, p.Left(1), "S")
	DrawString(c, p, s, color)
}
