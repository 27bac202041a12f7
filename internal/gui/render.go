package gui

import (
	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/san-kum/algviz/internal/canvas"
)

const fontSize = 20

// Canvas draws onto the current raylib frame, offset by the frame origin.
type Canvas struct {
	Font   rl.Font
	OX, OY int32
}

func toRL(c canvas.Color) rl.Color {
	return rl.NewColor(c.R, c.G, c.B, 255)
}

func (c *Canvas) FillBackground(col canvas.Color) {
	rl.ClearBackground(toRL(col))
}

func (c *Canvas) FillRect(x, y, w, h int, col canvas.Color) {
	rl.DrawRectangle(c.OX+int32(x), c.OY+int32(y), int32(w), int32(h), toRL(col))
}

// DrawRect outlines a rectangle. Degenerate rectangles become lines.
func (c *Canvas) DrawRect(x, y, w, h int, col canvas.Color) {
	x0, y0 := c.OX+int32(x), c.OY+int32(y)
	switch {
	case w == 0:
		rl.DrawLine(x0, y0, x0, y0+int32(h), toRL(col))
	case h == 0:
		rl.DrawLine(x0, y0, x0+int32(w), y0, toRL(col))
	default:
		rl.DrawRectangleLines(x0, y0, int32(w), int32(h), toRL(col))
	}
}

func (c *Canvas) WriteText(x, y int, ha canvas.HAlign, va canvas.VAlign, text string) {
	size := rl.MeasureTextEx(c.Font, text, fontSize, 1)
	px, py := float32(c.OX+int32(x)), float32(c.OY+int32(y))
	switch ha {
	case canvas.AlignCenter:
		px -= size.X / 2
	case canvas.AlignRight:
		px -= size.X
	}
	switch va {
	case canvas.AlignMiddle:
		py -= size.Y / 2
	case canvas.AlignBottom:
		py -= size.Y
	}
	rl.DrawTextEx(c.Font, text, rl.NewVector2(px, py), fontSize, 1, rl.Black)
}
