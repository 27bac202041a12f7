package canvas

// Color is an opaque RGB triple.
type Color struct {
	R, G, B uint8
}

var (
	Black = Color{0, 0, 0}
	White = Color{255, 255, 255}
	Red   = Color{255, 0, 0}
	Green = Color{0, 255, 0}
	Blue  = Color{0, 0, 255}
	Cyan  = Color{0, 255, 255}
)

// RGB is a shorthand constructor.
func RGB(r, g, b uint8) Color {
	return Color{R: r, G: g, B: b}
}

type HAlign int

const (
	AlignLeft HAlign = iota
	AlignCenter
	AlignRight
)

type VAlign int

const (
	AlignTop VAlign = iota
	AlignMiddle
	AlignBottom
)

// Canvas is a pixel surface. Rectangles are given by their top-left corner.
type Canvas interface {
	FillBackground(c Color)
	FillRect(x, y, w, h int, c Color)
	DrawRect(x, y, w, h int, c Color)
	WriteText(x, y int, ha HAlign, va VAlign, text string)
}
