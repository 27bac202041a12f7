package viz

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/san-kum/algviz/internal/canvas"
)

// A grid cell is three characters wide and one line tall, so one
// character covers charW pixels horizontally.
const (
	cellChars = 3
	charW     = canvas.CellSize / cellChars
)

type cell struct {
	ch     rune
	fg, bg canvas.Color
	hasFg  bool
	under  bool
}

// Canvas is a canvas.Canvas rasterized onto terminal characters. Filled
// rectangles become background colours, framed ones become brackets and
// thin rules become bars.
type Canvas struct {
	Width, Height int
	Grid          [][]cell
}

// NewCanvas creates a canvas of w x h grid cells.
func NewCanvas(w, h int) *Canvas {
	c := &Canvas{}
	c.Resize(w, h)
	return c
}

// Resize reallocates the canvas to w x h grid cells and clears it.
func (c *Canvas) Resize(w, h int) {
	c.Width, c.Height = w*cellChars, h
	c.Grid = make([][]cell, c.Height)
	for i := range c.Grid {
		c.Grid[i] = make([]cell, c.Width)
	}
	c.FillBackground(canvas.Background)
}

func (c *Canvas) at(col, row int) *cell {
	if col < 0 || row < 0 || row >= c.Height || col >= c.Width {
		return nil
	}
	return &c.Grid[row][col]
}

func (c *Canvas) FillBackground(col canvas.Color) {
	for y := range c.Grid {
		for x := range c.Grid[y] {
			c.Grid[y][x] = cell{ch: ' ', bg: col}
		}
	}
}

// FillRect paints every character whose centre lies inside the rectangle.
func (c *Canvas) FillRect(x, y, w, h int, col canvas.Color) {
	for row := y / canvas.CellSize; row*canvas.CellSize < y+h; row++ {
		cy := row*canvas.CellSize + canvas.CellSize/2
		if cy < y || cy >= y+h {
			continue
		}
		for ch := x / charW; ch*charW < x+w; ch++ {
			cx := ch*charW + charW/2
			if cx < x || cx >= x+w {
				continue
			}
			if p := c.at(ch, row); p != nil {
				p.bg = col
			}
		}
	}
}

// DrawRect frames a rectangle. Black outlines are dropped since the cell
// backgrounds already separate the boxes.
func (c *Canvas) DrawRect(x, y, w, h int, col canvas.Color) {
	if col == canvas.Black {
		return
	}
	switch {
	case w < charW:
		c.vrule(x, y, h, col)
	case h < canvas.CellSize/2:
		c.hrule(x, y, w, col)
	default:
		c.frame(x, y, w, h, col)
	}
}

func (c *Canvas) vrule(x, y, h int, col canvas.Color) {
	ch := (x+charW/2)/charW - 1
	for row := y / canvas.CellSize; row*canvas.CellSize < y+h; row++ {
		if p := c.at(ch, row); p != nil {
			if p.ch == ' ' {
				p.ch = '│'
			}
			p.fg, p.hasFg = col, true
		}
	}
}

// hrule underlines the line above y, which sits on the rule.
func (c *Canvas) hrule(x, y, w int, col canvas.Color) {
	row := (y+canvas.CellSize/2)/canvas.CellSize - 1
	for ch := x / charW; ch*charW < x+w; ch++ {
		if p := c.at(ch, row); p != nil {
			p.under = true
			p.fg, p.hasFg = col, true
		}
	}
}

func (c *Canvas) frame(x, y, w, h int, col canvas.Color) {
	left := x / charW
	right := (x + w - 1) / charW
	for row := y / canvas.CellSize; row*canvas.CellSize < y+h; row++ {
		for ch := left; ch <= right; ch++ {
			p := c.at(ch, row)
			if p == nil {
				continue
			}
			p.fg, p.hasFg = col, true
			switch {
			case ch == left && p.ch == ' ':
				p.ch = '['
			case ch == right && p.ch == ' ':
				p.ch = ']'
			}
		}
	}
}

// WriteText places text on the character row containing the anchor.
func (c *Canvas) WriteText(x, y int, ha canvas.HAlign, va canvas.VAlign, text string) {
	runes := []rune(text)
	col := x / charW
	switch ha {
	case canvas.AlignCenter:
		col -= len(runes) / 2
	case canvas.AlignRight:
		col -= len(runes)
	}
	row := y / canvas.CellSize
	if va == canvas.AlignBottom && y > 0 {
		row = (y - 1) / canvas.CellSize
	}
	for i, r := range runes {
		if p := c.at(col+i, row); p != nil {
			p.ch = r
		}
	}
}

// String returns the characters without styling.
func (c *Canvas) String() string {
	var b strings.Builder
	for _, row := range c.Grid {
		for _, p := range row {
			b.WriteRune(p.ch)
		}
		b.WriteString("\n")
	}
	return b.String()
}

// Render returns the canvas with colours, mapping the white paper colour
// onto the theme.
func (c *Canvas) Render(t Theme) string {
	var b strings.Builder
	for _, row := range c.Grid {
		var run strings.Builder
		var style lipgloss.Style
		var last *cell
		flush := func() {
			if run.Len() > 0 {
				b.WriteString(style.Render(run.String()))
				run.Reset()
			}
		}
		for i := range row {
			p := &row[i]
			if last == nil || !sameStyle(last, p) {
				flush()
				style = cellStyle(p, t)
			}
			run.WriteRune(p.ch)
			last = p
		}
		flush()
		b.WriteString("\n")
	}
	return b.String()
}

func sameStyle(a, b *cell) bool {
	return a.bg == b.bg && a.fg == b.fg && a.hasFg == b.hasFg && a.under == b.under
}

func cellStyle(p *cell, t Theme) lipgloss.Style {
	s := lipgloss.NewStyle().Background(paint(p.bg, t))
	if p.hasFg {
		s = s.Foreground(lipgloss.Color(colorHex(p.fg))).Bold(true)
	} else {
		s = s.Foreground(t.Ink)
	}
	if p.under {
		s = s.Underline(true)
	}
	return s
}

func paint(col canvas.Color, t Theme) lipgloss.Color {
	if col == canvas.White {
		return t.Paper
	}
	return lipgloss.Color(colorHex(col))
}
