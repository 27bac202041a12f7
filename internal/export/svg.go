package export

import (
	"fmt"
	"html"
	"strings"

	"github.com/san-kum/algviz/internal/canvas"
)

const fontFamily = "monospace"

// SVG is a canvas.Canvas producing an SVG document.
type SVG struct {
	Width, Height int
	body          strings.Builder
}

// NewSVG creates an SVG canvas of w x h pixels.
func NewSVG(w, h int) *SVG {
	return &SVG{Width: w, Height: h}
}

func fill(c canvas.Color) string {
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}

func (s *SVG) FillBackground(c canvas.Color) {
	s.body.Reset()
	fmt.Fprintf(&s.body, "<rect width=\"100%%\" height=\"100%%\" fill=\"%s\"/>\n", fill(c))
}

func (s *SVG) FillRect(x, y, w, h int, c canvas.Color) {
	fmt.Fprintf(&s.body, "<rect x=\"%d\" y=\"%d\" width=\"%d\" height=\"%d\" fill=\"%s\"/>\n", x, y, w, h, fill(c))
}

func (s *SVG) DrawRect(x, y, w, h int, c canvas.Color) {
	switch {
	case w == 0 || h == 0:
		fmt.Fprintf(&s.body, "<line x1=\"%d\" y1=\"%d\" x2=\"%d\" y2=\"%d\" stroke=\"%s\"/>\n", x, y, x+w, y+h, fill(c))
	default:
		fmt.Fprintf(&s.body, "<rect x=\"%d\" y=\"%d\" width=\"%d\" height=\"%d\" fill=\"none\" stroke=\"%s\"/>\n", x, y, w, h, fill(c))
	}
}

func (s *SVG) WriteText(x, y int, ha canvas.HAlign, va canvas.VAlign, text string) {
	anchor := "start"
	switch ha {
	case canvas.AlignCenter:
		anchor = "middle"
	case canvas.AlignRight:
		anchor = "end"
	}
	baseline := "middle"
	switch va {
	case canvas.AlignTop:
		baseline = "hanging"
	case canvas.AlignBottom:
		baseline = "text-after-edge"
	}
	fmt.Fprintf(&s.body, "<text x=\"%d\" y=\"%d\" font-family=\"%s\" font-size=\"%d\" text-anchor=\"%s\" dominant-baseline=\"%s\">%s</text>\n",
		x, y, fontFamily, canvas.CellSize/2, anchor, baseline, html.EscapeString(text))
}

// String returns the complete document.
func (s *SVG) String() string {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf(`<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d" viewBox="0 0 %d %d">
`, s.Width, s.Height, s.Width, s.Height))
	sb.WriteString(s.body.String())
	sb.WriteString("</svg>\n")
	return sb.String()
}

// SeriesToSVG plots values as a polyline, one point per step.
func SeriesToSVG(values []float64, width, height int, strokeColor string) string {
	if len(values) < 2 {
		return ""
	}

	minY, maxY := values[0], values[0]
	for _, v := range values {
		minY = min(minY, v)
		maxY = max(maxY, v)
	}
	rangeY := maxY - minY
	if rangeY == 0 {
		rangeY = 1
	}
	minY -= rangeY * 0.1
	rangeY *= 1.2

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf(`<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d" viewBox="0 0 %d %d">
<rect width="100%%" height="100%%" fill="#ffffff"/>
<path fill="none" stroke="%s" stroke-width="1.5" d="M`,
		width, height, width, height, strokeColor))

	for i, v := range values {
		x := float64(i) / float64(len(values)-1) * float64(width)
		y := float64(height) - (v-minY)/rangeY*float64(height)
		if i == 0 {
			sb.WriteString(fmt.Sprintf("%.1f,%.1f", x, y))
		} else {
			sb.WriteString(fmt.Sprintf(" L%.1f,%.1f", x, y))
		}
	}

	sb.WriteString(`"/>
</svg>`)
	return sb.String()
}
