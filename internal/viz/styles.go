package viz

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/lucasb-eyer/go-colorful"

	"github.com/san-kum/algviz/internal/canvas"
)

var canvasStyle = lipgloss.NewStyle().Padding(1, 2)

// statusText renders the play/pause badge.
func statusText(t Theme, playing bool) string {
	if playing {
		return lipgloss.NewStyle().Bold(true).Foreground(t.Success).Render("PLAYING")
	}
	return lipgloss.NewStyle().Bold(true).Foreground(t.Warning).Render("PAUSED")
}

func valueText(t Theme, s string) string {
	return lipgloss.NewStyle().Bold(true).Foreground(t.Primary).Render(s)
}

func mutedText(t Theme, s string) string {
	return lipgloss.NewStyle().Foreground(t.Muted).Render(s)
}

func errorText(t Theme, s string) string {
	return lipgloss.NewStyle().Bold(true).Foreground(t.Error).Render(s)
}

// GradientText colours each character of text on a gradient between the
// two colours. Unparseable colours fall back to plain text.
func GradientText(text string, from, to lipgloss.Color) string {
	start, err1 := colorful.Hex(string(from))
	end, err2 := colorful.Hex(string(to))
	runes := []rune(text)
	if err1 != nil || err2 != nil || len(runes) == 0 {
		return text
	}

	var b strings.Builder
	for i, r := range runes {
		f := 0.0
		if len(runes) > 1 {
			f = float64(i) / float64(len(runes)-1)
		}
		c := start.BlendLab(end, f).Clamped()
		b.WriteString(lipgloss.NewStyle().Foreground(lipgloss.Color(c.Hex())).Render(string(r)))
	}
	return b.String()
}

// ProgressBar renders how far through the states the stepper is.
func ProgressBar(percent float64, width int, t Theme) string {
	filled := min(max(int(percent*float64(width)), 0), width)
	return lipgloss.NewStyle().Foreground(t.Primary).Render(strings.Repeat("█", filled)) +
		lipgloss.NewStyle().Foreground(t.Muted).Render(strings.Repeat("░", width-filled))
}

func Separator(width int, t Theme) string {
	mid := width / 2
	left := strings.Repeat("─", max(mid-3, 0))
	right := strings.Repeat("─", max(width-mid-3, 0))
	return lipgloss.NewStyle().Foreground(t.Muted).Italic(true).Render(left + " ◆ " + right)
}

func colorHex(col canvas.Color) string {
	return colorful.Color{
		R: float64(col.R) / 255,
		G: float64(col.G) / 255,
		B: float64(col.B) / 255,
	}.Hex()
}
