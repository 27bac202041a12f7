package viz

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/san-kum/algviz/internal/canvas"
)

func rows(c *Canvas) []string {
	return strings.Split(strings.TrimSuffix(c.String(), "\n"), "\n")
}

func TestCanvasSize(t *testing.T) {
	c := NewCanvas(4, 2)
	require.Equal(t, 12, c.Width)
	require.Equal(t, 2, c.Height)
	require.Len(t, rows(c), 2)
	require.Equal(t, strings.Repeat(" ", 12), rows(c)[0])
}

func TestCharBoxAndLabel(t *testing.T) {
	c := NewCanvas(4, 2)
	canvas.DrawCharBox(c, canvas.Pos{X: 1, Y: 0}, 'A', canvas.Green)
	canvas.DrawLabel(c, canvas.Pos{X: 2, Y: 1}, "12")

	r := rows(c)
	require.Equal(t, "    A       ", r[0])
	require.Equal(t, "      12    ", r[1])
	for i := 3; i < 6; i++ {
		require.Equal(t, canvas.Green, c.Grid[0][i].bg)
	}
	require.Equal(t, canvas.White, c.Grid[0][2].bg)
}

func TestHighlightBrackets(t *testing.T) {
	c := NewCanvas(3, 1)
	canvas.DrawCharBox(c, canvas.Pos{X: 1, Y: 0}, 'x', canvas.White)
	canvas.DrawHighlight(c, canvas.Pos{X: 1, Y: 0}, canvas.Red)

	require.Equal(t, "   [x]   ", rows(c)[0])
	require.True(t, c.Grid[0][4].hasFg)
	require.Equal(t, canvas.Red, c.Grid[0][4].fg)
}

func TestRules(t *testing.T) {
	c := NewCanvas(3, 3)
	canvas.DrawHighlightBox(c, canvas.Pos{X: 1, Y: 0}, 0, 2, canvas.Blue)
	r := rows(c)
	require.Equal(t, "  │      ", r[0])
	require.Equal(t, "  │      ", r[1])
	require.Equal(t, "         ", r[2])

	canvas.DrawHighlightBox(c, canvas.Pos{X: 0, Y: 2}, 2, 0, canvas.Red)
	for i := 0; i < 6; i++ {
		require.True(t, c.Grid[1][i].under, "char %d", i)
	}
	require.False(t, c.Grid[1][6].under)
}

func TestTextAlignment(t *testing.T) {
	c := NewCanvas(4, 1)
	canvas.DrawText(c, canvas.Pos{X: 1, Y: 0}, "hello")
	require.Equal(t, "   hello    ", rows(c)[0])

	c.FillBackground(canvas.White)
	c.WriteText(120, 15, canvas.AlignRight, canvas.AlignMiddle, "end")
	require.Equal(t, "         end", rows(c)[0])
}

func TestOutOfBoundsIgnored(t *testing.T) {
	c := NewCanvas(1, 1)
	require.NotPanics(t, func() {
		canvas.DrawCharBox(c, canvas.Pos{X: 5, Y: 5}, 'z', canvas.Red)
		canvas.DrawText(c, canvas.Pos{X: 0, Y: 0}, "overflowing")
		c.FillRect(-100, -100, 50, 50, canvas.Red)
	})
	require.Equal(t, "ove", rows(c)[0])
}

func TestRenderUsesThemePaper(t *testing.T) {
	c := NewCanvas(1, 1)
	out := c.Render(ThemeClassic)
	require.Contains(t, out, "   ")
	require.Equal(t, ThemeCyberpunk.Paper, paint(canvas.White, ThemeCyberpunk))
	require.Equal(t, "#ff0000", string(paint(canvas.Red, ThemeCyberpunk)))
}

func TestNextTheme(t *testing.T) {
	require.Equal(t, "cyberpunk", NextTheme("classic").Name)
	require.Equal(t, "classic", NextTheme("sunset").Name)
	require.Equal(t, "classic", GetTheme("nope").Name)
	require.Len(t, ThemeNames(), len(Themes))
}

func TestColorHelpers(t *testing.T) {
	require.Equal(t, "#ff0000", colorHex(canvas.Red))
	require.Equal(t, "#00ffff", colorHex(canvas.Cyan))
	require.Equal(t, "plain", GradientText("plain", "nope", "#ffffff"))
	require.Contains(t, GradientText("ab", "#000000", "#ffffff"), "b")
}
