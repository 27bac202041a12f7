package export

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/san-kum/algviz/internal/alg"
	"github.com/san-kum/algviz/internal/canvas"
	"github.com/san-kum/algviz/internal/stepper"
	"github.com/san-kum/algviz/internal/storage"
)

func TestSVGElements(t *testing.T) {
	s := NewSVG(90, 60)
	s.FillBackground(canvas.White)
	s.FillRect(0, 0, 30, 30, canvas.Red)
	s.DrawRect(30, 0, 0, 30, canvas.Blue)
	s.DrawRect(30, 30, 30, 30, canvas.Black)
	s.WriteText(45, 15, canvas.AlignCenter, canvas.AlignMiddle, "<a&b>")

	out := s.String()
	require.True(t, strings.HasPrefix(out, "<?xml"))
	require.Contains(t, out, `width="90" height="60"`)
	require.Contains(t, out, `fill="#ff0000"`)
	require.Contains(t, out, `<line x1="30" y1="0" x2="30" y2="30" stroke="#0000ff"/>`)
	require.Contains(t, out, `fill="none" stroke="#000000"`)
	require.Contains(t, out, `text-anchor="middle"`)
	require.Contains(t, out, "&lt;a&amp;b&gt;")
}

func TestSVGBackgroundResets(t *testing.T) {
	s := NewSVG(30, 30)
	s.FillRect(0, 0, 30, 30, canvas.Red)
	s.FillBackground(canvas.White)
	require.NotContains(t, s.String(), "#ff0000")
}

func TestSeriesToSVG(t *testing.T) {
	require.Empty(t, SeriesToSVG([]float64{1}, 100, 50, "#000"))
	out := SeriesToSVG([]float64{7, 3, 2, 2}, 100, 50, "#0077be")
	require.Contains(t, out, `stroke="#0077be"`)
	require.Equal(t, 3, strings.Count(out, " L"))
}

func TestFramesSkipsHiddenStates(t *testing.T) {
	base := t.TempDir()
	st := storage.New(base)
	p := stepper.Params{Algorithm: "suffix-array", Input: "banana"}

	meta, err := Frames(context.Background(), st, p, &LineReporter{W: io.Discard})
	require.NoError(t, err)
	require.Equal(t, "suffix-array", meta.Algorithm)
	require.Equal(t, "banana$", meta.Input)

	v, err := alg.NewRegistry().New(p.Algorithm, p.Input, p.Query)
	require.NoError(t, err)
	require.Equal(t, v.NumStates(), meta.States)
	require.Less(t, len(meta.Frames), meta.States)
	require.Equal(t, 0, meta.Frames[0].State)
	require.Equal(t, meta.States-1, meta.Frames[len(meta.Frames)-1].State)

	for _, f := range meta.Frames {
		_, err := os.Stat(filepath.Join(base, meta.ID, f.File))
		require.NoError(t, err)
	}
	_, err = os.Stat(filepath.Join(base, meta.ID, "series.svg"))
	require.NoError(t, err)

	rows, err := st.LoadStates(meta.ID)
	require.NoError(t, err)
	require.Len(t, rows, meta.States)
}

func TestFramesBWTKeepsEveryState(t *testing.T) {
	st := storage.New(t.TempDir())
	meta, err := Frames(context.Background(), st,
		stepper.Params{Algorithm: "bwt", Input: "banana", Query: "ana"}, &LineReporter{W: io.Discard})
	require.NoError(t, err)
	require.Len(t, meta.Frames, meta.States)
	require.Equal(t, "query range size", meta.SeriesName)
}

func TestFramesUnknownAlgorithm(t *testing.T) {
	st := storage.New(t.TempDir())
	_, err := Frames(context.Background(), st, stepper.Params{Algorithm: "nope"}, &LineReporter{W: io.Discard})
	require.ErrorIs(t, err, alg.ErrUnknownAlgorithm)
}

func TestFramesCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	base := t.TempDir()
	st := storage.New(base)
	_, err := Frames(ctx, st, stepper.Params{Algorithm: "bwt"}, &LineReporter{W: io.Discard})
	require.ErrorIs(t, err, context.Canceled)

	entries, err := os.ReadDir(base)
	require.NoError(t, err)
	require.Empty(t, entries)
	runs, err := st.List()
	require.NoError(t, err)
	require.Empty(t, runs)
}
