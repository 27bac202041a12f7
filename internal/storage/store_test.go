package storage

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

func TestStoreRoundTrip(t *testing.T) {
	st := New(t.TempDir())
	require.NoError(t, st.Init())

	run, err := st.Create("bwt", "banana$", "ana")
	require.NoError(t, err)
	_, err = uuid.Parse(run.Meta.ID)
	require.NoError(t, err)

	require.NoError(t, run.AddFrame(0, "start", "svg", []byte("<svg/>")))
	require.NoError(t, run.AddFrame(3, "F and L, with \"quotes\", commas", "svg", []byte("<svg/>")))
	rows := []StateRow{
		{State: 0, Description: "start", Value: 7},
		{State: 1, Description: "a, b", Value: 3.5},
	}
	require.NoError(t, run.Finish(rows))

	data, err := os.ReadFile(filepath.Join(run.Dir(), "frame_0003.svg"))
	require.NoError(t, err)
	require.Equal(t, "<svg/>", string(data))

	meta, err := st.Load(run.Meta.ID)
	require.NoError(t, err)
	require.Equal(t, "bwt", meta.Algorithm)
	require.Equal(t, 2, meta.States)
	require.Len(t, meta.Frames, 2)
	require.Equal(t, "frame_0000.svg", meta.Frames[0].File)

	got, err := st.LoadStates(run.Meta.ID)
	require.NoError(t, err)
	require.Equal(t, rows, got)

	runs, err := st.List()
	require.NoError(t, err)
	require.Len(t, runs, 1)
}

func TestRunDiscard(t *testing.T) {
	st := New(t.TempDir())
	require.NoError(t, st.Init())

	run, err := st.Create("bwt", "banana$", "ana")
	require.NoError(t, err)
	require.NoError(t, run.AddFrame(0, "start", "svg", []byte("<svg/>")))
	require.NoError(t, run.Discard())

	_, err = os.Stat(run.Dir())
	require.True(t, os.IsNotExist(err))
	runs, err := st.List()
	require.NoError(t, err)
	require.Empty(t, runs)
}

func TestStoreMissing(t *testing.T) {
	st := New(filepath.Join(t.TempDir(), "nowhere"))

	runs, err := st.List()
	require.NoError(t, err)
	require.Empty(t, runs)

	_, err = st.Load("abc")
	require.ErrorIs(t, err, ErrRunNotFound)
	_, err = st.LoadStates("abc")
	require.ErrorIs(t, err, ErrRunNotFound)
}

func TestListSkipsForeignDirs(t *testing.T) {
	base := t.TempDir()
	st := New(base)
	require.NoError(t, os.MkdirAll(filepath.Join(base, "junk"), 0755))
	require.NoError(t, os.WriteFile(filepath.Join(base, "file.txt"), nil, 0644))

	run, err := st.Create("suffix-array", "banana$", "")
	require.NoError(t, err)
	require.NoError(t, run.Finish(nil))

	runs, err := st.List()
	require.NoError(t, err)
	require.Len(t, runs, 1)
	require.Equal(t, run.Meta.ID, runs[0].ID)
}
