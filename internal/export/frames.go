// Package export renders every presentable state of a run to SVG files
// and records them in a storage run.
package export

import (
	"context"
	"fmt"

	"github.com/san-kum/algviz/internal/alg"
	"github.com/san-kum/algviz/internal/canvas"
	"github.com/san-kum/algviz/internal/logger"
	"github.com/san-kum/algviz/internal/stepper"
	"github.com/san-kum/algviz/internal/storage"
)

// target writes each presented frame into the run.
type target struct {
	svg *SVG
	run *storage.Run
	rep Reporter
}

func (t *target) Frame(w, h int) canvas.Canvas {
	pw, ph := canvas.PixelSize(w, h)
	t.svg = NewSVG(pw, ph)
	return t.svg
}

func (t *target) Present(st stepper.State) error {
	t.rep.Update(st.Index+1, st.Description)
	return t.run.AddFrame(st.Index, st.Description, "svg", []byte(t.svg.String()))
}

// Frames steps through every state of the run described by p and stores
// the presentable ones. It returns the finished run's metadata. A run that
// fails or is cancelled is removed.
func Frames(ctx context.Context, st *storage.Store, p stepper.Params, rep Reporter) (_ *storage.RunMetadata, err error) {
	if err := st.Init(); err != nil {
		return nil, fmt.Errorf("initializing store: %w", err)
	}

	registry := alg.NewRegistry()
	v, err := registry.New(p.Algorithm, p.Input, p.Query)
	if err != nil {
		return nil, err
	}
	run, err := st.Create(v.Name(), string(alg.Prepare(p.Input)), p.Query)
	if err != nil {
		return nil, err
	}
	defer func() {
		if err == nil {
			return
		}
		if derr := run.Discard(); derr != nil {
			logger.WarnKV(ctx, "could not remove failed run", "run", run.Meta.ID, "error", derr)
		}
	}()

	t := &target{run: run, rep: rep}
	s := stepper.New(registry, stepper.NewStatic(p), t)
	if err := s.Reset(); err != nil {
		return nil, err
	}

	rep.Start(v.NumStates())
	for {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if err := s.Draw(); err != nil {
			return nil, err
		}
		if cur := s.State(); cur.Index >= cur.Count-1 {
			break
		}
		if err := s.Next(); err != nil {
			return nil, err
		}
	}
	rep.Finish()

	rows := make([]storage.StateRow, v.NumStates())
	var values []float64
	if series, ok := v.(alg.Series); ok {
		run.Meta.SeriesName, values = series.Series()
		if svg := SeriesToSVG(values, 600, 200, "#0077be"); svg != "" {
			if err := run.WriteFile("series.svg", []byte(svg)); err != nil {
				return nil, err
			}
		}
	}
	for i := range rows {
		rows[i] = storage.StateRow{State: i, Description: v.Describe(i)}
		if len(values) == len(rows) {
			rows[i].Value = values[i]
		}
	}
	if err := run.Finish(rows); err != nil {
		return nil, err
	}

	logger.InfoKV(ctx, "export finished", "run", run.Meta.ID, "frames", len(run.Meta.Frames), "dir", run.Dir())
	return &run.Meta, nil
}
