// Package store builds and serializes state traces of a visualization.
package store

import (
	"encoding/json"
	"io"
	"os"

	"github.com/san-kum/algviz/internal/alg"
	"github.com/san-kum/algviz/internal/canvas"
)

type TraceState struct {
	Index       int    `json:"index"`
	Description string `json:"description"`
	Presentable bool   `json:"presentable"`
	Ops         int    `json:"ops"`
}

type TraceData struct {
	Algorithm  string       `json:"algorithm"`
	Input      string       `json:"input"`
	Query      string       `json:"query,omitempty"`
	Width      int          `json:"width"`
	Height     int          `json:"height"`
	States     []TraceState `json:"states"`
	SeriesName string       `json:"series_name,omitempty"`
	Series     []float64    `json:"series,omitempty"`
}

// Trace draws every state of v onto a recorder and summarizes it.
func Trace(v alg.Viz, input, query string) *TraceData {
	w, h := v.CanvasSize()
	data := &TraceData{
		Algorithm: v.Name(),
		Input:     input,
		Query:     query,
		Width:     w,
		Height:    h,
		States:    make([]TraceState, v.NumStates()),
	}
	for i := range data.States {
		rec := canvas.NewRecorder()
		ok := v.Draw(i, rec)
		data.States[i] = TraceState{
			Index:       i,
			Description: v.Describe(i),
			Presentable: ok,
			Ops:         len(rec.Ops),
		}
	}
	if s, ok := v.(alg.Series); ok {
		data.SeriesName, data.Series = s.Series()
	}
	return data
}

// Presentable counts the states a front-end would show.
func (d *TraceData) Presentable() int {
	n := 0
	for _, s := range d.States {
		if s.Presentable {
			n++
		}
	}
	return n
}

func ExportJSON(path string, data *TraceData) error {
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer file.Close()
	return WriteJSON(file, data)
}

func WriteJSON(w io.Writer, data *TraceData) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(data)
}
