package alg

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/san-kum/algviz/internal/alg/bibwt"
	"github.com/san-kum/algviz/internal/alg/bwt"
	"github.com/san-kum/algviz/internal/alg/sa"
	"github.com/san-kum/algviz/internal/canvas"
)

const (
	DefaultInput = "GTCCCGATGTCATGTCAGGA"
	DefaultQuery = "GTCC"
	Sentinel     = '$'
)

var ErrUnknownAlgorithm = errors.New("alg: unknown algorithm")

// Viz is one algorithm prepared for a fixed input.
type Viz interface {
	Name() string
	// CanvasSize is the frame size in grid cells.
	CanvasSize() (w, h int)
	NumStates() int
	Describe(state int) string
	// Draw renders state and reports whether the frame is worth presenting.
	Draw(state int, c canvas.Canvas) bool
}

// Series is implemented by visualizations that expose one value per step.
type Series interface {
	Series() (name string, values []float64)
}

type Factory func(s, q []byte) Viz

type Registry struct {
	factories map[string]Factory
}

func NewRegistry() *Registry {
	r := &Registry{factories: make(map[string]Factory)}

	r.Register("suffix-array", func(s, _ []byte) Viz { return sa.New(s) })
	r.Register("bwt", func(s, q []byte) Viz { return bwt.New(s, q) })
	r.Register("bibwt", func(s, q []byte) Viz { return bibwt.New(s, q) })

	return r
}

func (r *Registry) Register(name string, f Factory) {
	r.factories[name] = f
}

// New builds the named visualization. The text goes through Prepare; the
// query is used as given, so an empty query matches every row.
func (r *Registry) New(name, text, query string) (Viz, error) {
	f, ok := r.factories[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownAlgorithm, name)
	}
	return f(Prepare(text), []byte(query)), nil
}

func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.factories))
	for name := range r.factories {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Next returns the algorithm after name in Names order, wrapping around.
func (r *Registry) Next(name string) string {
	names := r.Names()
	for i, n := range names {
		if n == name {
			return names[(i+1)%len(names)]
		}
	}
	return names[0]
}

// Prepare turns user input into a text the algorithms accept: characters
// sorting at or below the sentinel are dropped and a single sentinel is
// appended. Empty input falls back to DefaultInput.
func Prepare(text string) []byte {
	text = strings.TrimSpace(text)
	if text == "" {
		text = DefaultInput
	}
	out := make([]byte, 0, len(text)+1)
	for i := 0; i < len(text); i++ {
		if text[i] > Sentinel {
			out = append(out, text[i])
		}
	}
	return append(out, Sentinel)
}
