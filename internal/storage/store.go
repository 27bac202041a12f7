// Package storage keeps exported runs on disk: one directory per run
// holding the frames, a JSON manifest and a CSV trace of the states.
package storage

import (
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/google/uuid"
)

var ErrRunNotFound = errors.New("storage: run not found")

const (
	manifestFile = "metadata.json"
	traceFile    = "states.csv"
)

type Store struct {
	baseDir string
}

func New(baseDir string) *Store {
	return &Store{baseDir: baseDir}
}

func (s *Store) Init() error {
	return os.MkdirAll(s.baseDir, 0755)
}

// Frame describes one exported image.
type Frame struct {
	State       int    `json:"state"`
	File        string `json:"file"`
	Description string `json:"description"`
}

// StateRow is one line of the state trace.
type StateRow struct {
	State       int
	Description string
	Value       float64
}

type RunMetadata struct {
	ID         string    `json:"id"`
	Algorithm  string    `json:"algorithm"`
	Input      string    `json:"input"`
	Query      string    `json:"query,omitempty"`
	Timestamp  time.Time `json:"timestamp"`
	States     int       `json:"states"`
	SeriesName string    `json:"series,omitempty"`
	Frames     []Frame   `json:"frames"`
}

// RunDir is the directory holding the run's files.
func (s *Store) RunDir(runID string) string {
	return filepath.Join(s.baseDir, runID)
}

// Run is an export in progress.
type Run struct {
	dir  string
	Meta RunMetadata
}

// Create allocates a new run directory named after a fresh run ID.
func (s *Store) Create(algorithm, input, query string) (*Run, error) {
	id := uuid.NewString()
	dir := s.RunDir(id)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("creating run %s: %w", id, err)
	}
	return &Run{
		dir: dir,
		Meta: RunMetadata{
			ID:        id,
			Algorithm: algorithm,
			Input:     input,
			Query:     query,
			Timestamp: time.Now(),
		},
	}, nil
}

func (r *Run) Dir() string { return r.dir }

// AddFrame writes one frame file and records it in the manifest.
func (r *Run) AddFrame(state int, description, ext string, data []byte) error {
	name := fmt.Sprintf("frame_%04d.%s", state, ext)
	if err := os.WriteFile(filepath.Join(r.dir, name), data, 0644); err != nil {
		return fmt.Errorf("writing %s: %w", name, err)
	}
	r.Meta.Frames = append(r.Meta.Frames, Frame{State: state, File: name, Description: description})
	return nil
}

// WriteFile stores an auxiliary file in the run directory.
func (r *Run) WriteFile(name string, data []byte) error {
	return os.WriteFile(filepath.Join(r.dir, name), data, 0644)
}

// Discard removes the run directory and everything written to it.
func (r *Run) Discard() error {
	if err := os.RemoveAll(r.dir); err != nil {
		return fmt.Errorf("discarding run %s: %w", r.Meta.ID, err)
	}
	return nil
}

// Finish writes the manifest and the state trace.
func (r *Run) Finish(rows []StateRow) error {
	r.Meta.States = len(rows)

	metaFile, err := os.Create(filepath.Join(r.dir, manifestFile))
	if err != nil {
		return err
	}
	defer metaFile.Close()

	enc := json.NewEncoder(metaFile)
	enc.SetIndent("", "  ")
	if err := enc.Encode(r.Meta); err != nil {
		return err
	}

	csvFile, err := os.Create(filepath.Join(r.dir, traceFile))
	if err != nil {
		return err
	}
	defer csvFile.Close()

	w := csv.NewWriter(csvFile)
	if err := w.Write([]string{"state", "value", "description"}); err != nil {
		return err
	}
	for _, row := range rows {
		rec := []string{
			strconv.Itoa(row.State),
			strconv.FormatFloat(row.Value, 'f', 6, 64),
			row.Description,
		}
		if err := w.Write(rec); err != nil {
			return err
		}
	}
	w.Flush()
	return w.Error()
}

func (s *Store) List() ([]RunMetadata, error) {
	entries, err := os.ReadDir(s.baseDir)
	if err != nil {
		if os.IsNotExist(err) {
			return []RunMetadata{}, nil
		}
		return nil, err
	}

	runs := make([]RunMetadata, 0)
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}

		data, err := os.ReadFile(filepath.Join(s.baseDir, entry.Name(), manifestFile))
		if err != nil {
			continue
		}

		var meta RunMetadata
		if err := json.Unmarshal(data, &meta); err != nil {
			continue
		}

		runs = append(runs, meta)
	}

	return runs, nil
}

func (s *Store) Load(runID string) (*RunMetadata, error) {
	data, err := os.ReadFile(filepath.Join(s.baseDir, runID, manifestFile))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrRunNotFound, runID)
		}
		return nil, err
	}

	var meta RunMetadata
	if err := json.Unmarshal(data, &meta); err != nil {
		return nil, err
	}

	return &meta, nil
}

// LoadStates reads the state trace back.
func (s *Store) LoadStates(runID string) ([]StateRow, error) {
	file, err := os.Open(filepath.Join(s.baseDir, runID, traceFile))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrRunNotFound, runID)
		}
		return nil, err
	}
	defer file.Close()

	r := csv.NewReader(file)
	r.FieldsPerRecord = -1

	records, err := r.ReadAll()
	if err != nil {
		return nil, err
	}
	if len(records) < 2 {
		return []StateRow{}, nil
	}

	rows := make([]StateRow, 0, len(records)-1)
	for _, record := range records[1:] {
		if len(record) < 3 {
			continue
		}
		state, err := strconv.Atoi(record[0])
		if err != nil {
			continue
		}
		val, err := strconv.ParseFloat(record[1], 64)
		if err != nil {
			continue
		}
		rows = append(rows, StateRow{State: state, Value: val, Description: record[2]})
	}
	return rows, nil
}
