package tracker

import (
	"fmt"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"

	"github.com/samuelfneumann/humanoidkick/kick"
	"github.com/samuelfneumann/humanoidkick/timestep"
)

// TermsData holds per-episode sums of the diagnostic reward terms.
// Rows[i][j] is the sum of term Names[j] over episode i.
type TermsData struct {
	Names []string
	Rows  [][]float64
}

// Terms tracks the diagnostic reward terms of each episode, summed over
// the episode's steps. Only finished episodes are recorded.
type Terms struct {
	current  []float64
	rows     [][]float64
	filename string
}

// NewTerms returns a new Terms tracker which will save its data at the
// specified location filename
func NewTerms(filename string) *Terms {
	return &Terms{current: make([]float64, kick.NumTerms), filename: filename}
}

// Track accumulates the terms of a timestep
func (t *Terms) Track(step timestep.TimeStep) {
	if step.First() {
		floats.Scale(0.0, t.current)
		return
	}

	values := step.Terms.Values()
	floats.Add(t.current, values[:])

	if step.Last() {
		t.rows = append(t.rows, append([]float64(nil), t.current...))
		floats.Scale(0.0, t.current)
	}
}

// Data returns the term sums of all finished episodes
func (t *Terms) Data() TermsData {
	names := make([]string, kick.NumTerms)
	copy(names, kick.TermNames[:])

	rows := make([][]float64, len(t.rows))
	for i := range t.rows {
		rows[i] = append([]float64(nil), t.rows[i]...)
	}
	return TermsData{Names: names, Rows: rows}
}

// Means returns the mean per-episode sum of each term, in the order of
// kick.TermNames
func (d TermsData) Means() []float64 {
	means := make([]float64, len(d.Names))
	if len(d.Rows) == 0 {
		return means
	}

	column := make([]float64, len(d.Rows))
	for j := range d.Names {
		for i, row := range d.Rows {
			column[i] = row[j]
		}
		means[j] = stat.Mean(column, nil)
	}
	return means
}

// Save saves the data tracked by the Terms Tracker to disk.
func (t *Terms) Save() error {
	if err := save(t.filename, t.Data()); err != nil {
		return fmt.Errorf("save: could not save terms: %w", err)
	}
	return nil
}

// LoadTerms loads the data saved by a Terms Tracker
func LoadTerms(filename string) (TermsData, error) {
	var data TermsData
	if err := load(filename, &data); err != nil {
		return TermsData{}, fmt.Errorf("loadTerms: %w", err)
	}
	return data, nil
}
