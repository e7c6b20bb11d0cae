package tracker

import (
	"fmt"

	"gonum.org/v1/gonum/floats"

	"github.com/samuelfneumann/humanoidkick/timestep"
)

// KickRecord summarizes the kick of a single episode
type KickRecord struct {
	EpisodeID string
	Kicked    bool
	KickStep  int // step at which the latch closed, -1 if never
	Length    int
	End       string
}

// Kicks tracks whether and when the kick latch closed in each episode.
// Only finished episodes are recorded.
type Kicks struct {
	current  KickRecord
	records  []KickRecord
	filename string
}

// NewKicks returns a new Kicks tracker which will save its data at the
// specified location filename
func NewKicks(filename string) *Kicks {
	return &Kicks{filename: filename, current: KickRecord{KickStep: -1}}
}

// Track tracks the kick latch over an episode
func (k *Kicks) Track(t timestep.TimeStep) {
	if t.First() {
		k.current = KickRecord{EpisodeID: t.EpisodeID.String(), KickStep: -1}
		return
	}

	if t.Terms.KickedNow {
		k.current.Kicked = true
		k.current.KickStep = t.Number
	}

	if t.Last() {
		k.current.Length = t.Number
		k.current.End = t.EndType().String()
		k.records = append(k.records, k.current)
	}
}

// Data returns the records of all finished episodes
func (k *Kicks) Data() []KickRecord {
	return append([]KickRecord(nil), k.records...)
}

// Rate returns the fraction of finished episodes with a kick, or 0 if
// no episode has finished
func (k *Kicks) Rate() float64 {
	if len(k.records) == 0 {
		return 0.0
	}

	kicked := make([]float64, len(k.records))
	for i, record := range k.records {
		if record.Kicked {
			kicked[i] = 1.0
		}
	}
	return floats.Sum(kicked) / float64(len(kicked))
}

// Save saves the data tracked by the Kicks Tracker to disk.
func (k *Kicks) Save() error {
	if err := save(k.filename, k.records); err != nil {
		return fmt.Errorf("save: could not save kicks: %w", err)
	}
	return nil
}

// LoadKicks loads the data saved by a Kicks Tracker
func LoadKicks(filename string) ([]KickRecord, error) {
	var data []KickRecord
	if err := load(filename, &data); err != nil {
		return nil, fmt.Errorf("loadKicks: %w", err)
	}
	return data, nil
}
