package tracker

import (
	"fmt"

	"github.com/samuelfneumann/humanoidkick/timestep"
)

// EpisodeLength tracks and saves the lengths of episodes in an
// experiment.
// Note that an episode must finish for this Tracker to save its data.
// If the last episode in an experiment does not finish, that episode's
// length will not be saved.
type EpisodeLength struct {
	episodeLengths []int
	filename       string
}

// NewEpisodeLength returns a new EpisodeLength tracker which will save
// its data at the specified location filename
func NewEpisodeLength(filename string) *EpisodeLength {
	var saver EpisodeLength
	saver.filename = filename
	return &saver
}

// Track tracks the episode lengths in an experiment. When this function
// is called, it caches the episode length if the timestep passed to it
// is the last timestep in the episode. Otherwise, it waits to receive
// the last timestep in an episode before caching and storing the
// episode lengths, for saving later.
func (e *EpisodeLength) Track(t timestep.TimeStep) {
	if t.Last() {
		e.episodeLengths = append(e.episodeLengths, t.Number)
	}
}

// Data returns the lengths of all finished episodes
func (e *EpisodeLength) Data() []int {
	return append([]int(nil), e.episodeLengths...)
}

// Save saves the data tracked by the EpisodeLength Tracker to disk.
func (e *EpisodeLength) Save() error {
	if err := save(e.filename, e.episodeLengths); err != nil {
		return fmt.Errorf("save: could not save episode lengths: %w", err)
	}
	return nil
}

// LoadEpisodeLengths loads the data saved by an EpisodeLength Tracker
func LoadEpisodeLengths(filename string) ([]int, error) {
	var data []int
	if err := load(filename, &data); err != nil {
		return nil, fmt.Errorf("loadEpisodeLengths: %w", err)
	}
	return data, nil
}
