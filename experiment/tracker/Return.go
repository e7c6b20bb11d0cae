package tracker

import (
	"fmt"

	ts "github.com/samuelfneumann/humanoidkick/timestep"
)

// Return tracks and saves the episodic return in an experiment. When
// an environment returns a TimeStep, this Tracker will extract the
// reward and accumulate the return for each episode in the experiment.
//
// Note: An episode must finish for this Tracker to save its data.
// If the last episode in an experiment does not finish, that episode's
// return will not be saved.
type Return struct {
	lastTimeStep   int
	currentReturn  float64
	episodeReturns []float64
	filename       string
}

// NewReturn creates and returns a new *Return Tracker
func NewReturn(filename string) *Return {
	var saver Return
	saver.lastTimeStep = -1
	saver.filename = filename
	return &saver
}

// Track tracks the rewards seen on a timestep. By calling this method
// on every timestep, the Tracker will store all rewards seen in the
// episode, and save the cumulative reward for that episode as the
// episodic return. When a new episode starts, this method will
// automatically detect this and start accumulating the rewards for this
// new episode separately from the rewards seen on previous episodes.
//
// Track panics if it is called for non-sequential timesteps
func (r *Return) Track(step ts.TimeStep) {
	// A new episode may begin before the previous one ended, for
	// example when an experiment runs out of steps
	if step.First() {
		r.currentReturn = 0.0
		r.lastTimeStep = -1
	}

	// Ensure that Track is called on sequential timesteps
	if r.lastTimeStep+1 != step.Number {
		msg := fmt.Sprintf("track: last two timesteps tracked are not "+
			"sequential: timestep %v --> timestep %v were tracked",
			r.lastTimeStep, step.Number)
		panic(msg)
	}

	r.currentReturn += step.Reward
	r.lastTimeStep = step.Number

	// Episode has ended, save the return and begin tracking the
	// return for a new episode
	if step.Last() {
		r.episodeReturns = append(r.episodeReturns, r.currentReturn)
		r.currentReturn = 0.0
		r.lastTimeStep = -1
	}
}

// Data returns the returns of all finished episodes
func (r *Return) Data() []float64 {
	return append([]float64(nil), r.episodeReturns...)
}

// Save saves the data tracked by the Return Tracker to disk.
func (r *Return) Save() error {
	if err := save(r.filename, r.episodeReturns); err != nil {
		return fmt.Errorf("save: could not save returns: %w", err)
	}
	return nil
}
