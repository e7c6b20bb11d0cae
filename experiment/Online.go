package experiment

import (
	"fmt"

	"github.com/felixgeelhaar/bolt/v3"

	env "github.com/samuelfneumann/humanoidkick/environment"
	"github.com/samuelfneumann/humanoidkick/experiment/tracker"
	"github.com/samuelfneumann/humanoidkick/internal/logging"
	ts "github.com/samuelfneumann/humanoidkick/timestep"
)

// Online is an Experiment that runs a policy online only. No offline
// evaluation is performed.
type Online struct {
	env.Environment
	Policy
	maxSteps     uint
	currentSteps uint
	trackers     []tracker.Tracker
	logger       *bolt.Logger

	// OnStep is called after every environment step, if set
	OnStep func(ts.TimeStep)
}

// NewOnline creates and returns a new online experiment on a given
// environment with a given policy. The steps parameter determines how
// many timesteps the experiment is run for, and the t parameter
// is a slice of tracker.Tracker which determine what data is saved.
// Episode ends are logged at info level and every step's reward terms
// at debug level.
func NewOnline(e env.Environment, p Policy, steps uint, logger *bolt.Logger,
	t ...tracker.Tracker) *Online {
	if logger == nil {
		logger = logging.Discard()
	}
	return &Online{
		Environment: e,
		Policy:      p,
		maxSteps:    steps,
		trackers:    t,
		logger:      logger,
	}
}

// Register registers a tracker.Tracker with an Experiment so that data
// generated during the experiment can be tracked and saved
func (o *Online) Register(t tracker.Tracker) {
	o.trackers = append(o.trackers, t)
}

// RunEpisode runs a single episode of the experiment
func (o *Online) RunEpisode() bool {
	step := o.Environment.Reset()
	o.track(step)
	episodeReturn := 0.0

	// Run the next timestep
	for !step.Last() && o.currentSteps < o.maxSteps {
		o.currentSteps++

		// Select action, step in environment
		action := o.Policy.SelectAction(step)
		step, _ = o.Environment.Step(action)
		episodeReturn += step.Reward

		// Cache the environment step in each Tracker
		o.track(step)

		logging.Msg(o.logger.Debug(), "step",
			logging.EpisodeID(step.EpisodeID),
			logging.Step(step.Number),
			logging.Terms(step.Terms),
		)

		if o.OnStep != nil {
			o.OnStep(step)
		}
	}

	if step.Last() {
		logging.Msg(o.logger.Info(), "episode finished",
			logging.EpisodeID(step.EpisodeID),
			logging.Step(step.Number),
			logging.Return(episodeReturn),
			logging.End(step.EndType()),
			logging.Kicked(step.Terms.Kicked),
		)
	}

	// Return whether or not the max timestep limit has been reached
	return o.currentSteps >= o.maxSteps
}

// Run runs the entire experiment for all timesteps
func (o *Online) Run() {
	ended := false

	for !ended {
		ended = o.RunEpisode()
	}
}

// Steps returns the number of steps taken so far
func (o *Online) Steps() uint {
	return o.currentSteps
}

// Save saves the data cached by the Trackers to disk
func (o *Online) Save() error {
	for _, t := range o.trackers {
		if err := t.Save(); err != nil {
			return fmt.Errorf("save: %w", err)
		}
	}
	return nil
}

// track tracks the current timestep by caching its data in each tracker
func (o *Online) track(t ts.TimeStep) {
	for _, tr := range o.trackers {
		tr.Track(t)
	}
}
