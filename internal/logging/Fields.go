package logging

import (
	"github.com/felixgeelhaar/bolt/v3"
	"github.com/google/uuid"

	"github.com/samuelfneumann/humanoidkick/kick"
	"github.com/samuelfneumann/humanoidkick/timestep"
)

// Field is a function that applies structured data to a log event.
type Field func(*bolt.Event) *bolt.Event

// With applies fields to e. Events dropped by the logger's level are
// nil and are returned unchanged.
func With(e *bolt.Event, fields ...Field) *bolt.Event {
	if e == nil {
		return e
	}
	for _, f := range fields {
		e = f(e)
	}
	return e
}

// Msg applies fields to e and sends it with msg. Dropped events are
// ignored.
func Msg(e *bolt.Event, msg string, fields ...Field) {
	if e == nil {
		return
	}
	With(e, fields...).Msg(msg)
}

// EpisodeID adds an episode id field.
func EpisodeID(id uuid.UUID) Field {
	return func(e *bolt.Event) *bolt.Event {
		return e.Str("episode_id", id.String())
	}
}

// Step adds a step number field.
func Step(n int) Field {
	return func(e *bolt.Event) *bolt.Event {
		return e.Int("step", n)
	}
}

// Return adds an episodic return field.
func Return(r float64) Field {
	return func(e *bolt.Event) *bolt.Event {
		return e.Float64("return", r)
	}
}

// End adds the end type of an episode.
func End(t timestep.EndType) Field {
	return func(e *bolt.Event) *bolt.Event {
		return e.Str("end", t.String())
	}
}

// Kicked adds the kick latch.
func Kicked(kicked bool) Field {
	return func(e *bolt.Event) *bolt.Event {
		return e.Bool("kicked", kicked)
	}
}

// Terms adds every diagnostic reward term under its term name.
func Terms(terms kick.Terms) Field {
	return func(e *bolt.Event) *bolt.Event {
		values := terms.Values()
		for i, name := range kick.TermNames {
			e = e.Float64(name, values[i])
		}
		return e
	}
}

// Component adds a component field for categorization.
func Component(name string) Field {
	return func(e *bolt.Event) *bolt.Event {
		return e.Str("component", name)
	}
}

// ErrorField adds an error field.
func ErrorField(err error) Field {
	return func(e *bolt.Event) *bolt.Event {
		if err == nil {
			return e
		}
		return e.Err(err)
	}
}
