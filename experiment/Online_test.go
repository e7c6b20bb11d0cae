package experiment

import (
	"bytes"
	"path/filepath"
	"testing"

	"gonum.org/v1/gonum/mat"

	"github.com/samuelfneumann/humanoidkick/environment/box2d/kicker"
	"github.com/samuelfneumann/humanoidkick/experiment/tracker"
	"github.com/samuelfneumann/humanoidkick/internal/logging"
	"github.com/samuelfneumann/humanoidkick/kick"
	ts "github.com/samuelfneumann/humanoidkick/timestep"
)

func newKicker(t *testing.T, maxSteps int) *kicker.Kicker {
	t.Helper()
	cfg := kick.DefaultConfig()
	cfg.Termination.MaxSteps = maxSteps
	k, _ := kicker.New(kicker.DefaultStarter(1), cfg, 1.0)
	return k
}

func TestUniformPolicy(t *testing.T) {
	k := newKicker(t, 10)
	spec := k.ActionSpec()
	p := NewUniform(spec, 5)
	q := NewUniform(spec, 5)

	for i := 0; i < 100; i++ {
		a := p.SelectAction(k.LastTimeStep())
		b := q.SelectAction(k.LastTimeStep())
		if !mat.Equal(a, b) {
			t.Fatal("policies with the same seed diverged")
		}
		if !spec.Contains(a) {
			t.Fatalf("action %v outside the action spec", a.RawVector().Data)
		}
	}
}

func TestOnlineRun(t *testing.T) {
	const maxSteps = 4
	const budget = 10

	k := newKicker(t, maxSteps)
	dir := t.TempDir()

	lengths := tracker.NewEpisodeLength(filepath.Join(dir, "length.bin"))
	returns := tracker.NewReturn(filepath.Join(dir, "return.bin"))
	kicks := tracker.NewKicks(filepath.Join(dir, "kicks.bin"))

	var buf bytes.Buffer
	logger, err := logging.New(logging.Config{Level: "info", Format: "json",
		Output: &buf})
	if err != nil {
		t.Fatalf("new logger: %v", err)
	}

	o := NewOnline(k, NewUniform(k.ActionSpec(), 1), budget, logger,
		lengths, returns)
	o.Register(kicks)

	steps := 0
	o.OnStep = func(ts.TimeStep) { steps++ }
	o.Run()

	if steps != budget || o.Steps() != budget {
		t.Errorf("ran %v steps (counted %v), want %v", o.Steps(), steps,
			budget)
	}

	// Every finished episode lasts at most maxSteps steps
	total := 0
	for _, length := range lengths.Data() {
		if length < 1 || length > maxSteps {
			t.Errorf("episode length %v outside [1, %v]", length, maxSteps)
		}
		total += length
	}
	if total > budget {
		t.Errorf("finished episodes cover %v steps, budget was %v", total,
			budget)
	}
	if len(lengths.Data()) < budget/maxSteps {
		t.Errorf("only %v episodes finished", len(lengths.Data()))
	}
	if len(returns.Data()) != len(lengths.Data()) ||
		len(kicks.Data()) != len(lengths.Data()) {
		t.Errorf("trackers disagree on finished episodes: %v, %v, %v",
			len(lengths.Data()), len(returns.Data()), len(kicks.Data()))
	}

	if err := o.Save(); err != nil {
		t.Fatalf("save: %v", err)
	}
	if _, err := tracker.LoadData(filepath.Join(dir, "return.bin")); err != nil {
		t.Errorf("loadData: %v", err)
	}

	if !bytes.Contains(buf.Bytes(), []byte(`"message":"episode finished"`)) &&
		!bytes.Contains(buf.Bytes(), []byte("episode finished")) {
		t.Errorf("episode ends were not logged: %s", buf.String())
	}
}

func TestOnlineRegisteredTracker(t *testing.T) {
	k := newKicker(t, 3)
	lengths := tracker.NewEpisodeLength(filepath.Join(t.TempDir(), "l.bin"))

	o := NewOnline(k, NewUniform(k.ActionSpec(), 2), 3, nil,
		tracker.Register(lengths, k))
	o.RunEpisode()

	data := lengths.Data()
	if len(data) != 1 || data[0] > 3 {
		t.Errorf("registered tracker recorded %v, want one episode", data)
	}
}

func TestOnlineSaveError(t *testing.T) {
	k := newKicker(t, 2)
	bad := tracker.NewReturn(filepath.Join(t.TempDir(), "missing", "r.bin"))

	o := NewOnline(k, NewUniform(k.ActionSpec(), 3), 2, nil, bad)
	o.Run()
	if err := o.Save(); err == nil {
		t.Error("saving into a missing directory should fail")
	}
}
