package cli

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/samuelfneumann/humanoidkick/experiment/tracker"
)

// run executes the application with args and returns its outputs
func run(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	app := New().WithOutput(&stdout, &stderr)
	err := app.ExecuteWithArgs(context.Background(), args)
	return stdout.String(), stderr.String(), err
}

func TestVersion(t *testing.T) {
	out, _, err := run(t, "version")
	if err != nil {
		t.Fatalf("version: %v", err)
	}
	if !strings.Contains(out, Version) {
		t.Errorf("version output %q does not contain %q", out, Version)
	}
}

func TestSanity(t *testing.T) {
	out, _, err := run(t, "sanity", "--seed", "3")
	if err != nil {
		t.Fatalf("sanity: %v", err)
	}

	// 10 joints with all optional blocks: 2*10 + 3*3 + 3*3
	for _, want := range []string{
		"Sanity check OK",
		"obs_dim: 38",
		"reward_total:",
		"kicked_next:",
		"fallen: false timeout: false",
		"terms:",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("expected %q in output:\n%s", want, out)
		}
	}

	again, _, err := run(t, "sanity", "--seed", "3")
	if err != nil {
		t.Fatalf("sanity: %v", err)
	}
	if again != out {
		t.Errorf("same seed gave different output:\n%s\n%s", out, again)
	}
}

func TestSanityRejectsNegativeDims(t *testing.T) {
	if _, _, err := run(t, "sanity", "--joints", "-1"); err == nil {
		t.Error("negative joint count should be rejected")
	}
}

func TestConfigCommand(t *testing.T) {
	out, _, err := run(t, "config")
	if err != nil {
		t.Fatalf("config: %v", err)
	}
	if !strings.Contains(out, "power_gate: latch") {
		t.Errorf("default config output missing power gate:\n%s", out)
	}

	path := filepath.Join(t.TempDir(), "kick.yaml")
	if err := os.WriteFile(path, []byte("termination:\n  max_steps: 7\n"),
		0o644); err != nil {
		t.Fatal(err)
	}
	out, _, err = run(t, "config", "-c", path)
	if err != nil {
		t.Fatalf("config -c: %v", err)
	}
	if !strings.Contains(out, "max_steps: 7") {
		t.Errorf("override not applied:\n%s", out)
	}

	if _, _, err := run(t, "config", "-c", filepath.Join(t.TempDir(),
		"missing.yaml")); err == nil {
		t.Error("missing config file should be an error")
	}
}

func TestBadLogFlags(t *testing.T) {
	if _, _, err := run(t, "sanity", "--log-level", "loud"); err == nil {
		t.Error("unknown log level should be rejected")
	}
	if _, _, err := run(t, "sanity", "--log-format", "xml"); err == nil {
		t.Error("unknown log format should be rejected")
	}
}

func TestEval(t *testing.T) {
	dir := t.TempDir()
	cfg := filepath.Join(dir, "kick.yaml")
	if err := os.WriteFile(cfg, []byte("termination:\n  max_steps: 5\n"),
		0o644); err != nil {
		t.Fatal(err)
	}
	data := filepath.Join(dir, "data")

	out, stderr, err := run(t, "eval", "-c", cfg, "--steps", "20",
		"--seed", "4", "--data-dir", data, "--render-every", "10",
		"--log-format", "json")
	if err != nil {
		t.Fatalf("eval: %v\n%s", err, stderr)
	}

	for _, want := range []string{"steps: 20", "episodes:", "mean_return:",
		"kick_rate:", "mean_r_alive:", "frames: 2"} {
		if !strings.Contains(out, want) {
			t.Errorf("expected %q in output:\n%s", want, out)
		}
	}
	if !strings.Contains(stderr, "episode finished") {
		t.Errorf("episode ends were not logged:\n%s", stderr)
	}

	for _, name := range []string{"return.bin", "length.bin", "kicks.bin",
		"terms.bin", "frame_000000.png", "frame_000001.png"} {
		if _, err := os.Stat(filepath.Join(data, name)); err != nil {
			t.Errorf("expected %v to be written: %v", name, err)
		}
	}

	lengths, err := tracker.LoadEpisodeLengths(filepath.Join(data,
		"length.bin"))
	if err != nil {
		t.Fatalf("loadEpisodeLengths: %v", err)
	}
	for _, l := range lengths {
		if l > 5 {
			t.Errorf("episode of length %v exceeds the step limit", l)
		}
	}
}

func TestEvalInterrupted(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	var stdout, stderr bytes.Buffer
	app := New().WithOutput(&stdout, &stderr)
	err := app.ExecuteWithArgs(ctx, []string{"eval", "--steps", "50",
		"--log-format", "json"})
	if err != nil {
		t.Fatalf("interrupted eval should exit cleanly, got %v", err)
	}

	if !strings.Contains(stdout.String(), "steps: 0") {
		t.Errorf("expected an empty summary:\n%s", stdout.String())
	}
	if !strings.Contains(stderr.String(), "evaluation interrupted") {
		t.Errorf("interrupt was not logged:\n%s", stderr.String())
	}
}

func TestEvalRejectsBadOptions(t *testing.T) {
	for _, args := range [][]string{
		{"eval", "--steps", "0"},
		{"eval", "--render-every", "-1"},
		{"eval", "--discount", "1.5"},
	} {
		if _, _, err := run(t, args...); err == nil {
			t.Errorf("%v should be rejected", args)
		}
	}
}
