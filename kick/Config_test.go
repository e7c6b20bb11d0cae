package kick

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"
)

func writeFile(t *testing.T, name, contents string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(contents), 0o644); err != nil {
		t.Fatalf("write %v: %v", name, err)
	}
	return path
}

func TestLoadConfigYAMLOverridesDefaults(t *testing.T) {
	path := writeFile(t, "kick.yaml", `
weights:
  w_power: 5.0
params:
  v_min_contact: 0.25
  power_gate: kick
termination:
  max_steps: 100
observation:
  use_ball_vel: false
`)

	c, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("loadConfig: %v", err)
	}

	want := DefaultConfig()
	want.Weights.Power = 5.0
	want.Params.VMinContact = 0.25
	want.Params.PowerGate = GateOnKick
	want.Termination.MaxSteps = 100
	want.Observation.BallVel = false

	if c != want {
		t.Errorf("config = %+v\nwant %+v", c, want)
	}
}

func TestLoadConfigJSON(t *testing.T) {
	path := writeFile(t, "kick.json",
		`{"params": {"upright_min": 0.7, "power_gate": "latch"}}`)

	c, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("loadConfig: %v", err)
	}
	if c.Params.UprightMin != 0.7 {
		t.Errorf("upright_min = %v, want 0.7", c.Params.UprightMin)
	}
	if c.Weights != DefaultRewardWeights() {
		t.Errorf("weights = %+v, want defaults", c.Weights)
	}
}

func TestLoadConfigErrors(t *testing.T) {
	tests := []struct {
		name, file, contents string
	}{
		{"unknown gate", "kick.yaml", "params:\n  power_gate: sometimes\n"},
		{"bad json", "kick.json", "{"},
		{"unknown extension", "kick.toml", "a = 1"},
	}

	for _, test := range tests {
		path := writeFile(t, test.file, test.contents)
		if _, err := LoadConfig(path); err == nil {
			t.Errorf("%v: expected error", test.name)
		}
	}

	if _, err := LoadConfig(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("missing file: expected error")
	}
}

func TestConfigWriteYAMLReloads(t *testing.T) {
	c := DefaultConfig()
	c.Params.PowerGate = GateOnKick
	c.Termination.MinUpDot = 0.4

	var buf bytes.Buffer
	if err := c.WriteYAML(&buf); err != nil {
		t.Fatalf("writeYAML: %v", err)
	}
	if !bytes.Contains(buf.Bytes(), []byte("power_gate: kick")) {
		t.Errorf("power gate not written by name:\n%v", buf.String())
	}

	path := writeFile(t, "out.yaml", buf.String())
	loaded, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("loadConfig: %v", err)
	}
	if loaded != c {
		t.Errorf("reloaded config = %+v, want %+v", loaded, c)
	}
}

func TestPowerGateText(t *testing.T) {
	var g PowerGate
	if err := g.UnmarshalText([]byte("kick")); err != nil || g != GateOnKick {
		t.Errorf("unmarshal kick: got %v, %v", g, err)
	}
	if _, err := PowerGate(7).MarshalText(); err == nil {
		t.Error("marshalling an unknown gate should fail")
	}
	if GateOnLatch.String() != "latch" {
		t.Errorf("GateOnLatch.String() = %v", GateOnLatch.String())
	}
}
