package logging

import (
	"bytes"
	"errors"
	"testing"

	"github.com/felixgeelhaar/bolt/v3"
	"github.com/google/uuid"

	"github.com/samuelfneumann/humanoidkick/kick"
	"github.com/samuelfneumann/humanoidkick/timestep"
)

// testLogger creates a logger that writes to a buffer for testing
func testLogger(t *testing.T, level string) (*bolt.Logger, *bytes.Buffer) {
	t.Helper()
	buf := &bytes.Buffer{}
	logger, err := New(Config{Level: level, Format: "json", Output: buf})
	if err != nil {
		t.Fatalf("new: %v", err)
	}
	return logger, buf
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		input   string
		want    bolt.Level
		wantErr bool
	}{
		{"trace", bolt.TRACE, false},
		{"debug", bolt.DEBUG, false},
		{"INFO", bolt.INFO, false},
		{"", bolt.INFO, false},
		{"warn", bolt.WARN, false},
		{"error", bolt.ERROR, false},
		{"loud", bolt.INFO, true},
	}

	for _, test := range tests {
		got, err := ParseLevel(test.input)
		if (err != nil) != test.wantErr {
			t.Errorf("ParseLevel(%q) error = %v, want error %v", test.input,
				err, test.wantErr)
		}
		if got != test.want {
			t.Errorf("ParseLevel(%q) = %v, want %v", test.input, got,
				test.want)
		}
	}
}

func TestNewRejectsUnknownFormat(t *testing.T) {
	if _, err := New(Config{Level: "info", Format: "xml"}); err == nil {
		t.Error("unknown format should be rejected")
	}
	if _, err := New(Config{Level: "chatty", Format: "json"}); err == nil {
		t.Error("unknown level should be rejected")
	}
}

func TestFields(t *testing.T) {
	logger, buf := testLogger(t, "info")

	id := uuid.New()
	With(logger.Info(),
		EpisodeID(id),
		Step(12),
		End(timestep.Fallen),
		Kicked(true),
		Component("test"),
		ErrorField(errors.New("test error")),
	).Msg("episode end")

	for _, want := range []string{
		`"episode_id":"` + id.String() + `"`,
		`"step":12`,
		`"end":"Fallen"`,
		`"kicked":true`,
		`"component":"test"`,
		`"error":"test error"`,
	} {
		if !bytes.Contains(buf.Bytes(), []byte(want)) {
			t.Errorf("expected %s in output: %s", want, buf.String())
		}
	}
}

func TestTermsField(t *testing.T) {
	logger, buf := testLogger(t, "info")

	_, terms, _ := kick.ComputeReward(kick.RewardInput{Alive: true}, false,
		kick.DefaultRewardWeights(), kick.DefaultRewardParams())
	With(logger.Info(), Terms(terms)).Msg("step")

	for _, name := range kick.TermNames {
		if !bytes.Contains(buf.Bytes(), []byte(`"`+name+`":`)) {
			t.Errorf("expected term %v in output: %s", name, buf.String())
		}
	}
}

func TestWithDroppedEvent(t *testing.T) {
	logger, buf := testLogger(t, "error")

	// Debug events are dropped at error level
	Msg(logger.Debug(), "dropped", Step(1), Terms(kick.Terms{}))
	if buf.Len() != 0 {
		t.Errorf("dropped event was written: %s", buf.String())
	}
}
