// Package logging provides structured logging using bolt.
package logging

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/felixgeelhaar/bolt/v3"
)

// Config configures a logger
type Config struct {
	// Level is the minimum log level (trace, debug, info, warn, error)
	Level string `json:"level" yaml:"level"`

	// Format is the output format (json or console)
	Format string `json:"format" yaml:"format"`

	// Output is the output destination, os.Stderr if nil
	Output io.Writer `json:"-" yaml:"-"`
}

// DefaultConfig returns a configuration which logs at info level to
// the console
func DefaultConfig() Config {
	return Config{
		Level:  "info",
		Format: "console",
		Output: os.Stderr,
	}
}

// ParseLevel converts a level name to a bolt.Level
func ParseLevel(s string) (bolt.Level, error) {
	switch strings.ToLower(s) {
	case "trace":
		return bolt.TRACE, nil
	case "debug":
		return bolt.DEBUG, nil
	case "info", "":
		return bolt.INFO, nil
	case "warn":
		return bolt.WARN, nil
	case "error":
		return bolt.ERROR, nil
	default:
		return bolt.INFO, fmt.Errorf("parseLevel: unknown log level %q", s)
	}
}

// New returns a new logger with the given configuration
func New(config Config) (*bolt.Logger, error) {
	level, err := ParseLevel(config.Level)
	if err != nil {
		return nil, fmt.Errorf("new: %w", err)
	}

	output := config.Output
	if output == nil {
		output = os.Stderr
	}

	var handler bolt.Handler
	switch strings.ToLower(config.Format) {
	case "json":
		handler = bolt.NewJSONHandler(output)
	case "console", "":
		handler = bolt.NewConsoleHandler(output)
	default:
		return nil, fmt.Errorf("new: unknown log format %q", config.Format)
	}

	return bolt.New(handler).SetLevel(level), nil
}

// Discard returns a logger which drops all events
func Discard() *bolt.Logger {
	return bolt.New(bolt.NewJSONHandler(io.Discard)).SetLevel(bolt.ERROR)
}
