package kick

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// Config gathers every parameter of the kick task. Configurations are
// plain values: build one at start up and share it by value across
// all calls and environments.
type Config struct {
	Weights     RewardWeights     `json:"weights" yaml:"weights"`
	Params      RewardParams      `json:"params" yaml:"params"`
	Termination TerminationParams `json:"termination" yaml:"termination"`
	Observation ObsSpec           `json:"observation" yaml:"observation"`
}

// DefaultConfig returns the default kick task configuration
func DefaultConfig() Config {
	return Config{
		Weights:     DefaultRewardWeights(),
		Params:      DefaultRewardParams(),
		Termination: DefaultTerminationParams(),
		Observation: DefaultObsSpec(),
	}
}

// LoadConfig reads a configuration file on top of DefaultConfig, so a
// file only needs to name the fields it overrides. Files ending in
// .json are decoded as JSON, files ending in .yaml or .yml as YAML.
func LoadConfig(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("loadConfig: could not read config: %w",
			err)
	}

	c := DefaultConfig()
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".json":
		err = json.Unmarshal(data, &c)
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, &c)
	default:
		return Config{}, fmt.Errorf("loadConfig: unknown config file "+
			"extension %q", ext)
	}
	if err != nil {
		return Config{}, fmt.Errorf("loadConfig: could not decode %v: %w",
			path, err)
	}

	return c, nil
}

// WriteYAML writes the configuration to w as YAML
func (c Config) WriteYAML(w io.Writer) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(c); err != nil {
		return fmt.Errorf("writeYAML: %w", err)
	}
	return enc.Close()
}
