package cmd

import (
	"bytes"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// RunFile is the YAML run configuration accepted by --config.
// Pointer fields distinguish "absent" from the zero value.
type RunFile struct {
	Workload      string   `yaml:"workload"`
	RandomFile    string   `yaml:"random_file"`
	Seed          *int64   `yaml:"seed"`
	Policies      []string `yaml:"policies"`
	Quantum       *int64   `yaml:"quantum"`
	IOBurstOffset *int64   `yaml:"io_burst_offset"`
	Verbose       *bool    `yaml:"verbose"`
	ShowRandom    *bool    `yaml:"show_random"`
	Check         *bool    `yaml:"check"`
	Format        string   `yaml:"format"`
}

// LoadRunFile parses a run config with strict field checking: typos are errors.
func LoadRunFile(path string) (*RunFile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading run config: %w", err)
	}
	var rf RunFile
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&rf); err != nil {
		return nil, fmt.Errorf("parsing run config %s: %w", path, err)
	}
	return &rf, nil
}
