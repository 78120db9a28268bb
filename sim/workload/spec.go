package workload

import (
	"bytes"
	"fmt"
	"os"

	"github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"

	"github.com/inference-sim/sched-sim/sim"
)

// WorkloadSpec is the YAML form of a workload.
// Loaded from YAML via LoadWorkloadSpec(path).
type WorkloadSpec struct {
	Version       string        `yaml:"version"`
	Processes     []ProcessSpec `yaml:"processes"`
	RandomNumbers []int64       `yaml:"random_numbers,omitempty"` // optional inline random sequence
	Seed          *int64        `yaml:"seed,omitempty"`           // seeded random source when no sequence is given
}

// ProcessSpec defines a single process in YAML.
type ProcessSpec struct {
	Arrival      int64 `yaml:"arrival"`
	BurstCeiling int64 `yaml:"burst_ceiling"`
	CPUDemand    int64 `yaml:"cpu_demand"`
	IOMultiplier int64 `yaml:"io_multiplier"`
}

var validVersions = map[string]bool{
	"": true, "1": true,
}

// LoadWorkloadSpec reads and parses a YAML workload specification file.
// Uses strict parsing: unrecognized keys (typos) are rejected.
func LoadWorkloadSpec(path string) (*WorkloadSpec, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading workload spec: %w", err)
	}
	var spec WorkloadSpec
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&spec); err != nil {
		return nil, fmt.Errorf("parsing workload spec: %w", err)
	}
	if spec.Version == "" {
		spec.Version = "1"
	}
	return &spec, nil
}

// Validate checks that all fields in the spec are valid.
func (s *WorkloadSpec) Validate() error {
	if !validVersions[s.Version] {
		return fmt.Errorf("%w: unknown version %q; valid: 1", sim.ErrInvalidWorkload, s.Version)
	}
	for i, p := range s.Processes {
		if err := p.toSim().Validate(); err != nil {
			return fmt.Errorf("processes[%d]: %w", i, err)
		}
	}
	for i, v := range s.RandomNumbers {
		if v < 0 {
			return fmt.Errorf("%w: random_numbers[%d] must be non-negative, got %d", sim.ErrInvalidConfig, i, v)
		}
	}
	if s.Seed != nil && len(s.RandomNumbers) > 0 {
		logrus.Warnf("workload spec sets both seed and random_numbers; seed is ignored")
	}
	return nil
}

// Specs converts the YAML processes to engine descriptors, in input order.
func (s *WorkloadSpec) Specs() []sim.ProcessSpec {
	out := make([]sim.ProcessSpec, len(s.Processes))
	for i, p := range s.Processes {
		out[i] = p.toSim()
	}
	return out
}

// RandomSource returns the source the spec carries, or nil if it carries none.
func (s *WorkloadSpec) RandomSource() sim.RandomSource {
	switch {
	case len(s.RandomNumbers) > 0:
		return sim.NewSequenceSource(s.RandomNumbers)
	case s.Seed != nil:
		return sim.NewSeededSource(sim.NewSimulationKey(*s.Seed))
	default:
		return nil
	}
}

func (p ProcessSpec) toSim() sim.ProcessSpec {
	return sim.ProcessSpec{
		Arrival:      p.Arrival,
		BurstCeiling: p.BurstCeiling,
		CPUDemand:    p.CPUDemand,
		IOMultiplier: p.IOMultiplier,
	}
}
