package workload

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/inference-sim/sched-sim/sim"
)

// ParseMix parses the classic mix format: a process count followed by that many
// (A B C M) tuples. Parentheses are optional separators.
//
//	2 (0 1 3 1) (1 1 2 1)
func ParseMix(r io.Reader) ([]sim.ProcessSpec, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("reading mix: %w", err)
	}
	fields := strings.Fields(strings.NewReplacer("(", " ", ")", " ").Replace(string(data)))
	if len(fields) == 0 {
		return nil, fmt.Errorf("%w: empty mix, expected a process count", sim.ErrInvalidWorkload)
	}
	count, err := strconv.Atoi(fields[0])
	if err != nil || count < 0 {
		return nil, fmt.Errorf("%w: invalid process count %q", sim.ErrInvalidWorkload, fields[0])
	}
	values := fields[1:]
	if len(values) != 4*count {
		return nil, fmt.Errorf("%w: process count %d needs %d values, got %d", sim.ErrInvalidWorkload, count, 4*count, len(values))
	}

	specs := make([]sim.ProcessSpec, count)
	for i := range specs {
		var tuple [4]int64
		for j := range tuple {
			raw := values[4*i+j]
			v, err := strconv.ParseInt(raw, 10, 64)
			if err != nil {
				return nil, fmt.Errorf("%w: process %d field %d: %q is not an integer", sim.ErrInvalidWorkload, i, j, raw)
			}
			tuple[j] = v
		}
		specs[i] = sim.ProcessSpec{Arrival: tuple[0], BurstCeiling: tuple[1], CPUDemand: tuple[2], IOMultiplier: tuple[3]}
		if err := specs[i].Validate(); err != nil {
			return nil, fmt.Errorf("process %d: %w", i, err)
		}
	}
	return specs, nil
}

// LoadMixFile reads a mix-format workload from path.
func LoadMixFile(path string) ([]sim.ProcessSpec, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening mix file: %w", err)
	}
	defer f.Close()
	return ParseMix(f)
}

// Load reads a workload from path, choosing the format from the extension:
// .yaml/.yml is a WorkloadSpec, anything else is the mix format.
// The returned source is nil unless a YAML spec carries its own random numbers or seed.
func Load(path string) ([]sim.ProcessSpec, sim.RandomSource, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		spec, err := LoadWorkloadSpec(path)
		if err != nil {
			return nil, nil, err
		}
		if err := spec.Validate(); err != nil {
			return nil, nil, err
		}
		return spec.Specs(), spec.RandomSource(), nil
	default:
		specs, err := LoadMixFile(path)
		return specs, nil, err
	}
}

// ParseRandomNumbers reads whitespace-separated non-negative integers.
func ParseRandomNumbers(r io.Reader) (*sim.SequenceSource, error) {
	scanner := bufio.NewScanner(r)
	scanner.Split(bufio.ScanWords)
	var values []int64
	for scanner.Scan() {
		v, err := strconv.ParseInt(scanner.Text(), 10, 64)
		if err != nil {
			return nil, fmt.Errorf("%w: random number %d: %q is not an integer", sim.ErrInvalidConfig, len(values), scanner.Text())
		}
		if v < 0 {
			return nil, fmt.Errorf("%w: random number %d is negative (%d)", sim.ErrInvalidConfig, len(values), v)
		}
		values = append(values, v)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading random numbers: %w", err)
	}
	return sim.NewSequenceSource(values), nil
}

// LoadRandomFile reads a random-numbers file from path.
func LoadRandomFile(path string) (*sim.SequenceSource, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening random numbers file: %w", err)
	}
	defer f.Close()
	return ParseRandomNumbers(f)
}
