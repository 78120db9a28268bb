package workload

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/inference-sim/sched-sim/sim"
	"github.com/inference-sim/sched-sim/sim/internal/testutil"
)

func writeSpec(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "workload.yaml")
	if err := os.WriteFile(path, []byte(body), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadWorkloadSpec_ValidYAML_LoadsCorrectly(t *testing.T) {
	// GIVEN the fixture spec with two processes and an inline random sequence
	spec, err := LoadWorkloadSpec(testutil.FixturePath(t, "mixed.yaml"))
	require.NoError(t, err)

	// THEN fields are decoded in input order
	assert.Equal(t, "1", spec.Version)
	require.Len(t, spec.Processes, 2)
	assert.Equal(t, ProcessSpec{Arrival: 1, BurstCeiling: 1, CPUDemand: 2, IOMultiplier: 1}, spec.Processes[1])
	assert.Len(t, spec.RandomNumbers, 10)
	assert.NoError(t, spec.Validate())
}

func TestLoadWorkloadSpec_UnknownKey_ReturnsError(t *testing.T) {
	// GIVEN a spec with a typo in a process field
	path := writeSpec(t, `
processes:
  - {arival: 0, burst_ceiling: 1, cpu_demand: 3, io_multiplier: 1}
`)

	// WHEN loaded
	_, err := LoadWorkloadSpec(path)

	// THEN strict parsing rejects it
	assert.Error(t, err)
}

func TestLoadWorkloadSpec_MissingVersion_DefaultsToV1(t *testing.T) {
	path := writeSpec(t, "processes: []\n")
	spec, err := LoadWorkloadSpec(path)
	require.NoError(t, err)
	assert.Equal(t, "1", spec.Version)
}

func TestWorkloadSpec_Validate_RejectsBadFields(t *testing.T) {
	tests := []struct {
		name string
		spec WorkloadSpec
	}{
		{"unknown version", WorkloadSpec{Version: "7"}},
		{"zero ceiling", WorkloadSpec{Processes: []ProcessSpec{{BurstCeiling: 0, CPUDemand: 1}}}},
		{"zero demand", WorkloadSpec{Processes: []ProcessSpec{{BurstCeiling: 1, CPUDemand: 0}}}},
		{"negative arrival", WorkloadSpec{Processes: []ProcessSpec{{Arrival: -1, BurstCeiling: 1, CPUDemand: 1}}}},
		{"negative multiplier", WorkloadSpec{Processes: []ProcessSpec{{BurstCeiling: 1, CPUDemand: 1, IOMultiplier: -2}}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.spec.Validate()
			require.Error(t, err)
			assert.True(t, errors.Is(err, sim.ErrInvalidWorkload), "want ErrInvalidWorkload, got %v", err)
		})
	}
}

func TestWorkloadSpec_Validate_NegativeRandom_SameErrorAsRandomFile(t *testing.T) {
	// GIVEN the same negative value inline and in a random-numbers stream
	spec := WorkloadSpec{Processes: []ProcessSpec{{BurstCeiling: 1, CPUDemand: 1}}, RandomNumbers: []int64{3, -1}}
	_, fileErr := ParseRandomNumbers(strings.NewReader("3 -1"))

	// WHEN validated
	specErr := spec.Validate()

	// THEN both report a run configuration error
	assert.True(t, errors.Is(specErr, sim.ErrInvalidConfig), "yaml: got %v", specErr)
	assert.True(t, errors.Is(fileErr, sim.ErrInvalidConfig), "file: got %v", fileErr)
	assert.False(t, errors.Is(specErr, sim.ErrInvalidWorkload))
}

func TestWorkloadSpec_RandomSource_PrefersInlineSequence(t *testing.T) {
	seed := int64(9)
	spec := WorkloadSpec{RandomNumbers: []int64{4, 5}, Seed: &seed}

	src := spec.RandomSource()

	seq, ok := src.(*sim.SequenceSource)
	require.True(t, ok, "inline numbers must yield a SequenceSource, got %T", src)
	assert.Equal(t, 2, seq.Len())
}

func TestWorkloadSpec_RandomSource_SeedOnly(t *testing.T) {
	seed := int64(9)
	spec := WorkloadSpec{Seed: &seed}
	_, ok := spec.RandomSource().(*sim.SeededSource)
	assert.True(t, ok)
}

func TestWorkloadSpec_RandomSource_NoneGiven_ReturnsNil(t *testing.T) {
	spec := WorkloadSpec{}
	assert.Nil(t, spec.RandomSource())
}
