package workload

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/inference-sim/sched-sim/sim"
	"github.com/inference-sim/sched-sim/sim/internal/testutil"
)

func TestParseMix_ParenthesisedTuples(t *testing.T) {
	specs, err := ParseMix(strings.NewReader("2 (0 1 3 1) (1 1 2 1)\n"))
	require.NoError(t, err)
	assert.Equal(t, []sim.ProcessSpec{
		{Arrival: 0, BurstCeiling: 1, CPUDemand: 3, IOMultiplier: 1},
		{Arrival: 1, BurstCeiling: 1, CPUDemand: 2, IOMultiplier: 1},
	}, specs)
}

func TestParseMix_BareTuplesAcrossLines(t *testing.T) {
	specs, err := ParseMix(strings.NewReader("2\n0 4 10 2\n3 5 7 0\n"))
	require.NoError(t, err)
	require.Len(t, specs, 2)
	assert.Equal(t, int64(3), specs[1].Arrival)
	assert.Equal(t, int64(0), specs[1].IOMultiplier)
}

func TestParseMix_ZeroCount_EmptyWorkload(t *testing.T) {
	specs, err := ParseMix(strings.NewReader("0"))
	require.NoError(t, err)
	assert.Empty(t, specs)
}

func TestParseMix_Malformed_ReturnsInvalidWorkload(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"empty", ""},
		{"bad count", "two (0 1 1 1)"},
		{"negative count", "-1"},
		{"count mismatch", "2 (0 1 3 1)"},
		{"non integer", "1 (0 x 3 1)"},
		{"zero ceiling", "1 (0 0 3 1)"},
		{"zero demand", "1 (0 1 0 1)"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseMix(strings.NewReader(tt.input))
			require.Error(t, err)
			assert.True(t, errors.Is(err, sim.ErrInvalidWorkload), "got %v", err)
		})
	}
}

func TestLoad_DispatchesOnExtension(t *testing.T) {
	// GIVEN the same workload as mix and as YAML
	mixSpecs, mixSrc, err := Load(testutil.FixturePath(t, "two-process.mix"))
	require.NoError(t, err)
	yamlSpecs, yamlSrc, err := Load(testutil.FixturePath(t, "mixed.yaml"))
	require.NoError(t, err)

	// THEN both decode to identical descriptors; only YAML carries a source
	assert.Equal(t, mixSpecs, yamlSpecs)
	assert.Nil(t, mixSrc)
	assert.NotNil(t, yamlSrc)
}

func TestLoadMixFile_MissingFile_ReturnsError(t *testing.T) {
	_, err := LoadMixFile(testutil.FixturePath(t, "does-not-exist.mix"))
	assert.Error(t, err)
}

func TestParseRandomNumbers_ReadsAllValues(t *testing.T) {
	src, err := ParseRandomNumbers(strings.NewReader("5\n17 3\n\n9\n"))
	require.NoError(t, err)
	assert.Equal(t, 4, src.Len())

	var got []int64
	for i := 0; i < 4; i++ {
		v, err := src.Next()
		require.NoError(t, err)
		got = append(got, v)
	}
	assert.Equal(t, []int64{5, 17, 3, 9}, got)
}

func TestParseRandomNumbers_RejectsNegativeAndGarbage(t *testing.T) {
	_, err := ParseRandomNumbers(strings.NewReader("1 -4"))
	assert.True(t, errors.Is(err, sim.ErrInvalidConfig))
	_, err = ParseRandomNumbers(strings.NewReader("1 abc"))
	assert.True(t, errors.Is(err, sim.ErrInvalidConfig))
}

func TestLoadRandomFile_Fixture(t *testing.T) {
	src, err := LoadRandomFile(testutil.FixturePath(t, "random-numbers"))
	require.NoError(t, err)
	assert.Equal(t, 50, src.Len())
	first, err := src.Next()
	require.NoError(t, err)
	assert.Equal(t, int64(1804289383), first)
}

func TestParseMix_Fixtures(t *testing.T) {
	tests := []struct {
		file string
		want int
	}{
		{"empty.mix", 0},
		{"two-process.mix", 2},
		{"three-process.mix", 3},
	}
	for _, tt := range tests {
		t.Run(tt.file, func(t *testing.T) {
			specs, err := ParseMix(bytes.NewReader(testutil.LoadFixture(t, tt.file)))
			require.NoError(t, err)
			assert.Len(t, specs, tt.want)
		})
	}
}

func TestThreeProcessFixture_RunsUnderEveryPolicy(t *testing.T) {
	// GIVEN the three-process mix and the random-numbers fixture
	specs, err := LoadMixFile(testutil.FixturePath(t, "three-process.mix"))
	require.NoError(t, err)
	src, err := LoadRandomFile(testutil.FixturePath(t, "random-numbers"))
	require.NoError(t, err)

	for _, name := range sim.PolicyNames() {
		t.Run(name, func(t *testing.T) {
			// WHEN simulated with invariant checks
			res, err := sim.Simulate(specs, name, src, sim.NewRunConfig(sim.DefaultQuantum, 0, true))

			// THEN every process completes
			require.NoError(t, err)
			assert.Len(t, res.Finished, 3)
		})
	}
}
