package sim

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/require"
)

// twoProcessWorkload is the "2 (0 1 3 1) (1 1 2 1)" mix: every burst is 1
// regardless of the random value, and every IO burst is 1.
func twoProcessWorkload() []ProcessSpec {
	return []ProcessSpec{
		{Arrival: 0, BurstCeiling: 1, CPUDemand: 3, IOMultiplier: 1},
		{Arrival: 1, BurstCeiling: 1, CPUDemand: 2, IOMultiplier: 1},
	}
}

// zeros returns n zero random values.
func zeros(n int) []int64 {
	return make([]int64, n)
}

// testGenerateWorkload builds a reproducible random workload of n processes
// with small parameters so that runs stay short.
func testGenerateWorkload(seed int64, n int) []ProcessSpec {
	rng := rand.New(rand.NewSource(seed))
	specs := make([]ProcessSpec, n)
	for i := range specs {
		specs[i] = ProcessSpec{
			Arrival:      rng.Int63n(10),
			BurstCeiling: 1 + rng.Int63n(5),
			CPUDemand:    1 + rng.Int63n(12),
			IOMultiplier: rng.Int63n(4),
		}
	}
	return specs
}

// mustNewSimulator builds a simulator over a zero-valued random sequence long
// enough for any test workload.
func mustNewSimulator(t *testing.T, specs []ProcessSpec, policy Policy) *Simulator {
	t.Helper()
	sim, err := NewSimulator(specs, policy, NewBurstGenerator(NewSequenceSource(zeros(1000)), 0), nil)
	require.NoError(t, err)
	sim.VerifyInvariants = true
	return sim
}

// processByID returns the final record of process id from a result.
func processByID(t *testing.T, res *Result, id int) Process {
	t.Helper()
	require.Less(t, id, len(res.Processes))
	return res.Processes[id]
}

func finishedIDs(res *Result) []int {
	ids := make([]int, len(res.Finished))
	for i, p := range res.Finished {
		ids[i] = p.ID
	}
	return ids
}
