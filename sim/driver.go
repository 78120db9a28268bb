package sim

import (
	"fmt"
	"slices"

	"github.com/sirupsen/logrus"

	"github.com/inference-sim/sched-sim/sim/trace"
)

// Result is the outcome of one policy run.
type Result struct {
	Policy string
	// Processes holds the final records in ID (input) order.
	Processes []Process
	// Finished holds the final records in completion order.
	Finished []Process
	// FinalCycle is the clock after the last step; 0 for an empty workload.
	FinalCycle    int64
	BlockedCycles int64
	RandomDraws   int
	// Trace is nil unless the run was traced.
	Trace *trace.SimulationTrace
}

// SameOutcome reports whether two results describe the identical schedule.
// Traces are not compared.
func (r *Result) SameOutcome(other *Result) bool {
	return r.Policy == other.Policy &&
		r.FinalCycle == other.FinalCycle &&
		r.BlockedCycles == other.BlockedCycles &&
		r.RandomDraws == other.RandomDraws &&
		slices.Equal(r.Processes, other.Processes) &&
		slices.Equal(r.Finished, other.Finished)
}

// Result snapshots the simulator's final state.
func (sim *Simulator) Result() *Result {
	res := &Result{
		Policy:        sim.Policy.Name(),
		Processes:     make([]Process, len(sim.Processes)),
		Finished:      make([]Process, len(sim.Finished)),
		FinalCycle:    sim.Clock,
		BlockedCycles: sim.BlockedCycles,
		RandomDraws:   sim.RandomDraws,
		Trace:         sim.Trace,
	}
	for i, p := range sim.Processes {
		res.Processes[i] = *p
	}
	for i, id := range sim.Finished {
		res.Finished[i] = *sim.Processes[id]
	}
	return res
}

// Simulate runs one policy over the workload in a single untraced pass.
// The random source is rewound before the run.
func Simulate(specs []ProcessSpec, policyName string, src RandomSource, cfg RunConfig) (*Result, error) {
	return runPass(specs, policyName, src, cfg, nil)
}

// SimulateTraced runs the policy twice over the same rewound random source:
// the first pass establishes the completion order, the second records the
// trace. The passes must agree exactly; a divergence is an engine bug and panics.
// With tracing disabled only the first pass runs.
func SimulateTraced(specs []ProcessSpec, policyName string, src RandomSource, cfg RunConfig, tc trace.TraceConfig) (*Result, error) {
	first, err := runPass(specs, policyName, src, cfg, nil)
	if err != nil {
		return nil, err
	}
	if !tc.Enabled() {
		return first, nil
	}
	second, err := runPass(specs, policyName, src, cfg, trace.NewSimulationTrace(tc))
	if err != nil {
		return nil, err
	}
	if !first.SameOutcome(second) {
		panic(fmt.Sprintf("SimulateTraced: %s replay diverged from the first pass", first.Policy))
	}
	return second, nil
}

// SimulateAll runs each named policy in turn. Every run gets a fresh context
// and a rewound source, so no state leaks between policies.
func SimulateAll(specs []ProcessSpec, policyNames []string, src RandomSource, cfg RunConfig, tc trace.TraceConfig) ([]*Result, error) {
	results := make([]*Result, 0, len(policyNames))
	for _, name := range policyNames {
		res, err := SimulateTraced(specs, name, src, cfg, tc)
		if err != nil {
			return nil, err
		}
		results = append(results, res)
	}
	return results, nil
}

func runPass(specs []ProcessSpec, policyName string, src RandomSource, cfg RunConfig, st *trace.SimulationTrace) (*Result, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	canonical, err := CanonicalPolicyName(policyName)
	if err != nil {
		return nil, err
	}
	if src == nil {
		return nil, fmt.Errorf("%w: random source must not be nil", ErrInvalidConfig)
	}
	src.Rewind()

	sim, err := NewSimulator(specs, NewPolicy(canonical, cfg.Quantum), NewBurstGenerator(src, cfg.IOBurstOffset), st)
	if err != nil {
		return nil, err
	}
	sim.VerifyInvariants = cfg.VerifyInvariants
	if err := sim.Run(); err != nil {
		return nil, fmt.Errorf("%s run: %w", canonical, err)
	}
	logrus.Debugf("%s: %d processes finished at cycle %d using %d random draws", canonical, len(sim.Finished), sim.Clock, sim.RandomDraws)
	return sim.Result(), nil
}
