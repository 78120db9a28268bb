package trace

// TraceSummary aggregates statistics from a SimulationTrace.
type TraceSummary struct {
	TotalCycles       int
	StateCycles       map[string]int // state → number of process-cycles spent in it
	SuspendedCycles   int            // process-cycles spent ready but suspended
	MaxReadyDepth     int
	MaxSuspendedDepth int
	Dispatches        int // number of random draws, one per dispatch
	IdleCycles        int // cycles with no running process
}

// Summarize computes aggregate statistics from a SimulationTrace.
// Safe for nil or empty traces (returns zero-value fields).
func Summarize(st *SimulationTrace) *TraceSummary {
	summary := &TraceSummary{
		StateCycles: make(map[string]int),
	}
	if st == nil {
		return summary
	}

	summary.TotalCycles = len(st.Cycles)
	summary.Dispatches = len(st.Randoms)
	for _, c := range st.Cycles {
		running := false
		for _, p := range c.Processes {
			summary.StateCycles[p.State]++
			if p.Suspended {
				summary.SuspendedCycles++
			}
			if p.State == "running" {
				running = true
			}
		}
		if !running {
			summary.IdleCycles++
		}
		summary.MaxReadyDepth = max(summary.MaxReadyDepth, c.ReadyDepth)
		summary.MaxSuspendedDepth = max(summary.MaxSuspendedDepth, c.SuspendedDepth)
	}
	return summary
}
