// Package trace provides per-cycle trace recording for scheduling runs.
// It has no dependencies on sim/ and stores pure data types.
package trace

// ProcessSnapshot captures one process during one cycle.
type ProcessSnapshot struct {
	ID             int
	State          string
	Suspended      bool
	RemainingBurst int64 // CPU burst while running, IO burst while blocked, 0 otherwise
}

// CycleRecord captures every process's state during a single cycle,
// taken after the dispatch decision and before timers advance.
type CycleRecord struct {
	Cycle          int64
	Processes      []ProcessSnapshot
	ReadyDepth     int
	SuspendedDepth int
}

// RandomRecord captures a single random draw made to size a CPU burst.
type RandomRecord struct {
	Cycle     int64
	ProcessID int
	Value     int64
	Burst     int64
}
