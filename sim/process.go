// Defines the Process struct that models one simulated job.
// Tracks the immutable input descriptor, the lifecycle state and the cumulative counters.

package sim

import (
	"fmt"
)

// ProcessState represents the lifecycle state of a process.
// ReadySuspended is not a state: it is Ready with Process.Suspended set.
type ProcessState string

const (
	StateUnstarted  ProcessState = "unstarted"
	StateReady      ProcessState = "ready"
	StateRunning    ProcessState = "running"
	StateBlocked    ProcessState = "blocked"
	StateTerminated ProcessState = "terminated"
)

// NoProcess marks an empty Running slot or an unset active process.
const NoProcess = -1

// ProcessSpec is the input descriptor of a process, fixed at creation.
type ProcessSpec struct {
	Arrival      int64 // A: cycle at which the process becomes ready
	BurstCeiling int64 // B: upper bound for CPU bursts
	CPUDemand    int64 // C: total CPU cycles required
	IOMultiplier int64 // M: scales a CPU burst into the following IO burst
}

// Validate reports a configuration error for out-of-range fields.
func (ps ProcessSpec) Validate() error {
	switch {
	case ps.Arrival < 0:
		return fmt.Errorf("%w: arrival must be non-negative, got %d", ErrInvalidWorkload, ps.Arrival)
	case ps.BurstCeiling <= 0:
		return fmt.Errorf("%w: burst ceiling must be positive, got %d", ErrInvalidWorkload, ps.BurstCeiling)
	case ps.CPUDemand <= 0:
		return fmt.Errorf("%w: cpu demand must be positive, got %d", ErrInvalidWorkload, ps.CPUDemand)
	case ps.IOMultiplier < 0:
		return fmt.Errorf("%w: io multiplier must be non-negative, got %d", ErrInvalidWorkload, ps.IOMultiplier)
	}
	return nil
}

func (ps ProcessSpec) String() string {
	return fmt.Sprintf("(%d %d %d %d)", ps.Arrival, ps.BurstCeiling, ps.CPUDemand, ps.IOMultiplier)
}

// Process models a single job's lifecycle in the simulation.
type Process struct {
	ProcessSpec

	ID        int          // Input position; used for tie-breaking and reporting
	State     ProcessState // unstarted, ready, running, blocked, terminated
	Suspended bool         // Ready and parked in ReadySuspended (Uniprogrammed only)

	CPUTime  int64 // Cycles spent running
	IOTime   int64 // Cycles spent blocked
	WaitTime int64 // Cycles spent ready (suspended included)

	FinishingCycle int64 // Cycle at which termination was observed; -1 until then

	RemainingCPUBurst int64 // Decremented once per running cycle
	RemainingIOBurst  int64 // Decremented once per blocked cycle
	LastCPUBurst      int64 // Burst assigned at the latest dispatch
	QuantumRemaining  int64 // Round-robin only; reset on every dispatch
	FirstDispatch     bool  // Set on dispatch, consumed when the IO burst is derived
}

// NewProcess constructs an unstarted Process from its descriptor.
func NewProcess(id int, spec ProcessSpec) *Process {
	return &Process{
		ProcessSpec:    spec,
		ID:             id,
		State:          StateUnstarted,
		FinishingCycle: -1,
	}
}

// Remaining returns the CPU demand not yet served.
func (p *Process) Remaining() int64 {
	return p.CPUDemand - p.CPUTime
}

// Turnaround returns finishing cycle minus arrival, or -1 if the process has not terminated.
func (p *Process) Turnaround() int64 {
	if p.FinishingCycle < 0 {
		return -1
	}
	return p.FinishingCycle - p.Arrival
}

// RemainingBurst is the burst shown in traces: CPU while running, IO while blocked, 0 otherwise.
func (p *Process) RemainingBurst() int64 {
	switch p.State {
	case StateRunning:
		return p.RemainingCPUBurst
	case StateBlocked:
		return p.RemainingIOBurst
	default:
		return 0
	}
}

// This method returns a human-readable string representation of a Process.
func (p Process) String() string {
	return fmt.Sprintf("Process: (ID: %d, State: %s, CPUTime: %d/%d, Finishing: %d)", p.ID, p.State, p.CPUTime, p.CPUDemand, p.FinishingCycle)
}
