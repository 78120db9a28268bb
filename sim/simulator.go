// sim/simulator.go
package sim

import (
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/inference-sim/sched-sim/sim/trace"
)

// Simulator is the simulation context of a single policy run: the clock, the
// process arena, the queue set and the running slot. It is built fresh for
// every run and discarded afterwards; nothing in it is shared across runs.
type Simulator struct {
	Clock int64
	// Processes is the arena; queues hold indices into it. Index == Process.ID.
	Processes []*Process
	// Ready holds dispatchable processes in FIFO order.
	Ready *ProcessQueue
	// Suspended is the ReadySuspended holding area (Uniprogrammed only).
	Suspended *ProcessQueue
	// Blocked is insertion-ordered; members leave individually when their IO burst expires.
	Blocked *ProcessQueue
	// Running is the single CPU slot, NoProcess when idle.
	Running int
	// Active is the Uniprogrammed active process, NoProcess when none is elected.
	Active int
	// Finished lists process IDs in completion order.
	Finished []int

	Policy Policy
	Bursts *BurstGenerator
	// Trace is nil unless this pass records a trace.
	Trace *trace.SimulationTrace

	// BlockedCycles counts cycles during which at least one process was blocked.
	BlockedCycles int64
	// RandomDraws counts random values consumed by dispatches.
	RandomDraws int
	// VerifyInvariants checks the queue-set invariants after every step and panics on violation.
	VerifyInvariants bool

	admitted int
}

// NewSimulator validates the workload and builds a context with every process unstarted.
func NewSimulator(specs []ProcessSpec, policy Policy, bursts *BurstGenerator, st *trace.SimulationTrace) (*Simulator, error) {
	if policy == nil {
		return nil, fmt.Errorf("%w: policy must not be nil", ErrInvalidConfig)
	}
	if bursts == nil || bursts.Source == nil {
		return nil, fmt.Errorf("%w: burst generator needs a random source", ErrInvalidConfig)
	}
	procs := make([]*Process, len(specs))
	for i, spec := range specs {
		if err := spec.Validate(); err != nil {
			return nil, fmt.Errorf("process %d: %w", i, err)
		}
		procs[i] = NewProcess(i, spec)
	}
	return &Simulator{
		Clock:     0,
		Processes: procs,
		Ready:     NewProcessQueue(len(procs)),
		Suspended: NewProcessQueue(len(procs)),
		Blocked:   NewProcessQueue(len(procs)),
		Running:   NoProcess,
		Active:    NoProcess,
		Finished:  make([]int, 0, len(procs)),
		Policy:    policy,
		Bursts:    bursts,
		Trace:     st,
	}, nil
}

// Done reports whether every process has terminated.
func (sim *Simulator) Done() bool {
	return len(sim.Finished) == len(sim.Processes)
}

// Run steps the simulation until every process has terminated.
// An empty workload returns immediately with the clock at 0.
func (sim *Simulator) Run() error {
	logrus.Infof("[cycle %07d] Starting %s with %d processes", sim.Clock, sim.Policy.Name(), len(sim.Processes))
	for !sim.Done() {
		if _, err := sim.Step(); err != nil {
			return err
		}
	}
	logrus.Infof("[cycle %07d] Simulation ended", sim.Clock)
	return nil
}

// Step executes one cycle and reports whether all processes have terminated.
// The phase order is fixed because it decides tie-breaks and trace output:
//  1. resolve the running process (terminate, block or preempt)
//  2. unblock processes whose IO burst expired
//  3. admit processes arriving this cycle
//  4. policy dispatch
//  5. advance per-process timers
//  6. advance the clock
func (sim *Simulator) Step() (bool, error) {
	if sim.Done() {
		return true, nil
	}
	logrus.Tracef("[cycle %07d] ready=%v suspended=%v blocked=%v running=%d", sim.Clock, sim.Ready, sim.Suspended, sim.Blocked, sim.Running)

	sim.resolveRunning()
	sim.resolveBlocked()
	sim.admitArrivals()
	if err := sim.dispatch(); err != nil {
		return false, err
	}
	if sim.Trace.WantsCycles() {
		sim.recordCycle()
	}
	sim.advanceTimers()
	sim.Clock++

	if sim.VerifyInvariants {
		if err := sim.CheckInvariants(); err != nil {
			panic(err.Error())
		}
	}
	return sim.Done(), nil
}

func (sim *Simulator) resolveRunning() {
	if sim.Running == NoProcess {
		return
	}
	id := sim.Running
	p := sim.Processes[id]
	if p.FirstDispatch {
		p.FirstDispatch = false
		p.RemainingIOBurst = sim.Bursts.IOBurst(p)
	}

	switch {
	case p.CPUTime == p.CPUDemand:
		p.State = StateTerminated
		p.FinishingCycle = sim.Clock
		sim.Finished = append(sim.Finished, id)
		sim.Running = NoProcess
		if sim.Active == id {
			sim.Active = NoProcess
		}
		sim.logTransition(id, "running -> terminated")
	case p.RemainingCPUBurst <= 0:
		p.State = StateBlocked
		sim.Blocked.Enqueue(id)
		sim.Running = NoProcess
		logrus.Debugf("[cycle %07d] process %d: running -> blocked (io burst %d)", sim.Clock, id, p.RemainingIOBurst)
	case sim.Policy.Quantum() > 0 && p.QuantumRemaining <= 0:
		p.State = StateReady
		sim.Ready.Enqueue(id)
		sim.Running = NoProcess
		sim.logTransition(id, "running -> ready (preempted)")
	}
}

func (sim *Simulator) resolveBlocked() {
	if sim.Blocked.Len() == 0 {
		return
	}
	// Iterate over a copy: Remove reslices the queue's storage.
	blocked := append([]int(nil), sim.Blocked.Items()...)
	for _, id := range blocked {
		p := sim.Processes[id]
		if p.RemainingIOBurst > 0 {
			continue
		}
		sim.Blocked.Remove(id)
		p.State = StateReady
		sim.Ready.Enqueue(id)
		sim.logTransition(id, "blocked -> ready")
	}
}

func (sim *Simulator) admitArrivals() {
	if sim.admitted == len(sim.Processes) {
		return
	}
	for _, p := range sim.Processes {
		if p.State == StateUnstarted && p.Arrival == sim.Clock {
			p.State = StateReady
			sim.Ready.Enqueue(p.ID)
			sim.admitted++
			sim.logTransition(p.ID, "unstarted -> ready")
		}
	}
}

func (sim *Simulator) dispatch() error {
	sim.Policy.BeforeDispatch(sim)
	if sim.Running != NoProcess {
		return nil
	}
	id, ok := sim.Policy.Pick(sim)
	if !ok {
		return nil
	}
	p := sim.Processes[id]
	burst, draw, err := sim.Bursts.NextCPUBurst(p)
	if err != nil {
		return fmt.Errorf("cycle %d: %w", sim.Clock, err)
	}
	sim.RandomDraws++
	if sim.Trace.WantsRandoms() {
		sim.Trace.RecordRandom(trace.RandomRecord{Cycle: sim.Clock, ProcessID: id, Value: draw, Burst: burst})
	}

	p.State = StateRunning
	p.Suspended = false
	p.RemainingCPUBurst = burst
	p.LastCPUBurst = burst
	p.QuantumRemaining = sim.Policy.Quantum()
	p.FirstDispatch = true
	sim.Running = id
	logrus.Debugf("[cycle %07d] process %d: ready -> running (burst %d, draw %d)", sim.Clock, id, burst, draw)
	return nil
}

func (sim *Simulator) advanceTimers() {
	anyBlocked := false
	for _, p := range sim.Processes {
		switch p.State {
		case StateUnstarted, StateTerminated:
		case StateReady:
			p.WaitTime++
		case StateRunning:
			p.CPUTime++
			p.RemainingCPUBurst--
			if sim.Policy.Quantum() > 0 {
				p.QuantumRemaining--
			}
		case StateBlocked:
			p.IOTime++
			p.RemainingIOBurst--
			anyBlocked = true
		default:
			panic(fmt.Sprintf("advanceTimers: process %d has invalid state %q", p.ID, p.State))
		}
	}
	if anyBlocked {
		sim.BlockedCycles++
	}
}

func (sim *Simulator) recordCycle() {
	rec := trace.CycleRecord{
		Cycle:          sim.Clock,
		Processes:      make([]trace.ProcessSnapshot, len(sim.Processes)),
		ReadyDepth:     sim.Ready.Len(),
		SuspendedDepth: sim.Suspended.Len(),
	}
	for i, p := range sim.Processes {
		rec.Processes[i] = trace.ProcessSnapshot{
			ID:             p.ID,
			State:          string(p.State),
			Suspended:      p.Suspended,
			RemainingBurst: p.RemainingBurst(),
		}
	}
	sim.Trace.RecordCycle(rec)
}

func (sim *Simulator) logTransition(id int, transition string) {
	logrus.Debugf("[cycle %07d] process %d: %s", sim.Clock, id, transition)
}

// CheckInvariants verifies the queue set against the process records.
// A non-nil error means the engine is broken, not that the input is bad.
func (sim *Simulator) CheckInvariants() error {
	n := len(sim.Processes)
	counts := make(map[ProcessState]int)
	running := 0
	for _, p := range sim.Processes {
		counts[p.State]++
		if p.State == StateRunning {
			running++
		}
		if p.CPUTime < 0 || p.CPUTime > p.CPUDemand {
			return fmt.Errorf("cycle %d: process %d cpu time %d outside [0,%d]", sim.Clock, p.ID, p.CPUTime, p.CPUDemand)
		}
		if p.State == StateTerminated && p.CPUTime != p.CPUDemand {
			return fmt.Errorf("cycle %d: process %d terminated with cpu time %d of %d", sim.Clock, p.ID, p.CPUTime, p.CPUDemand)
		}
		// A process that just served its demand is retired at the start of the next cycle.
		if p.CPUTime == p.CPUDemand && p.State != StateTerminated && !(p.State == StateRunning && p.RemainingCPUBurst <= 0) {
			return fmt.Errorf("cycle %d: process %d served its demand but is %s", sim.Clock, p.ID, p.State)
		}
		if p.Suspended && p.State != StateReady {
			return fmt.Errorf("cycle %d: process %d suspended while %s", sim.Clock, p.ID, p.State)
		}
	}
	if running > 1 {
		return fmt.Errorf("cycle %d: %d processes running", sim.Clock, running)
	}
	if (sim.Running == NoProcess) != (running == 0) {
		return fmt.Errorf("cycle %d: running slot %d disagrees with %d running processes", sim.Clock, sim.Running, running)
	}
	if err := sim.checkMembers(sim.Ready, StateReady, false, "ready"); err != nil {
		return err
	}
	if err := sim.checkMembers(sim.Suspended, StateReady, true, "ready-suspended"); err != nil {
		return err
	}
	if err := sim.checkMembers(sim.Blocked, StateBlocked, false, "blocked"); err != nil {
		return err
	}
	if len(sim.Finished) != counts[StateTerminated] {
		return fmt.Errorf("cycle %d: %d finished but %d terminated", sim.Clock, len(sim.Finished), counts[StateTerminated])
	}
	total := counts[StateUnstarted] + sim.Ready.Len() + sim.Suspended.Len() + running + sim.Blocked.Len() + len(sim.Finished)
	if total != n {
		return fmt.Errorf("cycle %d: %d processes accounted for, want %d", sim.Clock, total, n)
	}
	// Suspension is only ever used with an elected active process, which must
	// then be the single process outside ReadySuspended.
	if sim.Active != NoProcess || sim.Suspended.Len() > 0 {
		if sim.Active == NoProcess {
			return fmt.Errorf("cycle %d: %d processes suspended with no active process", sim.Clock, sim.Suspended.Len())
		}
		if live := sim.Ready.Len() + running + sim.Blocked.Len(); live > 1 {
			return fmt.Errorf("cycle %d: %d processes outside ready-suspended with active process %d", sim.Clock, live, sim.Active)
		}
	}
	return nil
}

func (sim *Simulator) checkMembers(q *ProcessQueue, state ProcessState, suspended bool, name string) error {
	for _, id := range q.Items() {
		p := sim.Processes[id]
		if p.State != state || p.Suspended != suspended {
			return fmt.Errorf("cycle %d: process %d in %s queue is %s (suspended=%v)", sim.Clock, id, name, p.State, p.Suspended)
		}
	}
	return nil
}
