package sim

import (
	"fmt"
	"sort"
)

// DefaultQuantum is the round-robin time slice, in cycles.
const DefaultQuantum = 2

// Policy decides which Ready process is dispatched when the Running slot is empty.
// Policies are stateless; per-run state such as the Uniprogrammed active process
// lives on the Simulator so that every run starts clean.
type Policy interface {
	// Name returns the canonical short policy name ("fcfs", "rr", "uni", "sjf").
	Name() string
	// Quantum returns the preemption slice in cycles; 0 means run-to-block.
	Quantum() int64
	// BeforeDispatch runs every cycle before the dispatch decision.
	BeforeDispatch(sim *Simulator)
	// Pick removes the next process from sim.Ready and returns its ID.
	// Returns ok=false when Ready is empty.
	Pick(sim *Simulator) (id int, ok bool)
}

// FCFSPolicy dispatches the head of the Ready queue.
type FCFSPolicy struct{}

func (f *FCFSPolicy) Name() string                { return "fcfs" }
func (f *FCFSPolicy) Quantum() int64              { return 0 }
func (f *FCFSPolicy) BeforeDispatch(_ *Simulator) {}
func (f *FCFSPolicy) Pick(sim *Simulator) (int, bool) {
	return pickHead(sim)
}

// RoundRobinPolicy dispatches like FCFS and preempts a process back to the tail
// of Ready once it has held the CPU for QuantumSize consecutive cycles.
type RoundRobinPolicy struct {
	QuantumSize int64
}

func (r *RoundRobinPolicy) Name() string                { return "rr" }
func (r *RoundRobinPolicy) Quantum() int64              { return r.QuantumSize }
func (r *RoundRobinPolicy) BeforeDispatch(_ *Simulator) {}
func (r *RoundRobinPolicy) Pick(sim *Simulator) (int, bool) {
	return pickHead(sim)
}

// UniprogrammedPolicy lets exactly one process (the active process) occupy
// Ready/Running/Blocked at a time. Every other ready process waits in
// ReadySuspended until the active process terminates.
type UniprogrammedPolicy struct{}

func (u *UniprogrammedPolicy) Name() string   { return "uni" }
func (u *UniprogrammedPolicy) Quantum() int64 { return 0 }

// BeforeDispatch elects a new active process when none is set (head of
// ReadySuspended first, otherwise head of Ready), then suspends every other
// Ready process in queue order.
func (u *UniprogrammedPolicy) BeforeDispatch(sim *Simulator) {
	if sim.Active == NoProcess {
		if id, ok := sim.Suspended.Peek(); ok {
			sim.Suspended.Dequeue()
			sim.Processes[id].Suspended = false
			sim.Ready.Enqueue(id)
			sim.Active = id
		} else if id, ok := sim.Ready.Peek(); ok {
			sim.Active = id
		}
	}
	if sim.Ready.Len() == 0 {
		return
	}
	pending := append([]int(nil), sim.Ready.Items()...)
	for _, id := range pending {
		if id == sim.Active {
			continue
		}
		sim.Ready.Remove(id)
		sim.Processes[id].Suspended = true
		sim.Suspended.Enqueue(id)
		sim.logTransition(id, "ready -> ready-suspended")
	}
}

func (u *UniprogrammedPolicy) Pick(sim *Simulator) (int, bool) {
	return pickHead(sim)
}

// SJFPolicy dispatches the Ready process with the least remaining CPU demand.
// Ties go to the process closest to the head of Ready.
type SJFPolicy struct{}

func (s *SJFPolicy) Name() string                { return "sjf" }
func (s *SJFPolicy) Quantum() int64              { return 0 }
func (s *SJFPolicy) BeforeDispatch(_ *Simulator) {}
func (s *SJFPolicy) Pick(sim *Simulator) (int, bool) {
	items := sim.Ready.Items()
	if len(items) == 0 {
		return NoProcess, false
	}
	best := 0
	for i := 1; i < len(items); i++ {
		if sim.Processes[items[i]].Remaining() < sim.Processes[items[best]].Remaining() {
			best = i
		}
	}
	return sim.Ready.RemoveAt(best), true
}

func pickHead(sim *Simulator) (int, bool) {
	if sim.Ready.Len() == 0 {
		return NoProcess, false
	}
	return sim.Ready.Dequeue(), true
}

// policyAliases maps every accepted name to its canonical short name.
var policyAliases = map[string]string{
	"fcfs":                    "fcfs",
	"first-come-first-served": "fcfs",
	"rr":                      "rr",
	"round-robin":             "rr",
	"uni":                     "uni",
	"uniprogrammed":           "uni",
	"sjf":                     "sjf",
	"srt":                     "sjf",
	"shortest-job-first":      "sjf",
}

// policyTitles holds the report titles for canonical names.
var policyTitles = map[string]string{
	"fcfs": "First Come First Serve",
	"rr":   "Round Robin",
	"uni":  "Uniprogrammed",
	"sjf":  "Shortest Job First",
}

// PolicyNames returns the canonical policy names in their reference run order.
func PolicyNames() []string {
	return []string{"fcfs", "rr", "uni", "sjf"}
}

// IsValidPolicy reports whether name (canonical or alias) is a known policy.
func IsValidPolicy(name string) bool {
	_, ok := policyAliases[name]
	return ok
}

// CanonicalPolicyName resolves an alias to its canonical short name.
func CanonicalPolicyName(name string) (string, error) {
	canonical, ok := policyAliases[name]
	if !ok {
		valid := make([]string, 0, len(policyAliases))
		for alias := range policyAliases {
			valid = append(valid, alias)
		}
		sort.Strings(valid)
		return "", fmt.Errorf("%w %q; valid: %v", ErrUnknownPolicy, name, valid)
	}
	return canonical, nil
}

// PolicyTitle returns the human-readable title for a policy name.
func PolicyTitle(name string) string {
	if canonical, ok := policyAliases[name]; ok {
		return policyTitles[canonical]
	}
	return name
}

// NewPolicy creates a Policy by name. quantum applies to round-robin only.
// Panics on unrecognized names; callers validate with IsValidPolicy first.
func NewPolicy(name string, quantum int64) Policy {
	if !IsValidPolicy(name) {
		panic(fmt.Sprintf("unknown policy %q", name))
	}
	switch policyAliases[name] {
	case "fcfs":
		return &FCFSPolicy{}
	case "rr":
		return &RoundRobinPolicy{QuantumSize: quantum}
	case "uni":
		return &UniprogrammedPolicy{}
	case "sjf":
		return &SJFPolicy{}
	default:
		panic(fmt.Sprintf("unhandled policy %q", name))
	}
}
