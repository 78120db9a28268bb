package trace

// TraceLevel controls the verbosity of cycle tracing.
type TraceLevel string

const (
	// TraceLevelNone disables cycle snapshots (zero overhead).
	TraceLevelNone TraceLevel = "none"
	// TraceLevelCycles captures a snapshot of every process on every cycle.
	TraceLevelCycles TraceLevel = "cycles"
)

// validTraceLevels maps accepted trace level strings.
var validTraceLevels = map[TraceLevel]bool{
	TraceLevelNone:   true,
	TraceLevelCycles: true,
	"":               true, // empty defaults to none
}

// IsValidTraceLevel returns true if the given level string is a recognized trace level.
func IsValidTraceLevel(level string) bool {
	return validTraceLevels[TraceLevel(level)]
}

// TraceConfig controls trace collection behavior.
type TraceConfig struct {
	Level         TraceLevel
	RecordRandoms bool // record every random draw used to size a CPU burst
}

// Enabled reports whether the config records anything at all.
func (c TraceConfig) Enabled() bool {
	return c.Level == TraceLevelCycles || c.RecordRandoms
}

// SimulationTrace collects records during a single policy run.
type SimulationTrace struct {
	Config  TraceConfig
	Cycles  []CycleRecord
	Randoms []RandomRecord
}

// NewSimulationTrace creates a SimulationTrace ready for recording.
func NewSimulationTrace(config TraceConfig) *SimulationTrace {
	return &SimulationTrace{
		Config:  config,
		Cycles:  make([]CycleRecord, 0),
		Randoms: make([]RandomRecord, 0),
	}
}

// WantsCycles reports whether cycle snapshots should be recorded.
func (st *SimulationTrace) WantsCycles() bool {
	return st != nil && st.Config.Level == TraceLevelCycles
}

// WantsRandoms reports whether random draws should be recorded.
func (st *SimulationTrace) WantsRandoms() bool {
	return st != nil && st.Config.RecordRandoms
}

// RecordCycle appends a cycle snapshot.
func (st *SimulationTrace) RecordCycle(record CycleRecord) {
	st.Cycles = append(st.Cycles, record)
}

// RecordRandom appends a random draw record.
func (st *SimulationTrace) RecordRandom(record RandomRecord) {
	st.Randoms = append(st.Randoms, record)
}

// RandomsAt returns the random draws made during the given cycle, in draw order.
func (st *SimulationTrace) RandomsAt(cycle int64) []RandomRecord {
	var out []RandomRecord
	for _, r := range st.Randoms {
		if r.Cycle == cycle {
			out = append(out, r)
		}
	}
	return out
}
