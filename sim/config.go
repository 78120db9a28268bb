package sim

import "fmt"

// RunConfig groups the engine constants that are tunable per run.
type RunConfig struct {
	Quantum          int64 // round-robin time slice in cycles (must be > 0)
	IOBurstOffset    int64 // added to IOMultiplier * CPU burst (must be >= 0)
	VerifyInvariants bool  // check queue-set invariants after every cycle
}

// DefaultRunConfig returns the reference constants: quantum 2, IO burst = M * CPU burst.
func DefaultRunConfig() RunConfig {
	return RunConfig{Quantum: DefaultQuantum}
}

// NewRunConfig creates a RunConfig with all fields explicitly specified.
func NewRunConfig(quantum, ioBurstOffset int64, verifyInvariants bool) RunConfig {
	return RunConfig{
		Quantum:          quantum,
		IOBurstOffset:    ioBurstOffset,
		VerifyInvariants: verifyInvariants,
	}
}

// Validate checks that every constant is in range.
func (c RunConfig) Validate() error {
	if c.Quantum <= 0 {
		return fmt.Errorf("%w: quantum must be positive, got %d", ErrInvalidConfig, c.Quantum)
	}
	if c.IOBurstOffset < 0 {
		return fmt.Errorf("%w: io burst offset must be non-negative, got %d", ErrInvalidConfig, c.IOBurstOffset)
	}
	return nil
}
