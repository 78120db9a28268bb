package sim

import "errors"

// Configuration errors. Runs that hit one of these abort without statistics.
var (
	ErrInvalidWorkload = errors.New("invalid workload")
	ErrRandomExhausted = errors.New("random source exhausted")
	ErrUnknownPolicy   = errors.New("unknown scheduling policy")
	ErrInvalidConfig   = errors.New("invalid run config")
)
