package sim

import (
	"fmt"
	"math/rand"
)

// RandomSource is an ordered, rewindable supply of non-negative integers.
// The engine draws exactly one value per dispatch; Rewind restarts the sequence
// so that a second pass replays the same schedule.
type RandomSource interface {
	Next() (int64, error)
	Rewind()
}

// === SequenceSource ===

// SequenceSource replays a finite list of integers, typically the random-numbers file.
// Reading past the end returns ErrRandomExhausted; it never wraps.
type SequenceSource struct {
	values []int64
	pos    int
}

// NewSequenceSource creates a SequenceSource over values. The slice is copied.
func NewSequenceSource(values []int64) *SequenceSource {
	return &SequenceSource{values: append([]int64(nil), values...)}
}

// Next returns the next value in the sequence.
func (s *SequenceSource) Next() (int64, error) {
	if s.pos >= len(s.values) {
		return 0, fmt.Errorf("%w: all %d values consumed", ErrRandomExhausted, len(s.values))
	}
	v := s.values[s.pos]
	s.pos++
	return v, nil
}

// Rewind restarts the sequence from its first value.
func (s *SequenceSource) Rewind() {
	s.pos = 0
}

// Len returns the total number of values in the sequence.
func (s *SequenceSource) Len() int {
	return len(s.values)
}

// Consumed returns how many values have been drawn since the last Rewind.
func (s *SequenceSource) Consumed() int {
	return s.pos
}

// === SimulationKey ===

// SimulationKey uniquely identifies a reproducible seeded run.
// Two runs with the same SimulationKey and identical workload
// MUST produce bit-for-bit identical results.
type SimulationKey int64

// NewSimulationKey creates a SimulationKey from a seed value.
func NewSimulationKey(seed int64) SimulationKey {
	return SimulationKey(seed)
}

// === SeededSource ===

// SeededSource is an unbounded RandomSource backed by math/rand.
// Rewind reseeds from the key, so every pass sees the same sequence.
//
// Thread-safety: NOT thread-safe. Must be called from single goroutine.
type SeededSource struct {
	key SimulationKey
	rng *rand.Rand
}

// NewSeededSource creates a SeededSource positioned at the start of its sequence.
func NewSeededSource(key SimulationKey) *SeededSource {
	return &SeededSource{key: key, rng: rand.New(rand.NewSource(int64(key)))}
}

// Next returns the next non-negative value. It never fails.
func (s *SeededSource) Next() (int64, error) {
	return s.rng.Int63(), nil
}

// Rewind reseeds the generator from the key.
func (s *SeededSource) Rewind() {
	s.rng = rand.New(rand.NewSource(int64(s.key)))
}

// Key returns the SimulationKey used to create this source.
func (s *SeededSource) Key() SimulationKey {
	return s.key
}
