package sim

import "fmt"

// BurstGenerator turns random draws into CPU bursts and derives the paired IO bursts.
type BurstGenerator struct {
	Source RandomSource
	// IOBurstOffset is added to IOMultiplier * CPU burst. Zero gives the plain product.
	IOBurstOffset int64
}

// NewBurstGenerator creates a BurstGenerator drawing from src.
func NewBurstGenerator(src RandomSource, ioBurstOffset int64) *BurstGenerator {
	return &BurstGenerator{Source: src, IOBurstOffset: ioBurstOffset}
}

// NextCPUBurst draws one value r and returns 1 + (r mod BurstCeiling), clamped to
// the process's remaining demand. Exactly one value is consumed per call.
// The raw draw is returned alongside the burst for tracing.
func (g *BurstGenerator) NextCPUBurst(p *Process) (burst int64, draw int64, err error) {
	draw, err = g.Source.Next()
	if err != nil {
		return 0, 0, fmt.Errorf("drawing cpu burst for process %d: %w", p.ID, err)
	}
	if draw < 0 {
		return 0, draw, fmt.Errorf("%w: random source produced negative value %d", ErrInvalidConfig, draw)
	}
	burst = 1 + draw%p.BurstCeiling
	if rem := p.Remaining(); burst > rem {
		burst = rem
	}
	return burst, draw, nil
}

// IOBurst returns the IO burst that follows the process's latest CPU burst.
func (g *BurstGenerator) IOBurst(p *Process) int64 {
	return p.IOMultiplier*p.LastCPUBurst + g.IOBurstOffset
}
