// Package sim provides the core discrete-cycle engine for simulating uniprocessor
// CPU scheduling policies.
//
// # Reading Guide
//
// Start with these files to understand the simulation kernel:
//   - process.go: Process lifecycle (unstarted → ready → running → blocked → terminated)
//   - queue.go: the index-based queues that hold processes between states
//   - simulator.go: the per-cycle stepper (resolve running, resolve blocked, admit, dispatch, timers)
//   - driver.go: single-pass and traced two-pass runs of a policy
//
// # Architecture
//
// The engine never executes real work. Each cycle moves process records between
// the Ready, ReadySuspended and Blocked queues and the single Running slot according
// to the active Policy, and draws CPU burst lengths from a RandomSource. Given the
// same workload and the same (rewound) random sequence, a run is bit-for-bit
// reproducible.
//
// Sub-packages:
//   - sim/trace/: per-cycle trace records (pure data)
//   - sim/workload/: workload and random-number loaders
//   - sim/report/: text and table report rendering
//
// # Key Interfaces
//   - Policy: dispatch decision over the Ready queue (FCFS, RR, Uniprogrammed, SJF)
//   - RandomSource: rewindable supply of non-negative integers
package sim
