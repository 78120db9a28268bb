// Computes run-level summary statistics from a finished Result:
// CPU/IO utilisation, throughput, turnaround and waiting time.

package sim

// Summary aggregates statistics about a policy run for final reporting.
type Summary struct {
	FinishingTime     int64   // Last cycle in which a process terminated
	CPUUtilization    float64 // Running cycles / finishing time
	IOUtilization     float64 // Cycles with at least one blocked process / finishing time
	Throughput        float64 // Processes per hundred cycles
	AverageTurnaround float64
	AverageWaiting    float64

	TotalCPU        int64
	TotalIO         int64
	TotalWaiting    int64
	TotalTurnaround int64
	Processes       int

	Turnaround Distribution // Per-process turnaround spread
	Waiting    Distribution // Per-process waiting spread
}

// Summarize computes the Summary of a run.
// Ratios are zero when the finishing time is zero (empty workload).
func Summarize(res *Result) Summary {
	s := Summary{Processes: len(res.Processes)}
	if res.FinalCycle > 0 {
		s.FinishingTime = res.FinalCycle - 1
	}
	turnarounds := make([]int64, 0, len(res.Processes))
	waits := make([]int64, 0, len(res.Processes))
	for _, p := range res.Processes {
		s.TotalCPU += p.CPUTime
		s.TotalIO += p.IOTime
		s.TotalWaiting += p.WaitTime
		s.TotalTurnaround += p.Turnaround()
		turnarounds = append(turnarounds, p.Turnaround())
		waits = append(waits, p.WaitTime)
	}
	s.Turnaround = NewDistribution(turnarounds)
	s.Waiting = NewDistribution(waits)
	if s.FinishingTime > 0 {
		ft := float64(s.FinishingTime)
		s.CPUUtilization = float64(s.TotalCPU) / ft
		s.IOUtilization = float64(res.BlockedCycles) / ft
		s.Throughput = 100 * float64(s.Processes) / ft
	}
	if s.Processes > 0 {
		s.AverageTurnaround = float64(s.TotalTurnaround) / float64(s.Processes)
		s.AverageWaiting = float64(s.TotalWaiting) / float64(s.Processes)
	}
	return s
}
