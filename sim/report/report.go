// Package report renders finished scheduling runs, either in the classic
// plain-text layout or as tablewriter tables.
package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/olekukonko/tablewriter"

	"github.com/inference-sim/sched-sim/sim"
	"github.com/inference-sim/sched-sim/sim/trace"
)

// Format selects the report layout.
type Format string

const (
	FormatText  Format = "text"
	FormatTable Format = "table"
)

// IsValidFormat reports whether name is a known report format.
func IsValidFormat(name string) bool {
	switch Format(name) {
	case FormatText, FormatTable:
		return true
	}
	return false
}

// Options controls the optional sections of the text report.
type Options struct {
	// Verbose prints the per-cycle state of every process. Requires a cycle trace.
	Verbose bool
	// ShowRandom interleaves every random draw with the cycle that consumed it. Requires a random trace.
	ShowRandom bool
}

// Write renders res in the given format.
func Write(w io.Writer, format Format, res *sim.Result, opts Options) error {
	switch format {
	case FormatText, "":
		return WriteText(w, res, opts)
	case FormatTable:
		return WriteTable(w, res)
	default:
		return fmt.Errorf("unknown report format %q", format)
	}
}

// WriteText renders res in the classic layout: banner, original and sorted
// input, optional detailed trace, per-process specifics and summary data.
func WriteText(w io.Writer, res *sim.Result, opts Options) error {
	ew := &errWriter{w: w}
	banner := strings.ToUpper(sim.PolicyTitle(res.Policy))

	ew.printf("######################### START OF %s #########################\n", banner)
	ew.printf("The original input was: %s\n", inputLine(len(res.Processes), res.Processes))
	ew.printf("The (sorted) input is: %s\n", inputLine(len(res.Processes), res.Finished))
	ew.printf("\n")

	if opts.Verbose || opts.ShowRandom {
		writeDetail(ew, res.Trace, opts)
	}

	ew.printf("The scheduling algorithm used was %s\n", sim.PolicyTitle(res.Policy))
	ew.printf("\n")
	for _, p := range res.Processes {
		ew.printf("Process %d:\n", p.ID)
		ew.printf("\t(A,B,C,M) = (%d,%d,%d,%d)\n", p.Arrival, p.BurstCeiling, p.CPUDemand, p.IOMultiplier)
		ew.printf("\tFinishing time: %d\n", p.FinishingCycle)
		ew.printf("\tTurnaround time: %d\n", p.Turnaround())
		ew.printf("\tI/O time: %d\n", p.IOTime)
		ew.printf("\tWaiting time: %d\n", p.WaitTime)
		ew.printf("\n")
	}

	s := sim.Summarize(res)
	ew.printf("Summary Data:\n")
	ew.printf("\tFinishing time: %d\n", s.FinishingTime)
	ew.printf("\tCPU Utilisation: %f\n", s.CPUUtilization)
	ew.printf("\tI/O Utilisation: %f\n", s.IOUtilization)
	ew.printf("\tThroughput: %f processes per hundred cycles\n", s.Throughput)
	ew.printf("\tAverage turnaround time: %f\n", s.AverageTurnaround)
	ew.printf("\tAverage waiting time: %f\n", s.AverageWaiting)
	ew.printf("######################### END OF %s #########################\n", banner)
	return ew.err
}

func inputLine(n int, procs []sim.Process) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "%d", n)
	for _, p := range procs {
		fmt.Fprintf(&sb, " ( %d %d %d %d)", p.Arrival, p.BurstCeiling, p.CPUDemand, p.IOMultiplier)
	}
	return sb.String()
}

// writeDetail prints one line per cycle. Each snapshot is taken after that
// cycle's dispatch, so a burst shows the cycles left including the current one.
func writeDetail(ew *errWriter, st *trace.SimulationTrace, opts Options) {
	if st == nil {
		return
	}
	if opts.Verbose {
		ew.printf("This detailed printout gives the state and remaining burst for each process\n")
	}
	// Without cycle snapshots only the draws are printed.
	if !opts.Verbose || len(st.Cycles) == 0 {
		for _, r := range st.Randoms {
			writeRandom(ew, r)
		}
		ew.printf("\n")
		return
	}
	for _, c := range st.Cycles {
		if opts.ShowRandom {
			for _, r := range st.RandomsAt(c.Cycle) {
				writeRandom(ew, r)
			}
		}
		ew.printf("Cycle\t%d:\t", c.Cycle)
		for _, p := range c.Processes {
			state := p.State
			if p.Suspended {
				state = "suspended"
			}
			ew.printf("%-10s\t%d\t", state, p.RemainingBurst)
		}
		ew.printf("\n")
	}
	ew.printf("\n")
}

func writeRandom(ew *errWriter, r trace.RandomRecord) {
	ew.printf("Find burst when choosing ready process %d to run %d\n", r.ProcessID, r.Value)
}

// WriteTable renders res as a per-process schedule table followed by the summary.
func WriteTable(w io.Writer, res *sim.Result) error {
	ew := &errWriter{w: w}
	outputTitle(ew, sim.PolicyTitle(res.Policy))
	if ew.err != nil {
		return ew.err
	}

	s := sim.Summarize(res)
	rows := make([][]string, 0, len(res.Processes))
	for _, p := range res.Processes {
		rows = append(rows, []string{
			fmt.Sprint(p.ID),
			fmt.Sprint(p.Arrival),
			fmt.Sprint(p.BurstCeiling),
			fmt.Sprint(p.CPUDemand),
			fmt.Sprint(p.IOMultiplier),
			fmt.Sprint(p.FinishingCycle),
			fmt.Sprint(p.Turnaround()),
			fmt.Sprint(p.IOTime),
			fmt.Sprint(p.WaitTime),
		})
	}

	ew.printf("Schedule table\n")
	table := tablewriter.NewWriter(ew)
	table.SetHeader([]string{"ID", "Arrival", "Ceiling", "Demand", "IO Mult", "Finish", "Turnaround", "IO", "Wait"})
	table.AppendBulk(rows)
	table.SetFooter([]string{"", "", "", "", "", "",
		fmt.Sprintf("Average\n%.2f", s.AverageTurnaround),
		"",
		fmt.Sprintf("Average\n%.2f", s.AverageWaiting)})
	table.Render()

	ew.printf("Summary\n")
	summary := tablewriter.NewWriter(ew)
	summary.SetHeader([]string{"Metric", "Value"})
	summary.AppendBulk([][]string{
		{"Finishing time", fmt.Sprint(s.FinishingTime)},
		{"CPU utilisation", fmt.Sprintf("%.6f", s.CPUUtilization)},
		{"I/O utilisation", fmt.Sprintf("%.6f", s.IOUtilization)},
		{"Throughput (per 100 cycles)", fmt.Sprintf("%.6f", s.Throughput)},
		{"Turnaround p50 / p90 / max", fmt.Sprintf("%.1f / %.1f / %.0f", s.Turnaround.P50, s.Turnaround.P90, s.Turnaround.Max)},
		{"Waiting p50 / p90 / max", fmt.Sprintf("%.1f / %.1f / %.0f", s.Waiting.P50, s.Waiting.P90, s.Waiting.Max)},
		{"Random draws", fmt.Sprint(res.RandomDraws)},
	})
	summary.Render()

	if res.Trace != nil && len(res.Trace.Cycles) > 0 {
		ts := trace.Summarize(res.Trace)
		ew.printf("Trace summary\n")
		tt := tablewriter.NewWriter(ew)
		tt.SetHeader([]string{"Cycles", "Dispatches", "Idle", "Ready", "Running", "Blocked", "Suspended", "Max ready", "Max suspended"})
		tt.Append([]string{
			fmt.Sprint(ts.TotalCycles),
			fmt.Sprint(ts.Dispatches),
			fmt.Sprint(ts.IdleCycles),
			fmt.Sprint(ts.StateCycles["ready"]),
			fmt.Sprint(ts.StateCycles["running"]),
			fmt.Sprint(ts.StateCycles["blocked"]),
			fmt.Sprint(ts.SuspendedCycles),
			fmt.Sprint(ts.MaxReadyDepth),
			fmt.Sprint(ts.MaxSuspendedDepth),
		})
		tt.Render()
	}
	ew.printf("\n")
	return ew.err
}

func outputTitle(ew *errWriter, title string) {
	ew.printf("%s\n", strings.Repeat("-", len(title)*2))
	ew.printf("%s %s\n", strings.Repeat(" ", len(title)/2), title)
	ew.printf("%s\n", strings.Repeat("-", len(title)*2))
}

// errWriter keeps the first write error so rendering code can stay linear.
type errWriter struct {
	w   io.Writer
	err error
}

func (ew *errWriter) Write(p []byte) (int, error) {
	if ew.err != nil {
		return 0, ew.err
	}
	n, err := ew.w.Write(p)
	ew.err = err
	return n, err
}

func (ew *errWriter) printf(format string, args ...any) {
	if ew.err != nil {
		return
	}
	_, ew.err = fmt.Fprintf(ew.w, format, args...)
}
