package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/inference-sim/sched-sim/sim"
	"github.com/inference-sim/sched-sim/sim/report"
	"github.com/inference-sim/sched-sim/sim/trace"
	"github.com/inference-sim/sched-sim/sim/workload"
)

var (
	workloadPath  string   // Mix file or YAML workload spec
	randomFile    string   // File of non-negative integers consumed one per dispatch
	seed          int64    // Seed for the random source when no random numbers are given
	policyNames   []string // Policies to run, in order
	quantum       int64    // Round-robin time slice (in cycles)
	ioBurstOffset int64    // Added to io_multiplier * cpu burst
	verbose       bool     // Print the per-cycle state of every process
	showRandom    bool     // Print every random draw
	checkInvar    bool     // Verify queue-set invariants after every cycle
	reportFormat  string   // text or table
	configPath    string   // Optional YAML run config
	logLevel      string   // Log verbosity level
)

// rootCmd is the base command for the CLI
var rootCmd = &cobra.Command{
	Use:   "sched-sim",
	Short: "Discrete-cycle simulator for uniprocessor scheduling policies",
}

// runCmd executes the simulation using parameters from CLI flags
var runCmd = &cobra.Command{
	Use:   "run [workload]",
	Short: "Run the scheduling simulation",
	Args:  cobra.MaximumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		// Set up logging
		level, err := logrus.ParseLevel(logLevel)
		if err != nil {
			logrus.Fatalf("Invalid log level: %s", logLevel)
		}
		logrus.SetLevel(level)

		opts := optionsFromFlags(cmd.Flags().Changed)
		if len(args) == 1 {
			opts.WorkloadPath = args[0]
		}
		if configPath != "" {
			rf, err := LoadRunFile(configPath)
			if err != nil {
				logrus.Fatalf("Failed to load run config: %v", err)
			}
			opts.applyRunFile(rf, cmd.Flags().Changed)
		}

		if err := runSimulation(os.Stdout, opts); err != nil {
			logrus.Fatalf("Simulation failed: %v", err)
		}
		logrus.Info("Simulation complete.")
	},
}

// runOptions is the resolved configuration of one invocation.
type runOptions struct {
	WorkloadPath  string
	RandomFile    string
	Seed          int64
	SeedSet       bool
	Policies      []string
	Quantum       int64
	IOBurstOffset int64
	Verbose       bool
	ShowRandom    bool
	Check         bool
	Format        string
}

func optionsFromFlags(changed func(string) bool) runOptions {
	return runOptions{
		WorkloadPath:  workloadPath,
		RandomFile:    randomFile,
		Seed:          seed,
		SeedSet:       changed("seed"),
		Policies:      append([]string(nil), policyNames...),
		Quantum:       quantum,
		IOBurstOffset: ioBurstOffset,
		Verbose:       verbose,
		ShowRandom:    showRandom,
		Check:         checkInvar,
		Format:        reportFormat,
	}
}

// applyRunFile copies run-config values into o for every flag the user did not set explicitly.
func (o *runOptions) applyRunFile(rf *RunFile, changed func(string) bool) {
	if rf.Workload != "" && !changed("workload") && o.WorkloadPath == "" {
		o.WorkloadPath = rf.Workload
	}
	if rf.RandomFile != "" && !changed("random-file") {
		o.RandomFile = rf.RandomFile
	}
	if rf.Seed != nil && !changed("seed") {
		o.Seed = *rf.Seed
		o.SeedSet = true
	}
	if len(rf.Policies) > 0 && !changed("policy") {
		o.Policies = append([]string(nil), rf.Policies...)
	}
	if rf.Quantum != nil && !changed("quantum") {
		o.Quantum = *rf.Quantum
	}
	if rf.IOBurstOffset != nil && !changed("io-burst-offset") {
		o.IOBurstOffset = *rf.IOBurstOffset
	}
	if rf.Verbose != nil && !changed("verbose") {
		o.Verbose = *rf.Verbose
	}
	if rf.ShowRandom != nil && !changed("show-random") {
		o.ShowRandom = *rf.ShowRandom
	}
	if rf.Check != nil && !changed("check") {
		o.Check = *rf.Check
	}
	if rf.Format != "" && !changed("format") {
		o.Format = rf.Format
	}
}

// runSimulation loads the workload and random source, runs every requested
// policy and writes one report per policy to out.
func runSimulation(out io.Writer, opts runOptions) error {
	if opts.WorkloadPath == "" {
		return fmt.Errorf("no workload given: pass a path or --workload")
	}
	if !report.IsValidFormat(opts.Format) {
		return fmt.Errorf("unknown report format %q; valid: text, table", opts.Format)
	}
	names := opts.Policies
	if len(names) == 0 {
		names = sim.PolicyNames()
	}
	for _, name := range names {
		if !sim.IsValidPolicy(name) {
			_, err := sim.CanonicalPolicyName(name)
			return err
		}
	}

	specs, embedded, err := workload.Load(opts.WorkloadPath)
	if err != nil {
		return err
	}
	src, err := chooseRandomSource(opts, embedded)
	if err != nil {
		return err
	}

	cfg := sim.NewRunConfig(opts.Quantum, opts.IOBurstOffset, opts.Check)
	tc := trace.TraceConfig{Level: trace.TraceLevelNone, RecordRandoms: opts.ShowRandom}
	if opts.Verbose {
		tc.Level = trace.TraceLevelCycles
	}
	logrus.Infof("Starting simulation of %d processes: policies=%v, quantum=%d, io burst offset=%d",
		len(specs), names, cfg.Quantum, cfg.IOBurstOffset)

	results, err := sim.SimulateAll(specs, names, src, cfg, tc)
	if err != nil {
		return err
	}
	ropts := report.Options{Verbose: opts.Verbose, ShowRandom: opts.ShowRandom}
	for _, res := range results {
		if err := report.Write(out, report.Format(opts.Format), res, ropts); err != nil {
			return err
		}
	}
	return nil
}

// chooseRandomSource resolves the random source: an explicit random file wins,
// then an explicitly set seed, then whatever the workload file carries, and
// finally the default seed.
func chooseRandomSource(opts runOptions, embedded sim.RandomSource) (sim.RandomSource, error) {
	switch {
	case opts.RandomFile != "":
		src, err := workload.LoadRandomFile(opts.RandomFile)
		if err != nil {
			return nil, err
		}
		logrus.Debugf("Using %d random numbers from %s", src.Len(), opts.RandomFile)
		return src, nil
	case opts.SeedSet || embedded == nil:
		logrus.Debugf("Using seeded random source (seed=%d)", opts.Seed)
		return sim.NewSeededSource(sim.NewSimulationKey(opts.Seed)), nil
	default:
		return embedded, nil
	}
}

// Execute runs the CLI root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// init sets up CLI flags and subcommands
func init() {
	runCmd.Flags().StringVar(&workloadPath, "workload", "", "Workload file: classic mix (N (A B C M) ...) or YAML spec (.yaml/.yml)")
	runCmd.Flags().StringVar(&randomFile, "random-file", "", "File of non-negative integers, one consumed per dispatch")
	runCmd.Flags().Int64Var(&seed, "seed", 42, "Seed for the random source when no random numbers are given")
	runCmd.Flags().StringSliceVar(&policyNames, "policy", sim.PolicyNames(), "Comma-separated scheduling policies (fcfs, rr, uni, sjf)")
	runCmd.Flags().Int64Var(&quantum, "quantum", sim.DefaultQuantum, "Round-robin time slice (in cycles)")
	runCmd.Flags().Int64Var(&ioBurstOffset, "io-burst-offset", 0, "Added to io_multiplier * cpu burst when deriving IO bursts")
	runCmd.Flags().BoolVar(&verbose, "verbose", false, "Print the state and remaining burst of every process on every cycle")
	runCmd.Flags().BoolVar(&showRandom, "show-random", false, "Print every random number consumed")
	runCmd.Flags().BoolVar(&checkInvar, "check", false, "Verify queue-set invariants after every cycle")
	runCmd.Flags().StringVar(&reportFormat, "format", string(report.FormatText), "Report format (text, table)")
	runCmd.Flags().StringVar(&configPath, "config", "", "Optional YAML run config; explicit flags override its values")
	runCmd.Flags().StringVar(&logLevel, "log", "warn", "Log level (trace, debug, info, warn, error, fatal, panic)")

	// Attach `run` as a subcommand to `root`
	rootCmd.AddCommand(runCmd)
}
