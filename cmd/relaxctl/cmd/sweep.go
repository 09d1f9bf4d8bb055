package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/relaxmesh/stencil/internal/sweep"
)

// sweepCmd runs the harness's built-in benchmark matrix: one serial run
// at the configured size, then pool runs doubling the thread count.
var sweepCmd = &cobra.Command{
	Use:   "sweep",
	Short: "Run the built-in serial/pool thread-count sweep",
	Long: `Sweep reproduces the benchmark harness's default invocation: one serial
run at the configured grid size, followed by worker-pool runs doubling the
thread count from bench.min_threads up to bench.max_threads, inclusive.
Results print as CSV, one line per matrix cell, in matrix order.`,
	Args: cobra.NoArgs,
	RunE: runSweep,
}

func init() {
	rootCmd.AddCommand(sweepCmd)
}

func runSweep(cmd *cobra.Command, args []string) error {
	cfg := GetConfig()
	log := GetLogger()

	jobs := sweep.BuildMatrix(cfg.Bench)
	log.Info("running sweep: %d jobs, size=%d", len(jobs), cfg.Bench.SweepSize)

	orch := sweep.NewOrchestrator(cfg.Scheduler.WorkerCount, nil, log)
	results, err := orch.Run(cmd.Context(), jobs)
	if err != nil {
		return fmt.Errorf("sweep failed: %w", err)
	}

	var sink *resultSink
	if persist || archive != "" {
		sink, err = newResultSink(cfg, persist, archive)
		if err != nil {
			return err
		}
		defer sink.Close()
	}

	for _, result := range results {
		fmt.Println(result.CSVRow())
		if sink != nil {
			if err := sink.Record(cmd.Context(), result); err != nil {
				return err
			}
		}
	}

	return nil
}
