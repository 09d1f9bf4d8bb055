// Package sweep builds and runs the benchmark matrix behind `relaxctl
// sweep`, bounded by a worker pool sized from SchedulerConfig.
package sweep

import (
	"github.com/relaxmesh/stencil/pkg/config"
	"github.com/relaxmesh/stencil/pkg/model"
)

// Job is one matrix cell: one grid size/thread-count/run-type
// combination to benchmark.
type Job struct {
	Size      int
	Threads   int
	Chunk     int
	Type      model.RunType
	Precision float64
}

// BuildMatrix reproduces the harness's built-in sweep: one serial run
// at the configured size, followed by pool runs doubling the thread
// count from MinThreads up to MaxThreads inclusive.
func BuildMatrix(cfg config.BenchConfig) []Job {
	jobs := []Job{
		{Size: cfg.SweepSize, Threads: 1, Type: model.RunTypeSerial, Precision: cfg.Precision},
	}

	for threads := cfg.MinThreads; threads <= cfg.MaxThreads; threads <<= 1 {
		jobs = append(jobs, Job{
			Size:      cfg.SweepSize,
			Threads:   threads,
			Chunk:     cfg.ChunkSize,
			Type:      model.RunTypePool,
			Precision: cfg.Precision,
		})
	}

	return jobs
}
