package sweep

import (
	"context"
	"fmt"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"

	"github.com/relaxmesh/stencil/pkg/collections"
	"github.com/relaxmesh/stencil/pkg/driver"
	"github.com/relaxmesh/stencil/pkg/grid"
	"github.com/relaxmesh/stencil/pkg/model"
	"github.com/relaxmesh/stencil/pkg/parallel"
	"github.com/relaxmesh/stencil/pkg/rng"
	"github.com/relaxmesh/stencil/pkg/utils"
)

var tracer = otel.Tracer("relaxctl/sweep")

// Orchestrator runs a job matrix through a fixed-size worker pool,
// bounded by WorkerCount, collecting one Result per job.
type Orchestrator struct {
	workerCount int
	clock       utils.Clock
	logger      utils.Logger
}

// NewOrchestrator creates an orchestrator bounded to workerCount
// concurrent jobs. A nil clock defaults to RealClock; a nil logger
// disables logging.
func NewOrchestrator(workerCount int, clock utils.Clock, logger utils.Logger) *Orchestrator {
	if workerCount < 1 {
		workerCount = 1
	}
	if clock == nil {
		clock = utils.NewRealClock()
	}
	return &Orchestrator{workerCount: workerCount, clock: clock, logger: logger}
}

// Run drains jobs (preserving matrix order) through a worker pool and
// returns one model.Result per job, in matrix order. A job failure
// aborts the whole sweep, matching the core driver's fatal-error
// semantics.
func (o *Orchestrator) Run(ctx context.Context, jobs []Job) ([]model.Result, error) {
	queue := collections.NewQueue[Job](len(jobs))
	for _, j := range jobs {
		queue.Enqueue(j)
	}
	ordered := make([]Job, 0, len(jobs))
	for {
		j, ok := queue.Dequeue()
		if !ok {
			break
		}
		ordered = append(ordered, j)
	}

	pool := parallel.NewWorkerPool[Job, model.Result](parallel.DefaultPoolConfig().WithWorkers(o.workerCount))
	taskResults := pool.ExecuteFunc(ctx, ordered, o.runJob)

	results := make([]model.Result, len(taskResults))
	for i, tr := range taskResults {
		if tr.Error != nil {
			return nil, fmt.Errorf("sweep job %d (size=%d threads=%d type=%s) failed: %w",
				i, tr.Input.Size, tr.Input.Threads, tr.Input.Type, tr.Error)
		}
		results[i] = tr.Result
		if o.logger != nil {
			o.logger.Info("sweep job complete: type=%s size=%d threads=%d seconds=%f",
				tr.Input.Type.String(), tr.Input.Size, tr.Input.Threads, tr.Result.Seconds)
		}
	}

	return results, nil
}

// runJob materializes a seeded grid, runs the requested driver to
// convergence inside one span per job, and renders the outcome as a
// model.Result.
func (o *Orchestrator) runJob(ctx context.Context, job Job) (model.Result, error) {
	_, span := tracer.Start(ctx, "sweep.job")
	defer span.End()
	span.SetAttributes(
		attribute.String("relax.run_type", job.Type.String()),
		attribute.Int("relax.size", job.Size),
		attribute.Int("relax.threads", job.Threads),
		attribute.Float64("relax.precision", job.Precision),
	)

	source, err := rng.InitSeeded(job.Size, job.Size)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return model.Result{}, err
	}
	target, err := grid.CloneWithEdge(source)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return model.Result{}, err
	}

	start := o.clock.Now()

	var result driver.Result
	switch job.Type {
	case model.RunTypeSerial:
		result, err = driver.NewSerialDriver(job.Precision, o.logger).Run(source, target)
	case model.RunTypePool:
		result, err = driver.NewPoolDriver(job.Precision, job.Threads, job.Chunk, o.logger).Run(source, target)
	case model.RunTypeDistributed:
		result, err = driver.NewDistributedDriver(job.Threads, job.Precision, 1, job.Chunk, o.logger).Run(source)
	default:
		err = fmt.Errorf("unsupported run type: %s", job.Type)
	}
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return model.Result{}, err
	}

	elapsed := o.clock.Since(start)
	span.SetAttributes(
		attribute.Int("relax.sweeps", result.Sweeps),
		attribute.Float64("relax.seconds", elapsed.Seconds()),
	)

	return model.Result{
		LoopCount: int64(result.Sweeps),
		Type:      job.Type,
		Size:      job.Size,
		Threads:   job.Threads,
		Precision: job.Precision,
		Seconds:   elapsed.Seconds(),
		XOR64:     grid.ChecksumXOR(result.Grid),
		SUM64:     grid.ChecksumSum(result.Grid),
	}, nil
}
