package cmd

import (
	"context"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"

	"github.com/relaxmesh/stencil/pkg/driver"
	"github.com/relaxmesh/stencil/pkg/grid"
	"github.com/relaxmesh/stencil/pkg/model"
	"github.com/relaxmesh/stencil/pkg/rng"
	"github.com/relaxmesh/stencil/pkg/utils"
)

var tracer = otel.Tracer("relaxctl/run")

// runCmd represents the run command: one configured benchmark, mirroring
// the harness's positional-argument invocation.
var runCmd = &cobra.Command{
	Use:   "run <threads> <size> <precision> <type> <cut>",
	Short: "Run a single configured benchmark",
	Long: `Run runs exactly one benchmark: a serial sweep, a fixed-size worker-pool
sweep, or a rank-distributed sweep, and prints its result as one CSV line.

  threads    worker count (pool) or rank count (dist); ignored for serial
  size       grid width and height
  precision  convergence threshold epsilon
  type       0/serial, 1/pool, 2/dist
  cut        row-chunk size handed to each pool worker per sweep`,
	Args: cobra.ExactArgs(5),
	RunE: runRun,
}

func init() {
	rootCmd.AddCommand(runCmd)

	binName := BinName()
	runCmd.Example = `  # Serial run at size 256, epsilon 0.0001
  ` + binName + ` run 1 256 0.0001 serial 10

  # Pool run with 8 workers, chunk size 16
  ` + binName + ` run 8 512 0.0001 pool 16

  # Distributed run with 4 simulated ranks
  ` + binName + ` run 4 256 0.0001 dist 10`
}

func runRun(cmd *cobra.Command, args []string) error {
	threads, err := strconv.Atoi(args[0])
	if err != nil {
		return fmt.Errorf("invalid threads %q: %w", args[0], err)
	}
	size, err := strconv.Atoi(args[1])
	if err != nil {
		return fmt.Errorf("invalid size %q: %w", args[1], err)
	}
	precision, err := strconv.ParseFloat(args[2], 64)
	if err != nil {
		return fmt.Errorf("invalid precision %q: %w", args[2], err)
	}
	runType, err := model.ParseRunType(args[3])
	if err != nil {
		return err
	}
	cut, err := strconv.Atoi(args[4])
	if err != nil {
		return fmt.Errorf("invalid cut %q: %w", args[4], err)
	}

	log := GetLogger()
	result, err := runOnce(cmd.Context(), log, runType, size, threads, precision, cut)
	if err != nil {
		return err
	}

	fmt.Println(result.CSVRow())

	if persist || archive != "" {
		sink, err := newResultSink(GetConfig(), persist, archive)
		if err != nil {
			return err
		}
		defer sink.Close()
		if err := sink.Record(cmd.Context(), result); err != nil {
			return err
		}
	}

	return nil
}

// runOnce seeds a grid and drives it to convergence using the requested
// strategy inside one span, returning the completed result.
func runOnce(ctx context.Context, log utils.Logger, runType model.RunType, size, threads int, precision float64, cut int) (model.Result, error) {
	_, span := tracer.Start(ctx, "run.once")
	defer span.End()
	span.SetAttributes(
		attribute.String("relax.run_type", runType.String()),
		attribute.Int("relax.size", size),
		attribute.Int("relax.threads", threads),
		attribute.Float64("relax.precision", precision),
	)

	source, err := rng.InitSeeded(size, size)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return model.Result{}, err
	}

	clock := utils.NewRealClock()
	start := clock.Now()

	var result driver.Result
	switch runType {
	case model.RunTypeSerial:
		target, terr := grid.CloneWithEdge(source)
		if terr != nil {
			span.RecordError(terr)
			span.SetStatus(codes.Error, terr.Error())
			return model.Result{}, terr
		}
		result, err = driver.NewSerialDriver(precision, log).Run(source, target)
	case model.RunTypePool:
		target, terr := grid.CloneWithEdge(source)
		if terr != nil {
			span.RecordError(terr)
			span.SetStatus(codes.Error, terr.Error())
			return model.Result{}, terr
		}
		result, err = driver.NewPoolDriver(precision, threads, cut, log).Run(source, target)
	case model.RunTypeDistributed:
		result, err = driver.NewDistributedDriver(threads, precision, 1, cut, log).Run(source)
	default:
		err = fmt.Errorf("unsupported run type: %s", runType)
	}
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return model.Result{}, err
	}

	elapsed := clock.Since(start)
	span.SetAttributes(
		attribute.Int("relax.sweeps", result.Sweeps),
		attribute.Float64("relax.seconds", elapsed.Seconds()),
	)

	return model.Result{
		LoopCount: int64(result.Sweeps),
		Type:      runType,
		Size:      size,
		Threads:   threads,
		Precision: precision,
		Seconds:   elapsed.Seconds(),
		XOR64:     grid.ChecksumXOR(result.Grid),
		SUM64:     grid.ChecksumSum(result.Grid),
	}, nil
}
