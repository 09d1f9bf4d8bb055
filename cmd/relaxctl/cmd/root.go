package cmd

import (
	"context"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/relaxmesh/stencil/pkg/config"
	"github.com/relaxmesh/stencil/pkg/telemetry"
	"github.com/relaxmesh/stencil/pkg/utils"
)

var (
	// Global flags
	verbose    bool
	configPath string
	persist    bool
	archive    string

	logger       utils.Logger
	cfg          *config.Config
	otelShutdown telemetry.ShutdownFunc
)

// rootCmd represents the base command.
var rootCmd = &cobra.Command{
	Use:   "relaxctl",
	Short: "Run and benchmark parallel stencil relaxation over a 2D grid",
	Long: `relaxctl drives a Jacobi stencil-relaxation engine over a seeded
2D grid to convergence, using one of three execution strategies: serial,
fixed-size worker pool, or rank-distributed with ghost-row exchange.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		logLevel := utils.LevelInfo
		if verbose {
			logLevel = utils.LevelDebug
		}
		logger = utils.NewDefaultLogger(logLevel, os.Stdout)

		loaded, err := config.Load(configPath)
		if err != nil {
			return err
		}
		if err := loaded.Validate(); err != nil {
			return err
		}
		cfg = loaded

		shutdown, err := telemetry.Init(context.Background())
		if err != nil {
			logger.Warn("telemetry init failed, continuing without tracing: %v", err)
		} else {
			otelShutdown = shutdown
		}
		return nil
	},
	PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
		if otelShutdown != nil {
			return otelShutdown(context.Background())
		}
		return nil
	},
}

// Execute adds all child commands to the root command and runs it.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging")
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Path to YAML configuration file")
	rootCmd.PersistentFlags().BoolVar(&persist, "persist", false, "Persist each run's result to the configured database")
	rootCmd.PersistentFlags().StringVar(&archive, "archive", "", "Archive each result's compressed CSV record under this storage key prefix")

	binName := BinName()
	rootCmd.Example = `  # Run one serial benchmark at size 256
  ` + binName + ` run 1 256 0.0001 serial 10

  # Run one pool benchmark with 4 threads
  ` + binName + ` run 4 256 0.0001 pool 10

  # Run the built-in thread-count sweep and persist every result
  ` + binName + ` sweep --persist

  # Run a sweep archiving each CSV record under a storage prefix
  ` + binName + ` sweep --archive runs/2026-07-31`
}

// GetLogger returns the configured logger.
func GetLogger() utils.Logger {
	return logger
}

// GetConfig returns the loaded configuration.
func GetConfig() *config.Config {
	return cfg
}

// BinName returns the base name of the current executable.
func BinName() string {
	return filepath.Base(os.Args[0])
}
