package cmd

import (
	"fmt"
	"os"

	"drill-eda/core/logger"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// RootCmd represents the base command when called without any subcommands
var RootCmd = &cobra.Command{
	Use:   "drill-eda",
	Short: "Drillhole lithology/assay reconciliation",
	Long: `drill-eda reconciles drillhole lithology logs with assay intervals into a
single depth-consistent interval table, and serves analyses of the result.
Sources can be local CSV files, CSV objects in S3/MinIO, or database tables.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

var (
	// configDir is where .env is looked up.
	configDir string
	// jobFlag overrides the configured job file (RECONCILE_JOB_PATH).
	jobFlag string
)

// Execute runs the root command and exits non-zero on failure.
func Execute() {
	if err := RootCmd.Execute(); err != nil {
		// Use the application's standard logger for error reporting
		// We default to console format to match user expectations (CLI tool)
		// We use "debug" level configuration to get ISO8601 timestamps (DevConfig) instead of Epoch (ProdConfig)
		cfg := &logger.Config{
			Level:  "debug",
			Format: "console",
		}

		l, logErr := logger.New(cfg)
		if logErr == nil {
			// Log the error with structured logger (Console encoding will make it pretty)
			l.Error("command failed", zap.Error(err))
			_ = l.Sync()
		} else {
			// Absolute fallback if logger creation fails (rare)
			fmt.Println(err)
		}
		os.Exit(1)
	}
}

func init() {
	RootCmd.PersistentFlags().StringVar(&configDir, "config-dir", ".", "Directory holding the .env file")
	RootCmd.PersistentFlags().StringVar(&jobFlag, "job", "", "Reconciliation job file (defaults to RECONCILE_JOB_PATH)")
}
