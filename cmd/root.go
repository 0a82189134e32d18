package main

import (
	"fmt"
	"os"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/voiro/adt-cli/internal/config"
)

var cfg *config.Config

var rootCmd = &cobra.Command{
	Use:   "adt",
	Short: "Ad-allocation data transformation toolkit",
	Long:  "Converts wide property-allocation sheets to long format, converts targeting impression feeds, and generates fixed-property month pricing data.",
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		c, err := config.Load()
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}
		cfg = c

		if err := config.InitLogger(cfg.Log); err != nil {
			return fmt.Errorf("init logger: %w", err)
		}

		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		_ = zap.L().Sync()
	},
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		zap.L().Error("command failed", zap.String("trace", errorTrace(err)))
		_ = zap.L().Sync()
		os.Exit(1)
	}
}

// errorTrace expands a wrapped error into its full cause chain for the
// log; cobra already printed the one-line message to stderr.
func errorTrace(err error) string {
	return eris.ToString(err, true)
}
