package main

import (
	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/voiro/adt-cli/internal/target"
)

var targetCmd = &cobra.Command{
	Use:   "target <input> <output>",
	Short: "Convert a homepage-targeting impression feed",
	Long: `Reads a feed with date, impressions, event, and rate columns and
writes fixed-property allocation rows. Supply is impressions scaled to
absolute units; rows that fail parsing are skipped and counted.`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		inputPath, outputPath := args[0], args[1]

		stats, err := target.Process(inputPath, outputPath)
		if err != nil {
			return eris.Wrap(err, "target: process feed")
		}

		zap.L().Info("target: complete",
			zap.Int("processed", stats.Processed),
			zap.Int("skipped", stats.Skipped),
			zap.Int64("total_supply", stats.TotalSupply),
			zap.Int64("total_allocation", stats.TotalAllocation),
			zap.String("output", outputPath),
		)

		target.WriteReport(stats, inputPath, outputPath)

		return nil
	},
}

func init() {
	rootCmd.AddCommand(targetCmd)
}
