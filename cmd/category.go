package main

import (
	"os"
	"path/filepath"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/voiro/adt-cli/internal/category"
)

var categoryCmd = &cobra.Command{
	Use:   "category <input> [output]",
	Short: "Build the category-pages per-slot pricing report",
	Long: `Reads a wide category-pages sheet (per-property impression columns plus
a trailing rate card) and writes a long per-slot pricing report. Slots
for duplicated property columns pool into shared supply; a verification
report lands next to the output.`,
	Args: cobra.RangeArgs(1, 2),
	RunE: func(cmd *cobra.Command, args []string) error {
		inputPath := args[0]
		outputPath := cfg.Category.Output
		if len(args) > 1 {
			outputPath = args[1]
		}
		if dir := filepath.Dir(outputPath); dir != "." {
			if err := os.MkdirAll(dir, 0o755); err != nil {
				return eris.Wrap(err, "category: create output directory")
			}
		}

		stats, err := category.Process(inputPath, outputPath)
		if err != nil {
			return eris.Wrap(err, "category: process sheet")
		}

		zap.L().Info("category: complete",
			zap.Int("rows", stats.Rows),
			zap.Int64("total_revenue", stats.TotalRevenue),
			zap.Int64("total_impressions", stats.TotalImpressions),
			zap.Int("properties", stats.Properties),
			zap.String("output", outputPath),
		)

		category.WriteReport(stats, outputPath)

		return nil
	},
}

func init() {
	rootCmd.AddCommand(categoryCmd)
}
