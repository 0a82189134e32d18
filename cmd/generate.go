package main

import (
	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/voiro/adt-cli/internal/generate"
)

var (
	generateMonth     string
	generateYear      int
	generateOutputDir string
)

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Generate fixed-property pricing data for a month",
	Long:  "Repeats the daily pricing template once per day of the given month and writes the dataset plus a verification report.",
	RunE: func(cmd *cobra.Command, _ []string) error {
		month, err := generate.ParseMonth(generateMonth)
		if err != nil {
			return err
		}

		year := generateYear
		if year == 0 {
			year = cfg.Generate.Year
		}
		outputDir := generateOutputDir
		if outputDir == "" {
			outputDir = cfg.Generate.OutputDir
		}

		entries := generate.MonthEntries(year, month)
		zap.L().Info("generate: entries built",
			zap.String("month", month.String()),
			zap.Int("year", year),
			zap.Int("rows", len(entries)),
		)

		path, err := generate.WriteCSV(entries, outputDir, year, month)
		if err != nil {
			return eris.Wrap(err, "generate: write dataset")
		}
		zap.L().Info("generate: dataset written", zap.String("path", path))

		generate.WriteVerification(entries, outputDir, year, month)

		return nil
	},
}

func init() {
	generateCmd.Flags().StringVar(&generateMonth, "month", "", "month name, full or abbreviated (required)")
	generateCmd.Flags().IntVar(&generateYear, "year", 0, "year (defaults to configured year)")
	generateCmd.Flags().StringVar(&generateOutputDir, "output-dir", "", "directory for output files")
	_ = generateCmd.MarkFlagRequired("month")
	rootCmd.AddCommand(generateCmd)
}
