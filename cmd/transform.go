package main

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/voiro/adt-cli/internal/pivot"
	"github.com/voiro/adt-cli/internal/sheet"
)

var transformCmd = &cobra.Command{
	Use:   "transform [input] [output] [verification]",
	Short: "Convert a wide property-allocation sheet to long format",
	Long: `Reads a delimited or XLSX sheet whose first row holds per-property
rates and whose second row holds headers (date, event, then property
names), and emits one output row per date/event/property with a present
value. A verification report is written alongside the output.

With no arguments the configured default input/output pair is used. The
verification path defaults to the output path with its extension replaced
by _verification.txt.`,
	Args: cobra.MaximumNArgs(3),
	RunE: func(cmd *cobra.Command, args []string) error {
		inputPath := cfg.Transform.DefaultInput
		outputPath := cfg.Transform.DefaultOutput
		if len(args) >= 1 {
			inputPath = args[0]
		}
		if len(args) >= 2 {
			outputPath = args[1]
		}
		verificationPath := deriveVerificationPath(outputPath)
		if len(args) >= 3 {
			verificationPath = args[2]
		}

		zap.L().Info("transform: starting",
			zap.String("input", inputPath),
			zap.String("output", outputPath),
			zap.String("verification", verificationPath),
		)

		table, err := sheet.Read(inputPath)
		if err != nil {
			return eris.Wrap(err, "transform: read input")
		}
		zap.L().Info("transform: sheet parsed",
			zap.Int("rows", len(table)),
			zap.Int("columns", len(table[0])),
		)

		rates, err := pivot.ExtractRates(table)
		if err != nil {
			return eris.Wrap(err, "transform: extract rates")
		}

		input, err := pivot.BuildInput(table, rates)
		if err != nil {
			return eris.Wrap(err, "transform: build input")
		}
		zap.L().Info("transform: input built",
			zap.Int("records", len(input.Records)),
			zap.Int("properties", len(input.Properties)),
		)
		if input.Missing > 0 {
			zap.L().Warn("transform: cells failed numeric coercion, treated as missing",
				zap.Int("cells", input.Missing),
			)
		}

		rows := input.Transform(pivot.Constants{
			BusinessUnit: cfg.Transform.BusinessUnit,
			Page:         cfg.Transform.Page,
			PriceType:    cfg.Transform.PriceType,
		})

		if dir := filepath.Dir(outputPath); dir != "." {
			if err := os.MkdirAll(dir, 0o755); err != nil {
				return eris.Wrap(err, "transform: create output dir")
			}
		}
		if err := pivot.WriteCSV(rows, outputPath); err != nil {
			return eris.Wrap(err, "transform: write output")
		}

		zap.L().Info("transform: complete",
			zap.Int("output_rows", len(rows)),
			zap.String("output", outputPath),
		)

		// Supplementary: failures inside are logged, never fatal.
		pivot.WriteSummary(rows, verificationPath)

		return nil
	},
}

// deriveVerificationPath strips the output path's extension and appends
// _verification.txt.
func deriveVerificationPath(outputPath string) string {
	base := strings.TrimSuffix(outputPath, filepath.Ext(outputPath))
	return base + "_verification.txt"
}

func init() {
	rootCmd.AddCommand(transformCmd)
}
