package main

import (
	"os"
	"path/filepath"
	"time"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/voiro/adt-cli/internal/inventory"
)

var inventoryOutputDir string

var inventoryCmd = &cobra.Command{
	Use:   "inventory [input]",
	Short: "Convert the search-inventory planning workbook",
	Long: `Reads the planning workbook (per-BU revenue targets, floor prices, and
SDA shares) and writes daily allocation rows for the PLA, monetised, and
zero-slot monetised search properties, one CSV each, plus a shared
verification report. The allocation month follows the workbook's event
calendar.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		inputPath := cfg.Inventory.Input
		if len(args) > 0 {
			inputPath = args[0]
		}
		outputDir := inventoryOutputDir
		if outputDir == "" {
			outputDir = cfg.Inventory.OutputDir
		}
		if err := os.MkdirAll(outputDir, 0o755); err != nil {
			return eris.Wrap(err, "inventory: create output directory")
		}

		wb, err := inventory.Load(inputPath)
		if err != nil {
			return err
		}
		start, days := wb.Month(time.Now())
		zap.L().Info("inventory: workbook loaded",
			zap.String("input", inputPath),
			zap.String("month", start.Format("January 2006")),
			zap.Int("days", days),
			zap.Int("events", wb.Events.Len()),
		)

		verificationPath := filepath.Join(outputDir, inventory.ReportFileName)

		plaRows, plaStats := inventory.ProcessPLA(wb, start, days)
		plaPath := filepath.Join(outputDir, "plasdb_output.csv")
		if err := inventory.WritePLACSV(plaRows, plaPath); err != nil {
			return err
		}
		zap.L().Info("inventory: PLA rows written",
			zap.String("path", plaPath), zap.Int("rows", plaStats.Rows))
		inventory.AppendVerification(inventory.PLAReport(plaStats, start, days), verificationPath)

		runs := []struct {
			column   string
			property string
			output   string
		}{
			{column: "SDA", property: "MONETISED", output: "monetised_output.csv"},
			{column: wb.ZeroSlotColumn(), property: "MONETISED_ZEROSLOT", output: "monetised_zeroslot_output.csv"},
		}
		for _, run := range runs {
			rows, stats := inventory.ProcessMonetised(wb, start, days, run.column, run.property)
			path := filepath.Join(outputDir, run.output)
			if err := inventory.WriteMonetisedCSV(rows, path); err != nil {
				return err
			}
			zap.L().Info("inventory: monetised rows written",
				zap.String("property", run.property),
				zap.String("path", path),
				zap.Int("rows", stats.Rows),
			)
			inventory.AppendVerification(inventory.MonetisedReport(stats, run.property, start, days), verificationPath)
		}

		return nil
	},
}

func init() {
	inventoryCmd.Flags().StringVar(&inventoryOutputDir, "output-dir", "", "directory for output files")
	rootCmd.AddCommand(inventoryCmd)
}
