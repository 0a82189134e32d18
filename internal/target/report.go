package target

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"go.uber.org/zap"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// ReportFileName is the fixed verification report name, written next to
// the output file.
const ReportFileName = "HP_TARGETINGverification.txt"

// crore is the Indian numbering unit used in the financial summary.
const crore = 10_000_000

// Report renders the verification report for a completed run.
func Report(stats *Stats, inputPath, outputPath string) string {
	p := message.NewPrinter(language.English)
	var b strings.Builder

	b.WriteString("Verification Report\n")
	b.WriteString("====================\n")
	fmt.Fprintf(&b, "Generated on: %s\n", time.Now().Format("2006-01-02 15:04:05"))
	fmt.Fprintf(&b, "Input file: %s\n", inputPath)
	fmt.Fprintf(&b, "Output file: %s\n\n", outputPath)

	b.WriteString("Processed Data Summary:\n")
	b.WriteString("---------------------\n")
	fmt.Fprintf(&b, "Total rows processed: %d\n", stats.Processed)
	fmt.Fprintf(&b, "Rows skipped due to errors: %d\n", stats.Skipped)
	fmt.Fprintf(&b, "Date range: %s\n", dateRange(stats))
	events := append([]string(nil), stats.Events...)
	sort.Strings(events)
	fmt.Fprintf(&b, "Events: %s\n\n", strings.Join(events, ", "))

	b.WriteString("Financial Summary:\n")
	b.WriteString("----------------\n")
	fmt.Fprintf(&b, "Total Supply: %s (%.2f crores)\n",
		p.Sprintf("%d", stats.TotalSupply), float64(stats.TotalSupply)/crore)
	fmt.Fprintf(&b, "Total Allocation: %s (%.2f crores)\n",
		p.Sprintf("%d", stats.TotalAllocation), float64(stats.TotalAllocation)/crore)
	fmt.Fprintf(&b, "Total Rate*Impressions/1000: %s (%.2f crores)\n\n",
		p.Sprintf("%.2f", stats.RateImpressions), stats.RateImpressions/crore)

	b.WriteString("Fixed Properties Used:\n")
	b.WriteString("-------------------\n")
	fmt.Fprintf(&b, "Property: %s\n", PropertyName)
	fmt.Fprintf(&b, "Business Unit: %s\n", BusinessUnit)
	fmt.Fprintf(&b, "Page: %s\n", Page)
	fmt.Fprintf(&b, "Price Type: %s\n", PriceType)

	return b.String()
}

func dateRange(stats *Stats) string {
	if stats.MinDate.IsZero() {
		return ""
	}
	return fmt.Sprintf("%s to %s",
		stats.MinDate.Format(outputDateLayout),
		stats.MaxDate.Format(outputDateLayout))
}

// WriteReport writes the verification report next to the output file.
// The report is supplementary; failures are logged and swallowed.
func WriteReport(stats *Stats, inputPath, outputPath string) {
	report := Report(stats, inputPath, outputPath)
	path := filepath.Join(filepath.Dir(outputPath), ReportFileName)

	if err := os.WriteFile(path, []byte(report), 0o644); err != nil {
		zap.L().Error("target: write verification report", zap.String("path", path), zap.Error(err))
		return
	}
	zap.L().Info("target: verification report written", zap.String("path", path))
}
