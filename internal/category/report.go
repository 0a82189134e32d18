package category

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/zap"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// ReportFileName is the fixed verification report name, written next to
// the output file.
const ReportFileName = "cat_verification.txt"

const (
	crore   = 10_000_000
	million = 1_000_000
)

// Report renders the verification report for a completed run.
func Report(stats *Stats) string {
	p := message.NewPrinter(language.English)
	var b strings.Builder

	b.WriteString("=== CATEGORY PAGES DATA VERIFICATION ===\n\n")
	b.WriteString("=== SUMMARY STATISTICS ===\n")
	fmt.Fprintf(&b, "Total Rows: %d\n", stats.Rows)
	fmt.Fprintf(&b, "Total Revenue: %s\n", p.Sprintf("%.2f", float64(stats.TotalRevenue)))
	fmt.Fprintf(&b, "Total Revenue (in cr): %s\n", p.Sprintf("%.2f", float64(stats.TotalRevenue)/crore))
	fmt.Fprintf(&b, "Total Impressions: %s\n", p.Sprintf("%d", stats.TotalImpressions))
	fmt.Fprintf(&b, "Total Impressions (in mn): %s\n", p.Sprintf("%.2f", float64(stats.TotalImpressions)/million))
	fmt.Fprintf(&b, "Unique Properties: %d\n", stats.Properties)
	fmt.Fprintf(&b, "Date Range: %s to %s\n", stats.MinDate, stats.MaxDate)

	return b.String()
}

// WriteReport writes the verification report next to the output file.
// The report is supplementary; failures are logged and swallowed.
func WriteReport(stats *Stats, outputPath string) {
	report := Report(stats)
	path := filepath.Join(filepath.Dir(outputPath), ReportFileName)

	if err := os.WriteFile(path, []byte(report), 0o644); err != nil {
		zap.L().Error("category: write verification report", zap.String("path", path), zap.Error(err))
		return
	}
	zap.L().Info("category: verification report written", zap.String("path", path))
}
