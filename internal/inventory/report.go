package inventory

import (
	"fmt"
	"os"
	"strings"
	"time"

	"go.uber.org/zap"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// ReportFileName is the verification file shared by all inventory
// processors; each run appends its sections.
const ReportFileName = "plasdbverification.txt"

// PLAReport renders the PLA verification section.
func PLAReport(stats *PLAStats, start time.Time, days int) string {
	p := message.NewPrinter(language.English)
	var b strings.Builder

	fmt.Fprintf(&b, "=== PLA DAILY INVENTORY VERIFICATION ===\n")
	fmt.Fprintf(&b, "Generated on: %s\n\n", time.Now().Format("2006-01-02 15:04:05"))
	fmt.Fprintf(&b, "Month: %s (%d days)\n", start.Format("January 2006"), days)
	fmt.Fprintf(&b, "Business units: %d\n", stats.BusinessUnits)
	fmt.Fprintf(&b, "Output rows: %s\n\n", p.Sprintf("%d", stats.Rows))
	fmt.Fprintf(&b, "Target revenue: %s (%.2f crores)\n", p.Sprintf("%.2f", stats.TargetRevenue), stats.TargetRevenue/croreINR)
	fmt.Fprintf(&b, "Daily revenue (allocation x rate): %s\n", p.Sprintf("%.2f", stats.DailyRevenue))
	fmt.Fprintf(&b, "Monthly revenue: %s (%.2f crores)\n\n", p.Sprintf("%.2f", stats.MonthlyRevenue), stats.MonthlyRevenue/croreINR)

	return b.String()
}

// MonetisedReport renders a monetised verification section for the
// given property label.
func MonetisedReport(stats *MonetisedStats, property string, start time.Time, days int) string {
	p := message.NewPrinter(language.English)
	var b strings.Builder

	fmt.Fprintf(&b, "=== %s DAILY INVENTORY VERIFICATION ===\n", property)
	fmt.Fprintf(&b, "Generated on: %s\n\n", time.Now().Format("2006-01-02 15:04:05"))
	fmt.Fprintf(&b, "Month: %s (%d days)\n", start.Format("January 2006"), days)
	fmt.Fprintf(&b, "Business units: %d\n", stats.BusinessUnits)
	fmt.Fprintf(&b, "Output rows: %s\n", p.Sprintf("%d", stats.Rows))
	fmt.Fprintf(&b, "Rate: %.0f CPM\n\n", stats.Rate)
	fmt.Fprintf(&b, "Daily revenue: %s\n", p.Sprintf("%.2f", stats.DailyRevenue))
	fmt.Fprintf(&b, "Monthly revenue: %s (%.2f crores)\n\n", p.Sprintf("%.2f", stats.MonthlyRevenue), stats.MonthlyRevenue/croreINR)

	return b.String()
}

// AppendVerification appends a report section to path. Failures are
// logged and never abort the run.
func AppendVerification(report, path string) {
	zap.L().Info("inventory verification", zap.String("report", report))

	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		zap.L().Warn("could not open verification file", zap.String("path", path), zap.Error(err))
		return
	}
	defer f.Close()

	if _, err := f.WriteString(report); err != nil {
		zap.L().Warn("could not append verification report", zap.String("path", path), zap.Error(err))
	}
}
