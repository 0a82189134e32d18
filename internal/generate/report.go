package generate

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"go.uber.org/zap"
)

// Verification renders a summary of a generated month dataset.
func Verification(entries []Entry, year int, month time.Month) string {
	dates := make(map[string]bool)
	var properties, priceTypes, pages, units []string
	seenProp := make(map[string]bool)
	seenType := make(map[string]bool)
	seenPage := make(map[string]bool)
	seenUnit := make(map[string]bool)

	for _, e := range entries {
		dates[e.Date] = true
		if !seenProp[e.Property] {
			seenProp[e.Property] = true
			properties = append(properties, e.Property)
		}
		if !seenType[e.PriceType] {
			seenType[e.PriceType] = true
			priceTypes = append(priceTypes, e.PriceType)
		}
		if !seenPage[e.Page] {
			seenPage[e.Page] = true
			pages = append(pages, e.Page)
		}
		if !seenUnit[e.BusinessUnit] {
			seenUnit[e.BusinessUnit] = true
			units = append(units, e.BusinessUnit)
		}
	}

	perDay := 0
	if len(dates) > 0 {
		perDay = len(entries) / len(dates)
	}

	var b strings.Builder
	b.WriteString("Verification Report\n")
	b.WriteString("====================\n")
	fmt.Fprintf(&b, "Month: %s %d\n", month.String(), year)
	fmt.Fprintf(&b, "Days in month: %d\n", DaysIn(year, month))
	fmt.Fprintf(&b, "Total rows: %d\n", len(entries))
	fmt.Fprintf(&b, "Unique dates: %d\n", len(dates))
	fmt.Fprintf(&b, "Unique properties: %d\n", len(properties))
	fmt.Fprintf(&b, "Properties per day: %d\n\n", perDay)

	b.WriteString("Data Summary:\n")
	b.WriteString("------------\n")
	fmt.Fprintf(&b, "Properties: %s\n", strings.Join(properties, ", "))
	fmt.Fprintf(&b, "Price types: %s\n", strings.Join(priceTypes, ", "))
	fmt.Fprintf(&b, "Pages: %s\n", strings.Join(pages, ", "))
	fmt.Fprintf(&b, "Business units: %s\n", strings.Join(units, ", "))

	return b.String()
}

// WriteVerification writes the summary to verification.txt in outputDir.
// Supplementary output; failures are logged and swallowed.
func WriteVerification(entries []Entry, outputDir string, year int, month time.Month) {
	path := filepath.Join(outputDir, "verification.txt")
	report := Verification(entries, year, month)

	if err := os.WriteFile(path, []byte(report), 0o644); err != nil {
		zap.L().Error("generate: write verification report", zap.String("path", path), zap.Error(err))
		return
	}
	zap.L().Info("generate: verification report written", zap.String("path", path))
}
