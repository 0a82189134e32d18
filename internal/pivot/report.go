package pivot

import (
	"fmt"
	"os"
	"sort"
	"strings"
	"text/tabwriter"

	"go.uber.org/zap"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// previewRows is how many output rows the summary preview shows.
const previewRows = 5

// Summary renders the verification report for a set of output rows:
// distinct property rates, allocation and supply totals, the event
// distribution, and a preview of the first rows.
func Summary(rows []Row) string {
	var b strings.Builder

	b.WriteString("Verification Summary\n")
	b.WriteString("====================\n\n")

	writeRateSection(&b, rows)
	writeTotalsSection(&b, rows)
	writeEventSection(&b, rows)
	writePreviewSection(&b, rows)

	return b.String()
}

// writeRateSection lists distinct (property, rate) pairs in first-seen order.
func writeRateSection(b *strings.Builder, rows []Row) {
	b.WriteString("Property Rates:\n")

	type pair struct{ property, rate string }
	seen := make(map[pair]bool)
	for _, r := range rows {
		p := pair{r.Property, r.Rate}
		if seen[p] {
			continue
		}
		seen[p] = true
		fmt.Fprintf(b, "  %s: %s\n", p.property, p.rate)
	}
	b.WriteString("\n")
}

// writeTotalsSection sums allocation and supply, grouped thousands, no decimals.
func writeTotalsSection(b *strings.Builder, rows []Row) {
	var allocation, supply float64
	for _, r := range rows {
		allocation += r.Allocation
		supply += r.Supply
	}

	p := message.NewPrinter(language.English)
	b.WriteString("Totals:\n")
	fmt.Fprintf(b, "  Total allocation: %s\n", p.Sprintf("%.0f", allocation))
	fmt.Fprintf(b, "  Total supply: %s\n", p.Sprintf("%.0f", supply))
	b.WriteString("\n")
}

// writeEventSection counts rows per event, descending by count with ties
// kept in first-seen order.
func writeEventSection(b *strings.Builder, rows []Row) {
	b.WriteString("Event Distribution:\n")

	counts := make(map[string]int)
	var order []string
	for _, r := range rows {
		if _, ok := counts[r.Event]; !ok {
			order = append(order, r.Event)
		}
		counts[r.Event]++
	}
	sort.SliceStable(order, func(i, j int) bool {
		return counts[order[i]] > counts[order[j]]
	})

	for _, event := range order {
		fmt.Fprintf(b, "  %s: %d entries\n", event, counts[event])
	}
	b.WriteString("\n")
}

// writePreviewSection renders the first few rows as an aligned table.
func writePreviewSection(b *strings.Builder, rows []Row) {
	fmt.Fprintf(b, "Preview (first %d rows):\n", previewRows)

	w := tabwriter.NewWriter(b, 0, 0, 2, ' ', 0)
	_, _ = fmt.Fprintln(w, "date\tevent\tproperty\timpressions\tbu\tallocation\tprice_type\trate\tsupply\tpage")

	n := len(rows)
	if n > previewRows {
		n = previewRows
	}
	for _, r := range rows[:n] {
		_, _ = fmt.Fprintf(w, "%s\t%s\t%s\t%d\t%s\t%s\t%s\t%s\t%s\t%s\n",
			r.Date,
			r.Event,
			r.Property,
			r.Impressions,
			r.BusinessUnit,
			formatNumber(r.Allocation),
			r.PriceType,
			r.Rate,
			formatNumber(r.Supply),
			r.Page,
		)
	}
	_ = w.Flush()
}

// WriteSummary generates the verification report, logs it, and writes it
// to path when one is given. The report is supplementary, so a failed
// write is logged and swallowed rather than failing the run.
func WriteSummary(rows []Row, path string) {
	report := Summary(rows)

	zap.L().Info("verification summary generated",
		zap.Int("rows", len(rows)),
		zap.String("report", report),
	)

	if path == "" {
		return
	}
	if err := os.WriteFile(path, []byte(report), 0o644); err != nil {
		zap.L().Error("write verification report", zap.String("path", path), zap.Error(err))
		return
	}
	zap.L().Info("verification report written", zap.String("path", path))
}
