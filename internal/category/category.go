// Package category melts the category-pages planning sheet (wide
// per-property impression columns plus a trailing rate card) into a
// long per-slot pricing report.
package category

import (
	"encoding/csv"
	"math"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/voiro/adt-cli/internal/sheet"
)

// PriceType is fixed for category inventory; rates are quoted per day.
const PriceType = "CPD"

const propertyStart = 2

// Rate-card rows are matched by the label in the date column.
const (
	metricRate       = "rate"
	metricSlots      = "no of slot"
	metricAllocation = "allocation"
	metricPage       = "page"
)

var dateLayouts = []string{
	"2006-01-02",
	"2006-01-02 15:04:05",
	"2006/01/02",
	"02-01-2006",
	"02/01/2006",
	"1/2/06",
}

// property is one sheet column joined with its rate-card entries. Name
// is the header with any duplicate-column suffix (".1", ".2") removed;
// duplicates keep separate slot counts but share supply.
type property struct {
	name    string
	col     int
	slots   int64
	cpmRate float64
	bu      string
	page    string
}

// Row is one per-slot pricing row of the final report.
type Row struct {
	Date             string
	Event            string
	Property         string
	BU               string
	Page             string
	PriceType        string
	CPMRate          float64
	Rate             int64
	Allocation       int64
	Supply           int64
	Impressions      int64
	TotalRevenue     int64
	TotalImpressions int64
}

// Stats accumulates verification data across a run.
type Stats struct {
	Rows             int
	TotalRevenue     int64
	TotalImpressions int64
	Properties       int
	MinDate          string
	MaxDate          string
}

// Process reads the planning sheet at inputPath, writes the long report
// to outputPath, and returns run statistics.
func Process(inputPath, outputPath string) (*Stats, error) {
	table, err := sheet.Read(inputPath)
	if err != nil {
		return nil, eris.Wrap(err, "category: read input")
	}

	rows, stats, err := Transform(table)
	if err != nil {
		return nil, err
	}
	if err := WriteCSV(rows, outputPath); err != nil {
		return nil, err
	}
	return stats, nil
}

// Transform melts a parsed sheet into report rows.
func Transform(table sheet.Table) ([]Row, *Stats, error) {
	data, rateCard, err := split(table)
	if err != nil {
		return nil, nil, err
	}

	props := buildProperties(table[0], rateCard)
	if len(props) == 0 {
		return nil, nil, eris.New("category: no property columns")
	}

	// Duplicate columns for the same property pool their slots; that
	// pooled count is every slot row's supply.
	supply := make(map[string]int64)
	for _, p := range props {
		supply[p.name] += p.slots
	}

	stats := &Stats{}
	seen := make(map[string]bool)
	var rows []Row

	for _, record := range data {
		day, err := parseDate(record[0])
		if err != nil {
			zap.L().Warn("category: row skipped", zap.String("date", record[0]), zap.Error(err))
			continue
		}
		date := day.Format("2006-01-02")
		event := strings.TrimSpace(record[1])

		for _, p := range props {
			impressions := math.Round(parseNumber(record[p.col]))

			// Per-slot impressions keep the fractional value for the
			// rate so rounding happens once, then truncate for output.
			var perSlot float64
			if supply[p.name] > 0 {
				perSlot = impressions / float64(supply[p.name])
			}
			rate := int64(math.Round(p.cpmRate * perSlot / 1000))

			row := Row{
				Date:             date,
				Event:            event,
				Property:         p.name,
				BU:               p.bu,
				Page:             p.page,
				PriceType:        PriceType,
				CPMRate:          p.cpmRate,
				Rate:             rate,
				Allocation:       p.slots,
				Supply:           supply[p.name],
				Impressions:      int64(perSlot),
				TotalRevenue:     p.slots * rate,
				TotalImpressions: p.slots * int64(perSlot),
			}
			rows = append(rows, row)

			stats.TotalRevenue += row.TotalRevenue
			stats.TotalImpressions += row.TotalImpressions
			if !seen[p.name] {
				seen[p.name] = true
				stats.Properties++
			}
			if stats.MinDate == "" || date < stats.MinDate {
				stats.MinDate = date
			}
			if date > stats.MaxDate {
				stats.MaxDate = date
			}
		}
	}

	stats.Rows = len(rows)
	if stats.Rows == 0 {
		return nil, nil, eris.New("category: no data rows")
	}
	return rows, stats, nil
}

// split separates data rows from the trailing rate card: the rate card
// is the run of bottom rows whose date cell is a metric label rather
// than a date.
func split(table sheet.Table) (data, rateCard sheet.Table, err error) {
	if len(table) < 2 {
		return nil, nil, eris.New("category: sheet has no rows")
	}
	if len(table[0]) < propertyStart+1 {
		return nil, nil, eris.New("category: sheet needs date, event, and property columns")
	}

	body := table[1:]
	cut := len(body)
	for cut > 0 {
		if _, err := parseDate(body[cut-1][0]); err == nil {
			break
		}
		cut--
	}
	if cut == len(body) {
		return nil, nil, eris.New("category: no trailing rate card found")
	}
	return body[:cut], body[cut:], nil
}

func buildProperties(header []string, rateCard sheet.Table) []property {
	metrics := make(map[string][]string, len(rateCard))
	for _, row := range rateCard {
		metrics[strings.ToLower(strings.TrimSpace(row[0]))] = row
	}

	cell := func(metric string, col int) string {
		row, ok := metrics[metric]
		if !ok || col >= len(row) {
			return ""
		}
		return strings.TrimSpace(row[col])
	}

	var props []property
	for col := propertyStart; col < len(header); col++ {
		name := trimDuplicateSuffix(strings.TrimSpace(header[col]))
		if name == "" || strings.EqualFold(name, "Traffic") {
			continue
		}
		props = append(props, property{
			name:    name,
			col:     col,
			slots:   int64(parseNumber(cell(metricSlots, col))),
			cpmRate: parseNumber(cell(metricRate, col)),
			bu:      cell(metricAllocation, col),
			page:    cell(metricPage, col),
		})
	}

	// Duplicate columns share one page mapping; the last column wins.
	pages := make(map[string]string, len(props))
	for _, p := range props {
		if p.page != "" {
			pages[p.name] = p.page
		}
	}
	for i := range props {
		props[i].page = pages[props[i].name]
	}

	return props
}

// trimDuplicateSuffix strips the ".N" suffix spreadsheet tools append
// to repeated column headers.
func trimDuplicateSuffix(name string) string {
	i := strings.LastIndexByte(name, '.')
	if i <= 0 || i == len(name)-1 {
		return name
	}
	for _, r := range name[i+1:] {
		if r < '0' || r > '9' {
			return name
		}
	}
	return name[:i]
}

func parseDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, eris.Errorf("category: unparseable date %q", s)
}

// parseNumber reads a numeric cell; blanks and junk count as zero.
func parseNumber(s string) float64 {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(v) {
		return 0
	}
	return v
}

var outputColumns = []string{
	"date", "event", "property", "bu", "page", "price_type",
	"cpm_rate", "rate", "allocation", "supply", "impressions",
	"total_revenue", "total_impressions",
}

// WriteCSV writes report rows to outputPath.
func WriteCSV(rows []Row, outputPath string) error {
	f, err := os.Create(outputPath)
	if err != nil {
		return eris.Wrapf(err, "category: create output file %s", outputPath)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write(outputColumns); err != nil {
		return eris.Wrap(err, "category: write header")
	}
	for _, r := range rows {
		record := []string{
			r.Date,
			r.Event,
			r.Property,
			r.BU,
			r.Page,
			r.PriceType,
			strconv.FormatFloat(r.CPMRate, 'f', -1, 64),
			strconv.FormatInt(r.Rate, 10),
			strconv.FormatInt(r.Allocation, 10),
			strconv.FormatInt(r.Supply, 10),
			strconv.FormatInt(r.Impressions, 10),
			strconv.FormatInt(r.TotalRevenue, 10),
			strconv.FormatInt(r.TotalImpressions, 10),
		}
		if err := w.Write(record); err != nil {
			return eris.Wrap(err, "category: write row")
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return eris.Wrap(err, "category: flush output")
	}
	return nil
}
