// Package generate produces per-day fixed-property pricing rows for a
// calendar month.
package generate

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/rotisserie/eris"
)

// Entry is one pricing row.
type Entry struct {
	Date         string
	Property     string
	PriceType    string
	Rate         int
	Page         string
	Supply       int
	Allocation   int
	BusinessUnit string
	Event        string
	Impressions  int
}

// baseEntries is the daily pricing template. Dates are stamped per day.
var baseEntries = []Entry{
	{Property: "Instagram Post", PriceType: "CPD", Rate: 150000, Page: "SOCIAL", BusinessUnit: "OPEN ALLOCATION"},
	{Property: "Instagram Story", PriceType: "CPD", Rate: 150000, Page: "SOCIAL", BusinessUnit: "OPEN ALLOCATION"},
	{Property: "Facebook Post", PriceType: "CPD", Rate: 75000, Page: "SOCIAL", BusinessUnit: "OPEN ALLOCATION"},
	{Property: "Facebook Story", PriceType: "CPD", Rate: 75000, Page: "SOCIAL", BusinessUnit: "OPEN ALLOCATION"},
	{Property: "Push Notification", PriceType: "CPD", Rate: 150000, Page: "CRM", BusinessUnit: "OPEN ALLOCATION"},
	{Property: "Push Notification-Custom", PriceType: "CPD", Rate: 200000, Page: "CRM", BusinessUnit: "SUPPLY TEAM"},
	{Property: "In App Notification", PriceType: "CPD", Rate: 50000, Page: "CRM", BusinessUnit: "SUPPLY TEAM"},
}

// ParseMonth validates a full or abbreviated English month name.
func ParseMonth(name string) (time.Month, error) {
	name = titleCase(strings.TrimSpace(name))
	if t, err := time.Parse("January", name); err == nil {
		return t.Month(), nil
	}
	if t, err := time.Parse("Jan", name); err == nil {
		return t.Month(), nil
	}
	return 0, eris.Errorf("generate: invalid month name %q", name)
}

func titleCase(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + strings.ToLower(s[1:])
}

// DaysIn returns the number of days in a month.
func DaysIn(year int, month time.Month) int {
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

// MonthEntries repeats the pricing template once per day of the month,
// stamping each copy with that day's date.
func MonthEntries(year int, month time.Month) []Entry {
	days := DaysIn(year, month)
	entries := make([]Entry, 0, days*len(baseEntries))

	for day := 1; day <= days; day++ {
		date := fmt.Sprintf("%04d-%02d-%02d", year, int(month), day)
		for _, e := range baseEntries {
			e.Date = date
			e.Supply = 1
			e.Allocation = 1
			e.Event = "ALL"
			e.Impressions = 1
			entries = append(entries, e)
		}
	}

	return entries
}

// WriteCSV writes the entries to data_<month>_<year>.csv inside outputDir,
// creating the directory if needed. Returns the written path.
func WriteCSV(entries []Entry, outputDir string, year int, month time.Month) (string, error) {
	if err := os.MkdirAll(outputDir, 0o755); err != nil {
		return "", eris.Wrap(err, "generate: create output dir")
	}

	name := fmt.Sprintf("data_%s_%d.csv", strings.ToLower(month.String()), year)
	path := filepath.Join(outputDir, name)

	f, err := os.Create(path)
	if err != nil {
		return "", eris.Wrap(err, "generate: create file")
	}
	defer f.Close()

	w := csv.NewWriter(f)
	defer w.Flush()

	header := []string{"date", "property", "price_type", "rate", "page", "supply", "allocation", "bu", "event", "impressions"}
	if err := w.Write(header); err != nil {
		return "", eris.Wrap(err, "generate: write header")
	}

	for _, e := range entries {
		record := []string{
			e.Date,
			e.Property,
			e.PriceType,
			strconv.Itoa(e.Rate),
			e.Page,
			strconv.Itoa(e.Supply),
			strconv.Itoa(e.Allocation),
			e.BusinessUnit,
			e.Event,
			strconv.Itoa(e.Impressions),
		}
		if err := w.Write(record); err != nil {
			return "", eris.Wrap(err, "generate: write row")
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return "", eris.Wrap(err, "generate: flush")
	}

	return path, nil
}
