package inventory

import (
	"math"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"
)

// croreINR converts crores, the unit the planning sheet quotes revenue
// in, to rupees.
const croreINR = 1e7

const (
	searchPage   = "SEARCH"
	plaPriceType = "CPC"
)

// plaFallbackProperty is used for business units without a dedicated
// PLA property.
const plaFallbackProperty = "PLA"

// plaProperties maps planning-sheet business units to their PLA
// property names.
var plaProperties = map[string]string{
	"Men's Casual Wear":       "PLA - MCW",
	"Men's Work Wear":         "PLA - MWW",
	"Men's Essentials":        "PLA - MEN'S ESSENTIALS",
	"International Brands":    "PLA - IB",
	"Jewellery":               "PLA - JEWELLERY",
	"Watches and Wearables":   "PLA - WATCHES AND WEARABLES",
	"Women's LTA":             "PLA - WOMEN'S LTA",
	"Men's LTA & Eyewear":     "PLA - MEN'S LTA",
	"Lingerie and Loungewear": "PLA - LINGERIE AND LOUNGEWEAR",
	"Personal Care":           "PLA - PC",
	"Home Furnishing":         "PLA - HOME FURNISHING",
}

// Row is one daily inventory allocation row.
type Row struct {
	Date        string
	Event       string
	Property    string
	BU          string
	Allocation  int64
	Supply      int64
	Page        string
	Rate        float64
	PriceType   string
	Impressions int
}

// PLAStats accumulates verification data for a PLA run.
type PLAStats struct {
	BusinessUnits int
	Rows          int
	// DailyRevenue is allocation × rate summed over one day's rows;
	// every day carries the same allocations.
	DailyRevenue   float64
	MonthlyRevenue float64
	// TargetRevenue is the sheet's summed monthly target in rupees.
	TargetRevenue float64
}

// ProcessPLA converts per-BU monthly revenue targets (in crores) and
// floor prices into daily PLA inventory rows for every day of the
// month. Supply equals a mapped property's own allocation; unmapped
// business units share the fallback property and pool their supply.
func ProcessPLA(wb *Workbook, start time.Time, days int) ([]Row, *PLAStats) {
	type plaUnit struct {
		bu         string
		property   string
		allocation int64
		rate       float64
	}

	stats := &PLAStats{}
	var units []plaUnit
	var pooledSupply int64

	for _, row := range wb.rows {
		bu := strings.TrimSpace(row[0])
		target, ok := parseFloat(wb.column(row, "PLA TARGET"))
		if bu == "" || !ok {
			continue
		}
		stats.BusinessUnits++

		rate, err := cleanCurrency(wb.column(row, "Floor Price PLA"))
		if err != nil {
			zap.L().Warn("inventory: unparseable floor price, BU skipped",
				zap.String("bu", bu), zap.Error(err))
			continue
		}

		revenue := target * croreINR
		stats.TargetRevenue += revenue
		if rate <= 0 {
			continue
		}

		allocation := int64(math.Round(revenue / float64(days) / rate))
		property, mapped := plaProperties[bu]
		if !mapped {
			property = plaFallbackProperty
			pooledSupply += allocation
		}

		units = append(units, plaUnit{bu: bu, property: property, allocation: allocation, rate: rate})
	}

	var rows []Row
	for _, u := range units {
		supply := u.allocation
		if u.property == plaFallbackProperty {
			supply = pooledSupply
		}
		stats.DailyRevenue += float64(u.allocation) * u.rate

		for i := 0; i < days; i++ {
			date := start.AddDate(0, 0, i).Format("2006-01-02")
			rows = append(rows, Row{
				Date:       date,
				Event:      wb.Events.Lookup(date),
				Property:   u.property,
				BU:         u.bu,
				Allocation: u.allocation,
				Supply:     supply,
				Page:       searchPage,
				Rate:       u.rate,
				PriceType:  plaPriceType,
			})
		}
	}

	stats.Rows = len(rows)
	stats.MonthlyRevenue = stats.DailyRevenue * float64(days)

	return rows, stats
}

// cleanCurrency parses a price cell, tolerating the rupee symbol,
// spaces, and grouping commas.
func cleanCurrency(s string) (float64, error) {
	cleaned := strings.NewReplacer("₹", "", ",", "", " ", "", " ", "").Replace(s)
	if cleaned == "" {
		return 0, nil
	}
	v, err := strconv.ParseFloat(cleaned, 64)
	if err != nil {
		return 0, err
	}
	return v, nil
}

// parseFloat parses a numeric cell; empty and non-numeric cells report
// not-ok instead of erroring.
func parseFloat(s string) (float64, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, false
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(v) {
		return 0, false
	}
	return v, true
}
