package inventory

import (
	"math"
	"strings"
	"time"
)

// monetisedRate is the fixed CPM rate for monetised search inventory.
const monetisedRate = 50.0

const monetisedPriceType = "CPM"

// MonetisedStats accumulates verification data for a monetised run.
type MonetisedStats struct {
	BusinessUnits  int
	Rows           int
	Rate           float64
	DailyRevenue   float64
	MonthlyRevenue float64
}

// ProcessMonetised converts per-BU SDA revenue shares (in crores, read
// from the named column) into daily monetised inventory rows. Every row
// carries the day's total supply; allocation is the BU's own share.
func ProcessMonetised(wb *Workbook, start time.Time, days int, column, property string) ([]Row, *MonetisedStats) {
	type monUnit struct {
		bu         string
		allocation int64
	}

	stats := &MonetisedStats{Rate: monetisedRate}
	var units []monUnit
	var dailySupply int64

	for _, row := range wb.rows {
		bu := strings.TrimSpace(row[0])
		sda, ok := parseFloat(wb.column(row, column))
		if bu == "" || !ok {
			continue
		}

		revenue := sda * croreINR
		perDay := revenue / float64(days)
		allocation := int64(math.Round(perDay * 1000 / monetisedRate))

		units = append(units, monUnit{bu: bu, allocation: allocation})
		dailySupply += allocation
	}

	stats.BusinessUnits = len(units)
	for _, u := range units {
		stats.DailyRevenue += float64(u.allocation) * monetisedRate / 1000
	}
	stats.MonthlyRevenue = stats.DailyRevenue * float64(days)

	var rows []Row
	for i := 0; i < days; i++ {
		date := start.AddDate(0, 0, i).Format("2006-01-02")
		event := wb.Events.Lookup(date)
		for _, u := range units {
			rows = append(rows, Row{
				Date:       date,
				Event:      event,
				Property:   property,
				BU:         u.bu,
				Allocation: u.allocation,
				Supply:     dailySupply,
				Page:       searchPage,
				Rate:       monetisedRate,
				PriceType:  monetisedPriceType,
			})
		}
	}

	stats.Rows = len(rows)
	return rows, stats
}
