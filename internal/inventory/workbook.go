// Package inventory converts the monthly search-inventory planning
// workbook (per-BU revenue targets and SDA shares) into daily allocation
// rows for the PLA and monetised search properties.
package inventory

import (
	"strings"
	"time"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/voiro/adt-cli/internal/sheet"
)

const (
	dataSheetName  = "data"
	eventSheetName = "eventname"
)

// defaultEvent is used for dates without a calendar entry.
const defaultEvent = "ALL"

// Workbook is the parsed planning workbook: the data sheet plus the
// optional event calendar. Column 0 of the data sheet names the business
// unit; the remaining columns are looked up by header name.
type Workbook struct {
	header []string
	colIdx map[string]int
	rows   [][]string
	Events *EventCalendar
}

// EventCalendar maps dates (YYYY-MM-DD) to event names.
type EventCalendar struct {
	byDate map[string]string
	first  time.Time
}

// Lookup returns the event for a date, or "ALL" when none is scheduled.
func (c *EventCalendar) Lookup(date string) string {
	if c != nil {
		if e, ok := c.byDate[date]; ok {
			return e
		}
	}
	return defaultEvent
}

// Len returns the number of scheduled events.
func (c *EventCalendar) Len() int {
	if c == nil {
		return 0
	}
	return len(c.byDate)
}

// Load reads the planning workbook. The data sheet is required; a
// missing or malformed event sheet downgrades to an empty calendar.
func Load(path string) (*Workbook, error) {
	data, err := sheet.ReadXLSXSheet(path, dataSheetName)
	if err != nil {
		return nil, eris.Wrap(err, "inventory: read data sheet")
	}
	if len(data) < 2 {
		return nil, eris.New("inventory: data sheet has no rows")
	}

	wb := &Workbook{
		header: data[0],
		colIdx: make(map[string]int, len(data[0])),
		rows:   data[1:],
	}
	for i, col := range wb.header {
		wb.colIdx[normalizeCol(col)] = i
	}

	events, err := sheet.ReadXLSXSheet(path, eventSheetName)
	if err != nil {
		zap.L().Warn("inventory: event sheet unavailable, using ALL", zap.Error(err))
	} else {
		wb.Events = parseEvents(events)
	}

	return wb, nil
}

// column returns the cell at the named column of a data row, or "" when
// the column is absent.
func (w *Workbook) column(row []string, name string) string {
	idx, ok := w.colIdx[normalizeCol(name)]
	if !ok || idx >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[idx])
}

// ZeroSlotColumn finds the zero-slot SDA column by header substring,
// falling back to the conventional name.
func (w *Workbook) ZeroSlotColumn() string {
	for _, col := range w.header {
		lower := strings.ToLower(col)
		if strings.Contains(lower, "0th") ||
			strings.Contains(lower, "zeroslot") ||
			strings.Contains(lower, "zero slot") {
			return col
		}
	}
	return "SDA(0th slot)"
}

// Month derives the allocation month from the event calendar: the month
// of the first scheduled event, or the current month when the calendar
// is empty. Returns the first day of the month and the day count.
func (w *Workbook) Month(now time.Time) (time.Time, int) {
	anchor := now
	if w.Events != nil && !w.Events.first.IsZero() {
		anchor = w.Events.first
	}
	start := time.Date(anchor.Year(), anchor.Month(), 1, 0, 0, 0, 0, time.UTC)
	days := time.Date(anchor.Year(), anchor.Month()+1, 0, 0, 0, 0, 0, time.UTC).Day()
	return start, days
}

func parseEvents(t sheet.Table) *EventCalendar {
	if len(t) < 2 {
		return nil
	}

	dateIdx, eventIdx := -1, -1
	for i, col := range t[0] {
		switch normalizeCol(col) {
		case "date":
			dateIdx = i
		case "event":
			eventIdx = i
		}
	}
	if dateIdx < 0 || eventIdx < 0 {
		zap.L().Warn("inventory: event sheet missing date/event columns")
		return nil
	}

	cal := &EventCalendar{byDate: make(map[string]string)}
	for _, row := range t[1:] {
		if dateIdx >= len(row) || eventIdx >= len(row) {
			continue
		}
		event := strings.TrimSpace(row[eventIdx])
		if event == "" {
			continue
		}
		day, err := parseEventDate(row[dateIdx])
		if err != nil {
			zap.L().Warn("inventory: event date skipped", zap.String("date", row[dateIdx]), zap.Error(err))
			continue
		}
		if cal.first.IsZero() {
			cal.first = day
		}
		cal.byDate[day.Format("2006-01-02")] = event
	}

	return cal
}

var eventDateLayouts = []string{
	"2006-01-02",
	"2006-01-02 15:04:05",
	"2006/01/02",
	"02-01-2006",
	"01-02-06",
	"1/2/06",
}

func parseEventDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	for _, layout := range eventDateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, eris.Errorf("inventory: unparseable date %q", s)
}

// normalizeCol lowercases and trims a header for name matching.
func normalizeCol(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}
