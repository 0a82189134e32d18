// Package pivot converts a wide property-allocation sheet (one row per
// date/event, one column per property) into long-format allocation rows,
// one per date/event/property, with per-property rates from the sheet's
// rate row.
package pivot

import (
	"math"
	"strconv"
	"strings"

	"github.com/rotisserie/eris"

	"github.com/voiro/adt-cli/internal/sheet"
)

// propertyStart is the first property column position: column 0 is the
// date column and column 1 the event column.
const propertyStart = 2

// Rates maps a property's zero-based column position in the raw sheet to
// its rate cell. Rates are carried as raw strings, untouched.
type Rates map[int]string

// Lookup returns the rate at a column position, or "0" when the position
// was never populated.
func (r Rates) Lookup(pos int) string {
	if v, ok := r[pos]; ok {
		return v
	}
	return "0"
}

// Property is a property column: its header name and its original
// zero-based column position. The position, not the property's rank among
// property columns, keys the rate lookup.
type Property struct {
	Name string
	Pos  int
}

// Record is one data row keyed by column name. Values holds only the
// property cells that coerced to a number; an absent key means the cell
// was empty or unparseable. A parsed zero is present.
type Record struct {
	Date   string
	Event  string
	Values map[string]float64
}

// Input is the structured form of a raw sheet: coerced data rows, the
// property columns in original order, and the rate row. Missing counts
// the property cells dropped because they failed numeric coercion.
type Input struct {
	Records     []Record
	Properties  []Property
	Rates       Rates
	DateColumn  string
	EventColumn string
	Missing     int
}

// Constants are the fixed business fields stamped onto every output row.
type Constants struct {
	BusinessUnit string
	Page         string
	PriceType    string
}

// Row is one long-format output row.
type Row struct {
	Date         string
	Event        string
	Property     string
	Impressions  int
	BusinessUnit string
	Allocation   float64
	PriceType    string
	Rate         string
	Supply       float64
	Page         string
}

// ExtractRates reads the rate row (row 0) into a Rates map keyed by
// column position. A sheet narrower than three columns yields an empty
// map; a sheet with no rows at all is an error.
func ExtractRates(t sheet.Table) (Rates, error) {
	if len(t) == 0 {
		return nil, eris.New("pivot: sheet has no rate row")
	}

	rates := make(Rates)
	for pos := propertyStart; pos < len(t[0]); pos++ {
		rates[pos] = t[0][pos]
	}
	return rates, nil
}

// BuildInput interprets the sheet's header row and data rows against the
// rate map. Property cells are coerced to numbers; cells that fail
// coercion are dropped from the record rather than failing the build.
func BuildInput(t sheet.Table, rates Rates) (*Input, error) {
	if len(t) < 2 {
		return nil, eris.New("pivot: sheet has no header row")
	}

	header := t[1]
	if len(header) < propertyStart {
		return nil, eris.Errorf("pivot: header row has %d columns, need at least 2", len(header))
	}

	in := &Input{
		Rates:       rates,
		DateColumn:  header[0],
		EventColumn: header[1],
	}
	for pos := propertyStart; pos < len(header); pos++ {
		in.Properties = append(in.Properties, Property{Name: header[pos], Pos: pos})
	}

	for _, row := range t[2:] {
		rec := Record{
			Date:   row[0],
			Event:  row[1],
			Values: make(map[string]float64, len(in.Properties)),
		}
		for _, p := range in.Properties {
			if v, ok := coerce(row[p.Pos]); ok {
				rec.Values[p.Name] = v
			} else {
				in.Missing++
			}
		}
		in.Records = append(in.Records, rec)
	}

	return in, nil
}

// Transform fans every record out into one Row per present property
// value. Allocation and supply both carry the property's cell value;
// impressions is always zero.
func (in *Input) Transform(c Constants) []Row {
	var rows []Row
	for _, rec := range in.Records {
		rows = append(rows, transformRecord(rec, in.Properties, in.Rates, c)...)
	}
	return rows
}

func transformRecord(rec Record, props []Property, rates Rates, c Constants) []Row {
	var rows []Row
	for _, p := range props {
		v, ok := rec.Values[p.Name]
		if !ok {
			continue
		}
		rows = append(rows, Row{
			Date:         rec.Date,
			Event:        rec.Event,
			Property:     p.Name,
			Impressions:  0,
			BusinessUnit: c.BusinessUnit,
			Allocation:   v,
			PriceType:    c.PriceType,
			Rate:         rates.Lookup(p.Pos),
			Supply:       v,
			Page:         c.Page,
		})
	}
	return rows
}

// coerce parses a property cell as a number. Empty, whitespace, and
// non-numeric cells are missing; a literal NaN is missing too.
func coerce(s string) (float64, bool) {
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
