package category

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/voiro/adt-cli/internal/sheet"
)

// testTable is a wide planning sheet: two data rows, a duplicated
// Banner column, a Traffic column to ignore, and a trailing rate card.
var testTable = sheet.Table{
	{"Date", "Event", "Banner", "Banner.1", "Carousel", "Traffic"},
	{"2024-01-01", "ALL", "6000", "3000", "9000", "123"},
	{"2024-01-02", "SALE", "3000", "3000", "4500", "456"},
	{"Rate", "", "100", "100", "200", ""},
	{"No of slot", "", "2", "1", "3", ""},
	{"Allocation", "", "FASHION", "FASHION", "BEAUTY", ""},
	{"In MN", "", "9", "6", "13.5", ""},
	{"Page", "", "CAT_FASHION", "", "CAT_BEAUTY", ""},
}

func TestTransform(t *testing.T) {
	rows, stats, err := Transform(testTable)
	require.NoError(t, err)
	require.Len(t, rows, 6)

	first := rows[0]
	assert.Equal(t, "2024-01-01", first.Date)
	assert.Equal(t, "ALL", first.Event)
	assert.Equal(t, "Banner", first.Property)
	assert.Equal(t, "FASHION", first.BU)
	assert.Equal(t, "CAT_FASHION", first.Page)
	assert.Equal(t, "CPD", first.PriceType)
	assert.Equal(t, 100.0, first.CPMRate)
	assert.Equal(t, int64(200), first.Rate)
	assert.Equal(t, int64(2), first.Allocation)
	assert.Equal(t, int64(3), first.Supply)
	assert.Equal(t, int64(2000), first.Impressions)
	assert.Equal(t, int64(400), first.TotalRevenue)
	assert.Equal(t, int64(4000), first.TotalImpressions)

	assert.Equal(t, 6, stats.Rows)
	assert.Equal(t, int64(3500), stats.TotalRevenue)
	assert.Equal(t, int64(21500), stats.TotalImpressions)
	assert.Equal(t, 2, stats.Properties)
	assert.Equal(t, "2024-01-01", stats.MinDate)
	assert.Equal(t, "2024-01-02", stats.MaxDate)
}

func TestTransform_DuplicateColumnsPoolSupply(t *testing.T) {
	rows, _, err := Transform(testTable)
	require.NoError(t, err)

	second := rows[1]
	assert.Equal(t, "Banner", second.Property)
	assert.Equal(t, int64(1), second.Allocation)
	assert.Equal(t, int64(3), second.Supply)
	assert.Equal(t, int64(100), second.Rate)
	// Both Banner columns share the page mapping even though only one
	// rate-card cell carries it.
	assert.Equal(t, "CAT_FASHION", second.Page)
}

func TestTransform_IgnoresTrafficColumn(t *testing.T) {
	rows, _, err := Transform(testTable)
	require.NoError(t, err)
	for _, r := range rows {
		assert.NotEqual(t, "Traffic", r.Property)
	}
}

func TestTransform_TruncatesPerSlotImpressions(t *testing.T) {
	table := sheet.Table{
		{"Date", "Event", "Banner"},
		{"2024-01-01", "ALL", "1000"},
		{"Rate", "", "100"},
		{"No of slot", "", "3"},
		{"Allocation", "", "FASHION"},
		{"Page", "", "CAT_FASHION"},
	}

	rows, _, err := Transform(table)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	// 1000 impressions over 3 slots: the rate rounds the fractional
	// per-slot value, the impressions column truncates it.
	assert.Equal(t, int64(333), rows[0].Impressions)
	assert.Equal(t, int64(33), rows[0].Rate)
	assert.Equal(t, int64(999), rows[0].TotalImpressions)
}

func TestTransform_NoRateCard(t *testing.T) {
	table := sheet.Table{
		{"Date", "Event", "Banner"},
		{"2024-01-01", "ALL", "1000"},
	}
	_, _, err := Transform(table)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "rate card")
}

func TestTransform_TooFewColumns(t *testing.T) {
	table := sheet.Table{
		{"Date", "Event"},
		{"2024-01-01", "ALL"},
	}
	_, _, err := Transform(table)
	assert.Error(t, err)
}

func TestTrimDuplicateSuffix(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"Banner", "Banner"},
		{"Banner.1", "Banner"},
		{"Banner.12", "Banner"},
		{"Banner.x", "Banner.x"},
		{"Banner.", "Banner."},
		{".1", ".1"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, trimDuplicateSuffix(tt.input), tt.input)
	}
}

func TestParseNumber(t *testing.T) {
	assert.Equal(t, 12.5, parseNumber(" 12.5 "))
	assert.Equal(t, 0.0, parseNumber(""))
	assert.Equal(t, 0.0, parseNumber("n/a"))
	assert.Equal(t, 0.0, parseNumber("NaN"))
}

func TestWriteCSV(t *testing.T) {
	rows := []Row{{
		Date: "2024-01-01", Event: "ALL", Property: "Banner", BU: "FASHION",
		Page: "CAT_FASHION", PriceType: "CPD", CPMRate: 100, Rate: 200,
		Allocation: 2, Supply: 3, Impressions: 2000,
		TotalRevenue: 400, TotalImpressions: 4000,
	}}
	path := filepath.Join(t.TempDir(), "outputcat.csv")
	require.NoError(t, WriteCSV(rows, path))

	content, err := os.ReadFile(path)
	require.NoError(t, err)
	want := "date,event,property,bu,page,price_type,cpm_rate,rate,allocation,supply,impressions,total_revenue,total_impressions\n" +
		"2024-01-01,ALL,Banner,FASHION,CAT_FASHION,CPD,100,200,2,3,2000,400,4000\n"
	assert.Equal(t, want, string(content))
}

func TestProcess(t *testing.T) {
	dir := t.TempDir()
	input := filepath.Join(dir, "cat.csv")
	var lines []byte
	for _, row := range testTable {
		lines = append(lines, []byte(row[0]+","+row[1]+","+row[2]+","+row[3]+","+row[4]+","+row[5]+"\n")...)
	}
	require.NoError(t, os.WriteFile(input, lines, 0o644))

	output := filepath.Join(dir, "outputcat.csv")
	stats, err := Process(input, output)
	require.NoError(t, err)
	assert.Equal(t, 6, stats.Rows)

	content, err := os.ReadFile(output)
	require.NoError(t, err)
	assert.Contains(t, string(content), "2024-01-01,ALL,Banner,FASHION,CAT_FASHION,CPD,100,200,2,3,2000,400,4000")
}

func TestProcess_MissingInput(t *testing.T) {
	dir := t.TempDir()
	_, err := Process(filepath.Join(dir, "nope.csv"), filepath.Join(dir, "out.csv"))
	assert.Error(t, err)
}

func TestReport(t *testing.T) {
	stats := &Stats{
		Rows:             6,
		TotalRevenue:     25_000_000,
		TotalImpressions: 21_500_000,
		Properties:       2,
		MinDate:          "2024-01-01",
		MaxDate:          "2024-01-02",
	}

	report := Report(stats)
	assert.Contains(t, report, "=== CATEGORY PAGES DATA VERIFICATION ===")
	assert.Contains(t, report, "Total Rows: 6")
	assert.Contains(t, report, "Total Revenue: 25,000,000.00")
	assert.Contains(t, report, "Total Revenue (in cr): 2.50")
	assert.Contains(t, report, "Total Impressions: 21,500,000")
	assert.Contains(t, report, "Total Impressions (in mn): 21.50")
	assert.Contains(t, report, "Date Range: 2024-01-01 to 2024-01-02")
}

func TestWriteReport(t *testing.T) {
	dir := t.TempDir()
	WriteReport(&Stats{Rows: 1, MinDate: "2024-01-01", MaxDate: "2024-01-01"}, filepath.Join(dir, "outputcat.csv"))

	content, err := os.ReadFile(filepath.Join(dir, ReportFileName))
	require.NoError(t, err)
	assert.Contains(t, string(content), "Total Rows: 1")
}
