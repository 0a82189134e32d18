package pivot

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleRow(event, property, rate string, value float64) Row {
	return Row{
		Date:         "2024-01-01",
		Event:        event,
		Property:     property,
		BusinessUnit: "PERSONAL CARE",
		Allocation:   value,
		PriceType:    "CPM",
		Rate:         rate,
		Supply:       value,
		Page:         "BEAUTY",
	}
}

func TestSummary_RateSectionFirstSeenDistinct(t *testing.T) {
	rows := []Row{
		sampleRow("launch", "p2", "7", 1),
		sampleRow("launch", "p1", "5", 2),
		sampleRow("promo", "p2", "7", 3),
	}

	report := Summary(rows)

	idx2 := strings.Index(report, "  p2: 7")
	idx1 := strings.Index(report, "  p1: 5")
	require.GreaterOrEqual(t, idx2, 0)
	require.GreaterOrEqual(t, idx1, 0)
	assert.Less(t, idx2, idx1, "pairs appear in first-seen order")
	assert.Equal(t, 1, strings.Count(report, "  p2: 7"), "duplicate pair listed once")
}

func TestSummary_TotalsGroupedNoDecimals(t *testing.T) {
	rows := []Row{
		sampleRow("launch", "p1", "5", 1234000),
		sampleRow("launch", "p2", "7", 567),
	}

	report := Summary(rows)

	assert.Contains(t, report, "Total allocation: 1,234,567")
	assert.Contains(t, report, "Total supply: 1,234,567")
}

func TestSummary_EventDistributionOrdering(t *testing.T) {
	rows := []Row{
		sampleRow("alpha", "p1", "5", 1),
		sampleRow("beta", "p1", "5", 1),
		sampleRow("beta", "p2", "7", 1),
		sampleRow("gamma", "p1", "5", 1),
	}

	report := Summary(rows)

	idxBeta := strings.Index(report, "  beta: 2 entries")
	idxAlpha := strings.Index(report, "  alpha: 1 entries")
	idxGamma := strings.Index(report, "  gamma: 1 entries")
	require.GreaterOrEqual(t, idxBeta, 0)
	require.GreaterOrEqual(t, idxAlpha, 0)
	require.GreaterOrEqual(t, idxGamma, 0)

	assert.Less(t, idxBeta, idxAlpha, "higher count first")
	assert.Less(t, idxAlpha, idxGamma, "ties stay in first-seen order")
}

func TestSummary_PreviewLimitedToFiveRows(t *testing.T) {
	var rows []Row
	for i := 0; i < 8; i++ {
		rows = append(rows, sampleRow("launch", "p1", "5", float64(i)))
	}

	report := Summary(rows)

	_, preview, found := strings.Cut(report, "Preview (first 5 rows):\n")
	require.True(t, found)
	lines := strings.Split(strings.TrimRight(preview, "\n"), "\n")
	// Header line plus five data rows.
	assert.Len(t, lines, 6)
}

func TestSummary_HasAllSections(t *testing.T) {
	report := Summary([]Row{sampleRow("launch", "p1", "5", 3)})

	assert.Contains(t, report, "Property Rates:")
	assert.Contains(t, report, "Totals:")
	assert.Contains(t, report, "Event Distribution:")
	assert.Contains(t, report, "Preview (first 5 rows):")
}

func TestWriteSummary_BestEffort(t *testing.T) {
	rows := []Row{sampleRow("launch", "p1", "5", 3)}

	// An unwritable path must not panic or fail the run.
	WriteSummary(rows, filepath.Join(t.TempDir(), "missing", "v.txt"))

	path := filepath.Join(t.TempDir(), "v.txt")
	WriteSummary(rows, path)
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "Verification Summary")
}

func TestSummary_Deterministic(t *testing.T) {
	rows := []Row{
		sampleRow("launch", "p1", "5", 3),
		sampleRow("promo", "p2", "7", 1),
	}
	assert.Equal(t, Summary(rows), Summary(rows))
}
