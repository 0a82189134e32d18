package target

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFeed(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "feed.csv")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestProcess(t *testing.T) {
	input := writeFeed(t, "Date,Impressions,Event,Rate\n"+
		"2024-01-01,1.5,launch,120\n"+
		"2024-01-03,0.5,promo,80\n")
	output := filepath.Join(t.TempDir(), "out.csv")

	stats, err := Process(input, output)
	require.NoError(t, err)

	assert.Equal(t, 2, stats.Processed)
	assert.Equal(t, 0, stats.Skipped)
	assert.Equal(t, int64(2_000_000), stats.TotalSupply)
	assert.Equal(t, int64(2_000_000), stats.TotalAllocation)
	// 120*1.5/1000 + 80*0.5/1000
	assert.InDelta(t, 0.22, stats.RateImpressions, 0.0001)
	assert.Equal(t, []string{"launch", "promo"}, stats.Events)

	data, err := os.ReadFile(output)
	require.NoError(t, err)
	want := "date,event,property,bu,page,price_type,supply,allocation,impressions,rate\n" +
		"01-01-2024,launch,HP_TARGETING 1,PERSONAL CARE,HOME,CPM,1500000,1500000,0,120\n" +
		"03-01-2024,promo,HP_TARGETING 1,PERSONAL CARE,HOME,CPM,500000,500000,0,80\n"
	assert.Equal(t, want, string(data))
}

func TestProcess_SkipsBadRows(t *testing.T) {
	input := writeFeed(t, "Date,Impressions,Event,Rate\n"+
		"not-a-date,1.5,launch,120\n"+
		"2024-01-01,abc,launch,120\n"+
		"2024-01-01,1,launch,xyz\n"+
		"2024-01-01,1,launch\n"+
		"2024-01-02,2,promo,50\n")
	output := filepath.Join(t.TempDir(), "out.csv")

	stats, err := Process(input, output)
	require.NoError(t, err)

	assert.Equal(t, 1, stats.Processed)
	assert.Equal(t, 4, stats.Skipped)
	assert.Equal(t, int64(2_000_000), stats.TotalSupply)
}

func TestProcess_EmptyFeed(t *testing.T) {
	input := writeFeed(t, "Date,Impressions,Event,Rate\n")
	output := filepath.Join(t.TempDir(), "out.csv")

	_, err := Process(input, output)
	assert.Error(t, err)
}

func TestProcess_MissingInput(t *testing.T) {
	_, err := Process(filepath.Join(t.TempDir(), "nope.csv"), filepath.Join(t.TempDir(), "out.csv"))
	assert.Error(t, err)
}

func TestParseDate(t *testing.T) {
	tests := []struct {
		name string
		s    string
		want time.Time
		ok   bool
	}{
		{"iso", "2024-03-05", time.Date(2024, 3, 5, 0, 0, 0, 0, time.UTC), true},
		{"slashes", "2024/03/05", time.Date(2024, 3, 5, 0, 0, 0, 0, time.UTC), true},
		{"day first", "05-03-2024", time.Date(2024, 3, 5, 0, 0, 0, 0, time.UTC), true},
		{"month name", "5-Mar-2024", time.Date(2024, 3, 5, 0, 0, 0, 0, time.UTC), true},
		{"trimmed", " 2024-03-05 ", time.Date(2024, 3, 5, 0, 0, 0, 0, time.UTC), true},
		{"garbage", "soon", time.Time{}, false},
		{"empty", "", time.Time{}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := parseDate(tt.s)
			if !tt.ok {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.True(t, got.Equal(tt.want), "got %v", got)
		})
	}
}

func TestReport_Content(t *testing.T) {
	stats := &Stats{
		Processed:       2,
		Skipped:         1,
		TotalSupply:     15_000_000,
		TotalAllocation: 15_000_000,
		RateImpressions: 1.8,
		Events:          []string{"promo", "launch"},
		MinDate:         time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
		MaxDate:         time.Date(2024, 1, 31, 0, 0, 0, 0, time.UTC),
	}

	report := Report(stats, "in.csv", "out.csv")

	assert.Contains(t, report, "Total rows processed: 2")
	assert.Contains(t, report, "Rows skipped due to errors: 1")
	assert.Contains(t, report, "Date range: 01-01-2024 to 31-01-2024")
	assert.Contains(t, report, "Events: launch, promo")
	assert.Contains(t, report, "Total Supply: 15,000,000 (1.50 crores)")
	assert.Contains(t, report, "Property: HP_TARGETING 1")
}

func TestWriteReport_BestEffort(t *testing.T) {
	dir := t.TempDir()
	stats := &Stats{Processed: 1}

	WriteReport(stats, "in.csv", filepath.Join(dir, "out.csv"))

	data, err := os.ReadFile(filepath.Join(dir, ReportFileName))
	require.NoError(t, err)
	assert.Contains(t, string(data), "Verification Report")
}
