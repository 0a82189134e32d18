package pivot

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteCSV(t *testing.T) {
	rows := []Row{
		{
			Date:         "2024-01-01",
			Event:        "launch",
			Property:     "p1",
			BusinessUnit: "PERSONAL CARE",
			Allocation:   3,
			PriceType:    "CPM",
			Rate:         "5",
			Supply:       3,
			Page:         "BEAUTY",
		},
		{
			Date:         "2024-01-02",
			Event:        "promo",
			Property:     "p2",
			BusinessUnit: "PERSONAL CARE",
			Allocation:   2.5,
			PriceType:    "CPM",
			Rate:         "7",
			Supply:       2.5,
			Page:         "BEAUTY",
		},
	}

	path := filepath.Join(t.TempDir(), "out.csv")
	require.NoError(t, WriteCSV(rows, path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	want := "date,event,property,impressions,bu,allocation,price_type,rate,supply,page\n" +
		"2024-01-01,launch,p1,0,PERSONAL CARE,3,CPM,5,3,BEAUTY\n" +
		"2024-01-02,promo,p2,0,PERSONAL CARE,2.5,CPM,7,2.5,BEAUTY\n"
	assert.Equal(t, want, string(data))
}

func TestWriteCSV_EmptyRows(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.csv")
	require.NoError(t, WriteCSV(nil, path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "date,event,property,impressions,bu,allocation,price_type,rate,supply,page\n", string(data))
}

func TestWriteCSV_BadPath(t *testing.T) {
	err := WriteCSV(nil, filepath.Join(t.TempDir(), "missing", "out.csv"))
	assert.Error(t, err)
}

func TestFormatNumber(t *testing.T) {
	tests := []struct {
		name string
		v    float64
		want string
	}{
		{"whole", 3, "3"},
		{"fraction", 2.5, "2.5"},
		{"zero", 0, "0"},
		{"large", 1000000, "1000000"},
		{"negative", -1.25, "-1.25"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, formatNumber(tt.v))
		})
	}
}
