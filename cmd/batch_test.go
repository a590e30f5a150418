package main

import (
	"encoding/csv"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tealeg/xlsx/v2"

	"github.com/urbanlens/envirocast/internal/predictor"
	"github.com/urbanlens/envirocast/internal/shapefile"
)

func sampleResults() []siteResult {
	return []siteResult{
		{
			site: shapefile.Site{Name: "riverside"},
			assessment: &predictor.Assessment{
				ID:               "a-1",
				AreaKm2:          1.2392,
				TimeHorizonYears: 10,
				Heat:             predictor.HeatResult{TemperatureIncreaseC: 0.12, RiskScore: 0.021},
				Water:            predictor.WaterResult{PredictedAbsorptionRate: 0.588, RiskScore: 0.332},
				Air:              predictor.AirResult{PredictedAQI: 76.2, RiskScore: 0.105},
				OverallRiskScore: 0.14,
				OverallRiskLevel: predictor.RiskVeryLow,
				GeneratedAt:      time.Now(),
			},
		},
	}
}

func TestExportCSV(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.csv")
	require.NoError(t, exportCSV(path, sampleResults()))

	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close() //nolint:errcheck

	rows, err := csv.NewReader(f).ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, exportHeader, rows[0])
	assert.Equal(t, "riverside", rows[1][0])
	assert.Equal(t, "0.140", rows[1][10])
}

func TestExportXLSX(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.xlsx")
	require.NoError(t, exportXLSX(path, sampleResults()))

	f, err := xlsx.OpenFile(path)
	require.NoError(t, err)
	require.Len(t, f.Sheets, 1)

	sheet := f.Sheets[0]
	require.Len(t, sheet.Rows, 2)
	assert.Equal(t, "site", sheet.Rows[0].Cells[0].Value)
	assert.Equal(t, "riverside", sheet.Rows[1].Cells[0].Value)
	assert.Equal(t, "a-1", sheet.Rows[1].Cells[1].Value)
}

func TestExportResults_UnsupportedFormat(t *testing.T) {
	err := exportResults(filepath.Join(t.TempDir(), "out.pdf"), sampleResults())
	assert.Error(t, err)
}
