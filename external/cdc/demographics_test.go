package cdc

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/bitmark-inc/autonomy-trend/schema"
)

func TestDemographicsFromCSV(t *testing.T) {
	d := NewDemographics("fixtures/population.csv")
	profiles, err := d.Profiles()
	require.NoError(t, err)
	require.Len(t, profiles, 3)

	assert.Equal(t, schema.CountryProfile{
		Country:              "China",
		ISOCode:              "CHN",
		Continent:            schema.Asia,
		Population:           1439323776,
		PopulationDensity:    153,
		MedianAge:            38,
		UrbanPopulationRatio: 0.61,
	}, profiles[0])
	assert.Equal(t, "Italy", profiles[1].Country)
	assert.Equal(t, int64(60461826), profiles[1].Population)
	assert.Equal(t, "United Kingdom", profiles[2].Country)
	assert.Equal(t, schema.Europe, profiles[2].Continent)
	assert.Equal(t, profiles, d.Result)
}

func writeSpreadsheet(t *testing.T, file string, rows [][]interface{}) {
	f := excelize.NewFile()
	defer f.Close()

	sheet := f.GetSheetName(0)
	for i, row := range rows {
		cellName, err := excelize.CoordinatesToCellName(1, i+1)
		require.NoError(t, err)
		require.NoError(t, f.SetSheetRow(sheet, cellName, &row))
	}
	require.NoError(t, f.SaveAs(file))
}

func TestDemographicsFromSpreadsheet(t *testing.T) {
	file := filepath.Join(t.TempDir(), "population.xlsx")
	writeSpreadsheet(t, file, [][]interface{}{
		{"Country", "ISO Code", "Continent", "Population", "Population Density", "Median Age", "Urban Population Ratio"},
		{"Japan", "JPN", "Asia", 126476461, 347, 48, 0.92},
		{"Kenya", "KEN", "Africa", 53771296, 94, 20, 0.28},
		{"Nowhere", "NWH", "Africa", "", "", "", ""},
	})

	profiles, err := NewDemographics(file).Profiles()
	require.NoError(t, err)
	require.Len(t, profiles, 2)

	assert.Equal(t, "Japan", profiles[0].Country)
	assert.Equal(t, "JPN", profiles[0].ISOCode)
	assert.Equal(t, int64(126476461), profiles[0].Population)
	assert.Equal(t, float64(347), profiles[0].PopulationDensity)
	assert.InDelta(t, 0.92, profiles[0].UrbanPopulationRatio, 1e-9)
	assert.Equal(t, schema.Africa, profiles[1].Continent)
}

func TestDemographicsFromURL(t *testing.T) {
	ts := httptest.NewServer(http.FileServer(http.Dir("fixtures")))
	defer ts.Close()

	profiles, err := NewDemographics(ts.URL + "/population.csv").Profiles()
	require.NoError(t, err)
	assert.Len(t, profiles, 3)
}

func TestDemographicsMissingColumn(t *testing.T) {
	_, err := parseProfiles(mustTable(t, "Country,Population\nItaly,60000000\n"))
	assert.True(t, errors.Is(err, ErrMissingColumn))
}

func TestDemographicsCommaDelimited(t *testing.T) {
	profiles, err := parseProfiles(mustTable(t, "country,continent,population,urban_population\nPeru,America,32971854,0.79\n"))
	require.NoError(t, err)
	require.Len(t, profiles, 1)
	assert.Equal(t, schema.America, profiles[0].Continent)
	assert.Equal(t, 0.79, profiles[0].UrbanPopulationRatio)
}

func mustTable(t *testing.T, text string) *table {
	tb, err := parseCSV([]byte(text))
	require.NoError(t, err)
	return tb
}

func TestFoldHeader(t *testing.T) {
	mapping := map[string]string{
		"Country/Region":    "countryregion",
		"country_region":    "countryregion",
		"\ufeffCountry":     "country",
		"Urban Pop %":       "urbanpop",
		" Population 2020 ": "population2020",
	}
	for input, expected := range mapping {
		assert.Equal(t, expected, foldHeader(input), input)
	}
}
