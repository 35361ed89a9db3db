package cdc

import (
	"errors"
	"io/ioutil"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bitmark-inc/autonomy-trend/schema"
)

func march(day int) time.Time {
	return time.Date(2020, time.March, day, 0, 0, 0, 0, time.UTC)
}

func TestJHUObservationsFromFile(t *testing.T) {
	j := NewJHU("fixtures/covid_19_data.csv")
	observations, err := j.Observations()
	require.NoError(t, err)

	expected := []schema.CumulativeObservation{
		{Country: "Italy", Date: march(1), TotalConfirmed: 1694, TotalDeaths: 34, TotalRecovered: 83},
		{Country: "Italy", Date: march(2), TotalConfirmed: 2036, TotalDeaths: 52, TotalRecovered: 149},
		{Country: "Italy", Date: march(3), TotalConfirmed: 2502, TotalDeaths: 79, TotalRecovered: 160},
		{Country: "Mainland China", Date: march(1), TotalConfirmed: 68256, TotalDeaths: 2768, TotalRecovered: 32552},
		{Country: "Mainland China", Date: march(2), TotalConfirmed: 68453, TotalDeaths: 2810, TotalRecovered: 34993},
		{Country: "UK", Date: march(3), TotalConfirmed: 51, TotalDeaths: 0, TotalRecovered: 8},
	}
	assert.Equal(t, expected, observations)
	assert.Equal(t, expected, j.Result)
}

func TestJHUObservationsFromURL(t *testing.T) {
	data, err := ioutil.ReadFile("fixtures/covid_19_data.csv")
	require.NoError(t, err)

	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/covid_19_data.csv" {
			http.NotFound(w, r)
			return
		}
		_, _ = w.Write(data)
	}))
	defer ts.Close()

	observations, err := NewJHU(ts.URL + "/covid_19_data.csv").Observations()
	require.NoError(t, err)
	assert.Len(t, observations, 6)

	_, err = NewJHU(ts.URL + "/missing.csv").Observations()
	assert.True(t, errors.Is(err, ErrBadStatus))
}

func TestJHUObservationsMissingFile(t *testing.T) {
	_, err := NewJHU("fixtures/nothing_here.csv").Observations()
	assert.Error(t, err)
}

func TestParseObservationsMissingColumn(t *testing.T) {
	_, err := parseObservations([]byte("Country,Date,Confirmed\nItaly,2020-03-01,3\n"))
	assert.True(t, errors.Is(err, ErrMissingColumn))

	_, err = parseObservations([]byte(""))
	assert.True(t, errors.Is(err, ErrEmptySource))
}

func TestParseObservationsOptionalColumns(t *testing.T) {
	observations, err := parseObservations([]byte("Date,Country,Deaths\n3/5/2020,Spain,10\n"))
	require.NoError(t, err)
	require.Len(t, observations, 1)
	assert.Equal(t, schema.CumulativeObservation{Country: "Spain", Date: march(5), TotalDeaths: 10}, observations[0])
}

func TestParseDate(t *testing.T) {
	mapping := map[string]time.Time{
		"03/05/2020":          march(5),
		"3/5/2020":            march(5),
		"2020-03-05":          march(5),
		"2020-03-05T13:45:00": march(5),
		"3/5/20":              march(5),
	}
	for input, expected := range mapping {
		actual, err := parseDate(input)
		assert.NoError(t, err, input)
		assert.Equal(t, expected, actual, input)
	}

	_, err := parseDate("March 5th")
	assert.Error(t, err)
}
