package cdc

import (
	"fmt"
	"sort"
	"strings"
	"time"

	log "github.com/sirupsen/logrus"

	"github.com/bitmark-inc/autonomy-trend/schema"
)

var observationDateLayouts = []string{
	"01/02/2006",
	"1/2/2006",
	"2006-01-02",
	"01/02/2006 15:04:05",
	"2006-01-02T15:04:05",
	"1/2/06",
}

// JHU reads the daily report table of the Johns Hopkins CSSE data set, one
// row per region and day with cumulative Confirmed, Deaths and Recovered.
type JHU struct {
	Location string
	Result   []schema.CumulativeObservation
}

// NewJHU - new JHU loader reading a file path or an http(s) url
func NewJHU(location string) *JHU {
	return &JHU{Location: location}
}

// Observations loads the table and sums regions of the same country and day.
func (j *JHU) Observations() ([]schema.CumulativeObservation, error) {
	data, err := fetch(j.Location)
	if nil != err {
		return nil, err
	}

	observations, err := parseObservations(data)
	if nil != err {
		log.WithFields(log.Fields{"prefix": logPrefix, "source": j.Location, "error": err}).Error("parse observations")
		return nil, err
	}
	j.Result = observations

	log.WithFields(log.Fields{"prefix": logPrefix, "source": j.Location, "rows": len(observations)}).Info("load observations")
	return observations, nil
}

func parseDate(s string) (time.Time, error) {
	for _, layout := range observationDateLayouts {
		if t, err := time.Parse(layout, s); nil == err {
			return schema.DateOf(t), nil
		}
	}
	return time.Time{}, fmt.Errorf("unknown date format: %q", s)
}

type observationKey struct {
	country string
	date    time.Time
}

func parseObservations(data []byte) ([]schema.CumulativeObservation, error) {
	t, err := parseCSV(data)
	if nil != err {
		return nil, err
	}

	countryCol, err := t.mustColumn("countryregion", "country", "countryname")
	if nil != err {
		return nil, err
	}
	dateCol, err := t.mustColumn("observationdate", "date", "lastupdate")
	if nil != err {
		return nil, err
	}
	confirmedCol, _ := t.column("confirmed")
	deathsCol, err := t.mustColumn("deaths")
	if nil != err {
		return nil, err
	}
	recoveredCol, _ := t.column("recovered")

	totals := make(map[observationKey]*schema.CumulativeObservation)
	skipped := 0
	for n, row := range t.rows {
		country := cell(row, countryCol)
		if country == "" {
			skipped++
			continue
		}

		date, err := parseDate(cell(row, dateCol))
		if nil != err {
			log.WithFields(log.Fields{"prefix": logPrefix, "row": n + 2, "error": err}).Warn("skip observation")
			skipped++
			continue
		}

		var counts [3]int64
		bad := false
		for i, col := range []int{confirmedCol, deathsCol, recoveredCol} {
			if counts[i], err = parseCount(cell(row, col)); nil != err {
				bad = true
				break
			}
		}
		if bad {
			log.WithFields(log.Fields{"prefix": logPrefix, "row": n + 2, "error": err}).Warn("skip observation")
			skipped++
			continue
		}

		key := observationKey{country: country, date: date}
		o, ok := totals[key]
		if !ok {
			o = &schema.CumulativeObservation{Country: country, Date: date}
			totals[key] = o
		}
		o.TotalConfirmed += counts[0]
		o.TotalDeaths += counts[1]
		o.TotalRecovered += counts[2]
	}

	if skipped > 0 {
		log.WithFields(log.Fields{"prefix": logPrefix, "skipped": skipped}).Warn("observations skipped")
	}

	observations := make([]schema.CumulativeObservation, 0, len(totals))
	for _, o := range totals {
		observations = append(observations, *o)
	}
	sort.Slice(observations, func(i, j int) bool {
		if observations[i].Country != observations[j].Country {
			return strings.Compare(observations[i].Country, observations[j].Country) < 0
		}
		return observations[i].Date.Before(observations[j].Date)
	})
	return observations, nil
}
