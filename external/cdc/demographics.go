package cdc

import (
	"bytes"
	"path"
	"strings"

	log "github.com/sirupsen/logrus"
	"github.com/xuri/excelize/v2"

	"github.com/bitmark-inc/autonomy-trend/schema"
)

// Demographics reads one row per country: name, continent, population and
// optional density, median age and urban population share. CSV sources may be
// ';' or ',' delimited; a .xlsx source is read from its first sheet.
type Demographics struct {
	Location string
	Result   []schema.CountryProfile
}

// NewDemographics - new demographics loader reading a file path or an http(s) url
func NewDemographics(location string) *Demographics {
	return &Demographics{Location: location}
}

func (d *Demographics) isSpreadsheet() bool {
	location := d.Location
	if i := strings.IndexAny(location, "?#"); isURL(location) && i >= 0 {
		location = location[:i]
	}
	return strings.EqualFold(path.Ext(location), ".xlsx")
}

// Profiles loads the table. Rows without a country or a usable population are
// skipped, a repeated country keeps its first row.
func (d *Demographics) Profiles() ([]schema.CountryProfile, error) {
	data, err := fetch(d.Location)
	if nil != err {
		return nil, err
	}

	var t *table
	if d.isSpreadsheet() {
		t, err = parseSpreadsheet(data)
	} else {
		t, err = parseCSV(data)
	}
	if nil != err {
		log.WithFields(log.Fields{"prefix": logPrefix, "source": d.Location, "error": err}).Error("parse demographics")
		return nil, err
	}

	profiles, err := parseProfiles(t)
	if nil != err {
		log.WithFields(log.Fields{"prefix": logPrefix, "source": d.Location, "error": err}).Error("parse demographics")
		return nil, err
	}
	d.Result = profiles

	log.WithFields(log.Fields{"prefix": logPrefix, "source": d.Location, "countries": len(profiles)}).Info("load demographics")
	return profiles, nil
}

func parseSpreadsheet(data []byte) (*table, error) {
	f, err := excelize.OpenReader(bytes.NewReader(data))
	if nil != err {
		return nil, err
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, ErrEmptySource
	}

	rows, err := f.GetRows(sheets[0])
	if nil != err {
		return nil, err
	}
	return newTable(rows)
}

func parseProfiles(t *table) ([]schema.CountryProfile, error) {
	countryCol, err := t.mustColumn("country", "countryname", "countryregion", "admin")
	if nil != err {
		return nil, err
	}
	populationCol, err := t.mustColumn("population", "pop", "population2020")
	if nil != err {
		return nil, err
	}
	continentCol, err := t.mustColumn("continent")
	if nil != err {
		return nil, err
	}
	isoCol, _ := t.column("isocode", "iso3", "short", "adm0a3", "code")
	densityCol, _ := t.column("populationdensity", "density", "densityp")
	ageCol, _ := t.column("medianage", "medage", "age")
	urbanCol, _ := t.column("urbanpopulationratio", "urbanpopulation", "urbanpop", "urban")

	seen := make(map[string]struct{})
	profiles := []schema.CountryProfile{}
	for n, row := range t.rows {
		country := cell(row, countryCol)
		if country == "" {
			continue
		}
		if _, ok := seen[country]; ok {
			log.WithFields(log.Fields{"prefix": logPrefix, "country": country}).Warn("duplicate demographics row")
			continue
		}

		population, err := parseCount(cell(row, populationCol))
		if nil != err || population <= 0 {
			log.WithFields(log.Fields{"prefix": logPrefix, "row": n + 2, "country": country}).Warn("skip country without population")
			continue
		}

		continent := cell(row, continentCol)
		if !schema.ValidContinent(continent) {
			log.WithFields(log.Fields{"prefix": logPrefix, "country": country, "continent": continent}).Warn("unknown continent")
		}

		p := schema.CountryProfile{
			Country:    country,
			ISOCode:    cell(row, isoCol),
			Continent:  schema.Continent(continent),
			Population: population,
		}
		p.PopulationDensity, _ = parseNumber(cell(row, densityCol))
		p.MedianAge, _ = parseNumber(cell(row, ageCol))
		p.UrbanPopulationRatio, _ = parseNumber(strings.TrimSuffix(cell(row, urbanCol), "%"))
		if p.UrbanPopulationRatio > 1 {
			p.UrbanPopulationRatio /= 100
		}

		seen[country] = struct{}{}
		profiles = append(profiles, p)
	}
	return profiles, nil
}
