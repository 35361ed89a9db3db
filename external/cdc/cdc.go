// Package cdc loads the raw tables the trend engine works on: cumulative
// case reports per country and the demographic profile of every country.
package cdc

import (
	"fmt"
	"io/ioutil"
	"net/http"
	"strings"

	log "github.com/sirupsen/logrus"

	"github.com/bitmark-inc/autonomy-trend/schema"
)

const (
	logPrefix = "cdc"
)

var (
	ErrMissingColumn = fmt.Errorf("missing column")
	ErrEmptySource   = fmt.Errorf("empty source")
	ErrBadStatus     = fmt.Errorf("unexpected http status")
)

// ObservationSource - interface to load cumulative case reports
type ObservationSource interface {
	Observations() ([]schema.CumulativeObservation, error)
}

// ProfileSource - interface to load country demographics
type ProfileSource interface {
	Profiles() ([]schema.CountryProfile, error)
}

func isURL(location string) bool {
	return strings.HasPrefix(location, "http://") || strings.HasPrefix(location, "https://")
}

// fetch reads location from the web when it is an http(s) url, otherwise from disk.
func fetch(location string) ([]byte, error) {
	if !isURL(location) {
		data, err := ioutil.ReadFile(location)
		if nil != err {
			log.WithFields(log.Fields{"prefix": logPrefix, "file": location, "error": err}).Error("read source file")
			return nil, err
		}
		return data, nil
	}

	resp, err := http.Get(location)
	if nil != err {
		log.WithFields(log.Fields{"prefix": logPrefix, "url": location, "error": err}).Error("get source")
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		log.WithFields(log.Fields{"prefix": logPrefix, "url": location, "status": resp.StatusCode}).Error("get source")
		return nil, fmt.Errorf("%w: %d", ErrBadStatus, resp.StatusCode)
	}

	data, err := ioutil.ReadAll(resp.Body)
	if nil != err {
		log.WithFields(log.Fields{"prefix": logPrefix, "error": err}).Error("read source response")
		return nil, err
	}
	return data, nil
}
