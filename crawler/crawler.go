package main

import (
	log "github.com/sirupsen/logrus"

	"github.com/bitmark-inc/autonomy-trend/external/cdc"
	"github.com/bitmark-inc/autonomy-trend/store"
)

type profileCrawler struct {
	mongoStore store.ProfileStore
	source     cdc.ProfileSource
}

func (c profileCrawler) Run() error {
	profiles, err := c.source.Profiles()
	if nil != err {
		log.WithFields(log.Fields{"prefix": logPrefix, "error": err}).Error("data from demographics source")
		return err
	}

	if err := c.mongoStore.ReplaceProfiles(profiles); nil != err {
		log.WithFields(log.Fields{"prefix": logPrefix, "error": err}).Error("store country profiles")
		return err
	}

	log.WithFields(log.Fields{"prefix": logPrefix, "data count": len(profiles)}).Debug("data from demographics source")
	return nil
}

// newProfileCrawler - new cron job loading country demographics
func newProfileCrawler(mongoStore store.ProfileStore, source cdc.ProfileSource) Cron {
	return &profileCrawler{
		mongoStore: mongoStore,
		source:     source,
	}
}

type observationCrawler struct {
	mongoStore store.ObservationStore
	source     cdc.ObservationSource
}

func (c observationCrawler) Run() error {
	observations, err := c.source.Observations()
	if nil != err {
		log.WithFields(log.Fields{"prefix": logPrefix, "error": err}).Error("data from case report source")
		return err
	}

	if err := c.mongoStore.ReplaceObservations(observations); nil != err {
		log.WithFields(log.Fields{"prefix": logPrefix, "error": err}).Error("store observations")
		return err
	}

	log.WithFields(log.Fields{"prefix": logPrefix, "data count": len(observations)}).Debug("data from case report source")
	return nil
}

// newObservationCrawler - new cron job loading cumulative case reports
func newObservationCrawler(mongoStore store.ObservationStore, source cdc.ObservationSource) Cron {
	return &observationCrawler{
		mongoStore: mongoStore,
		source:     source,
	}
}
