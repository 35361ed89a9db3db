package background

import (
	"time"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"
	"github.com/uber-go/tally"

	"github.com/bitmark-inc/autonomy-trend/schema"
	"github.com/bitmark-inc/autonomy-trend/store"
	"github.com/bitmark-inc/autonomy-trend/trend"
)

const logPrefix = "background"

// TrendStore is what a TrendJob reads its sources from and writes the derived
// table to.
type TrendStore interface {
	store.ProfileStore
	store.ObservationStore
	store.TrendStore
}

// Report describes one TrendJob run.
type Report struct {
	RunID      string
	Stats      trend.MergeStats
	Rows       int
	Countries  int
	LatestDate time.Time

	// View is the query result over the derived table.
	View []schema.DerivedDailyMetric
}

// TrendJob rebuilds the derived table from the stored sources, persists it
// under a fresh run id and answers one query over it.
type TrendJob struct {
	Background
	store  TrendStore
	engine trend.Engine
	query  trend.Query
}

func NewTrendJob(s TrendStore, engine trend.Engine, query trend.Query, scope tally.Scope) *TrendJob {
	return &TrendJob{
		Background: newBackground(scope),
		store:      s,
		engine:     engine,
		query:      query,
	}
}

// Run executes the job once. The query is validated before any data is read.
func (j *TrendJob) Run() (*Report, error) {
	if err := j.query.Validate(); nil != err {
		j.Metrics.Counter("invalid_query").Inc(1)
		log.WithFields(log.Fields{"prefix": logPrefix, "error": err}).Error("invalid trend query")
		return nil, err
	}

	stopwatch := j.Metrics.Timer("run_duration").Start()
	defer stopwatch.Stop()

	report := &Report{RunID: uuid.New().String()}
	logger := log.WithFields(log.Fields{"prefix": logPrefix, "run_id": report.RunID})

	profiles, err := j.store.GetProfiles("")
	if nil != err {
		j.Metrics.Counter("load_error").Inc(1)
		return nil, err
	}
	observations, err := j.store.GetObservations()
	if nil != err {
		j.Metrics.Counter("load_error").Inc(1)
		return nil, err
	}
	logger.WithFields(log.Fields{"profiles": len(profiles), "observations": len(observations)}).Info("load sources")

	derived, stats := j.engine.Run(profiles, observations)
	report.Stats = stats
	report.Rows = len(derived)

	j.Metrics.Counter("observations_matched").Inc(int64(stats.Matched))
	j.Metrics.Counter("observations_dropped").Inc(int64(stats.Dropped))
	j.Metrics.Counter("derived_rows").Inc(int64(len(derived)))

	if err := j.store.ReplaceTrend(report.RunID, derived); nil != err {
		j.Metrics.Counter("persist_error").Inc(1)
		return nil, err
	}

	if len(derived) > 0 {
		if report.LatestDate, err = j.store.LatestTrendDate(report.RunID); nil != err {
			return nil, err
		}
		if report.Countries, err = j.store.TrendCountryCount(report.RunID); nil != err {
			return nil, err
		}
	}
	j.Metrics.Gauge("countries").Update(float64(report.Countries))

	if report.View, err = j.query.Apply(derived); nil != err {
		return nil, err
	}

	logger.WithFields(log.Fields{
		"rows":      report.Rows,
		"countries": report.Countries,
		"dropped":   stats.Dropped,
		"latest":    report.LatestDate.Format("2006-01-02"),
		"view":      len(report.View),
	}).Info("trend derived")

	return report, nil
}
