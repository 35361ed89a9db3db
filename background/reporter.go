package background

import (
	"time"

	log "github.com/sirupsen/logrus"
	"github.com/uber-go/tally"
)

const metricsLogPrefix = "metrics"

type logCapabilities struct{}

func (logCapabilities) Reporting() bool { return true }
func (logCapabilities) Tagging() bool   { return true }

// LogReporter is a tally.StatsReporter writing every reported value to the log.
type LogReporter struct {
	Level log.Level
}

// NewLogReporter - reporter logging at info level
func NewLogReporter() *LogReporter {
	return &LogReporter{Level: log.InfoLevel}
}

func (r *LogReporter) entry(kind, name string, tags map[string]string) *log.Entry {
	fields := log.Fields{
		"prefix": metricsLogPrefix,
		"kind":   kind,
		"name":   name,
	}
	for k, v := range tags {
		fields["tag_"+k] = v
	}
	return log.WithFields(fields)
}

func (r *LogReporter) ReportCounter(name string, tags map[string]string, value int64) {
	r.entry("counter", name, tags).WithField("value", value).Log(r.Level, "report")
}

func (r *LogReporter) ReportGauge(name string, tags map[string]string, value float64) {
	r.entry("gauge", name, tags).WithField("value", value).Log(r.Level, "report")
}

func (r *LogReporter) ReportTimer(name string, tags map[string]string, interval time.Duration) {
	r.entry("timer", name, tags).WithField("value", interval.String()).Log(r.Level, "report")
}

func (r *LogReporter) ReportHistogramValueSamples(name string, tags map[string]string, _ tally.Buckets, bucketLowerBound, bucketUpperBound float64, samples int64) {
	r.entry("histogram", name, tags).WithFields(log.Fields{
		"lower":   bucketLowerBound,
		"upper":   bucketUpperBound,
		"samples": samples,
	}).Log(r.Level, "report")
}

func (r *LogReporter) ReportHistogramDurationSamples(name string, tags map[string]string, _ tally.Buckets, bucketLowerBound, bucketUpperBound time.Duration, samples int64) {
	r.entry("histogram", name, tags).WithFields(log.Fields{
		"lower":   bucketLowerBound.String(),
		"upper":   bucketUpperBound.String(),
		"samples": samples,
	}).Log(r.Level, "report")
}

func (r *LogReporter) Capabilities() tally.Capabilities {
	return logCapabilities{}
}

func (r *LogReporter) Flush() {}
