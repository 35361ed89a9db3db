package background

import (
	"testing"
	"time"

	log "github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/uber-go/tally"
)

func TestLogReporter(t *testing.T) {
	hook := test.NewGlobal()
	defer hook.Reset()

	reporter := NewLogReporter()
	assert.True(t, reporter.Capabilities().Reporting())
	assert.True(t, reporter.Capabilities().Tagging())

	reporter.ReportCounter("trend.derived_rows", map[string]string{"env": "test"}, 42)
	reporter.ReportTimer("trend.run_duration", nil, 1500*time.Millisecond)

	entries := hook.AllEntries()
	if assert.Len(t, entries, 2) {
		assert.Equal(t, log.InfoLevel, entries[0].Level)
		assert.Equal(t, "trend.derived_rows", entries[0].Data["name"])
		assert.Equal(t, "test", entries[0].Data["tag_env"])
		assert.Equal(t, int64(42), entries[0].Data["value"])
		assert.Equal(t, "1.5s", entries[1].Data["value"])
	}
}

func TestLogReporterLevel(t *testing.T) {
	hook := test.NewGlobal()
	defer hook.Reset()

	reporter := &LogReporter{Level: log.WarnLevel}
	reporter.ReportGauge("trend.countries", nil, 3)
	reporter.ReportHistogramValueSamples("trend.rate", nil, tally.ValueBuckets{0, 1}, 0, 1, 7)

	entries := hook.AllEntries()
	if assert.Len(t, entries, 2) {
		assert.Equal(t, log.WarnLevel, entries[0].Level)
		assert.Equal(t, "gauge", entries[0].Data["kind"])
		assert.Equal(t, float64(3), entries[0].Data["value"])
		assert.Equal(t, int64(7), entries[1].Data["samples"])
	}
}
