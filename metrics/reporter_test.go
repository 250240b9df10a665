package metrics

import (
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
)

func TestLogReporterCounter(t *testing.T) {
	logger, hook := test.NewNullLogger()
	r := NewLogReporter(logrus.NewEntry(logger))

	r.ReportCounter("match.requests", map[string]string{"outcome": "empty"}, 3)

	entry := hook.LastEntry()
	if assert.NotNil(t, entry) {
		assert.Equal(t, "counter", entry.Message)
		assert.Equal(t, "match.requests", entry.Data["metric"])
		assert.Equal(t, "empty", entry.Data["tag.outcome"])
		assert.Equal(t, int64(3), entry.Data["value"])
	}
}

func TestLogReporterTimer(t *testing.T) {
	logger, hook := test.NewNullLogger()
	r := NewLogReporter(logrus.NewEntry(logger))

	r.ReportTimer("intent.latency", nil, 1500*time.Millisecond)

	entry := hook.LastEntry()
	if assert.NotNil(t, entry) {
		assert.Equal(t, "timer", entry.Message)
		assert.Equal(t, "1.5s", entry.Data["value"])
	}
}

func TestLogReporterCapabilities(t *testing.T) {
	r := NewLogReporter(logrus.NewEntry(logrus.New()))
	assert.True(t, r.Capabilities().Reporting())
	assert.True(t, r.Capabilities().Tagging())
}
