// Package metrics reports tally metrics through logrus.
package metrics

import (
	"io"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/uber-go/tally"
)

type capabilities struct{}

func (capabilities) Reporting() bool { return true }
func (capabilities) Tagging() bool   { return true }

// LogReporter writes every flushed metric as a structured log line
type LogReporter struct {
	log *logrus.Entry
}

func NewLogReporter(log *logrus.Entry) *LogReporter {
	return &LogReporter{log: log}
}

func (r *LogReporter) fields(name string, tags map[string]string) logrus.Fields {
	f := logrus.Fields{"metric": name}
	for k, v := range tags {
		f["tag."+k] = v
	}
	return f
}

func (r *LogReporter) ReportCounter(name string, tags map[string]string, value int64) {
	r.log.WithFields(r.fields(name, tags)).WithField("value", value).Info("counter")
}

func (r *LogReporter) ReportGauge(name string, tags map[string]string, value float64) {
	r.log.WithFields(r.fields(name, tags)).WithField("value", value).Info("gauge")
}

func (r *LogReporter) ReportTimer(name string, tags map[string]string, interval time.Duration) {
	r.log.WithFields(r.fields(name, tags)).WithField("value", interval.String()).Info("timer")
}

func (r *LogReporter) ReportHistogramValueSamples(
	name string,
	tags map[string]string,
	buckets tally.Buckets,
	bucketLowerBound,
	bucketUpperBound float64,
	samples int64,
) {
	r.log.WithFields(r.fields(name, tags)).WithFields(logrus.Fields{
		"lower":   bucketLowerBound,
		"upper":   bucketUpperBound,
		"samples": samples,
	}).Info("histogram")
}

func (r *LogReporter) ReportHistogramDurationSamples(
	name string,
	tags map[string]string,
	buckets tally.Buckets,
	bucketLowerBound,
	bucketUpperBound time.Duration,
	samples int64,
) {
	r.log.WithFields(r.fields(name, tags)).WithFields(logrus.Fields{
		"lower":   bucketLowerBound.String(),
		"upper":   bucketUpperBound.String(),
		"samples": samples,
	}).Info("histogram")
}

func (r *LogReporter) Capabilities() tally.Capabilities {
	return capabilities{}
}

func (r *LogReporter) Flush() {}

// NewRootScope creates the service scope. Metrics are flushed to the log every interval.
func NewRootScope(prefix string, interval time.Duration) (tally.Scope, io.Closer) {
	return tally.NewRootScope(tally.ScopeOptions{
		Prefix:   prefix,
		Reporter: NewLogReporter(logrus.WithField("prefix", "metrics")),
	}, interval)
}
