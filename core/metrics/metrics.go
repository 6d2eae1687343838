package metrics

import (
	"time"

	"github.com/gridsim/meritsim/core/model"
)

// HourRecord ties one hourly clearing outcome to the run that produced it.
type HourRecord struct {
	RunID  string
	Result model.HourlyResult
}

// MetricsSink records hourly clearing outcomes for observability purposes.
type MetricsSink interface {
	RecordHourResult(rec HourRecord) error
}

// RunSummary captures the end-of-run statistics.
type RunSummary struct {
	RunID                string
	Hours                int
	MeanMarginalPriceGBP float64
	ShortageHours        int
	Duration             time.Duration
	Time                 time.Time
}

// RunSummaryRecorder is implemented by sinks able to record run summaries.
type RunSummaryRecorder interface {
	RecordRunSummary(s RunSummary) error
}

// NopSink implements MetricsSink with no-op methods.
type NopSink struct{}

func (NopSink) RecordHourResult(HourRecord) error { return nil }

// Ensure NopSink implements RunSummaryRecorder.
func (NopSink) RecordRunSummary(RunSummary) error { return nil }
