package metrics

import (
	coremetrics "github.com/gridsim/meritsim/core/metrics"
	"github.com/prometheus/client_golang/prometheus"
)

// hour outcome labels for the hours counter.
const (
	outcomeCleared   = "cleared"
	outcomeCurtailed = "curtailed"
	outcomeShortage  = "shortage"
)

// PromSink records clearing outcomes in Prometheus metrics.
type PromSink struct {
	hours      *prometheus.CounterVec
	generation *prometheus.CounterVec
	prices     prometheus.Histogram
	meanPrice  prometheus.Gauge
	shortHours prometheus.Gauge
}

// NewPromSink registers clearing metrics on the default Prometheus registerer.
// The Prometheus server should be started separately using cfg.PrometheusPort.
func NewPromSink(cfg coremetrics.Config) (*PromSink, error) {
	return NewPromSinkWithRegistry(cfg, prometheus.DefaultRegisterer)
}

// NewPromSinkWithRegistry registers metrics on the provided registerer.
// A nil registerer defaults to the global Prometheus registerer.
func NewPromSinkWithRegistry(_ coremetrics.Config, reg prometheus.Registerer) (*PromSink, error) {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	hours := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "clearing_hours_total",
		Help: "Number of hours cleared, by outcome",
	}, []string{"outcome"})
	generation := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "generation_mwh_total",
		Help: "Generation dispatched per source in MWh",
	}, []string{"source"})
	prices := prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "marginal_price_gbp",
		Help:    "Hourly marginal price in GBP per MWh",
		Buckets: []float64{0, 5, 10, 20, 40, 60, 80, 100, 150, 200},
	})
	meanPrice := prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "run_mean_marginal_price_gbp",
		Help: "Mean marginal price of the last completed run",
	})
	shortHours := prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "run_shortage_hours",
		Help: "Number of shortage hours in the last completed run",
	})

	if err := reg.Register(hours); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			hours = are.ExistingCollector.(*prometheus.CounterVec)
		} else {
			return nil, err
		}
	}
	if err := reg.Register(generation); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			generation = are.ExistingCollector.(*prometheus.CounterVec)
		} else {
			return nil, err
		}
	}
	if err := reg.Register(prices); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			prices = are.ExistingCollector.(prometheus.Histogram)
		} else {
			return nil, err
		}
	}
	if err := reg.Register(meanPrice); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			meanPrice = are.ExistingCollector.(prometheus.Gauge)
		} else {
			return nil, err
		}
	}
	if err := reg.Register(shortHours); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			shortHours = are.ExistingCollector.(prometheus.Gauge)
		} else {
			return nil, err
		}
	}

	return &PromSink{hours: hours, generation: generation, prices: prices, meanPrice: meanPrice, shortHours: shortHours}, nil
}

// RecordHourResult increments the counters for one cleared hour.
func (s *PromSink) RecordHourResult(rec coremetrics.HourRecord) error {
	r := rec.Result
	outcome := outcomeCleared
	switch {
	case r.Short():
		outcome = outcomeShortage
	case r.GasGeneratedMWh == 0 && r.MarginalPriceGBP == 0:
		outcome = outcomeCurtailed
	}
	s.hours.WithLabelValues(outcome).Inc()
	s.generation.WithLabelValues("wind").Add(r.WindGeneratedMWh)
	s.generation.WithLabelValues("solar").Add(r.SolarGeneratedMWh)
	s.generation.WithLabelValues("gas").Add(r.GasGeneratedMWh)
	s.prices.Observe(r.MarginalPriceGBP)
	return nil
}

// RecordRunSummary publishes the last run's summary gauges.
func (s *PromSink) RecordRunSummary(sum coremetrics.RunSummary) error {
	s.meanPrice.Set(sum.MeanMarginalPriceGBP)
	s.shortHours.Set(float64(sum.ShortageHours))
	return nil
}
