package metrics

import (
	"context"
	"math"
	"net/http"
	"time"

	influxdb2 "github.com/influxdata/influxdb-client-go/v2"
	"github.com/influxdata/influxdb-client-go/v2/api"
	"github.com/influxdata/influxdb-client-go/v2/api/write"

	coremetrics "github.com/gridsim/meritsim/core/metrics"
	"github.com/gridsim/meritsim/infra/logger"
)

// InfluxSink writes clearing outcomes to an InfluxDB instance using the
// official client.
type InfluxSink struct {
	client   influxdb2.Client
	writeAPI api.WriteAPIBlocking
	log      logger.Logger
}

// NewInfluxSink creates a new sink configured for the given InfluxDB endpoint.
func NewInfluxSink(cfg coremetrics.Config) *InfluxSink {
	client := influxdb2.NewClientWithOptions(cfg.InfluxURL, cfg.InfluxToken,
		influxdb2.DefaultOptions().SetHTTPClient(&http.Client{Timeout: 5 * time.Second}))
	return &InfluxSink{
		client:   client,
		writeAPI: client.WriteAPIBlocking(cfg.InfluxOrg, cfg.InfluxBucket),
		log:      logger.New("influx-sink"),
	}
}

// NewInfluxSinkWithFallback tries to ping the InfluxDB instance and
// returns a NopSink if the health check fails.
func NewInfluxSinkWithFallback(cfg coremetrics.Config) coremetrics.MetricsSink {
	sink := NewInfluxSink(cfg)
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	health, err := sink.client.Health(ctx)
	if err != nil || health.Status != "pass" {
		if err != nil {
			sink.log.Errorf("influx health check error: %v", err)
		} else {
			sink.log.Errorf("influx health status: %s", health.Status)
		}
		sink.client.Close()
		return coremetrics.NopSink{}
	}
	return sink
}

// RecordHourResult writes the hourly clearing outcome as a single point.
func (s *InfluxSink) RecordHourResult(rec coremetrics.HourRecord) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	r := rec.Result
	p := write.NewPointWithMeasurement("hourly_clearing").
		AddTag("run_id", rec.RunID).
		AddField("hour", int(r.Hour)).
		AddField("marginal_price_gbp", round3(r.MarginalPriceGBP)).
		AddField("wind_mwh", round3(r.WindGeneratedMWh)).
		AddField("solar_mwh", round3(r.SolarGeneratedMWh)).
		AddField("gas_mwh", round3(r.GasGeneratedMWh)).
		AddField("demand_mwh", round3(r.DemandMWh)).
		AddField("shortage_mwh", round3(r.SupplyShortageMWh)).
		SetTime(time.Now())
	return s.writeAPI.WritePoint(ctx, p)
}

// RecordRunSummary persists the run-level statistics.
func (s *InfluxSink) RecordRunSummary(sum coremetrics.RunSummary) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	p := write.NewPointWithMeasurement("run_summary").
		AddTag("run_id", sum.RunID).
		AddField("hours", sum.Hours).
		AddField("mean_marginal_price_gbp", round3(sum.MeanMarginalPriceGBP)).
		AddField("shortage_hours", sum.ShortageHours).
		AddField("duration_seconds", sum.Duration.Seconds()).
		SetTime(sum.Time)
	return s.writeAPI.WritePoint(ctx, p)
}

// Close releases the underlying client.
func (s *InfluxSink) Close() { s.client.Close() }

func round3(v float64) float64 { return math.Round(v*1000) / 1000 }
