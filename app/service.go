package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/gridsim/meritsim/api"
	"github.com/gridsim/meritsim/config"
	coremetrics "github.com/gridsim/meritsim/core/metrics"
	"github.com/gridsim/meritsim/core/model"
	"github.com/gridsim/meritsim/core/simulation"
	"github.com/gridsim/meritsim/infra/loader"
	"github.com/gridsim/meritsim/infra/logger"
	"github.com/gridsim/meritsim/infra/metrics"
	"github.com/gridsim/meritsim/internal/resultstream"
	"github.com/gridsim/meritsim/pkg/export"
)

// Service orchestrates one simulation run or the HTTP API around the
// engine, the configured metrics sinks and the report writer.
type Service struct {
	cfg    *config.Config
	log    logger.Logger
	engine *simulation.Engine
	sink   coremetrics.MetricsSink
}

// New creates a Service from the configuration.
func New(cfg *config.Config) (*Service, error) {
	logg := logger.New("service")

	var sinks []coremetrics.MetricsSink
	if cfg.Metrics.PrometheusEnabled {
		sink, err := metrics.NewPromSink(cfg.Metrics)
		if err != nil {
			return nil, fmt.Errorf("prom sink: %w", err)
		}
		sinks = append(sinks, sink)
	}
	if cfg.Metrics.InfluxEnabled {
		sinks = append(sinks, metrics.NewInfluxSinkWithFallback(cfg.Metrics))
	}
	var sink coremetrics.MetricsSink
	switch len(sinks) {
	case 0:
		sink = coremetrics.NopSink{}
	case 1:
		sink = sinks[0]
	default:
		sink = metrics.NewMultiSink(sinks...)
	}

	return &Service{
		cfg:    cfg,
		log:    logg,
		engine: simulation.NewEngine(cfg.Simulation, logg),
		sink:   sink,
	}, nil
}

// Run executes one batch simulation: load inputs, clear every hour, record
// metrics and write the report.
func (s *Service) Run(ctx context.Context) error {
	sc, err := loader.Load(s.cfg.Inputs)
	if err != nil {
		return fmt.Errorf("load inputs: %w", err)
	}

	start := time.Now()
	res, err := s.engine.Run(ctx, *sc)
	if err != nil {
		return err
	}
	s.record(res, time.Since(start))

	if err := s.writeReport(res); err != nil {
		return fmt.Errorf("write report: %w", err)
	}

	s.log.Infof("average price £%.2f/MWh over %d hours", res.MeanMarginalPriceGBP, len(res.Hourly))
	if res.ShortageHours > 0 {
		s.log.Warnf("system shortage detected in %d hours", res.ShortageHours)
	}
	return nil
}

// Serve runs the HTTP API until the context is cancelled. Completed runs
// are recorded through the same sinks as batch mode.
func (s *Service) Serve(ctx context.Context) error {
	h := api.NewHandler(s.engine, s.log)
	h.OnResult = s.record
	srv := &http.Server{Addr: s.cfg.API.Addr, Handler: api.NewRouter(h, s.cfg.API)}

	if s.cfg.Metrics.PrometheusEnabled {
		go func() {
			if err := metrics.StartPromServer(ctx, s.cfg.Metrics.PrometheusPort); err != nil {
				s.log.Errorf("prom server: %v", err)
			}
		}()
	}
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			s.log.Errorf("api shutdown: %v", err)
		}
	}()

	s.log.Infof("api listening on %s", s.cfg.API.Addr)
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// record streams the hourly results to the configured sinks and publishes
// the run summary.
func (s *Service) record(res *model.Result, dur time.Duration) {
	stream := resultstream.New()
	sub := stream.Subscribe()
	done := make(chan struct{})
	go func() {
		defer close(done)
		for rec := range sub {
			if err := s.sink.RecordHourResult(rec); err != nil {
				s.log.Errorf("record hour %d: %v", rec.Result.Hour, err)
			}
		}
	}()
	for _, r := range res.Hourly {
		stream.Publish(coremetrics.HourRecord{RunID: res.RunID, Result: r})
	}
	stream.Close()
	<-done

	if rec, ok := s.sink.(coremetrics.RunSummaryRecorder); ok {
		err := rec.RecordRunSummary(coremetrics.RunSummary{
			RunID:                res.RunID,
			Hours:                len(res.Hourly),
			MeanMarginalPriceGBP: res.MeanMarginalPriceGBP,
			ShortageHours:        res.ShortageHours,
			Duration:             dur,
			Time:                 time.Now(),
		})
		if err != nil {
			s.log.Errorf("record summary: %v", err)
		}
	}
}

func (s *Service) writeReport(res *model.Result) error {
	f, err := os.Create(s.cfg.Output.Path)
	if err != nil {
		return err
	}
	defer f.Close()

	switch s.cfg.Output.Format {
	case "json":
		err = export.WriteJSON(f, res)
	default:
		err = export.WriteCSV(f, res)
	}
	if err != nil {
		return err
	}
	s.log.Infof("results saved to %s", s.cfg.Output.Path)
	return nil
}
