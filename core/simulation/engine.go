package simulation

import (
	"context"
	"math"
	"sync"

	"github.com/google/uuid"

	"github.com/gridsim/meritsim/core/logger"
	"github.com/gridsim/meritsim/core/model"
)

// thermEnergyMWh converts between gas trading and dispatch units: one therm
// is 34.121 kWh, so price in pence/therm divided by 100 times this factor
// gives pounds per MWh of fuel.
const thermEnergyMWh = 34.121

// fuelPriceGBPMWh converts a gas price in pence per therm to pounds per
// megawatt hour of fuel energy.
func fuelPriceGBPMWh(pencePerTherm float64) float64 {
	return pencePerTherm / 100 * thermEnergyMWh
}

// Config holds engine tuning options.
type Config struct {
	// Workers caps the number of concurrent hour workers. Zero or one
	// dispatches sequentially.
	Workers int `json:"workers"`
}

// Engine clears a scenario hour by hour under the merit-order rule.
type Engine struct {
	cfg Config
	log logger.Logger
}

// NewEngine creates an Engine. A nil logger disables diagnostics.
func NewEngine(cfg Config, log logger.Logger) *Engine {
	if log == nil {
		log = logger.NopLogger{}
	}
	return &Engine{cfg: cfg, log: log}
}

// DispatchHour clears a single hour. It is a pure function of the context:
// no state is shared between hours, so any two hours may run concurrently.
//
// Renewables are price takers; when they cover demand on their own the hour
// clears at zero. Otherwise the merit-order stack is walked cheapest first
// and the last unit dispatched sets the price. An exhausted stack leaves a
// shortage, reported in the result rather than raised as an error.
func (rc *RunContext) DispatchHour(i int) model.HourlyResult {
	demand := rc.DemandMWh[i]
	net := rc.NetDemandMWh[i]

	var marginalPrice, gasGenerated float64
	if net > 0 {
		fuel := fuelPriceGBPMWh(rc.GasPrices[i])
		remaining := net
		for j := 0; j < rc.Stack.Len() && remaining > 0; j++ {
			dispatched := math.Min(rc.Stack.CapacitiesMW[j], remaining)
			remaining -= dispatched
			gasGenerated += dispatched
			marginalPrice = fuel / rc.Stack.Efficiencies[j]
		}
	}

	// Reconciliation from totals; must agree with the stack walk above.
	supply := rc.WindMWh[i] + rc.SolarMWh[i] + gasGenerated
	shortage := math.Max(0, demand-supply)

	return model.HourlyResult{
		Hour:              rc.Hours[i],
		MarginalPriceGBP:  marginalPrice,
		WindGeneratedMWh:  rc.WindMWh[i],
		SolarGeneratedMWh: rc.SolarMWh[i],
		GasGeneratedMWh:   gasGenerated,
		DemandMWh:         demand,
		SupplyShortageMWh: shortage,
	}
}

// Run validates the scenario, clears every hour and assembles the result
// table in hour order. Shortage hours are logged as warnings but never stop
// the run.
func (e *Engine) Run(ctx context.Context, sc model.Scenario) (*model.Result, error) {
	rc, err := NewRunContext(sc)
	if err != nil {
		return nil, err
	}

	hours := rc.HourCount()
	results := make([]model.HourlyResult, hours)

	workers := e.cfg.Workers
	if workers > hours {
		workers = hours
	}
	if workers <= 1 {
		for i := 0; i < hours; i++ {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
			results[i] = rc.DispatchHour(i)
		}
	} else if err := e.runParallel(ctx, rc, results, workers); err != nil {
		return nil, err
	}

	for _, r := range results {
		if r.Short() {
			e.log.Warnf("hour %d has supply shortage of %.2f MWh", r.Hour, r.SupplyShortageMWh)
		}
	}

	res := Assemble(results)
	res.RunID = uuid.NewString()
	e.log.Debugw("run cleared", map[string]any{
		"run_id":         res.RunID,
		"hours":          hours,
		"mean_price_gbp": res.MeanMarginalPriceGBP,
		"shortage_hours": res.ShortageHours,
	})
	return res, nil
}

// runParallel fans the hour loop out over workers. Each worker writes only
// its own result slots, so no locking is needed; order is restored by index.
func (e *Engine) runParallel(ctx context.Context, rc *RunContext, results []model.HourlyResult, workers int) error {
	jobs := make(chan int)
	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range jobs {
				results[i] = rc.DispatchHour(i)
			}
		}()
	}

	var err error
	for i := 0; i < len(results); i++ {
		select {
		case jobs <- i:
		case <-ctx.Done():
			err = ctx.Err()
		}
		if err != nil {
			break
		}
	}
	close(jobs)
	wg.Wait()
	return err
}
