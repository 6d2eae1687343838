package simulation

import "github.com/gridsim/meritsim/core/model"

// RunContext holds everything the per-hour dispatch needs: validated hour
// labels, renewable totals, net demand and the merit-order stack. It is
// materialised once per run and read-only afterwards, which is what makes
// the hour loop safe to parallelise.
type RunContext struct {
	Hours        []model.Hour
	DemandMWh    []float64
	WindMWh      []float64
	SolarMWh     []float64
	NetDemandMWh []float64
	GasPrices    []float64
	Stack        MeritOrderStack
}

// NewRunContext validates the scenario and materialises the derived series.
// It fails fast with an AlignmentError or LookupError before any dispatch
// runs.
func NewRunContext(sc model.Scenario) (*RunContext, error) {
	if err := ValidateAlignment(sc); err != nil {
		return nil, err
	}

	wind, err := aggregateClass("wind", sc.WindPlants, sc.WindLoadFactors)
	if err != nil {
		return nil, err
	}
	solar, err := aggregateClass("solar", sc.SolarPlants, sc.SolarLoadFactors)
	if err != nil {
		return nil, err
	}

	hours := sc.HourCount()
	rc := &RunContext{
		Hours:        sc.Demand.Hours(),
		DemandMWh:    make([]float64, hours),
		WindMWh:      wind,
		SolarMWh:     solar,
		NetDemandMWh: make([]float64, hours),
		GasPrices:    make([]float64, hours),
		Stack:        BuildMeritOrder(sc.GasPlants),
	}
	for i, p := range sc.Demand {
		rc.DemandMWh[i] = p.DemandMWh
		rc.NetDemandMWh[i] = p.DemandMWh - wind[i] - solar[i]
	}
	for i, p := range sc.GasPrices {
		rc.GasPrices[i] = p.PencePerTherm
	}
	return rc, nil
}

// HourCount returns the length of the simulation horizon.
func (rc *RunContext) HourCount() int { return len(rc.Hours) }
