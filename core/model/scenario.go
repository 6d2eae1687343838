package model

// Scenario bundles every input of one simulation run. It is owned by the
// caller and treated as read-only by the engine; all derived series live in
// the run context, never back in the scenario.
type Scenario struct {
	WindPlants       []RenewablePlant `json:"wind_plants"`
	SolarPlants      []RenewablePlant `json:"solar_plants"`
	WindLoadFactors  LoadFactorTable  `json:"wind_load_factors"`
	SolarLoadFactors LoadFactorTable  `json:"solar_load_factors"`
	GasPlants        []ThermalPlant   `json:"gas_plants"`
	Demand           DemandSeries     `json:"demand"`
	GasPrices        GasPriceSeries   `json:"gas_prices"`
}

// HourCount returns the length of the simulation horizon.
func (s Scenario) HourCount() int { return len(s.Demand) }
