package model

// HourlyResult is the clearing outcome of a single hour. It is computed
// once by the dispatch engine and immutable afterwards.
type HourlyResult struct {
	Hour              Hour    `json:"hour"`
	MarginalPriceGBP  float64 `json:"marginal_price_gbp"`
	WindGeneratedMWh  float64 `json:"wind_generated_mwh"`
	SolarGeneratedMWh float64 `json:"solar_generated_mwh"`
	GasGeneratedMWh   float64 `json:"gas_generated_mwh"`
	DemandMWh         float64 `json:"demand_mwh"`
	SupplyShortageMWh float64 `json:"supply_shortage_mwh"`
}

// Short reports whether supply fell below demand in this hour.
func (r HourlyResult) Short() bool { return r.SupplyShortageMWh > 0 }

// TotalSupplyMWh is the generation delivered across all sources.
func (r HourlyResult) TotalSupplyMWh() float64 {
	return r.WindGeneratedMWh + r.SolarGeneratedMWh + r.GasGeneratedMWh
}

// Result is the assembled outcome of one run: the ordered hourly table and
// the summary statistics exposed to callers.
type Result struct {
	RunID                string         `json:"run_id"`
	Hourly               []HourlyResult `json:"hourly"`
	MeanMarginalPriceGBP float64        `json:"mean_marginal_price_gbp"`
	ShortageHours        int            `json:"shortage_hours"`
}
