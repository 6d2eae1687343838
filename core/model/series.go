package model

// Hour labels one simulation hour. Labels come from the demand series and
// are opaque to the engine; only their order and equality matter.
type Hour int

// DemandPoint is the system demand for one hour.
type DemandPoint struct {
	Hour      Hour    `json:"hour"`
	DemandMWh float64 `json:"demand_mwh"`
}

// DemandSeries is the hourly demand, ordered by hour. Its hour labels are
// the authoritative reference all other hourly inputs are checked against.
type DemandSeries []DemandPoint

// Hours returns the hour labels in series order.
func (s DemandSeries) Hours() []Hour {
	hours := make([]Hour, len(s))
	for i, p := range s {
		hours[i] = p.Hour
	}
	return hours
}

// GasPricePoint is the gas price for one hour in pence per therm.
type GasPricePoint struct {
	Hour          Hour    `json:"hour"`
	PencePerTherm float64 `json:"pence_per_therm"`
}

// GasPriceSeries is the hourly gas price, ordered by hour.
type GasPriceSeries []GasPricePoint

// Hours returns the hour labels in series order.
func (s GasPriceSeries) Hours() []Hour {
	hours := make([]Hour, len(s))
	for i, p := range s {
		hours[i] = p.Hour
	}
	return hours
}

// LoadFactorTable holds per-plant hourly load factors for one renewable
// class. Columns are keyed by plant name, each column aligned to Hours.
type LoadFactorTable struct {
	Hours   []Hour               `json:"hours"`
	Columns map[string][]float64 `json:"columns"`
}
