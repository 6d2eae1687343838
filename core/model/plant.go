package model

// RenewablePlant is a price-taking wind or solar unit. Its output is
// capacity times the hourly load factor and carries zero marginal cost.
type RenewablePlant struct {
	Name       string  `json:"name"`
	CapacityMW float64 `json:"capacity_mw"`
}

// ThermalPlant is a gas unit offered into the merit order. Efficiency is
// dimensionless; a higher value means cheaper output per MWh.
type ThermalPlant struct {
	Name       string  `json:"name"`
	CapacityMW float64 `json:"capacity_mw"`
	Efficiency float64 `json:"efficiency"`
}
