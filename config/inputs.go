package config

import "fmt"

// InputsConfig names the CSV files holding the seven input tables.
type InputsConfig struct {
	WindPlants       string `json:"wind_plants"`
	WindLoadFactors  string `json:"wind_load_factors"`
	SolarPlants      string `json:"solar_plants"`
	SolarLoadFactors string `json:"solar_load_factors"`
	GasPlants        string `json:"gas_plants"`
	Demand           string `json:"demand"`
	GasPrices        string `json:"gas_prices"`
}

// Validate checks that every input table has a path.
func (c InputsConfig) Validate() error {
	paths := map[string]string{
		"wind_plants":        c.WindPlants,
		"wind_load_factors":  c.WindLoadFactors,
		"solar_plants":       c.SolarPlants,
		"solar_load_factors": c.SolarLoadFactors,
		"gas_plants":         c.GasPlants,
		"demand":             c.Demand,
		"gas_prices":         c.GasPrices,
	}
	for name, p := range paths {
		if p == "" {
			return fmt.Errorf("inputs.%s is required", name)
		}
	}
	return nil
}
