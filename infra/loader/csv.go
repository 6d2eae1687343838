// Package loader reads the simulator's input tables from CSV files. It is
// the external collaborator feeding the core: everything it returns is
// plain model data and all format concerns stay here.
package loader

import (
	"encoding/csv"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/gridsim/meritsim/config"
	"github.com/gridsim/meritsim/core/model"
)

// Load reads all seven input tables and assembles a Scenario.
func Load(in config.InputsConfig) (*model.Scenario, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}

	wind, err := readRenewablePlants(in.WindPlants)
	if err != nil {
		return nil, fmt.Errorf("wind plants: %w", err)
	}
	solar, err := readRenewablePlants(in.SolarPlants)
	if err != nil {
		return nil, fmt.Errorf("solar plants: %w", err)
	}
	gas, err := readThermalPlants(in.GasPlants)
	if err != nil {
		return nil, fmt.Errorf("gas plants: %w", err)
	}
	windLF, err := readLoadFactors(in.WindLoadFactors)
	if err != nil {
		return nil, fmt.Errorf("wind load factors: %w", err)
	}
	solarLF, err := readLoadFactors(in.SolarLoadFactors)
	if err != nil {
		return nil, fmt.Errorf("solar load factors: %w", err)
	}
	demand, err := readDemand(in.Demand)
	if err != nil {
		return nil, fmt.Errorf("demand: %w", err)
	}
	prices, err := readGasPrices(in.GasPrices)
	if err != nil {
		return nil, fmt.Errorf("gas prices: %w", err)
	}

	return &model.Scenario{
		WindPlants:       wind,
		SolarPlants:      solar,
		WindLoadFactors:  windLF,
		SolarLoadFactors: solarLF,
		GasPlants:        gas,
		Demand:           demand,
		GasPrices:        prices,
	}, nil
}

func readTable(path string, wantCols ...string) ([][]string, []string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, err
	}
	defer f.Close()

	r := csv.NewReader(f)
	rows, err := r.ReadAll()
	if err != nil {
		return nil, nil, fmt.Errorf("%s: %w", path, err)
	}
	if len(rows) == 0 {
		return nil, nil, fmt.Errorf("%s: empty file", path)
	}
	// Plant-name columns keep their case; only the fixed columns are
	// compared case-insensitively.
	header := make([]string, len(rows[0]))
	for i, h := range rows[0] {
		header[i] = strings.TrimSpace(h)
	}
	for i, want := range wantCols {
		if i >= len(header) || strings.ToLower(header[i]) != want {
			return nil, nil, fmt.Errorf("%s: expected column %d to be %q, got %v", path, i+1, want, rows[0])
		}
	}
	return rows[1:], header, nil
}

func parseFloat(path string, line int, field string) (float64, error) {
	v, err := strconv.ParseFloat(strings.TrimSpace(field), 64)
	if err != nil {
		return 0, fmt.Errorf("%s line %d: %w", path, line, err)
	}
	return v, nil
}

func parseHour(path string, line int, field string) (model.Hour, error) {
	v, err := strconv.Atoi(strings.TrimSpace(field))
	if err != nil {
		return 0, fmt.Errorf("%s line %d: invalid hour: %w", path, line, err)
	}
	return model.Hour(v), nil
}

func readRenewablePlants(path string) ([]model.RenewablePlant, error) {
	rows, _, err := readTable(path, "name", "capacity")
	if err != nil {
		return nil, err
	}
	plants := make([]model.RenewablePlant, 0, len(rows))
	for i, row := range rows {
		capacity, err := parseFloat(path, i+2, row[1])
		if err != nil {
			return nil, err
		}
		plants = append(plants, model.RenewablePlant{Name: strings.TrimSpace(row[0]), CapacityMW: capacity})
	}
	return plants, nil
}

func readThermalPlants(path string) ([]model.ThermalPlant, error) {
	rows, _, err := readTable(path, "name", "capacity", "efficiency")
	if err != nil {
		return nil, err
	}
	plants := make([]model.ThermalPlant, 0, len(rows))
	for i, row := range rows {
		capacity, err := parseFloat(path, i+2, row[1])
		if err != nil {
			return nil, err
		}
		efficiency, err := parseFloat(path, i+2, row[2])
		if err != nil {
			return nil, err
		}
		plants = append(plants, model.ThermalPlant{Name: strings.TrimSpace(row[0]), CapacityMW: capacity, Efficiency: efficiency})
	}
	return plants, nil
}

func readDemand(path string) (model.DemandSeries, error) {
	rows, _, err := readTable(path, "hour", "demand")
	if err != nil {
		return nil, err
	}
	series := make(model.DemandSeries, 0, len(rows))
	for i, row := range rows {
		hour, err := parseHour(path, i+2, row[0])
		if err != nil {
			return nil, err
		}
		demand, err := parseFloat(path, i+2, row[1])
		if err != nil {
			return nil, err
		}
		series = append(series, model.DemandPoint{Hour: hour, DemandMWh: demand})
	}
	return series, nil
}

func readGasPrices(path string) (model.GasPriceSeries, error) {
	rows, _, err := readTable(path, "hour", "price")
	if err != nil {
		return nil, err
	}
	series := make(model.GasPriceSeries, 0, len(rows))
	for i, row := range rows {
		hour, err := parseHour(path, i+2, row[0])
		if err != nil {
			return nil, err
		}
		price, err := parseFloat(path, i+2, row[1])
		if err != nil {
			return nil, err
		}
		series = append(series, model.GasPricePoint{Hour: hour, PencePerTherm: price})
	}
	return series, nil
}

// readLoadFactors reads a wide table: an hour column followed by one column
// per plant, keyed by the header names.
func readLoadFactors(path string) (model.LoadFactorTable, error) {
	rows, header, err := readTable(path, "hour")
	if err != nil {
		return model.LoadFactorTable{}, err
	}
	table := model.LoadFactorTable{
		Hours:   make([]model.Hour, 0, len(rows)),
		Columns: make(map[string][]float64, len(header)-1),
	}
	names := header[1:]
	for _, n := range names {
		table.Columns[n] = make([]float64, 0, len(rows))
	}
	for i, row := range rows {
		if len(row) != len(header) {
			return model.LoadFactorTable{}, fmt.Errorf("%s line %d: %d fields, want %d", path, i+2, len(row), len(header))
		}
		hour, err := parseHour(path, i+2, row[0])
		if err != nil {
			return model.LoadFactorTable{}, err
		}
		table.Hours = append(table.Hours, hour)
		for j, n := range names {
			v, err := parseFloat(path, i+2, row[j+1])
			if err != nil {
				return model.LoadFactorTable{}, err
			}
			table.Columns[n] = append(table.Columns[n], v)
		}
	}
	return table, nil
}
