package simulation

import (
	"gonum.org/v1/gonum/stat"

	"github.com/gridsim/meritsim/core/model"
)

// Assemble collects the per-hour results, already in hour order, into the
// run result and computes the summary statistics exposed to callers: the
// arithmetic mean of the marginal price and the number of shortage hours.
func Assemble(hourly []model.HourlyResult) *model.Result {
	prices := make([]float64, len(hourly))
	shortageHours := 0
	for i, r := range hourly {
		prices[i] = r.MarginalPriceGBP
		if r.Short() {
			shortageHours++
		}
	}

	var mean float64
	if len(prices) > 0 {
		mean = stat.Mean(prices, nil)
	}
	return &model.Result{
		Hourly:               hourly,
		MeanMarginalPriceGBP: mean,
		ShortageHours:        shortageHours,
	}
}
